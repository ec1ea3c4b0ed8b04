package utils

import (
	"fmt"
	"strconv"
	"strings"
)

// ParseIDList parses a comma separated list of positive ids such as
// "1, 2,3". Empty entries are skipped and duplicates are dropped.
func ParseIDList(s string) ([]int64, error) {
	var ids []int64
	seen := map[int64]bool{}
	for _, field := range strings.Split(s, ",") {
		field = strings.TrimSpace(field)
		if field == "" {
			continue
		}
		id, err := strconv.ParseInt(field, 10, 64)
		if err != nil || id <= 0 {
			return nil, fmt.Errorf("invalid product id %q", field)
		}
		if !seen[id] {
			seen[id] = true
			ids = append(ids, id)
		}
	}
	return ids, nil
}
