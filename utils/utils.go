package utils

import "math"

// Pagination represents the pagination details.
type Pagination struct {
	TotalItems  int `json:"totalItems"`
	CurrentPage int `json:"currentPage"`
	PageSize    int `json:"pageSize"`
	TotalPages  int `json:"totalPages"`
}

// MaxPage is the highest page number CreatePagination accepts; larger
// requests are clamped to it.
const MaxPage = 1_000_000

// CreatePagination creates a Pagination object.
func CreatePagination(totalItems, page, pageSize int) *Pagination {
	if pageSize <= 0 {
		pageSize = 10 // Default page size
	}
	if page <= 0 {
		page = 1 // Default page
	}
	if page > MaxPage {
		page = MaxPage
	}

	totalPages := int(math.Ceil(float64(totalItems) / float64(pageSize)))

	return &Pagination{
		TotalItems:  totalItems,
		CurrentPage: page,
		PageSize:    pageSize,
		TotalPages:  totalPages,
	}
}

// Offset is the number of rows to skip to reach the current page.
// It saturates at math.MaxInt instead of overflowing.
func (p *Pagination) Offset() int {
	if p.CurrentPage <= 1 || p.PageSize <= 0 {
		return 0
	}
	if p.CurrentPage-1 > math.MaxInt/p.PageSize {
		return math.MaxInt
	}
	return (p.CurrentPage - 1) * p.PageSize
}
