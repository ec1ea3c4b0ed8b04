package cli

import (
	"encoding/json"
	"fmt"
	"io"
	"os"
	"sort"
	"strconv"
	"strings"

	"salestrend/models"
	"salestrend/prediction"

	"github.com/fatih/color"
	"github.com/olekukonko/tablewriter"
	"github.com/olekukonko/tablewriter/tw"
)

// printer writes command output, coloured unless disabled.
type printer struct {
	out       io.Writer
	useColors bool
}

func newPrinter(out io.Writer, noColor bool) *printer {
	useColors := !noColor
	if _, ok := os.LookupEnv("NO_COLOR"); ok {
		useColors = false
	}
	if os.Getenv("TERM") == "dumb" {
		useColors = false
	}
	return &printer{out: out, useColors: useColors}
}

func (p *printer) paint(attr color.Attribute, text string) string {
	if !p.useColors {
		return text
	}
	c := color.New(attr)
	c.EnableColor()
	return c.Sprint(text)
}

// Header prints a section title.
func (p *printer) Header(title string) {
	fmt.Fprintf(p.out, "\n%s\n%s\n", p.paint(color.Bold, title), strings.Repeat("─", len([]rune(title))))
}

// Success prints a confirmation line.
func (p *printer) Success(format string, args ...any) {
	fmt.Fprintln(p.out, p.paint(color.FgGreen, "✓ "+fmt.Sprintf(format, args...)))
}

// Info prints a plain line.
func (p *printer) Info(format string, args ...any) {
	fmt.Fprintf(p.out, format+"\n", args...)
}

func (p *printer) trend(t prediction.Trend) string {
	switch t {
	case prediction.TrendIncreasing:
		return p.paint(color.FgGreen, "▲ "+string(t))
	case prediction.TrendDecreasing:
		return p.paint(color.FgRed, "▼ "+string(t))
	default:
		return p.paint(color.FgYellow, "● "+string(t))
	}
}

func newTable(w io.Writer) *tablewriter.Table {
	return tablewriter.NewTable(w,
		tablewriter.WithConfig(tablewriter.Config{
			Row: tw.CellConfig{
				Formatting: tw.CellFormatting{AutoWrap: tw.WrapNone},
				Alignment:  tw.CellAlignment{Global: tw.AlignLeft},
			},
			Header: tw.CellConfig{
				Formatting: tw.CellFormatting{AutoFormat: tw.On},
				Alignment:  tw.CellAlignment{Global: tw.AlignLeft},
			},
		}),
		tablewriter.WithRendition(tw.Rendition{
			Borders: tw.BorderNone,
			Settings: tw.Settings{
				Separators: tw.Separators{ShowHeader: tw.Off},
			},
		}),
	)
}

func money(v float64) string {
	return strconv.FormatFloat(v, 'f', 2, 64)
}

// Predictions renders results as a table, in the order given.
func (p *printer) Predictions(results []prediction.Result) error {
	if len(results) == 0 {
		p.Info("No sales in the selected period.")
		return nil
	}

	table := newTable(p.out)
	table.Header([]string{"ID", "Product", "Trend", "Daily", "Weekly", "Monthly", "Confidence", "Recommendation"})
	rows := make([][]string, 0, len(results))
	for _, r := range results {
		rows = append(rows, []string{
			strconv.FormatInt(r.ProductID, 10),
			r.ProductName,
			p.trend(r.CurrentTrend),
			money(r.PredictedDailySales),
			money(r.PredictedWeeklySales),
			money(r.PredictedMonthlySales),
			fmt.Sprintf("%.0f%%", r.ConfidenceScore*100),
			r.Recommendation,
		})
	}
	if err := table.Bulk(rows); err != nil {
		return err
	}
	return table.Render()
}

var weekdays = [7]string{"Sun", "Mon", "Tue", "Wed", "Thu", "Fri", "Sat"}

// Diagnostics renders the intermediate values of each product's fit.
func (p *printer) Diagnostics(diags []prediction.Diagnostics) error {
	for _, d := range diags {
		p.Header(fmt.Sprintf("%s (#%d)", d.ProductName, d.ProductID))
		p.Info("points: %d", d.Points)
		if d.Smoothed == nil {
			p.Info("not enough history to fit a line")
			continue
		}
		p.Info("fit: y = %.4f·x + %.4f", d.Slope, d.Intercept)

		smoothed := make([]string, len(d.Smoothed))
		for i, v := range d.Smoothed {
			smoothed[i] = money(v)
		}
		p.Info("smoothed: %s", strings.Join(smoothed, " "))

		pattern := "no"
		if d.Seasonality.HasWeeklyPattern {
			pattern = p.paint(color.FgCyan, "yes")
		}
		p.Info("weekly pattern: %s", pattern)

		table := newTable(p.out)
		table.Header(weekdays[:])
		row := make([]string, len(weekdays))
		for i, v := range d.Seasonality.WeekdayAverages {
			row[i] = money(v)
		}
		if err := table.Append(row); err != nil {
			return err
		}
		if err := table.Render(); err != nil {
			return err
		}
	}
	return nil
}

// Status renders per-table existence and row counts.
func (p *printer) Status(status models.DatabaseStatus) error {
	names := make([]string, 0, len(status.Tables))
	for name := range status.Tables {
		names = append(names, name)
	}
	sort.Strings(names)

	table := newTable(p.out)
	table.Header([]string{"Table", "Exists", "Rows"})
	for _, name := range names {
		t := status.Tables[name]
		exists := p.paint(color.FgRed, "no")
		if t.Exists {
			exists = p.paint(color.FgGreen, "yes")
		}
		if err := table.Append([]string{name, exists, strconv.FormatInt(t.Count, 10)}); err != nil {
			return err
		}
	}
	if err := table.Render(); err != nil {
		return err
	}
	p.Info("total records: %d", status.TotalRecords)
	return nil
}

func writeJSON(w io.Writer, v any) error {
	enc := json.NewEncoder(w)
	enc.SetIndent("", "  ")
	return enc.Encode(v)
}
