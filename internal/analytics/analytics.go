// Package analytics derives summary figures from the full expense
// collection. Every function here is a pure, order-independent reduction:
// no errors, no mutation, empty input yields zero values.
package analytics

import (
	"sort"
	"time"

	"github.com/jask/financeflow/internal/expense"
)

const monthKeyLayout = "2006-01"

// Summary holds the headline totals shown on the Insights tab.
type Summary struct {
	Total   float64 // all records
	Monthly float64 // records in ref's calendar month
	Daily   float64 // records on ref's calendar date
}

// CategoryInsight is the spend total for one category.
type CategoryInsight struct {
	Name  expense.Category
	Value float64
	Color string
}

// TrendPoint is one calendar-month bucket in a trailing window.
type TrendPoint struct {
	Key    string // YYYY-MM, unambiguous across year boundaries
	Label  string // short month name for display
	Amount float64
}

// Summarize computes total, monthly and daily spend in one pass.
// Bucketing uses each record's occurrence date, never its creation time,
// so back-dated entries land in the month they belong to.
func Summarize(records []expense.Record, ref time.Time) Summary {
	day := ref.Format(expense.DateLayout)
	month := ref.Format(monthKeyLayout)
	var s Summary
	for _, r := range records {
		s.Total += r.Amount
		if r.Date == day {
			s.Daily += r.Amount
		}
		if monthKey(r.Date) == month {
			s.Monthly += r.Amount
		}
	}
	return s
}

// CategoryBreakdown sums spend per category in declaration order.
// Categories with zero spend are omitted, not reported as zero.
func CategoryBreakdown(records []expense.Record) []CategoryInsight {
	totals := map[expense.Category]float64{}
	for _, r := range records {
		totals[r.Category] += r.Amount
	}
	var out []CategoryInsight
	for _, info := range expense.Categories() {
		if v := totals[info.Label]; v > 0 {
			out = append(out, CategoryInsight{Name: info.Label, Value: v, Color: info.Color})
		}
	}
	return out
}

// TopCategories returns a copy of insights sorted descending by value,
// truncated to n. This is a presentation ordering on top of
// CategoryBreakdown's declaration-order output.
func TopCategories(insights []CategoryInsight, n int) []CategoryInsight {
	out := make([]CategoryInsight, len(insights))
	copy(out, insights)
	sort.SliceStable(out, func(i, j int) bool { return out[i].Value > out[j].Value })
	if n >= 0 && len(out) > n {
		out = out[:n]
	}
	return out
}

// TrailingMonthlyTrend buckets spend into window consecutive calendar
// months ending at ref's month, oldest first. Records outside the window
// are ignored. The window is always exactly window points, zero-filled,
// with contiguous keys even across a year boundary.
func TrailingMonthlyTrend(records []expense.Record, ref time.Time, window int) []TrendPoint {
	if window <= 0 {
		return nil
	}
	end := time.Date(ref.Year(), ref.Month(), 1, 0, 0, 0, 0, time.UTC)
	points := make([]TrendPoint, 0, window)
	index := make(map[string]int, window)
	for i := window - 1; i >= 0; i-- {
		m := end.AddDate(0, -i, 0)
		key := m.Format(monthKeyLayout)
		index[key] = len(points)
		points = append(points, TrendPoint{Key: key, Label: m.Format("Jan")})
	}
	for _, r := range records {
		if i, ok := index[monthKey(r.Date)]; ok {
			points[i].Amount += r.Amount
		}
	}
	return points
}

// monthKey extracts the YYYY-MM prefix of a record date.
func monthKey(date string) string {
	if len(date) < len(monthKeyLayout) {
		return ""
	}
	return date[:len(monthKeyLayout)]
}
