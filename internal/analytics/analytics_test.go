package analytics

import (
	"testing"
	"time"

	"github.com/stretchr/testify/require"

	"github.com/jask/financeflow/internal/expense"
)

func date(y int, m time.Month, d int) time.Time {
	return time.Date(y, m, d, 0, 0, 0, 0, time.UTC)
}

func rec(title string, amount float64, cat expense.Category, day string) expense.Record {
	return expense.Record{ID: title, Title: title, Amount: amount, Category: cat, Date: day}
}

func TestSummarize(t *testing.T) {
	t.Parallel()

	records := []expense.Record{
		rec("groceries", 50, expense.CategoryFood, "2024-01-15"),
		rec("january rent", 1000, expense.CategoryRent, "2024-01-01"),
		rec("lunch", 20, expense.CategoryFood, "2024-02-01"),
	}

	s := Summarize(records, date(2024, time.February, 1))
	require.InDelta(t, 1070, s.Total, 1e-9)
	require.InDelta(t, 20, s.Monthly, 1e-9)
	require.InDelta(t, 20, s.Daily, 1e-9)

	// total is reference-date independent
	s2 := Summarize(records, date(1999, time.June, 12))
	require.InDelta(t, s.Total, s2.Total, 1e-9)
	require.Zero(t, s2.Monthly)
	require.Zero(t, s2.Daily)
}

func TestSummarizeSubsetOrdering(t *testing.T) {
	t.Parallel()

	records := []expense.Record{
		rec("a", 10, expense.CategoryFood, "2024-03-05"),
		rec("b", 15, expense.CategoryOther, "2024-03-20"),
		rec("c", 99, expense.CategoryRent, "2023-12-31"),
	}
	s := Summarize(records, date(2024, time.March, 5))
	require.LessOrEqual(t, s.Daily, s.Monthly)
	require.LessOrEqual(t, s.Monthly, s.Total)
}

func TestSummarizeEmpty(t *testing.T) {
	t.Parallel()

	s := Summarize(nil, date(2024, time.February, 1))
	require.Equal(t, Summary{}, s)
}

func TestCategoryBreakdown(t *testing.T) {
	t.Parallel()

	records := []expense.Record{
		rec("rent", 1000, expense.CategoryRent, "2024-01-01"),
		rec("groceries", 50, expense.CategoryFood, "2024-01-15"),
		rec("lunch", 20, expense.CategoryFood, "2024-02-01"),
	}

	got := CategoryBreakdown(records)
	require.Len(t, got, 2)
	// declaration order: Food before Rent, regardless of magnitude
	require.Equal(t, expense.CategoryFood, got[0].Name)
	require.InDelta(t, 70, got[0].Value, 1e-9)
	require.Equal(t, expense.CategoryRent, got[1].Name)
	require.InDelta(t, 1000, got[1].Value, 1e-9)
	for _, ci := range got {
		require.NotEmpty(t, ci.Color)
		require.Positive(t, ci.Value)
	}

	// values cover the whole collection
	var sum float64
	for _, ci := range got {
		sum += ci.Value
	}
	require.InDelta(t, Summarize(records, date(2024, time.January, 1)).Total, sum, 1e-9)
}

func TestCategoryBreakdownEmpty(t *testing.T) {
	t.Parallel()

	require.Empty(t, CategoryBreakdown(nil))
}

func TestTopCategories(t *testing.T) {
	t.Parallel()

	insights := CategoryBreakdown([]expense.Record{
		rec("groceries", 70, expense.CategoryFood, "2024-01-15"),
		rec("rent", 1000, expense.CategoryRent, "2024-01-01"),
		rec("bus", 5, expense.CategoryTransport, "2024-01-02"),
	})

	top := TopCategories(insights, 2)
	require.Len(t, top, 2)
	require.Equal(t, expense.CategoryRent, top[0].Name)
	require.Equal(t, expense.CategoryFood, top[1].Name)

	// input order untouched
	require.Equal(t, expense.CategoryFood, insights[0].Name)
}

func TestTrailingMonthlyTrend(t *testing.T) {
	t.Parallel()

	records := []expense.Record{
		rec("rent", 1000, expense.CategoryRent, "2024-01-01"),
		rec("groceries", 50, expense.CategoryFood, "2024-01-15"),
		rec("lunch", 20, expense.CategoryFood, "2024-02-01"),
		rec("ancient", 999, expense.CategoryOther, "2020-05-05"), // outside window
	}

	got := TrailingMonthlyTrend(records, date(2024, time.February, 10), 6)
	require.Len(t, got, 6)
	require.Equal(t, "2023-09", got[0].Key)
	require.Equal(t, "2024-02", got[5].Key)
	require.InDelta(t, 1050, got[4].Amount, 1e-9)
	require.InDelta(t, 20, got[5].Amount, 1e-9)
	for i := 0; i < 4; i++ {
		require.Zero(t, got[i].Amount)
	}
	require.Equal(t, "Sep", got[0].Label)
	require.Equal(t, "Feb", got[5].Label)
}

func TestTrailingMonthlyTrendYearBoundary(t *testing.T) {
	t.Parallel()

	got := TrailingMonthlyTrend(nil, date(2024, time.March, 31), 6)
	keys := make([]string, 0, len(got))
	for _, p := range got {
		keys = append(keys, p.Key)
	}
	require.Equal(t, []string{"2023-10", "2023-11", "2023-12", "2024-01", "2024-02", "2024-03"}, keys)
	for _, p := range got {
		require.Zero(t, p.Amount)
	}
}

func TestTrailingMonthlyTrendDistinguishesYears(t *testing.T) {
	t.Parallel()

	// January of a prior year must not leak into this January's bucket.
	records := []expense.Record{
		rec("old jan", 500, expense.CategoryOther, "2023-01-10"),
		rec("new jan", 30, expense.CategoryOther, "2024-01-10"),
	}
	got := TrailingMonthlyTrend(records, date(2024, time.January, 20), 6)
	require.Equal(t, "2024-01", got[5].Key)
	require.InDelta(t, 30, got[5].Amount, 1e-9)
}
