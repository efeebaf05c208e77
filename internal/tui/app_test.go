package tui

import (
	"context"
	"path/filepath"
	"testing"
	"time"
	"unicode/utf8"

	tea "github.com/charmbracelet/bubbletea"
	"github.com/stretchr/testify/require"

	"github.com/jask/financeflow/internal/config"
	"github.com/jask/financeflow/internal/expense"
)

type memKV struct {
	values map[string]string
}

func (m *memKV) Get(_ context.Context, key string) (string, bool, error) {
	v, ok := m.values[key]
	return v, ok, nil
}

func (m *memKV) Set(_ context.Context, key, value string) error {
	m.values[key] = value
	return nil
}

func newTestApp(t *testing.T) *App {
	t.Helper()
	ctx := context.Background()
	store := expense.NewStore(&memKV{values: map[string]string{}})
	require.NoError(t, store.Load(ctx))
	cfg := config.Config{
		UI:     config.UIConfig{CurrencySymbol: "$", DateFormat: "2006-01-02"},
		Export: config.ExportConfig{Dir: t.TempDir()},
	}
	a := New(ctx, cfg, store)
	a.now = func() time.Time {
		return time.Date(2024, time.February, 1, 10, 0, 0, 0, time.UTC)
	}
	return a
}

func press(t *testing.T, a *App, msgs ...tea.Msg) *App {
	t.Helper()
	for _, msg := range msgs {
		model, _ := a.Update(msg)
		var ok bool
		a, ok = model.(*App)
		require.True(t, ok)
	}
	return a
}

func runes(s string) tea.Msg {
	return tea.KeyMsg{Type: tea.KeyRunes, Runes: []rune(s)}
}

func key(k tea.KeyType) tea.Msg {
	return tea.KeyMsg{Type: k}
}

func addExpense(t *testing.T, a *App, title, amount string) *App {
	t.Helper()
	a = press(t, a, runes("a"))
	require.Equal(t, modalForm, a.modal)
	a = press(t, a, runes(title), key(tea.KeyTab), runes(amount), key(tea.KeyEnter))
	require.Equal(t, modalNone, a.modal)
	return a
}

func TestTabSwitching(t *testing.T) {
	t.Parallel()

	a := newTestApp(t)
	require.Equal(t, viewInsights, a.state)

	a = press(t, a, key(tea.KeyTab))
	require.Equal(t, viewTransactions, a.state)
	a = press(t, a, key(tea.KeyTab))
	require.Equal(t, viewAnalysis, a.state)
	a = press(t, a, key(tea.KeyTab))
	require.Equal(t, viewInsights, a.state)

	a = press(t, a, runes("3"))
	require.Equal(t, viewAnalysis, a.state)
	a = press(t, a, key(tea.KeyShiftTab))
	require.Equal(t, viewTransactions, a.state)
}

func TestAddExpenseThroughForm(t *testing.T) {
	t.Parallel()

	a := newTestApp(t)
	a = addExpense(t, a, "Coffee", "4.50")

	require.Equal(t, "expense added", a.status)
	require.Len(t, a.records, 1)
	rec := a.records[0]
	require.Equal(t, "Coffee", rec.Title)
	require.InDelta(t, 4.5, rec.Amount, 1e-9)
	require.Equal(t, expense.CategoryOther, rec.Category) // form default
	require.Equal(t, "2024-02-01", rec.Date)              // prefilled with today
}

func TestFormRejectsInvalidAmount(t *testing.T) {
	t.Parallel()

	a := newTestApp(t)
	a = press(t, a, runes("a"), runes("Coffee"), key(tea.KeyTab), runes("0"), key(tea.KeyEnter))

	// form stays open with the validation error, nothing stored
	require.Equal(t, modalForm, a.modal)
	require.NotEmpty(t, a.form.errText)
	require.Empty(t, a.records)
}

func TestFormRejectsNonFiniteAmount(t *testing.T) {
	t.Parallel()

	for _, input := range []string{"nan", "inf", "+Inf"} {
		a := newTestApp(t)
		a = press(t, a, runes("a"), runes("Coffee"), key(tea.KeyTab), runes(input), key(tea.KeyEnter))

		// parses as a float but must never reach the store
		require.Equal(t, modalForm, a.modal, input)
		require.NotEmpty(t, a.form.errText, input)
		require.Empty(t, a.records, input)
	}
}

func TestEditExpense(t *testing.T) {
	t.Parallel()

	a := newTestApp(t)
	a = addExpense(t, a, "Coffee", "4.50")
	created := a.records[0].CreatedAt

	a = press(t, a, runes("2"), key(tea.KeyEnter))
	require.Equal(t, modalForm, a.modal)
	require.NotNil(t, a.form.editing)

	a = press(t, a, runes(" beans"), key(tea.KeyEnter))
	require.Len(t, a.records, 1)
	require.Equal(t, "Coffee beans", a.records[0].Title)
	require.Equal(t, created, a.records[0].CreatedAt)
}

func TestDeleteRequiresConfirmation(t *testing.T) {
	t.Parallel()

	a := newTestApp(t)
	a = addExpense(t, a, "Coffee", "4.50")

	a = press(t, a, runes("2"), runes("d"))
	require.Equal(t, modalConfirmDelete, a.modal)

	// declining keeps the record
	a = press(t, a, runes("n"))
	require.Equal(t, modalNone, a.modal)
	require.Len(t, a.records, 1)

	a = press(t, a, runes("d"), runes("y"))
	require.Equal(t, "expense deleted", a.status)
	require.Empty(t, a.records)
}

func TestSearchFiltersTransactions(t *testing.T) {
	t.Parallel()

	a := newTestApp(t)
	a = addExpense(t, a, "Coffee", "4.50")
	a = addExpense(t, a, "Train ticket", "12")

	a = press(t, a, runes("2"), runes("/"), runes("cof"), key(tea.KeyEnter))
	require.Len(t, a.filtered, 1)
	require.Equal(t, "Coffee", a.filtered[0].Title)
	require.Len(t, a.records, 2) // aggregation snapshot untouched

	// esc clears the search
	a = press(t, a, runes("/"), key(tea.KeyEsc))
	require.Len(t, a.filtered, 2)
}

func TestSearchBackspaceRemovesWholeRunes(t *testing.T) {
	t.Parallel()

	a := newTestApp(t)
	a = addExpense(t, a, "Café", "4.50")

	a = press(t, a, runes("2"), runes("/"), runes("café"), key(tea.KeyBackspace))
	require.Equal(t, "caf", a.searchTerm)
	require.True(t, utf8.ValidString(a.searchTerm))
	require.Len(t, a.filtered, 1)

	a = press(t, a, key(tea.KeyBackspace), key(tea.KeyBackspace), key(tea.KeyBackspace))
	require.Empty(t, a.searchTerm)
}

func TestTruncateCountsRunes(t *testing.T) {
	t.Parallel()

	require.Equal(t, "日本語の…", truncate("日本語のタイトル", 5))
	require.Equal(t, "Café", truncate("Café", 4))
	require.True(t, utf8.ValidString(truncate("日本語のタイトル", 3)))
}

func TestCurrencyKeyCyclesAndSaves(t *testing.T) {
	t.Setenv("FINANCEFLOW_CONFIG", filepath.Join(t.TempDir(), "config.toml"))

	a := newTestApp(t)
	a = press(t, a, runes("$"))
	require.Equal(t, "€", a.cfg.UI.CurrencySymbol)
	require.Equal(t, "currency symbol set to €", a.status)

	// the preference survives a reload
	reloaded, err := config.Load()
	require.NoError(t, err)
	require.Equal(t, "€", reloaded.UI.CurrencySymbol)

	a = press(t, a, runes("$"))
	require.Equal(t, "£", a.cfg.UI.CurrencySymbol)
}

func TestCategoryFilterCycling(t *testing.T) {
	t.Parallel()

	a := newTestApp(t)
	require.Equal(t, expense.CategoryFilterAll, a.filterCategory())

	a = press(t, a, runes("2"), runes("c"))
	require.Equal(t, expense.CategoryFood, a.filterCategory())

	for i := 0; i < len(expense.Categories()); i++ {
		a = press(t, a, runes("c"))
	}
	require.Equal(t, expense.CategoryFilterAll, a.filterCategory())
}

func TestExportWritesCSV(t *testing.T) {
	t.Parallel()

	a := newTestApp(t)
	a = addExpense(t, a, "Coffee", "4.50")

	a = press(t, a, runes("x"))
	require.Contains(t, a.status, "expenses_2024-02-01.csv")
}

func TestViewSmoke(t *testing.T) {
	t.Parallel()

	a := newTestApp(t)
	a = addExpense(t, a, "Coffee", "4.50")

	for _, state := range tabOrder {
		a.state = state
		view := a.View()
		require.Contains(t, view, "FinanceFlow")
		require.NotEmpty(t, view)
	}

	a.state = viewInsights
	require.Contains(t, a.View(), "Quick History")
	a.state = viewAnalysis
	require.Contains(t, a.View(), "Top Categories")
}
