// Package tui implements the interactive terminal interface: three tabs
// (Insights, Transactions, Analysis), a modal create/edit form, search and
// category filtering, and CSV export.
package tui

import (
	"context"
	"fmt"
	"strings"
	"time"
	"unicode/utf8"

	tea "github.com/charmbracelet/bubbletea"
	"github.com/charmbracelet/lipgloss"

	"github.com/jask/financeflow/internal/analytics"
	"github.com/jask/financeflow/internal/config"
	"github.com/jask/financeflow/internal/expense"
	"github.com/jask/financeflow/internal/export"
)

const trendWindow = 6

// App ties the record store, filter state and views together. Every store
// mutation runs synchronously inside Update; there is exactly one writer.
type App struct {
	ctx   context.Context
	cfg   config.Config
	store *expense.Store

	state appState
	modal modalState

	records  []expense.Record // full snapshot, newest-created-first
	filtered []expense.Record // Transactions tab subset

	searchTerm string
	searching  bool
	filterIdx  int // 0 = All, then Categories() order
	cursor     int

	form      *form
	confirmID string

	status string
	width  int
	height int

	now func() time.Time
}

type appState string

const (
	viewInsights     appState = "insights"
	viewTransactions appState = "transactions"
	viewAnalysis     appState = "analysis"
)

var tabOrder = []appState{viewInsights, viewTransactions, viewAnalysis}

type modalState string

const (
	modalNone          modalState = ""
	modalForm          modalState = "form"
	modalConfirmDelete modalState = "confirmDelete"
)

// New builds the app over an already-loaded store.
func New(ctx context.Context, cfg config.Config, store *expense.Store) *App {
	a := &App{
		ctx:   ctx,
		cfg:   cfg,
		store: store,
		state: viewInsights,
		now:   time.Now,
	}
	a.refresh()
	return a
}

func (a *App) Init() tea.Cmd { return nil }

// refresh re-snapshots the store and recomputes the filtered subset.
// Aggregations always read a.records; the filter only drives the
// Transactions list.
func (a *App) refresh() {
	a.records = a.store.Records()
	a.filtered = expense.Filter(a.records, a.searchTerm, a.filterCategory())
	if a.cursor >= len(a.filtered) {
		a.cursor = 0
	}
}

func (a *App) filterCategory() expense.Category {
	if a.filterIdx == 0 {
		return expense.CategoryFilterAll
	}
	return expense.Categories()[a.filterIdx-1].Label
}

func (a *App) Update(msg tea.Msg) (tea.Model, tea.Cmd) {
	switch m := msg.(type) {
	case tea.WindowSizeMsg:
		a.width = m.Width
		a.height = m.Height
	case tea.KeyMsg:
		if a.modal != modalNone {
			return a.handleModalKey(m)
		}
		if a.searching {
			return a.handleSearchKey(m)
		}
		return a.handleMainKey(m)
	}
	return a, nil
}

func (a *App) handleMainKey(m tea.KeyMsg) (tea.Model, tea.Cmd) {
	switch m.String() {
	case "q", "ctrl+c":
		return a, tea.Quit
	case "tab":
		a.state = nextTab(a.state, 1)
		a.status = ""
	case "shift+tab":
		a.state = nextTab(a.state, -1)
		a.status = ""
	case "1":
		a.state = viewInsights
	case "2":
		a.state = viewTransactions
	case "3":
		a.state = viewAnalysis
	case "a":
		a.form = newForm(nil, a.now().Format(expense.DateLayout))
		a.modal = modalForm
		return a, textCursorBlink()
	case "x":
		return a, a.exportCSV()
	case "$":
		a.cycleCurrency()
	case "/":
		if a.state == viewTransactions {
			a.searching = true
			a.status = ""
		}
	case "c":
		if a.state == viewTransactions {
			a.filterIdx = (a.filterIdx + 1) % (len(expense.Categories()) + 1)
			a.refresh()
		}
	case "up", "k":
		if a.state == viewTransactions && a.cursor > 0 {
			a.cursor--
		}
	case "down", "j":
		if a.state == viewTransactions && a.cursor < len(a.filtered)-1 {
			a.cursor++
		}
	case "e", "enter":
		if a.state == viewTransactions && len(a.filtered) > 0 {
			rec := a.filtered[a.cursor]
			a.form = newForm(&rec, a.now().Format(expense.DateLayout))
			a.modal = modalForm
			return a, textCursorBlink()
		}
	case "d", "backspace", "delete":
		if a.state == viewTransactions && len(a.filtered) > 0 {
			a.confirmID = a.filtered[a.cursor].ID
			a.modal = modalConfirmDelete
		}
	}
	return a, nil
}

func (a *App) handleSearchKey(m tea.KeyMsg) (tea.Model, tea.Cmd) {
	switch m.Type {
	case tea.KeyEsc:
		a.searching = false
		a.searchTerm = ""
		a.refresh()
	case tea.KeyEnter:
		a.searching = false
	case tea.KeyBackspace, tea.KeyCtrlH:
		if a.searchTerm != "" {
			_, size := utf8.DecodeLastRuneInString(a.searchTerm)
			a.searchTerm = a.searchTerm[:len(a.searchTerm)-size]
			a.refresh()
		}
	case tea.KeySpace:
		a.searchTerm += " "
		a.refresh()
	case tea.KeyRunes:
		a.searchTerm += string(m.Runes)
		a.refresh()
	case tea.KeyCtrlC:
		return a, tea.Quit
	}
	return a, nil
}

func (a *App) handleModalKey(m tea.KeyMsg) (tea.Model, tea.Cmd) {
	switch a.modal {
	case modalConfirmDelete:
		switch m.String() {
		case "y", "Y":
			id := a.confirmID
			a.modal = modalNone
			a.confirmID = ""
			if err := a.store.Remove(a.ctx, id); err != nil {
				a.status = "error: " + err.Error()
			} else {
				a.status = "expense deleted"
			}
			a.refresh()
		case "n", "N", "esc":
			a.modal = modalNone
			a.confirmID = ""
		}
	case modalForm:
		switch m.Type {
		case tea.KeyEsc:
			a.modal = modalNone
			a.form = nil
		case tea.KeyEnter:
			return a, a.submitForm()
		default:
			if m.String() == "ctrl+c" {
				return a, tea.Quit
			}
			return a, a.form.update(m)
		}
	}
	return a, nil
}

// submitForm validates and applies the form as an add or a full replace.
func (a *App) submitForm() tea.Cmd {
	draft, err := a.form.draft()
	if err != nil {
		a.form.errText = err.Error()
		return nil
	}
	if a.form.editing != nil {
		rec := *a.form.editing
		rec.Title = draft.Title
		rec.Amount = draft.Amount
		rec.Category = draft.Category
		rec.Date = draft.Date
		if err := a.store.Update(a.ctx, rec); err != nil {
			a.status = "error: " + err.Error()
		} else {
			a.status = "expense updated"
		}
	} else {
		if _, err := a.store.Add(a.ctx, draft); err != nil {
			a.status = "error: " + err.Error()
		} else {
			a.status = "expense added"
		}
	}
	a.modal = modalNone
	a.form = nil
	a.refresh()
	return nil
}

// currencySymbols are the display symbols the $ key cycles through.
var currencySymbols = []string{"$", "€", "£", "¥"}

// cycleCurrency advances the display currency symbol and saves the
// preference so it survives restarts. An unknown configured symbol
// restarts the cycle at the first entry.
func (a *App) cycleCurrency() {
	next := currencySymbols[0]
	for i, s := range currencySymbols {
		if s == a.cfg.UI.CurrencySymbol {
			next = currencySymbols[(i+1)%len(currencySymbols)]
			break
		}
	}
	a.cfg.UI.CurrencySymbol = next
	if err := config.Save(a.cfg); err != nil {
		a.status = "error: " + err.Error()
		return
	}
	a.status = "currency symbol set to " + next
}

// exportCSV writes the full, unfiltered collection.
func (a *App) exportCSV() tea.Cmd {
	path, err := export.WriteFile(a.records, a.cfg.Export.Dir, a.now())
	if err != nil {
		a.status = "error: " + err.Error()
		return nil
	}
	a.status = "exported " + path
	return nil
}

func nextTab(cur appState, delta int) appState {
	for i, s := range tabOrder {
		if s == cur {
			return tabOrder[(i+delta+len(tabOrder))%len(tabOrder)]
		}
	}
	return tabOrder[0]
}

// ---------------------------------------------------------------------------
// Views
// ---------------------------------------------------------------------------

func (a *App) View() string {
	body := a.renderHeader() + "\n\n"
	switch a.state {
	case viewTransactions:
		body += a.renderTransactions()
	case viewAnalysis:
		body += a.renderAnalysis()
	default:
		body += a.renderInsights()
	}
	if a.modal != modalNone {
		body += "\n\n" + a.renderModal()
	}
	if a.status != "" {
		body += "\n" + statusStyle.Render(a.status)
	}
	body += "\n" + subtleStyle.Render(a.footerHelp())
	return body
}

func (a *App) renderHeader() string {
	labels := map[appState]string{
		viewInsights:     "1 Insights",
		viewTransactions: "2 Transactions",
		viewAnalysis:     "3 Analysis",
	}
	var parts []string
	for _, s := range tabOrder {
		if s == a.state {
			parts = append(parts, tabActive.Render(labels[s]))
		} else {
			parts = append(parts, tabInactive.Render(labels[s]))
		}
	}
	return titleStyle.Render("FinanceFlow") + "  " + strings.Join(parts, "  ")
}

func (a *App) renderInsights() string {
	s := analytics.Summarize(a.records, a.now())
	out := titleStyle.Render("Overview") + "\n"
	out += fmt.Sprintf("Total spent: %s   This month: %s   Today: %s\n\n",
		a.money(s.Total), a.money(s.Monthly), a.money(s.Daily))

	out += titleStyle.Render("Spending Trend") + "\n"
	trend := analytics.TrailingMonthlyTrend(a.records, a.now(), trendWindow)
	points := make([]barPoint, 0, len(trend))
	for _, p := range trend {
		points = append(points, barPoint{label: p.Label, value: p.Amount, color: colorAccent})
	}
	out += renderBars(points, a.contentWidth(), a.money) + "\n\n"

	out += titleStyle.Render("Quick History") + "\n"
	recent := a.records
	if len(recent) > 5 {
		recent = recent[:5]
	}
	if len(recent) == 0 {
		out += subtleStyle.Render("(no expenses yet - press a to add one)")
	} else {
		out += a.renderRows(recent, -1)
	}
	return out
}

func (a *App) renderTransactions() string {
	search := a.searchTerm
	if a.searching {
		search += "▎"
	}
	out := fmt.Sprintf("Search: %-30s Category: %s\n\n", search, a.filterLabel())
	if len(a.filtered) == 0 {
		out += subtleStyle.Render("No matching expenses.")
		if suggestions := expense.SuggestTitles(a.records, a.searchTerm, 3); len(suggestions) > 0 {
			out += subtleStyle.Render("  Did you mean: " + strings.Join(suggestions, ", ") + "?")
		}
		return out
	}
	out += a.renderRows(a.filtered, a.cursor)
	return out
}

func (a *App) renderAnalysis() string {
	insights := analytics.CategoryBreakdown(a.records)
	out := titleStyle.Render("Category Allocation") + "\n"
	if len(insights) == 0 {
		return out + subtleStyle.Render("Add some expenses to see visual insights")
	}
	points := make([]barPoint, 0, len(insights))
	for _, ci := range insights {
		points = append(points, barPoint{label: string(ci.Name), value: ci.Value, color: lipgloss.Color(ci.Color)})
	}
	out += renderBars(points, a.contentWidth(), a.money) + "\n\n"

	out += titleStyle.Render("Top Categories") + "\n"
	for _, ci := range analytics.TopCategories(insights, 3) {
		out += fmt.Sprintf("%s %-16s %s\n", categoryStyle(ci.Name).Render("●"), ci.Name, a.money(ci.Value))
	}
	return strings.TrimRight(out, "\n")
}

func (a *App) renderRows(records []expense.Record, cursor int) string {
	var b strings.Builder
	for i, r := range records {
		marker := " "
		line := fmt.Sprintf("%s  %-32s %10s  %s",
			a.formatDate(r.Date), truncate(r.Title, 32), a.money(r.Amount),
			categoryStyle(r.Category).Render(string(r.Category)))
		if i == cursor {
			marker = "▶"
			line = selectedStyle.Render(line)
		}
		fmt.Fprintf(&b, "%s %s\n", marker, line)
	}
	return strings.TrimRight(b.String(), "\n")
}

func (a *App) renderModal() string {
	switch a.modal {
	case modalForm:
		return a.form.view()
	case modalConfirmDelete:
		return titleStyle.Render("Delete this expense?") + "\nThis cannot be undone.\n[y] Yes  [n] No"
	default:
		return ""
	}
}

func (a *App) footerHelp() string {
	if a.modal != modalNone {
		return ""
	}
	if a.searching {
		return "[enter] Apply  [esc] Clear search"
	}
	switch a.state {
	case viewTransactions:
		return "[/] Search  [c] Filter category  [a] Add  [enter] Edit  [d] Delete  [x] Export CSV  [tab] Next tab  [q] Quit"
	default:
		return "[a] Add expense  [x] Export CSV  [$] Currency  [tab] Next tab  [q] Quit"
	}
}

func (a *App) filterLabel() string {
	if a.filterIdx == 0 {
		return "All"
	}
	c := expense.Categories()[a.filterIdx-1].Label
	return categoryStyle(c).Render(string(c))
}

func (a *App) money(v float64) string {
	return fmt.Sprintf("%s%.2f", a.cfg.UI.CurrencySymbol, v)
}

// formatDate re-renders a stored YYYY-MM-DD date in the configured display
// format, falling back to the raw value if it does not parse.
func (a *App) formatDate(date string) string {
	t, err := time.Parse(expense.DateLayout, date)
	if err != nil {
		return date
	}
	layout := a.cfg.UI.DateFormat
	if layout == "" {
		layout = expense.DateLayout
	}
	return t.Format(layout)
}

func (a *App) contentWidth() int {
	if a.width == 0 {
		return 80
	}
	w := a.width - 4
	if w < 40 {
		w = 40
	}
	return w
}

// truncate shortens s to at most n runes, ellipsizing when it cuts.
func truncate(s string, n int) string {
	r := []rune(s)
	if len(r) <= n {
		return s
	}
	if n <= 1 {
		return string(r[:n])
	}
	return string(r[:n-1]) + "…"
}
