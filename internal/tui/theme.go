package tui

import (
	"github.com/charmbracelet/lipgloss"

	"github.com/jask/financeflow/internal/expense"
)

const (
	colorText    lipgloss.Color = "#cdd6f4"
	colorSubtle  lipgloss.Color = "#7f849c"
	colorAccent  lipgloss.Color = "#89b4fa"
	colorSuccess lipgloss.Color = "#a6e3a1"
	colorError   lipgloss.Color = "#f38ba8"
)

var (
	titleStyle    = lipgloss.NewStyle().Bold(true).Underline(true)
	tabActive     = lipgloss.NewStyle().Bold(true).Foreground(colorAccent).Underline(true)
	tabInactive   = lipgloss.NewStyle().Foreground(colorSubtle)
	subtleStyle   = lipgloss.NewStyle().Foreground(colorSubtle)
	errorStyle    = lipgloss.NewStyle().Foreground(colorError)
	statusStyle   = lipgloss.NewStyle().Foreground(colorSuccess)
	selectedStyle = lipgloss.NewStyle().Bold(true)
)

// categoryStyle colors category labels and chart bars with the category's
// palette color from the static table.
func categoryStyle(c expense.Category) lipgloss.Style {
	return lipgloss.NewStyle().Foreground(lipgloss.Color(expense.CategoryColor(c)))
}
