package tui

import (
	"fmt"
	"strings"

	"github.com/charmbracelet/lipgloss"
)

type barPoint struct {
	label string
	value float64
	color lipgloss.Color
}

// renderBars draws a horizontal bar chart, one line per point, scaled to
// the largest value. format renders the numeric suffix.
func renderBars(points []barPoint, width int, format func(float64) string) string {
	if len(points) == 0 {
		return "(no data)"
	}
	maxV := 0.0
	maxLabel := 0
	for _, p := range points {
		if p.value > maxV {
			maxV = p.value
		}
		if len(p.label) > maxLabel {
			maxLabel = len(p.label)
		}
	}
	if maxV <= 0 {
		maxV = 1
	}
	barWidth := width - maxLabel - 14
	if barWidth < 8 {
		barWidth = 8
	}
	var lines []string
	for _, p := range points {
		w := int((p.value / maxV) * float64(barWidth))
		if w < 1 && p.value > 0 {
			w = 1
		}
		bar := lipgloss.NewStyle().Foreground(p.color).Render(strings.Repeat("█", w))
		lines = append(lines, fmt.Sprintf("%-*s %s %s", maxLabel, p.label, bar, format(p.value)))
	}
	return strings.Join(lines, "\n")
}
