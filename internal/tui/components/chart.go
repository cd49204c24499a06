package components

import (
	"fmt"
	"math"
	"strings"

	"github.com/theirongolddev/mbudget/internal/cli"
	"github.com/theirongolddev/mbudget/internal/tui/theme"

	"github.com/charmbracelet/lipgloss"
)

// Bar is one row of an HBarChart.
type Bar struct {
	Label string
	Value float64
	Color lipgloss.Color
}

// HBarChart renders horizontal bars scaled to the largest value, each
// followed by its value with no decimals.
func HBarChart(bars []Bar, width int) string {
	if len(bars) == 0 {
		return ""
	}
	t := theme.Active

	labelW := 0
	valueW := 0
	peak := 0.0
	for _, b := range bars {
		labelW = max(labelW, lipgloss.Width(b.Label))
		valueW = max(valueW, len(cli.FormatMoney(b.Value)))
		if drawable(b.Value) {
			peak = max(peak, b.Value)
		}
	}
	if peak <= 0 {
		peak = 1
	}

	barW := width - labelW - valueW - 2
	if barW < 5 {
		barW = 5
	}

	labelStyle := lipgloss.NewStyle().Foreground(t.TextMuted).Background(t.Surface)
	valueStyle := lipgloss.NewStyle().Foreground(t.TextPrimary).Background(t.Surface)
	spaceStyle := lipgloss.NewStyle().Background(t.Surface)

	lines := make([]string, 0, len(bars))
	for _, b := range bars {
		n := 0
		switch {
		case math.IsInf(b.Value, 1):
			n = barW
		case drawable(b.Value) && b.Value > 0:
			n = min(int(b.Value/peak*float64(barW)), barW)
		}

		barStyle := lipgloss.NewStyle().Foreground(b.Color).Background(t.Surface)
		lines = append(lines,
			labelStyle.Render(fmt.Sprintf("%-*s", labelW, b.Label))+
				spaceStyle.Render(" ")+
				barStyle.Render(strings.Repeat("█", n))+
				spaceStyle.Render(strings.Repeat(" ", barW-n)+" ")+
				valueStyle.Render(fmt.Sprintf("%*s", valueW, cli.FormatMoney(b.Value))))
	}
	return strings.Join(lines, "\n")
}

func drawable(v float64) bool {
	return !math.IsNaN(v) && !math.IsInf(v, 0)
}
