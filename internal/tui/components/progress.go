package components

import (
	"fmt"
	"math"

	"github.com/theirongolddev/mbudget/internal/tui/theme"

	"github.com/charmbracelet/bubbles/progress"
	"github.com/charmbracelet/lipgloss"
)

// ShareBar renders the brand's share of a whole (0-1) as a bar followed by
// the percentage. Values outside 0-1 are clamped for drawing only.
func ShareBar(label string, share float64, labelW, barWidth int) string {
	t := theme.Active

	drawn := share
	if math.IsNaN(drawn) || drawn < 0 {
		drawn = 0
	}
	if drawn > 1 {
		drawn = 1
	}
	if barWidth < 4 {
		barWidth = 4
	}

	bar := progress.New(
		progress.WithSolidFill(string(ColorForShare(share))),
		progress.WithWidth(barWidth),
		progress.WithoutPercentage(),
	)
	bar.EmptyColor = string(t.TextDim)

	labelStyle := lipgloss.NewStyle().Foreground(t.TextMuted).Background(t.Surface)
	pctStyle := lipgloss.NewStyle().Foreground(ColorForShare(share)).Background(t.Surface).Bold(true)
	spaceStyle := lipgloss.NewStyle().Background(t.Surface)

	return labelStyle.Render(fmt.Sprintf("%-*s", labelW, label)) +
		spaceStyle.Render(" ") +
		bar.ViewAs(drawn) +
		spaceStyle.Render(" ") +
		pctStyle.Render(fmt.Sprintf("%5.1f%%", share*100))
}

// ColorForShare colors a share of voice: red once the brand would need the
// whole market, orange past half of it.
func ColorForShare(share float64) lipgloss.Color {
	t := theme.Active
	switch {
	case share >= 1:
		return t.Red
	case share >= 0.5:
		return t.Orange
	default:
		return t.Accent
	}
}
