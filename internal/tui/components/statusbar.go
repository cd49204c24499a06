package components

import (
	"strings"

	"github.com/theirongolddev/mbudget/internal/tui/theme"

	"github.com/charmbracelet/lipgloss"
)

// Flash is a transient status message.
type Flash struct {
	Text  string
	Error bool
}

// RenderStatusBar renders the bottom status bar: key hints on the left and
// the current flash message, if any, on the right.
func RenderStatusBar(width int, hints string, flash Flash) string {
	t := theme.Active

	style := lipgloss.NewStyle().
		Foreground(t.TextMuted).
		Background(t.Surface).
		Width(width)

	left := " " + hints
	right := ""
	if flash.Text != "" {
		color := t.GreenBright
		if flash.Error {
			color = t.Red
		}
		right = lipgloss.NewStyle().
			Foreground(color).
			Background(t.Surface).
			Bold(true).
			Render(flash.Text + " ")
	}

	// Pad middle
	padding := width - lipgloss.Width(left) - lipgloss.Width(right)
	if padding < 0 {
		padding = 0
	}

	return style.Render(left + strings.Repeat(" ", padding) + right)
}
