package components

import (
	"strings"

	"github.com/theirongolddev/greencarbon/internal/tui/theme"

	"github.com/charmbracelet/lipgloss"
)

// RenderStatusBar renders the bottom bar: key hints on the left, endpoint on the right.
func RenderStatusBar(width int, hints, endpoint string) string {
	t := theme.Active

	style := lipgloss.NewStyle().
		Foreground(t.TextMuted).
		Width(width)

	left := " " + hints
	right := ""
	if endpoint != "" {
		right = "API: " + endpoint + " "
	}

	padding := width - lipgloss.Width(left) - lipgloss.Width(right)
	if padding < 1 {
		// Too narrow for both; keep the hints.
		return style.Render(left)
	}

	return style.Render(left + strings.Repeat(" ", padding) + right)
}

// SubmitButton renders the submit control. It reads LOADING... while a request is
// in flight and is dimmed when submission is not possible.
func SubmitButton(loading, enabled bool) string {
	t := theme.Active

	label := "RESULT"
	if loading {
		label = "LOADING..."
	}

	style := lipgloss.NewStyle().
		Padding(0, 3).
		Bold(true)
	if enabled && !loading {
		style = style.Foreground(t.Background).Background(t.Brand)
	} else {
		style = style.Foreground(t.TextDim).Background(t.Surface)
	}
	return style.Render(label)
}

// ErrorBox renders the single error message slot. Empty messages render nothing.
func ErrorBox(msg string, outerWidth int) string {
	if msg == "" {
		return ""
	}
	t := theme.Active

	return lipgloss.NewStyle().
		Border(lipgloss.RoundedBorder()).
		BorderForeground(t.Error).
		Foreground(t.Error).
		Width(outerWidth-2).
		Padding(0, 1).
		Render(msg)
}
