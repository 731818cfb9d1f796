package components

import (
	"github.com/theirongolddev/greencarbon/internal/report"
	"github.com/theirongolddev/greencarbon/internal/tui/theme"

	"github.com/charmbracelet/bubbles/progress"
	"github.com/charmbracelet/lipgloss"
)

// ScoreGauge renders the carbon score (0-100) as a labeled bar exactly width cells wide.
func ScoreGauge(score float64, width int) string {
	t := theme.Active

	pct := score / 100
	if pct < 0 {
		pct = 0
	}
	if pct > 1 {
		pct = 1
	}

	label := report.LabelScore
	barW := width - lipgloss.Width(label) - 1
	if barW < 4 {
		barW = 4
	}

	bar := progress.New(
		progress.WithSolidFill(string(t.Brand)),
		progress.WithWidth(barW),
		progress.WithoutPercentage(),
	)
	bar.EmptyColor = string(t.TextDim)

	labelStyle := lipgloss.NewStyle().Foreground(t.TextMuted)

	return labelStyle.Render(label) + " " + bar.ViewAs(pct)
}
