package components

import (
	"strings"

	"github.com/theirongolddev/greencarbon/internal/report"
	"github.com/theirongolddev/greencarbon/internal/tui/theme"

	"github.com/charmbracelet/lipgloss"
)

// Sparkline renders a unicode sparkline from values.
func Sparkline(values []float64, color lipgloss.Color) string {
	if len(values) == 0 {
		return ""
	}

	blocks := []rune{'▁', '▂', '▃', '▄', '▅', '▆', '▇', '█'}

	peak := values[0]
	for _, v := range values[1:] {
		if v > peak {
			peak = v
		}
	}
	if peak == 0 {
		peak = 1
	}

	style := lipgloss.NewStyle().Foreground(color)

	var buf strings.Builder
	buf.Grow(len(values) * 4) // UTF-8 block chars are up to 3 bytes
	for _, v := range values {
		idx := int(v / peak * float64(len(blocks)-1))
		if idx >= len(blocks) {
			idx = len(blocks) - 1
		}
		if idx < 0 {
			idx = 0
		}
		buf.WriteRune(blocks[idx]) //nolint:gosec // bounds checked above
	}

	return style.Render(buf.String())
}

// EmissionTrend summarizes monthly emissions across cards as one line:
// label, sparkline, first and last month. Fewer than two cards render nothing.
func EmissionTrend(cards []report.Card) string {
	if len(cards) < 2 {
		return ""
	}
	t := theme.Active

	values := make([]float64, len(cards))
	for i, c := range cards {
		values[i] = c.CarbonKg
	}

	labelStyle := lipgloss.NewStyle().Foreground(t.TextMuted)
	rangeStyle := lipgloss.NewStyle().Foreground(t.TextDim)

	return labelStyle.Render("월별 "+report.LabelCarbon) + " " +
		Sparkline(values, t.BrandBright) + " " +
		rangeStyle.Render(cards[0].Month+" → "+cards[len(cards)-1].Month)
}
