// Package components provides reusable terminal widgets for the greencarbon UI.
package components

import (
	"strings"

	"github.com/theirongolddev/greencarbon/internal/report"
	"github.com/theirongolddev/greencarbon/internal/tui/theme"

	"github.com/charmbracelet/lipgloss"
)

// LayoutRow distributes totalWidth into n widths that sum to exactly totalWidth.
// First items absorb the remainder from integer division.
func LayoutRow(totalWidth, n int) []int {
	if n <= 0 {
		return nil
	}
	base := totalWidth / n
	remainder := totalWidth % n
	widths := make([]int, n)
	for i := range widths {
		widths[i] = base
		if i < remainder {
			widths[i]++
		}
	}
	return widths
}

// MetricCard renders a small KPI tile with a label over a value.
// outerWidth is the total rendered width including border.
func MetricCard(label, value string, outerWidth int) string {
	t := theme.Active

	contentWidth := outerWidth - 2 // subtract border
	if contentWidth < 10 {
		contentWidth = 10
	}

	cardStyle := lipgloss.NewStyle().
		Border(lipgloss.RoundedBorder()).
		BorderForeground(t.Border).
		Width(contentWidth).
		Padding(0, 1)

	labelStyle := lipgloss.NewStyle().
		Foreground(t.TextMuted)

	valueStyle := lipgloss.NewStyle().
		Foreground(t.TextPrimary).
		Bold(true)

	return cardStyle.Render(labelStyle.Render(label) + "\n" + valueStyle.Render(value))
}

// MetricCardRow renders KPI tiles side by side; tile widths sum to totalWidth.
func MetricCardRow(kpis []report.KPI, totalWidth int) string {
	if len(kpis) == 0 {
		return ""
	}

	widths := LayoutRow(totalWidth, len(kpis))

	rendered := make([]string, 0, len(kpis))
	for i, k := range kpis {
		rendered = append(rendered, MetricCard(k.Label, k.Value, widths[i]))
	}

	return lipgloss.JoinHorizontal(lipgloss.Top, rendered...)
}

// CardInnerWidth returns the usable text width inside a card
// given its outer width (subtracts border + padding).
func CardInnerWidth(outerWidth int) int {
	w := outerWidth - 4 // 2 border + 2 padding
	if w < 10 {
		w = 10
	}
	return w
}

// ResultCard draws one month: badge and cluster, KPI tiles, then recommendations.
func ResultCard(c report.Card, outerWidth int) string {
	t := theme.Active
	inner := CardInnerWidth(outerWidth)

	badgeStyle := lipgloss.NewStyle().
		Foreground(t.Brand).
		Background(t.BrandSoft).
		Bold(true).
		Padding(0, 1)
	clusterStyle := lipgloss.NewStyle().Foreground(t.TextMuted)
	headingStyle := lipgloss.NewStyle().Foreground(t.Brand).Bold(true)
	catStyle := lipgloss.NewStyle().Foreground(t.BrandBright)
	actionStyle := lipgloss.NewStyle().Foreground(t.TextPrimary)
	detailStyle := lipgloss.NewStyle().Foreground(t.TextMuted).Width(inner - 4)

	var b strings.Builder
	b.WriteString(badgeStyle.Render(c.Month))
	b.WriteString("  ")
	b.WriteString(clusterStyle.Render(c.Cluster))
	b.WriteString("\n")
	b.WriteString(MetricCardRow(c.KPIs, inner))
	b.WriteString("\n")
	b.WriteString(ScoreGauge(c.Score, inner))

	if len(c.Recommendations) > 0 {
		b.WriteString("\n")
		b.WriteString(headingStyle.Render("🌿 " + report.RecommendationsTitle))
		for _, r := range c.Recommendations {
			b.WriteString("\n")
			b.WriteString(catStyle.Render("[" + r.Category + "]"))
			b.WriteString(" ")
			b.WriteString(actionStyle.Render(r.Action))
			b.WriteString("\n    ")
			b.WriteString(detailStyle.Render(r.Detail))
		}
	}

	cardStyle := lipgloss.NewStyle().
		Border(lipgloss.RoundedBorder()).
		BorderForeground(t.Border).
		Width(outerWidth-2).
		Padding(0, 1)

	return cardStyle.Render(b.String())
}

// ResultSection draws the results heading and every card stacked vertically.
// It returns "" when there are no cards, so nothing is shown.
func ResultSection(cards []report.Card, outerWidth int) string {
	if len(cards) == 0 {
		return ""
	}
	t := theme.Active

	titleStyle := lipgloss.NewStyle().Foreground(t.Brand).Bold(true)

	parts := make([]string, 0, len(cards)+2)
	parts = append(parts, titleStyle.Render("🌿 "+report.SectionTitle))
	if trend := EmissionTrend(cards); trend != "" {
		parts = append(parts, trend)
	}
	for _, c := range cards {
		parts = append(parts, ResultCard(c, outerWidth))
	}
	return lipgloss.JoinVertical(lipgloss.Left, parts...)
}
