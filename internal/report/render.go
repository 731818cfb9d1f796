// Package report projects prediction results into display cards.
package report

import (
	"golang.org/x/text/language"

	"github.com/theirongolddev/greencarbon/internal/model"
)

// Section and tile labels.
const (
	SectionTitle         = "분석 결과"
	RecommendationsTitle = "친환경 소비 방법 추천"
	LabelTotalSpend      = "총 지출"
	LabelCarbon          = "배출량"
	LabelScore           = "탄소 점수"
)

// KPI is one labeled value tile on a card.
type KPI struct {
	Label string
	Value string
}

// RecommendationLine is one rendered recommendation. Index is its position in the
// month's list and serves as its key.
type RecommendationLine struct {
	Index    int
	Category string
	Action   string
	Detail   string
}

// Card is the display form of one MonthResult. Key is the month.
type Card struct {
	Key             string
	Month           string
	Cluster         string
	KPIs            []KPI
	Recommendations []RecommendationLine

	// Unformatted values for gauges and trend lines.
	CarbonKg float64
	Score    float64
}

// Renderer formats numbers for one locale. The zero value is not usable; use NewRenderer.
type Renderer struct {
	tag language.Tag
}

// NewRenderer returns a Renderer for tag.
func NewRenderer(tag language.Tag) Renderer {
	return Renderer{tag: tag}
}

// Render projects results into one card per month, preserving order.
// An empty input yields nil: there is no results section to show.
func (r Renderer) Render(results []model.MonthResult) []Card {
	if len(results) == 0 {
		return nil
	}

	cards := make([]Card, 0, len(results))
	for _, m := range results {
		cards = append(cards, r.card(m))
	}
	return cards
}

func (r Renderer) card(m model.MonthResult) Card {
	recs := make([]RecommendationLine, 0, len(m.Recommendations))
	for i, rec := range m.Recommendations {
		detail := "예상절감 " + Quantity(r.tag, rec.ExpectedReductionKg) + " kg"
		if rec.Tip != "" {
			detail += " · " + rec.Tip
		}
		recs = append(recs, RecommendationLine{
			Index:    i,
			Category: rec.Category,
			Action:   rec.Action,
			Detail:   detail,
		})
	}

	return Card{
		Key:     m.Month,
		Month:   m.Month,
		Cluster: m.ClusterNameHint,
		KPIs: []KPI{
			{Label: LabelTotalSpend, Value: Quantity(r.tag, m.TotalAmt) + " 원"},
			{Label: LabelCarbon, Value: Quantity(r.tag, m.CarbonKg) + " kg"},
			{Label: LabelScore, Value: Percent(m.CarbonScore)},
		},
		Recommendations: recs,
		CarbonKg:        m.CarbonKg,
		Score:           m.CarbonScore,
	}
}

// Render projects results with the default locale.
func Render(results []model.MonthResult) []Card {
	return NewRenderer(DefaultLocale).Render(results)
}
