package predict

import (
	"bytes"
	"encoding/json"

	"github.com/theirongolddev/greencarbon/internal/model"
)

// wireMonth mirrors model.MonthResult with pointer fields so absent keys are detectable.
type wireMonth struct {
	Month           *string              `json:"month"`
	TotalAmt        *float64             `json:"total_amt"`
	ClusterNameHint *string              `json:"cluster_name_hint"`
	CarbonKg        *float64             `json:"carbon_kg"`
	CarbonScore     *float64             `json:"carbon_score"`
	Recommendations []wireRecommendation `json:"recommendations"`
}

type wireRecommendation struct {
	Category            *string  `json:"category"`
	Action              *string  `json:"action"`
	ExpectedReductionKg *float64 `json:"expected_reduction_kg"`
	Tip                 *string  `json:"tip"`
}

// DecodeResults parses a /predict success body.
// Every month must carry all scalar fields and a unique month key; a missing or null
// recommendations list is read as empty. Tip is optional.
func DecodeResults(body []byte) ([]model.MonthResult, error) {
	trimmed := bytes.TrimSpace(body)
	if len(trimmed) == 0 || trimmed[0] != '[' {
		return nil, malformed("expected a JSON array")
	}

	var raw []wireMonth
	if err := json.Unmarshal(trimmed, &raw); err != nil {
		return nil, malformed("%v", err)
	}

	results := make([]model.MonthResult, 0, len(raw))
	seen := make(map[string]bool, len(raw))
	for i, w := range raw {
		switch {
		case w.Month == nil:
			return nil, malformed("result %d: missing month", i)
		case w.TotalAmt == nil:
			return nil, malformed("result %d: missing total_amt", i)
		case w.ClusterNameHint == nil:
			return nil, malformed("result %d: missing cluster_name_hint", i)
		case w.CarbonKg == nil:
			return nil, malformed("result %d: missing carbon_kg", i)
		case w.CarbonScore == nil:
			return nil, malformed("result %d: missing carbon_score", i)
		}
		if seen[*w.Month] {
			return nil, malformed("duplicate month %q", *w.Month)
		}
		seen[*w.Month] = true

		recs := make([]model.Recommendation, 0, len(w.Recommendations))
		for j, r := range w.Recommendations {
			if r.Category == nil || r.Action == nil || r.ExpectedReductionKg == nil {
				return nil, malformed("result %d: recommendation %d: missing field", i, j)
			}
			rec := model.Recommendation{
				Category:            *r.Category,
				Action:              *r.Action,
				ExpectedReductionKg: *r.ExpectedReductionKg,
			}
			if r.Tip != nil {
				rec.Tip = *r.Tip
			}
			recs = append(recs, rec)
		}

		results = append(results, model.MonthResult{
			Month:           *w.Month,
			TotalAmt:        *w.TotalAmt,
			ClusterNameHint: *w.ClusterNameHint,
			CarbonKg:        *w.CarbonKg,
			CarbonScore:     *w.CarbonScore,
			Recommendations: recs,
		})
	}
	return results, nil
}
