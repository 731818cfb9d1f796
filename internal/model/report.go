// Package model defines the carbon report types returned by the prediction service.
package model

// MonthResult is one month's carbon report as returned by /predict.
// Month is the display key and is unique within a single response.
type MonthResult struct {
	Month           string           `json:"month"`
	TotalAmt        float64          `json:"total_amt"`
	ClusterNameHint string           `json:"cluster_name_hint"`
	CarbonKg        float64          `json:"carbon_kg"`
	CarbonScore     float64          `json:"carbon_score"`
	Recommendations []Recommendation `json:"recommendations"`
}

// Recommendation is one actionable suggestion attached to a MonthResult.
// Order within MonthResult.Recommendations is display order.
type Recommendation struct {
	Category            string  `json:"category"`
	Action              string  `json:"action"`
	ExpectedReductionKg float64 `json:"expected_reduction_kg"`
	Tip                 string  `json:"tip"`
}
