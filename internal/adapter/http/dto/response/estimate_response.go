package response

import "cargoflow/internal/domain/entities"

// CostBreakdownResponse mirrors the cost estimation payload consumed by the
// order form's live preview.
type CostBreakdownResponse struct {
	Calculated       float64 `json:"calculated"`
	Minimum          float64 `json:"minimum"`
	Base             float64 `json:"base"`
	UrgentSurcharge  float64 `json:"urgent_surcharge"`
	Total            float64 `json:"total"`
	IsMinimumApplied bool    `json:"is_minimum_applied"`
	RateUsed         float64 `json:"rate_used"`
}

func FromCostBreakdown(b entities.CostBreakdown) CostBreakdownResponse {
	return CostBreakdownResponse{
		Calculated:       b.CalculatedCost,
		Minimum:          b.MinimumCharge,
		Base:             b.BaseCost,
		UrgentSurcharge:  b.UrgentSurcharge,
		Total:            b.TotalCost,
		IsMinimumApplied: b.MinimumApplied,
		RateUsed:         b.EffectiveRate,
	}
}
