package entities

// ShipmentRequest is the pricing input. It is built from form/API input and
// never persisted.
type ShipmentRequest struct {
	Weight        float64
	TransportMode TransportMode
	Urgent        bool
}

// CostBreakdown is the pricing output. It is computed fresh on every call;
// at order-creation time the Base/Urgent/Total fields are frozen into the
// order.
//
// Monetary representation:
//   - All values are rounded to 2 decimal places.
//   - EffectiveRate is the per-kg rate actually used after the randomized
//     variation, rounded for display only.
//   - TotalCost is always BaseCost + UrgentSurcharge.
type CostBreakdown struct {
	CalculatedCost  float64
	MinimumCharge   float64
	BaseCost        float64
	UrgentSurcharge float64
	TotalCost       float64
	MinimumApplied  bool
	EffectiveRate   float64
}
