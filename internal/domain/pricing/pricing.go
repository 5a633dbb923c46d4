package pricing

import (
	"errors"
	"math"
	"math/rand"
	"time"

	"cargoflow/internal/domain/entities"
)

var (
	ErrInvalidWeight        = errors.New("package weight must be between 0.1 and 1000 kg")
	ErrInvalidTransportMode = errors.New("invalid transport type")
)

const (
	// MaxPackageWeightKg is the heaviest package the service accepts.
	MaxPackageWeightKg = 1000.0

	// UrgentSurchargeRate is applied on top of the base cost for urgent
	// deliveries.
	UrgentSurchargeRate = 0.5

	// RateVariationPct bounds the uniform rate variation: the effective
	// per-kg rate is the base rate adjusted by an integer percentage in
	// [-RateVariationPct, +RateVariationPct].
	RateVariationPct = 20
)

// Per-kg base rates and minimum charges by transport mode.
var (
	baseRates = map[entities.TransportMode]float64{
		entities.TransportLand:  12,
		entities.TransportAir:   30,
		entities.TransportOcean: 6,
	}
	minimumCharges = map[entities.TransportMode]float64{
		entities.TransportLand:  25,
		entities.TransportAir:   75,
		entities.TransportOcean: 15,
	}
)

// BaseRate returns the per-kg rate for a mode.
func BaseRate(mode entities.TransportMode) (float64, bool) {
	r, ok := baseRates[mode]
	return r, ok
}

// MinimumCharge returns the floor price for a mode.
func MinimumCharge(mode entities.TransportMode) (float64, bool) {
	m, ok := minimumCharges[mode]
	return m, ok
}

// Calculator computes shipping cost breakdowns. The rate variation draws from
// an injected random source so callers can pin it for deterministic tests.
//
// Two estimates for identical input may legitimately differ: a live
// "calculate cost" preview and the later order submission each draw their own
// variation.

type Calculator struct {
	rng *rand.Rand
}

// NewCalculator returns a calculator using rng for the rate variation. A nil
// rng gets a time-seeded source.
func NewCalculator(rng *rand.Rand) *Calculator {
	if rng == nil {
		rng = rand.New(rand.NewSource(time.Now().UnixNano()))
	}
	return &Calculator{rng: rng}
}

// Estimate produces the cost breakdown for a shipment request.
//
// The base cost is the weight-based cost floored at the per-mode minimum
// charge; urgent deliveries add a 50% surcharge. The surcharge and total are
// derived from the rounded base cost so TotalCost == BaseCost +
// UrgentSurcharge holds exactly.
func (c *Calculator) Estimate(req entities.ShipmentRequest) (entities.CostBreakdown, error) {
	rate, ok := baseRates[req.TransportMode]
	if !ok {
		return entities.CostBreakdown{}, ErrInvalidTransportMode
	}
	if req.Weight <= 0 || req.Weight > MaxPackageWeightKg {
		return entities.CostBreakdown{}, ErrInvalidWeight
	}

	variation := float64(c.rng.Intn(2*RateVariationPct+1)-RateVariationPct) / 100
	effectiveRate := rate * (1 + variation)

	calculated := req.Weight * effectiveRate
	minimum := minimumCharges[req.TransportMode]

	base := round2(math.Max(calculated, minimum))
	surcharge := 0.0
	if req.Urgent {
		surcharge = round2(base * UrgentSurchargeRate)
	}

	return entities.CostBreakdown{
		CalculatedCost:  round2(calculated),
		MinimumCharge:   minimum,
		BaseCost:        base,
		UrgentSurcharge: surcharge,
		TotalCost:       round2(base + surcharge),
		MinimumApplied:  calculated < minimum,
		EffectiveRate:   round2(effectiveRate),
	}, nil
}

func round2(v float64) float64 {
	return math.Round(v*100) / 100
}
