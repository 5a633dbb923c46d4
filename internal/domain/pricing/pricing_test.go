package pricing

import (
	"errors"
	"math"
	"math/rand"
	"testing"

	"cargoflow/internal/domain/entities"
)

// fixedSource forces a deterministic variation draw. Intn(41) reduces to
// Int31() % 41 for in-range values, and Int31 is the top half of Int63.
type fixedSource struct{ v int64 }

func (s fixedSource) Int63() int64 { return s.v }
func (s fixedSource) Seed(int64)   {}

func calculatorWithInt31(v int32) *Calculator {
	return NewCalculator(rand.New(fixedSource{int64(v) << 32}))
}

func TestCalculator_EstimateValidation(t *testing.T) {
	c := NewCalculator(rand.New(rand.NewSource(1)))

	for _, w := range []float64{0, -5, 1001} {
		_, err := c.Estimate(entities.ShipmentRequest{Weight: w, TransportMode: entities.TransportLand})
		if !errors.Is(err, ErrInvalidWeight) {
			t.Fatalf("weight %v: expected ErrInvalidWeight, got %v", w, err)
		}
	}

	for _, w := range []float64{0.1, 1000} {
		if _, err := c.Estimate(entities.ShipmentRequest{Weight: w, TransportMode: entities.TransportLand}); err != nil {
			t.Fatalf("weight %v: unexpected error: %v", w, err)
		}
	}

	_, err := c.Estimate(entities.ShipmentRequest{Weight: 10, TransportMode: "sea"})
	if !errors.Is(err, ErrInvalidTransportMode) {
		t.Fatalf("expected ErrInvalidTransportMode, got %v", err)
	}
}

func TestCalculator_EstimatePinnedVariation(t *testing.T) {
	t.Run("zero variation urgent land", func(t *testing.T) {
		// Int31()%41 == 20 pins variation to 0.
		c := calculatorWithInt31(20)
		b, err := c.Estimate(entities.ShipmentRequest{Weight: 10, TransportMode: entities.TransportLand, Urgent: true})
		if err != nil {
			t.Fatalf("unexpected error: %v", err)
		}
		if b.EffectiveRate != 12 || b.CalculatedCost != 120 || b.BaseCost != 120 {
			t.Fatalf("unexpected breakdown: %+v", b)
		}
		if b.UrgentSurcharge != 60 || b.TotalCost != 180 {
			t.Fatalf("unexpected surcharge/total: %+v", b)
		}
		if b.MinimumApplied {
			t.Fatalf("minimum should not apply: %+v", b)
		}
	})

	t.Run("lowest variation land", func(t *testing.T) {
		// Int31()%41 == 0 pins variation to -20%.
		c := calculatorWithInt31(0)
		b, err := c.Estimate(entities.ShipmentRequest{Weight: 10, TransportMode: entities.TransportLand})
		if err != nil {
			t.Fatalf("unexpected error: %v", err)
		}
		if b.EffectiveRate != 9.6 || b.CalculatedCost != 96 || b.BaseCost != 96 || b.TotalCost != 96 {
			t.Fatalf("unexpected breakdown: %+v", b)
		}
		if b.UrgentSurcharge != 0 {
			t.Fatalf("expected zero surcharge: %+v", b)
		}
	})
}

func TestCalculator_EstimateMinimumFloor(t *testing.T) {
	// 0.5 kg by ocean lands between 2.4 and 3.6 for every variation, so the
	// minimum charge always wins and the result is fully deterministic.
	c := NewCalculator(rand.New(rand.NewSource(7)))
	b, err := c.Estimate(entities.ShipmentRequest{Weight: 0.5, TransportMode: entities.TransportOcean, Urgent: true})
	if err != nil {
		t.Fatalf("unexpected error: %v", err)
	}
	if !b.MinimumApplied {
		t.Fatalf("expected minimum charge to apply: %+v", b)
	}
	if b.MinimumCharge != 15 || b.BaseCost != 15 {
		t.Fatalf("unexpected base: %+v", b)
	}
	if b.UrgentSurcharge != 7.5 || b.TotalCost != 22.5 {
		t.Fatalf("unexpected surcharge/total: %+v", b)
	}
	if b.CalculatedCost < 2.4 || b.CalculatedCost > 3.6 {
		t.Fatalf("calculated cost out of range: %+v", b)
	}
}

func TestCalculator_EstimateProperties(t *testing.T) {
	modes := []entities.TransportMode{entities.TransportLand, entities.TransportAir, entities.TransportOcean}
	weights := []float64{0.1, 0.5, 1, 10, 250, 1000}

	for seed := int64(0); seed < 500; seed++ {
		c := NewCalculator(rand.New(rand.NewSource(seed)))
		for _, mode := range modes {
			rate, _ := BaseRate(mode)
			minimum, _ := MinimumCharge(mode)
			for _, w := range weights {
				for _, urgent := range []bool{false, true} {
					b, err := c.Estimate(entities.ShipmentRequest{Weight: w, TransportMode: mode, Urgent: urgent})
					if err != nil {
						t.Fatalf("seed %d mode %s weight %v: %v", seed, mode, w, err)
					}

					if b.EffectiveRate < rate*0.8-0.006 || b.EffectiveRate > rate*1.2+0.006 {
						t.Fatalf("seed %d: effective rate %v outside ±20%% of %v", seed, b.EffectiveRate, rate)
					}
					if b.BaseCost < minimum {
						t.Fatalf("seed %d: base cost %v below minimum %v", seed, b.BaseCost, minimum)
					}
					if b.MinimumApplied != (b.CalculatedCost < minimum) {
						t.Fatalf("seed %d: inconsistent MinimumApplied: %+v", seed, b)
					}

					if urgent {
						want := math.Round(b.BaseCost*UrgentSurchargeRate*100) / 100
						if b.UrgentSurcharge != want {
							t.Fatalf("seed %d: surcharge %v, want %v", seed, b.UrgentSurcharge, want)
						}
					} else if b.UrgentSurcharge != 0 {
						t.Fatalf("seed %d: surcharge %v for non-urgent", seed, b.UrgentSurcharge)
					}

					if b.TotalCost != math.Round((b.BaseCost+b.UrgentSurcharge)*100)/100 {
						t.Fatalf("seed %d: total %v != base %v + surcharge %v", seed, b.TotalCost, b.BaseCost, b.UrgentSurcharge)
					}
				}
			}
		}
	}
}

func TestCalculator_EstimateVariationIsIntegerPercent(t *testing.T) {
	for seed := int64(0); seed < 200; seed++ {
		c := NewCalculator(rand.New(rand.NewSource(seed)))
		b, err := c.Estimate(entities.ShipmentRequest{Weight: 1, TransportMode: entities.TransportAir})
		if err != nil {
			t.Fatalf("unexpected error: %v", err)
		}
		pct := (b.EffectiveRate/30 - 1) * 100
		k := math.Round(pct)
		if math.Abs(pct-k) > 0.02 || k < -20 || k > 20 {
			t.Fatalf("seed %d: effective rate %v not on the integer-percent grid", seed, b.EffectiveRate)
		}
	}
}

func TestCalculator_NilRNG(t *testing.T) {
	c := NewCalculator(nil)
	if _, err := c.Estimate(entities.ShipmentRequest{Weight: 10, TransportMode: entities.TransportOcean}); err != nil {
		t.Fatalf("unexpected error: %v", err)
	}
}
