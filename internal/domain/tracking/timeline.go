package tracking

import (
	"hash/fnv"
	"math"
	"math/rand"
	"time"

	"cargoflow/internal/domain/entities"
)

// Clock supplies "now" for days-remaining math. Injected so tests can pin it.
type Clock func() time.Time

// Simulator synthesizes a plausible tracking timeline and delivery estimate
// from an order's current status. The history is not ledger-backed: events
// are derived from CreatedAt plus randomized per-transition intervals.
//
// Without an explicit random source the simulator seeds one per order from
// its order number, so the same order renders the same history on every
// view. Re-invoking later only changes DaysRemaining.

type Simulator struct {
	now Clock
	rng *rand.Rand
}

// NewSimulator returns a simulator using clock for "now" and rng for the
// interval draws. Nil clock means time.Now; nil rng enables per-order
// seeding.
func NewSimulator(now Clock, rng *rand.Rand) *Simulator {
	if now == nil {
		now = time.Now
	}
	return &Simulator{now: now, rng: rng}
}

// BuildTrackingView produces the timeline and delivery estimate together,
// from a single random sequence.
func (s *Simulator) BuildTrackingView(o entities.Order) entities.TrackingView {
	rng := s.orderRand(o)
	return entities.TrackingView{
		Timeline: s.timeline(o, rng),
		Estimate: s.estimate(o, rng),
	}
}

// Timeline returns only the synthesized event sequence.
func (s *Simulator) Timeline(o entities.Order) []entities.TimelineEvent {
	return s.timeline(o, s.orderRand(o))
}

// Estimate returns only the delivery estimate.
func (s *Simulator) Estimate(o entities.Order) entities.DeliveryEstimate {
	return s.estimate(o, s.orderRand(o))
}

func (s *Simulator) orderRand(o entities.Order) *rand.Rand {
	if s.rng != nil {
		return s.rng
	}
	h := fnv.New64a()
	h.Write([]byte(o.OrderNumber))
	return rand.New(rand.NewSource(int64(h.Sum64())))
}

type statusStep struct {
	status   entities.OrderStatus
	label    string
	icon     string
	location string
}

func steps(mode entities.TransportMode) []statusStep {
	return []statusStep{
		{entities.StatusPending, "Order Received", "📝", "Order Processing Center"},
		{entities.StatusConfirmed, "Order Confirmed", "✅", "Order Processing Center"},
		{entities.StatusProcessing, "Package Prepared", "📦", "Fulfillment Center"},
		{entities.StatusInTransit, "In Transit", mode.Icon(), "Transport Hub"},
		{entities.StatusDelivered, "Delivered", "🏠", "Customer Address"},
	}
}

var cancelledStep = statusStep{entities.StatusCancelled, "Order Cancelled", "❌", "Order Processing Center"}

// Hour intervals between consecutive statuses. The in-transit to delivered
// leg depends on the transport mode.
func hoursBetween(prev entities.OrderStatus, mode entities.TransportMode, rng *rand.Rand) int {
	switch prev {
	case entities.StatusPending:
		return 2 + rng.Intn(5) // 2-6h to confirmation
	case entities.StatusConfirmed:
		return 8 + rng.Intn(17) // 8-24h to processing
	case entities.StatusProcessing:
		return 4 + rng.Intn(9) // 4-12h to pickup
	case entities.StatusInTransit:
		return transitHours(mode, rng)
	}
	return 0
}

func transitHours(mode entities.TransportMode, rng *rand.Rand) int {
	switch mode {
	case entities.TransportLand:
		return 24 + rng.Intn(49) // 1-3 days
	case entities.TransportAir:
		return 12 + rng.Intn(13) // 12-24 hours
	case entities.TransportOcean:
		return 120 + rng.Intn(121) // 5-10 days
	}
	return 48
}

func cancellationHours(rng *rand.Rand) int {
	return 1 + rng.Intn(48)
}

func (s *Simulator) timeline(o entities.Order, rng *rand.Rand) []entities.TimelineEvent {
	current := o.Status
	eventTime := o.CreatedAt

	// The real status history is not retained, so a cancelled order is
	// assumed to have progressed through confirmation before cancellation.
	// Intermediate steps that never happened are omitted entirely.
	if current == entities.StatusCancelled || current == entities.StatusDeleted {
		st := steps(o.TransportMode)
		confirmedAt := eventTime.Add(time.Duration(hoursBetween(entities.StatusPending, o.TransportMode, rng)) * time.Hour)
		cancelledAt := confirmedAt.Add(time.Duration(cancellationHours(rng)) * time.Hour)
		return []entities.TimelineEvent{
			{Status: st[0].status, Label: st[0].label, Icon: st[0].icon, Location: st[0].location, Timestamp: eventTime, HasHappened: true},
			{Status: st[1].status, Label: st[1].label, Icon: st[1].icon, Location: st[1].location, Timestamp: confirmedAt, HasHappened: true},
			{Status: cancelledStep.status, Label: cancelledStep.label, Icon: cancelledStep.icon, Location: cancelledStep.location, Timestamp: cancelledAt, IsCurrent: true},
		}
	}

	var timeline []entities.TimelineEvent
	for _, step := range steps(o.TransportMode) {
		timeline = append(timeline, entities.TimelineEvent{
			Status:      step.status,
			Label:       step.label,
			Icon:        step.icon,
			Location:    step.location,
			Timestamp:   eventTime,
			HasHappened: step.status.Before(current),
			IsCurrent:   step.status == current,
		})

		// Future events are never shown with a concrete timestamp.
		if step.status == current {
			break
		}
		eventTime = eventTime.Add(time.Duration(hoursBetween(step.status, o.TransportMode, rng)) * time.Hour)
	}
	return timeline
}

// Expected door-to-door days by mode and urgency.
func deliveryDays(mode entities.TransportMode, urgent bool, rng *rand.Rand) int {
	switch mode {
	case entities.TransportLand:
		if urgent {
			return 1 + rng.Intn(2)
		}
		return 2 + rng.Intn(4)
	case entities.TransportAir:
		if urgent {
			return 1
		}
		return 1 + rng.Intn(3)
	case entities.TransportOcean:
		if urgent {
			return 7 + rng.Intn(4)
		}
		return 10 + rng.Intn(6)
	}
	return 3
}

// Progress already made pulls the estimate earlier.
func statusAdjustment(status entities.OrderStatus) time.Duration {
	switch status {
	case entities.StatusConfirmed:
		return -12 * time.Hour
	case entities.StatusProcessing:
		return -24 * time.Hour
	case entities.StatusInTransit:
		return -36 * time.Hour
	}
	return 0
}

func (s *Simulator) estimate(o entities.Order, rng *rand.Rand) entities.DeliveryEstimate {
	switch o.Status {
	case entities.StatusDelivered:
		return entities.DeliveryEstimate{
			State:   entities.EstimateStateDelivered,
			Message: "Package has been delivered",
		}
	case entities.StatusCancelled, entities.StatusDeleted:
		return entities.DeliveryEstimate{
			State:   entities.EstimateStateCancelled,
			Message: "Order has been cancelled",
		}
	}

	days := deliveryDays(o.TransportMode, o.UrgentDelivery, rng)
	estimated := o.CreatedAt.Add(time.Duration(days) * 24 * time.Hour).Add(statusAdjustment(o.Status))

	message := "Standard delivery"
	if o.UrgentDelivery {
		message = "Urgent delivery"
	}

	remaining := int(math.Ceil(estimated.Sub(s.now()).Hours() / 24))
	if remaining < 0 {
		remaining = 0
	}

	return entities.DeliveryEstimate{
		State:         entities.EstimateStateEstimated,
		Message:       message,
		Date:          &estimated,
		DayName:       estimated.Weekday().String(),
		IsEstimate:    true,
		DaysRemaining: remaining,
	}
}
