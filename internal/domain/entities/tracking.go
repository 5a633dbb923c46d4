package entities

import "time"

// TimelineEvent is one step of the synthesized tracking timeline. Events are
// regenerated on every view and never persisted; the timeline is not an audit
// trail.
type TimelineEvent struct {
	Status      OrderStatus
	Label       string
	Icon        string
	Location    string
	Timestamp   time.Time
	HasHappened bool
	IsCurrent   bool
	IsFuture    bool
}

// EstimateState distinguishes a projected date from the terminal outcomes.
type EstimateState string

const (
	EstimateStateDelivered EstimateState = "delivered"
	EstimateStateCancelled EstimateState = "cancelled"
	EstimateStateEstimated EstimateState = "estimated"
)

// DeliveryEstimate is the projected delivery outcome for an order. Date is
// nil and IsEstimate false when the order already reached a terminal state.
type DeliveryEstimate struct {
	State         EstimateState
	Message       string
	Date          *time.Time
	DayName       string
	IsEstimate    bool
	DaysRemaining int
}

// TrackingView bundles everything the tracking page needs.
type TrackingView struct {
	Timeline []TimelineEvent
	Estimate DeliveryEstimate
}
