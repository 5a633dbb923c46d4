package response

import (
	"time"

	"cargoflow/internal/domain/entities"
)

const displayTimeLayout = "3:04 PM"

type TimelineEventResponse struct {
	Status      string    `json:"status"`
	Label       string    `json:"label"`
	Icon        string    `json:"icon"`
	Location    string    `json:"location"`
	Timestamp   time.Time `json:"timestamp"`
	Date        string    `json:"date"`
	Time        string    `json:"time"`
	HasHappened bool      `json:"has_happened"`
	IsCurrent   bool      `json:"is_current"`
	IsFuture    bool      `json:"is_future"`
}

type DeliveryEstimateResponse struct {
	Status        string `json:"status"`
	Message       string `json:"message"`
	Date          string `json:"date,omitempty"`
	DayName       string `json:"day_name,omitempty"`
	IsEstimate    bool   `json:"is_estimate"`
	DaysRemaining *int   `json:"days_remaining,omitempty"`
}

type TrackingResponse struct {
	Order    OrderResponse            `json:"order"`
	Timeline []TimelineEventResponse  `json:"timeline"`
	Estimate DeliveryEstimateResponse `json:"estimate"`
}

// PublicOrderResponse hides costs, ownership and full addresses from
// unauthenticated tracking.
type PublicOrderResponse struct {
	OrderNumber        string    `json:"order_number"`
	TrackingNumber     string    `json:"tracking_number,omitempty"`
	TransportType      string    `json:"transport_type"`
	TransportLabel     string    `json:"transport_label"`
	PackageWeight      float64   `json:"package_weight"`
	PackageLength      float64   `json:"package_length,omitempty"`
	PackageWidth       float64   `json:"package_width,omitempty"`
	PackageHeight      float64   `json:"package_height,omitempty"`
	PackageDescription string    `json:"package_description"`
	UrgentDelivery     bool      `json:"urgent_delivery"`
	Status             string    `json:"status"`
	StatusLabel        string    `json:"status_label"`
	PickupAddress      string    `json:"pickup_address"`
	DeliveryAddress    string    `json:"delivery_address"`
	CreatedAt          time.Time `json:"created_at"`
	UpdatedAt          time.Time `json:"updated_at"`
}

type PublicTrackingResponse struct {
	Order    PublicOrderResponse      `json:"order"`
	Timeline []TimelineEventResponse  `json:"timeline"`
	Estimate DeliveryEstimateResponse `json:"estimate"`
}

func FromTimelineEvents(events []entities.TimelineEvent) []TimelineEventResponse {
	out := make([]TimelineEventResponse, 0, len(events))
	for _, ev := range events {
		out = append(out, TimelineEventResponse{
			Status:      string(ev.Status),
			Label:       ev.Label,
			Icon:        ev.Icon,
			Location:    ev.Location,
			Timestamp:   ev.Timestamp,
			Date:        ev.Timestamp.Format(displayDateLayout),
			Time:        ev.Timestamp.Format(displayTimeLayout),
			HasHappened: ev.HasHappened,
			IsCurrent:   ev.IsCurrent,
			IsFuture:    ev.IsFuture,
		})
	}
	return out
}

func FromDeliveryEstimate(e entities.DeliveryEstimate) DeliveryEstimateResponse {
	resp := DeliveryEstimateResponse{
		Status:     string(e.State),
		Message:    e.Message,
		DayName:    e.DayName,
		IsEstimate: e.IsEstimate,
	}
	if e.Date != nil {
		resp.Date = e.Date.Format(displayDateLayout)
	}
	if e.IsEstimate {
		days := e.DaysRemaining
		resp.DaysRemaining = &days
	}
	return resp
}

func FromTrackingView(o entities.Order, view entities.TrackingView) TrackingResponse {
	return TrackingResponse{
		Order:    FromOrder(o),
		Timeline: FromTimelineEvents(view.Timeline),
		Estimate: FromDeliveryEstimate(view.Estimate),
	}
}

func FromPublicTrackingView(o entities.PublicOrder, view entities.TrackingView) PublicTrackingResponse {
	return PublicTrackingResponse{
		Order: PublicOrderResponse{
			OrderNumber:        o.OrderNumber,
			TrackingNumber:     o.TrackingNumber,
			TransportType:      string(o.TransportMode),
			TransportLabel:     o.TransportMode.Label(),
			PackageWeight:      o.PackageWeight,
			PackageLength:      o.PackageLength,
			PackageWidth:       o.PackageWidth,
			PackageHeight:      o.PackageHeight,
			PackageDescription: o.PackageDescription,
			UrgentDelivery:     o.UrgentDelivery,
			Status:             string(o.Status),
			StatusLabel:        o.Status.Label(),
			PickupAddress:      o.PickupAddress,
			DeliveryAddress:    o.DeliveryAddress,
			CreatedAt:          o.CreatedAt,
			UpdatedAt:          o.UpdatedAt,
		},
		Timeline: FromTimelineEvents(view.Timeline),
		Estimate: FromDeliveryEstimate(view.Estimate),
	}
}
