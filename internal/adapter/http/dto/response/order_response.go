package response

import (
	"time"

	"cargoflow/internal/domain/entities"
)

const displayDateLayout = "Jan 2, 2006"

type OrderResponse struct {
	ID                  string    `json:"id"`
	OrderNumber         string    `json:"order_number"`
	UserID              string    `json:"user_id"`
	PickupAddress       string    `json:"pickup_address"`
	DeliveryAddress     string    `json:"delivery_address"`
	PackageWeight       float64   `json:"package_weight"`
	PackageLength       float64   `json:"package_length,omitempty"`
	PackageWidth        float64   `json:"package_width,omitempty"`
	PackageHeight       float64   `json:"package_height,omitempty"`
	PackageDescription  string    `json:"package_description"`
	TransportType       string    `json:"transport_type"`
	TransportLabel      string    `json:"transport_label"`
	UrgentDelivery      bool      `json:"urgent_delivery"`
	SpecialInstructions string    `json:"special_instructions,omitempty"`
	BaseCost            float64   `json:"base_cost"`
	UrgentSurcharge     float64   `json:"urgent_surcharge"`
	TotalCost           float64   `json:"total_cost"`
	Status              string    `json:"status"`
	StatusLabel         string    `json:"status_label"`
	TrackingNumber      string    `json:"tracking_number,omitempty"`
	CreatedAt           time.Time `json:"created_at"`
	UpdatedAt           time.Time `json:"updated_at"`
}

func FromOrder(o entities.Order) OrderResponse {
	return OrderResponse{
		ID:                  o.ID,
		OrderNumber:         o.OrderNumber,
		UserID:              o.UserID,
		PickupAddress:       o.PickupAddress,
		DeliveryAddress:     o.DeliveryAddress,
		PackageWeight:       o.PackageWeight,
		PackageLength:       o.PackageLength,
		PackageWidth:        o.PackageWidth,
		PackageHeight:       o.PackageHeight,
		PackageDescription:  o.PackageDescription,
		TransportType:       string(o.TransportMode),
		TransportLabel:      o.TransportMode.Label(),
		UrgentDelivery:      o.UrgentDelivery,
		SpecialInstructions: o.SpecialInstructions,
		BaseCost:            o.BaseCost,
		UrgentSurcharge:     o.UrgentSurcharge,
		TotalCost:           o.TotalCost,
		Status:              string(o.Status),
		StatusLabel:         o.Status.Label(),
		TrackingNumber:      o.TrackingNumber,
		CreatedAt:           o.CreatedAt,
		UpdatedAt:           o.UpdatedAt,
	}
}

func FromOrders(orders []entities.Order) []OrderResponse {
	out := make([]OrderResponse, 0, len(orders))
	for _, o := range orders {
		out = append(out, FromOrder(o))
	}
	return out
}

// UserStatsResponse is the customer dashboard summary.
type UserStatsResponse struct {
	TotalOrders     int    `json:"total_orders"`
	ActiveShipments int    `json:"active_shipments"`
	LastOrder       string `json:"last_order"`
}

func FromUserStats(s entities.UserStats) UserStatsResponse {
	last := "N/A"
	if s.LastOrder != nil {
		last = s.LastOrder.Format(displayDateLayout)
	}
	return UserStatsResponse{
		TotalOrders:     s.TotalOrders,
		ActiveShipments: s.ActiveShipments,
		LastOrder:       last,
	}
}
