package request

import (
	"strings"

	"cargoflow/internal/domain/entities"
	"cargoflow/internal/usecase"
)

type CreateOrderRequest struct {
	UserID              string  `json:"user_id" binding:"required"`
	PickupAddress       string  `json:"pickup_address" binding:"required"`
	DeliveryAddress     string  `json:"delivery_address" binding:"required"`
	PackageWeight       float64 `json:"package_weight" binding:"required"`
	PackageLength       float64 `json:"package_length"`
	PackageWidth        float64 `json:"package_width"`
	PackageHeight       float64 `json:"package_height"`
	PackageDescription  string  `json:"package_description" binding:"required"`
	TransportType       string  `json:"transport_type" binding:"required"`
	UrgentDelivery      bool    `json:"urgent_delivery"`
	SpecialInstructions string  `json:"special_instructions"`
}

func (r CreateOrderRequest) ToInput() usecase.CreateOrderInput {
	return usecase.CreateOrderInput{
		UserID:              strings.TrimSpace(r.UserID),
		PickupAddress:       strings.TrimSpace(r.PickupAddress),
		DeliveryAddress:     strings.TrimSpace(r.DeliveryAddress),
		PackageWeight:       r.PackageWeight,
		PackageLength:       r.PackageLength,
		PackageWidth:        r.PackageWidth,
		PackageHeight:       r.PackageHeight,
		PackageDescription:  strings.TrimSpace(r.PackageDescription),
		TransportMode:       normalizeTransport(r.TransportType),
		UrgentDelivery:      r.UrgentDelivery,
		SpecialInstructions: strings.TrimSpace(r.SpecialInstructions),
	}
}

// UpdateStatusRequest is the employee status-update payload. The tracking
// number is optional; confirming without one auto-assigns it.
type UpdateStatusRequest struct {
	Status         string `json:"status" binding:"required"`
	TrackingNumber string `json:"tracking_number"`
}

func (r UpdateStatusRequest) ResolveStatus() entities.OrderStatus {
	return entities.OrderStatus(strings.ToLower(strings.TrimSpace(r.Status)))
}

// EditOrderRequest carries a partial order edit. Nil fields are untouched.
type EditOrderRequest struct {
	PickupAddress       *string  `json:"pickup_address"`
	DeliveryAddress     *string  `json:"delivery_address"`
	PackageWeight       *float64 `json:"package_weight"`
	PackageLength       *float64 `json:"package_length"`
	PackageWidth        *float64 `json:"package_width"`
	PackageHeight       *float64 `json:"package_height"`
	PackageDescription  *string  `json:"package_description"`
	TransportType       *string  `json:"transport_type"`
	UrgentDelivery      *bool    `json:"urgent_delivery"`
	SpecialInstructions *string  `json:"special_instructions"`
}

func (r EditOrderRequest) ToOrderUpdate() entities.OrderUpdate {
	upd := entities.OrderUpdate{
		PickupAddress:       r.PickupAddress,
		DeliveryAddress:     r.DeliveryAddress,
		PackageWeight:       r.PackageWeight,
		PackageLength:       r.PackageLength,
		PackageWidth:        r.PackageWidth,
		PackageHeight:       r.PackageHeight,
		PackageDescription:  r.PackageDescription,
		UrgentDelivery:      r.UrgentDelivery,
		SpecialInstructions: r.SpecialInstructions,
	}
	if r.TransportType != nil {
		mode := normalizeTransport(*r.TransportType)
		upd.TransportMode = &mode
	}
	return upd
}
