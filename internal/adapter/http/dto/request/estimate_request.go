package request

import (
	"strings"

	"cargoflow/internal/domain/entities"
)

// EstimateRequest is the live "calculate cost" payload. It carries the same
// fields the order form sends, so the preview and the final submission price
// the same inputs.
type EstimateRequest struct {
	PackageWeight  float64 `json:"package_weight" binding:"required"`
	TransportType  string  `json:"transport_type" binding:"required"`
	UrgentDelivery bool    `json:"urgent_delivery"`
}

func (r EstimateRequest) ToShipmentRequest() entities.ShipmentRequest {
	return entities.ShipmentRequest{
		Weight:        r.PackageWeight,
		TransportMode: normalizeTransport(r.TransportType),
		Urgent:        r.UrgentDelivery,
	}
}

func normalizeTransport(v string) entities.TransportMode {
	return entities.TransportMode(strings.ToLower(strings.TrimSpace(v)))
}
