package interfaces

import (
	"context"

	"cargoflow/internal/domain/entities"
)

//go:generate mockgen -source=order_repository_interface.go -destination=mocks/order_repository_mock.go -package=mock_interfaces

// IOrderRepository is the persistence port for orders. Lookups return a
// zero-value Order (empty ID) when nothing matches; the use case maps that to
// its not-found error.
type IOrderRepository interface {
	Create(ctx context.Context, o entities.Order) (entities.Order, error)
	GetByID(ctx context.Context, id string) (entities.Order, error)
	GetByOrderNumber(ctx context.Context, orderNumber string) (entities.Order, error)
	GetByTrackingNumber(ctx context.Context, trackingNumber string) (entities.Order, error)
	ListByUserID(ctx context.Context, userID string, status entities.OrderStatus, limit int32) ([]entities.Order, error)
	UpdateStatus(ctx context.Context, id string, status entities.OrderStatus, trackingNumber string) (entities.Order, error)
	UpdateDetails(ctx context.Context, id string, upd entities.OrderUpdate) (entities.Order, error)
}
