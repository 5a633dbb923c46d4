package usecase

import (
	"context"
	"errors"
	"fmt"
	"log"
	"math/rand"
	"strings"
	"time"

	"cargoflow/internal/domain/entities"
	"cargoflow/internal/domain/pricing"
	"cargoflow/internal/domain/tracking"
	"cargoflow/internal/usecase/interfaces"

	"github.com/google/uuid"
)

var (
	ErrOrderNotFound             = errors.New("order not found")
	ErrInvalidOrderID            = errors.New("invalid order id")
	ErrInvalidUserID             = errors.New("invalid user id")
	ErrMissingRequiredField      = errors.New("required field missing")
	ErrInvalidDimensions         = errors.New("package dimensions must be greater than 0")
	ErrInvalidStatus             = errors.New("invalid status")
	ErrInvalidStatusTransition   = errors.New("invalid status transition")
	ErrOrderNotPending           = errors.New("order is not pending")
	ErrOrderNotEditable          = errors.New("only pending and confirmed orders can be edited")
	ErrOrderNotDeletable         = errors.New("only pending and confirmed orders can be deleted")
	ErrNoFieldsToUpdate          = errors.New("no valid fields provided for update")
	ErrInvalidTrackingIdentifier = errors.New("invalid tracking identifier")
	ErrOrderNumberExhausted      = errors.New("could not allocate a unique order number")
)

const maxNumberAttempts = 10

// Statuses counted as active shipments in user stats.
var activeStatuses = map[entities.OrderStatus]bool{
	entities.StatusConfirmed:  true,
	entities.StatusProcessing: true,
	entities.StatusInTransit:  true,
}

// CreateOrderInput carries the validated form fields for a new order.
// Dimensions are optional; when any is supplied all three must be positive.
type CreateOrderInput struct {
	UserID              string
	PickupAddress       string
	DeliveryAddress     string
	PackageWeight       float64
	PackageLength       float64
	PackageWidth        float64
	PackageHeight       float64
	PackageDescription  string
	TransportMode       entities.TransportMode
	UrgentDelivery      bool
	SpecialInstructions string
}

// IOrderUseCase exposes the order lifecycle and tracking operations.
//
// EstimateCost and CreateOrder each draw their own rate variation, so a live
// preview and the persisted cost may differ for identical inputs.

type IOrderUseCase interface {
	EstimateCost(ctx context.Context, req entities.ShipmentRequest) (entities.CostBreakdown, error)
	CreateOrder(ctx context.Context, input CreateOrderInput) (entities.Order, error)
	GetByID(ctx context.Context, id string) (entities.Order, error)
	ListByUserID(ctx context.Context, userID string, status entities.OrderStatus, limit int32) ([]entities.Order, error)
	ConfirmOrder(ctx context.Context, id string) (entities.Order, error)
	UpdateStatus(ctx context.Context, id string, status entities.OrderStatus, trackingNumber string) (entities.Order, error)
	EditOrder(ctx context.Context, id string, upd entities.OrderUpdate) (entities.Order, error)
	CancelOrder(ctx context.Context, id string) (entities.Order, error)
	DeleteOrder(ctx context.Context, id string) error
	TrackOrder(ctx context.Context, id string) (entities.Order, entities.TrackingView, error)
	PublicTracking(ctx context.Context, identifier string) (entities.PublicOrder, entities.TrackingView, error)
	UserStats(ctx context.Context, userID string) (entities.UserStats, error)
}

type OrderUseCase struct {
	repo       interfaces.IOrderRepository
	calculator *pricing.Calculator
	simulator  *tracking.Simulator
	rng        *rand.Rand
}

var _ IOrderUseCase = (*OrderUseCase)(nil)

// NewOrderUseCase wires the order use case. Nil calculator/simulator get
// default instances with time-seeded randomness.
func NewOrderUseCase(repo interfaces.IOrderRepository, calculator *pricing.Calculator, simulator *tracking.Simulator) *OrderUseCase {
	if calculator == nil {
		calculator = pricing.NewCalculator(nil)
	}
	if simulator == nil {
		simulator = tracking.NewSimulator(nil, nil)
	}
	return &OrderUseCase{
		repo:       repo,
		calculator: calculator,
		simulator:  simulator,
		rng:        rand.New(rand.NewSource(time.Now().UnixNano())),
	}
}

func (u *OrderUseCase) EstimateCost(_ context.Context, req entities.ShipmentRequest) (entities.CostBreakdown, error) {
	return u.calculator.Estimate(req)
}

func (u *OrderUseCase) CreateOrder(ctx context.Context, input CreateOrderInput) (entities.Order, error) {
	input.UserID = strings.TrimSpace(input.UserID)
	input.PickupAddress = strings.TrimSpace(input.PickupAddress)
	input.DeliveryAddress = strings.TrimSpace(input.DeliveryAddress)
	input.PackageDescription = strings.TrimSpace(input.PackageDescription)
	input.SpecialInstructions = strings.TrimSpace(input.SpecialInstructions)

	if input.UserID == "" {
		return entities.Order{}, ErrInvalidUserID
	}
	for field, value := range map[string]string{
		"pickup_address":      input.PickupAddress,
		"delivery_address":    input.DeliveryAddress,
		"package_description": input.PackageDescription,
	} {
		if value == "" {
			return entities.Order{}, fmt.Errorf("%w: %s", ErrMissingRequiredField, field)
		}
	}
	if err := validateDimensions(input.PackageLength, input.PackageWidth, input.PackageHeight); err != nil {
		return entities.Order{}, err
	}

	cost, err := u.calculator.Estimate(entities.ShipmentRequest{
		Weight:        input.PackageWeight,
		TransportMode: input.TransportMode,
		Urgent:        input.UrgentDelivery,
	})
	if err != nil {
		return entities.Order{}, err
	}

	orderNumber, err := u.uniqueNumber(ctx, "ORD", u.repo.GetByOrderNumber)
	if err != nil {
		return entities.Order{}, err
	}

	now := time.Now().UTC()
	o := entities.Order{
		ID:                  uuid.NewString(),
		OrderNumber:         orderNumber,
		UserID:              input.UserID,
		PickupAddress:       input.PickupAddress,
		DeliveryAddress:     input.DeliveryAddress,
		PackageWeight:       input.PackageWeight,
		PackageLength:       input.PackageLength,
		PackageWidth:        input.PackageWidth,
		PackageHeight:       input.PackageHeight,
		PackageDescription:  input.PackageDescription,
		TransportMode:       input.TransportMode,
		UrgentDelivery:      input.UrgentDelivery,
		SpecialInstructions: input.SpecialInstructions,
		BaseCost:            cost.BaseCost,
		UrgentSurcharge:     cost.UrgentSurcharge,
		TotalCost:           cost.TotalCost,
		Status:              entities.StatusPending,
		CreatedAt:           now,
		UpdatedAt:           now,
	}

	created, err := u.repo.Create(ctx, o)
	if err != nil {
		return entities.Order{}, err
	}
	log.Printf("[order][usecase] created order_number=%s user_id=%s total=%.2f", created.OrderNumber, created.UserID, created.TotalCost)
	return created, nil
}

func (u *OrderUseCase) GetByID(ctx context.Context, id string) (entities.Order, error) {
	o, err := u.loadOrder(ctx, id)
	if err != nil {
		return entities.Order{}, err
	}
	return o, nil
}

func (u *OrderUseCase) ListByUserID(ctx context.Context, userID string, status entities.OrderStatus, limit int32) ([]entities.Order, error) {
	userID = strings.TrimSpace(userID)
	if userID == "" {
		return nil, ErrInvalidUserID
	}
	if status != "" && !status.Valid() {
		return nil, ErrInvalidStatus
	}
	return u.repo.ListByUserID(ctx, userID, status, limit)
}

func (u *OrderUseCase) ConfirmOrder(ctx context.Context, id string) (entities.Order, error) {
	o, err := u.loadOrder(ctx, id)
	if err != nil {
		return entities.Order{}, err
	}
	if o.Status != entities.StatusPending {
		return entities.Order{}, ErrOrderNotPending
	}

	trackingNumber := o.TrackingNumber
	if trackingNumber == "" {
		trackingNumber, err = u.uniqueNumber(ctx, "TRK", u.repo.GetByTrackingNumber)
		if err != nil {
			return entities.Order{}, err
		}
	}

	updated, err := u.repo.UpdateStatus(ctx, id, entities.StatusConfirmed, trackingNumber)
	if err != nil {
		return entities.Order{}, err
	}
	if updated.ID == "" {
		return entities.Order{}, ErrOrderNotFound
	}
	log.Printf("[order][usecase] confirmed order_id=%s tracking_number=%s", id, trackingNumber)
	return updated, nil
}

func (u *OrderUseCase) UpdateStatus(ctx context.Context, id string, status entities.OrderStatus, trackingNumber string) (entities.Order, error) {
	if !status.Valid() {
		return entities.Order{}, ErrInvalidStatus
	}
	o, err := u.loadOrder(ctx, id)
	if err != nil {
		return entities.Order{}, err
	}
	if !o.Status.CanTransitionTo(status) {
		return entities.Order{}, ErrInvalidStatusTransition
	}

	trackingNumber = strings.TrimSpace(trackingNumber)
	if status == entities.StatusConfirmed && trackingNumber == "" && o.TrackingNumber == "" {
		trackingNumber, err = u.uniqueNumber(ctx, "TRK", u.repo.GetByTrackingNumber)
		if err != nil {
			return entities.Order{}, err
		}
	}

	updated, err := u.repo.UpdateStatus(ctx, id, status, trackingNumber)
	if err != nil {
		return entities.Order{}, err
	}
	if updated.ID == "" {
		return entities.Order{}, ErrOrderNotFound
	}
	log.Printf("[order][usecase] status update order_id=%s from=%s to=%s", id, o.Status, status)
	return updated, nil
}

func (u *OrderUseCase) EditOrder(ctx context.Context, id string, upd entities.OrderUpdate) (entities.Order, error) {
	if upd.Empty() {
		return entities.Order{}, ErrNoFieldsToUpdate
	}
	if err := validateUpdate(upd); err != nil {
		return entities.Order{}, err
	}

	o, err := u.loadOrder(ctx, id)
	if err != nil {
		return entities.Order{}, err
	}
	if !o.Status.Editable() {
		return entities.Order{}, ErrOrderNotEditable
	}

	recalculated := false
	if upd.AffectsCost() {
		merged := upd.ApplyTo(o)
		cost, err := u.calculator.Estimate(entities.ShipmentRequest{
			Weight:        merged.PackageWeight,
			TransportMode: merged.TransportMode,
			Urgent:        merged.UrgentDelivery,
		})
		if err != nil {
			return entities.Order{}, err
		}
		upd.BaseCost = &cost.BaseCost
		upd.UrgentSurcharge = &cost.UrgentSurcharge
		upd.TotalCost = &cost.TotalCost
		recalculated = true
	}

	updated, err := u.repo.UpdateDetails(ctx, id, upd)
	if err != nil {
		return entities.Order{}, err
	}
	if updated.ID == "" {
		return entities.Order{}, ErrOrderNotFound
	}
	log.Printf("[order][usecase] edited order_id=%s cost_recalculated=%v", id, recalculated)
	return updated, nil
}

func (u *OrderUseCase) CancelOrder(ctx context.Context, id string) (entities.Order, error) {
	o, err := u.loadOrder(ctx, id)
	if err != nil {
		return entities.Order{}, err
	}
	// Customers may only back out before an order is confirmed.
	if o.Status != entities.StatusPending {
		return entities.Order{}, ErrOrderNotPending
	}

	updated, err := u.repo.UpdateStatus(ctx, id, entities.StatusCancelled, "")
	if err != nil {
		return entities.Order{}, err
	}
	if updated.ID == "" {
		return entities.Order{}, ErrOrderNotFound
	}
	log.Printf("[order][usecase] cancelled order_id=%s", id)
	return updated, nil
}

func (u *OrderUseCase) DeleteOrder(ctx context.Context, id string) error {
	o, err := u.loadOrder(ctx, id)
	if err != nil {
		return err
	}
	if !o.Status.Editable() {
		return ErrOrderNotDeletable
	}

	// Soft delete: the row stays for audit, but every read path filters it.
	updated, err := u.repo.UpdateStatus(ctx, id, entities.StatusDeleted, "")
	if err != nil {
		return err
	}
	if updated.ID == "" {
		return ErrOrderNotFound
	}
	log.Printf("[order][usecase] deleted order_id=%s", id)
	return nil
}

func (u *OrderUseCase) TrackOrder(ctx context.Context, id string) (entities.Order, entities.TrackingView, error) {
	o, err := u.loadOrder(ctx, id)
	if err != nil {
		return entities.Order{}, entities.TrackingView{}, err
	}
	return o, u.simulator.BuildTrackingView(o), nil
}

func (u *OrderUseCase) PublicTracking(ctx context.Context, identifier string) (entities.PublicOrder, entities.TrackingView, error) {
	identifier = strings.TrimSpace(identifier)
	if identifier == "" {
		return entities.PublicOrder{}, entities.TrackingView{}, ErrInvalidTrackingIdentifier
	}

	o, err := u.repo.GetByTrackingNumber(ctx, identifier)
	if err != nil {
		return entities.PublicOrder{}, entities.TrackingView{}, err
	}
	if o.ID == "" {
		o, err = u.repo.GetByOrderNumber(ctx, identifier)
		if err != nil {
			return entities.PublicOrder{}, entities.TrackingView{}, err
		}
	}
	if o.ID == "" || o.Status == entities.StatusDeleted {
		return entities.PublicOrder{}, entities.TrackingView{}, ErrOrderNotFound
	}

	return o.PublicView(), u.simulator.BuildTrackingView(o), nil
}

func (u *OrderUseCase) UserStats(ctx context.Context, userID string) (entities.UserStats, error) {
	userID = strings.TrimSpace(userID)
	if userID == "" {
		return entities.UserStats{}, ErrInvalidUserID
	}

	orders, err := u.repo.ListByUserID(ctx, userID, "", 0)
	if err != nil {
		return entities.UserStats{}, err
	}

	stats := entities.UserStats{}
	for _, o := range orders {
		if o.Status == entities.StatusDeleted {
			continue
		}
		stats.TotalOrders++
		if activeStatuses[o.Status] {
			stats.ActiveShipments++
		}
		if stats.LastOrder == nil || o.CreatedAt.After(*stats.LastOrder) {
			created := o.CreatedAt
			stats.LastOrder = &created
		}
	}
	return stats, nil
}

// loadOrder fetches by id and hides soft-deleted orders from every caller.
func (u *OrderUseCase) loadOrder(ctx context.Context, id string) (entities.Order, error) {
	id = strings.TrimSpace(id)
	if id == "" {
		return entities.Order{}, ErrInvalidOrderID
	}
	o, err := u.repo.GetByID(ctx, id)
	if err != nil {
		return entities.Order{}, err
	}
	if o.ID == "" || o.Status == entities.StatusDeleted {
		return entities.Order{}, ErrOrderNotFound
	}
	return o, nil
}

// uniqueNumber allocates a PREFIX-YYYY-NNNN identifier, retrying on the rare
// collision.
func (u *OrderUseCase) uniqueNumber(ctx context.Context, prefix string, lookup func(context.Context, string) (entities.Order, error)) (string, error) {
	for attempt := 0; attempt < maxNumberAttempts; attempt++ {
		candidate := fmt.Sprintf("%s-%d-%04d", prefix, time.Now().UTC().Year(), 1000+u.rng.Intn(9000))
		existing, err := lookup(ctx, candidate)
		if err != nil {
			return "", err
		}
		if existing.ID == "" {
			return candidate, nil
		}
	}
	return "", ErrOrderNumberExhausted
}

func validateDimensions(length, width, height float64) error {
	if length == 0 && width == 0 && height == 0 {
		return nil
	}
	if length <= 0 || width <= 0 || height <= 0 {
		return ErrInvalidDimensions
	}
	return nil
}

func validateUpdate(upd entities.OrderUpdate) error {
	if upd.PickupAddress != nil && strings.TrimSpace(*upd.PickupAddress) == "" {
		return fmt.Errorf("%w: pickup_address", ErrMissingRequiredField)
	}
	if upd.DeliveryAddress != nil && strings.TrimSpace(*upd.DeliveryAddress) == "" {
		return fmt.Errorf("%w: delivery_address", ErrMissingRequiredField)
	}
	if upd.PackageDescription != nil && strings.TrimSpace(*upd.PackageDescription) == "" {
		return fmt.Errorf("%w: package_description", ErrMissingRequiredField)
	}
	if upd.PackageWeight != nil && (*upd.PackageWeight <= 0 || *upd.PackageWeight > pricing.MaxPackageWeightKg) {
		return pricing.ErrInvalidWeight
	}
	if upd.TransportMode != nil && !upd.TransportMode.Valid() {
		return pricing.ErrInvalidTransportMode
	}
	for _, dim := range []*float64{upd.PackageLength, upd.PackageWidth, upd.PackageHeight} {
		if dim != nil && *dim <= 0 {
			return ErrInvalidDimensions
		}
	}
	return nil
}
