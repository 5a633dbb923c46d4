package entities

import (
	"strings"
	"time"
)

// TransportMode selects the rate table and delivery-time distribution for a
// shipment.

type TransportMode string

const (
	TransportLand  TransportMode = "land"
	TransportAir   TransportMode = "air"
	TransportOcean TransportMode = "ocean"
)

func (m TransportMode) Valid() bool {
	switch m {
	case TransportLand, TransportAir, TransportOcean:
		return true
	}
	return false
}

func (m TransportMode) Label() string {
	switch m {
	case TransportLand:
		return "Land Transport"
	case TransportAir:
		return "Air Transport"
	case TransportOcean:
		return "Ocean Transport"
	}
	return capitalize(string(m))
}

// Icon is the marker shown for in-transit timeline events.
func (m TransportMode) Icon() string {
	switch m {
	case TransportLand:
		return "🚛"
	case TransportAir:
		return "✈️"
	case TransportOcean:
		return "🚢"
	}
	return "🚚"
}

// OrderStatus is the order lifecycle state.
//
// The happy path is pending → confirmed → processing → in_transit → delivered.
// cancelled and deleted are absorbing branches reachable only from pending or
// confirmed. Ordering along the happy path is explicit via rank, not array
// position.

type OrderStatus string

const (
	StatusPending    OrderStatus = "pending"
	StatusConfirmed  OrderStatus = "confirmed"
	StatusProcessing OrderStatus = "processing"
	StatusInTransit  OrderStatus = "in_transit"
	StatusDelivered  OrderStatus = "delivered"
	StatusCancelled  OrderStatus = "cancelled"
	StatusDeleted    OrderStatus = "deleted"
)

// CanonicalStatuses is the happy-path progression, in order.
var CanonicalStatuses = []OrderStatus{
	StatusPending,
	StatusConfirmed,
	StatusProcessing,
	StatusInTransit,
	StatusDelivered,
}

func (s OrderStatus) Valid() bool {
	switch s {
	case StatusPending, StatusConfirmed, StatusProcessing, StatusInTransit,
		StatusDelivered, StatusCancelled, StatusDeleted:
		return true
	}
	return false
}

func (s OrderStatus) Label() string {
	switch s {
	case StatusPending:
		return "Pending Confirmation"
	case StatusConfirmed:
		return "Confirmed"
	case StatusProcessing:
		return "Processing"
	case StatusInTransit:
		return "In Transit"
	case StatusDelivered:
		return "Delivered"
	case StatusCancelled:
		return "Cancelled"
	case StatusDeleted:
		return "Deleted"
	}
	return capitalize(string(s))
}

func capitalize(s string) string {
	if s == "" {
		return s
	}
	return strings.ToUpper(s[:1]) + s[1:]
}

// rank returns the position on the canonical path, or -1 for statuses outside
// it (cancelled, deleted, unknown).
func (s OrderStatus) rank() int {
	for i, st := range CanonicalStatuses {
		if st == s {
			return i
		}
	}
	return -1
}

// Before reports whether s strictly precedes other on the canonical path.
func (s OrderStatus) Before(other OrderStatus) bool {
	sr, or := s.rank(), other.rank()
	return sr >= 0 && or >= 0 && sr < or
}

// Terminal reports whether no further transitions are allowed.
func (s OrderStatus) Terminal() bool {
	return s == StatusDelivered || s == StatusCancelled || s == StatusDeleted
}

// Editable reports whether cost-affecting fields may still change.
func (s OrderStatus) Editable() bool {
	return s == StatusPending || s == StatusConfirmed
}

// CanTransitionTo is the explicit transition table. Forward moves along the
// canonical path are allowed (including employee jumps over intermediate
// steps); cancelled and deleted are reachable only from pending or confirmed.
func (s OrderStatus) CanTransitionTo(next OrderStatus) bool {
	if s.Terminal() || !next.Valid() {
		return false
	}
	if next == StatusCancelled || next == StatusDeleted {
		return s.Editable()
	}
	return s.Before(next)
}

// Order is the persisted shipping order. Cost fields are frozen at creation
// time and only recomputed when an editable order's cost-affecting fields
// change.
type Order struct {
	ID                  string
	OrderNumber         string
	UserID              string
	PickupAddress       string
	DeliveryAddress     string
	PackageWeight       float64
	PackageLength       float64
	PackageWidth        float64
	PackageHeight       float64
	PackageDescription  string
	TransportMode       TransportMode
	UrgentDelivery      bool
	SpecialInstructions string
	BaseCost            float64
	UrgentSurcharge     float64
	TotalCost           float64
	Status              OrderStatus
	TrackingNumber      string
	CreatedAt           time.Time
	UpdatedAt           time.Time
}

// PublicOrder is the reduced order view exposed by unauthenticated tracking.
// Costs, the owning user and special instructions are withheld; addresses are
// reduced to their city line.
type PublicOrder struct {
	OrderNumber        string
	TrackingNumber     string
	TransportMode      TransportMode
	PackageWeight      float64
	PackageLength      float64
	PackageWidth       float64
	PackageHeight      float64
	PackageDescription string
	UrgentDelivery     bool
	Status             OrderStatus
	PickupAddress      string
	DeliveryAddress    string
	CreatedAt          time.Time
	UpdatedAt          time.Time
}

func (o Order) PublicView() PublicOrder {
	return PublicOrder{
		OrderNumber:        o.OrderNumber,
		TrackingNumber:     o.TrackingNumber,
		TransportMode:      o.TransportMode,
		PackageWeight:      o.PackageWeight,
		PackageLength:      o.PackageLength,
		PackageWidth:       o.PackageWidth,
		PackageHeight:      o.PackageHeight,
		PackageDescription: o.PackageDescription,
		UrgentDelivery:     o.UrgentDelivery,
		Status:             o.Status,
		PickupAddress:      SanitizeAddress(o.PickupAddress),
		DeliveryAddress:    SanitizeAddress(o.DeliveryAddress),
		CreatedAt:          o.CreatedAt,
		UpdatedAt:          o.UpdatedAt,
	}
}

// SanitizeAddress reduces a multi-line address to its city line for public
// display. Lines containing a comma usually carry city/state; otherwise the
// last non-empty line is used.
func SanitizeAddress(address string) string {
	if address == "" {
		return ""
	}
	lines := strings.Split(address, "\n")
	last := ""
	for _, line := range lines {
		line = strings.TrimSpace(line)
		if line == "" {
			continue
		}
		if strings.Contains(line, ",") {
			return line
		}
		last = line
	}
	return last
}

// OrderUpdate carries the optional fields of an order edit. Nil means the
// field was not provided. Cost fields are filled in by the use case when a
// cost-affecting field changed.
type OrderUpdate struct {
	PickupAddress       *string
	DeliveryAddress     *string
	PackageWeight       *float64
	PackageLength       *float64
	PackageWidth        *float64
	PackageHeight       *float64
	PackageDescription  *string
	TransportMode       *TransportMode
	UrgentDelivery      *bool
	SpecialInstructions *string

	BaseCost        *float64
	UrgentSurcharge *float64
	TotalCost       *float64
}

func (u OrderUpdate) Empty() bool {
	return u.PickupAddress == nil && u.DeliveryAddress == nil &&
		u.PackageWeight == nil && u.PackageLength == nil &&
		u.PackageWidth == nil && u.PackageHeight == nil &&
		u.PackageDescription == nil && u.TransportMode == nil &&
		u.UrgentDelivery == nil && u.SpecialInstructions == nil
}

// AffectsCost reports whether the update changes any input of the pricing
// calculation.
func (u OrderUpdate) AffectsCost() bool {
	return u.PackageWeight != nil || u.PackageLength != nil ||
		u.PackageWidth != nil || u.PackageHeight != nil ||
		u.TransportMode != nil || u.UrgentDelivery != nil
}

// ApplyTo merges the update into a copy of the order, yielding the state the
// order would have after the edit. Used for cost recalculation.
func (u OrderUpdate) ApplyTo(o Order) Order {
	if u.PickupAddress != nil {
		o.PickupAddress = *u.PickupAddress
	}
	if u.DeliveryAddress != nil {
		o.DeliveryAddress = *u.DeliveryAddress
	}
	if u.PackageWeight != nil {
		o.PackageWeight = *u.PackageWeight
	}
	if u.PackageLength != nil {
		o.PackageLength = *u.PackageLength
	}
	if u.PackageWidth != nil {
		o.PackageWidth = *u.PackageWidth
	}
	if u.PackageHeight != nil {
		o.PackageHeight = *u.PackageHeight
	}
	if u.PackageDescription != nil {
		o.PackageDescription = *u.PackageDescription
	}
	if u.TransportMode != nil {
		o.TransportMode = *u.TransportMode
	}
	if u.UrgentDelivery != nil {
		o.UrgentDelivery = *u.UrgentDelivery
	}
	if u.SpecialInstructions != nil {
		o.SpecialInstructions = *u.SpecialInstructions
	}
	return o
}

// UserStats summarizes a customer's order history for the dashboard.
type UserStats struct {
	TotalOrders     int
	ActiveShipments int
	LastOrder       *time.Time
}
