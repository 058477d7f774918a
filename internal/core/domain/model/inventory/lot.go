package inventory

import (
	"errors"
	"time"

	"shiptrack/internal/core/domain/model/kernel"
)

var (
	// ErrLotIsNotConstructed is returned when a GoodsLot instance was not
	// created through the NewGoodsLot or RestoreGoodsLot factory methods.
	ErrLotIsNotConstructed = errors.New("GoodsLot must be created via NewGoodsLot or RestoreGoodsLot")

	// ErrNegativeQuantity is the only hard receive failure: a lot can be
	// empty but never negative.
	ErrNegativeQuantity = errors.New("lot quantity must not be negative")
)

// GoodsLot is a fixed quantity of one good received against one shipment.
// The quantity is immutable after creation; depletion is tracked through
// allocations, never by mutating the lot.
//
// A lot is either scoped to one customer party or marked as applying to all
// customers; the scope gates whether linked shipments may draw from it.
type GoodsLot struct {
	id                    kernel.UUID
	shipmentID            kernel.UUID
	goodID                kernel.UUID
	ownerUserID           kernel.UUID
	customerPartyID       *kernel.UUID
	appliesToAllCustomers bool
	quantity              int
	createdAt             time.Time

	isConstructed bool
}

// NewGoodsLot records a received quantity of a good. quantity may be zero
// (a placeholder row) but never negative.
func NewGoodsLot(
	id kernel.UUID,
	shipmentID kernel.UUID,
	goodID kernel.UUID,
	ownerUserID kernel.UUID,
	customerPartyID *kernel.UUID,
	appliesToAllCustomers bool,
	quantity int,
	now time.Time,
) (*GoodsLot, error) {
	if err := id.Validate(); err != nil {
		return nil, err
	}
	if err := shipmentID.Validate(); err != nil {
		return nil, err
	}
	if err := goodID.Validate(); err != nil {
		return nil, err
	}
	if err := ownerUserID.Validate(); err != nil {
		return nil, err
	}
	if quantity < 0 {
		return nil, ErrNegativeQuantity
	}

	return &GoodsLot{
		id:                    id,
		shipmentID:            shipmentID,
		goodID:                goodID,
		ownerUserID:           ownerUserID,
		customerPartyID:       customerPartyID,
		appliesToAllCustomers: appliesToAllCustomers,
		quantity:              quantity,
		createdAt:             now,
		isConstructed:         true,
	}, nil
}

// RestoreGoodsLot reconstructs a lot from persistence.
func RestoreGoodsLot(
	id kernel.UUID,
	shipmentID kernel.UUID,
	goodID kernel.UUID,
	ownerUserID kernel.UUID,
	customerPartyID *kernel.UUID,
	appliesToAllCustomers bool,
	quantity int,
	createdAt time.Time,
) (*GoodsLot, error) {
	if err := id.Validate(); err != nil {
		return nil, err
	}
	if quantity < 0 {
		return nil, ErrNegativeQuantity
	}

	return &GoodsLot{
		id:                    id,
		shipmentID:            shipmentID,
		goodID:                goodID,
		ownerUserID:           ownerUserID,
		customerPartyID:       customerPartyID,
		appliesToAllCustomers: appliesToAllCustomers,
		quantity:              quantity,
		createdAt:             createdAt,
		isConstructed:         true,
	}, nil
}

// Validate ensures the GoodsLot instance was properly constructed.
func (l *GoodsLot) Validate() error {
	if l == nil || !l.isConstructed {
		return ErrLotIsNotConstructed
	}
	return nil
}

func (l *GoodsLot) ID() kernel.UUID               { return l.id }
func (l *GoodsLot) ShipmentID() kernel.UUID       { return l.shipmentID }
func (l *GoodsLot) GoodID() kernel.UUID           { return l.goodID }
func (l *GoodsLot) OwnerUserID() kernel.UUID      { return l.ownerUserID }
func (l *GoodsLot) CustomerPartyID() *kernel.UUID { return l.customerPartyID }
func (l *GoodsLot) AppliesToAllCustomers() bool   { return l.appliesToAllCustomers }
func (l *GoodsLot) Quantity() int                 { return l.quantity }
func (l *GoodsLot) CreatedAt() time.Time          { return l.createdAt }
