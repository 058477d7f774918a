package shipment

import (
	"errors"
	"time"

	"shiptrack/internal/core/domain/model/kernel"
)

var (
	// ErrLinkIsNotConstructed is returned when a Link instance was not
	// created through the NewLink or RestoreLink factory methods.
	ErrLinkIsNotConstructed = errors.New("Link must be created via NewLink or RestoreLink")

	// ErrLinkToSelf is returned when linking a shipment to itself.
	ErrLinkToSelf = errors.New("a shipment cannot be linked to itself")
)

// Link is an undirected edge between two shipments enabling goods pooling:
// lots received on either shipment become allocation candidates for the
// other, subject to customer scoping. The pair is stored in canonical order
// so the same pair never produces two rows.
type Link struct {
	lowShipmentID  kernel.UUID
	highShipmentID kernel.UUID
	createdAt      time.Time

	isConstructed bool
}

// NewLink creates a link between two distinct shipments. The argument order
// does not matter.
func NewLink(a, b kernel.UUID, now time.Time) (Link, error) {
	if err := a.Validate(); err != nil {
		return Link{}, err
	}
	if err := b.Validate(); err != nil {
		return Link{}, err
	}
	if a.IsEqual(b) {
		return Link{}, ErrLinkToSelf
	}

	low, high := a, b
	if high.String() < low.String() {
		low, high = high, low
	}

	return Link{
		lowShipmentID:  low,
		highShipmentID: high,
		createdAt:      now,
		isConstructed:  true,
	}, nil
}

// RestoreLink reconstructs a link from persistence. The pair is expected to
// already be in canonical order.
func RestoreLink(low, high kernel.UUID, createdAt time.Time) (Link, error) {
	if err := low.Validate(); err != nil {
		return Link{}, err
	}
	if err := high.Validate(); err != nil {
		return Link{}, err
	}

	return Link{
		lowShipmentID:  low,
		highShipmentID: high,
		createdAt:      createdAt,
		isConstructed:  true,
	}, nil
}

// Validate ensures the Link instance was properly constructed.
func (l Link) Validate() error {
	if !l.isConstructed {
		return ErrLinkIsNotConstructed
	}
	return nil
}

func (l Link) LowShipmentID() kernel.UUID  { return l.lowShipmentID }
func (l Link) HighShipmentID() kernel.UUID { return l.highShipmentID }
func (l Link) CreatedAt() time.Time        { return l.createdAt }

// Other returns the opposite end of the link relative to the given shipment.
// The second result is false when the shipment is not part of the link.
func (l Link) Other(shipmentID kernel.UUID) (kernel.UUID, bool) {
	if l.lowShipmentID.IsEqual(shipmentID) {
		return l.highShipmentID, true
	}
	if l.highShipmentID.IsEqual(shipmentID) {
		return l.lowShipmentID, true
	}
	return kernel.UUID{}, false
}
