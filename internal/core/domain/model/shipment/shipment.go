package shipment

import (
	"errors"
	"time"

	"shiptrack/internal/core/domain/model/kernel"
	"shiptrack/internal/pkg/errs"
)

var (
	// ErrShipmentIsNotConstructed is returned when a Shipment instance was not
	// created through the NewShipment or RestoreShipment factory methods.
	ErrShipmentIsNotConstructed = errors.New("Shipment must be created via NewShipment or RestoreShipment")
)

// Shipment is the aggregate root for one tracked consignment. It owns its
// workflow steps (persisted separately, cascading with the shipment) and
// carries the derived overall status and risk rating.
//
// Overall status and risk are derived state: they are recomputed from step
// statuses and open exceptions, never edited directly. The only manual
// status action is cancellation, which is terminal.
type Shipment struct {
	id               kernel.UUID
	workflowCode     string
	ownerUserID      kernel.UUID
	customerPartyIDs []kernel.UUID
	overall          OverallStatus
	risk             Risk
	updatedAt        time.Time

	isConstructed bool
}

// NewShipment creates a shipment in Created/OnTrack state for the given
// workflow variant.
func NewShipment(
	id kernel.UUID,
	workflowCode string,
	ownerUserID kernel.UUID,
	customerPartyIDs []kernel.UUID,
	now time.Time,
) (*Shipment, error) {
	if err := id.Validate(); err != nil {
		return nil, err
	}
	if workflowCode == "" {
		return nil, errs.NewValueIsRequiredError("workflowCode")
	}
	if err := ownerUserID.Validate(); err != nil {
		return nil, err
	}

	return &Shipment{
		id:               id,
		workflowCode:     workflowCode,
		ownerUserID:      ownerUserID,
		customerPartyIDs: customerPartyIDs,
		overall:          Created,
		risk:             OnTrack,
		updatedAt:        now,
		isConstructed:    true,
	}, nil
}

// RestoreShipment reconstructs a shipment from persistence.
func RestoreShipment(
	id kernel.UUID,
	workflowCode string,
	ownerUserID kernel.UUID,
	customerPartyIDs []kernel.UUID,
	overall OverallStatus,
	risk Risk,
	updatedAt time.Time,
) (*Shipment, error) {
	if err := id.Validate(); err != nil {
		return nil, err
	}
	if err := overall.Validate(); err != nil {
		return nil, err
	}
	if err := risk.Validate(); err != nil {
		return nil, err
	}

	return &Shipment{
		id:               id,
		workflowCode:     workflowCode,
		ownerUserID:      ownerUserID,
		customerPartyIDs: customerPartyIDs,
		overall:          overall,
		risk:             risk,
		updatedAt:        updatedAt,
		isConstructed:    true,
	}, nil
}

// Validate ensures the Shipment instance was properly constructed.
func (s *Shipment) Validate() error {
	if s == nil || !s.isConstructed {
		return ErrShipmentIsNotConstructed
	}
	return nil
}

func (s *Shipment) ID() kernel.UUID                 { return s.id }
func (s *Shipment) WorkflowCode() string            { return s.workflowCode }
func (s *Shipment) OwnerUserID() kernel.UUID        { return s.ownerUserID }
func (s *Shipment) CustomerPartyIDs() []kernel.UUID { return s.customerPartyIDs }
func (s *Shipment) Overall() OverallStatus          { return s.overall }
func (s *Shipment) Risk() Risk                      { return s.risk }
func (s *Shipment) UpdatedAt() time.Time            { return s.updatedAt }

// IsCancelled reports whether the shipment was manually cancelled.
func (s *Shipment) IsCancelled() bool {
	return s.overall == Cancelled
}

// HasCustomer reports whether the given party is among the shipment's customers.
func (s *Shipment) HasCustomer(partyID kernel.UUID) bool {
	for _, id := range s.customerPartyIDs {
		if id.IsEqual(partyID) {
			return true
		}
	}
	return false
}

// ApplyDerived records a freshly derived overall status and risk. Returns
// true when either value actually changed; callers skip the write otherwise
// unless they explicitly want to touch updated_at. Cancelled shipments are
// never overwritten.
func (s *Shipment) ApplyDerived(overall OverallStatus, risk Risk, now time.Time) (bool, error) {
	if s.IsCancelled() {
		return false, nil
	}
	if err := overall.Validate(); err != nil {
		return false, err
	}
	if err := risk.Validate(); err != nil {
		return false, err
	}

	if s.overall == overall && s.risk == risk {
		return false, nil
	}
	s.overall = overall
	s.risk = risk
	s.updatedAt = now
	return true, nil
}

// Touch bumps updated_at without changing derived state. Used when a caller
// explicitly requests a freshness stamp even though nothing changed.
func (s *Shipment) Touch(now time.Time) {
	s.updatedAt = now
}

// Cancel manually terminates the shipment. Cancelling twice is a no-op.
func (s *Shipment) Cancel(now time.Time) {
	s.overall = Cancelled
	s.updatedAt = now
}
