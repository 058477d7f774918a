package shipment

import (
	"errors"
	"fmt"
	"time"

	"shiptrack/internal/core/domain/model/kernel"
	"shiptrack/internal/pkg/errs"
)

var (
	// ErrExceptionIsNotConstructed is returned when an Exception instance was
	// not created through the NewException or RestoreException factory methods.
	ErrExceptionIsNotConstructed = errors.New("Exception must be created via NewException or RestoreException")

	// ErrExceptionAlreadyResolved is returned when resolving an exception twice.
	ErrExceptionAlreadyResolved = errors.New("exception is already resolved")
)

// ExceptionStatus is the lifecycle state of an exception: open or resolved.
type ExceptionStatus int

const (
	ExceptionStatusUnknown ExceptionStatus = iota
	ExceptionOpen
	ExceptionResolved
)

// String returns the string representation of the exception status.
func (s ExceptionStatus) String() string {
	switch s {
	case ExceptionOpen:
		return "Open"
	case ExceptionResolved:
		return "Resolved"
	default:
		return "Unknown"
	}
}

// Exception records a problem raised by staff against a shipment, e.g. a
// damaged container or a missing document. While open, its default risk
// feeds the shipment's derived risk rating.
type Exception struct {
	id              kernel.UUID
	shipmentID      kernel.UUID
	exceptionTypeID kernel.UUID
	status          ExceptionStatus
	defaultRisk     Risk
	raisedAt        time.Time
	resolvedAt      *time.Time

	isConstructed bool
}

// NewException raises an open exception against a shipment.
func NewException(
	id kernel.UUID,
	shipmentID kernel.UUID,
	exceptionTypeID kernel.UUID,
	defaultRisk Risk,
	now time.Time,
) (*Exception, error) {
	if err := id.Validate(); err != nil {
		return nil, err
	}
	if err := shipmentID.Validate(); err != nil {
		return nil, err
	}
	if err := exceptionTypeID.Validate(); err != nil {
		return nil, err
	}
	if err := defaultRisk.Validate(); err != nil {
		return nil, err
	}

	return &Exception{
		id:              id,
		shipmentID:      shipmentID,
		exceptionTypeID: exceptionTypeID,
		status:          ExceptionOpen,
		defaultRisk:     defaultRisk,
		raisedAt:        now,
		isConstructed:   true,
	}, nil
}

// RestoreException reconstructs an exception from persistence.
func RestoreException(
	id kernel.UUID,
	shipmentID kernel.UUID,
	exceptionTypeID kernel.UUID,
	status ExceptionStatus,
	defaultRisk Risk,
	raisedAt time.Time,
	resolvedAt *time.Time,
) (*Exception, error) {
	if err := id.Validate(); err != nil {
		return nil, err
	}
	if err := defaultRisk.Validate(); err != nil {
		return nil, err
	}

	return &Exception{
		id:              id,
		shipmentID:      shipmentID,
		exceptionTypeID: exceptionTypeID,
		status:          status,
		defaultRisk:     defaultRisk,
		raisedAt:        raisedAt,
		resolvedAt:      resolvedAt,
		isConstructed:   true,
	}, nil
}

// Validate ensures the Exception instance was properly constructed.
func (e *Exception) Validate() error {
	if e == nil || !e.isConstructed {
		return ErrExceptionIsNotConstructed
	}
	return nil
}

func (e *Exception) ID() kernel.UUID              { return e.id }
func (e *Exception) ShipmentID() kernel.UUID      { return e.shipmentID }
func (e *Exception) ExceptionTypeID() kernel.UUID { return e.exceptionTypeID }
func (e *Exception) Status() ExceptionStatus      { return e.status }
func (e *Exception) DefaultRisk() Risk            { return e.defaultRisk }
func (e *Exception) RaisedAt() time.Time          { return e.raisedAt }
func (e *Exception) ResolvedAt() *time.Time       { return e.resolvedAt }

// IsOpen reports whether the exception still contributes to risk.
func (e *Exception) IsOpen() bool {
	return e.status == ExceptionOpen
}

// Resolve closes the exception. Resolving twice is an error so callers
// notice double submissions.
func (e *Exception) Resolve(now time.Time) error {
	if e.status == ExceptionResolved {
		return ErrExceptionAlreadyResolved
	}
	e.status = ExceptionResolved
	e.resolvedAt = &now
	return nil
}

// ExceptionStatusFromString parses an exception status name.
// Returns an error for unrecognized names.
func ExceptionStatusFromString(name string) (ExceptionStatus, error) {
	switch name {
	case "Open":
		return ExceptionOpen, nil
	case "Resolved":
		return ExceptionResolved, nil
	default:
		return ExceptionStatusUnknown, errs.NewValueIsInvalidErrorWithCause(
			"exception status", fmt.Errorf("%q is not a valid exception status name", name))
	}
}
