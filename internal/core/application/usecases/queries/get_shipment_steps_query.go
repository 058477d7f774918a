package queries

import (
	"errors"
	"time"

	"shiptrack/internal/core/domain/model/fieldtree"
	"shiptrack/internal/core/domain/model/kernel"
	"shiptrack/internal/pkg/guard"
)

var ErrGetShipmentStepsQueryIsNotConstructed = errors.New(
	"GetShipmentStepsQuery must be created via NewGetShipmentStepsQuery constructor",
)

// GetShipmentStepsQuery retrieves one shipment's steps with their field
// trees, for the shipment detail screen.
type GetShipmentStepsQuery struct { //nolint:recvcheck //using for validation
	shipmentID kernel.UUID

	guard guard.ConstructorGuard
}

// NewGetShipmentStepsQuery creates a query for one shipment's steps.
func NewGetShipmentStepsQuery(shipmentID kernel.UUID) (GetShipmentStepsQuery, error) {
	query := GetShipmentStepsQuery{guard: guard.NewConstructorGuard()}

	if err := query.setShipmentID(shipmentID); err != nil {
		return GetShipmentStepsQuery{}, err
	}

	return query, nil
}

// Validate ensures the query was created through the constructor.
func (q GetShipmentStepsQuery) Validate() error {
	return q.guard.Validate(ErrGetShipmentStepsQueryIsNotConstructed)
}

// ShipmentID returns the shipment being queried.
func (q GetShipmentStepsQuery) ShipmentID() kernel.UUID {
	return q.shipmentID
}

func (q *GetShipmentStepsQuery) setShipmentID(shipmentID kernel.UUID) error {
	if err := shipmentID.Validate(); err != nil {
		return err
	}

	q.shipmentID = shipmentID
	return nil
}

// GetShipmentStepsQueryResult is the shipment detail payload: the ordered
// step rows plus, for checkpoint-chain workflows, the lane to highlight.
type GetShipmentStepsQueryResult struct {
	Steps       []GetShipmentStepsQueryResponse
	CurrentLane *string
}

// GetShipmentStepsQueryResponse is one step row with its field tree.
type GetShipmentStepsQueryResponse struct {
	ID              kernel.UUID
	SequenceIndex   int
	Name            string
	OwnerRole       string
	Status          string
	DueAt           *time.Time
	StartedAt       *time.Time
	CompletedAt     *time.Time
	Fields          fieldtree.Tree
	Notes           string
	CustomerVisible bool
	IsExternal      bool
	Stages          []StepStageView
}

// StepStageView is one checkpoint stage of a region step, with the gap
// clamping already applied.
type StepStageView struct {
	Name   string
	Status string
}
