// Package queries contains read operations for retrieving system state.
// Implements the Query pattern for read operations in the CQRS architecture.
// Queries return optimized read models for specific use cases.
package queries

import (
	"errors"
	"time"

	"shiptrack/internal/core/domain/model/kernel"
	"shiptrack/internal/pkg/guard"
)

var ErrGetShipmentBoardQueryIsNotConstructed = errors.New(
	"GetShipmentBoardQuery must be created via NewGetShipmentBoardQuery constructor",
)

// GetShipmentBoardQuery retrieves the tracking board: every non-cancelled
// shipment with its derived status, risk, step progress and open exception
// count. This is the main operations screen.
type GetShipmentBoardQuery struct {
	guard guard.ConstructorGuard
}

// NewGetShipmentBoardQuery creates a query to retrieve the tracking board.
func NewGetShipmentBoardQuery() GetShipmentBoardQuery {
	return GetShipmentBoardQuery{guard: guard.NewConstructorGuard()}
}

// Validate ensures the query was created through the constructor.
func (q GetShipmentBoardQuery) Validate() error {
	return q.guard.Validate(ErrGetShipmentBoardQueryIsNotConstructed)
}

// GetShipmentBoardQueryResponse is one board row.
type GetShipmentBoardQueryResponse struct {
	ID             kernel.UUID
	WorkflowCode   string
	Overall        string
	Risk           string
	StepsTotal     int
	StepsDone      int
	OpenExceptions int
	UpdatedAt      time.Time
}
