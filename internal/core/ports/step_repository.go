// Package ports defines the persistence and directory contracts of the
// shipment tracking core. These interfaces establish contracts between the
// domain layer and infrastructure, enabling dependency inversion and
// testability.
package ports

import (
	"context"

	"shiptrack/internal/core/domain/model/kernel"
	"shiptrack/internal/core/domain/model/step"
)

// StepRepository defines the persistence contract for workflow steps.
type StepRepository interface {
	// Add persists a new step.
	Add(ctx context.Context, s *step.Step) error

	// Update persists changes to an existing step.
	Update(ctx context.Context, s *step.Step) error

	// Get retrieves a step by its unique identifier.
	Get(ctx context.Context, id kernel.UUID) (*step.Step, error)

	// GetAllByShipmentID retrieves every step of a shipment ordered by
	// sequence index. Evaluators and the status aggregator always work on
	// this full set.
	GetAllByShipmentID(ctx context.Context, shipmentID kernel.UUID) ([]*step.Step, error)
}
