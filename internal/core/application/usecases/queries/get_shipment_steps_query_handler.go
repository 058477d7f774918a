package queries

import (
	"context"
	"database/sql"
	"encoding/json"
	"errors"

	"shiptrack/internal/core/domain/model/fieldtree"
	"shiptrack/internal/core/domain/model/kernel"
	"shiptrack/internal/core/domain/services/sequencing"
	"shiptrack/internal/core/domain/services/workflow"

	"github.com/google/uuid"
	"gorm.io/gorm"
)

// GetShipmentStepsQueryHandler reads a shipment's steps from the database.
// Field trees are stored as jsonb and decoded straight into the read model.
// For checkpoint-chain workflows the handler also derives the current lane
// from the decoded field trees.
type GetShipmentStepsQueryHandler struct {
	db        *gorm.DB
	workflows *workflow.Registry
}

// NewGetShipmentStepsQueryHandler creates a handler for step detail queries.
func NewGetShipmentStepsQueryHandler(db *gorm.DB, workflows *workflow.Registry) GetShipmentStepsQueryHandler {
	return GetShipmentStepsQueryHandler{db: db, workflows: workflows}
}

// Handle executes the steps query in sequence order.
func (h GetShipmentStepsQueryHandler) Handle(
	ctx context.Context,
	query GetShipmentStepsQuery,
) (GetShipmentStepsQueryResult, error) {
	result := GetShipmentStepsQueryResult{
		Steps: make([]GetShipmentStepsQueryResponse, 0),
	}

	if err := query.Validate(); err != nil {
		return result, err
	}

	var workflowCode string
	err := h.db.WithContext(ctx).Raw(`
		SELECT workflow_code FROM shipments WHERE id = ?
	`, query.ShipmentID().Bytes()).Row().Scan(&workflowCode)
	if err != nil {
		if errors.Is(err, sql.ErrNoRows) {
			return result, nil
		}
		return result, err
	}

	rows, err := h.db.WithContext(ctx).Raw(`
		SELECT
			id,
			sequence_index,
			name,
			owner_role,
			status,
			due_at,
			started_at,
			completed_at,
			fields,
			notes,
			customer_visible,
			is_external
		FROM steps
		WHERE shipment_id = ?
		ORDER BY sequence_index
	`, query.ShipmentID().Bytes()).Rows()
	if err != nil {
		return result, err
	}
	defer rows.Close()

	snapshot := sequencing.Snapshot{}

	for rows.Next() {
		var row GetShipmentStepsQueryResponse
		var id uuid.UUID
		var fields []byte

		err = rows.Scan(
			&id,
			&row.SequenceIndex,
			&row.Name,
			&row.OwnerRole,
			&row.Status,
			&row.DueAt,
			&row.StartedAt,
			&row.CompletedAt,
			&fields,
			&row.Notes,
			&row.CustomerVisible,
			&row.IsExternal,
		)
		if err != nil {
			return result, err
		}

		if row.ID, err = kernel.UUIDFromBytes(id[:]); err != nil {
			return result, err
		}

		row.Fields = fieldtree.New()
		if len(fields) > 0 {
			if err = json.Unmarshal(fields, &row.Fields); err != nil {
				return result, err
			}
		}
		snapshot[row.Name] = sequencing.StepFields{ID: row.ID, Fields: row.Fields}
		result.Steps = append(result.Steps, row)
	}

	if err = rows.Err(); err != nil {
		return result, err
	}

	if lane, ok := h.workflows.CurrentLane(workflowCode, snapshot); ok {
		result.CurrentLane = &lane
	}
	for i := range result.Steps {
		states, ok := h.workflows.StepStages(workflowCode, snapshot, result.Steps[i].Name)
		if !ok {
			continue
		}
		stages := make([]StepStageView, len(states))
		for j, state := range states {
			stages[j] = StepStageView{Name: state.Name, Status: state.Status.String()}
		}
		result.Steps[i].Stages = stages
	}

	return result, nil
}
