package queries

import (
	"context"

	"shiptrack/internal/core/domain/model/kernel"

	"github.com/google/uuid"
	"gorm.io/gorm"
)

// GetShipmentBoardQueryHandler builds the tracking board from the database.
// Uses direct SQL for optimal read performance in the CQRS pattern; derived
// statuses are read as stored, never recomputed here.
type GetShipmentBoardQueryHandler struct {
	db *gorm.DB
}

// NewGetShipmentBoardQueryHandler creates a handler for board queries.
// Requires a GORM database connection for query execution.
func NewGetShipmentBoardQueryHandler(db *gorm.DB) GetShipmentBoardQueryHandler {
	return GetShipmentBoardQueryHandler{db: db}
}

// Handle executes the board query. Cancelled shipments are excluded;
// results are sorted by last update, newest first.
func (h GetShipmentBoardQueryHandler) Handle(
	ctx context.Context,
	query GetShipmentBoardQuery,
) ([]GetShipmentBoardQueryResponse, error) {
	if err := query.Validate(); err != nil {
		return nil, err
	}

	board := make([]GetShipmentBoardQueryResponse, 0)

	rows, err := h.db.WithContext(ctx).Raw(`
		SELECT
			s.id,
			s.workflow_code,
			s.overall_status,
			s.risk,
			s.updated_at,
			COUNT(st.id) AS steps_total,
			COUNT(st.id) FILTER (WHERE st.status = 'Done') AS steps_done,
			(
				SELECT COUNT(*)
				FROM exceptions e
				WHERE e.shipment_id = s.id AND e.status = 'Open'
			) AS open_exceptions
		FROM shipments s
		LEFT JOIN steps st ON st.shipment_id = s.id
		WHERE s.overall_status != 'Cancelled'
		GROUP BY s.id, s.workflow_code, s.overall_status, s.risk, s.updated_at
		ORDER BY s.updated_at DESC
	`).Rows()
	if err != nil {
		return nil, err
	}
	defer rows.Close()

	for rows.Next() {
		var row GetShipmentBoardQueryResponse
		var id uuid.UUID

		err = rows.Scan(
			&id,
			&row.WorkflowCode,
			&row.Overall,
			&row.Risk,
			&row.UpdatedAt,
			&row.StepsTotal,
			&row.StepsDone,
			&row.OpenExceptions,
		)
		if err != nil {
			return nil, err
		}

		shipmentID, idErr := kernel.UUIDFromBytes(id[:])
		if idErr != nil {
			return nil, idErr
		}
		row.ID = shipmentID
		board = append(board, row)
	}

	if err = rows.Err(); err != nil {
		return nil, err
	}

	return board, nil
}
