package queries

import (
	"context"

	"shiptrack/internal/core/domain/model/kernel"

	"github.com/google/uuid"
	"gorm.io/gorm"
)

// GetUserAlertsQueryHandler reads a recipient's alerts from the database.
type GetUserAlertsQueryHandler struct {
	db *gorm.DB
}

// NewGetUserAlertsQueryHandler creates a handler for alert queries.
func NewGetUserAlertsQueryHandler(db *gorm.DB) GetUserAlertsQueryHandler {
	return GetUserAlertsQueryHandler{db: db}
}

// Handle executes the alerts query, newest first.
func (h GetUserAlertsQueryHandler) Handle(
	ctx context.Context,
	query GetUserAlertsQuery,
) ([]GetUserAlertsQueryResponse, error) {
	if err := query.Validate(); err != nil {
		return nil, err
	}

	alerts := make([]GetUserAlertsQueryResponse, 0)

	rows, err := h.db.WithContext(ctx).Raw(`
		SELECT
			id,
			shipment_id,
			step_id,
			kind,
			due_at,
			created_at
		FROM alerts
		WHERE user_id = ?
		ORDER BY created_at DESC
	`, query.UserID().Bytes()).Rows()
	if err != nil {
		return nil, err
	}
	defer rows.Close()

	for rows.Next() {
		var row GetUserAlertsQueryResponse
		var id, shipmentID, stepID uuid.UUID

		err = rows.Scan(&id, &shipmentID, &stepID, &row.Kind, &row.DueAt, &row.CreatedAt)
		if err != nil {
			return nil, err
		}

		if row.ID, err = kernel.UUIDFromBytes(id[:]); err != nil {
			return nil, err
		}
		if row.ShipmentID, err = kernel.UUIDFromBytes(shipmentID[:]); err != nil {
			return nil, err
		}
		if row.StepID, err = kernel.UUIDFromBytes(stepID[:]); err != nil {
			return nil, err
		}
		alerts = append(alerts, row)
	}

	if err = rows.Err(); err != nil {
		return nil, err
	}

	return alerts, nil
}
