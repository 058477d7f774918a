package queries

import (
	"errors"
	"time"

	"shiptrack/internal/core/domain/model/kernel"
	"shiptrack/internal/pkg/guard"
)

var ErrGetUserAlertsQueryIsNotConstructed = errors.New(
	"GetUserAlertsQuery must be created via NewGetUserAlertsQuery constructor",
)

// GetUserAlertsQuery retrieves one recipient's deadline alerts. Recipients
// poll this; there is no push channel.
type GetUserAlertsQuery struct { //nolint:recvcheck //using for validation
	userID kernel.UUID

	guard guard.ConstructorGuard
}

// NewGetUserAlertsQuery creates a query for one user's alerts.
func NewGetUserAlertsQuery(userID kernel.UUID) (GetUserAlertsQuery, error) {
	query := GetUserAlertsQuery{guard: guard.NewConstructorGuard()}

	if err := query.setUserID(userID); err != nil {
		return GetUserAlertsQuery{}, err
	}

	return query, nil
}

// Validate ensures the query was created through the constructor.
func (q GetUserAlertsQuery) Validate() error {
	return q.guard.Validate(ErrGetUserAlertsQueryIsNotConstructed)
}

// UserID returns the alert recipient being queried.
func (q GetUserAlertsQuery) UserID() kernel.UUID {
	return q.userID
}

func (q *GetUserAlertsQuery) setUserID(userID kernel.UUID) error {
	if err := userID.Validate(); err != nil {
		return err
	}

	q.userID = userID
	return nil
}

// GetUserAlertsQueryResponse is one alert row for the recipient.
type GetUserAlertsQueryResponse struct {
	ID         kernel.UUID
	ShipmentID kernel.UUID
	StepID     kernel.UUID
	Kind       string
	DueAt      time.Time
	CreatedAt  time.Time
}
