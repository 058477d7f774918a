package queries

import (
	"errors"

	"shiptrack/internal/core/domain/model/kernel"
	"shiptrack/internal/pkg/guard"
)

var ErrGetLotBalancesQueryIsNotConstructed = errors.New(
	"GetLotBalancesQuery must be created via NewGetLotBalancesQuery constructor",
)

// GetLotBalancesQuery retrieves an owner's lots with their remaining
// quantities. Remaining is the immutable lot quantity minus the sum of its
// allocations.
type GetLotBalancesQuery struct { //nolint:recvcheck //using for validation
	ownerUserID kernel.UUID

	guard guard.ConstructorGuard
}

// NewGetLotBalancesQuery creates a query for one owner's lot balances.
func NewGetLotBalancesQuery(ownerUserID kernel.UUID) (GetLotBalancesQuery, error) {
	query := GetLotBalancesQuery{guard: guard.NewConstructorGuard()}

	if err := query.setOwnerUserID(ownerUserID); err != nil {
		return GetLotBalancesQuery{}, err
	}

	return query, nil
}

// Validate ensures the query was created through the constructor.
func (q GetLotBalancesQuery) Validate() error {
	return q.guard.Validate(ErrGetLotBalancesQueryIsNotConstructed)
}

// OwnerUserID returns the inventory owner being queried.
func (q GetLotBalancesQuery) OwnerUserID() kernel.UUID {
	return q.ownerUserID
}

func (q *GetLotBalancesQuery) setOwnerUserID(ownerUserID kernel.UUID) error {
	if err := ownerUserID.Validate(); err != nil {
		return err
	}

	q.ownerUserID = ownerUserID
	return nil
}

// GetLotBalancesQueryResponse is one lot with its consumption so far.
type GetLotBalancesQueryResponse struct {
	LotID         kernel.UUID
	GoodID        kernel.UUID
	Quantity      int
	TakenQuantity int
	Remaining     int
}
