package queries

import (
	"context"

	"shiptrack/internal/core/domain/model/kernel"

	"github.com/google/uuid"
	"gorm.io/gorm"
)

// GetLotBalancesQueryHandler reads lot consumption from the database.
// The sum of allocations is computed in SQL; the lot quantity itself is
// immutable and read as stored.
type GetLotBalancesQueryHandler struct {
	db *gorm.DB
}

// NewGetLotBalancesQueryHandler creates a handler for lot balance queries.
func NewGetLotBalancesQueryHandler(db *gorm.DB) GetLotBalancesQueryHandler {
	return GetLotBalancesQueryHandler{db: db}
}

// Handle executes the lot balances query for one owner, oldest lot first.
func (h GetLotBalancesQueryHandler) Handle(
	ctx context.Context,
	query GetLotBalancesQuery,
) ([]GetLotBalancesQueryResponse, error) {
	if err := query.Validate(); err != nil {
		return nil, err
	}

	balances := make([]GetLotBalancesQueryResponse, 0)

	rows, err := h.db.WithContext(ctx).Raw(`
		SELECT
			l.id,
			l.good_id,
			l.quantity,
			COALESCE(SUM(a.taken_quantity), 0) AS taken_quantity
		FROM goods_lots l
		LEFT JOIN allocations a ON a.lot_id = l.id
		WHERE l.owner_user_id = ?
		GROUP BY l.id, l.good_id, l.quantity, l.created_at
		ORDER BY l.created_at
	`, query.OwnerUserID().Bytes()).Rows()
	if err != nil {
		return nil, err
	}
	defer rows.Close()

	for rows.Next() {
		var row GetLotBalancesQueryResponse
		var lotID, goodID uuid.UUID

		err = rows.Scan(&lotID, &goodID, &row.Quantity, &row.TakenQuantity)
		if err != nil {
			return nil, err
		}

		if row.LotID, err = kernel.UUIDFromBytes(lotID[:]); err != nil {
			return nil, err
		}
		if row.GoodID, err = kernel.UUIDFromBytes(goodID[:]); err != nil {
			return nil, err
		}
		row.Remaining = row.Quantity - row.TakenQuantity
		balances = append(balances, row)
	}

	if err = rows.Err(); err != nil {
		return nil, err
	}

	return balances, nil
}
