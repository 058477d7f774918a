package inventory_test

import (
	"testing"
	"time"

	"shiptrack/internal/core/domain/model/inventory"
	"shiptrack/internal/core/domain/model/kernel"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func newTestLot(t *testing.T, quantity int) *inventory.GoodsLot {
	t.Helper()
	lot, err := inventory.NewGoodsLot(
		kernel.NewUUID(), kernel.NewUUID(), kernel.NewUUID(), kernel.NewUUID(),
		nil, true, quantity, time.Now())
	require.NoError(t, err)
	return lot
}

func TestNewGoodsLot(t *testing.T) {
	t.Run("accepts zero quantity", func(t *testing.T) {
		lot := newTestLot(t, 0)
		assert.Equal(t, 0, lot.Quantity())
	})

	t.Run("rejects negative quantity", func(t *testing.T) {
		_, err := inventory.NewGoodsLot(
			kernel.NewUUID(), kernel.NewUUID(), kernel.NewUUID(), kernel.NewUUID(),
			nil, false, -5, time.Now())
		require.ErrorIs(t, err, inventory.ErrNegativeQuantity)
	})
}

func TestNewAllocation(t *testing.T) {
	t.Run("positive take", func(t *testing.T) {
		a, err := inventory.NewAllocation(
			kernel.NewUUID(), kernel.NewUUID(), kernel.NewUUID(), 40, time.Now())
		require.NoError(t, err)
		assert.Equal(t, 40, a.TakenQuantity())
	})

	t.Run("zero take is rejected", func(t *testing.T) {
		_, err := inventory.NewAllocation(
			kernel.NewUUID(), kernel.NewUUID(), kernel.NewUUID(), 0, time.Now())
		require.Error(t, err)
	})
}

func TestLedgerEntry(t *testing.T) {
	owner, good := kernel.NewUUID(), kernel.NewUUID()

	t.Run("signed quantity follows direction", func(t *testing.T) {
		in, err := inventory.NewLedgerEntry(
			kernel.NewUUID(), owner, good, nil, nil, nil, inventory.In, 100, "received", time.Now())
		require.NoError(t, err)
		assert.Equal(t, 100, in.SignedQuantity())

		out, err := inventory.NewLedgerEntry(
			kernel.NewUUID(), owner, good, nil, nil, nil, inventory.Out, 60, "allocated", time.Now())
		require.NoError(t, err)
		assert.Equal(t, -60, out.SignedQuantity())
	})

	t.Run("rejects invalid direction", func(t *testing.T) {
		_, err := inventory.NewLedgerEntry(
			kernel.NewUUID(), owner, good, nil, nil, nil, inventory.DirectionUnknown, 10, "", time.Now())
		require.Error(t, err)
	})

	t.Run("rejects non-positive quantity", func(t *testing.T) {
		_, err := inventory.NewLedgerEntry(
			kernel.NewUUID(), owner, good, nil, nil, nil, inventory.In, 0, "", time.Now())
		require.Error(t, err)
	})
}

func TestBalance_Apply(t *testing.T) {
	owner, good := kernel.NewUUID(), kernel.NewUUID()
	now := time.Now()

	mustEntry := func(d inventory.Direction, qty int) *inventory.LedgerEntry {
		e, err := inventory.NewLedgerEntry(
			kernel.NewUUID(), owner, good, nil, nil, nil, d, qty, "", now)
		require.NoError(t, err)
		return e
	}

	t.Run("balance conservation", func(t *testing.T) {
		b := &inventory.Balance{OwnerUserID: owner, GoodID: good}

		require.NoError(t, b.Apply(mustEntry(inventory.In, 100), now))
		require.NoError(t, b.Apply(mustEntry(inventory.Out, 60), now))
		require.NoError(t, b.Apply(mustEntry(inventory.Out, 40), now))

		assert.Equal(t, 0, b.Quantity)
	})

	t.Run("never goes negative", func(t *testing.T) {
		b := &inventory.Balance{OwnerUserID: owner, GoodID: good}

		require.NoError(t, b.Apply(mustEntry(inventory.In, 10), now))
		err := b.Apply(mustEntry(inventory.Out, 11), now)
		require.ErrorIs(t, err, inventory.ErrInsufficientBalance)
		assert.Equal(t, 10, b.Quantity)
	})
}
