package storage_test

import (
	"testing"

	"matchcore/internal/model"
	"matchcore/internal/storage"

	"github.com/google/uuid"
	"github.com/shopspring/decimal"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func order(id model.OrderId, price string, amount model.Amount) model.BookOrder {
	return model.BookOrder{
		OrderId: id,
		UserId:  uuid.New(),
		Price:   decimal.RequireFromString(price),
		Amount:  amount,
	}
}

func TestBookSide_InsertPeekPop_AskOrdering(t *testing.T) {
	asks := storage.NewBookSide(true)

	assert.True(t, asks.Insert(order(2, "101", 10)))
	assert.True(t, asks.Insert(order(1, "100", 5)))
	assert.True(t, asks.Insert(order(3, "100", 3)))

	best, ok := asks.PeekBest()
	require.True(t, ok)
	assert.Equal(t, model.OrderId(1), best.OrderId, "lower order_id wins at equal price")

	popped, ok := asks.PopBest()
	require.True(t, ok)
	assert.Equal(t, model.OrderId(1), popped.OrderId)

	popped, ok = asks.PopBest()
	require.True(t, ok)
	assert.Equal(t, model.OrderId(3), popped.OrderId)

	popped, ok = asks.PopBest()
	require.True(t, ok)
	assert.Equal(t, model.OrderId(2), popped.OrderId)

	_, ok = asks.PopBest()
	assert.False(t, ok)
}

func TestBookSide_BidOrdering(t *testing.T) {
	bids := storage.NewBookSide(false)

	require.True(t, bids.Insert(order(1, "99", 5)))
	require.True(t, bids.Insert(order(2, "100", 5)))
	require.True(t, bids.Insert(order(3, "98", 5)))

	best, ok := bids.BestPrice()
	require.True(t, ok)
	assert.True(t, best.Equal(decimal.RequireFromString("100")))
}

func TestBookSide_InsertDuplicateIdIsNoOp(t *testing.T) {
	side := storage.NewBookSide(true)
	require.True(t, side.Insert(order(1, "100", 5)))
	assert.False(t, side.Insert(order(1, "101", 9)))
	assert.Equal(t, 1, side.Len())
}

func TestBookSide_RemoveRestoresEmptySide(t *testing.T) {
	side := storage.NewBookSide(true)
	o := order(1, "100", 5)
	require.True(t, side.Insert(o))

	removed, ok := side.Remove(1)
	require.True(t, ok)
	assert.Equal(t, o, removed)
	assert.Equal(t, 0, side.Len())
	assert.Equal(t, model.Amount(0), side.GetLiquidity(decimal.RequireFromString("1000")))

	_, ok = side.Remove(1)
	assert.False(t, ok, "removing an already-removed id reports absent")
}

func TestBookSide_GetLiquidity_AskCumulativeAtOrBelow(t *testing.T) {
	asks := storage.NewBookSide(true)
	require.True(t, asks.Insert(order(1, "100", 5)))
	require.True(t, asks.Insert(order(2, "100", 3)))
	require.True(t, asks.Insert(order(3, "101", 10)))

	assert.Equal(t, model.Amount(8), asks.GetLiquidity(decimal.RequireFromString("100")))
	assert.Equal(t, model.Amount(18), asks.GetLiquidity(decimal.RequireFromString("101")))
	assert.Equal(t, model.Amount(0), asks.GetLiquidity(decimal.RequireFromString("99")))
}

func TestBookSide_GetLiquidity_BidCumulativeAtOrAbove(t *testing.T) {
	bids := storage.NewBookSide(false)
	require.True(t, bids.Insert(order(1, "100", 5)))
	require.True(t, bids.Insert(order(2, "99", 3)))
	require.True(t, bids.Insert(order(3, "98", 10)))

	assert.Equal(t, model.Amount(5), bids.GetLiquidity(decimal.RequireFromString("100")))
	assert.Equal(t, model.Amount(8), bids.GetLiquidity(decimal.RequireFromString("99")))
	assert.Equal(t, model.Amount(18), bids.GetLiquidity(decimal.RequireFromString("98")))
}

func TestBookSide_LiquidityIndexHasNoZeroEntries(t *testing.T) {
	side := storage.NewBookSide(true)
	require.True(t, side.Insert(order(1, "100", 5)))
	require.True(t, side.Insert(order(2, "100", 3)))

	_, ok := side.Remove(1)
	require.True(t, ok)
	assert.Equal(t, model.Amount(3), side.GetLiquidity(decimal.RequireFromString("100")))

	_, ok = side.Remove(2)
	require.True(t, ok)
	assert.Equal(t, model.Amount(0), side.GetLiquidity(decimal.RequireFromString("100")))
}

func TestBookSide_InsertPopRoundTrip(t *testing.T) {
	side := storage.NewBookSide(true)
	o := order(5, "100", 7)
	require.True(t, side.Insert(o))

	popped, ok := side.PopBest()
	require.True(t, ok)
	assert.Equal(t, o, popped)
	assert.Equal(t, 0, side.Len())
}

func TestBookSide_Iter_BestFirst(t *testing.T) {
	asks := storage.NewBookSide(true)
	require.True(t, asks.Insert(order(2, "101", 1)))
	require.True(t, asks.Insert(order(1, "100", 1)))

	iter := asks.Iter()
	require.Len(t, iter, 2)
	assert.Equal(t, model.OrderId(1), iter[0].OrderId)
	assert.Equal(t, model.OrderId(2), iter[1].OrderId)
}
