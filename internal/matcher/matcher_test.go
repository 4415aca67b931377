package matcher_test

import (
	"testing"

	"matchcore/internal/matcher"
	"matchcore/internal/model"
	"matchcore/internal/storage"

	"github.com/google/uuid"
	"github.com/shopspring/decimal"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func resting(id model.OrderId, price string, amount model.Amount) model.BookOrder {
	return model.BookOrder{
		OrderId: id,
		UserId:  uuid.New(),
		Price:   decimal.RequireFromString(price),
		Amount:  amount,
	}
}

// S2 — walk the book: resting asks A@100x5, A@100x3, A@101x10; a limit buy
// at 101 for 12 produces three trades and leaves no residual.
func TestHardMatch_WalksMultiplePriceLevels(t *testing.T) {
	asks := storage.NewBookSide(true)
	require.True(t, asks.Insert(resting(1, "100", 5)))
	require.True(t, asks.Insert(resting(2, "100", 3)))
	require.True(t, asks.Insert(resting(3, "101", 10)))

	aggressor := model.WorkingOrder{
		OrderId: 99,
		UserId:  uuid.New(),
		Side:    model.Buy,
		Amount:  12,
		Price:   decimal.RequireFromString("101"),
	}
	var nextTradeId model.TradeId = 1

	trades := matcher.HardMatch(&aggressor, asks, &nextTradeId)

	require.Len(t, trades, 3)
	assert.Equal(t, model.OrderId(1), trades[0].MakerOrderId)
	assert.Equal(t, model.Amount(5), trades[0].Amount)
	assert.Equal(t, model.OrderId(2), trades[1].MakerOrderId)
	assert.Equal(t, model.Amount(3), trades[1].Amount)
	assert.Equal(t, model.OrderId(3), trades[2].MakerOrderId)
	assert.Equal(t, model.Amount(4), trades[2].Amount)
	assert.Equal(t, model.Amount(0), aggressor.Amount)

	remaining, ok := asks.PeekBest()
	require.True(t, ok)
	assert.Equal(t, model.Amount(6), remaining.Amount)
	assert.Equal(t, model.OrderId(3), remaining.OrderId)
}

func TestHardMatch_StopsWhenPriceNoLongerCrosses(t *testing.T) {
	asks := storage.NewBookSide(true)
	require.True(t, asks.Insert(resting(1, "105", 5)))

	aggressor := model.WorkingOrder{
		OrderId: 1,
		UserId:  uuid.New(),
		Side:    model.Buy,
		Amount:  10,
		Price:   decimal.RequireFromString("100"),
	}
	var nextTradeId model.TradeId

	trades := matcher.HardMatch(&aggressor, asks, &nextTradeId)
	assert.Empty(t, trades)
	assert.Equal(t, model.Amount(10), aggressor.Amount)
	assert.Equal(t, 1, asks.Len())
}

func TestHardMatch_TradePriceIsAlwaysMakerPrice(t *testing.T) {
	asks := storage.NewBookSide(true)
	require.True(t, asks.Insert(resting(1, "100", 10)))

	aggressor := model.WorkingOrder{
		OrderId:  1,
		UserId:   uuid.New(),
		Side:     model.Buy,
		Amount:   5,
		IsMarket: true,
	}
	var nextTradeId model.TradeId

	trades := matcher.HardMatch(&aggressor, asks, &nextTradeId)
	require.Len(t, trades, 1)
	assert.True(t, trades[0].Price.Equal(decimal.RequireFromString("100")))
}

func TestHardMatch_MonotonicTradeIds(t *testing.T) {
	asks := storage.NewBookSide(true)
	require.True(t, asks.Insert(resting(1, "100", 1)))
	require.True(t, asks.Insert(resting(2, "100", 1)))

	aggressor := model.WorkingOrder{OrderId: 1, UserId: uuid.New(), Side: model.Buy, Amount: 2, IsMarket: true}
	var nextTradeId model.TradeId = 7

	trades := matcher.HardMatch(&aggressor, asks, &nextTradeId)
	require.Len(t, trades, 2)
	assert.Equal(t, model.TradeId(7), trades[0].TradeId)
	assert.Equal(t, model.TradeId(8), trades[1].TradeId)
	assert.Equal(t, model.TradeId(9), nextTradeId)
}
