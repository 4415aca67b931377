package policy_test

import (
	"testing"

	"matchcore/internal/model"
	"matchcore/internal/policy"
	"matchcore/internal/storage"

	"github.com/google/uuid"
	"github.com/shopspring/decimal"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func price(s string) decimal.Decimal { return decimal.RequireFromString(s) }

func workingLimit(side model.OrderSide, amount model.Amount, p string, tif model.TimeInForce, postOnly bool) model.WorkingOrder {
	return model.WorkingOrder{
		OrderId:  1,
		UserId:   uuid.New(),
		Side:     side,
		Amount:   amount,
		Price:    price(p),
		IsMarket: false,
		PostOnly: postOnly,
		Tif:      tif,
	}
}

func workingMarket(side model.OrderSide, amount model.Amount, postOnly bool) model.WorkingOrder {
	return model.WorkingOrder{
		OrderId:  1,
		UserId:   uuid.New(),
		Side:     side,
		Amount:   amount,
		IsMarket: true,
		PostOnly: postOnly,
		Tif:      model.GTC,
	}
}

func TestCheckPostOnly_AllowsGTCLimit(t *testing.T) {
	_, ok := policy.CheckPostOnly(workingLimit(model.Buy, 1, "100", model.GTC, true))
	assert.True(t, ok)
}

func TestCheckPostOnly_RejectsMarket(t *testing.T) {
	event, ok := policy.CheckPostOnly(workingMarket(model.Buy, 1, true))
	require.False(t, ok)
	assert.Equal(t, model.EventOrderRejected, event.Kind)
	assert.Equal(t, model.PostOnlyViolation, event.RejectReason)
}

func TestCheckPostOnly_RejectsIOCAndFOK(t *testing.T) {
	_, ok := policy.CheckPostOnly(workingLimit(model.Buy, 1, "100", model.IOC, true))
	assert.False(t, ok)

	_, ok = policy.CheckPostOnly(workingLimit(model.Buy, 1, "100", model.FOK, true))
	assert.False(t, ok)
}

func TestCheckPostOnly_IgnoresNonPostOnly(t *testing.T) {
	_, ok := policy.CheckPostOnly(workingMarket(model.Buy, 1, false))
	assert.True(t, ok)
}

func TestCheckPostOnlyStrict_RejectsCrossingBuy(t *testing.T) {
	order := workingLimit(model.Buy, 1, "101", model.GTC, true)
	event, ok := policy.CheckPostOnlyStrict(order, price("100"), true)
	require.False(t, ok)
	assert.Equal(t, model.PostOnlyViolation, event.RejectReason)
}

func TestCheckPostOnlyStrict_AllowsNonCrossingBuy(t *testing.T) {
	order := workingLimit(model.Buy, 1, "99", model.GTC, true)
	_, ok := policy.CheckPostOnlyStrict(order, price("100"), true)
	assert.True(t, ok)
}

func TestCheckPostOnlyStrict_RejectsCrossingSell(t *testing.T) {
	order := workingLimit(model.Sell, 1, "99", model.GTC, true)
	event, ok := policy.CheckPostOnlyStrict(order, price("100"), true)
	require.False(t, ok)
	assert.Equal(t, model.PostOnlyViolation, event.RejectReason)
}

func TestCheckPostOnlyStrict_NoOppositeLiquidityAlwaysPasses(t *testing.T) {
	order := workingLimit(model.Buy, 1, "1000", model.GTC, true)
	_, ok := policy.CheckPostOnlyStrict(order, price("0"), false)
	assert.True(t, ok)
}

func TestCheckLiquidity_NonFOKAlwaysPasses(t *testing.T) {
	opposite := storage.NewBookSide(true)
	order := workingLimit(model.Buy, 1000, "100", model.GTC, false)
	_, ok := policy.CheckLiquidity(order, opposite)
	assert.True(t, ok)
}

func TestCheckLiquidity_FOKCancelsOnShortage(t *testing.T) {
	opposite := storage.NewBookSide(true)
	opposite.Insert(model.BookOrder{OrderId: 1, UserId: uuid.New(), Price: price("100"), Amount: 5})

	order := workingLimit(model.Buy, 10, "100", model.FOK, false)
	event, ok := policy.CheckLiquidity(order, opposite)
	require.False(t, ok)
	assert.Equal(t, model.FokLiquidityShortage, event.CancelReason)
	assert.Equal(t, model.Amount(10), event.RemainingAmount)
}

func TestCheckLiquidity_FOKPassesOnSufficientCumulativeLiquidity(t *testing.T) {
	opposite := storage.NewBookSide(true)
	opposite.Insert(model.BookOrder{OrderId: 1, UserId: uuid.New(), Price: price("100"), Amount: 5})
	opposite.Insert(model.BookOrder{OrderId: 2, UserId: uuid.New(), Price: price("101"), Amount: 5})

	order := workingLimit(model.Buy, 10, "101", model.FOK, false)
	_, ok := policy.CheckLiquidity(order, opposite)
	assert.True(t, ok)
}

func TestCheckPriceMatch_MarketAlwaysCrosses(t *testing.T) {
	assert.True(t, policy.CheckPriceMatch(model.Buy, price("1000"), price("1"), true))
}

func TestCheckPriceMatch_BuyRequiresMakerAtOrBelowAggressor(t *testing.T) {
	assert.True(t, policy.CheckPriceMatch(model.Buy, price("100"), price("100"), false))
	assert.True(t, policy.CheckPriceMatch(model.Buy, price("99"), price("100"), false))
	assert.False(t, policy.CheckPriceMatch(model.Buy, price("101"), price("100"), false))
}

func TestCheckPriceMatch_SellRequiresMakerAtOrAboveAggressor(t *testing.T) {
	assert.True(t, policy.CheckPriceMatch(model.Sell, price("100"), price("100"), false))
	assert.True(t, policy.CheckPriceMatch(model.Sell, price("101"), price("100"), false))
	assert.False(t, policy.CheckPriceMatch(model.Sell, price("99"), price("100"), false))
}
