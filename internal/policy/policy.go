// Package policy implements the stateless predicate/guard functions that
// gate an order before it touches the book: post-only admissibility,
// FOK liquidity sufficiency, and aggressor/maker price crossing. None of
// these functions mutate a BookSide.
//
// Grounded line-for-line on original_source/policies.rs.
package policy

import (
	"matchcore/internal/model"
	"matchcore/internal/storage"
)

// CheckPostOnly rejects an order if PostOnly is set AND (IsMarket OR
// Tif is IOC/FOK). A GTC limit is the only admissible post-only form.
func CheckPostOnly(order model.WorkingOrder) (model.EngineEvent, bool) {
	if !order.PostOnly {
		return model.EngineEvent{}, true
	}
	if order.IsMarket {
		return model.OrderRejected(order.OrderId, model.PostOnlyViolation), false
	}
	if order.Tif == model.IOC || order.Tif == model.FOK {
		return model.OrderRejected(order.OrderId, model.PostOnlyViolation), false
	}
	return model.EngineEvent{}, true
}

// CheckPostOnlyStrict is CheckPostOnly plus the SPEC_FULL strict-mode
// extension: a post-only GTC limit that would already cross the opposite
// book's best price at placement is rejected too, before any matching
// begins. oppositeBest is (price, true) when the opposite side has resting
// liquidity, or (_, false) when it is empty (nothing to cross).
func CheckPostOnlyStrict(order model.WorkingOrder, oppositeBest model.Price, oppositeHasBest bool) (model.EngineEvent, bool) {
	if event, ok := CheckPostOnly(order); !ok {
		return event, false
	}
	if !order.PostOnly || order.IsMarket || !oppositeHasBest {
		return model.EngineEvent{}, true
	}
	crosses := false
	switch order.Side {
	case model.Buy:
		crosses = order.Price.GreaterThanOrEqual(oppositeBest)
	case model.Sell:
		crosses = order.Price.LessThanOrEqual(oppositeBest)
	}
	if crosses {
		return model.OrderRejected(order.OrderId, model.PostOnlyViolation), false
	}
	return model.EngineEvent{}, true
}

// CheckLiquidity is only meaningful for FOK: it cancels the order if its
// amount exceeds the opposite book's cumulative matchable liquidity at its
// price. No partial FOK execution ever occurs. Non-FOK orders always pass.
func CheckLiquidity(order model.WorkingOrder, opposite *storage.BookSide) (model.EngineEvent, bool) {
	if order.Tif != model.FOK {
		return model.EngineEvent{}, true
	}
	available := opposite.GetLiquidity(order.Price)
	if order.Amount > available {
		return model.OrderCancelled(order.OrderId, order.Amount, model.FokLiquidityShortage), false
	}
	return model.EngineEvent{}, true
}

// CheckPriceMatch is true for market aggressors; for limits, true iff the
// aggressor's price crosses the maker: a buy aggressor requires
// maker_price <= aggressor_price, a sell aggressor requires
// maker_price >= aggressor_price.
func CheckPriceMatch(side model.OrderSide, makerPrice, aggressorPrice model.Price, isMarket bool) bool {
	if isMarket {
		return true
	}
	switch side {
	case model.Buy:
		return makerPrice.LessThanOrEqual(aggressorPrice)
	case model.Sell:
		return makerPrice.GreaterThanOrEqual(aggressorPrice)
	default:
		return false
	}
}
