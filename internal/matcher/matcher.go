// Package matcher implements the aggressor-vs-book execution loop:
// spec.md §4.3, grounded line-for-line on original_source/matcher.rs.
package matcher

import (
	"matchcore/internal/model"
	"matchcore/internal/policy"
	"matchcore/internal/storage"
)

// HardMatch drains matchable liquidity from the opposite book side into
// aggressor, mutating aggressor.Amount down to its residual and returning
// the trades produced, in match order. Trade price is always the maker's
// resting price; a partially filled maker is re-inserted under the same
// (price, order_id) key, preserving its time priority at that level. The
// loop stops when aggressor is exhausted, the opposite side is empty, or
// the best opposite price no longer crosses — it never consumes liquidity
// that fails the price check.
func HardMatch(aggressor *model.WorkingOrder, opposite *storage.BookSide, nextTradeId *model.TradeId) []model.Trade {
	var trades []model.Trade

	for aggressor.Amount > 0 {
		maker, ok := opposite.PeekBest()
		if !ok {
			break
		}

		if !policy.CheckPriceMatch(aggressor.Side, maker.Price, aggressor.Price, aggressor.IsMarket) {
			break
		}

		maker, ok = opposite.PopBest()
		if !ok {
			break
		}

		qty := min(aggressor.Amount, maker.Amount)

		trade := model.Trade{
			TradeId:      *nextTradeId,
			MakerOrderId: maker.OrderId,
			TakerOrderId: aggressor.OrderId,
			Amount:       qty,
			Price:        maker.Price,
		}
		switch aggressor.Side {
		case model.Buy:
			trade.BuyerId = aggressor.UserId
			trade.SellerId = maker.UserId
		case model.Sell:
			trade.BuyerId = maker.UserId
			trade.SellerId = aggressor.UserId
		}
		*nextTradeId++

		trades = append(trades, trade)

		aggressor.Amount -= qty
		maker.Amount -= qty

		if maker.Amount > 0 {
			opposite.Insert(maker)
		}
	}

	return trades
}
