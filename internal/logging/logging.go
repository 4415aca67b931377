// Package logging renders ingested orders and produced events for
// operators. Grounded on original_source/logger.rs (same two entry
// points, same per-trade line shape), reimplemented with zerolog the way
// the teacher's internal/net package uses it throughout.
package logging

import (
	"matchcore/internal/model"

	"github.com/rs/zerolog/log"
)

const minorUnitsScale = 1_000_000.0

func toMajorUnits(amount model.Amount) float64 {
	return float64(amount) / minorUnitsScale
}

// Order logs one ingested order.
func Order(seq uint64, order model.IncomingOrder) {
	log.Info().
		Uint64("seq", seq).
		Uint64("order_id", order.OrderId).
		Str("side", order.Side.String()).
		Float64("amount", toMajorUnits(order.Amount)).
		Str("kind", order.OrderType.Kind.String()).
		Msg("order received")
}

// Events logs one block per event produced by a single Process/Cancel call.
func Events(events []model.EngineEvent) {
	for _, event := range events {
		switch event.Kind {
		case model.EventTradeExecuted:
			trade := event.Trade
			log.Info().
				Uint64("trade_id", trade.TradeId).
				Uint64("maker_order_id", trade.MakerOrderId).
				Uint64("taker_order_id", trade.TakerOrderId).
				Str("price", trade.Price.String()).
				Float64("amount", toMajorUnits(trade.Amount)).
				Msg("trade executed")
		case model.EventOrderPlaced:
			log.Info().
				Uint64("order_id", event.Order.OrderId).
				Str("side", event.Side.String()).
				Str("price", event.Order.Price.String()).
				Float64("amount", toMajorUnits(event.Order.Amount)).
				Msg("order placed")
		case model.EventOrderCancelled:
			log.Info().
				Uint64("order_id", event.OrderId).
				Str("reason", event.CancelReason.String()).
				Float64("remaining_amount", toMajorUnits(event.RemainingAmount)).
				Msg("order cancelled")
		case model.EventOrderRejected:
			log.Warn().
				Uint64("order_id", event.OrderId).
				Str("reason", event.RejectReason.String()).
				Msg("order rejected")
		}
	}
}
