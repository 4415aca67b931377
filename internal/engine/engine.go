// Package engine implements MatchEngine, the top-level facade of spec.md
// §4.4: it owns both BookSides and the trade-id counter and dispatches an
// IncomingOrder to policy checks, the matcher, and the book.
//
// Grounded on original_source/engine.rs for Process's dispatch logic and on
// the teacher's internal/engine/engine.go for the facade shape (a struct
// owning book state behind a small exported surface) plus
// internal/net/server.go's Engine interface (PlaceOrder/CancelOrder) for
// the supplemented Cancel operation.
package engine

import (
	"matchcore/internal/matcher"
	"matchcore/internal/model"
	"matchcore/internal/policy"
	"matchcore/internal/storage"
)

// MatchEngine is the sole mutator of its two book sides and the trade-id
// counter. It is single-threaded and synchronous: Process and Cancel must
// never be called concurrently (spec.md §5). Callers serialize calls
// through a single goroutine, as internal/transport does around Kafka
// ingress.
type MatchEngine struct {
	asks *storage.BookSide // ascending: best = lowest ask
	bids *storage.BookSide // descending: best = highest bid

	nextTradeId model.TradeId
}

// New builds an empty engine with no resting liquidity on either side.
func New() *MatchEngine {
	return &MatchEngine{
		asks: storage.NewBookSide(true),
		bids: storage.NewBookSide(false),
	}
}

// sideBook returns the BookSide an order of the given side rests on.
func (e *MatchEngine) sideBook(side model.OrderSide) *storage.BookSide {
	if side == model.Buy {
		return e.bids
	}
	return e.asks
}

// oppositeBook returns the BookSide an order of the given side matches
// against.
func (e *MatchEngine) oppositeBook(side model.OrderSide) *storage.BookSide {
	if side == model.Buy {
		return e.asks
	}
	return e.bids
}

// Process normalizes IncomingOrder, gates it through policy, matches it
// against the opposite side, and resolves any residual per its
// time-in-force. Events are returned in strict execution order: trades
// first (in match order), then at most one terminal event.
func (e *MatchEngine) Process(incoming model.IncomingOrder) []model.EngineEvent {
	order := model.NewWorkingOrder(incoming)
	if order.IsMarket {
		return e.handleMarket(&order)
	}
	return e.handleLimit(&order)
}

func (e *MatchEngine) handleMarket(order *model.WorkingOrder) []model.EngineEvent {
	if event, ok := policy.CheckPostOnly(*order); !ok {
		return []model.EngineEvent{event}
	}

	opposite := e.oppositeBook(order.Side)
	trades := matcher.HardMatch(order, opposite, &e.nextTradeId)

	events := make([]model.EngineEvent, 0, len(trades)+1)
	for _, trade := range trades {
		events = append(events, model.TradeExecuted(trade))
	}

	// SPEC_FULL market-order residual supplement: report what spec.md §4.4
	// step 3 otherwise drops silently.
	if order.Amount > 0 {
		events = append(events, model.OrderCancelled(order.OrderId, order.Amount, model.IocExpired))
	}
	return events
}

func (e *MatchEngine) handleLimit(order *model.WorkingOrder) []model.EngineEvent {
	opposite := e.oppositeBook(order.Side)

	best, hasBest := opposite.BestPrice()
	if event, ok := policy.CheckPostOnlyStrict(*order, best, hasBest); !ok {
		return []model.EngineEvent{event}
	}

	if event, ok := policy.CheckLiquidity(*order, opposite); !ok {
		return []model.EngineEvent{event}
	}

	trades := matcher.HardMatch(order, opposite, &e.nextTradeId)
	events := make([]model.EngineEvent, 0, len(trades)+1)
	for _, trade := range trades {
		events = append(events, model.TradeExecuted(trade))
	}

	if order.Amount == 0 {
		return events
	}

	switch order.Tif {
	case model.GTC:
		bookOrder := model.BookOrder{
			OrderId: order.OrderId,
			UserId:  order.UserId,
			Price:   order.Price,
			Amount:  order.Amount,
		}
		same := e.sideBook(order.Side)
		if !same.Insert(bookOrder) {
			// spec.md §7 "Core invariant violation": a duplicate order_id
			// can only happen if ingress violated the uniqueness contract
			// of spec.md §3. Abort rather than silently corrupt the book.
			panic("engine: duplicate order_id at placement")
		}
		events = append(events, model.OrderPlaced(bookOrder, order.Side))
	case model.IOC:
		events = append(events, model.OrderCancelled(order.OrderId, order.Amount, model.IocExpired))
	case model.FOK:
		// Unreachable for a correctly implemented liquidity check: FOK
		// either fills in full above, or is cancelled by CheckLiquidity
		// before any matching. Reaching here is a bug (spec.md §4.4 step 4c).
	}

	return events
}

// Cancel removes a resting order by id from the named side and returns a
// single OrderCancelled{UserRequest} event. The second return is false if
// the id is not currently resting on that side — not an error, since an
// already-filled or already-cancelled order is simply absent.
//
// Supplemented operation: see SPEC_FULL.md "Supplemented feature: order
// cancellation".
func (e *MatchEngine) Cancel(side model.OrderSide, orderID model.OrderId) (model.EngineEvent, bool) {
	removed, ok := e.sideBook(side).Remove(orderID)
	if !ok {
		return model.EngineEvent{}, false
	}
	return model.OrderCancelled(orderID, removed.Amount, model.UserRequest), true
}

// BestBid and BestAsk expose top-of-book for introspection/testing; they
// do not mutate state.
func (e *MatchEngine) BestBid() (model.Price, bool) { return e.bids.BestPrice() }
func (e *MatchEngine) BestAsk() (model.Price, bool) { return e.asks.BestPrice() }

// Asks and Bids expose the resting books for introspection/testing.
func (e *MatchEngine) Asks() []model.BookOrder { return e.asks.Iter() }
func (e *MatchEngine) Bids() []model.BookOrder { return e.bids.Iter() }
