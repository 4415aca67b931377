package model

import "fmt"

// CancelReason explains why a resting or in-flight order was cancelled.
type CancelReason int

const (
	UserRequest CancelReason = iota
	IocExpired
	FokLiquidityShortage
)

func (r CancelReason) String() string {
	switch r {
	case UserRequest:
		return "UserRequest"
	case IocExpired:
		return "IocExpired"
	case FokLiquidityShortage:
		return "FokLiquidityShortage"
	default:
		return "UNKNOWN"
	}
}

// RejectReason explains why an order was refused before any liquidity was
// touched. InvalidPrice, InvalidAmount, and SymbolNotFound are reserved for
// a pre-core validator that does not exist in this repo (spec.md §7).
type RejectReason int

const (
	PostOnlyViolation RejectReason = iota
	InvalidPrice
	InvalidAmount
	SymbolNotFound
)

func (r RejectReason) String() string {
	switch r {
	case PostOnlyViolation:
		return "PostOnlyViolation"
	case InvalidPrice:
		return "InvalidPrice"
	case InvalidAmount:
		return "InvalidAmount"
	case SymbolNotFound:
		return "SymbolNotFound"
	default:
		return "UNKNOWN"
	}
}

// EventKind discriminates EngineEvent's tagged variants.
type EventKind int

const (
	EventTradeExecuted EventKind = iota
	EventOrderPlaced
	EventOrderCancelled
	EventOrderRejected
)

// EngineEvent is the tagged variant emitted by MatchEngine.Process and
// MatchEngine.Cancel. Only the fields relevant to Kind are populated.
type EngineEvent struct {
	Kind EventKind

	Trade Trade // EventTradeExecuted

	Order BookOrder // EventOrderPlaced
	Side  OrderSide // EventOrderPlaced

	OrderId          OrderId // EventOrderCancelled, EventOrderRejected
	RemainingAmount  Amount  // EventOrderCancelled
	CancelReason     CancelReason
	RejectReason     RejectReason
}

func TradeExecuted(trade Trade) EngineEvent {
	return EngineEvent{Kind: EventTradeExecuted, Trade: trade}
}

func OrderPlaced(order BookOrder, side OrderSide) EngineEvent {
	return EngineEvent{Kind: EventOrderPlaced, Order: order, Side: side}
}

func OrderCancelled(orderId OrderId, remaining Amount, reason CancelReason) EngineEvent {
	return EngineEvent{
		Kind:            EventOrderCancelled,
		OrderId:         orderId,
		RemainingAmount: remaining,
		CancelReason:    reason,
	}
}

func OrderRejected(orderId OrderId, reason RejectReason) EngineEvent {
	return EngineEvent{Kind: EventOrderRejected, OrderId: orderId, RejectReason: reason}
}

func (e EngineEvent) String() string {
	switch e.Kind {
	case EventTradeExecuted:
		return fmt.Sprintf("TradeExecuted{%s}", e.Trade)
	case EventOrderPlaced:
		return fmt.Sprintf("OrderPlaced{%s side=%v}", e.Order, e.Side)
	case EventOrderCancelled:
		return fmt.Sprintf("OrderCancelled{order_id=%d remaining=%d reason=%v}", e.OrderId, e.RemainingAmount, e.CancelReason)
	case EventOrderRejected:
		return fmt.Sprintf("OrderRejected{order_id=%d reason=%v}", e.OrderId, e.RejectReason)
	default:
		return "UNKNOWN_EVENT"
	}
}
