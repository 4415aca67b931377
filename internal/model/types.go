// Package model defines the immutable value types that flow through the
// matching core: orders, trades, events, and the enumerations that gate
// their handling. Nothing in this package touches book state.
package model

import (
	"github.com/google/uuid"
	"github.com/shopspring/decimal"
)

// Price is an exact decimal value. Comparison and equality are total;
// this type never carries a binary float representation.
type Price = decimal.Decimal

// Amount is a non-negative quantity in minor units (e.g. 10^-6 of a token).
type Amount = uint64

// OrderId is caller-supplied and assumed unique across the book's lifetime.
type OrderId = uint64

// TradeId is assigned monotonically by the engine.
type TradeId = uint64

// UserId is opaque UUID-shaped attribution, echoed on trades only.
type UserId = uuid.UUID

// OrderSide is which side of the book an order belongs to.
type OrderSide int

const (
	Buy OrderSide = iota
	Sell
)

func (s OrderSide) String() string {
	if s == Buy {
		return "Buy"
	}
	return "Sell"
}

// TimeInForce controls what happens to an unfilled residual.
type TimeInForce int

const (
	GTC TimeInForce = iota // Good-Till-Cancelled: residual rests.
	IOC                    // Immediate-Or-Cancel: residual is cancelled.
	FOK                    // Fill-Or-Kill: executes fully or not at all.
)

func (t TimeInForce) String() string {
	switch t {
	case GTC:
		return "GTC"
	case IOC:
		return "IOC"
	case FOK:
		return "FOK"
	default:
		return "UNKNOWN"
	}
}

// OrderKind discriminates OrderType's tagged variants.
type OrderKind int

const (
	KindMarket OrderKind = iota
	KindLimit
)

func (k OrderKind) String() string {
	if k == KindMarket {
		return "Market"
	}
	return "Limit"
}

// OrderType is the tagged Market|Limit variant of spec.md §3. Market
// orders carry no price and GTC semantics internally; they never rest.
// Limit-only fields (PostOnly, Price, Tif) are meaningless when Kind is
// KindMarket — callers must branch on Kind before consulting them.
type OrderType struct {
	Kind     OrderKind
	PostOnly bool
	Price    Price
	Tif      TimeInForce
}

// NewMarketOrder builds the Market variant.
func NewMarketOrder() OrderType {
	return OrderType{Kind: KindMarket}
}

// NewLimitOrder builds the Limit variant.
func NewLimitOrder(price Price, tif TimeInForce, postOnly bool) OrderType {
	return OrderType{Kind: KindLimit, PostOnly: postOnly, Price: price, Tif: tif}
}
