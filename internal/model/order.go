package model

import "fmt"

// IncomingOrder is the external-facing tuple accepted by MatchEngine.Process.
type IncomingOrder struct {
	OrderId   OrderId
	UserId    UserId
	Side      OrderSide
	Amount    Amount
	OrderType OrderType
}

// WorkingOrder is the internal normalized form of an IncomingOrder. For a
// Market order, Price is the sentinel zero and IsMarket holds; policy code
// must never consult Price when IsMarket is true.
type WorkingOrder struct {
	OrderId  OrderId
	UserId   UserId
	Side     OrderSide
	Amount   Amount
	Price    Price
	IsMarket bool
	PostOnly bool
	Tif      TimeInForce
}

// NewWorkingOrder is the total conversion of spec.md §4.5: Market maps to
// {price=0, is_market=true, post_only=false, tif=GTC}; Limit maps to
// {price=p, is_market=false, post_only, tif} preserving fields.
func NewWorkingOrder(order IncomingOrder) WorkingOrder {
	w := WorkingOrder{
		OrderId: order.OrderId,
		UserId:  order.UserId,
		Side:    order.Side,
		Amount:  order.Amount,
	}
	switch order.OrderType.Kind {
	case KindMarket:
		w.IsMarket = true
		w.Tif = GTC
	case KindLimit:
		w.Price = order.OrderType.Price
		w.PostOnly = order.OrderType.PostOnly
		w.Tif = order.OrderType.Tif
	}
	return w
}

func (o WorkingOrder) String() string {
	return fmt.Sprintf(
		"OrderId: %d Side: %v Amount: %d Price: %s IsMarket: %v PostOnly: %v Tif: %v",
		o.OrderId, o.Side, o.Amount, o.Price.String(), o.IsMarket, o.PostOnly, o.Tif,
	)
}

// BookOrder is a resting order on a BookSide. Amount is always > 0; an
// amount-zero BookOrder must never exist (spec.md §3 invariant 3).
type BookOrder struct {
	OrderId OrderId
	UserId  UserId
	Price   Price
	Amount  Amount
}

func (o BookOrder) String() string {
	return fmt.Sprintf("OrderId: %d Price: %s Amount: %d", o.OrderId, o.Price.String(), o.Amount)
}
