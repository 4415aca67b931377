package model

import "fmt"

// Trade records one fill. Price is always the maker's resting price; price
// improvement accrues to the aggressor.
type Trade struct {
	TradeId      TradeId
	MakerOrderId OrderId
	TakerOrderId OrderId
	BuyerId      UserId
	SellerId     UserId
	Price        Price
	Amount       Amount
}

func (t Trade) String() string {
	return fmt.Sprintf(
		"TradeId: %d Maker: %d Taker: %d Price: %s Amount: %d",
		t.TradeId, t.MakerOrderId, t.TakerOrderId, t.Price.String(), t.Amount,
	)
}
