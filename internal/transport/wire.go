// Package transport implements the ingress/egress collaborators spec.md
// §1 treats as external: a Kafka consumer that decodes IncomingOrders (and
// the supplemented cancel command) into MatchEngine calls, and a Kafka
// producer that serializes EngineEvents back out, batched by size and
// time.
//
// Grounded on original_source/kafka.rs for the consume-loop control flow
// (deserialize, log-and-skip on malformed payloads, forward on a channel)
// and on the teacher's internal/worker.go (WorkerPool) and
// internal/net/server.go (tomb.Tomb-supervised accept/dispatch/shutdown,
// single-goroutine serialization in front of engine state) for the
// concurrency shape. The wire codec itself replaces the teacher's custom
// binary framing with the JSON payload spec.md §6 mandates.
package transport

import (
	"encoding/json"
	"fmt"

	"matchcore/internal/model"

	"github.com/google/uuid"
	"github.com/shopspring/decimal"
)

// wireMessage is the JSON shape accepted on the ingress topic: either a
// place-order message (order_type present) matching spec.md §6 exactly,
// or a cancel-order message (cancel_order_id present), the SPEC_FULL
// cancellation supplement.
type wireMessage struct {
	OrderId       uint64          `json:"order_id"`
	UserId        string          `json:"user_id"`
	Side          string          `json:"side"`
	Amount        uint64          `json:"amount"`
	OrderType     json.RawMessage `json:"order_type,omitempty"`
	CancelOrderId *uint64         `json:"cancel_order_id,omitempty"`
}

// wireLimit mirrors the { "Limit": { ... } } variant of spec.md §6.
type wireLimit struct {
	Limit struct {
		PostOnly bool   `json:"post_only"`
		Price    string `json:"price"`
		Tif      string `json:"tif"`
	} `json:"Limit"`
}

// IngressCommand is either a place order (Order != nil) or a cancel
// request (Cancel != nil); exactly one is set.
type IngressCommand struct {
	Order  *model.IncomingOrder
	Cancel *CancelRequest
}

// CancelRequest identifies a resting order to remove.
type CancelRequest struct {
	Side    model.OrderSide
	OrderId model.OrderId
}

// DecodeIngress parses one ingress message per spec.md §6's JSON payload,
// plus the SPEC_FULL cancel-order supplement. Malformed payloads return an
// error; callers must log and skip them rather than halt consumption.
func DecodeIngress(payload []byte) (IngressCommand, error) {
	var msg wireMessage
	if err := json.Unmarshal(payload, &msg); err != nil {
		return IngressCommand{}, fmt.Errorf("transport: malformed payload: %w", err)
	}

	side, err := decodeSide(msg.Side)
	if err != nil {
		return IngressCommand{}, err
	}

	if msg.CancelOrderId != nil {
		return IngressCommand{Cancel: &CancelRequest{Side: side, OrderId: *msg.CancelOrderId}}, nil
	}

	if len(msg.OrderType) == 0 {
		return IngressCommand{}, fmt.Errorf("transport: message has neither order_type nor cancel_order_id")
	}

	userId, err := uuid.Parse(msg.UserId)
	if err != nil {
		return IngressCommand{}, fmt.Errorf("transport: invalid user_id: %w", err)
	}

	orderType, err := decodeOrderType(msg.OrderType)
	if err != nil {
		return IngressCommand{}, err
	}

	order := model.IncomingOrder{
		OrderId:   msg.OrderId,
		UserId:    userId,
		Side:      side,
		Amount:    msg.Amount,
		OrderType: orderType,
	}
	return IngressCommand{Order: &order}, nil
}

func decodeSide(raw string) (model.OrderSide, error) {
	switch raw {
	case "Buy":
		return model.Buy, nil
	case "Sell":
		return model.Sell, nil
	default:
		return 0, fmt.Errorf("transport: invalid side %q", raw)
	}
}

func decodeTif(raw string) (model.TimeInForce, error) {
	switch raw {
	case "GTC":
		return model.GTC, nil
	case "IOC":
		return model.IOC, nil
	case "FOK":
		return model.FOK, nil
	default:
		return 0, fmt.Errorf("transport: invalid tif %q", raw)
	}
}

// EncodeIncomingOrder serializes a place-order command in the wireMessage
// shape DecodeIngress accepts. Used by ingress-side producers (orderctl)
// rather than the engine process itself.
func EncodeIncomingOrder(order model.IncomingOrder) ([]byte, error) {
	var orderType json.RawMessage
	var err error
	switch order.OrderType.Kind {
	case model.KindMarket:
		orderType, err = json.Marshal("Market")
	case model.KindLimit:
		limit := wireLimit{}
		limit.Limit.PostOnly = order.OrderType.PostOnly
		limit.Limit.Price = order.OrderType.Price.String()
		limit.Limit.Tif = order.OrderType.Tif.String()
		orderType, err = json.Marshal(limit)
	}
	if err != nil {
		return nil, err
	}

	msg := wireMessage{
		OrderId:   order.OrderId,
		UserId:    order.UserId.String(),
		Side:      order.Side.String(),
		Amount:    order.Amount,
		OrderType: orderType,
	}
	return json.Marshal(msg)
}

// EncodeCancelOrder serializes a cancel command in the wireMessage shape
// DecodeIngress accepts.
func EncodeCancelOrder(side model.OrderSide, orderID model.OrderId) ([]byte, error) {
	msg := wireMessage{
		Side:          side.String(),
		CancelOrderId: &orderID,
	}
	return json.Marshal(msg)
}

func decodeOrderType(raw json.RawMessage) (model.OrderType, error) {
	var tag string
	if err := json.Unmarshal(raw, &tag); err == nil {
		if tag == "Market" {
			return model.NewMarketOrder(), nil
		}
		return model.OrderType{}, fmt.Errorf("transport: invalid order_type %q", tag)
	}

	var limit wireLimit
	if err := json.Unmarshal(raw, &limit); err != nil {
		return model.OrderType{}, fmt.Errorf("transport: invalid order_type: %w", err)
	}
	price, err := decimal.NewFromString(limit.Limit.Price)
	if err != nil {
		return model.OrderType{}, fmt.Errorf("transport: invalid price: %w", err)
	}
	tif, err := decodeTif(limit.Limit.Tif)
	if err != nil {
		return model.OrderType{}, err
	}
	return model.NewLimitOrder(price, tif, limit.Limit.PostOnly), nil
}

// wireEvent is the JSON shape of one egress message: one EngineEvent,
// tagged by kind.
type wireEvent struct {
	Kind string `json:"kind"`

	TradeId      *uint64 `json:"trade_id,omitempty"`
	MakerOrderId *uint64 `json:"maker_order_id,omitempty"`
	TakerOrderId *uint64 `json:"taker_order_id,omitempty"`
	BuyerId      string  `json:"buyer_id,omitempty"`
	SellerId     string  `json:"seller_id,omitempty"`
	Price        string  `json:"price,omitempty"`
	Amount       *uint64 `json:"amount,omitempty"`

	OrderId         *uint64 `json:"order_id,omitempty"`
	Side            string  `json:"side,omitempty"`
	RemainingAmount *uint64 `json:"remaining_amount,omitempty"`
	Reason          string  `json:"reason,omitempty"`
}

// EncodeEgress serializes one EngineEvent as the JSON message placed on
// the egress topic. Batching by the egress adapter must not reorder
// events relative to this function's output order.
func EncodeEgress(event model.EngineEvent) ([]byte, error) {
	w := wireEvent{}
	switch event.Kind {
	case model.EventTradeExecuted:
		t := event.Trade
		w.Kind = "TradeExecuted"
		w.TradeId = &t.TradeId
		w.MakerOrderId = &t.MakerOrderId
		w.TakerOrderId = &t.TakerOrderId
		w.BuyerId = t.BuyerId.String()
		w.SellerId = t.SellerId.String()
		w.Price = t.Price.String()
		w.Amount = &t.Amount
	case model.EventOrderPlaced:
		w.Kind = "OrderPlaced"
		w.OrderId = &event.Order.OrderId
		w.Side = event.Side.String()
		w.Price = event.Order.Price.String()
		w.Amount = &event.Order.Amount
	case model.EventOrderCancelled:
		w.Kind = "OrderCancelled"
		w.OrderId = &event.OrderId
		w.RemainingAmount = &event.RemainingAmount
		w.Reason = event.CancelReason.String()
	case model.EventOrderRejected:
		w.Kind = "OrderRejected"
		w.OrderId = &event.OrderId
		w.Reason = event.RejectReason.String()
	default:
		return nil, fmt.Errorf("transport: unknown event kind %d", event.Kind)
	}
	return json.Marshal(w)
}
