// Command orderctl is a CLI client that publishes IncomingOrder and cancel
// messages onto the matching engine's ingress topic. Adapted from the
// teacher's cmd/client/client.go: same flag surface (owner/side/type/price/
// qty, comma-separated quantity batches, place/cancel actions) but
// publishing JSON to Kafka instead of framing a custom binary message over
// a raw TCP socket.
package main

import (
	"context"
	"flag"
	"fmt"
	"log"
	"os"
	"strconv"
	"strings"
	"time"

	"matchcore/internal/model"
	"matchcore/internal/transport"

	"github.com/google/uuid"
	"github.com/segmentio/kafka-go"
	"github.com/shopspring/decimal"
)

func main() {
	brokers := flag.String("brokers", "localhost:9092", "Comma-separated Kafka broker addresses")
	topic := flag.String("topic", "orders", "Ingress topic to publish to")
	owner := flag.String("owner", "", "Owner username (compulsory)")
	action := flag.String("action", "place", "Action to perform: ['place', 'cancel']")

	sideStr := flag.String("side", "buy", "Order side: 'buy' or 'sell'")
	typeStr := flag.String("type", "limit", "Order type: 'limit' or 'market'")
	tifStr := flag.String("tif", "gtc", "Time in force: 'gtc', 'ioc', or 'fok'")
	postOnly := flag.Bool("post-only", false, "Reject rather than take liquidity")
	price := flag.String("price", "100.00", "Limit price")
	qtyStr := flag.String("qty", "10", "Quantity or comma-separated list (e.g. 10,20,50)")

	orderID := flag.Uint64("order-id", 0, "Order id to cancel (required for -action=cancel)")

	flag.Parse()

	if *owner == "" {
		fmt.Println("Error: -owner is compulsory.")
		flag.Usage()
		os.Exit(1)
	}

	writer := &kafka.Writer{
		Addr:     kafka.TCP(strings.Split(*brokers, ",")...),
		Topic:    *topic,
		Balancer: &kafka.LeastBytes{},
	}
	defer writer.Close()

	userID := uuid.NewSHA1(uuid.NameSpaceOID, []byte(*owner))
	side := parseSide(*sideStr)

	switch strings.ToLower(*action) {
	case "place":
		orderType, err := parseOrderType(*typeStr, *tifStr, *price, *postOnly)
		if err != nil {
			log.Fatalf("invalid order parameters: %v", err)
		}
		for _, qty := range parseQuantities(*qtyStr) {
			order := model.IncomingOrder{
				OrderId:   nextOrderID(),
				UserId:    userID,
				Side:      side,
				Amount:    qty,
				OrderType: orderType,
			}
			payload, err := transport.EncodeIncomingOrder(order)
			if err != nil {
				log.Printf("failed to encode order (qty %d): %v", qty, err)
				continue
			}
			if err := writer.WriteMessages(context.Background(), kafka.Message{Value: payload}); err != nil {
				log.Printf("failed to publish order (qty %d): %v", qty, err)
				continue
			}
			fmt.Printf("-> placed %s %s qty=%d price=%s\n", strings.ToUpper(*sideStr), strings.ToUpper(*typeStr), qty, *price)
			time.Sleep(5 * time.Millisecond)
		}

	case "cancel":
		if *orderID == 0 {
			log.Fatal("Error: -order-id is required for -action=cancel")
		}
		payload, err := transport.EncodeCancelOrder(side, *orderID)
		if err != nil {
			log.Fatalf("failed to encode cancel request: %v", err)
		}
		if err := writer.WriteMessages(context.Background(), kafka.Message{Value: payload}); err != nil {
			log.Fatalf("failed to publish cancel request: %v", err)
		}
		fmt.Printf("-> cancel requested for order_id=%d\n", *orderID)

	default:
		log.Fatalf("Unknown action: %s", *action)
	}
}

var orderSeq uint64

// nextOrderID mints a locally-unique id for this process's lifetime: the
// current time in nanoseconds at each call plus a monotonically increasing
// counter, so repeated invocations in the same second never collide.
func nextOrderID() model.OrderId {
	orderSeq++
	return model.OrderId(time.Now().UnixNano()) + orderSeq
}

func parseSide(raw string) model.OrderSide {
	if strings.ToLower(raw) == "sell" {
		return model.Sell
	}
	return model.Buy
}

func parseOrderType(typeStr, tifStr, priceStr string, postOnly bool) (model.OrderType, error) {
	if strings.ToLower(typeStr) == "market" {
		return model.NewMarketOrder(), nil
	}

	price, err := decimal.NewFromString(priceStr)
	if err != nil {
		return model.OrderType{}, fmt.Errorf("invalid price %q: %w", priceStr, err)
	}

	var tif model.TimeInForce
	switch strings.ToLower(tifStr) {
	case "gtc":
		tif = model.GTC
	case "ioc":
		tif = model.IOC
	case "fok":
		tif = model.FOK
	default:
		return model.OrderType{}, fmt.Errorf("invalid tif %q", tifStr)
	}

	return model.NewLimitOrder(price, tif, postOnly), nil
}

// parseQuantities splits a comma-separated string into a slice of uint64.
func parseQuantities(input string) []model.Amount {
	parts := strings.Split(input, ",")
	var result []model.Amount
	for _, p := range parts {
		p = strings.TrimSpace(p)
		if val, err := strconv.ParseUint(p, 10, 64); err == nil {
			result = append(result, val)
		} else {
			log.Printf("Warning: invalid quantity %q, skipping.", p)
		}
	}
	return result
}
