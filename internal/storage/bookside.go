// Package storage implements the resting-liquidity container for one side
// of the book: a price-time ordered collection of BookOrders plus the
// derived LiquidityIndex and OrderIndex that keep insert/remove/pop O(log n)
// and cumulative liquidity queries cheap.
//
// Grounded on original_source/storage.rs for the three-structure shape
// (orders keyed on (price, order_id); a separate price->amount liquidity
// index; a separate order_id->price index) and on the teacher's
// internal/engine/orderbook.go for the technique: two btrees of the same
// shape differing only by a comparator, one per side (bids descending,
// asks ascending).
package storage

import (
	"matchcore/internal/model"

	"github.com/tidwall/btree"
)

// orderKey is the composite (price, order_id) primary key of spec.md §4.1.
// Among equal prices the lower order_id is better, encoding FIFO time
// priority since ids are allocated monotonically by the caller.
type orderKey struct {
	price   model.Price
	orderID model.OrderId
}

// levelKey is a bare price, used by the liquidity index.
type levelKey struct {
	price model.Price
}

// BookSide holds one side's resting orders plus its derived indices. The
// same type serves both asks (ascending=true) and bids (ascending=false);
// the ordering direction is fixed at construction, matching spec.md §9's
// guidance that bids and asks share one implementation parameterized by an
// inverting comparator.
type BookSide struct {
	ascending bool

	orders    *btree.BTreeG[orderEntry]
	liquidity *btree.BTreeG[liquidityEntry]
	index     map[model.OrderId]model.Price
}

type orderEntry struct {
	key   orderKey
	order model.BookOrder
}

type liquidityEntry struct {
	key    levelKey
	amount model.Amount
}

// NewBookSide builds an empty side. ascending=true yields ask ordering
// (best = lowest price); ascending=false yields bid ordering (best =
// highest price). Either way ties break on the lower order_id.
func NewBookSide(ascending bool) *BookSide {
	less := func(a, b orderKey) bool {
		if !a.price.Equal(b.price) {
			if ascending {
				return a.price.LessThan(b.price)
			}
			return a.price.GreaterThan(b.price)
		}
		return a.orderID < b.orderID
	}
	liquidityLess := func(a, b levelKey) bool {
		if ascending {
			return a.price.LessThan(b.price)
		}
		return a.price.GreaterThan(b.price)
	}

	return &BookSide{
		ascending: ascending,
		orders: btree.NewBTreeG(func(a, b orderEntry) bool {
			return less(a.key, b.key)
		}),
		liquidity: btree.NewBTreeG(func(a, b liquidityEntry) bool {
			return liquidityLess(a.key, b.key)
		}),
		index: make(map[model.OrderId]model.Price),
	}
}

// Insert adds a resting order. Preconditions: order.Amount > 0 and
// order.OrderId is not currently indexed. Returns false (a no-op) if the
// order_id is already resting — callers must treat that as an invariant
// violation (spec.md §7, §9 Open Question 4), never as silent overwrite.
func (b *BookSide) Insert(order model.BookOrder) bool {
	if _, exists := b.index[order.OrderId]; exists {
		return false
	}
	key := orderKey{price: order.Price, orderID: order.OrderId}
	b.orders.Set(orderEntry{key: key, order: order})
	b.index[order.OrderId] = order.Price
	b.addLiquidity(order.Price, order.Amount)
	return true
}

// Remove deletes the order by id from all three structures atomically,
// returning it. The second return is false if the id is unknown.
func (b *BookSide) Remove(orderID model.OrderId) (model.BookOrder, bool) {
	price, ok := b.index[orderID]
	if !ok {
		return model.BookOrder{}, false
	}
	key := orderKey{price: price, orderID: orderID}
	entry, ok := b.orders.Delete(orderEntry{key: key})
	if !ok {
		return model.BookOrder{}, false
	}
	delete(b.index, orderID)
	b.removeLiquidity(entry.order.Price, entry.order.Amount)
	return entry.order, true
}

// PeekBest returns the first order under this side's ordering without
// mutating the book, or false if the side is empty.
func (b *BookSide) PeekBest() (model.BookOrder, bool) {
	entry, ok := b.orders.Min()
	if !ok {
		return model.BookOrder{}, false
	}
	return entry.order, true
}

// PopBest removes and returns the first order under this side's ordering.
func (b *BookSide) PopBest() (model.BookOrder, bool) {
	entry, ok := b.orders.PopMin()
	if !ok {
		return model.BookOrder{}, false
	}
	delete(b.index, entry.order.OrderId)
	b.removeLiquidity(entry.order.Price, entry.order.Amount)
	return entry.order, true
}

// BestPrice is a convenience wrapper over PeekBest.
func (b *BookSide) BestPrice() (model.Price, bool) {
	order, ok := b.PeekBest()
	if !ok {
		return model.Price{}, false
	}
	return order.Price, true
}

// GetLiquidity returns the cumulative resting amount in this side's
// aggressive direction at or through price: for asks, the sum at prices
// <= price; for bids, the sum at prices >= price. This is the total
// fillable volume for an incoming aggressor limit at price.
func (b *BookSide) GetLiquidity(price model.Price) model.Amount {
	var total model.Amount
	// Scan walks the liquidity index in the tree's own order: ascending by
	// price for asks, descending for bids. Either way that is exactly the
	// aggressive direction, so a single prefix sum with an early break
	// gives "<= price" for asks and ">= price" for bids.
	b.liquidity.Scan(func(e liquidityEntry) bool {
		if b.ascending && e.key.price.GreaterThan(price) {
			return false
		}
		if !b.ascending && e.key.price.LessThan(price) {
			return false
		}
		total += e.amount
		return true
	})
	return total
}

// Iter yields resting orders best-first, for introspection and testing.
func (b *BookSide) Iter() []model.BookOrder {
	out := make([]model.BookOrder, 0, b.orders.Len())
	b.orders.Scan(func(e orderEntry) bool {
		out = append(out, e.order)
		return true
	})
	return out
}

// Len reports the number of resting orders on this side.
func (b *BookSide) Len() int {
	return b.orders.Len()
}

func (b *BookSide) addLiquidity(price model.Price, amount model.Amount) {
	key := levelKey{price: price}
	existing, ok := b.liquidity.Get(liquidityEntry{key: key})
	if ok {
		existing.amount += amount
		b.liquidity.Set(existing)
		return
	}
	b.liquidity.Set(liquidityEntry{key: key, amount: amount})
}

func (b *BookSide) removeLiquidity(price model.Price, amount model.Amount) {
	key := levelKey{price: price}
	existing, ok := b.liquidity.Get(liquidityEntry{key: key})
	if !ok {
		return
	}
	existing.amount -= amount
	if existing.amount == 0 {
		b.liquidity.Delete(liquidityEntry{key: key})
		return
	}
	b.liquidity.Set(existing)
}
