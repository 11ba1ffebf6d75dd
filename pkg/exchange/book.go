package exchange

import (
	"container/heap"
	"sort"
)

// bidBefore orders the bid queue: market orders first, then price descending,
// ties broken by earliest arrival.
func bidBefore(a, b *Order) bool {
	if a.Market != b.Market {
		return a.Market
	}
	if !a.Market {
		if c := a.Price.Cmp(b.Price); c != 0 {
			return c > 0
		}
	}
	return a.ID < b.ID
}

// askBefore orders the ask queue: market orders first, then price ascending,
// ties broken by earliest arrival.
func askBefore(a, b *Order) bool {
	if a.Market != b.Market {
		return a.Market
	}
	if !a.Market {
		if c := a.Price.Cmp(b.Price); c != 0 {
			return c < 0
		}
	}
	return a.ID < b.ID
}

// queue implements heap.Interface over orders with a side-specific ordering.
type queue struct {
	orders []*Order
	before func(a, b *Order) bool
}

func (q *queue) Len() int           { return len(q.orders) }
func (q *queue) Less(i, j int) bool { return q.before(q.orders[i], q.orders[j]) }
func (q *queue) Swap(i, j int)      { q.orders[i], q.orders[j] = q.orders[j], q.orders[i] }

func (q *queue) Push(x interface{}) {
	q.orders = append(q.orders, x.(*Order))
}

func (q *queue) Pop() interface{} {
	old := q.orders
	n := len(old)
	x := old[n-1]
	old[n-1] = nil
	q.orders = old[:n-1]
	return x
}

// OrderBook holds the pending bids and asks for one symbol. It is not safe
// for concurrent use; the owning exchange serializes access.
type OrderBook struct {
	bids *queue
	asks *queue
}

func NewOrderBook() *OrderBook {
	return &OrderBook{
		bids: &queue{before: bidBefore},
		asks: &queue{before: askBefore},
	}
}

func (b *OrderBook) side(s Side) *queue {
	if s == Buy {
		return b.bids
	}
	return b.asks
}

// Insert enqueues an order on its side's queue.
func (b *OrderBook) Insert(o *Order) {
	heap.Push(b.side(o.Side), o)
}

// PeekBest returns the top-priority order for a side without removing it.
func (b *OrderBook) PeekBest(s Side) (*Order, bool) {
	q := b.side(s)
	if q.Len() == 0 {
		return nil, false
	}
	return q.orders[0], true
}

// PopBest removes and returns the top-priority order for a side.
func (b *OrderBook) PopBest(s Side) (*Order, bool) {
	q := b.side(s)
	if q.Len() == 0 {
		return nil, false
	}
	return heap.Pop(q).(*Order), true
}

// Remove deletes the order with the given id from either side and returns it.
func (b *OrderBook) Remove(id uint64) (*Order, bool) {
	for _, q := range []*queue{b.bids, b.asks} {
		for i, o := range q.orders {
			if o.ID == id {
				return heap.Remove(q, i).(*Order), true
			}
		}
	}
	return nil, false
}

// Len reports the number of pending orders on a side.
func (b *OrderBook) Len(s Side) int {
	return b.side(s).Len()
}

// Snapshot returns copies of all pending orders in queue priority order.
func (b *OrderBook) Snapshot() BookSnapshot {
	return BookSnapshot{
		Bids: snapshotQueue(b.bids),
		Asks: snapshotQueue(b.asks),
	}
}

func snapshotQueue(q *queue) []Order {
	sorted := make([]*Order, len(q.orders))
	copy(sorted, q.orders)
	sort.Slice(sorted, func(i, j int) bool { return q.before(sorted[i], sorted[j]) })

	out := make([]Order, len(sorted))
	for i, o := range sorted {
		out[i] = *o
	}
	return out
}
