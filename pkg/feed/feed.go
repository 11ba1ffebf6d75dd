// Package feed carries engine events to pluggable sinks.
//
// The exchange publishes placements and executed trades to a Sink instead of
// logging them itself, so the matching core stays free of output concerns.
package feed

import "github.com/shopspring/decimal"

// OrderEvent describes an order accepted onto a book.
type OrderEvent struct {
	Symbol string          `json:"symbol"`
	ID     uint64          `json:"id"`
	Side   string          `json:"side"` // "buy" or "sell"
	Market bool            `json:"market"`
	Price  decimal.Decimal `json:"price"` // zero for market orders
	Amount decimal.Decimal `json:"amount"`
}

// TradeEvent describes one settled trade.
type TradeEvent struct {
	Symbol string          `json:"symbol"`
	Time   int64           `json:"time"`
	Price  decimal.Decimal `json:"price"`
	Amount decimal.Decimal `json:"amount"`
	BidID  uint64          `json:"bid_id"`
	AskID  uint64          `json:"ask_id"`
}

// Sink receives engine events. Implementations must not call back into the
// exchange; events are delivered while the engine lock is held.
type Sink interface {
	OrderPlaced(OrderEvent)
	TradeExecuted(TradeEvent)
}

// Nop discards all events.
type Nop struct{}

func (Nop) OrderPlaced(OrderEvent)   {}
func (Nop) TradeExecuted(TradeEvent) {}

// Multi fans events out to every sink in order.
type Multi []Sink

func (m Multi) OrderPlaced(ev OrderEvent) {
	for _, s := range m {
		s.OrderPlaced(ev)
	}
}

func (m Multi) TradeExecuted(ev TradeEvent) {
	for _, s := range m {
		s.TradeExecuted(ev)
	}
}
