package exchange

import (
	"github.com/shopspring/decimal"

	"github.com/uhyunpark/marketsim/pkg/asset"
	"github.com/uhyunpark/marketsim/pkg/ledger"
)

type Side int8

const (
	Buy  Side = 1
	Sell Side = -1
)

func (s Side) String() string {
	if s == Buy {
		return "buy"
	}
	return "sell"
}

// Order is a resting or incoming order. ID is assigned by the exchange at
// submission, strictly increasing, and serves as the arrival-order tie
// breaker. Amount is reduced in place on partial fills; everything else is
// immutable once placed.
type Order struct {
	ID     uint64
	Symbol asset.Symbol
	Side   Side
	Price  decimal.Decimal // limit price; meaningless when Market is set
	Market bool            // market order: accepts the counterparty's price
	Amount decimal.Decimal
	Owner  ledger.Ledger
}

// Trade is one settled execution, appended to a symbol's history.
type Trade struct {
	Time   int64
	Price  decimal.Decimal
	Amount decimal.Decimal
}

// Candle is the closing price of one time bucket ending at Time.
type Candle struct {
	Time  int64
	Close decimal.Decimal
}

// BookSnapshot is a read-only copy of a symbol's pending orders in current
// queue priority order.
type BookSnapshot struct {
	Bids []Order
	Asks []Order
}
