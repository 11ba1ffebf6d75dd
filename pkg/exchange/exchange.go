// Package exchange implements the matching engine: per-symbol order books,
// limit/market price determination, escrowed settlement, and the candle view
// over trade history.
package exchange

import (
	"fmt"
	"sort"
	"sync"

	"github.com/shopspring/decimal"
	"go.uber.org/zap"

	"github.com/uhyunpark/marketsim/pkg/asset"
	"github.com/uhyunpark/marketsim/pkg/feed"
	"github.com/uhyunpark/marketsim/pkg/ledger"
	"github.com/uhyunpark/marketsim/pkg/util"
)

// Config describes the markets listed on an exchange. Every symbol needs a
// positive seed price: it becomes the first history record, so GetPrice and
// double-market matching always have a reference price.
type Config struct {
	// Cash is the quote symbol trades settle in. Defaults to asset.USD.
	Cash asset.Symbol
	// Markets maps each listed symbol to its seed price.
	Markets map[asset.Symbol]decimal.Decimal
}

// Exchange matches buy and sell orders for its listed symbols. All public
// methods are serialized by one mutex: a submission runs its matching loop to
// completion before the next call observes the book, so the book is never
// seen in a crossed state.
type Exchange struct {
	mu sync.Mutex

	clock     util.Clock
	cash      asset.Symbol
	symbols   []asset.Symbol
	books     map[asset.Symbol]*OrderBook
	histories map[asset.Symbol]*History

	// escrow holds committed-but-unsettled quantities: reserved cash for
	// pending limit bids and reserved assets for pending asks.
	escrow ledger.Ledger

	nextID uint64
	sink   feed.Sink
	log    *zap.Logger
}

type Option func(*Exchange)

// WithSink routes placement and trade events to the given sink.
func WithSink(s feed.Sink) Option {
	return func(e *Exchange) { e.sink = s }
}

// WithLogger attaches a logger for engine debug output.
func WithLogger(log *zap.Logger) Option {
	return func(e *Exchange) { e.log = log }
}

// New creates an exchange listing the configured markets.
func New(clock util.Clock, cfg Config, opts ...Option) (*Exchange, error) {
	if len(cfg.Markets) == 0 {
		return nil, fmt.Errorf("no markets configured")
	}
	cash := cfg.Cash
	if cash == "" {
		cash = asset.USD
	}

	e := &Exchange{
		clock:     clock,
		cash:      cash,
		books:     make(map[asset.Symbol]*OrderBook, len(cfg.Markets)),
		histories: make(map[asset.Symbol]*History, len(cfg.Markets)),
		escrow:    ledger.NewWallet(nil),
		sink:      feed.Nop{},
		log:       zap.NewNop(),
	}
	for _, opt := range opts {
		opt(e)
	}

	now := clock.Now()
	for sym, seed := range cfg.Markets {
		if !seed.IsPositive() {
			return nil, fmt.Errorf("market %s: seed price must be positive, got %s", sym, seed)
		}
		e.symbols = append(e.symbols, sym)
		e.books[sym] = NewOrderBook()
		hist := NewHistory()
		hist.Append(Trade{Time: now, Price: seed, Amount: decimal.Zero})
		e.histories[sym] = hist
	}
	sort.Slice(e.symbols, func(i, j int) bool { return e.symbols[i] < e.symbols[j] })

	return e, nil
}

// GetSymbols returns the listed symbols in stable order.
func (e *Exchange) GetSymbols() []asset.Symbol {
	e.mu.Lock()
	defer e.mu.Unlock()
	out := make([]asset.Symbol, len(e.symbols))
	copy(out, e.symbols)
	return out
}

// GetPrice returns the last traded price for a symbol.
func (e *Exchange) GetPrice(sym asset.Symbol) (decimal.Decimal, error) {
	e.mu.Lock()
	defer e.mu.Unlock()
	hist, ok := e.histories[sym]
	if !ok {
		return decimal.Decimal{}, fmt.Errorf("%s: %w", sym, ErrUnknownSymbol)
	}
	last, _ := hist.Last() // seeded at construction, never empty
	return last.Price, nil
}

// GetOrderbook returns a snapshot of a symbol's pending orders.
func (e *Exchange) GetOrderbook(sym asset.Symbol) (BookSnapshot, error) {
	e.mu.Lock()
	defer e.mu.Unlock()
	book, ok := e.books[sym]
	if !ok {
		return BookSnapshot{}, fmt.Errorf("%s: %w", sym, ErrUnknownSymbol)
	}
	return book.Snapshot(), nil
}

// GetHistory returns up to limit most recent candles of candleSize time
// units each, per History.Candles.
func (e *Exchange) GetHistory(sym asset.Symbol, limit int, candleSize int64) ([]Candle, error) {
	e.mu.Lock()
	defer e.mu.Unlock()
	hist, ok := e.histories[sym]
	if !ok {
		return nil, fmt.Errorf("%s: %w", sym, ErrUnknownSymbol)
	}
	width := e.clock.TimeDelta(0, candleSize)
	return hist.Candles(e.clock.Now(), limit, width), nil
}

// GetTrades returns the most recent raw trade records for a symbol.
func (e *Exchange) GetTrades(sym asset.Symbol, limit int) ([]Trade, error) {
	e.mu.Lock()
	defer e.mu.Unlock()
	hist, ok := e.histories[sym]
	if !ok {
		return nil, fmt.Errorf("%s: %w", sym, ErrUnknownSymbol)
	}
	return hist.Records(limit), nil
}

// EscrowBalance reports the quantity of sym currently held in escrow.
func (e *Exchange) EscrowBalance(sym asset.Symbol) decimal.Decimal {
	e.mu.Lock()
	defer e.mu.Unlock()
	return e.escrow.GetAmount(sym)
}

// Buy places a limit bid: price*amount cash moves from the buyer's ledger
// into escrow, then the matching loop drains all crossable pairs.
func (e *Exchange) Buy(sym asset.Symbol, amount, price decimal.Decimal, owner ledger.Ledger) error {
	return e.submit(&Order{Symbol: sym, Side: Buy, Price: price, Amount: amount, Owner: owner})
}

// BuyMarket places a market bid. No cash is committed up front; the buyer is
// debited at settlement time.
func (e *Exchange) BuyMarket(sym asset.Symbol, amount decimal.Decimal, owner ledger.Ledger) error {
	return e.submit(&Order{Symbol: sym, Side: Buy, Market: true, Amount: amount, Owner: owner})
}

// Sell places a limit ask: the asset amount moves from the seller's ledger
// into escrow, then the matching loop runs.
func (e *Exchange) Sell(sym asset.Symbol, amount, price decimal.Decimal, owner ledger.Ledger) error {
	return e.submit(&Order{Symbol: sym, Side: Sell, Price: price, Amount: amount, Owner: owner})
}

// SellMarket places a market ask. The asset amount is escrowed like a limit
// ask; only the price is left to the counterparty.
func (e *Exchange) SellMarket(sym asset.Symbol, amount decimal.Decimal, owner ledger.Ledger) error {
	return e.submit(&Order{Symbol: sym, Side: Sell, Market: true, Amount: amount, Owner: owner})
}

// Cancel removes a pending order by id and refunds its escrowed commitment.
func (e *Exchange) Cancel(sym asset.Symbol, id uint64) error {
	e.mu.Lock()
	defer e.mu.Unlock()
	book, ok := e.books[sym]
	if !ok {
		return fmt.Errorf("%s: %w", sym, ErrUnknownSymbol)
	}
	o, ok := book.Remove(id)
	if !ok {
		return fmt.Errorf("%s order %d: %w", sym, id, ErrOrderNotFound)
	}
	switch {
	case o.Side == Buy && !o.Market:
		reserved := o.Price.Mul(o.Amount)
		if err := e.escrow.RemoveAmount(e.cash, reserved); err != nil {
			return fmt.Errorf("cancel %s order %d: %w", sym, id, err)
		}
		o.Owner.AddAmount(e.cash, reserved)
	case o.Side == Sell:
		if err := e.escrow.RemoveAmount(sym, o.Amount); err != nil {
			return fmt.Errorf("cancel %s order %d: %w", sym, id, err)
		}
		o.Owner.AddAmount(sym, o.Amount)
	}
	return nil
}

func (e *Exchange) submit(o *Order) error {
	e.mu.Lock()
	defer e.mu.Unlock()

	book, ok := e.books[o.Symbol]
	if !ok {
		return fmt.Errorf("%s: %w", o.Symbol, ErrUnknownSymbol)
	}
	if !o.Amount.IsPositive() {
		return fmt.Errorf("amount %s: %w", o.Amount, ErrInvalidOrder)
	}
	if !o.Market && !o.Price.IsPositive() {
		return fmt.Errorf("limit price %s: %w", o.Price, ErrInvalidOrder)
	}

	// Reserve the order's commitment before it enters the book. On failure
	// nothing has been enqueued or moved.
	if o.Side == Buy {
		commit := decimal.Zero
		if !o.Market {
			commit = o.Price.Mul(o.Amount)
		}
		if o.Owner.GetAmount(e.cash).Cmp(commit) < 0 {
			return fmt.Errorf("buy %s: need %s %s: %w", o.Symbol, commit, e.cash, ErrInsufficientFunds)
		}
		if commit.IsPositive() {
			if err := o.Owner.RemoveAmount(e.cash, commit); err != nil {
				return fmt.Errorf("buy %s: %w", o.Symbol, err)
			}
			e.escrow.AddAmount(e.cash, commit)
		}
	} else {
		if o.Owner.GetAmount(o.Symbol).Cmp(o.Amount) < 0 {
			return fmt.Errorf("sell %s: need %s: %w", o.Symbol, o.Amount, ErrInsufficientAssets)
		}
		if err := o.Owner.RemoveAmount(o.Symbol, o.Amount); err != nil {
			return fmt.Errorf("sell %s: %w", o.Symbol, err)
		}
		e.escrow.AddAmount(o.Symbol, o.Amount)
	}

	e.nextID++
	o.ID = e.nextID
	book.Insert(o)

	e.sink.OrderPlaced(feed.OrderEvent{
		Symbol: string(o.Symbol),
		ID:     o.ID,
		Side:   o.Side.String(),
		Market: o.Market,
		Price:  o.Price,
		Amount: o.Amount,
	})

	return e.match(o.Symbol, book)
}

// match drains all crossable bid/ask pairs for a symbol. Best orders are
// peeked first and only removed once a trade is certain, so the book never
// transiently loses its true best orders.
func (e *Exchange) match(sym asset.Symbol, book *OrderBook) error {
	hist := e.histories[sym]
	for {
		bid, ok := book.PeekBest(Buy)
		if !ok {
			break
		}
		ask, ok := book.PeekBest(Sell)
		if !ok {
			break
		}

		price, ok := tradePrice(hist, bid, ask)
		if !ok {
			// No price agreement: the book is non-crossable.
			break
		}
		amount := decimal.Min(bid.Amount, ask.Amount)

		book.PopBest(Buy)
		book.PopBest(Sell)
		if err := e.settle(sym, book, bid, ask, price, amount); err != nil {
			return err
		}

		trade := Trade{Time: e.clock.Now(), Price: price, Amount: amount}
		hist.Append(trade)

		e.sink.TradeExecuted(feed.TradeEvent{
			Symbol: string(sym),
			Time:   trade.Time,
			Price:  trade.Price,
			Amount: trade.Amount,
			BidID:  bid.ID,
			AskID:  ask.ID,
		})
	}
	return nil
}

// tradePrice implements the price determination rules. A market order never
// supplies the trade price; the earlier-arriving limit order's price is the
// standing quote the later order crosses into.
func tradePrice(hist *History, bid, ask *Order) (decimal.Decimal, bool) {
	switch {
	case bid.Market && ask.Market:
		last, ok := hist.Last()
		if !ok {
			return decimal.Decimal{}, false
		}
		return last.Price, true
	case bid.Market:
		return ask.Price, true
	case ask.Market:
		return bid.Price, true
	}

	switch c := bid.Price.Cmp(ask.Price); {
	case c < 0:
		// Seller asks for more than the buyer offers.
		return decimal.Decimal{}, false
	case c == 0:
		return ask.Price, true
	default:
		if ask.ID < bid.ID {
			return ask.Price, true
		}
		return bid.Price, true
	}
}

// settle exchanges cash and assets for one trade and requeues any unfilled
// remainder with its original id, preserving arrival priority. All debits
// happen before any credit.
func (e *Exchange) settle(sym asset.Symbol, book *OrderBook, bid, ask *Order, price, amount decimal.Decimal) error {
	cash := price.Mul(amount)

	if bid.Market {
		// Market buy: nothing was pre-committed, debit the buyer now.
		if err := bid.Owner.RemoveAmount(e.cash, cash); err != nil {
			return fmt.Errorf("market buy settlement for order %d: %w", bid.ID, err)
		}
	} else {
		reserved := bid.Price.Mul(amount)
		if err := e.escrow.RemoveAmount(e.cash, reserved); err != nil {
			return fmt.Errorf("escrow cash for order %d: %w", bid.ID, err)
		}
		// Limit orders never pay worse than their limit; refund the spread.
		if change := reserved.Sub(cash); change.IsPositive() {
			bid.Owner.AddAmount(e.cash, change)
		}
	}
	if err := e.escrow.RemoveAmount(sym, amount); err != nil {
		return fmt.Errorf("escrow %s for order %d: %w", sym, ask.ID, err)
	}

	ask.Owner.AddAmount(e.cash, cash)
	bid.Owner.AddAmount(sym, amount)

	if rem := bid.Amount.Sub(amount); rem.IsPositive() {
		bid.Amount = rem
		book.Insert(bid)
	}
	if rem := ask.Amount.Sub(amount); rem.IsPositive() {
		ask.Amount = rem
		book.Insert(ask)
	}
	return nil
}
