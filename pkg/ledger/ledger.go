// Package ledger holds per-asset balances for one owner.
//
// Every trader carries a Ledger, and the exchange itself carries one as its
// escrow pool. Balances are non-negative decimals keyed by asset symbol.
package ledger

import (
	"errors"
	"fmt"
	"sort"
	"strings"

	"github.com/shopspring/decimal"

	"github.com/uhyunpark/marketsim/pkg/asset"
)

// ErrInsufficientBalance is returned by RemoveAmount when the ledger holds
// less than the requested quantity.
var ErrInsufficientBalance = errors.New("insufficient balance")

// Ledger is the balance contract required of every trader and of the
// exchange's escrow pool.
type Ledger interface {
	// GetAmount returns the held quantity of sym, zero if absent.
	GetAmount(sym asset.Symbol) decimal.Decimal
	// AddAmount credits qty of sym, creating the balance if absent.
	AddAmount(sym asset.Symbol, qty decimal.Decimal)
	// RemoveAmount debits qty of sym. The balance is untouched on error.
	RemoveAmount(sym asset.Symbol, qty decimal.Decimal) error
}

// Wallet is the map-backed Ledger used by simulated traders and the exchange
// escrow. It is not safe for concurrent use; the exchange serializes access.
type Wallet struct {
	amounts map[asset.Symbol]decimal.Decimal
}

// NewWallet creates a wallet holding the given initial balances.
func NewWallet(initial map[asset.Symbol]decimal.Decimal) *Wallet {
	w := &Wallet{amounts: make(map[asset.Symbol]decimal.Decimal, len(initial))}
	for sym, qty := range initial {
		w.amounts[sym] = qty
	}
	return w
}

func (w *Wallet) GetAmount(sym asset.Symbol) decimal.Decimal {
	if qty, ok := w.amounts[sym]; ok {
		return qty
	}
	return decimal.Zero
}

func (w *Wallet) AddAmount(sym asset.Symbol, qty decimal.Decimal) {
	w.amounts[sym] = w.GetAmount(sym).Add(qty)
}

func (w *Wallet) RemoveAmount(sym asset.Symbol, qty decimal.Decimal) error {
	held := w.GetAmount(sym)
	if held.Cmp(qty) < 0 {
		return fmt.Errorf("remove %s %s (held %s): %w", qty, sym, held, ErrInsufficientBalance)
	}
	w.amounts[sym] = held.Sub(qty)
	return nil
}

// String renders balances in symbol order, e.g. "(btc: 10, usd: 25.5)".
func (w *Wallet) String() string {
	syms := make([]string, 0, len(w.amounts))
	for sym := range w.amounts {
		syms = append(syms, string(sym))
	}
	sort.Strings(syms)
	parts := make([]string, len(syms))
	for i, sym := range syms {
		parts[i] = fmt.Sprintf("%s: %s", sym, w.amounts[asset.Symbol(sym)])
	}
	return "(" + strings.Join(parts, ", ") + ")"
}
