// Package asset defines the symbols tradeable in the simulation.
package asset

// Symbol identifies a single asset. Cash is a symbol like any other and has
// no special-cased storage anywhere in the system.
type Symbol string

const (
	USD Symbol = "usd"
	BTC Symbol = "btc"
	ETH Symbol = "eth"
)

// All returns every defined symbol.
func All() []Symbol {
	return []Symbol{USD, BTC, ETH}
}

func (s Symbol) String() string { return string(s) }
