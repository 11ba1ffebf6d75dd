// Package agent provides simulated traders and their trading strategies.
package agent

import (
	"github.com/uhyunpark/marketsim/pkg/exchange"
	"github.com/uhyunpark/marketsim/pkg/ledger"
)

// Strategy decides what, if anything, to trade on one tick.
type Strategy interface {
	Invoke(exchanges []*exchange.Exchange, wallet ledger.Ledger)
}

// Agent is one trader: a wallet, the exchanges it trades on, and a strategy
// invoked once per simulation tick.
type Agent struct {
	strategy  Strategy
	wallet    ledger.Ledger
	exchanges []*exchange.Exchange
}

func New(strategy Strategy, wallet ledger.Ledger, exchanges []*exchange.Exchange) *Agent {
	return &Agent{strategy: strategy, wallet: wallet, exchanges: exchanges}
}

// Trade invokes this agent's strategy.
func (a *Agent) Trade() {
	a.strategy.Invoke(a.exchanges, a.wallet)
}

func (a *Agent) Wallet() ledger.Ledger {
	return a.wallet
}

func (a *Agent) Exchanges() []*exchange.Exchange {
	return a.exchanges
}
