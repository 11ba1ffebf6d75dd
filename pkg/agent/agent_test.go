package agent_test

import (
	"math/rand"
	"testing"

	"github.com/shopspring/decimal"
	"github.com/stretchr/testify/require"

	"github.com/uhyunpark/marketsim/pkg/agent"
	"github.com/uhyunpark/marketsim/pkg/asset"
	"github.com/uhyunpark/marketsim/pkg/exchange"
	"github.com/uhyunpark/marketsim/pkg/ledger"
	"github.com/uhyunpark/marketsim/pkg/util"
)

type countingStrategy struct {
	calls int
}

func (s *countingStrategy) Invoke(exchanges []*exchange.Exchange, wallet ledger.Ledger) {
	s.calls++
}

func TestAgentTradeInvokesStrategy(t *testing.T) {
	strategy := &countingStrategy{}
	wallet := ledger.NewWallet(nil)
	a := agent.New(strategy, wallet, nil)

	a.Trade()
	a.Trade()
	require.Equal(t, 2, strategy.calls)
	require.Same(t, wallet, a.Wallet())
}

func TestRandomStrategyConservesValue(t *testing.T) {
	clock := util.NewSimClock(0, 1)
	ex, err := exchange.New(clock, exchange.Config{
		Markets: map[asset.Symbol]decimal.Decimal{asset.BTC: decimal.NewFromInt(100)},
	})
	require.NoError(t, err)

	rng := rand.New(rand.NewSource(7))
	strategy := agent.NewRandomStrategy(asset.USD, 10, 10, rng)

	wallets := make([]*ledger.Wallet, 10)
	for i := range wallets {
		wallets[i] = ledger.NewWallet(map[asset.Symbol]decimal.Decimal{
			asset.USD: decimal.NewFromInt(1000),
			asset.BTC: decimal.NewFromInt(10),
		})
	}

	total := func(sym asset.Symbol) decimal.Decimal {
		sum := ex.EscrowBalance(sym)
		for _, w := range wallets {
			sum = sum.Add(w.GetAmount(sym))
		}
		return sum
	}
	wantUSD, wantBTC := total(asset.USD), total(asset.BTC)

	for tick := 0; tick < 50; tick++ {
		for _, w := range wallets {
			strategy.Invoke([]*exchange.Exchange{ex}, w)
		}
		clock.Step(1)
	}

	// However the coin flips land, cash and assets only move between wallets
	// and escrow.
	require.True(t, total(asset.USD).Equal(wantUSD))
	require.True(t, total(asset.BTC).Equal(wantBTC))

	price, err := ex.GetPrice(asset.BTC)
	require.NoError(t, err)
	require.True(t, price.IsPositive())
}
