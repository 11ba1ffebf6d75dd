package env_test

import (
	"testing"

	"github.com/shopspring/decimal"
	"github.com/stretchr/testify/require"

	"github.com/uhyunpark/marketsim/pkg/agent"
	"github.com/uhyunpark/marketsim/pkg/asset"
	"github.com/uhyunpark/marketsim/pkg/env"
	"github.com/uhyunpark/marketsim/pkg/exchange"
	"github.com/uhyunpark/marketsim/pkg/ledger"
	"github.com/uhyunpark/marketsim/pkg/util"
)

type tickCounter struct {
	ticks int
}

func (s *tickCounter) Invoke(exchanges []*exchange.Exchange, wallet ledger.Ledger) {
	s.ticks++
}

func newExchange(t *testing.T, clock *util.SimClock) *exchange.Exchange {
	t.Helper()
	ex, err := exchange.New(clock, exchange.Config{
		Markets: map[asset.Symbol]decimal.Decimal{asset.BTC: decimal.NewFromInt(100)},
	})
	require.NoError(t, err)
	return ex
}

func TestGenerateAgentsDistribution(t *testing.T) {
	clock := util.NewSimClock(0, 1)
	v := env.New(clock, []*exchange.Exchange{newExchange(t, clock)}, nil)

	funds := map[asset.Symbol]decimal.Decimal{asset.USD: decimal.NewFromInt(100)}
	v.GenerateAgents(10, map[agent.Strategy]float64{&tickCounter{}: 1.0}, funds)
	require.Len(t, v.Agents(), 10)

	// Each agent gets its own wallet.
	v.Agents()[0].Wallet().AddAmount(asset.USD, decimal.NewFromInt(1))
	require.True(t, v.Agents()[1].Wallet().GetAmount(asset.USD).Equal(decimal.NewFromInt(100)))
}

func TestRunStepsClockAndAgents(t *testing.T) {
	clock := util.NewSimClock(0, 1)
	v := env.New(clock, []*exchange.Exchange{newExchange(t, clock)}, nil)

	strategy := &tickCounter{}
	wallet := ledger.NewWallet(nil)
	v.AddAgent(agent.New(strategy, wallet, nil))
	v.AddAgent(agent.New(strategy, wallet, nil))

	v.Run(5)

	require.Equal(t, int64(5), clock.Now())
	require.Equal(t, 10, strategy.ticks)
}
