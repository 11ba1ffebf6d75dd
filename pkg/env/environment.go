// Package env runs the simulation: a steppable clock, the exchanges, and the
// agent population trading on them tick by tick.
package env

import (
	"github.com/shopspring/decimal"
	"go.uber.org/zap"

	"github.com/uhyunpark/marketsim/pkg/agent"
	"github.com/uhyunpark/marketsim/pkg/asset"
	"github.com/uhyunpark/marketsim/pkg/exchange"
	"github.com/uhyunpark/marketsim/pkg/ledger"
	"github.com/uhyunpark/marketsim/pkg/util"
)

// Environment drives the simulation. One tick = every agent trades once,
// then the clock steps. The environment is the only caller of Clock.Step.
type Environment struct {
	clock     *util.SimClock
	exchanges []*exchange.Exchange
	agents    []*agent.Agent
	log       *zap.Logger
}

func New(clock *util.SimClock, exchanges []*exchange.Exchange, log *zap.Logger) *Environment {
	if log == nil {
		log = zap.NewNop()
	}
	return &Environment{clock: clock, exchanges: exchanges, log: log}
}

func (v *Environment) Clock() *util.SimClock {
	return v.clock
}

func (v *Environment) Agents() []*agent.Agent {
	return v.agents
}

func (v *Environment) AddAgent(a *agent.Agent) {
	v.agents = append(v.agents, a)
}

// GenerateAgents populates the environment from a strategy distribution.
// Each ratio is the fraction of numAgents using that strategy; every agent
// starts with its own wallet holding the given initial funds.
func (v *Environment) GenerateAgents(numAgents int, distribution map[agent.Strategy]float64, initialFunds map[asset.Symbol]decimal.Decimal) {
	for strategy, ratio := range distribution {
		count := int(ratio * float64(numAgents))
		for i := 0; i < count; i++ {
			wallet := ledger.NewWallet(initialFunds)
			v.agents = append(v.agents, agent.New(strategy, wallet, v.exchanges))
		}
		v.log.Info("generated agents", zap.Int("count", count))
	}
}

// Run advances the simulation the given number of timesteps.
func (v *Environment) Run(timesteps int) {
	for step := 0; step < timesteps; step++ {
		if ce := v.log.Check(zap.DebugLevel, "timestep"); ce != nil {
			ce.Write(zap.Int("step", step), zap.Int64("time", v.clock.Now()))
			for _, ex := range v.exchanges {
				for _, sym := range ex.GetSymbols() {
					if price, err := ex.GetPrice(sym); err == nil {
						v.log.Debug("price", zap.String("symbol", string(sym)), zap.String("value", price.String()))
					}
				}
			}
		}
		for _, a := range v.agents {
			a.Trade()
		}
		v.clock.Step(1)
	}
}
