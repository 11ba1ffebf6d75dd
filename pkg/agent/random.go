package agent

import (
	"math/rand"

	"github.com/shopspring/decimal"

	"github.com/uhyunpark/marketsim/pkg/asset"
	"github.com/uhyunpark/marketsim/pkg/exchange"
	"github.com/uhyunpark/marketsim/pkg/ledger"
)

// RandomStrategy is a zero-intelligence trader: it flips a coin between
// buying and selling, prices at a gaussian around the last traded price, and
// sizes the order randomly within what the wallet can cover.
type RandomStrategy struct {
	cash asset.Symbol
	// Order price is drawn from Gauss(mean=last price, std).
	buyPriceStd  float64
	sellPriceStd float64
	rng          *rand.Rand
}

func NewRandomStrategy(cash asset.Symbol, buyPriceStd, sellPriceStd float64, rng *rand.Rand) *RandomStrategy {
	return &RandomStrategy{
		cash:         cash,
		buyPriceStd:  buyPriceStd,
		sellPriceStd: sellPriceStd,
		rng:          rng,
	}
}

func (s *RandomStrategy) Invoke(exchanges []*exchange.Exchange, wallet ledger.Ledger) {
	if len(exchanges) == 0 {
		return
	}
	ex := exchanges[s.rng.Intn(len(exchanges))]
	symbols := ex.GetSymbols()
	if len(symbols) == 0 {
		return
	}
	sym := symbols[s.rng.Intn(len(symbols))]
	last, err := ex.GetPrice(sym)
	if err != nil {
		return
	}

	if s.rng.Intn(2) == 1 {
		price := s.gaussPrice(last, s.buyPriceStd)
		if !price.IsPositive() {
			return
		}
		cash := wallet.GetAmount(s.cash)
		if cash.Cmp(price) <= 0 {
			return
		}
		// Buy between 1 and the most units the wallet can afford.
		maxAmount := cash.Div(price).IntPart()
		amount := decimal.NewFromInt(s.rng.Int63n(maxAmount) + 1)
		_ = ex.Buy(sym, amount, price, wallet)
	} else {
		price := s.gaussPrice(last, s.sellPriceStd)
		if !price.IsPositive() {
			return
		}
		held := wallet.GetAmount(sym).IntPart()
		if held < 1 {
			return
		}
		amount := decimal.NewFromInt(s.rng.Int63n(held) + 1)
		_ = ex.Sell(sym, amount, price, wallet)
	}
}

func (s *RandomStrategy) gaussPrice(last decimal.Decimal, std float64) decimal.Decimal {
	return decimal.NewFromInt(int64(s.rng.NormFloat64()*std + last.InexactFloat64()))
}
