package ledger

import (
	"testing"

	"github.com/shopspring/decimal"
	"github.com/stretchr/testify/require"

	"github.com/uhyunpark/marketsim/pkg/asset"
)

func TestWalletGetAmountUnknownAsset(t *testing.T) {
	w := NewWallet(nil)
	require.True(t, w.GetAmount(asset.BTC).IsZero())
}

func TestWalletAddRemove(t *testing.T) {
	w := NewWallet(map[asset.Symbol]decimal.Decimal{
		asset.USD: decimal.NewFromInt(100),
	})

	w.AddAmount(asset.USD, decimal.NewFromInt(50))
	require.True(t, w.GetAmount(asset.USD).Equal(decimal.NewFromInt(150)))

	require.NoError(t, w.RemoveAmount(asset.USD, decimal.NewFromInt(150)))
	require.True(t, w.GetAmount(asset.USD).IsZero())
}

func TestWalletRemoveInsufficient(t *testing.T) {
	w := NewWallet(map[asset.Symbol]decimal.Decimal{
		asset.USD: decimal.NewFromInt(10),
	})

	err := w.RemoveAmount(asset.USD, decimal.NewFromInt(11))
	require.ErrorIs(t, err, ErrInsufficientBalance)
	// Failed removal leaves the balance untouched.
	require.True(t, w.GetAmount(asset.USD).Equal(decimal.NewFromInt(10)))

	err = w.RemoveAmount(asset.BTC, decimal.NewFromInt(1))
	require.ErrorIs(t, err, ErrInsufficientBalance)
}

func TestWalletInitialBalancesCopied(t *testing.T) {
	initial := map[asset.Symbol]decimal.Decimal{asset.USD: decimal.NewFromInt(5)}
	w := NewWallet(initial)

	initial[asset.USD] = decimal.NewFromInt(999)
	require.True(t, w.GetAmount(asset.USD).Equal(decimal.NewFromInt(5)))
}

func TestWalletString(t *testing.T) {
	w := NewWallet(map[asset.Symbol]decimal.Decimal{
		asset.USD: decimal.NewFromInt(100),
		asset.BTC: decimal.NewFromInt(2),
	})
	require.Equal(t, "(btc: 2, usd: 100)", w.String())
}
