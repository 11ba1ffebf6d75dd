package exchange

import "errors"

var (
	// ErrUnknownSymbol is returned when an operation references a symbol not
	// listed on this exchange.
	ErrUnknownSymbol = errors.New("symbol not listed on this exchange")

	// ErrInsufficientFunds is returned by Buy when the buyer's ledger holds
	// less cash than the order commits. Nothing is enqueued or moved.
	ErrInsufficientFunds = errors.New("insufficient funds")

	// ErrInsufficientAssets is returned by Sell when the seller's ledger
	// holds less of the asset than the order amount.
	ErrInsufficientAssets = errors.New("insufficient assets")

	// ErrInvalidOrder is returned for non-positive amounts or limit prices.
	ErrInvalidOrder = errors.New("invalid order")

	// ErrOrderNotFound is returned by Cancel for an unknown order id.
	ErrOrderNotFound = errors.New("order not found")
)
