package ports

import (
	"context"

	"github.com/shopspring/decimal"
)

// PricePoint is a USD quote of an asset at a given time, expressed in
// milliseconds.
type PricePoint interface {
	GetTimestamp() int64
	GetPrice() decimal.Decimal
}

// PriceSource is the remote market data provider used to value balances.
type PriceSource interface {
	// GetPrices returns the USD price of the given symbols. Symbols not
	// supported by the source are omitted from the result.
	GetPrices(ctx context.Context, symbols []string) (map[string]decimal.Decimal, error)
	// GetPriceHistory returns the USD chart of the given symbol for the last
	// days, oldest point first.
	GetPriceHistory(ctx context.Context, symbol string, days int) ([]PricePoint, error)
	// IsSupported returns whether the source can quote the given symbol.
	IsSupported(symbol string) bool
	// Symbols returns every ticker the source can quote.
	Symbols() []string
}
