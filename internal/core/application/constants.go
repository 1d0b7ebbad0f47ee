package application

import (
	"time"

	"github.com/shopspring/decimal"
)

const (
	DBBadger   = "badger"
	DBInMemory = "inmemory"

	// DefaultTxLimit is the number of transactions returned when the caller
	// does not specify a limit.
	DefaultTxLimit = 100
	// RecentTxLimit is the number of transactions shown as recent activity.
	RecentTxLimit = 10
	// DefaultHistoryDays is the chart window used when none is given.
	DefaultHistoryDays = 7
	// MaxHistoryDays is the widest chart window served.
	MaxHistoryDays = 365

	DefaultConfirmationDelay    = 3 * time.Second
	DefaultPriceCacheTTL        = 30 * time.Minute
	DefaultPriceHistoryCacheTTL = 10 * time.Minute

	// amounts are rounded to the precision shown to users
	amountPrecision = 8

	topUpAddress = "top up"
	dayMillis    = int64(24 * time.Hour / time.Millisecond)
)

var (
	SupportedDBType = map[string]struct{}{
		DBBadger:   {},
		DBInMemory: {},
	}

	DefaultNetworkFee = decimal.RequireFromString("0.001")
	DefaultSwapFee    = decimal.RequireFromString("0.003")

	// DemoBalances are credited to every new wallet when enabled, indexed by
	// asset id.
	DemoBalances = map[string]decimal.Decimal{
		"1":   decimal.RequireFromString("1250.50"),
		"2":   decimal.RequireFromString("0.05432"),
		"3":   decimal.RequireFromString("1.2543"),
		"4":   decimal.RequireFromString("5.8"),
		"6":   decimal.RequireFromString("25.432"),
		"106": decimal.RequireFromString("500.00"),
		"111": decimal.RequireFromString("300.00"),
	}

	fallbackPrices = map[string]decimal.Decimal{
		"BTC": decimal.NewFromInt(43000),
		"ETH": decimal.NewFromInt(2300),
	}
)
