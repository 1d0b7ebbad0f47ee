package application_test

import (
	"strings"
	"testing"
	"time"

	"github.com/shopspring/decimal"
	"github.com/stretchr/testify/mock"
	"github.com/stretchr/testify/require"
	"github.com/tdex-network/tdex-wallet/internal/core/application"
)

var (
	testMnemonic = strings.TrimSpace(strings.Repeat("abandon ", 11) + "about")
	testPassword = "Sup3rS3cr3t!"

	testPrices = map[string]decimal.Decimal{
		"BTC":  decimal.NewFromInt(50000),
		"ETH":  decimal.NewFromInt(2500),
		"USDT": decimal.NewFromInt(1),
		"BNB":  decimal.NewFromInt(300),
		"SOL":  decimal.NewFromInt(100),
	}
	testSymbols = []string{"BTC", "ETH", "USDT", "BNB", "SOL", "DAI", "SHIB"}
)

func d(s string) decimal.Decimal {
	return decimal.RequireFromString(s)
}

func newTestPriceSource() *mockPriceSource {
	source := &mockPriceSource{}
	source.On("GetPrices", mock.Anything, mock.Anything).Return(testPrices, nil)
	source.On("IsSupported", mock.Anything).Return(true)
	source.On("Symbols").Return(testSymbols)
	return source
}

func newTestConfig(t *testing.T, source *mockPriceSource) *application.Config {
	cfg := &application.Config{
		DBType:              application.DBInMemory,
		PriceSource:         source,
		NetworkFee:          application.DefaultNetworkFee,
		SwapFee:             application.DefaultSwapFee,
		TxConfirmationDelay: 100 * time.Millisecond,
		WithDemoBalances:    true,
	}
	if source == nil {
		cfg.PriceSource = nil
	}
	require.NoError(t, cfg.Validate())
	t.Cleanup(cfg.Close)
	return cfg
}
