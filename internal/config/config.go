package config

import (
	"fmt"
	"os"
	"path/filepath"
	"strings"
	"time"

	"github.com/btcsuite/btcd/btcutil"
	"github.com/shopspring/decimal"
	"github.com/spf13/viper"
	"github.com/tdex-network/tdex-wallet/internal/core/application"
)

const (
	// HTTPListeningPortKey is the port where the wallet-sync HTTP interface will listen on
	HTTPListeningPortKey = "HTTP_LISTENING_PORT"
	// OperatorListeningPortKey is the port where the operator HTTP interface,
	// serving webhook management, will listen on
	OperatorListeningPortKey = "OPERATOR_LISTENING_PORT"
	// OperatorTokenKey is the bearer token required by the operator interface
	OperatorTokenKey = "OPERATOR_TOKEN"
	// NoOperatorAuthKey is used to start the operator interface without token
	// auth. Use only for testing
	NoOperatorAuthKey = "NO_OPERATOR_AUTH"
	// DatadirKey is the local data directory to store the internal state of daemon
	DatadirKey = "DATADIR"
	// LogLevelKey are the different logging levels. For reference on the values https://godoc.org/github.com/sirupsen/logrus#Level
	LogLevelKey = "LOG_LEVEL"
	// DBTypeKey is used to switch database type between those supported
	DBTypeKey = "DB_TYPE"
	// PriceSourceURLKey is the base url of the CoinGecko compatible REST API
	// used to fetch spot prices and charts
	PriceSourceURLKey = "PRICE_SOURCE_URL"
	// PriceCacheTTLKey is how long spot prices are served from cache
	PriceCacheTTLKey = "PRICE_CACHE_TTL"
	// PriceHistoryCacheTTLKey is how long price charts are served from cache
	PriceHistoryCacheTTLKey = "PRICE_HISTORY_CACHE_TTL"
	// PriceRateLimitKey is the max number of requests per second sent to the
	// price source
	PriceRateLimitKey = "PRICE_RATE_LIMIT"
	// TxConfirmationDelayKey is the time after which a pending transaction is
	// marked as completed
	TxConfirmationDelayKey = "TX_CONFIRMATION_DELAY"
	// NetworkFeeKey is the flat fee charged on every send
	NetworkFeeKey = "NETWORK_FEE"
	// SwapFeeKey is the fraction of the swapped amount retained as fee
	SwapFeeKey = "SWAP_FEE"
	// DemoBalancesKey enables crediting the demo balances to every new wallet
	DemoBalancesKey = "DEMO_BALANCES"
	// EnableWebhooksKey enables the operator interface and notifying the
	// registered webhooks about transaction events
	EnableWebhooksKey = "ENABLE_WEBHOOKS"
	// EnableProfilerKey enables profiler that can be used to investigate performance issues
	EnableProfilerKey = "ENABLE_PROFILER"
	// StatsIntervalKey defines interval for printing basic wallet statistics
	StatsIntervalKey = "STATS_INTERVAL"

	DbLocation       = "db"
	ProfilerLocation = "stats"

	defaultPriceSourceURL = "https://api.coingecko.com/api/v3"
)

var vip *viper.Viper
var defaultDatadir = btcutil.AppDataDir("tdex-wallet", false)

func InitConfig() error {
	vip = viper.New()
	vip.SetEnvPrefix("WALLET")
	vip.AutomaticEnv()

	vip.SetDefault(HTTPListeningPortKey, 9945)
	vip.SetDefault(OperatorListeningPortKey, 9000)
	vip.SetDefault(NoOperatorAuthKey, false)
	vip.SetDefault(LogLevelKey, 4)
	vip.SetDefault(DatadirKey, defaultDatadir)
	vip.SetDefault(DBTypeKey, application.DBBadger)
	vip.SetDefault(PriceSourceURLKey, defaultPriceSourceURL)
	vip.SetDefault(PriceCacheTTLKey, 30*time.Minute)
	vip.SetDefault(PriceHistoryCacheTTLKey, 10*time.Minute)
	vip.SetDefault(PriceRateLimitKey, 5)
	vip.SetDefault(TxConfirmationDelayKey, 3*time.Second)
	vip.SetDefault(NetworkFeeKey, "0.001")
	vip.SetDefault(SwapFeeKey, "0.003")
	vip.SetDefault(DemoBalancesKey, true)
	vip.SetDefault(EnableWebhooksKey, false)
	vip.SetDefault(EnableProfilerKey, false)
	vip.SetDefault(StatsIntervalKey, 600)

	if err := validate(); err != nil {
		return fmt.Errorf("error while validating config: %s", err)
	}

	if err := initDatadir(); err != nil {
		return fmt.Errorf("error while creating datadir: %s", err)
	}

	return nil
}

func GetString(key string) string {
	return vip.GetString(key)
}

func GetInt(key string) int {
	return vip.GetInt(key)
}

func GetFloat(key string) float64 {
	return vip.GetFloat64(key)
}

func GetDuration(key string) time.Duration {
	return vip.GetDuration(key)
}

func GetBool(key string) bool {
	return vip.GetBool(key)
}

// GetDecimal parses the value of the given key as a decimal. It must be
// called only after InitConfig, that makes sure the value is valid.
func GetDecimal(key string) decimal.Decimal {
	d, _ := decimal.NewFromString(GetString(key))
	return d
}

func GetDatadir() string {
	return GetString(DatadirKey)
}

// GetDbDir returns the path of the badger datadir, empty for an in-memory
// database.
func GetDbDir() string {
	if GetString(DBTypeKey) == application.DBInMemory {
		return ""
	}
	return filepath.Join(GetDatadir(), DbLocation)
}

// GetWebhooksDir returns the datadir where webhooks are persisted, empty
// if they must be kept in memory along with the rest of the state.
func GetWebhooksDir() string {
	if GetString(DBTypeKey) == application.DBInMemory {
		return ""
	}
	return GetDatadir()
}

func validate() error {
	datadir := GetString(DatadirKey)
	if len(datadir) <= 0 {
		return fmt.Errorf("missing datadir")
	}

	dbType := GetString(DBTypeKey)
	if _, ok := application.SupportedDBType[dbType]; !ok {
		return fmt.Errorf(
			"%s must be one of %s", DBTypeKey, strings.Join(supportedDBTypes(), ", "),
		)
	}

	if url := GetString(PriceSourceURLKey); !strings.HasPrefix(url, "http") {
		return fmt.Errorf("%s must be a valid http(s) url", PriceSourceURLKey)
	}

	if GetInt(PriceRateLimitKey) <= 0 {
		return fmt.Errorf("%s must be a positive number", PriceRateLimitKey)
	}

	if GetInt(HTTPListeningPortKey) <= 0 {
		return fmt.Errorf("%s must be a positive number", HTTPListeningPortKey)
	}

	if GetBool(EnableWebhooksKey) {
		operatorPort := GetInt(OperatorListeningPortKey)
		if operatorPort <= 0 {
			return fmt.Errorf("%s must be a positive number", OperatorListeningPortKey)
		}
		if operatorPort == GetInt(HTTPListeningPortKey) {
			return fmt.Errorf(
				"%s must differ from %s", OperatorListeningPortKey, HTTPListeningPortKey,
			)
		}
		if len(GetString(OperatorTokenKey)) <= 0 && !GetBool(NoOperatorAuthKey) {
			return fmt.Errorf(
				"%s is required when webhooks are enabled, set %s to skip auth",
				OperatorTokenKey, NoOperatorAuthKey,
			)
		}
	}

	for _, key := range []string{NetworkFeeKey, SwapFeeKey} {
		fee, err := decimal.NewFromString(GetString(key))
		if err != nil {
			return fmt.Errorf("%s must be a valid number", key)
		}
		if fee.IsNegative() {
			return fmt.Errorf("%s must not be negative", key)
		}
	}
	if GetDecimal(SwapFeeKey).GreaterThanOrEqual(decimal.NewFromInt(1)) {
		return fmt.Errorf("%s must be lower than 1", SwapFeeKey)
	}

	if GetDuration(TxConfirmationDelayKey) < 0 {
		return fmt.Errorf("%s must not be negative", TxConfirmationDelayKey)
	}

	return nil
}

func initDatadir() error {
	datadir := GetDatadir()
	if GetString(DBTypeKey) == application.DBBadger {
		if err := makeDirectoryIfNotExists(filepath.Join(datadir, DbLocation)); err != nil {
			return err
		}
	}

	profilerEnabled := GetBool(EnableProfilerKey)
	if profilerEnabled {
		if err := makeDirectoryIfNotExists(filepath.Join(datadir, ProfilerLocation)); err != nil {
			return err
		}
	}
	return nil
}

func makeDirectoryIfNotExists(path string) error {
	if _, err := os.Stat(path); os.IsNotExist(err) {
		return os.MkdirAll(path, os.ModeDir|0755)
	}
	return nil
}

func supportedDBTypes() []string {
	return []string{application.DBBadger, application.DBInMemory}
}
