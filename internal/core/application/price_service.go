package application

import (
	"context"
	"fmt"
	"strings"
	"sync"
	"time"

	"github.com/shopspring/decimal"
	log "github.com/sirupsen/logrus"
	"github.com/tdex-network/tdex-wallet/internal/core/domain"
	"github.com/tdex-network/tdex-wallet/internal/core/ports"
	"github.com/tdex-network/tdex-wallet/pkg/addressgen"
	"github.com/tdex-network/tdex-wallet/pkg/stats"
)

const (
	mockBasePrice = 100
	mockVariance  = 10
	mockMinPrice  = 1
)

type PriceService interface {
	// Prices returns the USD price of every symbol of the asset catalog and
	// of the price source. Symbols the source could not quote are priced
	// zero.
	Prices(ctx context.Context) map[string]decimal.Decimal
	// Price returns the USD price of the given symbol.
	Price(ctx context.Context, symbol string) decimal.Decimal
	// PriceHistory returns the USD chart of the given symbol for the last
	// days, oldest point first. The window is capped at MaxHistoryDays.
	PriceHistory(ctx context.Context, symbol string, days int) []PricePoint
}

type priceCache struct {
	prices    map[string]decimal.Decimal
	updatedAt time.Time
}

type historyCache struct {
	points    []PricePoint
	updatedAt time.Time
}

type priceService struct {
	source          ports.PriceSource
	cacheTTL        time.Duration
	historyCacheTTL time.Duration
	symbols         []string

	lock      sync.RWMutex
	cache     priceCache
	histories map[string]historyCache
}

// NewPriceService returns a service quoting the asset catalog with the
// given source. With a nil source every quote comes from the fallback
// table and every chart is mocked.
func NewPriceService(
	source ports.PriceSource, cacheTTL, historyCacheTTL time.Duration,
) PriceService {
	if cacheTTL <= 0 {
		cacheTTL = DefaultPriceCacheTTL
	}
	if historyCacheTTL <= 0 {
		historyCacheTTL = DefaultPriceHistoryCacheTTL
	}

	return &priceService{
		source:          source,
		cacheTTL:        cacheTTL,
		historyCacheTTL: historyCacheTTL,
		symbols:         quotedSymbols(source),
		histories:       make(map[string]historyCache),
	}
}

func (s *priceService) Prices(ctx context.Context) map[string]decimal.Decimal {
	if prices, ok := s.cachedPrices(); ok {
		stats.PriceRequests.WithLabelValues("spot", "hit").Inc()
		return prices
	}

	if s.source == nil {
		stats.PriceRequests.WithLabelValues("spot", "fallback").Inc()
		return s.fallbackPrices()
	}

	quotes, err := s.source.GetPrices(ctx, s.symbols)
	if err != nil {
		log.WithError(err).Warn("failed to fetch prices, using fallback ones")
		stats.PriceRequests.WithLabelValues("spot", "fallback").Inc()
		return s.fallbackPrices()
	}
	stats.PriceRequests.WithLabelValues("spot", "miss").Inc()

	prices := make(map[string]decimal.Decimal, len(s.symbols))
	for _, symbol := range s.symbols {
		prices[symbol] = quotes[symbol]
	}

	s.lock.Lock()
	s.cache = priceCache{copyPrices(prices), time.Now()}
	s.lock.Unlock()

	return prices
}

func (s *priceService) Price(ctx context.Context, symbol string) decimal.Decimal {
	return s.Prices(ctx)[strings.ToUpper(symbol)]
}

func (s *priceService) PriceHistory(
	ctx context.Context, symbol string, days int,
) []PricePoint {
	symbol = strings.ToUpper(symbol)
	if days <= 0 {
		days = DefaultHistoryDays
	}
	if days > MaxHistoryDays {
		days = MaxHistoryDays
	}
	key := fmt.Sprintf("%s:%d", symbol, days)

	if points, ok := s.cachedHistory(key); ok {
		stats.PriceRequests.WithLabelValues("history", "hit").Inc()
		return points
	}

	if s.source == nil || !s.source.IsSupported(symbol) {
		stats.PriceRequests.WithLabelValues("history", "mock").Inc()
		return MockPriceHistory(symbol, days, time.Now())
	}

	chart, err := s.source.GetPriceHistory(ctx, symbol, days)
	if err != nil {
		log.WithError(err).WithField("symbol", symbol).Warn(
			"failed to fetch price history, using mocked one",
		)
		stats.PriceRequests.WithLabelValues("history", "mock").Inc()
		return MockPriceHistory(symbol, days, time.Now())
	}
	stats.PriceRequests.WithLabelValues("history", "miss").Inc()

	points := make([]PricePoint, 0, len(chart))
	for _, p := range chart {
		points = append(points, PricePoint{p.GetTimestamp(), p.GetPrice()})
	}

	s.lock.Lock()
	s.histories[key] = historyCache{append([]PricePoint{}, points...), time.Now()}
	s.lock.Unlock()

	return points
}

func (s *priceService) cachedPrices() (map[string]decimal.Decimal, bool) {
	s.lock.RLock()
	defer s.lock.RUnlock()

	if s.cache.prices == nil || time.Since(s.cache.updatedAt) > s.cacheTTL {
		return nil, false
	}
	return copyPrices(s.cache.prices), true
}

func (s *priceService) cachedHistory(key string) ([]PricePoint, bool) {
	s.lock.RLock()
	defer s.lock.RUnlock()

	h, ok := s.histories[key]
	if !ok || time.Since(h.updatedAt) > s.historyCacheTTL {
		return nil, false
	}
	return append([]PricePoint{}, h.points...), true
}

func (s *priceService) fallbackPrices() map[string]decimal.Decimal {
	prices := make(map[string]decimal.Decimal, len(s.symbols))
	for _, symbol := range s.symbols {
		prices[symbol] = FallbackPrice(symbol)
	}
	return prices
}

// FallbackPrice is the USD price used when the source is unreachable: fixed
// quotes for BTC and ETH, 1 for stablecoins, zero for everything else.
func FallbackPrice(symbol string) decimal.Decimal {
	symbol = strings.ToUpper(symbol)
	if price, ok := fallbackPrices[symbol]; ok {
		return price
	}
	if domain.IsStablecoin(symbol) {
		return decimal.NewFromInt(1)
	}
	return decimal.Zero
}

// MockPriceHistory returns a random walk of days+1 daily points ending at
// now, starting from 100 and never going below 1. The walk is seeded by
// symbol and days, so the same chart is returned for the same inputs.
// days is bounded to [0, MaxHistoryDays].
func MockPriceHistory(symbol string, days int, now time.Time) []PricePoint {
	if days < 0 {
		days = 0
	}
	if days > MaxHistoryDays {
		days = MaxHistoryDays
	}
	rng := addressgen.NewRand(addressgen.Hash(nil, strings.ToUpper(symbol), days))
	nowMillis := now.UnixMilli()

	points := make([]PricePoint, 0, days+1)
	price := float64(mockBasePrice)
	for i := days; i >= 0; i-- {
		variance := (rng() - 0.5) * mockVariance
		price = price + variance
		if price < mockMinPrice {
			price = mockMinPrice
		}
		points = append(points, PricePoint{
			Timestamp: nowMillis - int64(i)*dayMillis,
			Price:     decimal.NewFromFloat(price),
		})
	}
	return points
}

// PriceChange returns the change between the first and the last point of
// the chart. Charts with less than 2 points have no change.
func PriceChange(points []PricePoint) PriceChangeInfo {
	if len(points) < 2 {
		return PriceChangeInfo{decimal.Zero, decimal.Zero}
	}

	first := points[0].Price
	last := points[len(points)-1].Price
	change := last.Sub(first)
	if first.IsZero() {
		return PriceChangeInfo{change, decimal.Zero}
	}
	percentage := change.Div(first).Mul(decimal.NewFromInt(100))
	return PriceChangeInfo{change, percentage}
}

// Value returns the USD value of the given amount. Thousands separators are
// ignored and an unparsable amount is worth zero.
func Value(amount string, price decimal.Decimal) decimal.Decimal {
	a, err := decimal.NewFromString(strings.ReplaceAll(strings.TrimSpace(amount), ",", ""))
	if err != nil {
		return decimal.Zero
	}
	return a.Mul(price)
}

// quotedSymbols returns the symbols of the asset catalog followed by the
// stablecoins and those of the source not listed yet.
func quotedSymbols(source ports.PriceSource) []string {
	extra := domain.Stablecoins()
	if source != nil {
		extra = append(extra, source.Symbols()...)
	}

	seen := make(map[string]struct{})
	symbols := make([]string, 0)
	add := func(symbol string) {
		symbol = strings.ToUpper(symbol)
		if _, ok := seen[symbol]; ok {
			return
		}
		seen[symbol] = struct{}{}
		symbols = append(symbols, symbol)
	}
	for _, a := range domain.Assets() {
		add(a.Symbol)
	}
	for _, symbol := range extra {
		add(symbol)
	}
	return symbols
}

func copyPrices(prices map[string]decimal.Decimal) map[string]decimal.Decimal {
	c := make(map[string]decimal.Decimal, len(prices))
	for k, v := range prices {
		c[k] = v
	}
	return c
}
