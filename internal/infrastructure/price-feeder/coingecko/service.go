package coingecko

import (
	"context"
	"encoding/json"
	"errors"
	"fmt"
	"io"
	"net/http"
	"net/url"
	"sort"
	"strconv"
	"strings"
	"time"

	"github.com/shopspring/decimal"
	log "github.com/sirupsen/logrus"
	"github.com/sony/gobreaker"
	"github.com/tdex-network/tdex-wallet/internal/core/ports"
	"github.com/tdex-network/tdex-wallet/pkg/circuitbreaker"
	"go.uber.org/ratelimit"
)

const (
	// DefaultBaseURL is the public CoinGecko v3 REST API.
	DefaultBaseURL = "https://api.coingecko.com/api/v3"

	defaultTimeout = 15 * time.Second
	vsCurrency     = "usd"
)

var (
	// ErrInvalidBaseURL ...
	ErrInvalidBaseURL = errors.New("invalid price source base url")
	// ErrInvalidRateLimit ...
	ErrInvalidRateLimit = errors.New("rate limit must be a positive number")
	// ErrUnsupportedSymbol ...
	ErrUnsupportedSymbol = errors.New("symbol not supported by price source")
	// ErrMalformedResponse ...
	ErrMalformedResponse = errors.New("malformed response from price source")
)

type pricePoint struct {
	timestamp int64
	price     decimal.Decimal
}

func (p pricePoint) GetTimestamp() int64 {
	return p.timestamp
}

func (p pricePoint) GetPrice() decimal.Decimal {
	return p.price
}

type service struct {
	baseURL string
	client  *http.Client
	limiter ratelimit.Limiter
	cb      *gobreaker.CircuitBreaker
}

// NewService returns a price source querying the CoinGecko compatible API
// at baseURL. At most requestsPerSecond requests are sent per second.
func NewService(
	baseURL string, requestsPerSecond int, timeout time.Duration,
) (ports.PriceSource, error) {
	if len(baseURL) <= 0 {
		baseURL = DefaultBaseURL
	}
	u, err := url.Parse(baseURL)
	if err != nil || (u.Scheme != "http" && u.Scheme != "https") || u.Host == "" {
		return nil, ErrInvalidBaseURL
	}
	if requestsPerSecond <= 0 {
		return nil, ErrInvalidRateLimit
	}
	if timeout <= 0 {
		timeout = defaultTimeout
	}

	return &service{
		baseURL: strings.TrimSuffix(baseURL, "/"),
		client:  &http.Client{Timeout: timeout},
		limiter: ratelimit.New(requestsPerSecond),
		cb:      circuitbreaker.NewCircuitBreaker("coingecko"),
	}, nil
}

func (s *service) IsSupported(symbol string) bool {
	_, ok := coinIDs[strings.ToUpper(symbol)]
	return ok
}

func (s *service) Symbols() []string {
	symbols := make([]string, 0, len(coinIDs))
	for symbol := range coinIDs {
		symbols = append(symbols, symbol)
	}
	sort.Strings(symbols)
	return symbols
}

func (s *service) GetPrices(
	ctx context.Context, symbols []string,
) (map[string]decimal.Decimal, error) {
	symbolByID := make(map[string]string)
	for _, symbol := range symbols {
		symbol = strings.ToUpper(symbol)
		if id, ok := coinIDs[symbol]; ok {
			symbolByID[id] = symbol
		}
	}
	if len(symbolByID) <= 0 {
		return map[string]decimal.Decimal{}, nil
	}

	ids := make([]string, 0, len(symbolByID))
	for id := range symbolByID {
		ids = append(ids, id)
	}
	sort.Strings(ids)

	query := url.Values{}
	query.Set("ids", strings.Join(ids, ","))
	query.Set("vs_currencies", vsCurrency)
	endpoint := fmt.Sprintf("%s/simple/price?%s", s.baseURL, query.Encode())

	var resp map[string]map[string]json.Number
	if err := s.get(ctx, endpoint, &resp); err != nil {
		return nil, err
	}

	prices := make(map[string]decimal.Decimal, len(symbolByID))
	for id, symbol := range symbolByID {
		quote, ok := resp[id][vsCurrency]
		if !ok {
			continue
		}
		price, err := decimal.NewFromString(quote.String())
		if err != nil {
			return nil, ErrMalformedResponse
		}
		prices[symbol] = price
	}
	return prices, nil
}

func (s *service) GetPriceHistory(
	ctx context.Context, symbol string, days int,
) ([]ports.PricePoint, error) {
	id, ok := coinIDs[strings.ToUpper(symbol)]
	if !ok {
		return nil, ErrUnsupportedSymbol
	}

	query := url.Values{}
	query.Set("vs_currency", vsCurrency)
	query.Set("days", strconv.Itoa(days))
	endpoint := fmt.Sprintf(
		"%s/coins/%s/market_chart?%s", s.baseURL, id, query.Encode(),
	)

	var resp struct {
		Prices [][]json.Number `json:"prices"`
	}
	if err := s.get(ctx, endpoint, &resp); err != nil {
		return nil, err
	}

	points := make([]ports.PricePoint, 0, len(resp.Prices))
	for _, p := range resp.Prices {
		if len(p) != 2 {
			return nil, ErrMalformedResponse
		}
		timestamp, err := decimal.NewFromString(p[0].String())
		if err != nil {
			return nil, ErrMalformedResponse
		}
		price, err := decimal.NewFromString(p[1].String())
		if err != nil {
			return nil, ErrMalformedResponse
		}
		points = append(points, pricePoint{timestamp.IntPart(), price})
	}
	return points, nil
}

func (s *service) get(ctx context.Context, endpoint string, out interface{}) error {
	body, err := s.cb.Execute(func() (interface{}, error) {
		s.limiter.Take()

		req, err := http.NewRequestWithContext(ctx, http.MethodGet, endpoint, nil)
		if err != nil {
			return nil, err
		}
		req.Header.Set("Accept", "application/json")

		resp, err := s.client.Do(req)
		if err != nil {
			return nil, err
		}
		defer resp.Body.Close()

		body, err := io.ReadAll(resp.Body)
		if err != nil {
			return nil, err
		}
		if resp.StatusCode != http.StatusOK {
			return nil, fmt.Errorf(
				"unexpected status %d: %s", resp.StatusCode, strings.TrimSpace(string(body)),
			)
		}
		return body, nil
	})
	if err != nil {
		log.WithError(err).WithField("endpoint", endpoint).Debug(
			"price source request failed",
		)
		return err
	}

	if err := json.Unmarshal(body.([]byte), out); err != nil {
		return ErrMalformedResponse
	}
	return nil
}
