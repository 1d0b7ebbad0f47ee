package walletsync

import (
	"bytes"
	"context"
	"encoding/json"
	"errors"
	"fmt"
	"io"
	"net/http"
	"net/url"
	"strings"
	"time"

	"github.com/sony/gobreaker"
	"github.com/tdex-network/tdex-wallet/pkg/circuitbreaker"
)

const defaultTimeout = 30 * time.Second

var (
	// ErrInvalidURL ...
	ErrInvalidURL = errors.New("invalid wallet-sync url")
	// ErrNotFound is returned for 404 responses, ie. unknown user.
	ErrNotFound = errors.New("not found")
)

// APIError is returned for every non 2xx response of the wallet-sync API.
type APIError struct {
	StatusCode int
	Message    string
}

func (e *APIError) Error() string {
	return fmt.Sprintf("wallet-sync: %s (status %d)", e.Message, e.StatusCode)
}

func (e *APIError) Unwrap() error {
	if e.StatusCode == http.StatusNotFound {
		return ErrNotFound
	}
	return nil
}

// Client talks to a wallet-sync API endpoint. Server errors and transport
// failures are tracked by a circuit breaker, client errors (4xx) are not.
type Client struct {
	url        string
	token      string
	httpClient *http.Client
	cb         *gobreaker.CircuitBreaker
}

// ClientOption ...
type ClientOption func(*Client)

// WithToken makes the client send token as bearer with every request, as
// required by the operator interface.
func WithToken(token string) ClientOption {
	return func(c *Client) {
		c.token = token
	}
}

func NewClient(
	endpoint string, timeout time.Duration, opts ...ClientOption,
) (*Client, error) {
	u, err := url.Parse(endpoint)
	if err != nil || (u.Scheme != "http" && u.Scheme != "https") || u.Host == "" {
		return nil, ErrInvalidURL
	}
	if timeout <= 0 {
		timeout = defaultTimeout
	}

	c := &Client{
		url:        strings.TrimSuffix(endpoint, "/"),
		httpClient: &http.Client{Timeout: timeout},
		cb:         circuitbreaker.NewCircuitBreaker("walletsync"),
	}
	for _, opt := range opts {
		opt(c)
	}
	return c, nil
}

// URL returns the endpoint the client talks to.
func (c *Client) URL() string {
	return c.url
}

// CreateUser creates a profile for the given seed phrase, whose addresses
// are derived by the server.
func (c *Client) CreateUser(
	ctx context.Context, username, seedPhrase, password string,
) (*CreateUserResponse, error) {
	resp := &CreateUserResponse{}
	if err := c.do(ctx, Request{
		Action:     ActionCreateUser,
		Username:   username,
		SeedPhrase: seedPhrase,
		Password:   password,
	}, resp); err != nil {
		return nil, err
	}
	return resp, nil
}

// RegisterUser creates a profile with addresses derived client side, bound
// to an opaque seed token.
func (c *Client) RegisterUser(
	ctx context.Context, username, seedToken string, addresses map[string]string,
) (*CreateUserResponse, error) {
	resp := &CreateUserResponse{}
	if err := c.do(ctx, Request{
		Action:              ActionCreateUser,
		Username:            username,
		SeedPhraseEncrypted: seedToken,
		Addresses:           addresses,
	}, resp); err != nil {
		return nil, err
	}
	return resp, nil
}

func (c *Client) RestoreUser(
	ctx context.Context, seedPhrase, username, password string,
) (*User, error) {
	resp := &User{}
	if err := c.do(ctx, Request{
		Action:     ActionRestoreUser,
		SeedPhrase: seedPhrase,
		Username:   username,
		Password:   password,
	}, resp); err != nil {
		return nil, err
	}
	return resp, nil
}

func (c *Client) GetUser(ctx context.Context, username string) (*User, error) {
	resp := &User{}
	if err := c.do(ctx, Request{
		Action:   ActionGetUser,
		Username: username,
	}, resp); err != nil {
		return nil, err
	}
	return resp, nil
}

func (c *Client) GetUserBySeedPhrase(
	ctx context.Context, seedPhrase string,
) (*User, error) {
	resp := &User{}
	if err := c.do(ctx, Request{
		Action:     ActionGetUser,
		SeedPhrase: seedPhrase,
	}, resp); err != nil {
		return nil, err
	}
	return resp, nil
}

func (c *Client) GetBalances(
	ctx context.Context, userID string,
) (map[string]string, error) {
	resp := &BalancesResponse{}
	if err := c.do(ctx, Request{
		Action: ActionGetBalances,
		UserID: userID,
	}, resp); err != nil {
		return nil, err
	}
	return resp.Balances, nil
}

func (c *Client) UpdateBalance(
	ctx context.Context, userID, cryptoID, balance string,
) error {
	return c.do(ctx, Request{
		Action:   ActionUpdateBalance,
		UserID:   userID,
		CryptoID: cryptoID,
		Balance:  balance,
	}, &SuccessResponse{})
}

func (c *Client) SaveTransaction(
	ctx context.Context, userID string, tx Transaction,
) error {
	return c.do(ctx, Request{
		Action:      ActionSaveTransaction,
		UserID:      userID,
		Transaction: &tx,
	}, &SuccessResponse{})
}

func (c *Client) GetTransactions(
	ctx context.Context, userID string, limit int,
) ([]Transaction, error) {
	resp := &TransactionsResponse{}
	if err := c.do(ctx, Request{
		Action: ActionGetTransactions,
		UserID: userID,
		Limit:  limit,
	}, resp); err != nil {
		return nil, err
	}
	return resp.Transactions, nil
}

func (c *Client) DeriveAddresses(
	ctx context.Context, seedPhrase string,
) (map[string]string, error) {
	resp := &AddressesResponse{}
	if err := c.do(ctx, Request{
		Action:     ActionDeriveAddresses,
		SeedPhrase: seedPhrase,
	}, resp); err != nil {
		return nil, err
	}
	return resp.Addresses, nil
}

func (c *Client) RevealSeed(
	ctx context.Context, username, password string,
) ([]string, error) {
	resp := &SeedResponse{}
	if err := c.do(ctx, Request{
		Action:   ActionRevealSeed,
		Username: username,
		Password: password,
	}, resp); err != nil {
		return nil, err
	}
	return resp.SeedPhrase, nil
}

func (c *Client) GetPrices(ctx context.Context) (map[string]string, error) {
	resp := &PricesResponse{}
	if err := c.do(ctx, Request{Action: ActionGetPrices}, resp); err != nil {
		return nil, err
	}
	return resp.Prices, nil
}

func (c *Client) GetPriceHistory(
	ctx context.Context, symbol string, days int,
) (*PriceHistoryResponse, error) {
	resp := &PriceHistoryResponse{}
	if err := c.do(ctx, Request{
		Action: ActionGetPriceHistory,
		Symbol: symbol,
		Days:   days,
	}, resp); err != nil {
		return nil, err
	}
	return resp, nil
}

func (c *Client) GetPortfolio(
	ctx context.Context, userID string,
) (*PortfolioResponse, error) {
	resp := &PortfolioResponse{}
	if err := c.do(ctx, Request{
		Action: ActionGetPortfolio,
		UserID: userID,
	}, resp); err != nil {
		return nil, err
	}
	return resp, nil
}

func (c *Client) Send(
	ctx context.Context, userID, cryptoID, amount, address string,
) (*Transaction, error) {
	resp := &TransactionResponse{}
	if err := c.do(ctx, Request{
		Action:   ActionSend,
		UserID:   userID,
		CryptoID: cryptoID,
		Amount:   amount,
		Address:  address,
	}, resp); err != nil {
		return nil, err
	}
	return &resp.Transaction, nil
}

func (c *Client) Swap(
	ctx context.Context, userID, fromCryptoID, toCryptoID, amount string,
) (*SwapResponse, error) {
	resp := &SwapResponse{}
	if err := c.do(ctx, Request{
		Action:     ActionSwap,
		UserID:     userID,
		CryptoID:   fromCryptoID,
		ToCryptoID: toCryptoID,
		Amount:     amount,
	}, resp); err != nil {
		return nil, err
	}
	return resp, nil
}

func (c *Client) TopUp(
	ctx context.Context, userID, cryptoID, amount string,
) (*Transaction, error) {
	resp := &TransactionResponse{}
	if err := c.do(ctx, Request{
		Action:   ActionTopUp,
		UserID:   userID,
		CryptoID: cryptoID,
		Amount:   amount,
	}, resp); err != nil {
		return nil, err
	}
	return &resp.Transaction, nil
}

// AddWebhook registers endpoint to be notified about the transactions
// events of topic, "*" for all of them. Webhook actions are served by the
// operator interface only.
func (c *Client) AddWebhook(
	ctx context.Context, topic, endpoint, secret string,
) (string, error) {
	resp := &WebhookResponse{}
	if err := c.do(ctx, Request{
		Action:   ActionAddWebhook,
		Topic:    topic,
		Endpoint: endpoint,
		Secret:   secret,
	}, resp); err != nil {
		return "", err
	}
	return resp.ID, nil
}

func (c *Client) RemoveWebhook(ctx context.Context, id string) error {
	return c.do(ctx, Request{
		Action:    ActionRemoveWebhook,
		WebhookID: id,
	}, &SuccessResponse{})
}

func (c *Client) ListWebhooks(ctx context.Context, topic string) ([]Webhook, error) {
	resp := &WebhooksResponse{}
	if err := c.do(ctx, Request{
		Action: ActionListWebhooks,
		Topic:  topic,
	}, resp); err != nil {
		return nil, err
	}
	return resp.Webhooks, nil
}

type rawResponse struct {
	status int
	body   []byte
}

func (c *Client) do(ctx context.Context, req Request, out interface{}) error {
	payload, err := json.Marshal(req)
	if err != nil {
		return err
	}

	res, err := c.cb.Execute(func() (interface{}, error) {
		httpReq, err := http.NewRequestWithContext(
			ctx, http.MethodPost, c.url, bytes.NewReader(payload),
		)
		if err != nil {
			return nil, err
		}
		httpReq.Header.Set("Content-Type", "application/json")
		if len(c.token) > 0 {
			httpReq.Header.Set("Authorization", "Bearer "+c.token)
		}

		resp, err := c.httpClient.Do(httpReq)
		if err != nil {
			return nil, err
		}
		defer resp.Body.Close()

		body, err := io.ReadAll(resp.Body)
		if err != nil {
			return nil, err
		}
		raw := rawResponse{resp.StatusCode, body}
		if resp.StatusCode >= http.StatusInternalServerError {
			return nil, newAPIError(raw)
		}
		return raw, nil
	})
	if err != nil {
		return err
	}

	raw := res.(rawResponse)
	if raw.status < 200 || raw.status > 299 {
		return newAPIError(raw)
	}
	if err := json.Unmarshal(raw.body, out); err != nil {
		return fmt.Errorf("wallet-sync: malformed response: %w", err)
	}
	return nil
}

func newAPIError(raw rawResponse) *APIError {
	errResp := ErrorResponse{}
	if err := json.Unmarshal(raw.body, &errResp); err != nil || errResp.Error == "" {
		errResp.Error = strings.TrimSpace(string(raw.body))
	}
	if errResp.Error == "" {
		errResp.Error = http.StatusText(raw.status)
	}
	return &APIError{raw.status, errResp.Error}
}
