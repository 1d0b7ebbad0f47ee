package walletsync

// Actions understood by the wallet-sync API. The first six are those of the
// legacy sync backend, the others are served by the daemon only.
const (
	ActionCreateUser      = "create_user"
	ActionGetUser         = "get_user"
	ActionGetBalances     = "get_balances"
	ActionUpdateBalance   = "update_balance"
	ActionSaveTransaction = "save_transaction"
	ActionGetTransactions = "get_transactions"

	ActionRestoreUser     = "restore_user"
	ActionDeriveAddresses = "derive_addresses"
	ActionRevealSeed      = "reveal_seed"
	ActionGetPrices       = "get_prices"
	ActionGetPriceHistory = "get_price_history"
	ActionGetPortfolio    = "get_portfolio"
	ActionSend            = "send"
	ActionSwap            = "swap"
	ActionTopUp           = "top_up"

	// served by the operator interface
	ActionAddWebhook    = "add_webhook"
	ActionRemoveWebhook = "remove_webhook"
	ActionListWebhooks  = "list_webhooks"
)

// Request is the body of every POST to the wallet-sync API. Only the fields
// relevant for the action are set.
type Request struct {
	Action              string            `json:"action"`
	UserID              string            `json:"user_id,omitempty"`
	Username            string            `json:"username,omitempty"`
	SeedPhrase          string            `json:"seed_phrase,omitempty"`
	SeedPhraseEncrypted string            `json:"seed_phrase_encrypted,omitempty"`
	Password            string            `json:"password,omitempty"`
	Addresses           map[string]string `json:"addresses,omitempty"`
	CryptoID            string            `json:"crypto_id,omitempty"`
	ToCryptoID          string            `json:"to_crypto_id,omitempty"`
	Balance             string            `json:"balance,omitempty"`
	Amount              string            `json:"amount,omitempty"`
	Address             string            `json:"address,omitempty"`
	Symbol              string            `json:"symbol,omitempty"`
	Days                int               `json:"days,omitempty"`
	Limit               int               `json:"limit,omitempty"`
	Transaction         *Transaction      `json:"transaction,omitempty"`
	Topic               string            `json:"topic,omitempty"`
	Endpoint            string            `json:"endpoint,omitempty"`
	Secret              string            `json:"secret,omitempty"`
	WebhookID           string            `json:"webhook_id,omitempty"`
}

// Transaction is the wire format of a wallet transaction. Amounts are
// decimal strings, timestamp is in milliseconds.
type Transaction struct {
	ID        string `json:"id"`
	Type      string `json:"type"`
	CryptoID  string `json:"cryptoId"`
	Symbol    string `json:"symbol"`
	Amount    string `json:"amount"`
	Address   string `json:"address"`
	Fee       string `json:"fee"`
	Status    string `json:"status"`
	Hash      string `json:"hash"`
	Network   string `json:"network"`
	Timestamp int64  `json:"timestamp"`
}

type CreateUserResponse struct {
	UserID    string            `json:"user_id"`
	Success   bool              `json:"success"`
	Addresses map[string]string `json:"addresses,omitempty"`
}

// User is the profile returned by get_user and restore_user.
type User struct {
	UserID              string            `json:"user_id"`
	Username            string            `json:"username"`
	SeedPhraseEncrypted string            `json:"seed_phrase_encrypted"`
	Addresses           map[string]string `json:"addresses"`
	Balances            map[string]string `json:"balances"`
}

type SuccessResponse struct {
	Success bool `json:"success"`
}

type BalancesResponse struct {
	Balances map[string]string `json:"balances"`
}

type TransactionsResponse struct {
	Transactions []Transaction `json:"transactions"`
}

type TransactionResponse struct {
	Transaction Transaction `json:"transaction"`
}

type SwapResponse struct {
	Send    Transaction `json:"send"`
	Receive Transaction `json:"receive"`
	Rate    string      `json:"rate"`
}

type AddressesResponse struct {
	Addresses map[string]string `json:"addresses"`
}

type SeedResponse struct {
	SeedPhrase []string `json:"seed_phrase"`
}

type PricesResponse struct {
	Prices map[string]string `json:"prices"`
}

type PricePoint struct {
	Timestamp int64  `json:"timestamp"`
	Price     string `json:"price"`
}

type PriceHistoryResponse struct {
	Symbol     string       `json:"symbol"`
	Prices     []PricePoint `json:"prices"`
	Change     string       `json:"change"`
	Percentage string       `json:"percentage"`
}

type PortfolioEntry struct {
	CryptoID string `json:"crypto_id"`
	Name     string `json:"name"`
	Symbol   string `json:"symbol"`
	Network  string `json:"network"`
	Balance  string `json:"balance"`
	Price    string `json:"price"`
	Value    string `json:"value"`
}

type PortfolioResponse struct {
	Assets []PortfolioEntry `json:"assets"`
	Total  string           `json:"total"`
}

type ErrorResponse struct {
	Error string `json:"error"`
}

// TransactionEvent is the message pushed on the transactions websocket
// stream.
type TransactionEvent struct {
	Transaction Transaction `json:"transaction"`
}

// Webhook is a registered webhook, its secret is never returned.
type Webhook struct {
	ID        string `json:"id"`
	Topic     string `json:"topic"`
	Endpoint  string `json:"endpoint"`
	IsSecured bool   `json:"is_secured"`
}

type WebhookResponse struct {
	ID string `json:"id"`
}

type WebhooksResponse struct {
	Webhooks []Webhook `json:"webhooks"`
}
