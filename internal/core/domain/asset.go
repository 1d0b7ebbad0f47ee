package domain

import (
	"sort"
	"strings"
)

// Asset is an entry of the wallet's asset catalog. ID is the key used for
// balances and transactions.
type Asset struct {
	ID      string
	Name    string
	Symbol  string
	Network string
}

var assets = []Asset{
	{"1", "Tether", "USDT", "TRC20"},
	{"2", "Bitcoin", "BTC", "Bitcoin"},
	{"3", "Ethereum", "ETH", "Ethereum"},
	{"4", "BNB", "BNB", "BSC"},
	{"5", "Cardano", "ADA", "Cardano"},
	{"6", "Solana", "SOL", "Solana"},
	{"7", "Ripple", "XRP", "XRP Ledger"},
	{"8", "Polkadot", "DOT", "Polkadot"},
	{"9", "Dogecoin", "DOGE", "Dogecoin"},
	{"10", "Polygon", "MATIC", "Polygon"},
	{"11", "Litecoin", "LTC", "Litecoin"},
	{"12", "Chainlink", "LINK", "Ethereum"},
	{"13", "Avalanche", "AVAX", "Avalanche"},
	{"14", "Cosmos", "ATOM", "Cosmos"},
	{"15", "Tron", "TRX", "Tron"},
	{"16", "Monero", "XMR", "Monero"},
	{"17", "Stellar", "XLM", "Stellar"},
	{"18", "VeChain", "VET", "VeChain"},
	{"19", "Algorand", "ALGO", "Algorand"},
	{"20", "Filecoin", "FIL", "Filecoin"},
	{"21", "Hedera", "HBAR", "Hedera"},
	{"22", "Near", "NEAR", "Near"},
	{"23", "Fantom", "FTM", "Fantom"},
	{"24", "Aptos", "APT", "Aptos"},
	{"25", "Optimism", "OP", "Optimism"},
	{"26", "Arbitrum", "ARB", "Arbitrum"},
	{"27", "Sui", "SUI", "Sui"},
	{"28", "Immutable", "IMX", "Ethereum"},
	{"29", "Lido DAO", "LDO", "Ethereum"},
	{"30", "Toncoin", "TON", "TON"},
	{"106", "Tether", "USDT", "ERC20"},
	{"111", "USD Coin", "USDC", "ERC20"},
}

var (
	assetsByID = func() map[string]Asset {
		m := make(map[string]Asset, len(assets))
		for _, a := range assets {
			m[a.ID] = a
		}
		return m
	}()

	stablecoins = map[string]struct{}{
		"USDT": {}, "USDC": {}, "DAI": {}, "BUSD": {}, "TUSD": {},
		"USDP": {}, "GUSD": {}, "FRAX": {}, "USDD": {},
	}
)

// Assets returns the whole catalog ordered by id as shown to users.
func Assets() []Asset {
	return append([]Asset{}, assets...)
}

// AssetByID returns the catalog entry with the given id.
func AssetByID(id string) (Asset, error) {
	a, ok := assetsByID[id]
	if !ok {
		return Asset{}, ErrUnknownAsset
	}
	return a, nil
}

// AssetBySymbol returns the first catalog entry with the given ticker. The
// same symbol can be listed on several networks (ie. USDT), the TRC20 one
// comes first.
func AssetBySymbol(symbol string) (Asset, error) {
	symbol = strings.ToUpper(symbol)
	for _, a := range assets {
		if a.Symbol == symbol {
			return a, nil
		}
	}
	return Asset{}, ErrUnknownAsset
}

// IsStablecoin returns whether the ticker belongs to a USD pegged token.
func IsStablecoin(symbol string) bool {
	_, ok := stablecoins[strings.ToUpper(symbol)]
	return ok
}

// Stablecoins returns the tickers of the USD pegged tokens, sorted.
func Stablecoins() []string {
	symbols := make([]string, 0, len(stablecoins))
	for symbol := range stablecoins {
		symbols = append(symbols, symbol)
	}
	sort.Strings(symbols)
	return symbols
}
