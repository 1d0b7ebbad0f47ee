package addressgen

var defaultCatalog = []string{
	"Bitcoin", "Ethereum", "BSC", "TRC20", "Cardano", "Solana", "XRP Ledger",
	"Polkadot", "Dogecoin", "Polygon", "Litecoin", "Avalanche", "Cosmos",
	"Tron", "Monero", "Stellar", "VeChain", "Algorand", "Filecoin", "Hedera",
	"Near", "Fantom", "Aptos", "Optimism", "Arbitrum", "Sui", "TON",
	"Bitcoin Cash", "Ethereum Classic", "Zcash", "Dash", "Theta", "EOS",
	"Tezos", "IOTA", "NEO", "Qtum", "Ravencoin", "Waves", "ICON", "Ontology",
	"Nano", "Siacoin", "Arweave", "Kava", "Secret", "Nervos", "THORChain",
	"Celo", "Harmony", "Flow", "Elrond", "MultiversX", "Zilliqa", "Kusama",
	"Stacks", "Helium", "Kaspa", "ERC20", "BEP20",
}

// DefaultCatalog returns the ordered list of supported networks. The
// position of each network is part of its hash salt: reordering the catalog
// changes every derived address.
func DefaultCatalog() []string {
	return append([]string{}, defaultCatalog...)
}
