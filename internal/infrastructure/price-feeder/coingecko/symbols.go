package coingecko

// coinIDs maps tickers to CoinGecko coin ids.
var coinIDs = map[string]string{
	"BTC":   "bitcoin",
	"ETH":   "ethereum",
	"USDT":  "tether",
	"BNB":   "binancecoin",
	"SOL":   "solana",
	"USDC":  "usd-coin",
	"XRP":   "ripple",
	"ADA":   "cardano",
	"DOGE":  "dogecoin",
	"TRX":   "tron",
	"DOT":   "polkadot",
	"MATIC": "polygon",
	"LTC":   "litecoin",
	"AVAX":  "avalanche",
	"LINK":  "chainlink",
	"ATOM":  "cosmos",
	"XMR":   "monero",
	"XLM":   "stellar",
	"VET":   "vechain",
	"ALGO":  "algorand",
	"FIL":   "filecoin",
	"HBAR":  "hedera",
	"NEAR":  "near",
	"FTM":   "fantom",
	"APT":   "aptos",
	"OP":    "optimism",
	"ARB":   "arbitrum",
	"SUI":   "sui",
	"IMX":   "immutable-x",
	"LDO":   "lido-dao",
	"TON":   "toncoin",
	"UNI":   "uniswap",
	"SHIB":  "shiba-inu",
	"BCH":   "bitcoin-cash",
	"ETC":   "ethereum-classic",
	"AAVE":  "aave",
	"GRT":   "the-graph",
	"MKR":   "maker",
	"CRV":   "curve-dao-token",
	"CAKE":  "pancakeswap-token",
	"SNX":   "synthetix-network-token",
	"ZEC":   "zcash",
	"DASH":  "dash",
	"MANA":  "decentraland",
	"SAND":  "the-sandbox",
	"AXS":   "axie-infinity",
	"THETA": "theta-network",
	"EOS":   "eos",
	"XTZ":   "tezos",
	"MIOTA": "iota",
	"NEO":   "neo",
	"COMP":  "compound",
	"QNT":   "quant-network",
	"BTT":   "bittorrent",
	"FLOW":  "flow",
	"EGLD":  "multiversx",
	"CHZ":   "chiliz",
	"BAT":   "basic-attention-token",
	"ENJ":   "enjin-coin",
	"ZIL":   "zilliqa",
	"KSM":   "kusama",
	"STX":   "stacks",
	"HNT":   "helium",
	"GALA":  "gala",
	"LRC":   "loopring",
	"1INCH": "1inch",
	"SUSHI": "sushi",
	"YFI":   "yearn-finance",
	"RUNE":  "thorchain",
	"CELO":  "celo",
	"ONE":   "harmony",
	"HOT":   "holochain",
	"QTUM":  "qtum",
	"RVN":   "ravencoin",
	"OMG":   "omisego",
	"WAVES": "waves",
	"ICX":   "icon",
	"ONT":   "ontology",
	"XNO":   "nano",
	"SC":    "siacoin",
	"ANKR":  "ankr",
	"REN":   "ren",
	"BAND":  "band-protocol",
	"OCEAN": "ocean-protocol",
	"FET":   "fetch-ai",
	"RSR":   "reserve-rights",
	"AR":    "arweave",
	"INJ":   "injective",
	"KAVA":  "kava",
	"SCRT":  "secret",
	"CKB":   "nervos-network",
	"CVX":   "convex-finance",
	"RPL":   "rocket-pool",
	"FRAX":  "frax",
	"TUSD":  "trueusd",
	"USDP":  "paxos-standard",
	"GUSD":  "gemini-dollar",
	"DAI":   "dai",
	"BUSD":  "binance-usd",
	"WBTC":  "wrapped-bitcoin",
	"STETH": "staked-ether",
	"PEPE":  "pepe",
	"RNDR":  "render-token",
	"KAS":   "kaspa",
	"USDD":  "usdd",
}
