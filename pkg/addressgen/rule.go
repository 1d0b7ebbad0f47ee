package addressgen

import (
	"fmt"
	"regexp"
	"strings"
)

// Rule describes the shape of an address made of a fixed prefix, a random
// body and a fixed suffix.
type Rule struct {
	Prefix  string
	Suffix  string
	Length  int
	Charset Charset
	// Lowercase folds the body to lowercase after it has been drawn.
	Lowercase bool
}

// Format draws the body from rng and wraps it with prefix and suffix.
func (r Rule) Format(rng Rand) string {
	body := r.Charset.Draw(rng, r.Length)
	if r.Lowercase {
		body = strings.ToLower(body)
	}
	return r.Prefix + body + r.Suffix
}

// Shape returns the regular expression every address produced by the rule
// matches.
func (r Rule) Shape() *regexp.Regexp {
	return regexp.MustCompile(fmt.Sprintf(
		"^%s%s{%d}%s$",
		regexp.QuoteMeta(r.Prefix), r.Charset.class(r.Lowercase), r.Length,
		regexp.QuoteMeta(r.Suffix),
	))
}

// Generator produces addresses that do not fit the prefix/body/suffix
// pattern of a Rule.
type Generator struct {
	Generate func(rng Rand) string
	Shape    *regexp.Regexp
}

func evm(length int) Rule {
	return Rule{Prefix: "0x", Length: length, Charset: Hex}
}

func prefixed(prefix string, length int) Rule {
	return Rule{Prefix: prefix, Length: length, Charset: Alphanumeric}
}

var (
	// EVMRule is used by every EVM compatible network and by any network
	// missing from the formatter table.
	EVMRule = evm(40)

	hederaGenerator = Generator{
		Generate: func(rng Rand) string {
			return fmt.Sprintf("0.0.%d", rng.Intn(1000000))
		},
		Shape: regexp.MustCompile(`^0\.0\.\d+$`),
	}

	defaultRules = map[string]Rule{
		"Bitcoin":          {Prefix: "bc1q", Length: 38, Charset: Alphanumeric, Lowercase: true},
		"Bitcoin Cash":     prefixed("bitcoincash:q", 40),
		"Ethereum":         EVMRule,
		"ERC20":            EVMRule,
		"BSC":              EVMRule,
		"BEP20":            EVMRule,
		"Polygon":          EVMRule,
		"Optimism":         EVMRule,
		"Arbitrum":         EVMRule,
		"Ethereum Classic": EVMRule,
		"VeChain":          EVMRule,
		"Fantom":           EVMRule,
		"Celo":             EVMRule,
		"Theta":            EVMRule,
		"TRC20":            {Prefix: "T", Length: 33, Charset: Base58},
		"Tron":             {Prefix: "T", Length: 33, Charset: Base58},
		"Solana":           prefixed("", 44),
		"Cardano":          prefixed("addr1", 54),
		"XRP Ledger":       prefixed("r", 33),
		"Polkadot":         prefixed("1", 47),
		"Kusama":           prefixed("", 48),
		"Dogecoin":         prefixed("D", 33),
		"Litecoin":         prefixed("ltc1", 39),
		"Avalanche":        prefixed("X-avax1", 38),
		"Cosmos":           prefixed("cosmos1", 38),
		"Monero":           prefixed("4", 94),
		"Stellar":          prefixed("G", 55),
		"Algorand":         prefixed("", 58),
		"Filecoin":         prefixed("f1", 50),
		"Near":             {Suffix: ".near", Length: 12, Charset: LowerAlphanumeric},
		"Aptos":            evm(64),
		"Sui":              evm(64),
		"TON":              prefixed("EQ", 46),
		"Zcash":            prefixed("t1", 33),
		"Dash":             prefixed("X", 33),
		"EOS":              {Length: 12, Charset: EOSCharset},
		"Tezos":            prefixed("tz1", 33),
		"IOTA":             prefixed("iota1", 60),
		"NEO":              prefixed("A", 33),
		"Qtum":             prefixed("Q", 33),
		"Ravencoin":        prefixed("R", 33),
		"Waves":            prefixed("3P", 33),
		"ICON":             {Prefix: "hx", Length: 40, Charset: Hex},
		"Ontology":         prefixed("A", 33),
		"Nano":             prefixed("nano_", 60),
		"Siacoin":          {Length: 76, Charset: Hex},
		"Arweave":          prefixed("", 43),
		"Kava":             prefixed("kava1", 38),
		"Secret":           prefixed("secret1", 38),
		"Nervos":           prefixed("ckb1", 42),
		"THORChain":        prefixed("thor1", 38),
		"Harmony":          prefixed("one1", 38),
		"Flow":             evm(16),
		"Elrond":           prefixed("erd1", 58),
		"MultiversX":       prefixed("erd1", 58),
		"Zilliqa":          prefixed("zil1", 38),
		"Stacks":           prefixed("SP", 39),
		"Helium":           prefixed("13", 48),
		"Kaspa":            prefixed("kaspa:", 61),
	}

	defaultGenerators = map[string]Generator{
		"Hedera": hederaGenerator,
	}
)
