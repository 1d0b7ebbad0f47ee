package addressgen_test

import (
	"regexp"
	"strings"
	"testing"

	"github.com/stretchr/testify/require"
	"github.com/tdex-network/tdex-wallet/pkg/addressgen"
)

func TestFormatterShapes(t *testing.T) {
	formatter := addressgen.NewFormatter()

	tests := []struct {
		network string
		shape   string
	}{
		{"Ethereum", `^0x[0-9a-f]{40}$`},
		{"BSC", `^0x[0-9a-f]{40}$`},
		{"Polygon", `^0x[0-9a-f]{40}$`},
		{"TRC20", `^T[1-9A-HJ-NP-Za-km-z]{33}$`},
		{"Tron", `^T[1-9A-HJ-NP-Za-km-z]{33}$`},
		{"Bitcoin", `^bc1q[a-z0-9]{38}$`},
		{"Hedera", `^0\.0\.\d+$`},
		{"Near", `^[a-z0-9]{12}\.near$`},
		{"Aptos", `^0x[0-9a-f]{64}$`},
		{"Flow", `^0x[0-9a-f]{16}$`},
		{"Siacoin", `^[0-9a-f]{76}$`},
		{"EOS", `^[a-z1-5]{12}$`},
		{"Kaspa", `^kaspa:[A-Za-z0-9]{61}$`},
		{"Helium", `^13[A-Za-z0-9]{48}$`},
		{"Avalanche", `^X-avax1[A-Za-z0-9]{38}$`},
		{"Bitcoin Cash", `^bitcoincash:q[A-Za-z0-9]{40}$`},
	}

	for i := range tests {
		tt := tests[i]
		t.Run(tt.network, func(t *testing.T) {
			re := regexp.MustCompile(tt.shape)
			for seed := int32(0); seed < 200; seed++ {
				addr := formatter.Format(tt.network, addressgen.NewRand(seed*7919))
				require.Regexp(t, re, addr)
				require.Regexp(t, formatter.Shape(tt.network), addr)
			}
		})
	}
}

func TestFormatterCatalogCoverage(t *testing.T) {
	formatter := addressgen.NewFormatter()
	for _, network := range addressgen.DefaultCatalog() {
		require.True(t, formatter.IsKnown(network), network)

		addr := formatter.Format(network, addressgen.NewRand(addressgen.Hash(testSeed, network, 0)))
		require.NotEmpty(t, addr)
		require.Regexp(t, formatter.Shape(network), addr, network)
	}
}

func TestFormatterFallback(t *testing.T) {
	formatter := addressgen.NewFormatter()
	evm := regexp.MustCompile(`^0x[0-9a-f]{40}$`)

	for _, network := range []string{"MadeUpChain123", "", "ethereum", "Bitcoin "} {
		require.False(t, formatter.IsKnown(network))
		addr := formatter.Format(network, addressgen.NewRand(1))
		require.Regexp(t, evm, addr)
		require.Equal(t, formatter.Shape("Ethereum").String(), formatter.Shape(network).String())
	}
}

func TestFormatterCustomRules(t *testing.T) {
	base := addressgen.NewFormatter()
	known := base.Networks()

	custom := base.WithRule("Stacks", addressgen.Rule{
		Prefix: "ST", Length: 10, Charset: addressgen.Base58,
	})
	custom = custom.WithGenerator("MadeUpChain123", addressgen.Generator{
		Generate: func(rng addressgen.Rand) string {
			return "made-up-" + addressgen.Hex.Draw(rng, 4)
		},
		Shape: regexp.MustCompile(`^made-up-[0-9a-f]{4}$`),
	})

	rng := addressgen.NewRand(5)
	require.Regexp(t, `^ST[1-9A-HJ-NP-Za-km-z]{10}$`, custom.Format("Stacks", rng))
	require.True(t, strings.HasPrefix(custom.Format("MadeUpChain123", rng), "made-up-"))
	require.Regexp(t, custom.Shape("MadeUpChain123"), custom.Format("MadeUpChain123", rng))

	// the default table is left untouched
	require.Equal(t, known, base.Networks())
	require.False(t, base.IsKnown("MadeUpChain123"))
	require.Regexp(t, `^SP[A-Za-z0-9]{39}$`, base.Format("Stacks", rng))

	// a rule replaces a generator registered for the same network
	hedera := base.WithRule("Hedera", addressgen.EVMRule)
	require.Regexp(t, `^0x[0-9a-f]{40}$`, hedera.Format("Hedera", rng))
	require.Equal(t, known, hedera.Networks())
}
