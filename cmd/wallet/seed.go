package main

import (
	"errors"
	"fmt"
	"strings"

	"github.com/tdex-network/tdex-wallet/pkg/addressgen"
	"github.com/tdex-network/tdex-wallet/pkg/wallet"
	"github.com/urfave/cli/v2"
)

var genseed = cli.Command{
	Name:  "genseed",
	Usage: "generate a mnemonic seed",
	Flags: []cli.Flag{
		&cli.IntFlag{
			Name:  "words",
			Usage: "the number of words of the mnemonic: 12 or 24",
			Value: 12,
		},
	},
	Action: genSeedAction,
}

var derive = cli.Command{
	Name:  "derive",
	Usage: "print the addresses of a seed phrase without contacting the daemon",
	Flags: []cli.Flag{
		&cli.StringFlag{
			Name:     "seed",
			Usage:    "the seed phrase to derive addresses for",
			Required: true,
		},
		&cli.StringFlag{
			Name:  "network",
			Usage: "print only the address of this network",
		},
		&cli.StringSliceFlag{
			Name:  "catalog",
			Usage: "ordered list of networks overriding the default catalog",
		},
	},
	Action: deriveAction,
}

func genSeedAction(ctx *cli.Context) error {
	entropySize, err := wallet.EntropySizeForWords(ctx.Int("words"))
	if err != nil {
		return err
	}
	mnemonic, err := wallet.NewMnemonic(wallet.NewMnemonicOpts{
		EntropySize: entropySize,
	})
	if err != nil {
		return err
	}

	fmt.Fprintln(stdout, strings.Join(mnemonic, " "))
	return nil
}

func deriveAction(ctx *cli.Context) error {
	seed := wallet.NormalizeMnemonic(ctx.String("seed"))
	if len(seed) <= 0 {
		return wallet.ErrNullMnemonic
	}

	opts := make([]addressgen.Option, 0)
	if catalog := ctx.StringSlice("catalog"); len(catalog) > 0 {
		opts = append(opts, addressgen.WithCatalog(catalog))
	}
	book := addressgen.NewAddressBook(opts...)

	if network := ctx.String("network"); network != "" {
		addr, ok := book.Derive(seed, network)
		if !ok {
			return errors.New("network is not part of the catalog")
		}
		fmt.Fprintln(stdout, addr)
		return nil
	}

	addresses := book.DeriveAll(seed)
	for _, network := range addresses.Networks() {
		fmt.Fprintf(stdout, "%s: %s\n", network, addresses[network])
	}
	return nil
}
