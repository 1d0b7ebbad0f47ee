package main

import (
	"context"

	"github.com/tdex-network/tdex-wallet/pkg/walletsync"
	"github.com/urfave/cli/v2"
)

var prices = cli.Command{
	Name:  "prices",
	Usage: "get the USD prices of the catalog or the chart of a symbol",
	Flags: []cli.Flag{
		&cli.StringFlag{
			Name:  "symbol",
			Usage: "get the price chart of this symbol, ie. BTC",
		},
		&cli.IntFlag{
			Name:  "days",
			Usage: "the number of days of the chart",
			Value: 7,
		},
	},
	Action: pricesAction,
}

func pricesAction(ctx *cli.Context) error {
	client, err := getClient()
	if err != nil {
		return err
	}

	if symbol := ctx.String("symbol"); symbol != "" {
		resp, err := client.GetPriceHistory(
			context.Background(), symbol, ctx.Int("days"),
		)
		if err != nil {
			return err
		}
		printRespJSON(resp)
		return nil
	}

	resp, err := client.GetPrices(context.Background())
	if err != nil {
		return err
	}
	printRespJSON(walletsync.PricesResponse{Prices: resp})
	return nil
}
