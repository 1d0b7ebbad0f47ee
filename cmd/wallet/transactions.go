package main

import (
	"context"

	"github.com/tdex-network/tdex-wallet/pkg/walletsync"
	"github.com/urfave/cli/v2"
)

var (
	assetFlag = cli.StringFlag{
		Name:     "asset",
		Usage:    "the id of the asset, ie. 2 for BTC",
		Required: true,
	}
	amountFlag = cli.StringFlag{
		Name:     "amount",
		Usage:    "the amount as a decimal string",
		Required: true,
	}
)

var topup = cli.Command{
	Name:  "topup",
	Usage: "credit some demo funds to the current wallet",
	Flags: []cli.Flag{
		&assetFlag,
		&amountFlag,
	},
	Action: topUpAction,
}

var send = cli.Command{
	Name:  "send",
	Usage: "send funds of an asset to an address",
	Flags: []cli.Flag{
		&assetFlag,
		&amountFlag,
		&cli.StringFlag{
			Name:     "address",
			Usage:    "the destination address",
			Required: true,
		},
	},
	Action: sendAction,
}

var swap = cli.Command{
	Name:  "swap",
	Usage: "swap an amount of an asset for another at market price",
	Flags: []cli.Flag{
		&cli.StringFlag{
			Name:     "from",
			Usage:    "the id of the asset to sell",
			Required: true,
		},
		&cli.StringFlag{
			Name:     "to",
			Usage:    "the id of the asset to buy",
			Required: true,
		},
		&amountFlag,
	},
	Action: swapAction,
}

var txs = cli.Command{
	Name:  "txs",
	Usage: "list the latest transactions of the current wallet",
	Flags: []cli.Flag{
		&cli.IntFlag{
			Name:  "limit",
			Usage: "max number of transactions to list",
			Value: 10,
		},
	},
	Action: txsAction,
}

func topUpAction(ctx *cli.Context) error {
	client, userID, err := getClientAndUser()
	if err != nil {
		return err
	}

	tx, err := client.TopUp(
		context.Background(), userID, ctx.String("asset"), ctx.String("amount"),
	)
	if err != nil {
		return err
	}

	printRespJSON(tx)
	return nil
}

func sendAction(ctx *cli.Context) error {
	client, userID, err := getClientAndUser()
	if err != nil {
		return err
	}

	tx, err := client.Send(
		context.Background(), userID,
		ctx.String("asset"), ctx.String("amount"), ctx.String("address"),
	)
	if err != nil {
		return err
	}

	printRespJSON(tx)
	return nil
}

func swapAction(ctx *cli.Context) error {
	client, userID, err := getClientAndUser()
	if err != nil {
		return err
	}

	resp, err := client.Swap(
		context.Background(), userID,
		ctx.String("from"), ctx.String("to"), ctx.String("amount"),
	)
	if err != nil {
		return err
	}

	printRespJSON(resp)
	return nil
}

func txsAction(ctx *cli.Context) error {
	client, userID, err := getClientAndUser()
	if err != nil {
		return err
	}

	resp, err := client.GetTransactions(
		context.Background(), userID, ctx.Int("limit"),
	)
	if err != nil {
		return err
	}

	printRespJSON(walletsync.TransactionsResponse{Transactions: resp})
	return nil
}
