package main

import (
	"context"
	"fmt"
	"strings"

	"github.com/tdex-network/tdex-wallet/pkg/wallet"
	"github.com/tdex-network/tdex-wallet/pkg/walletsync"
	"github.com/urfave/cli/v2"
)

var (
	usernameFlag = cli.StringFlag{
		Name:  usernameKey,
		Usage: "3 to 20 letters, digits or underscores",
	}
	passwordFlag = cli.StringFlag{
		Name:     "password",
		Usage:    "the password used to encrypt the seed phrase",
		Required: true,
	}
)

var create = cli.Command{
	Name:  "create",
	Usage: "create a new wallet, a seed phrase is generated if not given",
	Flags: []cli.Flag{
		&cli.StringFlag{
			Name:  "seed",
			Usage: "the seed phrase of the wallet",
		},
		&usernameFlag,
		&passwordFlag,
	},
	Action: createAction,
}

var restore = cli.Command{
	Name:  "restore",
	Usage: "restore a wallet from its seed phrase",
	Flags: []cli.Flag{
		&cli.StringFlag{
			Name:     "seed",
			Usage:    "the seed phrase of the wallet",
			Required: true,
		},
		&usernameFlag,
		&cli.StringFlag{
			Name:  "password",
			Usage: "required only if the wallet is not known by the daemon",
		},
	},
	Action: restoreAction,
}

var balances = cli.Command{
	Name:   "balances",
	Usage:  "get the balances of the current wallet",
	Action: balancesAction,
}

var portfolio = cli.Command{
	Name:   "portfolio",
	Usage:  "get the USD value of the balances of the current wallet",
	Action: portfolioAction,
}

func createAction(ctx *cli.Context) error {
	if !ctx.IsSet(usernameKey) {
		return &invalidUsageError{ctx, ctx.Command.Name}
	}

	client, err := getClient()
	if err != nil {
		return err
	}

	seed := ctx.String("seed")
	generated := false
	if seed == "" {
		mnemonic, err := wallet.NewMnemonic(wallet.NewMnemonicOpts{})
		if err != nil {
			return err
		}
		seed = strings.Join(mnemonic, " ")
		generated = true
	}

	username := ctx.String(usernameKey)
	resp, err := client.CreateUser(
		context.Background(), username, seed, ctx.String("password"),
	)
	if err != nil {
		return err
	}

	if err := setState(map[string]string{
		userIDKey:   resp.UserID,
		usernameKey: username,
	}); err != nil {
		return err
	}

	if generated {
		fmt.Fprintln(stdout, "Write down your seed phrase and keep it safe:")
		fmt.Fprintln(stdout, seed)
		fmt.Fprintln(stdout)
	}
	printRespJSON(resp)
	return nil
}

func restoreAction(ctx *cli.Context) error {
	client, err := getClient()
	if err != nil {
		return err
	}

	user, err := client.RestoreUser(
		context.Background(),
		ctx.String("seed"), ctx.String(usernameKey), ctx.String("password"),
	)
	if err != nil {
		return err
	}

	if err := setState(map[string]string{
		userIDKey:   user.UserID,
		usernameKey: user.Username,
	}); err != nil {
		return err
	}

	printRespJSON(user)
	return nil
}

func balancesAction(ctx *cli.Context) error {
	client, userID, err := getClientAndUser()
	if err != nil {
		return err
	}

	resp, err := client.GetBalances(context.Background(), userID)
	if err != nil {
		return err
	}

	printRespJSON(walletsync.BalancesResponse{Balances: resp})
	return nil
}

func portfolioAction(ctx *cli.Context) error {
	client, userID, err := getClientAndUser()
	if err != nil {
		return err
	}

	resp, err := client.GetPortfolio(context.Background(), userID)
	if err != nil {
		return err
	}

	printRespJSON(resp)
	return nil
}

func getClientAndUser() (*walletsync.Client, string, error) {
	userID, err := getUserID()
	if err != nil {
		return nil, "", err
	}
	client, err := getClient()
	if err != nil {
		return nil, "", err
	}
	return client, userID, nil
}
