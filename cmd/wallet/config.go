package main

import (
	"errors"
	"fmt"
	"sort"

	"github.com/urfave/cli/v2"
)

const maskedToken = "********"

var (
	serverFlag = cli.StringFlag{
		Name:  serverKey,
		Usage: "walletd wallet-sync endpoint",
		Value: defaultServer,
	}
	operatorFlag = cli.StringFlag{
		Name:  operatorKey,
		Usage: "walletd operator endpoint, used to manage webhooks",
		Value: defaultOperator,
	}
	operatorTokenFlag = cli.StringFlag{
		Name:  operatorTokenKey,
		Usage: "bearer token of the walletd operator interface",
	}
)

var config = cli.Command{
	Name:   "config",
	Usage:  "Print local configuration of the wallet CLI",
	Action: configAction,
	Subcommands: []*cli.Command{
		{
			Name:   "set",
			Usage:  "set a <key> <value> in the local state",
			Action: configSetAction,
		},
		{
			Name:   "init",
			Usage:  "initialize the local state with flags",
			Action: configInitAction,
			Flags: []cli.Flag{
				&serverFlag,
				&operatorFlag,
				&operatorTokenFlag,
			},
		},
	},
}

func configAction(ctx *cli.Context) error {
	state, err := getState()
	if err != nil {
		return err
	}

	keys := make([]string, 0, len(state))
	for key := range state {
		keys = append(keys, key)
	}
	sort.Strings(keys)

	for _, key := range keys {
		value := state[key]
		if key == operatorTokenKey && len(value) > 0 {
			value = maskedToken
		}
		fmt.Fprintln(stdout, key+": "+value)
	}
	return nil
}

func configInitAction(ctx *cli.Context) error {
	state := map[string]string{
		serverKey:   ctx.String(serverKey),
		operatorKey: ctx.String(operatorKey),
	}
	if token := ctx.String(operatorTokenKey); len(token) > 0 {
		state[operatorTokenKey] = token
	}
	return setState(state)
}

func configSetAction(ctx *cli.Context) error {
	if ctx.NArg() < 2 {
		return errors.New("key and value are missing")
	}

	key := ctx.Args().Get(0)
	value := ctx.Args().Get(1)

	if err := setState(map[string]string{key: value}); err != nil {
		return err
	}

	fmt.Fprintf(stdout, "%s %s has been set\n", key, value)
	return nil
}
