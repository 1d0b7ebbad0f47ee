package main

import (
	"encoding/json"
	"errors"
	"fmt"
	"io"
	"os"
	"path/filepath"
	"time"

	"github.com/btcsuite/btcd/btcutil"
	"github.com/tdex-network/tdex-wallet/pkg/walletsync"
	"github.com/urfave/cli/v2"
)

const (
	serverKey        = "server"
	operatorKey      = "operator"
	operatorTokenKey = "operator_token"
	userIDKey        = "user_id"
	usernameKey      = "username"

	defaultServer   = "http://localhost:9945"
	defaultOperator = "http://localhost:9000"
	clientTimeout = 30 * time.Second
)

var (
	walletDataDir = btcutil.AppDataDir("tdex-wallet-cli", false)
	statePath     = filepath.Join(walletDataDir, "state.json")

	stdout io.Writer = os.Stdout
)

func main() {
	if err := newApp().Run(os.Args); err != nil {
		fatal(err)
	}
}

func newApp() *cli.App {
	app := cli.NewApp()

	app.Version = "0.0.1"
	app.Name = "wallet CLI"
	app.Usage = "Command line interface for walletd users"
	app.Writer = stdout
	app.Commands = append(
		app.Commands,
		&config,
		&genseed,
		&derive,
		&create,
		&restore,
		&balances,
		&topup,
		&send,
		&swap,
		&txs,
		&prices,
		&portfolio,
		&webhook,
		&listwebhooks,
	)
	return app
}

func getState() (map[string]string, error) {
	data := map[string]string{}

	file, err := os.ReadFile(statePath)
	if err != nil {
		return nil, errors.New("get config state error: try 'config init'")
	}
	if err := json.Unmarshal(file, &data); err != nil {
		return nil, fmt.Errorf("malformed config state: %w", err)
	}

	return data, nil
}

func setState(data map[string]string) error {
	if err := os.MkdirAll(filepath.Dir(statePath), 0755); err != nil {
		return err
	}

	currentData, err := getState()
	if err != nil {
		currentData = map[string]string{}
	}

	mergedData := merge(currentData, data)

	jsonString, err := json.Marshal(mergedData)
	if err != nil {
		return err
	}
	if err := os.WriteFile(statePath, jsonString, 0644); err != nil {
		return fmt.Errorf("writing to file: %w", err)
	}

	return nil
}

func merge(maps ...map[string]string) map[string]string {
	merge := make(map[string]string, 0)
	for _, m := range maps {
		for k, v := range m {
			merge[k] = v
		}
	}
	return merge
}

func printRespJSON(resp interface{}) {
	jsonStr, err := json.MarshalIndent(resp, "", "\t")
	if err != nil {
		fmt.Fprintln(stdout, "unable to decode response: ", err)
		return
	}

	fmt.Fprintln(stdout, string(jsonStr))
}

func getClient() (*walletsync.Client, error) {
	state, err := getState()
	if err != nil {
		return nil, err
	}
	server, ok := state[serverKey]
	if !ok || server == "" {
		return nil, errors.New("set server with `config set server`")
	}

	return walletsync.NewClient(server, clientTimeout)
}

// getOperatorClient returns a client for the operator interface of the
// daemon, authenticated with the token in the local state, if any.
func getOperatorClient() (*walletsync.Client, error) {
	state, err := getState()
	if err != nil {
		return nil, err
	}
	operator, ok := state[operatorKey]
	if !ok || operator == "" {
		return nil, errors.New("set operator with `config set operator`")
	}

	return walletsync.NewClient(
		operator, clientTimeout, walletsync.WithToken(state[operatorTokenKey]),
	)
}

// getUserID returns the id of the user stored in the local state by
// create or restore.
func getUserID() (string, error) {
	state, err := getState()
	if err != nil {
		return "", err
	}
	userID, ok := state[userIDKey]
	if !ok || userID == "" {
		return "", errors.New(
			"no wallet found: run `create` or `restore` first",
		)
	}
	return userID, nil
}

type invalidUsageError struct {
	ctx     *cli.Context
	command string
}

func (e *invalidUsageError) Error() string {
	return fmt.Sprintf("invalid usage of command %s", e.command)
}

func fatal(err error) {
	var e *invalidUsageError
	if errors.As(err, &e) {
		_ = cli.ShowCommandHelp(e.ctx, e.command)
	} else {
		_, _ = fmt.Fprintf(os.Stderr, "[wallet] %v\n", err)
	}
	os.Exit(1)
}
