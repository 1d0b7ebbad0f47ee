package main

import (
	"context"
	"fmt"

	"github.com/urfave/cli/v2"
)

const (
	topicPending   = "TRANSACTION_PENDING"
	topicCompleted = "TRANSACTION_COMPLETED"
	topicFailed    = "TRANSACTION_FAILED"
	topicAny       = "*"
)

var eventFlags = []cli.Flag{
	&cli.BoolFlag{
		Name:  "tx_pending_event",
		Usage: "triggers the webhook endpoint whenever a transaction is added as pending",
	},
	&cli.BoolFlag{
		Name:  "tx_completed_event",
		Usage: "triggers the webhook endpoint whenever a transaction is completed",
	},
	&cli.BoolFlag{
		Name:  "tx_failed_event",
		Usage: "triggers the webhook endpoint whenever a transaction fails",
	},
	&cli.BoolFlag{
		Name:  "any_event",
		Usage: "triggers the webhook endpoint whenever any event occurs",
	},
}

var (
	webhook = cli.Command{
		Name:  "webhook",
		Usage: "add or remove webhooks",
		Subcommands: []*cli.Command{
			webhookAddCmd, webhookRemoveCmd,
		},
	}
	listwebhooks = cli.Command{
		Name:   "webhooks",
		Usage:  "list all webhooks, optionally filtered by target event",
		Flags:  eventFlags,
		Action: listWebhooksAction,
	}

	webhookAddCmd = &cli.Command{
		Name:  "add",
		Usage: "add a (secured) webhook endpoint called whenever a target event occurs",
		Flags: append([]cli.Flag{
			&cli.StringFlag{
				Name:     "endpoint",
				Usage:    "the webhook endpoint to be called whenever the target event occurs",
				Required: true,
			},
			&cli.StringFlag{
				Name: "secret",
				Usage: "the eventual secret used to sign the bearer token " +
					"authenticating requests to the webhook endpoint",
			},
		}, eventFlags...),
		Action: addWebhookAction,
	}

	webhookRemoveCmd = &cli.Command{
		Name:  "remove",
		Usage: "remove a webhook",
		Flags: []cli.Flag{
			&cli.StringFlag{
				Name:     "id",
				Usage:    "the id of the webhook to remove",
				Required: true,
			},
		},
		Action: removeWebhookAction,
	}
)

func addWebhookAction(ctx *cli.Context) error {
	topic, err := parseEvent(ctx)
	if err != nil {
		return err
	}
	if topic == "" {
		return fmt.Errorf("missing event")
	}

	client, err := getOperatorClient()
	if err != nil {
		return err
	}

	id, err := client.AddWebhook(
		context.Background(), topic, ctx.String("endpoint"), ctx.String("secret"),
	)
	if err != nil {
		return err
	}

	fmt.Fprintln(stdout, "webhook id:", id)
	return nil
}

func removeWebhookAction(ctx *cli.Context) error {
	client, err := getOperatorClient()
	if err != nil {
		return err
	}

	hookID := ctx.String("id")
	if err := client.RemoveWebhook(context.Background(), hookID); err != nil {
		return err
	}

	fmt.Fprintln(stdout, "removed webhook with id:", hookID)
	return nil
}

func listWebhooksAction(ctx *cli.Context) error {
	topic, err := parseEvent(ctx)
	if err != nil {
		return err
	}

	client, err := getOperatorClient()
	if err != nil {
		return err
	}

	hooks, err := client.ListWebhooks(context.Background(), topic)
	if err != nil {
		return err
	}

	printRespJSON(hooks)
	return nil
}

// parseEvent returns the topic selected with the event flags, empty if none
// is set. At most one can be set.
func parseEvent(ctx *cli.Context) (string, error) {
	topic := ""
	topicsByFlag := map[string]string{
		"tx_pending_event":   topicPending,
		"tx_completed_event": topicCompleted,
		"tx_failed_event":    topicFailed,
		"any_event":          topicAny,
	}
	for flag, t := range topicsByFlag {
		if !ctx.Bool(flag) {
			continue
		}
		if topic != "" {
			return "", fmt.Errorf("only one event flag can be set")
		}
		topic = t
	}
	return topic, nil
}
