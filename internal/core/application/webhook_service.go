package application

import (
	"context"
	"encoding/json"

	log "github.com/sirupsen/logrus"
	"github.com/tdex-network/tdex-wallet/internal/core/domain"
	"github.com/tdex-network/tdex-wallet/internal/core/ports"
)

// WebhookService manages the endpoints notified about transaction events.
type WebhookService interface {
	AddWebhook(ctx context.Context, hook Webhook) (string, error)
	RemoveWebhook(ctx context.Context, id string) error
	ListWebhooks(ctx context.Context, topic string) ([]WebhookInfo, error)
}

// Webhook ...
type Webhook struct {
	Topic    string
	Endpoint string
	Secret   string
}

// WebhookInfo is a registered webhook, its secret is never returned.
type WebhookInfo struct {
	ID        string
	Topic     string
	Endpoint  string
	IsSecured bool
}

// TransactionMessage is the body POSTed to webhooks.
type TransactionMessage struct {
	ID        string `json:"id"`
	UserID    string `json:"userId"`
	Type      string `json:"type"`
	CryptoID  string `json:"cryptoId"`
	Symbol    string `json:"symbol"`
	Amount    string `json:"amount"`
	Fee       string `json:"fee"`
	Address   string `json:"address"`
	Status    string `json:"status"`
	Hash      string `json:"hash"`
	Network   string `json:"network"`
	Timestamp int64  `json:"timestamp"`
}

type webhookService struct {
	pubsub ports.PubSub
}

// NewWebhookService returns the service managing webhooks with the given
// pubsub. A nil pubsub disables webhooks.
func NewWebhookService(pubsub ports.PubSub) WebhookService {
	return &webhookService{pubsub}
}

func (s *webhookService) AddWebhook(
	_ context.Context, hook Webhook,
) (string, error) {
	if s.pubsub == nil {
		return "", ErrWebhooksDisabled
	}
	id, err := s.pubsub.Subscribe(hook.Topic, hook.Endpoint, hook.Secret)
	if err != nil {
		return "", err
	}
	log.WithFields(log.Fields{
		"id":    id,
		"topic": hook.Topic,
	}).Info("webhook added")
	return id, nil
}

func (s *webhookService) RemoveWebhook(_ context.Context, id string) error {
	if s.pubsub == nil {
		return ErrWebhooksDisabled
	}
	if err := s.pubsub.Unsubscribe(id); err != nil {
		return err
	}
	log.WithField("id", id).Info("webhook removed")
	return nil
}

func (s *webhookService) ListWebhooks(
	_ context.Context, topic string,
) ([]WebhookInfo, error) {
	if s.pubsub == nil {
		return nil, ErrWebhooksDisabled
	}
	subs := s.pubsub.ListSubscriptionsForTopic(topic)
	hooks := make([]WebhookInfo, 0, len(subs))
	for _, sub := range subs {
		hooks = append(hooks, WebhookInfo{
			ID:        sub.Id(),
			Topic:     sub.Topic(),
			Endpoint:  sub.NotifyAt(),
			IsSecured: sub.IsSecured(),
		})
	}
	return hooks, nil
}

// txNotifier publishes every transaction event to the webhooks subscribed
// for the topic matching the transaction status.
type txNotifier struct {
	pubsub ports.PubSub
	done   chan struct{}
}

func startTxNotifier(pubsub ports.PubSub, broker *txBroker) *txNotifier {
	n := &txNotifier{pubsub, make(chan struct{})}
	events, _ := broker.subscribe(allUsers)

	go func() {
		defer close(n.done)
		for event := range events {
			n.notify(event.Transaction)
		}
	}()
	return n
}

// wait blocks until the events stream is closed and drained.
func (n *txNotifier) wait() {
	<-n.done
}

func (n *txNotifier) notify(tx domain.Transaction) {
	message, err := json.Marshal(TransactionMessage{
		ID:        tx.ID,
		UserID:    tx.UserID,
		Type:      string(tx.Type),
		CryptoID:  tx.AssetID,
		Symbol:    tx.Symbol,
		Amount:    tx.Amount.String(),
		Fee:       tx.Fee.String(),
		Address:   tx.Address,
		Status:    string(tx.Status),
		Hash:      tx.Hash,
		Network:   tx.Network,
		Timestamp: tx.Timestamp,
	})
	if err != nil {
		log.WithError(err).WithField("tx_id", tx.ID).Warn(
			"failed to serialize transaction event",
		)
		return
	}

	if err := n.pubsub.Publish(topicForStatus(tx.Status), string(message)); err != nil {
		log.WithError(err).WithField("tx_id", tx.ID).Warn(
			"failed to notify webhooks",
		)
	}
}

func topicForStatus(status domain.TxStatus) string {
	switch status {
	case domain.TxStatusCompleted:
		return ports.TopicTransactionCompleted
	case domain.TxStatusFailed:
		return ports.TopicTransactionFailed
	default:
		return ports.TopicTransactionPending
	}
}
