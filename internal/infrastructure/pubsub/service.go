package pubsub

import (
	"errors"
	"fmt"
	"path/filepath"
	"sort"
	"strings"
	"time"

	"github.com/dgraph-io/badger/v4"
	"github.com/golang-jwt/jwt"
	log "github.com/sirupsen/logrus"
	"github.com/sony/gobreaker"
	"github.com/tdex-network/tdex-wallet/internal/core/ports"
	"github.com/tdex-network/tdex-wallet/pkg/circuitbreaker"
	"github.com/timshannon/badgerhold/v4"
	"golang.org/x/sync/errgroup"
)

const (
	subscriptionsDir = "webhooks"
	requestTimeout   = 15 * time.Second
)

var (
	// ErrUnknownTopic ...
	ErrUnknownTopic = errors.New("unknown webhook topic")
	// ErrInvalidEndpoint ...
	ErrInvalidEndpoint = errors.New("invalid webhook endpoint, must be a valid http(s) URI")
	// ErrSubscriptionNotFound ...
	ErrSubscriptionNotFound = errors.New("webhook not found")
)

type service struct {
	store      *badgerhold.Store
	httpClient *client
	cb         *gobreaker.CircuitBreaker
}

// NewService returns a pubsub service notifying webhooks. Subscriptions are
// persisted under datadir, or kept in memory if it's empty.
func NewService(datadir string) (ports.PubSub, error) {
	var dir string
	if len(datadir) > 0 {
		dir = filepath.Join(datadir, subscriptionsDir)
	}

	opts := badger.DefaultOptions(dir)
	opts.Logger = nil
	opts.InMemory = len(dir) <= 0

	store, err := badgerhold.Open(badgerhold.Options{
		Encoder:          badgerhold.DefaultEncode,
		Decoder:          badgerhold.DefaultDecode,
		SequenceBandwith: 100,
		Options:          opts,
	})
	if err != nil {
		return nil, fmt.Errorf("opening webhooks db: %w", err)
	}

	return &service{
		store:      store,
		httpClient: newHTTPClient(requestTimeout),
		cb:         circuitbreaker.NewCircuitBreaker("webhooks"),
	}, nil
}

func (ws *service) Subscribe(topic, endpoint, secret string) (string, error) {
	sub, err := NewSubscription(topic, endpoint, secret)
	if err != nil {
		return "", err
	}
	if err := ws.store.Insert(sub.ID, sub); err != nil {
		return "", err
	}
	return sub.ID, nil
}

func (ws *service) Unsubscribe(id string) error {
	if err := ws.store.Delete(id, &Subscription{}); err != nil {
		if err == badgerhold.ErrNotFound {
			return ErrSubscriptionNotFound
		}
		return err
	}
	return nil
}

func (ws *service) ListSubscriptionsForTopic(topic string) []ports.Subscription {
	return ws.listSubscriptionsForTopic(topic).toPortable()
}

func (ws *service) Publish(topic string, message string) error {
	subs := ws.listSubscriptionsForTopic(topic)

	eg := &errgroup.Group{}
	for i := range subs {
		sub := subs[i]
		eg.Go(func() error { return ws.doRequest(sub, message) })
	}
	return eg.Wait()
}

func (ws *service) Close() error {
	return ws.store.Close()
}

func (ws *service) listSubscriptionsForTopic(topic string) subscriptions {
	var query *badgerhold.Query
	if topic != ports.UnspecifiedTopic {
		query = badgerhold.Where("Event").Eq(topic)
		if topic != ports.AnyTopic {
			query = query.Or(badgerhold.Where("Event").Eq(ports.AnyTopic))
		}
	}

	var subs subscriptions
	if err := ws.store.Find(&subs, query); err != nil {
		log.WithError(err).Warn("failed to list webhooks")
		return nil
	}
	sort.SliceStable(subs, func(i, j int) bool {
		return subs[i].ID < subs[j].ID
	})
	return subs
}

func (ws *service) doRequest(sub Subscription, payload string) error {
	_, err := ws.cb.Execute(func() (interface{}, error) {
		headers := map[string]string{
			"Content-Type": "application/json",
		}
		if sub.IsSecured() {
			token := jwt.New(jwt.SigningMethodHS256)
			tokenString, err := token.SignedString([]byte(sub.Secret))
			if err != nil {
				return nil, err
			}
			headers["Authorization"] = fmt.Sprintf("Bearer %s", tokenString)
		}

		status, resp, err := ws.httpClient.post(sub.Endpoint, payload, headers)
		if err != nil {
			return nil, err
		}
		if status < 200 || status > 299 {
			return nil, fmt.Errorf(
				"webhook %s replied with status %d: %s",
				sub.ID, status, strings.TrimSpace(resp),
			)
		}
		return nil, nil
	})
	return err
}
