package pubsub

import (
	"net/url"

	"github.com/google/uuid"
	"github.com/tdex-network/tdex-wallet/internal/core/ports"
)

var topics = map[string]struct{}{
	ports.AnyTopic:                  {},
	ports.TopicTransactionPending:   {},
	ports.TopicTransactionCompleted: {},
	ports.TopicTransactionFailed:    {},
}

type Subscription struct {
	ID       string
	Event    string
	Endpoint string
	Secret   string
}

type subscriptions []Subscription

func (s subscriptions) toPortable() []ports.Subscription {
	subs := make([]ports.Subscription, 0, len(s))
	for i := range s {
		sub := s[i]
		subs = append(subs, &sub)
	}
	return subs
}

func NewSubscription(event, endpoint, secret string) (*Subscription, error) {
	if _, ok := topics[event]; !ok {
		return nil, ErrUnknownTopic
	}
	u, err := url.ParseRequestURI(endpoint)
	if err != nil || (u.Scheme != "http" && u.Scheme != "https") {
		return nil, ErrInvalidEndpoint
	}
	id := uuid.New().String()
	return &Subscription{id, event, endpoint, secret}, nil
}

func (s *Subscription) Topic() string {
	return s.Event
}

func (s *Subscription) Id() string {
	return s.ID
}

func (s *Subscription) NotifyAt() string {
	return s.Endpoint
}

func (s *Subscription) IsSecured() bool {
	return len(s.Secret) > 0
}
