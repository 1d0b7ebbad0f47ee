package pubsub_test

import (
	"io"
	"net/http"
	"net/http/httptest"
	"strings"
	"sync"
	"testing"

	"github.com/golang-jwt/jwt"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	"github.com/tdex-network/tdex-wallet/internal/core/ports"
	"github.com/tdex-network/tdex-wallet/internal/infrastructure/pubsub"
)

const (
	testSecret  = "secret"
	testMessage = `{"transaction":{"id":"tx1","type":"send","cryptoId":"1","symbol":"BTC","amount":"0.1","status":"completed"}}`
)

type received struct {
	path   string
	body   string
	authOk bool
}

func newTestWebServer(t *testing.T) (*httptest.Server, func() []received) {
	var lock sync.Mutex
	calls := make([]received, 0)

	server := httptest.NewServer(http.HandlerFunc(
		func(w http.ResponseWriter, r *http.Request) {
			body, err := io.ReadAll(r.Body)
			assert.NoError(t, err)

			authOk := false
			if auth := r.Header.Get("Authorization"); len(auth) > 0 {
				tokenString := strings.TrimPrefix(auth, "Bearer ")
				token, err := jwt.Parse(tokenString, func(*jwt.Token) (interface{}, error) {
					return []byte(testSecret), nil
				})
				authOk = err == nil && token.Valid
			}

			lock.Lock()
			calls = append(calls, received{r.URL.Path, string(body), authOk})
			lock.Unlock()

			if r.URL.Path == "/failing" {
				w.WriteHeader(http.StatusInternalServerError)
				return
			}
			w.WriteHeader(http.StatusOK)
		},
	))

	return server, func() []received {
		lock.Lock()
		defer lock.Unlock()
		return append([]received{}, calls...)
	}
}

func TestPubSubService(t *testing.T) {
	pubsubSvc, err := pubsub.NewService("")
	require.NoError(t, err)

	server, calls := newTestWebServer(t)
	t.Cleanup(func() {
		server.Close()
		//nolint
		pubsubSvc.Close()
	})

	completedID, err := pubsubSvc.Subscribe(
		ports.TopicTransactionCompleted, server.URL+"/completed", testSecret,
	)
	require.NoError(t, err)
	require.NotEmpty(t, completedID)

	anyID, err := pubsubSvc.Subscribe(ports.AnyTopic, server.URL+"/any", "")
	require.NoError(t, err)
	require.NotEmpty(t, anyID)

	subs := pubsubSvc.ListSubscriptionsForTopic(ports.TopicTransactionCompleted)
	require.Len(t, subs, 2)
	subs = pubsubSvc.ListSubscriptionsForTopic(ports.TopicTransactionPending)
	require.Len(t, subs, 1)
	require.Equal(t, anyID, subs[0].Id())
	require.False(t, subs[0].IsSecured())
	subs = pubsubSvc.ListSubscriptionsForTopic(ports.UnspecifiedTopic)
	require.Len(t, subs, 2)

	err = pubsubSvc.Publish(ports.TopicTransactionCompleted, testMessage)
	require.NoError(t, err)

	got := calls()
	require.Len(t, got, 2)
	for _, c := range got {
		require.Equal(t, testMessage, c.body)
		if c.path == "/completed" {
			require.True(t, c.authOk)
		} else {
			require.Equal(t, "/any", c.path)
			require.False(t, c.authOk)
		}
	}

	err = pubsubSvc.Publish(ports.TopicTransactionPending, testMessage)
	require.NoError(t, err)
	require.Len(t, calls(), 3)

	err = pubsubSvc.Unsubscribe(completedID)
	require.NoError(t, err)
	require.Len(t, pubsubSvc.ListSubscriptionsForTopic(ports.UnspecifiedTopic), 1)

	err = pubsubSvc.Unsubscribe(completedID)
	require.ErrorIs(t, err, pubsub.ErrSubscriptionNotFound)

	err = pubsubSvc.Unsubscribe(anyID)
	require.NoError(t, err)

	// Nothing to notify.
	err = pubsubSvc.Publish(ports.TopicTransactionFailed, testMessage)
	require.NoError(t, err)
	require.Len(t, calls(), 3)
}

func TestPubSubServiceFailingEndpoint(t *testing.T) {
	pubsubSvc, err := pubsub.NewService("")
	require.NoError(t, err)

	server, _ := newTestWebServer(t)
	t.Cleanup(func() {
		server.Close()
		//nolint
		pubsubSvc.Close()
	})

	_, err = pubsubSvc.Subscribe(ports.AnyTopic, server.URL+"/failing", "")
	require.NoError(t, err)

	err = pubsubSvc.Publish(ports.TopicTransactionFailed, testMessage)
	require.Error(t, err)
}

func TestInvalidSubscription(t *testing.T) {
	pubsubSvc, err := pubsub.NewService("")
	require.NoError(t, err)
	t.Cleanup(func() {
		//nolint
		pubsubSvc.Close()
	})

	tests := []struct {
		name        string
		topic       string
		endpoint    string
		expectedErr error
	}{
		{
			name:        "unknown topic",
			topic:       "TRADE_SETTLED",
			endpoint:    "http://localhost:8080/hook",
			expectedErr: pubsub.ErrUnknownTopic,
		},
		{
			name:        "empty topic",
			topic:       ports.UnspecifiedTopic,
			endpoint:    "http://localhost:8080/hook",
			expectedErr: pubsub.ErrUnknownTopic,
		},
		{
			name:        "malformed endpoint",
			topic:       ports.AnyTopic,
			endpoint:    "localhost:8080",
			expectedErr: pubsub.ErrInvalidEndpoint,
		},
		{
			name:        "unsupported scheme",
			topic:       ports.AnyTopic,
			endpoint:    "ftp://localhost/hook",
			expectedErr: pubsub.ErrInvalidEndpoint,
		},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			id, err := pubsubSvc.Subscribe(tt.topic, tt.endpoint, "")
			require.ErrorIs(t, err, tt.expectedErr)
			require.Empty(t, id)
		})
	}
}
