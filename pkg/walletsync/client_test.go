package walletsync_test

import (
	"context"
	"encoding/json"
	"errors"
	"net/http"
	"net/http/httptest"
	"sync/atomic"
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	"github.com/tdex-network/tdex-wallet/pkg/walletsync"
)

var ctx = context.Background()

func newTestServer(
	t *testing.T, fn func(req walletsync.Request) (int, interface{}),
) *httptest.Server {
	srv := httptest.NewServer(http.HandlerFunc(
		func(w http.ResponseWriter, r *http.Request) {
			assert.Equal(t, http.MethodPost, r.Method)
			assert.Equal(t, "application/json", r.Header.Get("Content-Type"))

			req := walletsync.Request{}
			assert.NoError(t, json.NewDecoder(r.Body).Decode(&req))

			status, body := fn(req)
			w.Header().Set("Content-Type", "application/json")
			w.WriteHeader(status)
			json.NewEncoder(w).Encode(body)
		},
	))
	t.Cleanup(srv.Close)
	return srv
}

func TestNewClient(t *testing.T) {
	tests := []struct {
		name     string
		endpoint string
	}{
		{"empty", ""},
		{"no scheme", "localhost:9945"},
		{"unsupported scheme", "ftp://localhost:9945"},
		{"no host", "http://"},
	}

	for _, tt := range tests {
		tt := tt
		t.Run(tt.name, func(t *testing.T) {
			client, err := walletsync.NewClient(tt.endpoint, 0)
			require.EqualError(t, err, walletsync.ErrInvalidURL.Error())
			require.Nil(t, client)
		})
	}

	client, err := walletsync.NewClient("http://localhost:9945/", time.Second)
	require.NoError(t, err)
	require.Equal(t, "http://localhost:9945", client.URL())
}

func TestClient(t *testing.T) {
	srv := newTestServer(t, func(req walletsync.Request) (int, interface{}) {
		switch req.Action {
		case walletsync.ActionCreateUser:
			return http.StatusOK, walletsync.CreateUserResponse{
				UserID:    "user-id",
				Success:   true,
				Addresses: map[string]string{"Bitcoin": "1abc"},
			}
		case walletsync.ActionGetUser:
			if req.Username != "alice" {
				return http.StatusNotFound, walletsync.ErrorResponse{
					Error: "User not found",
				}
			}
			return http.StatusOK, walletsync.User{
				UserID:   "user-id",
				Username: req.Username,
				Balances: map[string]string{"2": "0.05432"},
			}
		case walletsync.ActionGetBalances:
			return http.StatusOK, walletsync.BalancesResponse{
				Balances: map[string]string{"2": "0.05432"},
			}
		case walletsync.ActionUpdateBalance:
			if req.Balance == "-1" {
				return http.StatusBadRequest, walletsync.ErrorResponse{
					Error: "balance must not be negative",
				}
			}
			return http.StatusOK, walletsync.SuccessResponse{Success: true}
		case walletsync.ActionSaveTransaction:
			return http.StatusOK, walletsync.SuccessResponse{Success: true}
		case walletsync.ActionGetTransactions:
			return http.StatusOK, walletsync.TransactionsResponse{
				Transactions: []walletsync.Transaction{
					{ID: "tx_1", CryptoID: "2", Amount: "0.01", Timestamp: 2},
					{ID: "tx_0", CryptoID: "2", Amount: "0.02", Timestamp: 1},
				},
			}
		case walletsync.ActionSend:
			return http.StatusOK, walletsync.TransactionResponse{
				Transaction: walletsync.Transaction{
					ID:      "tx_2",
					Type:    "send",
					Amount:  req.Amount,
					Address: req.Address,
					Status:  "pending",
				},
			}
		default:
			return http.StatusBadRequest, walletsync.ErrorResponse{
				Error: "Invalid action",
			}
		}
	})

	client, err := walletsync.NewClient(srv.URL, time.Second)
	require.NoError(t, err)

	created, err := client.CreateUser(ctx, "alice", "seed", "password")
	require.NoError(t, err)
	require.Equal(t, "user-id", created.UserID)
	require.True(t, created.Success)
	require.Len(t, created.Addresses, 1)

	user, err := client.GetUser(ctx, "alice")
	require.NoError(t, err)
	require.Equal(t, "alice", user.Username)
	require.Equal(t, "0.05432", user.Balances["2"])

	user, err = client.GetUser(ctx, "bob")
	require.Error(t, err)
	require.Nil(t, user)
	require.True(t, errors.Is(err, walletsync.ErrNotFound))
	apiErr := &walletsync.APIError{}
	require.True(t, errors.As(err, &apiErr))
	require.Equal(t, http.StatusNotFound, apiErr.StatusCode)
	require.Equal(t, "User not found", apiErr.Message)

	balances, err := client.GetBalances(ctx, "user-id")
	require.NoError(t, err)
	require.Equal(t, "0.05432", balances["2"])

	require.NoError(t, client.UpdateBalance(ctx, "user-id", "2", "1"))
	err = client.UpdateBalance(ctx, "user-id", "2", "-1")
	require.Error(t, err)
	require.False(t, errors.Is(err, walletsync.ErrNotFound))

	require.NoError(t, client.SaveTransaction(ctx, "user-id", walletsync.Transaction{
		ID: "tx_3", Amount: "1",
	}))

	txs, err := client.GetTransactions(ctx, "user-id", 0)
	require.NoError(t, err)
	require.Len(t, txs, 2)
	require.Equal(t, "tx_1", txs[0].ID)

	tx, err := client.Send(ctx, "user-id", "2", "0.01", "1abc")
	require.NoError(t, err)
	require.Equal(t, "0.01", tx.Amount)
	require.Equal(t, "pending", tx.Status)

	_, err = client.GetPrices(ctx)
	require.Error(t, err)
	require.Contains(t, err.Error(), "Invalid action")
}

func TestClientCircuitBreaker(t *testing.T) {
	var calls int32
	srv := newTestServer(t, func(walletsync.Request) (int, interface{}) {
		atomic.AddInt32(&calls, 1)
		return http.StatusInternalServerError, walletsync.ErrorResponse{
			Error: "internal error",
		}
	})

	client, err := walletsync.NewClient(srv.URL, time.Second)
	require.NoError(t, err)

	for i := 0; i < 30; i++ {
		_, err := client.GetPrices(ctx)
		require.Error(t, err)
	}
	// Once open, the breaker stops forwarding requests.
	require.Less(t, int(atomic.LoadInt32(&calls)), 30)
}

func TestClientBadRequestsDoNotTrip(t *testing.T) {
	var calls int32
	srv := newTestServer(t, func(walletsync.Request) (int, interface{}) {
		atomic.AddInt32(&calls, 1)
		return http.StatusBadRequest, walletsync.ErrorResponse{
			Error: "Invalid action",
		}
	})

	client, err := walletsync.NewClient(srv.URL, time.Second)
	require.NoError(t, err)

	for i := 0; i < 30; i++ {
		_, err := client.GetPrices(ctx)
		require.Error(t, err)
	}
	require.Equal(t, 30, int(atomic.LoadInt32(&calls)))
}

func TestClientWithToken(t *testing.T) {
	var authHeaders []string
	srv := httptest.NewServer(http.HandlerFunc(
		func(w http.ResponseWriter, r *http.Request) {
			authHeaders = append(authHeaders, r.Header.Get("Authorization"))
			w.Header().Set("Content-Type", "application/json")
			json.NewEncoder(w).Encode(walletsync.WebhooksResponse{})
		},
	))
	t.Cleanup(srv.Close)

	client, err := walletsync.NewClient(srv.URL, time.Second, walletsync.WithToken("operator-secret"))
	require.NoError(t, err)
	_, err = client.ListWebhooks(ctx, "")
	require.NoError(t, err)

	client, err = walletsync.NewClient(srv.URL, time.Second)
	require.NoError(t, err)
	_, err = client.ListWebhooks(ctx, "")
	require.NoError(t, err)

	require.Equal(t, []string{"Bearer operator-secret", ""}, authHeaders)
}
