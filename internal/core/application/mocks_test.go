package application_test

import (
	"context"

	"github.com/shopspring/decimal"
	"github.com/stretchr/testify/mock"
	"github.com/tdex-network/tdex-wallet/internal/core/domain"
	"github.com/tdex-network/tdex-wallet/internal/core/ports"
)

// **** Price source ****

type mockPriceSource struct {
	mock.Mock
}

func (m *mockPriceSource) GetPrices(
	ctx context.Context, symbols []string,
) (map[string]decimal.Decimal, error) {
	args := m.Called(ctx, symbols)

	var res map[string]decimal.Decimal
	if a := args.Get(0); a != nil {
		res = a.(map[string]decimal.Decimal)
	}
	return res, args.Error(1)
}

func (m *mockPriceSource) GetPriceHistory(
	ctx context.Context, symbol string, days int,
) ([]ports.PricePoint, error) {
	args := m.Called(ctx, symbol, days)

	var res []ports.PricePoint
	if a := args.Get(0); a != nil {
		res = a.([]ports.PricePoint)
	}
	return res, args.Error(1)
}

func (m *mockPriceSource) IsSupported(symbol string) bool {
	args := m.Called(symbol)
	return args.Bool(0)
}

func (m *mockPriceSource) Symbols() []string {
	args := m.Called()

	var res []string
	if a := args.Get(0); a != nil {
		res = a.([]string)
	}
	return res
}

type pricePoint struct {
	timestamp int64
	price     decimal.Decimal
}

func (p pricePoint) GetTimestamp() int64 {
	return p.timestamp
}

func (p pricePoint) GetPrice() decimal.Decimal {
	return p.price
}

// **** Repositories ****

type mockRepoManager struct {
	mock.Mock
}

func (m *mockRepoManager) UserRepository() domain.UserRepository {
	args := m.Called()
	return args.Get(0).(domain.UserRepository)
}

func (m *mockRepoManager) TransactionRepository() domain.TransactionRepository {
	args := m.Called()
	return args.Get(0).(domain.TransactionRepository)
}

func (m *mockRepoManager) Close() {
	m.Called()
}

type mockTransactionRepository struct {
	mock.Mock
}

func (m *mockTransactionRepository) AddOrUpdateTransaction(
	ctx context.Context, tx domain.Transaction,
) error {
	args := m.Called(ctx, tx)
	return args.Error(0)
}

func (m *mockTransactionRepository) GetTransaction(
	ctx context.Context, id string,
) (*domain.Transaction, error) {
	args := m.Called(ctx, id)

	var res *domain.Transaction
	if a := args.Get(0); a != nil {
		res = a.(*domain.Transaction)
	}
	return res, args.Error(1)
}

func (m *mockTransactionRepository) GetTransactionsForUser(
	ctx context.Context, userID string, limit int,
) ([]domain.Transaction, error) {
	args := m.Called(ctx, userID, limit)

	var res []domain.Transaction
	if a := args.Get(0); a != nil {
		res = a.([]domain.Transaction)
	}
	return res, args.Error(1)
}

func (m *mockTransactionRepository) UpdateTransaction(
	ctx context.Context,
	id string,
	updateFn func(tx *domain.Transaction) (*domain.Transaction, error),
) error {
	args := m.Called(ctx, id, updateFn)
	return args.Error(0)
}

// **** PubSub ****

type mockPubSub struct {
	mock.Mock
}

func (m *mockPubSub) Subscribe(topic, endpoint, secret string) (string, error) {
	args := m.Called(topic, endpoint, secret)
	return args.String(0), args.Error(1)
}

func (m *mockPubSub) Unsubscribe(id string) error {
	args := m.Called(id)
	return args.Error(0)
}

func (m *mockPubSub) ListSubscriptionsForTopic(topic string) []ports.Subscription {
	args := m.Called(topic)

	var res []ports.Subscription
	if a := args.Get(0); a != nil {
		res = a.([]ports.Subscription)
	}
	return res
}

func (m *mockPubSub) Publish(topic string, message string) error {
	args := m.Called(topic, message)
	return args.Error(0)
}

func (m *mockPubSub) Close() error {
	args := m.Called()
	return args.Error(0)
}

type subscription struct {
	id, topic, endpoint string
	secured             bool
}

func (s subscription) Topic() string    { return s.topic }
func (s subscription) Id() string       { return s.id }
func (s subscription) IsSecured() bool  { return s.secured }
func (s subscription) NotifyAt() string { return s.endpoint }
