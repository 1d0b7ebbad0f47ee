package inmemory

import (
	"context"
	"sort"
	"sync"

	"github.com/tdex-network/tdex-wallet/internal/core/domain"
)

type transactionInmemoryStore struct {
	transactions map[string]domain.Transaction
	txsByUser    map[string][]string
	locker       *sync.RWMutex
}

type transactionRepositoryImpl struct {
	store *transactionInmemoryStore
}

// NewTransactionRepositoryImpl returns a new empty in-memory
// TransactionRepository.
func NewTransactionRepositoryImpl() domain.TransactionRepository {
	return &transactionRepositoryImpl{&transactionInmemoryStore{
		transactions: make(map[string]domain.Transaction),
		txsByUser:    make(map[string][]string),
		locker:       &sync.RWMutex{},
	}}
}

func (r *transactionRepositoryImpl) AddOrUpdateTransaction(
	_ context.Context, tx domain.Transaction,
) error {
	r.store.locker.Lock()
	defer r.store.locker.Unlock()

	if current, ok := r.store.transactions[tx.ID]; ok {
		current.Status = tx.Status
		r.store.transactions[tx.ID] = current
		return nil
	}

	r.store.transactions[tx.ID] = tx
	r.store.txsByUser[tx.UserID] = append(r.store.txsByUser[tx.UserID], tx.ID)
	return nil
}

func (r *transactionRepositoryImpl) GetTransaction(
	_ context.Context, id string,
) (*domain.Transaction, error) {
	r.store.locker.RLock()
	defer r.store.locker.RUnlock()

	tx, ok := r.store.transactions[id]
	if !ok {
		return nil, domain.ErrTxNotFound
	}
	return &tx, nil
}

func (r *transactionRepositoryImpl) GetTransactionsForUser(
	_ context.Context, userID string, limit int,
) ([]domain.Transaction, error) {
	r.store.locker.RLock()
	defer r.store.locker.RUnlock()

	ids := r.store.txsByUser[userID]
	txs := make([]domain.Transaction, 0, len(ids))
	for _, id := range ids {
		txs = append(txs, r.store.transactions[id])
	}

	sort.SliceStable(txs, func(i, j int) bool {
		return txs[i].Timestamp > txs[j].Timestamp
	})
	if limit > 0 && len(txs) > limit {
		txs = txs[:limit]
	}
	return txs, nil
}

func (r *transactionRepositoryImpl) UpdateTransaction(
	_ context.Context,
	id string,
	updateFn func(tx *domain.Transaction) (*domain.Transaction, error),
) error {
	r.store.locker.Lock()
	defer r.store.locker.Unlock()

	tx, ok := r.store.transactions[id]
	if !ok {
		return domain.ErrTxNotFound
	}

	updatedTx, err := updateFn(&tx)
	if err != nil {
		return err
	}
	updatedTx.ID = id
	updatedTx.UserID = tx.UserID

	r.store.transactions[id] = *updatedTx
	return nil
}
