package dbbadger

import (
	"context"
	"sync"

	"github.com/dgraph-io/badger/v4"
	"github.com/tdex-network/tdex-wallet/internal/core/domain"
	"github.com/timshannon/badgerhold/v4"
)

type transactionRepositoryImpl struct {
	store *badgerhold.Store
	lock  *sync.Mutex
}

// NewTransactionRepositoryImpl returns a TransactionRepository backed by the
// given store.
func NewTransactionRepositoryImpl(
	store *badgerhold.Store,
) domain.TransactionRepository {
	return &transactionRepositoryImpl{store, &sync.Mutex{}}
}

func (r *transactionRepositoryImpl) AddOrUpdateTransaction(
	_ context.Context, tx domain.Transaction,
) error {
	r.lock.Lock()
	defer r.lock.Unlock()

	return r.store.Badger().Update(func(txn *badger.Txn) error {
		var current domain.Transaction
		err := r.store.TxGet(txn, tx.ID, &current)
		if err == badgerhold.ErrNotFound {
			return r.store.TxInsert(txn, tx.ID, &tx)
		}
		if err != nil {
			return err
		}

		current.Status = tx.Status
		return r.store.TxUpdate(txn, tx.ID, &current)
	})
}

func (r *transactionRepositoryImpl) GetTransaction(
	_ context.Context, id string,
) (*domain.Transaction, error) {
	var tx domain.Transaction
	if err := r.store.Get(id, &tx); err != nil {
		if err == badgerhold.ErrNotFound {
			return nil, domain.ErrTxNotFound
		}
		return nil, err
	}
	return &tx, nil
}

func (r *transactionRepositoryImpl) GetTransactionsForUser(
	_ context.Context, userID string, limit int,
) ([]domain.Transaction, error) {
	query := badgerhold.Where("UserID").Eq(userID).SortBy("Timestamp").Reverse()
	if limit > 0 {
		query = query.Limit(limit)
	}

	var txs []domain.Transaction
	if err := r.store.Find(&txs, query); err != nil {
		return nil, err
	}
	if txs == nil {
		txs = make([]domain.Transaction, 0)
	}
	return txs, nil
}

func (r *transactionRepositoryImpl) UpdateTransaction(
	_ context.Context,
	id string,
	updateFn func(tx *domain.Transaction) (*domain.Transaction, error),
) error {
	r.lock.Lock()
	defer r.lock.Unlock()

	return r.store.Badger().Update(func(txn *badger.Txn) error {
		var tx domain.Transaction
		if err := r.store.TxGet(txn, id, &tx); err != nil {
			if err == badgerhold.ErrNotFound {
				return domain.ErrTxNotFound
			}
			return err
		}
		userID := tx.UserID

		updatedTx, err := updateFn(&tx)
		if err != nil {
			return err
		}
		updatedTx.ID = id
		updatedTx.UserID = userID

		return r.store.TxUpdate(txn, id, updatedTx)
	})
}
