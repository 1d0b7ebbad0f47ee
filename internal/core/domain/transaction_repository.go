package domain

import "context"

// TransactionRepository is the abstraction for any kind of database intended
// to persist Transactions.
type TransactionRepository interface {
	// AddOrUpdateTransaction stores the given transaction. If one with the
	// same id already exists only its status is updated.
	AddOrUpdateTransaction(ctx context.Context, tx Transaction) error
	// GetTransaction returns the transaction with the given id or
	// ErrTxNotFound.
	GetTransaction(ctx context.Context, id string) (*Transaction, error)
	// GetTransactionsForUser returns at most limit transactions of the user,
	// most recent first. A non positive limit returns them all.
	GetTransactionsForUser(
		ctx context.Context, userID string, limit int,
	) ([]Transaction, error)
	// UpdateTransaction allows to commit multiple changes to the same
	// transaction in a transactional way.
	UpdateTransaction(
		ctx context.Context,
		id string,
		updateFn func(tx *Transaction) (*Transaction, error),
	) error
}
