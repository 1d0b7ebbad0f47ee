package domain

import "errors"

var (
	// ErrUserNotFound is returned when no user matches the lookup key.
	ErrUserNotFound = errors.New("user not found")
	// ErrUserAlreadyExists is returned when adding a user whose username or
	// seed fingerprint is already taken.
	ErrUserAlreadyExists = errors.New("user already exists")
	// ErrInvalidUsername ...
	ErrInvalidUsername = errors.New(
		"username must be 3 to 20 characters long and contain only letters, " +
			"digits or underscores",
	)
	// ErrNullAddresses ...
	ErrNullAddresses = errors.New("address map must not be empty")
	// ErrNullSeedFingerprint ...
	ErrNullSeedFingerprint = errors.New("seed fingerprint must not be null")
	// ErrUnknownAsset ...
	ErrUnknownAsset = errors.New("unknown asset")
	// ErrInvalidAmount ...
	ErrInvalidAmount = errors.New("amount must be greater than zero")
	// ErrNegativeBalance ...
	ErrNegativeBalance = errors.New("balance must not be negative")
	// ErrInsufficientFunds ...
	ErrInsufficientFunds = errors.New("insufficient funds")

	// ErrTxNotFound ...
	ErrTxNotFound = errors.New("transaction not found")
	// ErrTxNotPending is returned when trying to settle a transaction that is
	// already completed or failed.
	ErrTxNotPending = errors.New("transaction must be pending")
	// ErrInvalidTxType ...
	ErrInvalidTxType = errors.New("transaction type must be either send or receive")
	// ErrInvalidTxStatus ...
	ErrInvalidTxStatus = errors.New(
		"transaction status must be one of pending, completed or failed",
	)
	// ErrNullTxID ...
	ErrNullTxID = errors.New("transaction id must not be null")
	// ErrNullUserID ...
	ErrNullUserID = errors.New("user id must not be null")
)
