package domain

import (
	"fmt"
	"time"

	"github.com/btcsuite/btcd/chaincfg/chainhash"
	"github.com/shopspring/decimal"
	"github.com/thanhpk/randstr"
)

const (
	base36Chars = "0123456789abcdefghijklmnopqrstuvwxyz"
	txIDSuffix  = 7
)

// TxType tells whether funds left or entered the wallet.
type TxType string

const (
	TxTypeSend    TxType = "send"
	TxTypeReceive TxType = "receive"
)

func (t TxType) validate() error {
	switch t {
	case TxTypeSend, TxTypeReceive:
		return nil
	default:
		return ErrInvalidTxType
	}
}

// TxStatus is the settlement state of a transaction. Pending is the only
// non-final status.
type TxStatus string

const (
	TxStatusPending   TxStatus = "pending"
	TxStatusCompleted TxStatus = "completed"
	TxStatusFailed    TxStatus = "failed"
)

func (s TxStatus) validate() error {
	switch s {
	case TxStatusPending, TxStatusCompleted, TxStatusFailed:
		return nil
	default:
		return ErrInvalidTxStatus
	}
}

// Transaction is a simulated movement of funds of a single asset.
type Transaction struct {
	ID      string
	UserID  string
	Type    TxType
	AssetID string
	Symbol  string
	Amount  decimal.Decimal
	Fee     decimal.Decimal
	// Address is the counterparty, or a free text for swap legs.
	Address string
	Status  TxStatus
	Hash    string
	Network string
	// Timestamp is expressed in milliseconds.
	Timestamp int64
}

// NewTransaction returns a pending transaction with fresh id and hash for
// the given asset of the catalog.
func NewTransaction(
	userID string, txType TxType, assetID string,
	amount, fee decimal.Decimal, address string,
) (*Transaction, error) {
	if len(userID) <= 0 {
		return nil, ErrNullUserID
	}
	if err := txType.validate(); err != nil {
		return nil, err
	}
	asset, err := AssetByID(assetID)
	if err != nil {
		return nil, err
	}
	if !amount.IsPositive() {
		return nil, ErrInvalidAmount
	}
	if fee.IsNegative() {
		return nil, ErrInvalidAmount
	}

	now := time.Now()
	return &Transaction{
		ID:        NewTxID(now),
		UserID:    userID,
		Type:      txType,
		AssetID:   asset.ID,
		Symbol:    asset.Symbol,
		Amount:    amount,
		Fee:       fee,
		Address:   address,
		Status:    TxStatusPending,
		Hash:      NewTxHash(),
		Network:   asset.Network,
		Timestamp: now.UnixMilli(),
	}, nil
}

// NewTxID returns an id in the form tx_<unix millis>_<7 base36 chars>.
func NewTxID(t time.Time) string {
	return fmt.Sprintf(
		"tx_%d_%s", t.UnixMilli(), randstr.String(txIDSuffix, base36Chars),
	)
}

// NewTxHash returns a random 0x prefixed 32-byte hex hash.
func NewTxHash() string {
	return "0x" + chainhash.DoubleHashH(randstr.Bytes(32)).String()
}

// Validate checks the fields of a transaction received from a client.
func (t *Transaction) Validate() error {
	if len(t.ID) <= 0 {
		return ErrNullTxID
	}
	if len(t.UserID) <= 0 {
		return ErrNullUserID
	}
	if err := t.Type.validate(); err != nil {
		return err
	}
	if err := t.Status.validate(); err != nil {
		return err
	}
	if t.Amount.IsNegative() || t.Fee.IsNegative() {
		return ErrInvalidAmount
	}
	return nil
}

// IsPending returns whether the transaction is yet to be settled.
func (t *Transaction) IsPending() bool {
	return t.Status == TxStatusPending
}

// Complete settles a pending transaction.
func (t *Transaction) Complete() error {
	if !t.IsPending() {
		return ErrTxNotPending
	}
	t.Status = TxStatusCompleted
	return nil
}

// Fail marks a pending transaction as failed.
func (t *Transaction) Fail() error {
	if !t.IsPending() {
		return ErrTxNotPending
	}
	t.Status = TxStatusFailed
	return nil
}

// Total returns the amount plus the fee.
func (t *Transaction) Total() decimal.Decimal {
	return t.Amount.Add(t.Fee)
}
