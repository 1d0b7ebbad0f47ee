package application

import (
	"context"
	"errors"
	"fmt"
	"sync"
	"time"

	"github.com/shopspring/decimal"
	log "github.com/sirupsen/logrus"
	"github.com/tdex-network/tdex-wallet/internal/core/domain"
	"github.com/tdex-network/tdex-wallet/internal/core/ports"
	"github.com/tdex-network/tdex-wallet/pkg/stats"
)

type TransactionService interface {
	Send(ctx context.Context, req SendRequest) (*domain.Transaction, error)
	Swap(ctx context.Context, req SwapRequest) (*SwapResult, error)
	SaveTransaction(ctx context.Context, tx domain.Transaction) error
	ListTransactions(
		ctx context.Context, userID string, limit int,
	) ([]domain.Transaction, error)
	TransactionsByAsset(
		ctx context.Context, userID, assetID string,
	) ([]domain.Transaction, error)
	// Subscribe returns a stream of events for the transactions of the given
	// user and the function to stop it.
	Subscribe(userID string) (<-chan TransactionEvent, func())
	// Close stops every scheduled confirmation and closes all streams.
	Close()
}

type TransactionServiceOpts struct {
	NetworkFee        decimal.Decimal
	SwapFee           decimal.Decimal
	ConfirmationDelay time.Duration
}

func (o TransactionServiceOpts) validate() error {
	if o.NetworkFee.IsNegative() || o.SwapFee.IsNegative() {
		return ErrInvalidFee
	}
	if o.SwapFee.GreaterThanOrEqual(decimal.NewFromInt(1)) {
		return ErrInvalidFee
	}
	return nil
}

type transactionService struct {
	repoManager       ports.RepoManager
	priceService      PriceService
	broker            *txBroker
	networkFee        decimal.Decimal
	swapFee           decimal.Decimal
	confirmationDelay time.Duration

	lock   sync.Mutex
	timers map[string]*time.Timer
	closed bool
}

func NewTransactionService(
	repoManager ports.RepoManager,
	priceService PriceService,
	opts TransactionServiceOpts,
) (TransactionService, error) {
	return newTransactionService(repoManager, priceService, newTxBroker(), opts)
}

func newTransactionService(
	repoManager ports.RepoManager,
	priceService PriceService,
	broker *txBroker,
	opts TransactionServiceOpts,
) (*transactionService, error) {
	if repoManager == nil {
		return nil, ErrNullRepoManager
	}
	if err := opts.validate(); err != nil {
		return nil, err
	}
	if priceService == nil {
		priceService = NewPriceService(nil, 0, 0)
	}
	confirmationDelay := opts.ConfirmationDelay
	if confirmationDelay <= 0 {
		confirmationDelay = DefaultConfirmationDelay
	}

	return &transactionService{
		repoManager:       repoManager,
		priceService:      priceService,
		broker:            broker,
		networkFee:        opts.NetworkFee,
		swapFee:           opts.SwapFee,
		confirmationDelay: confirmationDelay,
		timers:            make(map[string]*time.Timer),
	}, nil
}

// Send debits amount plus network fee and records a pending send
// transaction, completed after the confirmation delay.
func (s *transactionService) Send(
	ctx context.Context, req SendRequest,
) (*domain.Transaction, error) {
	if s.isClosed() {
		return nil, ErrServiceClosed
	}
	if err := req.validate(); err != nil {
		return nil, err
	}

	amount := req.Amount.Round(amountPrecision)
	tx, err := domain.NewTransaction(
		req.UserID, domain.TxTypeSend, req.AssetID, amount, s.networkFee, req.Address,
	)
	if err != nil {
		return nil, err
	}

	if err := s.repoManager.UserRepository().UpdateUser(
		ctx, req.UserID, func(u *domain.User) (*domain.User, error) {
			if err := u.Debit(req.AssetID, tx.Total()); err != nil {
				return nil, err
			}
			return u, nil
		},
	); err != nil {
		return nil, err
	}

	if err := s.repoManager.TransactionRepository().AddOrUpdateTransaction(
		ctx, *tx,
	); err != nil {
		s.revert(ctx, req.UserID, func(u *domain.User) error {
			return u.Credit(req.AssetID, tx.Total())
		})
		return nil, err
	}

	s.added(*tx)
	return tx, nil
}

// Swap exchanges amount of an asset for another at the rate given by their
// USD prices, minus the swap fee. Both balances are updated at once and the
// two legs are recorded as pending transactions.
func (s *transactionService) Swap(
	ctx context.Context, req SwapRequest,
) (*SwapResult, error) {
	if s.isClosed() {
		return nil, ErrServiceClosed
	}
	if err := req.validate(); err != nil {
		return nil, err
	}

	from, _ := domain.AssetByID(req.FromAssetID)
	to, _ := domain.AssetByID(req.ToAssetID)

	prices := s.priceService.Prices(ctx)
	fromPrice, toPrice := prices[from.Symbol], prices[to.Symbol]
	if !fromPrice.IsPositive() || !toPrice.IsPositive() {
		return nil, ErrPriceUnavailable
	}

	rate := fromPrice.Div(toPrice)
	amount := req.Amount.Round(amountPrecision)
	fee := amount.Mul(s.swapFee).Round(amountPrecision)
	received := amount.Mul(rate).
		Mul(decimal.NewFromInt(1).Sub(s.swapFee)).
		Round(amountPrecision)
	if !amount.IsPositive() || !received.IsPositive() {
		return nil, domain.ErrInvalidAmount
	}

	sendTx, err := domain.NewTransaction(
		req.UserID, domain.TxTypeSend, from.ID, amount, fee,
		fmt.Sprintf("swap to %s", to.Symbol),
	)
	if err != nil {
		return nil, err
	}
	receiveTx, err := domain.NewTransaction(
		req.UserID, domain.TxTypeReceive, to.ID, received, decimal.Zero,
		fmt.Sprintf("swap from %s", from.Symbol),
	)
	if err != nil {
		return nil, err
	}
	// the receive leg is listed right after the send one
	receiveTx.Timestamp = sendTx.Timestamp + 1000

	if err := s.repoManager.UserRepository().UpdateUser(
		ctx, req.UserID, func(u *domain.User) (*domain.User, error) {
			if err := u.Debit(from.ID, amount); err != nil {
				return nil, err
			}
			if err := u.Credit(to.ID, received); err != nil {
				return nil, err
			}
			return u, nil
		},
	); err != nil {
		return nil, err
	}

	txRepo := s.repoManager.TransactionRepository()
	for _, tx := range []*domain.Transaction{sendTx, receiveTx} {
		if err := txRepo.AddOrUpdateTransaction(ctx, *tx); err != nil {
			s.revert(ctx, req.UserID, func(u *domain.User) error {
				if err := u.Debit(to.ID, received); err != nil {
					return err
				}
				return u.Credit(from.ID, amount)
			})
			return nil, err
		}
	}

	s.added(*sendTx)
	s.added(*receiveTx)

	log.WithFields(log.Fields{
		"user_id":  req.UserID,
		"from":     from.Symbol,
		"to":       to.Symbol,
		"amount":   amount.String(),
		"received": received.String(),
	}).Info("swap executed")

	return &SwapResult{
		Send:    *sendTx,
		Receive: *receiveTx,
		Rate:    rate,
	}, nil
}

// SaveTransaction stores a transaction received from a client. If one with
// the same id exists only its status is updated.
func (s *transactionService) SaveTransaction(
	ctx context.Context, tx domain.Transaction,
) error {
	if err := tx.Validate(); err != nil {
		return err
	}
	if _, err := s.repoManager.UserRepository().GetUserByID(
		ctx, tx.UserID,
	); err != nil {
		return err
	}

	txRepo := s.repoManager.TransactionRepository()
	if err := txRepo.AddOrUpdateTransaction(ctx, tx); err != nil {
		return err
	}

	saved, err := txRepo.GetTransaction(ctx, tx.ID)
	if err != nil {
		return err
	}
	stats.Transactions.WithLabelValues(string(saved.Type), string(saved.Status)).Inc()
	s.broker.publish(*saved)
	return nil
}

func (s *transactionService) ListTransactions(
	ctx context.Context, userID string, limit int,
) ([]domain.Transaction, error) {
	if limit <= 0 {
		limit = DefaultTxLimit
	}
	return s.repoManager.TransactionRepository().GetTransactionsForUser(
		ctx, userID, limit,
	)
}

func (s *transactionService) TransactionsByAsset(
	ctx context.Context, userID, assetID string,
) ([]domain.Transaction, error) {
	if _, err := domain.AssetByID(assetID); err != nil {
		return nil, err
	}

	txs, err := s.repoManager.TransactionRepository().GetTransactionsForUser(
		ctx, userID, 0,
	)
	if err != nil {
		return nil, err
	}

	filtered := make([]domain.Transaction, 0, len(txs))
	for _, tx := range txs {
		if tx.AssetID == assetID {
			filtered = append(filtered, tx)
		}
	}
	return filtered, nil
}

func (s *transactionService) Subscribe(
	userID string,
) (<-chan TransactionEvent, func()) {
	return s.broker.subscribe(userID)
}

func (s *transactionService) Close() {
	s.lock.Lock()
	s.closed = true
	for txID, timer := range s.timers {
		timer.Stop()
		delete(s.timers, txID)
	}
	s.lock.Unlock()

	s.broker.close()
}

func (s *transactionService) added(tx domain.Transaction) {
	stats.Transactions.WithLabelValues(string(tx.Type), string(tx.Status)).Inc()
	s.broker.publish(tx)
	s.scheduleConfirmation(tx.ID)
}

func (s *transactionService) scheduleConfirmation(txID string) {
	s.lock.Lock()
	defer s.lock.Unlock()

	if s.closed {
		return
	}
	s.timers[txID] = time.AfterFunc(s.confirmationDelay, func() {
		s.confirm(txID)
	})
}

func (s *transactionService) confirm(txID string) {
	s.lock.Lock()
	if s.closed {
		s.lock.Unlock()
		return
	}
	delete(s.timers, txID)
	s.lock.Unlock()

	var confirmed domain.Transaction
	err := s.repoManager.TransactionRepository().UpdateTransaction(
		context.Background(), txID,
		func(tx *domain.Transaction) (*domain.Transaction, error) {
			if err := tx.Complete(); err != nil {
				return nil, err
			}
			confirmed = *tx
			return tx, nil
		},
	)
	if err != nil {
		if errors.Is(err, domain.ErrTxNotPending) {
			log.WithField("tx_id", txID).Debug("transaction already settled")
			return
		}
		log.WithError(err).WithField("tx_id", txID).Warn(
			"failed to confirm transaction",
		)
		return
	}

	stats.Transactions.WithLabelValues(
		string(confirmed.Type), string(confirmed.Status),
	).Inc()
	s.broker.publish(confirmed)
	log.WithField("tx_id", txID).Debug("transaction confirmed")
}

// revert restores the balances changed by an operation whose transactions
// could not be stored.
func (s *transactionService) revert(
	ctx context.Context, userID string, fn func(u *domain.User) error,
) {
	revertBalances(ctx, s.repoManager, userID, fn)
}

// revertBalances undoes the balance changes of an operation whose
// transactions could not be stored.
func revertBalances(
	ctx context.Context, repoManager ports.RepoManager, userID string,
	fn func(u *domain.User) error,
) {
	if err := repoManager.UserRepository().UpdateUser(
		ctx, userID, func(u *domain.User) (*domain.User, error) {
			if err := fn(u); err != nil {
				return nil, err
			}
			return u, nil
		},
	); err != nil {
		log.WithError(err).WithField("user_id", userID).Error(
			"failed to revert balances",
		)
	}
}

func (s *transactionService) isClosed() bool {
	s.lock.Lock()
	defer s.lock.Unlock()
	return s.closed
}
