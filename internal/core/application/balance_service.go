package application

import (
	"context"

	"github.com/shopspring/decimal"
	log "github.com/sirupsen/logrus"
	"github.com/tdex-network/tdex-wallet/internal/core/domain"
	"github.com/tdex-network/tdex-wallet/internal/core/ports"
	"github.com/tdex-network/tdex-wallet/pkg/stats"
	"golang.org/x/sync/errgroup"
)

type BalanceService interface {
	GetBalances(ctx context.Context, userID string) (map[string]decimal.Decimal, error)
	UpdateBalance(
		ctx context.Context, userID, assetID string, balance decimal.Decimal,
	) error
	TopUp(
		ctx context.Context, userID, assetID string, amount decimal.Decimal,
	) (*domain.Transaction, error)
	Portfolio(ctx context.Context, userID string) (*Portfolio, error)
}

type balanceService struct {
	repoManager  ports.RepoManager
	priceService PriceService
	broker       *txBroker
}

func NewBalanceService(
	repoManager ports.RepoManager, priceService PriceService,
) (BalanceService, error) {
	return newBalanceService(repoManager, priceService, newTxBroker())
}

func newBalanceService(
	repoManager ports.RepoManager, priceService PriceService, broker *txBroker,
) (*balanceService, error) {
	if repoManager == nil {
		return nil, ErrNullRepoManager
	}
	if priceService == nil {
		priceService = NewPriceService(nil, 0, 0)
	}
	return &balanceService{repoManager, priceService, broker}, nil
}

func (b *balanceService) GetBalances(
	ctx context.Context, userID string,
) (map[string]decimal.Decimal, error) {
	user, err := b.repoManager.UserRepository().GetUserByID(ctx, userID)
	if err != nil {
		return nil, err
	}
	balances := make(map[string]decimal.Decimal, len(user.Balances))
	for assetID, balance := range user.Balances {
		balances[assetID] = balance
	}
	return balances, nil
}

// UpdateBalance overwrites the balance of an asset, as done by clients that
// compute balances on their own.
func (b *balanceService) UpdateBalance(
	ctx context.Context, userID, assetID string, balance decimal.Decimal,
) error {
	return b.repoManager.UserRepository().UpdateUser(
		ctx, userID, func(u *domain.User) (*domain.User, error) {
			if err := u.SetBalance(assetID, balance); err != nil {
				return nil, err
			}
			return u, nil
		},
	)
}

// TopUp credits the given amount, rounded to 8 decimals, and records it as
// an already completed receive transaction. The credit is reverted if the
// transaction cannot be stored.
func (b *balanceService) TopUp(
	ctx context.Context, userID, assetID string, amount decimal.Decimal,
) (*domain.Transaction, error) {
	amount = amount.Round(amountPrecision)
	tx, err := domain.NewTransaction(
		userID, domain.TxTypeReceive, assetID, amount, decimal.Zero, topUpAddress,
	)
	if err != nil {
		return nil, err
	}
	if err := tx.Complete(); err != nil {
		return nil, err
	}

	if err := b.repoManager.UserRepository().UpdateUser(
		ctx, userID, func(u *domain.User) (*domain.User, error) {
			if err := u.Credit(assetID, amount); err != nil {
				return nil, err
			}
			return u, nil
		},
	); err != nil {
		return nil, err
	}

	if err := b.repoManager.TransactionRepository().AddOrUpdateTransaction(
		ctx, *tx,
	); err != nil {
		revertBalances(ctx, b.repoManager, userID, func(u *domain.User) error {
			return u.Debit(assetID, amount)
		})
		return nil, err
	}

	stats.Transactions.WithLabelValues(string(tx.Type), string(tx.Status)).Inc()
	b.broker.publish(*tx)
	log.WithFields(log.Fields{
		"user_id": userID,
		"asset":   tx.Symbol,
		"amount":  amount.String(),
	}).Info("balance topped up")

	return tx, nil
}

// Portfolio values every non empty balance of the user at the current
// prices. Prices and balances are fetched concurrently.
func (b *balanceService) Portfolio(
	ctx context.Context, userID string,
) (*Portfolio, error) {
	var (
		user   *domain.User
		prices map[string]decimal.Decimal
	)

	eg, egCtx := errgroup.WithContext(ctx)
	eg.Go(func() error {
		u, err := b.repoManager.UserRepository().GetUserByID(egCtx, userID)
		if err != nil {
			return err
		}
		user = u
		return nil
	})
	eg.Go(func() error {
		prices = b.priceService.Prices(egCtx)
		return nil
	})
	if err := eg.Wait(); err != nil {
		return nil, err
	}

	portfolio := &Portfolio{
		Assets: make([]AssetValue, 0),
		Total:  decimal.Zero,
	}
	for _, asset := range domain.Assets() {
		balance := user.Balance(asset.ID)
		if !balance.IsPositive() {
			continue
		}
		price := prices[asset.Symbol]
		value := balance.Mul(price)
		portfolio.Assets = append(portfolio.Assets, AssetValue{
			Asset:   asset,
			Balance: balance,
			Price:   price,
			Value:   value,
		})
		portfolio.Total = portfolio.Total.Add(value)
	}
	return portfolio, nil
}
