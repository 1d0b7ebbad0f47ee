package httpinterface

import (
	"context"
	"strings"

	"github.com/tdex-network/tdex-wallet/internal/core/application"
	"github.com/tdex-network/tdex-wallet/internal/core/domain"
	"github.com/tdex-network/tdex-wallet/pkg/walletsync"
)

// createUser derives the addresses of seed_phrase server side. Legacy
// clients send their own address map along with an opaque
// seed_phrase_encrypted token instead.
func (h *handler) createUser(
	ctx context.Context, req walletsync.Request,
) (interface{}, error) {
	var (
		user *domain.User
		err  error
	)
	if len(strings.TrimSpace(req.SeedPhrase)) > 0 {
		user, err = h.walletSvc.CreateWallet(
			ctx, req.Username, req.SeedPhrase, req.Password,
		)
	} else {
		user, err = h.walletSvc.RegisterUser(
			ctx, req.Username, req.SeedPhraseEncrypted, req.Addresses,
		)
	}
	if err != nil {
		return nil, err
	}

	return walletsync.CreateUserResponse{
		UserID:    user.ID,
		Success:   true,
		Addresses: user.Addresses.Copy(),
	}, nil
}

func (h *handler) getUser(
	ctx context.Context, req walletsync.Request,
) (interface{}, error) {
	var (
		user *domain.User
		err  error
	)
	switch {
	case len(strings.TrimSpace(req.SeedPhrase)) > 0:
		user, err = h.walletSvc.GetUserBySeed(ctx, req.SeedPhrase)
	case len(req.SeedPhraseEncrypted) > 0:
		user, err = h.walletSvc.GetUserBySeedToken(ctx, req.SeedPhraseEncrypted)
	default:
		user, err = h.walletSvc.GetUser(ctx, req.Username)
	}
	if err != nil {
		return nil, err
	}
	return toUserDTO(user), nil
}

func (h *handler) restoreUser(
	ctx context.Context, req walletsync.Request,
) (interface{}, error) {
	user, err := h.walletSvc.RestoreWallet(
		ctx, req.SeedPhrase, req.Username, req.Password,
	)
	if err != nil {
		return nil, err
	}
	return toUserDTO(user), nil
}

func (h *handler) getBalances(
	ctx context.Context, req walletsync.Request,
) (interface{}, error) {
	balances, err := h.balanceSvc.GetBalances(ctx, req.UserID)
	if err != nil {
		return nil, err
	}
	return walletsync.BalancesResponse{
		Balances: decimalsToStrings(balances),
	}, nil
}

func (h *handler) updateBalance(
	ctx context.Context, req walletsync.Request,
) (interface{}, error) {
	balance, err := parseAmount(req.Balance)
	if err != nil {
		return nil, err
	}
	if err := h.balanceSvc.UpdateBalance(
		ctx, req.UserID, req.CryptoID, balance,
	); err != nil {
		return nil, err
	}
	return walletsync.SuccessResponse{Success: true}, nil
}

func (h *handler) saveTransaction(
	ctx context.Context, req walletsync.Request,
) (interface{}, error) {
	if req.Transaction == nil {
		return nil, ErrNullTransaction
	}
	tx, err := fromTransactionDTO(req.UserID, *req.Transaction)
	if err != nil {
		return nil, err
	}
	if err := h.transactionSvc.SaveTransaction(ctx, tx); err != nil {
		return nil, err
	}
	return walletsync.SuccessResponse{Success: true}, nil
}

func (h *handler) getTransactions(
	ctx context.Context, req walletsync.Request,
) (interface{}, error) {
	txs, err := h.transactionSvc.ListTransactions(ctx, req.UserID, req.Limit)
	if err != nil {
		return nil, err
	}
	return walletsync.TransactionsResponse{
		Transactions: toTransactionDTOs(txs),
	}, nil
}

func (h *handler) deriveAddresses(
	ctx context.Context, req walletsync.Request,
) (interface{}, error) {
	addresses, err := h.walletSvc.DeriveAddresses(ctx, req.SeedPhrase)
	if err != nil {
		return nil, err
	}
	return walletsync.AddressesResponse{Addresses: addresses}, nil
}

func (h *handler) revealSeed(
	ctx context.Context, req walletsync.Request,
) (interface{}, error) {
	words, err := h.walletSvc.RevealSeed(ctx, req.Username, req.Password)
	if err != nil {
		return nil, err
	}
	return walletsync.SeedResponse{SeedPhrase: words}, nil
}

func (h *handler) getPrices(
	ctx context.Context, _ walletsync.Request,
) (interface{}, error) {
	return walletsync.PricesResponse{
		Prices: decimalsToStrings(h.priceSvc.Prices(ctx)),
	}, nil
}

func (h *handler) getPriceHistory(
	ctx context.Context, req walletsync.Request,
) (interface{}, error) {
	if len(strings.TrimSpace(req.Symbol)) <= 0 {
		return nil, ErrNullSymbol
	}
	days := req.Days
	if days < 0 || days > application.MaxHistoryDays {
		return nil, application.ErrInvalidDays
	}
	if days == 0 {
		days = application.DefaultHistoryDays
	}

	points := h.priceSvc.PriceHistory(ctx, req.Symbol, days)
	return toPriceHistoryDTO(req.Symbol, points), nil
}

func (h *handler) getPortfolio(
	ctx context.Context, req walletsync.Request,
) (interface{}, error) {
	portfolio, err := h.balanceSvc.Portfolio(ctx, req.UserID)
	if err != nil {
		return nil, err
	}
	return toPortfolioDTO(portfolio), nil
}

func (h *handler) send(
	ctx context.Context, req walletsync.Request,
) (interface{}, error) {
	amount, err := parseAmount(req.Amount)
	if err != nil {
		return nil, err
	}

	tx, err := h.transactionSvc.Send(ctx, application.SendRequest{
		UserID:  req.UserID,
		AssetID: req.CryptoID,
		Amount:  amount,
		Address: req.Address,
	})
	if err != nil {
		return nil, err
	}
	return walletsync.TransactionResponse{
		Transaction: toTransactionDTO(*tx),
	}, nil
}

func (h *handler) swap(
	ctx context.Context, req walletsync.Request,
) (interface{}, error) {
	amount, err := parseAmount(req.Amount)
	if err != nil {
		return nil, err
	}

	res, err := h.transactionSvc.Swap(ctx, application.SwapRequest{
		UserID:      req.UserID,
		FromAssetID: req.CryptoID,
		ToAssetID:   req.ToCryptoID,
		Amount:      amount,
	})
	if err != nil {
		return nil, err
	}
	return walletsync.SwapResponse{
		Send:    toTransactionDTO(res.Send),
		Receive: toTransactionDTO(res.Receive),
		Rate:    res.Rate.String(),
	}, nil
}

func (h *handler) topUp(
	ctx context.Context, req walletsync.Request,
) (interface{}, error) {
	amount, err := parseAmount(req.Amount)
	if err != nil {
		return nil, err
	}

	tx, err := h.balanceSvc.TopUp(ctx, req.UserID, req.CryptoID, amount)
	if err != nil {
		return nil, err
	}
	return walletsync.TransactionResponse{
		Transaction: toTransactionDTO(*tx),
	}, nil
}

func (h *handler) addWebhook(
	ctx context.Context, req walletsync.Request,
) (interface{}, error) {
	id, err := h.webhookSvc.AddWebhook(ctx, application.Webhook{
		Topic:    req.Topic,
		Endpoint: req.Endpoint,
		Secret:   req.Secret,
	})
	if err != nil {
		return nil, err
	}
	return walletsync.WebhookResponse{ID: id}, nil
}

func (h *handler) removeWebhook(
	ctx context.Context, req walletsync.Request,
) (interface{}, error) {
	if len(req.WebhookID) <= 0 {
		return nil, ErrNullWebhookID
	}
	if err := h.webhookSvc.RemoveWebhook(ctx, req.WebhookID); err != nil {
		return nil, err
	}
	return walletsync.SuccessResponse{Success: true}, nil
}

func (h *handler) listWebhooks(
	ctx context.Context, req walletsync.Request,
) (interface{}, error) {
	hooks, err := h.webhookSvc.ListWebhooks(ctx, req.Topic)
	if err != nil {
		return nil, err
	}
	return walletsync.WebhooksResponse{Webhooks: toWebhookDTOs(hooks)}, nil
}
