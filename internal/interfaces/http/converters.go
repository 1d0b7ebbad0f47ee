package httpinterface

import (
	"strings"

	"github.com/shopspring/decimal"
	"github.com/tdex-network/tdex-wallet/internal/core/application"
	"github.com/tdex-network/tdex-wallet/internal/core/domain"
	"github.com/tdex-network/tdex-wallet/pkg/walletsync"
)

func parseAmount(amount string) (decimal.Decimal, error) {
	amount = strings.ReplaceAll(strings.TrimSpace(amount), ",", "")
	if len(amount) <= 0 {
		return decimal.Zero, ErrMalformedAmount
	}
	d, err := decimal.NewFromString(amount)
	if err != nil {
		return decimal.Zero, ErrMalformedAmount
	}
	return d, nil
}

func decimalsToStrings(m map[string]decimal.Decimal) map[string]string {
	res := make(map[string]string, len(m))
	for k, v := range m {
		res[k] = v.String()
	}
	return res
}

func toUserDTO(u *domain.User) walletsync.User {
	return walletsync.User{
		UserID:              u.ID,
		Username:            u.Username,
		SeedPhraseEncrypted: u.EncryptedSeed,
		Addresses:           u.Addresses.Copy(),
		Balances:            decimalsToStrings(u.Balances),
	}
}

func toTransactionDTO(tx domain.Transaction) walletsync.Transaction {
	return walletsync.Transaction{
		ID:        tx.ID,
		Type:      string(tx.Type),
		CryptoID:  tx.AssetID,
		Symbol:    tx.Symbol,
		Amount:    tx.Amount.String(),
		Address:   tx.Address,
		Fee:       tx.Fee.String(),
		Status:    string(tx.Status),
		Hash:      tx.Hash,
		Network:   tx.Network,
		Timestamp: tx.Timestamp,
	}
}

func toTransactionDTOs(txs []domain.Transaction) []walletsync.Transaction {
	res := make([]walletsync.Transaction, 0, len(txs))
	for _, tx := range txs {
		res = append(res, toTransactionDTO(tx))
	}
	return res
}

// fromTransactionDTO parses a transaction sent by a client. Symbol and
// network default to those of the catalog asset if omitted.
func fromTransactionDTO(
	userID string, tx walletsync.Transaction,
) (domain.Transaction, error) {
	amount, err := parseAmount(tx.Amount)
	if err != nil {
		return domain.Transaction{}, err
	}
	fee := decimal.Zero
	if len(strings.TrimSpace(tx.Fee)) > 0 {
		if fee, err = parseAmount(tx.Fee); err != nil {
			return domain.Transaction{}, err
		}
	}

	symbol, network := tx.Symbol, tx.Network
	if asset, err := domain.AssetByID(tx.CryptoID); err == nil {
		if len(symbol) <= 0 {
			symbol = asset.Symbol
		}
		if len(network) <= 0 {
			network = asset.Network
		}
	}

	return domain.Transaction{
		ID:        tx.ID,
		UserID:    userID,
		Type:      domain.TxType(tx.Type),
		AssetID:   tx.CryptoID,
		Symbol:    symbol,
		Amount:    amount,
		Fee:       fee,
		Address:   tx.Address,
		Status:    domain.TxStatus(tx.Status),
		Hash:      tx.Hash,
		Network:   network,
		Timestamp: tx.Timestamp,
	}, nil
}

func toPriceHistoryDTO(
	symbol string, points []application.PricePoint,
) walletsync.PriceHistoryResponse {
	prices := make([]walletsync.PricePoint, 0, len(points))
	for _, p := range points {
		prices = append(prices, walletsync.PricePoint{
			Timestamp: p.Timestamp,
			Price:     p.Price.String(),
		})
	}
	change := application.PriceChange(points)

	return walletsync.PriceHistoryResponse{
		Symbol:     strings.ToUpper(symbol),
		Prices:     prices,
		Change:     change.Change.String(),
		Percentage: change.Percentage.StringFixed(2),
	}
}

func toPortfolioDTO(p *application.Portfolio) walletsync.PortfolioResponse {
	assets := make([]walletsync.PortfolioEntry, 0, len(p.Assets))
	for _, a := range p.Assets {
		assets = append(assets, walletsync.PortfolioEntry{
			CryptoID: a.Asset.ID,
			Name:     a.Asset.Name,
			Symbol:   a.Asset.Symbol,
			Network:  a.Asset.Network,
			Balance:  a.Balance.String(),
			Price:    a.Price.String(),
			Value:    a.Value.StringFixed(2),
		})
	}
	return walletsync.PortfolioResponse{
		Assets: assets,
		Total:  p.Total.StringFixed(2),
	}
}

func toWebhookDTOs(hooks []application.WebhookInfo) []walletsync.Webhook {
	list := make([]walletsync.Webhook, 0, len(hooks))
	for _, hook := range hooks {
		list = append(list, walletsync.Webhook{
			ID:        hook.ID,
			Topic:     hook.Topic,
			Endpoint:  hook.Endpoint,
			IsSecured: hook.IsSecured,
		})
	}
	return list
}
