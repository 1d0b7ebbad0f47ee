package application

import (
	"github.com/shopspring/decimal"
	"github.com/tdex-network/tdex-wallet/internal/core/domain"
)

// SendRequest ...
type SendRequest struct {
	UserID  string
	AssetID string
	Amount  decimal.Decimal
	Address string
}

func (r SendRequest) validate() error {
	if len(r.UserID) <= 0 {
		return domain.ErrNullUserID
	}
	if _, err := domain.AssetByID(r.AssetID); err != nil {
		return err
	}
	if !r.Amount.IsPositive() {
		return domain.ErrInvalidAmount
	}
	if len(r.Address) <= 0 {
		return ErrNullAddress
	}
	return nil
}

// SwapRequest ...
type SwapRequest struct {
	UserID      string
	FromAssetID string
	ToAssetID   string
	Amount      decimal.Decimal
}

func (r SwapRequest) validate() error {
	if len(r.UserID) <= 0 {
		return domain.ErrNullUserID
	}
	if _, err := domain.AssetByID(r.FromAssetID); err != nil {
		return err
	}
	if _, err := domain.AssetByID(r.ToAssetID); err != nil {
		return err
	}
	if r.FromAssetID == r.ToAssetID {
		return ErrSameAsset
	}
	if !r.Amount.IsPositive() {
		return domain.ErrInvalidAmount
	}
	return nil
}

// SwapResult holds the two legs of a swap and the rate applied.
type SwapResult struct {
	Send    domain.Transaction
	Receive domain.Transaction
	Rate    decimal.Decimal
}

// TransactionEvent is published whenever a transaction is added or changes
// status.
type TransactionEvent struct {
	Transaction domain.Transaction
}

// AssetValue is a portfolio entry.
type AssetValue struct {
	Asset   domain.Asset
	Balance decimal.Decimal
	Price   decimal.Decimal
	Value   decimal.Decimal
}

// Portfolio is the USD valuation of the balances of a user.
type Portfolio struct {
	Assets []AssetValue
	Total  decimal.Decimal
}

// PricePoint is a USD quote at a given time in milliseconds.
type PricePoint struct {
	Timestamp int64
	Price     decimal.Decimal
}

func (p PricePoint) GetTimestamp() int64 {
	return p.Timestamp
}

func (p PricePoint) GetPrice() decimal.Decimal {
	return p.Price
}

// PriceChangeInfo is the absolute and percentage change between the first
// and the last point of a chart.
type PriceChangeInfo struct {
	Change     decimal.Decimal
	Percentage decimal.Decimal
}
