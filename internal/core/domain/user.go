package domain

import (
	"regexp"
	"time"

	"github.com/google/uuid"
	"github.com/shopspring/decimal"
	"github.com/tdex-network/tdex-wallet/pkg/addressgen"
)

var usernameRegexp = regexp.MustCompile(`^[A-Za-z0-9_]{3,20}$`)

// User is the profile bound to a seed phrase. The phrase itself is never
// stored in clear: SeedFingerprint is the lookup key, EncryptedSeed is what
// the user can reveal with their password.
type User struct {
	ID              string
	Username        string
	SeedFingerprint string
	EncryptedSeed   string
	// Addresses are derived once at creation and returned as they are
	// afterwards.
	Addresses addressgen.AddressMap
	// Balances are indexed by asset id.
	Balances  map[string]decimal.Decimal
	CreatedAt int64
}

// NewUser returns a user with empty balances after validating the username
// and the address map.
func NewUser(
	username, seedFingerprint, encryptedSeed string,
	addresses addressgen.AddressMap,
) (*User, error) {
	if err := ValidateUsername(username); err != nil {
		return nil, err
	}
	if len(seedFingerprint) <= 0 {
		return nil, ErrNullSeedFingerprint
	}
	if len(addresses) <= 0 {
		return nil, ErrNullAddresses
	}

	return &User{
		ID:              uuid.New().String(),
		Username:        username,
		SeedFingerprint: seedFingerprint,
		EncryptedSeed:   encryptedSeed,
		Addresses:       addresses.Copy(),
		Balances:        make(map[string]decimal.Decimal),
		CreatedAt:       time.Now().Unix(),
	}, nil
}

// ValidateUsername makes sure the username is 3 to 20 characters long and
// contains only letters, digits or underscores.
func ValidateUsername(username string) error {
	if !usernameRegexp.MatchString(username) {
		return ErrInvalidUsername
	}
	return nil
}

// Balance returns the balance of the given asset, zero if never funded.
func (u *User) Balance(assetID string) decimal.Decimal {
	if u.Balances == nil {
		return decimal.Zero
	}
	return u.Balances[assetID]
}

// Credit adds amount to the balance of the given asset.
func (u *User) Credit(assetID string, amount decimal.Decimal) error {
	if _, err := AssetByID(assetID); err != nil {
		return err
	}
	if !amount.IsPositive() {
		return ErrInvalidAmount
	}

	u.setBalance(assetID, u.Balance(assetID).Add(amount))
	return nil
}

// Debit subtracts amount from the balance of the given asset.
func (u *User) Debit(assetID string, amount decimal.Decimal) error {
	if _, err := AssetByID(assetID); err != nil {
		return err
	}
	if !amount.IsPositive() {
		return ErrInvalidAmount
	}
	balance := u.Balance(assetID)
	if balance.LessThan(amount) {
		return ErrInsufficientFunds
	}

	u.setBalance(assetID, balance.Sub(amount))
	return nil
}

// SetBalance overwrites the balance of the given asset.
func (u *User) SetBalance(assetID string, amount decimal.Decimal) error {
	if _, err := AssetByID(assetID); err != nil {
		return err
	}
	if amount.IsNegative() {
		return ErrNegativeBalance
	}

	u.setBalance(assetID, amount)
	return nil
}

// Address returns the address of the given network.
func (u *User) Address(network string) string {
	return u.Addresses[network]
}

func (u *User) setBalance(assetID string, amount decimal.Decimal) {
	if u.Balances == nil {
		u.Balances = make(map[string]decimal.Decimal)
	}
	u.Balances[assetID] = amount
}
