package domain_test

import (
	"strings"
	"testing"

	"github.com/shopspring/decimal"
	"github.com/stretchr/testify/require"
	"github.com/tdex-network/tdex-wallet/internal/core/domain"
	"github.com/tdex-network/tdex-wallet/pkg/addressgen"
)

var (
	testAddresses = addressgen.AddressMap{
		"Bitcoin":  "bc1qiqdzoevnoi4z6pztarekbfvmiukvppurc7263p",
		"Ethereum": "0x407a5f16aa2f1100fb58804222d89f2f0bd41131",
		"TRC20":    "TztJchnBHSpEPh7oLCr3spXoR7h4TJAioD",
	}
	testFingerprint = "0c1e24e5917779d297e14d45f14e1a1a0a7a8b3c"
)

func TestNewUser(t *testing.T) {
	t.Parallel()

	u, err := domain.NewUser("satoshi_21", testFingerprint, "cypher", testAddresses)
	require.NoError(t, err)
	require.NotNil(t, u)
	require.NotEmpty(t, u.ID)
	require.Equal(t, "satoshi_21", u.Username)
	require.Equal(t, testFingerprint, u.SeedFingerprint)
	require.True(t, testAddresses.Equal(u.Addresses))
	require.Empty(t, u.Balances)
	require.NotZero(t, u.CreatedAt)
	require.Equal(t, testAddresses["Bitcoin"], u.Address("Bitcoin"))

	other, err := domain.NewUser("satoshi_22", testFingerprint, "cypher", testAddresses)
	require.NoError(t, err)
	require.NotEqual(t, u.ID, other.ID)
}

func TestFailingNewUser(t *testing.T) {
	t.Parallel()

	tests := []struct {
		name          string
		username      string
		fingerprint   string
		addresses     addressgen.AddressMap
		expectedError error
	}{
		{
			name:          "username_too_short",
			username:      "ab",
			fingerprint:   testFingerprint,
			addresses:     testAddresses,
			expectedError: domain.ErrInvalidUsername,
		},
		{
			name:          "username_too_long",
			username:      strings.Repeat("a", 21),
			fingerprint:   testFingerprint,
			addresses:     testAddresses,
			expectedError: domain.ErrInvalidUsername,
		},
		{
			name:          "username_invalid_chars",
			username:      "satoshi-nakamoto",
			fingerprint:   testFingerprint,
			addresses:     testAddresses,
			expectedError: domain.ErrInvalidUsername,
		},
		{
			name:          "missing_fingerprint",
			username:      "satoshi",
			fingerprint:   "",
			addresses:     testAddresses,
			expectedError: domain.ErrNullSeedFingerprint,
		},
		{
			name:          "missing_addresses",
			username:      "satoshi",
			fingerprint:   testFingerprint,
			addresses:     nil,
			expectedError: domain.ErrNullAddresses,
		},
	}

	for i := range tests {
		tt := tests[i]
		t.Run(tt.name, func(t *testing.T) {
			u, err := domain.NewUser(tt.username, tt.fingerprint, "", tt.addresses)
			require.EqualError(t, err, tt.expectedError.Error())
			require.Nil(t, u)
		})
	}
}

func TestUserBalances(t *testing.T) {
	t.Parallel()

	u, err := domain.NewUser("satoshi", testFingerprint, "", testAddresses)
	require.NoError(t, err)

	require.True(t, u.Balance("2").IsZero())

	err = u.Credit("2", decimal.RequireFromString("0.05432"))
	require.NoError(t, err)
	err = u.Credit("2", decimal.RequireFromString("0.00568"))
	require.NoError(t, err)
	require.Equal(t, "0.06", u.Balance("2").String())

	err = u.Debit("2", decimal.RequireFromString("0.01"))
	require.NoError(t, err)
	require.Equal(t, "0.05", u.Balance("2").String())

	err = u.Debit("2", decimal.RequireFromString("0.05"))
	require.NoError(t, err)
	require.True(t, u.Balance("2").IsZero())

	err = u.SetBalance("3", decimal.RequireFromString("1.2543"))
	require.NoError(t, err)
	require.Equal(t, "1.2543", u.Balance("3").String())
	err = u.SetBalance("3", decimal.Zero)
	require.NoError(t, err)
}

func TestFailingUserBalances(t *testing.T) {
	t.Parallel()

	u, err := domain.NewUser("satoshi", testFingerprint, "", testAddresses)
	require.NoError(t, err)
	require.NoError(t, u.SetBalance("1", decimal.NewFromInt(10)))

	tests := []struct {
		name          string
		op            func() error
		expectedError error
	}{
		{
			name:          "credit_unknown_asset",
			op:            func() error { return u.Credit("999", decimal.NewFromInt(1)) },
			expectedError: domain.ErrUnknownAsset,
		},
		{
			name:          "credit_zero",
			op:            func() error { return u.Credit("1", decimal.Zero) },
			expectedError: domain.ErrInvalidAmount,
		},
		{
			name:          "debit_negative",
			op:            func() error { return u.Debit("1", decimal.NewFromInt(-1)) },
			expectedError: domain.ErrInvalidAmount,
		},
		{
			name:          "debit_too_much",
			op:            func() error { return u.Debit("1", decimal.NewFromInt(11)) },
			expectedError: domain.ErrInsufficientFunds,
		},
		{
			name:          "set_negative_balance",
			op:            func() error { return u.SetBalance("1", decimal.NewFromInt(-1)) },
			expectedError: domain.ErrNegativeBalance,
		},
	}

	for _, tt := range tests {
		err := tt.op()
		require.ErrorIs(t, err, tt.expectedError, tt.name)
	}
	require.Equal(t, "10", u.Balance("1").String())
}
