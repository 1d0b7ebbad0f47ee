package application_test

import (
	"context"
	"strings"
	"testing"

	"github.com/shopspring/decimal"
	"github.com/stretchr/testify/require"
	"github.com/tdex-network/tdex-wallet/internal/core/application"
	"github.com/tdex-network/tdex-wallet/internal/core/domain"
	"github.com/tdex-network/tdex-wallet/internal/infrastructure/storage/db/inmemory"
	"github.com/tdex-network/tdex-wallet/pkg/addressgen"
	"github.com/tdex-network/tdex-wallet/pkg/wallet"
)

var ctx = context.Background()

func TestGenSeed(t *testing.T) {
	svc := newTestConfig(t, nil).WalletService()

	tests := []struct {
		words         int
		expectedWords int
	}{
		{0, 12},
		{12, 12},
		{24, 24},
	}
	for _, tt := range tests {
		mnemonic, err := svc.GenSeed(ctx, tt.words)
		require.NoError(t, err)
		require.Len(t, mnemonic, tt.expectedWords)
		require.NoError(t, wallet.ValidateMnemonic(mnemonic))
	}

	_, err := svc.GenSeed(ctx, 15)
	require.ErrorIs(t, err, wallet.ErrInvalidWordCount)
}

func TestDeriveAddresses(t *testing.T) {
	svc := newTestConfig(t, nil).WalletService()

	addresses, err := svc.DeriveAddresses(ctx, "  "+strings.ToUpper(testMnemonic)+" ")
	require.NoError(t, err)
	require.Len(t, addresses, len(addressgen.DefaultCatalog()))

	expected := addressgen.DeriveAll(
		wallet.NormalizeMnemonic(testMnemonic), addressgen.DefaultCatalog(),
	)
	require.True(t, expected.Equal(addresses))

	_, err = svc.DeriveAddresses(ctx, strings.Repeat("abandon ", 12))
	require.ErrorIs(t, err, wallet.ErrInvalidMnemonic)
}

func TestCreateWallet(t *testing.T) {
	svc := newTestConfig(t, nil).WalletService()

	user, err := svc.CreateWallet(ctx, "alice_01", testMnemonic, testPassword)
	require.NoError(t, err)
	require.NotNil(t, user)
	require.NotEmpty(t, user.ID)
	require.NotEmpty(t, user.EncryptedSeed)
	require.NotContains(t, user.EncryptedSeed, "abandon")
	require.Len(t, user.Addresses, len(addressgen.DefaultCatalog()))
	require.Equal(t, "1250.5", user.Balance("1").String())
	require.Equal(t, "0.05432", user.Balance("2").String())

	got, err := svc.GetUser(ctx, "alice_01")
	require.NoError(t, err)
	require.Equal(t, user.ID, got.ID)

	got, err = svc.GetUserBySeed(ctx, testMnemonic)
	require.NoError(t, err)
	require.Equal(t, user.ID, got.ID)

	got, err = svc.GetUserByID(ctx, user.ID)
	require.NoError(t, err)
	require.Equal(t, user.Username, got.Username)

	addresses, err := svc.Addresses(ctx, "alice_01")
	require.NoError(t, err)
	require.True(t, user.Addresses.Equal(addresses))

	mnemonic, err := svc.RevealSeed(ctx, "alice_01", testPassword)
	require.NoError(t, err)
	require.Equal(t, testMnemonic, strings.Join(mnemonic, " "))

	_, err = svc.RevealSeed(ctx, "alice_01", "wrong password")
	require.ErrorIs(t, err, wallet.ErrInvalidPassphrase)
}

func TestFailingCreateWallet(t *testing.T) {
	svc := newTestConfig(t, nil).WalletService()

	_, err := svc.CreateWallet(ctx, "bob", testMnemonic, testPassword)
	require.NoError(t, err)

	otherMnemonic, err := svc.GenSeed(ctx, 12)
	require.NoError(t, err)

	tests := []struct {
		name          string
		username      string
		mnemonic      string
		password      string
		expectedError error
	}{
		{
			name:          "missing password",
			username:      "carol",
			mnemonic:      strings.Join(otherMnemonic, " "),
			password:      "",
			expectedError: application.ErrNullPassword,
		},
		{
			name:          "invalid mnemonic",
			username:      "carol",
			mnemonic:      "not a valid mnemonic",
			password:      testPassword,
			expectedError: wallet.ErrInvalidWordCount,
		},
		{
			name:          "invalid username",
			username:      "c",
			mnemonic:      strings.Join(otherMnemonic, " "),
			password:      testPassword,
			expectedError: domain.ErrInvalidUsername,
		},
		{
			name:          "username taken",
			username:      "bob",
			mnemonic:      strings.Join(otherMnemonic, " "),
			password:      testPassword,
			expectedError: domain.ErrUserAlreadyExists,
		},
		{
			name:          "seed already used",
			username:      "carol",
			mnemonic:      testMnemonic,
			password:      testPassword,
			expectedError: domain.ErrUserAlreadyExists,
		},
	}

	for _, tt := range tests {
		tt := tt
		t.Run(tt.name, func(t *testing.T) {
			_, err := svc.CreateWallet(ctx, tt.username, tt.mnemonic, tt.password)
			require.ErrorIs(t, err, tt.expectedError)
		})
	}
}

func TestRestoreWallet(t *testing.T) {
	svc := newTestConfig(t, nil).WalletService()

	created, err := svc.CreateWallet(ctx, "dave", testMnemonic, testPassword)
	require.NoError(t, err)

	t.Run("existing profile", func(t *testing.T) {
		restored, err := svc.RestoreWallet(ctx, testMnemonic, "", "")
		require.NoError(t, err)
		require.Equal(t, created.ID, restored.ID)
		require.True(t, created.Addresses.Equal(restored.Addresses))
	})

	t.Run("new profile", func(t *testing.T) {
		mnemonic, err := svc.GenSeed(ctx, 24)
		require.NoError(t, err)
		phrase := strings.Join(mnemonic, " ")

		_, err = svc.RestoreWallet(ctx, phrase, "", testPassword)
		require.ErrorIs(t, err, application.ErrNullUsername)

		_, err = svc.RestoreWallet(ctx, phrase, "erin", "")
		require.ErrorIs(t, err, application.ErrNullPassword)

		restored, err := svc.RestoreWallet(ctx, phrase, "erin", testPassword)
		require.NoError(t, err)
		require.Equal(t, "erin", restored.Username)

		again, err := svc.RestoreWallet(ctx, phrase, "", "")
		require.NoError(t, err)
		require.Equal(t, restored.ID, again.ID)
	})
}

func TestRestoreWalletAddressMismatch(t *testing.T) {
	repoManager := inmemory.NewRepoManager()

	svc, err := application.NewWalletService(repoManager, nil, nil)
	require.NoError(t, err)
	_, err = svc.CreateWallet(ctx, "frank", testMnemonic, testPassword)
	require.NoError(t, err)

	catalog := append(addressgen.DefaultCatalog()[1:], addressgen.DefaultCatalog()[0])
	otherSvc, err := application.NewWalletService(
		repoManager, addressgen.NewAddressBook(addressgen.WithCatalog(catalog)), nil,
	)
	require.NoError(t, err)

	_, err = otherSvc.RestoreWallet(ctx, testMnemonic, "", "")
	require.ErrorIs(t, err, application.ErrAddressMismatch)
}

func TestRegisterUser(t *testing.T) {
	svc := newTestConfig(t, nil).WalletService()

	addresses := addressgen.AddressMap{
		"Bitcoin":  "bc1qexampleaddress",
		"Ethereum": "0x0000000000000000000000000000000000000001",
	}

	user, err := svc.RegisterUser(ctx, "grace", "opaque-token", addresses)
	require.NoError(t, err)
	require.Empty(t, user.EncryptedSeed)
	require.True(t, addresses.Equal(user.Addresses))

	got, err := svc.GetUserBySeedToken(ctx, "opaque-token")
	require.NoError(t, err)
	require.Equal(t, user.ID, got.ID)

	_, err = svc.GetUserBySeedToken(ctx, "other-token")
	require.ErrorIs(t, err, domain.ErrUserNotFound)

	_, err = svc.RevealSeed(ctx, "grace", testPassword)
	require.ErrorIs(t, err, application.ErrSeedNotAvailable)

	_, err = svc.RegisterUser(ctx, "heidi", "", addresses)
	require.ErrorIs(t, err, application.ErrNullSeed)

	_, err = svc.RegisterUser(ctx, "heidi", "another-token", nil)
	require.ErrorIs(t, err, domain.ErrNullAddresses)
}

func TestNewWalletServiceFailing(t *testing.T) {
	_, err := application.NewWalletService(nil, nil, nil)
	require.ErrorIs(t, err, application.ErrNullRepoManager)

	_, err = application.NewWalletService(
		inmemory.NewRepoManager(), nil, map[string]decimal.Decimal{"999": d("1")},
	)
	require.ErrorIs(t, err, domain.ErrUnknownAsset)
}
