package application

import (
	"context"
	"errors"
	"strings"

	"github.com/shopspring/decimal"
	log "github.com/sirupsen/logrus"
	"github.com/tdex-network/tdex-wallet/internal/core/domain"
	"github.com/tdex-network/tdex-wallet/internal/core/ports"
	"github.com/tdex-network/tdex-wallet/pkg/addressgen"
	"github.com/tdex-network/tdex-wallet/pkg/stats"
	"github.com/tdex-network/tdex-wallet/pkg/wallet"
)

const (
	originCreated    = "created"
	originRestored   = "restored"
	originRegistered = "registered"
)

type WalletService interface {
	GenSeed(ctx context.Context, words int) ([]string, error)
	DeriveAddresses(
		ctx context.Context, mnemonic string,
	) (addressgen.AddressMap, error)
	CreateWallet(
		ctx context.Context, username, mnemonic, password string,
	) (*domain.User, error)
	RegisterUser(
		ctx context.Context,
		username, seedToken string,
		addresses addressgen.AddressMap,
	) (*domain.User, error)
	RestoreWallet(
		ctx context.Context, mnemonic, username, password string,
	) (*domain.User, error)
	GetUser(ctx context.Context, username string) (*domain.User, error)
	GetUserByID(ctx context.Context, userID string) (*domain.User, error)
	GetUserBySeed(ctx context.Context, mnemonic string) (*domain.User, error)
	GetUserBySeedToken(ctx context.Context, seedToken string) (*domain.User, error)
	Addresses(ctx context.Context, username string) (addressgen.AddressMap, error)
	RevealSeed(ctx context.Context, username, password string) ([]string, error)
}

type walletService struct {
	repoManager  ports.RepoManager
	addressBook  *addressgen.AddressBook
	demoBalances map[string]decimal.Decimal
}

// NewWalletService returns the service managing wallet profiles. Addresses
// are derived with the given book, the default one if nil. Demo balances,
// if any, are credited to every new profile.
func NewWalletService(
	repoManager ports.RepoManager,
	addressBook *addressgen.AddressBook,
	demoBalances map[string]decimal.Decimal,
) (WalletService, error) {
	if repoManager == nil {
		return nil, ErrNullRepoManager
	}
	if addressBook == nil {
		addressBook = addressgen.NewAddressBook()
	}
	for assetID, amount := range demoBalances {
		if _, err := domain.AssetByID(assetID); err != nil {
			return nil, err
		}
		if amount.IsNegative() {
			return nil, domain.ErrNegativeBalance
		}
	}

	return &walletService{
		repoManager:  repoManager,
		addressBook:  addressBook,
		demoBalances: demoBalances,
	}, nil
}

func (w *walletService) GenSeed(ctx context.Context, words int) ([]string, error) {
	entropySize, err := wallet.EntropySizeForWords(words)
	if err != nil {
		return nil, err
	}
	return wallet.NewMnemonic(wallet.NewMnemonicOpts{EntropySize: entropySize})
}

func (w *walletService) DeriveAddresses(
	ctx context.Context, mnemonic string,
) (addressgen.AddressMap, error) {
	wlt, err := wallet.NewWalletFromMnemonic(wallet.NewWalletFromMnemonicOpts{
		Mnemonic: mnemonic,
	})
	if err != nil {
		return nil, err
	}

	addresses := wlt.Addresses(w.addressBook)
	stats.DerivedAddresses.Add(float64(len(w.addressBook.Catalog())))
	return addresses, nil
}

func (w *walletService) CreateWallet(
	ctx context.Context, username, mnemonic, password string,
) (*domain.User, error) {
	if len(password) <= 0 {
		return nil, ErrNullPassword
	}
	wlt, err := wallet.NewWalletFromMnemonic(wallet.NewWalletFromMnemonicOpts{
		Mnemonic: mnemonic,
	})
	if err != nil {
		return nil, err
	}

	return w.createUser(ctx, username, wlt, password, originCreated)
}

// RegisterUser stores a profile whose addresses were derived by the client.
// The seed token is an opaque value the client can later use to look the
// profile up again, it's never stored in clear.
func (w *walletService) RegisterUser(
	ctx context.Context,
	username, seedToken string,
	addresses addressgen.AddressMap,
) (*domain.User, error) {
	if len(seedToken) <= 0 {
		return nil, ErrNullSeed
	}

	user, err := domain.NewUser(
		username, wallet.Fingerprint([]string{seedToken}), "", addresses,
	)
	if err != nil {
		return nil, err
	}
	return w.addUser(ctx, user, originRegistered)
}

func (w *walletService) RestoreWallet(
	ctx context.Context, mnemonic, username, password string,
) (*domain.User, error) {
	wlt, err := wallet.NewWalletFromMnemonic(wallet.NewWalletFromMnemonicOpts{
		Mnemonic: mnemonic,
	})
	if err != nil {
		return nil, err
	}

	user, err := w.repoManager.UserRepository().GetUserBySeedFingerprint(
		ctx, wlt.Fingerprint(),
	)
	if err != nil && !errors.Is(err, domain.ErrUserNotFound) {
		return nil, err
	}

	if user != nil {
		addresses := wlt.Addresses(w.addressBook)
		stats.DerivedAddresses.Add(float64(len(w.addressBook.Catalog())))
		if !addresses.Equal(user.Addresses) {
			log.WithField("user_id", user.ID).Error(
				"restored addresses differ from stored ones",
			)
			return nil, ErrAddressMismatch
		}
		log.WithField("user_id", user.ID).Info("wallet restored")
		return user, nil
	}

	if len(strings.TrimSpace(username)) <= 0 {
		return nil, ErrNullUsername
	}
	if len(password) <= 0 {
		return nil, ErrNullPassword
	}
	return w.createUser(ctx, username, wlt, password, originRestored)
}

func (w *walletService) GetUser(
	ctx context.Context, username string,
) (*domain.User, error) {
	return w.repoManager.UserRepository().GetUserByUsername(ctx, username)
}

func (w *walletService) GetUserByID(
	ctx context.Context, userID string,
) (*domain.User, error) {
	return w.repoManager.UserRepository().GetUserByID(ctx, userID)
}

func (w *walletService) GetUserBySeed(
	ctx context.Context, mnemonic string,
) (*domain.User, error) {
	words := wallet.NormalizeMnemonic(mnemonic)
	if err := wallet.ValidateMnemonic(words); err != nil {
		return nil, err
	}
	return w.repoManager.UserRepository().GetUserBySeedFingerprint(
		ctx, wallet.Fingerprint(words),
	)
}

func (w *walletService) GetUserBySeedToken(
	ctx context.Context, seedToken string,
) (*domain.User, error) {
	if len(seedToken) <= 0 {
		return nil, ErrNullSeed
	}
	return w.repoManager.UserRepository().GetUserBySeedFingerprint(
		ctx, wallet.Fingerprint([]string{seedToken}),
	)
}

// Addresses returns the address map stored at creation. Addresses are never
// re-derived after a profile is persisted.
func (w *walletService) Addresses(
	ctx context.Context, username string,
) (addressgen.AddressMap, error) {
	user, err := w.GetUser(ctx, username)
	if err != nil {
		return nil, err
	}
	return user.Addresses.Copy(), nil
}

func (w *walletService) RevealSeed(
	ctx context.Context, username, password string,
) ([]string, error) {
	if len(password) <= 0 {
		return nil, ErrNullPassword
	}
	user, err := w.GetUser(ctx, username)
	if err != nil {
		return nil, err
	}
	if len(user.EncryptedSeed) <= 0 {
		return nil, ErrSeedNotAvailable
	}

	mnemonic, err := wallet.Decrypt(wallet.DecryptOpts{
		CypherText: user.EncryptedSeed,
		Passphrase: password,
	})
	if err != nil {
		return nil, err
	}
	return wallet.NormalizeMnemonic(mnemonic), nil
}

func (w *walletService) createUser(
	ctx context.Context,
	username string,
	wlt *wallet.Wallet,
	password, origin string,
) (*domain.User, error) {
	if err := domain.ValidateUsername(username); err != nil {
		return nil, err
	}

	encryptedSeed, err := wallet.Encrypt(wallet.EncryptOpts{
		PlainText:  strings.Join(wlt.Mnemonic(), " "),
		Passphrase: password,
	})
	if err != nil {
		return nil, err
	}

	addresses := wlt.Addresses(w.addressBook)
	stats.DerivedAddresses.Add(float64(len(w.addressBook.Catalog())))

	user, err := domain.NewUser(
		username, wlt.Fingerprint(), encryptedSeed, addresses,
	)
	if err != nil {
		return nil, err
	}
	return w.addUser(ctx, user, origin)
}

func (w *walletService) addUser(
	ctx context.Context, user *domain.User, origin string,
) (*domain.User, error) {
	for assetID, amount := range w.demoBalances {
		if err := user.SetBalance(assetID, amount); err != nil {
			return nil, err
		}
	}

	if err := w.repoManager.UserRepository().AddUser(ctx, *user); err != nil {
		return nil, err
	}

	stats.WalletsCreated.WithLabelValues(origin).Inc()
	log.WithFields(log.Fields{
		"user_id":  user.ID,
		"username": user.Username,
		"networks": len(user.Addresses),
		"origin":   origin,
	}).Info("wallet profile added")

	return user, nil
}
