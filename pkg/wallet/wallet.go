package wallet

import (
	"encoding/hex"
	"errors"
	"strings"

	"github.com/btcsuite/btcd/btcutil"
	"github.com/tdex-network/tdex-wallet/pkg/addressgen"
)

var (
	// ErrNullMnemonic ...
	ErrNullMnemonic = errors.New("mnemonic must not be null")
	// ErrNullPassphrase ...
	ErrNullPassphrase = errors.New("passphrase must not be null")
	// ErrNullPlainText ...
	ErrNullPlainText = errors.New("text to encrypt must not be null")
	// ErrNullCypherText ...
	ErrNullCypherText = errors.New("cypher to decrypt must not be null")

	// ErrInvalidEntropySize ...
	ErrInvalidEntropySize = errors.New(
		"entropy size must be a multiple of 32 in the range [128,256]",
	)
	// ErrInvalidWordCount is returned for seed phrases, or requested seed
	// lengths, other than 12 or 24 words.
	ErrInvalidWordCount = errors.New("mnemonic must be made of 12 or 24 words")
	// ErrInvalidMnemonic is returned if a word is not in the BIP39 english
	// list or the checksum does not match.
	ErrInvalidMnemonic = errors.New("mnemonic is invalid")
	// ErrInvalidCypherText is returned when decrypting a stored seed that is
	// not valid base64 or is too short to hold the salt and nonce.
	ErrInvalidCypherText = errors.New("cypher must be in base64 format")
	// ErrInvalidPassphrase is returned if the cypher can't be opened with the
	// given passphrase.
	ErrInvalidPassphrase = errors.New("invalid passphrase")
)

// Wallet holds a validated seed phrase and derives from it the lookup
// fingerprint and the per-network addresses.
type Wallet struct {
	mnemonic []string
}

// NewWalletOpts is the struct given to the NewWallet method
type NewWalletOpts struct {
	EntropySize int
}

// NewWallet creates a new wallet with a freshly generated mnemonic
func NewWallet(opts NewWalletOpts) (*Wallet, error) {
	mnemonic, err := NewMnemonic(NewMnemonicOpts(opts))
	if err != nil {
		return nil, err
	}
	return &Wallet{mnemonic}, nil
}

// NewWalletFromMnemonicOpts is the struct given to the NewWalletFromMnemonic
// method
type NewWalletFromMnemonicOpts struct {
	Mnemonic string
}

func (o NewWalletFromMnemonicOpts) validate() error {
	if len(strings.TrimSpace(o.Mnemonic)) <= 0 {
		return ErrNullMnemonic
	}
	return ValidateMnemonic(NormalizeMnemonic(o.Mnemonic))
}

// NewWalletFromMnemonic restores a wallet from the given phrase. The phrase
// is normalized before being validated.
func NewWalletFromMnemonic(opts NewWalletFromMnemonicOpts) (*Wallet, error) {
	if err := opts.validate(); err != nil {
		return nil, err
	}
	return &Wallet{NormalizeMnemonic(opts.Mnemonic)}, nil
}

// Mnemonic returns a copy of the wallet's seed phrase words
func (w *Wallet) Mnemonic() []string {
	return append([]string{}, w.mnemonic...)
}

// Fingerprint returns the lookup key of the wallet's seed phrase
func (w *Wallet) Fingerprint() string {
	return Fingerprint(w.mnemonic)
}

// Addresses derives the address of every network in the book's catalog
func (w *Wallet) Addresses(book *addressgen.AddressBook) addressgen.AddressMap {
	return book.DeriveAll(w.mnemonic)
}

// Fingerprint returns the hex encoded hash160 of the space separated words.
// Two phrases have the same fingerprint only if they're made of the same
// words in the same order.
func Fingerprint(mnemonic []string) string {
	return hex.EncodeToString(btcutil.Hash160([]byte(strings.Join(mnemonic, " "))))
}
