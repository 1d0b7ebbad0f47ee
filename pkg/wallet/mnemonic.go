package wallet

import (
	"strings"

	"github.com/tyler-smith/go-bip39"
)

const (
	// ShortMnemonicLen is the number of words of a 128-bit entropy mnemonic.
	ShortMnemonicLen = 12
	// LongMnemonicLen is the number of words of a 256-bit entropy mnemonic.
	LongMnemonicLen = 24
)

type NewMnemonicOpts struct {
	EntropySize int
}

func (o NewMnemonicOpts) validate() error {
	if o.EntropySize > 0 {
		if o.EntropySize < 128 || o.EntropySize > 256 || o.EntropySize%32 != 0 {
			return ErrInvalidEntropySize
		}
	}
	if o.EntropySize < 0 {
		return ErrInvalidEntropySize
	}
	return nil
}

// NewMnemonic returns a new mnemonic as a list of words
func NewMnemonic(opts NewMnemonicOpts) ([]string, error) {
	if err := opts.validate(); err != nil {
		return nil, err
	}
	if opts.EntropySize == 0 {
		opts.EntropySize = 128
	}

	return generateMnemonic(opts.EntropySize)
}

// EntropySizeForWords returns the entropy size producing a mnemonic with the
// given number of words.
func EntropySizeForWords(words int) (int, error) {
	switch words {
	case 0, ShortMnemonicLen:
		return 128, nil
	case LongMnemonicLen:
		return 256, nil
	default:
		return 0, ErrInvalidWordCount
	}
}

// NormalizeMnemonic trims, lowercases and splits a user provided phrase into
// its words.
func NormalizeMnemonic(mnemonic string) []string {
	return strings.Fields(strings.ToLower(strings.TrimSpace(mnemonic)))
}

// ValidateMnemonic makes sure the mnemonic is made of 12 or 24 words of the
// BIP39 english wordlist with a valid checksum.
func ValidateMnemonic(mnemonic []string) error {
	if len(mnemonic) != ShortMnemonicLen && len(mnemonic) != LongMnemonicLen {
		return ErrInvalidWordCount
	}
	if !isMnemonicValid(mnemonic) {
		return ErrInvalidMnemonic
	}
	return nil
}

func generateMnemonic(entropySize int) ([]string, error) {
	entropy, err := bip39.NewEntropy(entropySize)
	if err != nil {
		return nil, err
	}
	mnemonic, err := bip39.NewMnemonic(entropy)
	if err != nil {
		return nil, err
	}
	return strings.Split(mnemonic, " "), nil
}

func isMnemonicValid(mnemonic []string) bool {
	m := strings.Join(mnemonic, " ")
	return bip39.IsMnemonicValid(m)
}
