package wallet_test

import (
	"testing"

	"github.com/stretchr/testify/require"
	"github.com/tdex-network/tdex-wallet/pkg/wallet"
)

func TestEncryptDecrypt(t *testing.T) {
	plaintext := "abandon abandon abandon abandon abandon abandon abandon abandon abandon abandon abandon about"
	passphrase := "supersecurekey"

	cyphertext, err := wallet.Encrypt(wallet.EncryptOpts{
		PlainText:  plaintext,
		Passphrase: passphrase,
	})
	require.NoError(t, err)

	otherCyphertext, err := wallet.Encrypt(wallet.EncryptOpts{
		PlainText:  plaintext,
		Passphrase: passphrase,
	})
	require.NoError(t, err)
	require.NotEqual(t, cyphertext, otherCyphertext)

	revealedtext, err := wallet.Decrypt(wallet.DecryptOpts{
		CypherText: cyphertext,
		Passphrase: passphrase,
	})
	require.NoError(t, err)
	require.Equal(t, plaintext, revealedtext)

	_, err = wallet.Decrypt(wallet.DecryptOpts{
		CypherText: cyphertext,
		Passphrase: "wrongkey",
	})
	require.ErrorIs(t, err, wallet.ErrInvalidPassphrase)
}

func TestFailingEncrypt(t *testing.T) {
	tests := []struct {
		name string
		opts wallet.EncryptOpts
		err  error
	}{
		{
			name: "missing plaintext",
			opts: wallet.EncryptOpts{
				PlainText:  "",
				Passphrase: "supersecurekey",
			},
			err: wallet.ErrNullPlainText,
		},
		{
			name: "missing passphrase",
			opts: wallet.EncryptOpts{
				PlainText:  "super secret message",
				Passphrase: "",
			},
			err: wallet.ErrNullPassphrase,
		},
	}
	for i := range tests {
		tt := tests[i]
		t.Run(tt.name, func(t *testing.T) {
			_, err := wallet.Encrypt(tt.opts)
			require.ErrorIs(t, err, tt.err)
		})
	}
}

func TestFailingDecrypt(t *testing.T) {
	tests := []struct {
		name string
		opts wallet.DecryptOpts
		err  error
	}{
		{
			name: "missing cypher",
			opts: wallet.DecryptOpts{
				CypherText: "",
				Passphrase: "supersecurekey",
			},
			err: wallet.ErrNullCypherText,
		},
		{
			name: "not base64",
			opts: wallet.DecryptOpts{
				CypherText: "supersecretmessage!",
				Passphrase: "supersecurekey",
			},
			err: wallet.ErrInvalidCypherText,
		},
		{
			name: "too short",
			opts: wallet.DecryptOpts{
				CypherText: "c2hvcnQ=",
				Passphrase: "supersecurekey",
			},
			err: wallet.ErrInvalidCypherText,
		},
		{
			name: "missing passphrase",
			opts: wallet.DecryptOpts{
				CypherText: "fUzjTyxipK6fGrGXTLYFCb6oFHEOtqfdJTvXM5XMBx+YbK1EgFv+1PqkmZ2A3skaIyqQ0jJjA4gzKGw/dxtK0rRKL0ud8bq8BPImQvXAaYk=",
				Passphrase: "",
			},
			err: wallet.ErrNullPassphrase,
		},
	}
	for i := range tests {
		tt := tests[i]
		t.Run(tt.name, func(t *testing.T) {
			_, err := wallet.Decrypt(tt.opts)
			require.ErrorIs(t, err, tt.err)
		})
	}
}
