package db_test

import (
	"crypto/rand"
	"encoding/hex"
	"fmt"
	"testing"

	"github.com/shopspring/decimal"
	"github.com/stretchr/testify/require"
	"github.com/tdex-network/tdex-wallet/internal/core/domain"
	"github.com/tdex-network/tdex-wallet/internal/core/ports"
	dbbadger "github.com/tdex-network/tdex-wallet/internal/infrastructure/storage/db/badger"
	"github.com/tdex-network/tdex-wallet/internal/infrastructure/storage/db/inmemory"
	"github.com/tdex-network/tdex-wallet/pkg/addressgen"
)

type repoManager struct {
	Name    string
	Manager ports.RepoManager
}

func createRepoManagers(t *testing.T) []repoManager {
	badgerInMemory, err := dbbadger.NewRepoManager("", nil)
	require.NoError(t, err)
	badgerOnDisk, err := dbbadger.NewRepoManager(t.TempDir(), nil)
	require.NoError(t, err)

	managers := []repoManager{
		{"inmemory", inmemory.NewRepoManager()},
		{"badger_inmemory", badgerInMemory},
		{"badger", badgerOnDisk},
	}
	t.Cleanup(func() {
		for _, m := range managers {
			m.Manager.Close()
		}
	})
	return managers
}

func makeRandomUser(t *testing.T) domain.User {
	seed := []string{randomHex(4), randomHex(4), randomHex(4)}
	catalog := []string{"Bitcoin", "Ethereum", "TRC20"}
	user, err := domain.NewUser(
		fmt.Sprintf("user_%s", randomHex(6)),
		randomHex(20),
		randomHex(40),
		addressgen.DeriveAll(seed, catalog),
	)
	require.NoError(t, err)
	return *user
}

func makeRandomTransaction(t *testing.T, userID string) domain.Transaction {
	tx, err := domain.NewTransaction(
		userID, domain.TxTypeSend, "2",
		decimal.RequireFromString("0.01"), decimal.RequireFromString("0.001"),
		"bc1q"+randomHex(19),
	)
	require.NoError(t, err)
	return *tx
}

func randomHex(len int) string {
	return hex.EncodeToString(randomBytes(len))
}

func randomBytes(len int) []byte {
	b := make([]byte, len)
	//nolint
	rand.Read(b)
	return b
}
