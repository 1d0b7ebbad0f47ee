package dbbadger

import (
	"fmt"
	"path/filepath"
	"time"

	"github.com/dgraph-io/badger/v4"
	"github.com/dgraph-io/badger/v4/options"
	log "github.com/sirupsen/logrus"
	"github.com/tdex-network/tdex-wallet/internal/core/domain"
	"github.com/tdex-network/tdex-wallet/internal/core/ports"
	"github.com/timshannon/badgerhold/v4"
)

const (
	usersDir        = "users"
	transactionsDir = "transactions"

	valueLogGCInterval     = 30 * time.Minute
	valueLogGCDiscardRatio = 0.5
)

type repoManager struct {
	userStore *badgerhold.Store
	txStore   *badgerhold.Store

	userRepository        domain.UserRepository
	transactionRepository domain.TransactionRepository
}

// NewRepoManager opens (or creates if not exists) the badger stores on disk.
// It expects a base data dir and an optional logger. If the base dir is
// empty, the stores are kept in memory.
func NewRepoManager(baseDbDir string, logger badger.Logger) (ports.RepoManager, error) {
	var userDir, txDir string
	if len(baseDbDir) > 0 {
		userDir = filepath.Join(baseDbDir, usersDir)
		txDir = filepath.Join(baseDbDir, transactionsDir)
	}

	userStore, err := createDb(userDir, logger)
	if err != nil {
		return nil, fmt.Errorf("opening users db: %w", err)
	}

	txStore, err := createDb(txDir, logger)
	if err != nil {
		userStore.Close()
		return nil, fmt.Errorf("opening transactions db: %w", err)
	}

	return &repoManager{
		userStore:             userStore,
		txStore:               txStore,
		userRepository:        NewUserRepositoryImpl(userStore),
		transactionRepository: NewTransactionRepositoryImpl(txStore),
	}, nil
}

func (r *repoManager) UserRepository() domain.UserRepository {
	return r.userRepository
}

func (r *repoManager) TransactionRepository() domain.TransactionRepository {
	return r.transactionRepository
}

func (r *repoManager) Close() {
	if err := r.userStore.Close(); err != nil {
		log.WithError(err).Warn("error while closing users db")
	}
	if err := r.txStore.Close(); err != nil {
		log.WithError(err).Warn("error while closing transactions db")
	}
}

func createDb(dbDir string, logger badger.Logger) (*badgerhold.Store, error) {
	isInMemory := len(dbDir) <= 0

	opts := badger.DefaultOptions(dbDir)
	opts.Logger = logger

	if isInMemory {
		opts.InMemory = true
	} else {
		opts.Compression = options.ZSTD
	}

	db, err := badgerhold.Open(badgerhold.Options{
		Encoder:          badgerhold.DefaultEncode,
		Decoder:          badgerhold.DefaultDecode,
		SequenceBandwith: 100,
		Options:          opts,
	})
	if err != nil {
		return nil, err
	}

	if !isInMemory {
		ticker := time.NewTicker(valueLogGCInterval)

		go func() {
			for range ticker.C {
				if db.Badger().IsClosed() {
					ticker.Stop()
					return
				}
				if err := db.Badger().RunValueLogGC(valueLogGCDiscardRatio); err != nil &&
					err != badger.ErrNoRewrite {
					log.Error(err)
				}
			}
		}()
	}

	return db, nil
}
