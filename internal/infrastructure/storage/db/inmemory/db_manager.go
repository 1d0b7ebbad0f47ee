package inmemory

import (
	"github.com/tdex-network/tdex-wallet/internal/core/domain"
	"github.com/tdex-network/tdex-wallet/internal/core/ports"
)

type repoManager struct {
	userRepository        domain.UserRepository
	transactionRepository domain.TransactionRepository
}

// NewRepoManager returns a RepoManager keeping everything in memory.
func NewRepoManager() ports.RepoManager {
	return &repoManager{
		userRepository:        NewUserRepositoryImpl(),
		transactionRepository: NewTransactionRepositoryImpl(),
	}
}

func (r *repoManager) UserRepository() domain.UserRepository {
	return r.userRepository
}

func (r *repoManager) TransactionRepository() domain.TransactionRepository {
	return r.transactionRepository
}

func (r *repoManager) Close() {}
