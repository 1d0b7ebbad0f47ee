package ports

import "github.com/tdex-network/tdex-wallet/internal/core/domain"

// RepoManager gives access to the repositories of every domain entity.
type RepoManager interface {
	UserRepository() domain.UserRepository
	TransactionRepository() domain.TransactionRepository

	Close()
}
