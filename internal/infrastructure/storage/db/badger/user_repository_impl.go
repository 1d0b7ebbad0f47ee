package dbbadger

import (
	"context"
	"sync"

	"github.com/dgraph-io/badger/v4"
	"github.com/tdex-network/tdex-wallet/internal/core/domain"
	"github.com/timshannon/badgerhold/v4"
)

type userRepositoryImpl struct {
	store *badgerhold.Store
	// serializes writes so that uniqueness checks and updates don't race.
	lock *sync.Mutex
}

// NewUserRepositoryImpl returns a UserRepository backed by the given store.
func NewUserRepositoryImpl(store *badgerhold.Store) domain.UserRepository {
	return &userRepositoryImpl{store, &sync.Mutex{}}
}

func (r *userRepositoryImpl) AddUser(ctx context.Context, user domain.User) error {
	r.lock.Lock()
	defer r.lock.Unlock()

	query := badgerhold.Where("Username").Eq(user.Username).
		Or(badgerhold.Where("SeedFingerprint").Eq(user.SeedFingerprint))
	count, err := r.store.Count(&domain.User{}, query)
	if err != nil {
		return err
	}
	if count > 0 {
		return domain.ErrUserAlreadyExists
	}

	if err := r.store.Insert(user.ID, &user); err != nil {
		if err == badgerhold.ErrKeyExists {
			return domain.ErrUserAlreadyExists
		}
		return err
	}
	return nil
}

func (r *userRepositoryImpl) GetUserByID(
	_ context.Context, id string,
) (*domain.User, error) {
	var user domain.User
	if err := r.store.Get(id, &user); err != nil {
		if err == badgerhold.ErrNotFound {
			return nil, domain.ErrUserNotFound
		}
		return nil, err
	}
	return &user, nil
}

func (r *userRepositoryImpl) GetUserByUsername(
	_ context.Context, username string,
) (*domain.User, error) {
	return r.findUser(badgerhold.Where("Username").Eq(username))
}

func (r *userRepositoryImpl) GetUserBySeedFingerprint(
	_ context.Context, fingerprint string,
) (*domain.User, error) {
	return r.findUser(badgerhold.Where("SeedFingerprint").Eq(fingerprint))
}

func (r *userRepositoryImpl) GetAllUsers(_ context.Context) ([]domain.User, error) {
	var users []domain.User
	query := &badgerhold.Query{}
	if err := r.store.Find(&users, query.SortBy("CreatedAt")); err != nil {
		return nil, err
	}
	return users, nil
}

func (r *userRepositoryImpl) UpdateUser(
	_ context.Context,
	id string,
	updateFn func(u *domain.User) (*domain.User, error),
) error {
	r.lock.Lock()
	defer r.lock.Unlock()

	return r.store.Badger().Update(func(tx *badger.Txn) error {
		var user domain.User
		if err := r.store.TxGet(tx, id, &user); err != nil {
			if err == badgerhold.ErrNotFound {
				return domain.ErrUserNotFound
			}
			return err
		}
		currentUsername := user.Username
		fingerprint := user.SeedFingerprint

		updatedUser, err := updateFn(&user)
		if err != nil {
			return err
		}

		if updatedUser.Username != currentUsername {
			var users []domain.User
			query := badgerhold.Where("Username").Eq(updatedUser.Username)
			if err := r.store.TxFind(tx, &users, query); err != nil {
				return err
			}
			if len(users) > 0 {
				return domain.ErrUserAlreadyExists
			}
		}
		updatedUser.ID = id
		updatedUser.SeedFingerprint = fingerprint

		return r.store.TxUpdate(tx, id, updatedUser)
	})
}

func (r *userRepositoryImpl) findUser(query *badgerhold.Query) (*domain.User, error) {
	var users []domain.User
	if err := r.store.Find(&users, query); err != nil {
		return nil, err
	}
	if len(users) <= 0 {
		return nil, domain.ErrUserNotFound
	}
	return &users[0], nil
}
