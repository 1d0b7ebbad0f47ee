package inmemory

import (
	"context"
	"sort"
	"sync"

	"github.com/shopspring/decimal"
	"github.com/tdex-network/tdex-wallet/internal/core/domain"
)

type userInmemoryStore struct {
	users              map[string]domain.User
	usersByUsername    map[string]string
	usersByFingerprint map[string]string
	locker             *sync.RWMutex
}

type userRepositoryImpl struct {
	store *userInmemoryStore
}

// NewUserRepositoryImpl returns a new empty in-memory UserRepository.
func NewUserRepositoryImpl() domain.UserRepository {
	return &userRepositoryImpl{&userInmemoryStore{
		users:              make(map[string]domain.User),
		usersByUsername:    make(map[string]string),
		usersByFingerprint: make(map[string]string),
		locker:             &sync.RWMutex{},
	}}
}

func (r *userRepositoryImpl) AddUser(_ context.Context, user domain.User) error {
	r.store.locker.Lock()
	defer r.store.locker.Unlock()

	if _, ok := r.store.users[user.ID]; ok {
		return domain.ErrUserAlreadyExists
	}
	if _, ok := r.store.usersByUsername[user.Username]; ok {
		return domain.ErrUserAlreadyExists
	}
	if _, ok := r.store.usersByFingerprint[user.SeedFingerprint]; ok {
		return domain.ErrUserAlreadyExists
	}

	r.store.users[user.ID] = copyUser(user)
	r.store.usersByUsername[user.Username] = user.ID
	r.store.usersByFingerprint[user.SeedFingerprint] = user.ID
	return nil
}

func (r *userRepositoryImpl) GetUserByID(
	_ context.Context, id string,
) (*domain.User, error) {
	r.store.locker.RLock()
	defer r.store.locker.RUnlock()

	return r.getUser(id)
}

func (r *userRepositoryImpl) GetUserByUsername(
	_ context.Context, username string,
) (*domain.User, error) {
	r.store.locker.RLock()
	defer r.store.locker.RUnlock()

	id, ok := r.store.usersByUsername[username]
	if !ok {
		return nil, domain.ErrUserNotFound
	}
	return r.getUser(id)
}

func (r *userRepositoryImpl) GetUserBySeedFingerprint(
	_ context.Context, fingerprint string,
) (*domain.User, error) {
	r.store.locker.RLock()
	defer r.store.locker.RUnlock()

	id, ok := r.store.usersByFingerprint[fingerprint]
	if !ok {
		return nil, domain.ErrUserNotFound
	}
	return r.getUser(id)
}

func (r *userRepositoryImpl) GetAllUsers(_ context.Context) ([]domain.User, error) {
	r.store.locker.RLock()
	defer r.store.locker.RUnlock()

	users := make([]domain.User, 0, len(r.store.users))
	for _, u := range r.store.users {
		users = append(users, copyUser(u))
	}
	sort.SliceStable(users, func(i, j int) bool {
		return users[i].CreatedAt < users[j].CreatedAt
	})
	return users, nil
}

func (r *userRepositoryImpl) UpdateUser(
	_ context.Context,
	id string,
	updateFn func(u *domain.User) (*domain.User, error),
) error {
	r.store.locker.Lock()
	defer r.store.locker.Unlock()

	user, err := r.getUser(id)
	if err != nil {
		return err
	}

	updatedUser, err := updateFn(user)
	if err != nil {
		return err
	}

	current := r.store.users[id]
	if updatedUser.Username != current.Username {
		if _, ok := r.store.usersByUsername[updatedUser.Username]; ok {
			return domain.ErrUserAlreadyExists
		}
		delete(r.store.usersByUsername, current.Username)
		r.store.usersByUsername[updatedUser.Username] = id
	}
	updatedUser.ID = id
	updatedUser.SeedFingerprint = current.SeedFingerprint

	r.store.users[id] = copyUser(*updatedUser)
	return nil
}

func (r *userRepositoryImpl) getUser(id string) (*domain.User, error) {
	user, ok := r.store.users[id]
	if !ok {
		return nil, domain.ErrUserNotFound
	}
	u := copyUser(user)
	return &u, nil
}

func copyUser(u domain.User) domain.User {
	cp := u
	cp.Addresses = u.Addresses.Copy()
	cp.Balances = make(map[string]decimal.Decimal, len(u.Balances))
	for k, v := range u.Balances {
		cp.Balances[k] = v
	}
	return cp
}
