package domain

import "context"

// UserRepository is the abstraction for any kind of database intended to
// persist Users.
type UserRepository interface {
	// AddUser stores a new user. ErrUserAlreadyExists is returned if either
	// the username or the seed fingerprint is already taken.
	AddUser(ctx context.Context, user User) error
	// GetUserByID returns the user with the given id or ErrUserNotFound.
	GetUserByID(ctx context.Context, id string) (*User, error)
	// GetUserByUsername returns the user with the given username or
	// ErrUserNotFound.
	GetUserByUsername(ctx context.Context, username string) (*User, error)
	// GetUserBySeedFingerprint returns the user owning the seed phrase with
	// the given fingerprint or ErrUserNotFound.
	GetUserBySeedFingerprint(ctx context.Context, fingerprint string) (*User, error)
	// GetAllUsers returns all the stored users.
	GetAllUsers(ctx context.Context) ([]User, error)
	// UpdateUser allows to commit multiple changes to the same user in a
	// transactional way.
	UpdateUser(
		ctx context.Context,
		id string,
		updateFn func(u *User) (*User, error),
	) error
}
