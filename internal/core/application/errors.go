package application

import "errors"

var (
	// ErrNullRepoManager ...
	ErrNullRepoManager = errors.New("repository manager must not be null")
	// ErrUnsupportedDBType ...
	ErrUnsupportedDBType = errors.New("database type not supported")
	// ErrNullPassword ...
	ErrNullPassword = errors.New("password must not be null")
	// ErrNullUsername is returned when restoring a wallet never seen before
	// without a username for the new profile.
	ErrNullUsername = errors.New("username is required for a new wallet profile")
	// ErrNullSeed is returned when registering a user without a seed phrase
	// or a seed token.
	ErrNullSeed = errors.New("seed phrase must not be null")
	// ErrAddressMismatch is returned when the addresses derived from a seed
	// phrase differ from those stored for the same phrase.
	ErrAddressMismatch = errors.New(
		"derived addresses do not match those stored for this seed phrase",
	)
	// ErrSeedNotAvailable is returned when revealing the seed phrase of a
	// profile registered without an encrypted copy of it.
	ErrSeedNotAvailable = errors.New("seed phrase is not stored for this user")
	// ErrNullAddress ...
	ErrNullAddress = errors.New("destination address must not be null")
	// ErrSameAsset ...
	ErrSameAsset = errors.New("cannot swap an asset for itself")
	// ErrPriceUnavailable is returned when a swap rate cannot be computed
	// because one of the prices is unknown.
	ErrPriceUnavailable = errors.New("price not available for the requested asset")
	// ErrInvalidFee ...
	ErrInvalidFee = errors.New("fee must be a non negative amount")
	// ErrInvalidDays is returned when a chart window is negative or wider
	// than MaxHistoryDays.
	ErrInvalidDays = errors.New("days must be between 1 and 365")
	// ErrServiceClosed ...
	ErrServiceClosed = errors.New("service is closed")
	// ErrWebhooksDisabled is returned when managing webhooks on a daemon
	// started without a pubsub service.
	ErrWebhooksDisabled = errors.New("webhooks are not enabled")
)
