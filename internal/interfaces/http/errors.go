package httpinterface

import (
	"errors"
	"net/http"

	"github.com/tdex-network/tdex-wallet/internal/core/application"
	"github.com/tdex-network/tdex-wallet/internal/core/domain"
	"github.com/tdex-network/tdex-wallet/internal/infrastructure/pubsub"
	"github.com/tdex-network/tdex-wallet/pkg/wallet"
)

const (
	msgInvalidAction  = "Invalid action"
	msgUserNotFound   = "User not found"
	msgInternalError  = "internal error"
	msgInvalidRequest = "invalid request body"
)

var (
	// ErrMalformedAmount ...
	ErrMalformedAmount = errors.New("amount must be a decimal string")
	// ErrNullTransaction ...
	ErrNullTransaction = errors.New("transaction must not be null")
	// ErrNullSymbol ...
	ErrNullSymbol = errors.New("symbol must not be null")
	// ErrNullUserID ...
	ErrNullUserID = errors.New("user_id query param must not be null")
	// ErrNullWebhookID ...
	ErrNullWebhookID = errors.New("webhook_id must not be null")
	// ErrInvalidOperatorToken is returned for operator requests without
	// the configured bearer token.
	ErrInvalidOperatorToken = errors.New("missing or invalid operator token")

	errInvalidAction = errors.New(msgInvalidAction)
)

var (
	notFoundErrors = []error{
		domain.ErrUserNotFound,
		domain.ErrTxNotFound,
		pubsub.ErrSubscriptionNotFound,
	}
	conflictErrors = []error{
		domain.ErrUserAlreadyExists,
		application.ErrAddressMismatch,
	}
	unauthorizedErrors = []error{
		wallet.ErrInvalidPassphrase,
		ErrInvalidOperatorToken,
	}
	badRequestErrors = []error{
		errInvalidAction,
		ErrMalformedAmount,
		ErrNullTransaction,
		ErrNullSymbol,
		ErrNullUserID,
		domain.ErrInvalidUsername,
		domain.ErrNullAddresses,
		domain.ErrNullSeedFingerprint,
		domain.ErrUnknownAsset,
		domain.ErrInvalidAmount,
		domain.ErrNegativeBalance,
		domain.ErrInsufficientFunds,
		domain.ErrTxNotPending,
		domain.ErrInvalidTxType,
		domain.ErrInvalidTxStatus,
		domain.ErrNullTxID,
		domain.ErrNullUserID,
		application.ErrNullPassword,
		application.ErrNullUsername,
		application.ErrNullSeed,
		application.ErrSeedNotAvailable,
		application.ErrNullAddress,
		application.ErrSameAsset,
		application.ErrPriceUnavailable,
		application.ErrInvalidDays,
		wallet.ErrNullMnemonic,
		wallet.ErrNullPassphrase,
		wallet.ErrInvalidEntropySize,
		wallet.ErrInvalidWordCount,
		wallet.ErrInvalidMnemonic,
		wallet.ErrInvalidCypherText,
		pubsub.ErrUnknownTopic,
		pubsub.ErrInvalidEndpoint,
		ErrNullWebhookID,
	}
)

// httpError returns the status code and the message of the error response
// for err. Errors not known to be caused by the client are not disclosed.
func httpError(err error) (int, string) {
	if errors.Is(err, domain.ErrUserNotFound) {
		return http.StatusNotFound, msgUserNotFound
	}
	if errors.Is(err, application.ErrServiceClosed) ||
		errors.Is(err, application.ErrWebhooksDisabled) {
		return http.StatusServiceUnavailable, err.Error()
	}

	for _, e := range notFoundErrors {
		if errors.Is(err, e) {
			return http.StatusNotFound, err.Error()
		}
	}
	for _, e := range conflictErrors {
		if errors.Is(err, e) {
			return http.StatusConflict, err.Error()
		}
	}
	for _, e := range unauthorizedErrors {
		if errors.Is(err, e) {
			return http.StatusUnauthorized, err.Error()
		}
	}
	for _, e := range badRequestErrors {
		if errors.Is(err, e) {
			return http.StatusBadRequest, err.Error()
		}
	}
	return http.StatusInternalServerError, msgInternalError
}
