package session

import "errors"

var (
	// ErrLoginOnServer wraps a rejected credential exchange. The caller is
	// responsible for user-visible messaging.
	ErrLoginOnServer = errors.New("error login on server")

	// ErrRegisterOnServer wraps a failed account creation.
	ErrRegisterOnServer = errors.New("error register on server")

	// ErrEmptyUserPayload reports that the current-user endpoint answered
	// without a usable identity even after a cache-busting retry.
	ErrEmptyUserPayload = errors.New("current user payload empty")
)
