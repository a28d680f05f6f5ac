// Package common defines shared constants and sentinel errors used across
// the Paperback storage and identity layers. Callers should use errors.Is to
// match these values.
package common

import "errors"

var (
	// Repository-level errors.
	ErrNotFound = errors.New("not found")

	// Storage boundary errors: the underlying key-value store rejected a
	// read or write.
	ErrStorage = errors.New("storage failure")

	// Registration errors. Both are DuplicateIdentity flavors; they stay
	// distinct so the UI can tell the user which field is taken.
	ErrEmailAlreadyExists    = errors.New("email already registered")
	ErrUsernameAlreadyExists = errors.New("username already registered")

	// Login failure. Unknown username and wrong password intentionally
	// collapse into this single value so callers cannot enumerate accounts.
	ErrInvalidCredentials = errors.New("invalid credentials")

	// Email verification errors.
	ErrInvalidOrExpiredToken = errors.New("invalid or expired token")

	// Ownership check with no current identity.
	ErrUnauthenticated = errors.New("not authenticated")

	// Order was persisted but the follow-up cart clear failed. Recoverable:
	// the order is valid, the cart just needs another clear.
	ErrCartNotCleared = errors.New("order saved but cart not cleared")
)
