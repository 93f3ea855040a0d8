package domain

import "errors"

// Sentinel errors mapped from the proxy's error responses.
var (
	// ErrNotFound means the phone number has no registration record.
	ErrNotFound = errors.New("phone number not registered")

	// ErrAlreadyRegistered means the number already holds a verified
	// registration.
	ErrAlreadyRegistered = errors.New("phone number already registered")

	// ErrOwnershipMismatch means the supplied ownership secret does
	// not match the one recorded at registration time.
	ErrOwnershipMismatch = errors.New("ownership secret does not match")

	// ErrRateLimited means the proxy rejected the call for exceeding
	// its per-client rate limit.
	ErrRateLimited = errors.New("rate limited by registration proxy")
)
