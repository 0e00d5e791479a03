package ai

import "errors"

var (
	// ErrAPIKeyRequired is returned when no service credential is configured.
	ErrAPIKeyRequired = errors.New("API key required")

	// ErrRateLimited is returned when a call is still rate limited after the
	// configured number of attempts.
	ErrRateLimited = errors.New("rate limited")

	// ErrInvalidMaxAttempts is returned when maxAttempts is <= 0
	ErrInvalidMaxAttempts = errors.New("maxAttempts must be greater than 0")

	// ErrClassifierRequired is returned when a classifier is not provided.
	ErrClassifierRequired = errors.New("tag classifier required")

	// ErrCacheRequired is returned when a tag cache is not provided.
	ErrCacheRequired = errors.New("tag cache required")
)
