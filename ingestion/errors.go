package ingestion

import "errors"

var (
	// ErrStoreRequired is returned when a catalog store is not provided.
	ErrStoreRequired = errors.New("catalog store required")

	// ErrClassifierRequired is returned when a tag classifier is not provided.
	ErrClassifierRequired = errors.New("tag classifier required")

	// ErrInvalidBatchSize is returned when the batch size is not positive.
	ErrInvalidBatchSize = errors.New("batch size must be positive")

	// ErrCheckpointFailed is returned when a batch could not be saved.
	// The previous checkpoint is still intact.
	ErrCheckpointFailed = errors.New("checkpoint save failed")

	// ErrClassifierPanic is recorded on an outcome whose classification panicked.
	ErrClassifierPanic = errors.New("classifier panicked")
)
