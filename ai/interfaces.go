package ai

import "context"

// TagClassifier assigns thematic tags to a project.
// Implementations must be thread-safe for concurrent use.
type TagClassifier interface {
	// Classify returns at most the configured number of tags for a project,
	// each an exact member of the vocabulary. An empty slice means the
	// service suggested nothing usable.
	// Returns an error if the service call fails; rate limiting is retried
	// internally and only surfaces as ErrRateLimited once retries run out.
	Classify(ctx context.Context, title, description string) ([]string, error)
}

// TagCache stores classification results keyed by a content hash.
// Implementations must be thread-safe for concurrent use.
type TagCache interface {
	// GetTags returns the cached tags for key and whether they were found.
	GetTags(ctx context.Context, key uint64) ([]string, bool, error)

	// PutTags stores tags for key, replacing any previous value.
	PutTags(ctx context.Context, key uint64, tags []string) error
}
