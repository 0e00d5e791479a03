package storage

import (
	"context"

	"github.com/nggurbanov/course-project-discovery/core"
)

// CatalogStore persists the enrichment checkpoint.
// The catalog it returns is always in canonical form regardless of how
// it was encoded on disk.
type CatalogStore interface {
	// Load reads the last checkpoint. A missing or unreadable checkpoint
	// yields an empty catalog rather than an error.
	Load(ctx context.Context) (*core.Catalog, error)

	// Save replaces the checkpoint with the catalog's current state.
	// A failed save must leave the previous checkpoint intact.
	Save(ctx context.Context, catalog *core.Catalog) error

	// Path returns the location of the checkpoint.
	Path() string
}

// TagRepository caches classification results keyed by a content hash.
type TagRepository interface {
	// GetTags returns the cached tags for key and whether they were found.
	GetTags(ctx context.Context, key uint64) ([]string, bool, error)

	// PutTags stores tags for key, replacing any previous value.
	PutTags(ctx context.Context, key uint64, tags []string) error

	// Count returns the number of cached entries.
	Count(ctx context.Context) (int, error)

	// Close releases resources held by the repository.
	Close() error
}
