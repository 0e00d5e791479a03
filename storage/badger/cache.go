// Copyright 2025 Poiesic Systems
//
// Licensed under the Apache License, Version 2.0 (the "License");
// you may not use this file except in compliance with the License.
// You may obtain a copy of the License at
//
//     http://www.apache.org/licenses/LICENSE-2.0
//
// Unless required by applicable law or agreed to in writing, software
// distributed under the License is distributed on an "AS IS" BASIS,
// WITHOUT WARRANTIES OR CONDITIONS OF ANY KIND, either express or implied.
// See the License for the specific language governing permissions and
// limitations under the License.


package badger

import (
	"context"
	"errors"
	"log/slog"

	"github.com/dgraph-io/badger/v4"
	"github.com/nggurbanov/course-project-discovery/storage"
)

// TagRepository implements storage.TagRepository for BadgerDB.
type TagRepository struct {
	backend    *Backend
	ownBackend bool
	logger     *slog.Logger
}

var _ storage.TagRepository = (*TagRepository)(nil)

// newTagRepository is an internal constructor that returns the concrete type.
func newTagRepository(backend *Backend, ownBackend bool) *TagRepository {
	return &TagRepository{
		backend:    backend,
		ownBackend: ownBackend,
		logger:     slog.Default().With("component", "badger-tag-cache"),
	}
}

// NewTagRepository opens a classification cache in dir.
// The repository owns the database and closes it on Close.
func NewTagRepository(dir string) (storage.TagRepository, error) {
	backend, err := OpenBackend(dir, false)
	if err != nil {
		return nil, err
	}
	return newTagRepository(backend, true), nil
}

// GetTags returns the cached tags for key and whether they were found.
func (r *TagRepository) GetTags(ctx context.Context, key uint64) ([]string, bool, error) {
	if r.backend.IsClosed() {
		return nil, false, storage.ErrStorageClosed
	}

	var tags []string
	found := false
	err := r.backend.WithTx(func(tx *badger.Txn) error {
		item, err := tx.Get(makeTagCacheKey(key))
		if err != nil {
			if errors.Is(err, badger.ErrKeyNotFound) {
				return nil
			}
			return err
		}
		return item.Value(func(val []byte) error {
			var unmarshalErr error
			tags, unmarshalErr = storage.UnmarshalTags(val)
			found = unmarshalErr == nil
			return unmarshalErr
		})
	}, false)
	if err != nil {
		return nil, false, err
	}
	return tags, found, nil
}

// PutTags stores tags for key, replacing any previous value.
func (r *TagRepository) PutTags(ctx context.Context, key uint64, tags []string) error {
	if r.backend.IsClosed() {
		return storage.ErrStorageClosed
	}

	return r.backend.WithTx(func(tx *badger.Txn) error {
		if err := tx.Set(makeTagCacheKey(key), storage.MarshalTags(tags)); err != nil {
			return err
		}
		return tx.Commit()
	}, true)
}

// Count returns the number of cached classifications.
func (r *TagRepository) Count(ctx context.Context) (int, error) {
	if r.backend.IsClosed() {
		return 0, storage.ErrStorageClosed
	}

	count := 0
	err := r.backend.WithTx(func(tx *badger.Txn) error {
		opts := badger.DefaultIteratorOptions
		opts.PrefetchValues = false
		opts.Prefix = []byte(tagCachePrefix)
		iter := tx.NewIterator(opts)
		defer iter.Close()

		for iter.Rewind(); iter.Valid(); iter.Next() {
			if err := ctx.Err(); err != nil {
				return err
			}
			count++
		}
		return nil
	}, false)
	return count, err
}

// Close releases the database if the repository opened it.
func (r *TagRepository) Close() error {
	if !r.ownBackend || r.backend.IsClosed() {
		return nil
	}
	r.logger.Debug("closing tag cache")
	return r.backend.Close()
}
