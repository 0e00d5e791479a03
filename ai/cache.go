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


package ai

import (
	"context"
	"log/slog"
	"strconv"

	"github.com/nggurbanov/course-project-discovery/core"
)

// CachingClassifier consults a TagCache before delegating to another
// classifier. Cache failures are logged and otherwise ignored.
type CachingClassifier struct {
	inner     TagClassifier
	cache     TagCache
	namespace string
	logger    *slog.Logger
}

var _ TagClassifier = (*CachingClassifier)(nil)

// NewCachingClassifier wraps inner with cache. The namespace is mixed into
// every key so results from different models or vocabularies never collide;
// CacheNamespace derives a suitable value from a Config.
func NewCachingClassifier(inner TagClassifier, cache TagCache, namespace string) (*CachingClassifier, error) {
	if inner == nil {
		return nil, ErrClassifierRequired
	}
	if cache == nil {
		return nil, ErrCacheRequired
	}
	return &CachingClassifier{
		inner:     inner,
		cache:     cache,
		namespace: namespace,
		logger:    slog.Default().With("component", "tag-cache"),
	}, nil
}

// CacheNamespace identifies the model, vocabulary and tag limit that
// produced a cached result.
func CacheNamespace(cfg *Config) string {
	return cfg.Model + "\x00" + strconv.Itoa(cfg.MaxTags) + "\x00" + cfg.Vocabulary.Join("\x1f")
}

// Key returns the cache key for a project's title and description.
func (c *CachingClassifier) Key(title, description string) uint64 {
	return core.IDFromContent(c.namespace + "\x00" + title + "\x00" + description)
}

// Classify returns cached tags when present, otherwise classifies and
// caches non-empty results.
func (c *CachingClassifier) Classify(ctx context.Context, title, description string) ([]string, error) {
	key := c.Key(title, description)

	tags, found, err := c.cache.GetTags(ctx, key)
	if err != nil {
		c.logger.Warn("tag cache lookup failed", "title", title, "err", err)
	} else if found {
		c.logger.Debug("tag cache hit", "title", title, "tags", len(tags))
		return tags, nil
	}

	tags, err = c.inner.Classify(ctx, title, description)
	if err != nil {
		return nil, err
	}

	if len(tags) > 0 {
		if err := c.cache.PutTags(ctx, key, tags); err != nil {
			c.logger.Warn("tag cache store failed", "title", title, "err", err)
		}
	}
	return tags, nil
}
