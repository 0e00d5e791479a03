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


package discovery

import (
	"context"
	"errors"
	"log/slog"

	"github.com/nggurbanov/course-project-discovery/ai"
	"github.com/nggurbanov/course-project-discovery/ai/openai"
	"github.com/nggurbanov/course-project-discovery/core"
	"github.com/nggurbanov/course-project-discovery/ingestion"
	"github.com/nggurbanov/course-project-discovery/storage"
	"github.com/nggurbanov/course-project-discovery/storage/badger"
	"github.com/nggurbanov/course-project-discovery/storage/jsonfile"
)

// Enricher owns the resources of an enrichment run: the locked checkpoint,
// the classifier and the optional classification cache.
type Enricher struct {
	store      *jsonfile.Store
	cache      storage.TagRepository
	classifier ai.TagClassifier
	vocabulary ai.Vocabulary
	logger     *slog.Logger
}

// EnricherOption configures an Enricher.
type EnricherOption func(*enricherOptions)

type enricherOptions struct {
	aiConfig   *ai.Config
	classifier ai.TagClassifier
	cacheDir   string
	cache      storage.TagRepository
}

// WithAIConfig sets the classifier configuration.
// Default is ai.DefaultConfig(), which has no API key.
func WithAIConfig(cfg *ai.Config) EnricherOption {
	return func(o *enricherOptions) {
		o.aiConfig = cfg
	}
}

// WithClassifier replaces the OpenAI-compatible classifier.
func WithClassifier(c ai.TagClassifier) EnricherOption {
	return func(o *enricherOptions) {
		o.classifier = c
	}
}

// WithCacheDir enables the BadgerDB classification cache in dir.
func WithCacheDir(dir string) EnricherOption {
	return func(o *enricherOptions) {
		o.cacheDir = dir
	}
}

// WithTagRepository enables the classification cache on repo.
// The Enricher closes repo on Close.
func WithTagRepository(repo storage.TagRepository) EnricherOption {
	return func(o *enricherOptions) {
		o.cache = repo
	}
}

// NewEnricher locks the checkpoint at outputPath and prepares the
// classifier. It fails with storage.ErrLocked if another run holds the
// checkpoint.
func NewEnricher(outputPath string, opts ...EnricherOption) (*Enricher, error) {
	options := &enricherOptions{
		aiConfig: ai.DefaultConfig(),
	}
	for _, opt := range opts {
		opt(options)
	}

	store := jsonfile.NewStore(outputPath)
	if err := store.Lock(); err != nil {
		return nil, err
	}

	e := &Enricher{
		store:      store,
		vocabulary: options.aiConfig.Vocabulary,
		logger:     slog.Default().With("component", "enricher"),
	}

	classifier := options.classifier
	if classifier == nil {
		var err error
		classifier, err = openai.NewClassifier(options.aiConfig)
		if err != nil {
			e.Close()
			return nil, err
		}
	}

	cache := options.cache
	if cache == nil && options.cacheDir != "" {
		var err error
		cache, err = badger.NewTagRepository(options.cacheDir)
		if err != nil {
			e.Close()
			return nil, err
		}
	}
	if cache != nil {
		e.cache = cache
		cached, err := ai.NewCachingClassifier(classifier, cache, ai.CacheNamespace(options.aiConfig))
		if err != nil {
			e.Close()
			return nil, err
		}
		classifier = cached
	}
	e.classifier = classifier

	return e, nil
}

// Close releases the cache and the checkpoint lock.
func (e *Enricher) Close() error {
	var errs []error
	if e.cache != nil {
		if err := e.cache.Close(); err != nil {
			e.logger.Error("error closing tag cache", "err", err)
			errs = append(errs, err)
		}
	}
	if err := e.store.Unlock(); err != nil {
		e.logger.Error("error releasing checkpoint lock", "err", err)
		errs = append(errs, err)
	}
	return errors.Join(errs...)
}

// Store returns the checkpoint store.
func (e *Enricher) Store() storage.CatalogStore {
	return e.store
}

// Classifier returns the classifier used by pipelines, including the cache
// layer when one is configured.
func (e *Enricher) Classifier() ai.TagClassifier {
	return e.classifier
}

// NewPipeline creates a pipeline over the checkpoint and classifier.
// Tags outside the configured vocabulary are always dropped.
func (e *Enricher) NewPipeline(opts ...ingestion.Option) (*ingestion.Pipeline, error) {
	opts = append([]ingestion.Option{ingestion.WithVocabulary(e.vocabulary)}, opts...)
	return ingestion.NewPipeline(e.store, e.classifier, opts...)
}

// Enrich runs a pipeline over records and releases it afterwards.
func (e *Enricher) Enrich(ctx context.Context, records []core.Record, opts ...ingestion.Option) (*ingestion.RunResult, error) {
	pipeline, err := e.NewPipeline(opts...)
	if err != nil {
		return nil, err
	}
	defer pipeline.Release()
	return pipeline.Run(ctx, records)
}
