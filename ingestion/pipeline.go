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


package ingestion

import (
	"context"
	"fmt"
	"io"
	"log/slog"

	"github.com/nggurbanov/course-project-discovery/ai"
	"github.com/nggurbanov/course-project-discovery/core"
	"github.com/nggurbanov/course-project-discovery/storage"
	"github.com/panjf2000/ants/v2"
)

const (
	// DefaultBatchSize matches the number of concurrent requests the
	// classification service tolerates.
	DefaultBatchSize = 200

	defaultReportInterval = 10
)

// Pipeline enriches records with tags in sequential batches. Records within
// a batch are classified concurrently; the catalog is merged and saved
// after every batch, so an interrupted run resumes where it stopped.
type Pipeline struct {
	store          storage.CatalogStore
	classifier     ai.TagClassifier
	pool           *ants.Pool
	batchSize      int
	vocabulary     ai.Vocabulary
	progress       io.Writer
	reportInterval int
	logger         *slog.Logger
}

// Option configures a Pipeline.
type Option func(*Pipeline) error

// WithBatchSize sets the number of records classified concurrently before
// each checkpoint. Default is DefaultBatchSize.
func WithBatchSize(size int) Option {
	return func(p *Pipeline) error {
		if size < 1 {
			return fmt.Errorf("%w: %d", ErrInvalidBatchSize, size)
		}
		p.batchSize = size
		return nil
	}
}

// WithLogger sets a custom logger.
// Default is slog.Default().
func WithLogger(logger *slog.Logger) Option {
	return func(p *Pipeline) error {
		if logger == nil {
			logger = slog.Default()
		}
		p.logger = logger
		return nil
	}
}

// WithProgress writes a progress line to w as records are merged.
func WithProgress(w io.Writer) Option {
	return func(p *Pipeline) error {
		p.progress = w
		return nil
	}
}

// WithReportInterval sets how many merged records trigger a progress line.
func WithReportInterval(n int) Option {
	return func(p *Pipeline) error {
		if n < 1 {
			n = 1
		}
		p.reportInterval = n
		return nil
	}
}

// WithVocabulary drops classifier tags that are not members of v.
func WithVocabulary(v ai.Vocabulary) Option {
	return func(p *Pipeline) error {
		p.vocabulary = v
		return nil
	}
}

// NewPipeline creates a new enrichment pipeline.
func NewPipeline(store storage.CatalogStore, classifier ai.TagClassifier, opts ...Option) (*Pipeline, error) {
	if store == nil {
		return nil, ErrStoreRequired
	}
	if classifier == nil {
		return nil, ErrClassifierRequired
	}

	p := &Pipeline{
		store:          store,
		classifier:     classifier,
		batchSize:      DefaultBatchSize,
		reportInterval: defaultReportInterval,
		logger:         slog.Default().With("component", "pipeline"),
	}

	for _, opt := range opts {
		if err := opt(p); err != nil {
			return nil, err
		}
	}

	pool, err := ants.NewPool(p.batchSize)
	if err != nil {
		return nil, err
	}
	p.pool = pool

	return p, nil
}

// RunResult summarizes a pipeline run.
type RunResult struct {
	// Input is the number of records offered to the run.
	Input int
	// Pending is the number of records selected for classification.
	Pending int
	// Processed is the number of records merged during this run.
	Processed int
	// Failed is the number of merged records whose classification failed.
	// They carry no tags and are not retried by later runs.
	Failed int
	// Batches is the number of batches planned; CompletedBatches were saved.
	Batches          int
	CompletedBatches int
	// Metadata describes the catalog as last saved.
	Metadata core.Metadata
}

// Run loads the checkpoint, classifies every pending record and saves the
// catalog after each batch. Cancelling ctx abandons the batch in flight;
// the returned error is then ctx.Err() and the result reflects the last
// saved checkpoint.
func (p *Pipeline) Run(ctx context.Context, records []core.Record) (*RunResult, error) {
	catalog, err := p.store.Load(ctx)
	if err != nil {
		return nil, fmt.Errorf("load checkpoint: %w", err)
	}

	pending := SelectPending(records, catalog.IsProcessed)
	batches := splitBatches(pending, p.batchSize)
	result := &RunResult{
		Input:    len(records),
		Pending:  len(pending),
		Batches:  len(batches),
		Metadata: catalog.Metadata(),
	}

	p.logger.Info("starting enrichment",
		"input", len(records),
		"already_processed", catalog.Len(),
		"pending", len(pending),
		"batches", len(batches),
		"batch_size", p.batchSize)

	var tracker *ProgressTracker
	if p.progress != nil {
		tracker = NewProgressTracker(p.progress, len(pending), p.reportInterval)
		tracker.Start()
	}

	for i, batch := range batches {
		n := i + 1
		if err := ctx.Err(); err != nil {
			p.logger.Warn("enrichment interrupted", "completed_batches", result.CompletedBatches)
			return result, err
		}
		p.logger.Debug("batch state", "batch", n, "records", len(batch), "state", batchPending)

		outcomes := p.dispatch(ctx, batch)
		p.logger.Debug("batch state", "batch", n, "state", batchDispatched)

		if err := ctx.Err(); err != nil {
			p.logger.Warn("enrichment interrupted, discarding batch in flight",
				"batch", n, "completed_batches", result.CompletedBatches)
			return result, err
		}

		failed := 0
		for _, o := range outcomes {
			if o.Err != nil {
				failed++
				p.logger.Warn("classification failed", "id", o.Record.ID, "title", o.Record.TitleRU, "err", o.Err)
			}
			if err := catalog.Merge(core.NewProject(o.Record, o.Tags)); err != nil {
				p.logger.Warn("skipping record", "id", o.Record.ID, "err", err)
				continue
			}
			result.Processed++
		}
		result.Failed += failed
		p.logger.Debug("batch state", "batch", n, "state", batchMerged)

		if err := p.store.Save(ctx, catalog); err != nil {
			return result, fmt.Errorf("%w: batch %d: %w", ErrCheckpointFailed, n, err)
		}
		result.CompletedBatches++
		result.Metadata = catalog.Metadata()

		p.logger.Info("batch complete",
			"batch", n,
			"of", len(batches),
			"records", len(batch),
			"failed", failed,
			"projects", result.Metadata.TotalProjects)
		if tracker != nil {
			tracker.Increment(len(batch))
		}
	}

	if err := p.store.Save(ctx, catalog); err != nil {
		return result, fmt.Errorf("%w: final save: %w", ErrCheckpointFailed, err)
	}
	result.Metadata = catalog.Metadata()
	if tracker != nil {
		tracker.Finish()
	}

	p.logger.Info("enrichment complete",
		"processed", result.Processed,
		"failed", result.Failed,
		"projects", result.Metadata.TotalProjects,
		"supervisors", result.Metadata.TotalSupervisors,
		"tags", result.Metadata.TotalTags)
	return result, nil
}

// Release releases resources including the worker pool.
// The pipeline should not be used after calling Release.
func (p *Pipeline) Release() {
	if p.pool != nil {
		p.pool.Release()
	}
}
