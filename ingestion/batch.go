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
	"sync"

	"github.com/nggurbanov/course-project-discovery/core"
)

// Outcome is the result of classifying one record. A failed
// classification has empty Tags and a non-nil Err.
type Outcome struct {
	Record core.Record
	Tags   []string
	Err    error
}

// batchState tracks a batch through a run.
type batchState int

const (
	batchPending batchState = iota
	batchDispatched
	batchMerged
)

func (s batchState) String() string {
	switch s {
	case batchPending:
		return "PENDING"
	case batchDispatched:
		return "DISPATCHED"
	case batchMerged:
		return "MERGED"
	default:
		return fmt.Sprintf("batchState(%d)", int(s))
	}
}

// dispatch classifies every record of the batch concurrently and waits for
// all of them. outcomes[i] always belongs to batch[i]; a failing record
// never affects its siblings.
func (p *Pipeline) dispatch(ctx context.Context, batch []core.Record) []Outcome {
	outcomes := make([]Outcome, len(batch))
	var wg sync.WaitGroup

	for i, record := range batch {
		wg.Add(1)
		err := p.pool.Submit(func() {
			defer wg.Done()
			outcomes[i] = p.classify(ctx, record)
		})
		if err != nil {
			wg.Done()
			outcomes[i] = Outcome{Record: record, Tags: []string{}, Err: fmt.Errorf("submit task: %w", err)}
		}
	}

	wg.Wait()
	return outcomes
}

// classify runs the classifier for one record and converts any failure,
// including a panic, into an empty-tag outcome.
func (p *Pipeline) classify(ctx context.Context, record core.Record) (out Outcome) {
	out.Record = record
	defer func() {
		if r := recover(); r != nil {
			out.Tags = []string{}
			out.Err = fmt.Errorf("%w: %v", ErrClassifierPanic, r)
		}
	}()

	tags, err := p.classifier.Classify(ctx, record.TitleRU, record.Annotation)
	if err != nil {
		out.Tags = []string{}
		out.Err = err
		return out
	}
	out.Tags = p.normalizeTags(tags)
	return out
}

// normalizeTags enforces the tag limit and, when a vocabulary is
// configured, vocabulary membership.
func (p *Pipeline) normalizeTags(tags []string) []string {
	if p.vocabulary.Len() > 0 {
		return p.vocabulary.Filter(tags, core.MaxTags)
	}
	out := make([]string, 0, min(len(tags), core.MaxTags))
	seen := make(map[string]struct{}, len(tags))
	for _, t := range tags {
		if len(out) == core.MaxTags {
			break
		}
		if _, dup := seen[t]; dup || t == "" {
			continue
		}
		seen[t] = struct{}{}
		out = append(out, t)
	}
	return out
}
