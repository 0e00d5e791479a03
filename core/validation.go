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


package core

import (
	"errors"
	"fmt"
	"slices"
)

// ValidateTags checks a project's tags against the allowed vocabulary.
//
// Validation rules:
//   - At most MaxTags tags
//   - Every tag is an exact member of vocabulary
func ValidateTags(tags []string, vocabulary []string) error {
	if len(tags) > MaxTags {
		return fmt.Errorf("%w: %d > %d", ErrTooManyTags, len(tags), MaxTags)
	}
	for _, t := range tags {
		if !slices.Contains(vocabulary, t) {
			return fmt.Errorf("%w: %q", ErrInvalidTag, t)
		}
	}
	return nil
}

// ValidateCatalog checks the catalog invariants:
//   - the processed set equals the set of project IDs, with no duplicate projects
//   - each supervisor lists exactly the projects whose supervisor field is its name
//   - the tag set equals the union of all project tags
//
// All violations found are returned joined.
func ValidateCatalog(c *Catalog) error {
	if c == nil {
		return fmt.Errorf("%w: catalog is nil", ErrInvalidCatalog)
	}
	var errs []error

	seen := make(map[string]struct{}, len(c.projects))
	for _, p := range c.projects {
		if _, dup := seen[p.ID]; dup {
			errs = append(errs, fmt.Errorf("%w: %s", ErrDuplicateProject, p.ID))
		}
		seen[p.ID] = struct{}{}
		if _, ok := c.processed[p.ID]; !ok {
			errs = append(errs, fmt.Errorf("%w: %s missing from processed set", ErrProcessedIDMismatch, p.ID))
		}
	}
	for id := range c.processed {
		if _, ok := seen[id]; !ok {
			errs = append(errs, fmt.Errorf("%w: %s has no project", ErrProcessedIDMismatch, id))
		}
	}

	expected := make(map[string][]string)
	for _, p := range c.projects {
		if IsTrackedSupervisor(p.Supervisor) {
			expected[p.Supervisor] = append(expected[p.Supervisor], p.ID)
		}
	}
	for name, sup := range c.supervisors {
		if !slices.Equal(sup.Projects, expected[name]) {
			errs = append(errs, fmt.Errorf("%w: %q lists %v, expected %v",
				ErrSupervisorMismatch, name, sup.Projects, expected[name]))
		}
	}
	for name := range expected {
		if _, ok := c.supervisors[name]; !ok {
			errs = append(errs, fmt.Errorf("%w: %q has projects but no entry", ErrSupervisorMismatch, name))
		}
	}

	union := make(map[string]struct{})
	for _, p := range c.projects {
		for _, t := range p.Tags {
			union[t] = struct{}{}
		}
	}
	if len(union) != len(c.tags) {
		errs = append(errs, fmt.Errorf("%w: %d observed, %d stored", ErrTagSetMismatch, len(union), len(c.tags)))
	} else {
		for t := range union {
			if _, ok := c.tags[t]; !ok {
				errs = append(errs, fmt.Errorf("%w: %q", ErrTagSetMismatch, t))
			}
		}
	}

	if len(errs) > 0 {
		return fmt.Errorf("%w: %w", ErrInvalidCatalog, errors.Join(errs...))
	}
	return nil
}
