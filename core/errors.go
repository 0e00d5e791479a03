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

import "errors"

// Domain validation errors
var (
	// ErrInvalidProject indicates a Project failed validation.
	ErrInvalidProject = errors.New("invalid project")

	// ErrDuplicateProject indicates a project ID was merged more than once.
	ErrDuplicateProject = errors.New("project already processed")

	// ErrInvalidTag indicates a tag outside the allowed vocabulary.
	ErrInvalidTag = errors.New("tag not in vocabulary")

	// ErrTooManyTags indicates a project carries more than MaxTags tags.
	ErrTooManyTags = errors.New("too many tags")

	// ErrInvalidCatalog indicates a Catalog violates one of its invariants.
	ErrInvalidCatalog = errors.New("invalid catalog")

	// ErrProcessedIDMismatch indicates the processed set and the project IDs diverged.
	ErrProcessedIDMismatch = errors.New("processed ids do not match projects")

	// ErrSupervisorMismatch indicates a supervisor's project list is inconsistent.
	ErrSupervisorMismatch = errors.New("supervisor projects do not match")

	// ErrTagSetMismatch indicates the tag set is not the union of project tags.
	ErrTagSetMismatch = errors.New("tag set does not match project tags")
)
