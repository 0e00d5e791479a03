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


// Package storage provides the storage abstraction layer for the enrichment
// pipeline.
//
// This package defines the interfaces that decouple persistence from the
// pipeline: CatalogStore holds the resumable checkpoint and TagRepository
// caches classification results between runs.
//
// # Constructor Return Type Pattern
//
// Public constructors in implementation packages return these interfaces:
//
//	store := jsonfile.NewStore("projects.json")  // returns storage.CatalogStore
//	cache, err := badger.NewTagRepository(dir)   // returns storage.TagRepository
//
// Internal constructors (newStore, newTagRepository, etc.) may return
// concrete types since they're only used within the implementation package.
//
// # Implementations
//
//   - jsonfile: The checkpoint as a single JSON document, written atomically
//   - badger: Classification cache on BadgerDB
//
// # Serialization
//
// Cached tag lists are encoded with mus-go (MarshalTags, UnmarshalTags).
//
// # Thread Safety
//
// TagRepository implementations must be safe for concurrent use.
// CatalogStore is driven by a single pipeline and needs no internal
// locking; jsonfile additionally offers an advisory file lock so two
// processes never write the same checkpoint.
package storage
