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


// Package ai provides abstractions for the tag classification service.
//
// This package defines the TagClassifier interface used by the enrichment
// pipeline, the injected tag Vocabulary, and the configuration shared by
// classifier implementations. Business logic depends on these abstractions
// rather than on a concrete service client.
//
// # Implementation Packages
//
//   - ai/openai: Production implementation using OpenAI-compatible chat APIs
//   - ai/mock: Test doubles for unit testing without external dependencies
//
// # Validation
//
// Tags returned by any classifier pass through ParseTags or
// Vocabulary.Filter: tokens that are not exact vocabulary members are
// dropped and at most Config.MaxTags tags are kept.
//
// # Rate Limiting
//
// Rate-limited calls are retried with RetryWithBackoff using
// Config.RateLimitAttempts and Config.RateLimitDelay. Other failures are
// returned to the caller unchanged.
//
// # Usage Example
//
//	cfg := ai.NewConfig(ai.WithAPIKey(os.Getenv("DEEPINFRA_API_KEY")))
//	classifier, err := openai.NewClassifier(cfg)
//	if err != nil {
//	    log.Fatal(err)
//	}
//	tags, err := classifier.Classify(ctx, "Чат-бот для поддержки", "Аннотация проекта")
package ai
