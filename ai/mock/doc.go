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


// Package mock provides mock implementations of AI interfaces for testing.
//
// These mocks allow testing business logic without requiring external AI
// services. They provide deterministic behavior and allow customization
// through function fields.
//
// # Usage
//
//	mockClassifier := mock.NewMockClassifier()
//
//	// Customize behavior
//	mockClassifier.ClassifyFunc = func(ctx context.Context, title, description string) ([]string, error) {
//	    return []string{"NLP"}, nil
//	}
//
//	// Check call counts
//	count := mockClassifier.CallCount()
//
// # Default Behavior
//
// The mock implementations provide sensible defaults:
//
//   - MockClassifier: Returns vocabulary tags mentioned in the title or description
//   - MockTagCache: Stores tags in memory
package mock
