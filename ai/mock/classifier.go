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


package mock

import (
	"context"
	"strings"
	"sync"

	"github.com/nggurbanov/course-project-discovery/ai"
	"github.com/nggurbanov/course-project-discovery/core"
)

// MockClassifier is a mock implementation of ai.TagClassifier for testing.
// It is safe for concurrent use.
type MockClassifier struct {
	// ClassifyFunc allows customizing the behavior of Classify.
	// If nil, uses default behavior.
	ClassifyFunc func(ctx context.Context, title, description string) ([]string, error)

	// Vocabulary is used by the default behavior.
	Vocabulary ai.Vocabulary

	mu     sync.Mutex
	titles []string
}

// NewMockClassifier creates a mock classifier with default behavior over
// the built-in vocabulary.
func NewMockClassifier() *MockClassifier {
	return &MockClassifier{Vocabulary: ai.DefaultVocabulary()}
}

// Classify returns mock tags for a project.
// Default behavior: every vocabulary tag that occurs, case-insensitively,
// in the title or description, up to core.MaxTags.
func (m *MockClassifier) Classify(ctx context.Context, title, description string) ([]string, error) {
	m.mu.Lock()
	m.titles = append(m.titles, title)
	m.mu.Unlock()

	if m.ClassifyFunc != nil {
		return m.ClassifyFunc(ctx, title, description)
	}

	text := strings.ToLower(title + " " + description)
	tags := make([]string, 0, core.MaxTags)
	for _, tag := range m.Vocabulary.Strings() {
		if len(tags) == core.MaxTags {
			break
		}
		if strings.Contains(text, strings.ToLower(tag)) {
			tags = append(tags, tag)
		}
	}
	return tags, nil
}

// CallCount returns the number of times Classify was called.
func (m *MockClassifier) CallCount() int {
	m.mu.Lock()
	defer m.mu.Unlock()
	return len(m.titles)
}

// Titles returns the titles passed to Classify, in call order.
func (m *MockClassifier) Titles() []string {
	m.mu.Lock()
	defer m.mu.Unlock()
	return append([]string(nil), m.titles...)
}
