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


package openai

import (
	"fmt"

	"github.com/nggurbanov/course-project-discovery/ai"
)

const tagPromptTemplate = `Проанализируй следующий проект и определи 2-%d наиболее подходящих тематических тегов из предоставленного списка.

Название проекта: %s
Аннотация: %s

Доступные теги: %s

Верни только список тегов через запятую, без дополнительных объяснений.`

// buildTagPrompt renders the classification request for a single project.
func buildTagPrompt(title, description string, vocabulary ai.Vocabulary, maxTags int) string {
	return fmt.Sprintf(tagPromptTemplate,
		maxTags,
		compactWhitespace(title),
		compactWhitespace(description),
		vocabulary.Join(", "))
}
