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


// Package openai provides the tag classifier backed by OpenAI-compatible APIs.
//
// This package implements the ai.TagClassifier interface using the langchaingo
// library to communicate with DeepInfra or any other OpenAI-compatible
// service (such as Ollama, LocalAI, or vLLM).
//
// # Usage
//
//	config := ai.NewConfig(
//	    ai.WithAPIKey(os.Getenv("DEEPINFRA_API_KEY")),
//	    ai.WithModel("google/gemma-3-27b-it"),
//	)
//
//	classifier, err := openai.NewClassifier(config)
//	if err != nil {
//	    log.Fatal(err)
//	}
//
//	tags, err := classifier.Classify(ctx, "Распознавание речи", "Аннотация проекта")
package openai
