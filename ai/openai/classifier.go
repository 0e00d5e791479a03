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
	"context"
	"errors"
	"fmt"
	"log/slog"
	"time"

	"github.com/nggurbanov/course-project-discovery/ai"
	"github.com/tmc/langchaingo/llms"
	"github.com/tmc/langchaingo/llms/openai"
)

// Classifier implements ai.TagClassifier using OpenAI-compatible chat APIs.
type Classifier struct {
	client      llms.Model
	vocabulary  ai.Vocabulary
	maxTags     int
	maxTokens   int
	temperature float64
	timeout     time.Duration
	attempts    int
	delay       time.Duration
	logger      *slog.Logger
}

// newClassifier is an internal constructor that returns the concrete type.
func newClassifier(config *ai.Config, opts ...openai.Option) (*Classifier, error) {
	if err := config.Validate(); err != nil {
		return nil, err
	}

	clientOpts := append([]openai.Option{
		openai.WithBaseURL(config.Host),
		openai.WithToken(config.APIKey),
		openai.WithModel(config.Model),
	}, opts...)
	client, err := openai.New(clientOpts...)
	if err != nil {
		return nil, err
	}

	return &Classifier{
		client:      client,
		vocabulary:  config.Vocabulary,
		maxTags:     config.MaxTags,
		maxTokens:   config.MaxTokens,
		temperature: config.Temperature,
		timeout:     config.Timeout,
		attempts:    config.RateLimitAttempts,
		delay:       config.RateLimitDelay,
		logger:      slog.Default().With("component", "openai-classifier"),
	}, nil
}

// NewClassifier creates a tag classifier using the provided configuration.
// The config is validated and normalized before use.
//
// Returns ai.TagClassifier interface to enforce abstraction.
func NewClassifier(config *ai.Config) (ai.TagClassifier, error) {
	return newClassifier(config)
}

// Classify asks the model for tags and keeps only exact vocabulary members.
// Rate-limited requests are retried with exponential backoff; once the
// attempts run out the error wraps ai.ErrRateLimited.
func (c *Classifier) Classify(ctx context.Context, title, description string) ([]string, error) {
	prompt := buildTagPrompt(title, description, c.vocabulary, c.maxTags)
	content := []llms.MessageContent{
		llms.TextParts(llms.ChatMessageTypeHuman, prompt),
	}

	var completion string
	err := ai.RetryWithBackoff(ctx, func() error {
		reqCtx, cancel := context.WithTimeout(ctx, c.timeout)
		defer cancel()

		response, err := c.client.GenerateContent(reqCtx, content,
			llms.WithMaxTokens(c.maxTokens),
			llms.WithTemperature(c.temperature))
		if err != nil {
			if isRateLimited(err) {
				c.logger.Warn("rate limited, retrying", "title", title)
			}
			return err
		}
		if len(response.Choices) > 0 {
			completion = response.Choices[0].Content
		}
		return nil
	}, c.attempts, c.delay, isRateLimited)

	switch {
	case err == nil:
	case errors.Is(err, openai.ErrEmptyResponse):
		c.logger.Debug("no choices returned from model", "title", title)
		return []string{}, nil
	case isRateLimited(err):
		return nil, fmt.Errorf("%w after %d attempts: %w", ai.ErrRateLimited, c.attempts, err)
	default:
		return nil, err
	}

	tags := ai.ParseTags(stripCodeFence(completion), c.vocabulary, c.maxTags)
	c.logger.Debug("classified project", "title", title, "tags", len(tags))
	return tags, nil
}

// isRateLimited reports whether err is the service asking the caller to slow down.
func isRateLimited(err error) bool {
	return llms.IsRateLimitError(openai.MapError(err))
}
