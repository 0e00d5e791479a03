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


package ai

import (
	"errors"
	"fmt"
	"net/url"
	"strings"
	"time"

	"github.com/nggurbanov/course-project-discovery/core"
)

// Config holds configuration for the tag classification service.
type Config struct {
	// Host is the base URL of the OpenAI-compatible chat completion API.
	// Example: "https://api.deepinfra.com/v1/openai", "http://localhost:11434/v1"
	Host string

	// Model is the model identifier used for tag classification.
	// Example: "google/gemma-3-27b-it"
	Model string

	// APIKey is the bearer credential sent to the service.
	APIKey string

	// MaxTokens bounds the length of the completion.
	// Default: 200
	MaxTokens int

	// Temperature is the sampling temperature.
	// Default: 0.3
	Temperature float64

	// MaxTags is the maximum number of tags kept per project (1-5).
	// Default: 5
	MaxTags int

	// Timeout bounds a single request to the service.
	// Default: 30s
	Timeout time.Duration

	// Vocabulary is the ordered list of allowed tags.
	Vocabulary Vocabulary

	// RateLimitAttempts is the maximum number of attempts made for a call
	// that keeps getting rate limited.
	// Default: 8
	RateLimitAttempts int

	// RateLimitDelay is the base backoff after a rate-limited attempt.
	// It doubles on every further attempt.
	// Default: 1s
	RateLimitDelay time.Duration
}

// ConfigOption is a functional option for configuring a Config.
type ConfigOption func(*Config)

// WithHost sets the service base URL.
func WithHost(host string) ConfigOption {
	return func(c *Config) {
		c.Host = host
	}
}

// WithModel sets the classifier model identifier.
func WithModel(model string) ConfigOption {
	return func(c *Config) {
		c.Model = model
	}
}

// WithAPIKey sets the service credential.
func WithAPIKey(key string) ConfigOption {
	return func(c *Config) {
		c.APIKey = key
	}
}

// WithMaxTokens sets the completion token limit.
func WithMaxTokens(n int) ConfigOption {
	return func(c *Config) {
		c.MaxTokens = n
	}
}

// WithTemperature sets the sampling temperature.
func WithTemperature(t float64) ConfigOption {
	return func(c *Config) {
		c.Temperature = t
	}
}

// WithMaxTags sets the per-project tag limit.
func WithMaxTags(n int) ConfigOption {
	return func(c *Config) {
		c.MaxTags = n
	}
}

// WithTimeout sets the per-request timeout.
func WithTimeout(d time.Duration) ConfigOption {
	return func(c *Config) {
		c.Timeout = d
	}
}

// WithVocabulary sets the allowed tag vocabulary.
func WithVocabulary(v Vocabulary) ConfigOption {
	return func(c *Config) {
		c.Vocabulary = v
	}
}

// WithRateLimitRetry sets the bounded retry policy for rate-limited calls.
func WithRateLimitRetry(attempts int, delay time.Duration) ConfigOption {
	return func(c *Config) {
		c.RateLimitAttempts = attempts
		c.RateLimitDelay = delay
	}
}

// DefaultConfig returns a Config with the defaults for the DeepInfra
// OpenAI-compatible endpoint. The API key is left empty.
func DefaultConfig() *Config {
	return &Config{
		Host:              "https://api.deepinfra.com/v1/openai",
		Model:             "google/gemma-3-27b-it",
		MaxTokens:         200,
		Temperature:       0.3,
		MaxTags:           core.MaxTags,
		Timeout:           30 * time.Second,
		Vocabulary:        DefaultVocabulary(),
		RateLimitAttempts: 8,
		RateLimitDelay:    1 * time.Second,
	}
}

// NewConfig creates a Config with the default values and applies the provided options.
//
// Example:
//
//	cfg := NewConfig(
//	    WithHost("http://localhost:11434"),
//	    WithModel("qwen2.5:3b"),
//	    WithAPIKey("none"),
//	)
func NewConfig(opts ...ConfigOption) *Config {
	cfg := DefaultConfig()
	for _, opt := range opts {
		opt(cfg)
	}
	return cfg
}

// Normalize ensures the configuration is in a canonical form.
// A trailing slash is dropped from Host, and a bare host without any path
// gets the /v1 suffix most OpenAI-compatible servers expect (Ollama, LocalAI, vLLM).
func (c *Config) Normalize() {
	c.Host = strings.TrimSpace(c.Host)
	if c.Host == "" {
		return
	}
	c.Host = strings.TrimRight(c.Host, "/")
	if u, err := url.Parse(c.Host); err == nil && u.Host != "" && u.Path == "" {
		c.Host += "/v1"
	}
	c.APIKey = strings.TrimSpace(c.APIKey)
}

// Validate checks that the configuration is valid and complete.
// It automatically normalizes the configuration before validation.
func (c *Config) Validate() error {
	c.Normalize()

	if c.Host == "" {
		return errors.New("ai config: Host is required")
	}
	if c.Model == "" {
		return errors.New("ai config: Model is required")
	}
	if c.APIKey == "" {
		return fmt.Errorf("ai config: %w", ErrAPIKeyRequired)
	}
	if c.MaxTokens < 1 {
		return errors.New("ai config: MaxTokens must be positive")
	}
	if c.MaxTags < 1 || c.MaxTags > core.MaxTags {
		return fmt.Errorf("ai config: MaxTags must be between 1 and %d", core.MaxTags)
	}
	if c.Timeout <= 0 {
		return errors.New("ai config: Timeout must be positive")
	}
	if c.Vocabulary.Len() == 0 {
		return errors.New("ai config: Vocabulary must not be empty")
	}
	if c.RateLimitAttempts < 1 {
		return errors.New("ai config: RateLimitAttempts must be at least 1")
	}
	if c.RateLimitDelay < 0 {
		return errors.New("ai config: RateLimitDelay must not be negative")
	}
	return nil
}
