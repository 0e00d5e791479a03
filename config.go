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


package discovery

import (
	"errors"
	"fmt"
	"os"
	"strings"
	"time"

	"github.com/nggurbanov/course-project-discovery/ai"
	"github.com/nggurbanov/course-project-discovery/ingestion"
	"github.com/pelletier/go-toml/v2"
)

// Config is the file-level configuration of an enrichment run.
// Every field can also be set from the command line.
type Config struct {
	Input      string           `toml:"input"`
	Output     string           `toml:"output"`
	CacheDir   string           `toml:"cache_dir"`
	BatchSize  int              `toml:"batch_size"`
	Classifier ClassifierConfig `toml:"classifier"`
}

// ClassifierConfig mirrors ai.Config in a TOML-friendly shape.
type ClassifierConfig struct {
	Host                 string   `toml:"host"`
	Model                string   `toml:"model"`
	APIKey               string   `toml:"api_key"`
	MaxTokens            int      `toml:"max_tokens"`
	Temperature          float64  `toml:"temperature"`
	MaxTags              int      `toml:"max_tags"`
	TimeoutSeconds       int      `toml:"timeout_seconds"`
	RateLimitAttempts    int      `toml:"rate_limit_attempts"`
	RateLimitDelayMillis int      `toml:"rate_limit_delay_ms"`
	VocabularyFile       string   `toml:"vocabulary_file"`
	Tags                 []string `toml:"tags"`
}

// DefaultConfig returns the configuration used when no file is given.
func DefaultConfig() Config {
	defaults := ai.DefaultConfig()
	return Config{
		BatchSize: ingestion.DefaultBatchSize,
		Classifier: ClassifierConfig{
			Host:                 defaults.Host,
			Model:                defaults.Model,
			MaxTokens:            defaults.MaxTokens,
			Temperature:          defaults.Temperature,
			MaxTags:              defaults.MaxTags,
			TimeoutSeconds:       int(defaults.Timeout / time.Second),
			RateLimitAttempts:    defaults.RateLimitAttempts,
			RateLimitDelayMillis: int(defaults.RateLimitDelay / time.Millisecond),
		},
	}
}

// LoadConfig reads a TOML file over the defaults. An empty path returns the
// defaults. Unknown keys are rejected so typos do not go unnoticed.
func LoadConfig(path string) (Config, error) {
	cfg := DefaultConfig()
	if path == "" {
		return cfg, nil
	}

	file, err := os.Open(path)
	if err != nil {
		return Config{}, fmt.Errorf("open config: %w", err)
	}
	defer file.Close()

	decoder := toml.NewDecoder(file)
	decoder.DisallowUnknownFields()
	if err := decoder.Decode(&cfg); err != nil {
		var strict *toml.StrictMissingError
		if errors.As(err, &strict) {
			return Config{}, fmt.Errorf("parse config: %s", strict.String())
		}
		return Config{}, fmt.Errorf("parse config: %w", err)
	}

	cfg.normalize()
	return cfg, nil
}

func (c *Config) normalize() {
	c.Input = strings.TrimSpace(c.Input)
	c.Output = strings.TrimSpace(c.Output)
	c.CacheDir = strings.TrimSpace(c.CacheDir)
	c.Classifier.Host = strings.TrimSpace(c.Classifier.Host)
	c.Classifier.Model = strings.TrimSpace(c.Classifier.Model)
	c.Classifier.APIKey = strings.TrimSpace(c.Classifier.APIKey)
	c.Classifier.VocabularyFile = strings.TrimSpace(c.Classifier.VocabularyFile)
}

// Validate checks the run-level settings. Classifier settings are checked
// by ai.Config.Validate when the classifier is built.
func (c *Config) Validate() error {
	c.normalize()
	if c.Input == "" {
		return errors.New("config: input is required")
	}
	if c.Output == "" {
		return errors.New("config: output is required")
	}
	if c.BatchSize < 1 {
		return errors.New("config: batch_size must be positive")
	}
	return nil
}

// Vocabulary returns the configured tag vocabulary: the vocabulary file if
// set, otherwise the inline tags, otherwise the built-in list.
func (c ClassifierConfig) Vocabulary() (ai.Vocabulary, error) {
	switch {
	case c.VocabularyFile != "":
		return ai.LoadVocabularyFile(c.VocabularyFile)
	case len(c.Tags) > 0:
		return ai.NewVocabulary(c.Tags...), nil
	default:
		return ai.DefaultVocabulary(), nil
	}
}

// AIConfig converts the classifier section into an ai.Config.
func (c ClassifierConfig) AIConfig() (*ai.Config, error) {
	vocabulary, err := c.Vocabulary()
	if err != nil {
		return nil, err
	}
	return ai.NewConfig(
		ai.WithHost(c.Host),
		ai.WithModel(c.Model),
		ai.WithAPIKey(c.APIKey),
		ai.WithMaxTokens(c.MaxTokens),
		ai.WithTemperature(c.Temperature),
		ai.WithMaxTags(c.MaxTags),
		ai.WithTimeout(time.Duration(c.TimeoutSeconds)*time.Second),
		ai.WithVocabulary(vocabulary),
		ai.WithRateLimitRetry(c.RateLimitAttempts, time.Duration(c.RateLimitDelayMillis)*time.Millisecond),
	), nil
}
