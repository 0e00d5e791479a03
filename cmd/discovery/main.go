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


package main

import (
	"context"
	"errors"
	"fmt"
	"io"
	"io/fs"
	"log"
	"log/slog"
	"os"
	"os/signal"
	"slices"
	"strings"
	"syscall"
	"time"

	discovery "github.com/nggurbanov/course-project-discovery"
	"github.com/nggurbanov/course-project-discovery/core"
	"github.com/nggurbanov/course-project-discovery/ingestion"
	"github.com/nggurbanov/course-project-discovery/source"
	"github.com/nggurbanov/course-project-discovery/storage/badger"
	"github.com/nggurbanov/course-project-discovery/storage/jsonfile"
	"github.com/urfave/cli/v2"
)

func main() {
	if err := newApp().Run(os.Args); err != nil {
		log.Fatal(err)
	}
}

func newApp() *cli.App {
	return &cli.App{
		Name:  "discovery",
		Usage: "Tag student course projects with an LLM and build a searchable catalog",
		Flags: []cli.Flag{
			&cli.StringFlag{
				Name:    "log-level",
				Aliases: []string{"l"},
				Usage:   "Set logging level (debug, info, warn, error)",
				Value:   "info",
			},
		},
		Before: setupLogger,
		Commands: []*cli.Command{
			{
				Name:   "enrich",
				Usage:  "Classify pending projects and update the catalog (resumable)",
				Action: enrichCommand,
				Flags: []cli.Flag{
					&cli.StringFlag{
						Name:    "input",
						Aliases: []string{"i"},
						Usage:   "Path to the ';'-delimited projects CSV",
					},
					&cli.StringFlag{
						Name:    "output",
						Aliases: []string{"o"},
						Usage:   "Path to the JSON catalog (also the checkpoint)",
					},
					&cli.StringFlag{
						Name:    "config",
						Aliases: []string{"c"},
						Usage:   "Path to a TOML config file",
					},
					&cli.StringFlag{
						Name:  "host",
						Usage: "OpenAI-compatible API base URL",
					},
					&cli.StringFlag{
						Name:  "model",
						Usage: "Model used for tag classification",
					},
					&cli.StringFlag{
						Name:    "api-key",
						Usage:   "API key for the classification service",
						EnvVars: []string{"DEEPINFRA_API_KEY"},
					},
					&cli.IntFlag{
						Name:  "batch-size",
						Usage: "Number of projects classified between checkpoints",
						Value: ingestion.DefaultBatchSize,
					},
					&cli.IntFlag{
						Name:  "rate-limit-attempts",
						Usage: "Maximum attempts for a rate-limited request",
					},
					&cli.DurationFlag{
						Name:  "rate-limit-delay",
						Usage: "Base delay for exponential backoff after a rate limit",
					},
					&cli.StringFlag{
						Name:  "vocabulary",
						Usage: "File with the allowed tags, one per line",
					},
					&cli.StringFlag{
						Name:  "cache-dir",
						Usage: "BadgerDB directory caching classifications across catalogs",
					},
				},
			},
			{
				Name:      "stats",
				Usage:     "Print catalog counts and check its consistency",
				ArgsUsage: "<catalog.json>",
				Action:    statsCommand,
				Flags: []cli.Flag{
					&cli.StringFlag{
						Name:  "cache-dir",
						Usage: "Also report the size of this classification cache",
					},
				},
			},
		},
	}
}

// loadRunConfig merges the optional config file with explicitly set flags.
func loadRunConfig(c *cli.Context) (discovery.Config, error) {
	cfg, err := discovery.LoadConfig(c.String("config"))
	if err != nil {
		return cfg, err
	}

	if c.IsSet("input") {
		cfg.Input = c.String("input")
	}
	if c.IsSet("output") {
		cfg.Output = c.String("output")
	}
	if c.IsSet("cache-dir") {
		cfg.CacheDir = c.String("cache-dir")
	}
	if c.IsSet("batch-size") {
		cfg.BatchSize = c.Int("batch-size")
	}
	if c.IsSet("host") {
		cfg.Classifier.Host = c.String("host")
	}
	if c.IsSet("model") {
		cfg.Classifier.Model = c.String("model")
	}
	if c.IsSet("api-key") {
		cfg.Classifier.APIKey = c.String("api-key")
	}
	if c.IsSet("rate-limit-attempts") {
		cfg.Classifier.RateLimitAttempts = c.Int("rate-limit-attempts")
	}
	if c.IsSet("rate-limit-delay") {
		cfg.Classifier.RateLimitDelayMillis = int(c.Duration("rate-limit-delay") / time.Millisecond)
	}
	if c.IsSet("vocabulary") {
		cfg.Classifier.VocabularyFile = c.String("vocabulary")
	}

	if err := cfg.Validate(); err != nil {
		return cfg, err
	}
	return cfg, nil
}

func enrichCommand(c *cli.Context) error {
	cfg, err := loadRunConfig(c)
	if err != nil {
		return err
	}

	records, err := source.ReadCSV(cfg.Input)
	if err != nil {
		return fmt.Errorf("failed to read input: %w", err)
	}

	aiConfig, err := cfg.Classifier.AIConfig()
	if err != nil {
		return fmt.Errorf("invalid classifier configuration: %w", err)
	}
	if err := aiConfig.Validate(); err != nil {
		return fmt.Errorf("invalid classifier configuration: %w", err)
	}

	opts := []discovery.EnricherOption{discovery.WithAIConfig(aiConfig)}
	if cfg.CacheDir != "" {
		opts = append(opts, discovery.WithCacheDir(cfg.CacheDir))
	}
	enricher, err := discovery.NewEnricher(cfg.Output, opts...)
	if err != nil {
		return fmt.Errorf("failed to open catalog: %w", err)
	}
	defer enricher.Close()

	ctx, stop := signal.NotifyContext(c.Context, os.Interrupt, syscall.SIGTERM)
	defer stop()

	out := c.App.Writer
	fmt.Fprintf(c.App.ErrWriter, "Input: %s (%d records)\n", cfg.Input, len(records))
	fmt.Fprintf(c.App.ErrWriter, "Output: %s\n", cfg.Output)
	fmt.Fprintf(c.App.ErrWriter, "Model: %s\n", aiConfig.Model)
	fmt.Fprintln(c.App.ErrWriter)

	result, err := enricher.Enrich(ctx, records,
		ingestion.WithBatchSize(cfg.BatchSize),
		ingestion.WithProgress(c.App.ErrWriter))
	if err != nil {
		if result != nil {
			printSummary(out, cfg.Output, result)
		}
		if errors.Is(err, context.Canceled) {
			fmt.Fprintf(out, "Interrupted. Progress is saved in %s; re-run the same command to resume.\n", cfg.Output)
			return cli.Exit("enrichment interrupted", 130)
		}
		fmt.Fprintf(out, "Progress up to the last completed batch is saved in %s; re-run to resume.\n", cfg.Output)
		return fmt.Errorf("enrichment failed: %w", err)
	}

	printSummary(out, cfg.Output, result)
	return nil
}

func printSummary(w io.Writer, output string, result *ingestion.RunResult) {
	fmt.Fprintf(w, "Processed %d of %d pending projects (%d failed), %d/%d batches saved\n",
		result.Processed, result.Pending, result.Failed, result.CompletedBatches, result.Batches)
	fmt.Fprintf(w, "Catalog %s: %d projects, %d supervisors, %d tags\n",
		output,
		result.Metadata.TotalProjects,
		result.Metadata.TotalSupervisors,
		result.Metadata.TotalTags)
}

func statsCommand(c *cli.Context) error {
	path := c.Args().First()
	if path == "" {
		return errors.New("catalog path is required")
	}

	// Read, not Load: inspecting a catalog must never move it aside.
	catalog, err := jsonfile.NewStore(path).Read(c.Context)
	if err != nil {
		if errors.Is(err, fs.ErrNotExist) {
			return fmt.Errorf("failed to open catalog: %w", err)
		}
		return fmt.Errorf("failed to load catalog: %w", err)
	}

	out := c.App.Writer
	meta := catalog.Metadata()
	fmt.Fprintf(out, "Projects: %d\n", meta.TotalProjects)
	fmt.Fprintf(out, "Supervisors: %d\n", meta.TotalSupervisors)
	fmt.Fprintf(out, "Tags: %d\n", meta.TotalTags)

	untagged := 0
	usage := make(map[string]int)
	for _, p := range catalog.Projects() {
		if len(p.Tags) == 0 {
			untagged++
		}
		for _, t := range p.Tags {
			usage[t]++
		}
	}
	fmt.Fprintf(out, "Untagged projects: %d\n", untagged)

	if dir := c.String("cache-dir"); dir != "" {
		n, err := countCached(c.Context, dir)
		if err != nil {
			return err
		}
		fmt.Fprintf(out, "Cached classifications: %d\n", n)
	}

	if len(usage) > 0 {
		tags := catalog.SortedTags()
		slices.SortStableFunc(tags, func(a, b string) int {
			return usage[b] - usage[a]
		})
		fmt.Fprintln(out)
		for _, t := range tags {
			fmt.Fprintf(out, "%6d  %s\n", usage[t], t)
		}
	}

	if err := core.ValidateCatalog(catalog); err != nil {
		return fmt.Errorf("catalog is inconsistent: %w", err)
	}
	return nil
}

func countCached(ctx context.Context, dir string) (int, error) {
	if _, err := os.Stat(dir); err != nil {
		return 0, fmt.Errorf("failed to open tag cache: %w", err)
	}
	repo, err := badger.NewTagRepository(dir)
	if err != nil {
		return 0, fmt.Errorf("failed to open tag cache: %w", err)
	}
	defer repo.Close()

	n, err := repo.Count(ctx)
	if err != nil {
		return 0, fmt.Errorf("failed to count cached classifications: %w", err)
	}
	return n, nil
}

func setupLogger(c *cli.Context) error {
	// Get log level from flag and normalize to lowercase
	levelStr := strings.ToLower(c.String("log-level"))

	var level slog.Level
	switch levelStr {
	case "debug":
		level = slog.LevelDebug
	case "info":
		level = slog.LevelInfo
	case "warn":
		level = slog.LevelWarn
	case "error":
		level = slog.LevelError
	default:
		return fmt.Errorf("invalid log level %q: must be one of debug, info, warn, error", levelStr)
	}

	logger := slog.New(slog.NewTextHandler(os.Stderr, &slog.HandlerOptions{
		Level: level,
	}))
	slog.SetDefault(logger)

	return nil
}
