package main

import (
	"bytes"
	"context"
	"encoding/json"
	"net/http"
	"net/http/httptest"
	"os"
	"path/filepath"
	"slices"
	"sync/atomic"
	"testing"

	"github.com/nggurbanov/course-project-discovery/core"
	"github.com/nggurbanov/course-project-discovery/ingestion"
	"github.com/nggurbanov/course-project-discovery/storage"
	"github.com/nggurbanov/course-project-discovery/storage/badger"
	"github.com/nggurbanov/course-project-discovery/storage/jsonfile"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	"github.com/urfave/cli/v2"
)

const testCSV = "Наименование проекта на русском;ФИО руководителя;Аннотация проекта;3 курс\n" +
	"Распознавание речи;Иванов И.И.;Голосовой ассистент;да\n" +
	";Петрова А.А.;Без названия;да\n" +
	"Финансовый помощник;nan;Учёт расходов;нет\n"

func testApp(stdout, stderr *bytes.Buffer) *cli.App {
	app := newApp()
	app.Writer = stdout
	app.ErrWriter = stderr
	return app
}

func findFlag[T cli.Flag](t *testing.T, cmd *cli.Command, name string) T {
	t.Helper()
	for _, flag := range cmd.Flags {
		if f, ok := flag.(T); ok && slices.Contains(flag.Names(), name) {
			return f
		}
	}
	require.FailNow(t, "flag not found", name)
	var zero T
	return zero
}

func completionServer(t *testing.T, content string) (*httptest.Server, *atomic.Int32) {
	t.Helper()
	var calls atomic.Int32
	server := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		calls.Add(1)
		w.Header().Set("Content-Type", "application/json")
		_ = json.NewEncoder(w).Encode(map[string]any{
			"id":     "chatcmpl-test",
			"object": "chat.completion",
			"model":  "test-model",
			"choices": []map[string]any{{
				"index":         0,
				"finish_reason": "stop",
				"message":       map[string]any{"role": "assistant", "content": content},
			}},
		})
	}))
	t.Cleanup(server.Close)
	return server, &calls
}

func TestEnrichCommandFlags(t *testing.T) {
	app := newApp()
	require.Len(t, app.Commands, 2)
	cmd := app.Commands[0]
	require.Equal(t, "enrich", cmd.Name)

	t.Run("api-key reads the environment", func(t *testing.T) {
		f := findFlag[*cli.StringFlag](t, cmd, "api-key")
		assert.Equal(t, []string{"DEEPINFRA_API_KEY"}, f.EnvVars)
	})

	t.Run("batch-size defaults to the pipeline default", func(t *testing.T) {
		f := findFlag[*cli.IntFlag](t, cmd, "batch-size")
		assert.Equal(t, ingestion.DefaultBatchSize, f.Value)
	})

	t.Run("input and output have short aliases", func(t *testing.T) {
		assert.Equal(t, []string{"i"}, findFlag[*cli.StringFlag](t, cmd, "input").Aliases)
		assert.Equal(t, []string{"o"}, findFlag[*cli.StringFlag](t, cmd, "output").Aliases)
	})

	t.Run("rate-limit-delay is a duration", func(t *testing.T) {
		findFlag[*cli.DurationFlag](t, cmd, "rate-limit-delay")
	})
}

func TestEnrichCommandValidation(t *testing.T) {
	t.Setenv("DEEPINFRA_API_KEY", "")
	dir := t.TempDir()
	input := filepath.Join(dir, "projects.csv")
	require.NoError(t, os.WriteFile(input, []byte(testCSV), 0o644))
	output := filepath.Join(dir, "projects.json")

	tests := []struct {
		name string
		args []string
		want string
	}{
		{"missing input", []string{"enrich", "--output", output}, "input is required"},
		{"missing output", []string{"enrich", "--input", input}, "output is required"},
		{"input file absent", []string{"enrich", "-i", filepath.Join(dir, "absent.csv"), "-o", output, "--api-key", "k"}, "failed to read input"},
		{"missing api key", []string{"enrich", "-i", input, "-o", output}, "API key"},
		{"bad batch size", []string{"enrich", "-i", input, "-o", output, "--batch-size", "0"}, "batch_size"},
		{"missing config file", []string{"enrich", "--config", filepath.Join(dir, "absent.toml")}, "open config"},
	}
	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			var stdout, stderr bytes.Buffer
			err := testApp(&stdout, &stderr).Run(append([]string{"discovery"}, tt.args...))
			require.Error(t, err)
			assert.Contains(t, err.Error(), tt.want)
		})
	}

	_, err := os.Stat(output)
	assert.True(t, os.IsNotExist(err), "no catalog is written when validation fails")
}

func TestEnrichCommand_EndToEnd(t *testing.T) {
	server, calls := completionServer(t, "NLP, Космос, Финансы")
	dir := t.TempDir()
	input := filepath.Join(dir, "projects.csv")
	require.NoError(t, os.WriteFile(input, []byte(testCSV), 0o644))
	output := filepath.Join(dir, "projects.json")

	args := []string{"discovery", "-l", "error", "enrich",
		"-i", input, "-o", output,
		"--host", server.URL,
		"--api-key", "test-key",
		"--model", "test-model",
		"--batch-size", "1",
		"--rate-limit-attempts", "1",
	}

	var stdout, stderr bytes.Buffer
	require.NoError(t, testApp(&stdout, &stderr).Run(args))
	assert.Equal(t, int32(2), calls.Load(), "untitled rows are not classified")
	assert.Contains(t, stdout.String(), "Processed 2 of 2 pending projects (0 failed), 2/2 batches saved")
	assert.Contains(t, stdout.String(), "2 projects, 1 supervisors, 2 tags")

	catalog, err := jsonfile.NewStore(output).Load(context.Background())
	require.NoError(t, err)
	require.NoError(t, core.ValidateCatalog(catalog))
	assert.Equal(t, []string{"project_0", "project_2"}, catalog.ProcessedIDs())
	assert.Equal(t, []string{"NLP", "Финансы"}, catalog.SortedTags())

	// Running again resumes and has nothing left to classify.
	stdout.Reset()
	require.NoError(t, testApp(&stdout, &stderr).Run(args))
	assert.Equal(t, int32(2), calls.Load())
	assert.Contains(t, stdout.String(), "Processed 0 of 0 pending projects")
}

func TestEnrichCommand_ConfigFile(t *testing.T) {
	server, calls := completionServer(t, "Медицина")
	dir := t.TempDir()
	input := filepath.Join(dir, "projects.csv")
	require.NoError(t, os.WriteFile(input, []byte(testCSV), 0o644))
	output := filepath.Join(dir, "projects.json")
	config := filepath.Join(dir, "discovery.toml")
	require.NoError(t, os.WriteFile(config, []byte(
		"input = \""+filepath.ToSlash(input)+"\"\n"+
			"output = \""+filepath.ToSlash(output)+"\"\n"+
			"cache_dir = \""+filepath.ToSlash(filepath.Join(dir, "cache"))+"\"\n"+
			"[classifier]\n"+
			"host = \""+server.URL+"\"\n"+
			"api_key = \"from-config\"\n"+
			"tags = [\"Медицина\", \"NLP\"]\n"), 0o644))

	var stdout, stderr bytes.Buffer
	require.NoError(t, testApp(&stdout, &stderr).Run([]string{"discovery", "-l", "error", "enrich", "-c", config}))
	assert.Equal(t, int32(2), calls.Load())

	catalog, err := jsonfile.NewStore(output).Load(context.Background())
	require.NoError(t, err)
	assert.Equal(t, []string{"Медицина"}, catalog.SortedTags())

	// The classification cache answers for the same content in a new catalog.
	require.NoError(t, os.Remove(output))
	require.NoError(t, testApp(&stdout, &stderr).Run([]string{"discovery", "-l", "error", "enrich", "-c", config}))
	assert.Equal(t, int32(2), calls.Load())
}

func TestStatsCommand(t *testing.T) {
	path := filepath.Join(t.TempDir(), "projects.json")
	catalog := core.NewCatalog()
	require.NoError(t, catalog.Merge(core.NewProject(core.Record{ID: "project_0", TitleRU: "A", Supervisor: "Иванов"}, []string{"NLP"})))
	require.NoError(t, catalog.Merge(core.NewProject(core.Record{ID: "project_1", TitleRU: "B", Supervisor: "Иванов"}, []string{"NLP", "Медицина"})))
	require.NoError(t, catalog.Merge(core.NewProject(core.Record{ID: "project_2", TitleRU: "C", Supervisor: "nan"}, nil)))
	require.NoError(t, jsonfile.NewStore(path).Save(context.Background(), catalog))

	var stdout, stderr bytes.Buffer
	require.NoError(t, testApp(&stdout, &stderr).Run([]string{"discovery", "stats", path}))

	out := stdout.String()
	assert.Contains(t, out, "Projects: 3\n")
	assert.Contains(t, out, "Supervisors: 1\n")
	assert.Contains(t, out, "Tags: 2\n")
	assert.Contains(t, out, "Untagged projects: 1\n")
	assert.Contains(t, out, "     2  NLP\n")
}

func TestStatsCommand_MissingCatalog(t *testing.T) {
	var stdout, stderr bytes.Buffer
	err := testApp(&stdout, &stderr).Run([]string{"discovery", "stats", filepath.Join(t.TempDir(), "absent.json")})
	require.Error(t, err)
	assert.Contains(t, err.Error(), "failed to open catalog")

	err = testApp(&stdout, &stderr).Run([]string{"discovery", "stats"})
	assert.ErrorContains(t, err, "catalog path is required")
}

func TestStatsCommand_CorruptCatalogIsLeftInPlace(t *testing.T) {
	dir := t.TempDir()
	path := filepath.Join(dir, "projects.json")
	require.NoError(t, os.WriteFile(path, []byte(`{"projects": [{"id":"project_0"`), 0o644))

	var stdout, stderr bytes.Buffer
	err := testApp(&stdout, &stderr).Run([]string{"discovery", "stats", path})
	require.Error(t, err)
	assert.ErrorIs(t, err, storage.ErrCorruptCatalog)
	assert.NotContains(t, stdout.String(), "Projects:")

	assert.FileExists(t, path)
	matches, err := filepath.Glob(filepath.Join(dir, "projects.json.corrupt-*"))
	require.NoError(t, err)
	assert.Empty(t, matches)
}

func TestStatsCommand_CacheSize(t *testing.T) {
	dir := t.TempDir()
	path := filepath.Join(dir, "projects.json")
	require.NoError(t, jsonfile.NewStore(path).Save(context.Background(), core.NewCatalog()))

	cacheDir := filepath.Join(dir, "tagcache")
	repo, err := badger.NewTagRepository(cacheDir)
	require.NoError(t, err)
	require.NoError(t, repo.PutTags(context.Background(), 1, []string{"NLP"}))
	require.NoError(t, repo.PutTags(context.Background(), 2, []string{"IoT"}))
	require.NoError(t, repo.Close())

	var stdout, stderr bytes.Buffer
	require.NoError(t, testApp(&stdout, &stderr).Run([]string{"discovery", "stats", "--cache-dir", cacheDir, path}))
	assert.Contains(t, stdout.String(), "Cached classifications: 2\n")

	err = testApp(&stdout, &stderr).Run([]string{"discovery", "stats", "--cache-dir", filepath.Join(dir, "absent"), path})
	assert.ErrorContains(t, err, "failed to open tag cache")
}

func TestSetupLogger_InvalidLevel(t *testing.T) {
	var stdout, stderr bytes.Buffer
	err := testApp(&stdout, &stderr).Run([]string{"discovery", "-l", "verbose", "stats"})
	require.Error(t, err)
	assert.Contains(t, err.Error(), "invalid log level")
}
