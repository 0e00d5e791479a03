package jsonfile

import (
	"bytes"
	"context"
	"encoding/json"
	"errors"
	"fmt"
	"io/fs"
	"log/slog"
	"os"
	"path/filepath"
	"slices"
	"time"

	"github.com/gofrs/flock"
	"github.com/nggurbanov/course-project-discovery/core"
	"github.com/nggurbanov/course-project-discovery/storage"
)

// Store persists the catalog to a JSON file.
type Store struct {
	path   string
	lock   *flock.Flock
	logger *slog.Logger
}

var _ storage.CatalogStore = (*Store)(nil)

// NewStore creates a store for the document at path. Nothing is read or
// created until Load, Save or Lock is called.
func NewStore(path string) *Store {
	return &Store{
		path:   path,
		lock:   flock.New(path + ".lock"),
		logger: slog.Default().With("component", "jsonfile-store", "path", path),
	}
}

// Path returns the document location.
func (s *Store) Path() string {
	return s.path
}

// Lock takes an advisory lock next to the document so a second process
// cannot write the same checkpoint. It does not block.
func (s *Store) Lock() error {
	if err := os.MkdirAll(filepath.Dir(s.path), 0o755); err != nil {
		return fmt.Errorf("create checkpoint directory: %w", err)
	}
	ok, err := s.lock.TryLock()
	if err != nil {
		return fmt.Errorf("acquire checkpoint lock: %w", err)
	}
	if !ok {
		return fmt.Errorf("%w: %s", storage.ErrLocked, s.lock.Path())
	}
	return nil
}

// Unlock releases the lock taken by Lock.
func (s *Store) Unlock() error {
	return s.lock.Unlock()
}

// Load reads the document. A missing file yields an empty catalog. A file
// that cannot be read or parsed is moved aside and also yields an empty
// catalog.
func (s *Store) Load(ctx context.Context) (*core.Catalog, error) {
	if err := ctx.Err(); err != nil {
		return nil, err
	}

	catalog, err := s.Read(ctx)
	switch {
	case err == nil:
	case errors.Is(err, fs.ErrNotExist):
		s.logger.Info("no checkpoint found, starting fresh")
		return core.NewCatalog(), nil
	case errors.Is(err, storage.ErrCorruptCatalog):
		s.logger.Warn("failed to parse checkpoint, starting fresh", "err", err)
		s.moveAside()
		return core.NewCatalog(), nil
	default:
		s.logger.Warn("failed to read checkpoint, starting fresh", "err", err)
		return core.NewCatalog(), nil
	}

	s.logger.Info("loaded checkpoint",
		"projects", catalog.Len(),
		"supervisors", len(catalog.Supervisors()),
		"tags", len(catalog.SortedTags()))
	return catalog, nil
}

// Read parses the document without touching the file. Unlike Load it
// reports a missing file (wrapping fs.ErrNotExist) and a parse failure
// (wrapping storage.ErrCorruptCatalog) as errors.
func (s *Store) Read(ctx context.Context) (*core.Catalog, error) {
	if err := ctx.Err(); err != nil {
		return nil, err
	}

	data, err := os.ReadFile(s.path)
	if err != nil {
		return nil, fmt.Errorf("read checkpoint: %w", err)
	}

	catalog, err := s.decode(data)
	if err != nil {
		return nil, fmt.Errorf("%w: %s: %w", storage.ErrCorruptCatalog, s.path, err)
	}
	return catalog, nil
}

// Save writes the catalog through a temporary file and renames it over the
// document, so a failed save leaves the previous checkpoint in place.
func (s *Store) Save(ctx context.Context, catalog *core.Catalog) error {
	if err := ctx.Err(); err != nil {
		return err
	}

	data, err := encode(catalog)
	if err != nil {
		return fmt.Errorf("marshal catalog: %w", err)
	}

	dir := filepath.Dir(s.path)
	if err := os.MkdirAll(dir, 0o755); err != nil {
		return fmt.Errorf("create checkpoint directory: %w", err)
	}

	tmp, err := os.CreateTemp(dir, filepath.Base(s.path)+".*.tmp")
	if err != nil {
		return fmt.Errorf("create temp file: %w", err)
	}
	tmpPath := tmp.Name()

	if _, err := tmp.Write(data); err != nil {
		tmp.Close()
		os.Remove(tmpPath)
		return fmt.Errorf("write temp file: %w", err)
	}
	if err := tmp.Sync(); err != nil {
		tmp.Close()
		os.Remove(tmpPath)
		return fmt.Errorf("sync temp file: %w", err)
	}
	if err := tmp.Close(); err != nil {
		os.Remove(tmpPath)
		return fmt.Errorf("close temp file: %w", err)
	}
	if err := os.Chmod(tmpPath, 0o644); err != nil {
		os.Remove(tmpPath)
		return fmt.Errorf("chmod temp file: %w", err)
	}
	if err := os.Rename(tmpPath, s.path); err != nil {
		os.Remove(tmpPath)
		return fmt.Errorf("rename temp file: %w", err)
	}

	s.logger.Debug("saved checkpoint", "projects", catalog.Len())
	return nil
}

// moveAside keeps an unparsable checkpoint around for inspection instead of
// letting the next save overwrite it.
func (s *Store) moveAside() {
	backup := fmt.Sprintf("%s.corrupt-%d", s.path, time.Now().Unix())
	if err := os.Rename(s.path, backup); err != nil {
		s.logger.Warn("failed to move unreadable checkpoint aside", "err", err)
		return
	}
	s.logger.Warn("moved unreadable checkpoint aside", "backup", backup)
}

type document struct {
	Projects    []core.Project    `json:"projects"`
	Supervisors []core.Supervisor `json:"supervisors"`
	Tags        []string          `json:"tags"`
	Metadata    core.Metadata     `json:"metadata"`
}

type rawDocument struct {
	Projects    []core.Project  `json:"projects"`
	Supervisors json.RawMessage `json:"supervisors"`
	Tags        json.RawMessage `json:"tags"`
}

func encode(catalog *core.Catalog) ([]byte, error) {
	projects := catalog.Projects()
	if projects == nil {
		projects = []core.Project{}
	}
	doc := document{
		Projects:    projects,
		Supervisors: catalog.Supervisors(),
		Tags:        catalog.SortedTags(),
		Metadata:    catalog.Metadata(),
	}

	var buf bytes.Buffer
	enc := json.NewEncoder(&buf)
	enc.SetEscapeHTML(false)
	enc.SetIndent("", "  ")
	if err := enc.Encode(doc); err != nil {
		return nil, err
	}
	return buf.Bytes(), nil
}

func (s *Store) decode(data []byte) (*core.Catalog, error) {
	var raw rawDocument
	if err := json.Unmarshal(data, &raw); err != nil {
		return nil, err
	}

	tags, err := decodeTags(raw.Tags)
	if err != nil {
		return nil, fmt.Errorf("tags: %w", err)
	}
	supervisors, err := decodeSupervisors(raw.Supervisors)
	if err != nil {
		return nil, fmt.Errorf("supervisors: %w", err)
	}

	for i := range raw.Projects {
		if raw.Projects[i].Courses == nil {
			raw.Projects[i].Courses = []string{}
		}
	}
	catalog := core.RestoreCatalog(raw.Projects, supervisors)
	if stale, missing := tagDrift(catalog, tags); tags != nil && (len(stale) > 0 || missing > 0) {
		s.logger.Warn("stored tag set differs from project tags, rebuilt from projects",
			"stale", stale, "missing", missing)
	}
	return catalog, nil
}

// tagDrift compares a stored tag list with the tags the catalog rebuilt from
// its projects. It returns the stored tags no project carries and the number
// of project tags the stored list lacks.
func tagDrift(catalog *core.Catalog, stored []string) (stale []string, missing int) {
	seen := make(map[string]struct{}, len(stored))
	for _, t := range stored {
		if _, dup := seen[t]; dup {
			continue
		}
		seen[t] = struct{}{}
		if !catalog.HasTag(t) {
			stale = append(stale, t)
		}
	}
	for _, t := range catalog.SortedTags() {
		if _, ok := seen[t]; !ok {
			missing++
		}
	}
	return stale, missing
}

// decodeTags accepts a list of tags or an object keyed by tag.
func decodeTags(raw json.RawMessage) ([]string, error) {
	if isAbsent(raw) {
		return nil, nil
	}

	var list []string
	if err := json.Unmarshal(raw, &list); err == nil {
		return list, nil
	}

	var keyed map[string]json.RawMessage
	if err := json.Unmarshal(raw, &keyed); err != nil {
		return nil, errors.New("expected a list or an object")
	}
	tags := make([]string, 0, len(keyed))
	for tag := range keyed {
		tags = append(tags, tag)
	}
	slices.Sort(tags)
	return tags, nil
}

// decodeSupervisors accepts a list of supervisor objects or an object keyed
// by supervisor name. The keyed form carries no order, so it is ordered by
// supervisor ID.
func decodeSupervisors(raw json.RawMessage) ([]core.Supervisor, error) {
	if isAbsent(raw) {
		return nil, nil
	}

	var list []core.Supervisor
	if err := json.Unmarshal(raw, &list); err == nil {
		return list, nil
	}

	var keyed map[string]core.Supervisor
	if err := json.Unmarshal(raw, &keyed); err != nil {
		return nil, errors.New("expected a list or an object")
	}
	supervisors := make([]core.Supervisor, 0, len(keyed))
	for name, sup := range keyed {
		if sup.Name == "" {
			sup.Name = name
		}
		supervisors = append(supervisors, sup)
	}
	core.SortSupervisorsByID(supervisors)
	return supervisors, nil
}

func isAbsent(raw json.RawMessage) bool {
	trimmed := bytes.TrimSpace(raw)
	return len(trimmed) == 0 || bytes.Equal(trimmed, []byte("null"))
}
