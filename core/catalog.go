package core

import (
	"fmt"
	"slices"
	"sort"
	"strconv"
	"strings"
)

// Catalog is the aggregate enrichment state: the enriched projects in
// processing order, the supervisors keyed by exact name, the observed tag
// set and the set of processed record IDs used as the resume cursor.
//
// A Catalog is not safe for concurrent mutation. The pipeline mutates it
// from a single goroutine between batches.
type Catalog struct {
	projects        []Project
	supervisors     map[string]*Supervisor
	supervisorOrder []string
	tags            map[string]struct{}
	processed       map[string]struct{}
	// nextSupervisor is the ordinal given to the next new supervisor.
	nextSupervisor int
}

// NewCatalog returns an empty catalog.
func NewCatalog() *Catalog {
	return &Catalog{
		projects:    []Project{},
		supervisors: make(map[string]*Supervisor),
		tags:        make(map[string]struct{}),
		processed:   make(map[string]struct{}),
	}
}

// RestoreCatalog rebuilds a catalog from persisted state. Supervisors keep
// the order given. The processed set and the tag set are derived from the
// projects alone, so neither a stored cursor nor a stored tag list is
// trusted.
func RestoreCatalog(projects []Project, supervisors []Supervisor) *Catalog {
	c := NewCatalog()
	for _, p := range projects {
		if p.Tags == nil {
			p.Tags = []string{}
		}
		c.projects = append(c.projects, p)
		c.processed[p.ID] = struct{}{}
		for _, t := range p.Tags {
			c.tags[t] = struct{}{}
		}
	}
	for _, s := range supervisors {
		if s.Name == "" {
			continue
		}
		if _, exists := c.supervisors[s.Name]; exists {
			continue
		}
		sup := s
		sup.Projects = slices.Clone(s.Projects)
		if sup.Projects == nil {
			sup.Projects = []string{}
		}
		c.supervisors[s.Name] = &sup
		c.supervisorOrder = append(c.supervisorOrder, s.Name)
		if n, ok := supervisorOrdinal(s.ID); ok && n >= c.nextSupervisor {
			c.nextSupervisor = n + 1
		}
	}
	c.nextSupervisor = max(c.nextSupervisor, len(c.supervisors))
	return c
}

// Merge applies one enriched project to the catalog: the project is
// appended, its ID is marked processed, its tags join the tag set and its
// supervisor entry is created or extended.
//
// Merging an already processed ID leaves the catalog untouched and returns
// ErrDuplicateProject.
func (c *Catalog) Merge(p Project) error {
	if p.ID == "" {
		return fmt.Errorf("%w: empty project id", ErrInvalidProject)
	}
	if _, done := c.processed[p.ID]; done {
		return fmt.Errorf("%w: %s", ErrDuplicateProject, p.ID)
	}

	p.Tags = slices.Clone(p.Tags)
	if p.Tags == nil {
		p.Tags = []string{}
	}
	p.Courses = slices.Clone(p.Courses)
	if p.Courses == nil {
		p.Courses = []string{}
	}

	c.projects = append(c.projects, p)
	c.processed[p.ID] = struct{}{}
	for _, t := range p.Tags {
		c.tags[t] = struct{}{}
	}

	if !IsTrackedSupervisor(p.Supervisor) {
		return nil
	}
	sup, ok := c.supervisors[p.Supervisor]
	if !ok {
		sup = &Supervisor{
			ID:       SupervisorID(c.nextSupervisor),
			Name:     p.Supervisor,
			Projects: []string{},
		}
		c.nextSupervisor++
		c.supervisors[p.Supervisor] = sup
		c.supervisorOrder = append(c.supervisorOrder, p.Supervisor)
	}
	sup.Projects = append(sup.Projects, p.ID)
	return nil
}

// IsProcessed reports whether a record ID already has a project in the catalog.
func (c *Catalog) IsProcessed(id string) bool {
	_, ok := c.processed[id]
	return ok
}

// Len returns the number of projects.
func (c *Catalog) Len() int {
	return len(c.projects)
}

// Projects returns the projects in processing order. Callers must not
// modify the returned slice.
func (c *Catalog) Projects() []Project {
	return c.projects
}

// ProcessedIDs returns the processed record IDs in sorted order.
func (c *Catalog) ProcessedIDs() []string {
	ids := make([]string, 0, len(c.processed))
	for id := range c.processed {
		ids = append(ids, id)
	}
	sort.Strings(ids)
	return ids
}

// Supervisor returns a copy of the supervisor entry for name.
func (c *Catalog) Supervisor(name string) (Supervisor, bool) {
	sup, ok := c.supervisors[name]
	if !ok {
		return Supervisor{}, false
	}
	out := *sup
	out.Projects = slices.Clone(sup.Projects)
	return out, true
}

// Supervisors returns copies of all supervisors in first-seen order.
func (c *Catalog) Supervisors() []Supervisor {
	out := make([]Supervisor, 0, len(c.supervisorOrder))
	for _, name := range c.supervisorOrder {
		sup, _ := c.Supervisor(name)
		out = append(out, sup)
	}
	return out
}

// HasTag reports whether tag has been assigned to at least one project.
func (c *Catalog) HasTag(tag string) bool {
	_, ok := c.tags[tag]
	return ok
}

// SortedTags returns the observed tag set in lexical order.
func (c *Catalog) SortedTags() []string {
	tags := make([]string, 0, len(c.tags))
	for t := range c.tags {
		tags = append(tags, t)
	}
	sort.Strings(tags)
	return tags
}

// Metadata returns the summary counts for the current state.
func (c *Catalog) Metadata() Metadata {
	return Metadata{
		TotalProjects:    len(c.projects),
		TotalSupervisors: len(c.supervisors),
		TotalTags:        len(c.tags),
	}
}

// SortSupervisorsByID orders supervisors by the numeric suffix of their
// synthetic ID, falling back to name. Used when a persisted form carries
// no ordering of its own.
func SortSupervisorsByID(supervisors []Supervisor) {
	sort.SliceStable(supervisors, func(i, j int) bool {
		ni, iok := supervisorOrdinal(supervisors[i].ID)
		nj, jok := supervisorOrdinal(supervisors[j].ID)
		switch {
		case iok && jok && ni != nj:
			return ni < nj
		case iok != jok:
			return iok
		}
		return supervisors[i].Name < supervisors[j].Name
	})
}

func supervisorOrdinal(id string) (int, bool) {
	suffix, ok := strings.CutPrefix(id, "supervisor_")
	if !ok {
		return 0, false
	}
	n, err := strconv.Atoi(suffix)
	if err != nil {
		return 0, false
	}
	return n, true
}
