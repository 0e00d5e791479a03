package core

import (
	"encoding/binary"
	"fmt"

	"github.com/go-crypt/x/blake2b"
)

// MaxTags is the upper bound on the number of tags attached to a project.
const MaxTags = 5

// MissingSupervisor is the placeholder some exports write for an empty
// supervisor cell. It is never tracked as a supervisor.
const MissingSupervisor = "nan"

// RecordID returns the stable identifier for the input row at rowIndex.
// Row indices are 0-based and count data rows only (the header is excluded).
func RecordID(rowIndex int) string {
	return fmt.Sprintf("project_%d", rowIndex)
}

// SupervisorID returns the synthetic identifier for the n-th supervisor seen.
func SupervisorID(n int) string {
	return fmt.Sprintf("supervisor_%d", n)
}

// IDFromContent generates a deterministic ID from text content using BLAKE2b hashing.
// This ensures that identical content produces identical IDs.
func IDFromContent(text string) uint64 {
	h, _ := blake2b.New(8, nil) // 8 bytes = 64 bits
	h.Write([]byte(text))
	sum := h.Sum(nil)
	return binary.LittleEndian.Uint64(sum)
}

// Record is one input row describing a student project.
type Record struct {
	ID               string   `json:"id"`
	TitleRU          string   `json:"title_ru"`
	TitleEN          string   `json:"title_en"`
	Supervisor       string   `json:"supervisor"`
	CoSupervisor     string   `json:"co_supervisor"`
	Annotation       string   `json:"annotation"`
	Goals            string   `json:"goals"`
	Tasks            string   `json:"tasks"`
	Requirements     string   `json:"requirements"`
	Type             string   `json:"type"`
	Format           string   `json:"format"`
	Courses          []string `json:"courses"`
	Contact          string   `json:"contact"`
	TeamSize         string   `json:"team_size"`
	SelectionForm    string   `json:"selection_form"`
	PreferredContact string   `json:"preferred_contact"`
	VideoLink        string   `json:"video_link"`
	PresentationLink string   `json:"presentation_link"`
}

// Project is a Record enriched with thematic tags.
// It serializes as a single flat JSON object.
type Project struct {
	Record
	Tags []string `json:"tags"`
}

// NewProject pairs a record with its tags. A nil tag slice is stored as
// an empty one so the catalog always carries a "tags" array.
func NewProject(record Record, tags []string) Project {
	if tags == nil {
		tags = []string{}
	}
	if record.Courses == nil {
		record.Courses = []string{}
	}
	return Project{Record: record, Tags: tags}
}

// Supervisor groups the projects run by one person, keyed by exact name.
type Supervisor struct {
	ID       string   `json:"id"`
	Name     string   `json:"name"`
	Projects []string `json:"projects"`
}

// Metadata carries the summary counts persisted next to the catalog.
type Metadata struct {
	TotalProjects    int `json:"total_projects"`
	TotalSupervisors int `json:"total_supervisors"`
	TotalTags        int `json:"total_tags"`
}

// IsTrackedSupervisor reports whether a supervisor name takes part in
// supervisor tracking.
func IsTrackedSupervisor(name string) bool {
	return name != "" && name != MissingSupervisor
}
