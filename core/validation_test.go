package core

import (
	"errors"
	"testing"
)

func TestValidateTags(t *testing.T) {
	vocabulary := []string{"NLP", "LLM", "Финансы", "Медицина", "IoT", "Экология"}

	tests := []struct {
		name    string
		tags    []string
		wantErr error
	}{
		{
			name:    "no tags",
			tags:    nil,
			wantErr: nil,
		},
		{
			name:    "valid tags",
			tags:    []string{"NLP", "Финансы"},
			wantErr: nil,
		},
		{
			name:    "five tags",
			tags:    []string{"NLP", "LLM", "Финансы", "Медицина", "IoT"},
			wantErr: nil,
		},
		{
			name:    "six tags",
			tags:    []string{"NLP", "LLM", "Финансы", "Медицина", "IoT", "Экология"},
			wantErr: ErrTooManyTags,
		},
		{
			name:    "unknown tag",
			tags:    []string{"NLP", "Astrology"},
			wantErr: ErrInvalidTag,
		},
		{
			name:    "membership is exact",
			tags:    []string{"nlp"},
			wantErr: ErrInvalidTag,
		},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			err := ValidateTags(tt.tags, vocabulary)
			if tt.wantErr == nil {
				if err != nil {
					t.Errorf("ValidateTags() unexpected error = %v", err)
				}
				return
			}
			if !errors.Is(err, tt.wantErr) {
				t.Errorf("ValidateTags() error = %v, want %v", err, tt.wantErr)
			}
		})
	}
}

func TestValidateCatalog(t *testing.T) {
	tests := []struct {
		name    string
		build   func() *Catalog
		wantErr error
	}{
		{
			name:    "empty catalog",
			build:   NewCatalog,
			wantErr: nil,
		},
		{
			name: "supervisor lists foreign project",
			build: func() *Catalog {
				return RestoreCatalog(
					[]Project{project("project_0", "Петров")},
					[]Supervisor{{ID: "supervisor_0", Name: "Петров", Projects: []string{"project_0", "project_9"}}})
			},
			wantErr: ErrSupervisorMismatch,
		},
		{
			name: "supervisor entry missing",
			build: func() *Catalog {
				return RestoreCatalog([]Project{project("project_0", "Петров")}, nil)
			},
			wantErr: ErrSupervisorMismatch,
		},
		{
			name: "stale tag in set",
			build: func() *Catalog {
				c := RestoreCatalog([]Project{project("project_0", "", "NLP")}, nil)
				c.tags["IoT"] = struct{}{}
				return c
			},
			wantErr: ErrTagSetMismatch,
		},
		{
			name: "tag missing from set",
			build: func() *Catalog {
				c := RestoreCatalog([]Project{project("project_0", "", "NLP", "IoT")}, nil)
				delete(c.tags, "IoT")
				c.tags["LLM"] = struct{}{}
				return c
			},
			wantErr: ErrTagSetMismatch,
		},
		{
			name: "duplicate project",
			build: func() *Catalog {
				return RestoreCatalog([]Project{project("project_0", ""), project("project_0", "")}, nil)
			},
			wantErr: ErrDuplicateProject,
		},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			err := ValidateCatalog(tt.build())
			if tt.wantErr == nil {
				if err != nil {
					t.Errorf("ValidateCatalog() unexpected error = %v", err)
				}
				return
			}
			if !errors.Is(err, tt.wantErr) {
				t.Errorf("ValidateCatalog() error = %v, want %v", err, tt.wantErr)
			}
			if !errors.Is(err, ErrInvalidCatalog) {
				t.Errorf("ValidateCatalog() error = %v, want wrapped %v", err, ErrInvalidCatalog)
			}
		})
	}
}

func TestValidateCatalog_Nil(t *testing.T) {
	if err := ValidateCatalog(nil); !errors.Is(err, ErrInvalidCatalog) {
		t.Errorf("ValidateCatalog(nil) error = %v, want %v", err, ErrInvalidCatalog)
	}
}
