package source

import (
	"encoding/csv"
	"errors"
	"fmt"
	"io"
	"os"
	"strings"

	"github.com/nggurbanov/course-project-discovery/core"
)

// Column names of the application form export.
const (
	ColumnTitleRU          = "Наименование проекта на русском"
	ColumnTitleEN          = "Наименование проекта на английском"
	ColumnSupervisor       = "ФИО руководителя"
	ColumnCoSupervisor     = "ФИО соруководителя"
	ColumnAnnotation       = "Аннотация проекта"
	ColumnGoals            = "Цель проекта"
	ColumnTasks            = "Задачи проекта"
	ColumnRequirements     = "Требования, предъявляемые к студентам"
	ColumnType             = "Тип проекта"
	ColumnFormat           = "Вид проекта"
	ColumnContact          = "Контактная почта соруководителя"
	ColumnTeamSize         = "Предполагаемое кол-во студентов на проекте"
	ColumnSelectionForm    = "Форма отбора на проект"
	ColumnPreferredContact = "Предпочтительный способ связи"
	ColumnVideoLink        = "Ссылка на видео-ролик проекта"
	ColumnPresentationLink = "Ссылка на презентацию проекта"
)

const (
	// DefaultDelimiter separates fields in the export.
	DefaultDelimiter = ';'

	courseMarker = "курс"
	courseYes    = "да"
	utf8BOM      = "\ufeff"
)

type options struct {
	delimiter rune
}

// Option configures the reader.
type Option func(*options)

// WithDelimiter overrides the field separator.
func WithDelimiter(r rune) Option {
	return func(o *options) {
		o.delimiter = r
	}
}

// ReadCSV reads every record from the export at path.
func ReadCSV(path string, opts ...Option) ([]core.Record, error) {
	f, err := os.Open(path)
	if err != nil {
		return nil, fmt.Errorf("open input: %w", err)
	}
	defer f.Close()

	records, err := Parse(f, opts...)
	if err != nil {
		return nil, fmt.Errorf("read %s: %w", path, err)
	}
	return records, nil
}

// Parse reads records from r. Rows with a blank title are still returned;
// the pipeline decides what to skip.
func Parse(r io.Reader, opts ...Option) ([]core.Record, error) {
	o := options{delimiter: DefaultDelimiter}
	for _, opt := range opts {
		opt(&o)
	}

	reader := csv.NewReader(r)
	reader.Comma = o.delimiter
	reader.FieldsPerRecord = -1
	reader.LazyQuotes = true

	header, err := reader.Read()
	if err != nil {
		if errors.Is(err, io.EOF) {
			return nil, ErrMissingHeader
		}
		return nil, fmt.Errorf("header: %w", err)
	}
	cols := newColumns(header)
	if _, ok := cols.index[ColumnTitleRU]; !ok {
		return nil, ErrMissingTitleColumn
	}

	var records []core.Record
	for row := 0; ; row++ {
		fields, err := reader.Read()
		if errors.Is(err, io.EOF) {
			break
		}
		if err != nil {
			return nil, fmt.Errorf("row %d: %w", row+1, err)
		}
		records = append(records, cols.record(row, fields))
	}
	return records, nil
}

// columns maps header names to field positions.
type columns struct {
	names   []string
	index   map[string]int
	courses []int
}

func newColumns(header []string) columns {
	c := columns{
		names: make([]string, len(header)),
		index: make(map[string]int, len(header)),
	}
	for i, name := range header {
		if i == 0 {
			name = strings.TrimPrefix(name, utf8BOM)
		}
		name = strings.TrimSpace(name)
		c.names[i] = name
		if _, dup := c.index[name]; !dup {
			c.index[name] = i
		}
		if strings.Contains(strings.ToLower(name), courseMarker) {
			c.courses = append(c.courses, i)
		}
	}
	return c
}

func (c columns) get(fields []string, name string) string {
	i, ok := c.index[name]
	if !ok || i >= len(fields) {
		return ""
	}
	return strings.TrimSpace(fields[i])
}

func (c columns) record(row int, fields []string) core.Record {
	courses := make([]string, 0, len(c.courses))
	for _, i := range c.courses {
		if i < len(fields) && strings.ToLower(strings.TrimSpace(fields[i])) == courseYes {
			courses = append(courses, c.names[i])
		}
	}

	return core.Record{
		ID:               core.RecordID(row),
		TitleRU:          c.get(fields, ColumnTitleRU),
		TitleEN:          c.get(fields, ColumnTitleEN),
		Supervisor:       c.get(fields, ColumnSupervisor),
		CoSupervisor:     c.get(fields, ColumnCoSupervisor),
		Annotation:       c.get(fields, ColumnAnnotation),
		Goals:            c.get(fields, ColumnGoals),
		Tasks:            c.get(fields, ColumnTasks),
		Requirements:     c.get(fields, ColumnRequirements),
		Type:             c.get(fields, ColumnType),
		Format:           c.get(fields, ColumnFormat),
		Courses:          courses,
		Contact:          c.get(fields, ColumnContact),
		TeamSize:         c.get(fields, ColumnTeamSize),
		SelectionForm:    c.get(fields, ColumnSelectionForm),
		PreferredContact: c.get(fields, ColumnPreferredContact),
		VideoLink:        c.get(fields, ColumnVideoLink),
		PresentationLink: c.get(fields, ColumnPresentationLink),
	}
}
