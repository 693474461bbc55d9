// Package codec converts projects to and from the persisted blob.
//
// The blob is a JSON array of projects, each carrying its fully
// materialized todos. It is validated against an embedded JSON Schema
// before anything is rebuilt, so a malformed or partial blob fails as a
// whole instead of producing half-restored state.
package codec

import (
	"bytes"
	_ "embed"
	"encoding/json"
	"fmt"
	"io"
	"sync"

	jsonschema "github.com/santhosh-tekuri/jsonschema/v5"
	"gopkg.in/yaml.v3"

	"github.com/Makepad-fr/tada/internal/model"
)

//go:embed projects.schema.json
var schemaJSON string

const schemaURL = "projects.schema.json"

// ProjectRecord is the stored form of a project.
type ProjectRecord struct {
	ID          string       `json:"id" yaml:"id"`
	Title       string       `json:"title" yaml:"title"`
	Description string       `json:"description" yaml:"description"`
	Todos       []TodoRecord `json:"todos" yaml:"todos"`
}

// TodoRecord is the stored form of a todo snapshot.
type TodoRecord struct {
	ID          string            `json:"id" yaml:"id"`
	Title       string            `json:"title" yaml:"title"`
	Description string            `json:"description" yaml:"description"`
	DueDate     string            `json:"dueDate" yaml:"due_date"`
	Priority    model.Priority    `json:"priority" yaml:"priority"`
	Notes       string            `json:"notes" yaml:"notes"`
	Checklist   []ChecklistRecord `json:"checklist" yaml:"checklist"`
	IsComplete  bool              `json:"isComplete" yaml:"is_complete"`
}

type ChecklistRecord struct {
	Text      string `json:"text" yaml:"text"`
	Completed bool   `json:"completed" yaml:"completed"`
}

// ValidationError reports a blob that does not match the schema.
type ValidationError struct {
	Err error
}

func (e *ValidationError) Error() string { return "invalid projects blob: " + e.Err.Error() }
func (e *ValidationError) Unwrap() error { return e.Err }

var (
	schemaOnce sync.Once
	schema     *jsonschema.Schema
	schemaErr  error
)

func compiledSchema() (*jsonschema.Schema, error) {
	schemaOnce.Do(func() {
		compiler := jsonschema.NewCompiler()
		compiler.Draft = jsonschema.Draft2020
		compiler.AssertFormat = true
		if err := compiler.AddResource(schemaURL, bytes.NewReader([]byte(schemaJSON))); err != nil {
			schemaErr = fmt.Errorf("add schema: %w", err)
			return
		}
		schema, schemaErr = compiler.Compile(schemaURL)
		if schemaErr != nil {
			schemaErr = fmt.Errorf("compile schema: %w", schemaErr)
		}
	})
	return schema, schemaErr
}

// Records snapshots projects into their stored form.
func Records(projects []*model.Project) []ProjectRecord {
	out := make([]ProjectRecord, 0, len(projects))
	for _, p := range projects {
		rec := ProjectRecord{
			ID:          p.ID(),
			Title:       p.Title(),
			Description: p.Description(),
			Todos:       []TodoRecord{},
		}
		for _, t := range p.Todos() {
			rec.Todos = append(rec.Todos, todoRecord(t.Details()))
		}
		out = append(out, rec)
	}
	return out
}

func todoRecord(d model.Details) TodoRecord {
	rec := TodoRecord{
		ID:          d.ID,
		Title:       d.Title,
		Description: d.Description,
		DueDate:     model.FormatDate(d.DueDate),
		Priority:    d.Priority,
		Notes:       d.Notes,
		Checklist:   make([]ChecklistRecord, 0, len(d.Checklist)),
		IsComplete:  d.IsComplete,
	}
	for _, c := range d.Checklist {
		rec.Checklist = append(rec.Checklist, ChecklistRecord{Text: c.Text, Completed: c.Completed})
	}
	return rec
}

// Encode serializes every project into one JSON blob. The blob is checked
// with the same rules Decode applies, so anything Encode returns loads back.
func Encode(projects []*model.Project) ([]byte, error) {
	records := Records(projects)
	if err := uniqueIDs(records); err != nil {
		return nil, err
	}
	b, err := json.Marshal(records)
	if err != nil {
		return nil, fmt.Errorf("json marshal: %w", err)
	}
	if err := validate(b); err != nil {
		return nil, err
	}
	return b, nil
}

// Decode validates blob and rebuilds the projects it describes.
func Decode(blob []byte) ([]*model.Project, error) {
	if err := validate(blob); err != nil {
		return nil, err
	}

	var records []ProjectRecord
	if err := json.Unmarshal(blob, &records); err != nil {
		return nil, fmt.Errorf("json unmarshal: %w", err)
	}
	return FromRecords(records)
}

func validate(blob []byte) error {
	s, err := compiledSchema()
	if err != nil {
		return err
	}
	var doc any
	if err := json.Unmarshal(blob, &doc); err != nil {
		return fmt.Errorf("json unmarshal: %w", err)
	}
	if err := s.Validate(doc); err != nil {
		return &ValidationError{Err: err}
	}
	return nil
}

func uniqueIDs(records []ProjectRecord) error {
	seen := make(map[string]bool, len(records))
	for _, rec := range records {
		if seen[rec.ID] {
			return &ValidationError{Err: fmt.Errorf("duplicate project id %q", rec.ID)}
		}
		seen[rec.ID] = true
	}
	return nil
}

// FromRecords rebuilds projects, restoring each todo's notes, checklist and
// completion along with its base fields.
func FromRecords(records []ProjectRecord) ([]*model.Project, error) {
	if err := uniqueIDs(records); err != nil {
		return nil, err
	}
	out := make([]*model.Project, 0, len(records))
	for _, rec := range records {
		todos := make([]*model.Todo, 0, len(rec.Todos))
		for _, tr := range rec.Todos {
			due, err := model.ParseDate(tr.DueDate)
			if err != nil {
				return nil, &ValidationError{Err: fmt.Errorf("todo %s: %w", tr.ID, err)}
			}
			d := model.Details{
				ID:          tr.ID,
				Title:       tr.Title,
				Description: tr.Description,
				DueDate:     due,
				Priority:    tr.Priority,
				Notes:       tr.Notes,
				IsComplete:  tr.IsComplete,
			}
			for _, c := range tr.Checklist {
				d.Checklist = append(d.Checklist, model.ChecklistItem{Text: c.Text, Completed: c.Completed})
			}
			todos = append(todos, model.RestoreTodo(d))
		}
		out = append(out, model.RestoreProject(rec.ID, rec.Title, rec.Description, todos))
	}
	return out, nil
}

// WriteJSON writes an indented export of projects to w.
func WriteJSON(w io.Writer, projects []*model.Project) error {
	enc := json.NewEncoder(w)
	enc.SetIndent("", "  ")
	if err := enc.Encode(Records(projects)); err != nil {
		return fmt.Errorf("json encode: %w", err)
	}
	return nil
}

// WriteYAML writes a YAML export of projects to w.
func WriteYAML(w io.Writer, projects []*model.Project) error {
	enc := yaml.NewEncoder(w)
	enc.SetIndent(2)
	if err := enc.Encode(Records(projects)); err != nil {
		return fmt.Errorf("yaml encode: %w", err)
	}
	return enc.Close()
}
