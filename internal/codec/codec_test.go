package codec

import (
	"bytes"
	"encoding/json"
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	"gopkg.in/yaml.v3"

	"github.com/Makepad-fr/tada/internal/model"
)

func sampleProjects(t *testing.T) []*model.Project {
	t.Helper()
	due, err := model.ParseDate("2025-01-01")
	require.NoError(t, err)

	inbox := model.NewProject("Inbox", "Default project")
	welcome := model.NewTodo("Welcome", "say hi", due, model.PriorityLow)
	welcome.SetNotes("remember")
	welcome.AddChecklistItem("read")
	welcome.ToggleChecklistItem(0)
	welcome.ToggleComplete()
	inbox.AddTodo(welcome)

	work := model.NewProject("Work", "")
	work.AddTodo(model.NewTodo("Write spec", "", due, model.PriorityHigh))
	work.AddTodo(model.NewTodo("Review", "PR 12", due, model.PriorityMedium))

	empty := model.NewProject("Someday", "maybe")
	return []*model.Project{inbox, work, empty}
}

func assertSameProjects(t *testing.T, want, got []*model.Project) {
	t.Helper()
	require.Len(t, got, len(want))
	for i := range want {
		assert.Equal(t, want[i].ID(), got[i].ID())
		assert.Equal(t, want[i].Title(), got[i].Title())
		assert.Equal(t, want[i].Description(), got[i].Description())
		wt, gt := want[i].Todos(), got[i].Todos()
		require.Len(t, gt, len(wt))
		for j := range wt {
			assert.Equal(t, wt[j].Details(), gt[j].Details())
		}
	}
}

func TestRoundTrip(t *testing.T) {
	projects := sampleProjects(t)
	blob, err := Encode(projects)
	require.NoError(t, err)

	got, err := Decode(blob)
	require.NoError(t, err)
	assertSameProjects(t, projects, got)
}

func TestEncodeLayout(t *testing.T) {
	blob, err := Encode(sampleProjects(t)[:1])
	require.NoError(t, err)

	var raw []map[string]any
	require.NoError(t, json.Unmarshal(blob, &raw))
	require.Len(t, raw, 1)
	assert.ElementsMatch(t, []string{"id", "title", "description", "todos"}, keys(raw[0]))

	todos := raw[0]["todos"].([]any)
	require.Len(t, todos, 1)
	todo := todos[0].(map[string]any)
	assert.ElementsMatch(t,
		[]string{"id", "title", "description", "dueDate", "priority", "notes", "checklist", "isComplete"},
		keys(todo))
	assert.Equal(t, "2025-01-01", todo["dueDate"])
	assert.Equal(t, "low", todo["priority"])
	assert.Equal(t, true, todo["isComplete"])
}

func TestEncodeEmptyTodosIsArray(t *testing.T) {
	blob, err := Encode([]*model.Project{model.NewProject("Empty", "")})
	require.NoError(t, err)
	assert.Contains(t, string(blob), `"todos":[]`)
}

func keys(m map[string]any) []string {
	out := make([]string, 0, len(m))
	for k := range m {
		out = append(out, k)
	}
	return out
}

func TestDecodeRejects(t *testing.T) {
	tests := []struct {
		name string
		blob string
	}{
		{name: "not json", blob: `{{{`},
		{name: "object instead of array", blob: `{"id":"x"}`},
		{name: "missing todos", blob: `[{"id":"p","title":"t","description":""}]`},
		{name: "empty project id", blob: `[{"id":"","title":"t","description":"","todos":[]}]`},
		{name: "bad priority", blob: `[{"id":"p","title":"t","description":"","todos":[
			{"id":"a","title":"x","description":"","dueDate":"2025-01-01","priority":"urgent","isComplete":false}]}]`},
		{name: "bad date", blob: `[{"id":"p","title":"t","description":"","todos":[
			{"id":"a","title":"x","description":"","dueDate":"01/01/2025","priority":"low","isComplete":false}]}]`},
		{name: "missing completion", blob: `[{"id":"p","title":"t","description":"","todos":[
			{"id":"a","title":"x","description":"","dueDate":"2025-01-01","priority":"low"}]}]`},
		{name: "duplicate project", blob: `[
			{"id":"p","title":"a","description":"","todos":[]},
			{"id":"p","title":"b","description":"","todos":[]}]`},
	}
	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			_, err := Decode([]byte(tt.blob))
			assert.Error(t, err)
		})
	}
}

func TestDecodeValidationErrorType(t *testing.T) {
	_, err := Decode([]byte(`[{"id":"p"}]`))
	var verr *ValidationError
	assert.ErrorAs(t, err, &verr)
}

func TestDecodeOptionalNotesAndChecklist(t *testing.T) {
	blob := `[{"id":"p","title":"t","description":"","todos":[
		{"id":"a","title":"x","description":"","dueDate":"2025-01-01","priority":"low","isComplete":true}]}]`
	got, err := Decode([]byte(blob))
	require.NoError(t, err)
	require.Len(t, got, 1)
	d := got[0].Todos()[0].Details()
	assert.Equal(t, "a", d.ID)
	assert.Empty(t, d.Notes)
	assert.Empty(t, d.Checklist)
	assert.True(t, d.IsComplete)
}

func TestWriteYAML(t *testing.T) {
	var buf bytes.Buffer
	require.NoError(t, WriteYAML(&buf, sampleProjects(t)))

	var records []ProjectRecord
	require.NoError(t, yaml.Unmarshal(buf.Bytes(), &records))
	require.Len(t, records, 3)
	assert.Equal(t, "Inbox", records[0].Title)
	assert.Equal(t, "2025-01-01", records[0].Todos[0].DueDate)
	assert.Contains(t, buf.String(), "due_date:")
}

func TestWriteJSONDecodes(t *testing.T) {
	projects := sampleProjects(t)
	var buf bytes.Buffer
	require.NoError(t, WriteJSON(&buf, projects))

	got, err := Decode(buf.Bytes())
	require.NoError(t, err)
	assertSameProjects(t, projects, got)
}

func TestEncodeRefusesWhatDecodeWouldReject(t *testing.T) {
	far := time.Date(10000, 1, 1, 0, 0, 0, 0, time.UTC)
	p := model.NewProject("Work", "")
	p.AddTodo(model.NewTodo("far away", "", far, model.PriorityLow))

	tests := []struct {
		name     string
		projects []*model.Project
	}{
		{name: "five digit year", projects: []*model.Project{p}},
		{name: "duplicate project", projects: []*model.Project{
			model.RestoreProject("p", "a", "", nil),
			model.RestoreProject("p", "b", "", nil),
		}},
	}
	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			_, err := Encode(tt.projects)
			var verr *ValidationError
			assert.ErrorAs(t, err, &verr)
		})
	}
}
