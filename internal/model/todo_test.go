package model

import (
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func day(t *testing.T, s string) time.Time {
	t.Helper()
	d, err := ParseDate(s)
	require.NoError(t, err)
	return d
}

func TestNewTodoDefaults(t *testing.T) {
	td := NewTodo("Write spec", "draft", day(t, "2025-01-01"), PriorityHigh)
	d := td.Details()

	assert.NotEmpty(t, d.ID)
	assert.Equal(t, td.ID(), d.ID)
	assert.Equal(t, "Write spec", d.Title)
	assert.Equal(t, "draft", d.Description)
	assert.Equal(t, "2025-01-01", FormatDate(d.DueDate))
	assert.Equal(t, PriorityHigh, d.Priority)
	assert.Empty(t, d.Notes)
	assert.Empty(t, d.Checklist)
	assert.False(t, d.IsComplete)
}

func TestIDsAreUnique(t *testing.T) {
	seen := make(map[string]bool)
	for i := 0; i < 500; i++ {
		td := NewTodo("t", "", time.Now(), PriorityLow)
		p := NewProject("p", "")
		require.False(t, seen[td.ID()], "duplicate todo id %s", td.ID())
		require.False(t, seen[p.ID()], "duplicate project id %s", p.ID())
		seen[td.ID()] = true
		seen[p.ID()] = true
	}
}

func TestSetters(t *testing.T) {
	td := NewTodo("a", "b", day(t, "2025-01-01"), PriorityLow)
	td.SetTitle("title")
	td.SetDescription("desc")
	td.SetDueDate(time.Date(2025, 3, 4, 17, 30, 0, 0, time.UTC))
	td.SetPriority(PriorityMedium)
	td.SetNotes("notes")
	td.ToggleComplete()

	d := td.Details()
	assert.Equal(t, "title", d.Title)
	assert.Equal(t, "desc", d.Description)
	assert.Equal(t, "2025-03-04", FormatDate(d.DueDate))
	assert.Equal(t, time.UTC, d.DueDate.Location())
	assert.Zero(t, d.DueDate.Hour())
	assert.Equal(t, PriorityMedium, d.Priority)
	assert.Equal(t, "notes", d.Notes)
	assert.True(t, d.IsComplete)

	td.ToggleComplete()
	assert.False(t, td.Details().IsComplete)
	td.SetComplete(true)
	td.SetComplete(true)
	assert.True(t, td.Details().IsComplete)
}

func TestChecklist(t *testing.T) {
	td := NewTodo("a", "", time.Now(), PriorityLow)
	td.AddChecklistItem("one")
	td.AddChecklistItem("two")
	td.ToggleChecklistItem(1)
	td.ToggleChecklistItem(5)
	td.ToggleChecklistItem(-1)

	assert.Equal(t, []ChecklistItem{
		{Text: "one"},
		{Text: "two", Completed: true},
	}, td.Details().Checklist)
}

func TestDetailsIsACopy(t *testing.T) {
	td := NewTodo("a", "", time.Now(), PriorityLow)
	td.AddChecklistItem("one")

	d := td.Details()
	d.Checklist[0].Completed = true
	d.Checklist = append(d.Checklist, ChecklistItem{Text: "sneaky"})
	d.Title = "changed"

	got := td.Details()
	assert.Equal(t, "a", got.Title)
	assert.Equal(t, []ChecklistItem{{Text: "one"}}, got.Checklist)
}

func TestRestoreTodoKeepsEverything(t *testing.T) {
	src := NewTodo("a", "b", day(t, "2024-12-31"), PriorityHigh)
	src.SetNotes("n")
	src.AddChecklistItem("x")
	src.ToggleChecklistItem(0)
	src.ToggleComplete()

	restored := RestoreTodo(src.Details())
	assert.Equal(t, src.Details(), restored.Details())

	// the restored checklist is not aliased to the snapshot
	restored.ToggleChecklistItem(0)
	assert.True(t, src.Details().Checklist[0].Completed)
}

func TestParsePriority(t *testing.T) {
	tests := []struct {
		in      string
		want    Priority
		wantErr bool
	}{
		{in: "low", want: PriorityLow},
		{in: " Medium ", want: PriorityMedium},
		{in: "HIGH", want: PriorityHigh},
		{in: "urgent", wantErr: true},
		{in: "", wantErr: true},
	}
	for _, tt := range tests {
		t.Run(tt.in, func(t *testing.T) {
			got, err := ParsePriority(tt.in)
			if tt.wantErr {
				assert.Error(t, err)
				return
			}
			require.NoError(t, err)
			assert.Equal(t, tt.want, got)
		})
	}
}

func TestParseDate(t *testing.T) {
	_, err := ParseDate("01/02/2025")
	assert.Error(t, err)

	d, err := ParseDate("2025-02-28")
	require.NoError(t, err)
	assert.Equal(t, "2025-02-28", FormatDate(d))
}

func TestNewTodoUnknownPriorityIsMedium(t *testing.T) {
	for _, p := range []Priority{"", "urgent", "HIGH"} {
		td := NewTodo("t", "", day(t, "2025-01-01"), p)
		assert.Equal(t, PriorityMedium, td.Details().Priority, "priority %q", p)
	}
}

func TestSettersIgnoreValuesThatCannotBeStored(t *testing.T) {
	td := NewTodo("t", "", day(t, "2025-01-01"), PriorityHigh)
	td.SetPriority("urgent")
	td.SetPriority("")
	td.SetDueDate(time.Date(10000, 1, 1, 0, 0, 0, 0, time.UTC))
	td.SetDueDate(time.Time{}.AddDate(-1, 0, 0))

	d := td.Details()
	assert.Equal(t, PriorityHigh, d.Priority)
	assert.Equal(t, "2025-01-01", FormatDate(d.DueDate))

	td.SetDueDate(time.Date(9999, 12, 31, 0, 0, 0, 0, time.UTC))
	assert.Equal(t, "9999-12-31", FormatDate(td.Details().DueDate))
}

func TestDueInRange(t *testing.T) {
	assert.True(t, DueInRange(time.Date(1, 1, 1, 0, 0, 0, 0, time.UTC)))
	assert.True(t, DueInRange(time.Date(9999, 12, 31, 0, 0, 0, 0, time.UTC)))
	assert.False(t, DueInRange(time.Date(0, 12, 31, 0, 0, 0, 0, time.UTC)))
	assert.False(t, DueInRange(time.Date(10000, 1, 1, 0, 0, 0, 0, time.UTC)))
}
