package model

import (
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestProjectAddTodo(t *testing.T) {
	p := NewProject("Work", "")
	td := NewTodo("Write spec", "", day(t, "2025-01-01"), PriorityHigh)
	p.AddTodo(td)

	todos := p.Todos()
	require.Len(t, todos, 1)
	assert.Equal(t, "Write spec", todos[0].Details().Title)
}

func TestProjectTodosIsACopy(t *testing.T) {
	p := NewProject("Work", "")
	a := NewTodo("a", "", time.Now(), PriorityLow)
	b := NewTodo("b", "", time.Now(), PriorityLow)
	p.AddTodo(a)
	p.AddTodo(b)

	got := p.Todos()
	got[0], got[1] = got[1], got[0]
	_ = append(got, NewTodo("c", "", time.Now(), PriorityLow))

	todos := p.Todos()
	require.Len(t, todos, 2)
	assert.Same(t, a, todos[0])
	assert.Same(t, b, todos[1])
}

func TestProjectRemoveTodo(t *testing.T) {
	p := NewProject("Work", "")
	a := NewTodo("a", "", time.Now(), PriorityLow)
	b := NewTodo("b", "", time.Now(), PriorityLow)
	p.AddTodo(a)
	p.AddTodo(b)

	assert.False(t, p.RemoveTodo("missing"))
	assert.Len(t, p.Todos(), 2)

	assert.True(t, p.RemoveTodo(a.ID()))
	todos := p.Todos()
	require.Len(t, todos, 1)
	assert.Same(t, b, todos[0])
}

func TestProjectEditTodo(t *testing.T) {
	p := NewProject("Work", "")
	td := NewTodo("Write spec", "d", day(t, "2025-01-01"), PriorityHigh)
	p.AddTodo(td)
	before := td.Details()

	require.NoError(t, p.EditTodo(td.ID(), UpdatePriority(PriorityLow)))

	after := td.Details()
	assert.Equal(t, PriorityLow, after.Priority)
	after.Priority = before.Priority
	assert.Equal(t, before, after)
}

func TestProjectEditTodoAllFields(t *testing.T) {
	p := NewProject("Work", "")
	td := NewTodo("a", "b", day(t, "2025-01-01"), PriorityHigh)
	p.AddTodo(td)

	err := p.EditTodo(td.ID(),
		UpdateTitle("t"),
		UpdateDescription("d"),
		UpdateDueDate(day(t, "2026-06-01")),
		UpdatePriority(PriorityMedium),
		UpdateNotes("n"),
		UpdateComplete(true),
	)
	require.NoError(t, err)

	d := td.Details()
	assert.Equal(t, "t", d.Title)
	assert.Equal(t, "d", d.Description)
	assert.Equal(t, "2026-06-01", FormatDate(d.DueDate))
	assert.Equal(t, PriorityMedium, d.Priority)
	assert.Equal(t, "n", d.Notes)
	assert.True(t, d.IsComplete)

	// completion is set, not toggled
	require.NoError(t, p.EditTodo(td.ID(), UpdateComplete(true)))
	assert.True(t, td.Details().IsComplete)
}

func TestProjectEditUnknownTodo(t *testing.T) {
	p := NewProject("Work", "")
	td := NewTodo("a", "", time.Now(), PriorityLow)
	p.AddTodo(td)
	before := td.Details()

	err := p.EditTodo("missing", UpdateTitle("x"))
	assert.ErrorIs(t, err, ErrTodoNotFound)
	assert.Equal(t, before, td.Details())
}

func TestProjectEdit(t *testing.T) {
	p := NewProject("Work", "")
	p.Edit(UpdateTitle("Home"), UpdateDescription("chores"))
	assert.Equal(t, "Home", p.Title())
	assert.Equal(t, "chores", p.Description())
}

func TestRestoreProject(t *testing.T) {
	td := NewTodo("a", "", time.Now(), PriorityLow)
	todos := []*Todo{td}
	p := RestoreProject("pid", "Work", "desc", todos)
	todos[0] = nil

	assert.Equal(t, "pid", p.ID())
	assert.Equal(t, "Work", p.Title())
	assert.Equal(t, "desc", p.Description())
	require.Len(t, p.Todos(), 1)
	assert.Same(t, td, p.Todos()[0])
}
