package model

import (
	"fmt"
	"strings"
	"time"

	"github.com/google/uuid"
)

// DateLayout is the ISO 8601 calendar date used for due dates.
const DateLayout = "2006-01-02"

// Priority ranks a todo.
type Priority string

const (
	PriorityLow    Priority = "low"
	PriorityMedium Priority = "medium"
	PriorityHigh   Priority = "high"
)

// Valid reports whether p is one of the known priorities.
func (p Priority) Valid() bool {
	switch p {
	case PriorityLow, PriorityMedium, PriorityHigh:
		return true
	}
	return false
}

// ParsePriority accepts low, medium or high in any case.
func ParsePriority(s string) (Priority, error) {
	p := Priority(strings.ToLower(strings.TrimSpace(s)))
	if !p.Valid() {
		return "", fmt.Errorf("unknown priority %q (want low, medium or high)", s)
	}
	return p, nil
}

// ParseDate parses an ISO 8601 calendar date.
func ParseDate(s string) (time.Time, error) {
	t, err := time.Parse(DateLayout, strings.TrimSpace(s))
	if err != nil {
		return time.Time{}, fmt.Errorf("parse date: %w", err)
	}
	return t, nil
}

// FormatDate renders a due date the way it is persisted.
func FormatDate(t time.Time) string { return t.Format(DateLayout) }

// Day drops the clock part of t, keeping its calendar date in UTC.
func Day(t time.Time) time.Time {
	y, m, d := t.Date()
	return time.Date(y, m, d, 0, 0, 0, 0, time.UTC)
}

// DueInRange reports whether t has a year the persisted date layout can hold.
func DueInRange(t time.Time) bool {
	y := t.Year()
	return y >= 1 && y <= 9999
}

// NewID returns a fresh random identifier.
func NewID() string { return uuid.NewString() }

// ChecklistItem is one line of a todo's checklist.
type ChecklistItem struct {
	Text      string
	Completed bool
}

// Details is a value snapshot of a Todo. Mutating it never touches the Todo.
type Details struct {
	ID          string
	Title       string
	Description string
	DueDate     time.Time
	Priority    Priority
	Notes       string
	Checklist   []ChecklistItem
	IsComplete  bool
}

// Todo is one task. Its id never changes; every other field goes through a setter.
type Todo struct {
	id          string
	title       string
	description string
	dueDate     time.Time
	priority    Priority
	notes       string
	checklist   []ChecklistItem
	complete    bool
}

// NewTodo creates an incomplete todo with a fresh id. An unknown priority
// becomes medium.
func NewTodo(title, description string, due time.Time, priority Priority) *Todo {
	if !priority.Valid() {
		priority = PriorityMedium
	}
	return &Todo{
		id:          NewID(),
		title:       title,
		description: description,
		dueDate:     Day(due),
		priority:    priority,
	}
}

// RestoreTodo rebuilds a todo from a snapshot, keeping its id.
func RestoreTodo(d Details) *Todo {
	t := &Todo{
		id:          d.ID,
		title:       d.Title,
		description: d.Description,
		dueDate:     Day(d.DueDate),
		priority:    d.Priority,
		notes:       d.Notes,
		complete:    d.IsComplete,
	}
	if len(d.Checklist) > 0 {
		t.checklist = append([]ChecklistItem(nil), d.Checklist...)
	}
	return t
}

func (t *Todo) ID() string { return t.id }

func (t *Todo) Details() Details {
	d := Details{
		ID:          t.id,
		Title:       t.title,
		Description: t.description,
		DueDate:     t.dueDate,
		Priority:    t.priority,
		Notes:       t.notes,
		IsComplete:  t.complete,
	}
	d.Checklist = make([]ChecklistItem, len(t.checklist))
	copy(d.Checklist, t.checklist)
	return d
}

func (t *Todo) SetTitle(title string)             { t.title = title }
func (t *Todo) SetDescription(description string) { t.description = description }
func (t *Todo) SetNotes(notes string)             { t.notes = notes }
func (t *Todo) SetComplete(done bool)             { t.complete = done }
func (t *Todo) ToggleComplete()                   { t.complete = !t.complete }

// SetDueDate ignores dates outside years 1 to 9999.
func (t *Todo) SetDueDate(due time.Time) {
	if DueInRange(due) {
		t.dueDate = Day(due)
	}
}

// SetPriority ignores anything but low, medium or high.
func (t *Todo) SetPriority(p Priority) {
	if p.Valid() {
		t.priority = p
	}
}

func (t *Todo) AddChecklistItem(text string) {
	t.checklist = append(t.checklist, ChecklistItem{Text: text})
}

// ToggleChecklistItem flips item i; out-of-range indexes are ignored.
func (t *Todo) ToggleChecklistItem(i int) {
	if i < 0 || i >= len(t.checklist) {
		return
	}
	t.checklist[i].Completed = !t.checklist[i].Completed
}
