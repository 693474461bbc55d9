package model

import "time"

// TodoUpdate is one field change for a todo. The set of updates is closed:
// only the Update* types in this package implement it.
type TodoUpdate interface {
	applyTodo(*Todo)
}

// ProjectUpdate is one field change for a project.
type ProjectUpdate interface {
	applyProject(*Project)
}

type (
	UpdateTitle       string
	UpdateDescription string
	UpdateDueDate     time.Time
	UpdatePriority    Priority
	UpdateNotes       string
	// UpdateComplete sets the completion flag; applying it twice is a no-op.
	UpdateComplete bool
	// UpdateChecklistAdd appends an unchecked checklist item.
	UpdateChecklistAdd string
	// UpdateChecklistToggle flips the checklist item at that index, if any.
	UpdateChecklistToggle int
)

func (u UpdateTitle) applyTodo(t *Todo)           { t.SetTitle(string(u)) }
func (u UpdateDescription) applyTodo(t *Todo)     { t.SetDescription(string(u)) }
func (u UpdateDueDate) applyTodo(t *Todo)         { t.SetDueDate(time.Time(u)) }
func (u UpdatePriority) applyTodo(t *Todo)        { t.SetPriority(Priority(u)) }
func (u UpdateNotes) applyTodo(t *Todo)           { t.SetNotes(string(u)) }
func (u UpdateComplete) applyTodo(t *Todo)        { t.SetComplete(bool(u)) }
func (u UpdateChecklistAdd) applyTodo(t *Todo)    { t.AddChecklistItem(string(u)) }
func (u UpdateChecklistToggle) applyTodo(t *Todo) { t.ToggleChecklistItem(int(u)) }

func (u UpdateTitle) applyProject(p *Project)       { p.SetTitle(string(u)) }
func (u UpdateDescription) applyProject(p *Project) { p.SetDescription(string(u)) }
