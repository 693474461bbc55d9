package model

import "errors"

var ErrTodoNotFound = errors.New("todo not found")

// Project owns an ordered list of todos; insertion order is display order.
type Project struct {
	id          string
	title       string
	description string
	todos       []*Todo
}

// NewProject creates an empty project with a fresh id.
func NewProject(title, description string) *Project {
	return &Project{id: NewID(), title: title, description: description}
}

// RestoreProject rebuilds a project with a known id and todos.
func RestoreProject(id, title, description string, todos []*Todo) *Project {
	return &Project{
		id:          id,
		title:       title,
		description: description,
		todos:       append([]*Todo(nil), todos...),
	}
}

func (p *Project) ID() string          { return p.id }
func (p *Project) Title() string       { return p.title }
func (p *Project) Description() string { return p.description }

// Todos returns a copy of the todo list. The todos themselves are shared.
func (p *Project) Todos() []*Todo {
	out := make([]*Todo, len(p.todos))
	copy(out, p.todos)
	return out
}

func (p *Project) Todo(id string) (*Todo, bool) {
	for _, t := range p.todos {
		if t.id == id {
			return t, true
		}
	}
	return nil, false
}

// AddTodo appends t. Ids are not checked for duplicates.
func (p *Project) AddTodo(t *Todo) {
	p.todos = append(p.todos, t)
}

// RemoveTodo drops the todo with the given id and reports whether one matched.
func (p *Project) RemoveTodo(id string) bool {
	kept := p.todos[:0:0]
	for _, t := range p.todos {
		if t.id != id {
			kept = append(kept, t)
		}
	}
	if len(kept) == len(p.todos) {
		return false
	}
	p.todos = kept
	return true
}

// EditTodo applies updates in order. Nothing changes when id is unknown.
func (p *Project) EditTodo(id string, updates ...TodoUpdate) error {
	t, ok := p.Todo(id)
	if !ok {
		return ErrTodoNotFound
	}
	for _, u := range updates {
		u.applyTodo(t)
	}
	return nil
}

func (p *Project) SetTitle(title string)             { p.title = title }
func (p *Project) SetDescription(description string) { p.description = description }

func (p *Project) Edit(updates ...ProjectUpdate) {
	for _, u := range updates {
		u.applyProject(p)
	}
}
