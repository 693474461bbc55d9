// Package manager owns every project and mediates all mutation.
//
// The first project is the Inbox; it is created on first run and can never
// be removed. Every successful mutation is followed by a synchronous save of
// the whole collection. Persistence is best effort: when the storage medium
// is unavailable saves are skipped, and a failed write is logged and
// reported without undoing the in-memory change.
package manager

import (
	"errors"
	"time"

	"github.com/charmbracelet/log"

	"github.com/Makepad-fr/tada/internal/logging"
	"github.com/Makepad-fr/tada/internal/model"
	"github.com/Makepad-fr/tada/internal/store"
)

const (
	DefaultKey = "tada.projects"

	InboxTitle       = "Inbox"
	InboxDescription = "Default project for new todos"
)

var (
	ErrProjectNotFound  = errors.New("project not found")
	ErrTodoNotFound     = model.ErrTodoNotFound
	ErrInboxProtected   = errors.New("the inbox project cannot be removed")
	ErrDuplicateProject = errors.New("project already exists")
	// ErrNotPersisted wraps storage failures. The in-memory change it
	// accompanies has already been applied.
	ErrNotPersisted = errors.New("change not persisted")
)

type Manager struct {
	storage  store.Storage
	key      string
	logger   *log.Logger
	now      func() time.Time
	projects []*model.Project
}

type Option func(*Manager)

func WithLogger(l *log.Logger) Option {
	return func(m *Manager) { m.logger = l }
}

// WithKey sets the storage key the collection is saved under.
func WithKey(key string) Option {
	return func(m *Manager) { m.key = key }
}

// WithClock overrides the clock used for the seed todo's due date.
func WithClock(now func() time.Time) Option {
	return func(m *Manager) { m.now = now }
}

// New returns an empty manager. Call Init before use.
func New(s store.Storage, opts ...Option) *Manager {
	m := &Manager{
		storage: s,
		key:     DefaultKey,
		logger:  logging.Discard(),
		now:     time.Now,
	}
	for _, opt := range opts {
		opt(m)
	}
	return m
}

// Init loads the stored collection. When nothing usable is stored it seeds
// the Inbox with a welcome todo and saves it right away.
func (m *Manager) Init() error {
	loaded, err := m.Load()
	if err != nil {
		m.logger.Warn("load failed, starting with defaults", "err", err)
	}
	if loaded && len(m.projects) > 0 {
		return nil
	}
	m.projects = []*model.Project{m.seedInbox()}
	return m.Save()
}

func (m *Manager) seedInbox() *model.Project {
	inbox := model.NewProject(InboxTitle, InboxDescription)
	inbox.AddTodo(model.NewTodo(
		"Welcome to tada",
		"Add todos here or create a project for them.",
		m.now(),
		model.PriorityLow,
	))
	return inbox
}

// AllProjects returns the projects in order. The slice is a copy; the
// projects are shared and stay live.
func (m *Manager) AllProjects() []*model.Project {
	out := make([]*model.Project, len(m.projects))
	copy(out, m.projects)
	return out
}

// Inbox returns the first project, or nil before Init.
func (m *Manager) Inbox() *model.Project {
	if len(m.projects) == 0 {
		return nil
	}
	return m.projects[0]
}

func (m *Manager) Project(id string) (*model.Project, bool) {
	if i := m.index(id); i >= 0 {
		return m.projects[i], true
	}
	return nil, false
}

func (m *Manager) index(id string) int {
	for i, p := range m.projects {
		if p.ID() == id {
			return i
		}
	}
	return -1
}

func (m *Manager) AddProject(p *model.Project) error {
	if p == nil {
		return errors.New("add project: nil project")
	}
	if m.index(p.ID()) >= 0 {
		m.logger.Warn("project already exists", "project", p.ID())
		return ErrDuplicateProject
	}
	m.projects = append(m.projects, p)
	return m.Save()
}

func (m *Manager) EditProject(id string, updates ...model.ProjectUpdate) error {
	p, ok := m.Project(id)
	if !ok {
		m.logger.Debug("edit project: unknown id", "project", id)
		return ErrProjectNotFound
	}
	p.Edit(updates...)
	return m.Save()
}

// RemoveProject deletes a project. The Inbox is refused with ErrInboxProtected.
func (m *Manager) RemoveProject(id string) error {
	i := m.index(id)
	switch {
	case i < 0:
		m.logger.Debug("remove project: unknown id", "project", id)
		return ErrProjectNotFound
	case i == 0:
		m.logger.Warn("refusing to remove the inbox project", "project", id)
		return ErrInboxProtected
	}
	m.projects = append(m.projects[:i:i], m.projects[i+1:]...)
	return m.Save()
}

func (m *Manager) AddProjectTodo(projectID string, t *model.Todo) error {
	if t == nil {
		return errors.New("add todo: nil todo")
	}
	p, ok := m.Project(projectID)
	if !ok {
		m.logger.Debug("add todo: unknown project", "project", projectID)
		return ErrProjectNotFound
	}
	p.AddTodo(t)
	return m.Save()
}

func (m *Manager) RemoveProjectTodo(projectID, todoID string) error {
	p, ok := m.Project(projectID)
	if !ok {
		m.logger.Debug("remove todo: unknown project", "project", projectID)
		return ErrProjectNotFound
	}
	if !p.RemoveTodo(todoID) {
		m.logger.Debug("remove todo: unknown todo", "project", projectID, "todo", todoID)
		return ErrTodoNotFound
	}
	return m.Save()
}

func (m *Manager) EditProjectTodo(projectID, todoID string, updates ...model.TodoUpdate) error {
	p, ok := m.Project(projectID)
	if !ok {
		m.logger.Debug("edit todo: unknown project", "project", projectID)
		return ErrProjectNotFound
	}
	if err := p.EditTodo(todoID, updates...); err != nil {
		m.logger.Error("edit todo failed", "project", projectID, "todo", todoID, "err", err)
		return err
	}
	return m.Save()
}
