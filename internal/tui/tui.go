// Package tui is the interactive project/todo list. Every change goes
// through the project manager, which persists it immediately.
package tui

import (
	"errors"
	"fmt"
	"io"
	"strings"
	"time"

	"github.com/charmbracelet/bubbles/key"
	"github.com/charmbracelet/bubbles/list"
	"github.com/charmbracelet/bubbles/textinput"
	tea "github.com/charmbracelet/bubbletea"

	"github.com/Makepad-fr/tada/internal/manager"
	"github.com/Makepad-fr/tada/internal/model"
	"github.com/Makepad-fr/tada/internal/ui"
)

// Manager is the slice of the project manager the list needs.
type Manager interface {
	AllProjects() []*model.Project
	AddProjectTodo(projectID string, t *model.Todo) error
	RemoveProjectTodo(projectID, todoID string) error
	EditProjectTodo(projectID, todoID string, updates ...model.TodoUpdate) error
}

// listItem adapts a todo snapshot to bubbles/list.Item
type listItem struct {
	details model.Details
}

func (i listItem) Title() string       { return i.details.Title }
func (i listItem) Description() string { return i.details.Description }
func (i listItem) FilterValue() string { return i.details.Title }

// Custom delegate to control how items render (single line)
type itemDelegate struct {
	now func() time.Time
}

func (d itemDelegate) Height() int                               { return 1 }
func (d itemDelegate) Spacing() int                              { return 0 }
func (d itemDelegate) Update(msg tea.Msg, m *list.Model) tea.Cmd { return nil }
func (d itemDelegate) Render(w io.Writer, m list.Model, index int, item list.Item) {
	it, ok := item.(listItem)
	if !ok {
		return
	}
	t := ui.Current()
	box := t.Muted.Render(t.BoxUnchecked)
	title := it.details.Title
	if it.details.IsComplete {
		box = t.Success.Render(t.BoxChecked)
		title = t.Done.Render(title)
	}

	due := ui.ShortDate(it.details.DueDate)
	if !it.details.IsComplete && ui.Overdue(it.details.DueDate, d.now()) {
		due = t.Error.Render(due)
	} else {
		due = t.Muted.Render(due)
	}
	prio := t.PriorityStyle(string(it.details.Priority)).Render(string(it.details.Priority))

	prefix := "  "
	if index == m.Index() {
		prefix = t.Selected.Render("> ")
	}
	fmt.Fprintf(w, "%s%s %s  %s %s\n", prefix, box, title, due, prio)
}

type modelTUI struct {
	mgr     Manager
	now     func() time.Time
	project int // index into mgr.AllProjects()

	list list.Model
	ti   textinput.Model

	// Inline add / edit share the text input
	adding  bool
	editing bool
	editID  string

	status string // last error, shown under the list
	width  int
	height int
}

var (
	addBind     = key.NewBinding(key.WithKeys("a"), key.WithHelp("a", "add"))
	editBind    = key.NewBinding(key.WithKeys("e"), key.WithHelp("e", "edit"))
	deleteBind  = key.NewBinding(key.WithKeys("d"), key.WithHelp("d", "delete"))
	toggleBind  = key.NewBinding(key.WithKeys(" "), key.WithHelp("space", "done"))
	prioBind    = key.NewBinding(key.WithKeys("p"), key.WithHelp("p", "priority"))
	projectBind = key.NewBinding(key.WithKeys("tab", "shift+tab"), key.WithHelp("tab", "project"))
)

func newModel(mgr Manager, project int, now func() time.Time) modelTUI {
	l := list.New(nil, itemDelegate{now: now}, 0, 0)
	l.SetShowHelp(true)
	l.SetShowPagination(true)
	l.SetShowStatusBar(true)
	l.SetFilteringEnabled(true)
	l.Styles.Title = ui.Current().Title
	l.Styles.HelpStyle = ui.Current().Help
	l.Styles.PaginationStyle = ui.Current().Help
	l.FilterInput.Prompt = "/ "
	l.SetStatusBarItemName("todo", "todos")
	bindings := func() []key.Binding {
		return []key.Binding{addBind, editBind, deleteBind, toggleBind, prioBind, projectBind}
	}
	l.AdditionalShortHelpKeys = bindings
	l.AdditionalFullHelpKeys = bindings

	ti := textinput.New()
	ti.Prompt = "> "
	ti.CharLimit = 200

	m := modelTUI{mgr: mgr, now: now, project: project, list: l, ti: ti, width: 80, height: 24}
	m.resize()
	m.refresh()
	return m
}

// Run starts the list on the project at index project (0 is the Inbox).
func Run(mgr Manager, project int) error {
	_, err := tea.NewProgram(newModel(mgr, project, time.Now), tea.WithAltScreen()).Run()
	return err
}

func (m *modelTUI) currentProject() *model.Project {
	projects := m.mgr.AllProjects()
	if len(projects) == 0 {
		return nil
	}
	if m.project < 0 || m.project >= len(projects) {
		m.project = 0
	}
	return projects[m.project]
}

// refresh rebuilds the list items and header from the manager.
func (m *modelTUI) refresh() {
	p := m.currentProject()
	if p == nil {
		m.list.SetItems(nil)
		return
	}
	todos := p.Todos()
	items := make([]list.Item, 0, len(todos))
	done := 0
	for _, td := range todos {
		d := td.Details()
		if d.IsComplete {
			done++
		}
		items = append(items, listItem{details: d})
	}
	m.list.SetItems(items)

	t := ui.Current()
	m.list.Title = fmt.Sprintf("%s (%d/%d)   %s %d  %s %d  %s %d",
		t.Title.Render(p.Title()),
		m.project+1, len(m.mgr.AllProjects()),
		t.Success.Render(t.SymDone), done,
		t.Pending.Render(t.SymPending), len(todos)-done,
		t.Accent.Render("Total"), len(todos),
	)
}

func (m *modelTUI) selected() (listItem, bool) {
	it, ok := m.list.SelectedItem().(listItem)
	return it, ok
}

// report keeps the error for display; storage errors still leave the change applied.
func (m *modelTUI) report(err error) {
	switch {
	case err == nil:
		m.status = ""
	case errors.Is(err, manager.ErrNotPersisted):
		m.status = "not saved: " + err.Error()
	default:
		m.status = err.Error()
	}
}

func (m modelTUI) Init() tea.Cmd { return nil }

func (m modelTUI) Update(msg tea.Msg) (tea.Model, tea.Cmd) {
	if size, ok := msg.(tea.WindowSizeMsg); ok {
		m.width, m.height = size.Width, size.Height
		m.resize()
		return m, nil
	}
	if m.adding || m.editing {
		return m.updateInput(msg)
	}

	keyMsg, ok := msg.(tea.KeyMsg)
	if !ok || m.list.FilterState() == list.Filtering {
		var cmd tea.Cmd
		m.list, cmd = m.list.Update(msg)
		return m, cmd
	}

	p := m.currentProject()
	switch keyMsg.String() {
	case "q", "esc":
		return m, tea.Quit
	case "tab", "shift+tab":
		n := len(m.mgr.AllProjects())
		if n > 0 {
			step := 1
			if keyMsg.String() == "shift+tab" {
				step = n - 1
			}
			m.project = (m.project + step) % n
			m.list.ResetSelected()
			m.refresh()
		}
		return m, nil
	case " ":
		if it, ok := m.selected(); ok && p != nil {
			m.report(m.mgr.EditProjectTodo(p.ID(), it.details.ID, model.UpdateComplete(!it.details.IsComplete)))
			m.refresh()
		}
		return m, nil
	case "p":
		if it, ok := m.selected(); ok && p != nil {
			m.report(m.mgr.EditProjectTodo(p.ID(), it.details.ID, model.UpdatePriority(nextPriority(it.details.Priority))))
			m.refresh()
		}
		return m, nil
	case "d":
		if it, ok := m.selected(); ok && p != nil {
			m.report(m.mgr.RemoveProjectTodo(p.ID(), it.details.ID))
			m.refresh()
		}
		return m, nil
	case "a":
		m.adding = true
		m.ti.SetValue("")
		m.ti.Placeholder = "New todo title..."
		m.ti.Focus()
		m.resize()
		return m, nil
	case "e":
		if it, ok := m.selected(); ok {
			m.editing = true
			m.editID = it.details.ID
			m.ti.SetValue(it.details.Title)
			m.ti.CursorEnd()
			m.ti.Placeholder = "Edit todo title..."
			m.ti.Focus()
			m.resize()
		}
		return m, nil
	}
	var cmd tea.Cmd
	m.list, cmd = m.list.Update(msg)
	return m, cmd
}

func (m modelTUI) updateInput(msg tea.Msg) (tea.Model, tea.Cmd) {
	if x, ok := msg.(tea.KeyMsg); ok {
		switch x.String() {
		case "enter":
			title := strings.TrimSpace(m.ti.Value())
			if title == "" {
				m.status = "title cannot be empty"
				return m, nil
			}
			if p := m.currentProject(); p != nil {
				if m.adding {
					m.report(m.mgr.AddProjectTodo(p.ID(), model.NewTodo(title, "", m.now(), model.PriorityMedium)))
				} else {
					m.report(m.mgr.EditProjectTodo(p.ID(), m.editID, model.UpdateTitle(title)))
				}
			}
			m.closeInput()
			m.refresh()
			return m, nil
		case "esc":
			m.closeInput()
			return m, nil
		}
	}
	var cmd tea.Cmd
	m.ti, cmd = m.ti.Update(msg)
	return m, cmd
}

func (m *modelTUI) closeInput() {
	m.adding, m.editing, m.editID = false, false, ""
	m.ti.SetValue("")
	m.ti.Blur()
	m.resize()
}

func (m *modelTUI) resize() {
	h := m.height - 4
	if m.adding || m.editing {
		h -= 4
	}
	m.list.SetSize(m.width-4, max(h, 3))
}

func (m modelTUI) View() string {
	t := ui.Current()
	content := m.list.View()
	if m.adding || m.editing {
		title := "Add todo"
		if m.editing {
			title = "Edit todo"
		}
		content += "\n" + ui.Panel([]string{title, m.ti.View()})
	}
	if m.status != "" {
		content += "\n" + t.Error.Render(m.status)
	}
	return ui.Panel([]string{content})
}

func nextPriority(p model.Priority) model.Priority {
	switch p {
	case model.PriorityLow:
		return model.PriorityMedium
	case model.PriorityMedium:
		return model.PriorityHigh
	default:
		return model.PriorityLow
	}
}
