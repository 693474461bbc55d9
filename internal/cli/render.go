package cli

import (
	"fmt"
	"time"

	"github.com/charmbracelet/x/ansi"

	"github.com/Makepad-fr/tada/internal/model"
	"github.com/Makepad-fr/tada/internal/ui"
)

func counts(p *model.Project) (done, total int) {
	for _, td := range p.Todos() {
		if td.Details().IsComplete {
			done++
		}
		total++
	}
	return
}

// projectLines renders one project panel: header, progress, todos.
func projectLines(n int, p *model.Project, group bool, now time.Time) []string {
	t := ui.Current()
	d, total := counts(p)
	header := fmt.Sprintf("%s %s  %s %d  %s %d  %s %d",
		t.Muted.Render(fmt.Sprintf("%d.", n)),
		t.Title.Render(p.Title()),
		t.Success.Render(t.SymDone), d,
		t.Pending.Render(t.SymPending), total-d,
		t.Accent.Render("Total"), total,
	)

	lines := []string{header}
	if p.Description() != "" {
		lines = append(lines, t.Muted.Render(p.Description()))
	}
	lines = append(lines, t.Muted.Render(ui.ProgressBar(d, total, 28)), "")

	todos := p.Todos()
	if group {
		lines = append(lines, groupLines(n, todos, now)...)
	} else {
		lines = append(lines, flatLines(n, todos, func(*model.Todo) bool { return true }, now)...)
	}
	return lines
}

func flatLines(n int, todos []*model.Todo, keep func(*model.Todo) bool, now time.Time) []string {
	t := ui.Current()
	var out []string
	for i, td := range todos {
		if !keep(td) {
			continue
		}
		d := td.Details()
		title := ansi.Truncate(d.Title, 80, "...")
		box := t.Muted.Render(t.BoxUnchecked)
		if d.IsComplete {
			box, title = t.Success.Render(t.BoxChecked), t.Done.Render(title)
		}
		due := t.Muted.Render(ui.ShortDate(d.DueDate) + " (" + ui.Relative(d.DueDate, now) + ")")
		if !d.IsComplete && ui.Overdue(d.DueDate, now) {
			due = t.Error.Render(ui.ShortDate(d.DueDate) + " (overdue)")
		}
		out = append(out, fmt.Sprintf("%s %s %s  %s %s",
			t.Muted.Render(fmt.Sprintf("%d/%d", n, i+1)),
			box, title, due,
			t.PriorityStyle(string(d.Priority)).Render(string(d.Priority)),
		))
	}
	if len(out) == 0 {
		return []string{t.Muted.Render("(none)")}
	}
	return out
}

func groupLines(n int, todos []*model.Todo, now time.Time) []string {
	t := ui.Current()
	pending := func(td *model.Todo) bool { return !td.Details().IsComplete }
	done := func(td *model.Todo) bool { return td.Details().IsComplete }

	var lines []string
	lines = append(lines, t.Accent.Render("Pending"))
	lines = append(lines, flatLines(n, todos, pending, now)...)
	lines = append(lines, "")
	lines = append(lines, t.Accent.Render("Done"))
	lines = append(lines, flatLines(n, todos, done, now)...)
	return lines
}

// detailLines is the expanded view of a single todo.
func detailLines(p *model.Project, d model.Details, now time.Time) []string {
	t := ui.Current()
	status := "Incomplete"
	if d.IsComplete {
		status = "Complete"
	}
	notes := d.Notes
	if notes == "" {
		notes = "N/A"
	}
	lines := []string{
		t.Title.Render(d.Title),
		"",
		"Project:     " + p.Title(),
		"Description: " + d.Description,
		"Due:         " + ui.LongDate(d.DueDate) + " (" + ui.Relative(d.DueDate, now) + ")",
		"Priority:    " + t.PriorityStyle(string(d.Priority)).Render(string(d.Priority)),
		"Notes:       " + notes,
		"Status:      " + status,
	}
	if len(d.Checklist) > 0 {
		lines = append(lines, "", t.Accent.Render("Checklist"))
		for i, c := range d.Checklist {
			box := t.BoxUnchecked
			if c.Completed {
				box = t.BoxChecked
			}
			lines = append(lines, fmt.Sprintf("%2d. %s %s", i+1, box, c.Text))
		}
	}
	return lines
}
