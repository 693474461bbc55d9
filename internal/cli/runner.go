package cli

import (
	"errors"
	"flag"
	"fmt"
	"io"
	"os"
	"strings"

	"github.com/Makepad-fr/tada/internal/codec"
	"github.com/Makepad-fr/tada/internal/manager"
	"github.com/Makepad-fr/tada/internal/model"
	"github.com/Makepad-fr/tada/internal/tui"
	"github.com/Makepad-fr/tada/internal/ui"
)

// Options tune behavior from root flags.
type Options struct {
	Group      bool   // show grouped by pending/done
	ConfigPath string // explicit config file
	Ephemeral  bool   // keep everything in memory for this run
}

// stdin feeds confirmation prompts; tests swap it.
var stdin io.Reader = os.Stdin

// Run dispatches subcommands and returns an exit code (0 ok, 1 error, 2 usage).
func Run(args []string, opt Options) int {
	if len(args) == 0 {
		PrintHelp()
		return 2
	}
	cmd, a := args[0], args[1:]

	switch cmd {
	case "help", "-h", "--help":
		PrintHelp()
		return 0
	}

	s, err := open(opt)
	if err != nil {
		ui.Fail(err.Error())
		return 1
	}
	defer s.close()

	switch cmd {
	case "ls":
		return s.doList(a)
	case "show":
		return s.doShow(a, opt)
	case "info":
		return s.doInfo(a)
	case "projects":
		return s.doProjects()
	case "project":
		return s.doProject(a)
	case "add":
		return s.doAdd(a)
	case "done":
		return s.doToggle(a)
	case "rm":
		return s.doRemove(a)
	case "edit":
		return s.doEdit(a)
	case "check":
		return s.doCheck(a)
	case "export":
		return s.doExport(a)
	}

	ui.Fail("unknown subcommand: " + cmd)
	fmt.Fprintln(os.Stderr)
	PrintHelp()
	return 2
}

func PrintHelp() {
	fmt.Printf(`tada - projects and todos in your terminal

Usage:
  tada [-config file] [-ephemeral] [-group] <subcommand> [args]

Subcommands:
  ls [project]                      Interactive list (tab switches project)
  show [project]                    Print projects and their todos
  info <ref>                        Show every field of one todo
  projects                          List projects
  project add [-d desc] <title...>  Create a project
  project edit <n> [-title t] [-d desc]
  project rm [-y] <n>               Remove a project and its todos (not the Inbox)
  add [-p n] [-due date] [-priority p] [-d desc] [-notes text] <title...>
  done <ref>                        Toggle done
  rm <ref>                          Remove a todo
  edit <ref> [-title t] [-d desc] [-due date] [-priority p] [-notes text]
  check <ref> add <text...>         Add a checklist item
  check <ref> toggle <i>            Toggle checklist item i
  export [-yaml]                    Dump every project to stdout

Projects are numbered from 1; project 1 is the Inbox.
A todo <ref> is "n" (todo n of the Inbox) or "p/n" (todo n of project p).
Dates are YYYY-MM-DD; priorities are low, medium or high.

Examples:
  tada add -due 2025-01-01 -priority high "Write spec"
  tada project add -d "day job" Work
  tada add -p 2 "Review PR"
  tada done 2/1
  tada show -group
`)
}

// report turns a manager error into an exit code.
func report(verb string, err error) int {
	switch {
	case err == nil:
		return 0
	case errors.Is(err, manager.ErrNotPersisted):
		ui.Fail(verb + " applied but not saved: " + err.Error())
		return 1
	case errors.Is(err, manager.ErrInboxProtected):
		ui.Fail(err.Error())
		return 2
	default:
		ui.Fail(verb + ": " + err.Error())
		return 1
	}
}

func usage(msg string) int {
	ui.Fail("usage: " + msg)
	return 2
}

func newFlags(name string) *flag.FlagSet {
	fs := flag.NewFlagSet(name, flag.ContinueOnError)
	fs.SetOutput(io.Discard)
	return fs
}

// -------------- subcommand impls ----------------

func (s *session) doList(a []string) int {
	idx := 0
	if len(a) > 0 {
		p, code := s.projectArg(a[0])
		if code != 0 {
			return code
		}
		idx = s.indexOf(p)
	}
	if err := tui.Run(s.mgr, idx); err != nil {
		ui.Fail("tui: " + err.Error())
		return 1
	}
	return 0
}

func (s *session) doShow(a []string, opt Options) int {
	fs := newFlags("show")
	group := fs.Bool("group", opt.Group, "group by pending/done")
	if err := fs.Parse(a); err != nil {
		return usage("tada show [-group] [project]")
	}
	projects := s.mgr.AllProjects()
	if fs.NArg() > 0 {
		p, code := s.projectArg(fs.Arg(0))
		if code != 0 {
			return code
		}
		projects = []*model.Project{p}
	}
	for _, p := range projects {
		ui.PrintPanel(os.Stdout, projectLines(s.indexOf(p)+1, p, *group, s.now()))
	}
	return 0
}

func (s *session) doInfo(a []string) int {
	if len(a) != 1 {
		return usage("tada info <ref>")
	}
	p, td, code := s.todoArg(a[0])
	if code != 0 {
		return code
	}
	ui.PrintPanel(os.Stdout, detailLines(p, td.Details(), s.now()))
	return 0
}

func (s *session) doProjects() int {
	t := ui.Current()
	var lines []string
	lines = append(lines, t.Title.Render("Projects"), "")
	for i, p := range s.mgr.AllProjects() {
		done, total := counts(p)
		lines = append(lines, fmt.Sprintf("%s %s %s",
			t.Muted.Render(fmt.Sprintf("%2d.", i+1)),
			p.Title(),
			t.Muted.Render(fmt.Sprintf("(%d/%d done)", done, total)),
		))
	}
	ui.PrintPanel(os.Stdout, lines)
	return 0
}

func (s *session) doProject(a []string) int {
	if len(a) == 0 {
		return usage("tada project <add|edit|rm> ...")
	}
	switch a[0] {
	case "add":
		fs := newFlags("project add")
		desc := fs.String("d", "", "description")
		if err := fs.Parse(a[1:]); err != nil || fs.NArg() == 0 {
			return usage("tada project add [-d desc] <title...>")
		}
		title := strings.TrimSpace(strings.Join(fs.Args(), " "))
		if title == "" {
			ui.Fail("project add: empty title")
			return 2
		}
		if code := report("add project", s.mgr.AddProject(model.NewProject(title, *desc))); code != 0 {
			return code
		}
		ui.OK(fmt.Sprintf("added project %d", len(s.mgr.AllProjects())))
		return 0

	case "edit":
		if len(a) < 2 {
			return usage("tada project edit <n> [-title t] [-d desc]")
		}
		p, code := s.projectArg(a[1])
		if code != 0 {
			return code
		}
		fs := newFlags("project edit")
		title := fs.String("title", "", "new title")
		desc := fs.String("d", "", "new description")
		if err := fs.Parse(a[2:]); err != nil {
			return usage("tada project edit <n> [-title t] [-d desc]")
		}
		var updates []model.ProjectUpdate
		fs.Visit(func(f *flag.Flag) {
			switch f.Name {
			case "title":
				updates = append(updates, model.UpdateTitle(*title))
			case "d":
				updates = append(updates, model.UpdateDescription(*desc))
			}
		})
		if len(updates) == 0 {
			return usage("tada project edit <n> [-title t] [-d desc]")
		}
		if code := report("edit project", s.mgr.EditProject(p.ID(), updates...)); code != 0 {
			return code
		}
		ui.OK("edited")
		return 0

	case "rm":
		fs := newFlags("project rm")
		yes := fs.Bool("y", false, "skip confirmation")
		if err := fs.Parse(a[1:]); err != nil || fs.NArg() != 1 {
			return usage("tada project rm [-y] <n>")
		}
		p, code := s.projectArg(fs.Arg(0))
		if code != 0 {
			return code
		}
		if p != s.mgr.Inbox() && !*yes && !confirm(fmt.Sprintf("Remove project %q and its %d todos?", p.Title(), len(p.Todos()))) {
			ui.Hint("cancelled")
			return 0
		}
		if code := report("remove project", s.mgr.RemoveProject(p.ID())); code != 0 {
			return code
		}
		ui.OK("removed")
		return 0
	}
	return usage("tada project <add|edit|rm> ...")
}

func (s *session) doAdd(a []string) int {
	const help = "tada add [-p n] [-due date] [-priority p] [-d desc] [-notes text] <title...>"
	fs := newFlags("add")
	project := fs.String("p", "1", "project number")
	dueStr := fs.String("due", "", "due date (YYYY-MM-DD, default today)")
	prioStr := fs.String("priority", string(model.PriorityMedium), "low, medium or high")
	desc := fs.String("d", "", "description")
	notes := fs.String("notes", "", "notes")
	if err := fs.Parse(a); err != nil || fs.NArg() == 0 {
		return usage(help)
	}
	title := strings.TrimSpace(strings.Join(fs.Args(), " "))
	if title == "" {
		ui.Fail("add: empty title")
		return 2
	}
	p, code := s.projectArg(*project)
	if code != 0 {
		return code
	}
	due := s.now()
	if *dueStr != "" {
		d, err := model.ParseDate(*dueStr)
		if err != nil {
			ui.Fail("add: " + err.Error())
			return 2
		}
		due = d
	}
	prio, err := model.ParsePriority(*prioStr)
	if err != nil {
		ui.Fail("add: " + err.Error())
		return 2
	}

	td := model.NewTodo(title, *desc, due, prio)
	if *notes != "" {
		td.SetNotes(*notes)
	}
	if code := report("add", s.mgr.AddProjectTodo(p.ID(), td)); code != 0 {
		return code
	}
	ui.OK(fmt.Sprintf("added %d/%d", s.indexOf(p)+1, len(p.Todos())))
	return 0
}

func (s *session) doToggle(a []string) int {
	if len(a) != 1 {
		return usage("tada done <ref>")
	}
	p, td, code := s.todoArg(a[0])
	if code != 0 {
		return code
	}
	done := !td.Details().IsComplete
	if code := report("done", s.mgr.EditProjectTodo(p.ID(), td.ID(), model.UpdateComplete(done))); code != 0 {
		return code
	}
	ui.OK("toggled")
	return 0
}

func (s *session) doRemove(a []string) int {
	if len(a) != 1 {
		return usage("tada rm <ref>")
	}
	p, td, code := s.todoArg(a[0])
	if code != 0 {
		return code
	}
	if code := report("rm", s.mgr.RemoveProjectTodo(p.ID(), td.ID())); code != 0 {
		return code
	}
	ui.OK("removed")
	return 0
}

func (s *session) doEdit(a []string) int {
	const help = "tada edit <ref> [-title t] [-d desc] [-due date] [-priority p] [-notes text]"
	if len(a) < 2 {
		return usage(help)
	}
	p, td, code := s.todoArg(a[0])
	if code != 0 {
		return code
	}
	fs := newFlags("edit")
	title := fs.String("title", "", "")
	desc := fs.String("d", "", "")
	dueStr := fs.String("due", "", "")
	prioStr := fs.String("priority", "", "")
	notes := fs.String("notes", "", "")
	if err := fs.Parse(a[1:]); err != nil {
		return usage(help)
	}

	var updates []model.TodoUpdate
	var bad error
	fs.Visit(func(f *flag.Flag) {
		switch f.Name {
		case "title":
			updates = append(updates, model.UpdateTitle(*title))
		case "d":
			updates = append(updates, model.UpdateDescription(*desc))
		case "notes":
			updates = append(updates, model.UpdateNotes(*notes))
		case "due":
			d, err := model.ParseDate(*dueStr)
			if err != nil {
				bad = err
				return
			}
			updates = append(updates, model.UpdateDueDate(d))
		case "priority":
			prio, err := model.ParsePriority(*prioStr)
			if err != nil {
				bad = err
				return
			}
			updates = append(updates, model.UpdatePriority(prio))
		}
	})
	if bad != nil {
		ui.Fail("edit: " + bad.Error())
		return 2
	}
	if len(updates) == 0 {
		return usage(help)
	}
	if code := report("edit", s.mgr.EditProjectTodo(p.ID(), td.ID(), updates...)); code != 0 {
		return code
	}
	ui.OK("edited")
	return 0
}

func (s *session) doCheck(a []string) int {
	if len(a) < 3 {
		return usage("tada check <ref> <add <text...>|toggle <i>>")
	}
	p, td, code := s.todoArg(a[0])
	if code != 0 {
		return code
	}
	var update model.TodoUpdate
	switch a[1] {
	case "add":
		text := strings.TrimSpace(strings.Join(a[2:], " "))
		if text == "" {
			ui.Fail("check: empty text")
			return 2
		}
		update = model.UpdateChecklistAdd(text)
	case "toggle":
		n, err := parseIndex(a[2], len(td.Details().Checklist))
		if err != nil {
			ui.Fail("check: " + err.Error())
			return 2
		}
		update = model.UpdateChecklistToggle(n - 1)
	default:
		return usage("tada check <ref> <add <text...>|toggle <i>>")
	}
	if code := report("check", s.mgr.EditProjectTodo(p.ID(), td.ID(), update)); code != 0 {
		return code
	}
	ui.OK("updated")
	return 0
}

func (s *session) doExport(a []string) int {
	fs := newFlags("export")
	asYAML := fs.Bool("yaml", false, "YAML instead of JSON")
	if err := fs.Parse(a); err != nil {
		return usage("tada export [-yaml]")
	}
	write := codec.WriteJSON
	if *asYAML {
		write = codec.WriteYAML
	}
	if err := write(os.Stdout, s.mgr.AllProjects()); err != nil {
		ui.Fail("export: " + err.Error())
		return 1
	}
	return 0
}

func confirm(question string) bool {
	fmt.Printf("%s [y/N] ", question)
	var answer string
	if _, err := fmt.Fscanln(stdin, &answer); err != nil {
		return false
	}
	answer = strings.ToLower(strings.TrimSpace(answer))
	return answer == "y" || answer == "yes"
}
