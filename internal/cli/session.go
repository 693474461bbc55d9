package cli

import (
	"fmt"
	"os"
	"strconv"
	"strings"
	"time"

	"github.com/charmbracelet/log"

	"github.com/Makepad-fr/tada/internal/config"
	"github.com/Makepad-fr/tada/internal/logging"
	"github.com/Makepad-fr/tada/internal/manager"
	"github.com/Makepad-fr/tada/internal/model"
	"github.com/Makepad-fr/tada/internal/store"
	"github.com/Makepad-fr/tada/internal/store/filestore"
	"github.com/Makepad-fr/tada/internal/store/memstore"
	"github.com/Makepad-fr/tada/internal/store/sqlitestore"
	"github.com/Makepad-fr/tada/internal/ui"
)

// session is one CLI invocation: config, logger, storage and an initialized manager.
type session struct {
	cfg    *config.Config
	logger *log.Logger
	mgr    *manager.Manager
	now    func() time.Time
	closer func() error
}

func open(opt Options) (*session, error) {
	cfg, err := config.Load(opt.ConfigPath)
	if err != nil {
		return nil, fmt.Errorf("config: %w", err)
	}
	if opt.Ephemeral {
		cfg.Storage.Backend = config.BackendMemory
	}
	ui.SetTheme(cfg.UI.Theme)
	logger := logging.New(os.Stderr, logging.Options{
		Level:      cfg.Log.Level,
		Format:     cfg.Log.Format,
		Timestamps: cfg.Log.Timestamps,
	})

	s, closer, err := openStorage(cfg.Storage)
	if err != nil {
		return nil, fmt.Errorf("storage: %w", err)
	}
	logger.Debug("storage opened", "backend", cfg.Storage.Backend, "path", cfg.Storage.Path)

	mgr := manager.New(s, manager.WithLogger(logger), manager.WithKey(cfg.Storage.Key))
	if err := mgr.Init(); err != nil {
		// Init only fails on a write; the seeded state is still usable.
		logger.Warn("initial save failed", "err", err)
	}
	return &session{cfg: cfg, logger: logger, mgr: mgr, now: time.Now, closer: closer}, nil
}

func openStorage(c config.StorageConfig) (store.Storage, func() error, error) {
	noop := func() error { return nil }
	switch c.Backend {
	case config.BackendMemory:
		return memstore.New(), noop, nil
	case config.BackendSQLite:
		s, err := sqlitestore.Open(c.Path)
		if err != nil {
			return nil, nil, err
		}
		return s, s.Close, nil
	default:
		s, err := filestore.New(c.Path)
		if err != nil {
			return nil, nil, err
		}
		return s, noop, nil
	}
}

func (s *session) close() {
	if err := s.closer(); err != nil {
		s.logger.Warn("close storage", "err", err)
	}
}

func (s *session) indexOf(p *model.Project) int {
	for i, q := range s.mgr.AllProjects() {
		if q == p {
			return i
		}
	}
	return -1
}

// parseIndex reads a 1-based index in [1, n].
func parseIndex(arg string, n int) (int, error) {
	i, err := strconv.Atoi(strings.TrimSpace(arg))
	if err != nil {
		return 0, fmt.Errorf("not a number: %s", arg)
	}
	if i < 1 || i > n {
		return 0, fmt.Errorf("index out of range: have %d, got %d", n, i)
	}
	return i, nil
}

func (s *session) projectArg(arg string) (*model.Project, int) {
	projects := s.mgr.AllProjects()
	i, err := parseIndex(arg, len(projects))
	if err != nil {
		ui.Fail("project: " + err.Error())
		ui.Hint("Hint: run `tada projects` to see valid numbers")
		return nil, 2
	}
	return projects[i-1], 0
}

// todoArg resolves "n" (Inbox) or "p/n".
func (s *session) todoArg(ref string) (*model.Project, *model.Todo, int) {
	projectRef, todoRef := "1", ref
	if before, after, ok := strings.Cut(ref, "/"); ok {
		projectRef, todoRef = before, after
	}
	p, code := s.projectArg(projectRef)
	if code != 0 {
		return nil, nil, code
	}
	todos := p.Todos()
	i, err := parseIndex(todoRef, len(todos))
	if err != nil {
		ui.Fail("todo: " + err.Error())
		ui.Hint("Hint: run `tada show` to see valid refs")
		return nil, nil, 2
	}
	return p, todos[i-1], 0
}
