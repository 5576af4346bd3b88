package tui

import (
	"context"
	"errors"
	"sync"

	tea "github.com/charmbracelet/bubbletea"

	"github.com/homefront-community/homefront/internal/logger"
	"github.com/homefront-community/homefront/models"
)

// ErrUserQuit reports that the user closed the program deliberately.
var ErrUserQuit = errors.New("user quit")

// TUI owns the terminal program: it builds the page router, forwards session
// state changes into the event loop, and accepts notification pushes from
// the background poller.
type TUI struct {
	sessions  SessionService
	backend   Backend
	cache     ListingCache
	buildInfo models.AppBuildInfo
	log       *logger.Logger

	mu      sync.Mutex
	program *tea.Program
}

func New(sessions SessionService, backend Backend, cache ListingCache, buildInfo models.AppBuildInfo, log *logger.Logger) *TUI {
	return &TUI{
		sessions:  sessions,
		backend:   backend,
		cache:     cache,
		buildInfo: buildInfo,
		log:       log,
	}
}

// Run blocks until the user quits or the terminal fails. Session state
// changes published by the manager are forwarded into the program so pages
// rerender reactively.
func (t *TUI) Run(ctx context.Context) error {
	pages := map[string]tea.Model{
		"menu":          NewMenuModel(t.sessions),
		"login":         NewLoginModel(ctx, t.sessions),
		"register":      NewRegisterModel(ctx, t.sessions),
		"listings":      NewListingsModel(ctx, t.backend, t.cache),
		"detail":        NewDetailModel(ctx, t.backend, t.sessions),
		"notifications": NewNotificationsModel(ctx, t.backend),
	}

	root := NewRootModel(pages, "menu", t.buildInfo)
	program := tea.NewProgram(root, tea.WithAltScreen())

	t.mu.Lock()
	t.program = program
	t.mu.Unlock()
	defer func() {
		t.mu.Lock()
		t.program = nil
		t.mu.Unlock()
	}()

	states, cancelSub := t.sessions.Subscribe()
	defer cancelSub()
	go func() {
		for state := range states {
			program.Send(SessionStateMsg{State: state})
		}
	}()

	finalModel, err := program.Run()
	if err != nil {
		return err
	}

	result, ok := finalModel.(RootModel)
	if !ok {
		return tea.ErrProgramKilled
	}
	if result.QuitByUser() {
		return ErrUserQuit
	}
	return nil
}

// Notify pushes a fresh notification set into the running program. It is
// the poller's entry point and is safe to call when the program is not
// running.
func (t *TUI) Notify(items []models.Notification) {
	t.mu.Lock()
	program := t.program
	t.mu.Unlock()

	if program != nil {
		program.Send(NotificationsMsg{Items: items})
	}
}
