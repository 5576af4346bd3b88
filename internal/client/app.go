package client

import (
	"context"
	"errors"
	"fmt"

	"github.com/homefront-community/homefront/internal/adapter"
	"github.com/homefront-community/homefront/internal/config"
	"github.com/homefront-community/homefront/internal/logger"
	"github.com/homefront-community/homefront/internal/resolver"
	"github.com/homefront-community/homefront/internal/session"
	"github.com/homefront-community/homefront/internal/store"
	"github.com/homefront-community/homefront/internal/tui"
	"github.com/homefront-community/homefront/internal/workers"
	"github.com/homefront-community/homefront/models"
)

// App is the assembled client application.
type App struct {
	cfg      *config.ClientConfig
	log      *logger.Logger
	db       *store.DB
	sessions *session.Manager
	poller   workers.NotificationPoller
	ui       *tui.TUI
}

// NewApp builds the full dependency graph: config, logger, API base
// resolver, HTTP gateway, SQLite store, session manager, notification
// poller, and terminal UI. The session manager is installed as the
// gateway's token source; nothing else touches the credential.
func NewApp(buildInfo models.AppBuildInfo, log *logger.Logger) (*App, error) {
	cfg, err := config.GetClientConfig()
	if err != nil {
		return nil, fmt.Errorf("error get client config: %w", err)
	}

	res := resolver.New(cfg.App, cfg.Adapter.RequestTimeout, log)
	gateway := adapter.NewHTTPGateway(cfg.Adapter, res, log)

	db, err := store.NewConnectSQLite(context.Background(), cfg.Storage, log)
	if err != nil {
		return nil, fmt.Errorf("error connecting local store: %w", err)
	}
	if err = db.Migrate(); err != nil {
		return nil, fmt.Errorf("error migrating local store: %w", err)
	}

	sessionRepo := store.NewSessionRepository(db, log)
	listingRepo := store.NewListingRepository(db, log)

	sessions := session.NewManager(gateway, sessionRepo, log)
	gateway.SetTokenSource(sessions.Token)

	ui := tui.New(sessions, gateway, listingRepo, buildInfo, log)
	poller := workers.NewNotificationPoller(gateway, ui.Notify, log)

	return &App{
		cfg:      cfg,
		log:      log,
		db:       db,
		sessions: sessions,
		poller:   poller,
		ui:       ui,
	}, nil
}

// Run starts session bootstrap in the background, gates the notification
// poller on the authenticated state, and blocks in the terminal UI until
// the user quits.
func (a *App) Run() error {
	ctx, cancel := context.WithCancel(context.Background())
	defer cancel()
	defer a.db.Close()

	states, cancelSub := a.sessions.Subscribe()
	defer cancelSub()
	go func() {
		for state := range states {
			if state.Authenticated() {
				a.poller.Start(ctx, a.cfg.Workers.PollInterval)
			} else {
				a.poller.Stop()
			}
		}
	}()
	defer a.poller.Stop()

	go a.sessions.Bootstrap(ctx)

	if err := a.ui.Run(ctx); err != nil {
		if errors.Is(err, tui.ErrUserQuit) {
			a.log.Info().Msg("user quit")
			return nil
		}
		return fmt.Errorf("terminal ui: %w", err)
	}

	return nil
}
