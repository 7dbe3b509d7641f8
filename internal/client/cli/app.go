package cli

import (
	"bufio"
	"context"
	"database/sql"
	"fmt"
	"io"
	"os"
	"strings"
	"sync"
	"time"

	"github.com/dmitrijs2005/projectdesk/internal/client/client"
	"github.com/dmitrijs2005/projectdesk/internal/client/config"
	"github.com/dmitrijs2005/projectdesk/internal/client/models"
	"github.com/dmitrijs2005/projectdesk/internal/client/services"
	"github.com/dmitrijs2005/projectdesk/internal/client/session"
	"github.com/dmitrijs2005/projectdesk/internal/logging"
	"github.com/sethvargo/go-retry"
	"golang.org/x/sync/errgroup"
)

type Mode string

const (
	ModeOffline Mode = "offline"
	ModeOnline  Mode = "online"
)

// pingTimeout bounds a single liveness probe.
const pingTimeout = 3 * time.Second

type App struct {
	config *config.Config
	logger logging.Logger
	db     *sql.DB

	sessions    *session.Holder
	authService services.AuthService
	dashboard   *services.Dashboard
	coordinator *services.Coordinator

	reader *bufio.Reader
	out    io.Writer

	modeMu sync.RWMutex
	mode   Mode
}

// NewApp opens the session database and wires the API client and services.
func NewApp(ctx context.Context, c *config.Config, logger logging.Logger) (*App, error) {
	return newApp(ctx, c, logger, os.Stdin, os.Stdout)
}

func newApp(ctx context.Context, c *config.Config, logger logging.Logger, in io.Reader, out io.Writer) (*App, error) {
	db, err := client.InitDatabase(ctx, c.DatabasePath)
	if err != nil {
		logger.Error(ctx, "error initializing database", "path", c.DatabasePath, "error", err)
		return nil, err
	}

	apiClient, err := client.NewHTTPClient(c.ServerURL,
		client.WithTimeout(c.RequestTimeout),
		client.WithLogger(logger.With("component", "api")),
	)
	if err != nil {
		_ = db.Close()
		return nil, err
	}

	a := &App{
		config: c,
		logger: logger,
		db:     db,
		reader: bufio.NewReader(in),
		out:    out,
	}

	a.sessions = session.NewHolder(db, logger.With("component", "session"))
	fetcher := services.NewFetcher(apiClient, a.sessions, logger.With("component", "fetcher"))
	a.dashboard = services.NewDashboard(fetcher, logger)
	a.coordinator = services.NewCoordinator(apiClient, a.sessions, a.dashboard, services.ConfirmFunc(a.confirm), logger)
	a.authService = services.NewAuthService(apiClient, a.sessions, a.dashboard, logger)

	return a, nil
}

// Run restores the saved session, starts the connectivity watcher and blocks
// in the REPL until the user exits or ctx is cancelled.
func (a *App) Run(ctx context.Context) error {
	defer a.db.Close()

	g, ctx := errgroup.WithContext(ctx)
	ctx, stop := context.WithCancel(ctx)

	g.Go(func() error {
		a.StartOnlineStatusWatcher(ctx, a.config.OnlineCheckInterval)
		return nil
	})
	g.Go(func() error {
		defer stop()
		return a.Root(ctx)
	})

	return g.Wait()
}

// Root greets the user, restores the session and runs the REPL.
func (a *App) Root(ctx context.Context) error {
	fmt.Fprintln(a.out, "Welcome to projectdesk (type 'help' for commands)")

	if err := a.waitForServer(ctx); err != nil {
		a.logger.Warn(ctx, "server is not reachable", "url", a.config.ServerURL, "error", err)
	}

	s, err := a.sessions.Restore(ctx)
	if err != nil {
		a.logger.Error(ctx, "failed to restore session, continuing anonymously", "error", err)
		if err := a.sessions.Clear(ctx); err != nil {
			a.logger.Warn(ctx, "failed to clear saved session", "error", err)
		}
	}
	if s.Active() {
		a.report(a.Refresh(ctx))
	}

	runREPL(ctx, a, a.getStatus, a.reader)
	return nil
}

// waitForServer probes the backend a few times with exponential backoff and
// records the resulting mode.
func (a *App) waitForServer(ctx context.Context) error {
	b := retry.WithMaxRetries(2, retry.NewExponential(200*time.Millisecond))

	err := retry.Do(ctx, b, func(ctx context.Context) error {
		if err := a.ping(ctx); err != nil {
			return retry.RetryableError(err)
		}
		return nil
	})
	if err != nil {
		a.setMode(ModeOffline)
		return err
	}
	a.setMode(ModeOnline)
	return nil
}

func (a *App) ping(ctx context.Context) error {
	ctx, cancel := context.WithTimeout(ctx, pingTimeout)
	defer cancel()
	return a.authService.Ping(ctx)
}

func (a *App) setMode(mode Mode) {
	a.modeMu.Lock()
	defer a.modeMu.Unlock()

	if a.mode != mode {
		a.mode = mode
		a.logger.Info(context.Background(), "connectivity changed", "mode", mode)
	}
}

// Mode returns the last observed connectivity mode.
func (a *App) Mode() Mode {
	a.modeMu.RLock()
	defer a.modeMu.RUnlock()
	return a.mode
}

func (a *App) isLoggedIn() bool {
	return a.sessions.Current().Active()
}

func (a *App) currentRole() models.Role {
	return a.sessions.Current().Role
}

// StartOnlineStatusWatcher pings the backend every interval and flips the
// connectivity mode until ctx is done.
func (a *App) StartOnlineStatusWatcher(ctx context.Context, interval time.Duration) {
	if interval <= 0 {
		return
	}

	ticker := time.NewTicker(interval)
	defer ticker.Stop()

	for {
		select {
		case <-ticker.C:
			if err := a.ping(ctx); err != nil {
				a.setMode(ModeOffline)
			} else {
				a.setMode(ModeOnline)
			}

		case <-ctx.Done():
			return
		}
	}
}

func (a *App) getStatus() string {
	s := a.sessions.Current()

	var parts []string
	if s.Active() {
		if s.Subject != "" {
			parts = append(parts, s.Subject)
		}
		parts = append(parts, string(s.Role))
	}
	if m := a.Mode(); m != "" {
		parts = append(parts, string(m))
	}
	if len(parts) == 0 {
		return ""
	}
	return "(" + strings.Join(parts, " ") + ")"
}
