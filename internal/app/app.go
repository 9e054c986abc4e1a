package app

import (
	"context"
	"errors"
	"fmt"
	"log/slog"
	"net"
	"net/http"
	"strconv"
	"time"

	"github.com/go-pg/pg/v10"
	"github.com/labstack/echo/v4"

	"github.com/daniilsolovey/newsdesk/config"
	"github.com/daniilsolovey/newsdesk/internal/auth"
	"github.com/daniilsolovey/newsdesk/internal/db"
	"github.com/daniilsolovey/newsdesk/internal/db/sqlite"
	"github.com/daniilsolovey/newsdesk/internal/metrics"
	"github.com/daniilsolovey/newsdesk/internal/newsportal"
	"github.com/daniilsolovey/newsdesk/internal/rest"
	"github.com/daniilsolovey/newsdesk/internal/rpc"
	"github.com/daniilsolovey/newsdesk/internal/session"
	"github.com/daniilsolovey/newsdesk/internal/upload"
)

const (
	rpcPath                = "/rpc/"
	sessionCleanupInterval = time.Minute
	storeRetryInterval     = 5 * time.Second
)

// PrepareFunc checks that the store answers and brings its schema up to date.
type PrepareFunc func(ctx context.Context) error

type App struct {
	Repo     newsportal.Repository
	Sessions *session.Store
	Logger   *slog.Logger
	Echo     *echo.Echo
	Config   config.Config

	prepareStore PrepareFunc
	retryEvery   time.Duration
}

// New wires the site. A store that cannot be reached is logged and the site
// still starts; store-backed pages degrade per route until Run has connected
// and migrated it in the background.
func New(ctx context.Context, cfg config.Config, logger *slog.Logger) (*App, error) {
	repo, prepare, err := ConnectStore(ctx, cfg.Database, logger)
	if err != nil {
		logger.Error("store connection failed", "error", err, "driver", cfg.Database.Driver)
	}

	renderer, err := rest.NewTemplateRenderer()
	if err != nil {
		_ = repo.Close()
		return nil, fmt.Errorf("load templates: %w", err)
	}

	manager := newsportal.NewNewsManager(repo)
	sessions := session.NewStore(cfg.Session.TTL)

	handler := rest.NewNewsHandler(
		manager,
		sessions,
		auth.NewVerifier(cfg.Admin.Username, cfg.Admin.PasswordHash),
		upload.New(cfg.Upload.Dir, cfg.Upload.URLPrefix, cfg.Upload.MaxSize),
		renderer,
		logger,
		rest.Options{
			AdminUsername: cfg.Admin.Username,
			CookieName:    cfg.Session.CookieName,
			SecureCookie:  cfg.Session.Secure,
		},
	)

	e := handler.RegisterRoutes()
	e.Any(rpcPath, echo.WrapHandler(rpc.New(logger, manager)))

	return &App{
		Repo:     repo,
		Sessions: sessions,
		Logger:   logger,
		Echo:     e,
		Config:   cfg,

		prepareStore: prepare,
		retryEvery:   storeRetryInterval,
	}, nil
}

// ConnectStore opens the configured store. On failure it still returns a
// usable Repository whose calls fail, together with the connect error. When
// the store may come up later, the returned PrepareFunc finishes the setup.
func ConnectStore(ctx context.Context, cfg config.Database, logger *slog.Logger) (newsportal.Repository, PrepareFunc, error) {
	switch cfg.Driver {
	case config.DriverSQLite:
		store, err := sqlite.Open(ctx, cfg.Path, logger)
		if err != nil {
			return offlineStore{err: err}, nil, fmt.Errorf("open sqlite store: %w", err)
		}
		return store, nil, nil
	case config.DriverPostgres:
		dbc := pg.Connect(cfg.PGOptions())
		if cfg.LogQueries {
			dbc.AddQueryHook(db.NewQueryHook(logger))
			logger.Info("SQL query logging enabled")
		}

		repo := db.New(dbc)
		prepare := func(ctx context.Context) error {
			if err := repo.Ping(ctx); err != nil {
				return fmt.Errorf("ping postgres: %w", err)
			}
			if err := db.Migrate(ctx, cfg.URL(), logger); err != nil {
				return fmt.Errorf("migrate postgres: %w", err)
			}
			return nil
		}

		if err := prepare(ctx); err != nil {
			return repo, prepare, err
		}
		return repo, nil, nil
	default:
		err := fmt.Errorf("unsupported database driver %q", cfg.Driver)
		return offlineStore{err: err}, nil, err
	}
}

// KeepPreparing calls prepare every interval until it succeeds or ctx is done.
func KeepPreparing(ctx context.Context, interval time.Duration, prepare PrepareFunc, logger *slog.Logger) {
	ticker := time.NewTicker(interval)
	defer ticker.Stop()

	for {
		select {
		case <-ctx.Done():
			return
		case <-ticker.C:
			if err := prepare(ctx); err != nil {
				logger.Warn("store still unavailable", "error", err)
				continue
			}
			logger.Info("store connected and migrated")
			return
		}
	}
}

func (a *App) Run(ctx context.Context) error {
	if a.prepareStore != nil {
		go KeepPreparing(ctx, a.retryEvery, a.prepareStore, a.Logger)
	}

	go a.Sessions.RunCleanup(ctx, sessionCleanupInterval, func(removed int) {
		metrics.ActiveSessions.Set(float64(a.Sessions.Len()))
		a.Logger.Debug("expired sessions removed", "count", removed)
	})

	addr := net.JoinHostPort(a.Config.App.Host, strconv.Itoa(a.Config.App.Port))
	a.Logger.Info("service starting", "addr", addr, "driver", a.Config.Database.Driver)

	err := a.Echo.Start(addr)
	if errors.Is(err, http.ErrServerClosed) {
		return nil
	}
	return err
}

func (a *App) GracefulShutdown(ctx context.Context) error {
	err := a.Echo.Shutdown(ctx)
	if errors.Is(err, http.ErrServerClosed) {
		err = nil
	}

	return errors.Join(err, a.Repo.Close())
}
