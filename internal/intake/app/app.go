package app

import (
	"context"
	"errors"
	"fmt"
	"log/slog"
	"net/http"
	"os"
	"os/signal"
	"syscall"
	"time"

	httpapi "github.com/aussiebroadwan/intake/internal/intake/http"
	"github.com/aussiebroadwan/intake/internal/intake/service"
	"github.com/aussiebroadwan/intake/internal/intake/store"
	redisstore "github.com/aussiebroadwan/intake/internal/intake/store/drivers/redis"
	"github.com/aussiebroadwan/intake/internal/intake/store/drivers/sqlite"
	"github.com/aussiebroadwan/intake/pkg/slogx"
)

const (
	// BuildVersion is overridden at build time via -ldflags.
	BuildVersion = "v0.1.0"
)

// Application wires the intake service together.
type Application struct {
	cfg    Config
	logger *slog.Logger

	db store.Store

	authGate          *service.AuthGate
	submissionService *service.SubmissionService
	adminService      *service.AdminService

	server *http.Server
	router *httpapi.Router
}

// NewLogger builds the process logger from cfg.
func NewLogger(cfg Config) *slog.Logger {
	return slogx.New(slogx.Config{
		Service: "intake",
		Version: BuildVersion,
		Env:     cfg.Env,
		Level:   cfg.LogLevel,
		Format:  cfg.LogFormat,
	})
}

// New creates a new Application instance with all dependencies initialized.
func New(cfg Config) (*Application, error) {
	app := &Application{
		cfg:    cfg,
		logger: NewLogger(cfg),
	}

	if err := app.initStore(context.Background()); err != nil {
		return nil, err
	}

	if err := app.initServices(); err != nil {
		_ = app.db.Close()
		return nil, err
	}

	app.initHTTP()
	return app, nil
}

// Handler exposes the root HTTP handler.
func (app *Application) Handler() http.Handler { return app.router }

// Run starts the application and blocks until shutdown is requested.
func (app *Application) Run() error {
	app.logger.Info("intake service starting",
		"port", app.cfg.Port,
		"version", BuildVersion,
		"store", app.cfg.StoreDriver,
		"token_mode", app.authGate.Mode(),
	)

	serverErrors := make(chan error, 1)
	go func() {
		serverErrors <- app.server.ListenAndServe()
	}()

	shutdown := make(chan os.Signal, 1)
	signal.Notify(shutdown, os.Interrupt, syscall.SIGTERM)
	defer signal.Stop(shutdown)

	select {
	case err := <-serverErrors:
		if err != nil && !errors.Is(err, http.ErrServerClosed) {
			_ = app.db.Close()
			return fmt.Errorf("server failed: %w", err)
		}
	case sig := <-shutdown:
		app.logger.Info("shutdown signal received", "signal", sig)

		if err := app.Shutdown(); err != nil {
			return fmt.Errorf("graceful shutdown failed: %w", err)
		}
	}

	return nil
}

// Shutdown drains the HTTP server and closes the store.
func (app *Application) Shutdown() error {
	app.logger.Info("shutting down intake service...")

	ctx, cancel := context.WithTimeout(context.Background(), app.cfg.ShutdownGracePeriod)
	defer cancel()

	if err := app.server.Shutdown(ctx); err != nil {
		app.logger.Error("graceful server shutdown failed", "error", err)
		if err := app.server.Close(); err != nil {
			app.logger.Error("error closing server", "error", err)
		}
	}

	if err := app.db.Close(); err != nil {
		app.logger.Error("error closing store", "error", err)
		return err
	}

	app.logger.Info("intake service stopped")
	return nil
}

// OpenStore opens the configured driver and brings its schema up to date.
func OpenStore(ctx context.Context, cfg Config) (store.Store, error) {
	var (
		st  store.Store
		err error
	)

	switch cfg.StoreDriver {
	case DriverRedis:
		st, err = redisstore.NewStore(ctx, cfg.StoreDSN, cfg.StoreDatabase)
	case DriverSQLite:
		st, err = sqlite.NewStore(cfg.StoreDSN)
	default:
		err = fmt.Errorf("unknown store driver %q", cfg.StoreDriver)
	}
	if err != nil {
		return nil, fmt.Errorf("failed to open %s store: %w", cfg.StoreDriver, err)
	}

	if err := st.ApplyMigrations(); err != nil {
		_ = st.Close()
		return nil, fmt.Errorf("failed to apply store migrations: %w", err)
	}

	return st, nil
}

func (app *Application) initStore(ctx context.Context) error {
	st, err := OpenStore(ctx, app.cfg)
	if err != nil {
		return err
	}
	app.db = st

	app.logger.Info("store ready", "driver", app.cfg.StoreDriver)
	return nil
}

// NewAuthGate builds the admin gate described by cfg.
func NewAuthGate(cfg Config) (*service.AuthGate, error) {
	mode, err := service.ParseTokenMode(cfg.TokenMode)
	if err != nil {
		return nil, err
	}

	return service.NewAuthGate(service.AuthConfig{
		Username: cfg.AdminUsername,
		Password: cfg.AdminPassword,
		Mode:     mode,
		Secret:   []byte(cfg.TokenSecret),
		TTL:      cfg.TokenTTL,
		Issuer:   cfg.Issuer,
	})
}

func (app *Application) initServices() error {
	gate, err := NewAuthGate(app.cfg)
	if err != nil {
		return fmt.Errorf("failed to initialize admin auth: %w", err)
	}
	if gate.EphemeralSecret() {
		app.logger.Warn("AUTH_TOKEN_SECRET not set, admin tokens will not survive a restart")
	}
	if gate.Mode() == service.TokenModeLegacy {
		app.logger.Warn("legacy admin tokens never expire, prefer AUTH_TOKEN_MODE=jwt")
	}
	app.authGate = gate

	app.submissionService = &service.SubmissionService{Store: app.db}
	app.adminService = &service.AdminService{
		Store:        app.db,
		RecentWindow: app.cfg.StatsRecentWindow,
	}
	return nil
}

func (app *Application) initHTTP() {
	router := httpapi.NewRouter(BuildVersion, app.db, app.logger, app.cfg.CORSOrigins)

	router.AuthGate = app.authGate
	router.SubmissionService = app.submissionService
	router.AdminService = app.adminService
	router.ApplyRoutes()

	app.router = router

	app.server = &http.Server{
		Addr:              fmt.Sprintf(":%d", app.cfg.Port),
		Handler:           router,
		ReadHeaderTimeout: 3 * time.Second,
	}
}
