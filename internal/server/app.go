// Package server initializes and runs the application: it wires the database,
// repositories, services and the HTTP API together and handles graceful
// shutdown on OS signals.
package server

import (
	"context"
	"database/sql"
	"errors"
	"fmt"
	"net/http"
	"os/signal"
	"syscall"

	"github.com/prometheus/client_golang/prometheus"

	"github.com/aslanbek/shanyrak/internal/logging"
	"github.com/aslanbek/shanyrak/internal/server/config"
	"github.com/aslanbek/shanyrak/internal/server/httpapi"
	"github.com/aslanbek/shanyrak/internal/server/repositories/repomanager"
	"github.com/aslanbek/shanyrak/internal/server/services"
)

type App struct {
	config *config.Config
	logger *logging.ZapLogger
	db     *sql.DB
	server *http.Server
}

func NewApp(ctx context.Context, cfg *config.Config) (*App, error) {

	logger, err := logging.NewProduction(cfg.Log.Level)
	if err != nil {
		return nil, fmt.Errorf("logger init error: %w", err)
	}

	db, err := repomanager.Open(ctx, cfg.Database.DSN)
	if err != nil {
		return nil, fmt.Errorf("db init error: %w", err)
	}

	m := repomanager.NewPostgresRepositoryManager()
	if err := m.RunMigrations(ctx, db); err != nil {
		db.Close()
		return nil, fmt.Errorf("migration error: %w", err)
	}

	identity := services.NewIdentityService(db, m, cfg)
	listings := services.NewListingService(db, m)
	comments := services.NewCommentService(db, m)
	favorites := services.NewFavoriteService(db, m)

	metrics := httpapi.NewMetrics(prometheus.DefaultRegisterer)
	api := httpapi.NewServer(logger, identity, listings, comments, favorites, metrics)

	srv := &http.Server{
		Addr:         cfg.HTTP.Addr,
		Handler:      api.Handler(),
		ReadTimeout:  cfg.HTTP.ReadTimeout,
		WriteTimeout: cfg.HTTP.WriteTimeout,
	}

	return &App{config: cfg, logger: logger, db: db, server: srv}, nil
}

// Run starts the HTTP server and blocks until the context is cancelled or an
// OS signal arrives, then shuts the server down gracefully.
func (app *App) Run(ctx context.Context) error {

	ctx, stop := signal.NotifyContext(ctx, syscall.SIGINT, syscall.SIGTERM)
	defer stop()

	errCh := make(chan error, 1)
	go func() {
		app.logger.Info(ctx, "starting server", "addr", app.config.HTTP.Addr)
		if err := app.server.ListenAndServe(); err != nil && !errors.Is(err, http.ErrServerClosed) {
			errCh <- err
		}
	}()

	select {
	case err := <-errCh:
		return fmt.Errorf("server error: %w", err)
	case <-ctx.Done():
	}

	app.logger.Info(ctx, "shutting down")

	shutdownCtx, cancel := context.WithTimeout(context.Background(), app.config.HTTP.ShutdownTimeout)
	defer cancel()

	if err := app.server.Shutdown(shutdownCtx); err != nil {
		return fmt.Errorf("shutdown error: %w", err)
	}

	if err := app.db.Close(); err != nil {
		return fmt.Errorf("db close error: %w", err)
	}

	_ = app.logger.Sync()

	return nil
}
