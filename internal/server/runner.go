// Package server wires configuration into running zoneinv processes and
// owns their startup and shutdown.
package server

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

	"github.com/cenkalti/backoff/v4"
	"github.com/jroosing/zoneinv/internal/api"
	"github.com/jroosing/zoneinv/internal/auth"
	"github.com/jroosing/zoneinv/internal/config"
	"github.com/jroosing/zoneinv/internal/couch"
	"github.com/jroosing/zoneinv/internal/database"
	"github.com/jroosing/zoneinv/internal/docstore"
	"github.com/jroosing/zoneinv/internal/inventory"
)

// ShutdownTimeout bounds graceful HTTP shutdown.
const ShutdownTimeout = 5 * time.Second

// Pinger is the part of the store client used while waiting at startup.
type Pinger interface {
	Ping(ctx context.Context) error
}

type httpServer interface {
	Addr() string
	ListenAndServe() error
	Shutdown(ctx context.Context) error
}

// Runner orchestrates startup and shutdown of the API and the document store.
type Runner struct {
	logger *slog.Logger
}

// NewRunner creates a new runner with the given logger.
func NewRunner(logger *slog.Logger) *Runner {
	if logger == nil {
		logger = slog.Default()
	}
	return &Runner{logger: logger}
}

// Run starts the API and blocks until SIGINT/SIGTERM.
func (r *Runner) Run(cfg *config.Config) error {
	ctx, cancel := signal.NotifyContext(context.Background(), os.Interrupt, syscall.SIGTERM)
	defer cancel()
	return r.RunWithContext(ctx, cfg)
}

// RunWithContext starts the API and blocks until ctx is canceled or the
// listener fails.
//
// Server lifecycle:
//  1. Wait for the document store to answer (bounded by store.startup_wait)
//  2. Create the zones and users databases if missing
//  3. Seed the bootstrap admin when enabled
//  4. Serve HTTP until shutdown, then drain with ShutdownTimeout
func (r *Runner) RunWithContext(ctx context.Context, cfg *config.Config) error {
	store, err := couch.NewClient(couch.Config{
		BaseURL: cfg.Store.URL,
		Timeout: cfg.Store.TimeoutDuration(),
		Logger:  r.logger,
	})
	if err != nil {
		return err
	}
	if err := WaitForStore(ctx, store, cfg.Store.StartupWaitDuration(), r.logger); err != nil {
		return fmt.Errorf("document store at %s is unreachable: %w", cfg.Store.URL, err)
	}
	for _, db := range []string{cfg.Store.ZonesDB, cfg.Store.UsersDB} {
		if err := store.EnsureDatabase(ctx, db); err != nil {
			return fmt.Errorf("ensure database %s: %w", db, err)
		}
	}

	authSvc, err := auth.NewService(cfg.Auth, auth.NewUsers(store, cfg.Store.UsersDB), r.logger)
	if err != nil {
		return err
	}
	if err := authSvc.Bootstrap(ctx); err != nil {
		return fmt.Errorf("bootstrap admin: %w", err)
	}

	srv := api.New(cfg, api.Deps{
		Inventory: inventory.NewService(store, cfg.Store.ZonesDB, r.logger),
		Auth:      authSvc,
		Store:     store,
	}, r.logger)

	r.logger.Info("api listening", "addr", srv.Addr(), "store", cfg.Store.URL, "zones_db", cfg.Store.ZonesDB)
	return r.serve(ctx, srv)
}

// RunDocStore serves the bundled document store until SIGINT/SIGTERM.
func (r *Runner) RunDocStore(cfg *config.Config) error {
	ctx, cancel := signal.NotifyContext(context.Background(), os.Interrupt, syscall.SIGTERM)
	defer cancel()
	return r.RunDocStoreWithContext(ctx, cfg)
}

// RunDocStoreWithContext opens the SQLite file and serves it until ctx is
// canceled.
func (r *Runner) RunDocStoreWithContext(ctx context.Context, cfg *config.Config) error {
	db, err := database.Open(cfg.DocStore.Path)
	if err != nil {
		return err
	}
	defer db.Close()

	srv := docstore.New(cfg, db, r.logger)
	r.logger.Info("document store listening", "addr", srv.Addr(), "path", cfg.DocStore.Path)
	return r.serve(ctx, srv)
}

func (r *Runner) serve(ctx context.Context, srv httpServer) error {
	errCh := make(chan error, 1)
	go func() { errCh <- srv.ListenAndServe() }()

	select {
	case <-ctx.Done():
		// shutdown requested
	case err := <-errCh:
		if err != nil && !errors.Is(err, http.ErrServerClosed) {
			return err
		}
		return nil
	}

	shutdownCtx, cancel := context.WithTimeout(context.Background(), ShutdownTimeout)
	defer cancel()
	if err := srv.Shutdown(shutdownCtx); err != nil {
		r.logger.Warn("graceful shutdown failed", "addr", srv.Addr(), "err", err)
		return err
	}
	r.logger.Info("server stopped", "addr", srv.Addr())
	return nil
}

// WaitForStore pings the store with exponential backoff until it answers,
// maxWait elapses or ctx is canceled.
func WaitForStore(ctx context.Context, store Pinger, maxWait time.Duration, logger *slog.Logger) error {
	b := backoff.NewExponentialBackOff()
	b.InitialInterval = 250 * time.Millisecond
	b.MaxInterval = 5 * time.Second
	b.MaxElapsedTime = maxWait

	notify := func(err error, wait time.Duration) {
		logger.Warn("document store not ready", "retry_in", wait, "err", err)
	}
	return backoff.RetryNotify(func() error { return store.Ping(ctx) }, backoff.WithContext(b, ctx), notify)
}
