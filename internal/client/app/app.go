// Package app assembles the ticketapp client: it opens the local store,
// builds the persistence facade, seeds demo data, restores the session and
// runs the terminal client until the user leaves or a signal arrives.
package app

import (
	"context"
	"fmt"
	"io"
	"os"
	"os/signal"
	"syscall"

	"github.com/dmitrijs2005/ticketapp/internal/client/cli"
	"github.com/dmitrijs2005/ticketapp/internal/client/config"
	"github.com/dmitrijs2005/ticketapp/internal/client/repositories/kv"
	"github.com/dmitrijs2005/ticketapp/internal/client/services"
	"github.com/dmitrijs2005/ticketapp/internal/client/storage"
	"github.com/dmitrijs2005/ticketapp/internal/logging"
)

type App struct {
	config  *config.Config
	logger  logging.Logger
	store   *kv.SQLiteStore
	storage *storage.Storage
	auth    *services.AuthStore
	cli     *cli.App
}

// NewApp opens the store and prepares every component. The auth store is
// initialized before NewApp returns, so the first guard check already sees
// the restored session.
func NewApp(ctx context.Context, c *config.Config, in io.Reader, out, logOut io.Writer) (*App, error) {
	logger, err := logging.NewTextLogger(logOut, c.LogLevel)
	if err != nil {
		return nil, fmt.Errorf("logger init error: %w", err)
	}

	store, err := kv.Open(ctx, c.StoragePath, c.StorageQuota)
	if err != nil {
		return nil, fmt.Errorf("store init error: %w", err)
	}

	st := storage.New(store, storage.WithLogger(logger))

	if c.SeedTickets {
		if _, err := st.SeedDefaultTickets(ctx); err != nil {
			logger.Warn(ctx, "seeding demo tickets failed", "error", err)
		}
	}

	auth := services.NewAuthStore(st, logger)
	if err := auth.Initialize(ctx); err != nil {
		logger.Warn(ctx, "starting logged out", "error", err)
	}

	ui, err := cli.NewApp(st, store, auth, logger, in, out)
	if err != nil {
		_ = store.Close()
		return nil, err
	}

	return &App{config: c, logger: logger, store: store, storage: st, auth: auth, cli: ui}, nil
}

func (app *App) initSignalHandler(cancelFunc context.CancelFunc) {
	sigs := make(chan os.Signal, 1)
	signal.Notify(sigs, syscall.SIGINT, syscall.SIGTERM, syscall.SIGQUIT)

	go func() {
		<-sigs
		cancelFunc()
	}()
}

// Run serves the terminal client until it exits or ctx is cancelled, then
// closes the store.
func (app *App) Run(ctx context.Context) error {
	ctx, cancelFunc := context.WithCancel(ctx)
	defer cancelFunc()

	app.logger.Debug(ctx, "starting client", "storage", app.config.StoragePath)
	app.initSignalHandler(cancelFunc)

	done := make(chan struct{})
	go func() {
		defer close(done)
		app.cli.Run(ctx)
	}()

	select {
	case <-done:
	case <-ctx.Done():
		app.logger.Info(ctx, "interrupted")
	}

	return app.Close()
}

func (app *App) Close() error {
	return app.store.Close()
}
