// Package server wires configuration, storage, services and the HTTP API
// into a runnable process.
package server

import (
	"context"
	"database/sql"
	"fmt"
	"os"
	"os/signal"
	"syscall"

	"github.com/dmitrijs2005/bookmarks/internal/logging"
	"github.com/dmitrijs2005/bookmarks/internal/server/auth"
	"github.com/dmitrijs2005/bookmarks/internal/server/config"
	"github.com/dmitrijs2005/bookmarks/internal/server/repositories/repomanager"
	"github.com/dmitrijs2005/bookmarks/internal/server/rest"
	"github.com/dmitrijs2005/bookmarks/internal/server/services"
)

type App struct {
	config      *config.Config
	logger      logging.Logger
	openDB      func(ctx context.Context, dsn string) (*sql.DB, error)
	repomanager repomanager.RepositoryManager
}

func NewApp(c *config.Config, l logging.Logger) *App {
	return &App{
		config:      c,
		logger:      l,
		openDB:      repomanager.Open,
		repomanager: repomanager.NewPostgresRepositoryManager(),
	}
}

func (app *App) initSignalHandler(cancelFunc context.CancelFunc) {
	sigs := make(chan os.Signal, 1)
	signal.Notify(sigs, syscall.SIGINT, syscall.SIGTERM, syscall.SIGQUIT)

	go func() {
		<-sigs
		cancelFunc()
	}()
}

// Run connects to the database, applies migrations and serves HTTP until ctx
// is cancelled or a termination signal arrives.
func (app *App) Run(ctx context.Context) error {
	ctx, cancelFunc := context.WithCancel(ctx)
	defer cancelFunc()

	app.logger.Info(ctx, "Starting app...")
	app.initSignalHandler(cancelFunc)

	if app.config.SecretKey == config.DefaultSecretKey {
		app.logger.Warn(ctx, "using the default token signing key; set -s or secret_key outside development")
	}

	db, err := app.openDB(ctx, app.config.DatabaseDSN)
	if err != nil {
		return fmt.Errorf("db init error: %w", err)
	}
	defer db.Close()

	if err := app.repomanager.RunMigrations(ctx, db); err != nil {
		return fmt.Errorf("db migration error: %w", err)
	}

	codec := auth.NewTokenCodec(app.config.SecretKey, app.config.AccessTokenValidityDuration)

	s := rest.NewServer(app.config.EndpointAddrHTTP, app.logger,
		services.NewUserService(db, app.repomanager, auth.NewBcryptHasher(app.config.BcryptCost), codec),
		services.NewBookmarkService(db, app.repomanager),
		services.NewExportService(db, app.repomanager, app.config),
		codec,
	)

	if err := s.Run(ctx); err != nil {
		return fmt.Errorf("http server error: %w", err)
	}

	app.logger.Info(ctx, "App stopped")
	return nil
}
