// Package server wires storage, services and the HTTP API into one
// application and runs it until it is told to stop.
package server

import (
	"context"
	"fmt"
	"os/signal"
	"syscall"

	"github.com/dmitrijs2005/interviewkeeper/internal/auth"
	"github.com/dmitrijs2005/interviewkeeper/internal/config"
	"github.com/dmitrijs2005/interviewkeeper/internal/httpapi"
	"github.com/dmitrijs2005/interviewkeeper/internal/interviews"
	"github.com/dmitrijs2005/interviewkeeper/internal/logging"
	"github.com/dmitrijs2005/interviewkeeper/internal/profiles"
	"github.com/dmitrijs2005/interviewkeeper/internal/records"
	"github.com/dmitrijs2005/interviewkeeper/internal/storage"
	"github.com/dmitrijs2005/interviewkeeper/internal/users"
	"github.com/jmoiron/sqlx"
	"golang.org/x/sync/errgroup"
)

// Services is the set of domain services sharing one record store.
type Services struct {
	Store      *records.Store
	Users      *users.Registry
	Auth       *auth.Service
	Profiles   *profiles.Service
	Interviews *interviews.Service
}

// NewServices builds every service on top of an open database handle.
func NewServices(db *sqlx.DB, c *config.Config, logger logging.Logger) *Services {
	store := records.NewStore(db, records.NewSQLRepositoryManager())
	registry := users.NewRegistry(store)

	return &Services{
		Store:      store,
		Users:      registry,
		Auth:       auth.NewService(registry, c.SecretKey, c.AccessTokenValidityDuration, logger),
		Profiles:   profiles.NewService(store),
		Interviews: interviews.NewService(store),
	}
}

type App struct {
	config   *config.Config
	logger   logging.Logger
	db       *sqlx.DB
	services *Services
}

// NewApp opens the store (applying migrations) and seeds users when a seed
// file is configured.
func NewApp(ctx context.Context, c *config.Config, logger logging.Logger) (*App, error) {
	db, err := storage.Open(ctx, c.DatabaseDSN, c.BusyTimeout)
	if err != nil {
		return nil, fmt.Errorf("db init error: %w", err)
	}

	app := &App{
		config:   c,
		logger:   logger,
		db:       db,
		services: NewServices(db, c, logger),
	}

	if c.UsersFile != "" {
		if _, err := app.services.Auth.SeedFromFile(ctx, c.UsersFile); err != nil {
			_ = db.Close()
			return nil, fmt.Errorf("seeding users: %w", err)
		}
	}

	return app, nil
}

func (app *App) Services() *Services {
	return app.services
}

// Run serves HTTP until ctx is cancelled or SIGINT/SIGTERM arrives, then
// closes the store.
func (app *App) Run(ctx context.Context) error {
	ctx, stop := signal.NotifyContext(ctx, syscall.SIGINT, syscall.SIGTERM)
	defer stop()

	app.logger.Info(ctx, "Starting app...", "driver", storage.DriverFor(app.config.DatabaseDSN))

	g, gctx := errgroup.WithContext(ctx)

	g.Go(func() error {
		s := httpapi.NewServer(app.config.HTTPAddr, app.logger,
			app.services.Auth, app.services.Profiles, app.services.Interviews)
		return s.Run(gctx)
	})

	err := g.Wait()
	if err != nil {
		app.logger.Error(ctx, "server stopped with error", "error", err)
	}

	if closeErr := app.Close(); closeErr != nil && err == nil {
		err = closeErr
	}

	app.logger.Info(ctx, "App stopped")
	return err
}

func (app *App) Close() error {
	return app.db.Close()
}
