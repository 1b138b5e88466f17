// Package server wires the Azyrnyx backend together: it opens the snapshot
// store, loads the registry, builds the services and runs the HTTP and gRPC
// servers until the process is told to stop.
package server

import (
	"context"
	"fmt"
	"os"
	"os/signal"
	"sync"
	"syscall"

	"github.com/dmitrijs2005/azyrnyx/internal/cryptox"
	"github.com/dmitrijs2005/azyrnyx/internal/logging"
	"github.com/dmitrijs2005/azyrnyx/internal/server/catalog"
	"github.com/dmitrijs2005/azyrnyx/internal/server/config"
	"github.com/dmitrijs2005/azyrnyx/internal/server/httpapi"
	"github.com/dmitrijs2005/azyrnyx/internal/server/models"
	"github.com/dmitrijs2005/azyrnyx/internal/server/registry"
	"github.com/dmitrijs2005/azyrnyx/internal/server/services"
	"github.com/dmitrijs2005/azyrnyx/internal/server/snapshot"

	gs "github.com/dmitrijs2005/azyrnyx/internal/server/grpc"
)

type App struct {
	config   *config.Config
	logger   logging.Logger
	registry *registry.Registry
	services services.Bundle
}

// openStore is a seam for tests.
var openStore = snapshot.Open

func NewApp(ctx context.Context, c *config.Config) (*App, error) {

	if err := c.Validate(); err != nil {
		return nil, fmt.Errorf("config error: %w", err)
	}

	logger, err := logging.NewJSONLogger(os.Stdout, c.LogLevel)
	if err != nil {
		return nil, fmt.Errorf("logger init error: %w", err)
	}

	seeds, err := loadSeeds(c)
	if err != nil {
		return nil, fmt.Errorf("catalog error: %w", err)
	}

	hasher, err := cryptox.NewHasher(cryptox.Params{
		Memory:     c.Argon2Memory,
		Time:       c.Argon2Time,
		Threads:    c.Argon2Threads,
		SaltLength: cryptox.DefaultParams().SaltLength,
		KeyLength:  cryptox.DefaultParams().KeyLength,
	})
	if err != nil {
		return nil, fmt.Errorf("hasher init error: %w", err)
	}

	store, err := openStore(ctx, c)
	if err != nil {
		return nil, fmt.Errorf("store init error: %w", err)
	}

	reg := registry.New(ctx, store, logger, seeds)

	authSvc, err := services.NewAuthService(reg, hasher, c, logger)
	if err != nil {
		_ = reg.Close()
		return nil, err
	}

	app := &App{
		config:   c,
		logger:   logger,
		registry: reg,
		services: services.Bundle{
			Auth:       authSvc,
			Redemption: services.NewRedemptionService(reg, c, logger),
			Quests:     services.NewQuestService(reg, c, logger),
			Admin:      services.NewAdminService(reg, c, logger),
		},
	}

	// persist merged seeds right away unless that would overwrite a snapshot
	// we failed to read
	switch {
	case reg.Degraded():
		logger.Warn(ctx, "Skipping initial snapshot write, stored snapshot could not be loaded")
	default:
		if err := reg.Flush(ctx); err != nil {
			logger.Warn(ctx, "Initial snapshot write failed", "error", err.Error())
		}
	}

	return app, nil
}

func loadSeeds(c *config.Config) ([]models.RedeemCode, error) {
	if c.CatalogFile == "" {
		return catalog.DefaultSeed(), nil
	}
	return catalog.LoadSeedFile(c.CatalogFile)
}

func (app *App) initSignalHandler(cancelFunc context.CancelFunc) {
	// Channel to catch OS signals.
	sigs := make(chan os.Signal, 1)
	signal.Notify(sigs, syscall.SIGINT, syscall.SIGTERM, syscall.SIGQUIT)

	go func() {
		<-sigs
		cancelFunc()
	}()
}

func (app *App) startHTTPServer(ctx context.Context, cancelFunc context.CancelFunc) {
	s := httpapi.NewHTTPServer(app.config.EndpointAddrHTTP, app.logger, app.services)
	if err := s.Run(ctx); err != nil {
		app.logger.Error(ctx, err.Error())
		cancelFunc()
	}
}

func (app *App) startGRPCServer(ctx context.Context, cancelFunc context.CancelFunc) {
	s := gs.NewGRPCServer(app.config.EndpointAddrGRPC, app.logger, app.services, app.config.SecretKey)
	if err := s.Run(ctx); err != nil {
		app.logger.Error(ctx, err.Error())
		cancelFunc()
	}
}

// Run serves until ctx is cancelled, a signal arrives or a server fails.
func (app *App) Run(ctx context.Context) {

	ctx, cancelFunc := context.WithCancel(ctx)
	defer cancelFunc()

	app.logger.Info(ctx, "Starting app...", "store", app.config.StoreKind, "accounts", app.registry.Len())

	app.initSignalHandler(cancelFunc)

	var wg sync.WaitGroup

	if app.config.EndpointAddrHTTP != "" {
		wg.Add(1)
		go func() {
			defer wg.Done()
			app.startHTTPServer(ctx, cancelFunc)
		}()
	}

	if app.config.EndpointAddrGRPC != "" {
		wg.Add(1)
		go func() {
			defer wg.Done()
			app.startGRPCServer(ctx, cancelFunc)
		}()
	}

	wg.Wait()

	if err := app.registry.Close(); err != nil {
		app.logger.Error(context.Background(), "Store close failed", "error", err.Error())
	}
	app.logger.Info(context.Background(), "App stopped")
}
