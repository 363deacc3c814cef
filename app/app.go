// Package app wires configuration, storage, the event bus, the modules, and
// the HTTP query surface into one runnable application.
package app

import (
	"context"
	"fmt"
	"sync"
	"time"

	"github.com/ThreeDotsLabs/watermill"
	"github.com/ThreeDotsLabs/watermill/message"

	"github.com/Rxriddqd/iddqd/app/eventbus"
	"github.com/Rxriddqd/iddqd/app/modules/gamestate"
	"github.com/Rxriddqd/iddqd/app/modules/tournament"
	tournamentdb "github.com/Rxriddqd/iddqd/app/modules/tournament/infrastructure/repositories"
	"github.com/Rxriddqd/iddqd/app/observability"
	"github.com/Rxriddqd/iddqd/config"
	"github.com/Rxriddqd/iddqd/internal/server"
	"github.com/Rxriddqd/iddqd/internal/storage"
	"github.com/Rxriddqd/iddqd/internal/storage/disk"
	"github.com/Rxriddqd/iddqd/internal/storage/kv"
	"github.com/Rxriddqd/iddqd/pkg/session"
)

const shutdownTimeout = 10 * time.Second

// App holds the application's composed subsystems.
type App struct {
	Config        *config.Config
	Observability *observability.Observability

	kvClient *kv.Client
	storage  *storage.Service
	eventBus eventbus.EventBus
	router   *message.Router

	TournamentModule *tournament.Module
	GameStateModule  *gamestate.Module
	httpServer       *server.Server

	cancel context.CancelFunc
}

// NewApp composes the application from cfg. Nothing starts running until Run.
func NewApp(ctx context.Context, cfg *config.Config) (*App, error) {
	obs := observability.New(cfg.Observability)
	logger := obs.Logger

	kvClient := kv.New(kv.Options{
		Addr:     cfg.Redis.Addr(),
		Password: cfg.Redis.Password,
		DB:       cfg.Redis.DB,
		TLS:      cfg.Redis.TLS,
	}, logger)
	kvClient.LogConnectionState(ctx)

	diskStore := disk.New(cfg.Storage.DataDir, logger)
	storageService := storage.NewService(kvClient, diskStore, logger, obs.Registry.Storage)

	bus, err := eventbus.NewEventBus(ctx, cfg.NATS.URL, logger)
	if err != nil {
		return nil, fmt.Errorf("failed to create event bus: %w", err)
	}
	if err := eventbus.InitializeStreams(ctx, bus.JetStream(), logger); err != nil {
		return nil, fmt.Errorf("failed to initialize streams: %w", err)
	}

	watermillRouter, err := message.NewRouter(message.RouterConfig{}, watermill.NewSlogLogger(logger))
	if err != nil {
		return nil, fmt.Errorf("failed to create message router: %w", err)
	}

	tournamentRepo := tournamentdb.NewStore(kvClient, logger)

	tournamentModule, err := tournament.NewTournamentModule(ctx, obs, tournamentRepo, bus, watermillRouter, ctx)
	if err != nil {
		return nil, fmt.Errorf("failed to create tournament module: %w", err)
	}

	gameStateModule, err := gamestate.NewGameStateModule(ctx, obs, storageService, bus, watermillRouter, ctx)
	if err != nil {
		return nil, fmt.Errorf("failed to create gamestate module: %w", err)
	}

	sessions := session.NewService(cfg.Session.Secret, cfg.Session.DefaultTTL, storageService)

	httpServer := server.New(cfg.HTTP.Addr, server.Deps{
		Logger:      logger,
		Obs:         obs,
		KV:          kvClient,
		Disk:        diskStore,
		Tournaments: tournamentModule.TournamentService,
		Repo:        tournamentRepo,
		Sessions:    sessions,
	})

	return &App{
		Config:           cfg,
		Observability:    obs,
		kvClient:         kvClient,
		storage:          storageService,
		eventBus:         bus,
		router:           watermillRouter,
		TournamentModule: tournamentModule,
		GameStateModule:  gameStateModule,
		httpServer:       httpServer,
	}, nil
}

// Run starts the message router, the modules, and the HTTP server, then
// blocks until ctx is canceled. Shutdown is graceful.
func (a *App) Run(ctx context.Context) error {
	logger := a.Observability.Logger
	ctx, cancel := context.WithCancel(ctx)
	a.cancel = cancel
	defer cancel()

	errCh := make(chan error, 2)

	go func() {
		if err := a.router.Run(ctx); err != nil {
			errCh <- fmt.Errorf("message router stopped: %w", err)
		}
	}()

	var wg sync.WaitGroup
	wg.Add(2)
	go a.TournamentModule.Run(ctx, &wg)
	go a.GameStateModule.Run(ctx, &wg)

	go func() {
		if err := a.httpServer.Start(); err != nil {
			errCh <- fmt.Errorf("http server stopped: %w", err)
		}
	}()

	logger.InfoContext(ctx, "Application started")

	var runErr error
	select {
	case <-ctx.Done():
	case runErr = <-errCh:
		logger.Error("Subsystem failed, shutting down", "error", runErr)
		cancel()
	}

	shutdownCtx, shutdownCancel := context.WithTimeout(context.Background(), shutdownTimeout)
	defer shutdownCancel()

	if err := a.httpServer.Shutdown(shutdownCtx); err != nil {
		logger.Error("HTTP server shutdown error", "error", err)
	}

	wg.Wait()
	logger.Info("Application stopped")
	return runErr
}

// Close releases every held resource. Safe to call after Run returns.
func (a *App) Close() error {
	logger := a.Observability.Logger

	if a.cancel != nil {
		a.cancel()
	}

	var firstErr error
	record := func(err error) {
		if err != nil && firstErr == nil {
			firstErr = err
		}
	}

	if a.TournamentModule != nil {
		record(a.TournamentModule.Close())
	}
	if a.GameStateModule != nil {
		record(a.GameStateModule.Close())
	}
	if a.eventBus != nil {
		record(a.eventBus.Close())
	}
	if a.kvClient != nil {
		record(a.kvClient.Close())
	}

	if firstErr != nil {
		logger.Error("Error during application close", "error", firstErr)
	}
	return firstErr
}
