package gamestate

import (
	"context"
	"fmt"
	"sync"

	"github.com/ThreeDotsLabs/watermill/message"

	"github.com/Rxriddqd/iddqd/app/eventbus"
	gamestateservice "github.com/Rxriddqd/iddqd/app/modules/gamestate/application"
	gamestaterouter "github.com/Rxriddqd/iddqd/app/modules/gamestate/infrastructure/router"
	"github.com/Rxriddqd/iddqd/app/observability"
)

// Module represents the game-state module.
type Module struct {
	EventBus         eventbus.EventBus
	GameStateService gamestateservice.Service
	GameStateRouter  *gamestaterouter.GameStateRouter
	cancelFunc       context.CancelFunc
	observability    *observability.Observability
}

// NewGameStateModule creates a new instance of the game-state module.
func NewGameStateModule(
	ctx context.Context,
	obs *observability.Observability,
	store gamestateservice.GameStore,
	eventBus eventbus.EventBus,
	router *message.Router,
	routerCtx context.Context,
) (*Module, error) {
	logger := obs.Logger
	logger.InfoContext(ctx, "gamestate.NewGameStateModule called")

	service := gamestateservice.NewGameStateService(store, logger, obs.Registry.GameState, obs.Tracer)

	gameStateRouter := gamestaterouter.NewGameStateRouter(logger, router, eventBus, eventBus, obs.Tracer, obs.Registry.Handlers)
	if err := gameStateRouter.Configure(routerCtx, service); err != nil {
		return nil, fmt.Errorf("failed to configure gamestate router: %w", err)
	}

	return &Module{
		EventBus:         eventBus,
		GameStateService: service,
		GameStateRouter:  gameStateRouter,
		observability:    obs,
	}, nil
}

// Run keeps the module alive until the context is canceled.
func (m *Module) Run(ctx context.Context, wg *sync.WaitGroup) {
	logger := m.observability.Logger
	logger.InfoContext(ctx, "Starting gamestate module")

	ctx, cancel := context.WithCancel(ctx)
	m.cancelFunc = cancel
	defer cancel()

	if wg != nil {
		defer wg.Done()
	}

	<-ctx.Done()
	logger.InfoContext(ctx, "Gamestate module goroutine stopped")
}

// Close stops the game-state module and cleans up resources.
func (m *Module) Close() error {
	logger := m.observability.Logger
	logger.Info("Stopping gamestate module")

	if m.cancelFunc != nil {
		m.cancelFunc()
	}
	if m.GameStateRouter != nil {
		if err := m.GameStateRouter.Close(); err != nil {
			logger.Error("Error closing GameStateRouter from module", "error", err)
			return fmt.Errorf("error closing GameStateRouter: %w", err)
		}
	}

	logger.Info("Gamestate module stopped")
	return nil
}
