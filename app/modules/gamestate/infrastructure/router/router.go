package gamestaterouter

import (
	"context"
	"fmt"
	"log/slog"

	"github.com/ThreeDotsLabs/watermill/message"
	"github.com/ThreeDotsLabs/watermill/message/router/middleware"
	"go.opentelemetry.io/otel/trace"

	gamestateservice "github.com/Rxriddqd/iddqd/app/modules/gamestate/application"
	gamestateevents "github.com/Rxriddqd/iddqd/app/modules/gamestate/events"
	gamestatehandlers "github.com/Rxriddqd/iddqd/app/modules/gamestate/infrastructure/handlers"
	"github.com/Rxriddqd/iddqd/app/eventbus"
	"github.com/Rxriddqd/iddqd/app/observability"
	"github.com/Rxriddqd/iddqd/app/shared/handlerwrapper"
)

// GameStateRouter handles routing for game-state module events.
type GameStateRouter struct {
	logger     *slog.Logger
	Router     *message.Router
	subscriber eventbus.EventBus
	publisher  eventbus.EventBus
	tracer     trace.Tracer
	metrics    observability.HandlerMetrics
}

// NewGameStateRouter creates a new GameStateRouter.
func NewGameStateRouter(
	logger *slog.Logger,
	router *message.Router,
	subscriber eventbus.EventBus,
	publisher eventbus.EventBus,
	tracer trace.Tracer,
	metrics observability.HandlerMetrics,
) *GameStateRouter {
	return &GameStateRouter{
		logger:     logger,
		Router:     router,
		subscriber: subscriber,
		publisher:  publisher,
		tracer:     tracer,
		metrics:    metrics,
	}
}

// Configure sets up the router with the necessary handlers and middleware.
func (r *GameStateRouter) Configure(routerCtx context.Context, service gamestateservice.Service) error {
	handlers := gamestatehandlers.NewGameStateHandlers(service, r.logger)

	r.Router.AddMiddleware(
		middleware.CorrelationID,
		handlerwrapper.CommonMetadata("gamestate"),
		middleware.Recoverer,
	)

	if err := r.RegisterHandlers(routerCtx, handlers); err != nil {
		return fmt.Errorf("failed to register handlers: %w", err)
	}
	return nil
}

type handlerDeps struct {
	router     *message.Router
	subscriber eventbus.EventBus
	publisher  eventbus.EventBus
	logger     *slog.Logger
	tracer     trace.Tracer
	metrics    observability.HandlerMetrics
}

// registerHandler registers a pure transformation-pattern handler with typed payload.
func registerHandler[T any](
	deps handlerDeps,
	topic string,
	handler func(context.Context, *T) ([]handlerwrapper.Result, error),
) {
	handlerName := "gamestate." + topic

	deps.router.AddHandler(
		handlerName,
		topic,
		deps.subscriber,
		"", // destination topic is carried in message metadata
		deps.publisher,
		handlerwrapper.WrapTransformingTyped(
			handlerName,
			deps.logger,
			deps.tracer,
			deps.metrics,
			handler,
		),
	)
}

// RegisterHandlers registers event handlers using the transformation pattern.
func (r *GameStateRouter) RegisterHandlers(ctx context.Context, handlers gamestatehandlers.Handlers) error {
	deps := handlerDeps{
		router:     r.Router,
		subscriber: r.subscriber,
		publisher:  r.publisher,
		logger:     r.logger,
		tracer:     r.tracer,
		metrics:    r.metrics,
	}

	registerHandler(deps, gamestateevents.GameCreateRequested, handlers.HandleCreateGame)
	registerHandler(deps, gamestateevents.GameStartRequested, handlers.HandleStartGame)
	registerHandler(deps, gamestateevents.PlayerAddRequested, handlers.HandleAddPlayer)
	registerHandler(deps, gamestateevents.PlayerRemoveRequested, handlers.HandleRemovePlayer)
	registerHandler(deps, gamestateevents.DataUpdateRequested, handlers.HandleUpdateData)
	registerHandler(deps, gamestateevents.ScoreRecordRequested, handlers.HandleRecordScore)
	registerHandler(deps, gamestateevents.GameCompleteRequested, handlers.HandleCompleteGame)
	registerHandler(deps, gamestateevents.GameCancelRequested, handlers.HandleCancelGame)

	return nil
}

// Close stops the router.
func (r *GameStateRouter) Close() error {
	return r.Router.Close()
}
