package tournamentrouter

import (
	"context"
	"fmt"
	"log/slog"

	"github.com/ThreeDotsLabs/watermill/message"
	"github.com/ThreeDotsLabs/watermill/message/router/middleware"
	"go.opentelemetry.io/otel/trace"

	tournamentservice "github.com/Rxriddqd/iddqd/app/modules/tournament/application"
	tournamentevents "github.com/Rxriddqd/iddqd/app/modules/tournament/events"
	tournamenthandlers "github.com/Rxriddqd/iddqd/app/modules/tournament/infrastructure/handlers"
	"github.com/Rxriddqd/iddqd/app/eventbus"
	"github.com/Rxriddqd/iddqd/app/observability"
	"github.com/Rxriddqd/iddqd/app/shared/handlerwrapper"
	"github.com/Rxriddqd/iddqd/internal/ratelimit"
)

// TournamentRouter handles routing for tournament module events.
type TournamentRouter struct {
	logger     *slog.Logger
	Router     *message.Router
	subscriber eventbus.EventBus
	publisher  eventbus.EventBus
	tracer     trace.Tracer
	metrics    observability.HandlerMetrics
}

// NewTournamentRouter creates a new TournamentRouter.
func NewTournamentRouter(
	logger *slog.Logger,
	router *message.Router,
	subscriber eventbus.EventBus,
	publisher eventbus.EventBus,
	tracer trace.Tracer,
	metrics observability.HandlerMetrics,
) *TournamentRouter {
	return &TournamentRouter{
		logger:     logger,
		Router:     router,
		subscriber: subscriber,
		publisher:  publisher,
		tracer:     tracer,
		metrics:    metrics,
	}
}

// Configure sets up the router with the necessary handlers and middleware.
func (r *TournamentRouter) Configure(routerCtx context.Context, service tournamentservice.Service, rollLimiter *ratelimit.Limiter) error {
	handlers := tournamenthandlers.NewTournamentHandlers(service, r.logger, rollLimiter)

	r.Router.AddMiddleware(
		middleware.CorrelationID,
		handlerwrapper.CommonMetadata("tournament"),
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
	handlerName := "tournament." + topic

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
func (r *TournamentRouter) RegisterHandlers(ctx context.Context, handlers tournamenthandlers.Handlers) error {
	deps := handlerDeps{
		router:     r.Router,
		subscriber: r.subscriber,
		publisher:  r.publisher,
		logger:     r.logger,
		tracer:     r.tracer,
		metrics:    r.metrics,
	}

	registerHandler(deps, tournamentevents.TournamentCreateRequested, handlers.HandleCreateTournament)
	registerHandler(deps, tournamentevents.RollRequested, handlers.HandleUserRoll)
	registerHandler(deps, tournamentevents.RoundEndRequested, handlers.HandleEndRound)
	registerHandler(deps, tournamentevents.StatsRequested, handlers.HandleStats)
	registerHandler(deps, tournamentevents.LeaderboardRequested, handlers.HandleLeaderboard)
	registerHandler(deps, tournamentevents.CancelRequested, handlers.HandleCancel)

	return nil
}

// Close stops the router.
func (r *TournamentRouter) Close() error {
	return r.Router.Close()
}
