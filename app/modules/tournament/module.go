package tournament

import (
	"context"
	"fmt"
	"sync"

	"github.com/ThreeDotsLabs/watermill/message"
	"golang.org/x/time/rate"

	"github.com/Rxriddqd/iddqd/app/eventbus"
	tournamentservice "github.com/Rxriddqd/iddqd/app/modules/tournament/application"
	tournamentdb "github.com/Rxriddqd/iddqd/app/modules/tournament/infrastructure/repositories"
	tournamentrouter "github.com/Rxriddqd/iddqd/app/modules/tournament/infrastructure/router"
	"github.com/Rxriddqd/iddqd/app/observability"
	"github.com/Rxriddqd/iddqd/internal/ratelimit"
)

// One roll every 2 seconds with a small burst keeps command spam below the
// chat platform's own interaction cadence.
const (
	rollRatePerSecond = 0.5
	rollBurst         = 2
)

// Module represents the tournament module.
type Module struct {
	EventBus          eventbus.EventBus
	TournamentService tournamentservice.Service
	TournamentRouter  *tournamentrouter.TournamentRouter
	cancelFunc        context.CancelFunc
	observability     *observability.Observability
}

// NewTournamentModule creates a new instance of the tournament module.
func NewTournamentModule(
	ctx context.Context,
	obs *observability.Observability,
	repo tournamentdb.Repository,
	eventBus eventbus.EventBus,
	router *message.Router,
	routerCtx context.Context,
) (*Module, error) {
	logger := obs.Logger
	logger.InfoContext(ctx, "tournament.NewTournamentModule called")

	service := tournamentservice.NewTournamentService(repo, logger, obs.Registry.Tournament, obs.Tracer)
	rollLimiter := ratelimit.New(rate.Limit(rollRatePerSecond), rollBurst)

	tournamentRouter := tournamentrouter.NewTournamentRouter(logger, router, eventBus, eventBus, obs.Tracer, obs.Registry.Handlers)
	if err := tournamentRouter.Configure(routerCtx, service, rollLimiter); err != nil {
		return nil, fmt.Errorf("failed to configure tournament router: %w", err)
	}

	return &Module{
		EventBus:          eventBus,
		TournamentService: service,
		TournamentRouter:  tournamentRouter,
		observability:     obs,
	}, nil
}

// Run keeps the module alive until the context is canceled.
func (m *Module) Run(ctx context.Context, wg *sync.WaitGroup) {
	logger := m.observability.Logger
	logger.InfoContext(ctx, "Starting tournament module")

	ctx, cancel := context.WithCancel(ctx)
	m.cancelFunc = cancel
	defer cancel()

	if wg != nil {
		defer wg.Done()
	}

	<-ctx.Done()
	logger.InfoContext(ctx, "Tournament module goroutine stopped")
}

// Close stops the tournament module and cleans up resources.
func (m *Module) Close() error {
	logger := m.observability.Logger
	logger.Info("Stopping tournament module")

	if m.cancelFunc != nil {
		m.cancelFunc()
	}
	if m.TournamentRouter != nil {
		if err := m.TournamentRouter.Close(); err != nil {
			logger.Error("Error closing TournamentRouter from module", "error", err)
			return fmt.Errorf("error closing TournamentRouter: %w", err)
		}
	}

	logger.Info("Tournament module stopped")
	return nil
}
