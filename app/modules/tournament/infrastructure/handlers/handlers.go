package tournamenthandlers

import (
	"log/slog"

	tournamentservice "github.com/Rxriddqd/iddqd/app/modules/tournament/application"
	"github.com/Rxriddqd/iddqd/app/shared/handlerwrapper"
	"github.com/Rxriddqd/iddqd/app/shared/results"
	"github.com/Rxriddqd/iddqd/internal/ratelimit"
)

// TournamentHandlers implements the Handlers interface for tournament events.
type TournamentHandlers struct {
	service tournamentservice.Service
	logger  *slog.Logger
	rolls   *ratelimit.Limiter
}

// NewTournamentHandlers creates a new TournamentHandlers instance. rollLimiter
// throttles per-user roll requests before they reach the engine.
func NewTournamentHandlers(service tournamentservice.Service, logger *slog.Logger, rollLimiter *ratelimit.Limiter) *TournamentHandlers {
	return &TournamentHandlers{
		service: service,
		logger:  logger,
		rolls:   rollLimiter,
	}
}

// mapOperationResult converts a service OperationResult to handler Results.
func mapOperationResult(result results.OperationResult, successTopic, failureTopic string) []handlerwrapper.Result {
	handlerResults := result.MapToHandlerResults(successTopic, failureTopic)

	wrapperResults := make([]handlerwrapper.Result, len(handlerResults))
	for i, hr := range handlerResults {
		wrapperResults[i] = handlerwrapper.Result{
			Topic:    hr.Topic,
			Payload:  hr.Payload,
			Metadata: hr.Metadata,
		}
	}
	return wrapperResults
}
