package gamestatehandlers

import (
	"log/slog"

	gamestateservice "github.com/Rxriddqd/iddqd/app/modules/gamestate/application"
	"github.com/Rxriddqd/iddqd/app/shared/handlerwrapper"
	"github.com/Rxriddqd/iddqd/app/shared/results"
)

// GameStateHandlers implements the Handlers interface for game-state events.
type GameStateHandlers struct {
	service gamestateservice.Service
	logger  *slog.Logger
}

// NewGameStateHandlers creates a new GameStateHandlers instance.
func NewGameStateHandlers(service gamestateservice.Service, logger *slog.Logger) *GameStateHandlers {
	return &GameStateHandlers{
		service: service,
		logger:  logger,
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
