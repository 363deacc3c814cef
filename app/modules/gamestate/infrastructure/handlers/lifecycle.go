package gamestatehandlers

import (
	"context"
	"errors"

	"github.com/google/uuid"

	gamestateevents "github.com/Rxriddqd/iddqd/app/modules/gamestate/events"
	"github.com/Rxriddqd/iddqd/app/shared/attr"
	"github.com/Rxriddqd/iddqd/app/shared/handlerwrapper"
)

// HandleCreateGame creates a new pending game. A missing game ID is filled
// with a generated one so callers can fire-and-forget.
func (h *GameStateHandlers) HandleCreateGame(ctx context.Context, payload *gamestateevents.GameCreateRequestedPayload) ([]handlerwrapper.Result, error) {
	if payload == nil {
		return nil, errors.New("payload cannot be nil")
	}

	gameID := payload.GameID
	if gameID == "" {
		gameID = uuid.NewString()
		h.logger.InfoContext(ctx, "generated game id for create request",
			attr.String("game_id", gameID),
		)
	}

	result := h.service.CreateGame(ctx, gameID, payload.Type)
	return mapOperationResult(result,
		gamestateevents.GameCreated,
		gamestateevents.GameCreateFailed,
	), nil
}

// HandleStartGame moves the game to active.
func (h *GameStateHandlers) HandleStartGame(ctx context.Context, payload *gamestateevents.GameStartRequestedPayload) ([]handlerwrapper.Result, error) {
	if payload == nil {
		return nil, errors.New("payload cannot be nil")
	}

	result := h.service.StartGame(ctx, payload.GameID)
	return mapOperationResult(result,
		gamestateevents.GameStarted,
		gamestateevents.GameStartFailed,
	), nil
}

// HandleCompleteGame finishes the game and snapshots the final document.
func (h *GameStateHandlers) HandleCompleteGame(ctx context.Context, payload *gamestateevents.GameCompleteRequestedPayload) ([]handlerwrapper.Result, error) {
	if payload == nil {
		return nil, errors.New("payload cannot be nil")
	}

	result := h.service.CompleteGame(ctx, payload.GameID, payload.FinalData)
	return mapOperationResult(result,
		gamestateevents.GameCompleted,
		gamestateevents.GameCompleteFailed,
	), nil
}

// HandleCancelGame cancels the game.
func (h *GameStateHandlers) HandleCancelGame(ctx context.Context, payload *gamestateevents.GameCancelRequestedPayload) ([]handlerwrapper.Result, error) {
	if payload == nil {
		return nil, errors.New("payload cannot be nil")
	}

	result := h.service.CancelGame(ctx, payload.GameID, payload.Reason)
	return mapOperationResult(result,
		gamestateevents.GameCancelled,
		gamestateevents.GameCancelFailed,
	), nil
}
