package gamestatehandlers

import (
	"context"
	"errors"

	gamestateevents "github.com/Rxriddqd/iddqd/app/modules/gamestate/events"
	"github.com/Rxriddqd/iddqd/app/shared/handlerwrapper"
)

// HandleAddPlayer adds the user to the game's player list.
func (h *GameStateHandlers) HandleAddPlayer(ctx context.Context, payload *gamestateevents.PlayerAddRequestedPayload) ([]handlerwrapper.Result, error) {
	if payload == nil {
		return nil, errors.New("payload cannot be nil")
	}

	result := h.service.AddPlayer(ctx, payload.GameID, payload.UserID)
	return mapOperationResult(result,
		gamestateevents.PlayerAdded,
		gamestateevents.PlayerAddFailed,
	), nil
}

// HandleRemovePlayer removes the user from the game's player list.
func (h *GameStateHandlers) HandleRemovePlayer(ctx context.Context, payload *gamestateevents.PlayerRemoveRequestedPayload) ([]handlerwrapper.Result, error) {
	if payload == nil {
		return nil, errors.New("payload cannot be nil")
	}

	result := h.service.RemovePlayer(ctx, payload.GameID, payload.UserID)
	return mapOperationResult(result,
		gamestateevents.PlayerRemoved,
		gamestateevents.PlayerRemoveFailed,
	), nil
}
