package gamestatehandlers

import (
	"context"
	"errors"

	gamestateevents "github.com/Rxriddqd/iddqd/app/modules/gamestate/events"
	"github.com/Rxriddqd/iddqd/app/shared/handlerwrapper"
)

// HandleUpdateData shallow-merges the request data into the game's data bag.
func (h *GameStateHandlers) HandleUpdateData(ctx context.Context, payload *gamestateevents.DataUpdateRequestedPayload) ([]handlerwrapper.Result, error) {
	if payload == nil {
		return nil, errors.New("payload cannot be nil")
	}

	result := h.service.UpdateGameData(ctx, payload.GameID, payload.Data)
	return mapOperationResult(result,
		gamestateevents.DataUpdated,
		gamestateevents.DataUpdateFailed,
	), nil
}

// HandleRecordScore appends a score entry for the user.
func (h *GameStateHandlers) HandleRecordScore(ctx context.Context, payload *gamestateevents.ScoreRecordRequestedPayload) ([]handlerwrapper.Result, error) {
	if payload == nil {
		return nil, errors.New("payload cannot be nil")
	}

	result := h.service.RecordScore(ctx, payload.GameID, payload.UserID, payload.Score)
	return mapOperationResult(result,
		gamestateevents.ScoreRecorded,
		gamestateevents.ScoreRecordFailed,
	), nil
}
