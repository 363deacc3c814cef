package gamestateservice

import (
	"context"

	gamestateevents "github.com/Rxriddqd/iddqd/app/modules/gamestate/events"
	"github.com/Rxriddqd/iddqd/app/shared/results"
)

// UpdateGameData shallow-merges updates into the game's data bag.
func (s *GameStateService) UpdateGameData(ctx context.Context, gameID string, updates map[string]any) results.OperationResult {
	return s.withTelemetry(ctx, "UpdateGameData", gameID, func(ctx context.Context) results.OperationResult {
		state := s.load(ctx, gameID)
		if state == nil {
			return failure(gameID, msgGameNotFound)
		}

		mergeData(state, updates)
		if !s.save(ctx, state) {
			return failure(gameID, msgStorageFailed)
		}
		return results.Success(&gamestateevents.GameUpdatedPayload{State: *state})
	})
}

// RecordScore appends a score entry to the game's score list under the
// "scores" key of the data bag.
func (s *GameStateService) RecordScore(ctx context.Context, gameID, userID string, score int) results.OperationResult {
	return s.withTelemetry(ctx, "RecordScore", gameID, func(ctx context.Context) results.OperationResult {
		state := s.load(ctx, gameID)
		if state == nil {
			return failure(gameID, msgGameNotFound)
		}

		if state.Data == nil {
			state.Data = map[string]any{}
		}
		scores, _ := state.Data["scores"].([]any)
		scores = append(scores, map[string]any{
			"userId":     userID,
			"score":      score,
			"recordedAt": s.now().UnixMilli(),
		})
		state.Data["scores"] = scores

		if !s.save(ctx, state) {
			return failure(gameID, msgStorageFailed)
		}
		return results.Success(&gamestateevents.GameUpdatedPayload{State: *state})
	})
}
