package gamestateservice

import (
	"context"
	"slices"

	gamestateevents "github.com/Rxriddqd/iddqd/app/modules/gamestate/events"
	"github.com/Rxriddqd/iddqd/app/shared/results"
)

// AddPlayer adds the user to the game's player list. Adding a player that is
// already present leaves the list unchanged.
func (s *GameStateService) AddPlayer(ctx context.Context, gameID, userID string) results.OperationResult {
	return s.withTelemetry(ctx, "AddPlayer", gameID, func(ctx context.Context) results.OperationResult {
		state := s.load(ctx, gameID)
		if state == nil {
			return failure(gameID, msgGameNotFound)
		}

		if !state.HasPlayer(userID) {
			state.Players = append(state.Players, userID)
			if !s.save(ctx, state) {
				return failure(gameID, msgStorageFailed)
			}
		}
		return results.Success(&gamestateevents.GameUpdatedPayload{State: *state})
	})
}

// RemovePlayer removes the user from the game's player list. Removing an
// absent player leaves the list unchanged.
func (s *GameStateService) RemovePlayer(ctx context.Context, gameID, userID string) results.OperationResult {
	return s.withTelemetry(ctx, "RemovePlayer", gameID, func(ctx context.Context) results.OperationResult {
		state := s.load(ctx, gameID)
		if state == nil {
			return failure(gameID, msgGameNotFound)
		}

		if state.HasPlayer(userID) {
			state.Players = slices.DeleteFunc(state.Players, func(p string) bool {
				return p == userID
			})
			if !s.save(ctx, state) {
				return failure(gameID, msgStorageFailed)
			}
		}
		return results.Success(&gamestateevents.GameUpdatedPayload{State: *state})
	})
}
