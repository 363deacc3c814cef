package gamestateservice

import (
	"context"

	gamestatetypes "github.com/Rxriddqd/iddqd/app/modules/gamestate/domain"
	gamestateevents "github.com/Rxriddqd/iddqd/app/modules/gamestate/events"
	"github.com/Rxriddqd/iddqd/app/shared/results"
)

const (
	msgGameNotFound   = "game not found"
	msgStorageFailed  = "storage is unavailable, try again later"
	msgGameIDRequired = "game id and type are required"
)

func failure(gameID, reason string) results.OperationResult {
	return results.Failure(&gamestateevents.GameFailedPayload{
		GameID: gameID,
		Reason: reason,
	})
}

// load reads the game document. Returns nil on absence or a malformed
// record; the façade has already logged the cause.
func (s *GameStateService) load(ctx context.Context, gameID string) *gamestatetypes.GameState {
	var state gamestatetypes.GameState
	if !s.store.LoadGameState(ctx, gameID, &state) {
		return nil
	}
	return &state
}

func (s *GameStateService) save(ctx context.Context, state *gamestatetypes.GameState) bool {
	state.UpdatedAt = s.now().UnixMilli()
	return s.store.SaveGameState(ctx, state.GameID, state)
}

// CreateGame creates a new pending game document.
func (s *GameStateService) CreateGame(ctx context.Context, gameID, gameType string) results.OperationResult {
	return s.withTelemetry(ctx, "CreateGame", gameID, func(ctx context.Context) results.OperationResult {
		if gameID == "" || gameType == "" {
			return failure(gameID, msgGameIDRequired)
		}

		nowMs := s.now().UnixMilli()
		state := &gamestatetypes.GameState{
			GameID:    gameID,
			Type:      gameType,
			Status:    gamestatetypes.StatusPending,
			Players:   []string{},
			Data:      map[string]any{},
			CreatedAt: nowMs,
			UpdatedAt: nowMs,
		}
		if !s.store.SaveGameState(ctx, gameID, state) {
			return failure(gameID, msgStorageFailed)
		}

		s.store.AppendEventLog(ctx, "games", map[string]any{
			"action": "created",
			"gameId": gameID,
			"type":   gameType,
		})
		return results.Success(&gamestateevents.GameUpdatedPayload{State: *state})
	})
}

// GetGame returns the game document, or nil if absent or undecodable.
func (s *GameStateService) GetGame(ctx context.Context, gameID string) *gamestatetypes.GameState {
	return s.load(ctx, gameID)
}

// StartGame moves the game to active and stamps StartedAt. Calling it on an
// already-active game is idempotent by construction: the status and start
// time are simply set again.
func (s *GameStateService) StartGame(ctx context.Context, gameID string) results.OperationResult {
	return s.withTelemetry(ctx, "StartGame", gameID, func(ctx context.Context) results.OperationResult {
		state := s.load(ctx, gameID)
		if state == nil {
			return failure(gameID, msgGameNotFound)
		}

		state.Status = gamestatetypes.StatusActive
		state.StartedAt = s.now().UnixMilli()
		if !s.save(ctx, state) {
			return failure(gameID, msgStorageFailed)
		}

		s.store.AppendEventLog(ctx, "games", map[string]any{
			"action": "started",
			"gameId": gameID,
		})
		return results.Success(&gamestateevents.GameUpdatedPayload{State: *state})
	})
}

// CompleteGame moves the game to completed, merging any final data into the
// data bag and writing a backup snapshot of the finished document.
func (s *GameStateService) CompleteGame(ctx context.Context, gameID string, finalData map[string]any) results.OperationResult {
	return s.withTelemetry(ctx, "CompleteGame", gameID, func(ctx context.Context) results.OperationResult {
		state := s.load(ctx, gameID)
		if state == nil {
			return failure(gameID, msgGameNotFound)
		}

		state.Status = gamestatetypes.StatusCompleted
		state.EndedAt = s.now().UnixMilli()
		mergeData(state, finalData)
		if !s.save(ctx, state) {
			return failure(gameID, msgStorageFailed)
		}

		s.store.WriteBackup(ctx, state.Type, state)
		s.store.AppendEventLog(ctx, "games", map[string]any{
			"action": "completed",
			"gameId": gameID,
		})
		return results.Success(&gamestateevents.GameUpdatedPayload{State: *state})
	})
}

// CancelGame moves the game to cancelled, recording an optional reason in
// the data bag.
func (s *GameStateService) CancelGame(ctx context.Context, gameID, reason string) results.OperationResult {
	return s.withTelemetry(ctx, "CancelGame", gameID, func(ctx context.Context) results.OperationResult {
		state := s.load(ctx, gameID)
		if state == nil {
			return failure(gameID, msgGameNotFound)
		}

		state.Status = gamestatetypes.StatusCancelled
		state.EndedAt = s.now().UnixMilli()
		if reason != "" {
			mergeData(state, map[string]any{"cancelReason": reason})
		}
		if !s.save(ctx, state) {
			return failure(gameID, msgStorageFailed)
		}

		s.store.AppendEventLog(ctx, "games", map[string]any{
			"action": "cancelled",
			"gameId": gameID,
			"reason": reason,
		})
		return results.Success(&gamestateevents.GameUpdatedPayload{State: *state})
	})
}

// mergeData shallow-merges src into the game's data bag; later keys
// overwrite earlier ones, no deep merge.
func mergeData(state *gamestatetypes.GameState, src map[string]any) {
	if state.Data == nil {
		state.Data = map[string]any{}
	}
	for k, v := range src {
		state.Data[k] = v
	}
}
