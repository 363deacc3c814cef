package gamestateservice

import (
	"context"

	gamestatetypes "github.com/Rxriddqd/iddqd/app/modules/gamestate/domain"
	"github.com/Rxriddqd/iddqd/app/shared/results"
)

// Service is the game-state manager's operation surface. Operations return
// no error: the underlying storage façade is fail-soft and every outcome,
// including a storage outage, is an OperationResult payload.
type Service interface {
	CreateGame(ctx context.Context, gameID, gameType string) results.OperationResult
	GetGame(ctx context.Context, gameID string) *gamestatetypes.GameState
	StartGame(ctx context.Context, gameID string) results.OperationResult
	AddPlayer(ctx context.Context, gameID, userID string) results.OperationResult
	RemovePlayer(ctx context.Context, gameID, userID string) results.OperationResult
	UpdateGameData(ctx context.Context, gameID string, data map[string]any) results.OperationResult
	RecordScore(ctx context.Context, gameID, userID string, score int) results.OperationResult
	CompleteGame(ctx context.Context, gameID string, finalData map[string]any) results.OperationResult
	CancelGame(ctx context.Context, gameID, reason string) results.OperationResult
}
