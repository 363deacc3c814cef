package gamestatehandlers

import (
	"context"

	gamestateevents "github.com/Rxriddqd/iddqd/app/modules/gamestate/events"
	"github.com/Rxriddqd/iddqd/app/shared/handlerwrapper"
)

// Handlers is the game-state module's event-handler surface.
type Handlers interface {
	HandleCreateGame(ctx context.Context, payload *gamestateevents.GameCreateRequestedPayload) ([]handlerwrapper.Result, error)
	HandleStartGame(ctx context.Context, payload *gamestateevents.GameStartRequestedPayload) ([]handlerwrapper.Result, error)
	HandleAddPlayer(ctx context.Context, payload *gamestateevents.PlayerAddRequestedPayload) ([]handlerwrapper.Result, error)
	HandleRemovePlayer(ctx context.Context, payload *gamestateevents.PlayerRemoveRequestedPayload) ([]handlerwrapper.Result, error)
	HandleUpdateData(ctx context.Context, payload *gamestateevents.DataUpdateRequestedPayload) ([]handlerwrapper.Result, error)
	HandleRecordScore(ctx context.Context, payload *gamestateevents.ScoreRecordRequestedPayload) ([]handlerwrapper.Result, error)
	HandleCompleteGame(ctx context.Context, payload *gamestateevents.GameCompleteRequestedPayload) ([]handlerwrapper.Result, error)
	HandleCancelGame(ctx context.Context, payload *gamestateevents.GameCancelRequestedPayload) ([]handlerwrapper.Result, error)
}
