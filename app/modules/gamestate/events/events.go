// Package gamestateevents defines the game-state module's event topics and
// payloads.
package gamestateevents

import (
	gamestatetypes "github.com/Rxriddqd/iddqd/app/modules/gamestate/domain"
)

const (
	GameCreateRequested = "gamestate.create.requested.v1"
	GameCreated         = "gamestate.created.v1"
	GameCreateFailed    = "gamestate.create.failed.v1"

	GameStartRequested = "gamestate.start.requested.v1"
	GameStarted        = "gamestate.started.v1"
	GameStartFailed    = "gamestate.start.failed.v1"

	PlayerAddRequested = "gamestate.player.add.requested.v1"
	PlayerAdded        = "gamestate.player.added.v1"
	PlayerAddFailed    = "gamestate.player.add.failed.v1"

	PlayerRemoveRequested = "gamestate.player.remove.requested.v1"
	PlayerRemoved         = "gamestate.player.removed.v1"
	PlayerRemoveFailed    = "gamestate.player.remove.failed.v1"

	DataUpdateRequested = "gamestate.data.update.requested.v1"
	DataUpdated         = "gamestate.data.updated.v1"
	DataUpdateFailed    = "gamestate.data.update.failed.v1"

	ScoreRecordRequested = "gamestate.score.record.requested.v1"
	ScoreRecorded        = "gamestate.score.recorded.v1"
	ScoreRecordFailed    = "gamestate.score.record.failed.v1"

	GameCompleteRequested = "gamestate.complete.requested.v1"
	GameCompleted         = "gamestate.completed.v1"
	GameCompleteFailed    = "gamestate.complete.failed.v1"

	GameCancelRequested = "gamestate.cancel.requested.v1"
	GameCancelled       = "gamestate.cancelled.v1"
	GameCancelFailed    = "gamestate.cancel.failed.v1"
)

type GameCreateRequestedPayload struct {
	GameID string `json:"gameId"`
	Type   string `json:"type"`
}

type GameStartRequestedPayload struct {
	GameID string `json:"gameId"`
}

type PlayerAddRequestedPayload struct {
	GameID string `json:"gameId"`
	UserID string `json:"userId"`
}

type PlayerRemoveRequestedPayload struct {
	GameID string `json:"gameId"`
	UserID string `json:"userId"`
}

type DataUpdateRequestedPayload struct {
	GameID string         `json:"gameId"`
	Data   map[string]any `json:"data"`
}

type ScoreRecordRequestedPayload struct {
	GameID string `json:"gameId"`
	UserID string `json:"userId"`
	Score  int    `json:"score"`
}

type GameCompleteRequestedPayload struct {
	GameID    string         `json:"gameId"`
	FinalData map[string]any `json:"finalData,omitempty"`
}

type GameCancelRequestedPayload struct {
	GameID string `json:"gameId"`
	Reason string `json:"reason,omitempty"`
}

// GameUpdatedPayload is the shared success payload: the whole document
// after the mutation.
type GameUpdatedPayload struct {
	State gamestatetypes.GameState `json:"state"`
}

type GameFailedPayload struct {
	GameID string `json:"gameId"`
	Reason string `json:"reason"`
}
