// Package gamestatetypes holds the generic mini-game lifecycle document.
package gamestatetypes

// Status is the generic game lifecycle state.
type Status string

const (
	StatusPending   Status = "pending"
	StatusActive    Status = "active"
	StatusCompleted Status = "completed"
	StatusCancelled Status = "cancelled"
)

// Terminal reports whether the status admits no further transitions.
func (s Status) Terminal() bool {
	return s == StatusCompleted || s == StatusCancelled
}

// GameState is the full document for one mini-game instance. It is stored
// whole and rewritten whole on every mutation; concurrent writers to the
// same game race with last-writer-wins semantics, which is acceptable for
// the single-process, human-paced deployment this serves.
type GameState struct {
	GameID    string         `json:"gameId"`
	Type      string         `json:"type"`
	Status    Status         `json:"status"`
	Players   []string       `json:"players"`
	StartedAt int64          `json:"startedAt,omitempty"`
	EndedAt   int64          `json:"endedAt,omitempty"`
	Data      map[string]any `json:"data"`
	CreatedAt int64          `json:"createdAt"`
	UpdatedAt int64          `json:"updatedAt"`
}

// HasPlayer reports whether userID is already in the player list.
func (g *GameState) HasPlayer(userID string) bool {
	for _, p := range g.Players {
		if p == userID {
			return true
		}
	}
	return false
}
