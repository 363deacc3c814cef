// Package tournamenttypes holds the tournament domain entities. They are
// stored as JSON in the key-value store, so field tags match the wire shape.
package tournamenttypes

// Status is the tournament lifecycle state.
type Status string

const (
	StatusSetup       Status = "setup"
	StatusActive      Status = "active"
	StatusRoundEnding Status = "round_ending"
	StatusCompleted   Status = "completed"
	StatusCancelled   Status = "cancelled"
)

// Terminal reports whether the status admits no further transitions.
func (s Status) Terminal() bool {
	return s == StatusCompleted || s == StatusCancelled
}

// Config is the authoritative record of one tournament. Timestamps are epoch
// milliseconds.
type Config struct {
	ID           string `json:"id"`
	Name         string `json:"name"`
	MaxRoll      int    `json:"maxRoll"`
	RollLimit    int    `json:"rollLimit"`
	Deadline     int64  `json:"deadline"`
	CurrentRound int    `json:"currentRound"`
	Status       Status `json:"status"`
	ChannelID    string `json:"channelId"`
	CreatedAt    int64  `json:"createdAt"`
	UpdatedAt    int64  `json:"updatedAt"`
}

// UserRoll is one player's standing in the current round. Roll always holds
// the best draw seen this round; RollsUsed counts every draw, improving or
// not, and never exceeds the tournament's RollLimit.
type UserRoll struct {
	UserID    string `json:"userId"`
	Username  string `json:"username"`
	Roll      int    `json:"roll"`
	Timestamp int64  `json:"timestamp"`
	RollsUsed int    `json:"rollsUsed"`
}

// RoundData is the immutable record of one elimination round. Participants
// are ranked descending by roll at round end; Eliminated is the trailing
// subset of Participants. Once EndTime is set the record is never rewritten.
type RoundData struct {
	RoundNumber  int      `json:"roundNumber"`
	StartTime    int64    `json:"startTime"`
	EndTime      int64    `json:"endTime,omitempty"`
	Participants []string `json:"participants"`
	Eliminated   []string `json:"eliminated"`
	CutoffRoll   int      `json:"cutoffRoll"`
}

// Stats is a derived view over the live roll set. It is cached for display
// but never authoritative; discard and recompute at will.
type Stats struct {
	TotalParticipants      int       `json:"totalParticipants"`
	ActiveParticipants     int       `json:"activeParticipants"`
	EliminatedParticipants int       `json:"eliminatedParticipants"`
	TotalRolls             int       `json:"totalRolls"`
	AverageRoll            float64   `json:"averageRoll"`
	HighestRoll            *UserRoll `json:"highestRoll,omitempty"`
	LowestRoll             *UserRoll `json:"lowestRoll,omitempty"`
}
