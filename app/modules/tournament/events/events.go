// Package tournamentevents defines the tournament module's event topics and
// payloads. Topics are versioned so the gateway and backend can evolve
// independently.
package tournamentevents

import (
	tournamenttypes "github.com/Rxriddqd/iddqd/app/modules/tournament/domain"
)

const (
	TournamentCreateRequested = "tournament.create.requested.v1"
	TournamentCreated         = "tournament.created.v1"
	TournamentCreationFailed  = "tournament.creation.failed.v1"

	RollRequested = "tournament.roll.requested.v1"
	RollRecorded  = "tournament.roll.recorded.v1"
	RollFailed    = "tournament.roll.failed.v1"

	RoundEndRequested   = "tournament.round.end.requested.v1"
	RoundEnded          = "tournament.round.ended.v1"
	TournamentCompleted = "tournament.completed.v1"
	RoundEndFailed      = "tournament.round.end.failed.v1"

	StatsRequested  = "tournament.stats.requested.v1"
	StatsCalculated = "tournament.stats.calculated.v1"
	StatsFailed     = "tournament.stats.failed.v1"

	LeaderboardRequested = "tournament.leaderboard.requested.v1"
	LeaderboardRetrieved = "tournament.leaderboard.retrieved.v1"
	LeaderboardFailed    = "tournament.leaderboard.failed.v1"

	CancelRequested      = "tournament.cancel.requested.v1"
	TournamentCancelled  = "tournament.cancelled.v1"
	CancelFailed         = "tournament.cancel.failed.v1"
)

type TournamentCreateRequestedPayload struct {
	Name          string `json:"name"`
	MaxRoll       int    `json:"maxRoll"`
	RollLimit     int    `json:"rollLimit"`
	DeadlineHours int    `json:"deadlineHours"`
	ChannelID     string `json:"channelId"`
}

type TournamentCreatedPayload struct {
	Config tournamenttypes.Config `json:"config"`
}

type TournamentCreationFailedPayload struct {
	Name   string `json:"name"`
	Reason string `json:"reason"`
}

type RollRequestedPayload struct {
	TournamentID string `json:"tournamentId"`
	UserID       string `json:"userId"`
	Username     string `json:"username"`
}

// RollRecordedPayload reports one accepted draw. Draw is the ephemeral value
// rolled this time; Best is the stored best-of value, which only moves up.
type RollRecordedPayload struct {
	TournamentID   string `json:"tournamentId"`
	UserID         string `json:"userId"`
	Username       string `json:"username"`
	Draw           int    `json:"draw"`
	Best           int    `json:"best"`
	Improved       bool   `json:"improved"`
	RollsUsed      int    `json:"rollsUsed"`
	RollsRemaining int    `json:"rollsRemaining"`
	Message        string `json:"message"`
}

type RollFailedPayload struct {
	TournamentID string `json:"tournamentId"`
	UserID       string `json:"userId"`
	Reason       string `json:"reason"`
}

type RoundEndRequestedPayload struct {
	TournamentID          string `json:"tournamentId"`
	EliminationPercentage int    `json:"eliminationPercentage"`
}

type RoundEndedPayload struct {
	TournamentID     string                    `json:"tournamentId"`
	Round            tournamenttypes.RoundData `json:"round"`
	RemainingPlayers int                       `json:"remainingPlayers"`
	NextRound        int                       `json:"nextRound"`
}

type TournamentCompletedPayload struct {
	TournamentID string                    `json:"tournamentId"`
	WinnerID     string                    `json:"winnerId"`
	WinnerName   string                    `json:"winnerName"`
	FinalRound   tournamenttypes.RoundData `json:"finalRound"`
}

type RoundEndFailedPayload struct {
	TournamentID string `json:"tournamentId"`
	Reason       string `json:"reason"`
}

type StatsRequestedPayload struct {
	TournamentID string `json:"tournamentId"`
}

type StatsCalculatedPayload struct {
	TournamentID string                `json:"tournamentId"`
	Stats        tournamenttypes.Stats `json:"stats"`
}

type StatsFailedPayload struct {
	TournamentID string `json:"tournamentId"`
	Reason       string `json:"reason"`
}

type LeaderboardRequestedPayload struct {
	TournamentID string `json:"tournamentId"`
	Limit        int    `json:"limit"`
}

type LeaderboardRetrievedPayload struct {
	TournamentID string                     `json:"tournamentId"`
	Entries      []tournamenttypes.UserRoll `json:"entries"`
}

type LeaderboardFailedPayload struct {
	TournamentID string `json:"tournamentId"`
	Reason       string `json:"reason"`
}

type CancelRequestedPayload struct {
	TournamentID string `json:"tournamentId"`
}

type TournamentCancelledPayload struct {
	TournamentID string `json:"tournamentId"`
}

type CancelFailedPayload struct {
	TournamentID string `json:"tournamentId"`
	Reason       string `json:"reason"`
}
