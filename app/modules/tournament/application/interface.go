package tournamentservice

import (
	"context"

	"github.com/Rxriddqd/iddqd/app/shared/results"
)

// Service is the tournament engine's operation surface.
//
// Every operation returns an OperationResult whose Success/Failure payloads
// are the event payloads defined in the tournamentevents package. Domain
// outcomes (not found, deadline passed, roll limit) arrive as Failure
// payloads with a nil error; a non-nil error is an infrastructure fault and
// propagates untouched.
type Service interface {
	CreateTournament(ctx context.Context, name string, maxRoll, rollLimit, deadlineHours int, channelID string) (results.OperationResult, error)
	ProcessUserRoll(ctx context.Context, tournamentID, userID, username string) (results.OperationResult, error)
	EndRound(ctx context.Context, tournamentID string, eliminationPercentage int) (results.OperationResult, error)
	CalculateStats(ctx context.Context, tournamentID string) (results.OperationResult, error)
	GetLeaderboard(ctx context.Context, tournamentID string, limit int) (results.OperationResult, error)
	CancelTournament(ctx context.Context, tournamentID string) (results.OperationResult, error)
}
