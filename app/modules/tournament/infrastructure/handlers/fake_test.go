package tournamenthandlers

import (
	"context"

	tournamentservice "github.com/Rxriddqd/iddqd/app/modules/tournament/application"
	"github.com/Rxriddqd/iddqd/app/shared/results"
)

// FakeService is a programmable stub for the tournament service.
type FakeService struct {
	trace []string

	CreateTournamentFunc func(ctx context.Context, name string, maxRoll, rollLimit, deadlineHours int, channelID string) (results.OperationResult, error)
	ProcessUserRollFunc  func(ctx context.Context, tournamentID, userID, username string) (results.OperationResult, error)
	EndRoundFunc         func(ctx context.Context, tournamentID string, eliminationPercentage int) (results.OperationResult, error)
	CalculateStatsFunc   func(ctx context.Context, tournamentID string) (results.OperationResult, error)
	GetLeaderboardFunc   func(ctx context.Context, tournamentID string, limit int) (results.OperationResult, error)
	CancelTournamentFunc func(ctx context.Context, tournamentID string) (results.OperationResult, error)
}

func NewFakeService() *FakeService {
	return &FakeService{trace: []string{}}
}

// Trace returns the sequence of method calls made to the fake.
func (f *FakeService) Trace() []string {
	out := make([]string, len(f.trace))
	copy(out, f.trace)
	return out
}

func (f *FakeService) record(step string) {
	f.trace = append(f.trace, step)
}

func (f *FakeService) CreateTournament(ctx context.Context, name string, maxRoll, rollLimit, deadlineHours int, channelID string) (results.OperationResult, error) {
	f.record("CreateTournament")
	if f.CreateTournamentFunc != nil {
		return f.CreateTournamentFunc(ctx, name, maxRoll, rollLimit, deadlineHours, channelID)
	}
	return results.OperationResult{}, nil
}

func (f *FakeService) ProcessUserRoll(ctx context.Context, tournamentID, userID, username string) (results.OperationResult, error) {
	f.record("ProcessUserRoll")
	if f.ProcessUserRollFunc != nil {
		return f.ProcessUserRollFunc(ctx, tournamentID, userID, username)
	}
	return results.OperationResult{}, nil
}

func (f *FakeService) EndRound(ctx context.Context, tournamentID string, eliminationPercentage int) (results.OperationResult, error) {
	f.record("EndRound")
	if f.EndRoundFunc != nil {
		return f.EndRoundFunc(ctx, tournamentID, eliminationPercentage)
	}
	return results.OperationResult{}, nil
}

func (f *FakeService) CalculateStats(ctx context.Context, tournamentID string) (results.OperationResult, error) {
	f.record("CalculateStats")
	if f.CalculateStatsFunc != nil {
		return f.CalculateStatsFunc(ctx, tournamentID)
	}
	return results.OperationResult{}, nil
}

func (f *FakeService) GetLeaderboard(ctx context.Context, tournamentID string, limit int) (results.OperationResult, error) {
	f.record("GetLeaderboard")
	if f.GetLeaderboardFunc != nil {
		return f.GetLeaderboardFunc(ctx, tournamentID, limit)
	}
	return results.OperationResult{}, nil
}

func (f *FakeService) CancelTournament(ctx context.Context, tournamentID string) (results.OperationResult, error) {
	f.record("CancelTournament")
	if f.CancelTournamentFunc != nil {
		return f.CancelTournamentFunc(ctx, tournamentID)
	}
	return results.OperationResult{}, nil
}

var _ tournamentservice.Service = (*FakeService)(nil)
