package tournamentservice

import (
	"context"
	"errors"
	"math"

	tournamenttypes "github.com/Rxriddqd/iddqd/app/modules/tournament/domain"
	tournamentevents "github.com/Rxriddqd/iddqd/app/modules/tournament/events"
	tournamentdb "github.com/Rxriddqd/iddqd/app/modules/tournament/infrastructure/repositories"
	"github.com/Rxriddqd/iddqd/app/shared/results"
)

// CalculateStats recomputes the derived stats view from the live roll set
// and persists it as a cache of the result. The snapshot is never
// authoritative.
func (s *TournamentService) CalculateStats(
	ctx context.Context,
	tournamentID string,
) (results.OperationResult, error) {
	return s.withTelemetry(ctx, "CalculateStats", tournamentID, func(ctx context.Context) (results.OperationResult, error) {
		fail := func(reason string) results.OperationResult {
			return results.Failure(&tournamentevents.StatsFailedPayload{
				TournamentID: tournamentID,
				Reason:       reason,
			})
		}

		if _, err := s.repo.GetConfig(ctx, tournamentID); err != nil {
			if errors.Is(err, tournamentdb.ErrNotFound) {
				return fail(msgNotFound), nil
			}
			return results.OperationResult{}, err
		}

		rolls, err := s.repo.GetAllRolls(ctx, tournamentID)
		if err != nil {
			return results.OperationResult{}, err
		}
		if len(rolls) == 0 {
			return fail(msgNoParticipants), nil
		}

		rounds, err := s.repo.GetAllRounds(ctx, tournamentID)
		if err != nil {
			return results.OperationResult{}, err
		}
		eliminatedCount := 0
		for _, r := range rounds {
			eliminatedCount += len(r.Eliminated)
		}

		stats := &tournamenttypes.Stats{
			ActiveParticipants:     len(rolls),
			EliminatedParticipants: eliminatedCount,
			TotalParticipants:      len(rolls) + eliminatedCount,
		}

		sum := 0
		highest := rolls[0]
		lowest := rolls[0]
		for _, r := range rolls {
			stats.TotalRolls += r.RollsUsed
			sum += r.Roll
			if r.Roll > highest.Roll {
				highest = r
			}
			if r.Roll < lowest.Roll {
				lowest = r
			}
		}
		stats.AverageRoll = math.Round(float64(sum)/float64(len(rolls))*100) / 100
		stats.HighestRoll = &highest
		stats.LowestRoll = &lowest

		if err := s.repo.SaveStats(ctx, tournamentID, stats); err != nil {
			return results.OperationResult{}, err
		}

		return results.Success(&tournamentevents.StatsCalculatedPayload{
			TournamentID: tournamentID,
			Stats:        *stats,
		}), nil
	})
}
