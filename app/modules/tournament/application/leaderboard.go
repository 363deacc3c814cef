package tournamentservice

import (
	"context"
	"errors"
	"sort"

	tournamentevents "github.com/Rxriddqd/iddqd/app/modules/tournament/events"
	tournamentdb "github.com/Rxriddqd/iddqd/app/modules/tournament/infrastructure/repositories"
	"github.com/Rxriddqd/iddqd/app/shared/results"
)

const defaultLeaderboardLimit = 10

// GetLeaderboard returns the current round's rolls ranked descending,
// truncated to limit (default 10).
func (s *TournamentService) GetLeaderboard(
	ctx context.Context,
	tournamentID string,
	limit int,
) (results.OperationResult, error) {
	return s.withTelemetry(ctx, "GetLeaderboard", tournamentID, func(ctx context.Context) (results.OperationResult, error) {
		if limit <= 0 {
			limit = defaultLeaderboardLimit
		}

		if _, err := s.repo.GetConfig(ctx, tournamentID); err != nil {
			if errors.Is(err, tournamentdb.ErrNotFound) {
				return results.Failure(&tournamentevents.LeaderboardFailedPayload{
					TournamentID: tournamentID,
					Reason:       msgNotFound,
				}), nil
			}
			return results.OperationResult{}, err
		}

		rolls, err := s.repo.GetAllRolls(ctx, tournamentID)
		if err != nil {
			return results.OperationResult{}, err
		}

		sort.SliceStable(rolls, func(i, j int) bool {
			return rolls[i].Roll > rolls[j].Roll
		})
		if len(rolls) > limit {
			rolls = rolls[:limit]
		}

		return results.Success(&tournamentevents.LeaderboardRetrievedPayload{
			TournamentID: tournamentID,
			Entries:      rolls,
		}), nil
	})
}
