package tournamentservice

import (
	"context"
	"errors"

	tournamenttypes "github.com/Rxriddqd/iddqd/app/modules/tournament/domain"
	tournamentevents "github.com/Rxriddqd/iddqd/app/modules/tournament/events"
	tournamentdb "github.com/Rxriddqd/iddqd/app/modules/tournament/infrastructure/repositories"
	"github.com/Rxriddqd/iddqd/app/shared/results"
)

// CancelTournament moves the tournament to cancelled. Reachable from any
// non-terminal status; the record itself is never deleted.
func (s *TournamentService) CancelTournament(
	ctx context.Context,
	tournamentID string,
) (results.OperationResult, error) {
	return s.withTelemetry(ctx, "CancelTournament", tournamentID, func(ctx context.Context) (results.OperationResult, error) {
		cfg, err := s.repo.GetConfig(ctx, tournamentID)
		if err != nil {
			if errors.Is(err, tournamentdb.ErrNotFound) {
				return results.Failure(&tournamentevents.CancelFailedPayload{
					TournamentID: tournamentID,
					Reason:       msgNotFound,
				}), nil
			}
			return results.OperationResult{}, err
		}
		if cfg.Status.Terminal() {
			return results.Failure(&tournamentevents.CancelFailedPayload{
				TournamentID: tournamentID,
				Reason:       msgAlreadyOver,
			}), nil
		}

		cfg.Status = tournamenttypes.StatusCancelled
		cfg.UpdatedAt = s.now().UnixMilli()
		if err := s.repo.SaveConfig(ctx, cfg); err != nil {
			return results.OperationResult{}, err
		}

		return results.Success(&tournamentevents.TournamentCancelledPayload{
			TournamentID: tournamentID,
		}), nil
	})
}
