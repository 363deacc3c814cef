package tournamentservice

import (
	"context"
	"errors"
	"fmt"

	tournamenttypes "github.com/Rxriddqd/iddqd/app/modules/tournament/domain"
	tournamentevents "github.com/Rxriddqd/iddqd/app/modules/tournament/events"
	tournamentdb "github.com/Rxriddqd/iddqd/app/modules/tournament/infrastructure/repositories"
	"github.com/Rxriddqd/iddqd/app/shared/results"
)

// ProcessUserRoll draws a random value for the user and applies best-of
// semantics: the stored roll only ever moves up, but every draw consumes one
// of the user's rolls and a losing draw is still reported back. That
// asymmetry is deliberate; players see the value they actually rolled even
// when it does not improve their standing.
func (s *TournamentService) ProcessUserRoll(
	ctx context.Context,
	tournamentID, userID, username string,
) (results.OperationResult, error) {
	return s.withTelemetry(ctx, "ProcessUserRoll", tournamentID, func(ctx context.Context) (results.OperationResult, error) {
		fail := func(reason string) results.OperationResult {
			return results.Failure(&tournamentevents.RollFailedPayload{
				TournamentID: tournamentID,
				UserID:       userID,
				Reason:       reason,
			})
		}

		cfg, err := s.repo.GetConfig(ctx, tournamentID)
		if err != nil {
			if errors.Is(err, tournamentdb.ErrNotFound) {
				return fail(msgNotFound), nil
			}
			return results.OperationResult{}, err
		}
		if cfg.Status != tournamenttypes.StatusActive {
			return fail(msgNotActive), nil
		}
		if s.now().UnixMilli() > cfg.Deadline {
			return fail(msgDeadlinePassed), nil
		}

		existing, err := s.repo.GetRoll(ctx, tournamentID, userID)
		if err != nil && !errors.Is(err, tournamentdb.ErrNotFound) {
			return results.OperationResult{}, err
		}
		if existing != nil && existing.RollsUsed >= cfg.RollLimit {
			return fail(msgRollLimit), nil
		}

		drawn := s.draw(cfg.MaxRoll)
		s.metrics.RecordRoll(ctx, drawn)

		roll := &tournamenttypes.UserRoll{
			UserID:    userID,
			Username:  username,
			Roll:      drawn,
			Timestamp: s.now().UnixMilli(),
			RollsUsed: 1,
		}
		improved := true
		if existing != nil {
			roll.RollsUsed = existing.RollsUsed + 1
			if drawn <= existing.Roll {
				// The draw loses; the stored best stays, the attempt still counts.
				roll.Roll = existing.Roll
				improved = false
			}
		}

		if err := s.repo.SaveRoll(ctx, tournamentID, roll); err != nil {
			return results.OperationResult{}, err
		}

		remaining := cfg.RollLimit - roll.RollsUsed
		var msg string
		if improved {
			msg = fmt.Sprintf("%s rolled %d, a new best! (%d roll(s) remaining)", username, drawn, remaining)
		} else {
			msg = fmt.Sprintf("%s rolled %d, best stays at %d (%d roll(s) remaining)", username, drawn, roll.Roll, remaining)
		}

		return results.Success(&tournamentevents.RollRecordedPayload{
			TournamentID:   tournamentID,
			UserID:         userID,
			Username:       username,
			Draw:           drawn,
			Best:           roll.Roll,
			Improved:       improved,
			RollsUsed:      roll.RollsUsed,
			RollsRemaining: remaining,
			Message:        msg,
		}), nil
	})
}
