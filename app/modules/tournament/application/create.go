package tournamentservice

import (
	"context"
	"strconv"
	"time"

	tournamenttypes "github.com/Rxriddqd/iddqd/app/modules/tournament/domain"
	tournamentevents "github.com/Rxriddqd/iddqd/app/modules/tournament/events"
	"github.com/Rxriddqd/iddqd/app/shared/results"
)

// CreateTournament creates a new tournament in active status with round 1
// open. Bounds on maxRoll, rollLimit and deadlineHours are enforced at the
// command boundary; the engine trusts its caller here.
func (s *TournamentService) CreateTournament(
	ctx context.Context,
	name string,
	maxRoll, rollLimit, deadlineHours int,
	channelID string,
) (results.OperationResult, error) {
	return s.withTelemetry(ctx, "CreateTournament", "", func(ctx context.Context) (results.OperationResult, error) {
		now := s.now()
		nowMs := now.UnixMilli()

		cfg := &tournamenttypes.Config{
			ID:           strconv.FormatInt(nowMs, 10),
			Name:         name,
			MaxRoll:      maxRoll,
			RollLimit:    rollLimit,
			Deadline:     now.Add(time.Duration(deadlineHours) * time.Hour).UnixMilli(),
			CurrentRound: 1,
			Status:       tournamenttypes.StatusActive,
			ChannelID:    channelID,
			CreatedAt:    nowMs,
			UpdatedAt:    nowMs,
		}

		if err := s.repo.SaveConfig(ctx, cfg); err != nil {
			return results.OperationResult{}, err
		}

		firstRound := &tournamenttypes.RoundData{
			RoundNumber:  1,
			StartTime:    nowMs,
			Participants: []string{},
			Eliminated:   []string{},
		}
		if err := s.repo.SaveRound(ctx, cfg.ID, firstRound); err != nil {
			return results.OperationResult{}, err
		}

		return results.Success(&tournamentevents.TournamentCreatedPayload{
			Config: *cfg,
		}), nil
	})
}
