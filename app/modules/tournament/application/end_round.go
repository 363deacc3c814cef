package tournamentservice

import (
	"context"
	"errors"
	"sort"

	tournamenttypes "github.com/Rxriddqd/iddqd/app/modules/tournament/domain"
	tournamentevents "github.com/Rxriddqd/iddqd/app/modules/tournament/events"
	tournamentdb "github.com/Rxriddqd/iddqd/app/modules/tournament/infrastructure/repositories"
	"github.com/Rxriddqd/iddqd/app/shared/results"
)

const defaultEliminationPercentage = 50

// EndRound closes the current round: ranks every recorded roll, eliminates
// the bottom eliminationPercentage, and either advances to the next round or
// completes the tournament when one or zero players remain.
//
// Ties at the cutoff keep their map-iteration order after the stable sort by
// roll value; no secondary key is applied.
func (s *TournamentService) EndRound(
	ctx context.Context,
	tournamentID string,
	eliminationPercentage int,
) (results.OperationResult, error) {
	return s.withTelemetry(ctx, "EndRound", tournamentID, func(ctx context.Context) (results.OperationResult, error) {
		fail := func(reason string) results.OperationResult {
			return results.Failure(&tournamentevents.RoundEndFailedPayload{
				TournamentID: tournamentID,
				Reason:       reason,
			})
		}

		pct := eliminationPercentage
		if pct <= 0 {
			pct = defaultEliminationPercentage
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

		rolls, err := s.repo.GetAllRolls(ctx, tournamentID)
		if err != nil {
			return results.OperationResult{}, err
		}
		if len(rolls) == 0 {
			return fail(msgNoParticipants), nil
		}

		nowMs := s.now().UnixMilli()

		// The round_ending status is transient but persisted, so a crash
		// mid-transition is visible rather than silently repeatable.
		cfg.Status = tournamenttypes.StatusRoundEnding
		cfg.UpdatedAt = nowMs
		if err := s.repo.SaveConfig(ctx, cfg); err != nil {
			return results.OperationResult{}, err
		}

		sort.SliceStable(rolls, func(i, j int) bool {
			return rolls[i].Roll > rolls[j].Roll
		})

		n := len(rolls)
		eliminateCount := n * pct / 100
		cutoffIdx := n - eliminateCount - 1
		if cutoffIdx < 0 {
			cutoffIdx = 0
		}

		participants := make([]string, n)
		for i, r := range rolls {
			participants[i] = r.UserID
		}
		eliminated := participants[n-eliminateCount:]

		round, err := s.repo.GetRound(ctx, tournamentID, cfg.CurrentRound)
		if err != nil {
			if !errors.Is(err, tournamentdb.ErrNotFound) {
				return results.OperationResult{}, err
			}
			round = &tournamenttypes.RoundData{
				RoundNumber: cfg.CurrentRound,
				StartTime:   nowMs,
			}
		}
		round.EndTime = nowMs
		round.Participants = participants
		round.Eliminated = append([]string{}, eliminated...)
		round.CutoffRoll = rolls[cutoffIdx].Roll
		if err := s.repo.SaveRound(ctx, tournamentID, round); err != nil {
			return results.OperationResult{}, err
		}

		if err := s.repo.ClearRolls(ctx, tournamentID); err != nil {
			return results.OperationResult{}, err
		}
		s.metrics.RecordElimination(ctx, eliminateCount)

		remaining := n - eliminateCount
		if remaining <= 1 {
			// The top-ranked entry wins even when elimination removed
			// everyone; the pre-elimination sort decides.
			winner := rolls[0]
			cfg.Status = tournamenttypes.StatusCompleted
			cfg.UpdatedAt = nowMs
			if err := s.repo.SaveConfig(ctx, cfg); err != nil {
				return results.OperationResult{}, err
			}
			return results.Success(&tournamentevents.TournamentCompletedPayload{
				TournamentID: tournamentID,
				WinnerID:     winner.UserID,
				WinnerName:   winner.Username,
				FinalRound:   *round,
			}), nil
		}

		cfg.CurrentRound++
		cfg.Status = tournamenttypes.StatusActive
		cfg.UpdatedAt = nowMs
		if err := s.repo.SaveConfig(ctx, cfg); err != nil {
			return results.OperationResult{}, err
		}

		nextRound := &tournamenttypes.RoundData{
			RoundNumber:  cfg.CurrentRound,
			StartTime:    nowMs,
			Participants: append([]string{}, participants[:remaining]...),
			Eliminated:   []string{},
		}
		if err := s.repo.SaveRound(ctx, tournamentID, nextRound); err != nil {
			return results.OperationResult{}, err
		}

		return results.Success(&tournamentevents.RoundEndedPayload{
			TournamentID:     tournamentID,
			Round:            *round,
			RemainingPlayers: remaining,
			NextRound:        cfg.CurrentRound,
		}), nil
	})
}
