package tournamenthandlers

import (
	"context"
	"errors"

	tournamentevents "github.com/Rxriddqd/iddqd/app/modules/tournament/events"
	"github.com/Rxriddqd/iddqd/app/shared/handlerwrapper"
)

// HandleUserRoll throttles the requesting user and forwards the roll to the
// engine. Throttled requests fail fast without touching storage.
func (h *TournamentHandlers) HandleUserRoll(ctx context.Context, payload *tournamentevents.RollRequestedPayload) ([]handlerwrapper.Result, error) {
	if payload == nil {
		return nil, errors.New("payload cannot be nil")
	}

	if h.rolls != nil && !h.rolls.Allow(payload.UserID) {
		return []handlerwrapper.Result{{
			Topic: tournamentevents.RollFailed,
			Payload: &tournamentevents.RollFailedPayload{
				TournamentID: payload.TournamentID,
				UserID:       payload.UserID,
				Reason:       "slow down, you are rolling too fast",
			},
		}}, nil
	}

	result, err := h.service.ProcessUserRoll(ctx, payload.TournamentID, payload.UserID, payload.Username)
	if err != nil {
		return nil, err
	}

	return mapOperationResult(result,
		tournamentevents.RollRecorded,
		tournamentevents.RollFailed,
	), nil
}
