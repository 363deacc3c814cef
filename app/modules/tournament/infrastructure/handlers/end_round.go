package tournamenthandlers

import (
	"context"
	"errors"

	tournamentevents "github.com/Rxriddqd/iddqd/app/modules/tournament/events"
	"github.com/Rxriddqd/iddqd/app/shared/handlerwrapper"
)

// HandleEndRound closes the current round. The success topic depends on the
// outcome: a completed tournament publishes tournament.completed while an
// advanced round publishes round.ended.
func (h *TournamentHandlers) HandleEndRound(ctx context.Context, payload *tournamentevents.RoundEndRequestedPayload) ([]handlerwrapper.Result, error) {
	if payload == nil {
		return nil, errors.New("payload cannot be nil")
	}

	result, err := h.service.EndRound(ctx, payload.TournamentID, payload.EliminationPercentage)
	if err != nil {
		return nil, err
	}

	successTopic := tournamentevents.RoundEnded
	if _, completed := result.Success.(*tournamentevents.TournamentCompletedPayload); completed {
		successTopic = tournamentevents.TournamentCompleted
	}

	return mapOperationResult(result, successTopic, tournamentevents.RoundEndFailed), nil
}
