package tournamenthandlers

import (
	"context"
	"errors"

	tournamentevents "github.com/Rxriddqd/iddqd/app/modules/tournament/events"
	"github.com/Rxriddqd/iddqd/app/shared/handlerwrapper"
)

// HandleStats recomputes and publishes the tournament stats snapshot.
func (h *TournamentHandlers) HandleStats(ctx context.Context, payload *tournamentevents.StatsRequestedPayload) ([]handlerwrapper.Result, error) {
	if payload == nil {
		return nil, errors.New("payload cannot be nil")
	}

	result, err := h.service.CalculateStats(ctx, payload.TournamentID)
	if err != nil {
		return nil, err
	}

	return mapOperationResult(result,
		tournamentevents.StatsCalculated,
		tournamentevents.StatsFailed,
	), nil
}

// HandleLeaderboard publishes the ranked roll list.
func (h *TournamentHandlers) HandleLeaderboard(ctx context.Context, payload *tournamentevents.LeaderboardRequestedPayload) ([]handlerwrapper.Result, error) {
	if payload == nil {
		return nil, errors.New("payload cannot be nil")
	}

	result, err := h.service.GetLeaderboard(ctx, payload.TournamentID, payload.Limit)
	if err != nil {
		return nil, err
	}

	return mapOperationResult(result,
		tournamentevents.LeaderboardRetrieved,
		tournamentevents.LeaderboardFailed,
	), nil
}

// HandleCancel cancels the tournament.
func (h *TournamentHandlers) HandleCancel(ctx context.Context, payload *tournamentevents.CancelRequestedPayload) ([]handlerwrapper.Result, error) {
	if payload == nil {
		return nil, errors.New("payload cannot be nil")
	}

	result, err := h.service.CancelTournament(ctx, payload.TournamentID)
	if err != nil {
		return nil, err
	}

	return mapOperationResult(result,
		tournamentevents.TournamentCancelled,
		tournamentevents.CancelFailed,
	), nil
}
