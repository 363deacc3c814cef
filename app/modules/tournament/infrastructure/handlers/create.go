package tournamenthandlers

import (
	"context"
	"errors"
	"fmt"

	tournamentevents "github.com/Rxriddqd/iddqd/app/modules/tournament/events"
	"github.com/Rxriddqd/iddqd/app/shared/handlerwrapper"
)

// Command-boundary bounds. The engine trusts these and does not re-validate.
const (
	minMaxRoll       = 10
	maxMaxRoll       = 10000
	minRollLimit     = 1
	maxRollLimit     = 10
	minDeadlineHours = 1
	maxDeadlineHours = 168
)

// HandleCreateTournament validates the request bounds and creates the
// tournament.
func (h *TournamentHandlers) HandleCreateTournament(ctx context.Context, payload *tournamentevents.TournamentCreateRequestedPayload) ([]handlerwrapper.Result, error) {
	if payload == nil {
		return nil, errors.New("payload cannot be nil")
	}

	if reason := validateCreate(payload); reason != "" {
		return []handlerwrapper.Result{{
			Topic: tournamentevents.TournamentCreationFailed,
			Payload: &tournamentevents.TournamentCreationFailedPayload{
				Name:   payload.Name,
				Reason: reason,
			},
		}}, nil
	}

	result, err := h.service.CreateTournament(ctx, payload.Name, payload.MaxRoll, payload.RollLimit, payload.DeadlineHours, payload.ChannelID)
	if err != nil {
		return nil, err
	}

	return mapOperationResult(result,
		tournamentevents.TournamentCreated,
		tournamentevents.TournamentCreationFailed,
	), nil
}

func validateCreate(p *tournamentevents.TournamentCreateRequestedPayload) string {
	switch {
	case p.Name == "":
		return "tournament name required"
	case p.MaxRoll < minMaxRoll || p.MaxRoll > maxMaxRoll:
		return fmt.Sprintf("max roll must be between %d and %d", minMaxRoll, maxMaxRoll)
	case p.RollLimit < minRollLimit || p.RollLimit > maxRollLimit:
		return fmt.Sprintf("roll limit must be between %d and %d", minRollLimit, maxRollLimit)
	case p.DeadlineHours < minDeadlineHours || p.DeadlineHours > maxDeadlineHours:
		return fmt.Sprintf("deadline must be between %d and %d hours", minDeadlineHours, maxDeadlineHours)
	}
	return ""
}
