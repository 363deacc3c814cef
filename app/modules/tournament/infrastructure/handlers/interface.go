package tournamenthandlers

import (
	"context"

	tournamentevents "github.com/Rxriddqd/iddqd/app/modules/tournament/events"
	"github.com/Rxriddqd/iddqd/app/shared/handlerwrapper"
)

// Handlers is the tournament module's event-handler surface.
type Handlers interface {
	HandleCreateTournament(ctx context.Context, payload *tournamentevents.TournamentCreateRequestedPayload) ([]handlerwrapper.Result, error)
	HandleUserRoll(ctx context.Context, payload *tournamentevents.RollRequestedPayload) ([]handlerwrapper.Result, error)
	HandleEndRound(ctx context.Context, payload *tournamentevents.RoundEndRequestedPayload) ([]handlerwrapper.Result, error)
	HandleStats(ctx context.Context, payload *tournamentevents.StatsRequestedPayload) ([]handlerwrapper.Result, error)
	HandleLeaderboard(ctx context.Context, payload *tournamentevents.LeaderboardRequestedPayload) ([]handlerwrapper.Result, error)
	HandleCancel(ctx context.Context, payload *tournamentevents.CancelRequestedPayload) ([]handlerwrapper.Result, error)
}
