package tournamentservice

import (
	"context"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	tournamenttypes "github.com/Rxriddqd/iddqd/app/modules/tournament/domain"
	tournamentevents "github.com/Rxriddqd/iddqd/app/modules/tournament/events"
)

func TestTournamentService_CancelTournament(t *testing.T) {
	ctx := context.Background()

	t.Run("cancels an active tournament", func(t *testing.T) {
		repo := NewFakeRepository()
		seedActiveTournament(repo, "t1", 100, 3)
		svc := newTestService(repo)

		result, err := svc.CancelTournament(ctx, "t1")
		require.NoError(t, err)
		payload, ok := result.Success.(*tournamentevents.TournamentCancelledPayload)
		require.True(t, ok)
		assert.Equal(t, "t1", payload.TournamentID)

		// Cancelled, not deleted.
		cfg, ok := repo.configs["t1"]
		require.True(t, ok)
		assert.Equal(t, tournamenttypes.StatusCancelled, cfg.Status)
	})

	t.Run("terminal tournaments cannot be cancelled again", func(t *testing.T) {
		for _, status := range []tournamenttypes.Status{
			tournamenttypes.StatusCompleted,
			tournamenttypes.StatusCancelled,
		} {
			repo := NewFakeRepository()
			cfg := seedActiveTournament(repo, "t1", 100, 3)
			cfg.Status = status
			repo.configs["t1"] = *cfg
			svc := newTestService(repo)

			result, err := svc.CancelTournament(ctx, "t1")
			require.NoError(t, err)
			failPayload, ok := result.Failure.(*tournamentevents.CancelFailedPayload)
			require.True(t, ok)
			assert.Equal(t, msgAlreadyOver, failPayload.Reason, "status %s", status)
		}
	})

	t.Run("unknown tournament is a domain failure", func(t *testing.T) {
		repo := NewFakeRepository()
		svc := newTestService(repo)

		result, err := svc.CancelTournament(ctx, "missing")
		require.NoError(t, err)
		failPayload, ok := result.Failure.(*tournamentevents.CancelFailedPayload)
		require.True(t, ok)
		assert.Equal(t, msgNotFound, failPayload.Reason)
	})
}
