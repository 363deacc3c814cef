package tournamentservice

import (
	"context"
	"fmt"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	tournamentevents "github.com/Rxriddqd/iddqd/app/modules/tournament/events"
)

func TestTournamentService_GetLeaderboard(t *testing.T) {
	ctx := context.Background()

	t.Run("ranks descending and truncates to limit", func(t *testing.T) {
		repo := NewFakeRepository()
		seedActiveTournament(repo, "t1", 100, 3)
		seedRolls(repo, "t1", map[string]int{
			"u1": 30, "u2": 90, "u3": 60, "u4": 10, "u5": 75,
		})
		svc := newTestService(repo)

		result, err := svc.GetLeaderboard(ctx, "t1", 3)
		require.NoError(t, err)
		payload, ok := result.Success.(*tournamentevents.LeaderboardRetrievedPayload)
		require.True(t, ok)

		require.Len(t, payload.Entries, 3)
		assert.Equal(t, "u2", payload.Entries[0].UserID)
		assert.Equal(t, "u5", payload.Entries[1].UserID)
		assert.Equal(t, "u3", payload.Entries[2].UserID)
	})

	t.Run("zero limit defaults to ten", func(t *testing.T) {
		repo := NewFakeRepository()
		seedActiveTournament(repo, "t1", 100, 3)
		rolls := map[string]int{}
		for i := 0; i < 15; i++ {
			rolls[fmt.Sprintf("u%02d", i)] = i + 1
		}
		seedRolls(repo, "t1", rolls)
		svc := newTestService(repo)

		result, err := svc.GetLeaderboard(ctx, "t1", 0)
		require.NoError(t, err)
		payload, ok := result.Success.(*tournamentevents.LeaderboardRetrievedPayload)
		require.True(t, ok)
		assert.Len(t, payload.Entries, 10)
	})

	t.Run("empty round yields an empty board", func(t *testing.T) {
		repo := NewFakeRepository()
		seedActiveTournament(repo, "t1", 100, 3)
		svc := newTestService(repo)

		result, err := svc.GetLeaderboard(ctx, "t1", 10)
		require.NoError(t, err)
		payload, ok := result.Success.(*tournamentevents.LeaderboardRetrievedPayload)
		require.True(t, ok)
		assert.Empty(t, payload.Entries)
	})

	t.Run("unknown tournament is a domain failure", func(t *testing.T) {
		repo := NewFakeRepository()
		svc := newTestService(repo)

		result, err := svc.GetLeaderboard(ctx, "missing", 10)
		require.NoError(t, err)
		failPayload, ok := result.Failure.(*tournamentevents.LeaderboardFailedPayload)
		require.True(t, ok)
		assert.Equal(t, msgNotFound, failPayload.Reason)
	})
}
