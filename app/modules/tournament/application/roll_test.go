package tournamentservice

import (
	"context"
	"errors"
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	tournamenttypes "github.com/Rxriddqd/iddqd/app/modules/tournament/domain"
	tournamentevents "github.com/Rxriddqd/iddqd/app/modules/tournament/events"
)

func TestTournamentService_ProcessUserRoll(t *testing.T) {
	ctx := context.Background()

	t.Run("best-of keeps the high roll across draws", func(t *testing.T) {
		repo := NewFakeRepository()
		seedActiveTournament(repo, "t1", 100, 3)
		svc := newTestService(repo, 45, 30, 80)

		// First draw: 45 becomes the best.
		result, err := svc.ProcessUserRoll(ctx, "t1", "u1", "alice")
		require.NoError(t, err)
		payload, ok := result.Success.(*tournamentevents.RollRecordedPayload)
		require.True(t, ok)
		assert.Equal(t, 45, payload.Draw)
		assert.Equal(t, 45, payload.Best)
		assert.True(t, payload.Improved)
		assert.Equal(t, 1, payload.RollsUsed)
		assert.Equal(t, 2, payload.RollsRemaining)

		// Second draw loses: the best stays, the attempt still counts, and
		// the losing value is reported back.
		result, err = svc.ProcessUserRoll(ctx, "t1", "u1", "alice")
		require.NoError(t, err)
		payload, ok = result.Success.(*tournamentevents.RollRecordedPayload)
		require.True(t, ok)
		assert.Equal(t, 30, payload.Draw)
		assert.Equal(t, 45, payload.Best)
		assert.False(t, payload.Improved)
		assert.Equal(t, 2, payload.RollsUsed)

		// Third draw improves.
		result, err = svc.ProcessUserRoll(ctx, "t1", "u1", "alice")
		require.NoError(t, err)
		payload, ok = result.Success.(*tournamentevents.RollRecordedPayload)
		require.True(t, ok)
		assert.Equal(t, 80, payload.Draw)
		assert.Equal(t, 80, payload.Best)
		assert.True(t, payload.Improved)
		assert.Equal(t, 3, payload.RollsUsed)
		assert.Equal(t, 0, payload.RollsRemaining)

		// Fourth attempt is over the limit.
		result, err = svc.ProcessUserRoll(ctx, "t1", "u1", "alice")
		require.NoError(t, err)
		require.Nil(t, result.Success)
		failPayload, ok := result.Failure.(*tournamentevents.RollFailedPayload)
		require.True(t, ok)
		assert.Equal(t, msgRollLimit, failPayload.Reason)

		// The stored record still holds the best, not the last draw.
		stored := repo.rolls["t1"]["u1"]
		assert.Equal(t, 80, stored.Roll)
		assert.Equal(t, 3, stored.RollsUsed)
	})

	t.Run("unknown tournament is a domain failure, not an error", func(t *testing.T) {
		repo := NewFakeRepository()
		svc := newTestService(repo, 50)

		result, err := svc.ProcessUserRoll(ctx, "missing", "u1", "alice")
		require.NoError(t, err)
		failPayload, ok := result.Failure.(*tournamentevents.RollFailedPayload)
		require.True(t, ok)
		assert.Equal(t, msgNotFound, failPayload.Reason)
	})

	t.Run("rejects rolls on non-active tournament", func(t *testing.T) {
		repo := NewFakeRepository()
		cfg := seedActiveTournament(repo, "t1", 100, 3)
		cfg.Status = tournamenttypes.StatusCompleted
		repo.configs["t1"] = *cfg
		svc := newTestService(repo, 50)

		result, err := svc.ProcessUserRoll(ctx, "t1", "u1", "alice")
		require.NoError(t, err)
		failPayload, ok := result.Failure.(*tournamentevents.RollFailedPayload)
		require.True(t, ok)
		assert.Equal(t, msgNotActive, failPayload.Reason)
	})

	t.Run("rejects rolls after the deadline", func(t *testing.T) {
		repo := NewFakeRepository()
		cfg := seedActiveTournament(repo, "t1", 100, 3)
		cfg.Deadline = testNow.Add(-time.Hour).UnixMilli()
		repo.configs["t1"] = *cfg
		svc := newTestService(repo, 50)

		result, err := svc.ProcessUserRoll(ctx, "t1", "u1", "alice")
		require.NoError(t, err)
		failPayload, ok := result.Failure.(*tournamentevents.RollFailedPayload)
		require.True(t, ok)
		assert.Equal(t, msgDeadlinePassed, failPayload.Reason)
	})

	t.Run("propagates storage failure on save", func(t *testing.T) {
		repo := NewFakeRepository()
		seedActiveTournament(repo, "t1", 100, 3)
		repo.SaveRollFunc = func(ctx context.Context, tournamentID string, roll *tournamenttypes.UserRoll) error {
			return errors.New("kv write failed")
		}
		svc := newTestService(repo, 50)

		_, err := svc.ProcessUserRoll(ctx, "t1", "u1", "alice")
		require.Error(t, err)
	})
}
