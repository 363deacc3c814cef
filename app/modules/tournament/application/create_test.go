package tournamentservice

import (
	"context"
	"errors"
	"strconv"
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	tournamenttypes "github.com/Rxriddqd/iddqd/app/modules/tournament/domain"
	tournamentevents "github.com/Rxriddqd/iddqd/app/modules/tournament/events"
)

func TestTournamentService_CreateTournament(t *testing.T) {
	ctx := context.Background()

	t.Run("creates active tournament with round one open", func(t *testing.T) {
		repo := NewFakeRepository()
		svc := newTestService(repo)

		result, err := svc.CreateTournament(ctx, "Weekly Cup", 100, 3, 24, "chan-1")
		require.NoError(t, err)
		require.Nil(t, result.Failure)

		payload, ok := result.Success.(*tournamentevents.TournamentCreatedPayload)
		require.True(t, ok, "unexpected success payload %T", result.Success)

		wantID := strconv.FormatInt(testNow.UnixMilli(), 10)
		assert.Equal(t, wantID, payload.Config.ID)
		assert.Equal(t, "Weekly Cup", payload.Config.Name)
		assert.Equal(t, tournamenttypes.StatusActive, payload.Config.Status)
		assert.Equal(t, 1, payload.Config.CurrentRound)
		assert.Equal(t, testNow.Add(24*time.Hour).UnixMilli(), payload.Config.Deadline)

		stored, ok := repo.configs[wantID]
		require.True(t, ok, "config not persisted")
		assert.Equal(t, payload.Config, stored)

		round, ok := repo.rounds[wantID][1]
		require.True(t, ok, "round one not persisted")
		assert.Equal(t, testNow.UnixMilli(), round.StartTime)
		assert.Empty(t, round.Participants)
		assert.Empty(t, round.Eliminated)
	})

	t.Run("propagates storage failure on config save", func(t *testing.T) {
		repo := NewFakeRepository()
		repo.SaveConfigFunc = func(ctx context.Context, cfg *tournamenttypes.Config) error {
			return errors.New("kv write failed")
		}
		svc := newTestService(repo)

		_, err := svc.CreateTournament(ctx, "Weekly Cup", 100, 3, 24, "chan-1")
		require.Error(t, err)
		assert.Contains(t, err.Error(), "kv write failed")
	})

	t.Run("propagates storage failure on round save", func(t *testing.T) {
		repo := NewFakeRepository()
		repo.SaveRoundFunc = func(ctx context.Context, tournamentID string, round *tournamenttypes.RoundData) error {
			return errors.New("kv write failed")
		}
		svc := newTestService(repo)

		_, err := svc.CreateTournament(ctx, "Weekly Cup", 100, 3, 24, "chan-1")
		require.Error(t, err)
	})
}
