package tournamenthandlers

import (
	"context"
	"log/slog"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	"golang.org/x/time/rate"

	tournamenttypes "github.com/Rxriddqd/iddqd/app/modules/tournament/domain"
	tournamentevents "github.com/Rxriddqd/iddqd/app/modules/tournament/events"
	"github.com/Rxriddqd/iddqd/app/shared/results"
	"github.com/Rxriddqd/iddqd/internal/ratelimit"
)

func newTestHandlers(svc *FakeService, limiter *ratelimit.Limiter) *TournamentHandlers {
	return NewTournamentHandlers(svc, slog.New(slog.DiscardHandler), limiter)
}

func TestHandleCreateTournament_Validation(t *testing.T) {
	ctx := context.Background()

	tests := []struct {
		name       string
		payload    tournamentevents.TournamentCreateRequestedPayload
		wantReason string
	}{
		{
			name:       "missing name",
			payload:    tournamentevents.TournamentCreateRequestedPayload{MaxRoll: 100, RollLimit: 3, DeadlineHours: 24},
			wantReason: "tournament name required",
		},
		{
			name:       "max roll too small",
			payload:    tournamentevents.TournamentCreateRequestedPayload{Name: "Cup", MaxRoll: 5, RollLimit: 3, DeadlineHours: 24},
			wantReason: "max roll must be between 10 and 10000",
		},
		{
			name:       "roll limit too large",
			payload:    tournamentevents.TournamentCreateRequestedPayload{Name: "Cup", MaxRoll: 100, RollLimit: 11, DeadlineHours: 24},
			wantReason: "roll limit must be between 1 and 10",
		},
		{
			name:       "deadline beyond a week",
			payload:    tournamentevents.TournamentCreateRequestedPayload{Name: "Cup", MaxRoll: 100, RollLimit: 3, DeadlineHours: 200},
			wantReason: "deadline must be between 1 and 168 hours",
		},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			svc := NewFakeService()
			h := newTestHandlers(svc, nil)

			out, err := h.HandleCreateTournament(ctx, &tt.payload)
			require.NoError(t, err)
			require.Len(t, out, 1)
			assert.Equal(t, tournamentevents.TournamentCreationFailed, out[0].Topic)
			failed := out[0].Payload.(*tournamentevents.TournamentCreationFailedPayload)
			assert.Equal(t, tt.wantReason, failed.Reason)

			// Validation failures never reach the service.
			assert.Empty(t, svc.Trace())
		})
	}

	t.Run("valid request reaches the service", func(t *testing.T) {
		svc := NewFakeService()
		svc.CreateTournamentFunc = func(ctx context.Context, name string, maxRoll, rollLimit, deadlineHours int, channelID string) (results.OperationResult, error) {
			return results.Success(&tournamentevents.TournamentCreatedPayload{
				Config: tournamenttypes.Config{ID: "1", Name: name},
			}), nil
		}
		h := newTestHandlers(svc, nil)

		out, err := h.HandleCreateTournament(ctx, &tournamentevents.TournamentCreateRequestedPayload{
			Name: "Cup", MaxRoll: 100, RollLimit: 3, DeadlineHours: 24, ChannelID: "c1",
		})
		require.NoError(t, err)
		require.Len(t, out, 1)
		assert.Equal(t, tournamentevents.TournamentCreated, out[0].Topic)
	})

	t.Run("nil payload is an error", func(t *testing.T) {
		h := newTestHandlers(NewFakeService(), nil)
		_, err := h.HandleCreateTournament(ctx, nil)
		assert.Error(t, err)
	})
}

func TestHandleUserRoll_RateLimit(t *testing.T) {
	ctx := context.Background()

	svc := NewFakeService()
	svc.ProcessUserRollFunc = func(ctx context.Context, tournamentID, userID, username string) (results.OperationResult, error) {
		return results.Success(&tournamentevents.RollRecordedPayload{
			TournamentID: tournamentID, UserID: userID, Draw: 42, Best: 42,
		}), nil
	}
	// Burst of 2, essentially no refill within the test.
	h := newTestHandlers(svc, ratelimit.New(rate.Limit(0.001), 2))

	payload := &tournamentevents.RollRequestedPayload{TournamentID: "t1", UserID: "u1", Username: "alice"}

	for i := 0; i < 2; i++ {
		out, err := h.HandleUserRoll(ctx, payload)
		require.NoError(t, err)
		require.Len(t, out, 1)
		assert.Equal(t, tournamentevents.RollRecorded, out[0].Topic, "roll %d", i)
	}

	// Third hit inside the window is throttled and never reaches the engine.
	before := len(svc.Trace())
	out, err := h.HandleUserRoll(ctx, payload)
	require.NoError(t, err)
	require.Len(t, out, 1)
	assert.Equal(t, tournamentevents.RollFailed, out[0].Topic)
	assert.Len(t, svc.Trace(), before)

	// A different user has their own bucket.
	other := &tournamentevents.RollRequestedPayload{TournamentID: "t1", UserID: "u2", Username: "bob"}
	out, err = h.HandleUserRoll(ctx, other)
	require.NoError(t, err)
	assert.Equal(t, tournamentevents.RollRecorded, out[0].Topic)
}

func TestHandleEndRound_TopicDependsOnOutcome(t *testing.T) {
	ctx := context.Background()

	t.Run("advanced round publishes round.ended", func(t *testing.T) {
		svc := NewFakeService()
		svc.EndRoundFunc = func(ctx context.Context, tournamentID string, pct int) (results.OperationResult, error) {
			return results.Success(&tournamentevents.RoundEndedPayload{TournamentID: tournamentID, RemainingPlayers: 4, NextRound: 2}), nil
		}
		h := newTestHandlers(svc, nil)

		out, err := h.HandleEndRound(ctx, &tournamentevents.RoundEndRequestedPayload{TournamentID: "t1", EliminationPercentage: 50})
		require.NoError(t, err)
		require.Len(t, out, 1)
		assert.Equal(t, tournamentevents.RoundEnded, out[0].Topic)
	})

	t.Run("completed tournament publishes tournament.completed", func(t *testing.T) {
		svc := NewFakeService()
		svc.EndRoundFunc = func(ctx context.Context, tournamentID string, pct int) (results.OperationResult, error) {
			return results.Success(&tournamentevents.TournamentCompletedPayload{TournamentID: tournamentID, WinnerID: "u1"}), nil
		}
		h := newTestHandlers(svc, nil)

		out, err := h.HandleEndRound(ctx, &tournamentevents.RoundEndRequestedPayload{TournamentID: "t1", EliminationPercentage: 50})
		require.NoError(t, err)
		require.Len(t, out, 1)
		assert.Equal(t, tournamentevents.TournamentCompleted, out[0].Topic)
	})

	t.Run("domain failure publishes round.end.failed", func(t *testing.T) {
		svc := NewFakeService()
		svc.EndRoundFunc = func(ctx context.Context, tournamentID string, pct int) (results.OperationResult, error) {
			return results.Failure(&tournamentevents.RoundEndFailedPayload{TournamentID: tournamentID, Reason: "tournament not found"}), nil
		}
		h := newTestHandlers(svc, nil)

		out, err := h.HandleEndRound(ctx, &tournamentevents.RoundEndRequestedPayload{TournamentID: "t1"})
		require.NoError(t, err)
		require.Len(t, out, 1)
		assert.Equal(t, tournamentevents.RoundEndFailed, out[0].Topic)
	})
}
