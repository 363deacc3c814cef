package tournamentdb

import (
	"context"
	"errors"

	tournamenttypes "github.com/Rxriddqd/iddqd/app/modules/tournament/domain"
)

// ErrNotFound is returned when a requested record does not exist.
var ErrNotFound = errors.New("tournament record not found")

// Repository defines the contract for tournament persistence. Tournament
// data lives exclusively in the key-value store with no disk fallback:
// infrastructure faults propagate to the caller rather than being degraded,
// because silently dropping a roll write would corrupt competitive
// integrity.
//
// Error semantics:
//   - ErrNotFound: the record does not exist (GetConfig, GetRoll, GetRound)
//   - other errors: infrastructure failures, wrapped with context
type Repository interface {
	// SaveConfig upserts a tournament config under tournament:<id>.
	SaveConfig(ctx context.Context, cfg *tournamenttypes.Config) error

	// GetConfig returns the config for id, or ErrNotFound.
	GetConfig(ctx context.Context, id string) (*tournamenttypes.Config, error)

	// DeleteConfig removes the config record.
	DeleteConfig(ctx context.Context, id string) error

	// SaveRoll upserts one user's roll in the tournament's roll map.
	SaveRoll(ctx context.Context, tournamentID string, roll *tournamenttypes.UserRoll) error

	// GetRoll returns one user's roll, or ErrNotFound.
	GetRoll(ctx context.Context, tournamentID, userID string) (*tournamenttypes.UserRoll, error)

	// GetAllRolls returns every roll in the tournament's roll map.
	// Individual records that fail to decode are skipped and logged rather
	// than aborting the whole read.
	GetAllRolls(ctx context.Context, tournamentID string) ([]tournamenttypes.UserRoll, error)

	// ClearRolls removes the whole roll map. Used when a round closes.
	ClearRolls(ctx context.Context, tournamentID string) error

	// SaveRound upserts one round record.
	SaveRound(ctx context.Context, tournamentID string, round *tournamenttypes.RoundData) error

	// GetRound returns one round record, or ErrNotFound.
	GetRound(ctx context.Context, tournamentID string, roundNumber int) (*tournamenttypes.RoundData, error)

	// GetAllRounds returns every round for the tournament sorted ascending
	// by round number regardless of scan order. Consumers rely on this
	// ordering for history replay.
	GetAllRounds(ctx context.Context, tournamentID string) ([]tournamenttypes.RoundData, error)

	// SaveStats caches a derived stats snapshot.
	SaveStats(ctx context.Context, tournamentID string, stats *tournamenttypes.Stats) error

	// GetStats returns the cached stats snapshot, or ErrNotFound.
	GetStats(ctx context.Context, tournamentID string) (*tournamenttypes.Stats, error)

	// ListActiveTournaments scans every tournament config and returns the
	// active ones. Best effort: one undecodable record does not fail the
	// listing.
	ListActiveTournaments(ctx context.Context) ([]tournamenttypes.Config, error)
}
