package tournamentservice

import (
	"context"
	"log/slog"
	"sort"
	"time"

	"go.opentelemetry.io/otel/trace/noop"

	tournamenttypes "github.com/Rxriddqd/iddqd/app/modules/tournament/domain"
	tournamentdb "github.com/Rxriddqd/iddqd/app/modules/tournament/infrastructure/repositories"
	"github.com/Rxriddqd/iddqd/app/observability"
)

// ------------------------
// Fake Tournament Repo
// ------------------------

// FakeRepository is an in-memory, programmable stub for the
// tournamentdb.Repository interface. By default every method operates on
// the internal maps; set a *Func field to override one method.
type FakeRepository struct {
	trace []string

	configs map[string]tournamenttypes.Config
	rolls   map[string]map[string]tournamenttypes.UserRoll
	rounds  map[string]map[int]tournamenttypes.RoundData
	stats   map[string]tournamenttypes.Stats

	SaveConfigFunc  func(ctx context.Context, cfg *tournamenttypes.Config) error
	GetConfigFunc   func(ctx context.Context, id string) (*tournamenttypes.Config, error)
	SaveRollFunc    func(ctx context.Context, tournamentID string, roll *tournamenttypes.UserRoll) error
	GetRollFunc     func(ctx context.Context, tournamentID, userID string) (*tournamenttypes.UserRoll, error)
	GetAllRollsFunc func(ctx context.Context, tournamentID string) ([]tournamenttypes.UserRoll, error)
	ClearRollsFunc  func(ctx context.Context, tournamentID string) error
	SaveRoundFunc   func(ctx context.Context, tournamentID string, round *tournamenttypes.RoundData) error
	SaveStatsFunc   func(ctx context.Context, tournamentID string, stats *tournamenttypes.Stats) error
}

func NewFakeRepository() *FakeRepository {
	return &FakeRepository{
		trace:   []string{},
		configs: map[string]tournamenttypes.Config{},
		rolls:   map[string]map[string]tournamenttypes.UserRoll{},
		rounds:  map[string]map[int]tournamenttypes.RoundData{},
		stats:   map[string]tournamenttypes.Stats{},
	}
}

// Trace returns the sequence of method calls made to the fake.
func (f *FakeRepository) Trace() []string {
	out := make([]string, len(f.trace))
	copy(out, f.trace)
	return out
}

func (f *FakeRepository) record(step string) {
	f.trace = append(f.trace, step)
}

func (f *FakeRepository) SaveConfig(ctx context.Context, cfg *tournamenttypes.Config) error {
	f.record("SaveConfig")
	if f.SaveConfigFunc != nil {
		return f.SaveConfigFunc(ctx, cfg)
	}
	f.configs[cfg.ID] = *cfg
	return nil
}

func (f *FakeRepository) GetConfig(ctx context.Context, id string) (*tournamenttypes.Config, error) {
	f.record("GetConfig")
	if f.GetConfigFunc != nil {
		return f.GetConfigFunc(ctx, id)
	}
	cfg, ok := f.configs[id]
	if !ok {
		return nil, tournamentdb.ErrNotFound
	}
	out := cfg
	return &out, nil
}

func (f *FakeRepository) DeleteConfig(ctx context.Context, id string) error {
	f.record("DeleteConfig")
	delete(f.configs, id)
	return nil
}

func (f *FakeRepository) SaveRoll(ctx context.Context, tournamentID string, roll *tournamenttypes.UserRoll) error {
	f.record("SaveRoll")
	if f.SaveRollFunc != nil {
		return f.SaveRollFunc(ctx, tournamentID, roll)
	}
	if f.rolls[tournamentID] == nil {
		f.rolls[tournamentID] = map[string]tournamenttypes.UserRoll{}
	}
	f.rolls[tournamentID][roll.UserID] = *roll
	return nil
}

func (f *FakeRepository) GetRoll(ctx context.Context, tournamentID, userID string) (*tournamenttypes.UserRoll, error) {
	f.record("GetRoll")
	if f.GetRollFunc != nil {
		return f.GetRollFunc(ctx, tournamentID, userID)
	}
	roll, ok := f.rolls[tournamentID][userID]
	if !ok {
		return nil, tournamentdb.ErrNotFound
	}
	out := roll
	return &out, nil
}

func (f *FakeRepository) GetAllRolls(ctx context.Context, tournamentID string) ([]tournamenttypes.UserRoll, error) {
	f.record("GetAllRolls")
	if f.GetAllRollsFunc != nil {
		return f.GetAllRollsFunc(ctx, tournamentID)
	}
	out := make([]tournamenttypes.UserRoll, 0, len(f.rolls[tournamentID]))
	for _, roll := range f.rolls[tournamentID] {
		out = append(out, roll)
	}
	// Deterministic order for tests; production reads come out of a hash
	// scan in arbitrary order.
	sort.Slice(out, func(i, j int) bool { return out[i].UserID < out[j].UserID })
	return out, nil
}

func (f *FakeRepository) ClearRolls(ctx context.Context, tournamentID string) error {
	f.record("ClearRolls")
	if f.ClearRollsFunc != nil {
		return f.ClearRollsFunc(ctx, tournamentID)
	}
	delete(f.rolls, tournamentID)
	return nil
}

func (f *FakeRepository) SaveRound(ctx context.Context, tournamentID string, round *tournamenttypes.RoundData) error {
	f.record("SaveRound")
	if f.SaveRoundFunc != nil {
		return f.SaveRoundFunc(ctx, tournamentID, round)
	}
	if f.rounds[tournamentID] == nil {
		f.rounds[tournamentID] = map[int]tournamenttypes.RoundData{}
	}
	f.rounds[tournamentID][round.RoundNumber] = *round
	return nil
}

func (f *FakeRepository) GetRound(ctx context.Context, tournamentID string, roundNumber int) (*tournamenttypes.RoundData, error) {
	f.record("GetRound")
	round, ok := f.rounds[tournamentID][roundNumber]
	if !ok {
		return nil, tournamentdb.ErrNotFound
	}
	out := round
	return &out, nil
}

func (f *FakeRepository) GetAllRounds(ctx context.Context, tournamentID string) ([]tournamenttypes.RoundData, error) {
	f.record("GetAllRounds")
	out := make([]tournamenttypes.RoundData, 0, len(f.rounds[tournamentID]))
	for _, round := range f.rounds[tournamentID] {
		out = append(out, round)
	}
	sort.Slice(out, func(i, j int) bool { return out[i].RoundNumber < out[j].RoundNumber })
	return out, nil
}

func (f *FakeRepository) SaveStats(ctx context.Context, tournamentID string, stats *tournamenttypes.Stats) error {
	f.record("SaveStats")
	if f.SaveStatsFunc != nil {
		return f.SaveStatsFunc(ctx, tournamentID, stats)
	}
	f.stats[tournamentID] = *stats
	return nil
}

func (f *FakeRepository) GetStats(ctx context.Context, tournamentID string) (*tournamenttypes.Stats, error) {
	f.record("GetStats")
	stats, ok := f.stats[tournamentID]
	if !ok {
		return nil, tournamentdb.ErrNotFound
	}
	out := stats
	return &out, nil
}

func (f *FakeRepository) ListActiveTournaments(ctx context.Context) ([]tournamenttypes.Config, error) {
	f.record("ListActiveTournaments")
	var out []tournamenttypes.Config
	for _, cfg := range f.configs {
		if cfg.Status == tournamenttypes.StatusActive {
			out = append(out, cfg)
		}
	}
	sort.Slice(out, func(i, j int) bool { return out[i].CreatedAt < out[j].CreatedAt })
	return out, nil
}

// Ensure the fake actually satisfies the interface
var _ tournamentdb.Repository = (*FakeRepository)(nil)

// ------------------------
// Test harness
// ------------------------

var testNow = time.UnixMilli(1_700_000_000_000)

// newTestService builds a service with noop observability, a frozen clock,
// and a scripted draw sequence. The last scripted value repeats once the
// script runs out.
func newTestService(repo tournamentdb.Repository, draws ...int) *TournamentService {
	svc := NewTournamentService(repo, slog.New(slog.DiscardHandler), &observability.NoOpMetrics{}, noop.NewTracerProvider().Tracer("test"))
	svc.now = func() time.Time { return testNow }
	if len(draws) > 0 {
		i := 0
		svc.draw = func(maxRoll int) int {
			d := draws[i]
			if i < len(draws)-1 {
				i++
			}
			return d
		}
	}
	return svc
}

// seedActiveTournament installs an active tournament with round 1 open.
func seedActiveTournament(repo *FakeRepository, id string, maxRoll, rollLimit int) *tournamenttypes.Config {
	cfg := tournamenttypes.Config{
		ID:           id,
		Name:         "Weekly Cup",
		MaxRoll:      maxRoll,
		RollLimit:    rollLimit,
		Deadline:     testNow.Add(24 * time.Hour).UnixMilli(),
		CurrentRound: 1,
		Status:       tournamenttypes.StatusActive,
		ChannelID:    "chan-1",
		CreatedAt:    testNow.UnixMilli(),
		UpdatedAt:    testNow.UnixMilli(),
	}
	repo.configs[id] = cfg
	repo.rounds[id] = map[int]tournamenttypes.RoundData{
		1: {RoundNumber: 1, StartTime: testNow.UnixMilli(), Participants: []string{}, Eliminated: []string{}},
	}
	return &cfg
}
