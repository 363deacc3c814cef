package gamestateservice

import (
	"context"
	"encoding/json"
	"log/slog"
	"time"

	"go.opentelemetry.io/otel/trace/noop"

	"github.com/Rxriddqd/iddqd/app/observability"
)

// FakeGameStore is an in-memory, fail-soft stand-in for the storage façade.
// Documents round-trip through JSON so the fake sees exactly the shapes the
// real store would.
type FakeGameStore struct {
	trace []string

	states  map[string]json.RawMessage
	backups map[string][]json.RawMessage
	logs    map[string][]json.RawMessage

	down bool
}

func NewFakeGameStore() *FakeGameStore {
	return &FakeGameStore{
		trace:   []string{},
		states:  map[string]json.RawMessage{},
		backups: map[string][]json.RawMessage{},
		logs:    map[string][]json.RawMessage{},
	}
}

// Trace returns the sequence of method calls made to the fake.
func (f *FakeGameStore) Trace() []string {
	out := make([]string, len(f.trace))
	copy(out, f.trace)
	return out
}

func (f *FakeGameStore) record(step string) {
	f.trace = append(f.trace, step)
}

func (f *FakeGameStore) SaveGameState(ctx context.Context, gameID string, state any) bool {
	f.record("SaveGameState")
	if f.down {
		return false
	}
	data, err := json.Marshal(state)
	if err != nil {
		return false
	}
	f.states[gameID] = data
	return true
}

func (f *FakeGameStore) LoadGameState(ctx context.Context, gameID string, dest any) bool {
	f.record("LoadGameState")
	if f.down {
		return false
	}
	data, ok := f.states[gameID]
	if !ok {
		return false
	}
	return json.Unmarshal(data, dest) == nil
}

func (f *FakeGameStore) WriteBackup(ctx context.Context, name string, v any) bool {
	f.record("WriteBackup")
	if f.down {
		return false
	}
	data, err := json.Marshal(v)
	if err != nil {
		return false
	}
	f.backups[name] = append(f.backups[name], data)
	return true
}

func (f *FakeGameStore) AppendEventLog(ctx context.Context, logType string, event any) bool {
	f.record("AppendEventLog")
	if f.down {
		return false
	}
	data, err := json.Marshal(event)
	if err != nil {
		return false
	}
	f.logs[logType] = append(f.logs[logType], data)
	return true
}

var _ GameStore = (*FakeGameStore)(nil)

var testNow = time.UnixMilli(1_700_000_000_000)

func newTestService(store GameStore) *GameStateService {
	svc := NewGameStateService(store, slog.New(slog.DiscardHandler), &observability.NoOpMetrics{}, noop.NewTracerProvider().Tracer("test"))
	svc.now = func() time.Time { return testNow }
	return svc
}
