// Package storage presents one logical store over two tiers: the key-value
// cache for speed and the file store for durability. Every operation here is
// fail-soft: faults are logged and degraded to a boolean/ok result so a
// storage outage never crashes calling game logic.
package storage

import (
	"context"
	"encoding/json"
	"errors"
	"log/slog"
	"strings"
	"time"

	"github.com/Rxriddqd/iddqd/app/observability"
	"github.com/Rxriddqd/iddqd/app/shared/attr"
	"github.com/Rxriddqd/iddqd/internal/storage/disk"
	"github.com/Rxriddqd/iddqd/internal/storage/kv"
)

const (
	// promoteTTL is the cache expiry applied when a disk hit is promoted
	// back into the cache tier.
	promoteTTL = time.Hour

	gameStateTTL = 24 * time.Hour
	sessionTTL   = time.Hour
)

// KeyValueStore is the cache-tier surface the façade needs.
type KeyValueStore interface {
	Get(ctx context.Context, key string) (string, error)
	Set(ctx context.Context, key, value string, ttl time.Duration) error
	Delete(ctx context.Context, key string) error
	Exists(ctx context.Context, key string) (bool, error)
}

// FileStore is the durable-tier surface the façade needs.
type FileStore interface {
	Read(path string) ([]byte, error)
	Write(path string, data []byte) error
	Append(path string, data []byte) error
	Delete(path string) error
	Exists(path string) bool
	List(dir string) ([]string, error)
}

// StoreOptions controls a Store call.
type StoreOptions struct {
	// TTL is the cache-tier expiry. Zero means no expiry.
	TTL time.Duration
	// PersistToDisk forces a write-through to the durable tier even when
	// the cache write succeeds.
	PersistToDisk bool
}

// Service is the storage façade.
type Service struct {
	kv      KeyValueStore
	disk    FileStore
	logger  *slog.Logger
	metrics observability.StorageMetrics
	now     func() time.Time
}

// NewService constructs the façade over the two injected tiers.
func NewService(kvStore KeyValueStore, fileStore FileStore, logger *slog.Logger, metrics observability.StorageMetrics) *Service {
	return &Service{
		kv:      kvStore,
		disk:    fileStore,
		logger:  logger,
		metrics: metrics,
		now:     time.Now,
	}
}

// Store writes value under key. The cache tier is written first; the durable
// tier is written when the cache write fails or PersistToDisk is set.
// Returns true if at least one tier accepted the write.
func (s *Service) Store(ctx context.Context, key, value string, opts StoreOptions) bool {
	cacheOK := true
	if err := s.kv.Set(ctx, key, value, opts.TTL); err != nil {
		cacheOK = false
		s.metrics.RecordTierFailure(ctx, "store", "cache")
		s.logger.WarnContext(ctx, "Cache write failed, falling back to disk",
			attr.ExtractCorrelationID(ctx),
			attr.String("key", key),
			attr.Error(err),
		)
	} else {
		s.metrics.RecordTierHit(ctx, "store", "cache")
	}

	diskOK := false
	if !cacheOK || opts.PersistToDisk {
		if err := s.disk.Write(cachePath(key), []byte(value)); err != nil {
			s.metrics.RecordTierFailure(ctx, "store", "disk")
			s.logger.ErrorContext(ctx, "Disk write failed",
				attr.ExtractCorrelationID(ctx),
				attr.String("key", key),
				attr.Error(err),
			)
		} else {
			diskOK = true
			s.metrics.RecordTierHit(ctx, "store", "disk")
		}
	}

	if !cacheOK && !diskOK {
		s.logger.ErrorContext(ctx, "Store failed on both tiers",
			attr.ExtractCorrelationID(ctx),
			attr.String("key", key),
		)
		return false
	}
	return true
}

// Retrieve reads key from the cache tier, falling back to disk on a miss.
// A disk hit is promoted back into the cache with a fixed one-hour expiry so
// subsequent reads stay on the fast tier.
func (s *Service) Retrieve(ctx context.Context, key string) (string, bool) {
	val, err := s.kv.Get(ctx, key)
	if err == nil {
		s.metrics.RecordTierHit(ctx, "retrieve", "cache")
		return val, true
	}
	if !errors.Is(err, kv.ErrNotFound) {
		s.metrics.RecordTierFailure(ctx, "retrieve", "cache")
		s.logger.WarnContext(ctx, "Cache read failed, trying disk",
			attr.ExtractCorrelationID(ctx),
			attr.String("key", key),
			attr.Error(err),
		)
	} else {
		s.metrics.RecordTierMiss(ctx, "retrieve", "cache")
	}

	data, err := s.disk.Read(cachePath(key))
	if err != nil {
		if !errors.Is(err, disk.ErrNotFound) {
			s.metrics.RecordTierFailure(ctx, "retrieve", "disk")
			s.logger.ErrorContext(ctx, "Disk read failed",
				attr.ExtractCorrelationID(ctx),
				attr.String("key", key),
				attr.Error(err),
			)
		} else {
			s.metrics.RecordTierMiss(ctx, "retrieve", "disk")
		}
		return "", false
	}
	s.metrics.RecordTierHit(ctx, "retrieve", "disk")

	if err := s.kv.Set(ctx, key, string(data), promoteTTL); err != nil {
		s.logger.DebugContext(ctx, "Cache repopulation failed",
			attr.ExtractCorrelationID(ctx),
			attr.String("key", key),
			attr.Error(err),
		)
	}
	return string(data), true
}

// Remove deletes key from both tiers. Returns true if either deletion
// succeeded.
func (s *Service) Remove(ctx context.Context, key string) bool {
	cacheOK := s.kv.Delete(ctx, key) == nil

	diskOK := false
	switch err := s.disk.Delete(cachePath(key)); {
	case err == nil:
		diskOK = true
	case !errors.Is(err, disk.ErrNotFound):
		s.logger.WarnContext(ctx, "Disk delete failed",
			attr.ExtractCorrelationID(ctx),
			attr.String("key", key),
			attr.Error(err),
		)
	}
	return cacheOK || diskOK
}

// Exists reports whether key is present in either tier. The cache is checked
// first and short-circuits.
func (s *Service) Exists(ctx context.Context, key string) bool {
	if ok, err := s.kv.Exists(ctx, key); err == nil && ok {
		return true
	}
	return s.disk.Exists(cachePath(key))
}

// StoreJSON serializes v and stores it under key.
func (s *Service) StoreJSON(ctx context.Context, key string, v any, opts StoreOptions) bool {
	data, err := json.Marshal(v)
	if err != nil {
		s.logger.ErrorContext(ctx, "Failed to serialize value",
			attr.ExtractCorrelationID(ctx),
			attr.String("key", key),
			attr.Error(err),
		)
		return false
	}
	return s.Store(ctx, key, string(data), opts)
}

// RetrieveJSON reads key and deserializes it into dest. A record that fails
// to deserialize is treated as not found: corrupted or partially-written
// data degrades to a miss instead of a parse error.
func (s *Service) RetrieveJSON(ctx context.Context, key string, dest any) bool {
	raw, ok := s.Retrieve(ctx, key)
	if !ok {
		return false
	}
	if err := json.Unmarshal([]byte(raw), dest); err != nil {
		s.logger.WarnContext(ctx, "Discarding undecodable record",
			attr.ExtractCorrelationID(ctx),
			attr.String("key", key),
			attr.Error(err),
		)
		return false
	}
	return true
}

// SaveGameState stores a game document with a 24h cache expiry and forced
// disk persistence, so games survive a cache flush.
func (s *Service) SaveGameState(ctx context.Context, gameID string, state any) bool {
	return s.StoreJSON(ctx, gameStateKey(gameID), state, StoreOptions{
		TTL:           gameStateTTL,
		PersistToDisk: true,
	})
}

// LoadGameState reads a game document into dest.
func (s *Service) LoadGameState(ctx context.Context, gameID string, dest any) bool {
	return s.RetrieveJSON(ctx, gameStateKey(gameID), dest)
}

// SaveSession stores a session record in the cache tier only, with a
// one-hour expiry. Sessions are disposable; they get no disk fallback.
func (s *Service) SaveSession(ctx context.Context, sessionID string, v any) bool {
	data, err := json.Marshal(v)
	if err != nil {
		s.logger.ErrorContext(ctx, "Failed to serialize session",
			attr.ExtractCorrelationID(ctx),
			attr.String("session_id", sessionID),
			attr.Error(err),
		)
		return false
	}
	if err := s.kv.Set(ctx, sessionKey(sessionID), string(data), sessionTTL); err != nil {
		s.logger.WarnContext(ctx, "Session write failed",
			attr.ExtractCorrelationID(ctx),
			attr.String("session_id", sessionID),
			attr.Error(err),
		)
		return false
	}
	return true
}

// LoadSession reads a session record into dest. Cache tier only.
func (s *Service) LoadSession(ctx context.Context, sessionID string, dest any) bool {
	raw, err := s.kv.Get(ctx, sessionKey(sessionID))
	if err != nil {
		if !errors.Is(err, kv.ErrNotFound) {
			s.logger.WarnContext(ctx, "Session read failed",
				attr.ExtractCorrelationID(ctx),
				attr.String("session_id", sessionID),
				attr.Error(err),
			)
		}
		return false
	}
	if err := json.Unmarshal([]byte(raw), dest); err != nil {
		s.logger.WarnContext(ctx, "Discarding undecodable session",
			attr.ExtractCorrelationID(ctx),
			attr.String("session_id", sessionID),
			attr.Error(err),
		)
		return false
	}
	return true
}

// DeleteSession removes a session record.
func (s *Service) DeleteSession(ctx context.Context, sessionID string) bool {
	return s.kv.Delete(ctx, sessionKey(sessionID)) == nil
}

// AppendEventLog appends one JSON line for event to the current day's log
// for logType. Disk only, never overwritten.
func (s *Service) AppendEventLog(ctx context.Context, logType string, event any) bool {
	entry := map[string]any{
		"timestamp": s.now().UTC().Format(time.RFC3339),
		"event":     event,
	}
	line, err := json.Marshal(entry)
	if err != nil {
		s.logger.ErrorContext(ctx, "Failed to serialize log event",
			attr.ExtractCorrelationID(ctx),
			attr.String("log_type", logType),
			attr.Error(err),
		)
		return false
	}
	path := "logs/" + sanitize(logType) + "/" + s.now().UTC().Format("2006-01-02") + ".log"
	if err := s.disk.Append(path, append(line, '\n')); err != nil {
		s.logger.ErrorContext(ctx, "Event log append failed",
			attr.ExtractCorrelationID(ctx),
			attr.String("log_type", logType),
			attr.Error(err),
		)
		return false
	}
	return true
}

// WriteBackup writes a pretty-printed, timestamped snapshot of v under the
// given backup name. Disk only. Colons are stripped from the timestamp for
// filesystem safety.
func (s *Service) WriteBackup(ctx context.Context, name string, v any) bool {
	data, err := json.MarshalIndent(v, "", "  ")
	if err != nil {
		s.logger.ErrorContext(ctx, "Failed to serialize backup",
			attr.ExtractCorrelationID(ctx),
			attr.String("backup", name),
			attr.Error(err),
		)
		return false
	}
	ts := strings.ReplaceAll(s.now().UTC().Format(time.RFC3339), ":", "-")
	path := "backups/" + sanitize(name) + "/" + ts + ".json"
	if err := s.disk.Write(path, data); err != nil {
		s.logger.ErrorContext(ctx, "Backup write failed",
			attr.ExtractCorrelationID(ctx),
			attr.String("backup", name),
			attr.Error(err),
		)
		return false
	}
	return true
}

func gameStateKey(gameID string) string { return "game:state:" + gameID }

func sessionKey(sessionID string) string { return "session:" + sessionID }

// cachePath maps a logical key onto the durable tier's fallback blob path.
func cachePath(key string) string {
	return "cache/" + sanitize(key) + ".txt"
}

func sanitize(s string) string {
	var b strings.Builder
	b.Grow(len(s))
	for _, r := range s {
		switch {
		case r >= 'a' && r <= 'z', r >= 'A' && r <= 'Z', r >= '0' && r <= '9',
			r == '.', r == '-', r == '_':
			b.WriteRune(r)
		default:
			b.WriteByte('_')
		}
	}
	return b.String()
}
