package tournamentdb

import (
	"context"
	"encoding/json"
	"errors"
	"fmt"
	"log/slog"
	"sort"
	"time"

	tournamenttypes "github.com/Rxriddqd/iddqd/app/modules/tournament/domain"
	"github.com/Rxriddqd/iddqd/app/shared/attr"
	"github.com/Rxriddqd/iddqd/internal/storage/kv"
)

// KV is the key-value surface the store needs. Satisfied by *kv.Client.
type KV interface {
	Get(ctx context.Context, key string) (string, error)
	Set(ctx context.Context, key, value string, ttl time.Duration) error
	Delete(ctx context.Context, key string) error
	HSet(ctx context.Context, key, field, value string) error
	HGet(ctx context.Context, key, field string) (string, error)
	HGetAll(ctx context.Context, key string) (map[string]string, error)
	Keys(ctx context.Context, pattern string) ([]string, error)
}

// Store implements Repository on the key-value client.
type Store struct {
	kv     KV
	logger *slog.Logger
}

// NewStore constructs a Store.
func NewStore(kvStore KV, logger *slog.Logger) *Store {
	return &Store{kv: kvStore, logger: logger}
}

func (s *Store) SaveConfig(ctx context.Context, cfg *tournamenttypes.Config) error {
	data, err := json.Marshal(cfg)
	if err != nil {
		return fmt.Errorf("marshal tournament config %q: %w", cfg.ID, err)
	}
	if err := s.kv.Set(ctx, configKey(cfg.ID), string(data), 0); err != nil {
		return fmt.Errorf("save tournament config %q: %w", cfg.ID, err)
	}
	return nil
}

func (s *Store) GetConfig(ctx context.Context, id string) (*tournamenttypes.Config, error) {
	raw, err := s.kv.Get(ctx, configKey(id))
	if err != nil {
		if errors.Is(err, kv.ErrNotFound) {
			return nil, ErrNotFound
		}
		return nil, fmt.Errorf("get tournament config %q: %w", id, err)
	}
	var cfg tournamenttypes.Config
	if err := json.Unmarshal([]byte(raw), &cfg); err != nil {
		return nil, fmt.Errorf("decode tournament config %q: %w", id, err)
	}
	return &cfg, nil
}

func (s *Store) DeleteConfig(ctx context.Context, id string) error {
	if err := s.kv.Delete(ctx, configKey(id)); err != nil {
		return fmt.Errorf("delete tournament config %q: %w", id, err)
	}
	return nil
}

func (s *Store) SaveRoll(ctx context.Context, tournamentID string, roll *tournamenttypes.UserRoll) error {
	data, err := json.Marshal(roll)
	if err != nil {
		return fmt.Errorf("marshal roll for %q/%q: %w", tournamentID, roll.UserID, err)
	}
	if err := s.kv.HSet(ctx, rollsKey(tournamentID), roll.UserID, string(data)); err != nil {
		return fmt.Errorf("save roll for %q/%q: %w", tournamentID, roll.UserID, err)
	}
	return nil
}

func (s *Store) GetRoll(ctx context.Context, tournamentID, userID string) (*tournamenttypes.UserRoll, error) {
	raw, err := s.kv.HGet(ctx, rollsKey(tournamentID), userID)
	if err != nil {
		if errors.Is(err, kv.ErrNotFound) {
			return nil, ErrNotFound
		}
		return nil, fmt.Errorf("get roll for %q/%q: %w", tournamentID, userID, err)
	}
	var roll tournamenttypes.UserRoll
	if err := json.Unmarshal([]byte(raw), &roll); err != nil {
		return nil, fmt.Errorf("decode roll for %q/%q: %w", tournamentID, userID, err)
	}
	return &roll, nil
}

func (s *Store) GetAllRolls(ctx context.Context, tournamentID string) ([]tournamenttypes.UserRoll, error) {
	entries, err := s.kv.HGetAll(ctx, rollsKey(tournamentID))
	if err != nil {
		return nil, fmt.Errorf("get rolls for %q: %w", tournamentID, err)
	}
	rolls := make([]tournamenttypes.UserRoll, 0, len(entries))
	for userID, raw := range entries {
		var roll tournamenttypes.UserRoll
		if err := json.Unmarshal([]byte(raw), &roll); err != nil {
			s.logger.WarnContext(ctx, "Skipping undecodable roll record",
				attr.ExtractCorrelationID(ctx),
				attr.String("tournament_id", tournamentID),
				attr.String("user_id", userID),
				attr.Error(err),
			)
			continue
		}
		rolls = append(rolls, roll)
	}
	return rolls, nil
}

func (s *Store) ClearRolls(ctx context.Context, tournamentID string) error {
	if err := s.kv.Delete(ctx, rollsKey(tournamentID)); err != nil {
		return fmt.Errorf("clear rolls for %q: %w", tournamentID, err)
	}
	return nil
}

func (s *Store) SaveRound(ctx context.Context, tournamentID string, round *tournamenttypes.RoundData) error {
	data, err := json.Marshal(round)
	if err != nil {
		return fmt.Errorf("marshal round %d for %q: %w", round.RoundNumber, tournamentID, err)
	}
	if err := s.kv.Set(ctx, roundKey(tournamentID, round.RoundNumber), string(data), 0); err != nil {
		return fmt.Errorf("save round %d for %q: %w", round.RoundNumber, tournamentID, err)
	}
	return nil
}

func (s *Store) GetRound(ctx context.Context, tournamentID string, roundNumber int) (*tournamenttypes.RoundData, error) {
	raw, err := s.kv.Get(ctx, roundKey(tournamentID, roundNumber))
	if err != nil {
		if errors.Is(err, kv.ErrNotFound) {
			return nil, ErrNotFound
		}
		return nil, fmt.Errorf("get round %d for %q: %w", roundNumber, tournamentID, err)
	}
	var round tournamenttypes.RoundData
	if err := json.Unmarshal([]byte(raw), &round); err != nil {
		return nil, fmt.Errorf("decode round %d for %q: %w", roundNumber, tournamentID, err)
	}
	return &round, nil
}

func (s *Store) GetAllRounds(ctx context.Context, tournamentID string) ([]tournamenttypes.RoundData, error) {
	keys, err := s.kv.Keys(ctx, roundPrefix+tournamentID+":*")
	if err != nil {
		return nil, fmt.Errorf("scan rounds for %q: %w", tournamentID, err)
	}
	rounds := make([]tournamenttypes.RoundData, 0, len(keys))
	for _, key := range keys {
		raw, err := s.kv.Get(ctx, key)
		if err != nil {
			if errors.Is(err, kv.ErrNotFound) {
				continue
			}
			return nil, fmt.Errorf("get round record %q: %w", key, err)
		}
		var round tournamenttypes.RoundData
		if err := json.Unmarshal([]byte(raw), &round); err != nil {
			s.logger.WarnContext(ctx, "Skipping undecodable round record",
				attr.ExtractCorrelationID(ctx),
				attr.String("key", key),
				attr.Error(err),
			)
			continue
		}
		rounds = append(rounds, round)
	}
	// Scan order is arbitrary; ascending round order is part of the contract.
	sort.Slice(rounds, func(i, j int) bool {
		return rounds[i].RoundNumber < rounds[j].RoundNumber
	})
	return rounds, nil
}

func (s *Store) SaveStats(ctx context.Context, tournamentID string, stats *tournamenttypes.Stats) error {
	data, err := json.Marshal(stats)
	if err != nil {
		return fmt.Errorf("marshal stats for %q: %w", tournamentID, err)
	}
	if err := s.kv.Set(ctx, statsKey(tournamentID), string(data), 0); err != nil {
		return fmt.Errorf("save stats for %q: %w", tournamentID, err)
	}
	return nil
}

func (s *Store) GetStats(ctx context.Context, tournamentID string) (*tournamenttypes.Stats, error) {
	raw, err := s.kv.Get(ctx, statsKey(tournamentID))
	if err != nil {
		if errors.Is(err, kv.ErrNotFound) {
			return nil, ErrNotFound
		}
		return nil, fmt.Errorf("get stats for %q: %w", tournamentID, err)
	}
	var stats tournamenttypes.Stats
	if err := json.Unmarshal([]byte(raw), &stats); err != nil {
		return nil, fmt.Errorf("decode stats for %q: %w", tournamentID, err)
	}
	return &stats, nil
}

func (s *Store) ListActiveTournaments(ctx context.Context) ([]tournamenttypes.Config, error) {
	keys, err := s.kv.Keys(ctx, configPrefix+"*")
	if err != nil {
		return nil, fmt.Errorf("scan tournaments: %w", err)
	}
	var active []tournamenttypes.Config
	for _, key := range keys {
		if !isConfigKey(key) {
			continue
		}
		raw, err := s.kv.Get(ctx, key)
		if err != nil {
			if errors.Is(err, kv.ErrNotFound) {
				continue
			}
			return nil, fmt.Errorf("get tournament record %q: %w", key, err)
		}
		var cfg tournamenttypes.Config
		if err := json.Unmarshal([]byte(raw), &cfg); err != nil {
			s.logger.WarnContext(ctx, "Skipping undecodable tournament record",
				attr.ExtractCorrelationID(ctx),
				attr.String("key", key),
				attr.Error(err),
			)
			continue
		}
		if cfg.Status == tournamenttypes.StatusActive {
			active = append(active, cfg)
		}
	}
	sort.Slice(active, func(i, j int) bool { return active[i].CreatedAt < active[j].CreatedAt })
	return active, nil
}
