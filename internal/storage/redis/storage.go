package redis

import (
	"context"
	"encoding/json"
	"errors"
	"fmt"
	"time"

	"github.com/redis/go-redis/v9"
	"github.com/samber/lo"

	"github.com/C0deSamurai/verdant-ecstasy/internal/model"
	"github.com/C0deSamurai/verdant-ecstasy/internal/storage"
)

// Storage keeps games as JSON strings that expire after GameTTL, indexed by a
// sorted set so listings come back most recently updated first.
type Storage struct {
	client *redis.Client
	keys   keyspace
	ttl    time.Duration
}

var _ storage.Storage = (*Storage)(nil)

// New connects to the server at cfg.URL and checks it answers
func New(cfg Config) (*Storage, error) {
	opts, err := redis.ParseURL(cfg.URL)
	if err != nil {
		return nil, fmt.Errorf("parsing redis url: %w", err)
	}
	opts.PoolSize = cfg.PoolSize

	timeout := cfg.PingTimeout
	if timeout <= 0 {
		timeout = DefaultConfig().PingTimeout
	}
	client := redis.NewClient(opts)
	ctx, cancel := context.WithTimeout(context.Background(), timeout)
	defer cancel()
	if err := client.Ping(ctx).Err(); err != nil {
		_ = client.Close()
		return nil, fmt.Errorf("connecting to redis at %s: %w", opts.Addr, err)
	}
	return NewWithClient(client, cfg), nil
}

// NewWithClient wraps an existing client
func NewWithClient(client *redis.Client, cfg Config) *Storage {
	return &Storage{
		client: client,
		keys:   keyspace(cfg.Prefix),
		ttl:    cfg.GameTTL,
	}
}

// Close releases the connection pool
func (s *Storage) Close() error {
	return s.client.Close()
}

func (s *Storage) SaveGame(ctx context.Context, game *model.Game) error {
	data, err := json.Marshal(game)
	if err != nil {
		return fmt.Errorf("encoding game %s: %w", game.ID, err)
	}

	_, err = s.client.TxPipelined(ctx, func(pipe redis.Pipeliner) error {
		pipe.Set(ctx, s.keys.game(game.ID), data, s.ttl)
		pipe.ZAdd(ctx, s.keys.gameIndex(), redis.Z{
			Score:  float64(game.UpdatedAt.UnixMilli()),
			Member: string(game.ID),
		})
		return nil
	})
	if err != nil {
		return fmt.Errorf("saving game %s: %w", game.ID, err)
	}
	return nil
}

func (s *Storage) GetGame(ctx context.Context, id model.GameID) (*model.Game, error) {
	data, err := s.client.Get(ctx, s.keys.game(id)).Bytes()
	if errors.Is(err, redis.Nil) {
		return nil, model.ErrGameNotFound
	}
	if err != nil {
		return nil, fmt.Errorf("loading game %s: %w", id, err)
	}
	return decodeGame(id, data)
}

func (s *Storage) DeleteGame(ctx context.Context, id model.GameID) error {
	_, err := s.client.TxPipelined(ctx, func(pipe redis.Pipeliner) error {
		pipe.Del(ctx, s.keys.game(id))
		pipe.ZRem(ctx, s.keys.gameIndex(), string(id))
		return nil
	})
	if err != nil {
		return fmt.Errorf("deleting game %s: %w", id, err)
	}
	return nil
}

// ListGames returns every live game, newest first. Index entries whose game
// has expired are pruned on the way.
func (s *Storage) ListGames(ctx context.Context) ([]*model.Game, error) {
	ids, err := s.client.ZRevRange(ctx, s.keys.gameIndex(), 0, -1).Result()
	if err != nil {
		return nil, fmt.Errorf("reading game index: %w", err)
	}
	if len(ids) == 0 {
		return []*model.Game{}, nil
	}

	keys := lo.Map(ids, func(id string, _ int) string { return s.keys.game(model.GameID(id)) })
	values, err := s.client.MGet(ctx, keys...).Result()
	if err != nil {
		return nil, fmt.Errorf("loading games: %w", err)
	}

	games := make([]*model.Game, 0, len(values))
	var expired []any
	for i, v := range values {
		raw, ok := v.(string)
		if !ok {
			expired = append(expired, ids[i])
			continue
		}
		game, err := decodeGame(model.GameID(ids[i]), []byte(raw))
		if err != nil {
			return nil, err
		}
		games = append(games, game)
	}

	if len(expired) > 0 {
		if err := s.client.ZRem(ctx, s.keys.gameIndex(), expired...).Err(); err != nil {
			return nil, fmt.Errorf("pruning game index: %w", err)
		}
	}
	return games, nil
}

func decodeGame(id model.GameID, data []byte) (*model.Game, error) {
	var game model.Game
	if err := json.Unmarshal(data, &game); err != nil {
		return nil, fmt.Errorf("decoding game %s: %w", id, err)
	}
	return &game, nil
}

// GetDictionaryWords returns the stored words in no particular order
func (s *Storage) GetDictionaryWords(ctx context.Context) ([]string, error) {
	words, err := s.client.SMembers(ctx, s.keys.words()).Result()
	if err != nil {
		return nil, fmt.Errorf("loading words: %w", err)
	}
	if len(words) == 0 {
		return nil, model.ErrDictionaryNotLoaded
	}
	return words, nil
}

// SaveDictionaryWords replaces the stored words. Words never expire.
func (s *Storage) SaveDictionaryWords(ctx context.Context, words []string) error {
	_, err := s.client.TxPipelined(ctx, func(pipe redis.Pipeliner) error {
		pipe.Del(ctx, s.keys.words())
		if len(words) > 0 {
			pipe.SAdd(ctx, s.keys.words(), lo.ToAnySlice(words)...)
		}
		return nil
	})
	if err != nil {
		return fmt.Errorf("saving %d words: %w", len(words), err)
	}
	return nil
}
