package game

import (
	"context"
	"encoding/json"
	"errors"
	"fmt"
	"net/url"
	"strconv"
	"strings"
	"time"

	"github.com/redis/go-redis/v9"

	"github.com/hoho-hoi/othello/internal/othello"
)

const (
	keyCurrent = "othello:current"
	keyStaged  = "othello:import:staged"
)

// RedisStore keeps the current game under a fixed key with no expiry and the
// staged import under a TTL so abandoned previews clean themselves up.
type RedisStore struct {
	rdb       *redis.Client
	stagedTTL time.Duration
}

// NewRedisStore connects to the given redis URL and verifies it with a ping.
func NewRedisStore(redisURL string, stagedTTL time.Duration) (*RedisStore, error) {
	if strings.TrimSpace(redisURL) == "" {
		return nil, fmt.Errorf("REDIS_URL required for redis store")
	}
	opts, err := parseRedisURL(redisURL)
	if err != nil {
		return nil, err
	}
	rdb := redis.NewClient(opts)
	if err := rdb.Ping(context.Background()).Err(); err != nil {
		return nil, fmt.Errorf("redis ping: %w", err)
	}
	if stagedTTL <= 0 {
		stagedTTL = time.Hour
	}
	return &RedisStore{rdb: rdb, stagedTTL: stagedTTL}, nil
}

func (s *RedisStore) Close() error {
	if s == nil || s.rdb == nil {
		return nil
	}
	return s.rdb.Close()
}

func (s *RedisStore) Load(ctx context.Context) (*StoredGame, error) {
	raw, err := s.rdb.Get(ctx, keyCurrent).Bytes()
	if err == redis.Nil {
		return nil, nil
	}
	if err != nil {
		return nil, err
	}
	var g StoredGame
	if err := json.Unmarshal(raw, &g); err != nil {
		return nil, fmt.Errorf("unmarshal current game: %w", err)
	}
	return &g, nil
}

func (s *RedisStore) Replace(ctx context.Context, g *StoredGame) error {
	raw, err := json.Marshal(g)
	if err != nil {
		return fmt.Errorf("marshal current game: %w", err)
	}
	return s.rdb.Set(ctx, keyCurrent, raw, 0).Err()
}

func (s *RedisStore) Append(ctx context.Context, expectedLen int, mv othello.Move, now time.Time) (*StoredGame, error) {
	var out *StoredGame
	err := s.rdb.Watch(ctx, func(tx *redis.Tx) error {
		raw, err := tx.Get(ctx, keyCurrent).Bytes()
		if err == redis.Nil {
			return fmt.Errorf("current game not found")
		}
		if err != nil {
			return err
		}
		var cur StoredGame
		if err := json.Unmarshal(raw, &cur); err != nil {
			return fmt.Errorf("unmarshal current game: %w", err)
		}
		if len(cur.Moves) != expectedLen {
			return redis.TxFailedErr
		}
		cur.Moves = append(cur.Moves, mv)
		cur.UpdatedAt = now

		pipe := tx.TxPipeline()
		newRaw, err := json.Marshal(&cur)
		if err != nil {
			return err
		}
		pipe.Set(ctx, keyCurrent, newRaw, 0)
		if _, err := pipe.Exec(ctx); err != nil {
			return err
		}
		out = &cur
		return nil
	}, keyCurrent)
	if errors.Is(err, redis.TxFailedErr) {
		return nil, ErrConflict
	}
	if err != nil {
		return nil, err
	}
	return out, nil
}

func (s *RedisStore) SaveStaged(ctx context.Context, moves []othello.Move) error {
	raw, err := json.Marshal(moves)
	if err != nil {
		return fmt.Errorf("marshal staged log: %w", err)
	}
	return s.rdb.Set(ctx, keyStaged, raw, s.stagedTTL).Err()
}

func (s *RedisStore) LoadStaged(ctx context.Context) ([]othello.Move, error) {
	raw, err := s.rdb.Get(ctx, keyStaged).Bytes()
	if err == redis.Nil {
		return nil, ErrNoStagedImport
	}
	if err != nil {
		return nil, err
	}
	var moves []othello.Move
	if err := json.Unmarshal(raw, &moves); err != nil {
		return nil, fmt.Errorf("unmarshal staged log: %w", err)
	}
	return moves, nil
}

func (s *RedisStore) ClearStaged(ctx context.Context) error {
	return s.rdb.Del(ctx, keyStaged).Err()
}

func parseRedisURL(raw string) (*redis.Options, error) {
	u, err := url.Parse(raw)
	if err != nil {
		return nil, err
	}
	if u.Scheme != "redis" && u.Scheme != "rediss" {
		return nil, fmt.Errorf("unsupported scheme: %s", u.Scheme)
	}
	db := 0
	if p := strings.TrimPrefix(u.Path, "/"); p != "" {
		if n, err := strconv.Atoi(p); err == nil {
			db = n
		}
	}
	pass, _ := u.User.Password()
	return &redis.Options{Addr: u.Host, Password: pass, DB: db}, nil
}
