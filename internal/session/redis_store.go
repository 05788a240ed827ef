package session

import (
	"context"
	"encoding/json"
	"fmt"
	"time"

	"github.com/google/uuid"
	"github.com/redis/go-redis/v9"
	"github.com/rs/zerolog"

	"github.com/gokatarajesh/bc-quiz/internal/quiz"
)

const (
	defaultTTL     = 2 * time.Hour
	defaultLockTTL = 10 * time.Second
)

// unlockScript deletes the lock only if we still own it.
var unlockScript = redis.NewScript(`
	if redis.call("get", KEYS[1]) == ARGV[1] then
		return redis.call("del", KEYS[1])
	else
		return 0
	end
`)

// RedisStore keeps flow snapshots as JSON blobs with a sliding TTL.
type RedisStore struct {
	redis   *redis.Client
	ttl     time.Duration
	lockTTL time.Duration
	logger  zerolog.Logger
}

var _ Store = (*RedisStore)(nil)

// NewRedisStore creates a store backed by client.
func NewRedisStore(client *redis.Client, ttl time.Duration, logger zerolog.Logger) *RedisStore {
	if ttl <= 0 {
		ttl = defaultTTL
	}
	return &RedisStore{
		redis:   client,
		ttl:     ttl,
		lockTTL: defaultLockTTL,
		logger:  logger.With().Str("component", "session_store").Logger(),
	}
}

func snapshotKey(id uuid.UUID) string {
	return fmt.Sprintf("quiz:session:%s", id.String())
}

func lockKey(id uuid.UUID) string {
	return fmt.Sprintf("quiz:session:lock:%s", id.String())
}

// Save writes the snapshot and refreshes its TTL.
func (s *RedisStore) Save(ctx context.Context, id uuid.UUID, snap quiz.Snapshot) error {
	data, err := json.Marshal(snap)
	if err != nil {
		return fmt.Errorf("marshal snapshot: %w", err)
	}
	if err := s.redis.Set(ctx, snapshotKey(id), data, s.ttl).Err(); err != nil {
		return fmt.Errorf("save snapshot: %w", err)
	}
	return nil
}

// Load reads a snapshot.
func (s *RedisStore) Load(ctx context.Context, id uuid.UUID) (quiz.Snapshot, error) {
	data, err := s.redis.Get(ctx, snapshotKey(id)).Bytes()
	if err == redis.Nil {
		return quiz.Snapshot{}, ErrNotFound
	}
	if err != nil {
		return quiz.Snapshot{}, fmt.Errorf("get snapshot: %w", err)
	}

	var snap quiz.Snapshot
	if err := json.Unmarshal(data, &snap); err != nil {
		s.logger.Warn().Err(err).Str("session_id", id.String()).Msg("corrupted session snapshot")
		return quiz.Snapshot{}, fmt.Errorf("unmarshal snapshot: %w", err)
	}
	return snap, nil
}

// Delete drops the snapshot.
func (s *RedisStore) Delete(ctx context.Context, id uuid.UUID) error {
	return s.redis.Del(ctx, snapshotKey(id)).Err()
}

// Lock acquires a short-lived SET NX lock for one session.
func (s *RedisStore) Lock(ctx context.Context, id uuid.UUID) (func() error, error) {
	key := lockKey(id)
	value := uuid.NewString()

	acquired, err := s.redis.SetNX(ctx, key, value, s.lockTTL).Result()
	if err != nil {
		return nil, fmt.Errorf("acquire lock: %w", err)
	}
	if !acquired {
		return nil, ErrBusy
	}

	unlock := func() error {
		return unlockScript.Run(context.WithoutCancel(ctx), s.redis, []string{key}, value).Err()
	}
	return unlock, nil
}
