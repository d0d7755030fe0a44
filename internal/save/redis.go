package save

import (
	"context"
	"errors"
	"fmt"

	"github.com/redis/go-redis/v9"
	"go.uber.org/zap"

	"chosenoffset.com/quizfield/internal/logging"
)

// RedisStore keeps the record as JSON under a single Redis key.
type RedisStore struct {
	client *redis.Client
	key    string
	logger *zap.Logger
}

// NewRedisStore connects lazily to addr.
func NewRedisStore(addr, key string, logger *zap.Logger) *RedisStore {
	return &RedisStore{
		client: redis.NewClient(&redis.Options{Addr: addr}),
		key:    key,
		logger: logging.OrNop(logger),
	}
}

// Save overwrites the key.
func (s *RedisStore) Save(ctx context.Context, r Record) error {
	data, err := encode(r)
	if err != nil {
		return err
	}
	if err := s.client.Set(ctx, s.key, data, 0).Err(); err != nil {
		return fmt.Errorf("redis set failed: %w", err)
	}
	s.logger.Debug("redis save written", zap.String("key", s.key), zap.Int("bytes", len(data)))
	return nil
}

// Load reads the key. A missing key means no data.
func (s *RedisStore) Load(ctx context.Context) (Record, bool, error) {
	data, err := s.client.Get(ctx, s.key).Bytes()
	if errors.Is(err, redis.Nil) {
		s.logger.Debug("redis save not found", zap.String("key", s.key))
		return Record{}, false, nil
	}
	if err != nil {
		return Record{}, false, fmt.Errorf("redis get failed: %w", err)
	}
	r, err := decode(data)
	if err != nil {
		return Record{}, false, err
	}
	return r, true, nil
}

// Close releases the connection pool.
func (s *RedisStore) Close() error {
	return s.client.Close()
}
