package repository

import (
	"context"
	"encoding/json"
	"errors"
	"fmt"
	"time"

	"github.com/redis/go-redis/v9"
	"github.com/rs/zerolog/log"
)

// ErrNotFound is returned when a key or field does not exist
var ErrNotFound = errors.New("not found")

// IsNotFound checks if an error is a missing key or field
func IsNotFound(err error) bool {
	return errors.Is(err, ErrNotFound)
}

// Store provides JSON values in Redis hashes: one hash per record, one field per value
type Store struct {
	client *redis.Client
	prefix string
	ttl    time.Duration
}

// Connect parses redisURL and verifies the connection
func Connect(redisURL string) (*redis.Client, error) {
	opt, err := redis.ParseURL(redisURL)
	if err != nil {
		return nil, fmt.Errorf("failed to parse redis URL: %w", err)
	}

	client := redis.NewClient(opt)

	// Test connection
	ctx, cancel := context.WithTimeout(context.Background(), 5*time.Second)
	defer cancel()

	if err := client.Ping(ctx).Err(); err != nil {
		client.Close()
		return nil, fmt.Errorf("failed to connect to redis: %w", err)
	}

	// 只记录地址，不记录完整 URL（可能包含密码）
	log.Info().Str("addr", opt.Addr).Msg("✅ Redis connected")
	return client, nil
}

// NewStore creates a Store whose records live under prefix.
// A zero ttl keeps records until they are deleted.
func NewStore(client *redis.Client, prefix string, ttl time.Duration) *Store {
	return &Store{
		client: client,
		prefix: prefix,
		ttl:    ttl,
	}
}

func (s *Store) key(record string) string {
	return s.prefix + record
}

// Get decodes the field of a record into dest
func (s *Store) Get(ctx context.Context, record, field string, dest interface{}) error {
	val, err := s.client.HGet(ctx, s.key(record), field).Result()
	if err != nil {
		if errors.Is(err, redis.Nil) {
			return ErrNotFound
		}
		return fmt.Errorf("redis hget error: %w", err)
	}

	if err := json.Unmarshal([]byte(val), dest); err != nil {
		return fmt.Errorf("failed to unmarshal stored value: %w", err)
	}
	return nil
}

// Set stores value as JSON in the field of a record and refreshes the record TTL
func (s *Store) Set(ctx context.Context, record, field string, value interface{}) error {
	data, err := json.Marshal(value)
	if err != nil {
		return fmt.Errorf("failed to marshal value: %w", err)
	}

	key := s.key(record)
	pipe := s.client.TxPipeline()
	pipe.HSet(ctx, key, field, data)
	if s.ttl > 0 {
		pipe.Expire(ctx, key, s.ttl)
	}
	if _, err := pipe.Exec(ctx); err != nil {
		return fmt.Errorf("redis hset error: %w", err)
	}
	return nil
}

// DeleteField removes one field of a record
func (s *Store) DeleteField(ctx context.Context, record, field string) error {
	if err := s.client.HDel(ctx, s.key(record), field).Err(); err != nil {
		return fmt.Errorf("redis hdel error: %w", err)
	}
	return nil
}

// Delete removes a whole record
func (s *Store) Delete(ctx context.Context, record string) error {
	if err := s.client.Del(ctx, s.key(record)).Err(); err != nil {
		return fmt.Errorf("redis del error: %w", err)
	}
	return nil
}

// Exists checks if a record exists
func (s *Store) Exists(ctx context.Context, record string) (bool, error) {
	result, err := s.client.Exists(ctx, s.key(record)).Result()
	if err != nil {
		return false, fmt.Errorf("redis exists error: %w", err)
	}
	return result == 1, nil
}

// TTL returns the remaining time to live of a record
func (s *Store) TTL(ctx context.Context, record string) (time.Duration, error) {
	ttl, err := s.client.TTL(ctx, s.key(record)).Result()
	if err != nil {
		return 0, fmt.Errorf("redis ttl error: %w", err)
	}
	return ttl, nil
}
