// Package session keeps the per-visitor storage record: the logged-in user
// and the cookie that names the visitor.
package session

import (
	"context"
	"time"

	"movieflix/internal/model"
	"movieflix/internal/repository"

	"github.com/redis/go-redis/v9"
	"github.com/rs/zerolog/log"
)

const (
	// KeyPrefix is the Redis prefix of every visitor storage record
	KeyPrefix = "movieflix:storage:"
	// UserField holds the JSON-encoded identity object
	UserField = "user"
)

// Store reads and writes the "user" entry of a visitor's storage record
type Store struct {
	records *repository.Store
}

// NewStore creates a Store on a shared Redis client
func NewStore(client *redis.Client, ttl time.Duration) *Store {
	return &Store{records: repository.NewStore(client, KeyPrefix, ttl)}
}

// Load returns the stored user, or nil when the visitor is logged out.
// A record that cannot be decoded is treated as logged out.
func (s *Store) Load(ctx context.Context, visitorID string) (*model.User, error) {
	var user model.User
	err := s.records.Get(ctx, visitorID, UserField, &user)
	if err == nil {
		return &user, nil
	}
	if repository.IsNotFound(err) {
		return nil, nil
	}
	if ok, existsErr := s.records.Exists(ctx, visitorID); existsErr == nil && ok {
		// 数据损坏：记录存在但无法解析
		log.Warn().Err(err).Str("visitor", visitorID).Msg("⚠️ Discarding unreadable stored user")
		return nil, nil
	}
	return nil, err
}

// Save persists the user for the visitor
func (s *Store) Save(ctx context.Context, visitorID string, user *model.User) error {
	return s.records.Set(ctx, visitorID, UserField, user)
}

// Clear wipes the whole storage record of the visitor
func (s *Store) Clear(ctx context.Context, visitorID string) error {
	return s.records.Delete(ctx, visitorID)
}
