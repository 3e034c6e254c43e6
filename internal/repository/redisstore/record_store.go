// Package redisstore implements the record store on top of Redis strings.
package redisstore

import (
	"context"
	"encoding/json"
	"errors"
	"fmt"
	"time"

	"github.com/redis/go-redis/v9"

	"job-copilot-backend/internal/domain"
)

const keyPrefix = "copilot"

type recordStore struct {
	rdb *redis.Client
}

// NewRecordStore creates a record store backed by the given client
func NewRecordStore(rdb *redis.Client) domain.RecordStore {
	return &recordStore{rdb: rdb}
}

// Key returns the redis key holding a user record
func Key(userID, key string) string {
	return fmt.Sprintf("%s:%s:%s", keyPrefix, userID, key)
}

func (s *recordStore) Load(ctx context.Context, userID, key string, dst any) (bool, error) {
	raw, err := s.rdb.Get(ctx, Key(userID, key)).Bytes()
	if errors.Is(err, redis.Nil) {
		return false, nil
	}
	if err != nil {
		return false, fmt.Errorf("redis get %s: %w", key, err)
	}
	return true, json.Unmarshal(raw, dst)
}

func (s *recordStore) Save(ctx context.Context, userID, key string, value any) error {
	return s.SaveFor(ctx, userID, key, value, 0)
}

// SaveFor relies on redis key expiry; an overwrite resets the ttl
func (s *recordStore) SaveFor(ctx context.Context, userID, key string, value any, ttl time.Duration) error {
	raw, err := json.Marshal(value)
	if err != nil {
		return err
	}
	if err := s.rdb.Set(ctx, Key(userID, key), raw, expiration(ttl)).Err(); err != nil {
		return fmt.Errorf("redis set %s: %w", key, err)
	}
	return nil
}

// expiration maps a ttl onto SET's expiration argument, where 0 means none.
// Negative ttls must not pass through: -1 is redis.KeepTTL.
func expiration(ttl time.Duration) time.Duration {
	if ttl <= 0 {
		return 0
	}
	return ttl
}
