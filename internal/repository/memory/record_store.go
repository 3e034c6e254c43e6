// Package memory holds process-local implementations of the repositories.
// Data is lost on restart.
package memory

import (
	"context"
	"encoding/json"
	"sync"
	"time"

	"job-copilot-backend/internal/domain"
)

type recordKey struct {
	userID string
	key    string
}

type entry struct {
	raw       []byte
	expiresAt time.Time // zero means never
}

func (e entry) expired(now time.Time) bool {
	return !e.expiresAt.IsZero() && !now.Before(e.expiresAt)
}

type recordStore struct {
	mu      sync.RWMutex
	records map[recordKey]entry
	now     func() time.Time
}

// NewRecordStore creates an in-memory record store
func NewRecordStore() domain.RecordStore {
	return &recordStore{records: make(map[recordKey]entry), now: time.Now}
}

func (s *recordStore) Load(ctx context.Context, userID, key string, dst any) (bool, error) {
	k := recordKey{userID, key}
	s.mu.RLock()
	e, ok := s.records[k]
	s.mu.RUnlock()
	if !ok {
		return false, nil
	}
	if e.expired(s.now()) {
		s.mu.Lock()
		if cur, ok := s.records[k]; ok && cur.expired(s.now()) {
			delete(s.records, k)
		}
		s.mu.Unlock()
		return false, nil
	}
	return true, json.Unmarshal(e.raw, dst)
}

// Save stores the JSON encoding so later mutations of value are not observed
func (s *recordStore) Save(ctx context.Context, userID, key string, value any) error {
	return s.SaveFor(ctx, userID, key, value, 0)
}

func (s *recordStore) SaveFor(ctx context.Context, userID, key string, value any, ttl time.Duration) error {
	raw, err := json.Marshal(value)
	if err != nil {
		return err
	}
	e := entry{raw: raw}
	if ttl > 0 {
		e.expiresAt = s.now().Add(ttl)
	}
	s.mu.Lock()
	s.records[recordKey{userID, key}] = e
	s.mu.Unlock()
	return nil
}
