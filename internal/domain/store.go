package domain

import (
	"context"
	"time"
)

// RecordStore is the per-user key-value persistence boundary. Values are
// JSON-encoded by the implementation.
type RecordStore interface {
	// Load decodes the record into dst. found is false when the key is absent
	// or has expired.
	Load(ctx context.Context, userID, key string, dst any) (found bool, err error)
	// Save stores the record with no expiry
	Save(ctx context.Context, userID, key string, value any) error
	// SaveFor stores the record so it disappears after ttl. A ttl <= 0 behaves like Save.
	SaveFor(ctx context.Context, userID, key string, value any, ttl time.Duration) error
}
