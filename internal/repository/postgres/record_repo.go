package postgres

import (
	"context"
	"encoding/json"
	"errors"
	"fmt"
	"time"

	"github.com/jackc/pgx/v5"
	"github.com/jackc/pgx/v5/pgxpool"

	"job-copilot-backend/internal/domain"
)

type recordRepo struct {
	db  *pgxpool.Pool
	now func() time.Time
}

// NewRecordStore creates a record store on the user_records table
func NewRecordStore(db *pgxpool.Pool) domain.RecordStore {
	return &recordRepo{db: db, now: time.Now}
}

func (r *recordRepo) Load(ctx context.Context, userID, key string, dst any) (bool, error) {
	query := `
		SELECT payload FROM user_records
		WHERE user_id = $1 AND record_key = $2
		  AND (expires_at IS NULL OR expires_at > NOW())`

	var payload []byte
	err := r.db.QueryRow(ctx, query, userID, key).Scan(&payload)
	if err != nil {
		if errors.Is(err, pgx.ErrNoRows) {
			return false, nil
		}
		return false, fmt.Errorf("load record %s: %w", key, err)
	}
	return true, json.Unmarshal(payload, dst)
}

func (r *recordRepo) Save(ctx context.Context, userID, key string, value any) error {
	return r.SaveFor(ctx, userID, key, value, 0)
}

// SaveFor upserts the record with its expiry and purges the user's expired
// rows in the same transaction.
func (r *recordRepo) SaveFor(ctx context.Context, userID, key string, value any, ttl time.Duration) error {
	payload, err := json.Marshal(value)
	if err != nil {
		return err
	}

	tx, err := r.db.Begin(ctx)
	if err != nil {
		return fmt.Errorf("save record %s: %w", key, err)
	}
	defer tx.Rollback(ctx)

	upsert := `
		INSERT INTO user_records (user_id, record_key, payload, updated_at, expires_at)
		VALUES ($1, $2, $3, NOW(), $4)
		ON CONFLICT (user_id, record_key)
		DO UPDATE SET payload = EXCLUDED.payload, updated_at = NOW(), expires_at = EXCLUDED.expires_at`

	if _, err := tx.Exec(ctx, upsert, userID, key, payload, expiresAt(r.now(), ttl)); err != nil {
		return fmt.Errorf("save record %s: %w", key, err)
	}

	if ttl > 0 {
		purge := `DELETE FROM user_records WHERE user_id = $1 AND expires_at <= NOW()`
		if _, err := tx.Exec(ctx, purge, userID); err != nil {
			return fmt.Errorf("purge expired records: %w", err)
		}
	}

	return tx.Commit(ctx)
}

// expiresAt is the expires_at column value; nil stores NULL
func expiresAt(now time.Time, ttl time.Duration) *time.Time {
	if ttl <= 0 {
		return nil
	}
	t := now.Add(ttl).UTC()
	return &t
}
