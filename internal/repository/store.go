// Package repository selects the record store backing every per-user collection.
package repository

import (
	"context"
	"fmt"

	"github.com/jackc/pgx/v5/pgxpool"

	"job-copilot-backend/config"
	"job-copilot-backend/internal/domain"
	"job-copilot-backend/internal/repository/memory"
	"job-copilot-backend/internal/repository/postgres"
	"job-copilot-backend/internal/repository/redisstore"
	"job-copilot-backend/pkg/database"
	"job-copilot-backend/pkg/logger"
	redispkg "job-copilot-backend/pkg/redis"
)

// Stores is the opened persistence layer. Pool is nil unless the postgres
// driver is selected.
type Stores struct {
	Records  domain.RecordStore
	Feedback domain.FeedbackRepository
	Pool     *pgxpool.Pool
}

// Close releases the database pool, if any
func (s *Stores) Close() {
	if s.Pool != nil {
		s.Pool.Close()
	}
}

// Open connects the store selected by cfg.StoreDriver. Redis must already be
// initialized when the redis driver is selected.
func Open(ctx context.Context, cfg *config.Config) (*Stores, error) {
	s := &Stores{}

	switch cfg.StoreDriver {
	case config.StoreRedis:
		if !redispkg.IsAvailable() {
			return nil, fmt.Errorf("store driver %q requires a reachable REDIS_URL", cfg.StoreDriver)
		}
		s.Records = redisstore.NewRecordStore(redispkg.Client())
	case config.StorePostgres:
		pool, err := database.NewPostgresConnection(cfg.DBUrl)
		if err != nil {
			return nil, fmt.Errorf("connect postgres: %w", err)
		}
		if err := database.Migrate(ctx, pool); err != nil {
			pool.Close()
			return nil, fmt.Errorf("migrate postgres: %w", err)
		}
		s.Pool = pool
		s.Records = postgres.NewRecordStore(pool)
	default:
		s.Records = memory.NewRecordStore()
	}

	if s.Pool != nil && cfg.FeedbackLogToDB {
		s.Feedback = postgres.NewFeedbackRepository(s.Pool)
	} else {
		s.Feedback = memory.NewFeedbackRepository()
	}

	logger.Log.Info("Record store ready", "driver", cfg.StoreDriver, "feedback_db", s.Pool != nil && cfg.FeedbackLogToDB)
	return s, nil
}
