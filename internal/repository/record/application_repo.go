package record

import (
	"context"
	"fmt"

	"job-copilot-backend/internal/domain"
	"job-copilot-backend/pkg/logger"
)

type applicationRepo struct {
	store domain.RecordStore
}

// NewApplicationRepository keeps the collection under myApplications and
// mirrors every write to the legacy jobApplications key.
func NewApplicationRepository(store domain.RecordStore) domain.ApplicationRepository {
	return &applicationRepo{store: store}
}

// List reads the authoritative key. When only the legacy key exists its
// content is migrated forward. The two copies are never merged.
func (r *applicationRepo) List(ctx context.Context, userID string) ([]domain.Application, error) {
	var apps []domain.Application
	found, err := r.store.Load(ctx, userID, domain.RecordMyApplications, &apps)
	if err != nil {
		return nil, err
	}
	if found {
		return nonNil(apps), nil
	}

	found, err = r.store.Load(ctx, userID, domain.RecordJobApplications, &apps)
	if err != nil {
		return nil, err
	}
	if !found {
		return []domain.Application{}, nil
	}

	if err := r.store.Save(ctx, userID, domain.RecordMyApplications, nonNil(apps)); err != nil {
		return nil, fmt.Errorf("migrate legacy applications: %w", err)
	}
	logger.Log.Info("Migrated legacy application records",
		"user_id", userID,
		"count", len(apps),
	)
	return nonNil(apps), nil
}

func (r *applicationRepo) ReplaceAll(ctx context.Context, userID string, apps []domain.Application) error {
	apps = nonNil(apps)
	if err := r.store.Save(ctx, userID, domain.RecordMyApplications, apps); err != nil {
		return err
	}
	return r.store.Save(ctx, userID, domain.RecordJobApplications, apps)
}

// nonNil keeps empty collections encoded as [] rather than null
func nonNil(apps []domain.Application) []domain.Application {
	if apps == nil {
		return []domain.Application{}
	}
	return apps
}
