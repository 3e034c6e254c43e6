// Package record implements the domain repositories on top of a per-user
// RecordStore, so every backend (memory, redis, postgres) serves them alike.
package record

import (
	"context"

	"job-copilot-backend/internal/domain"
)

type profileRepo struct {
	store domain.RecordStore
}

// NewProfileRepository stores the profile under the userProfile key
func NewProfileRepository(store domain.RecordStore) domain.ProfileRepository {
	return &profileRepo{store: store}
}

// Get returns domain.ErrNotFound when the user has no profile yet
func (r *profileRepo) Get(ctx context.Context, userID string) (*domain.Profile, error) {
	var p domain.Profile
	found, err := r.store.Load(ctx, userID, domain.RecordUserProfile, &p)
	if err != nil {
		return nil, err
	}
	if !found {
		return nil, domain.ErrNotFound
	}
	return &p, nil
}

func (r *profileRepo) Save(ctx context.Context, userID string, profile *domain.Profile) error {
	return r.store.Save(ctx, userID, domain.RecordUserProfile, profile)
}
