package record

import (
	"context"
	"time"

	"job-copilot-backend/internal/domain"
)

type sessionRepo struct {
	store domain.RecordStore
	ttl   time.Duration
}

// NewAutofillSessionRepository stores each session under autofillSession:<id>.
// Sessions expire ttl after their last save; ttl <= 0 keeps them forever.
func NewAutofillSessionRepository(store domain.RecordStore, ttl time.Duration) domain.AutofillSessionRepository {
	return &sessionRepo{store: store, ttl: ttl}
}

func (r *sessionRepo) Get(ctx context.Context, userID, sessionID string) (*domain.AutofillSession, error) {
	var s domain.AutofillSession
	found, err := r.store.Load(ctx, userID, domain.RecordAutofillSessionNS+sessionID, &s)
	if err != nil {
		return nil, err
	}
	if !found {
		return nil, domain.ErrSessionNotFound
	}
	return &s, nil
}

func (r *sessionRepo) Save(ctx context.Context, userID string, session *domain.AutofillSession) error {
	return r.store.SaveFor(ctx, userID, domain.RecordAutofillSessionNS+session.ID, session, r.ttl)
}
