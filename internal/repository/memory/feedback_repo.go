package memory

import (
	"context"
	"sync"

	"job-copilot-backend/internal/domain"
)

// FeedbackRepo keeps feedback records in memory
type FeedbackRepo struct {
	mu      sync.Mutex
	records []domain.Feedback
}

// NewFeedbackRepository creates an in-memory feedback repository
func NewFeedbackRepository() *FeedbackRepo {
	return &FeedbackRepo{}
}

func (r *FeedbackRepo) Create(ctx context.Context, fb *domain.Feedback) error {
	r.mu.Lock()
	defer r.mu.Unlock()
	r.records = append(r.records, *fb)
	return nil
}

// All returns a copy of every stored record, oldest first
func (r *FeedbackRepo) All() []domain.Feedback {
	r.mu.Lock()
	defer r.mu.Unlock()
	return append([]domain.Feedback(nil), r.records...)
}
