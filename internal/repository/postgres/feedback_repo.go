package postgres

import (
	"context"

	"github.com/jackc/pgx/v5/pgxpool"

	"job-copilot-backend/internal/domain"
)

type feedbackRepo struct {
	db *pgxpool.Pool
}

// NewFeedbackRepository creates a feedback repository on the content_feedback table
func NewFeedbackRepository(db *pgxpool.Pool) domain.FeedbackRepository {
	return &feedbackRepo{db: db}
}

func (r *feedbackRepo) Create(ctx context.Context, fb *domain.Feedback) error {
	query := `
		INSERT INTO content_feedback (id, user_id, content_id, verdict, comment, created_at)
		VALUES ($1, $2, $3, $4, $5, $6)`

	_, err := r.db.Exec(ctx, query,
		fb.ID,
		fb.UserID,
		fb.ContentID,
		string(fb.Verdict),
		fb.Comment,
		fb.CreatedAt,
	)
	return err
}
