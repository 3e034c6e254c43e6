package usecase

import (
	"context"
	"time"

	"github.com/go-playground/validator/v10"
	"github.com/google/uuid"

	"job-copilot-backend/internal/domain"
	"job-copilot-backend/pkg/logger"
)

// feedbackPersistTimeout bounds the detached write of one feedback record
const feedbackPersistTimeout = 5 * time.Second

type feedbackUsecase struct {
	repo     domain.FeedbackRepository
	validate *validator.Validate
	now      func() time.Time
}

// NewFeedbackUsecase creates the feedback sink. repo may be nil, in which
// case feedback is only logged.
func NewFeedbackUsecase(repo domain.FeedbackRepository, validate *validator.Validate) domain.FeedbackSink {
	return &feedbackUsecase{
		repo:     repo,
		validate: validate,
		now:      time.Now,
	}
}

// Submit acknowledges at once. Recording happens in the background and its
// failures never reach the caller.
func (uc *feedbackUsecase) Submit(ctx context.Context, userID, contentID string, verdict domain.Verdict, comment string) (*domain.FeedbackAck, error) {
	fb := &domain.Feedback{
		ID:        uuid.NewString(),
		UserID:    userID,
		ContentID: contentID,
		Verdict:   verdict,
		Comment:   comment,
		CreatedAt: uc.now().UTC(),
	}
	if err := uc.validate.Struct(fb); err != nil {
		return nil, invalid(err)
	}

	go uc.record(context.WithoutCancel(ctx), fb)

	return &domain.FeedbackAck{Success: true, ID: contentID, Type: verdict}, nil
}

func (uc *feedbackUsecase) record(ctx context.Context, fb *domain.Feedback) {
	defer func() {
		if r := recover(); r != nil {
			logger.Log.Error("Feedback recording panicked", "content_id", fb.ContentID, "panic", r)
		}
	}()

	logger.Log.Info("Feedback received",
		"content_id", fb.ContentID,
		"type", fb.Verdict,
		"comment", fb.Comment,
		"user_id", fb.UserID,
	)
	if uc.repo == nil {
		return
	}

	ctx, cancel := context.WithTimeout(ctx, feedbackPersistTimeout)
	defer cancel()
	if err := uc.repo.Create(ctx, fb); err != nil {
		logger.Log.Warn("Failed to persist feedback",
			"content_id", fb.ContentID,
			"error", err,
		)
	}
}
