package domain

import (
	"context"
	"time"
)

// Verdict is a human judgment on generated content
type Verdict string

const (
	VerdictUp     Verdict = "up"
	VerdictDown   Verdict = "down"
	VerdictEdited Verdict = "edited"
)

// Feedback is one recorded verdict keyed by content id
type Feedback struct {
	ID        string    `json:"id"`
	UserID    string    `json:"user_id"`
	ContentID string    `json:"content_id" validate:"required,max=200"`
	Verdict   Verdict   `json:"verdict" validate:"required,oneof=up down edited"`
	Comment   string    `json:"comment,omitempty" validate:"max=2000"`
	CreatedAt time.Time `json:"created_at"`
}

// FeedbackAck is returned to the caller immediately, whatever happens downstream
type FeedbackAck struct {
	Success bool    `json:"success"`
	ID      string  `json:"id"`
	Type    Verdict `json:"type"`
}

// FeedbackRepository persists feedback records
type FeedbackRepository interface {
	Create(ctx context.Context, fb *Feedback) error
}

// FeedbackSink records verdicts fire-and-forget
type FeedbackSink interface {
	Submit(ctx context.Context, userID, contentID string, verdict Verdict, comment string) (*FeedbackAck, error)
}
