package domain

import "context"

// Answer is the generated response to an application question
type Answer struct {
	Text       string   `json:"text"`
	Confidence float64  `json:"confidence"`
	Sources    []string `json:"sources"`
	WordCount  int      `json:"wordCount"`
}

// GenerateAnswerRequest is the payload for answer generation.
// Company and Role are optional; when both are set the question is scoped to the job.
type GenerateAnswerRequest struct {
	Question string `json:"question" validate:"required,max=1000"`
	Company  string `json:"company" validate:"max=120"`
	Role     string `json:"role" validate:"max=160"`
}

// AnswerGenerator is the opaque AI boundary
type AnswerGenerator interface {
	Generate(ctx context.Context, question string, profile *Profile) (*Answer, error)
}

// AnswerUsecase defines business logic for answer generation
type AnswerUsecase interface {
	Generate(ctx context.Context, userID string, req GenerateAnswerRequest) (*Answer, error)
	CommonQuestions() []string
}
