package usecase

import (
	"context"
	"errors"
	"fmt"
	"strings"

	"github.com/go-playground/validator/v10"

	"job-copilot-backend/internal/domain"
	"job-copilot-backend/pkg/apperror"
)

type answerUsecase struct {
	profileRepo domain.ProfileRepository
	generator   domain.AnswerGenerator
	questions   []string
	validate    *validator.Validate
}

// NewAnswerUsecase creates a new answer usecase. questions are the suggestions
// returned by CommonQuestions.
func NewAnswerUsecase(
	profileRepo domain.ProfileRepository,
	generator domain.AnswerGenerator,
	questions []string,
	validate *validator.Validate,
) domain.AnswerUsecase {
	return &answerUsecase{
		profileRepo: profileRepo,
		generator:   generator,
		questions:   questions,
		validate:    validate,
	}
}

// Generate answers with an empty profile when the user has none yet
func (uc *answerUsecase) Generate(ctx context.Context, userID string, req domain.GenerateAnswerRequest) (*domain.Answer, error) {
	req.Question = strings.TrimSpace(req.Question)
	if err := uc.validate.Struct(req); err != nil {
		return nil, invalid(err)
	}

	profile, err := uc.profileRepo.Get(ctx, userID)
	if err != nil {
		if !errors.Is(err, domain.ErrNotFound) {
			return nil, apperror.Internal(err)
		}
		profile = &domain.Profile{}
	}

	answer, err := uc.generator.Generate(ctx, prompt(req), profile)
	if err != nil {
		return nil, upstream("Answer generation failed", err)
	}
	if answer == nil || strings.TrimSpace(answer.Text) == "" {
		return nil, apperror.Upstream("Answer generation returned no text", nil)
	}
	if answer.WordCount == 0 {
		answer.WordCount = len(strings.Fields(answer.Text))
	}
	return answer, nil
}

// prompt scopes the question to the job when both company and role are known
func prompt(req domain.GenerateAnswerRequest) string {
	company := strings.TrimSpace(req.Company)
	role := strings.TrimSpace(req.Role)
	if company == "" || role == "" {
		return req.Question
	}
	return fmt.Sprintf("For a %s position at %s: %s", role, company, req.Question)
}

func (uc *answerUsecase) CommonQuestions() []string {
	return append([]string(nil), uc.questions...)
}
