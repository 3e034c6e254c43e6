package usecase

import (
	"context"
	"errors"
	"strings"

	"github.com/go-playground/validator/v10"

	"job-copilot-backend/internal/domain"
	"job-copilot-backend/pkg/apperror"
	"job-copilot-backend/pkg/logger"
)

type resumeUsecase struct {
	profileRepo domain.ProfileRepository
	analyzer    domain.ResumeAnalyzer
	validate    *validator.Validate
}

func NewResumeUsecase(
	profileRepo domain.ProfileRepository,
	analyzer domain.ResumeAnalyzer,
	validate *validator.Validate,
) domain.ResumeUsecase {
	return &resumeUsecase{
		profileRepo: profileRepo,
		analyzer:    analyzer,
		validate:    validate,
	}
}

// Analyze scores the stored profile against the job keywords. A user without
// a profile is analyzed as an empty one.
func (uc *resumeUsecase) Analyze(ctx context.Context, userID string, req domain.AnalyzeResumeRequest) (*domain.ResumeAnalysis, error) {
	keywords := make([]string, 0, len(req.Keywords))
	for _, k := range req.Keywords {
		if k = strings.TrimSpace(k); k != "" {
			keywords = append(keywords, k)
		}
	}
	req.Keywords = keywords
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

	analysis, err := uc.analyzer.Analyze(ctx, profile, req)
	if err != nil {
		return nil, upstream("Resume analysis failed", err)
	}
	if analysis == nil {
		return nil, apperror.Upstream("Resume analysis returned no result", nil)
	}

	logger.Log.Info("Resume analyzed",
		"user_id", userID,
		"keywords", len(req.Keywords),
		"score", analysis.Score,
	)
	return analysis, nil
}
