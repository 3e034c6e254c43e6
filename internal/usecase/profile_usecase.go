package usecase

import (
	"context"
	"errors"
	"strings"
	"time"

	"github.com/go-playground/validator/v10"

	"job-copilot-backend/internal/domain"
	"job-copilot-backend/pkg/apperror"
	"job-copilot-backend/pkg/logger"
)

type profileUsecase struct {
	repo     domain.ProfileRepository
	validate *validator.Validate
	locks    *userLocks
	now      func() time.Time
}

// NewProfileUsecase creates a new profile usecase
func NewProfileUsecase(repo domain.ProfileRepository, validate *validator.Validate) domain.ProfileUsecase {
	return &profileUsecase{
		repo:     repo,
		validate: validate,
		locks:    newUserLocks(),
		now:      time.Now,
	}
}

func (uc *profileUsecase) GetProfile(ctx context.Context, userID string) (*domain.Profile, error) {
	p, err := uc.repo.Get(ctx, userID)
	if err != nil {
		if errors.Is(err, domain.ErrNotFound) {
			return nil, apperror.NotFound("Profile not found")
		}
		return nil, apperror.Internal(err)
	}
	return p, nil
}

// SaveProfile replaces the stored profile with a normalized copy of profile
func (uc *profileUsecase) SaveProfile(ctx context.Context, userID string, profile *domain.Profile) (*domain.Profile, error) {
	if profile == nil {
		return nil, apperror.BadRequest("Profile is required")
	}
	if err := uc.validate.Struct(profile); err != nil {
		return nil, invalid(err)
	}

	p := profile.Clone()
	p.Skills = cleanSkills(p.Skills)
	p.UpdatedAt = uc.now().UTC()

	unlock := uc.locks.lock(userID)
	defer unlock()

	if err := uc.repo.Save(ctx, userID, p); err != nil {
		return nil, apperror.Internal(err)
	}

	logger.Log.Info("Profile saved",
		"user_id", userID,
		"skills", len(p.Skills),
		"experience", len(p.Experience),
	)
	return p.Clone(), nil
}

// cleanSkills trims entries and drops blanks and case-insensitive duplicates,
// keeping the first spelling seen.
func cleanSkills(skills []string) []string {
	out := make([]string, 0, len(skills))
	seen := make(map[string]bool, len(skills))
	for _, s := range skills {
		s = strings.TrimSpace(s)
		key := strings.ToLower(s)
		if s == "" || seen[key] {
			continue
		}
		seen[key] = true
		out = append(out, s)
	}
	return out
}
