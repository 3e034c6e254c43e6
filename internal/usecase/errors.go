package usecase

import (
	"context"
	"errors"
	"strings"

	"job-copilot-backend/pkg/apperror"
	"job-copilot-backend/pkg/validation"
)

func invalid(err error) *apperror.AppError {
	return apperror.BadRequest("Validation failed: " + strings.Join(validation.FormatValidationErrors(err), "; "))
}

// upstream wraps a collaborator failure; cancellations pass through untouched
func upstream(msg string, err error) error {
	if errors.Is(err, context.Canceled) || errors.Is(err, context.DeadlineExceeded) {
		return err
	}
	return apperror.Upstream(msg, err)
}
