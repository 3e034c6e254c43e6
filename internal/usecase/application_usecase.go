package usecase

import (
	"context"
	"fmt"
	"net/http"
	"strings"
	"time"

	"github.com/go-playground/validator/v10"
	"github.com/google/uuid"

	"job-copilot-backend/internal/domain"
	"job-copilot-backend/internal/pipeline"
	"job-copilot-backend/pkg/apperror"
	"job-copilot-backend/pkg/logger"
)

// recentActivityLimit is the number of applications in the activity feed
const recentActivityLimit = 5

type applicationUsecase struct {
	repo     domain.ApplicationRepository
	validate *validator.Validate
	locks    *userLocks
	now      func() time.Time
}

// NewApplicationUsecase creates a new application usecase
func NewApplicationUsecase(repo domain.ApplicationRepository, validate *validator.Validate) domain.ApplicationUsecase {
	return &applicationUsecase{
		repo:     repo,
		validate: validate,
		locks:    newUserLocks(),
		now:      time.Now,
	}
}

func (uc *applicationUsecase) list(ctx context.Context, userID string) ([]domain.Application, error) {
	apps, err := uc.repo.List(ctx, userID)
	if err != nil {
		return nil, apperror.Internal(err)
	}
	return apps, nil
}

// Dashboard filters and sorts the list view; stats, pipeline and recent
// activity always cover the whole collection.
func (uc *applicationUsecase) Dashboard(ctx context.Context, userID, filter, sortBy string) (*domain.ApplicationDashboard, error) {
	apps, err := uc.list(ctx, userID)
	if err != nil {
		return nil, err
	}
	if sortBy == "" {
		sortBy = pipeline.SortByDate
	}

	shown := pipeline.Sort(pipeline.Filter(apps, filter), sortBy)
	views := make([]domain.ApplicationView, len(shown))
	for i, a := range shown {
		views[i] = domain.ApplicationView{
			Application: a,
			Progress:    pipeline.StageProgress(a.Status),
			Color:       pipeline.StatusColor(a.Status),
		}
	}

	return &domain.ApplicationDashboard{
		Applications:   views,
		Stats:          pipeline.ComputeStats(apps),
		Pipeline:       pipeline.Pipeline(apps),
		RecentActivity: pipeline.RecentActivity(apps, recentActivityLimit),
	}, nil
}

// Create records a new application with a generated id
func (uc *applicationUsecase) Create(ctx context.Context, userID string, req domain.CreateApplicationRequest) (*domain.Application, error) {
	req.Company = strings.TrimSpace(req.Company)
	req.Role = strings.TrimSpace(req.Role)
	if err := uc.validate.Struct(req); err != nil {
		return nil, invalid(err)
	}

	app := domain.Application{
		ID:          uuid.NewString(),
		JobRef:      req.JobRef,
		AppliedDate: req.AppliedDate,
		Status:      req.Status,
		Answers:     req.Answers,
		AppliedVia:  req.AppliedVia,
	}
	if app.AppliedDate == "" {
		app.AppliedDate = uc.now().Format(domain.DateLayout)
	}
	if app.Status == "" {
		app.Status = domain.DefaultApplicationStatus
	}

	unlock := uc.locks.lock(userID)
	defer unlock()

	apps, err := uc.list(ctx, userID)
	if err != nil {
		return nil, err
	}
	next := append(make([]domain.Application, 0, len(apps)+1), app)
	next = append(next, apps...)
	if err := uc.repo.ReplaceAll(ctx, userID, next); err != nil {
		return nil, apperror.Internal(err)
	}

	logger.Log.Info("Application recorded",
		"user_id", userID,
		"application_id", app.ID,
		"company", app.Company,
	)
	return &app, nil
}

// UpdateStatus moves an application to any vocabulary status
func (uc *applicationUsecase) UpdateStatus(ctx context.Context, userID, applicationID string, status domain.Status) (*domain.Application, error) {
	if !status.Valid() {
		return nil, apperror.New(http.StatusBadRequest, fmt.Sprintf("Invalid status %q", status), domain.ErrInvalidStatus)
	}

	unlock := uc.locks.lock(userID)
	defer unlock()

	apps, err := uc.list(ctx, userID)
	if err != nil {
		return nil, err
	}
	if _, ok := pipeline.Find(apps, applicationID); !ok {
		return nil, apperror.NotFound("Application not found")
	}

	next, err := pipeline.Transition(apps, applicationID, status)
	if err != nil {
		return nil, apperror.BadRequest(err.Error())
	}
	if err := uc.repo.ReplaceAll(ctx, userID, next); err != nil {
		return nil, apperror.Internal(err)
	}

	updated, _ := pipeline.Find(next, applicationID)
	logger.Log.Info("Application status updated",
		"user_id", userID,
		"application_id", applicationID,
		"status", status,
	)
	return &updated, nil
}

func (uc *applicationUsecase) Stats(ctx context.Context, userID string) (*domain.ApplicationStats, error) {
	apps, err := uc.list(ctx, userID)
	if err != nil {
		return nil, err
	}
	stats := pipeline.ComputeStats(apps)
	return &stats, nil
}

func (uc *applicationUsecase) Statuses() []domain.StatusInfo {
	return pipeline.Statuses()
}
