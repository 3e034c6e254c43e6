package usecase

import (
	"context"
	"errors"
	"fmt"
	"time"

	"github.com/go-playground/validator/v10"
	"github.com/google/uuid"

	"job-copilot-backend/internal/autofill"
	"job-copilot-backend/internal/domain"
	"job-copilot-backend/pkg/apperror"
	"job-copilot-backend/pkg/logger"
)

type autofillUsecase struct {
	detector    domain.FormDetector
	profileRepo domain.ProfileRepository
	sessionRepo domain.AutofillSessionRepository
	feedback    domain.FeedbackSink
	validate    *validator.Validate
	locks       *userLocks
	now         func() time.Time
}

// NewAutofillUsecase creates a new autofill usecase
func NewAutofillUsecase(
	detector domain.FormDetector,
	profileRepo domain.ProfileRepository,
	sessionRepo domain.AutofillSessionRepository,
	feedback domain.FeedbackSink,
	validate *validator.Validate,
) domain.AutofillUsecase {
	return &autofillUsecase{
		detector:    detector,
		profileRepo: profileRepo,
		sessionRepo: sessionRepo,
		feedback:    feedback,
		validate:    validate,
		locks:       newUserLocks(),
		now:         time.Now,
	}
}

func (uc *autofillUsecase) DetectForm(ctx context.Context, pageURL string) (*domain.DetectedForm, error) {
	form, err := uc.detector.Detect(ctx, pageURL)
	if err != nil {
		return nil, upstream("Form detection failed", err)
	}
	return form, nil
}

// CreateSession maps the form against the stored profile and persists the result
func (uc *autofillUsecase) CreateSession(ctx context.Context, userID string, form domain.DetectedForm) (*domain.AutofillSessionView, error) {
	if len(form.Fields) == 0 {
		return nil, apperror.BadRequest("At least one form field is required")
	}
	for _, f := range form.Fields {
		if err := uc.validate.Struct(f); err != nil {
			return nil, invalid(err)
		}
	}

	profile, err := uc.profileRepo.Get(ctx, userID)
	if err != nil {
		if errors.Is(err, domain.ErrNotFound) {
			return nil, apperror.Unprocessable(domain.ErrMissingProfile.Error(), domain.ErrMissingProfile)
		}
		return nil, apperror.Internal(err)
	}

	mappings, err := autofill.Map(form.Fields, profile)
	if err != nil {
		return nil, apperror.Unprocessable(err.Error(), err)
	}

	now := uc.now().UTC()
	session := &domain.AutofillSession{
		ID:        uuid.NewString(),
		PageTitle: form.PageTitle,
		Mappings:  mappings,
		CreatedAt: now,
		UpdatedAt: now,
	}
	if err := uc.sessionRepo.Save(ctx, userID, session); err != nil {
		return nil, apperror.Internal(err)
	}

	view := viewOf(session)
	logger.Log.Info("Autofill session created",
		"user_id", userID,
		"session_id", session.ID,
		"fields", view.Summary.Total,
		"filled", view.Summary.FilledCount,
	)
	return view, nil
}

func (uc *autofillUsecase) GetSession(ctx context.Context, userID, sessionID string) (*domain.AutofillSessionView, error) {
	session, err := uc.loadSession(ctx, userID, sessionID)
	if err != nil {
		return nil, err
	}
	return viewOf(session), nil
}

// EditField records a manual correction; confidence and aiFilled stay as created
func (uc *autofillUsecase) EditField(ctx context.Context, userID, sessionID, fieldID, value string) (*domain.AutofillSessionView, error) {
	unlock := uc.locks.lock(userID)
	defer unlock()

	session, err := uc.loadSession(ctx, userID, sessionID)
	if err != nil {
		return nil, err
	}

	mappings, err := autofill.ApplyEdit(session.Mappings, fieldID, value)
	if err != nil {
		return nil, apperror.NotFound(fmt.Sprintf("Field %q not found in session", fieldID))
	}

	updated := *session
	updated.Mappings = mappings
	updated.UpdatedAt = uc.now().UTC()
	if err := uc.sessionRepo.Save(ctx, userID, &updated); err != nil {
		return nil, apperror.Internal(err)
	}
	return viewOf(&updated), nil
}

// FieldFeedback sends a thumbs up or down on one mapped value to the feedback sink
func (uc *autofillUsecase) FieldFeedback(ctx context.Context, userID, sessionID, fieldID string, useful bool) (*domain.FeedbackAck, error) {
	session, err := uc.loadSession(ctx, userID, sessionID)
	if err != nil {
		return nil, err
	}

	var mapping *domain.FieldMapping
	for i := range session.Mappings {
		if session.Mappings[i].ID == fieldID {
			mapping = &session.Mappings[i]
			break
		}
	}
	if mapping == nil {
		return nil, apperror.NotFound(fmt.Sprintf("Field %q not found in session", fieldID))
	}

	verdict := domain.VerdictDown
	if useful {
		verdict = domain.VerdictUp
	}
	comment := fmt.Sprintf("value=%q confidence=%.2f source=%q", mapping.MappedValue, mapping.Confidence, mapping.Source)
	return uc.feedback.Submit(ctx, userID, FieldContentID(sessionID, fieldID), verdict, comment)
}

// FieldContentID is the feedback content id of one mapped field
func FieldContentID(sessionID, fieldID string) string {
	return "autofill-" + sessionID + "-" + fieldID
}

func (uc *autofillUsecase) loadSession(ctx context.Context, userID, sessionID string) (*domain.AutofillSession, error) {
	session, err := uc.sessionRepo.Get(ctx, userID, sessionID)
	if err != nil {
		if errors.Is(err, domain.ErrSessionNotFound) {
			return nil, apperror.NotFound("Autofill session not found")
		}
		return nil, apperror.Internal(err)
	}
	return session, nil
}

func viewOf(s *domain.AutofillSession) *domain.AutofillSessionView {
	return &domain.AutofillSessionView{
		AutofillSession: s,
		Summary:         autofill.Summarize(s.Mappings),
	}
}
