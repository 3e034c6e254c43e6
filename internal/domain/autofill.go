package domain

import (
	"context"
	"time"
)

// FieldType is the declared input type of a detected form field
type FieldType string

const (
	FieldTypeText     FieldType = "text"
	FieldTypeTextarea FieldType = "textarea"
	FieldTypeSelect   FieldType = "select"
	FieldTypeDate     FieldType = "date"
	FieldTypeURL      FieldType = "url"
	FieldTypeEmail    FieldType = "email"
	FieldTypeTel      FieldType = "tel"
)

// FieldTypes lists every accepted FieldType
var FieldTypes = []FieldType{
	FieldTypeText, FieldTypeTextarea, FieldTypeSelect, FieldTypeDate,
	FieldTypeURL, FieldTypeEmail, FieldTypeTel,
}

// AutoFillThreshold is the confidence at or above which a value counts as AI-filled
const AutoFillThreshold = 0.7

// FieldDescriptor is one form input as reported by the form detector
type FieldDescriptor struct {
	ID       string    `json:"id" yaml:"id" validate:"required,max=100"`
	Label    string    `json:"label" yaml:"label" validate:"max=200"`
	Type     FieldType `json:"type" yaml:"type" validate:"required,field_type"`
	Required bool      `json:"required" yaml:"required"`
	Options  []string  `json:"options,omitempty" yaml:"options,omitempty"`
}

// FieldMapping is the proposed value for one FieldDescriptor.
// AIFilled is fixed at creation; manual edits only set AIEdited and MappedValue.
type FieldMapping struct {
	FieldDescriptor
	MappedValue string  `json:"mappedValue"`
	Confidence  float64 `json:"confidence"`
	Source      string  `json:"source"`
	AIFilled    bool    `json:"aiFilled"`
	AIEdited    bool    `json:"aiEdited"`
}

// MappingSummary aggregates a mapping session. It is derived, never stored.
type MappingSummary struct {
	Total               int     `json:"total"`
	OverallConfidence   float64 `json:"overallConfidence"`
	FilledCount         int     `json:"filledCount"`
	HighConfidenceCount int     `json:"highConfidenceCount"`
	NeedAttentionCount  int     `json:"needAttentionCount"`
}

// DetectedForm is what the form detector returns for a page
type DetectedForm struct {
	PageTitle string            `json:"pageTitle" yaml:"pageTitle"`
	Fields    []FieldDescriptor `json:"fields" yaml:"fields"`
}

// AutofillSession is one mapping session persisted between edits
type AutofillSession struct {
	ID        string         `json:"id"`
	PageTitle string         `json:"pageTitle"`
	Mappings  []FieldMapping `json:"mappings"`
	CreatedAt time.Time      `json:"created_at"`
	UpdatedAt time.Time      `json:"updated_at"`
}

// AutofillSessionView is the session plus its freshly computed summary
type AutofillSessionView struct {
	*AutofillSession
	Summary MappingSummary `json:"summary"`
}

// FormDetector is the external field-detection collaborator
type FormDetector interface {
	Detect(ctx context.Context, pageURL string) (*DetectedForm, error)
}

// AutofillSessionRepository stores mapping sessions per user
type AutofillSessionRepository interface {
	Get(ctx context.Context, userID, sessionID string) (*AutofillSession, error)
	Save(ctx context.Context, userID string, session *AutofillSession) error
}

// AutofillUsecase defines business logic for form autofill
type AutofillUsecase interface {
	DetectForm(ctx context.Context, pageURL string) (*DetectedForm, error)
	CreateSession(ctx context.Context, userID string, form DetectedForm) (*AutofillSessionView, error)
	GetSession(ctx context.Context, userID, sessionID string) (*AutofillSessionView, error)
	EditField(ctx context.Context, userID, sessionID, fieldID, value string) (*AutofillSessionView, error)
	FieldFeedback(ctx context.Context, userID, sessionID, fieldID string, useful bool) (*FeedbackAck, error)
}
