package domain

import (
	"context"
)

// Status is one stage of the application pipeline
type Status string

// Application status vocabulary, in pipeline order
const (
	StatusNotSubmitted      Status = "Not Submitted yet"
	StatusSubmitted         Status = "Submitted"
	StatusInitialResponse   Status = "Received Initial Response"
	StatusInterview         Status = "Interview Requested"
	StatusOnsiteInterview   Status = "Onsite/Video Interview Requested"
	StatusOffer             Status = "Offer Received"
	StatusRejectedInterview Status = "Rejected after Interview"
	StatusDeclined          Status = "Declined"
)

// DefaultApplicationStatus is used when an application is recorded without a status
const DefaultApplicationStatus = StatusSubmitted

// DateLayout is the format of Application.AppliedDate
const DateLayout = "2006-01-02"

// StatusVocabulary is the fixed ordered list of statuses. Order drives
// progress display and status sorting only; it is not a transition guard.
var StatusVocabulary = []Status{
	StatusNotSubmitted,
	StatusSubmitted,
	StatusInitialResponse,
	StatusInterview,
	StatusOnsiteInterview,
	StatusOffer,
	StatusRejectedInterview,
	StatusDeclined,
}

// Index returns the vocabulary position of s, or -1 when s is unknown
func (s Status) Index() int {
	for i, v := range StatusVocabulary {
		if v == s {
			return i
		}
	}
	return -1
}

// Valid reports whether s is a vocabulary member
func (s Status) Valid() bool {
	return s.Index() >= 0
}

// Terminal reports whether s is excluded from the active count
func (s Status) Terminal() bool {
	return s == StatusOffer || s == StatusRejectedInterview || s == StatusDeclined
}

// JobRef is the job snapshot taken when the application was recorded
type JobRef struct {
	JobID    string `json:"jobId,omitempty"`
	Company  string `json:"company" validate:"required,max=120"`
	Role     string `json:"role" validate:"required,max=160"`
	Logo     string `json:"logo,omitempty"`
	Location string `json:"location,omitempty"`
	Salary   string `json:"salary,omitempty"`
}

// Application is a job application tracked by the user.
// Status is the only field that changes after creation.
type Application struct {
	ID string `json:"id"`
	JobRef
	AppliedDate string            `json:"appliedDate"`
	Status      Status            `json:"status"`
	Answers     map[string]string `json:"answers,omitempty"`
	AppliedVia  string            `json:"appliedVia,omitempty"`
}

// ApplicationStats is derived from an application collection
type ApplicationStats struct {
	Total        int `json:"total"`
	Active       int `json:"active"`
	Interviews   int `json:"interviews"`
	Offers       int `json:"offers"`
	ResponseRate int `json:"responseRate"`
}

// StageMark is one segment of an application's progress bar
type StageMark struct {
	Status  Status `json:"status"`
	Reached bool   `json:"reached"`
}

// PipelineStage is the population of one stage across all applications
type PipelineStage struct {
	Status     Status  `json:"status"`
	Label      string  `json:"label"`
	Count      int     `json:"count"`
	Percentage float64 `json:"percentage"`
	Color      string  `json:"color"`
}

// StatusInfo describes one vocabulary entry for clients
type StatusInfo struct {
	Status   Status `json:"status"`
	Index    int    `json:"index"`
	Color    string `json:"color"`
	Terminal bool   `json:"terminal"`
}

// ApplicationView is an application with its progress bar
type ApplicationView struct {
	Application
	Progress []StageMark `json:"progress"`
	Color    string      `json:"color"`
}

// ApplicationDashboard is the full tracker view
type ApplicationDashboard struct {
	Applications   []ApplicationView `json:"applications"`
	Stats          ApplicationStats  `json:"stats"`
	Pipeline       []PipelineStage   `json:"pipeline"`
	RecentActivity []Application     `json:"recentActivity"`
}

// CreateApplicationRequest is the payload for recording an application
type CreateApplicationRequest struct {
	JobRef
	AppliedDate string            `json:"appliedDate" validate:"omitempty,datetime=2006-01-02"`
	Status      Status            `json:"status" validate:"omitempty,vocab_status"`
	Answers     map[string]string `json:"answers"`
	AppliedVia  string            `json:"appliedVia" validate:"max=80"`
}

// ApplicationRepository defines data access for a user's application collection.
// Implementations return fresh slices; callers never mutate what they loaded.
type ApplicationRepository interface {
	List(ctx context.Context, userID string) ([]Application, error)
	ReplaceAll(ctx context.Context, userID string, apps []Application) error
}

// ApplicationUsecase defines business logic for the application tracker
type ApplicationUsecase interface {
	Dashboard(ctx context.Context, userID, filter, sortBy string) (*ApplicationDashboard, error)
	Create(ctx context.Context, userID string, req CreateApplicationRequest) (*Application, error)
	UpdateStatus(ctx context.Context, userID, applicationID string, status Status) (*Application, error)
	Stats(ctx context.Context, userID string) (*ApplicationStats, error)
	Export(ctx context.Context, userID, format string) ([]byte, string, error)
	Statuses() []StatusInfo
}
