package domain

import (
	"context"
	"time"
)

// PersonalInfo holds the contact section of a profile
type PersonalInfo struct {
	Name     string `json:"name" validate:"max=120"`
	Email    string `json:"email" validate:"omitempty,email"`
	Phone    string `json:"phone" validate:"omitempty,valid_phone"`
	Location string `json:"location" validate:"max=120"`
	LinkedIn string `json:"linkedin,omitempty" validate:"max=200"`
	Website  string `json:"website,omitempty" validate:"max=200"`
}

// Experience is one entry of the work history. Duration is free text such as "2018-2020".
type Experience struct {
	Company     string `json:"company"`
	Title       string `json:"title"`
	Duration    string `json:"duration"`
	Description string `json:"description"`
}

type Education struct {
	School string `json:"school"`
	Degree string `json:"degree"`
	Year   string `json:"year"`
}

type Project struct {
	Name         string `json:"name"`
	Description  string `json:"description"`
	Technologies string `json:"technologies"`
	URL          string `json:"url,omitempty" validate:"max=300"`
}

// Preferences captures what the user is looking for
type Preferences struct {
	Field           string `json:"field,omitempty"`
	ExperienceLevel string `json:"experience,omitempty"`
	JobType         string `json:"jobType,omitempty"`
	Location        string `json:"location,omitempty"`
}

// Profile is the single source of truth for autofill and answer generation.
// Experience is ordered most recent first.
type Profile struct {
	Personal    PersonalInfo `json:"personal" validate:"required"`
	Field       string       `json:"field"`
	Experience  []Experience `json:"experience" validate:"dive"`
	Skills      []string     `json:"skills" validate:"dive,max=80"`
	Education   []Education  `json:"education,omitempty"`
	Projects    []Project    `json:"projects" validate:"dive"`
	Preferences Preferences  `json:"preferences"`
	UpdatedAt   time.Time    `json:"updated_at"`
}

// Clone returns a deep copy so callers never share slices with a stored record
func (p *Profile) Clone() *Profile {
	if p == nil {
		return nil
	}
	out := *p
	out.Experience = append([]Experience(nil), p.Experience...)
	out.Skills = append([]string(nil), p.Skills...)
	out.Education = append([]Education(nil), p.Education...)
	out.Projects = append([]Project(nil), p.Projects...)
	return &out
}

// ProfileRepository defines data access methods for profiles
type ProfileRepository interface {
	Get(ctx context.Context, userID string) (*Profile, error)
	Save(ctx context.Context, userID string, profile *Profile) error
}

// ProfileUsecase defines business logic for profiles
type ProfileUsecase interface {
	GetProfile(ctx context.Context, userID string) (*Profile, error)
	SaveProfile(ctx context.Context, userID string, profile *Profile) (*Profile, error)
}
