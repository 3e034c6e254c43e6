package domain

import "context"

type SuggestionType string

const (
	SuggestionSkillGap   SuggestionType = "skill_gap"
	SuggestionExperience SuggestionType = "experience"
	SuggestionFormatting SuggestionType = "formatting"
)

type Impact string

const (
	ImpactHigh   Impact = "high"
	ImpactMedium Impact = "medium"
	ImpactLow    Impact = "low"
)

// OverallAnalysisContentID is the feedback content id for a whole analysis
const OverallAnalysisContentID = "overall-analysis"

// ScoreBreakdown holds the four sub-scores, each 0-100
type ScoreBreakdown struct {
	SkillsMatch     int `json:"skillsMatch"`
	ExperienceMatch int `json:"experienceMatch"`
	EducationMatch  int `json:"educationMatch"`
	KeywordsMatch   int `json:"keywordsMatch"`
}

// Suggestion is one recommendation. ContentID ("sugg-<id>") is what feedback
// on the suggestion is recorded against.
type Suggestion struct {
	ID        int            `json:"id"`
	ContentID string         `json:"contentId"`
	Type      SuggestionType `json:"type"`
	Text      string         `json:"text"`
	Impact    Impact         `json:"impact"`
	Reasoning string         `json:"reasoning"`
}

type MatchDetails struct {
	StrongMatches  []string `json:"strongMatches"`
	PartialMatches []string `json:"partialMatches"`
	Missing        []string `json:"missing"`
}

// AnalysisStep is one stage the analyzer went through, in order
type AnalysisStep struct {
	Message  string `json:"message"`
	Progress int    `json:"progress"`
}

// ResumeAnalysis is the result of matching a profile against a job.
// Rating is "strong" for scores >= 80, "fair" for >= 60 and "weak" below.
type ResumeAnalysis struct {
	Score           int            `json:"score"`
	Rating          string         `json:"rating"`
	Confidence      float64        `json:"confidence"`
	Breakdown       ScoreBreakdown `json:"breakdown"`
	Suggestions     []Suggestion   `json:"suggestions"`
	MissingKeywords []string       `json:"missingKeywords"`
	MatchDetails    MatchDetails   `json:"matchDetails"`
	Steps           []AnalysisStep `json:"steps"`
}

// AnalyzeResumeRequest carries the job's requirement keywords and, optionally,
// resume text the client already extracted from an upload.
type AnalyzeResumeRequest struct {
	Keywords   []string `json:"keywords" validate:"required,min=1,max=50,dive,required,max=80"`
	ResumeText string   `json:"resumeText" validate:"max=20000"`
}

// ResumeAnalyzer is the opaque AI boundary for resume scoring
type ResumeAnalyzer interface {
	Analyze(ctx context.Context, profile *Profile, req AnalyzeResumeRequest) (*ResumeAnalysis, error)
}

// ResumeUsecase defines business logic for resume analysis
type ResumeUsecase interface {
	Analyze(ctx context.Context, userID string, req AnalyzeResumeRequest) (*ResumeAnalysis, error)
}
