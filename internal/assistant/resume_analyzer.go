package assistant

import (
	"context"
	"fmt"
	"strings"
	"time"

	"golang.org/x/text/cases"

	"job-copilot-backend/internal/autofill"
	"job-copilot-backend/internal/domain"
)

// AnalysisConfidence is reported for every resume analysis
const AnalysisConfidence = 0.87

// Sub-score weights of the overall score, in percent
const (
	weightSkills     = 40
	weightExperience = 25
	weightEducation  = 15
	weightKeywords   = 20
)

var analysisSteps = []domain.AnalysisStep{
	{Message: "Parsing resume content...", Progress: 20},
	{Message: "Identifying key skills...", Progress: 40},
	{Message: "Comparing with job requirements...", Progress: 60},
	{Message: "Calculating match score...", Progress: 80},
	{Message: "Generating recommendations...", Progress: 100},
}

// ScoreRating buckets a 0-100 score
func ScoreRating(score int) string {
	switch {
	case score >= 80:
		return "strong"
	case score >= 60:
		return "fair"
	default:
		return "weak"
	}
}

// TemplateResumeAnalyzer scores a profile against job keywords with fixed
// rules. The same input always yields the same analysis.
type TemplateResumeAnalyzer struct {
	latency time.Duration
}

func NewTemplateResumeAnalyzer(latency time.Duration) *TemplateResumeAnalyzer {
	return &TemplateResumeAnalyzer{latency: latency}
}

func (a *TemplateResumeAnalyzer) Analyze(ctx context.Context, profile *domain.Profile, req domain.AnalyzeResumeRequest) (*domain.ResumeAnalysis, error) {
	if err := wait(ctx, a.latency); err != nil {
		return nil, err
	}
	if profile == nil {
		profile = &domain.Profile{}
	}

	keywords := uniqueKeywords(req.Keywords)
	details := matchKeywords(keywords, profile, req.ResumeText)
	years := autofill.TotalYears(profile.Experience)

	breakdown := domain.ScoreBreakdown{
		SkillsMatch:     percent(len(details.StrongMatches), len(keywords)),
		ExperienceMatch: experienceScore(years, len(profile.Experience)),
		EducationMatch:  educationScore(profile.Education),
		KeywordsMatch:   percent(len(details.StrongMatches)+len(details.PartialMatches), len(keywords)),
	}
	score := (weightSkills*breakdown.SkillsMatch +
		weightExperience*breakdown.ExperienceMatch +
		weightEducation*breakdown.EducationMatch +
		weightKeywords*breakdown.KeywordsMatch + 50) / 100

	suggestions := suggest(details, profile)
	if years > 0 {
		details.StrongMatches = append(details.StrongMatches, fmt.Sprintf("%d+ years experience", years))
	}

	return &domain.ResumeAnalysis{
		Score:           score,
		Rating:          ScoreRating(score),
		Confidence:      AnalysisConfidence,
		Breakdown:       breakdown,
		Suggestions:     suggestions,
		MissingKeywords: append([]string{}, details.Missing...),
		MatchDetails:    details,
		Steps:           append([]domain.AnalysisStep(nil), analysisSteps...),
	}, nil
}

// uniqueKeywords trims keywords and drops blanks and case-insensitive repeats,
// keeping the first spelling.
func uniqueKeywords(in []string) []string {
	seen := make(map[string]bool, len(in))
	out := make([]string, 0, len(in))
	for _, k := range in {
		k = strings.TrimSpace(k)
		f := cases.Fold().String(k)
		if k == "" || seen[f] {
			continue
		}
		seen[f] = true
		out = append(out, k)
	}
	return out
}

// matchKeywords sorts keywords into three groups. A keyword equal to a listed
// skill is strong. One that overlaps a skill or appears in the resume text or
// work history is partial. Everything else is missing.
func matchKeywords(keywords []string, p *domain.Profile, resumeText string) domain.MatchDetails {
	fold := cases.Fold()
	skills := make([]string, 0, len(p.Skills))
	for _, s := range p.Skills {
		if s = strings.TrimSpace(s); s != "" {
			skills = append(skills, fold.String(s))
		}
	}

	parts := []string{resumeText, p.Field}
	for _, e := range p.Experience {
		parts = append(parts, e.Title, e.Description)
	}
	for _, pr := range p.Projects {
		parts = append(parts, pr.Name, pr.Description, pr.Technologies)
	}
	corpus := fold.String(strings.Join(parts, "\n"))

	d := domain.MatchDetails{StrongMatches: []string{}, PartialMatches: []string{}, Missing: []string{}}
	for _, k := range keywords {
		fk := fold.String(k)
		switch {
		case containsExact(skills, fk):
			d.StrongMatches = append(d.StrongMatches, k)
		case overlapsAny(skills, fk) || strings.Contains(corpus, fk):
			d.PartialMatches = append(d.PartialMatches, k)
		default:
			d.Missing = append(d.Missing, k)
		}
	}
	return d
}

func containsExact(skills []string, k string) bool {
	for _, s := range skills {
		if s == k {
			return true
		}
	}
	return false
}

func overlapsAny(skills []string, k string) bool {
	for _, s := range skills {
		if strings.Contains(s, k) || strings.Contains(k, s) {
			return true
		}
	}
	return false
}

func percent(n, of int) int {
	if of == 0 {
		return 0
	}
	return (100*n + of/2) / of
}

// experienceScore rewards total years; history with unparseable durations
// still counts for something.
func experienceScore(years, entries int) int {
	switch {
	case entries == 0:
		return 30
	case years >= 5:
		return 100
	case years >= 3:
		return 85
	case years >= 1:
		return 70
	default:
		return 60
	}
}

func educationScore(education []domain.Education) int {
	best := 50
	for _, e := range education {
		degree := cases.Fold().String(e.Degree)
		switch {
		case strings.Contains(degree, "master"), strings.Contains(degree, "phd"), strings.Contains(degree, "doctor"):
			return 100
		case degree != "":
			best = max(best, 90)
		case e.School != "":
			best = max(best, 75)
		}
	}
	return best
}

func suggest(d domain.MatchDetails, p *domain.Profile) []domain.Suggestion {
	var out []domain.Suggestion
	add := func(typ domain.SuggestionType, impact domain.Impact, text, reasoning string) {
		id := len(out) + 1
		out = append(out, domain.Suggestion{
			ID:        id,
			ContentID: fmt.Sprintf("sugg-%d", id),
			Type:      typ,
			Text:      text,
			Impact:    impact,
			Reasoning: reasoning,
		})
	}

	if len(d.Missing) > 0 {
		add(domain.SuggestionSkillGap, domain.ImpactHigh,
			fmt.Sprintf("Add '%s' to your skills", d.Missing[0]),
			fmt.Sprintf("%d of the job's keywords are not on your profile", len(d.Missing)))
	}
	if len(d.PartialMatches) > 0 {
		add(domain.SuggestionSkillGap, domain.ImpactMedium,
			fmt.Sprintf("List '%s' as a skill", d.PartialMatches[0]),
			"It shows up in your history but not in your skills")
	}
	if len(p.Experience) > 0 {
		company := p.Experience[0].Company
		if company == "" {
			company = "your latest role"
		}
		add(domain.SuggestionExperience, domain.ImpactMedium,
			"Quantify your impact at "+company,
			"Metrics make achievements easier to rank")
	} else {
		add(domain.SuggestionExperience, domain.ImpactHigh,
			"Add your most recent role",
			"Profiles without work history score lowest on experience")
	}
	add(domain.SuggestionFormatting, domain.ImpactLow,
		"Use bullet points for achievements",
		"Improves readability for AI parsers")
	return out
}
