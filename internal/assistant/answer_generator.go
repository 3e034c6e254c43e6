package assistant

import (
	"context"
	"fmt"
	"strings"
	"time"

	"job-copilot-backend/internal/domain"
)

// AnswerConfidence is reported for every templated answer
const AnswerConfidence = 0.89

// Questions suggested to the user, in display order
const (
	QuestionWhyThisJob = "Why do you want this job?"
	QuestionAboutYou   = "Tell me about yourself"
	QuestionStrengths  = "What are your greatest strengths?"
	QuestionWhyHire    = "Why should we hire you?"
	QuestionFiveYears  = "Where do you see yourself in 5 years?"
)

// CommonQuestions lists the suggested questions
var CommonQuestions = []string{
	QuestionWhyThisJob,
	QuestionAboutYou,
	QuestionStrengths,
	QuestionWhyHire,
	QuestionFiveYears,
}

// TemplateAnswerGenerator fills a fixed template per question from the profile
type TemplateAnswerGenerator struct {
	latency time.Duration
}

func NewTemplateAnswerGenerator(latency time.Duration) *TemplateAnswerGenerator {
	return &TemplateAnswerGenerator{latency: latency}
}

// profileFacts are the profile values the templates use, with fallbacks applied
type profileFacts struct {
	topSkill  string
	skills    string
	field     string
	company   string
	title     string
	project   string
	seniority string
}

func factsOf(p *domain.Profile) profileFacts {
	f := profileFacts{
		topSkill:  "software development",
		skills:    "relevant technologies",
		field:     "technology",
		company:   "my previous company",
		title:     "software engineer",
		project:   "",
		seniority: "growing",
	}
	if p == nil {
		return f
	}
	if len(p.Skills) > 0 {
		f.topSkill = p.Skills[0]
		f.skills = strings.Join(p.Skills, ", ")
	}
	if p.Field != "" {
		f.field = p.Field
	}
	if len(p.Experience) > 0 {
		f.seniority = "extensive"
		if c := p.Experience[0].Company; c != "" {
			f.company = c
		}
		if t := p.Experience[0].Title; t != "" {
			f.title = t
		}
	}
	if len(p.Projects) > 0 {
		f.project = p.Projects[0].Name
	}
	return f
}

func (f profileFacts) render(question string) string {
	switch {
	case strings.Contains(question, QuestionWhyThisJob):
		return fmt.Sprintf("I am excited about this role because it combines my expertise in %s with my passion for %s. During my time at %s, I developed skills that directly align with your requirements.",
			f.topSkill, f.field, f.company)
	case strings.Contains(question, QuestionAboutYou):
		return fmt.Sprintf("I am a %s with %s experience in %s. My core skills include %s, and I enjoy turning complex problems into simple, reliable products.",
			f.title, f.seniority, f.field, f.skills)
	case strings.Contains(question, QuestionStrengths):
		return fmt.Sprintf("My greatest strengths are deep knowledge of %s and the ability to deliver. As a %s at %s I consistently shipped work that others could build on.",
			f.topSkill, f.title, f.company)
	case strings.Contains(question, QuestionWhyHire):
		return fmt.Sprintf("You should hire me because I bring hands-on experience in %s and a track record in %s. I ramp up quickly and care about the outcomes of the team.",
			f.skills, f.field)
	case strings.Contains(question, QuestionFiveYears):
		return fmt.Sprintf("In five years I see myself as a senior contributor in %s, leading projects that rely on %s and mentoring others along the way.",
			f.field, f.topSkill)
	default:
		return fmt.Sprintf("Based on my experience in %s and my skills in %s, I believe I am well-suited for this position.",
			f.field, f.skills)
	}
}

func (f profileFacts) sources() []string {
	company := f.company
	if company == "my previous company" {
		company = "your latest role"
	}
	project := f.project
	if project == "" {
		project = "your portfolio"
	}
	return []string{
		"Your experience at " + company,
		"Project: " + project,
	}
}

// Generate always returns non-empty text unless ctx ends first
func (g *TemplateAnswerGenerator) Generate(ctx context.Context, question string, profile *domain.Profile) (*domain.Answer, error) {
	if err := wait(ctx, g.latency); err != nil {
		return nil, err
	}
	facts := factsOf(profile)
	text := facts.render(question)
	return &domain.Answer{
		Text:       text,
		Confidence: AnswerConfidence,
		Sources:    facts.sources(),
		WordCount:  len(strings.Fields(text)),
	}, nil
}
