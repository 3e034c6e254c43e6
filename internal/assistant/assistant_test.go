package assistant

import (
	"context"
	"strings"
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"job-copilot-backend/internal/domain"
	"job-copilot-backend/pkg/validation"
)

func TestTemplateFormDetector(t *testing.T) {
	t.Run("Should load the embedded application form", func(t *testing.T) {
		d, err := NewTemplateFormDetector("", 0)
		require.NoError(t, err)

		form, err := d.Detect(context.Background(), "https://jobs.example.com/apply")
		require.NoError(t, err)
		assert.Equal(t, "Software Engineer Application - TechCorp", form.PageTitle)
		require.Len(t, form.Fields, 11)
		assert.Equal(t, "fullName", form.Fields[0].ID)
		assert.Equal(t, domain.FieldTypeSelect, form.Fields[5].Type)
		assert.Equal(t, []string{"0-1", "1-3", "3-5", "5-8", "8+"}, form.Fields[5].Options)
	})

	t.Run("Should hand out independent copies", func(t *testing.T) {
		d, err := NewTemplateFormDetector("", 0)
		require.NoError(t, err)

		first, err := d.Detect(context.Background(), "")
		require.NoError(t, err)
		first.Fields[5].Options[0] = "changed"

		second, err := d.Detect(context.Background(), "")
		require.NoError(t, err)
		assert.Equal(t, "0-1", second.Fields[5].Options[0])
	})

	t.Run("Should stop waiting when the context ends", func(t *testing.T) {
		d, err := NewTemplateFormDetector("", time.Hour)
		require.NoError(t, err)

		ctx, cancel := context.WithCancel(context.Background())
		cancel()
		_, err = d.Detect(ctx, "")
		assert.ErrorIs(t, err, context.Canceled)
	})

	t.Run("Should fail on a missing template file", func(t *testing.T) {
		_, err := NewTemplateFormDetector("/nonexistent/form.yaml", 0)
		assert.Error(t, err)
	})
}

func TestParseFormTemplate(t *testing.T) {
	v := validation.New()

	t.Run("Should reject unknown field types", func(t *testing.T) {
		_, err := ParseFormTemplate([]byte("fields:\n  - id: cv\n    type: file\n"), v)
		assert.Error(t, err)
	})

	t.Run("Should reject duplicate ids", func(t *testing.T) {
		raw := "fields:\n  - id: email\n    type: email\n  - id: email\n    type: text\n"
		_, err := ParseFormTemplate([]byte(raw), v)
		assert.ErrorContains(t, err, "declared twice")
	})

	t.Run("Should reject empty forms", func(t *testing.T) {
		_, err := ParseFormTemplate([]byte("pageTitle: Empty\n"), v)
		assert.Error(t, err)
	})
}

func TestTemplateAnswerGenerator(t *testing.T) {
	profile := &domain.Profile{
		Field:      "Technology",
		Skills:     []string{"Go", "PostgreSQL"},
		Experience: []domain.Experience{{Company: "TechCorp", Title: "Backend Engineer"}},
		Projects:   []domain.Project{{Name: "Job Copilot"}},
	}
	g := NewTemplateAnswerGenerator(0)

	t.Run("Should fill the template from the profile", func(t *testing.T) {
		a, err := g.Generate(context.Background(), QuestionWhyThisJob, profile)
		require.NoError(t, err)
		assert.Contains(t, a.Text, "expertise in Go")
		assert.Contains(t, a.Text, "at TechCorp")
		assert.Equal(t, AnswerConfidence, a.Confidence)
		assert.Equal(t, []string{"Your experience at TechCorp", "Project: Job Copilot"}, a.Sources)
		assert.Equal(t, len(strings.Fields(a.Text)), a.WordCount)
	})

	t.Run("Should recognise a question scoped to a job", func(t *testing.T) {
		a, err := g.Generate(context.Background(), "For a Staff Engineer position at Stripe: "+QuestionAboutYou, profile)
		require.NoError(t, err)
		assert.True(t, strings.HasPrefix(a.Text, "I am a Backend Engineer with extensive experience"))
	})

	t.Run("Should fall back for empty profiles", func(t *testing.T) {
		a, err := g.Generate(context.Background(), "What is your favourite colour?", &domain.Profile{})
		require.NoError(t, err)
		assert.Contains(t, a.Text, "relevant technologies")
		assert.NotEmpty(t, a.Sources)
	})

	t.Run("Should answer every common question", func(t *testing.T) {
		for _, q := range CommonQuestions {
			a, err := g.Generate(context.Background(), q, nil)
			require.NoError(t, err)
			assert.NotEmpty(t, a.Text, q)
		}
	})
}

func TestTemplateResumeAnalyzer(t *testing.T) {
	a := NewTemplateResumeAnalyzer(0)
	profile := &domain.Profile{
		Skills: []string{"Go", "PostgreSQL", "React Native"},
		Experience: []domain.Experience{
			{Company: "TechCorp", Title: "Backend Engineer", Duration: "2018-2023", Description: "Built Kubernetes operators"},
		},
		Education: []domain.Education{{School: "State University", Degree: "BSc Computer Science"}},
	}
	req := domain.AnalyzeResumeRequest{Keywords: []string{"go", "React", " Kubernetes ", "GraphQL", "AWS Lambda", "Go"}}

	t.Run("Should sort keywords into strong, partial and missing", func(t *testing.T) {
		res, err := a.Analyze(context.Background(), profile, req)
		require.NoError(t, err)

		assert.Equal(t, []string{"go", "5+ years experience"}, res.MatchDetails.StrongMatches)
		assert.Equal(t, []string{"React", "Kubernetes"}, res.MatchDetails.PartialMatches)
		assert.Equal(t, []string{"GraphQL", "AWS Lambda"}, res.MatchDetails.Missing)
		assert.Equal(t, []string{"GraphQL", "AWS Lambda"}, res.MissingKeywords)
	})

	t.Run("Should score with fixed weights", func(t *testing.T) {
		res, err := a.Analyze(context.Background(), profile, req)
		require.NoError(t, err)

		assert.Equal(t, domain.ScoreBreakdown{SkillsMatch: 20, ExperienceMatch: 100, EducationMatch: 90, KeywordsMatch: 60}, res.Breakdown)
		assert.Equal(t, 59, res.Score)
		assert.Equal(t, "weak", res.Rating)
		assert.Equal(t, AnalysisConfidence, res.Confidence)
		require.Len(t, res.Steps, 5)
		assert.Equal(t, 100, res.Steps[4].Progress)
	})

	t.Run("Should suggest fixes in impact order", func(t *testing.T) {
		res, err := a.Analyze(context.Background(), profile, req)
		require.NoError(t, err)

		require.Len(t, res.Suggestions, 4)
		assert.Equal(t, domain.Suggestion{
			ID: 1, ContentID: "sugg-1", Type: domain.SuggestionSkillGap, Impact: domain.ImpactHigh,
			Text: "Add 'GraphQL' to your skills", Reasoning: "2 of the job's keywords are not on your profile",
		}, res.Suggestions[0])
		assert.Equal(t, "List 'React' as a skill", res.Suggestions[1].Text)
		assert.Equal(t, "Quantify your impact at TechCorp", res.Suggestions[2].Text)
		assert.Equal(t, domain.SuggestionFormatting, res.Suggestions[3].Type)
		assert.Equal(t, "sugg-4", res.Suggestions[3].ContentID)
	})

	t.Run("Should return the same analysis for the same input", func(t *testing.T) {
		first, err := a.Analyze(context.Background(), profile, req)
		require.NoError(t, err)
		second, err := a.Analyze(context.Background(), profile, req)
		require.NoError(t, err)
		assert.Equal(t, first, second)
	})

	t.Run("Should use resume text for partial matches", func(t *testing.T) {
		res, err := a.Analyze(context.Background(), nil, domain.AnalyzeResumeRequest{
			Keywords:   []string{"GraphQL", "Rust"},
			ResumeText: "Shipped public GraphQL APIs",
		})
		require.NoError(t, err)
		assert.Equal(t, []string{"GraphQL"}, res.MatchDetails.PartialMatches)
		assert.Equal(t, []string{"Rust"}, res.MissingKeywords)
		assert.Empty(t, res.MatchDetails.StrongMatches)
		assert.NotNil(t, res.MatchDetails.StrongMatches)
	})

	t.Run("Should score an empty profile low but still advise", func(t *testing.T) {
		res, err := a.Analyze(context.Background(), &domain.Profile{}, domain.AnalyzeResumeRequest{Keywords: []string{"Go"}})
		require.NoError(t, err)
		assert.Equal(t, domain.ScoreBreakdown{SkillsMatch: 0, ExperienceMatch: 30, EducationMatch: 50, KeywordsMatch: 0}, res.Breakdown)
		assert.Equal(t, 15, res.Score)
		require.Len(t, res.Suggestions, 3)
		assert.Equal(t, "Add your most recent role", res.Suggestions[1].Text)
		assert.Equal(t, domain.ImpactHigh, res.Suggestions[1].Impact)
	})

	t.Run("Should stop waiting when the context ends", func(t *testing.T) {
		slow := NewTemplateResumeAnalyzer(time.Hour)
		ctx, cancel := context.WithCancel(context.Background())
		cancel()
		_, err := slow.Analyze(ctx, profile, req)
		assert.ErrorIs(t, err, context.Canceled)
	})
}

func TestScoreRating(t *testing.T) {
	cases := map[int]string{100: "strong", 80: "strong", 79: "fair", 60: "fair", 59: "weak", 0: "weak"}
	for score, want := range cases {
		assert.Equal(t, want, ScoreRating(score), "score=%d", score)
	}
}
