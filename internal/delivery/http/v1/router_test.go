package v1_test

import (
	"bytes"
	"encoding/json"
	"net/http"
	"net/http/httptest"
	"strings"
	"testing"
	"time"

	"github.com/gin-gonic/gin"
	"github.com/golang-jwt/jwt/v5"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"job-copilot-backend/config"
	"job-copilot-backend/internal/assistant"
	v1 "job-copilot-backend/internal/delivery/http/v1"
	"job-copilot-backend/internal/domain"
	"job-copilot-backend/internal/repository/memory"
	"job-copilot-backend/internal/repository/record"
	"job-copilot-backend/internal/usecase"
	"job-copilot-backend/pkg/validation"
)

const testSecret = "router-test-secret"

type envelope struct {
	Success   bool            `json:"success"`
	Message   string          `json:"message"`
	Data      json.RawMessage `json:"data"`
	RequestID string          `json:"request_id"`
}

type testServer struct {
	t      *testing.T
	router *gin.Engine
	token  string
}

func newTestServer(t *testing.T, userID string) *testServer {
	t.Helper()
	return newLimitedTestServer(t, userID, 100000)
}

// newLimitedTestServer sets RATE_LIMIT_THRESHOLD for the server under test
func newLimitedTestServer(t *testing.T, userID string, threshold int) *testServer {
	t.Helper()
	gin.SetMode(gin.TestMode)

	store := memory.NewRecordStore()
	validate := validation.New()
	profiles := record.NewProfileRepository(store)
	detector, err := assistant.NewTemplateFormDetector("", 0)
	require.NoError(t, err)
	sink := usecase.NewFeedbackUsecase(memory.NewFeedbackRepository(), validate)

	router := v1.NewRouter(v1.RouterDeps{
		ProfileUC:     usecase.NewProfileUsecase(profiles, validate),
		AutofillUC:    usecase.NewAutofillUsecase(detector, profiles, record.NewAutofillSessionRepository(store, time.Hour), sink, validate),
		ApplicationUC: usecase.NewApplicationUsecase(record.NewApplicationRepository(store), validate),
		AnswerUC:      usecase.NewAnswerUsecase(profiles, assistant.NewTemplateAnswerGenerator(0), assistant.CommonQuestions, validate),
		ResumeUC:      usecase.NewResumeUsecase(profiles, assistant.NewTemplateResumeAnalyzer(0), validate),
		FeedbackSink:  sink,
		HealthUC:      usecase.NewHealthUsecase(config.StoreMemory, nil),
		Config: &config.Config{
			JWTSecret:              testSecret,
			FrontendURL:            "http://localhost:5173",
			RateLimitThreshold:     threshold,
			RateLimitWindowSeconds: 60,
		},
	})

	tok, err := jwt.NewWithClaims(jwt.SigningMethodHS256, jwt.MapClaims{"sub": userID}).SignedString([]byte(testSecret))
	require.NoError(t, err)
	return &testServer{t: t, router: router, token: tok}
}

func (s *testServer) do(method, path string, body any) *httptest.ResponseRecorder {
	s.t.Helper()
	var buf bytes.Buffer
	if body != nil {
		require.NoError(s.t, json.NewEncoder(&buf).Encode(body))
	}
	req := httptest.NewRequest(method, path, &buf)
	req.Header.Set("Content-Type", "application/json")
	if s.token != "" {
		req.Header.Set("Authorization", "Bearer "+s.token)
	}
	w := httptest.NewRecorder()
	s.router.ServeHTTP(w, req)
	return w
}

func decodeData(t *testing.T, w *httptest.ResponseRecorder, dst any) envelope {
	t.Helper()
	var env envelope
	require.NoError(t, json.Unmarshal(w.Body.Bytes(), &env), w.Body.String())
	if dst != nil {
		require.NoError(t, json.Unmarshal(env.Data, dst))
	}
	return env
}

func profilePayload() domain.Profile {
	return domain.Profile{
		Personal: domain.PersonalInfo{
			Name:     "Alex Morgan",
			Email:    "alex@example.com",
			Phone:    "+1 555 010 0199",
			Location: "Remote",
			LinkedIn: "linkedin.com/in/alexmorgan",
		},
		Field:      "Technology",
		Experience: []domain.Experience{{Company: "Initech", Title: "Platform Engineer", Duration: "2015-2023"}},
		Skills:     []string{"Go", "Kubernetes", "go"},
	}
}

func TestHealthAndAuth(t *testing.T) {
	s := newTestServer(t, "u1")

	s.token = ""
	w := s.do(http.MethodGet, "/v1/health", nil)
	assert.Equal(t, http.StatusOK, w.Code)
	var health map[string]string
	decodeData(t, w, &health)
	assert.Equal(t, "ok", health["status"])

	w = s.do(http.MethodGet, "/v1/profile", nil)
	assert.Equal(t, http.StatusUnauthorized, w.Code)
}

func TestProfileRoutes(t *testing.T) {
	s := newTestServer(t, "u1")

	w := s.do(http.MethodGet, "/v1/profile", nil)
	assert.Equal(t, http.StatusNotFound, w.Code)

	w = s.do(http.MethodPut, "/v1/profile", profilePayload())
	require.Equal(t, http.StatusOK, w.Code, w.Body.String())

	var p domain.Profile
	decodeData(t, s.do(http.MethodGet, "/v1/profile", nil), &p)
	assert.Equal(t, "Alex Morgan", p.Personal.Name)
	assert.Equal(t, []string{"Go", "Kubernetes"}, p.Skills)

	bad := profilePayload()
	bad.Personal.Phone = "call me"
	w = s.do(http.MethodPut, "/v1/profile", bad)
	assert.Equal(t, http.StatusBadRequest, w.Code)
}

func TestAutofillRoutes(t *testing.T) {
	s := newTestServer(t, "u1")

	var form domain.DetectedForm
	w := s.do(http.MethodPost, "/v1/autofill/detect", map[string]string{"url": "https://jobs.example.com/apply/42"})
	require.Equal(t, http.StatusOK, w.Code, w.Body.String())
	decodeData(t, w, &form)
	require.Len(t, form.Fields, 11)

	w = s.do(http.MethodPost, "/v1/autofill/sessions", form)
	assert.Equal(t, http.StatusUnprocessableEntity, w.Code)

	require.Equal(t, http.StatusOK, s.do(http.MethodPut, "/v1/profile", profilePayload()).Code)

	var view domain.AutofillSessionView
	w = s.do(http.MethodPost, "/v1/autofill/sessions", form)
	require.Equal(t, http.StatusCreated, w.Code, w.Body.String())
	decodeData(t, w, &view)
	assert.Equal(t, 7, view.Summary.FilledCount)
	assert.Equal(t, "5-8", view.Mappings[5].MappedValue)
	assert.Equal(t, "linkedin.com/in/alexmorgan", view.Mappings[3].MappedValue)

	w = s.do(http.MethodPatch, "/v1/autofill/sessions/"+view.ID+"/fields/salary", map[string]string{"value": "120k"})
	require.Equal(t, http.StatusOK, w.Code, w.Body.String())
	decodeData(t, w, &view)
	assert.Equal(t, "120k", view.Mappings[8].MappedValue)
	assert.True(t, view.Mappings[8].AIEdited)
	assert.Zero(t, view.Mappings[8].Confidence)

	var ack domain.FeedbackAck
	w = s.do(http.MethodPost, "/v1/autofill/sessions/"+view.ID+"/fields/email/feedback", map[string]bool{"useful": true})
	require.Equal(t, http.StatusAccepted, w.Code, w.Body.String())
	decodeData(t, w, &ack)
	assert.Equal(t, domain.VerdictUp, ack.Type)
	assert.Equal(t, usecase.FieldContentID(view.ID, "email"), ack.ID)

	w = s.do(http.MethodGet, "/v1/autofill/sessions/unknown", nil)
	assert.Equal(t, http.StatusNotFound, w.Code)

	w = s.do(http.MethodPost, "/v1/autofill/detect", map[string]string{"url": "not a url"})
	assert.Equal(t, http.StatusBadRequest, w.Code)
}

func TestApplicationRoutes(t *testing.T) {
	s := newTestServer(t, "u1")

	var app domain.Application
	w := s.do(http.MethodPost, "/v1/applications", map[string]any{
		"company":     "Stripe",
		"role":        "Full Stack Developer",
		"appliedDate": "2024-01-14",
		"location":    "San Francisco, CA",
	})
	require.Equal(t, http.StatusCreated, w.Code, w.Body.String())
	decodeData(t, w, &app)
	assert.Equal(t, domain.StatusSubmitted, app.Status)

	w = s.do(http.MethodPatch, "/v1/applications/"+app.ID+"/status", map[string]string{"status": "Bogus"})
	assert.Equal(t, http.StatusBadRequest, w.Code)

	w = s.do(http.MethodPatch, "/v1/applications/missing/status", map[string]string{"status": string(domain.StatusOffer)})
	assert.Equal(t, http.StatusNotFound, w.Code)

	w = s.do(http.MethodPatch, "/v1/applications/"+app.ID+"/status", map[string]string{"status": string(domain.StatusInterview)})
	require.Equal(t, http.StatusOK, w.Code, w.Body.String())

	var dash domain.ApplicationDashboard
	decodeData(t, s.do(http.MethodGet, "/v1/applications?filter=interviews", nil), &dash)
	require.Len(t, dash.Applications, 1)
	assert.Equal(t, domain.StatusInterview, dash.Applications[0].Status)
	assert.Equal(t, 1, dash.Stats.Interviews)

	var stats domain.ApplicationStats
	decodeData(t, s.do(http.MethodGet, "/v1/applications/stats", nil), &stats)
	assert.Equal(t, 100, stats.ResponseRate)

	var statuses []domain.StatusInfo
	decodeData(t, s.do(http.MethodGet, "/v1/applications/statuses", nil), &statuses)
	assert.Len(t, statuses, 8)

	w = s.do(http.MethodGet, "/v1/applications/export?format=csv", nil)
	require.Equal(t, http.StatusOK, w.Code)
	assert.Contains(t, w.Header().Get("Content-Disposition"), ".csv")
	assert.True(t, strings.HasPrefix(w.Header().Get("Content-Type"), "text/csv"))
	assert.Contains(t, w.Body.String(), "Stripe")

	w = s.do(http.MethodGet, "/v1/applications/export?format=pdf", nil)
	assert.Equal(t, http.StatusBadRequest, w.Code)
}

func TestAnswerAndFeedbackRoutes(t *testing.T) {
	s := newTestServer(t, "u1")

	var questions []string
	decodeData(t, s.do(http.MethodGet, "/v1/answers/questions", nil), &questions)
	assert.Equal(t, assistant.CommonQuestions, questions)

	var answer domain.Answer
	w := s.do(http.MethodPost, "/v1/answers", map[string]string{"question": questions[0], "company": "Vercel", "role": "Frontend Engineer"})
	require.Equal(t, http.StatusOK, w.Code, w.Body.String())
	decodeData(t, w, &answer)
	assert.NotEmpty(t, answer.Text)
	assert.Equal(t, assistant.AnswerConfidence, answer.Confidence)
	assert.Len(t, answer.Sources, 2)

	w = s.do(http.MethodPost, "/v1/answers", map[string]string{})
	assert.Equal(t, http.StatusBadRequest, w.Code)

	var ack domain.FeedbackAck
	w = s.do(http.MethodPost, "/v1/feedback", map[string]string{"contentId": "answer-1", "type": "edited", "comment": "shortened"})
	require.Equal(t, http.StatusAccepted, w.Code, w.Body.String())
	env := decodeData(t, w, &ack)
	assert.True(t, env.Success)
	assert.Equal(t, domain.FeedbackAck{Success: true, ID: "answer-1", Type: domain.VerdictEdited}, ack)

	w = s.do(http.MethodPost, "/v1/feedback", map[string]string{"contentId": "answer-1", "type": "love"})
	assert.Equal(t, http.StatusBadRequest, w.Code)
}

func TestResumeRoutes(t *testing.T) {
	s := newTestServer(t, "u1")
	require.Equal(t, http.StatusOK, s.do(http.MethodPut, "/v1/profile", profilePayload()).Code)

	var res domain.ResumeAnalysis
	w := s.do(http.MethodPost, "/v1/resume/analyze", map[string]any{"keywords": []string{"Go", "Kubernetes", "GraphQL"}})
	require.Equal(t, http.StatusOK, w.Code, w.Body.String())
	decodeData(t, w, &res)

	assert.Equal(t, []string{"Go", "Kubernetes", "8+ years experience"}, res.MatchDetails.StrongMatches)
	assert.Equal(t, []string{"GraphQL"}, res.MissingKeywords)
	assert.Equal(t, domain.ScoreBreakdown{SkillsMatch: 67, ExperienceMatch: 100, EducationMatch: 50, KeywordsMatch: 67}, res.Breakdown)
	assert.Equal(t, 73, res.Score)
	assert.Equal(t, "fair", res.Rating)
	require.NotEmpty(t, res.Suggestions)
	assert.Equal(t, "sugg-1", res.Suggestions[0].ContentID)

	w = s.do(http.MethodPost, "/v1/feedback", map[string]string{"contentId": res.Suggestions[0].ContentID, "type": "up"})
	assert.Equal(t, http.StatusAccepted, w.Code, w.Body.String())

	w = s.do(http.MethodPost, "/v1/resume/analyze", map[string]any{"keywords": []string{}})
	assert.Equal(t, http.StatusBadRequest, w.Code)

	w = s.do(http.MethodPost, "/v1/resume/analyze", map[string]any{"keywords": "Go"})
	assert.Equal(t, http.StatusBadRequest, w.Code)
}

func TestGenerationRateLimit(t *testing.T) {
	t.Run("Should keep a budget of one for small thresholds", func(t *testing.T) {
		s := newLimitedTestServer(t, "u1", 3)
		body := map[string]any{"keywords": []string{"Go"}}

		assert.Equal(t, http.StatusOK, s.do(http.MethodPost, "/v1/resume/analyze", body).Code)
		w := s.do(http.MethodPost, "/v1/resume/analyze", body)
		assert.Equal(t, http.StatusTooManyRequests, w.Code)
		assert.Equal(t, "1", w.Header().Get("X-RateLimit-Limit"))
	})
}
