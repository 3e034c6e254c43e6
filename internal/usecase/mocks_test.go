package usecase_test

import (
	"context"

	"github.com/stretchr/testify/mock"

	"job-copilot-backend/internal/domain"
)

// Mock Repositories
type MockProfileRepo struct {
	mock.Mock
}

func (m *MockProfileRepo) Get(ctx context.Context, userID string) (*domain.Profile, error) {
	args := m.Called(ctx, userID)
	if args.Get(0) == nil {
		return nil, args.Error(1)
	}
	return args.Get(0).(*domain.Profile), args.Error(1)
}

func (m *MockProfileRepo) Save(ctx context.Context, userID string, profile *domain.Profile) error {
	return m.Called(ctx, userID, profile).Error(0)
}

type MockApplicationRepo struct {
	mock.Mock
}

func (m *MockApplicationRepo) List(ctx context.Context, userID string) ([]domain.Application, error) {
	args := m.Called(ctx, userID)
	if args.Get(0) == nil {
		return nil, args.Error(1)
	}
	return args.Get(0).([]domain.Application), args.Error(1)
}

func (m *MockApplicationRepo) ReplaceAll(ctx context.Context, userID string, apps []domain.Application) error {
	return m.Called(ctx, userID, apps).Error(0)
}

type MockFeedbackRepo struct {
	mock.Mock
}

func (m *MockFeedbackRepo) Create(ctx context.Context, fb *domain.Feedback) error {
	return m.Called(ctx, fb).Error(0)
}

// Mock collaborators
type MockFormDetector struct {
	mock.Mock
}

func (m *MockFormDetector) Detect(ctx context.Context, pageURL string) (*domain.DetectedForm, error) {
	args := m.Called(ctx, pageURL)
	if args.Get(0) == nil {
		return nil, args.Error(1)
	}
	return args.Get(0).(*domain.DetectedForm), args.Error(1)
}

type MockAnswerGenerator struct {
	mock.Mock
}

func (m *MockAnswerGenerator) Generate(ctx context.Context, question string, profile *domain.Profile) (*domain.Answer, error) {
	args := m.Called(ctx, question, profile)
	if args.Get(0) == nil {
		return nil, args.Error(1)
	}
	return args.Get(0).(*domain.Answer), args.Error(1)
}

type MockFeedbackSink struct {
	mock.Mock
}

func (m *MockFeedbackSink) Submit(ctx context.Context, userID, contentID string, verdict domain.Verdict, comment string) (*domain.FeedbackAck, error) {
	args := m.Called(ctx, userID, contentID, verdict, comment)
	if args.Get(0) == nil {
		return nil, args.Error(1)
	}
	return args.Get(0).(*domain.FeedbackAck), args.Error(1)
}

type MockResumeAnalyzer struct {
	mock.Mock
}

func (m *MockResumeAnalyzer) Analyze(ctx context.Context, profile *domain.Profile, req domain.AnalyzeResumeRequest) (*domain.ResumeAnalysis, error) {
	args := m.Called(ctx, profile, req)
	if args.Get(0) == nil {
		return nil, args.Error(1)
	}
	return args.Get(0).(*domain.ResumeAnalysis), args.Error(1)
}
