package mocks

import (
	"context"

	"github.com/querytube/insight-services/internal/models"
	"github.com/querytube/insight-services/internal/service"
)

// MockAskService is a mock implementation of AskService
type MockAskService struct {
	AskFunc      func(ctx context.Context, question string) (*models.AskResponse, error)
	HealthStatus models.AssistantHealth
	Questions    []string
}

// Verify interface compliance
var _ service.AskService = (*MockAskService)(nil)

func NewMockAskService() *MockAskService {
	return &MockAskService{
		HealthStatus: models.AssistantHealth{Status: "Running", ModelConfigured: true, Database: "up", Driver: "mysql"},
	}
}

func (m *MockAskService) Ask(ctx context.Context, question string) (*models.AskResponse, error) {
	m.Questions = append(m.Questions, question)
	if m.AskFunc != nil {
		return m.AskFunc(ctx, question)
	}
	return &models.AskResponse{
		SQL:     "SELECT * FROM sales",
		Results: models.QueryResult{Rows: []models.Row{}},
		Summary: "No sales were found.",
	}, nil
}

func (m *MockAskService) Health(ctx context.Context) models.AssistantHealth {
	return m.HealthStatus
}

// MockCommentService is a mock implementation of CommentService
type MockCommentService struct {
	AnalyzeFunc  func(ctx context.Context, req models.AnalysisRequest) ([]models.CommentRecord, error)
	HealthStatus models.CommentHealth
	Requests     []models.AnalysisRequest
}

// Verify interface compliance
var _ service.CommentService = (*MockCommentService)(nil)

func NewMockCommentService() *MockCommentService {
	return &MockCommentService{
		HealthStatus: models.CommentHealth{Status: "Running", YouTubeAPIConfigured: true, APIKeyPresent: true},
	}
}

func (m *MockCommentService) Analyze(ctx context.Context, req models.AnalysisRequest) ([]models.CommentRecord, error) {
	m.Requests = append(m.Requests, req)
	if m.AnalyzeFunc != nil {
		return m.AnalyzeFunc(ctx, req)
	}
	return []models.CommentRecord{}, nil
}

func (m *MockCommentService) Health() models.CommentHealth {
	return m.HealthStatus
}
