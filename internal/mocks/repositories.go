package mocks

import (
	"context"

	"github.com/querytube/insight-services/internal/models"
	"github.com/querytube/insight-services/internal/repository"
)

// MockQueryRepository is a mock implementation of QueryRepository
type MockQueryRepository struct {
	QueryFunc  func(ctx context.Context, query string) ([]models.Row, error)
	Rows       []models.Row
	QueryError error
	PingError  error
	DriverName string
	Queries    []string
}

// Verify interface compliance
var _ repository.QueryRepository = (*MockQueryRepository)(nil)

func NewMockQueryRepository() *MockQueryRepository {
	return &MockQueryRepository{
		Rows:       make([]models.Row, 0),
		DriverName: "mysql",
	}
}

func (m *MockQueryRepository) Query(ctx context.Context, query string) ([]models.Row, error) {
	m.Queries = append(m.Queries, query)
	if m.QueryFunc != nil {
		return m.QueryFunc(ctx, query)
	}
	if m.QueryError != nil {
		return nil, m.QueryError
	}
	return m.Rows, nil
}

func (m *MockQueryRepository) Ping(ctx context.Context) error {
	return m.PingError
}

func (m *MockQueryRepository) Driver() string {
	return m.DriverName
}
