package service

import (
	"context"
	"time"

	"github.com/blaisecz/bedtime-advisor/internal/domain"
	"github.com/google/uuid"
)

// MockRegressionModelRepository is a mock implementation of RegressionModelRepository
type MockRegressionModelRepository struct {
	models     []*domain.RegressionModel
	listResult []domain.RegressionModel
	err        error
}

func NewMockRegressionModelRepository() *MockRegressionModelRepository {
	return &MockRegressionModelRepository{}
}

func (m *MockRegressionModelRepository) CreateVersion(ctx context.Context, rm *domain.RegressionModel) error {
	if m.err != nil {
		return m.err
	}
	version := 0
	for _, existing := range m.models {
		if existing.Name != rm.Name {
			continue
		}
		if existing.Version > version {
			version = existing.Version
		}
		if rm.Active {
			existing.Active = false
		}
	}
	rm.ID = uuid.New()
	rm.Version = version + 1
	rm.CreatedAt = time.Now()
	m.models = append(m.models, rm)
	return nil
}

func (m *MockRegressionModelRepository) GetActive(ctx context.Context, name string) (*domain.RegressionModel, error) {
	if m.err != nil {
		return nil, m.err
	}
	var found *domain.RegressionModel
	for _, rm := range m.models {
		if rm.Name == name && rm.Active && (found == nil || rm.Version > found.Version) {
			found = rm
		}
	}
	if found == nil {
		return nil, domain.ErrNotFound
	}
	return found, nil
}

func (m *MockRegressionModelRepository) List(ctx context.Context, filter domain.RegressionModelFilter) ([]domain.RegressionModel, error) {
	if m.err != nil {
		return nil, m.err
	}
	if m.listResult != nil {
		result := make([]domain.RegressionModel, len(m.listResult))
		copy(result, m.listResult)
		return result, nil
	}
	var result []domain.RegressionModel
	for _, rm := range m.models {
		if filter.Name == "" || rm.Name == filter.Name {
			result = append(result, *rm)
		}
	}
	return result, nil
}
