package service

import (
	"context"
	"fmt"

	"github.com/blaisecz/bedtime-advisor/internal/domain"
	"github.com/blaisecz/bedtime-advisor/internal/model"
	"github.com/blaisecz/bedtime-advisor/internal/repository"
	"github.com/blaisecz/bedtime-advisor/pkg/pagination"
)

// RegressionModelService manages the coefficient sets used by the registry-backed model.
type RegressionModelService interface {
	Create(ctx context.Context, req *domain.CreateRegressionModelRequest) (*domain.RegressionModel, error)
	GetActive(ctx context.Context, name string) (*domain.RegressionModel, error)
	List(ctx context.Context, filter domain.RegressionModelFilter) (*domain.RegressionModelListResponse, error)
}

type regressionModelService struct {
	repo repository.RegressionModelRepository
}

func NewRegressionModelService(repo repository.RegressionModelRepository) RegressionModelService {
	return &regressionModelService{repo: repo}
}

func (s *regressionModelService) Create(ctx context.Context, req *domain.CreateRegressionModelRequest) (*domain.RegressionModel, error) {
	if req.Intercept == nil || req.WakeSecondsCoef == nil || req.SleepGoalCoef == nil || req.CaffeineCoef == nil {
		return nil, fmt.Errorf("%w: all coefficients are required", domain.ErrInvalidInput)
	}

	m := &domain.RegressionModel{
		Name:            req.Name,
		Intercept:       *req.Intercept,
		WakeSecondsCoef: *req.WakeSecondsCoef,
		SleepGoalCoef:   *req.SleepGoalCoef,
		CaffeineCoef:    *req.CaffeineCoef,
		Active:          req.Activate,
	}

	// Reject anything the linear model would refuse to load.
	if err := model.ArtifactFromRecord(m).Validate(); err != nil {
		return nil, fmt.Errorf("%w: %v", domain.ErrInvalidInput, err)
	}

	if err := s.repo.CreateVersion(ctx, m); err != nil {
		return nil, err
	}
	return m, nil
}

func (s *regressionModelService) GetActive(ctx context.Context, name string) (*domain.RegressionModel, error) {
	return s.repo.GetActive(ctx, name)
}

func (s *regressionModelService) List(ctx context.Context, filter domain.RegressionModelFilter) (*domain.RegressionModelListResponse, error) {
	models, err := s.repo.List(ctx, filter)
	if err != nil {
		return nil, err
	}

	page, next := pagination.Page(models, filter.Limit, func(m domain.RegressionModel) pagination.Cursor {
		return pagination.Cursor{ID: m.ID, CreatedAt: m.CreatedAt}
	})

	response := &domain.RegressionModelListResponse{
		Data: make([]domain.RegressionModelResponse, len(page)),
		Pagination: domain.PaginationResponse{
			NextCursor: next,
			HasMore:    next != "",
		},
	}
	for i := range page {
		response.Data[i] = page[i].ToResponse()
	}

	return response, nil
}
