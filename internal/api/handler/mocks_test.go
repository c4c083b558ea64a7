package handler

import (
	"context"
	"time"

	"github.com/blaisecz/bedtime-advisor/internal/domain"
	"github.com/blaisecz/bedtime-advisor/internal/langfuse"
	"github.com/google/uuid"
)

// MockBedtimeService is a mock implementation of BedtimeService
type MockBedtimeService struct {
	calculateFunc func(ctx context.Context, in domain.BedtimeInput, locale string) (domain.BedtimeResult, error)
	calls         int
	lastInput     domain.BedtimeInput
	lastLocale    string
}

func (m *MockBedtimeService) Estimate(ctx context.Context, in domain.BedtimeInput) (*domain.BedtimeRecommendation, error) {
	rec := domain.NewBedtimeRecommendation(in.WakeTime, 8*time.Hour)
	return &rec, nil
}

func (m *MockBedtimeService) Calculate(ctx context.Context, in domain.BedtimeInput, locale string) (domain.BedtimeResult, error) {
	m.calls++
	m.lastInput = in
	m.lastLocale = locale
	if m.calculateFunc != nil {
		return m.calculateFunc(ctx, in, locale)
	}
	rec := domain.NewBedtimeRecommendation(in.WakeTime, 8*time.Hour)
	rec.ModelVersion = "sleep-calculator@1"
	return domain.BedtimeResult{
		Alert:          domain.SuccessAlert("11:00 PM"),
		Recommendation: &rec,
		Display:        "11:00 PM",
	}, nil
}

// MockRegressionModelService is a mock implementation of RegressionModelService
type MockRegressionModelService struct {
	createFunc    func(ctx context.Context, req *domain.CreateRegressionModelRequest) (*domain.RegressionModel, error)
	getActiveFunc func(ctx context.Context, name string) (*domain.RegressionModel, error)
	listFunc      func(ctx context.Context, filter domain.RegressionModelFilter) (*domain.RegressionModelListResponse, error)
}

func (m *MockRegressionModelService) Create(ctx context.Context, req *domain.CreateRegressionModelRequest) (*domain.RegressionModel, error) {
	if m.createFunc != nil {
		return m.createFunc(ctx, req)
	}
	return &domain.RegressionModel{
		ID:              uuid.New(),
		Name:            req.Name,
		Version:         1,
		Intercept:       *req.Intercept,
		WakeSecondsCoef: *req.WakeSecondsCoef,
		SleepGoalCoef:   *req.SleepGoalCoef,
		CaffeineCoef:    *req.CaffeineCoef,
		Active:          req.Activate,
		CreatedAt:       time.Now(),
	}, nil
}

func (m *MockRegressionModelService) GetActive(ctx context.Context, name string) (*domain.RegressionModel, error) {
	if m.getActiveFunc != nil {
		return m.getActiveFunc(ctx, name)
	}
	return &domain.RegressionModel{ID: uuid.New(), Name: name, Version: 1, Active: true, CreatedAt: time.Now()}, nil
}

func (m *MockRegressionModelService) List(ctx context.Context, filter domain.RegressionModelFilter) (*domain.RegressionModelListResponse, error) {
	if m.listFunc != nil {
		return m.listFunc(ctx, filter)
	}
	return &domain.RegressionModelListResponse{
		Data:       []domain.RegressionModelResponse{},
		Pagination: domain.PaginationResponse{HasMore: false},
	}, nil
}

// mockLangfuseClient for testing
type mockLangfuseClient struct {
	enabled    bool
	traceID    string
	traceErr   error
	traceCalls int
	scoreCalls int
	lastScore  langfuse.ScoreInput
}

func (m *mockLangfuseClient) IsEnabled() bool {
	return m.enabled
}

func (m *mockLangfuseClient) CreateTrace(ctx context.Context, in langfuse.TraceInput) (string, error) {
	m.traceCalls++
	return m.traceID, m.traceErr
}

func (m *mockLangfuseClient) CreateScore(ctx context.Context, in langfuse.ScoreInput) error {
	m.scoreCalls++
	m.lastScore = in
	return nil
}

func (m *mockLangfuseClient) Flush() {}
