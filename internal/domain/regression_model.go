package domain

import (
	"fmt"
	"time"

	"github.com/google/uuid"
)

// RegressionModel is one versioned coefficient set in the model registry.
type RegressionModel struct {
	ID              uuid.UUID `gorm:"type:uuid;primaryKey;default:gen_random_uuid()" json:"id"`
	Name            string    `gorm:"type:varchar(64);not null;uniqueIndex:idx_regression_models_name_version" json:"name"`
	Version         int       `gorm:"not null;uniqueIndex:idx_regression_models_name_version" json:"version"`
	Intercept       float64   `gorm:"not null" json:"intercept"`
	WakeSecondsCoef float64   `gorm:"not null" json:"wake_seconds_coef"`
	SleepGoalCoef   float64   `gorm:"not null" json:"sleep_goal_coef"`
	CaffeineCoef    float64   `gorm:"not null" json:"caffeine_coef"`
	Active          bool      `gorm:"not null;default:false;index" json:"active"`
	CreatedAt       time.Time `gorm:"autoCreateTime;index" json:"created_at"`
}

func (RegressionModel) TableName() string {
	return "regression_models"
}

// VersionLabel returns "name@version".
func (m *RegressionModel) VersionLabel() string {
	return fmt.Sprintf("%s@%d", m.Name, m.Version)
}

// CreateRegressionModelRequest is the request body for registering coefficients.
// @Description Linear regression coefficients predicting sleep hours.
type CreateRegressionModelRequest struct {
	// Model name; versions are numbered per name
	Name string `json:"name" validate:"required,max=64" example:"sleep-calculator"`
	// Constant term, in hours
	Intercept *float64 `json:"intercept" validate:"required" example:"-0.3"`
	// Hours per second of wake time since midnight
	WakeSecondsCoef *float64 `json:"wake_seconds_coef" validate:"required" example:"0.0000035"`
	// Hours per hour of sleep goal
	SleepGoalCoef *float64 `json:"sleep_goal_coef" validate:"required" example:"1.0"`
	// Hours per caffeinated serving
	CaffeineCoef *float64 `json:"caffeine_coef" validate:"required" example:"0.08"`
	// Make this version the one used for predictions
	Activate bool `json:"activate" example:"true"`
}

// RegressionModelResponse is the response body for registry endpoints.
// @Description Registered coefficient set.
type RegressionModelResponse struct {
	ID              uuid.UUID `json:"id" example:"550e8400-e29b-41d4-a716-446655440000"`
	Name            string    `json:"name" example:"sleep-calculator"`
	Version         int       `json:"version" example:"1"`
	Intercept       float64   `json:"intercept" example:"-0.3"`
	WakeSecondsCoef float64   `json:"wake_seconds_coef" example:"0.0000035"`
	SleepGoalCoef   float64   `json:"sleep_goal_coef" example:"1.0"`
	CaffeineCoef    float64   `json:"caffeine_coef" example:"0.08"`
	Active          bool      `json:"active" example:"true"`
	CreatedAt       time.Time `json:"created_at" example:"2024-01-16T07:05:00Z"`
}

func (m *RegressionModel) ToResponse() RegressionModelResponse {
	return RegressionModelResponse{
		ID:              m.ID,
		Name:            m.Name,
		Version:         m.Version,
		Intercept:       m.Intercept,
		WakeSecondsCoef: m.WakeSecondsCoef,
		SleepGoalCoef:   m.SleepGoalCoef,
		CaffeineCoef:    m.CaffeineCoef,
		Active:          m.Active,
		CreatedAt:       m.CreatedAt,
	}
}

// RegressionModelListResponse is the response body for listing the registry.
// @Description Paginated list of registered models.
type RegressionModelListResponse struct {
	Data       []RegressionModelResponse `json:"data"`
	Pagination PaginationResponse        `json:"pagination"`
}

// PaginationResponse contains pagination metadata.
// @Description Cursor-based pagination info.
type PaginationResponse struct {
	// Cursor for fetching the next page (empty if no more pages)
	NextCursor string `json:"next_cursor,omitempty" example:"eyJpZCI6IjU1MGU4NDAwLWUyOWItNDFkNC1hNzE2LTQ0NjY1NTQ0MDAwMCJ9"`
	// True if more results are available
	HasMore bool `json:"has_more" example:"true"`
}

// RegressionModelFilter contains filter parameters for listing the registry.
type RegressionModelFilter struct {
	Name   string
	Limit  int
	Cursor string
}
