// Package model holds the sleep prediction capability and its backends.
// A SleepModel is a black-box regression from (wake time, sleep goal, caffeine)
// to the sleep a person actually needs.
package model

import (
	"context"
	"errors"
)

// ErrUnavailable means the backend is not configured or could not be loaded.
var ErrUnavailable = errors.New("sleep model unavailable")

// Features are the three model inputs.
type Features struct {
	// WakeSeconds is the wake time as seconds since midnight.
	WakeSeconds    float64 `json:"wake"`
	SleepGoalHours float64 `json:"estimated_sleep"`
	CaffeineCups   float64 `json:"coffee"`
}

// Prediction is the model output.
type Prediction struct {
	EstimatedSleepHours float64
	// ModelVersion identifies the coefficients or remote model used, if known.
	ModelVersion string
}

// SleepModel predicts necessary sleep. Implementations must be safe for concurrent use.
type SleepModel interface {
	Predict(ctx context.Context, f Features) (*Prediction, error)
}

// Func adapts a function to SleepModel.
type Func func(ctx context.Context, f Features) (*Prediction, error)

func (fn Func) Predict(ctx context.Context, f Features) (*Prediction, error) {
	return fn(ctx, f)
}

// Constant returns a model that always predicts the given hours.
func Constant(hours float64) SleepModel {
	return Func(func(context.Context, Features) (*Prediction, error) {
		return &Prediction{EstimatedSleepHours: hours, ModelVersion: "constant"}, nil
	})
}

// Unavailable returns a model that always fails with ErrUnavailable wrapping cause.
func Unavailable(cause error) SleepModel {
	return Func(func(context.Context, Features) (*Prediction, error) {
		if cause == nil {
			return nil, ErrUnavailable
		}
		return nil, errors.Join(ErrUnavailable, cause)
	})
}
