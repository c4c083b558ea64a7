package model

import (
	"context"
	"errors"
	"fmt"

	"github.com/blaisecz/bedtime-advisor/internal/domain"
)

// ActiveModelSource looks up the active coefficient set for a model name.
type ActiveModelSource interface {
	GetActive(ctx context.Context, name string) (*domain.RegressionModel, error)
}

// RegistryModel loads coefficients from the registry on every prediction, so a newly
// activated version takes effect on the next request.
type RegistryModel struct {
	source ActiveModelSource
	name   string
}

func NewRegistryModel(source ActiveModelSource, name string) *RegistryModel {
	if name == "" {
		name = DefaultModelName
	}
	return &RegistryModel{source: source, name: name}
}

func (m *RegistryModel) Predict(ctx context.Context, f Features) (*Prediction, error) {
	record, err := m.source.GetActive(ctx, m.name)
	if err != nil {
		if errors.Is(err, domain.ErrNotFound) {
			return nil, fmt.Errorf("%w: no active model named %q", ErrUnavailable, m.name)
		}
		return nil, fmt.Errorf("%w: load %q: %v", ErrUnavailable, m.name, err)
	}

	linear, err := NewLinearModel(ArtifactFromRecord(record))
	if err != nil {
		return nil, err
	}
	return linear.Predict(ctx, f)
}
