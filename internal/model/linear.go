package model

import (
	"context"
	"errors"
	"fmt"
	"math"
	"os"

	"github.com/blaisecz/bedtime-advisor/internal/domain"
	"gopkg.in/yaml.v3"
)

// ErrInvalidArtifact means a coefficient file or record could not be used.
var ErrInvalidArtifact = errors.New("invalid model artifact")

// DefaultModelName is the name used for built-in and seeded coefficients.
const DefaultModelName = "sleep-calculator"

// Coefficients of hours = Intercept + WakeSeconds*w + SleepGoalHours*s + CaffeineCups*c.
type Coefficients struct {
	WakeSeconds    float64 `yaml:"wake_seconds"`
	SleepGoalHours float64 `yaml:"sleep_goal_hours"`
	CaffeineCups   float64 `yaml:"caffeine_cups"`
}

// Artifact is the on-disk form of a linear sleep model.
type Artifact struct {
	Name         string       `yaml:"name"`
	Version      int          `yaml:"version"`
	Intercept    float64      `yaml:"intercept"`
	Coefficients Coefficients `yaml:"coefficients"`
}

// DefaultArtifact is used when no artifact path or registry is configured.
func DefaultArtifact() Artifact {
	return Artifact{
		Name:      DefaultModelName,
		Version:   1,
		Intercept: -0.3,
		Coefficients: Coefficients{
			WakeSeconds:    0.0000035,
			SleepGoalHours: 1.0,
			CaffeineCups:   0.08,
		},
	}
}

// Validate rejects non-finite values and a missing name.
func (a Artifact) Validate() error {
	if a.Name == "" {
		return fmt.Errorf("%w: name is required", ErrInvalidArtifact)
	}
	for field, v := range map[string]float64{
		"intercept":        a.Intercept,
		"wake_seconds":     a.Coefficients.WakeSeconds,
		"sleep_goal_hours": a.Coefficients.SleepGoalHours,
		"caffeine_cups":    a.Coefficients.CaffeineCups,
	} {
		if math.IsNaN(v) || math.IsInf(v, 0) {
			return fmt.Errorf("%w: %s is not finite", ErrInvalidArtifact, field)
		}
	}
	return nil
}

// ArtifactFromRecord converts a registry record.
func ArtifactFromRecord(m *domain.RegressionModel) Artifact {
	return Artifact{
		Name:      m.Name,
		Version:   m.Version,
		Intercept: m.Intercept,
		Coefficients: Coefficients{
			WakeSeconds:    m.WakeSecondsCoef,
			SleepGoalHours: m.SleepGoalCoef,
			CaffeineCups:   m.CaffeineCoef,
		},
	}
}

// LoadArtifact reads a YAML artifact from path.
func LoadArtifact(path string) (Artifact, error) {
	data, err := os.ReadFile(path)
	if err != nil {
		return Artifact{}, fmt.Errorf("%w: read %s: %v", ErrInvalidArtifact, path, err)
	}
	var a Artifact
	if err := yaml.Unmarshal(data, &a); err != nil {
		return Artifact{}, fmt.Errorf("%w: parse %s: %v", ErrInvalidArtifact, path, err)
	}
	if err := a.Validate(); err != nil {
		return Artifact{}, err
	}
	return a, nil
}

// WriteArtifact writes a YAML artifact to path.
func WriteArtifact(path string, a Artifact) error {
	data, err := yaml.Marshal(a)
	if err != nil {
		return fmt.Errorf("marshal artifact: %w", err)
	}
	return os.WriteFile(path, data, 0o644)
}

// LinearModel evaluates a linear regression locally.
type LinearModel struct {
	artifact Artifact
}

// NewLinearModel validates the artifact and returns a model for it.
func NewLinearModel(a Artifact) (*LinearModel, error) {
	if err := a.Validate(); err != nil {
		return nil, err
	}
	return &LinearModel{artifact: a}, nil
}

// Version returns "name@version".
func (m *LinearModel) Version() string {
	return fmt.Sprintf("%s@%d", m.artifact.Name, m.artifact.Version)
}

func (m *LinearModel) Predict(_ context.Context, f Features) (*Prediction, error) {
	c := m.artifact.Coefficients
	hours := m.artifact.Intercept +
		c.WakeSeconds*f.WakeSeconds +
		c.SleepGoalHours*f.SleepGoalHours +
		c.CaffeineCups*f.CaffeineCups
	return &Prediction{EstimatedSleepHours: hours, ModelVersion: m.Version()}, nil
}
