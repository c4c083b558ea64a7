package service

import (
	"context"
	"errors"
	"fmt"
	"log"
	"math"
	"time"

	"github.com/blaisecz/bedtime-advisor/internal/domain"
	"github.com/blaisecz/bedtime-advisor/internal/model"
	"github.com/blaisecz/bedtime-advisor/pkg/timefmt"
	"go.opentelemetry.io/otel"
	"go.opentelemetry.io/otel/attribute"
	"go.opentelemetry.io/otel/codes"
	"go.opentelemetry.io/otel/trace"
)

// MaxPredictedSleepHours bounds model output; anything longer is treated as a failed prediction.
const MaxPredictedSleepHours = 24.0 * 7

// BedtimeService turns the screen inputs into a recommended bedtime.
type BedtimeService interface {
	// Estimate returns wake time minus the predicted sleep duration.
	// Invalid input yields domain.ErrInvalidInput; any model failure yields domain.ErrPrediction.
	Estimate(ctx context.Context, in domain.BedtimeInput) (*domain.BedtimeRecommendation, error)
	// Calculate runs Estimate and builds the alert shown to the user. Prediction
	// failures become the fixed failure alert; only invalid input is returned as an error.
	Calculate(ctx context.Context, in domain.BedtimeInput, locale string) (domain.BedtimeResult, error)
}

type bedtimeService struct {
	model         model.SleepModel
	defaultLocale string
	tracer        trace.Tracer
}

// NewBedtimeService creates a new BedtimeService. A nil model makes every estimate fail.
func NewBedtimeService(sleepModel model.SleepModel, defaultLocale string) BedtimeService {
	if defaultLocale == "" {
		defaultLocale = timefmt.DefaultLocale
	}
	return &bedtimeService{
		model:         sleepModel,
		defaultLocale: defaultLocale,
		tracer:        otel.Tracer("bedtime-advisor/service"),
	}
}

func (s *bedtimeService) Estimate(ctx context.Context, in domain.BedtimeInput) (*domain.BedtimeRecommendation, error) {
	if err := in.Validate(); err != nil {
		return nil, err
	}

	ctx, span := s.tracer.Start(ctx, "bedtime.estimate", trace.WithAttributes(
		attribute.String("bedtime.wake_time", in.WakeTime.String()),
		attribute.Float64("bedtime.sleep_goal_hours", in.SleepGoalHours),
		attribute.Int("bedtime.caffeine_cups", in.CaffeineCups),
	))
	defer span.End()

	features := model.Features{
		WakeSeconds:    float64(in.WakeTime.SecondsSinceMidnight()),
		SleepGoalHours: in.SleepGoalHours,
		CaffeineCups:   float64(in.CaffeineCups),
	}

	pred, err := s.predict(ctx, features)
	if err != nil {
		span.RecordError(err)
		span.SetStatus(codes.Error, "prediction failed")
		return nil, fmt.Errorf("%w: %v", domain.ErrPrediction, err)
	}

	hours := pred.EstimatedSleepHours
	if math.IsNaN(hours) || math.IsInf(hours, 0) || hours < 0 || hours > MaxPredictedSleepHours {
		span.SetStatus(codes.Error, "implausible prediction")
		return nil, fmt.Errorf("%w: model returned %v hours", domain.ErrPrediction, hours)
	}

	sleep := time.Duration(math.Round(hours*3600)) * time.Second
	rec := domain.NewBedtimeRecommendation(in.WakeTime, sleep)
	rec.ModelVersion = pred.ModelVersion

	span.SetAttributes(
		attribute.Float64("bedtime.predicted_sleep_hours", hours),
		attribute.String("bedtime.bedtime", rec.Bedtime.String()),
		attribute.Int("bedtime.day_offset", rec.DayOffset),
	)

	return &rec, nil
}

// predict calls the model and turns a panic or an empty answer into an error.
func (s *bedtimeService) predict(ctx context.Context, f model.Features) (pred *model.Prediction, err error) {
	if s.model == nil {
		return nil, model.ErrUnavailable
	}

	defer func() {
		if r := recover(); r != nil {
			pred, err = nil, fmt.Errorf("model panicked: %v", r)
		}
	}()

	pred, err = s.model.Predict(ctx, f)
	if err == nil && pred == nil {
		err = errors.New("model returned no prediction")
	}
	return pred, err
}

func (s *bedtimeService) Calculate(ctx context.Context, in domain.BedtimeInput, locale string) (domain.BedtimeResult, error) {
	rec, err := s.Estimate(ctx, in)
	if err != nil {
		if errors.Is(err, domain.ErrInvalidInput) {
			return domain.BedtimeResult{}, err
		}
		log.Printf("[bedtime] %v", err)
		return domain.BedtimeResult{Alert: domain.FailureAlert()}, nil
	}

	if locale == "" {
		locale = s.defaultLocale
	}
	display := timefmt.ShortClock(rec.Bedtime.Hour, rec.Bedtime.Minute, locale)

	return domain.BedtimeResult{
		Alert:          domain.SuccessAlert(display),
		Recommendation: rec,
		Display:        display,
	}, nil
}
