package service

import (
	"context"
	"errors"
	"math"
	"testing"
	"time"

	"github.com/blaisecz/bedtime-advisor/internal/domain"
	"github.com/blaisecz/bedtime-advisor/internal/model"
)

func input(wake string, goal float64, cups int) domain.BedtimeInput {
	c, err := domain.ParseClockTime(wake)
	if err != nil {
		panic(err)
	}
	return domain.BedtimeInput{WakeTime: c, SleepGoalHours: goal, CaffeineCups: cups}
}

// recordingModel returns a fixed duration and remembers the features it was given.
type recordingModel struct {
	hours float64
	got   []model.Features
}

func (m *recordingModel) Predict(ctx context.Context, f model.Features) (*model.Prediction, error) {
	m.got = append(m.got, f)
	return &model.Prediction{EstimatedSleepHours: m.hours, ModelVersion: "stub@1"}, nil
}

func TestBedtimeService_Estimate_Scenarios(t *testing.T) {
	tests := []struct {
		name          string
		in            domain.BedtimeInput
		predicted     float64
		wantBedtime   string
		wantDayOffset int
		wantFeatures  model.Features
	}{
		{
			name:          "defaults with eight hour prediction",
			in:            input("07:00", 8.0, 1),
			predicted:     8.0,
			wantBedtime:   "23:00",
			wantDayOffset: -1,
			wantFeatures:  model.Features{WakeSeconds: 25200, SleepGoalHours: 8, CaffeineCups: 1},
		},
		{
			name:          "quarter past six with seven and a quarter hours",
			in:            input("06:15", 9.5, 3),
			predicted:     7.25,
			wantBedtime:   "23:00",
			wantDayOffset: -1,
			wantFeatures:  model.Features{WakeSeconds: 22500, SleepGoalHours: 9.5, CaffeineCups: 3},
		},
		{
			name:          "wraps across midnight",
			in:            input("00:30", 8.0, 0),
			predicted:     1.0,
			wantBedtime:   "23:30",
			wantDayOffset: -1,
			wantFeatures:  model.Features{WakeSeconds: 1800, SleepGoalHours: 8, CaffeineCups: 0},
		},
		{
			name:          "stays on the same day",
			in:            input("13:00", 4.0, 20),
			predicted:     0.5,
			wantBedtime:   "12:30",
			wantDayOffset: 0,
			wantFeatures:  model.Features{WakeSeconds: 46800, SleepGoalHours: 4, CaffeineCups: 20},
		},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			m := &recordingModel{hours: tt.predicted}
			svc := NewBedtimeService(m, "")

			rec, err := svc.Estimate(context.Background(), tt.in)
			if err != nil {
				t.Fatalf("Estimate() error: %v", err)
			}
			if rec.Bedtime.String() != tt.wantBedtime {
				t.Errorf("Bedtime = %s, want %s", rec.Bedtime, tt.wantBedtime)
			}
			if rec.DayOffset != tt.wantDayOffset {
				t.Errorf("DayOffset = %d, want %d", rec.DayOffset, tt.wantDayOffset)
			}
			if rec.ModelVersion != "stub@1" {
				t.Errorf("ModelVersion = %q", rec.ModelVersion)
			}
			if len(m.got) != 1 || m.got[0] != tt.wantFeatures {
				t.Errorf("model received %+v, want %+v", m.got, tt.wantFeatures)
			}
		})
	}
}

func TestBedtimeService_Estimate_ConstantDurationForAllWakeTimes(t *testing.T) {
	const d = 7.5
	svc := NewBedtimeService(model.Constant(d), "")

	for h := 0; h < 24; h++ {
		for _, m := range []int{0, 15, 59} {
			in := domain.BedtimeInput{WakeTime: domain.ClockTime{Hour: h, Minute: m}, SleepGoalHours: 8, CaffeineCups: 1}
			rec, err := svc.Estimate(context.Background(), in)
			if err != nil {
				t.Fatalf("Estimate(%s) error: %v", in.WakeTime, err)
			}

			wantSeconds := ((h*3600+m*60-int(d*3600))%86400 + 86400) % 86400
			gotSeconds := rec.Bedtime.SecondsSinceMidnight() + rec.Seconds
			if gotSeconds != wantSeconds {
				t.Errorf("wake %s: bedtime %s, want %02d:%02d", in.WakeTime, rec.Bedtime, wantSeconds/3600, wantSeconds%3600/60)
			}
			if rec.SleepDuration != 7*time.Hour+30*time.Minute {
				t.Errorf("wake %s: SleepDuration = %v", in.WakeTime, rec.SleepDuration)
			}
		}
	}
}

func TestBedtimeService_Estimate_Idempotent(t *testing.T) {
	svc := NewBedtimeService(model.Constant(8.25), "")
	in := input("05:45", 10.25, 2)

	first, err := svc.Estimate(context.Background(), in)
	if err != nil {
		t.Fatalf("Estimate() error: %v", err)
	}
	second, err := svc.Estimate(context.Background(), in)
	if err != nil {
		t.Fatalf("Estimate() error: %v", err)
	}
	if *first != *second {
		t.Errorf("results differ: %+v vs %+v", first, second)
	}
}

func TestBedtimeService_Estimate_Boundaries(t *testing.T) {
	tests := []struct {
		name    string
		in      domain.BedtimeInput
		wantErr bool
	}{
		{name: "sleep goal 4.0", in: input("07:00", 4.0, 1)},
		{name: "sleep goal 12.0", in: input("07:00", 12.0, 1)},
		{name: "sleep goal 3.75", in: input("07:00", 3.75, 1), wantErr: true},
		{name: "sleep goal 12.25", in: input("07:00", 12.25, 1), wantErr: true},
		{name: "sleep goal off step", in: input("07:00", 8.1, 1), wantErr: true},
		{name: "caffeine 0", in: input("07:00", 8, 0)},
		{name: "caffeine 20", in: input("07:00", 8, 20)},
		{name: "caffeine -1", in: input("07:00", 8, -1), wantErr: true},
		{name: "caffeine 21", in: input("07:00", 8, 21), wantErr: true},
		{name: "wake minute 60", in: domain.BedtimeInput{WakeTime: domain.ClockTime{Hour: 7, Minute: 60}, SleepGoalHours: 8}, wantErr: true},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			m := &recordingModel{hours: 8}
			_, err := NewBedtimeService(m, "").Estimate(context.Background(), tt.in)
			if tt.wantErr {
				if !errors.Is(err, domain.ErrInvalidInput) {
					t.Fatalf("got %v, want ErrInvalidInput", err)
				}
				if len(m.got) != 0 {
					t.Error("model must not be called for rejected input")
				}
				return
			}
			if err != nil {
				t.Fatalf("unexpected error: %v", err)
			}
		})
	}
}

func TestBedtimeService_Estimate_PredictionFailures(t *testing.T) {
	tests := []struct {
		name  string
		model model.SleepModel
	}{
		{name: "nil model", model: nil},
		{name: "model unavailable", model: model.Unavailable(errors.New("artifact missing"))},
		{name: "inference error", model: model.Func(func(context.Context, model.Features) (*model.Prediction, error) {
			return nil, errors.New("inference failed")
		})},
		{name: "panicking model", model: model.Func(func(context.Context, model.Features) (*model.Prediction, error) {
			panic("corrupt weights")
		})},
		{name: "empty prediction", model: model.Func(func(context.Context, model.Features) (*model.Prediction, error) {
			return nil, nil
		})},
		{name: "NaN duration", model: model.Constant(math.NaN())},
		{name: "negative duration", model: model.Constant(-1)},
		{name: "implausible duration", model: model.Constant(MaxPredictedSleepHours + 1)},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			rec, err := NewBedtimeService(tt.model, "").Estimate(context.Background(), input("07:00", 8, 1))
			if !errors.Is(err, domain.ErrPrediction) {
				t.Fatalf("got %v, want ErrPrediction", err)
			}
			if rec != nil {
				t.Errorf("expected no partial result, got %+v", rec)
			}
		})
	}
}

func TestBedtimeService_Calculate(t *testing.T) {
	t.Run("success uses requested locale", func(t *testing.T) {
		svc := NewBedtimeService(model.Constant(8), "en-GB")

		res, err := svc.Calculate(context.Background(), input("07:00", 8, 1), "en-US")
		if err != nil {
			t.Fatalf("Calculate() error: %v", err)
		}
		if !res.Succeeded() {
			t.Fatal("expected success")
		}
		if res.Alert.Title != "Your ideal bedtime is..." || res.Alert.Message != "11:00 PM" {
			t.Errorf("unexpected alert: %+v", res.Alert)
		}
	})

	t.Run("success falls back to default locale", func(t *testing.T) {
		svc := NewBedtimeService(model.Constant(7.25), "en-GB")

		res, err := svc.Calculate(context.Background(), input("06:15", 9.5, 3), "")
		if err != nil {
			t.Fatalf("Calculate() error: %v", err)
		}
		if res.Display != "23:00" || res.Alert.Message != "23:00" {
			t.Errorf("unexpected display %q, alert %+v", res.Display, res.Alert)
		}
		if res.Recommendation.DayOffset != -1 {
			t.Errorf("DayOffset = %d, want -1", res.Recommendation.DayOffset)
		}
	})

	t.Run("prediction failure becomes the fixed alert", func(t *testing.T) {
		svc := NewBedtimeService(model.Unavailable(nil), "")

		res, err := svc.Calculate(context.Background(), input("07:00", 8, 1), "en-US")
		if err != nil {
			t.Fatalf("Calculate() error: %v", err)
		}
		if res.Succeeded() {
			t.Fatal("expected failure result")
		}
		if res.Alert.Title != "Error" || res.Alert.Message != "Sorry, there was a problem calculating your bedtime." {
			t.Errorf("unexpected alert: %+v", res.Alert)
		}
	})

	t.Run("invalid input is returned", func(t *testing.T) {
		svc := NewBedtimeService(model.Constant(8), "")

		_, err := svc.Calculate(context.Background(), input("07:00", 13, 1), "")
		if !errors.Is(err, domain.ErrInvalidInput) {
			t.Fatalf("got %v, want ErrInvalidInput", err)
		}
	})
}
