package model

import (
	"bytes"
	"context"
	"encoding/json"
	"errors"
	"fmt"
	"io"
	"log"
	"math"
	"net/http"
	"strings"
	"time"

	"github.com/sony/gobreaker/v2"
)

// ErrRemote means the inference service failed or returned an unusable answer.
var ErrRemote = errors.New("remote sleep model failed")

// RemoteConfig configures a RemoteModel.
type RemoteConfig struct {
	BaseURL string
	Timeout time.Duration
	// BreakerName labels the circuit breaker in logs.
	BreakerName string
	// FailureThreshold is the number of consecutive failures that opens the breaker.
	FailureThreshold uint32
	// OpenTimeout is how long the breaker stays open before letting a probe through.
	OpenTimeout time.Duration
}

type remoteResponse struct {
	// ActualSleep is in seconds.
	ActualSleep  *float64 `json:"actual_sleep"`
	ModelVersion string   `json:"model_version,omitempty"`
}

// RemoteModel calls an inference service over HTTP. Requests are made once;
// repeated failures open a circuit breaker that fails fast until OpenTimeout passes.
type RemoteModel struct {
	client  *http.Client
	baseURL string
	breaker *gobreaker.CircuitBreaker[*Prediction]
}

func NewRemoteModel(httpClient *http.Client, cfg RemoteConfig) (*RemoteModel, error) {
	if cfg.BaseURL == "" {
		return nil, fmt.Errorf("%w: remote model URL is empty", ErrUnavailable)
	}
	if httpClient == nil {
		timeout := cfg.Timeout
		if timeout <= 0 {
			timeout = 5 * time.Second
		}
		httpClient = &http.Client{Timeout: timeout}
	}
	if cfg.BreakerName == "" {
		cfg.BreakerName = "sleep-model"
	}
	if cfg.FailureThreshold == 0 {
		cfg.FailureThreshold = 5
	}
	if cfg.OpenTimeout <= 0 {
		cfg.OpenTimeout = 30 * time.Second
	}

	threshold := cfg.FailureThreshold
	breaker := gobreaker.NewCircuitBreaker[*Prediction](gobreaker.Settings{
		Name:        cfg.BreakerName,
		MaxRequests: 1,
		Interval:    60 * time.Second,
		Timeout:     cfg.OpenTimeout,
		ReadyToTrip: func(counts gobreaker.Counts) bool {
			return counts.ConsecutiveFailures >= threshold
		},
		IsExcluded: func(err error) bool {
			var gone *callerGoneError
			return errors.As(err, &gone)
		},
		OnStateChange: func(name string, from, to gobreaker.State) {
			log.Printf("[model] breaker %s: %s -> %s", name, from, to)
		},
	})

	return &RemoteModel{
		client:  httpClient,
		baseURL: strings.TrimSuffix(cfg.BaseURL, "/"),
		breaker: breaker,
	}, nil
}

// callerGoneError marks a call abandoned because the caller's context ended. It says nothing
// about the inference service, so the breaker does not count it.
type callerGoneError struct {
	cause error
}

func (e *callerGoneError) Error() string { return "request abandoned by caller: " + e.cause.Error() }
func (e *callerGoneError) Unwrap() error { return e.cause }

func (m *RemoteModel) Predict(ctx context.Context, f Features) (*Prediction, error) {
	if err := ctx.Err(); err != nil {
		return nil, fmt.Errorf("%w: %w", ErrRemote, err)
	}
	pred, err := m.breaker.Execute(func() (*Prediction, error) {
		pred, err := m.call(ctx, f)
		if err != nil && ctx.Err() != nil {
			return nil, &callerGoneError{cause: fmt.Errorf("%w: %w", ErrRemote, ctx.Err())}
		}
		return pred, err
	})
	if err != nil {
		if errors.Is(err, gobreaker.ErrOpenState) || errors.Is(err, gobreaker.ErrTooManyRequests) {
			return nil, fmt.Errorf("%w: %v", ErrUnavailable, err)
		}
		return nil, err
	}
	return pred, nil
}

func (m *RemoteModel) call(ctx context.Context, f Features) (*Prediction, error) {
	body, err := json.Marshal(f)
	if err != nil {
		return nil, fmt.Errorf("%w: marshal features: %v", ErrRemote, err)
	}

	req, err := http.NewRequestWithContext(ctx, http.MethodPost, m.baseURL+"/predict", bytes.NewReader(body))
	if err != nil {
		return nil, fmt.Errorf("%w: create request: %v", ErrRemote, err)
	}
	req.Header.Set("Content-Type", "application/json")
	req.Header.Set("Accept", "application/json")

	resp, err := m.client.Do(req)
	if err != nil {
		return nil, fmt.Errorf("%w: send request: %v", ErrRemote, err)
	}
	defer resp.Body.Close()

	if resp.StatusCode < 200 || resp.StatusCode > 299 {
		snippet, _ := io.ReadAll(io.LimitReader(resp.Body, 512))
		return nil, fmt.Errorf("%w: status %d: %s", ErrRemote, resp.StatusCode, strings.TrimSpace(string(snippet)))
	}

	var out remoteResponse
	if err := json.NewDecoder(resp.Body).Decode(&out); err != nil {
		return nil, fmt.Errorf("%w: decode response: %v", ErrRemote, err)
	}
	if out.ActualSleep == nil {
		return nil, fmt.Errorf("%w: response has no actual_sleep", ErrRemote)
	}
	if math.IsNaN(*out.ActualSleep) || math.IsInf(*out.ActualSleep, 0) {
		return nil, fmt.Errorf("%w: actual_sleep is not finite", ErrRemote)
	}

	return &Prediction{
		EstimatedSleepHours: *out.ActualSleep / 3600,
		ModelVersion:        out.ModelVersion,
	}, nil
}
