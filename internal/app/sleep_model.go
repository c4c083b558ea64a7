// Package app assembles the sleep model backend selected by configuration.
package app

import (
	"context"
	"errors"
	"fmt"
	"log"

	"github.com/blaisecz/bedtime-advisor/internal/config"
	"github.com/blaisecz/bedtime-advisor/internal/langfuse"
	"github.com/blaisecz/bedtime-advisor/internal/llm"
	"github.com/blaisecz/bedtime-advisor/internal/model"
)

// ErrUnknownBackend is returned for a MODEL_BACKEND value that names no backend.
var ErrUnknownBackend = errors.New("unknown model backend")

// NewSleepModel builds the backend named by cfg.ModelBackend. source is only used by the
// registry backend and may be nil otherwise.
func NewSleepModel(ctx context.Context, cfg *config.Config, source model.ActiveModelSource) (model.SleepModel, error) {
	switch cfg.ModelBackend {
	case config.BackendLinear, "":
		artifact := model.DefaultArtifact()
		if cfg.ModelPath != "" {
			a, err := model.LoadArtifact(cfg.ModelPath)
			if err != nil {
				return nil, err
			}
			artifact = a
		}
		m, err := model.NewLinearModel(artifact)
		if err != nil {
			return nil, err
		}
		log.Printf("[model] linear backend: %s", m.Version())
		return m, nil

	case config.BackendRegistry:
		if source == nil {
			return nil, fmt.Errorf("%w: registry backend needs DATABASE_URL", model.ErrUnavailable)
		}
		log.Printf("[model] registry backend: %s", cfg.ModelName)
		return model.NewRegistryModel(source, cfg.ModelName), nil

	case config.BackendRemote:
		m, err := model.NewRemoteModel(nil, model.RemoteConfig{
			BaseURL: cfg.ModelURL,
			Timeout: cfg.ModelTimeout,
		})
		if err != nil {
			return nil, err
		}
		log.Printf("[model] remote backend: %s", cfg.ModelURL)
		return m, nil

	case config.BackendOpenAI:
		if cfg.OpenAIAPIKey == "" {
			return nil, fmt.Errorf("%w: OPENAI_API_KEY is not set", model.ErrUnavailable)
		}
		prompt, err := langfuse.LoadPrompt(ctx, langfuse.PromptLoaderConfig{
			BaseURL:     cfg.LangfuseBaseURL,
			PublicKey:   cfg.LangfusePublicKey,
			SecretKey:   cfg.LangfuseSecretKey,
			PromptName:  cfg.OpenAIPromptName,
			PromptLabel: "production",
			CachePath:   cfg.OpenAIPromptPath,
			Fallback:    llm.DefaultSystemPrompt,
		})
		if err != nil {
			return nil, err
		}
		log.Printf("[model] openai backend: %s (prompt %s)", cfg.OpenAISleepModel, prompt.Label())
		return llm.NewOpenAIClient(cfg.OpenAIAPIKey, cfg.OpenAISleepModel, prompt.Text), nil

	default:
		return nil, fmt.Errorf("%w: %q", ErrUnknownBackend, cfg.ModelBackend)
	}
}

// NewSleepModelOrUnavailable is NewSleepModel for long-running callers: a backend that cannot
// be built is replaced by one that fails every prediction, so each calculation reports the
// failure alert instead of the process refusing to start. Unknown backends are still returned
// as errors.
func NewSleepModelOrUnavailable(ctx context.Context, cfg *config.Config, source model.ActiveModelSource) (model.SleepModel, error) {
	m, err := NewSleepModel(ctx, cfg, source)
	if err == nil {
		return m, nil
	}
	if errors.Is(err, ErrUnknownBackend) {
		return nil, err
	}
	log.Printf("[model] %s backend unavailable: %v", cfg.ModelBackend, err)
	return model.Unavailable(err), nil
}
