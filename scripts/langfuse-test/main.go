// Command langfuse-test checks the Langfuse setup used by the API: it resolves the OpenAI sleep
// prompt, sends a sample bedtime trace with a rating, and prints where to find it.
//
// Usage: go run ./scripts/langfuse-test
package main

import (
	"context"
	"fmt"
	"log"
	"time"

	"github.com/blaisecz/bedtime-advisor/internal/config"
	"github.com/blaisecz/bedtime-advisor/internal/langfuse"
	"github.com/blaisecz/bedtime-advisor/internal/llm"
)

func main() {
	cfg := config.Load()

	fmt.Println("=== Langfuse check ===")
	fmt.Printf("Base URL:    %s\n", orEmpty(cfg.LangfuseBaseURL))
	fmt.Printf("Public Key:  %s\n", mask(cfg.LangfusePublicKey))
	fmt.Printf("Secret Key:  %s\n", mask(cfg.LangfuseSecretKey))
	fmt.Printf("Environment: %s\n\n", cfg.LangfuseEnv)

	client := langfuse.NewClient(langfuse.Config{
		BaseURL:     cfg.LangfuseBaseURL,
		PublicKey:   cfg.LangfusePublicKey,
		SecretKey:   cfg.LangfuseSecretKey,
		Environment: cfg.LangfuseEnv,
	})
	if !client.IsEnabled() {
		log.Fatal("Langfuse client is disabled; set LANGFUSE_BASE_URL, LANGFUSE_PUBLIC_KEY and LANGFUSE_SECRET_KEY")
	}

	ctx, cancel := context.WithTimeout(context.Background(), 10*time.Second)
	defer cancel()

	prompt, err := langfuse.LoadPrompt(ctx, langfuse.PromptLoaderConfig{
		BaseURL:     cfg.LangfuseBaseURL,
		PublicKey:   cfg.LangfusePublicKey,
		SecretKey:   cfg.LangfuseSecretKey,
		PromptName:  cfg.OpenAIPromptName,
		PromptLabel: "production",
		Fallback:    llm.DefaultSystemPrompt,
	})
	if err != nil {
		log.Fatalf("Failed to resolve prompt: %v", err)
	}
	fmt.Printf("Prompt:      %s (%d chars)\n", prompt.Label(), len(prompt.Text))

	traceID, err := client.CreateTrace(ctx, langfuse.TraceInput{
		UserID: "langfuse-test",
		Name:   "bedtime-estimate",
		Input: map[string]any{
			"wake_time":        "07:00",
			"sleep_goal_hours": 8.0,
			"caffeine_cups":    1,
		},
		Output: map[string]any{
			"bedtime":               "23:00",
			"day_offset":            -1,
			"predicted_sleep_hours": 8.0,
		},
		Tags:     []string{"langfuse-test"},
		Metadata: map[string]any{"prompt": prompt.Label()},
	})
	if err != nil {
		log.Fatalf("Failed to create trace: %v", err)
	}
	if err := client.CreateScore(ctx, langfuse.ScoreInput{
		TraceID: traceID,
		Name:    "bedtime_rating",
		Value:   5,
		Comment: "sent by langfuse-test",
	}); err != nil {
		log.Fatalf("Failed to create score: %v", err)
	}
	client.Flush()

	fmt.Printf("Trace:       %s/trace/%s\n", cfg.LangfuseBaseURL, traceID)
}

func orEmpty(s string) string {
	if s == "" {
		return "(empty)"
	}
	return s
}

func mask(key string) string {
	switch {
	case key == "":
		return "(empty)"
	case len(key) < 8:
		return "***"
	default:
		return key[:8] + "..."
	}
}
