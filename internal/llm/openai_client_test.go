package llm

import (
	"context"
	"encoding/json"
	"errors"
	"net/http"
	"net/http/httptest"
	"strings"
	"testing"

	"github.com/blaisecz/bedtime-advisor/internal/model"
	"github.com/openai/openai-go/v3/option"
)

func TestNewOpenAIClient_EmptyKey(t *testing.T) {
	c := NewOpenAIClient("", "", "")
	if c != nil {
		t.Fatal("expected nil client without API key")
	}

	_, err := c.Predict(context.Background(), model.Features{})
	if !errors.Is(err, model.ErrUnavailable) {
		t.Errorf("nil client: got %v, want model.ErrUnavailable", err)
	}
}

func TestParseEstimate(t *testing.T) {
	tests := []struct {
		name      string
		content   string
		wantHours float64
		wantErr   bool
	}{
		{name: "valid", content: `{"estimated_sleep_hours": 7.75}`, wantHours: 7.75},
		{name: "surrounding whitespace", content: "\n {\"estimated_sleep_hours\": 8}\n", wantHours: 8},
		{name: "fenced", content: "```json\n{\"estimated_sleep_hours\": 9.5}\n```", wantHours: 9.5},
		{name: "bare fence", content: "```\n{\"estimated_sleep_hours\": 6}\n```", wantHours: 6},
		{name: "not json", content: `about eight hours`, wantErr: true},
		{name: "missing field", content: `{"hours": 8}`, wantErr: true},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			pred, err := parseEstimate(tt.content, "gpt-test")
			if tt.wantErr {
				if !errors.Is(err, ErrOpenAIResponse) {
					t.Fatalf("got %v, want ErrOpenAIResponse", err)
				}
				return
			}
			if err != nil {
				t.Fatalf("unexpected error: %v", err)
			}
			if pred.EstimatedSleepHours != tt.wantHours {
				t.Errorf("hours = %v, want %v", pred.EstimatedSleepHours, tt.wantHours)
			}
			if pred.ModelVersion != "openai/gpt-test" {
				t.Errorf("ModelVersion = %q", pred.ModelVersion)
			}
		})
	}
}

func TestOpenAIClient_Predict(t *testing.T) {
	var gotBody map[string]any
	server := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		if !strings.HasSuffix(r.URL.Path, "/chat/completions") {
			t.Errorf("unexpected path %s", r.URL.Path)
		}
		json.NewDecoder(r.Body).Decode(&gotBody)
		w.Header().Set("Content-Type", "application/json")
		w.Write([]byte(`{
			"id": "chatcmpl-1",
			"object": "chat.completion",
			"created": 1700000000,
			"model": "gpt-4o-mini",
			"choices": [{
				"index": 0,
				"finish_reason": "stop",
				"message": {"role": "assistant", "content": "{\"estimated_sleep_hours\": 8.5}"}
			}]
		}`))
	}))
	defer server.Close()

	c := NewOpenAIClient("sk-test", "gpt-4o-mini", "", option.WithBaseURL(server.URL), option.WithMaxRetries(0))
	pred, err := c.Predict(context.Background(), model.Features{WakeSeconds: 25200, SleepGoalHours: 8, CaffeineCups: 1})
	if err != nil {
		t.Fatalf("Predict() error: %v", err)
	}
	if pred.EstimatedSleepHours != 8.5 {
		t.Errorf("hours = %v, want 8.5", pred.EstimatedSleepHours)
	}
	if gotBody["model"] != "gpt-4o-mini" {
		t.Errorf("request model = %v", gotBody["model"])
	}
}

func TestOpenAIClient_RequestError(t *testing.T) {
	server := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		w.WriteHeader(http.StatusUnauthorized)
		w.Write([]byte(`{"error": {"message": "bad key", "type": "invalid_request_error"}}`))
	}))
	defer server.Close()

	c := NewOpenAIClient("sk-bad", "", "", option.WithBaseURL(server.URL), option.WithMaxRetries(0))
	_, err := c.Predict(context.Background(), model.Features{})
	if !errors.Is(err, ErrOpenAIRequest) {
		t.Errorf("got %v, want ErrOpenAIRequest", err)
	}
}
