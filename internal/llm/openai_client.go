package llm

import (
	"context"
	"encoding/json"
	"errors"
	"fmt"
	"math"
	"strings"

	"github.com/blaisecz/bedtime-advisor/internal/model"
	"github.com/openai/openai-go/v3"
	"github.com/openai/openai-go/v3/option"
)

var (
	// ErrOpenAIRequest indicates an error during the OpenAI API request.
	ErrOpenAIRequest = errors.New("OpenAI request failed")
	// ErrOpenAIResponse indicates an error parsing the OpenAI response.
	ErrOpenAIResponse = errors.New("failed to parse OpenAI response")
)

// DefaultSystemPrompt is used when no prompt is configured in Langfuse or on disk.
const DefaultSystemPrompt = `You estimate how much sleep a person actually needs.

You receive three numbers:
- "wake": the wake-up time as seconds since midnight,
- "estimated_sleep": the hours of sleep the person would like,
- "coffee": the number of caffeinated drinks they have per day.

Caffeine reduces sleep quality, so heavier caffeine use usually means more time in bed
is needed to reach the same amount of rest. Very early wake times make long sleep harder.

You must respond as strict JSON with exactly this shape:

{"estimated_sleep_hours": <number of hours, between 3 and 14>}

No extra fields. No comments. No backticks.`

const userPromptTemplate = `Features:

%s

Respond in the required JSON format.`

type estimateOutput struct {
	EstimatedSleepHours *float64 `json:"estimated_sleep_hours"`
}

// OpenAIClient implements model.SleepModel using the OpenAI API.
type OpenAIClient struct {
	client       openai.Client
	model        string
	systemPrompt string
}

// NewOpenAIClient creates a new OpenAI-backed sleep model.
// Returns nil if apiKey is empty.
func NewOpenAIClient(apiKey, modelName, systemPrompt string, opts ...option.RequestOption) *OpenAIClient {
	if apiKey == "" {
		return nil
	}

	if modelName == "" {
		modelName = "gpt-4o-mini"
	}
	if strings.TrimSpace(systemPrompt) == "" {
		systemPrompt = DefaultSystemPrompt
	}

	client := openai.NewClient(append([]option.RequestOption{option.WithAPIKey(apiKey)}, opts...)...)

	return &OpenAIClient{
		client:       client,
		model:        modelName,
		systemPrompt: systemPrompt,
	}
}

// Predict asks the chat model for a sleep estimate.
func (c *OpenAIClient) Predict(ctx context.Context, f model.Features) (*model.Prediction, error) {
	if c == nil {
		return nil, fmt.Errorf("%w: OpenAI API key not configured", model.ErrUnavailable)
	}

	featuresJSON, err := json.MarshalIndent(f, "", "  ")
	if err != nil {
		return nil, fmt.Errorf("%w: failed to serialize features: %v", ErrOpenAIRequest, err)
	}

	resp, err := c.client.Chat.Completions.New(ctx, openai.ChatCompletionNewParams{
		Model:       c.model,
		Temperature: openai.Float(0),
		Messages: []openai.ChatCompletionMessageParamUnion{
			openai.SystemMessage(c.systemPrompt),
			openai.UserMessage(fmt.Sprintf(userPromptTemplate, string(featuresJSON))),
		},
	})
	if err != nil {
		return nil, fmt.Errorf("%w: %v", ErrOpenAIRequest, err)
	}

	if len(resp.Choices) == 0 {
		return nil, fmt.Errorf("%w: no choices in response", ErrOpenAIResponse)
	}

	return parseEstimate(resp.Choices[0].Message.Content, c.model)
}

// stripFence removes a Markdown code fence some models wrap JSON answers in.
func stripFence(content string) string {
	content = strings.TrimSpace(content)
	if !strings.HasPrefix(content, "```") {
		return content
	}
	content = strings.TrimPrefix(content, "```")
	content = strings.TrimPrefix(content, "json")
	content = strings.TrimSuffix(strings.TrimSpace(content), "```")
	return strings.TrimSpace(content)
}

func parseEstimate(content, modelName string) (*model.Prediction, error) {
	var out estimateOutput
	if err := json.Unmarshal([]byte(stripFence(content)), &out); err != nil {
		return nil, fmt.Errorf("%w: %v", ErrOpenAIResponse, err)
	}
	if out.EstimatedSleepHours == nil {
		return nil, fmt.Errorf("%w: estimated_sleep_hours missing", ErrOpenAIResponse)
	}
	hours := *out.EstimatedSleepHours
	if math.IsNaN(hours) || math.IsInf(hours, 0) {
		return nil, fmt.Errorf("%w: estimated_sleep_hours is not finite", ErrOpenAIResponse)
	}

	return &model.Prediction{EstimatedSleepHours: hours, ModelVersion: "openai/" + modelName}, nil
}
