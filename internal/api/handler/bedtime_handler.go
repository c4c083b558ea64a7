package handler

import (
	"encoding/json"
	"errors"
	"io"
	"log"
	"net/http"

	"github.com/blaisecz/bedtime-advisor/internal/api/validation"
	"github.com/blaisecz/bedtime-advisor/internal/domain"
	"github.com/blaisecz/bedtime-advisor/internal/langfuse"
	"github.com/blaisecz/bedtime-advisor/internal/service"
	"github.com/blaisecz/bedtime-advisor/pkg/problem"
	"go.opentelemetry.io/otel/trace"
)

// BedtimeHandler handles the bedtime calculator endpoints.
type BedtimeHandler struct {
	service        service.BedtimeService
	langfuseClient langfuse.Client
}

// NewBedtimeHandler creates a new BedtimeHandler.
func NewBedtimeHandler(service service.BedtimeService, langfuseClient langfuse.Client) *BedtimeHandler {
	return &BedtimeHandler{
		service:        service,
		langfuseClient: langfuseClient,
	}
}

// Defaults handles GET /v1/bedtime/defaults
// @Summary Get calculator defaults
// @Description Default inputs, labels and control ranges for a freshly opened calculator.
// @Tags bedtime
// @Produce json
// @Success 200 {object} domain.BedtimeDefaultsResponse "Defaults"
// @Router /bedtime/defaults [get]
func (h *BedtimeHandler) Defaults(w http.ResponseWriter, r *http.Request) {
	w.Header().Set("Content-Type", "application/json")
	json.NewEncoder(w).Encode(domain.NewBedtimeDefaultsResponse())
}

// Calculate handles POST /v1/bedtime
// @Summary Calculate bedtime
// @Description Predict the sleep needed for the given wake time, sleep goal and caffeine intake, and return the bedtime. Omitted fields take the defaults.
// @Tags bedtime
// @Accept json
// @Produce json
// @Param request body domain.BedtimeRequest false "Calculator inputs"
// @Success 200 {object} domain.BedtimeResponse "Recommended bedtime"
// @Failure 400 {object} problem.Problem "Invalid JSON body"
// @Failure 422 {object} problem.Problem "Input out of range"
// @Failure 503 {object} problem.Problem "Bedtime could not be calculated"
// @Router /bedtime [post]
func (h *BedtimeHandler) Calculate(w http.ResponseWriter, r *http.Request) {
	var req domain.BedtimeRequest
	if err := json.NewDecoder(r.Body).Decode(&req); err != nil && !errors.Is(err, io.EOF) {
		problem.BadRequest("Invalid JSON body").Write(w)
		return
	}

	if fieldErrors := validation.Validate(req); fieldErrors != nil {
		problem.ValidationError("Request body contains invalid fields", fieldErrors).Write(w)
		return
	}

	in, err := req.ToInput()
	if err != nil {
		problem.ValidationError(err.Error(), nil).Write(w)
		return
	}

	locale := ""
	if req.Locale != nil {
		locale = *req.Locale
	}

	result, err := h.service.Calculate(r.Context(), in, locale)
	if err != nil {
		if errors.Is(err, domain.ErrInvalidInput) {
			problem.ValidationError(err.Error(), nil).Write(w)
			return
		}
		problem.InternalError("Failed to calculate bedtime").Write(w)
		return
	}

	if !result.Succeeded() {
		problem.PredictionFailed(result.Alert.Title, result.Alert.Message).Write(w)
		return
	}

	response := domain.NewBedtimeResponse(result)
	response.TraceID = h.traceID(r, in, response)

	w.Header().Set("Content-Type", "application/json")
	json.NewEncoder(w).Encode(response)
}

// traceID records the calculation in Langfuse when enabled, otherwise falls back to the
// OTEL trace ID so feedback can still be correlated.
func (h *BedtimeHandler) traceID(r *http.Request, in domain.BedtimeInput, resp domain.BedtimeResponse) string {
	if h.langfuseClient != nil && h.langfuseClient.IsEnabled() {
		id, err := h.langfuseClient.CreateTrace(r.Context(), langfuse.TraceInput{
			Name: "bedtime-estimate",
			Input: map[string]any{
				"wake_time":        in.WakeTime.String(),
				"sleep_goal_hours": in.SleepGoalHours,
				"caffeine_cups":    in.CaffeineCups,
			},
			Output: map[string]any{
				"bedtime":               resp.Bedtime,
				"day_offset":            resp.DayOffset,
				"predicted_sleep_hours": resp.PredictedSleepHours,
			},
			Tags:     []string{"bedtime"},
			Metadata: map[string]any{"model_version": resp.ModelVersion},
		})
		if err == nil && id != "" {
			return id
		}
		log.Printf("[bedtime] langfuse trace failed: %v", err)
	}

	span := trace.SpanFromContext(r.Context())
	if span.SpanContext().IsValid() {
		return span.SpanContext().TraceID().String()
	}
	return ""
}

// FeedbackRequest is the request body for bedtime feedback.
// @Description Rating of a previous bedtime recommendation.
type FeedbackRequest struct {
	// Trace ID from the bedtime response
	TraceID string `json:"trace_id" validate:"required" example:"550e8400-e29b-41d4-a716-446655440000"`
	// Rating score (1-5)
	Score int `json:"score" validate:"min=1,max=5" example:"4" minimum:"1" maximum:"5"`
	// Optional comment
	Comment string `json:"comment,omitempty" validate:"max=1000" example:"Woke up rested"`
}

// Feedback handles POST /v1/bedtime/feedback
// @Summary Rate a bedtime recommendation
// @Description Submit a rating and optional comment for a previous recommendation.
// @Tags bedtime
// @Accept json
// @Param body body FeedbackRequest true "Feedback"
// @Success 204 "Feedback submitted"
// @Failure 400 {object} problem.Problem "Invalid JSON body"
// @Failure 422 {object} problem.Problem "Invalid fields"
// @Router /bedtime/feedback [post]
func (h *BedtimeHandler) Feedback(w http.ResponseWriter, r *http.Request) {
	var req FeedbackRequest
	if err := json.NewDecoder(r.Body).Decode(&req); err != nil {
		problem.BadRequest("Invalid JSON body").Write(w)
		return
	}

	if fieldErrors := validation.Validate(req); fieldErrors != nil {
		problem.ValidationError("Request body contains invalid fields", fieldErrors).Write(w)
		return
	}

	// Scores are best effort; feedback is accepted even when Langfuse is off or failing.
	if h.langfuseClient != nil {
		err := h.langfuseClient.CreateScore(r.Context(), langfuse.ScoreInput{
			TraceID: req.TraceID,
			Name:    "bedtime_rating",
			Value:   float64(req.Score),
			Comment: req.Comment,
		})
		if err != nil {
			log.Printf("[bedtime] langfuse score failed: %v", err)
		}
	}

	w.WriteHeader(http.StatusNoContent)
}
