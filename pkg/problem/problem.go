// Package problem writes RFC 9457 application/problem+json responses.
package problem

import (
	"encoding/json"
	"net/http"
	"strconv"
	"time"
)

const (
	ContentType = "application/problem+json"
	BaseURI     = "https://bedtime-advisor.local/problems"
)

// Problem is the response body of every failed request.
type Problem struct {
	Type   string       `json:"type"`
	Title  string       `json:"title"`
	Status int          `json:"status"`
	Detail string       `json:"detail,omitempty"`
	Errors []FieldError `json:"errors,omitempty"`

	// RetryAfter is sent as a Retry-After header when positive.
	RetryAfter time.Duration `json:"-"`
}

// FieldError names one rejected request field.
type FieldError struct {
	Field   string `json:"field"`
	Message string `json:"message"`
}

func New(status int, problemType, title, detail string) *Problem {
	return &Problem{
		Type:   BaseURI + "/" + problemType,
		Title:  title,
		Status: status,
		Detail: detail,
	}
}

func (p *Problem) WithErrors(errors []FieldError) *Problem {
	p.Errors = errors
	return p
}

func (p *Problem) WithRetryAfter(d time.Duration) *Problem {
	p.RetryAfter = d
	return p
}

func (p *Problem) Write(w http.ResponseWriter) {
	w.Header().Set("Content-Type", ContentType)
	if p.RetryAfter > 0 {
		secs := int((p.RetryAfter + time.Second - 1) / time.Second)
		w.Header().Set("Retry-After", strconv.Itoa(secs))
	}
	w.WriteHeader(p.Status)
	json.NewEncoder(w).Encode(p)
}

func NotFound(detail string) *Problem {
	return New(http.StatusNotFound, "not-found", "Not Found", detail)
}

func BadRequest(detail string) *Problem {
	return New(http.StatusBadRequest, "bad-request", "Bad Request", detail)
}

func ValidationError(detail string, errors []FieldError) *Problem {
	return New(http.StatusUnprocessableEntity, "validation-error", "Validation Error", detail).WithErrors(errors)
}

func Conflict(detail string) *Problem {
	return New(http.StatusConflict, "conflict", "Conflict", detail)
}

func InternalError(detail string) *Problem {
	return New(http.StatusInternalServerError, "internal-error", "Internal Server Error", detail)
}

// predictionRetryAfter is advertised with prediction failures; most come from a remote
// backend that is briefly down or has its circuit open.
const predictionRetryAfter = 30 * time.Second

// PredictionFailed carries the fixed alert shown when a bedtime cannot be calculated.
func PredictionFailed(title, message string) *Problem {
	return New(http.StatusServiceUnavailable, "prediction-failed", title, message).
		WithRetryAfter(predictionRetryAfter)
}
