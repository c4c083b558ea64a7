package handler

import (
	"encoding/json"
	"errors"
	"net/http"
	"strconv"

	"github.com/blaisecz/bedtime-advisor/internal/api/validation"
	"github.com/blaisecz/bedtime-advisor/internal/domain"
	"github.com/blaisecz/bedtime-advisor/internal/service"
	"github.com/blaisecz/bedtime-advisor/pkg/pagination"
	"github.com/blaisecz/bedtime-advisor/pkg/problem"
	"github.com/go-chi/chi/v5"
)

type RegressionModelHandler struct {
	service service.RegressionModelService
}

func NewRegressionModelHandler(service service.RegressionModelService) *RegressionModelHandler {
	return &RegressionModelHandler{service: service}
}

// Create handles POST /v1/models
// @Summary Register coefficients
// @Description Store a new version of a linear sleep model. Versions are numbered per name. With activate=true the new version replaces the active one.
// @Tags models
// @Accept json
// @Produce json
// @Param request body domain.CreateRegressionModelRequest true "Coefficients"
// @Success 201 {object} domain.RegressionModelResponse "Registered version"
// @Failure 400 {object} problem.Problem "Invalid JSON body"
// @Failure 409 {object} problem.Problem "Version already exists"
// @Failure 422 {object} problem.Problem "Invalid coefficients"
// @Failure 500 {object} problem.Problem "Server error"
// @Router /models [post]
func (h *RegressionModelHandler) Create(w http.ResponseWriter, r *http.Request) {
	var req domain.CreateRegressionModelRequest
	if err := json.NewDecoder(r.Body).Decode(&req); err != nil {
		problem.BadRequest("Invalid JSON body").Write(w)
		return
	}

	if fieldErrors := validation.Validate(req); fieldErrors != nil {
		problem.ValidationError("Request body contains invalid fields", fieldErrors).Write(w)
		return
	}

	m, err := h.service.Create(r.Context(), &req)
	if err != nil {
		if errors.Is(err, domain.ErrInvalidInput) {
			problem.ValidationError(err.Error(), nil).Write(w)
			return
		}
		if errors.Is(err, domain.ErrConflict) {
			problem.Conflict("Model version already exists").Write(w)
			return
		}
		problem.InternalError("Failed to register model").Write(w)
		return
	}

	w.Header().Set("Content-Type", "application/json")
	w.WriteHeader(http.StatusCreated)
	json.NewEncoder(w).Encode(m.ToResponse())
}

// GetActive handles GET /v1/models/{name}
// @Summary Get active model
// @Description Fetch the active coefficient version for a model name.
// @Tags models
// @Produce json
// @Param name path string true "Model name" example(sleep-calculator)
// @Success 200 {object} domain.RegressionModelResponse "Active version"
// @Failure 404 {object} problem.Problem "No active version"
// @Failure 500 {object} problem.Problem "Server error"
// @Router /models/{name} [get]
func (h *RegressionModelHandler) GetActive(w http.ResponseWriter, r *http.Request) {
	name := chi.URLParam(r, "name")

	m, err := h.service.GetActive(r.Context(), name)
	if err != nil {
		if errors.Is(err, domain.ErrNotFound) {
			problem.NotFound("No active version for model " + name).Write(w)
			return
		}
		problem.InternalError("Failed to get model").Write(w)
		return
	}

	w.Header().Set("Content-Type", "application/json")
	json.NewEncoder(w).Encode(m.ToResponse())
}

// List handles GET /v1/models
// @Summary List registered models
// @Description Fetch registered coefficient versions, newest first.
// @Tags models
// @Produce json
// @Param name query string false "Only versions of this model"
// @Param limit query integer false "Results per page (1-100)" default(20) minimum(1) maximum(100)
// @Param cursor query string false "Cursor from previous response's next_cursor"
// @Success 200 {object} domain.RegressionModelListResponse "Models with pagination"
// @Failure 422 {object} problem.Problem "Invalid query parameters"
// @Failure 500 {object} problem.Problem "Server error"
// @Router /models [get]
func (h *RegressionModelHandler) List(w http.ResponseWriter, r *http.Request) {
	filter, fieldErrors := parseListFilter(r)
	if fieldErrors != nil {
		problem.ValidationError("Invalid query parameters", fieldErrors).Write(w)
		return
	}

	response, err := h.service.List(r.Context(), filter)
	if err != nil {
		problem.InternalError("Failed to list models").Write(w)
		return
	}

	w.Header().Set("Content-Type", "application/json")
	json.NewEncoder(w).Encode(response)
}

func parseListFilter(r *http.Request) (domain.RegressionModelFilter, []problem.FieldError) {
	var filter domain.RegressionModelFilter
	var fieldErrors []problem.FieldError

	filter.Name = r.URL.Query().Get("name")

	// Parse 'limit' parameter
	if limitStr := r.URL.Query().Get("limit"); limitStr != "" {
		limit, err := strconv.Atoi(limitStr)
		if err != nil || limit < 1 {
			fieldErrors = append(fieldErrors, problem.FieldError{
				Field:   "limit",
				Message: "must be a positive integer",
			})
		} else {
			filter.Limit = limit
		}
	}

	// Parse 'cursor' parameter
	if cursor := r.URL.Query().Get("cursor"); cursor != "" {
		if _, err := pagination.DecodeCursor(cursor); err != nil {
			fieldErrors = append(fieldErrors, problem.FieldError{
				Field:   "cursor",
				Message: "is invalid",
			})
		} else {
			filter.Cursor = cursor
		}
	}

	if len(fieldErrors) > 0 {
		return filter, fieldErrors
	}

	return filter, nil
}
