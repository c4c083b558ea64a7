package api

import (
	"encoding/json"
	"net/http"
	"time"

	_ "github.com/blaisecz/bedtime-advisor/docs"
	"github.com/blaisecz/bedtime-advisor/internal/api/handler"
	"github.com/blaisecz/bedtime-advisor/internal/api/middleware"
	"github.com/go-chi/chi/v5"
	chimw "github.com/go-chi/chi/v5/middleware"
	httpSwagger "github.com/swaggo/http-swagger/v2"
)

// requestTimeout caps a whole request, including a slow remote or OpenAI model.
const requestTimeout = 30 * time.Second

type Router struct {
	bedtimeHandler *handler.BedtimeHandler
	modelHandler   *handler.RegressionModelHandler
}

// NewRouter wires the HTTP handlers. modelHandler may be nil when no database is configured,
// in which case the model registry routes are not mounted.
func NewRouter(bedtimeHandler *handler.BedtimeHandler, modelHandler *handler.RegressionModelHandler) *Router {
	return &Router{
		bedtimeHandler: bedtimeHandler,
		modelHandler:   modelHandler,
	}
}

func (rt *Router) Setup() http.Handler {
	r := chi.NewRouter()

	r.Use(chimw.RequestID)
	r.Use(chimw.RealIP)
	r.Use(middleware.Recovery)
	r.Use(middleware.Logger)
	r.Use(middleware.Tracing)
	r.Use(middleware.Deadline(requestTimeout))

	r.Get("/health", health)
	r.Get("/swagger/*", httpSwagger.Handler(
		httpSwagger.URL("/swagger/doc.json"),
		httpSwagger.DeepLinking(true),
		httpSwagger.DocExpansion("list"),
		httpSwagger.DomID("swagger-ui"),
	))

	r.Route("/v1", func(r chi.Router) {
		r.Route("/bedtime", rt.bedtimeRoutes)
		if rt.modelHandler != nil {
			r.Route("/models", rt.modelRoutes)
		}
	})

	return r
}

func (rt *Router) bedtimeRoutes(r chi.Router) {
	r.Get("/defaults", rt.bedtimeHandler.Defaults)
	r.Post("/", rt.bedtimeHandler.Calculate)
	r.Post("/feedback", rt.bedtimeHandler.Feedback)
}

func (rt *Router) modelRoutes(r chi.Router) {
	r.Get("/", rt.modelHandler.List)
	r.Post("/", rt.modelHandler.Create)
	r.Get("/{name}", rt.modelHandler.GetActive)
}

func health(w http.ResponseWriter, _ *http.Request) {
	w.Header().Set("Content-Type", "application/json")
	json.NewEncoder(w).Encode(map[string]string{"status": "ok"})
}
