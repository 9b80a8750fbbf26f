package api

import (
	"net/http"

	"github.com/go-chi/chi/v5"
	httpSwagger "github.com/swaggo/http-swagger/v2"

	_ "pcos-companion/docs"
	"pcos-companion/internal/api/handler"
	"pcos-companion/internal/api/middleware"
	"pcos-companion/internal/session"
)

type Router struct {
	sessions          *session.Manager
	healthHandler     *handler.HealthHandler
	authHandler       *handler.AuthHandler
	assessmentHandler *handler.AssessmentHandler
	clinicalHandler   *handler.ClinicalHandler
	trackerHandler    *handler.TrackerHandler
	historyHandler    *handler.HistoryHandler
	chartsHandler     *handler.ChartsHandler
	guidanceHandler   *handler.GuidanceHandler
}

func NewRouter(
	sessions *session.Manager,
	healthHandler *handler.HealthHandler,
	authHandler *handler.AuthHandler,
	assessmentHandler *handler.AssessmentHandler,
	clinicalHandler *handler.ClinicalHandler,
	trackerHandler *handler.TrackerHandler,
	historyHandler *handler.HistoryHandler,
	chartsHandler *handler.ChartsHandler,
	guidanceHandler *handler.GuidanceHandler,
) *Router {
	return &Router{
		sessions:          sessions,
		healthHandler:     healthHandler,
		authHandler:       authHandler,
		assessmentHandler: assessmentHandler,
		clinicalHandler:   clinicalHandler,
		trackerHandler:    trackerHandler,
		historyHandler:    historyHandler,
		chartsHandler:     chartsHandler,
		guidanceHandler:   guidanceHandler,
	}
}

func (rt *Router) Setup() http.Handler {
	r := chi.NewRouter()

	// Middleware
	r.Use(middleware.Recovery)
	r.Use(middleware.Logger)
	r.Use(middleware.Tracing)

	// Health check
	r.Get("/health", rt.healthHandler.Get)

	// Swagger documentation
	r.Get("/swagger/*", httpSwagger.Handler(
		httpSwagger.URL("/swagger/doc.json"),
		httpSwagger.DeepLinking(true),
		httpSwagger.DocExpansion("list"),
		httpSwagger.DomID("swagger-ui"),
	))

	// API v1 routes
	r.Route("/v1", func(r chi.Router) {
		// Auth: login and register are the only open endpoints
		r.Post("/auth/login", rt.authHandler.Login)
		r.Post("/auth/register", rt.authHandler.Register)

		// Everything else requires an authenticated session
		r.Group(func(r chi.Router) {
			r.Use(middleware.RequireSession(rt.sessions))

			r.Get("/auth/session", rt.authHandler.Session)
			r.Post("/auth/logout", rt.authHandler.Logout)

			r.Route("/assessments", func(r chi.Router) {
				r.Post("/", rt.assessmentHandler.Start)
				r.Route("/{id}", func(r chi.Router) {
					r.Get("/", rt.assessmentHandler.Get)
					r.Patch("/fields", rt.assessmentHandler.UpdateFields)
					r.Post("/advance", rt.assessmentHandler.Advance)
					r.Post("/back", rt.assessmentHandler.Back)
					r.Post("/submit", rt.assessmentHandler.Submit)
					r.Post("/reset", rt.assessmentHandler.Reset)
				})
			})

			r.Post("/predictions", rt.clinicalHandler.Predict)
			r.Get("/predictions/sample/{profile}", rt.clinicalHandler.Sample)

			r.Post("/symptom-log", rt.trackerHandler.Save)
			r.Get("/history", rt.historyHandler.Get)
			r.Get("/charts/risk", rt.chartsHandler.Risk)
			r.Post("/guidance", rt.guidanceHandler.Generate)
		})
	})

	return r
}
