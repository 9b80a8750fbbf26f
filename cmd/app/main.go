// PCOS Companion API
//
// Local companion service for PCOS risk assessment.
//
//	@title			PCOS Companion API
//	@version		1.0
//	@description	Session, assessment wizard, clinical prediction, symptom tracking and history against a remote prediction backend.
//
//	@BasePath	/v1
//
//	@tag.name			auth
//	@tag.description	Session lifecycle endpoints
//
//	@tag.name			assessments
//	@tag.description	Three-step lifestyle assessment wizard
//
//	@tag.name			predictions
//	@tag.description	Clinical marker predictions
//
//	@tag.name			tracker
//	@tag.description	Daily symptom tracking
//
//	@tag.name			history
//	@tag.description	Past assessments and predictions
package main

import (
	"context"
	"log"
	"net/http"

	"pcos-companion/internal/api"
	"pcos-companion/internal/api/handler"
	"pcos-companion/internal/backend"
	"pcos-companion/internal/clinical"
	"pcos-companion/internal/config"
	"pcos-companion/internal/llm"
	"pcos-companion/internal/session"
	"pcos-companion/internal/telemetry"
	"pcos-companion/internal/tracker"
)

func main() {
	ctx := context.Background()

	// Load configuration
	cfg, err := config.Load()
	if err != nil {
		log.Fatalf("Failed to load configuration: %v", err)
	}

	// Initialize tracing (no-op without an OTLP endpoint)
	shutdownTracer, err := telemetry.InitTracer(ctx, cfg, "pcos-companion")
	if err != nil {
		log.Fatalf("Failed to initialize tracing: %v", err)
	}
	defer func() {
		if err := shutdownTracer(context.Background()); err != nil {
			log.Printf("Tracer shutdown: %v", err)
		}
	}()

	// Backend client and session
	backendClient := backend.NewClient(cfg.BackendBaseURL)
	store := session.NewFileTokenStore(cfg.TokenPath)
	sessions := session.NewManager(backendClient, store)

	// Restore a persisted session; a rejected token is just dropped.
	if err := sessions.Restore(ctx); err != nil {
		log.Printf("Session restore: %v", err)
	}

	// Initialize OpenAI client (may be nil if not configured)
	guidanceLLM := llm.NewOpenAIClient(cfg.OpenAIAPIKey, cfg.OpenAIGuidanceModel)
	if guidanceLLM == nil {
		log.Println("Warning: OpenAI API key not configured, guidance endpoint will be unavailable")
	}

	// Initialize handlers
	healthHandler := handler.NewHealthHandler(backendClient)
	authHandler := handler.NewAuthHandler(sessions)
	assessmentHandler := handler.NewAssessmentHandler(sessions, backendClient)
	clinicalHandler := handler.NewClinicalHandler(sessions, clinical.NewForm(backendClient))
	trackerHandler := handler.NewTrackerHandler(sessions, tracker.New(backendClient))
	historyHandler := handler.NewHistoryHandler(sessions, backendClient)
	chartsHandler := handler.NewChartsHandler()
	guidanceHandler := handler.NewGuidanceHandler(guidanceLLM)

	// Setup router
	router := api.NewRouter(
		sessions,
		healthHandler,
		authHandler,
		assessmentHandler,
		clinicalHandler,
		trackerHandler,
		historyHandler,
		chartsHandler,
		guidanceHandler,
	)
	routerHandler := router.Setup()

	// Start server
	addr := ":" + cfg.Port
	log.Printf("Starting server on %s (backend %s)", addr, cfg.BackendBaseURL)
	if err := http.ListenAndServe(addr, routerHandler); err != nil {
		log.Fatalf("Server failed: %v", err)
	}
}
