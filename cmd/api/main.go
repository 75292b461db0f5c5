// Package main is the entry point for the API server.
package main

import (
	"context"
	"fmt"
	"net/http"
	"os"
	"os/signal"
	"syscall"
	"time"

	"github.com/go-chi/chi/v5"
	chimiddleware "github.com/go-chi/chi/v5/middleware"
	"github.com/go-chi/cors"
	"github.com/prometheus/client_golang/prometheus/promhttp"
	"go.uber.org/zap"

	"github.com/onetrip/travel-planner/internal/config"
	"github.com/onetrip/travel-planner/internal/docext"
	"github.com/onetrip/travel-planner/internal/events"
	"github.com/onetrip/travel-planner/internal/handler"
	"github.com/onetrip/travel-planner/internal/llm"
	"github.com/onetrip/travel-planner/internal/middleware"
	"github.com/onetrip/travel-planner/internal/planner"
	"github.com/onetrip/travel-planner/pkg/logger"
)

func main() {
	// Load configuration
	cfg := config.Load()

	// Initialize logger
	log, err := logger.New(cfg.LogLevel)
	if err != nil {
		fmt.Fprintf(os.Stderr, "failed to create logger: %v\n", err)
		os.Exit(1)
	}
	defer log.Sync()
	logger.SetGlobal(log)

	log.Info("starting API server")

	ctx := context.Background()

	// Connect to NATS if configured; the pipeline works without it.
	var eventsClient *events.Client
	var publisher *events.Publisher
	if cfg.NATSURL != "" {
		eventsClient, err = events.Connect(ctx, events.Config{
			URL:      cfg.NATSURL,
			CAFile:   cfg.NATSCAFile,
			CertFile: cfg.NATSCertFile,
			KeyFile:  cfg.NATSKeyFile,
			Token:    cfg.NATSToken,
		}, log)
		if err != nil {
			log.Warn("failed to connect to NATS, event publishing disabled", zap.Error(err))
		} else {
			defer eventsClient.Close()
			publisher = events.NewPublisher(eventsClient)
			if err := publisher.EnsureStream(ctx); err != nil {
				log.Warn("failed to ensure events stream, event publishing disabled", zap.Error(err))
				publisher = nil
			}
		}
	}

	// Initialize LLM client; the pipeline degrades to deterministic
	// fallbacks when none is configured.
	var llmClient llm.Client
	var llmErr error
	switch {
	case cfg.DefaultLLM == string(llm.ProviderAnthropic) && cfg.AnthropicAPIKey != "":
		llmClient, llmErr = llm.NewAnthropicClient(cfg.AnthropicAPIKey)
	case cfg.OpenAIAPIKey != "":
		llmClient, llmErr = llm.NewOpenAIClient(cfg.OpenAIAPIKey)
	case cfg.AnthropicAPIKey != "":
		llmClient, llmErr = llm.NewAnthropicClient(cfg.AnthropicAPIKey)
	}
	if llmErr != nil {
		log.Warn("failed to create LLM client, fallback pipeline only", zap.Error(llmErr))
		llmClient = nil
	}
	if llmClient == nil {
		log.Warn("no LLM configured, fallback pipeline only")
	} else {
		llmClient = llm.WithTimeout(llmClient, cfg.LLMTimeout)
	}

	// Initialize services
	extractor := planner.NewExtractor(llmClient, log)
	detector := planner.NewDetector(llmClient, log)
	synthesizer := planner.NewSynthesizer(llmClient, log)
	recommender := planner.NewRecommender()
	planService := planner.NewPlanService(extractor, detector, synthesizer, recommender, publisher, log)
	docService := docext.NewService(cfg.MaxUploadBytes, log)

	// Initialize handlers
	healthHandler := handler.NewHealthHandler(eventsClient, llmClient != nil)
	travelHandler := handler.NewTravelHandler(planService, docService, log)

	// Create router
	r := chi.NewRouter()

	// Global middleware
	r.Use(chimiddleware.RequestID)
	r.Use(chimiddleware.RealIP)
	r.Use(middleware.Logging(log))
	r.Use(middleware.SecurityHeaders)
	r.Use(chimiddleware.Recoverer)
	r.Use(cors.Handler(cors.Options{
		AllowedOrigins:   []string{"https://*", "http://*"},
		AllowedMethods:   []string{"GET", "POST", "OPTIONS"},
		AllowedHeaders:   []string{"Accept", "Content-Type", "X-Requested-With"},
		ExposedHeaders:   []string{"X-Correlation-ID"},
		AllowCredentials: true,
		MaxAge:           300,
	}))

	// Health endpoints
	r.Get("/health", healthHandler.Health)
	r.Get("/ready", healthHandler.Ready)

	// Metrics endpoint
	r.Handle("/metrics", promhttp.Handler())

	// API routes
	r.Route("/api/v1", func(r chi.Router) {
		r.Use(middleware.RateLimit(cfg.RateLimitRequests, cfg.RateLimitWindow))

		r.Route("/travel", func(r chi.Router) {
			r.Post("/analyze", travelHandler.Analyze)
			r.Post("/analyze/ambiguities", travelHandler.Ambiguities)
			r.Post("/clarify", travelHandler.Clarify)
			r.Get("/styles", travelHandler.Styles)
		})
	})

	// Create HTTP server
	server := &http.Server{
		Addr:         ":" + cfg.ServerPort,
		Handler:      r,
		ReadTimeout:  cfg.ServerReadTimeout,
		WriteTimeout: cfg.ServerWriteTimeout,
		IdleTimeout:  120 * time.Second,
	}

	// Start server in goroutine
	go func() {
		log.Info("server listening", zap.String("port", cfg.ServerPort))
		if err := server.ListenAndServe(); err != nil && err != http.ErrServerClosed {
			log.Error("server error", zap.Error(err))
			os.Exit(1)
		}
	}()

	// Wait for shutdown signal
	quit := make(chan os.Signal, 1)
	signal.Notify(quit, syscall.SIGINT, syscall.SIGTERM)
	<-quit

	log.Info("shutting down server")

	// Graceful shutdown with timeout
	shutdownCtx, cancel := context.WithTimeout(context.Background(), 30*time.Second)
	defer cancel()

	if err := server.Shutdown(shutdownCtx); err != nil {
		log.Error("server forced to shutdown", zap.Error(err))
	}

	log.Info("server stopped")
}
