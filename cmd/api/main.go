package main

import (
	"context"
	"job-copilot-backend/config"
	_ "job-copilot-backend/docs" // Important for Swagger
	"job-copilot-backend/internal/assistant"
	v1 "job-copilot-backend/internal/delivery/http/v1"
	"job-copilot-backend/internal/delivery/http/middleware"
	"job-copilot-backend/internal/repository"
	"job-copilot-backend/internal/repository/record"
	"job-copilot-backend/internal/usecase"
	"job-copilot-backend/pkg/logger"
	"job-copilot-backend/pkg/redis"
	"job-copilot-backend/pkg/validation"
	"log"
	"net/http"
	"os"
	"os/signal"
	"syscall"
	"time"
)

// @title           Job Copilot API
// @version         1.0
// @description     Profile-driven form autofill, application tracking and answer generation.
// @host            localhost:8080
// @BasePath        /v1
// @securityDefinitions.apikey BearerAuth
// @in header
// @name Authorization
func main() {
	// 1. Load Config
	cfg, err := config.LoadConfig()
	if err != nil {
		log.Fatalf("Failed to load config: %v", err)
	}

	// 2. Setup Logger
	logger.Init(cfg.LogLevel)
	logger.Log.Info("Starting job copilot backend", "port", cfg.Port, "store", cfg.StoreDriver)

	// 3. Setup Redis (optional unless it backs the store)
	if cfg.RedisURL != "" {
		if err := redis.Initialize(redis.Config{URL: cfg.RedisURL, Password: cfg.RedisPassword}); err != nil {
			logger.Log.Warn("Redis unavailable, rate limiting falls back to memory", "error", err)
		}
		defer redis.Close()
	}

	// 4. Setup Stores
	stores, err := repository.Open(context.Background(), cfg)
	if err != nil {
		logger.Log.Error("Failed to open record store", "error", err)
		os.Exit(1)
	}
	defer stores.Close()

	// 5. Setup Repositories
	profileRepo := record.NewProfileRepository(stores.Records)
	applicationRepo := record.NewApplicationRepository(stores.Records)
	sessionRepo := record.NewAutofillSessionRepository(stores.Records, cfg.AutofillSessionTTL)

	// 6. Setup AI collaborators
	detector, err := assistant.NewTemplateFormDetector(cfg.FormTemplatePath, cfg.AILatency)
	if err != nil {
		logger.Log.Error("Failed to load form template", "path", cfg.FormTemplatePath, "error", err)
		os.Exit(1)
	}
	generator := assistant.NewTemplateAnswerGenerator(cfg.AILatency)
	analyzer := assistant.NewTemplateResumeAnalyzer(cfg.AILatency)

	// 7. Setup UseCases
	validate := validation.New()
	feedbackSink := usecase.NewFeedbackUsecase(stores.Feedback, validate)
	profileUC := usecase.NewProfileUsecase(profileRepo, validate)
	autofillUC := usecase.NewAutofillUsecase(detector, profileRepo, sessionRepo, feedbackSink, validate)
	applicationUC := usecase.NewApplicationUsecase(applicationRepo, validate)
	answerUC := usecase.NewAnswerUsecase(profileRepo, generator, assistant.CommonQuestions, validate)
	resumeUC := usecase.NewResumeUsecase(profileRepo, analyzer, validate)

	pingers := map[string]usecase.Pinger{}
	if redis.Client() != nil {
		pingers["redis"] = redis.HealthCheck
	}
	if stores.Pool != nil {
		pingers["database"] = stores.Pool.Ping
	}
	healthUC := usecase.NewHealthUsecase(cfg.StoreDriver, pingers)

	// 8. Setup Router
	accessLogger := middleware.NewAccessLogger()
	defer func() { _ = accessLogger.Sync() }()

	router := v1.NewRouter(v1.RouterDeps{
		ProfileUC:     profileUC,
		AutofillUC:    autofillUC,
		ApplicationUC: applicationUC,
		AnswerUC:      answerUC,
		ResumeUC:      resumeUC,
		FeedbackSink:  feedbackSink,
		HealthUC:      healthUC,
		AccessLogger:  accessLogger,
		Config:        cfg,
	})

	// 9. Start Server
	srv := &http.Server{
		Addr:              ":" + cfg.Port,
		Handler:           router,
		ReadHeaderTimeout: 10 * time.Second,
	}

	go func() {
		if err := srv.ListenAndServe(); err != nil && err != http.ErrServerClosed {
			logger.Log.Error("Listen failed", "error", err)
		}
	}()

	// Graceful Shutdown
	quit := make(chan os.Signal, 1)
	signal.Notify(quit, syscall.SIGINT, syscall.SIGTERM)
	<-quit
	logger.Log.Info("Shutting down server...")

	ctx, cancel := context.WithTimeout(context.Background(), 5*time.Second)
	defer cancel()

	if err := srv.Shutdown(ctx); err != nil {
		logger.Log.Error("Server forced to shutdown", "error", err)
	}

	logger.Log.Info("Server exiting")
}
