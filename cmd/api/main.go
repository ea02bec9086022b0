package main

import (
	"context"
	"net/http"
	"os"
	"os/signal"
	"syscall"
	"time"

	"github.com/hibiken/asynq"
	"go.uber.org/zap"

	"github.com/capitrack/engine/internal/api"
	"github.com/capitrack/engine/internal/api/handlers"
	"github.com/capitrack/engine/internal/repository"
	"github.com/capitrack/engine/internal/services"
	"github.com/capitrack/engine/internal/workflow"
	"github.com/capitrack/engine/pkg/config"
	"github.com/capitrack/engine/pkg/database"
	"github.com/capitrack/engine/pkg/logger"
)

func main() {
	// Load configuration
	cfg := config.MustLoad()

	// Initialize logger
	log, err := logger.Init(cfg.LogLevel, cfg.LogFormat)
	if err != nil {
		panic(err)
	}
	defer logger.Sync()

	log.Info("Starting CapiTrack Engine",
		zap.String("env", cfg.AppEnv),
		zap.String("addr", cfg.HTTPAddr),
	)

	// Connect to database
	ctx := context.Background()
	db, err := database.OpenPostgres(ctx, cfg.DatabaseURL)
	if err != nil {
		log.Fatal("Failed to connect to database", zap.Error(err))
	}
	log.Info("Database connected successfully")

	// Initialize repositories
	userRepo := repository.NewUserRepository(db)
	projectRepo := repository.NewProjectRepository(db)
	historyRepo := repository.NewHistoryRepository(db)
	bidRepo := repository.NewBidRepository(db)
	invitationRepo := repository.NewInvitationRepository(db)
	updateRepo := repository.NewUpdateRepository(db)
	milestoneRepo := repository.NewMilestoneRepository(db)
	contractorRepo := repository.NewContractorRepository(db)

	// Asynq client for audit retries
	asynqClient := asynq.NewClient(asynq.RedisClientOpt{
		Addr:     cfg.RedisAddr,
		Password: cfg.RedisPassword,
		DB:       0,
	})
	defer asynqClient.Close()

	// JWT secret
	jwtSecret := []byte(cfg.JWTSecret)
	if len(jwtSecret) == 0 {
		log.Warn("JWT_SECRET not set, using default (INSECURE for production)")
		jwtSecret = []byte("change-me-in-production-please")
	}

	// Services
	policy := workflow.CompletionPolicyFor(cfg.RequireMilestoneCompletion)
	flow := services.NewWorkflowService(
		projectRepo, historyRepo, bidRepo, invitationRepo,
		updateRepo, milestoneRepo, policy, asynqClient,
	)
	reports := services.NewReportService(projectRepo)

	// Handlers
	authHandler := handlers.NewAuthHandler(userRepo, jwtSecret)
	projectsHandler := handlers.NewProjectsHandler(projectRepo, historyRepo, flow)
	bidsHandler := handlers.NewBidsHandler(bidRepo, invitationRepo, contractorRepo, flow)
	milestonesHandler := handlers.NewMilestonesHandler(milestoneRepo, flow)
	updatesHandler := handlers.NewUpdatesHandler(updateRepo, flow)
	reportsHandler := handlers.NewReportsHandler(reports)

	// Create router with dependencies
	router := api.NewRouter(api.Dependencies{
		HMACSecret:        jwtSecret,
		AuthHandler:       authHandler,
		ProjectsHandler:   projectsHandler,
		BidsHandler:       bidsHandler,
		MilestonesHandler: milestonesHandler,
		UpdatesHandler:    updatesHandler,
		ReportsHandler:    reportsHandler,
	})

	// Create HTTP server
	srv := &http.Server{
		Addr:              cfg.HTTPAddr,
		Handler:           router,
		ReadHeaderTimeout: 10 * time.Second,
		ReadTimeout:       30 * time.Second,
		WriteTimeout:      60 * time.Second,
		IdleTimeout:       90 * time.Second,
	}

	// Start server in goroutine
	errCh := make(chan error, 1)
	go func() {
		log.Info("HTTP server starting", zap.String("addr", cfg.HTTPAddr))
		if err := srv.ListenAndServe(); err != nil && err != http.ErrServerClosed {
			errCh <- err
		}
	}()

	// Graceful shutdown
	sigCh := make(chan os.Signal, 1)
	signal.Notify(sigCh, syscall.SIGINT, syscall.SIGTERM)

	select {
	case sig := <-sigCh:
		log.Info("shutdown signal received", zap.String("signal", sig.String()))
	case err := <-errCh:
		log.Error("server error", zap.Error(err))
	}

	shutdownCtx, cancel := context.WithTimeout(context.Background(), cfg.ShutdownTimeout)
	defer cancel()

	if err := srv.Shutdown(shutdownCtx); err != nil {
		log.Error("server shutdown error", zap.Error(err))
	} else {
		log.Info("server exited gracefully")
	}
}
