package main

import (
	"context"
	"errors"
	"net/http"
	"os"
	"os/signal"
	"syscall"

	"github.com/alimgiray/gscope-analytics/internal/handlers"
	"github.com/alimgiray/gscope-analytics/internal/middleware"
	"github.com/alimgiray/gscope-analytics/internal/repositories"
	"github.com/alimgiray/gscope-analytics/internal/services"
	"github.com/alimgiray/gscope-analytics/pkg/config"
	"github.com/alimgiray/gscope-analytics/pkg/database"
	"github.com/alimgiray/gscope-analytics/pkg/logger"
	"github.com/gin-gonic/gin"
	"github.com/sirupsen/logrus"
)

func main() {
	// Load configuration; missing GitHub settings stop the process here
	cfg, err := config.Load()
	if err != nil {
		logger.Fatalf("Failed to load config: %v", err)
	}

	logger.Init(cfg.Log.Level)
	gin.SetMode(cfg.Server.Mode)

	// Initialize database
	db, err := database.Open(cfg.Database.Path)
	if err != nil {
		logger.Fatalf("Failed to initialize database: %v", err)
	}
	defer db.Close()

	// Initialize dependencies
	graphQLClient := services.NewGitHubGraphQLClient(
		cfg.GitHub.GraphqlURL, cfg.GitHub.Token, cfg.GitHub.Timeout, cfg.GitHub.RequestsPerSecond,
	)
	commitService := services.NewCommitService(graphQLClient, cfg.GitHub.RepoOwner, cfg.GitHub.RepoName)
	analyticsRunRepo := repositories.NewAnalyticsRunRepository(db)
	analyticsRunService := services.NewAnalyticsRunService(analyticsRunRepo)
	analyticsService := services.NewAnalyticsService(commitService, analyticsRunService)
	reportService := services.NewReportService()

	// Initialize router
	router := gin.New()
	router.Use(middleware.RequestLogger(), gin.Recovery())

	setupRoutes(router, analyticsService, analyticsRunService, reportService)

	// Setup server
	server := &http.Server{
		Addr:         cfg.Server.Addr(),
		Handler:      router,
		ReadTimeout:  cfg.Server.ReadTimeout,
		WriteTimeout: cfg.Server.WriteTimeout,
	}

	// Graceful shutdown
	go func() {
		logger.WithFields(logrus.Fields{
			"addr":  server.Addr,
			"owner": cfg.GitHub.RepoOwner,
			"repo":  cfg.GitHub.RepoName,
		}).Info("Server starting")
		if err := server.ListenAndServe(); err != nil && !errors.Is(err, http.ErrServerClosed) {
			logger.Fatalf("Server failed to start: %v", err)
		}
	}()

	// Wait for interrupt signal
	quit := make(chan os.Signal, 1)
	signal.Notify(quit, syscall.SIGINT, syscall.SIGTERM)
	<-quit

	logger.Infof("Shutting down server...")
	ctx, cancel := context.WithTimeout(context.Background(), cfg.Server.ShutdownGrace)
	defer cancel()
	if err := server.Shutdown(ctx); err != nil {
		logger.WithError(err).Error("Server forced to shut down")
	}
	logger.Infof("Server stopped")
}

func setupRoutes(router *gin.Engine, analyticsService *services.AnalyticsService,
	analyticsRunService *services.AnalyticsRunService, reportService *services.ReportService) {
	// Initialize handlers
	analyticsHandler := handlers.NewAnalyticsHandler(analyticsService, analyticsRunService, reportService)
	healthHandler := handlers.NewHealthHandler()
	notFoundHandler := handlers.NewNotFoundHandler()

	router.NoRoute(notFoundHandler.NotFound)

	api := router.Group("/api/v1/github/analytics")
	{
		api.GET("/unique_authors", analyticsHandler.UniqueAuthors)
		api.GET("/significant_commits", analyticsHandler.SignificantCommits)
		api.GET("/commit_metrics", analyticsHandler.CommitMetrics)
		api.GET("/message_word_frequency", analyticsHandler.MessageWordFrequency)
		api.GET("/report", analyticsHandler.Report)
		api.GET("/runs", analyticsHandler.ListRuns)
	}

	// Health check endpoint
	router.GET("/health", healthHandler.HealthCheck)
}
