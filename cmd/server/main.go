package main

import (
	"context"
	"net/http"
	"os"
	"os/signal"
	"syscall"
	"time"

	_ "github.com/KOFI-GYIMAH/github-repos/docs"
	"github.com/KOFI-GYIMAH/github-repos/internal/config"
	"github.com/KOFI-GYIMAH/github-repos/internal/db"
	"github.com/KOFI-GYIMAH/github-repos/internal/github"
	"github.com/KOFI-GYIMAH/github-repos/internal/handler"
	md "github.com/KOFI-GYIMAH/github-repos/internal/middleware"
	"github.com/KOFI-GYIMAH/github-repos/internal/models"
	"github.com/KOFI-GYIMAH/github-repos/internal/queue"
	"github.com/KOFI-GYIMAH/github-repos/pkg/logger"
	"github.com/gorilla/mux"
	httpSwagger "github.com/swaggo/http-swagger"
)

// @title GitHub Repositories Client
// @version 1.0.0
// @description Lists and fetches GitHub repositories through an authenticated API client.
// @host localhost:8081
// @BasePath /v1
func main() {
	// * Load configuration
	cfg, err := config.LoadConfiguration()
	if err != nil {
		logger.Error("‼️ Failed to load config: %v", err)
		os.Exit(1)
	}

	if cfg.Debug {
		logger.SetLevel(logger.LevelDebug)
	}

	// * Request sinks: the log always, the journal and broker when configured
	sinks := []models.RequestSink{github.LoggerSink{}}

	var journal models.Journal
	if cfg.DBURL != "" {
		database, err := db.NewPostgresDB(cfg.DBURL)
		if err != nil {
			logger.Error("Failed to initialize request journal: %v", err)
			os.Exit(1)
		}
		defer database.Close()

		if err := database.Migrate(cfg.MigrationsURL); err != nil {
			logger.Error("Failed to run migrations: %v", err)
			os.Exit(1)
		}
		logger.Info("Successfully ran migrations")

		journal = database
		sinks = append(sinks, database)
	}

	if cfg.RabbitMQURL != "" {
		rabbitMQ, err := queue.NewRabbitMQ(cfg.RabbitMQURL)
		if err != nil {
			logger.Error("Failed to initialize RabbitMQ: %v", err)
			os.Exit(1)
		}
		defer rabbitMQ.Close()

		sinks = append(sinks, rabbitMQ)
	}

	// * Initialize GitHub client
	opts := []github.Option{github.WithRequestSinks(sinks...)}
	if cfg.GitHubAPIURL != "" {
		opts = append(opts, github.WithBaseURL(cfg.GitHubAPIURL))
	}
	githubClient := github.NewClient(github.Credentials{
		Username: cfg.GitHubUsername,
		Token:    cfg.GitHubToken,
	}, opts...)

	// * Create API server
	apiHandler := handler.NewRepositoryHandler(githubClient, journal)
	router := mux.NewRouter()
	router.Use(md.LoggingMiddleware)
	api := router.PathPrefix("/v1").Subrouter()

	apiHandler.RegisterRoutes(api)
	router.PathPrefix("/v1/swagger/").Handler(httpSwagger.WrapHandler)

	server := &http.Server{
		Addr:    cfg.ServerPort,
		Handler: router,
	}

	go func() {
		logger.Info("Starting API server on %s", cfg.ServerPort)
		if err := server.ListenAndServe(); err != nil && err != http.ErrServerClosed {
			logger.Error("API server error: %v", err)
			os.Exit(1)
		}
	}()

	// * Wait for termination signal
	sigChan := make(chan os.Signal, 1)
	signal.Notify(sigChan, syscall.SIGINT, syscall.SIGTERM)
	<-sigChan

	logger.Info("Shutting down...")

	ctx, cancel := context.WithTimeout(context.Background(), 10*time.Second)
	defer cancel()
	if err := server.Shutdown(ctx); err != nil {
		logger.Error("Graceful shutdown failed: %v", err)
	}
}
