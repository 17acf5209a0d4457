package main

import (
	"context"
	"log/slog"
	"net/http"
	"os"
	"os/signal"
	"syscall"
	"time"

	"github.com/joho/godotenv"
	"github.com/joshua-takyi/grooviti/internal/config"
	"github.com/joshua-takyi/grooviti/internal/container"
	"github.com/joshua-takyi/grooviti/internal/routes"
	"github.com/joshua-takyi/grooviti/internal/services"
)

func main() {
	// Load environment variables
	_ = godotenv.Load(".env.local")

	// Load configuration
	cfg, err := config.LoadConfig()
	if err != nil {
		slog.Error("Failed to load configuration", "error", err)
		os.Exit(1)
	}
	if err := cfg.ValidateDevServer(); err != nil {
		slog.Error("Invalid dev backend configuration", "error", err)
		os.Exit(1)
	}

	logger := cfg.Logger(os.Stdout)
	logger.Info("Starting Grooviti dev backend", "environment", cfg.Environment)

	backend := container.NewBackend(logger, container.BackendConfig{
		JWTSecret:   cfg.JWTSecret,
		Currency:    cfg.PaymentCurrency,
		CORSOrigins: cfg.CORSOrigins,
	})
	if err := backend.EventService.Seed(context.Background(), services.DefaultEvents(time.Now())); err != nil {
		logger.Error("Failed to seed events", "error", err)
		os.Exit(1)
	}

	router := routes.SetupRoutes(backend)

	server := &http.Server{
		Addr:         ":" + cfg.Port,
		Handler:      router,
		ReadTimeout:  15 * time.Second,
		WriteTimeout: 15 * time.Second,
		IdleTimeout:  60 * time.Second,
	}

	go func() {
		logger.Info("Server starting", "port", cfg.Port)
		if err := server.ListenAndServe(); err != nil && err != http.ErrServerClosed {
			logger.Error("Server failed to start", "error", err)
			os.Exit(1)
		}
	}()

	// Wait for interrupt signal to gracefully shutdown the server
	quit := make(chan os.Signal, 1)
	signal.Notify(quit, syscall.SIGINT, syscall.SIGTERM)
	<-quit

	logger.Info("Server is shutting down...")

	ctx, cancel := context.WithTimeout(context.Background(), 30*time.Second)
	defer cancel()

	if err := server.Shutdown(ctx); err != nil {
		logger.Error("Server forced to shutdown", "error", err)
	}

	logger.Info("Server exited")
}
