package main

import (
	"context"
	"errors"
	"log"
	"net/http"
	"os"
	"os/signal"
	"syscall"
	"time"

	"combatbible/gymdesk/internal/api"
	"combatbible/gymdesk/internal/app"
	"combatbible/gymdesk/internal/config"

	"github.com/gin-gonic/gin"
)

// @title Gymdesk API
// @version 1.0
// @description Lesson planning, live sessions and student feedback for combat-sports gyms.
// @host localhost:8080
// @BasePath /api/v1
// @securityDefinitions.apikey BearerAuth
// @in header
// @name Authorization
// @description Type "Bearer" followed by a space and JWT token.
func main() {
	log.Println("Starting Gymdesk Server...")

	// --- Configuration ---
	cfg, err := config.LoadConfig(".")
	if err != nil {
		log.Fatalf("FATAL: Could not load config: %v", err)
	}
	log.Printf("Configuration loaded (database driver: %s, generator: %s).", cfg.Database.Driver, cfg.AI.Provider)
	if cfg.JWT.UsesDefaultSecret() {
		log.Println("WARN: jwt.secret is the built-in default, set JWT_SECRET before exposing the server.")
	}

	ctx := context.Background()

	// --- Repositories ---
	repos, err := app.OpenRepositories(ctx, cfg)
	if err != nil {
		log.Fatalf("FATAL: Could not open repositories: %v", err)
	}
	defer repos.Close()

	// --- Storage ---
	fileStorage, err := app.NewFileStorage(ctx, cfg.S3)
	if err != nil {
		log.Fatalf("FATAL: Failed to initialize S3 storage: %v", err)
	}
	if fileStorage == nil {
		log.Println("WARN: s3.bucket_name is empty, technique video uploads are disabled.")
	}

	// --- Combo generator ---
	generator, err := app.NewGenerator(ctx, cfg.AI)
	if err != nil {
		log.Fatalf("FATAL: Failed to initialize combo generator: %v", err)
	}

	// --- Services ---
	log.Println("Initializing services...")
	services, err := app.NewServices(ctx, cfg, repos, generator, fileStorage)
	if err != nil {
		log.Fatalf("FATAL: Failed to initialize services: %v", err)
	}

	// --- Gin Engine ---
	gin.SetMode(cfg.Server.Mode)
	router := gin.Default() // Includes Logger and Recovery middleware

	log.Println("Setting up API routes...")
	api.SetupRoutes(router, cfg.JWT.Secret, services)

	// --- Start HTTP Server ---
	server := &http.Server{
		Addr:         cfg.Server.Address,
		Handler:      router,
		ReadTimeout:  10 * time.Second,
		WriteTimeout: 60 * time.Second, // combo generation waits on the model
		IdleTimeout:  120 * time.Second,
	}

	log.Printf("Server starting on %s", cfg.Server.Address)

	// --- Graceful Shutdown ---
	go func() {
		if err := server.ListenAndServe(); err != nil && !errors.Is(err, http.ErrServerClosed) {
			log.Fatalf("FATAL: ListenAndServe Error: %v", err)
		}
	}()

	quit := make(chan os.Signal, 1)
	signal.Notify(quit, syscall.SIGINT, syscall.SIGTERM)
	<-quit
	log.Println("Shutting down server...")

	ctxShutdown, cancelShutdown := context.WithTimeout(context.Background(), 5*time.Second)
	defer cancelShutdown()

	if err := server.Shutdown(ctxShutdown); err != nil {
		log.Fatalf("FATAL: Server forced to shutdown: %v", err)
	}

	log.Println("Server exiting.")
}
