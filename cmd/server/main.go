package main

import (
	"alcyxob/tracker-app/internal/api"
	"alcyxob/tracker-app/internal/config"
	"alcyxob/tracker-app/internal/service"
	"alcyxob/tracker-app/internal/storage"
	"context"
	"errors"
	"log"
	"net/http"
	"os"
	"os/signal"
	"syscall"
	"time"

	"github.com/gin-gonic/gin"
	"github.com/joho/godotenv"
)

// @title Tracker API
// @version 1.0
// @description API for logging training days, study progress through books and body metrics.
// @host localhost:8080
// @BasePath /api/v1
// @securityDefinitions.apikey BearerAuth
// @in header
// @name Authorization
// @description Type "Bearer" followed by a space and JWT token.
func main() {
	log.Println("Starting Tracker Server...")

	// .env is optional; real environment variables win.
	if err := godotenv.Load(); err != nil && !errors.Is(err, os.ErrNotExist) {
		log.Printf("WARN: Could not read .env file: %v", err)
	}

	// --- Configuration ---
	cfg, err := config.LoadConfig(".")
	if err != nil {
		log.Fatalf("FATAL: Could not load config: %v", err)
	}
	if cfg.JWT.Secret == "" {
		log.Fatal("FATAL: jwt.secret (JWT_SECRET) must be set")
	}
	log.Println("Configuration loaded.")

	// --- Repositories ---
	var (
		repos        repositories
		disconnectDB func()
	)
	switch cfg.Database.Driver {
	case config.DriverMemory:
		log.Println("WARN: Using in-memory repositories; data is lost on restart.")
		repos = memoryRepositories()
		disconnectDB = func() {}
	case config.DriverMongo:
		repos, disconnectDB = mongoRepositories(cfg.Database)
	default:
		log.Fatalf("FATAL: Unknown database driver %q", cfg.Database.Driver)
	}
	defer disconnectDB()

	// --- Initialize Storage ---
	log.Println("Initializing file storage service...")
	initCtx, cancelInit := context.WithTimeout(context.Background(), 30*time.Second)
	fileStorage, err := storage.NewS3Storage(initCtx, cfg.S3)
	cancelInit()
	if err != nil {
		log.Fatalf("FATAL: Failed to initialize S3 storage: %v", err)
	}

	// --- Initialize Services ---
	log.Println("Initializing services...")
	drafts := service.NewDraftCache()
	svc := api.Services{
		Auth:     service.NewAuthService(repos.users, cfg.JWT.Secret, cfg.JWT.Expiration, cfg.Admin.BootstrapEmail),
		Catalog:  service.NewCatalogService(repos.books, repos.activity, drafts),
		Activity: service.NewActivityService(repos.books, repos.activity, drafts),
		Health:   service.NewHealthService(repos.health),
		Stats:    service.NewStatsService(repos.books, repos.activity),
		Export:   service.NewExportService(repos.users, repos.books, repos.activity, repos.health, repos.exports, fileStorage),
	}

	// --- Initialize Gin Engine ---
	router := gin.Default() // Includes Logger and Recovery middleware
	router.Use(api.CORSMiddleware(cfg.Server.AllowedOrigins))

	// --- Setup Routes ---
	log.Println("Setting up API routes...")
	api.SetupRoutes(router, cfg.JWT.Secret, svc)

	// --- Start HTTP Server ---
	server := &http.Server{
		Addr:         cfg.Server.Address,
		Handler:      router,
		ReadTimeout:  10 * time.Second,
		WriteTimeout: 30 * time.Second, // exports upload before responding
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
		log.Printf("ERROR: Server forced to shutdown: %v", err)
	}

	log.Println("Server exiting.")
}
