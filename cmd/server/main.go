package main

import (
	"context"
	"fmt"
	"log"
	"net/http"
	"os"
	"os/signal"
	"syscall"
	"time"

	"estudia-backend/internal/config"
	"estudia-backend/internal/database"
	"estudia-backend/internal/handlers"
	"estudia-backend/internal/repository"
	"estudia-backend/internal/router"
	"estudia-backend/internal/services"
)

func main() {
	log.Println("🚀 Starting Estudia Backend...")

	// ──── Step 1: Load Environment Variables ────
	cfg := config.Load()
	log.Println("✓ Environment variables loaded")

	// ──── Step 2: Initialize PostgreSQL Connection Pool ────
	pool, err := database.NewPostgresPool(cfg.DatabaseURL)
	if err != nil {
		log.Fatalf("✗ PostgreSQL connection failed: %v", err)
	}
	defer pool.Close()
	log.Println("✓ PostgreSQL connected")

	// ──── Step 3: Initialize Redis ────
	redisClient, err := database.NewRedisClient(cfg.RedisURL)
	if err != nil {
		log.Fatalf("✗ Redis connection failed: %v", err)
	}
	defer redisClient.Close()
	log.Println("✓ Redis connected")

	// ──── Step 4: Run Database Migrations ────
	if err := database.RunMigrations(pool, "migrations"); err != nil {
		log.Fatalf("✗ Database migration failed: %v", err)
	}
	log.Println("✓ Database migrations applied")

	// ──── Initialize Repositories ────
	userRepo := repository.NewUserRepo(pool)
	progressRepo := repository.NewProgressRepo(pool)
	studyPlanRepo := repository.NewStudyPlanRepo(pool)
	studySessionRepo := repository.NewStudySessionRepo(pool)
	summaryRepo := repository.NewSummaryRepo(pool)
	tutoringRepo := repository.NewTutoringRepo(pool)

	// ──── Step 5: Initialize Gemini Client ────
	geminiService, err := services.NewGeminiService(cfg.GeminiAPIKey, cfg.GeminiModel)
	if err != nil {
		log.Fatalf("✗ Gemini client initialization failed: %v", err)
	}
	defer geminiService.Close()
	log.Println("✓ Gemini client initialized")

	// ──── Initialize Services ────
	authService := services.NewAuthService(userRepo, redisClient, cfg.JWTSecret)
	tutoringService := services.NewTutoringService(tutoringRepo, userRepo, geminiService)
	studyPlanService := services.NewStudyPlanService(studyPlanRepo, userRepo, geminiService)
	summaryService := services.NewSummaryService(summaryRepo, userRepo, geminiService)

	// ──── Initialize Handlers ────
	authHandler := handlers.NewAuthHandler(authService)
	progressHandler := handlers.NewProgressHandler(progressRepo, userRepo)
	studyPlanHandler := handlers.NewStudyPlanHandler(studyPlanService)
	studySessionHandler := handlers.NewStudySessionHandler(studySessionRepo, userRepo)
	summaryHandler := handlers.NewSummaryHandler(summaryService)
	tutoringHandler := handlers.NewTutoringHandler(tutoringService)

	// ──── Step 6: Start HTTP Server ────
	r := router.New(
		authHandler,
		progressHandler,
		studyPlanHandler,
		studySessionHandler,
		summaryHandler,
		tutoringHandler,
		cfg.FrontendURL,
	)

	server := &http.Server{
		Addr:         fmt.Sprintf(":%s", cfg.Port),
		Handler:      r,
		ReadTimeout:  15 * time.Second,
		WriteTimeout: 120 * time.Second,
		IdleTimeout:  60 * time.Second,
	}

	// Graceful shutdown
	go func() {
		sigChan := make(chan os.Signal, 1)
		signal.Notify(sigChan, syscall.SIGINT, syscall.SIGTERM)
		<-sigChan

		log.Println("Shutting down...")
		ctx, cancel := context.WithTimeout(context.Background(), 30*time.Second)
		defer cancel()
		server.Shutdown(ctx)
	}()

	log.Printf("✓ Estudia Backend ready on http://localhost:%s", cfg.Port)

	if err := server.ListenAndServe(); err != http.ErrServerClosed {
		log.Fatalf("Server error: %v", err)
	}
}
