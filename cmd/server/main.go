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

	"mentora-backend/internal/config"
	"mentora-backend/internal/database"
	"mentora-backend/internal/handlers"
	"mentora-backend/internal/middleware"
	"mentora-backend/internal/repository"
	"mentora-backend/internal/router"
	"mentora-backend/internal/services"
)

func main() {
	log.Println("🚀 Starting Mentora Backend...")

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

	// ──── Step 3: Initialize Redis Client ────
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
	topicRepo := repository.NewTopicRepo(pool)
	lessonRepo := repository.NewLessonRepo(pool)
	quizRepo := repository.NewQuizRepo(pool)
	flashcardRepo := repository.NewFlashcardRepo(pool)
	doubtRepo := repository.NewDoubtRepo(pool)

	// ──── Initialize Services ────
	aiService := services.NewAIService(cfg.AIAPIKey, cfg.AIBaseURL, cfg.AIModel, cfg.AIConcurrentReqs)
	log.Printf("✓ AI gateway initialized (%s)", cfg.AIModel)

	jwtAuth := middleware.NewJWTAuth(cfg.JWTSecret)
	authService := services.NewAuthService(userRepo, redisClient, jwtAuth)
	ttsService := services.NewTTSService()
	youtubeService := services.NewYouTubeService(cfg.YouTubeAPIKey)
	booksService := services.NewBooksService(cfg.BooksAPIKey)
	quoteService := services.NewQuoteService()

	// ──── Initialize Handlers ────
	authHandler := handlers.NewAuthHandler(authService, userRepo)
	topicHandler := handlers.NewTopicHandler(topicRepo, lessonRepo, quizRepo, flashcardRepo, doubtRepo, aiService)
	doubtHandler := handlers.NewDoubtHandler(doubtRepo, topicRepo, lessonRepo, aiService)
	flashcardHandler := handlers.NewFlashcardHandler(flashcardRepo, topicRepo)
	mediaHandler := handlers.NewMediaHandler(ttsService, youtubeService, booksService, quoteService)

	// ──── Step 5: Start HTTP Server ────
	r := router.New(
		jwtAuth,
		authHandler,
		topicHandler,
		doubtHandler,
		flashcardHandler,
		mediaHandler,
		cfg.FrontendURL,
	)

	// Topic generation runs three chained completions in one request, so the
	// write timeout has to cover the slowest full chain.
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

	log.Printf("✓ Mentora Backend ready on http://localhost:%s", cfg.Port)
	log.Printf("  API: http://localhost:%s/api", cfg.Port)

	if err := server.ListenAndServe(); err != http.ErrServerClosed {
		log.Fatalf("Server error: %v", err)
	}
}
