package router

import (
	"encoding/json"
	"net/http"
	"time"

	"github.com/go-chi/chi/v5"
	chimiddleware "github.com/go-chi/chi/v5/middleware"

	"mentora-backend/internal/handlers"
	"mentora-backend/internal/middleware"
)

func New(
	jwtAuth *middleware.JWTAuth,
	authHandler *handlers.AuthHandler,
	topicHandler *handlers.TopicHandler,
	doubtHandler *handlers.DoubtHandler,
	flashcardHandler *handlers.FlashcardHandler,
	mediaHandler *handlers.MediaHandler,
	frontendURL string,
) http.Handler {
	r := chi.NewRouter()

	// Global middleware
	r.Use(chimiddleware.Logger)
	r.Use(chimiddleware.Recoverer)
	r.Use(chimiddleware.RealIP)
	r.Use(middleware.RequestID)
	r.Use(middleware.CORS(frontendURL))

	// Auth rate limiter (10 req/min per IP)
	authLimiter := middleware.NewRateLimiter(10, time.Minute)

	r.NotFound(func(w http.ResponseWriter, r *http.Request) {
		w.Header().Set("Content-Type", "application/json")
		w.WriteHeader(http.StatusNotFound)
		json.NewEncoder(w).Encode(map[string]string{"message": "Route not found"})
	})

	r.Route("/api", func(r chi.Router) {

		// ──── Health ────
		r.Get("/health", func(w http.ResponseWriter, r *http.Request) {
			w.Header().Set("Content-Type", "application/json")
			json.NewEncoder(w).Encode(map[string]string{
				"status":    "OK",
				"timestamp": time.Now().UTC().Format(time.RFC3339),
			})
		})

		// ──── Auth Routes (public) ────
		r.Route("/auth", func(r chi.Router) {
			r.Use(authLimiter.Middleware)
			r.Post("/register", authHandler.Register)
			r.Post("/login", authHandler.Login)
			r.Post("/refresh", authHandler.Refresh)
			r.Post("/logout", authHandler.Logout)

			r.Group(func(r chi.Router) {
				r.Use(jwtAuth.Middleware)
				r.Get("/me", authHandler.Me)
			})
		})

		// ──── Topic Routes ────
		r.Route("/topics", func(r chi.Router) {
			r.Use(jwtAuth.Middleware)
			r.Post("/generate", topicHandler.Generate)
			r.Get("/", topicHandler.List)
			r.Get("/{id}", topicHandler.Get)
			r.Delete("/{id}", topicHandler.Delete)

			// Learning boost endpoints
			r.Post("/explain-simply", topicHandler.ExplainSimply)
			r.Post("/explain-example", topicHandler.ExplainWithExample)
			r.Post("/explain-language", topicHandler.ExplainInLanguage)
			r.Post("/ask-about-text", topicHandler.AskAboutText)
			r.Post("/{id}/key-points", topicHandler.KeyPoints)
			r.Post("/{id}/keywords", topicHandler.Keywords)
			r.Post("/{id}/generate-qa", topicHandler.GenerateQA)

			// Learning management endpoints
			r.Put("/{id}/bookmark", topicHandler.ToggleBookmark)
			r.Put("/{id}/notes", topicHandler.UpdateNotes)
			r.Put("/{id}/progress", topicHandler.UpdateProgress)
		})

		// ──── Doubt Routes ────
		r.Route("/doubts", func(r chi.Router) {
			r.Use(jwtAuth.Middleware)
			r.Post("/ask", doubtHandler.Ask)
			r.Get("/{topicId}", doubtHandler.ListByTopic)
		})

		// ──── Flashcard Routes ────
		r.Route("/flashcards", func(r chi.Router) {
			r.Use(jwtAuth.Middleware)
			r.Get("/{topicId}", flashcardHandler.ListByTopic)
			r.Put("/{id}", flashcardHandler.UpdateStatus)
		})

		// ──── Learning Resource Routes ────
		r.Group(func(r chi.Router) {
			r.Use(jwtAuth.Middleware)
			r.Post("/tts", mediaHandler.TextToSpeech)
			r.Get("/youtube/search", mediaHandler.SearchVideos)
			r.Get("/books/search", mediaHandler.SearchBooks)
			r.Get("/quotes/daily", mediaHandler.DailyQuote)
			r.Get("/quotes/random", mediaHandler.RandomQuote)
		})
	})

	return r
}
