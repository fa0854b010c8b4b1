package handlers

import (
	"context"
	"encoding/json"
	"net/http"
	"strconv"
	"time"

	"mentora-backend/internal/services"
)

// MediaHandler groups the stateless learning-resource endpoints: speech
// synthesis, video and book search, and motivational quotes.
type MediaHandler struct {
	tts     ttsSynthesizer
	youtube videoSearcher
	books   bookSearcher
	quotes  *services.QuoteService
}

type ttsSynthesizer interface {
	Synthesize(text string) (*services.TTSResult, error)
}

type videoSearcher interface {
	SearchVideos(ctx context.Context, query string, maxResults int64) []services.Video
}

type bookSearcher interface {
	SearchBooks(ctx context.Context, query string, maxResults int64) []services.Book
}

func NewMediaHandler(tts ttsSynthesizer, youtube videoSearcher, books bookSearcher, quotes *services.QuoteService) *MediaHandler {
	return &MediaHandler{tts: tts, youtube: youtube, books: books, quotes: quotes}
}

func (h *MediaHandler) TextToSpeech(w http.ResponseWriter, r *http.Request) {
	var req struct {
		Text string `json:"text"`
	}
	if err := json.NewDecoder(r.Body).Decode(&req); err != nil {
		writeJSON(w, http.StatusBadRequest, errorResp("VALIDATION_ERROR", "Invalid request body", r))
		return
	}

	result, err := h.tts.Synthesize(req.Text)
	if err != nil {
		handleServiceError(w, r, err)
		return
	}

	writeJSON(w, http.StatusOK, result)
}

func (h *MediaHandler) SearchVideos(w http.ResponseWriter, r *http.Request) {
	query := r.URL.Query().Get("query")
	if query == "" {
		writeJSON(w, http.StatusBadRequest, errorResp("VALIDATION_ERROR", "Please provide a search query", r))
		return
	}
	maxResults := queryInt64(r, "maxResults", 5)

	videos := h.youtube.SearchVideos(r.Context(), query, maxResults)

	writeJSON(w, http.StatusOK, map[string]interface{}{
		"success": true,
		"count":   len(videos),
		"videos":  videos,
	})
}

func (h *MediaHandler) SearchBooks(w http.ResponseWriter, r *http.Request) {
	query := r.URL.Query().Get("query")
	if query == "" {
		writeJSON(w, http.StatusBadRequest, errorResp("VALIDATION_ERROR", "Please provide a search query", r))
		return
	}
	maxResults := queryInt64(r, "maxResults", 10)

	books := h.books.SearchBooks(r.Context(), query, maxResults)

	writeJSON(w, http.StatusOK, map[string]interface{}{
		"success": true,
		"count":   len(books),
		"books":   books,
	})
}

// DailyQuote is deterministic for a calendar day.
func (h *MediaHandler) DailyQuote(w http.ResponseWriter, r *http.Request) {
	now := time.Now()
	writeJSON(w, http.StatusOK, map[string]interface{}{
		"success": true,
		"quote":   h.quotes.Daily(now),
		"date":    now.Format("Mon Jan 02 2006"),
	})
}

func (h *MediaHandler) RandomQuote(w http.ResponseWriter, r *http.Request) {
	writeJSON(w, http.StatusOK, map[string]interface{}{
		"success":   true,
		"quote":     h.quotes.Random(),
		"timestamp": time.Now().UTC().Format(time.RFC3339),
	})
}

func queryInt64(r *http.Request, key string, fallback int64) int64 {
	v, err := strconv.ParseInt(r.URL.Query().Get(key), 10, 64)
	if err != nil || v <= 0 {
		return fallback
	}
	return v
}
