package handlers

import (
	"encoding/json"
	"errors"
	"log"
	"net/http"

	"github.com/go-chi/chi/v5"
	"github.com/google/uuid"
	"github.com/jackc/pgx/v5"

	"mentora-backend/internal/middleware"
	"mentora-backend/internal/models"
)

type FlashcardHandler struct {
	flashcardRepo flashcardRepository
	topicRepo     topicRepository
}

func NewFlashcardHandler(flashcardRepo flashcardRepository, topicRepo topicRepository) *FlashcardHandler {
	return &FlashcardHandler{flashcardRepo: flashcardRepo, topicRepo: topicRepo}
}

// ListByTopic returns the cards for a topic the caller owns.
func (h *FlashcardHandler) ListByTopic(w http.ResponseWriter, r *http.Request) {
	topic := fetchOwnedTopic(w, r, h.topicRepo, chi.URLParam(r, "topicId"))
	if topic == nil {
		return
	}

	cards, err := h.flashcardRepo.ListByTopic(r.Context(), topic.ID)
	if err != nil {
		log.Printf("failed to list flashcards for topic %s: %v", topic.ID, err)
		writeJSON(w, http.StatusInternalServerError, errorResp("INTERNAL_ERROR", "Server error", r))
		return
	}
	if cards == nil {
		cards = []*models.Flashcard{}
	}

	writeJSON(w, http.StatusOK, cards)
}

// UpdateStatus moves a card through the review states. Ownership is checked
// on the card itself, not the parent topic.
func (h *FlashcardHandler) UpdateStatus(w http.ResponseWriter, r *http.Request) {
	var req models.UpdateFlashcardRequest
	if err := json.NewDecoder(r.Body).Decode(&req); err != nil {
		writeJSON(w, http.StatusBadRequest, errorResp("VALIDATION_ERROR", "Invalid request body", r))
		return
	}
	if !models.ValidFlashcardStatus(req.Status) {
		writeJSON(w, http.StatusBadRequest, errorResp("VALIDATION_ERROR", "Invalid status", r))
		return
	}

	id, err := uuid.Parse(chi.URLParam(r, "id"))
	if err != nil {
		writeJSON(w, http.StatusNotFound, errorResp("NOT_FOUND", "Flashcard not found", r))
		return
	}

	card, err := h.flashcardRepo.GetByID(r.Context(), id)
	if err != nil {
		if errors.Is(err, pgx.ErrNoRows) {
			writeJSON(w, http.StatusNotFound, errorResp("NOT_FOUND", "Flashcard not found", r))
		} else {
			log.Printf("failed to load flashcard %s: %v", id, err)
			writeJSON(w, http.StatusInternalServerError, errorResp("INTERNAL_ERROR", "Server error", r))
		}
		return
	}

	if card.UserID != middleware.GetUserID(r.Context()) {
		writeJSON(w, http.StatusForbidden, errorResp("FORBIDDEN", "Not authorized", r))
		return
	}

	if err := h.flashcardRepo.UpdateStatus(r.Context(), card.ID, req.Status); err != nil {
		log.Printf("failed to update flashcard %s: %v", card.ID, err)
		writeJSON(w, http.StatusInternalServerError, errorResp("INTERNAL_ERROR", "Server error", r))
		return
	}
	card.Status = req.Status

	writeJSON(w, http.StatusOK, card)
}
