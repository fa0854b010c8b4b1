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
	"mentora-backend/internal/services"
)

type DoubtHandler struct {
	doubtRepo  doubtRepository
	topicRepo  topicRepository
	lessonRepo lessonRepository
	ai         aiGateway
}

func NewDoubtHandler(doubtRepo doubtRepository, topicRepo topicRepository, lessonRepo lessonRepository, ai aiGateway) *DoubtHandler {
	return &DoubtHandler{
		doubtRepo:  doubtRepo,
		topicRepo:  topicRepo,
		lessonRepo: lessonRepo,
		ai:         ai,
	}
}

// Ask answers a student question with lesson context and persists the pair.
// AI failures surface as 503 so the client can distinguish a degraded AI
// service from a broken backend.
func (h *DoubtHandler) Ask(w http.ResponseWriter, r *http.Request) {
	var req models.AskDoubtRequest
	if err := json.NewDecoder(r.Body).Decode(&req); err != nil {
		writeJSON(w, http.StatusBadRequest, errorResp("VALIDATION_ERROR", "Invalid request body", r))
		return
	}
	if req.TopicID == uuid.Nil || req.Question == "" {
		writeJSON(w, http.StatusBadRequest, errorResp("VALIDATION_ERROR", "Please provide topicId and question", r))
		return
	}

	topic := fetchOwnedTopic(w, r, h.topicRepo, req.TopicID.String())
	if topic == nil {
		return
	}

	lesson, err := h.lessonRepo.GetByTopic(r.Context(), topic.ID)
	if err != nil {
		if errors.Is(err, pgx.ErrNoRows) {
			writeJSON(w, http.StatusNotFound, errorResp("NOT_FOUND", "Lesson not found", r))
		} else {
			log.Printf("failed to load lesson for topic %s: %v", topic.ID, err)
			writeJSON(w, http.StatusInternalServerError, errorResp("INTERNAL_ERROR", "Server error", r))
		}
		return
	}

	answer, err := h.ai.AnswerDoubt(r.Context(), req.Question, topic.Title, lesson.Content)
	if err != nil {
		// The doubt flow is the one place a provider outage surfaces as 503,
		// so clients can prompt the user to retry.
		var aiErr *services.AIServiceError
		if errors.As(err, &aiErr) {
			writeJSON(w, http.StatusServiceUnavailable, errorResp("AI_SERVICE_ERROR", aiErr.Message, r))
			return
		}
		handleServiceError(w, r, err)
		return
	}

	doubt := &models.Doubt{
		TopicID:  topic.ID,
		UserID:   middleware.GetUserID(r.Context()),
		Question: req.Question,
		Answer:   answer,
	}
	if err := h.doubtRepo.Create(r.Context(), doubt); err != nil {
		log.Printf("failed to save doubt for topic %s: %v", topic.ID, err)
		writeJSON(w, http.StatusInternalServerError, errorResp("INTERNAL_ERROR", "Failed to process your question. Please try again.", r))
		return
	}

	writeJSON(w, http.StatusCreated, doubt)
}

func (h *DoubtHandler) ListByTopic(w http.ResponseWriter, r *http.Request) {
	topic := fetchOwnedTopic(w, r, h.topicRepo, chi.URLParam(r, "topicId"))
	if topic == nil {
		return
	}

	doubts, err := h.doubtRepo.ListByTopic(r.Context(), topic.ID)
	if err != nil {
		log.Printf("failed to list doubts for topic %s: %v", topic.ID, err)
		writeJSON(w, http.StatusInternalServerError, errorResp("INTERNAL_ERROR", "Server error", r))
		return
	}
	if doubts == nil {
		doubts = []*models.Doubt{}
	}

	writeJSON(w, http.StatusOK, doubts)
}
