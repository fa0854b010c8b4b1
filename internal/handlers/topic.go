package handlers

import (
	"context"
	"encoding/json"
	"errors"
	"log"
	"net/http"

	"github.com/go-chi/chi/v5"
	"github.com/google/uuid"
	"github.com/jackc/pgx/v5"
	"golang.org/x/sync/errgroup"

	"mentora-backend/internal/middleware"
	"mentora-backend/internal/models"
	"mentora-backend/internal/services"
)

type TopicHandler struct {
	topicRepo     topicRepository
	lessonRepo    lessonRepository
	quizRepo      quizRepository
	flashcardRepo flashcardRepository
	doubtRepo     doubtRepository
	ai            aiGateway
}

type topicRepository interface {
	Create(ctx context.Context, t *models.Topic) error
	GetByID(ctx context.Context, id uuid.UUID) (*models.Topic, error)
	ListByUser(ctx context.Context, userID uuid.UUID) ([]*models.Topic, error)
	ToggleBookmark(ctx context.Context, id uuid.UUID) (bool, error)
	UpdateNotes(ctx context.Context, id uuid.UUID, notes string) error
	UpdateProgress(ctx context.Context, id uuid.UUID, status string) error
	Delete(ctx context.Context, id uuid.UUID) error
}

type lessonRepository interface {
	Create(ctx context.Context, l *models.Lesson) error
	GetByTopic(ctx context.Context, topicID uuid.UUID) (*models.Lesson, error)
	DeleteByTopic(ctx context.Context, topicID uuid.UUID) error
}

type quizRepository interface {
	Create(ctx context.Context, q *models.Quiz) error
	GetByTopic(ctx context.Context, topicID uuid.UUID) (*models.Quiz, error)
	DeleteByTopic(ctx context.Context, topicID uuid.UUID) error
}

type flashcardRepository interface {
	CreateMany(ctx context.Context, cards []*models.Flashcard) error
	GetByID(ctx context.Context, id uuid.UUID) (*models.Flashcard, error)
	ListByTopic(ctx context.Context, topicID uuid.UUID) ([]*models.Flashcard, error)
	UpdateStatus(ctx context.Context, id uuid.UUID, status string) error
	DeleteByTopic(ctx context.Context, topicID uuid.UUID) error
}

type doubtRepository interface {
	Create(ctx context.Context, d *models.Doubt) error
	ListByTopic(ctx context.Context, topicID uuid.UUID) ([]*models.Doubt, error)
	DeleteByTopic(ctx context.Context, topicID uuid.UUID) error
}

type aiGateway interface {
	GenerateLesson(ctx context.Context, title, level string) (models.LessonContent, error)
	GenerateQuiz(ctx context.Context, title, level string, lesson models.LessonContent) ([]models.QuizQuestion, error)
	GenerateFlashcards(ctx context.Context, title, level string, lesson models.LessonContent) ([]services.CardFace, error)
	AnswerDoubt(ctx context.Context, question, topicTitle string, lesson models.LessonContent) (string, error)
	ExplainSimply(ctx context.Context, text, topicTitle string) (string, error)
	ExplainWithExample(ctx context.Context, text, topicTitle string) (string, error)
	ExplainInLanguage(ctx context.Context, text, language, topicTitle string) (string, error)
	GenerateKeyPoints(ctx context.Context, lesson models.LessonContent, topicTitle string) (string, error)
	ExtractKeywords(ctx context.Context, lesson models.LessonContent, topicTitle string) ([]string, error)
	AskAboutText(ctx context.Context, text, question, topicTitle string) (string, error)
	GenerateQA(ctx context.Context, lessonText, topicTitle string) ([]models.QAPair, error)
}

func NewTopicHandler(topicRepo topicRepository, lessonRepo lessonRepository, quizRepo quizRepository, flashcardRepo flashcardRepository, doubtRepo doubtRepository, ai aiGateway) *TopicHandler {
	return &TopicHandler{
		topicRepo:     topicRepo,
		lessonRepo:    lessonRepo,
		quizRepo:      quizRepo,
		flashcardRepo: flashcardRepo,
		doubtRepo:     doubtRepo,
		ai:            ai,
	}
}

// Generate creates a topic and populates it with AI content. Steps run
// sequentially and there is no rollback: a failure after the topic row is
// created leaves a partial topic the user can delete and retry.
func (h *TopicHandler) Generate(w http.ResponseWriter, r *http.Request) {
	var req models.GenerateTopicRequest
	if err := json.NewDecoder(r.Body).Decode(&req); err != nil {
		writeJSON(w, http.StatusBadRequest, errorResp("VALIDATION_ERROR", "Invalid request body", r))
		return
	}

	if req.Title == "" || req.Level == "" {
		writeJSON(w, http.StatusBadRequest, errorResp("VALIDATION_ERROR", "Please provide title and level", r))
		return
	}
	if !models.ValidLevel(req.Level) {
		writeJSON(w, http.StatusBadRequest, errorResp("VALIDATION_ERROR", "Invalid level", r))
		return
	}

	userID := middleware.GetUserID(r.Context())

	topic := &models.Topic{
		UserID: userID,
		Title:  req.Title,
		Level:  req.Level,
	}
	if err := h.topicRepo.Create(r.Context(), topic); err != nil {
		log.Printf("failed to create topic: %v", err)
		writeJSON(w, http.StatusInternalServerError, errorResp("INTERNAL_ERROR", "Failed to generate topic", r))
		return
	}

	lessonContent, err := h.ai.GenerateLesson(r.Context(), req.Title, req.Level)
	if err != nil {
		log.Printf("lesson generation failed for topic %s: %v", topic.ID, err)
		writeJSON(w, http.StatusInternalServerError, errorResp("GENERATION_FAILED", "Failed to generate topic", r))
		return
	}

	lesson := &models.Lesson{TopicID: topic.ID, Content: lessonContent}
	if err := h.lessonRepo.Create(r.Context(), lesson); err != nil {
		log.Printf("failed to save lesson for topic %s: %v", topic.ID, err)
		writeJSON(w, http.StatusInternalServerError, errorResp("INTERNAL_ERROR", "Failed to generate topic", r))
		return
	}

	questions, err := h.ai.GenerateQuiz(r.Context(), req.Title, req.Level, lessonContent)
	if err != nil {
		log.Printf("quiz generation failed for topic %s: %v", topic.ID, err)
		writeJSON(w, http.StatusInternalServerError, errorResp("GENERATION_FAILED", "Failed to generate topic", r))
		return
	}

	quiz := &models.Quiz{TopicID: topic.ID, Questions: questions}
	if err := h.quizRepo.Create(r.Context(), quiz); err != nil {
		log.Printf("failed to save quiz for topic %s: %v", topic.ID, err)
		writeJSON(w, http.StatusInternalServerError, errorResp("INTERNAL_ERROR", "Failed to generate topic", r))
		return
	}

	faces, err := h.ai.GenerateFlashcards(r.Context(), req.Title, req.Level, lessonContent)
	if err != nil {
		log.Printf("flashcard generation failed for topic %s: %v", topic.ID, err)
		writeJSON(w, http.StatusInternalServerError, errorResp("GENERATION_FAILED", "Failed to generate topic", r))
		return
	}

	cards := make([]*models.Flashcard, 0, len(faces))
	for _, face := range faces {
		cards = append(cards, &models.Flashcard{
			TopicID: topic.ID,
			UserID:  userID,
			Front:   face.Front,
			Back:    face.Back,
		})
	}
	if err := h.flashcardRepo.CreateMany(r.Context(), cards); err != nil {
		log.Printf("failed to save flashcards for topic %s: %v", topic.ID, err)
		writeJSON(w, http.StatusInternalServerError, errorResp("INTERNAL_ERROR", "Failed to generate topic", r))
		return
	}

	writeJSON(w, http.StatusCreated, models.TopicBundle{
		Topic:      topic,
		Lesson:     lesson,
		Quiz:       quiz,
		Flashcards: cards,
		Message:    "Topic generated successfully!",
	})
}

func (h *TopicHandler) List(w http.ResponseWriter, r *http.Request) {
	userID := middleware.GetUserID(r.Context())

	topics, err := h.topicRepo.ListByUser(r.Context(), userID)
	if err != nil {
		log.Printf("failed to list topics: %v", err)
		writeJSON(w, http.StatusInternalServerError, errorResp("INTERNAL_ERROR", "Server error", r))
		return
	}
	if topics == nil {
		topics = []*models.Topic{}
	}

	writeJSON(w, http.StatusOK, topics)
}

// Get returns the topic and all its generated content. Children are fetched
// concurrently; missing lesson or quiz rows come back as null rather than an
// error.
func (h *TopicHandler) Get(w http.ResponseWriter, r *http.Request) {
	topic := fetchOwnedTopic(w, r, h.topicRepo, chi.URLParam(r, "id"))
	if topic == nil {
		return
	}

	var (
		lesson *models.Lesson
		quiz   *models.Quiz
		cards  []*models.Flashcard
	)

	g, ctx := errgroup.WithContext(r.Context())
	g.Go(func() error {
		l, err := h.lessonRepo.GetByTopic(ctx, topic.ID)
		if err != nil {
			if errors.Is(err, pgx.ErrNoRows) {
				return nil
			}
			return err
		}
		lesson = l
		return nil
	})
	g.Go(func() error {
		q, err := h.quizRepo.GetByTopic(ctx, topic.ID)
		if err != nil {
			if errors.Is(err, pgx.ErrNoRows) {
				return nil
			}
			return err
		}
		quiz = q
		return nil
	})
	g.Go(func() error {
		c, err := h.flashcardRepo.ListByTopic(ctx, topic.ID)
		if err != nil {
			return err
		}
		cards = c
		return nil
	})

	if err := g.Wait(); err != nil {
		log.Printf("failed to load topic %s content: %v", topic.ID, err)
		writeJSON(w, http.StatusInternalServerError, errorResp("INTERNAL_ERROR", "Server error", r))
		return
	}
	if cards == nil {
		cards = []*models.Flashcard{}
	}

	writeJSON(w, http.StatusOK, models.TopicBundle{
		Topic:      topic,
		Lesson:     lesson,
		Quiz:       quiz,
		Flashcards: cards,
	})
}

// Delete removes the topic and everything hanging off it, doubts included.
func (h *TopicHandler) Delete(w http.ResponseWriter, r *http.Request) {
	topic := fetchOwnedTopic(w, r, h.topicRepo, chi.URLParam(r, "id"))
	if topic == nil {
		return
	}

	ctx := r.Context()
	for _, del := range []func(context.Context, uuid.UUID) error{
		h.lessonRepo.DeleteByTopic,
		h.quizRepo.DeleteByTopic,
		h.flashcardRepo.DeleteByTopic,
		h.doubtRepo.DeleteByTopic,
		h.topicRepo.Delete,
	} {
		if err := del(ctx, topic.ID); err != nil {
			log.Printf("failed to delete topic %s: %v", topic.ID, err)
			writeJSON(w, http.StatusInternalServerError, errorResp("INTERNAL_ERROR", "Server error", r))
			return
		}
	}

	writeJSON(w, http.StatusOK, map[string]string{"message": "Topic deleted successfully"})
}

func (h *TopicHandler) ToggleBookmark(w http.ResponseWriter, r *http.Request) {
	topic := fetchOwnedTopic(w, r, h.topicRepo, chi.URLParam(r, "id"))
	if topic == nil {
		return
	}

	bookmarked, err := h.topicRepo.ToggleBookmark(r.Context(), topic.ID)
	if err != nil {
		log.Printf("failed to toggle bookmark for topic %s: %v", topic.ID, err)
		writeJSON(w, http.StatusInternalServerError, errorResp("INTERNAL_ERROR", "Server error", r))
		return
	}

	writeJSON(w, http.StatusOK, map[string]bool{"isBookmarked": bookmarked})
}

func (h *TopicHandler) UpdateNotes(w http.ResponseWriter, r *http.Request) {
	var req models.UpdateNotesRequest
	if err := json.NewDecoder(r.Body).Decode(&req); err != nil {
		writeJSON(w, http.StatusBadRequest, errorResp("VALIDATION_ERROR", "Invalid request body", r))
		return
	}

	topic := fetchOwnedTopic(w, r, h.topicRepo, chi.URLParam(r, "id"))
	if topic == nil {
		return
	}

	if err := h.topicRepo.UpdateNotes(r.Context(), topic.ID, req.Notes); err != nil {
		log.Printf("failed to update notes for topic %s: %v", topic.ID, err)
		writeJSON(w, http.StatusInternalServerError, errorResp("INTERNAL_ERROR", "Server error", r))
		return
	}

	writeJSON(w, http.StatusOK, map[string]string{"notes": req.Notes})
}

func (h *TopicHandler) UpdateProgress(w http.ResponseWriter, r *http.Request) {
	var req models.UpdateProgressRequest
	if err := json.NewDecoder(r.Body).Decode(&req); err != nil {
		writeJSON(w, http.StatusBadRequest, errorResp("VALIDATION_ERROR", "Invalid request body", r))
		return
	}
	if !models.ValidProgressStatus(req.Status) {
		writeJSON(w, http.StatusBadRequest, errorResp("VALIDATION_ERROR", "Invalid status", r))
		return
	}

	topic := fetchOwnedTopic(w, r, h.topicRepo, chi.URLParam(r, "id"))
	if topic == nil {
		return
	}

	if err := h.topicRepo.UpdateProgress(r.Context(), topic.ID, req.Status); err != nil {
		log.Printf("failed to update progress for topic %s: %v", topic.ID, err)
		writeJSON(w, http.StatusInternalServerError, errorResp("INTERNAL_ERROR", "Server error", r))
		return
	}

	writeJSON(w, http.StatusOK, map[string]string{"progressStatus": req.Status})
}

func (h *TopicHandler) ExplainSimply(w http.ResponseWriter, r *http.Request) {
	var req models.ExplainRequest
	if err := json.NewDecoder(r.Body).Decode(&req); err != nil || req.Text == "" {
		writeJSON(w, http.StatusBadRequest, errorResp("VALIDATION_ERROR", "Text required", r))
		return
	}

	explanation, err := h.ai.ExplainSimply(r.Context(), req.Text, req.TopicTitle)
	if err != nil {
		handleServiceError(w, r, err)
		return
	}

	writeJSON(w, http.StatusOK, map[string]string{"explanation": explanation})
}

func (h *TopicHandler) ExplainWithExample(w http.ResponseWriter, r *http.Request) {
	var req models.ExplainRequest
	if err := json.NewDecoder(r.Body).Decode(&req); err != nil || req.Text == "" {
		writeJSON(w, http.StatusBadRequest, errorResp("VALIDATION_ERROR", "Text required", r))
		return
	}

	explanation, err := h.ai.ExplainWithExample(r.Context(), req.Text, req.TopicTitle)
	if err != nil {
		handleServiceError(w, r, err)
		return
	}

	writeJSON(w, http.StatusOK, map[string]string{"explanation": explanation})
}

func (h *TopicHandler) ExplainInLanguage(w http.ResponseWriter, r *http.Request) {
	var req models.ExplainLanguageRequest
	if err := json.NewDecoder(r.Body).Decode(&req); err != nil || req.Text == "" || req.Language == "" {
		writeJSON(w, http.StatusBadRequest, errorResp("VALIDATION_ERROR", "Text and language required", r))
		return
	}

	explanation, err := h.ai.ExplainInLanguage(r.Context(), req.Text, req.Language, req.TopicTitle)
	if err != nil {
		handleServiceError(w, r, err)
		return
	}

	writeJSON(w, http.StatusOK, map[string]string{"explanation": explanation})
}

func (h *TopicHandler) AskAboutText(w http.ResponseWriter, r *http.Request) {
	var req models.AskAboutTextRequest
	if err := json.NewDecoder(r.Body).Decode(&req); err != nil || req.Text == "" || req.Question == "" {
		writeJSON(w, http.StatusBadRequest, errorResp("VALIDATION_ERROR", "Text and question required", r))
		return
	}

	answer, err := h.ai.AskAboutText(r.Context(), req.Text, req.Question, req.TopicTitle)
	if err != nil {
		handleServiceError(w, r, err)
		return
	}

	writeJSON(w, http.StatusOK, map[string]string{"answer": answer})
}

func (h *TopicHandler) KeyPoints(w http.ResponseWriter, r *http.Request) {
	topic, lesson := h.fetchOwnedLesson(w, r)
	if lesson == nil {
		return
	}

	keyPoints, err := h.ai.GenerateKeyPoints(r.Context(), lesson.Content, topic.Title)
	if err != nil {
		handleServiceError(w, r, err)
		return
	}

	writeJSON(w, http.StatusOK, map[string]string{"keyPoints": keyPoints})
}

func (h *TopicHandler) Keywords(w http.ResponseWriter, r *http.Request) {
	topic, lesson := h.fetchOwnedLesson(w, r)
	if lesson == nil {
		return
	}

	keywords, err := h.ai.ExtractKeywords(r.Context(), lesson.Content, topic.Title)
	if err != nil {
		handleServiceError(w, r, err)
		return
	}
	if keywords == nil {
		keywords = []string{}
	}

	writeJSON(w, http.StatusOK, map[string][]string{"keywords": keywords})
}

func (h *TopicHandler) GenerateQA(w http.ResponseWriter, r *http.Request) {
	topic, lesson := h.fetchOwnedLesson(w, r)
	if lesson == nil {
		return
	}

	qaList, err := h.ai.GenerateQA(r.Context(), services.FlattenLesson(lesson.Content), topic.Title)
	if err != nil {
		handleServiceError(w, r, err)
		return
	}

	writeJSON(w, http.StatusOK, map[string][]models.QAPair{"qaList": qaList})
}

// fetchOwnedLesson loads the topic from the id route param plus its lesson,
// writing the error response when either is missing.
func (h *TopicHandler) fetchOwnedLesson(w http.ResponseWriter, r *http.Request) (*models.Topic, *models.Lesson) {
	topic := fetchOwnedTopic(w, r, h.topicRepo, chi.URLParam(r, "id"))
	if topic == nil {
		return nil, nil
	}

	lesson, err := h.lessonRepo.GetByTopic(r.Context(), topic.ID)
	if err != nil {
		if errors.Is(err, pgx.ErrNoRows) {
			writeJSON(w, http.StatusNotFound, errorResp("NOT_FOUND", "Lesson not found", r))
		} else {
			log.Printf("failed to load lesson for topic %s: %v", topic.ID, err)
			writeJSON(w, http.StatusInternalServerError, errorResp("INTERNAL_ERROR", "Server error", r))
		}
		return nil, nil
	}
	return topic, lesson
}

type topicGetter interface {
	GetByID(ctx context.Context, id uuid.UUID) (*models.Topic, error)
}

// fetchOwnedTopic resolves a topic id route param, enforcing existence and
// ownership. On failure it writes the response and returns nil.
func fetchOwnedTopic(w http.ResponseWriter, r *http.Request, repo topicGetter, idStr string) *models.Topic {
	id, err := uuid.Parse(idStr)
	if err != nil {
		writeJSON(w, http.StatusNotFound, errorResp("NOT_FOUND", "Topic not found", r))
		return nil
	}

	topic, err := repo.GetByID(r.Context(), id)
	if err != nil {
		if errors.Is(err, pgx.ErrNoRows) {
			writeJSON(w, http.StatusNotFound, errorResp("NOT_FOUND", "Topic not found", r))
		} else {
			log.Printf("failed to load topic %s: %v", id, err)
			writeJSON(w, http.StatusInternalServerError, errorResp("INTERNAL_ERROR", "Server error", r))
		}
		return nil
	}

	if topic.UserID != middleware.GetUserID(r.Context()) {
		writeJSON(w, http.StatusForbidden, errorResp("FORBIDDEN", "Not authorized", r))
		return nil
	}
	return topic
}
