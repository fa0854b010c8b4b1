package handlers

import (
	"context"
	"io"
	"net/http"
	"net/http/httptest"
	"sort"
	"time"

	"github.com/go-chi/chi/v5"
	"github.com/google/uuid"
	"github.com/jackc/pgx/v5"

	"mentora-backend/internal/middleware"
	"mentora-backend/internal/models"
	"mentora-backend/internal/services"
)

// Shared stubs for handler tests. Each stub implements the full repository
// interface its handler depends on; unused methods are no-ops.

type stubTopicRepo struct {
	topics     map[uuid.UUID]*models.Topic
	created    *models.Topic
	bookmarked bool
	notes      string
	progress   string
	deleted    []uuid.UUID
}

func (s *stubTopicRepo) Create(ctx context.Context, t *models.Topic) error {
	t.ID = uuid.New()
	if t.ProgressStatus == "" {
		t.ProgressStatus = "not-started"
	}
	t.CreatedAt = time.Now()
	s.created = t
	return nil
}

func (s *stubTopicRepo) GetByID(ctx context.Context, id uuid.UUID) (*models.Topic, error) {
	if t, ok := s.topics[id]; ok {
		return t, nil
	}
	return nil, pgx.ErrNoRows
}

func (s *stubTopicRepo) ListByUser(ctx context.Context, userID uuid.UUID) ([]*models.Topic, error) {
	var out []*models.Topic
	for _, t := range s.topics {
		if t.UserID == userID {
			out = append(out, t)
		}
	}
	// Newest first, matching the repository's ORDER BY created_at DESC.
	sort.Slice(out, func(i, j int) bool { return out[i].CreatedAt.After(out[j].CreatedAt) })
	return out, nil
}

func (s *stubTopicRepo) ToggleBookmark(ctx context.Context, id uuid.UUID) (bool, error) {
	t, ok := s.topics[id]
	if !ok {
		return false, pgx.ErrNoRows
	}
	t.IsBookmarked = !t.IsBookmarked
	s.bookmarked = t.IsBookmarked
	return t.IsBookmarked, nil
}

func (s *stubTopicRepo) UpdateNotes(ctx context.Context, id uuid.UUID, notes string) error {
	s.notes = notes
	return nil
}

func (s *stubTopicRepo) UpdateProgress(ctx context.Context, id uuid.UUID, status string) error {
	s.progress = status
	return nil
}

func (s *stubTopicRepo) Delete(ctx context.Context, id uuid.UUID) error {
	s.deleted = append(s.deleted, id)
	return nil
}

type stubLessonRepo struct {
	lessons map[uuid.UUID]*models.Lesson // keyed by topic id
	created *models.Lesson
	deleted []uuid.UUID
}

func (s *stubLessonRepo) Create(ctx context.Context, l *models.Lesson) error {
	l.ID = uuid.New()
	s.created = l
	return nil
}

func (s *stubLessonRepo) GetByTopic(ctx context.Context, topicID uuid.UUID) (*models.Lesson, error) {
	if l, ok := s.lessons[topicID]; ok {
		return l, nil
	}
	return nil, pgx.ErrNoRows
}

func (s *stubLessonRepo) DeleteByTopic(ctx context.Context, topicID uuid.UUID) error {
	s.deleted = append(s.deleted, topicID)
	return nil
}

type stubQuizRepo struct {
	quizzes map[uuid.UUID]*models.Quiz
	created *models.Quiz
	deleted []uuid.UUID
}

func (s *stubQuizRepo) Create(ctx context.Context, q *models.Quiz) error {
	q.ID = uuid.New()
	s.created = q
	return nil
}

func (s *stubQuizRepo) GetByTopic(ctx context.Context, topicID uuid.UUID) (*models.Quiz, error) {
	if q, ok := s.quizzes[topicID]; ok {
		return q, nil
	}
	return nil, pgx.ErrNoRows
}

func (s *stubQuizRepo) DeleteByTopic(ctx context.Context, topicID uuid.UUID) error {
	s.deleted = append(s.deleted, topicID)
	return nil
}

type stubFlashcardRepo struct {
	cards         []*models.Flashcard
	createdBatch  []*models.Flashcard
	updatedID     uuid.UUID
	updatedStatus string
	deleted       []uuid.UUID
}

func (s *stubFlashcardRepo) CreateMany(ctx context.Context, cards []*models.Flashcard) error {
	for _, c := range cards {
		c.ID = uuid.New()
		if c.Status == "" {
			c.Status = "new"
		}
	}
	s.createdBatch = cards
	return nil
}

func (s *stubFlashcardRepo) GetByID(ctx context.Context, id uuid.UUID) (*models.Flashcard, error) {
	for _, c := range s.cards {
		if c.ID == id {
			return c, nil
		}
	}
	return nil, pgx.ErrNoRows
}

func (s *stubFlashcardRepo) ListByTopic(ctx context.Context, topicID uuid.UUID) ([]*models.Flashcard, error) {
	var out []*models.Flashcard
	for _, c := range s.cards {
		if c.TopicID == topicID {
			out = append(out, c)
		}
	}
	return out, nil
}

func (s *stubFlashcardRepo) UpdateStatus(ctx context.Context, id uuid.UUID, status string) error {
	s.updatedID = id
	s.updatedStatus = status
	return nil
}

func (s *stubFlashcardRepo) DeleteByTopic(ctx context.Context, topicID uuid.UUID) error {
	s.deleted = append(s.deleted, topicID)
	return nil
}

type stubDoubtRepo struct {
	doubts  []*models.Doubt
	created *models.Doubt
	deleted []uuid.UUID
}

func (s *stubDoubtRepo) Create(ctx context.Context, d *models.Doubt) error {
	d.ID = uuid.New()
	d.CreatedAt = time.Now()
	s.created = d
	return nil
}

func (s *stubDoubtRepo) ListByTopic(ctx context.Context, topicID uuid.UUID) ([]*models.Doubt, error) {
	var out []*models.Doubt
	for _, d := range s.doubts {
		if d.TopicID == topicID {
			out = append(out, d)
		}
	}
	// Newest first, matching the repository's ORDER BY created_at DESC.
	sort.Slice(out, func(i, j int) bool { return out[i].CreatedAt.After(out[j].CreatedAt) })
	return out, nil
}

func (s *stubDoubtRepo) DeleteByTopic(ctx context.Context, topicID uuid.UUID) error {
	s.deleted = append(s.deleted, topicID)
	return nil
}

type stubAI struct {
	lesson    models.LessonContent
	lessonErr error
	questions []models.QuizQuestion
	quizErr   error
	cards     []services.CardFace
	cardsErr  error
	answer    string
	answerErr error
	text      string
	textErr   error
	keywords  []string
	qaPairs   []models.QAPair
}

func (s *stubAI) GenerateLesson(ctx context.Context, title, level string) (models.LessonContent, error) {
	return s.lesson, s.lessonErr
}

func (s *stubAI) GenerateQuiz(ctx context.Context, title, level string, lesson models.LessonContent) ([]models.QuizQuestion, error) {
	return s.questions, s.quizErr
}

func (s *stubAI) GenerateFlashcards(ctx context.Context, title, level string, lesson models.LessonContent) ([]services.CardFace, error) {
	return s.cards, s.cardsErr
}

func (s *stubAI) AnswerDoubt(ctx context.Context, question, topicTitle string, lesson models.LessonContent) (string, error) {
	return s.answer, s.answerErr
}

func (s *stubAI) ExplainSimply(ctx context.Context, text, topicTitle string) (string, error) {
	return s.text, s.textErr
}

func (s *stubAI) ExplainWithExample(ctx context.Context, text, topicTitle string) (string, error) {
	return s.text, s.textErr
}

func (s *stubAI) ExplainInLanguage(ctx context.Context, text, language, topicTitle string) (string, error) {
	if language != "hindi" && language != "hinglish" {
		return "", &services.ValidationError{Message: "Unsupported language. Choose hindi or hinglish."}
	}
	return s.text, s.textErr
}

func (s *stubAI) GenerateKeyPoints(ctx context.Context, lesson models.LessonContent, topicTitle string) (string, error) {
	return s.text, s.textErr
}

func (s *stubAI) ExtractKeywords(ctx context.Context, lesson models.LessonContent, topicTitle string) ([]string, error) {
	return s.keywords, s.textErr
}

func (s *stubAI) AskAboutText(ctx context.Context, text, question, topicTitle string) (string, error) {
	return s.text, s.textErr
}

func (s *stubAI) GenerateQA(ctx context.Context, lessonText, topicTitle string) ([]models.QAPair, error) {
	return s.qaPairs, s.textErr
}

// authedRequest builds a request carrying the authenticated user id and any
// chi route params.
func authedRequest(method, path string, body io.Reader, userID uuid.UUID, params map[string]string) *http.Request {
	req := httptest.NewRequest(method, path, body)

	rctx := chi.NewRouteContext()
	for k, v := range params {
		rctx.URLParams.Add(k, v)
	}
	req = req.WithContext(context.WithValue(req.Context(), chi.RouteCtxKey, rctx))
	req = req.WithContext(context.WithValue(req.Context(), middleware.UserIDKey, userID))
	return req
}
