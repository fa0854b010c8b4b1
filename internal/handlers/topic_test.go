package handlers

import (
	"encoding/json"
	"net/http"
	"net/http/httptest"
	"strings"
	"testing"
	"time"

	"github.com/google/uuid"

	"mentora-backend/internal/models"
	"mentora-backend/internal/services"
)

func sampleLesson() models.LessonContent {
	return models.LessonContent{
		Introduction: "Recursion is a function calling itself.",
		Steps: []models.LessonStep{
			{Title: "Base case", Content: "Every recursion needs a stopping condition."},
			{Title: "Recursive case", Content: "The function reduces the problem and calls itself."},
		},
		Analogies: []string{"Russian nesting dolls", "Mirrors facing each other"},
		Summary:   []string{"Base case stops", "Recursive case shrinks", "Stack frames", "Tree traversal", "Divide and conquer"},
	}
}

func TestTopicHandler_Generate_MissingFields(t *testing.T) {
	h := NewTopicHandler(&stubTopicRepo{}, &stubLessonRepo{}, &stubQuizRepo{}, &stubFlashcardRepo{}, &stubDoubtRepo{}, &stubAI{})

	req := authedRequest(http.MethodPost, "/api/topics/generate", strings.NewReader(`{"title":"Recursion"}`), uuid.New(), nil)
	rr := httptest.NewRecorder()
	h.Generate(rr, req)

	if rr.Code != http.StatusBadRequest {
		t.Fatalf("expected status %d, got %d", http.StatusBadRequest, rr.Code)
	}

	var resp models.ErrorResponse
	if err := json.NewDecoder(rr.Body).Decode(&resp); err != nil {
		t.Fatalf("failed to decode response: %v", err)
	}
	if resp.Message != "Please provide title and level" {
		t.Fatalf("unexpected message: %q", resp.Message)
	}
}

func TestTopicHandler_Generate_InvalidLevel(t *testing.T) {
	h := NewTopicHandler(&stubTopicRepo{}, &stubLessonRepo{}, &stubQuizRepo{}, &stubFlashcardRepo{}, &stubDoubtRepo{}, &stubAI{})

	req := authedRequest(http.MethodPost, "/api/topics/generate", strings.NewReader(`{"title":"Recursion","level":"expert"}`), uuid.New(), nil)
	rr := httptest.NewRecorder()
	h.Generate(rr, req)

	if rr.Code != http.StatusBadRequest {
		t.Fatalf("expected status %d, got %d", http.StatusBadRequest, rr.Code)
	}
}

func TestTopicHandler_Generate_Success(t *testing.T) {
	userID := uuid.New()
	topicRepo := &stubTopicRepo{}
	lessonRepo := &stubLessonRepo{}
	quizRepo := &stubQuizRepo{}
	cardRepo := &stubFlashcardRepo{}
	ai := &stubAI{
		lesson: sampleLesson(),
		questions: []models.QuizQuestion{
			{Question: "What stops recursion?", Options: []string{"Base case", "Loop", "Return", "Break"}, CorrectIndex: 0, Explanation: "The base case ends the calls."},
		},
		cards: []services.CardFace{
			{Front: "Base case", Back: "The stopping condition"},
			{Front: "Recursive case", Back: "The self-call that shrinks the problem"},
		},
	}
	h := NewTopicHandler(topicRepo, lessonRepo, quizRepo, cardRepo, &stubDoubtRepo{}, ai)

	req := authedRequest(http.MethodPost, "/api/topics/generate", strings.NewReader(`{"title":"Recursion","level":"beginner"}`), userID, nil)
	rr := httptest.NewRecorder()
	h.Generate(rr, req)

	if rr.Code != http.StatusCreated {
		t.Fatalf("expected status %d, got %d: %s", http.StatusCreated, rr.Code, rr.Body.String())
	}

	var bundle models.TopicBundle
	if err := json.NewDecoder(rr.Body).Decode(&bundle); err != nil {
		t.Fatalf("failed to decode response: %v", err)
	}
	if bundle.Message != "Topic generated successfully!" {
		t.Fatalf("unexpected message: %q", bundle.Message)
	}
	if bundle.Topic == nil || bundle.Topic.UserID != userID {
		t.Fatalf("topic missing or wrong owner: %+v", bundle.Topic)
	}
	if bundle.Topic.ProgressStatus != "not-started" {
		t.Fatalf("expected default progress, got %q", bundle.Topic.ProgressStatus)
	}
	if lessonRepo.created == nil || lessonRepo.created.TopicID != topicRepo.created.ID {
		t.Fatalf("lesson not linked to topic")
	}
	if quizRepo.created == nil || len(quizRepo.created.Questions) != 1 {
		t.Fatalf("quiz not saved")
	}
	if len(cardRepo.createdBatch) != 2 {
		t.Fatalf("expected 2 flashcards, got %d", len(cardRepo.createdBatch))
	}
	for _, c := range cardRepo.createdBatch {
		if c.TopicID != topicRepo.created.ID || c.UserID != userID {
			t.Fatalf("flashcard not linked correctly: %+v", c)
		}
	}
}

func TestTopicHandler_Generate_LessonFailure(t *testing.T) {
	topicRepo := &stubTopicRepo{}
	ai := &stubAI{lessonErr: &services.AIServiceError{Message: "Failed to generate lesson content"}}
	h := NewTopicHandler(topicRepo, &stubLessonRepo{}, &stubQuizRepo{}, &stubFlashcardRepo{}, &stubDoubtRepo{}, ai)

	req := authedRequest(http.MethodPost, "/api/topics/generate", strings.NewReader(`{"title":"Recursion","level":"beginner"}`), uuid.New(), nil)
	rr := httptest.NewRecorder()
	h.Generate(rr, req)

	if rr.Code != http.StatusInternalServerError {
		t.Fatalf("expected status %d, got %d", http.StatusInternalServerError, rr.Code)
	}
	// The topic row survives the failed generation; no rollback.
	if topicRepo.created == nil {
		t.Fatalf("expected topic to be created before the AI call")
	}
}

func TestTopicHandler_Get_Forbidden(t *testing.T) {
	topicID := uuid.New()
	ownerID := uuid.New()
	topicRepo := &stubTopicRepo{topics: map[uuid.UUID]*models.Topic{
		topicID: {ID: topicID, UserID: ownerID, Title: "Recursion"},
	}}
	h := NewTopicHandler(topicRepo, &stubLessonRepo{}, &stubQuizRepo{}, &stubFlashcardRepo{}, &stubDoubtRepo{}, &stubAI{})

	req := authedRequest(http.MethodGet, "/api/topics/"+topicID.String(), nil, uuid.New(), map[string]string{"id": topicID.String()})
	rr := httptest.NewRecorder()
	h.Get(rr, req)

	if rr.Code != http.StatusForbidden {
		t.Fatalf("expected status %d, got %d", http.StatusForbidden, rr.Code)
	}
}

func TestTopicHandler_Get_NotFound(t *testing.T) {
	h := NewTopicHandler(&stubTopicRepo{}, &stubLessonRepo{}, &stubQuizRepo{}, &stubFlashcardRepo{}, &stubDoubtRepo{}, &stubAI{})

	id := uuid.New()
	req := authedRequest(http.MethodGet, "/api/topics/"+id.String(), nil, uuid.New(), map[string]string{"id": id.String()})
	rr := httptest.NewRecorder()
	h.Get(rr, req)

	if rr.Code != http.StatusNotFound {
		t.Fatalf("expected status %d, got %d", http.StatusNotFound, rr.Code)
	}
}

func TestTopicHandler_Get_MissingChildrenAreNull(t *testing.T) {
	topicID := uuid.New()
	ownerID := uuid.New()
	topicRepo := &stubTopicRepo{topics: map[uuid.UUID]*models.Topic{
		topicID: {ID: topicID, UserID: ownerID, Title: "Recursion"},
	}}
	h := NewTopicHandler(topicRepo, &stubLessonRepo{}, &stubQuizRepo{}, &stubFlashcardRepo{}, &stubDoubtRepo{}, &stubAI{})

	req := authedRequest(http.MethodGet, "/api/topics/"+topicID.String(), nil, ownerID, map[string]string{"id": topicID.String()})
	rr := httptest.NewRecorder()
	h.Get(rr, req)

	if rr.Code != http.StatusOK {
		t.Fatalf("expected status %d, got %d", http.StatusOK, rr.Code)
	}

	var payload map[string]json.RawMessage
	if err := json.NewDecoder(rr.Body).Decode(&payload); err != nil {
		t.Fatalf("failed to decode response: %v", err)
	}
	if string(payload["lesson"]) != "null" {
		t.Fatalf("expected null lesson, got %s", payload["lesson"])
	}
	if string(payload["quiz"]) != "null" {
		t.Fatalf("expected null quiz, got %s", payload["quiz"])
	}
	if string(payload["flashcards"]) != "[]" {
		t.Fatalf("expected empty flashcards, got %s", payload["flashcards"])
	}
}

func TestTopicHandler_Delete_CascadesDoubts(t *testing.T) {
	topicID := uuid.New()
	ownerID := uuid.New()
	topicRepo := &stubTopicRepo{topics: map[uuid.UUID]*models.Topic{
		topicID: {ID: topicID, UserID: ownerID},
	}}
	lessonRepo := &stubLessonRepo{}
	quizRepo := &stubQuizRepo{}
	cardRepo := &stubFlashcardRepo{}
	doubtRepo := &stubDoubtRepo{}
	h := NewTopicHandler(topicRepo, lessonRepo, quizRepo, cardRepo, doubtRepo, &stubAI{})

	req := authedRequest(http.MethodDelete, "/api/topics/"+topicID.String(), nil, ownerID, map[string]string{"id": topicID.String()})
	rr := httptest.NewRecorder()
	h.Delete(rr, req)

	if rr.Code != http.StatusOK {
		t.Fatalf("expected status %d, got %d", http.StatusOK, rr.Code)
	}
	if len(doubtRepo.deleted) != 1 || doubtRepo.deleted[0] != topicID {
		t.Fatalf("expected doubts to be deleted with the topic")
	}
	if len(lessonRepo.deleted) != 1 || len(quizRepo.deleted) != 1 || len(cardRepo.deleted) != 1 {
		t.Fatalf("expected all child content to be deleted")
	}
	if len(topicRepo.deleted) != 1 || topicRepo.deleted[0] != topicID {
		t.Fatalf("expected topic row to be deleted")
	}

	var payload map[string]string
	if err := json.NewDecoder(rr.Body).Decode(&payload); err != nil {
		t.Fatalf("failed to decode response: %v", err)
	}
	if payload["message"] != "Topic deleted successfully" {
		t.Fatalf("unexpected message: %q", payload["message"])
	}
}

func TestTopicHandler_ToggleBookmark(t *testing.T) {
	topicID := uuid.New()
	ownerID := uuid.New()
	topicRepo := &stubTopicRepo{topics: map[uuid.UUID]*models.Topic{
		topicID: {ID: topicID, UserID: ownerID},
	}}
	h := NewTopicHandler(topicRepo, &stubLessonRepo{}, &stubQuizRepo{}, &stubFlashcardRepo{}, &stubDoubtRepo{}, &stubAI{})

	req := authedRequest(http.MethodPut, "/api/topics/"+topicID.String()+"/bookmark", nil, ownerID, map[string]string{"id": topicID.String()})
	rr := httptest.NewRecorder()
	h.ToggleBookmark(rr, req)

	if rr.Code != http.StatusOK {
		t.Fatalf("expected status %d, got %d", http.StatusOK, rr.Code)
	}

	var payload map[string]bool
	if err := json.NewDecoder(rr.Body).Decode(&payload); err != nil {
		t.Fatalf("failed to decode response: %v", err)
	}
	if !payload["isBookmarked"] {
		t.Fatalf("expected bookmark to flip to true")
	}
}

func TestTopicHandler_UpdateProgress(t *testing.T) {
	topicID := uuid.New()
	ownerID := uuid.New()
	topicRepo := &stubTopicRepo{topics: map[uuid.UUID]*models.Topic{
		topicID: {ID: topicID, UserID: ownerID},
	}}
	h := NewTopicHandler(topicRepo, &stubLessonRepo{}, &stubQuizRepo{}, &stubFlashcardRepo{}, &stubDoubtRepo{}, &stubAI{})

	tests := []struct {
		name   string
		body   string
		status int
	}{
		{"valid status", `{"status":"understood"}`, http.StatusOK},
		{"invalid status", `{"status":"done"}`, http.StatusBadRequest},
		{"empty status", `{}`, http.StatusBadRequest},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			req := authedRequest(http.MethodPut, "/api/topics/"+topicID.String()+"/progress", strings.NewReader(tt.body), ownerID, map[string]string{"id": topicID.String()})
			rr := httptest.NewRecorder()
			h.UpdateProgress(rr, req)

			if rr.Code != tt.status {
				t.Fatalf("expected status %d, got %d", tt.status, rr.Code)
			}
		})
	}

	if topicRepo.progress != "understood" {
		t.Fatalf("expected progress to be persisted, got %q", topicRepo.progress)
	}
}

func TestTopicHandler_ExplainInLanguage_Unsupported(t *testing.T) {
	h := NewTopicHandler(&stubTopicRepo{}, &stubLessonRepo{}, &stubQuizRepo{}, &stubFlashcardRepo{}, &stubDoubtRepo{}, &stubAI{})

	body := `{"text":"recursion","language":"french","topicTitle":"Recursion"}`
	req := authedRequest(http.MethodPost, "/api/topics/explain-language", strings.NewReader(body), uuid.New(), nil)
	rr := httptest.NewRecorder()
	h.ExplainInLanguage(rr, req)

	if rr.Code != http.StatusBadRequest {
		t.Fatalf("expected status %d, got %d", http.StatusBadRequest, rr.Code)
	}
}

func TestTopicHandler_List_NewestFirst(t *testing.T) {
	ownerID := uuid.New()
	now := time.Now()
	oldest := &models.Topic{ID: uuid.New(), UserID: ownerID, Title: "Pointers", CreatedAt: now.Add(-2 * time.Hour)}
	middle := &models.Topic{ID: uuid.New(), UserID: ownerID, Title: "Slices", CreatedAt: now.Add(-time.Hour)}
	newest := &models.Topic{ID: uuid.New(), UserID: ownerID, Title: "Maps", CreatedAt: now}
	topicRepo := &stubTopicRepo{topics: map[uuid.UUID]*models.Topic{
		oldest.ID: oldest,
		newest.ID: newest,
		middle.ID: middle,
	}}
	h := NewTopicHandler(topicRepo, &stubLessonRepo{}, &stubQuizRepo{}, &stubFlashcardRepo{}, &stubDoubtRepo{}, &stubAI{})

	req := authedRequest(http.MethodGet, "/api/topics/", nil, ownerID, nil)
	rr := httptest.NewRecorder()
	h.List(rr, req)

	if rr.Code != http.StatusOK {
		t.Fatalf("expected status %d, got %d", http.StatusOK, rr.Code)
	}

	var topics []models.Topic
	if err := json.NewDecoder(rr.Body).Decode(&topics); err != nil {
		t.Fatalf("failed to decode response: %v", err)
	}
	if len(topics) != 3 {
		t.Fatalf("expected 3 topics, got %d", len(topics))
	}
	want := []string{"Maps", "Slices", "Pointers"}
	for i, title := range want {
		if topics[i].Title != title {
			t.Fatalf("position %d: expected %q, got %q", i, title, topics[i].Title)
		}
	}
}

func TestTopicHandler_ExplainSimply_AIFailureIs500(t *testing.T) {
	ai := &stubAI{textErr: &services.AIServiceError{Message: "Unable to generate simple explanation."}}
	h := NewTopicHandler(&stubTopicRepo{}, &stubLessonRepo{}, &stubQuizRepo{}, &stubFlashcardRepo{}, &stubDoubtRepo{}, ai)

	body := `{"text":"recursion","topicTitle":"Recursion"}`
	req := authedRequest(http.MethodPost, "/api/topics/explain-simple", strings.NewReader(body), uuid.New(), nil)
	rr := httptest.NewRecorder()
	h.ExplainSimply(rr, req)

	if rr.Code != http.StatusInternalServerError {
		t.Fatalf("expected status %d, got %d", http.StatusInternalServerError, rr.Code)
	}

	var resp models.ErrorResponse
	if err := json.NewDecoder(rr.Body).Decode(&resp); err != nil {
		t.Fatalf("failed to decode response: %v", err)
	}
	if resp.Code != "AI_SERVICE_ERROR" {
		t.Fatalf("expected AI_SERVICE_ERROR code, got %q", resp.Code)
	}
	if resp.Message != "Unable to generate simple explanation." {
		t.Fatalf("unexpected message: %q", resp.Message)
	}
}

func TestTopicHandler_KeyPoints_LessonMissing(t *testing.T) {
	topicID := uuid.New()
	ownerID := uuid.New()
	topicRepo := &stubTopicRepo{topics: map[uuid.UUID]*models.Topic{
		topicID: {ID: topicID, UserID: ownerID, Title: "Recursion"},
	}}
	h := NewTopicHandler(topicRepo, &stubLessonRepo{}, &stubQuizRepo{}, &stubFlashcardRepo{}, &stubDoubtRepo{}, &stubAI{})

	req := authedRequest(http.MethodPost, "/api/topics/"+topicID.String()+"/key-points", nil, ownerID, map[string]string{"id": topicID.String()})
	rr := httptest.NewRecorder()
	h.KeyPoints(rr, req)

	if rr.Code != http.StatusNotFound {
		t.Fatalf("expected status %d, got %d", http.StatusNotFound, rr.Code)
	}

	var resp models.ErrorResponse
	if err := json.NewDecoder(rr.Body).Decode(&resp); err != nil {
		t.Fatalf("failed to decode response: %v", err)
	}
	if resp.Message != "Lesson not found" {
		t.Fatalf("unexpected message: %q", resp.Message)
	}
}

func TestTopicHandler_GenerateQA(t *testing.T) {
	topicID := uuid.New()
	ownerID := uuid.New()
	topicRepo := &stubTopicRepo{topics: map[uuid.UUID]*models.Topic{
		topicID: {ID: topicID, UserID: ownerID, Title: "Recursion"},
	}}
	lessonRepo := &stubLessonRepo{lessons: map[uuid.UUID]*models.Lesson{
		topicID: {ID: uuid.New(), TopicID: topicID, Content: sampleLesson()},
	}}
	ai := &stubAI{qaPairs: []models.QAPair{
		{Question: "What is a base case?", Answer: "The condition that stops recursion."},
	}}
	h := NewTopicHandler(topicRepo, lessonRepo, &stubQuizRepo{}, &stubFlashcardRepo{}, &stubDoubtRepo{}, ai)

	req := authedRequest(http.MethodPost, "/api/topics/"+topicID.String()+"/generate-qa", nil, ownerID, map[string]string{"id": topicID.String()})
	rr := httptest.NewRecorder()
	h.GenerateQA(rr, req)

	if rr.Code != http.StatusOK {
		t.Fatalf("expected status %d, got %d", http.StatusOK, rr.Code)
	}

	var payload map[string][]models.QAPair
	if err := json.NewDecoder(rr.Body).Decode(&payload); err != nil {
		t.Fatalf("failed to decode response: %v", err)
	}
	if len(payload["qaList"]) != 1 || payload["qaList"][0].Question == "" {
		t.Fatalf("unexpected qaList: %+v", payload["qaList"])
	}
}
