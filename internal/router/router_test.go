package router

import (
	"encoding/json"
	"net/http"
	"net/http/httptest"
	"testing"

	"mentora-backend/internal/handlers"
	"mentora-backend/internal/middleware"
	"mentora-backend/internal/services"
)

func testRouter() http.Handler {
	jwtAuth := middleware.NewJWTAuth("test-secret")
	mediaHandler := handlers.NewMediaHandler(
		services.NewTTSService(),
		services.NewYouTubeService(""),
		services.NewBooksService(""),
		services.NewQuoteService(),
	)

	return New(
		jwtAuth,
		handlers.NewAuthHandler(nil, nil),
		handlers.NewTopicHandler(nil, nil, nil, nil, nil, nil),
		handlers.NewDoubtHandler(nil, nil, nil, nil),
		handlers.NewFlashcardHandler(nil, nil),
		mediaHandler,
		"http://localhost:3000",
	)
}

func TestRouter_UnknownRoute(t *testing.T) {
	r := testRouter()

	req := httptest.NewRequest(http.MethodGet, "/api/nope", nil)
	rr := httptest.NewRecorder()
	r.ServeHTTP(rr, req)

	if rr.Code != http.StatusNotFound {
		t.Fatalf("expected status %d, got %d", http.StatusNotFound, rr.Code)
	}

	var payload map[string]string
	if err := json.NewDecoder(rr.Body).Decode(&payload); err != nil {
		t.Fatalf("failed to decode response: %v", err)
	}
	if payload["message"] != "Route not found" {
		t.Fatalf("unexpected message: %q", payload["message"])
	}
}

func TestRouter_Health(t *testing.T) {
	r := testRouter()

	req := httptest.NewRequest(http.MethodGet, "/api/health", nil)
	rr := httptest.NewRecorder()
	r.ServeHTTP(rr, req)

	if rr.Code != http.StatusOK {
		t.Fatalf("expected status %d, got %d", http.StatusOK, rr.Code)
	}

	var payload map[string]string
	if err := json.NewDecoder(rr.Body).Decode(&payload); err != nil {
		t.Fatalf("failed to decode response: %v", err)
	}
	if payload["status"] != "OK" || payload["timestamp"] == "" {
		t.Fatalf("unexpected health payload: %+v", payload)
	}
}

func TestRouter_ProtectedRoutesRequireAuth(t *testing.T) {
	r := testRouter()

	paths := []struct {
		method string
		path   string
	}{
		{http.MethodGet, "/api/topics/"},
		{http.MethodPost, "/api/doubts/ask"},
		{http.MethodPost, "/api/tts"},
		{http.MethodGet, "/api/youtube/search?query=go"},
		{http.MethodGet, "/api/quotes/daily"},
		{http.MethodGet, "/api/quotes/random"},
	}

	for _, p := range paths {
		req := httptest.NewRequest(p.method, p.path, nil)
		rr := httptest.NewRecorder()
		r.ServeHTTP(rr, req)

		if rr.Code != http.StatusUnauthorized {
			t.Fatalf("%s %s: expected status %d, got %d", p.method, p.path, http.StatusUnauthorized, rr.Code)
		}
	}
}
