package services

import (
	"context"
	"errors"
	"strings"
	"testing"
	"unicode/utf8"

	"mentora-backend/internal/models"
)

func TestExtractJSON(t *testing.T) {
	tests := []struct {
		name  string
		input string
		want  string
	}{
		{
			name:  "bare object",
			input: `{"a":1}`,
			want:  `{"a":1}`,
		},
		{
			name:  "fenced with language",
			input: "```json\n{\"a\":1}\n```",
			want:  `{"a":1}`,
		},
		{
			name:  "fenced without language",
			input: "```\n{\"a\":1}\n```",
			want:  `{"a":1}`,
		},
		{
			name:  "unterminated fence",
			input: "```json\n{\"a\":1}",
			want:  `{"a":1}`,
		},
		{
			name:  "prose around object",
			input: "Here is your JSON:\n{\"a\":1}\nHope that helps!",
			want:  `{"a":1}`,
		},
		{
			name:  "array value",
			input: "Sure:\n[{\"question\":\"q\"}]",
			want:  `[{"question":"q"}]`,
		},
		{
			name:  "no json at all",
			input: "I cannot answer that.",
			want:  "I cannot answer that.",
		},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			if got := extractJSON(tt.input); got != tt.want {
				t.Fatalf("extractJSON(%q) = %q, want %q", tt.input, got, tt.want)
			}
		})
	}
}

func TestParseKeywords(t *testing.T) {
	got := parseKeywords("photosynthesis, chlorophyll ,glucose,,  light reaction  ")
	want := []string{"photosynthesis", "chlorophyll", "glucose", "light reaction"}

	if len(got) != len(want) {
		t.Fatalf("expected %d keywords, got %d: %v", len(want), len(got), got)
	}
	for i := range want {
		if got[i] != want[i] {
			t.Fatalf("keyword %d: got %q, want %q", i, got[i], want[i])
		}
	}
}

func TestTruncate(t *testing.T) {
	if got := truncate("hello", 10); got != "hello" {
		t.Fatalf("short string must pass through, got %q", got)
	}
	if got := truncate(strings.Repeat("x", 4000), 3000); len(got) != 3000 {
		t.Fatalf("expected 3000 chars, got %d", len(got))
	}

	// Cutting inside a multibyte rune must back up to the previous boundary.
	got := truncate(strings.Repeat("ह", 100), 10) // Devanagari, 3 bytes each
	if !utf8.ValidString(got) {
		t.Fatalf("truncated string is not valid UTF-8: %q", got)
	}
	if len(got) != 9 {
		t.Fatalf("expected 9 bytes after backing up to a rune boundary, got %d", len(got))
	}
}

func TestClassifyProviderError(t *testing.T) {
	tests := []struct {
		err  error
		want string
	}{
		{errors.New("invalid API key provided"), "AI service configuration error. Please contact support."},
		{errors.New("rate limit reached for model"), "Too many questions at once. Please wait a moment and try again."},
		{errors.New("connection reset by peer"), "Unable to generate answer right now. Please try again in a moment."},
	}

	for _, tt := range tests {
		got := classifyProviderError(tt.err)
		if got.Message != tt.want {
			t.Fatalf("classifyProviderError(%v) = %q, want %q", tt.err, got.Message, tt.want)
		}
	}
}

func TestFlattenLesson(t *testing.T) {
	content := models.LessonContent{
		Introduction: "Intro here.",
		Steps: []models.LessonStep{
			{Title: "Step one", Content: "Do the first thing."},
			{Title: "Step two", Content: "Do the second thing."},
		},
		Summary: []string{"Point A", "Point B"},
	}

	flat := FlattenLesson(content)

	for _, fragment := range []string{"Intro here.", "Step one: Do the first thing.", "Step two: Do the second thing.", "Key Points:", "Point A\nPoint B"} {
		if !strings.Contains(flat, fragment) {
			t.Fatalf("flattened lesson missing %q:\n%s", fragment, flat)
		}
	}
}

func TestExplainInLanguage_UnsupportedLanguage(t *testing.T) {
	s := NewAIService("test-key", "", "test-model", 1)

	_, err := s.ExplainInLanguage(context.Background(), "some text", "french", "Topic")

	var vErr *ValidationError
	if !errors.As(err, &vErr) {
		t.Fatalf("expected ValidationError, got %T: %v", err, err)
	}
	if !strings.Contains(vErr.Message, "hindi") {
		t.Fatalf("error should name the supported languages, got %q", vErr.Message)
	}
}

func TestAcquireRate_Cancellation(t *testing.T) {
	s := NewAIService("test-key", "", "test-model", 1)

	// Drain the only slot
	if err := s.acquireRate(context.Background()); err != nil {
		t.Fatalf("first acquire failed: %v", err)
	}

	ctx, cancel := context.WithCancel(context.Background())
	cancel()
	if err := s.acquireRate(ctx); !errors.Is(err, context.Canceled) {
		t.Fatalf("expected context.Canceled, got %v", err)
	}

	s.releaseRate()
	if err := s.acquireRate(context.Background()); err != nil {
		t.Fatalf("acquire after release failed: %v", err)
	}
}
