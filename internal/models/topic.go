package models

import (
	"time"

	"github.com/google/uuid"
)

// Topic levels accepted by the generation workflow.
var TopicLevels = []string{"beginner", "intermediate", "advanced"}

// Progress statuses a topic can be moved through.
var ProgressStatuses = []string{"not-started", "in-progress", "understood", "revise-later"}

type Topic struct {
	ID             uuid.UUID `json:"id"`
	UserID         uuid.UUID `json:"userId"`
	Title          string    `json:"title"`
	Level          string    `json:"level"`
	IsBookmarked   bool      `json:"isBookmarked"`
	Notes          string    `json:"notes"`
	ProgressStatus string    `json:"progressStatus"`
	CreatedAt      time.Time `json:"createdAt"`
}

type GenerateTopicRequest struct {
	Title string `json:"title"`
	Level string `json:"level"`
}

type UpdateNotesRequest struct {
	Notes string `json:"notes"`
}

type UpdateProgressRequest struct {
	Status string `json:"status"`
}

type ExplainRequest struct {
	Text       string `json:"text"`
	TopicTitle string `json:"topicTitle"`
}

type ExplainLanguageRequest struct {
	Text       string `json:"text"`
	Language   string `json:"language"`
	TopicTitle string `json:"topicTitle"`
}

type AskAboutTextRequest struct {
	Text       string `json:"text"`
	Question   string `json:"question"`
	TopicTitle string `json:"topicTitle"`
}

func ValidLevel(level string) bool {
	for _, l := range TopicLevels {
		if l == level {
			return true
		}
	}
	return false
}

func ValidProgressStatus(status string) bool {
	for _, s := range ProgressStatuses {
		if s == status {
			return true
		}
	}
	return false
}
