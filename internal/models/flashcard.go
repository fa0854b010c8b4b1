package models

import (
	"time"

	"github.com/google/uuid"
)

// Flashcard statuses a card moves through during review.
var FlashcardStatuses = []string{"new", "learning", "mastered"}

type Flashcard struct {
	ID        uuid.UUID `json:"id"`
	TopicID   uuid.UUID `json:"topicId"`
	UserID    uuid.UUID `json:"userId"`
	Front     string    `json:"front"`
	Back      string    `json:"back"`
	Status    string    `json:"status"`
	CreatedAt time.Time `json:"createdAt"`
}

type UpdateFlashcardRequest struct {
	Status string `json:"status"`
}

func ValidFlashcardStatus(status string) bool {
	for _, s := range FlashcardStatuses {
		if s == status {
			return true
		}
	}
	return false
}
