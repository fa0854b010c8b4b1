package models

import (
	"time"

	"github.com/google/uuid"
)

// Doubt is a user question about a topic with its AI answer. Doubts are
// append-only: created by askDoubt, never updated, listed newest-first.
type Doubt struct {
	ID        uuid.UUID `json:"id"`
	TopicID   uuid.UUID `json:"topicId"`
	UserID    uuid.UUID `json:"userId"`
	Question  string    `json:"question"`
	Answer    string    `json:"answer"`
	CreatedAt time.Time `json:"createdAt"`
}

type AskDoubtRequest struct {
	TopicID  uuid.UUID `json:"topicId"`
	Question string    `json:"question"`
}
