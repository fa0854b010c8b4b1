package models

import (
	"time"

	"github.com/google/uuid"
)

type Lesson struct {
	ID        uuid.UUID     `json:"id"`
	TopicID   uuid.UUID     `json:"topicId"`
	Content   LessonContent `json:"content"`
	CreatedAt time.Time     `json:"createdAt"`
}

// LessonContent is the structured document the AI gateway produces for a
// topic: an introduction, 4-6 explanation steps, 2 analogies and a 5-point
// summary (counts are prompt contracts, not schema-enforced).
type LessonContent struct {
	Introduction string       `json:"introduction"`
	Steps        []LessonStep `json:"steps"`
	Analogies    []string     `json:"analogies"`
	Summary      []string     `json:"summary"`
}

type LessonStep struct {
	Title   string `json:"title"`
	Content string `json:"content"`
}
