package models

import (
	"time"

	"github.com/google/uuid"
)

type Quiz struct {
	ID        uuid.UUID      `json:"id"`
	TopicID   uuid.UUID      `json:"topicId"`
	Questions []QuizQuestion `json:"questions"`
	CreatedAt time.Time      `json:"createdAt"`
}

type QuizQuestion struct {
	Question     string   `json:"question"`
	Options      []string `json:"options"`
	CorrectIndex int      `json:"correctIndex"`
	Explanation  string   `json:"explanation"`
}

// QAPair is a generated question/answer pair for topic revision.
type QAPair struct {
	Question string `json:"question"`
	Answer   string `json:"answer"`
}
