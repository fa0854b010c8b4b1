package models

// ErrorResponse is the uniform JSON error envelope. Every failure carries at
// least a message; code and request_id aid client branching and log lookup.
type ErrorResponse struct {
	Message   string `json:"message"`
	Code      string `json:"code,omitempty"`
	RequestID string `json:"request_id,omitempty"`
}

// TopicBundle is the composed payload for topic generation and detail reads.
type TopicBundle struct {
	Topic      *Topic       `json:"topic"`
	Lesson     *Lesson      `json:"lesson"`
	Quiz       *Quiz        `json:"quiz"`
	Flashcards []*Flashcard `json:"flashcards"`
	Message    string       `json:"message,omitempty"`
}
