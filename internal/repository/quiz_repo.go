package repository

import (
	"context"
	"encoding/json"

	"github.com/google/uuid"
	"github.com/jackc/pgx/v5/pgxpool"

	"mentora-backend/internal/models"
)

type QuizRepo struct {
	pool *pgxpool.Pool
}

func NewQuizRepo(pool *pgxpool.Pool) *QuizRepo {
	return &QuizRepo{pool: pool}
}

func (r *QuizRepo) Create(ctx context.Context, q *models.Quiz) error {
	q.ID = uuid.New()
	questionsBytes, err := json.Marshal(q.Questions)
	if err != nil {
		return err
	}
	if questionsBytes == nil {
		questionsBytes = []byte("[]")
	}

	query := `INSERT INTO quizzes (id, topic_id, questions)
		VALUES ($1, $2, $3) RETURNING created_at`

	return r.pool.QueryRow(ctx, query, q.ID, q.TopicID, questionsBytes).Scan(&q.CreatedAt)
}

func (r *QuizRepo) GetByTopic(ctx context.Context, topicID uuid.UUID) (*models.Quiz, error) {
	q := &models.Quiz{}
	var questionsBytes []byte

	query := `SELECT id, topic_id, questions, created_at
		FROM quizzes WHERE topic_id = $1 ORDER BY created_at ASC LIMIT 1`

	err := r.pool.QueryRow(ctx, query, topicID).Scan(&q.ID, &q.TopicID, &questionsBytes, &q.CreatedAt)
	if err != nil {
		return nil, err
	}
	if err := json.Unmarshal(questionsBytes, &q.Questions); err != nil {
		return nil, err
	}
	return q, nil
}

func (r *QuizRepo) DeleteByTopic(ctx context.Context, topicID uuid.UUID) error {
	_, err := r.pool.Exec(ctx, "DELETE FROM quizzes WHERE topic_id = $1", topicID)
	return err
}
