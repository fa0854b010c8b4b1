package repository

import (
	"context"
	"encoding/json"

	"github.com/google/uuid"
	"github.com/jackc/pgx/v5/pgxpool"

	"mentora-backend/internal/models"
)

type LessonRepo struct {
	pool *pgxpool.Pool
}

func NewLessonRepo(pool *pgxpool.Pool) *LessonRepo {
	return &LessonRepo{pool: pool}
}

func (r *LessonRepo) Create(ctx context.Context, l *models.Lesson) error {
	l.ID = uuid.New()
	contentBytes, err := json.Marshal(l.Content)
	if err != nil {
		return err
	}

	query := `INSERT INTO lessons (id, topic_id, content)
		VALUES ($1, $2, $3) RETURNING created_at`

	return r.pool.QueryRow(ctx, query, l.ID, l.TopicID, contentBytes).Scan(&l.CreatedAt)
}

func (r *LessonRepo) GetByTopic(ctx context.Context, topicID uuid.UUID) (*models.Lesson, error) {
	l := &models.Lesson{}
	var contentBytes []byte

	query := `SELECT id, topic_id, content, created_at
		FROM lessons WHERE topic_id = $1 ORDER BY created_at ASC LIMIT 1`

	err := r.pool.QueryRow(ctx, query, topicID).Scan(&l.ID, &l.TopicID, &contentBytes, &l.CreatedAt)
	if err != nil {
		return nil, err
	}
	if err := json.Unmarshal(contentBytes, &l.Content); err != nil {
		return nil, err
	}
	return l, nil
}

func (r *LessonRepo) DeleteByTopic(ctx context.Context, topicID uuid.UUID) error {
	_, err := r.pool.Exec(ctx, "DELETE FROM lessons WHERE topic_id = $1", topicID)
	return err
}
