package repository

import (
	"context"

	"github.com/google/uuid"
	"github.com/jackc/pgx/v5/pgxpool"

	"mentora-backend/internal/models"
)

type DoubtRepo struct {
	pool *pgxpool.Pool
}

func NewDoubtRepo(pool *pgxpool.Pool) *DoubtRepo {
	return &DoubtRepo{pool: pool}
}

func (r *DoubtRepo) Create(ctx context.Context, d *models.Doubt) error {
	d.ID = uuid.New()

	query := `INSERT INTO doubts (id, topic_id, user_id, question, answer)
		VALUES ($1, $2, $3, $4, $5) RETURNING created_at`

	return r.pool.QueryRow(ctx, query,
		d.ID, d.TopicID, d.UserID, d.Question, d.Answer,
	).Scan(&d.CreatedAt)
}

func (r *DoubtRepo) ListByTopic(ctx context.Context, topicID uuid.UUID) ([]*models.Doubt, error) {
	query := `SELECT id, topic_id, user_id, question, answer, created_at
		FROM doubts WHERE topic_id = $1 ORDER BY created_at DESC`

	rows, err := r.pool.Query(ctx, query, topicID)
	if err != nil {
		return nil, err
	}
	defer rows.Close()

	var doubts []*models.Doubt
	for rows.Next() {
		d := &models.Doubt{}
		err := rows.Scan(&d.ID, &d.TopicID, &d.UserID, &d.Question, &d.Answer, &d.CreatedAt)
		if err != nil {
			return nil, err
		}
		doubts = append(doubts, d)
	}
	return doubts, nil
}

func (r *DoubtRepo) DeleteByTopic(ctx context.Context, topicID uuid.UUID) error {
	_, err := r.pool.Exec(ctx, "DELETE FROM doubts WHERE topic_id = $1", topicID)
	return err
}
