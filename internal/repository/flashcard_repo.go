package repository

import (
	"context"

	"github.com/google/uuid"
	"github.com/jackc/pgx/v5"
	"github.com/jackc/pgx/v5/pgxpool"

	"mentora-backend/internal/models"
)

type FlashcardRepo struct {
	pool *pgxpool.Pool
}

func NewFlashcardRepo(pool *pgxpool.Pool) *FlashcardRepo {
	return &FlashcardRepo{pool: pool}
}

// CreateMany inserts a batch of cards in one round trip.
func (r *FlashcardRepo) CreateMany(ctx context.Context, cards []*models.Flashcard) error {
	batch := &pgx.Batch{}
	for _, c := range cards {
		c.ID = uuid.New()
		if c.Status == "" {
			c.Status = "new"
		}
		batch.Queue(
			`INSERT INTO flashcards (id, topic_id, user_id, front, back, status)
			 VALUES ($1, $2, $3, $4, $5, $6) RETURNING created_at`,
			c.ID, c.TopicID, c.UserID, c.Front, c.Back, c.Status,
		)
	}

	results := r.pool.SendBatch(ctx, batch)
	defer results.Close()

	for _, c := range cards {
		if err := results.QueryRow().Scan(&c.CreatedAt); err != nil {
			return err
		}
	}
	return nil
}

func (r *FlashcardRepo) GetByID(ctx context.Context, id uuid.UUID) (*models.Flashcard, error) {
	f := &models.Flashcard{}
	query := `SELECT id, topic_id, user_id, front, back, status, created_at
		FROM flashcards WHERE id = $1`

	err := r.pool.QueryRow(ctx, query, id).Scan(
		&f.ID, &f.TopicID, &f.UserID, &f.Front, &f.Back, &f.Status, &f.CreatedAt,
	)
	if err != nil {
		return nil, err
	}
	return f, nil
}

func (r *FlashcardRepo) ListByTopic(ctx context.Context, topicID uuid.UUID) ([]*models.Flashcard, error) {
	query := `SELECT id, topic_id, user_id, front, back, status, created_at
		FROM flashcards WHERE topic_id = $1 ORDER BY created_at ASC`

	rows, err := r.pool.Query(ctx, query, topicID)
	if err != nil {
		return nil, err
	}
	defer rows.Close()

	var cards []*models.Flashcard
	for rows.Next() {
		f := &models.Flashcard{}
		err := rows.Scan(&f.ID, &f.TopicID, &f.UserID, &f.Front, &f.Back, &f.Status, &f.CreatedAt)
		if err != nil {
			return nil, err
		}
		cards = append(cards, f)
	}
	return cards, nil
}

func (r *FlashcardRepo) UpdateStatus(ctx context.Context, id uuid.UUID, status string) error {
	_, err := r.pool.Exec(ctx, "UPDATE flashcards SET status = $1 WHERE id = $2", status, id)
	return err
}

func (r *FlashcardRepo) DeleteByTopic(ctx context.Context, topicID uuid.UUID) error {
	_, err := r.pool.Exec(ctx, "DELETE FROM flashcards WHERE topic_id = $1", topicID)
	return err
}
