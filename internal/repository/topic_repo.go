package repository

import (
	"context"

	"github.com/google/uuid"
	"github.com/jackc/pgx/v5/pgxpool"

	"mentora-backend/internal/models"
)

type TopicRepo struct {
	pool *pgxpool.Pool
}

func NewTopicRepo(pool *pgxpool.Pool) *TopicRepo {
	return &TopicRepo{pool: pool}
}

func (r *TopicRepo) Create(ctx context.Context, t *models.Topic) error {
	t.ID = uuid.New()
	if t.ProgressStatus == "" {
		t.ProgressStatus = "not-started"
	}

	query := `INSERT INTO topics (id, user_id, title, level, is_bookmarked, notes, progress_status)
		VALUES ($1, $2, $3, $4, $5, $6, $7) RETURNING created_at`

	return r.pool.QueryRow(ctx, query,
		t.ID, t.UserID, t.Title, t.Level, t.IsBookmarked, t.Notes, t.ProgressStatus,
	).Scan(&t.CreatedAt)
}

func (r *TopicRepo) GetByID(ctx context.Context, id uuid.UUID) (*models.Topic, error) {
	t := &models.Topic{}
	query := `SELECT id, user_id, title, level, is_bookmarked, notes, progress_status, created_at
		FROM topics WHERE id = $1`

	err := r.pool.QueryRow(ctx, query, id).Scan(
		&t.ID, &t.UserID, &t.Title, &t.Level, &t.IsBookmarked, &t.Notes, &t.ProgressStatus, &t.CreatedAt,
	)
	if err != nil {
		return nil, err
	}
	return t, nil
}

func (r *TopicRepo) ListByUser(ctx context.Context, userID uuid.UUID) ([]*models.Topic, error) {
	query := `SELECT id, user_id, title, level, is_bookmarked, notes, progress_status, created_at
		FROM topics WHERE user_id = $1 ORDER BY created_at DESC`

	rows, err := r.pool.Query(ctx, query, userID)
	if err != nil {
		return nil, err
	}
	defer rows.Close()

	var topics []*models.Topic
	for rows.Next() {
		t := &models.Topic{}
		err := rows.Scan(&t.ID, &t.UserID, &t.Title, &t.Level, &t.IsBookmarked, &t.Notes, &t.ProgressStatus, &t.CreatedAt)
		if err != nil {
			return nil, err
		}
		topics = append(topics, t)
	}
	return topics, nil
}

func (r *TopicRepo) ToggleBookmark(ctx context.Context, id uuid.UUID) (bool, error) {
	var bookmarked bool
	err := r.pool.QueryRow(ctx,
		"UPDATE topics SET is_bookmarked = NOT is_bookmarked WHERE id = $1 RETURNING is_bookmarked",
		id,
	).Scan(&bookmarked)
	return bookmarked, err
}

func (r *TopicRepo) UpdateNotes(ctx context.Context, id uuid.UUID, notes string) error {
	_, err := r.pool.Exec(ctx, "UPDATE topics SET notes = $1 WHERE id = $2", notes, id)
	return err
}

func (r *TopicRepo) UpdateProgress(ctx context.Context, id uuid.UUID, status string) error {
	_, err := r.pool.Exec(ctx, "UPDATE topics SET progress_status = $1 WHERE id = $2", status, id)
	return err
}

func (r *TopicRepo) Delete(ctx context.Context, id uuid.UUID) error {
	_, err := r.pool.Exec(ctx, "DELETE FROM topics WHERE id = $1", id)
	return err
}
