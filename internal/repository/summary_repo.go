package repository

import (
	"context"
	"errors"

	"github.com/google/uuid"
	"github.com/jackc/pgx/v5/pgxpool"

	"estudia-backend/internal/models"
)

// ErrNotFound is returned when a row does not exist or is owned by a
// different user.
var ErrNotFound = errors.New("record not found")

type SummaryRepo struct {
	pool *pgxpool.Pool
}

func NewSummaryRepo(pool *pgxpool.Pool) *SummaryRepo {
	return &SummaryRepo{pool: pool}
}

func (r *SummaryRepo) Create(ctx context.Context, s *models.Summary) error {
	s.ID = uuid.New()
	return r.pool.QueryRow(ctx, `
		INSERT INTO summaries (id, user_id, title, original_text, summary_text, key_points, study_questions, style, length_setting, source_type, reduction)
		VALUES ($1, $2, $3, $4, $5, $6, $7, $8, $9, $10, $11)
		RETURNING created_at`,
		s.ID, s.UserID, s.Title, s.OriginalText, s.SummaryText,
		s.KeyPoints, s.StudyQuestions, s.Style, s.Length, s.SourceType, s.Reduction,
	).Scan(&s.CreatedAt)
}

func (r *SummaryRepo) ListByUser(ctx context.Context, userID string) ([]*models.Summary, error) {
	rows, err := r.pool.Query(ctx, `
		SELECT id, user_id, title, original_text, summary_text, key_points, study_questions, style, length_setting, source_type, reduction, created_at
		FROM summaries WHERE user_id = $1 ORDER BY created_at DESC`, userID)
	if err != nil {
		return nil, err
	}
	defer rows.Close()

	summaries := []*models.Summary{}
	for rows.Next() {
		s := &models.Summary{}
		if err := rows.Scan(&s.ID, &s.UserID, &s.Title, &s.OriginalText, &s.SummaryText,
			&s.KeyPoints, &s.StudyQuestions, &s.Style, &s.Length, &s.SourceType,
			&s.Reduction, &s.CreatedAt); err != nil {
			return nil, err
		}
		summaries = append(summaries, s)
	}
	return summaries, rows.Err()
}

// Delete removes a summary scoped to its owner. A missing or
// foreign-owned row reports ErrNotFound and changes nothing.
func (r *SummaryRepo) Delete(ctx context.Context, id uuid.UUID, userID string) error {
	tag, err := r.pool.Exec(ctx,
		"DELETE FROM summaries WHERE id = $1 AND user_id = $2", id, userID)
	if err != nil {
		return err
	}
	if tag.RowsAffected() == 0 {
		return ErrNotFound
	}
	return nil
}
