package repository

import (
	"context"

	"github.com/google/uuid"
	"github.com/jackc/pgx/v5/pgxpool"

	"estudia-backend/internal/models"
)

type StudySessionRepo struct {
	pool *pgxpool.Pool
}

func NewStudySessionRepo(pool *pgxpool.Pool) *StudySessionRepo {
	return &StudySessionRepo{pool: pool}
}

func (r *StudySessionRepo) Create(ctx context.Context, s *models.StudySession) error {
	s.ID = uuid.New()
	if s.Type == "" {
		s.Type = "study"
	}
	return r.pool.QueryRow(ctx, `
		INSERT INTO study_sessions (id, user_id, study_plan_id, title, type, duration_minutes, completed)
		VALUES ($1, $2, $3, $4, $5, $6, $7)
		RETURNING created_at`,
		s.ID, s.UserID, s.StudyPlanID, s.Title, s.Type, s.DurationMinutes, s.Completed,
	).Scan(&s.CreatedAt)
}

func (r *StudySessionRepo) ListByUser(ctx context.Context, userID string) ([]*models.StudySession, error) {
	rows, err := r.pool.Query(ctx, `
		SELECT id, user_id, study_plan_id, title, type, duration_minutes, completed, created_at
		FROM study_sessions WHERE user_id = $1 ORDER BY created_at DESC`, userID)
	if err != nil {
		return nil, err
	}
	defer rows.Close()

	sessions := []*models.StudySession{}
	for rows.Next() {
		s := &models.StudySession{}
		if err := rows.Scan(&s.ID, &s.UserID, &s.StudyPlanID, &s.Title,
			&s.Type, &s.DurationMinutes, &s.Completed, &s.CreatedAt); err != nil {
			return nil, err
		}
		sessions = append(sessions, s)
	}
	return sessions, rows.Err()
}
