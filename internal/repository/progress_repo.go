package repository

import (
	"context"

	"github.com/google/uuid"
	"github.com/jackc/pgx/v5/pgxpool"

	"estudia-backend/internal/models"
)

type ProgressRepo struct {
	pool *pgxpool.Pool
}

func NewProgressRepo(pool *pgxpool.Pool) *ProgressRepo {
	return &ProgressRepo{pool: pool}
}

// Accumulate adds hours/sessions onto the (user, subject, level) record,
// creating it on first write. Mastery overwrites only when provided.
// The unique constraint makes concurrent first writes converge on a
// single row instead of duplicating it.
func (r *ProgressRepo) Accumulate(ctx context.Context, userID string, req models.UpdateProgressRequest) (*models.ProgressRecord, error) {
	rec := &models.ProgressRecord{}

	mastery := 0.0
	if req.Mastery != nil {
		mastery = *req.Mastery
	}

	query := `
		INSERT INTO progress_records (id, user_id, subject, level, total_hours, completed_sessions, mastery_level, last_studied)
		VALUES ($1, $2, $3, $4, $5, $6, $7, NOW())
		ON CONFLICT (user_id, subject, level) DO UPDATE SET
			total_hours = progress_records.total_hours + EXCLUDED.total_hours,
			completed_sessions = progress_records.completed_sessions + EXCLUDED.completed_sessions,
			mastery_level = CASE WHEN $8 THEN EXCLUDED.mastery_level ELSE progress_records.mastery_level END,
			last_studied = NOW()
		RETURNING id, user_id, subject, level, total_hours, completed_sessions, mastery_level, last_studied`

	err := r.pool.QueryRow(ctx, query,
		uuid.New(), userID, req.Subject, req.Level, req.Hours, req.Sessions, mastery, req.Mastery != nil,
	).Scan(&rec.ID, &rec.UserID, &rec.Subject, &rec.Level, &rec.TotalHours, &rec.CompletedSessions, &rec.MasteryLevel, &rec.LastStudied)
	if err != nil {
		return nil, err
	}
	return rec, nil
}

func (r *ProgressRepo) ListByUser(ctx context.Context, userID, subject string) ([]*models.ProgressRecord, error) {
	query := `SELECT id, user_id, subject, level, total_hours, completed_sessions, mastery_level, last_studied
		FROM progress_records WHERE user_id = $1`
	args := []interface{}{userID}
	if subject != "" {
		query += " AND subject = $2"
		args = append(args, subject)
	}
	query += " ORDER BY last_studied DESC"

	rows, err := r.pool.Query(ctx, query, args...)
	if err != nil {
		return nil, err
	}
	defer rows.Close()

	records := []*models.ProgressRecord{}
	for rows.Next() {
		rec := &models.ProgressRecord{}
		if err := rows.Scan(&rec.ID, &rec.UserID, &rec.Subject, &rec.Level,
			&rec.TotalHours, &rec.CompletedSessions, &rec.MasteryLevel, &rec.LastStudied); err != nil {
			return nil, err
		}
		records = append(records, rec)
	}
	return records, rows.Err()
}

// Overall gathers the aggregate counters for the progress report.
// TotalHours comes back as minutes; the handler converts and rounds.
func (r *ProgressRepo) Overall(ctx context.Context, userID string) (models.OverallProgress, float64, error) {
	var o models.OverallProgress
	var totalMinutes float64

	err := r.pool.QueryRow(ctx, `
		SELECT
			(SELECT COUNT(*) FROM study_sessions WHERE user_id = $1 AND completed),
			(SELECT COUNT(*) FROM study_plans WHERE user_id = $1),
			(SELECT COUNT(*) FROM study_plans WHERE user_id = $1 AND status = 'completed'),
			(SELECT COUNT(*) FROM summaries WHERE user_id = $1),
			(SELECT COUNT(*) FROM tutoring_sessions WHERE user_id = $1),
			(SELECT COALESCE(SUM(duration_minutes), 0)::DOUBLE PRECISION FROM study_sessions WHERE user_id = $1 AND completed)
	`, userID).Scan(&o.TotalSessions, &o.TotalStudyPlans, &o.CompletedPlans,
		&o.TotalSummaries, &o.TotalTutoringSessions, &totalMinutes)
	if err != nil {
		return o, 0, err
	}

	return o, totalMinutes, nil
}

// Recent activity queries, one per source table. Each returns up to
// `limit` newest items; the handler merges and caps the combined feed.

func (r *ProgressRepo) RecentStudySessions(ctx context.Context, userID string, limit int) ([]models.ActivityItem, error) {
	rows, err := r.pool.Query(ctx, `
		SELECT id, title, completed, created_at
		FROM study_sessions WHERE user_id = $1
		ORDER BY created_at DESC LIMIT $2`, userID, limit)
	if err != nil {
		return nil, err
	}
	defer rows.Close()

	var items []models.ActivityItem
	for rows.Next() {
		var item models.ActivityItem
		var completed bool
		if err := rows.Scan(&item.ID, &item.Title, &completed, &item.Timestamp); err != nil {
			return nil, err
		}
		item.Type = "study"
		item.Completed = &completed
		items = append(items, item)
	}
	return items, rows.Err()
}

func (r *ProgressRepo) RecentSummaries(ctx context.Context, userID string, limit int) ([]models.ActivityItem, error) {
	rows, err := r.pool.Query(ctx, `
		SELECT id, title, created_at
		FROM summaries WHERE user_id = $1
		ORDER BY created_at DESC LIMIT $2`, userID, limit)
	if err != nil {
		return nil, err
	}
	defer rows.Close()

	var items []models.ActivityItem
	for rows.Next() {
		var item models.ActivityItem
		if err := rows.Scan(&item.ID, &item.Title, &item.Timestamp); err != nil {
			return nil, err
		}
		item.Type = "summary"
		items = append(items, item)
	}
	return items, rows.Err()
}

func (r *ProgressRepo) RecentTutoringSessions(ctx context.Context, userID string, limit int) ([]models.ActivityItem, error) {
	rows, err := r.pool.Query(ctx, `
		SELECT id, subject, created_at
		FROM tutoring_sessions WHERE user_id = $1
		ORDER BY created_at DESC LIMIT $2`, userID, limit)
	if err != nil {
		return nil, err
	}
	defer rows.Close()

	var items []models.ActivityItem
	for rows.Next() {
		var item models.ActivityItem
		var subject string
		if err := rows.Scan(&item.ID, &subject, &item.Timestamp); err != nil {
			return nil, err
		}
		item.Type = "tutoring"
		item.Title = "Tutoría: " + subject
		items = append(items, item)
	}
	return items, rows.Err()
}
