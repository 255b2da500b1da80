package repository

import (
	"context"

	"github.com/google/uuid"
	"github.com/jackc/pgx/v5/pgxpool"

	"estudia-backend/internal/models"
)

type StudyPlanRepo struct {
	pool *pgxpool.Pool
}

func NewStudyPlanRepo(pool *pgxpool.Pool) *StudyPlanRepo {
	return &StudyPlanRepo{pool: pool}
}

// CreateWithWeeks inserts the plan and all weekly children in one
// transaction, so a malformed week never leaves a half-written plan.
func (r *StudyPlanRepo) CreateWithWeeks(ctx context.Context, plan *models.StudyPlan, weeks []*models.WeeklyPlan) error {
	tx, err := r.pool.Begin(ctx)
	if err != nil {
		return err
	}
	defer tx.Rollback(ctx)

	plan.ID = uuid.New()
	err = tx.QueryRow(ctx, `
		INSERT INTO study_plans (id, user_id, title, subject, level, duration, hours_per_week, objectives, learning_style, generated_content, status)
		VALUES ($1, $2, $3, $4, $5, $6, $7, $8, $9, $10, 'active')
		RETURNING status, created_at`,
		plan.ID, plan.UserID, plan.Title, plan.Subject, plan.Level,
		plan.Duration, plan.HoursPerWeek, plan.Objectives, plan.LearningStyle, plan.GeneratedContent,
	).Scan(&plan.Status, &plan.CreatedAt)
	if err != nil {
		return err
	}

	for _, week := range weeks {
		week.ID = uuid.New()
		week.StudyPlanID = plan.ID
		_, err = tx.Exec(ctx, `
			INSERT INTO weekly_plans (id, study_plan_id, week_number, title, objectives, topics, activities, resources)
			VALUES ($1, $2, $3, $4, $5, $6, $7, $8)`,
			week.ID, week.StudyPlanID, week.WeekNumber, week.Title, week.Objectives,
			week.Topics, week.Activities, week.Resources,
		)
		if err != nil {
			return err
		}
	}

	return tx.Commit(ctx)
}

func (r *StudyPlanRepo) ListByUser(ctx context.Context, userID string) ([]*models.StudyPlan, error) {
	rows, err := r.pool.Query(ctx, `
		SELECT id, user_id, title, subject, level, duration, hours_per_week, objectives, learning_style, generated_content, status, created_at
		FROM study_plans WHERE user_id = $1 ORDER BY created_at DESC`, userID)
	if err != nil {
		return nil, err
	}
	defer rows.Close()

	plans := []*models.StudyPlan{}
	byID := map[uuid.UUID]*models.StudyPlan{}
	for rows.Next() {
		p := &models.StudyPlan{}
		if err := rows.Scan(&p.ID, &p.UserID, &p.Title, &p.Subject, &p.Level,
			&p.Duration, &p.HoursPerWeek, &p.Objectives, &p.LearningStyle,
			&p.GeneratedContent, &p.Status, &p.CreatedAt); err != nil {
			return nil, err
		}
		p.WeeklyPlans = []*models.WeeklyPlan{}
		p.StudySessions = []*models.StudySession{}
		plans = append(plans, p)
		byID[p.ID] = p
	}
	if err := rows.Err(); err != nil {
		return nil, err
	}
	if len(plans) == 0 {
		return plans, nil
	}

	// Attach weekly children
	weekRows, err := r.pool.Query(ctx, `
		SELECT wp.id, wp.study_plan_id, wp.week_number, wp.title, wp.objectives, wp.topics, wp.activities, wp.resources
		FROM weekly_plans wp
		JOIN study_plans sp ON sp.id = wp.study_plan_id
		WHERE sp.user_id = $1
		ORDER BY wp.week_number`, userID)
	if err != nil {
		return nil, err
	}
	defer weekRows.Close()

	for weekRows.Next() {
		w := &models.WeeklyPlan{}
		if err := weekRows.Scan(&w.ID, &w.StudyPlanID, &w.WeekNumber, &w.Title,
			&w.Objectives, &w.Topics, &w.Activities, &w.Resources); err != nil {
			return nil, err
		}
		if p, ok := byID[w.StudyPlanID]; ok {
			p.WeeklyPlans = append(p.WeeklyPlans, w)
		}
	}
	if err := weekRows.Err(); err != nil {
		return nil, err
	}

	// Attach study sessions
	sessRows, err := r.pool.Query(ctx, `
		SELECT id, user_id, study_plan_id, title, type, duration_minutes, completed, created_at
		FROM study_sessions
		WHERE user_id = $1 AND study_plan_id IS NOT NULL
		ORDER BY created_at`, userID)
	if err != nil {
		return nil, err
	}
	defer sessRows.Close()

	for sessRows.Next() {
		s := &models.StudySession{}
		if err := sessRows.Scan(&s.ID, &s.UserID, &s.StudyPlanID, &s.Title,
			&s.Type, &s.DurationMinutes, &s.Completed, &s.CreatedAt); err != nil {
			return nil, err
		}
		if p, ok := byID[*s.StudyPlanID]; ok {
			p.StudySessions = append(p.StudySessions, s)
		}
	}

	return plans, sessRows.Err()
}
