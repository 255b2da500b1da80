package repository

import (
	"context"
	"errors"

	"github.com/google/uuid"
	"github.com/jackc/pgx/v5"
	"github.com/jackc/pgx/v5/pgxpool"

	"estudia-backend/internal/models"
)

type TutoringRepo struct {
	pool *pgxpool.Pool
}

func NewTutoringRepo(pool *pgxpool.Pool) *TutoringRepo {
	return &TutoringRepo{pool: pool}
}

const sessionColumns = `id, user_id, subject, level, mode, duration_minutes, status, topics_covered, created_at, updated_at`

func scanSession(row pgx.Row) (*models.TutoringSession, error) {
	s := &models.TutoringSession{}
	err := row.Scan(&s.ID, &s.UserID, &s.Subject, &s.Level, &s.Mode,
		&s.DurationMinutes, &s.Status, &s.TopicsCovered, &s.CreatedAt, &s.UpdatedAt)
	if err != nil {
		if errors.Is(err, pgx.ErrNoRows) {
			return nil, ErrNotFound
		}
		return nil, err
	}
	return s, nil
}

// GetSession looks a session up by id alone; turn handling resumes
// whatever session the caller names.
func (r *TutoringRepo) GetSession(ctx context.Context, id uuid.UUID) (*models.TutoringSession, error) {
	return scanSession(r.pool.QueryRow(ctx,
		"SELECT "+sessionColumns+" FROM tutoring_sessions WHERE id = $1", id))
}

func (r *TutoringRepo) CreateSession(ctx context.Context, s *models.TutoringSession) error {
	s.ID = uuid.New()
	if s.TopicsCovered == nil {
		s.TopicsCovered = []string{}
	}
	return r.pool.QueryRow(ctx, `
		INSERT INTO tutoring_sessions (id, user_id, subject, level, mode, duration_minutes, status, topics_covered)
		VALUES ($1, $2, $3, $4, $5, $6, $7, $8)
		RETURNING created_at, updated_at`,
		s.ID, s.UserID, s.Subject, s.Level, s.Mode, s.DurationMinutes, s.Status, s.TopicsCovered,
	).Scan(&s.CreatedAt, &s.UpdatedAt)
}

func (r *TutoringRepo) AppendMessage(ctx context.Context, m *models.TutoringMessage) error {
	m.ID = uuid.New()
	return r.pool.QueryRow(ctx, `
		INSERT INTO tutoring_messages (id, session_id, role, content)
		VALUES ($1, $2, $3, $4)
		RETURNING timestamp`,
		m.ID, m.SessionID, m.Role, m.Content,
	).Scan(&m.Timestamp)
}

// RecentMessages returns up to `limit` messages newest-first. Callers
// reverse the slice to recover chronological order for prompting.
func (r *TutoringRepo) RecentMessages(ctx context.Context, sessionID uuid.UUID, limit int) ([]*models.TutoringMessage, error) {
	rows, err := r.pool.Query(ctx, `
		SELECT id, session_id, role, content, timestamp
		FROM tutoring_messages WHERE session_id = $1
		ORDER BY timestamp DESC, id DESC LIMIT $2`, sessionID, limit)
	if err != nil {
		return nil, err
	}
	defer rows.Close()

	messages := []*models.TutoringMessage{}
	for rows.Next() {
		m := &models.TutoringMessage{}
		if err := rows.Scan(&m.ID, &m.SessionID, &m.Role, &m.Content, &m.Timestamp); err != nil {
			return nil, err
		}
		messages = append(messages, m)
	}
	return messages, rows.Err()
}

// CompleteTurn persists the assistant reply and the session bookkeeping
// (merged topics, incremented duration) in one transaction.
func (r *TutoringRepo) CompleteTurn(ctx context.Context, sessionID uuid.UUID, reply string, topics []string, durationMinutes int) error {
	tx, err := r.pool.Begin(ctx)
	if err != nil {
		return err
	}
	defer tx.Rollback(ctx)

	_, err = tx.Exec(ctx, `
		INSERT INTO tutoring_messages (id, session_id, role, content)
		VALUES ($1, $2, 'assistant', $3)`,
		uuid.New(), sessionID, reply)
	if err != nil {
		return err
	}

	if topics == nil {
		topics = []string{}
	}
	_, err = tx.Exec(ctx, `
		UPDATE tutoring_sessions
		SET duration_minutes = $1, topics_covered = $2, updated_at = NOW()
		WHERE id = $3`,
		durationMinutes, topics, sessionID)
	if err != nil {
		return err
	}

	return tx.Commit(ctx)
}

// GetSessionForUser fetches a session scoped to its owner with the full
// ascending message history.
func (r *TutoringRepo) GetSessionForUser(ctx context.Context, id uuid.UUID, userID string) (*models.TutoringSession, error) {
	s, err := scanSession(r.pool.QueryRow(ctx,
		"SELECT "+sessionColumns+" FROM tutoring_sessions WHERE id = $1 AND user_id = $2", id, userID))
	if err != nil {
		return nil, err
	}

	rows, err := r.pool.Query(ctx, `
		SELECT id, session_id, role, content, timestamp
		FROM tutoring_messages WHERE session_id = $1
		ORDER BY timestamp ASC, id ASC`, id)
	if err != nil {
		return nil, err
	}
	defer rows.Close()

	s.Messages = []*models.TutoringMessage{}
	for rows.Next() {
		m := &models.TutoringMessage{}
		if err := rows.Scan(&m.ID, &m.SessionID, &m.Role, &m.Content, &m.Timestamp); err != nil {
			return nil, err
		}
		s.Messages = append(s.Messages, m)
	}
	return s, rows.Err()
}

// ListByUser returns the user's sessions newest-first, each carrying
// only its single most recent message.
func (r *TutoringRepo) ListByUser(ctx context.Context, userID string) ([]*models.TutoringSession, error) {
	rows, err := r.pool.Query(ctx,
		"SELECT "+sessionColumns+" FROM tutoring_sessions WHERE user_id = $1 ORDER BY created_at DESC", userID)
	if err != nil {
		return nil, err
	}
	defer rows.Close()

	sessions := []*models.TutoringSession{}
	byID := map[uuid.UUID]*models.TutoringSession{}
	for rows.Next() {
		s, err := scanSession(rows)
		if err != nil {
			return nil, err
		}
		s.Messages = []*models.TutoringMessage{}
		sessions = append(sessions, s)
		byID[s.ID] = s
	}
	if err := rows.Err(); err != nil {
		return nil, err
	}
	if len(sessions) == 0 {
		return sessions, nil
	}

	msgRows, err := r.pool.Query(ctx, `
		SELECT DISTINCT ON (session_id) id, session_id, role, content, timestamp
		FROM tutoring_messages
		WHERE session_id IN (SELECT id FROM tutoring_sessions WHERE user_id = $1)
		ORDER BY session_id, timestamp DESC, id DESC`, userID)
	if err != nil {
		return nil, err
	}
	defer msgRows.Close()

	for msgRows.Next() {
		m := &models.TutoringMessage{}
		if err := msgRows.Scan(&m.ID, &m.SessionID, &m.Role, &m.Content, &m.Timestamp); err != nil {
			return nil, err
		}
		if s, ok := byID[m.SessionID]; ok {
			s.Messages = append(s.Messages, m)
		}
	}
	return sessions, msgRows.Err()
}

// DeleteSession removes the session and its messages together. Messages
// go first inside the transaction to satisfy referential integrity.
func (r *TutoringRepo) DeleteSession(ctx context.Context, id uuid.UUID, userID string) error {
	tx, err := r.pool.Begin(ctx)
	if err != nil {
		return err
	}
	defer tx.Rollback(ctx)

	var owned bool
	err = tx.QueryRow(ctx,
		"SELECT EXISTS(SELECT 1 FROM tutoring_sessions WHERE id = $1 AND user_id = $2)",
		id, userID).Scan(&owned)
	if err != nil {
		return err
	}
	if !owned {
		return ErrNotFound
	}

	if _, err := tx.Exec(ctx, "DELETE FROM tutoring_messages WHERE session_id = $1", id); err != nil {
		return err
	}
	if _, err := tx.Exec(ctx, "DELETE FROM tutoring_sessions WHERE id = $1", id); err != nil {
		return err
	}

	return tx.Commit(ctx)
}
