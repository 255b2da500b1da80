package repository

import (
	"context"

	"github.com/jackc/pgx/v5/pgxpool"

	"estudia-backend/internal/models"
)

type UserRepo struct {
	pool *pgxpool.Pool
}

func NewUserRepo(pool *pgxpool.Pool) *UserRepo {
	return &UserRepo{pool: pool}
}

// Ensure upserts the owning user before any dependent write. It is
// idempotent and safe to call on every request.
func (r *UserRepo) Ensure(ctx context.Context, id, email, name string) error {
	_, err := r.pool.Exec(ctx, `
		INSERT INTO users (id, email, name)
		VALUES ($1, $2, $3)
		ON CONFLICT (id) DO NOTHING
	`, id, email, name)
	return err
}

func (r *UserRepo) GetByID(ctx context.Context, id string) (*models.User, error) {
	user := &models.User{}
	err := r.pool.QueryRow(ctx,
		"SELECT id, email, name, created_at FROM users WHERE id = $1", id,
	).Scan(&user.ID, &user.Email, &user.Name, &user.CreatedAt)
	if err != nil {
		return nil, err
	}
	return user, nil
}
