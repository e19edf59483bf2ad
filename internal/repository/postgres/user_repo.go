package postgres

import (
	"context"
	"errors"
	"fmt"
	"time"

	"taskbot/internal/logger"
	"taskbot/internal/models"
	repo "taskbot/internal/repository"

	"github.com/jackc/pgx/v5"
	"github.com/jackc/pgx/v5/pgconn"
	"github.com/jackc/pgx/v5/pgxpool"
	"go.uber.org/zap"
)

type UserRepo struct {
	pool *pgxpool.Pool
}

func (r *UserRepo) GetByUsername(ctx context.Context, username string) (*models.User, error) {
	start := time.Now()

	query := `SELECT id, username, password_hash, created_at
				FROM users
				WHERE username = $1`

	user := &models.User{}
	err := r.pool.QueryRow(ctx, query, username).Scan(
		&user.ID,
		&user.Username,
		&user.PasswordHash,
		&user.CreatedAt,
	)

	if err != nil {
		if errors.Is(err, pgx.ErrNoRows) {
			return nil, repo.ErrNotFound
		}
		logger.Error("Repository: Не удалось получить пользователя", err, zap.Duration("ms", time.Since(start)))
		return nil, fmt.Errorf("получение пользователя: %w", err)
	}

	warnSlow(start, time.Millisecond*100)
	return user, nil
}

func (r *UserRepo) Create(ctx context.Context, user *models.User) error {
	start := time.Now()

	query := `INSERT INTO users (username, password_hash)
				VALUES ($1, $2)
				RETURNING id, created_at`

	err := r.pool.QueryRow(ctx, query, user.Username, user.PasswordHash).Scan(&user.ID, &user.CreatedAt)

	if err != nil {
		var pgErr *pgconn.PgError
		if errors.As(err, &pgErr) && pgErr.Code == "23505" {
			return repo.ErrUsernameTaken
		}
		logger.Error("Repository: Не удалось добавить пользователя", err, zap.Duration("ms", time.Since(start)))
		return fmt.Errorf("добавление пользователя: %w", err)
	}

	warnSlow(start, time.Millisecond*50)
	return nil
}
