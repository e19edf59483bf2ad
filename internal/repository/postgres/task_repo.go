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
	"github.com/jackc/pgx/v5/pgxpool"
	"go.uber.org/zap"
)

type TaskRepo struct {
	pool *pgxpool.Pool
}

func (r *TaskRepo) Create(ctx context.Context, scope repo.Scope, taskToCreate *models.Task) error {
	start := time.Now()

	query := `INSERT INTO tasks (user_id, description, status)
				VALUES ($1, $2, $3)
				RETURNING id, created_at`

	err := r.pool.QueryRow(ctx, query,
		scope.UserID,
		taskToCreate.Description,
		taskToCreate.Status,
	).Scan(&taskToCreate.ID, &taskToCreate.CreatedAt)

	if err != nil {
		logger.Error("Repository: Не удалось добавить задачу", err, zap.Duration("ms", time.Since(start)))
		return fmt.Errorf("добавление задачи: %w", err)
	}
	taskToCreate.UserID = scope.UserID

	warnSlow(start, time.Millisecond*50)
	return nil
}

func (r *TaskRepo) GetByID(ctx context.Context, scope repo.Scope, id int64) (*models.Task, error) {
	start := time.Now()

	query := `SELECT id, user_id, description, status, created_at, updated_at
				FROM tasks
				WHERE id = $1 AND user_id = $2`

	taskToGet := &models.Task{}
	err := r.pool.QueryRow(ctx, query, id, scope.UserID).Scan(
		&taskToGet.ID,
		&taskToGet.UserID,
		&taskToGet.Description,
		&taskToGet.Status,
		&taskToGet.CreatedAt,
		&taskToGet.UpdatedAt,
	)

	if err != nil {
		if errors.Is(err, pgx.ErrNoRows) {
			return nil, repo.ErrNotFound
		}
		logger.Error("Repository: Не удалось получить задачу", err, zap.Duration("ms", time.Since(start)))
		return nil, fmt.Errorf("получение задачи: %w", err)
	}

	warnSlow(start, time.Millisecond*100)
	return taskToGet, nil
}

// List возвращает задачи владельца в порядке вставки. Пустой status - без фильтра.
func (r *TaskRepo) List(ctx context.Context, scope repo.Scope, status models.Status) ([]*models.Task, error) {
	start := time.Now()

	query := `SELECT id, user_id, description, status, created_at, updated_at
				FROM tasks
				WHERE user_id = $1 AND ($2 = '' OR status = $2)
				ORDER BY id`

	rows, err := r.pool.Query(ctx, query, scope.UserID, string(status))
	if err != nil {
		logger.Error("Repository: Не удалось получить задачи", err, zap.Duration("ms", time.Since(start)))
		return nil, fmt.Errorf("получение задач: %w", err)
	}
	defer rows.Close()

	tasks := []*models.Task{}
	for rows.Next() {
		taskToGet := &models.Task{}
		err := rows.Scan(
			&taskToGet.ID,
			&taskToGet.UserID,
			&taskToGet.Description,
			&taskToGet.Status,
			&taskToGet.CreatedAt,
			&taskToGet.UpdatedAt,
		)
		if err != nil {
			logger.Error("Repository: Ошибка сканирования задачи", err)
			return nil, fmt.Errorf("сканирование задачи: %w", err)
		}
		tasks = append(tasks, taskToGet)
	}

	if err := rows.Err(); err != nil {
		logger.Error("Repository: Ошибка итерации по строкам", err)
		return nil, fmt.Errorf("итерация по строкам: %w", err)
	}

	warnSlow(start, time.Millisecond*100)
	return tasks, nil
}

func (r *TaskRepo) Update(ctx context.Context, scope repo.Scope, taskToUpdate *models.Task) error {
	start := time.Now()

	query := `UPDATE tasks
			SET description = $1,
				status = $2,
				updated_at = NOW()
			WHERE id = $3 AND user_id = $4
			RETURNING updated_at`

	err := r.pool.QueryRow(ctx, query,
		taskToUpdate.Description,
		taskToUpdate.Status,
		taskToUpdate.ID,
		scope.UserID,
	).Scan(&taskToUpdate.UpdatedAt)

	if err != nil {
		if errors.Is(err, pgx.ErrNoRows) {
			return repo.ErrNotFound
		}
		logger.Error("Repository: Не удалось обновить задачу", err, zap.Duration("ms", time.Since(start)))
		return fmt.Errorf("обновление задачи: %w", err)
	}

	warnSlow(start, time.Millisecond*100)
	return nil
}
