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

type NoteRepo struct {
	pool *pgxpool.Pool
}

func (r *NoteRepo) Create(ctx context.Context, scope repo.Scope, noteToCreate *models.Note) error {
	start := time.Now()

	query := `INSERT INTO notes (user_id, content)
				VALUES ($1, $2)
				RETURNING id, created_at`

	err := r.pool.QueryRow(ctx, query, scope.UserID, noteToCreate.Content).
		Scan(&noteToCreate.ID, &noteToCreate.CreatedAt)

	if err != nil {
		logger.Error("Repository: Не удалось добавить заметку", err, zap.Duration("ms", time.Since(start)))
		return fmt.Errorf("добавление заметки: %w", err)
	}
	noteToCreate.UserID = scope.UserID

	warnSlow(start, time.Millisecond*50)
	return nil
}

// ListActive возвращает только живые заметки владельца, tombstone-строки
// (is_void) никогда не попадают в выдачу.
func (r *NoteRepo) ListActive(ctx context.Context, scope repo.Scope) ([]*models.Note, error) {
	start := time.Now()

	query := `SELECT id, user_id, content, is_void, created_at, updated_at
				FROM notes
				WHERE user_id = $1 AND NOT is_void
				ORDER BY id`

	rows, err := r.pool.Query(ctx, query, scope.UserID)
	if err != nil {
		logger.Error("Repository: Не удалось получить заметки", err, zap.Duration("ms", time.Since(start)))
		return nil, fmt.Errorf("получение заметок: %w", err)
	}
	defer rows.Close()

	notes := []*models.Note{}
	for rows.Next() {
		noteToGet := &models.Note{}
		err := rows.Scan(
			&noteToGet.ID,
			&noteToGet.UserID,
			&noteToGet.Content,
			&noteToGet.IsVoid,
			&noteToGet.CreatedAt,
			&noteToGet.UpdatedAt,
		)
		if err != nil {
			logger.Error("Repository: Ошибка сканирования заметки", err)
			return nil, fmt.Errorf("сканирование заметки: %w", err)
		}
		notes = append(notes, noteToGet)
	}

	if err := rows.Err(); err != nil {
		logger.Error("Repository: Ошибка итерации по строкам", err)
		return nil, fmt.Errorf("итерация по строкам: %w", err)
	}

	warnSlow(start, time.Millisecond*100)
	return notes, nil
}

// Void ставит tombstone. Повторный Void той же заметки - no-op, не ошибка.
func (r *NoteRepo) Void(ctx context.Context, scope repo.Scope, id int64) error {
	start := time.Now()

	query := `UPDATE notes
			SET is_void = TRUE,
				updated_at = NOW()
			WHERE id = $1 AND user_id = $2
			RETURNING id`

	var voidedID int64
	err := r.pool.QueryRow(ctx, query, id, scope.UserID).Scan(&voidedID)

	if err != nil {
		if errors.Is(err, pgx.ErrNoRows) {
			return repo.ErrNotFound
		}
		logger.Error("Repository: Не удалось аннулировать заметку", err, zap.Duration("ms", time.Since(start)))
		return fmt.Errorf("аннулирование заметки: %w", err)
	}

	warnSlow(start, time.Millisecond*100)
	return nil
}
