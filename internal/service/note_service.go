package service

import (
	"context"
	"errors"
	"fmt"
	"strings"

	"taskbot/internal/logger"
	"taskbot/internal/models"
	rep "taskbot/internal/repository"

	"go.uber.org/zap"
)

type NoteService struct {
	repo NoteRepository
}

func NewNoteService(repo NoteRepository) NoteService {
	return NoteService{
		repo: repo,
	}
}

func (s *NoteService) Create(ctx context.Context, userID int64, content string) (*models.Note, error) {
	if strings.TrimSpace(content) == "" {
		return nil, NewValidationError("content", "must not be empty")
	}

	note := &models.Note{
		Content: content,
	}

	if err := s.repo.Create(ctx, rep.Scope{UserID: userID}, note); err != nil {
		return nil, fmt.Errorf("создание заметки: %w", err)
	}
	return note, nil
}

func (s *NoteService) List(ctx context.Context, userID int64) ([]*models.Note, error) {
	notes, err := s.repo.ListActive(ctx, rep.Scope{UserID: userID})
	if err != nil {
		return nil, fmt.Errorf("получение заметок: %w", err)
	}
	return notes, nil
}

// Void аннулирует заметку. Повторный вызов по той же заметке не ошибка.
func (s *NoteService) Void(ctx context.Context, userID, id int64) error {
	err := s.repo.Void(ctx, rep.Scope{UserID: userID}, id)
	if err != nil {
		if errors.Is(err, rep.ErrNotFound) {
			logger.Info("Service: Заметка не найдена", zap.Int64("target_id", id), zap.Int64("user_id", userID))
			return NewNotFound("note", id)
		}
		return fmt.Errorf("аннулирование заметки: %w", err)
	}
	return nil
}
