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

type TaskService struct {
	repo TaskRepository
}

func NewTaskService(repo TaskRepository) TaskService {
	return TaskService{
		repo: repo,
	}
}

func (s *TaskService) Create(ctx context.Context, userID int64, description string) (*models.Task, error) {
	description = strings.TrimSpace(description)
	if description == "" {
		return nil, NewValidationError("description", "must not be empty")
	}
	if len(description) > models.MaxDescriptionLen {
		return nil, NewValidationError("description", "too long")
	}

	task := &models.Task{
		Description: description,
		Status:      models.StatusPending,
	}

	if err := s.repo.Create(ctx, rep.Scope{UserID: userID}, task); err != nil {
		return nil, fmt.Errorf("создание задачи: %w", err)
	}
	return task, nil
}

func (s *TaskService) List(ctx context.Context, userID int64, status models.Status) ([]*models.Task, error) {
	tasks, err := s.repo.List(ctx, rep.Scope{UserID: userID}, status)
	if err != nil {
		return nil, fmt.Errorf("получение задач: %w", err)
	}
	return tasks, nil
}

// Update применяет частичное обновление: меняются только поля,
// переданные через options.
func (s *TaskService) Update(ctx context.Context, userID, id int64, options ...TaskOption) (*models.Task, error) {
	scope := rep.Scope{UserID: userID}

	task, err := s.repo.GetByID(ctx, scope, id)
	if err != nil {
		if errors.Is(err, rep.ErrNotFound) {
			logger.Info("Service: Задача не найдена", zap.Int64("target_id", id), zap.Int64("user_id", userID))
			return nil, NewNotFound("task", id)
		}
		return nil, fmt.Errorf("получение задачи: %w", err)
	}

	for _, opt := range options {
		opt(task)
	}

	task.Description = strings.TrimSpace(task.Description)
	if task.Description == "" {
		return nil, NewValidationError("description", "must not be empty")
	}
	if len(task.Description) > models.MaxDescriptionLen {
		return nil, NewValidationError("description", "too long")
	}

	if err := s.repo.Update(ctx, scope, task); err != nil {
		if errors.Is(err, rep.ErrNotFound) {
			return nil, NewNotFound("task", id)
		}
		return nil, fmt.Errorf("обновление задачи: %w", err)
	}
	return task, nil
}
