package service

import "taskbot/internal/models"

// TaskOption - функция частичного обновления: меняет только своё поле,
// остальные остаются как были.
type TaskOption func(*models.Task)

func WithDescription(description string) TaskOption {
	return func(task *models.Task) {
		task.Description = description
	}
}

func WithStatus(status models.Status) TaskOption {
	return func(task *models.Task) {
		task.Status = status
	}
}
