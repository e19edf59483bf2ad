package handlers

import (
	"context"

	"taskbot/internal/models"
	"taskbot/internal/service"
)

type AuthService interface {
	Login(ctx context.Context, username, password string) (string, error)
	Resolve(token string) (int64, bool)
	Logout(token string)
}

type TaskService interface {
	Create(ctx context.Context, userID int64, description string) (*models.Task, error)
	List(ctx context.Context, userID int64, status models.Status) ([]*models.Task, error)
	Update(ctx context.Context, userID, id int64, options ...service.TaskOption) (*models.Task, error)
}

type NoteService interface {
	Create(ctx context.Context, userID int64, content string) (*models.Note, error)
	List(ctx context.Context, userID int64) ([]*models.Note, error)
	Void(ctx context.Context, userID, id int64) error
}

type HealthChecker interface {
	HealthCheck(ctx context.Context) error
}
