package service

import (
	"context"

	"taskbot/internal/models"
	"taskbot/internal/repository"
)

type UserRepository interface {
	GetByUsername(ctx context.Context, username string) (*models.User, error)
	Create(ctx context.Context, user *models.User) error
}

type TaskRepository interface {
	Create(ctx context.Context, scope repository.Scope, task *models.Task) error
	GetByID(ctx context.Context, scope repository.Scope, id int64) (*models.Task, error)
	List(ctx context.Context, scope repository.Scope, status models.Status) ([]*models.Task, error)
	Update(ctx context.Context, scope repository.Scope, task *models.Task) error
}

type NoteRepository interface {
	Create(ctx context.Context, scope repository.Scope, note *models.Note) error
	ListActive(ctx context.Context, scope repository.Scope) ([]*models.Note, error)
	Void(ctx context.Context, scope repository.Scope, id int64) error
}
