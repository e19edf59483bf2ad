package inmemory

import (
	"context"
	"sync"
	"time"

	"taskbot/internal/models"
	repo "taskbot/internal/repository"
)

type TaskStorage struct {
	mtx     sync.RWMutex
	storage map[int64]*models.Task
	ids     []int64 // порядок вставки
	nextID  int64
}

func NewTaskStorage() *TaskStorage {
	return &TaskStorage{
		storage: make(map[int64]*models.Task),
		ids:     []int64{},
		nextID:  1,
	}
}

func (s *TaskStorage) HealthCheck(ctx context.Context) error {
	return nil
}

func (s *TaskStorage) Create(ctx context.Context, scope repo.Scope, taskToCreate *models.Task) error {
	s.mtx.Lock()
	defer s.mtx.Unlock()

	taskToCreate.ID = s.nextID
	s.nextID++
	taskToCreate.UserID = scope.UserID
	taskToCreate.CreatedAt = time.Now()

	copied := *taskToCreate
	s.storage[copied.ID] = &copied
	s.ids = append(s.ids, copied.ID)
	return nil
}

func (s *TaskStorage) GetByID(ctx context.Context, scope repo.Scope, id int64) (*models.Task, error) {
	s.mtx.RLock()
	defer s.mtx.RUnlock()

	taskToGet, ok := s.storage[id]
	if !ok || taskToGet.UserID != scope.UserID {
		// чужая задача неотличима от несуществующей
		return nil, repo.ErrNotFound
	}
	copied := *taskToGet
	return &copied, nil
}

func (s *TaskStorage) List(ctx context.Context, scope repo.Scope, status models.Status) ([]*models.Task, error) {
	s.mtx.RLock()
	defer s.mtx.RUnlock()

	res := []*models.Task{}
	for _, id := range s.ids {
		taskToGet, ok := s.storage[id]
		if !ok || taskToGet.UserID != scope.UserID {
			continue
		}
		if status != "" && taskToGet.Status != status {
			continue
		}
		copied := *taskToGet
		res = append(res, &copied)
	}
	return res, nil
}

func (s *TaskStorage) Update(ctx context.Context, scope repo.Scope, taskToUpdate *models.Task) error {
	s.mtx.Lock()
	defer s.mtx.Unlock()

	existing, ok := s.storage[taskToUpdate.ID]
	if !ok || existing.UserID != scope.UserID {
		return repo.ErrNotFound
	}

	now := time.Now()
	existing.Description = taskToUpdate.Description
	existing.Status = taskToUpdate.Status
	existing.UpdatedAt = &now

	taskToUpdate.UserID = existing.UserID
	taskToUpdate.CreatedAt = existing.CreatedAt
	taskToUpdate.UpdatedAt = &now
	return nil
}
