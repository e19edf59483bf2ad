package inmemory

import (
	"context"
	"sync"
	"time"

	"taskbot/internal/models"
	repo "taskbot/internal/repository"
)

type UserStorage struct {
	mtx     sync.RWMutex
	storage map[string]*models.User
	nextID  int64
}

func NewUserStorage() *UserStorage {
	return &UserStorage{
		storage: make(map[string]*models.User),
		nextID:  1,
	}
}

func (s *UserStorage) GetByUsername(ctx context.Context, username string) (*models.User, error) {
	s.mtx.RLock()
	defer s.mtx.RUnlock()

	// регистрозависимое точное совпадение
	user, ok := s.storage[username]
	if !ok {
		return nil, repo.ErrNotFound
	}
	copied := *user
	return &copied, nil
}

func (s *UserStorage) Create(ctx context.Context, user *models.User) error {
	s.mtx.Lock()
	defer s.mtx.Unlock()

	if _, ok := s.storage[user.Username]; ok {
		return repo.ErrUsernameTaken
	}

	user.ID = s.nextID
	s.nextID++
	user.CreatedAt = time.Now()

	copied := *user
	s.storage[user.Username] = &copied
	return nil
}
