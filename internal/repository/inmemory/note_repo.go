package inmemory

import (
	"context"
	"sync"
	"time"

	"taskbot/internal/models"
	repo "taskbot/internal/repository"
)

type NoteStorage struct {
	mtx     sync.RWMutex
	storage map[int64]*models.Note
	ids     []int64 // порядок вставки
	nextID  int64
}

func NewNoteStorage() *NoteStorage {
	return &NoteStorage{
		storage: make(map[int64]*models.Note),
		ids:     []int64{},
		nextID:  1,
	}
}

func (s *NoteStorage) Create(ctx context.Context, scope repo.Scope, noteToCreate *models.Note) error {
	s.mtx.Lock()
	defer s.mtx.Unlock()

	noteToCreate.ID = s.nextID
	s.nextID++
	noteToCreate.UserID = scope.UserID
	noteToCreate.CreatedAt = time.Now()

	copied := *noteToCreate
	s.storage[copied.ID] = &copied
	s.ids = append(s.ids, copied.ID)
	return nil
}

func (s *NoteStorage) ListActive(ctx context.Context, scope repo.Scope) ([]*models.Note, error) {
	s.mtx.RLock()
	defer s.mtx.RUnlock()

	res := []*models.Note{}
	for _, id := range s.ids {
		noteToGet, ok := s.storage[id]
		if !ok || noteToGet.UserID != scope.UserID || noteToGet.IsVoid {
			continue
		}
		copied := *noteToGet
		res = append(res, &copied)
	}
	return res, nil
}

// Void идемпотентен: повторное аннулирование уже аннулированной заметки - no-op.
func (s *NoteStorage) Void(ctx context.Context, scope repo.Scope, id int64) error {
	s.mtx.Lock()
	defer s.mtx.Unlock()

	existing, ok := s.storage[id]
	if !ok || existing.UserID != scope.UserID {
		return repo.ErrNotFound
	}

	now := time.Now()
	existing.IsVoid = true
	existing.UpdatedAt = &now
	return nil
}
