// Package session хранит серверные сессии: непрозрачный токен -> id пользователя.
package session

import (
	"crypto/hmac"
	"crypto/rand"
	"crypto/sha256"
	"encoding/hex"
	"fmt"
	"strings"
	"sync"
	"time"
)

const defaultTTL = 24 * time.Hour

type entry struct {
	userID    int64
	expiresAt time.Time
}

// Store выдаёт и проверяет токены вида "id.подпись". Подпись (HMAC-SHA256
// на session.secret) отсекается до обращения к карте, поэтому подделанный
// токен не различим с отсутствующим.
type Store struct {
	secret []byte
	ttl    time.Duration

	mtx      sync.RWMutex
	sessions map[string]entry
}

func NewStore(secret string, ttl time.Duration) *Store {
	if ttl <= 0 {
		ttl = defaultTTL
	}
	return &Store{
		secret:   []byte(secret),
		ttl:      ttl,
		sessions: make(map[string]entry),
	}
}

// Create регистрирует сессию пользователя и возвращает подписанный токен.
func (s *Store) Create(userID int64) (string, error) {
	b := make([]byte, 16)
	if _, err := rand.Read(b); err != nil {
		return "", fmt.Errorf("генерация id сессии: %w", err)
	}
	id := hex.EncodeToString(b)

	s.mtx.Lock()
	s.sessions[id] = entry{userID: userID, expiresAt: time.Now().Add(s.ttl)}
	s.mtx.Unlock()

	return id + "." + s.sign(id), nil
}

// Resolve возвращает id пользователя по токену. Любой невалидный токен
// (битый, подделанный, истёкший, отозванный) - это просто аноним, не ошибка.
func (s *Store) Resolve(token string) (int64, bool) {
	id, ok := s.verify(token)
	if !ok {
		return 0, false
	}

	s.mtx.RLock()
	e, ok := s.sessions[id]
	s.mtx.RUnlock()

	if !ok {
		return 0, false
	}
	if time.Now().After(e.expiresAt) {
		s.mtx.Lock()
		delete(s.sessions, id)
		s.mtx.Unlock()
		return 0, false
	}
	return e.userID, true
}

// Invalidate отзывает сессию (logout). Повторный Resolve того же токена
// вернёт анонима.
func (s *Store) Invalidate(token string) {
	id, ok := s.verify(token)
	if !ok {
		return
	}
	s.mtx.Lock()
	delete(s.sessions, id)
	s.mtx.Unlock()
}

func (s *Store) sign(id string) string {
	mac := hmac.New(sha256.New, s.secret)
	mac.Write([]byte(id))
	return hex.EncodeToString(mac.Sum(nil))
}

func (s *Store) verify(token string) (string, bool) {
	id, sig, ok := strings.Cut(token, ".")
	if !ok || id == "" {
		return "", false
	}
	if !hmac.Equal([]byte(sig), []byte(s.sign(id))) {
		return "", false
	}
	return id, true
}
