package service

import (
	"context"
	"errors"
	"fmt"

	"taskbot/internal/logger"
	rep "taskbot/internal/repository"
	"taskbot/internal/session"

	"go.uber.org/zap"
	"golang.org/x/crypto/bcrypt"
)

type AuthService struct {
	users    UserRepository
	sessions *session.Store
}

func NewAuthService(users UserRepository, sessions *session.Store) AuthService {
	return AuthService{
		users:    users,
		sessions: sessions,
	}
}

// Login проверяет учётные данные и выдаёт токен сессии. Обе причины отказа
// (нет пользователя, неверный пароль) различаются только в серверных логах,
// наружу уходит одна и та же ошибка.
func (s *AuthService) Login(ctx context.Context, username, password string) (string, error) {
	user, err := s.users.GetByUsername(ctx, username)
	if err != nil {
		if errors.Is(err, rep.ErrNotFound) {
			logger.Info("Service: Пользователь не найден", zap.String("username", username))
			return "", NewInvalidCredentials()
		}
		return "", fmt.Errorf("получение пользователя: %w", err)
	}

	if err := bcrypt.CompareHashAndPassword([]byte(user.PasswordHash), []byte(password)); err != nil {
		logger.Info("Service: Неверный пароль", zap.String("username", username))
		return "", NewInvalidCredentials()
	}

	token, err := s.sessions.Create(user.ID)
	if err != nil {
		return "", fmt.Errorf("создание сессии: %w", err)
	}

	logger.Info("Service: Успешный вход", zap.Int64("user_id", user.ID))
	return token, nil
}

// Resolve возвращает id пользователя по токену сессии, false для анонима.
func (s *AuthService) Resolve(token string) (int64, bool) {
	return s.sessions.Resolve(token)
}

func (s *AuthService) Logout(token string) {
	s.sessions.Invalidate(token)
}
