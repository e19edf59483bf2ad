package middleware

import (
	"context"
	"encoding/json"
	"net/http"

	"taskbot/internal/logger"
	"taskbot/internal/session"

	"go.uber.org/zap"
)

const SessionCookieName = "session_id"

const userIdKey contextKey = "user_id"

// WithUserID кладёт id пользователя в контекст запроса.
func WithUserID(ctx context.Context, userID int64) context.Context {
	return context.WithValue(ctx, userIdKey, userID)
}

// GetUserID возвращает id пользователя, положенный RequireSession. 0 - аноним.
func GetUserID(ctx context.Context) int64 {
	if id, ok := ctx.Value(userIdKey).(int64); ok {
		return id
	}
	return 0
}

// RequireSession пропускает запрос дальше только с валидной сессионной кукой
// и кладёт id владельца сессии в контекст. Иначе - 401, до ресурсов запрос
// не доходит.
func RequireSession(sessions *session.Store) func(http.Handler) http.Handler {
	return func(next http.Handler) http.Handler {
		return http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
			cookie, err := r.Cookie(SessionCookieName)
			if err != nil || cookie.Value == "" {
				reject(w, r)
				return
			}

			userID, ok := sessions.Resolve(cookie.Value)
			if !ok {
				reject(w, r)
				return
			}

			next.ServeHTTP(w, r.WithContext(WithUserID(r.Context(), userID)))
		})
	}
}

func reject(w http.ResponseWriter, r *http.Request) {
	logger.Warn("HTTP: Запрос без валидной сессии",
		zap.String("request_id", GetRequestID(r.Context())),
		zap.String("path", r.URL.Path),
		zap.String("client_ip", r.RemoteAddr),
	)

	w.Header().Set("Content-Type", "application/json")
	w.WriteHeader(http.StatusUnauthorized)
	json.NewEncoder(w).Encode(map[string]any{
		"error": "authorization required",
	})
}
