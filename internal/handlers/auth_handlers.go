package handlers

import (
	"errors"
	"net/http"

	"taskbot/internal/handlers/dto"
	"taskbot/internal/logger"
	"taskbot/internal/middleware"
	"taskbot/internal/service"

	"go.uber.org/zap"
)

type AuthHandler struct {
	auth AuthService
}

func NewAuthHandler(auth AuthService) AuthHandler {
	return AuthHandler{
		auth: auth,
	}
}

// Home перенаправляет на дашборд или на страницу входа.
func (h *AuthHandler) Home(w http.ResponseWriter, r *http.Request) {
	if h.sessionUser(r) != 0 {
		http.Redirect(w, r, "/dashboard", http.StatusFound)
		return
	}
	http.Redirect(w, r, "/login", http.StatusFound)
}

func (h *AuthHandler) LoginPage(w http.ResponseWriter, r *http.Request) {
	if h.sessionUser(r) != 0 {
		http.Redirect(w, r, "/dashboard", http.StatusFound)
		return
	}
	renderPage(w, "login.html")
}

func (h *AuthHandler) Dashboard(w http.ResponseWriter, r *http.Request) {
	if h.sessionUser(r) == 0 {
		http.Redirect(w, r, "/login", http.StatusFound)
		return
	}
	renderPage(w, "index.html")
}

func (h *AuthHandler) APILogin(w http.ResponseWriter, r *http.Request) {
	logger.HttpRequestInfo(r, "HTTP_IN:")

	var request dto.LoginRequest
	if err := decodeJSON(r, &request); err != nil {
		logger.Warn("HTTP: Ошибка чтения JSON",
			zap.Error(err),
			zap.String("client_ip", r.RemoteAddr))
		responseWithError(w, http.StatusBadRequest, "invalid request body")
		return
	}

	if request.Username == "" || request.Password == "" {
		logger.Warn("HTTP: Ошибка валидации",
			zap.String("error", "empty_credentials"),
			zap.String("client_ip", r.RemoteAddr))
		responseWithError(w, http.StatusBadRequest, "username and password required")
		return
	}

	token, err := h.auth.Login(r.Context(), request.Username, request.Password)
	if err != nil {
		var businessErr *service.BusinessError
		if errors.As(err, &businessErr) && businessErr.Code == "INVALID_CREDENTIALS" {
			// причина отказа наружу не уходит: тело одинаковое для
			// несуществующего пользователя и неверного пароля
			responseWithJSON(w, http.StatusUnauthorized, map[string]any{
				"success": false,
				"message": "invalid username or password",
			})
			return
		}
		logger.Error("HTTP: Ошибка Service", err, zap.String("operation", "login"))
		responseWithError(w, http.StatusInternalServerError, "login failed")
		return
	}

	http.SetCookie(w, &http.Cookie{
		Name:     middleware.SessionCookieName,
		Value:    token,
		Path:     "/",
		HttpOnly: true,
	})
	responseWithJSON(w, http.StatusOK, map[string]any{
		"success": true,
	})
}

func (h *AuthHandler) Logout(w http.ResponseWriter, r *http.Request) {
	if cookie, err := r.Cookie(middleware.SessionCookieName); err == nil && cookie.Value != "" {
		h.auth.Logout(cookie.Value)
	}

	http.SetCookie(w, &http.Cookie{
		Name:     middleware.SessionCookieName,
		Value:    "",
		Path:     "/",
		MaxAge:   -1,
		HttpOnly: true,
	})
	http.Redirect(w, r, "/login", http.StatusFound)
}

// sessionUser возвращает id владельца сессии из куки, 0 для анонима.
func (h *AuthHandler) sessionUser(r *http.Request) int64 {
	cookie, err := r.Cookie(middleware.SessionCookieName)
	if err != nil || cookie.Value == "" {
		return 0
	}
	userID, ok := h.auth.Resolve(cookie.Value)
	if !ok {
		return 0
	}
	return userID
}
