package handlers

import (
	"net/http"

	"taskbot/internal/logger"
)

type HealthHandler struct {
	checker HealthChecker
}

func NewHealthHandler(checker HealthChecker) HealthHandler {
	return HealthHandler{
		checker: checker,
	}
}

func (s *HealthHandler) HealthCheck(w http.ResponseWriter, r *http.Request) {
	logger.HttpRequestInfo(r, "HTTP: Health check")

	if err := s.checker.HealthCheck(r.Context()); err != nil {
		responseWithJSON(w, http.StatusServiceUnavailable, map[string]any{
			"service": "taskbot",
			"status":  "unavailable",
		})
		return
	}

	responseWithJSON(w, http.StatusOK, map[string]any{
		"service": "taskbot",
		"status":  "ok",
	})
}
