package handlers

import (
	"context"
	"errors"
	"net/http"

	"taskbot/internal/logger"
	"taskbot/internal/service"

	"go.uber.org/zap"
)

// handleServiceError переводит ошибку сервиса в HTTP-ответ. Детали
// внутренних ошибок остаются в логах, клиент видит общий текст.
func handleServiceError(w http.ResponseWriter, err error) {
	var businessErr *service.BusinessError
	if errors.As(err, &businessErr) {
		statusCode := mapBusinessErrorToHTTP(businessErr.Code)

		logger.Warn("HTTP: Бизнес-ошибка",
			zap.String("error_code", businessErr.Code),
			zap.Int("http_status", statusCode))

		responseWithJSON(w, statusCode, map[string]any{
			"error":   businessErr.Code,
			"message": businessErr.Message,
			"details": businessErr.Details,
		})
		return
	}

	if errors.Is(err, context.DeadlineExceeded) {
		logger.Warn("HTTP: Таймаут запроса")
		responseWithError(w, http.StatusGatewayTimeout, "request timeout")
		return
	}

	logger.Error("HTTP: Внутренняя ошибка", err)
	responseWithError(w, http.StatusInternalServerError, "internal error")
}

func mapBusinessErrorToHTTP(code string) int {
	switch code {
	case "NOT_FOUND":
		return http.StatusNotFound
	case "VALIDATION_ERROR":
		return http.StatusBadRequest
	case "INVALID_CREDENTIALS", "UNAUTHORIZED":
		return http.StatusUnauthorized
	default:
		return http.StatusBadRequest
	}
}
