package handlers

import (
	"net/http"
	"strconv"
	"time"

	"taskbot/internal/handlers/dto"
	"taskbot/internal/logger"
	"taskbot/internal/middleware"

	"github.com/go-chi/chi/v5"
	"go.uber.org/zap"
)

type NoteHandler struct {
	NoteService NoteService
}

func NewNoteHandler(noteService NoteService) NoteHandler {
	return NoteHandler{
		NoteService: noteService,
	}
}

func (s *NoteHandler) PostNote(w http.ResponseWriter, r *http.Request) {
	start := time.Now()
	logger.HttpRequestInfo(r, "HTTP_IN:")

	if !checkContentType(r, "application/json") {
		logger.Warn("HTTP: Неверный тип контента",
			zap.String("expected", "application/json"),
			zap.String("received", r.Header.Get("Content-Type")),
			zap.String("client_ip", r.RemoteAddr))
		responseWithError(w, http.StatusUnsupportedMediaType, "Content-Type must be application/json")
		return
	}

	var request dto.CreateNoteRequest
	if err := decodeJSON(r, &request); err != nil {
		logger.Warn("HTTP: Ошибка чтения JSON",
			zap.Error(err),
			zap.String("client_ip", r.RemoteAddr))
		responseWithError(w, http.StatusBadRequest, "invalid request body: "+err.Error())
		return
	}

	note, err := s.NoteService.Create(r.Context(), middleware.GetUserID(r.Context()), request.Content)
	if err != nil {
		handleServiceError(w, err)
		return
	}

	logger.Info("HTTP_OUT: Заметка создана",
		zap.Int64("note_id", note.ID),
		zap.Duration("ms", time.Since(start)))

	responseWithJSON(w, http.StatusOK, map[string]any{
		"id": note.ID,
	})
}

func (s *NoteHandler) GetNotes(w http.ResponseWriter, r *http.Request) {
	start := time.Now()
	logger.HttpRequestInfo(r, "HTTP_IN:")

	notes, err := s.NoteService.List(r.Context(), middleware.GetUserID(r.Context()))
	if err != nil {
		handleServiceError(w, err)
		return
	}

	logger.Info("HTTP_OUT: Заметки получены",
		zap.Int("count", len(notes)),
		zap.Duration("ms", time.Since(start)))

	responseWithJSON(w, http.StatusOK, dto.FromNoteList(notes))
}

func (s *NoteHandler) VoidNoteByID(w http.ResponseWriter, r *http.Request) {
	start := time.Now()
	logger.HttpRequestInfo(r, "HTTP_IN:")

	id, err := strconv.ParseInt(chi.URLParam(r, "id"), 10, 64)
	if err != nil {
		logger.Warn("HTTP: Не удалось получить id",
			zap.Error(err),
			zap.String("client_ip", r.RemoteAddr))
		responseWithError(w, http.StatusNotFound, "note not found")
		return
	}

	if err := s.NoteService.Void(r.Context(), middleware.GetUserID(r.Context()), id); err != nil {
		handleServiceError(w, err)
		return
	}

	logger.Info("HTTP_OUT: Заметка аннулирована",
		zap.Int64("note_id", id),
		zap.Duration("ms", time.Since(start)))

	responseWithJSON(w, http.StatusOK, map[string]any{
		"message": "note voided",
	})
}
