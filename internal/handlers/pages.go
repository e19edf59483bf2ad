package handlers

import (
	"embed"
	"html/template"
	"net/http"

	"taskbot/internal/logger"
)

//go:embed templates/*.html
var templatesFS embed.FS

var pages = template.Must(template.ParseFS(templatesFS, "templates/*.html"))

func renderPage(w http.ResponseWriter, name string) {
	w.Header().Set("Content-Type", "text/html; charset=utf-8")
	if err := pages.ExecuteTemplate(w, name, nil); err != nil {
		logger.Error("HTTP: Ошибка рендера страницы", err)
	}
}
