package app

import (
	"taskbot/internal/config"
	"taskbot/internal/handlers"
	"taskbot/internal/middleware"
	"taskbot/internal/service"
	"taskbot/internal/session"

	"github.com/go-chi/chi/v5"
	"github.com/go-chi/cors"
)

// Repos - набор хранилищ, на которых собирается приложение.
type Repos struct {
	Users  service.UserRepository
	Tasks  service.TaskRepository
	Notes  service.NoteRepository
	Health handlers.HealthChecker
}

// NewRouter собирает полный HTTP-роутер поверх переданных хранилищ.
// Все ресурсные маршруты /api закрыты RequireSession, исключение - /api/login.
func NewRouter(cfg *config.Config, sessions *session.Store, repos Repos) *chi.Mux {
	authService := service.NewAuthService(repos.Users, sessions)
	taskService := service.NewTaskService(repos.Tasks)
	noteService := service.NewNoteService(repos.Notes)

	authHandler := handlers.NewAuthHandler(&authService)
	taskHandler := handlers.NewTaskHandler(&taskService)
	noteHandler := handlers.NewNoteHandler(&noteService)
	healthHandler := handlers.NewHealthHandler(repos.Health)

	r := chi.NewRouter()

	r.Use(middleware.RequestID)
	r.Use(middleware.Logging)
	r.Use(middleware.Timeout(cfg.Server.RequestTimeout))
	r.Use(cors.Handler(cors.Options{
		AllowedOrigins:   []string{"*"},
		AllowedMethods:   []string{"GET", "POST", "PUT", "OPTIONS"},
		AllowedHeaders:   []string{"Accept", "Content-Type"},
		AllowCredentials: false,
		MaxAge:           300,
	}))

	r.Get("/", authHandler.Home)
	r.Get("/login", authHandler.LoginPage)
	r.Get("/logout", authHandler.Logout)
	r.Get("/dashboard", authHandler.Dashboard)
	r.Get("/health", healthHandler.HealthCheck)

	r.Route("/api", func(r chi.Router) {
		r.Post("/login", authHandler.APILogin)

		r.Group(func(r chi.Router) {
			r.Use(middleware.RequireSession(sessions))

			r.Route("/tasks", func(r chi.Router) {
				r.Get("/", taskHandler.GetTasks)        // GET /api/tasks?status=
				r.Post("/", taskHandler.PostTask)       // POST /api/tasks
				r.Put("/{id}", taskHandler.UpdateTaskByID) // PUT /api/tasks/{id}
			})

			r.Route("/notes", func(r chi.Router) {
				r.Get("/", noteHandler.GetNotes)             // GET /api/notes
				r.Post("/", noteHandler.PostNote)            // POST /api/notes
				r.Put("/{id}/void", noteHandler.VoidNoteByID) // PUT /api/notes/{id}/void
			})
		})
	})

	return r
}
