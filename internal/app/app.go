package app

import (
	"context"
	"errors"
	"fmt"
	"net/http"
	"time"

	"taskbot/internal/config"
	"taskbot/internal/logger"
	"taskbot/internal/repository/inmemory"
	"taskbot/internal/repository/postgres"
	"taskbot/internal/session"

	"github.com/go-chi/chi/v5"
	"go.uber.org/zap"
	"golang.org/x/sync/errgroup"
)

type App struct {
	config    *config.Config
	router    *chi.Mux
	server    *http.Server
	sessions  *session.Store
	shutdowns []func() // функции для graceful shutdown
}

func New(cfg *config.Config) *App {
	return &App{
		config:    cfg,
		shutdowns: make([]func(), 0),
	}
}

func (a *App) Init(ctx context.Context) error {
	if err := logger.Init(a.config.Logging.Development); err != nil {
		return fmt.Errorf("инициализация логгера: %w", err)
	}
	a.shutdowns = append(a.shutdowns, func() {
		logger.Info("Завершение работы логгирования...")
		logger.Sync()
	})

	repos, err := a.initRepos(ctx)
	if err != nil {
		return err
	}

	a.sessions = session.NewStore(a.config.Session.Secret, a.config.Session.TTL)
	a.router = NewRouter(a.config, a.sessions, repos)

	a.server = &http.Server{
		Addr:         a.config.GetServerAddr(),
		Handler:      a.router,
		ReadTimeout:  a.config.Server.ReadTimeout,
		WriteTimeout: a.config.Server.WriteTimeout,
		IdleTimeout:  a.config.Server.IdleTimeout,
	}
	return nil
}

func (a *App) initRepos(ctx context.Context) (Repos, error) {
	switch a.config.Repository.Type {
	case config.RepoPostgres:
		storage, err := postgres.New(ctx, a.config.Database.URL)
		if err != nil {
			return Repos{}, fmt.Errorf("подключение к postgres: %w", err)
		}
		if err := postgres.Migrate(a.config.Database.URL); err != nil {
			storage.Close()
			return Repos{}, fmt.Errorf("миграции: %w", err)
		}
		a.shutdowns = append(a.shutdowns, storage.Close)
		return Repos{
			Users:  storage.Users(),
			Tasks:  storage.Tasks(),
			Notes:  storage.Notes(),
			Health: storage,
		}, nil

	case config.RepoInMemory:
		tasks := inmemory.NewTaskStorage()
		return Repos{
			Users:  inmemory.NewUserStorage(),
			Tasks:  tasks,
			Notes:  inmemory.NewNoteStorage(),
			Health: tasks,
		}, nil

	default:
		return Repos{}, fmt.Errorf("неизвестный тип репозитория: %q", a.config.Repository.Type)
	}
}

// Run держит сервер до отмены контекста, затем гасит его аккуратно.
func (a *App) Run(ctx context.Context) error {
	g, gctx := errgroup.WithContext(ctx)

	g.Go(func() error {
		logger.Info("HTTP: Сервер запущен", zap.String("addr", a.server.Addr))
		if err := a.server.ListenAndServe(); err != nil && !errors.Is(err, http.ErrServerClosed) {
			return fmt.Errorf("http сервер: %w", err)
		}
		return nil
	})

	g.Go(func() error {
		<-gctx.Done()
		logger.Info("HTTP: Остановка сервера...")

		shutdownCtx, cancel := context.WithTimeout(context.Background(), 10*time.Second)
		defer cancel()
		return a.server.Shutdown(shutdownCtx)
	})

	err := g.Wait()
	a.Close()
	return err
}

// Close выполняет shutdown-хуки в обратном порядке регистрации.
func (a *App) Close() {
	for i := len(a.shutdowns) - 1; i >= 0; i-- {
		a.shutdowns[i]()
	}
}

func (a *App) Router() http.Handler {
	return a.router
}
