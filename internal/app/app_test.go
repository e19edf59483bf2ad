package app_test

import (
	"bytes"
	"context"
	"encoding/json"
	"fmt"
	"net/http"
	"net/http/cookiejar"
	"net/http/httptest"
	"os"
	"testing"
	"time"

	"taskbot/internal/app"
	"taskbot/internal/config"
	"taskbot/internal/logger"
	"taskbot/internal/models"
	"taskbot/internal/repository/inmemory"
	"taskbot/internal/session"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	"golang.org/x/crypto/bcrypt"
)

func TestMain(m *testing.M) {
	if err := logger.Init(true); err != nil {
		panic(err)
	}
	os.Exit(m.Run())
}

func testConfig() *config.Config {
	return &config.Config{
		Server: config.ServerConfig{
			Host:           "127.0.0.1",
			Port:           "0",
			ReadTimeout:    10 * time.Second,
			WriteTimeout:   125 * time.Second,
			IdleTimeout:    60 * time.Second,
			RequestTimeout: 120 * time.Second,
		},
		Session: config.SessionConfig{
			Secret: "test-secret",
			TTL:    time.Hour,
		},
		Repository: config.RepositoryConfig{Type: config.RepoInMemory},
	}
}

// newTestServer поднимает полный роутер на inmemory-хранилищах
// с одним посеянным пользователем alice/password123
func newTestServer(t *testing.T) (*httptest.Server, *http.Client) {
	t.Helper()

	cfg := testConfig()
	sessions := session.NewStore(cfg.Session.Secret, cfg.Session.TTL)

	users := inmemory.NewUserStorage()
	tasks := inmemory.NewTaskStorage()
	notes := inmemory.NewNoteStorage()

	hash, err := bcrypt.GenerateFromPassword([]byte("password123"), bcrypt.MinCost)
	require.NoError(t, err)
	require.NoError(t, users.Create(context.Background(), &models.User{
		Username:     "alice",
		PasswordHash: string(hash),
	}))

	router := app.NewRouter(cfg, sessions, app.Repos{
		Users:  users,
		Tasks:  tasks,
		Notes:  notes,
		Health: tasks,
	})

	srv := httptest.NewServer(router)
	t.Cleanup(srv.Close)

	jar, err := cookiejar.New(nil)
	require.NoError(t, err)
	client := &http.Client{
		Jar: jar,
		CheckRedirect: func(req *http.Request, via []*http.Request) error {
			return http.ErrUseLastResponse
		},
	}
	return srv, client
}

func postJSON(t *testing.T, client *http.Client, url, body string) *http.Response {
	t.Helper()
	resp, err := client.Post(url, "application/json", bytes.NewBufferString(body))
	require.NoError(t, err)
	return resp
}

func putJSON(t *testing.T, client *http.Client, url, body string) *http.Response {
	t.Helper()
	req, err := http.NewRequest(http.MethodPut, url, bytes.NewBufferString(body))
	require.NoError(t, err)
	req.Header.Set("Content-Type", "application/json")
	resp, err := client.Do(req)
	require.NoError(t, err)
	return resp
}

func decodeBody(t *testing.T, resp *http.Response, out any) {
	t.Helper()
	defer resp.Body.Close()
	require.NoError(t, json.NewDecoder(resp.Body).Decode(out))
}

func login(t *testing.T, client *http.Client, baseURL string) {
	t.Helper()
	resp := postJSON(t, client, baseURL+"/api/login", `{"username":"alice","password":"password123"}`)
	var body map[string]any
	decodeBody(t, resp, &body)
	require.Equal(t, http.StatusOK, resp.StatusCode)
	require.Equal(t, true, body["success"])
}

// TestTaskLifecycle - полный путь: вход, создание, список, обновление,
// фильтрация, выход
func TestTaskLifecycle(t *testing.T) {
	srv, client := newTestServer(t)

	login(t, client, srv.URL)

	// создаём задачу
	resp := postJSON(t, client, srv.URL+"/api/tasks", `{"description":"buy milk"}`)
	require.Equal(t, http.StatusOK, resp.StatusCode)
	var created map[string]any
	decodeBody(t, resp, &created)
	taskID := int64(created["id"].(float64))
	require.NotZero(t, taskID)

	// задача видна в списке как pending
	resp, err := client.Get(srv.URL + "/api/tasks")
	require.NoError(t, err)
	var tasks []map[string]any
	decodeBody(t, resp, &tasks)
	require.Len(t, tasks, 1)
	assert.Equal(t, "buy milk", tasks[0]["description"])
	assert.Equal(t, "pending", tasks[0]["status"])
	assert.Nil(t, tasks[0]["updated_at"])

	// завершаем задачу
	resp = putJSON(t, client, fmt.Sprintf("%s/api/tasks/%d", srv.URL, taskID), `{"status":"completed"}`)
	require.Equal(t, http.StatusOK, resp.StatusCode)
	var updated map[string]any
	decodeBody(t, resp, &updated)
	assert.Equal(t, "completed", updated["status"])
	assert.Equal(t, "buy milk", updated["description"])
	assert.NotEmpty(t, updated["updated_at"])

	// фильтр по статусу
	resp, err = client.Get(srv.URL + "/api/tasks?status=completed")
	require.NoError(t, err)
	decodeBody(t, resp, &tasks)
	require.Len(t, tasks, 1)

	resp, err = client.Get(srv.URL + "/api/tasks?status=pending")
	require.NoError(t, err)
	decodeBody(t, resp, &tasks)
	assert.Empty(t, tasks)

	// выход гасит сессию
	resp, err = client.Get(srv.URL + "/logout")
	require.NoError(t, err)
	resp.Body.Close()
	assert.Equal(t, http.StatusFound, resp.StatusCode)

	resp, err = client.Get(srv.URL + "/api/tasks")
	require.NoError(t, err)
	resp.Body.Close()
	assert.Equal(t, http.StatusUnauthorized, resp.StatusCode)
}

func TestNoteLifecycle(t *testing.T) {
	srv, client := newTestServer(t)
	login(t, client, srv.URL)

	resp := postJSON(t, client, srv.URL+"/api/notes", `{"content":"remember this"}`)
	require.Equal(t, http.StatusOK, resp.StatusCode)
	var created map[string]any
	decodeBody(t, resp, &created)
	noteID := int64(created["id"].(float64))

	resp, err := client.Get(srv.URL + "/api/notes")
	require.NoError(t, err)
	var notes []map[string]any
	decodeBody(t, resp, &notes)
	require.Len(t, notes, 1)
	assert.Equal(t, "remember this", notes[0]["content"])

	// аннулируем заметку, дважды - оба раза успех
	for i := 0; i < 2; i++ {
		resp = putJSON(t, client, fmt.Sprintf("%s/api/notes/%d/void", srv.URL, noteID), "")
		require.Equal(t, http.StatusOK, resp.StatusCode)
		resp.Body.Close()
	}

	resp, err = client.Get(srv.URL + "/api/notes")
	require.NoError(t, err)
	decodeBody(t, resp, &notes)
	assert.Empty(t, notes)
}

func TestUnauthenticatedAccess(t *testing.T) {
	srv, client := newTestServer(t)

	paths := []struct {
		method string
		path   string
	}{
		{http.MethodGet, "/api/tasks"},
		{http.MethodPost, "/api/tasks"},
		{http.MethodPut, "/api/tasks/1"},
		{http.MethodGet, "/api/notes"},
		{http.MethodPost, "/api/notes"},
		{http.MethodPut, "/api/notes/1/void"},
	}

	for _, p := range paths {
		t.Run(p.method+" "+p.path, func(t *testing.T) {
			req, err := http.NewRequest(p.method, srv.URL+p.path, bytes.NewBufferString("{}"))
			require.NoError(t, err)
			req.Header.Set("Content-Type", "application/json")
			resp, err := client.Do(req)
			require.NoError(t, err)
			resp.Body.Close()
			assert.Equal(t, http.StatusUnauthorized, resp.StatusCode)
		})
	}
}

func TestLogin_InvalidCredentials(t *testing.T) {
	srv, client := newTestServer(t)

	respWrongPassword := postJSON(t, client, srv.URL+"/api/login", `{"username":"alice","password":"wrong"}`)
	respNoUser := postJSON(t, client, srv.URL+"/api/login", `{"username":"ghost","password":"wrong"}`)

	assert.Equal(t, http.StatusUnauthorized, respWrongPassword.StatusCode)
	assert.Equal(t, http.StatusUnauthorized, respNoUser.StatusCode)

	var body1, body2 map[string]any
	decodeBody(t, respWrongPassword, &body1)
	decodeBody(t, respNoUser, &body2)
	assert.Equal(t, body1, body2, "тело отказа не должно выдавать причину")

	// невалидный вход не оставляет рабочей сессии
	resp, err := client.Get(srv.URL + "/api/tasks")
	require.NoError(t, err)
	resp.Body.Close()
	assert.Equal(t, http.StatusUnauthorized, resp.StatusCode)
}

// TestForgedSessionCookie - кука с неподписанным токеном не проходит
func TestForgedSessionCookie(t *testing.T) {
	srv, _ := newTestServer(t)

	client := &http.Client{}

	req, err := http.NewRequest(http.MethodGet, srv.URL+"/api/tasks", nil)
	require.NoError(t, err)
	req.AddCookie(&http.Cookie{Name: "session_id", Value: "deadbeef.forgedsignature"})
	resp, err := client.Do(req)
	require.NoError(t, err)
	resp.Body.Close()
	assert.Equal(t, http.StatusUnauthorized, resp.StatusCode)
}

func TestPages(t *testing.T) {
	srv, client := newTestServer(t)

	// аноним: / и /dashboard уводят на /login
	resp, err := client.Get(srv.URL + "/")
	require.NoError(t, err)
	resp.Body.Close()
	assert.Equal(t, http.StatusFound, resp.StatusCode)
	assert.Equal(t, "/login", resp.Header.Get("Location"))

	resp, err = client.Get(srv.URL + "/dashboard")
	require.NoError(t, err)
	resp.Body.Close()
	assert.Equal(t, "/login", resp.Header.Get("Location"))

	resp, err = client.Get(srv.URL + "/login")
	require.NoError(t, err)
	resp.Body.Close()
	assert.Equal(t, http.StatusOK, resp.StatusCode)

	// после входа наоборот
	login(t, client, srv.URL)

	resp, err = client.Get(srv.URL + "/")
	require.NoError(t, err)
	resp.Body.Close()
	assert.Equal(t, "/dashboard", resp.Header.Get("Location"))

	resp, err = client.Get(srv.URL + "/dashboard")
	require.NoError(t, err)
	resp.Body.Close()
	assert.Equal(t, http.StatusOK, resp.StatusCode)
}

func TestHealth(t *testing.T) {
	srv, client := newTestServer(t)

	resp, err := client.Get(srv.URL + "/health")
	require.NoError(t, err)
	var body map[string]any
	decodeBody(t, resp, &body)
	assert.Equal(t, http.StatusOK, resp.StatusCode)
	assert.Equal(t, "ok", body["status"])
}
