package service_test

import (
	"context"
	"os"
	"strings"
	"testing"
	"time"

	"taskbot/internal/logger"
	"taskbot/internal/models"
	"taskbot/internal/repository/inmemory"
	"taskbot/internal/service"
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

func newAuthService(t *testing.T) (service.AuthService, *inmemory.UserStorage) {
	t.Helper()
	users := inmemory.NewUserStorage()
	sessions := session.NewStore("test-secret", time.Hour)
	return service.NewAuthService(users, sessions), users
}

func seedUser(t *testing.T, users *inmemory.UserStorage, username, password string) *models.User {
	t.Helper()
	hash, err := bcrypt.GenerateFromPassword([]byte(password), bcrypt.MinCost)
	require.NoError(t, err)
	user := &models.User{Username: username, PasswordHash: string(hash)}
	require.NoError(t, users.Create(context.Background(), user))
	return user
}

func TestAuthService_Login(t *testing.T) {
	ctx := context.Background()
	svc, users := newAuthService(t)
	alice := seedUser(t, users, "alice", "correct horse")

	token, err := svc.Login(ctx, "alice", "correct horse")
	require.NoError(t, err)

	userID, ok := svc.Resolve(token)
	require.True(t, ok)
	assert.Equal(t, alice.ID, userID)
}

// TestAuthService_Login_UniformFailure - отказ по несуществующему имени и по
// неверному паролю должен быть неразличим для вызывающего
func TestAuthService_Login_UniformFailure(t *testing.T) {
	ctx := context.Background()
	svc, users := newAuthService(t)
	seedUser(t, users, "alice", "correct horse")

	_, errWrongPassword := svc.Login(ctx, "alice", "wrong")
	_, errNoUser := svc.Login(ctx, "nobody", "wrong")

	require.Error(t, errWrongPassword)
	require.Error(t, errNoUser)

	var be1, be2 *service.BusinessError
	require.ErrorAs(t, errWrongPassword, &be1)
	require.ErrorAs(t, errNoUser, &be2)
	assert.Equal(t, "INVALID_CREDENTIALS", be1.Code)
	assert.Equal(t, be1.Code, be2.Code)
	assert.Equal(t, be1.Message, be2.Message)
	assert.Equal(t, be1.Details, be2.Details)
}

func TestAuthService_Login_CaseSensitiveUsername(t *testing.T) {
	ctx := context.Background()
	svc, users := newAuthService(t)
	seedUser(t, users, "alice", "correct horse")

	_, err := svc.Login(ctx, "Alice", "correct horse")
	require.Error(t, err)
}

func TestAuthService_Logout(t *testing.T) {
	ctx := context.Background()
	svc, users := newAuthService(t)
	seedUser(t, users, "alice", "correct horse")

	token, err := svc.Login(ctx, "alice", "correct horse")
	require.NoError(t, err)

	svc.Logout(token)

	_, ok := svc.Resolve(token)
	assert.False(t, ok)
}

func TestTaskService_Create(t *testing.T) {
	tests := []struct {
		name        string
		description string
		wantErrCode string
	}{
		{name: "success", description: "buy milk"},
		{name: "empty description", description: "", wantErrCode: "VALIDATION_ERROR"},
		{name: "whitespace only", description: "   ", wantErrCode: "VALIDATION_ERROR"},
		{name: "too long", description: strings.Repeat("x", models.MaxDescriptionLen+1), wantErrCode: "VALIDATION_ERROR"},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			svc := service.NewTaskService(inmemory.NewTaskStorage())

			task, err := svc.Create(context.Background(), 1, tt.description)
			if tt.wantErrCode != "" {
				var businessErr *service.BusinessError
				require.ErrorAs(t, err, &businessErr)
				assert.Equal(t, tt.wantErrCode, businessErr.Code)
				return
			}

			require.NoError(t, err)
			assert.NotZero(t, task.ID)
			assert.Equal(t, models.StatusPending, task.Status)
			assert.Nil(t, task.UpdatedAt)
		})
	}
}

func TestTaskService_List_StatusFilter(t *testing.T) {
	ctx := context.Background()
	svc := service.NewTaskService(inmemory.NewTaskStorage())

	first, err := svc.Create(ctx, 1, "first")
	require.NoError(t, err)
	second, err := svc.Create(ctx, 1, "second")
	require.NoError(t, err)

	_, err = svc.Update(ctx, 1, second.ID, service.WithStatus(models.StatusCompleted))
	require.NoError(t, err)

	all, err := svc.List(ctx, 1, "")
	require.NoError(t, err)
	require.Len(t, all, 2)
	// порядок вставки
	assert.Equal(t, first.ID, all[0].ID)
	assert.Equal(t, second.ID, all[1].ID)

	completed, err := svc.List(ctx, 1, models.StatusCompleted)
	require.NoError(t, err)
	require.Len(t, completed, 1)
	assert.Equal(t, second.ID, completed[0].ID)

	// статус - открытый enum: фильтр по произвольной строке просто пуст
	frozen, err := svc.List(ctx, 1, "frozen")
	require.NoError(t, err)
	assert.Empty(t, frozen)
}

// TestTaskService_Update_Partial - частичное обновление меняет только
// переданные поля, created_at не трогает, updated_at обновляет
func TestTaskService_Update_Partial(t *testing.T) {
	ctx := context.Background()
	svc := service.NewTaskService(inmemory.NewTaskStorage())

	created, err := svc.Create(ctx, 1, "buy milk")
	require.NoError(t, err)

	updated, err := svc.Update(ctx, 1, created.ID, service.WithStatus(models.StatusCompleted))
	require.NoError(t, err)

	assert.Equal(t, "buy milk", updated.Description)
	assert.Equal(t, models.StatusCompleted, updated.Status)
	assert.Equal(t, created.CreatedAt, updated.CreatedAt)
	require.NotNil(t, updated.UpdatedAt)
	assert.False(t, updated.UpdatedAt.Before(created.CreatedAt))
}

func TestTaskService_Update_Validation(t *testing.T) {
	ctx := context.Background()
	svc := service.NewTaskService(inmemory.NewTaskStorage())

	created, err := svc.Create(ctx, 1, "buy milk")
	require.NoError(t, err)

	_, err = svc.Update(ctx, 1, created.ID, service.WithDescription("  "))
	var businessErr *service.BusinessError
	require.ErrorAs(t, err, &businessErr)
	assert.Equal(t, "VALIDATION_ERROR", businessErr.Code)
}

// TestTaskService_Update_OwnershipScoping - чужая задача по её id
// выглядит как несуществующая, а не как запрещённая
func TestTaskService_Update_OwnershipScoping(t *testing.T) {
	ctx := context.Background()
	svc := service.NewTaskService(inmemory.NewTaskStorage())

	aliceTask, err := svc.Create(ctx, 1, "alice's task")
	require.NoError(t, err)

	_, err = svc.Update(ctx, 2, aliceTask.ID, service.WithStatus(models.StatusCompleted))
	var businessErr *service.BusinessError
	require.ErrorAs(t, err, &businessErr)
	assert.Equal(t, "NOT_FOUND", businessErr.Code)

	// задача владельца не изменилась
	kept, err := svc.List(ctx, 1, "")
	require.NoError(t, err)
	require.Len(t, kept, 1)
	assert.Equal(t, models.StatusPending, kept[0].Status)
}

func TestTaskService_Update_NotFound(t *testing.T) {
	svc := service.NewTaskService(inmemory.NewTaskStorage())

	_, err := svc.Update(context.Background(), 1, 12345, service.WithStatus(models.StatusCompleted))
	var businessErr *service.BusinessError
	require.ErrorAs(t, err, &businessErr)
	assert.Equal(t, "NOT_FOUND", businessErr.Code)
}

func TestNoteService_CreateAndList(t *testing.T) {
	ctx := context.Background()
	svc := service.NewNoteService(inmemory.NewNoteStorage())

	_, err := svc.Create(ctx, 1, "")
	var businessErr *service.BusinessError
	require.ErrorAs(t, err, &businessErr)
	assert.Equal(t, "VALIDATION_ERROR", businessErr.Code)

	first, err := svc.Create(ctx, 1, "first note")
	require.NoError(t, err)
	second, err := svc.Create(ctx, 1, "second note")
	require.NoError(t, err)

	notes, err := svc.List(ctx, 1)
	require.NoError(t, err)
	require.Len(t, notes, 2)
	assert.Equal(t, first.ID, notes[0].ID)
	assert.Equal(t, second.ID, notes[1].ID)
}

// TestNoteService_Void - аннулирование идемпотентно, аннулированные
// заметки исчезают из выдачи навсегда
func TestNoteService_Void(t *testing.T) {
	ctx := context.Background()
	svc := service.NewNoteService(inmemory.NewNoteStorage())

	keep, err := svc.Create(ctx, 1, "keep me")
	require.NoError(t, err)
	gone, err := svc.Create(ctx, 1, "void me")
	require.NoError(t, err)

	require.NoError(t, svc.Void(ctx, 1, gone.ID))
	// повторное аннулирование - no-op, не ошибка
	require.NoError(t, svc.Void(ctx, 1, gone.ID))

	notes, err := svc.List(ctx, 1)
	require.NoError(t, err)
	require.Len(t, notes, 1)
	assert.Equal(t, keep.ID, notes[0].ID)
}

func TestNoteService_Void_OwnershipScoping(t *testing.T) {
	ctx := context.Background()
	svc := service.NewNoteService(inmemory.NewNoteStorage())

	aliceNote, err := svc.Create(ctx, 1, "alice's note")
	require.NoError(t, err)

	err = svc.Void(ctx, 2, aliceNote.ID)
	var businessErr *service.BusinessError
	require.ErrorAs(t, err, &businessErr)
	assert.Equal(t, "NOT_FOUND", businessErr.Code)

	notes, err := svc.List(ctx, 1)
	require.NoError(t, err)
	require.Len(t, notes, 1, "заметка владельца должна остаться живой")
}
