package services

import (
	"context"
	"database/sql"
	"errors"
	"testing"
	"time"

	"github.com/dmitrijs2005/tasklist/internal/dbx"
	"github.com/dmitrijs2005/tasklist/internal/server/auth"
	"github.com/dmitrijs2005/tasklist/internal/server/models"
	"github.com/dmitrijs2005/tasklist/internal/server/repositories/memory"
	"github.com/dmitrijs2005/tasklist/internal/server/repositories/tasks"
	"github.com/dmitrijs2005/tasklist/internal/server/repositories/users"
	"golang.org/x/crypto/bcrypt"
)

var errBoom = errors.New("boom")

func newMemoryServices(t *testing.T) (*UserService, *TaskService, *auth.TokenService) {
	t.Helper()
	m := memory.NewManager()
	tokens := auth.NewTokenService([]byte("test-secret"), time.Hour)
	us := NewUserService(nil, m, auth.NewBcryptHasher(bcrypt.MinCost), tokens)
	ts := NewTaskService(nil, m, m)
	return us, ts, tokens
}

// fakeManager hands out the configured repositories regardless of db.
type fakeManager struct {
	users users.Repository
	tasks tasks.Repository
}

func (f *fakeManager) RunMigrations(context.Context, *sql.DB) error { return nil }
func (f *fakeManager) Users(dbx.DBTX) users.Repository              { return f.users }
func (f *fakeManager) Tasks(dbx.DBTX) tasks.Repository              { return f.tasks }

type fakeUsersRepo struct {
	findOut   *models.User
	findErr   error
	createErr error
	created   []*models.User
}

func (f *fakeUsersRepo) Create(_ context.Context, u *models.User) (*models.User, error) {
	if f.createErr != nil {
		return nil, f.createErr
	}
	f.created = append(f.created, u)
	return u, nil
}

func (f *fakeUsersRepo) FindByEmail(context.Context, string) (*models.User, error) {
	return f.findOut, f.findErr
}

type fakeTasksRepo struct {
	err   error
	calls int
}

func (f *fakeTasksRepo) Create(context.Context, *models.Task) (*models.Task, error) {
	f.calls++
	return nil, f.err
}
func (f *fakeTasksRepo) ListByOwner(context.Context, string) ([]*models.Task, error) {
	f.calls++
	return nil, f.err
}
func (f *fakeTasksRepo) FindByIDAndOwner(context.Context, string, string) (*models.Task, error) {
	f.calls++
	return nil, f.err
}
func (f *fakeTasksRepo) DeleteByID(context.Context, string) error {
	f.calls++
	return f.err
}
func (f *fakeTasksRepo) UpdateCompleted(context.Context, string, string, bool) (*models.Task, error) {
	f.calls++
	return nil, f.err
}

type fakeHasher struct {
	hashErr error
	ok      bool
}

func (f fakeHasher) Hash(p string) (string, error) {
	if f.hashErr != nil {
		return "", f.hashErr
	}
	return "h:" + p, nil
}
func (f fakeHasher) Verify(string, string) bool { return f.ok }

type fakeIssuer struct {
	token string
	err   error
}

func (f fakeIssuer) Issue(string) (string, error) { return f.token, f.err }
