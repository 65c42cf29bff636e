// Package memory is a process-local RepositoryManager for development runs
// and tests. Data is lost on exit.
package memory

import (
	"context"
	"database/sql"
	"sort"
	"sync"
	"time"

	"github.com/dmitrijs2005/tasklist/internal/common"
	"github.com/dmitrijs2005/tasklist/internal/dbx"
	"github.com/dmitrijs2005/tasklist/internal/server/models"
	"github.com/dmitrijs2005/tasklist/internal/server/repositories/tasks"
	"github.com/dmitrijs2005/tasklist/internal/server/repositories/users"
)

type store struct {
	mu    sync.RWMutex
	users map[string]models.User // by email
	tasks map[string]models.Task // by id
	seq   int64
	now   func() time.Time
}

// Manager implements the repository manager and dbx.Transactor over maps.
// The DBTX handed to Users/Tasks is ignored.
type Manager struct {
	st   *store
	txMu sync.Mutex
}

func NewManager() *Manager {
	return &Manager{st: &store{
		users: make(map[string]models.User),
		tasks: make(map[string]models.Task),
		now:   time.Now,
	}}
}

func (m *Manager) RunMigrations(context.Context, *sql.DB) error { return nil }

func (m *Manager) Users(dbx.DBTX) users.Repository { return &userRepo{st: m.st} }

func (m *Manager) Tasks(dbx.DBTX) tasks.Repository { return &taskRepo{st: m.st} }

// InTx serializes fn against other transactions. Plain repository calls
// are not blocked.
func (m *Manager) InTx(ctx context.Context, fn func(ctx context.Context, tx dbx.DBTX) error) error {
	m.txMu.Lock()
	defer m.txMu.Unlock()
	return fn(ctx, nil)
}

type userRepo struct{ st *store }

func (r *userRepo) Create(_ context.Context, user *models.User) (*models.User, error) {
	r.st.mu.Lock()
	defer r.st.mu.Unlock()

	if _, ok := r.st.users[user.Email]; ok {
		return nil, common.ErrDuplicateEmail
	}
	user.CreatedAt = r.st.now()
	r.st.users[user.Email] = *user
	return user, nil
}

func (r *userRepo) FindByEmail(_ context.Context, email string) (*models.User, error) {
	r.st.mu.RLock()
	defer r.st.mu.RUnlock()

	u, ok := r.st.users[email]
	if !ok {
		return nil, common.ErrorNotFound
	}
	return &u, nil
}

type taskRepo struct{ st *store }

func (r *taskRepo) Create(_ context.Context, task *models.Task) (*models.Task, error) {
	r.st.mu.Lock()
	defer r.st.mu.Unlock()

	// seq breaks ties between tasks created within one clock tick.
	r.st.seq++
	task.CreatedAt = r.st.now().Add(time.Duration(r.st.seq))
	r.st.tasks[task.ID] = *task
	return task, nil
}

func (r *taskRepo) ListByOwner(_ context.Context, ownerID string) ([]*models.Task, error) {
	r.st.mu.RLock()
	defer r.st.mu.RUnlock()

	var result []*models.Task
	for _, t := range r.st.tasks {
		if t.UserID == ownerID {
			t := t
			result = append(result, &t)
		}
	}
	sort.Slice(result, func(i, j int) bool {
		if result[i].CreatedAt.Equal(result[j].CreatedAt) {
			return result[i].ID < result[j].ID
		}
		return result[i].CreatedAt.Before(result[j].CreatedAt)
	})
	return result, nil
}

func (r *taskRepo) FindByIDAndOwner(_ context.Context, taskID, ownerID string) (*models.Task, error) {
	r.st.mu.RLock()
	defer r.st.mu.RUnlock()

	t, ok := r.st.tasks[taskID]
	if !ok || t.UserID != ownerID {
		return nil, common.ErrorNotFound
	}
	return &t, nil
}

func (r *taskRepo) DeleteByID(_ context.Context, taskID string) error {
	r.st.mu.Lock()
	defer r.st.mu.Unlock()

	if _, ok := r.st.tasks[taskID]; !ok {
		return common.ErrorNotFound
	}
	delete(r.st.tasks, taskID)
	return nil
}

func (r *taskRepo) UpdateCompleted(_ context.Context, taskID, ownerID string, completed bool) (*models.Task, error) {
	r.st.mu.Lock()
	defer r.st.mu.Unlock()

	t, ok := r.st.tasks[taskID]
	if !ok || t.UserID != ownerID {
		return nil, common.ErrorNotFound
	}
	t.Completed = completed
	r.st.tasks[taskID] = t
	return &t, nil
}
