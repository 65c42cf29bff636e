package services

import (
	"context"
	"fmt"

	"github.com/dmitrijs2005/tasklist/internal/common"
	"github.com/dmitrijs2005/tasklist/internal/dbx"
	"github.com/dmitrijs2005/tasklist/internal/server/models"
	"github.com/dmitrijs2005/tasklist/internal/server/repositories/repomanager"
	"github.com/google/uuid"
)

// TaskService exposes owner-scoped task operations. A task owned by someone
// else is indistinguishable from a missing one.
type TaskService struct {
	db          dbx.DBTX
	tx          dbx.Transactor
	repomanager repomanager.RepositoryManager
}

func NewTaskService(db dbx.DBTX, tx dbx.Transactor, m repomanager.RepositoryManager) *TaskService {
	return &TaskService{db: db, tx: tx, repomanager: m}
}

func (s *TaskService) Create(ctx context.Context, ownerID, title string) (*models.Task, error) {
	task := &models.Task{
		ID:     uuid.NewString(),
		UserID: ownerID,
		Title:  title,
	}
	t, err := s.repomanager.Tasks(s.db).Create(ctx, task)
	if err != nil {
		return nil, fmt.Errorf("error creating task: %w", err)
	}
	return t, nil
}

// List returns the owner's tasks oldest first, or common.ErrorNotFound when
// there are none.
func (s *TaskService) List(ctx context.Context, ownerID string) ([]*models.Task, error) {
	list, err := s.repomanager.Tasks(s.db).ListByOwner(ctx, ownerID)
	if err != nil {
		return nil, fmt.Errorf("error fetching tasks: %w", err)
	}
	if len(list) == 0 {
		return nil, common.ErrorNotFound
	}
	return list, nil
}

// Delete removes the task if it belongs to ownerID.
func (s *TaskService) Delete(ctx context.Context, ownerID, taskID string) error {
	if !validID(taskID) {
		return common.ErrorNotFound
	}
	return s.tx.InTx(ctx, func(ctx context.Context, tx dbx.DBTX) error {
		repo := s.repomanager.Tasks(tx)
		if _, err := repo.FindByIDAndOwner(ctx, taskID, ownerID); err != nil {
			return err
		}
		return repo.DeleteByID(ctx, taskID)
	})
}

// UpdateCompleted sets the completion flag and returns the stored task.
// Repeating the call with the same value is harmless.
func (s *TaskService) UpdateCompleted(ctx context.Context, ownerID, taskID string, completed bool) (*models.Task, error) {
	if !validID(taskID) {
		return nil, common.ErrorNotFound
	}
	return s.repomanager.Tasks(s.db).UpdateCompleted(ctx, taskID, ownerID, completed)
}

// validID reports whether id could name a stored task.
func validID(id string) bool {
	_, err := uuid.Parse(id)
	return err == nil
}
