package tasks

import (
	"context"

	"github.com/dmitrijs2005/tasklist/internal/server/models"
)

// Repository is the task store. Every lookup is scoped by owner; only
// DeleteByID addresses a row by task id alone and must be preceded by a
// scoped lookup.
type Repository interface {
	Create(ctx context.Context, task *models.Task) (*models.Task, error)
	ListByOwner(ctx context.Context, ownerID string) ([]*models.Task, error)
	FindByIDAndOwner(ctx context.Context, taskID, ownerID string) (*models.Task, error)
	DeleteByID(ctx context.Context, taskID string) error
	UpdateCompleted(ctx context.Context, taskID, ownerID string, completed bool) (*models.Task, error)
}
