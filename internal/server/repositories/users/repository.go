package users

import (
	"context"

	"github.com/dmitrijs2005/tasklist/internal/server/models"
)

// Repository is the credential store.
type Repository interface {
	// Create inserts user. A taken email yields common.ErrDuplicateEmail.
	Create(ctx context.Context, user *models.User) (*models.User, error)
	// FindByEmail returns common.ErrorNotFound when no user has email.
	FindByEmail(ctx context.Context, email string) (*models.User, error)
}
