// Package services contains server-side business logic. This file implements
// UserService, which handles registration and sign-in.
package services

import (
	"context"
	"errors"
	"fmt"

	"github.com/dmitrijs2005/tasklist/internal/common"
	"github.com/dmitrijs2005/tasklist/internal/dbx"
	"github.com/dmitrijs2005/tasklist/internal/server/auth"
	"github.com/dmitrijs2005/tasklist/internal/server/models"
	"github.com/dmitrijs2005/tasklist/internal/server/repositories/repomanager"
	"github.com/google/uuid"
)

// TokenIssuer mints a session token for an owner id.
type TokenIssuer interface {
	Issue(ownerID string) (string, error)
}

// UserService provides account operations:
//   - Register: create users with a hashed password
//   - Login: verify credentials and mint a token
type UserService struct {
	db          dbx.DBTX
	repomanager repomanager.RepositoryManager
	hasher      auth.PasswordHasher
	tokens      TokenIssuer
}

// NewUserService constructs a UserService. db may be nil for stores that
// ignore it.
func NewUserService(db dbx.DBTX, m repomanager.RepositoryManager, hasher auth.PasswordHasher, tokens TokenIssuer) *UserService {
	return &UserService{
		db:          db,
		repomanager: m,
		hasher:      hasher,
		tokens:      tokens,
	}
}

// Register creates a new user. A taken email yields common.ErrDuplicateEmail
// and leaves the store untouched.
func (s *UserService) Register(ctx context.Context, userName, email, password string) (*models.User, error) {
	repo := s.repomanager.Users(s.db)

	_, err := repo.FindByEmail(ctx, email)
	if err == nil {
		return nil, common.ErrDuplicateEmail
	}
	if !errors.Is(err, common.ErrorNotFound) {
		return nil, fmt.Errorf("error searching user: %w", err)
	}

	digest, err := s.hasher.Hash(password)
	if err != nil {
		if errors.Is(err, common.ErrValidation) {
			return nil, err
		}
		return nil, fmt.Errorf("error hashing password: %w", err)
	}

	user := &models.User{
		ID:           uuid.NewString(),
		UserName:     userName,
		Email:        email,
		PasswordHash: digest,
	}
	u, err := repo.Create(ctx, user)
	if err != nil {
		if errors.Is(err, common.ErrDuplicateEmail) {
			return nil, err
		}
		return nil, fmt.Errorf("error creating user: %w", err)
	}
	return u, nil
}

// Login verifies credentials and returns a signed token. Unknown email and
// wrong password both yield common.ErrorUnauthorized.
func (s *UserService) Login(ctx context.Context, email, password string) (string, error) {
	repo := s.repomanager.Users(s.db)
	user, err := repo.FindByEmail(ctx, email)
	if err != nil {
		if errors.Is(err, common.ErrorNotFound) {
			return "", common.ErrorUnauthorized
		}
		return "", fmt.Errorf("%w: %v", common.ErrorInternal, err)
	}
	if !s.hasher.Verify(password, user.PasswordHash) {
		return "", common.ErrorUnauthorized
	}

	token, err := s.tokens.Issue(user.ID)
	if err != nil {
		return "", fmt.Errorf("%w: %v", common.ErrorInternal, err)
	}
	return token, nil
}
