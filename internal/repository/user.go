package repository

import (
	"context"

	"github.com/haneul-jeong/todo-server/internal/model"
)

type UserRepository interface {
	// Create stores a new user record. Returns ErrUserExists if the
	// username is already taken (case-sensitive exact match).
	Create(ctx context.Context, user model.User) error

	// GetByUsername returns ErrUserNotFound if the user does not exist.
	GetByUsername(ctx context.Context, username string) (model.User, error)

	// GetByToken resolves an active session token to its user record.
	// Returns ErrUserNotFound if no record holds the token.
	GetByToken(ctx context.Context, token string) (model.User, error)

	// SetToken overwrites the user's active token. An empty token clears
	// the session.
	SetToken(ctx context.Context, username, token string) error
}
