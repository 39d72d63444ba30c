package service

import (
	"context"
	"errors"
	"fmt"
	"time"

	"github.com/haneul-jeong/todo-server/internal/auth"
	"github.com/haneul-jeong/todo-server/internal/model"
	"github.com/haneul-jeong/todo-server/internal/repository"
)

// AuthService owns registration and the session-token lifecycle. Each user
// holds at most one active token: login overwrites it, logout clears it.
type AuthService struct {
	users  repository.UserRepository
	todos  repository.TodoRepository
	hasher auth.PasswordHasher
}

func NewAuthService(users repository.UserRepository, todos repository.TodoRepository, hasher auth.PasswordHasher) *AuthService {
	return &AuthService{
		users:  users,
		todos:  todos,
		hasher: hasher,
	}
}

// Register creates a credential record and an empty todo list for the user.
// The two writes are not transactional: a failure creating the list leaves
// the user record in place and surfaces as an internal error.
func (s *AuthService) Register(ctx context.Context, username, password string) error {
	if username == "" || password == "" {
		return fmt.Errorf("%w: username and password are required", ErrInvalidInput)
	}

	digest, err := s.hasher.Hash(password)
	if err != nil {
		return fmt.Errorf("failed to hash password: %w", err)
	}

	user := model.User{
		Username:       username,
		PasswordDigest: digest,
		CreatedAt:      time.Now().UnixMilli(),
	}

	if err := s.users.Create(ctx, user); err != nil {
		if errors.Is(err, repository.ErrUserExists) {
			return ErrUserExists
		}
		return fmt.Errorf("failed to create user: %w", err)
	}

	if err := s.todos.CreateList(ctx, username); err != nil {
		return fmt.Errorf("failed to create todo list: %w", err)
	}

	return nil
}

// Login verifies the credentials and issues a fresh session token,
// invalidating any previous one.
func (s *AuthService) Login(ctx context.Context, username, password string) (string, error) {
	user, err := s.users.GetByUsername(ctx, username)
	if err != nil {
		if errors.Is(err, repository.ErrUserNotFound) {
			return "", ErrInvalidCredentials
		}
		return "", fmt.Errorf("failed to look up user: %w", err)
	}

	if !auth.VerifyPassword(password, user.PasswordDigest) {
		return "", ErrInvalidCredentials
	}

	token := auth.NewToken()
	if err := s.users.SetToken(ctx, username, token); err != nil {
		return "", fmt.Errorf("failed to store token: %w", err)
	}

	return token, nil
}

// Verify resolves a bearer token to its user record.
func (s *AuthService) Verify(ctx context.Context, token string) (model.User, error) {
	user, err := s.users.GetByToken(ctx, token)
	if err != nil {
		if errors.Is(err, repository.ErrUserNotFound) {
			return model.User{}, ErrUnauthorized
		}
		return model.User{}, fmt.Errorf("failed to resolve token: %w", err)
	}
	return user, nil
}

// Logout revokes the session holding the token. Unknown tokens are not an
// error: logout is idempotent from the caller's perspective.
func (s *AuthService) Logout(ctx context.Context, token string) error {
	if token == "" {
		return nil
	}

	user, err := s.users.GetByToken(ctx, token)
	if err != nil {
		if errors.Is(err, repository.ErrUserNotFound) {
			return nil
		}
		return fmt.Errorf("failed to resolve token: %w", err)
	}

	if err := s.users.SetToken(ctx, user.Username, ""); err != nil {
		return fmt.Errorf("failed to clear token: %w", err)
	}
	return nil
}
