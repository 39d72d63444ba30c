package repository

import "errors"

var (
	// ErrUserNotFound indicates no user record matched the lookup.
	ErrUserNotFound = errors.New("user not found")

	// ErrUserExists indicates the username is already taken.
	ErrUserExists = errors.New("user already exists")

	// ErrTodoNotFound indicates no todo with the given ID exists in the
	// user's list.
	ErrTodoNotFound = errors.New("todo not found")
)
