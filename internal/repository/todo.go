package repository

import (
	"context"

	"github.com/haneul-jeong/todo-server/internal/model"
)

type TodoRepository interface {
	// List returns the user's todos in insertion order. A user with no
	// list yet gets an empty slice, not an error.
	List(ctx context.Context, username string) ([]model.Todo, error)

	// CreateList ensures an empty list exists for the user. Idempotent.
	CreateList(ctx context.Context, username string) error

	// Append assigns an ID and appends the todo to the end of the user's
	// list, returning the stored item. IDs are unix milliseconds with a
	// monotonic floor so two appends in the same millisecond never collide.
	Append(ctx context.Context, username string, todo model.Todo) (model.Todo, error)

	// Update applies the patch to the first todo with the given ID and
	// refreshes its updatedAt. Returns ErrTodoNotFound if no todo matches.
	Update(ctx context.Context, username string, id int64, patch model.TodoPatch) (model.Todo, error)

	// Delete removes the first todo with the given ID. Returns
	// ErrTodoNotFound if no todo matches.
	Delete(ctx context.Context, username string, id int64) error

	// ClearCompleted removes every completed todo, preserving the order of
	// the rest, and returns the number removed. A no-op is still success.
	ClearCompleted(ctx context.Context, username string) (int, error)
}
