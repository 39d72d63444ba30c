package service

import (
	"context"
	"errors"
	"fmt"
	"time"

	"github.com/haneul-jeong/todo-server/internal/model"
	"github.com/haneul-jeong/todo-server/internal/repository"
)

type TodoService struct {
	repo repository.TodoRepository
}

func NewTodoService(repo repository.TodoRepository) *TodoService {
	return &TodoService{repo: repo}
}

func (s *TodoService) List(ctx context.Context, username string) ([]model.Todo, error) {
	list, err := s.repo.List(ctx, username)
	if err != nil {
		return nil, fmt.Errorf("failed to list todos: %w", err)
	}
	if list == nil {
		list = []model.Todo{}
	}
	return list, nil
}

// Add appends a new item to the end of the user's list. Completed defaults
// to false unless the caller set it.
func (s *TodoService) Add(ctx context.Context, username, text string, completed bool) (model.Todo, error) {
	now := time.Now().UnixMilli()
	todo := model.Todo{
		Text:      text,
		Completed: completed,
		CreatedAt: now,
		UpdatedAt: now,
	}

	created, err := s.repo.Append(ctx, username, todo)
	if err != nil {
		return model.Todo{}, fmt.Errorf("failed to add todo: %w", err)
	}
	return created, nil
}

func (s *TodoService) Update(ctx context.Context, username string, id int64, patch model.TodoPatch) (model.Todo, error) {
	updated, err := s.repo.Update(ctx, username, id, patch)
	if err != nil {
		if errors.Is(err, repository.ErrTodoNotFound) {
			return model.Todo{}, ErrNotFound
		}
		return model.Todo{}, fmt.Errorf("failed to update todo: %w", err)
	}
	return updated, nil
}

func (s *TodoService) Delete(ctx context.Context, username string, id int64) error {
	if err := s.repo.Delete(ctx, username, id); err != nil {
		if errors.Is(err, repository.ErrTodoNotFound) {
			return ErrNotFound
		}
		return fmt.Errorf("failed to delete todo: %w", err)
	}
	return nil
}

func (s *TodoService) ClearCompleted(ctx context.Context, username string) (int, error) {
	removed, err := s.repo.ClearCompleted(ctx, username)
	if err != nil {
		return 0, fmt.Errorf("failed to clear completed todos: %w", err)
	}
	return removed, nil
}
