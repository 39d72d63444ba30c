package repository

import (
	"context"
	"sync"

	"github.com/haneul-jeong/todo-server/internal/model"
)

// JSONTodoRepository owns the username → todo-list document. All mutations
// happen under the mutex against the in-memory map and are checkpointed to
// disk before returning, so concurrent requests never lose updates.
type JSONTodoRepository struct {
	mu     sync.Mutex
	path   string
	todos  map[string][]model.Todo
	lastID int64
}

func NewJSONTodo(path string) (*JSONTodoRepository, error) {
	r := &JSONTodoRepository{
		path:  path,
		todos: make(map[string][]model.Todo),
	}
	if err := loadJSONFile(path, &r.todos); err != nil {
		return nil, err
	}
	for _, list := range r.todos {
		for _, t := range list {
			if t.ID > r.lastID {
				r.lastID = t.ID
			}
		}
	}
	return r, nil
}

// nextID returns the current unix millisecond, bumped past the last issued
// ID so two appends within the same millisecond stay distinct. Callers must
// hold the mutex.
func (r *JSONTodoRepository) nextID() int64 {
	id := nowMillis()
	if id <= r.lastID {
		id = r.lastID + 1
	}
	r.lastID = id
	return id
}

func (r *JSONTodoRepository) List(ctx context.Context, username string) ([]model.Todo, error) {
	r.mu.Lock()
	defer r.mu.Unlock()

	list := r.todos[username]
	out := make([]model.Todo, len(list))
	copy(out, list)
	return out, nil
}

func (r *JSONTodoRepository) CreateList(ctx context.Context, username string) error {
	r.mu.Lock()
	defer r.mu.Unlock()

	if _, ok := r.todos[username]; ok {
		return nil
	}
	r.todos[username] = []model.Todo{}

	return saveJSONFile(r.path, r.todos)
}

func (r *JSONTodoRepository) Append(ctx context.Context, username string, todo model.Todo) (model.Todo, error) {
	r.mu.Lock()
	defer r.mu.Unlock()

	todo.ID = r.nextID()
	r.todos[username] = append(r.todos[username], todo)

	if err := saveJSONFile(r.path, r.todos); err != nil {
		return model.Todo{}, err
	}
	return todo, nil
}

func (r *JSONTodoRepository) Update(ctx context.Context, username string, id int64, patch model.TodoPatch) (model.Todo, error) {
	r.mu.Lock()
	defer r.mu.Unlock()

	list := r.todos[username]
	for i := range list {
		if list[i].ID != id {
			continue
		}
		patch.Apply(&list[i])
		list[i].UpdatedAt = nowMillis()

		if err := saveJSONFile(r.path, r.todos); err != nil {
			return model.Todo{}, err
		}
		return list[i], nil
	}
	return model.Todo{}, ErrTodoNotFound
}

func (r *JSONTodoRepository) Delete(ctx context.Context, username string, id int64) error {
	r.mu.Lock()
	defer r.mu.Unlock()

	list := r.todos[username]
	filtered := list[:0:0]
	for _, t := range list {
		if t.ID != id {
			filtered = append(filtered, t)
		}
	}
	if len(filtered) == len(list) {
		return ErrTodoNotFound
	}
	r.todos[username] = filtered

	return saveJSONFile(r.path, r.todos)
}

func (r *JSONTodoRepository) ClearCompleted(ctx context.Context, username string) (int, error) {
	r.mu.Lock()
	defer r.mu.Unlock()

	list := r.todos[username]
	active := list[:0:0]
	for _, t := range list {
		if !t.Completed {
			active = append(active, t)
		}
	}
	removed := len(list) - len(active)
	if removed == 0 {
		return 0, nil
	}
	r.todos[username] = active

	if err := saveJSONFile(r.path, r.todos); err != nil {
		return 0, err
	}
	return removed, nil
}

var _ TodoRepository = (*JSONTodoRepository)(nil)
