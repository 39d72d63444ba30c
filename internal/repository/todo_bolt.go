package repository

import (
	"context"
	"encoding/json"
	"fmt"
	"sync"

	"go.etcd.io/bbolt"

	"github.com/haneul-jeong/todo-server/internal/model"
)

// BoltTodoRepository stores each user's full list as one JSON array value in
// the todos bucket. The mutex only protects the monotonic ID floor; bolt
// serializes the transactions themselves.
type BoltTodoRepository struct {
	db *bbolt.DB

	mu     sync.Mutex
	lastID int64
}

func NewBoltTodo(db *bbolt.DB) (*BoltTodoRepository, error) {
	r := &BoltTodoRepository{db: db}

	// Seed the ID floor from whatever is already stored.
	err := db.View(func(tx *bbolt.Tx) error {
		return tx.Bucket(bucketTodos).ForEach(func(k, v []byte) error {
			var list []model.Todo
			if err := json.Unmarshal(v, &list); err != nil {
				return fmt.Errorf("failed to unmarshal todos for %s: %w", k, err)
			}
			for _, t := range list {
				if t.ID > r.lastID {
					r.lastID = t.ID
				}
			}
			return nil
		})
	})
	if err != nil {
		return nil, err
	}

	return r, nil
}

func (r *BoltTodoRepository) nextID() int64 {
	r.mu.Lock()
	defer r.mu.Unlock()

	id := nowMillis()
	if id <= r.lastID {
		id = r.lastID + 1
	}
	r.lastID = id
	return id
}

func (r *BoltTodoRepository) readList(tx *bbolt.Tx, username string) ([]model.Todo, error) {
	data := tx.Bucket(bucketTodos).Get([]byte(username))
	if data == nil {
		return nil, nil
	}
	var list []model.Todo
	if err := json.Unmarshal(data, &list); err != nil {
		return nil, fmt.Errorf("failed to unmarshal todos: %w", err)
	}
	return list, nil
}

func (r *BoltTodoRepository) writeList(tx *bbolt.Tx, username string, list []model.Todo) error {
	if list == nil {
		list = []model.Todo{}
	}
	data, err := json.Marshal(list)
	if err != nil {
		return fmt.Errorf("failed to marshal todos: %w", err)
	}
	return tx.Bucket(bucketTodos).Put([]byte(username), data)
}

func (r *BoltTodoRepository) List(ctx context.Context, username string) ([]model.Todo, error) {
	var list []model.Todo

	err := r.db.View(func(tx *bbolt.Tx) error {
		var err error
		list, err = r.readList(tx, username)
		return err
	})
	if err != nil {
		return nil, err
	}

	if list == nil {
		list = []model.Todo{}
	}
	return list, nil
}

func (r *BoltTodoRepository) CreateList(ctx context.Context, username string) error {
	return r.db.Update(func(tx *bbolt.Tx) error {
		if tx.Bucket(bucketTodos).Get([]byte(username)) != nil {
			return nil
		}
		return r.writeList(tx, username, nil)
	})
}

func (r *BoltTodoRepository) Append(ctx context.Context, username string, todo model.Todo) (model.Todo, error) {
	todo.ID = r.nextID()

	err := r.db.Update(func(tx *bbolt.Tx) error {
		list, err := r.readList(tx, username)
		if err != nil {
			return err
		}
		return r.writeList(tx, username, append(list, todo))
	})
	if err != nil {
		return model.Todo{}, err
	}

	return todo, nil
}

func (r *BoltTodoRepository) Update(ctx context.Context, username string, id int64, patch model.TodoPatch) (model.Todo, error) {
	var updated model.Todo

	err := r.db.Update(func(tx *bbolt.Tx) error {
		list, err := r.readList(tx, username)
		if err != nil {
			return err
		}
		for i := range list {
			if list[i].ID != id {
				continue
			}
			patch.Apply(&list[i])
			list[i].UpdatedAt = nowMillis()
			updated = list[i]
			return r.writeList(tx, username, list)
		}
		return ErrTodoNotFound
	})
	if err != nil {
		return model.Todo{}, err
	}

	return updated, nil
}

func (r *BoltTodoRepository) Delete(ctx context.Context, username string, id int64) error {
	return r.db.Update(func(tx *bbolt.Tx) error {
		list, err := r.readList(tx, username)
		if err != nil {
			return err
		}
		filtered := list[:0:0]
		for _, t := range list {
			if t.ID != id {
				filtered = append(filtered, t)
			}
		}
		if len(filtered) == len(list) {
			return ErrTodoNotFound
		}
		return r.writeList(tx, username, filtered)
	})
}

func (r *BoltTodoRepository) ClearCompleted(ctx context.Context, username string) (int, error) {
	var removed int

	err := r.db.Update(func(tx *bbolt.Tx) error {
		list, err := r.readList(tx, username)
		if err != nil {
			return err
		}
		active := list[:0:0]
		for _, t := range list {
			if !t.Completed {
				active = append(active, t)
			}
		}
		removed = len(list) - len(active)
		if removed == 0 {
			return nil
		}
		return r.writeList(tx, username, active)
	})
	if err != nil {
		return 0, err
	}

	return removed, nil
}

var _ TodoRepository = (*BoltTodoRepository)(nil)
