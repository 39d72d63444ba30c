package repository

import (
	"context"
	"sync"

	"github.com/haneul-jeong/todo-server/internal/model"
)

// JSONUserRepository keeps the whole user collection in memory, guarded by a
// mutex, and rewrites its JSON document on every mutation. The file is read
// exactly once, at construction.
type JSONUserRepository struct {
	mu    sync.Mutex
	path  string
	users map[string]userRecord
}

func NewJSONUser(path string) (*JSONUserRepository, error) {
	r := &JSONUserRepository{
		path:  path,
		users: make(map[string]userRecord),
	}
	if err := loadJSONFile(path, &r.users); err != nil {
		return nil, err
	}
	return r, nil
}

func (r *JSONUserRepository) Create(ctx context.Context, user model.User) error {
	r.mu.Lock()
	defer r.mu.Unlock()

	if _, ok := r.users[user.Username]; ok {
		return ErrUserExists
	}
	r.users[user.Username] = recordFromUser(user)

	return saveJSONFile(r.path, r.users)
}

func (r *JSONUserRepository) GetByUsername(ctx context.Context, username string) (model.User, error) {
	r.mu.Lock()
	defer r.mu.Unlock()

	rec, ok := r.users[username]
	if !ok {
		return model.User{}, ErrUserNotFound
	}
	return userFromRecord(rec), nil
}

func (r *JSONUserRepository) GetByToken(ctx context.Context, token string) (model.User, error) {
	if token == "" {
		return model.User{}, ErrUserNotFound
	}

	r.mu.Lock()
	defer r.mu.Unlock()

	for _, rec := range r.users {
		if rec.Token != nil && *rec.Token == token {
			return userFromRecord(rec), nil
		}
	}
	return model.User{}, ErrUserNotFound
}

func (r *JSONUserRepository) SetToken(ctx context.Context, username, token string) error {
	r.mu.Lock()
	defer r.mu.Unlock()

	rec, ok := r.users[username]
	if !ok {
		return ErrUserNotFound
	}
	if token == "" {
		rec.Token = nil
	} else {
		rec.Token = &token
	}
	r.users[username] = rec

	return saveJSONFile(r.path, r.users)
}

var _ UserRepository = (*JSONUserRepository)(nil)
