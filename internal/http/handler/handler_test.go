package handler_test

import (
	"context"
	"net/http"
	"net/http/httptest"

	"github.com/haneul-jeong/todo-server/internal/auth"
	"github.com/haneul-jeong/todo-server/internal/http/handler"
	"github.com/haneul-jeong/todo-server/internal/middleware"
	"github.com/haneul-jeong/todo-server/internal/model"
	"github.com/haneul-jeong/todo-server/internal/repository"
	"github.com/haneul-jeong/todo-server/internal/service"
)

// In-memory repositories for handler tests. Behavior mirrors the real
// backends closely enough to exercise the HTTP layer end to end.

type memUserRepo struct {
	users map[string]model.User
}

func newMemUserRepo() *memUserRepo {
	return &memUserRepo{users: make(map[string]model.User)}
}

func (m *memUserRepo) Create(ctx context.Context, user model.User) error {
	if _, ok := m.users[user.Username]; ok {
		return repository.ErrUserExists
	}
	m.users[user.Username] = user
	return nil
}

func (m *memUserRepo) GetByUsername(ctx context.Context, username string) (model.User, error) {
	user, ok := m.users[username]
	if !ok {
		return model.User{}, repository.ErrUserNotFound
	}
	return user, nil
}

func (m *memUserRepo) GetByToken(ctx context.Context, token string) (model.User, error) {
	if token == "" {
		return model.User{}, repository.ErrUserNotFound
	}
	for _, user := range m.users {
		if user.Token == token {
			return user, nil
		}
	}
	return model.User{}, repository.ErrUserNotFound
}

func (m *memUserRepo) SetToken(ctx context.Context, username, token string) error {
	user, ok := m.users[username]
	if !ok {
		return repository.ErrUserNotFound
	}
	user.Token = token
	m.users[username] = user
	return nil
}

type memTodoRepo struct {
	lists  map[string][]model.Todo
	nextID int64
}

func newMemTodoRepo() *memTodoRepo {
	return &memTodoRepo{lists: make(map[string][]model.Todo)}
}

func (m *memTodoRepo) List(ctx context.Context, username string) ([]model.Todo, error) {
	return m.lists[username], nil
}

func (m *memTodoRepo) CreateList(ctx context.Context, username string) error {
	if _, ok := m.lists[username]; !ok {
		m.lists[username] = []model.Todo{}
	}
	return nil
}

func (m *memTodoRepo) Append(ctx context.Context, username string, todo model.Todo) (model.Todo, error) {
	m.nextID++
	todo.ID = m.nextID
	m.lists[username] = append(m.lists[username], todo)
	return todo, nil
}

func (m *memTodoRepo) Update(ctx context.Context, username string, id int64, patch model.TodoPatch) (model.Todo, error) {
	list := m.lists[username]
	for i := range list {
		if list[i].ID == id {
			patch.Apply(&list[i])
			list[i].UpdatedAt++
			return list[i], nil
		}
	}
	return model.Todo{}, repository.ErrTodoNotFound
}

func (m *memTodoRepo) Delete(ctx context.Context, username string, id int64) error {
	list := m.lists[username]
	for i := range list {
		if list[i].ID == id {
			m.lists[username] = append(list[:i], list[i+1:]...)
			return nil
		}
	}
	return repository.ErrTodoNotFound
}

func (m *memTodoRepo) ClearCompleted(ctx context.Context, username string) (int, error) {
	list := m.lists[username]
	var active []model.Todo
	for _, t := range list {
		if !t.Completed {
			active = append(active, t)
		}
	}
	removed := len(list) - len(active)
	m.lists[username] = active
	return removed, nil
}

func newAuthHandler(users *memUserRepo, todos *memTodoRepo) *handler.AuthHandler {
	svc := service.NewAuthService(users, todos, auth.SHA256Hasher{})
	return handler.NewAuthHandler(svc)
}

func newTodoHandler(todos *memTodoRepo) *handler.TodoHandler {
	return handler.NewTodoHandler(service.NewTodoService(todos))
}

// asUser simulates the auth middleware having resolved the bearer token.
func asUser(req *http.Request, username string) *http.Request {
	return req.WithContext(middleware.SetUsername(req.Context(), username))
}

func do(h http.Handler, req *http.Request) *httptest.ResponseRecorder {
	w := httptest.NewRecorder()
	h.ServeHTTP(w, req)
	return w
}
