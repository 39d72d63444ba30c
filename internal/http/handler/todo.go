package handler

import (
	"encoding/json"
	"errors"
	"log/slog"
	"net/http"
	"strconv"
	"strings"

	"github.com/haneul-jeong/todo-server/internal/middleware"
	"github.com/haneul-jeong/todo-server/internal/model"
	"github.com/haneul-jeong/todo-server/internal/service"
)

// TodoHandler serves /api/todos and /api/todos/{id}. It runs behind the auth
// middleware, so the username is always present in the request context.
type TodoHandler struct {
	svc *service.TodoService
}

func NewTodoHandler(svc *service.TodoService) *TodoHandler {
	return &TodoHandler{svc: svc}
}

func (h *TodoHandler) ServeHTTP(w http.ResponseWriter, r *http.Request) {
	path := strings.TrimPrefix(r.URL.Path, "/api/todos")
	path = strings.Trim(path, "/")

	if path == "clear-completed" {
		if r.Method != http.MethodDelete {
			WriteError(w, http.StatusMethodNotAllowed, "method not allowed")
			return
		}
		h.handleClearCompleted(w, r)
		return
	}

	if path != "" {
		id, err := strconv.ParseInt(path, 10, 64)
		if err != nil {
			WriteError(w, http.StatusBadRequest, "invalid todo id")
			return
		}
		switch r.Method {
		case http.MethodPut:
			h.handleUpdate(w, r, id)
		case http.MethodDelete:
			h.handleDelete(w, r, id)
		default:
			WriteError(w, http.StatusMethodNotAllowed, "method not allowed")
		}
		return
	}

	switch r.Method {
	case http.MethodGet:
		h.handleList(w, r)
	case http.MethodPost:
		h.handleCreate(w, r)
	default:
		WriteError(w, http.StatusMethodNotAllowed, "method not allowed")
	}
}

func (h *TodoHandler) handleList(w http.ResponseWriter, r *http.Request) {
	todos, err := h.svc.List(r.Context(), middleware.GetUsername(r))
	if err != nil {
		handleTodoError(w, r, err)
		return
	}

	WriteJSON(w, http.StatusOK, todos)
}

type createTodoRequest struct {
	Text      string `json:"text"`
	Completed bool   `json:"completed"`
}

func (h *TodoHandler) handleCreate(w http.ResponseWriter, r *http.Request) {
	var req createTodoRequest
	if err := json.NewDecoder(r.Body).Decode(&req); err != nil {
		WriteError(w, http.StatusBadRequest, "invalid JSON")
		return
	}

	created, err := h.svc.Add(r.Context(), middleware.GetUsername(r), req.Text, req.Completed)
	if err != nil {
		handleTodoError(w, r, err)
		return
	}

	WriteJSON(w, http.StatusCreated, created)
}

type updateTodoRequest struct {
	Text      *string `json:"text,omitempty"`
	Completed *bool   `json:"completed,omitempty"`
}

func (h *TodoHandler) handleUpdate(w http.ResponseWriter, r *http.Request, id int64) {
	var req updateTodoRequest
	if err := json.NewDecoder(r.Body).Decode(&req); err != nil {
		WriteError(w, http.StatusBadRequest, "invalid JSON")
		return
	}

	patch := model.TodoPatch{
		Text:      req.Text,
		Completed: req.Completed,
	}

	updated, err := h.svc.Update(r.Context(), middleware.GetUsername(r), id, patch)
	if err != nil {
		handleTodoError(w, r, err)
		return
	}

	WriteJSON(w, http.StatusOK, updated)
}

func (h *TodoHandler) handleDelete(w http.ResponseWriter, r *http.Request, id int64) {
	if err := h.svc.Delete(r.Context(), middleware.GetUsername(r), id); err != nil {
		handleTodoError(w, r, err)
		return
	}

	WriteJSON(w, http.StatusOK, map[string]string{"message": "todo deleted"})
}

func (h *TodoHandler) handleClearCompleted(w http.ResponseWriter, r *http.Request) {
	if _, err := h.svc.ClearCompleted(r.Context(), middleware.GetUsername(r)); err != nil {
		handleTodoError(w, r, err)
		return
	}

	WriteJSON(w, http.StatusOK, map[string]string{"message": "completed todos cleared"})
}

func handleTodoError(w http.ResponseWriter, r *http.Request, err error) {
	if errors.Is(err, service.ErrNotFound) {
		WriteError(w, http.StatusNotFound, "todo not found")
		return
	}
	slog.ErrorContext(r.Context(), "todo operation failed", "error", err)
	WriteError(w, http.StatusInternalServerError, "internal server error")
}
