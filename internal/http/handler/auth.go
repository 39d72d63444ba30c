package handler

import (
	"encoding/json"
	"errors"
	"io"
	"log/slog"
	"net/http"
	"strings"

	"github.com/haneul-jeong/todo-server/internal/middleware"
	"github.com/haneul-jeong/todo-server/internal/service"
)

const maxAuthBodySize = 1 << 20 // 1 MB

// AuthHandler serves /api/auth/*: register, login, logout and token
// verification.
type AuthHandler struct {
	svc *service.AuthService
}

func NewAuthHandler(svc *service.AuthService) *AuthHandler {
	return &AuthHandler{svc: svc}
}

func (h *AuthHandler) ServeHTTP(w http.ResponseWriter, r *http.Request) {
	path := strings.TrimPrefix(r.URL.Path, "/api/auth/")
	path = strings.TrimRight(path, "/")

	switch path {
	case "verify":
		h.requireMethod(w, r, http.MethodGet, h.handleVerify)
	case "register":
		h.requireMethod(w, r, http.MethodPost, h.handleRegister)
	case "login":
		h.requireMethod(w, r, http.MethodPost, h.handleLogin)
	case "logout":
		h.requireMethod(w, r, http.MethodPost, h.handleLogout)
	default:
		WriteError(w, http.StatusNotFound, "endpoint not found")
	}
}

func (h *AuthHandler) requireMethod(w http.ResponseWriter, r *http.Request, method string, next func(http.ResponseWriter, *http.Request)) {
	if r.Method != method {
		WriteError(w, http.StatusMethodNotAllowed, "method not allowed")
		return
	}
	r.Body = http.MaxBytesReader(w, r.Body, maxAuthBodySize)
	next(w, r)
}

type credentialsRequest struct {
	Username string `json:"username"`
	Password string `json:"password"`
}

// handleVerify reports which user the presented token belongs to. The token
// is optional at the routing level; an absent or stale one is simply 401.
func (h *AuthHandler) handleVerify(w http.ResponseWriter, r *http.Request) {
	user, err := h.svc.Verify(r.Context(), middleware.BearerToken(r))
	if err != nil {
		WriteError(w, http.StatusUnauthorized, "unauthorized")
		return
	}

	WriteJSON(w, http.StatusOK, map[string]string{"username": user.Username})
}

func (h *AuthHandler) handleRegister(w http.ResponseWriter, r *http.Request) {
	body, err := io.ReadAll(r.Body)
	if err != nil {
		WriteError(w, http.StatusBadRequest, "failed to read request body")
		return
	}
	if len(strings.TrimSpace(string(body))) == 0 {
		WriteError(w, http.StatusBadRequest, "request body is empty")
		return
	}

	var req credentialsRequest
	if err := json.Unmarshal(body, &req); err != nil {
		WriteErrorDetails(w, http.StatusBadRequest, "invalid JSON", err.Error())
		return
	}

	if err := h.svc.Register(r.Context(), req.Username, req.Password); err != nil {
		switch {
		case errors.Is(err, service.ErrInvalidInput):
			WriteError(w, http.StatusBadRequest, "username and password are required")
		case errors.Is(err, service.ErrUserExists):
			WriteError(w, http.StatusBadRequest, "username already exists")
		default:
			slog.ErrorContext(r.Context(), "register failed", "error", err)
			WriteError(w, http.StatusInternalServerError, "internal server error")
		}
		return
	}

	WriteJSON(w, http.StatusCreated, map[string]string{"message": "registration successful"})
}

func (h *AuthHandler) handleLogin(w http.ResponseWriter, r *http.Request) {
	var req credentialsRequest
	if err := json.NewDecoder(r.Body).Decode(&req); err != nil {
		WriteError(w, http.StatusBadRequest, "invalid JSON")
		return
	}

	token, err := h.svc.Login(r.Context(), req.Username, req.Password)
	if err != nil {
		if errors.Is(err, service.ErrInvalidCredentials) {
			WriteError(w, http.StatusUnauthorized, "invalid username or password")
			return
		}
		slog.ErrorContext(r.Context(), "login failed", "error", err)
		WriteError(w, http.StatusInternalServerError, "internal server error")
		return
	}

	WriteJSON(w, http.StatusOK, map[string]string{
		"token":    token,
		"username": req.Username,
	})
}

// handleLogout always reports success: revoking a session that is already
// gone (or failing to persist the revocation) must not surface to the
// client, since logout is idempotent and side-effect-optional.
func (h *AuthHandler) handleLogout(w http.ResponseWriter, r *http.Request) {
	if err := h.svc.Logout(r.Context(), middleware.BearerToken(r)); err != nil {
		slog.ErrorContext(r.Context(), "logout failed", "error", err)
	}

	WriteJSON(w, http.StatusOK, map[string]string{"message": "logged out"})
}
