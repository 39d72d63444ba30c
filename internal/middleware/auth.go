package middleware

import (
	"context"
	"encoding/json"
	"errors"
	"log/slog"
	"net/http"
	"strings"

	"github.com/haneul-jeong/todo-server/internal/model"
	"github.com/haneul-jeong/todo-server/internal/service"
)

// TokenResolver resolves a bearer token to the user record holding it.
// Implementations must return service.ErrUnauthorized (or a wrapped form)
// when no record holds the token. *service.AuthService satisfies this.
type TokenResolver interface {
	Verify(ctx context.Context, token string) (model.User, error)
}

// BearerToken extracts the token from an "Authorization: Bearer <token>"
// header. Returns empty if the header is absent or not in bearer form.
func BearerToken(r *http.Request) string {
	header := r.Header.Get("Authorization")
	if !strings.HasPrefix(header, "Bearer ") {
		return ""
	}
	return strings.TrimPrefix(header, "Bearer ")
}

// RequireAuth guards protected endpoints. A missing token yields 401 before
// the handler runs; an unresolvable one likewise. On success the resolved
// username is placed in the request context.
func RequireAuth(resolver TokenResolver) func(http.Handler) http.Handler {
	return func(next http.Handler) http.Handler {
		return http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
			token := BearerToken(r)
			if token == "" {
				writeAuthError(w, "authentication token required")
				return
			}

			user, err := resolver.Verify(r.Context(), token)
			if err != nil {
				if !errors.Is(err, service.ErrUnauthorized) {
					slog.ErrorContext(r.Context(), "token resolution failed", "error", err)
				}
				writeAuthError(w, "unauthorized")
				return
			}

			ctx := SetUsername(r.Context(), user.Username)
			next.ServeHTTP(w, r.WithContext(ctx))
		})
	}
}

func writeAuthError(w http.ResponseWriter, message string) {
	w.Header().Set("Content-Type", "application/json")
	w.WriteHeader(http.StatusUnauthorized)
	if err := json.NewEncoder(w).Encode(map[string]string{"error": message}); err != nil {
		slog.Error("failed to write auth error", "error", err)
	}
}
