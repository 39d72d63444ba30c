package http

import (
	"net/http"

	"github.com/haneul-jeong/todo-server/internal/http/handler"
	"github.com/haneul-jeong/todo-server/internal/middleware"
	"github.com/haneul-jeong/todo-server/internal/service"
)

// NewRouter wires the API routes. Todo routes sit behind the bearer-token
// middleware; auth routes handle their own (optional) tokens; anything else
// falls through to static file serving.
func NewRouter(authSvc *service.AuthService, todoSvc *service.TodoService, staticDir string) http.Handler {
	mux := http.NewServeMux()

	mux.Handle("/health", handler.NewHealthHandler())

	mux.Handle("/api/auth/", handler.NewAuthHandler(authSvc))

	requireAuth := middleware.RequireAuth(authSvc)
	todoHandler := handler.NewTodoHandler(todoSvc)
	mux.Handle("/api/todos", requireAuth(todoHandler))
	mux.Handle("/api/todos/", requireAuth(todoHandler))

	mux.Handle("/", handler.NewStaticHandler(staticDir))

	return mux
}
