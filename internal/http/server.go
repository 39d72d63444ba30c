package http

import (
	"context"
	"fmt"
	"log/slog"
	"net/http"
	"time"

	"github.com/haneul-jeong/todo-server/internal/middleware"
	"github.com/haneul-jeong/todo-server/internal/service"
)

type Server struct {
	httpServer *http.Server
	logger     *slog.Logger
}

func NewServer(port string, logger *slog.Logger, authSvc *service.AuthService, todoSvc *service.TodoService, staticDir string) *Server {
	router := NewRouter(authSvc, todoSvc, staticDir)

	// Middleware chain: recovery -> logging -> CORS -> router
	chain := middleware.Recovery(logger)(middleware.Logging(logger)(middleware.CORS(router)))

	return &Server{
		httpServer: &http.Server{
			Addr:         fmt.Sprintf(":%s", port),
			Handler:      chain,
			ReadTimeout:  10 * time.Second,
			WriteTimeout: 10 * time.Second,
			IdleTimeout:  60 * time.Second,
		},
		logger: logger,
	}
}

func (s *Server) Start() error {
	s.logger.Info("starting server", "addr", s.httpServer.Addr)
	return s.httpServer.ListenAndServe()
}

func (s *Server) Shutdown(ctx context.Context) error {
	s.logger.Info("shutting down server")
	return s.httpServer.Shutdown(ctx)
}
