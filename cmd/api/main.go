package main

import (
	"context"
	"errors"
	"fmt"
	"log/slog"
	"net/http"
	"os"
	"os/signal"
	"path/filepath"
	"syscall"
	"time"

	"github.com/haneul-jeong/todo-server/internal/auth"
	"github.com/haneul-jeong/todo-server/internal/config"
	todohttp "github.com/haneul-jeong/todo-server/internal/http"
	"github.com/haneul-jeong/todo-server/internal/repository"
	"github.com/haneul-jeong/todo-server/internal/service"
)

func main() {
	// Initial logger at info level; reconfigured after config load
	logger := slog.New(slog.NewJSONHandler(os.Stdout, nil))
	slog.SetDefault(logger)

	if err := run(context.Background()); err != nil {
		logger.Error("application failed", "error", err)
		os.Exit(1)
	}
}

func run(ctx context.Context) error {
	cfg := config.Load()
	if err := cfg.Validate(); err != nil {
		return err
	}

	logger := slog.New(slog.NewJSONHandler(os.Stdout, &slog.HandlerOptions{
		Level: cfg.ParseLogLevel(),
	}))
	slog.SetDefault(logger)

	logger.Info("config loaded",
		"port", cfg.ServerPort,
		"backend", cfg.StoreBackend,
		"password_hash", cfg.PasswordHash,
		"log_level", cfg.LogLevel,
	)

	// Repositories
	userRepo, todoRepo, closeStores, err := openStores(cfg)
	if err != nil {
		return err
	}
	defer closeStores()
	logger.Info("stores opened", "backend", cfg.StoreBackend)

	// Password hashing scheme for new registrations
	hasher, err := auth.NewHasher(cfg.PasswordHash)
	if err != nil {
		return err
	}

	// Services
	authSvc := service.NewAuthService(userRepo, todoRepo, hasher)
	todoSvc := service.NewTodoService(todoRepo)

	// HTTP Server
	srv := todohttp.NewServer(cfg.ServerPort, logger, authSvc, todoSvc, cfg.StaticDir)

	ctx, stop := signal.NotifyContext(ctx, os.Interrupt, syscall.SIGTERM)
	defer stop()

	go func() {
		if err := srv.Start(); err != nil && !errors.Is(err, http.ErrServerClosed) {
			logger.Error("server failed", "error", err)
			stop()
		}
	}()

	logger.Info("server starting", "port", cfg.ServerPort)

	<-ctx.Done()
	logger.Info("shutdown signal received")

	shutdownCtx, cancel := context.WithTimeout(context.Background(), 10*time.Second)
	defer cancel()

	if err := srv.Shutdown(shutdownCtx); err != nil {
		return err
	}

	logger.Info("server stopped gracefully")
	return nil
}

// openStores builds the repository pair for the configured backend. The
// returned closer is a no-op for the JSON backend, which holds no open
// handles between checkpoints.
func openStores(cfg config.Config) (repository.UserRepository, repository.TodoRepository, func(), error) {
	switch cfg.StoreBackend {
	case "bolt":
		db, err := repository.OpenBolt(cfg.BoltPath)
		if err != nil {
			return nil, nil, nil, fmt.Errorf("failed to open bolt database: %w", err)
		}
		todoRepo, err := repository.NewBoltTodo(db)
		if err != nil {
			db.Close()
			return nil, nil, nil, fmt.Errorf("failed to open todo store: %w", err)
		}
		return repository.NewBoltUser(db), todoRepo, func() { db.Close() }, nil

	case "json":
		userRepo, err := repository.NewJSONUser(filepath.Join(cfg.DataDir, "users-data.json"))
		if err != nil {
			return nil, nil, nil, fmt.Errorf("failed to open user store: %w", err)
		}
		todoRepo, err := repository.NewJSONTodo(filepath.Join(cfg.DataDir, "todos-data.json"))
		if err != nil {
			return nil, nil, nil, fmt.Errorf("failed to open todo store: %w", err)
		}
		return userRepo, todoRepo, func() {}, nil

	default:
		return nil, nil, nil, fmt.Errorf("unknown store backend %q", cfg.StoreBackend)
	}
}
