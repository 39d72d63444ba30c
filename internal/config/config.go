package config

import (
	"fmt"
	"log/slog"
	"os"
	"strconv"
	"strings"

	"github.com/joho/godotenv"
)

var validBackends = map[string]bool{
	"json": true,
	"bolt": true,
}

var validHashSchemes = map[string]bool{
	"sha256": true,
	"bcrypt": true,
}

type Config struct {
	ServerPort   string
	LogLevel     string
	StoreBackend string // "json" or "bolt"
	DataDir      string // directory holding users-data.json / todos-data.json
	BoltPath     string // database file when StoreBackend is "bolt"
	StaticDir    string // root for static asset serving
	PasswordHash string // digest scheme for new records: "sha256" or "bcrypt"
}

func (c Config) ParseLogLevel() slog.Level {
	switch strings.ToLower(c.LogLevel) {
	case "debug":
		return slog.LevelDebug
	case "warn":
		return slog.LevelWarn
	case "error":
		return slog.LevelError
	default:
		return slog.LevelInfo
	}
}

func (c Config) Validate() error {
	if _, err := strconv.Atoi(c.ServerPort); err != nil {
		return fmt.Errorf("invalid SERVER_PORT %q: %w", c.ServerPort, err)
	}
	if !validBackends[c.StoreBackend] {
		return fmt.Errorf("invalid STORE_BACKEND %q: must be one of json, bolt", c.StoreBackend)
	}
	if !validHashSchemes[c.PasswordHash] {
		return fmt.Errorf("invalid PASSWORD_HASH %q: must be one of sha256, bcrypt", c.PasswordHash)
	}
	if c.StoreBackend == "bolt" && c.BoltPath == "" {
		return fmt.Errorf("BOLT_PATH is required when STORE_BACKEND is bolt")
	}
	return nil
}

// Load reads configuration from the environment, overlaying a .env file if
// one exists in the working directory.
func Load() Config {
	_ = godotenv.Load()

	return Config{
		ServerPort:   envOrDefault("SERVER_PORT", "8000"),
		LogLevel:     envOrDefault("LOG_LEVEL", "info"),
		StoreBackend: envOrDefault("STORE_BACKEND", "json"),
		DataDir:      envOrDefault("DATA_DIR", "."),
		BoltPath:     envOrDefault("BOLT_PATH", "todo.db"),
		StaticDir:    envOrDefault("STATIC_DIR", "."),
		PasswordHash: envOrDefault("PASSWORD_HASH", "sha256"),
	}
}

func envOrDefault(key, defaultVal string) string {
	if v := os.Getenv(key); v != "" {
		return v
	}
	return defaultVal
}
