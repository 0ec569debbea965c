package config

import (
	"fmt"
	"os"
	"strconv"
	"time"

	"github.com/go-playground/validator/v10"
	"github.com/joho/godotenv"
	"go.uber.org/zap"
)

// Config holds the server settings. Every field has a working default so the
// viewer runs with no environment at all.
type Config struct {
	StudentsFile   string `validate:"required"`
	CategoryColumn string `validate:"required"`
	Port           string `validate:"required,numeric"`
	RedisAddr      string `validate:"omitempty,hostname_port"`
	RedisPassword  string
	RedisDB        int           `validate:"gte=0,lte=15"`
	SessionTTL     time.Duration `validate:"gt=0"`
	GinMode        string        `validate:"omitempty,oneof=debug release test"`
}

func Default() Config {
	return Config{
		StudentsFile:   "students.csv",
		CategoryColumn: "Class",
		Port:           "8080",
		SessionTTL:     24 * time.Hour,
	}
}

// Load reads an optional .env file, then the process environment.
func Load(logger *zap.Logger, envFiles ...string) (Config, error) {
	if err := godotenv.Load(envFiles...); err != nil {
		logger.Debug("no .env file loaded", zap.Error(err))
	}
	return FromEnv(os.Getenv)
}

// FromEnv builds a Config from getenv and validates it.
func FromEnv(getenv func(string) string) (Config, error) {
	cfg := Default()

	if v := getenv("STUDENTS_FILE"); v != "" {
		cfg.StudentsFile = v
	}
	if v := getenv("CATEGORY_COLUMN"); v != "" {
		cfg.CategoryColumn = v
	}
	if v := getenv("PORT"); v != "" {
		cfg.Port = v
	}
	cfg.RedisAddr = getenv("REDIS_ADDR")
	cfg.RedisPassword = getenv("REDIS_PASSWORD")
	if v := getenv("REDIS_DB"); v != "" {
		db, err := strconv.Atoi(v)
		if err != nil {
			return Config{}, fmt.Errorf("invalid REDIS_DB %q: %w", v, err)
		}
		cfg.RedisDB = db
	}
	if v := getenv("SESSION_TTL"); v != "" {
		ttl, err := time.ParseDuration(v)
		if err != nil {
			return Config{}, fmt.Errorf("invalid SESSION_TTL %q: %w", v, err)
		}
		cfg.SessionTTL = ttl
	}
	cfg.GinMode = getenv("GIN_MODE")

	if err := validator.New().Struct(cfg); err != nil {
		return Config{}, fmt.Errorf("invalid configuration: %w", err)
	}
	return cfg, nil
}

// Addr is the listen address for the HTTP server.
func (c Config) Addr() string { return ":" + c.Port }
