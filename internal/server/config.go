package server

import (
	"os"
	"strconv"
	"time"
)

// Config holds runtime configuration parsed from environment variables.
type Config struct {
	HTTPAddr           string
	DBConnString       string
	JWTSecret          string
	CompletionAPIKey   string
	CompletionEndpoint string
	CompletionModel    string
	ShutdownTimeout    time.Duration
}

// FromEnv builds Config with defaults, overridden by environment variables.
// An empty DB_DSN selects the in-memory user repository.
func FromEnv() Config {
	return Config{
		HTTPAddr:           envOrDefault("HTTP_ADDR", ":8787"),
		DBConnString:       os.Getenv("DB_DSN"),
		JWTSecret:          envOrDefault("JWT_SECRET", "dev-secret-change-me"),
		CompletionAPIKey:   os.Getenv("OPENAI_API_KEY"),
		CompletionEndpoint: os.Getenv("COMPLETION_ENDPOINT"),
		CompletionModel:    os.Getenv("COMPLETION_MODEL"),
		ShutdownTimeout:    envDuration("SHUTDOWN_TIMEOUT_SECONDS", 10*time.Second),
	}
}

func envOrDefault(key, def string) string {
	if v := os.Getenv(key); v != "" {
		return v
	}
	return def
}

func envDuration(key string, def time.Duration) time.Duration {
	if v := os.Getenv(key); v != "" {
		seconds, err := strconv.Atoi(v)
		if err == nil {
			return time.Duration(seconds) * time.Second
		}
	}
	return def
}
