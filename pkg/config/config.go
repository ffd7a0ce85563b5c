// Package config reads process configuration from the environment, with
// optional .env loading for local development.
package config

import (
	"os"
	"strconv"
	"time"

	"github.com/joho/godotenv"
)

// Config is the full process configuration.
type Config struct {
	// GitHubToken authenticates the code-search call. May be empty; the
	// search tool then fails per-call instead of the process crashing.
	GitHubToken string
	// HTTPAddr, when non-empty, serves the streamable HTTP transport
	// instead of stdio.
	HTTPAddr string
	// LogLevel is one of debug, info, warn, error.
	LogLevel string
	// SearchTimeout bounds the outbound code-search call.
	SearchTimeout time.Duration
	// TraceStdout enables the stdout trace exporter.
	TraceStdout bool
}

// Load reads configuration from the environment. A .env file in the
// working directory is merged in first when present.
func Load() Config {
	_ = godotenv.Load()
	return Config{
		GitHubToken:   os.Getenv("GITHUB_TOKEN"),
		HTTPAddr:      os.Getenv("GREYMCP_HTTP_ADDR"),
		LogLevel:      getEnv("GREYMCP_LOG_LEVEL", "info"),
		SearchTimeout: durationMS("GREYMCP_SEARCH_TIMEOUT_MS", 10*time.Second),
		TraceStdout:   boolEnv("GREYMCP_TRACE_STDOUT"),
	}
}

func getEnv(key string, def string) string {
	if v := os.Getenv(key); v != "" {
		return v
	}
	return def
}

func boolEnv(key string) bool {
	v, err := strconv.ParseBool(os.Getenv(key))
	return err == nil && v
}

func durationMS(key string, def time.Duration) time.Duration {
	ms, err := strconv.Atoi(os.Getenv(key))
	if err != nil || ms <= 0 {
		return def
	}
	return time.Duration(ms) * time.Millisecond
}
