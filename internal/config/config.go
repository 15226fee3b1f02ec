// Package config loads application configuration from the environment.
package config

import (
	"fmt"
	"os"
	"strconv"
)

// Config holds the runtime configuration shared by the server and worker.
type Config struct {
	// Port the HTTP server listens on.
	Port string

	// DatabaseURL is the PostgreSQL connection string.
	DatabaseURL string

	// RedisURL is the task queue connection string. Empty switches the
	// server to an in-process queue with an embedded worker.
	RedisURL string

	// GeminiAPIKey enables AI generation. Empty runs in mock mode.
	GeminiAPIKey string

	// SearchAPIKey and SearchEngineID enable web search for company
	// enrichment and discussion scraping. Empty disables search.
	SearchAPIKey   string
	SearchEngineID string

	// UseBrowser enables the headless-browser fallback for pages that
	// render their content client-side.
	UseBrowser bool

	// WorkerConcurrency is the number of concurrent research consumers.
	WorkerConcurrency int
}

// Load reads configuration from environment variables. DATABASE_URL is the
// only hard requirement; everything else degrades gracefully.
func Load() (*Config, error) {
	cfg := &Config{
		Port:              getEnv("PORT", "8000"),
		DatabaseURL:       os.Getenv("DATABASE_URL"),
		RedisURL:          os.Getenv("REDIS_URL"),
		GeminiAPIKey:      os.Getenv("GEMINI_API_KEY"),
		SearchAPIKey:      os.Getenv("SEARCH_API_KEY"),
		SearchEngineID:    os.Getenv("SEARCH_ENGINE_ID"),
		UseBrowser:        os.Getenv("USE_BROWSER") == "true",
		WorkerConcurrency: 2,
	}

	if cfg.DatabaseURL == "" {
		return nil, fmt.Errorf("DATABASE_URL is required but not set")
	}

	if raw := os.Getenv("WORKER_CONCURRENCY"); raw != "" {
		n, err := strconv.Atoi(raw)
		if err != nil || n < 1 {
			return nil, fmt.Errorf("invalid WORKER_CONCURRENCY: %q", raw)
		}
		cfg.WorkerConcurrency = n
	}

	return cfg, nil
}

func getEnv(key, fallback string) string {
	if v := os.Getenv(key); v != "" {
		return v
	}
	return fallback
}
