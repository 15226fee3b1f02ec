package main

import (
	"context"
	"fmt"
	"log"
	"os"

	"github.com/calebtran/interview-agent/internal/config"
	"github.com/calebtran/interview-agent/internal/db"
	"github.com/calebtran/interview-agent/internal/interview"
	"github.com/calebtran/interview-agent/internal/llm"
	"github.com/calebtran/interview-agent/internal/problems"
	"github.com/calebtran/interview-agent/internal/queue"
	"github.com/calebtran/interview-agent/internal/schemas"
	"github.com/calebtran/interview-agent/internal/scraper"
	"github.com/calebtran/interview-agent/internal/strategy"
)

// runtime bundles the collaborators both commands assemble.
type runtime struct {
	cfg      *config.Config
	database *db.DB
	client   llm.Client
	gateway  *llm.Gateway
	queue    queue.Queue
	engine   *interview.Engine
	schema   string
}

// buildRuntime wires the shared dependency graph. The AI client and web
// search are optional; without credentials the gateway serves mock
// responses and enrichment is skipped.
func buildRuntime(ctx context.Context) (*runtime, error) {
	cfg, err := config.Load()
	if err != nil {
		return nil, err
	}

	database, err := db.Connect(ctx, cfg.DatabaseURL)
	if err != nil {
		return nil, fmt.Errorf("failed to connect to database: %w", err)
	}
	if err := database.Migrate(ctx); err != nil {
		database.Close()
		return nil, fmt.Errorf("failed to run migrations: %w", err)
	}

	var client llm.Client
	if cfg.GeminiAPIKey != "" {
		client, err = llm.NewClient(ctx, llm.DefaultGeminiConfig(), cfg.GeminiAPIKey)
		if err != nil {
			database.Close()
			return nil, fmt.Errorf("failed to create AI client: %w", err)
		}
	} else {
		log.Println("[startup] GEMINI_API_KEY not set, serving mock AI responses")
	}
	gateway := llm.NewGateway(client)

	collector, err := scraper.New(ctx, cfg.SearchAPIKey, cfg.SearchEngineID,
		scraper.WithBrowserFallback(cfg.UseBrowser))
	if err != nil {
		database.Close()
		return nil, fmt.Errorf("failed to create scraper: %w", err)
	}

	var taskQueue queue.Queue
	if cfg.RedisURL != "" {
		taskQueue, err = queue.NewRedisQueue(ctx, cfg.RedisURL)
		if err != nil {
			database.Close()
			return nil, err
		}
	} else {
		log.Println("[startup] REDIS_URL not set, using in-process task queue")
		taskQueue = queue.NewMemoryQueue(64)
	}

	engine := interview.NewEngine(
		database,
		gateway,
		strategy.NewSelector(problems.NewBank()),
		collector,
		taskQueue,
	)

	return &runtime{
		cfg:      cfg,
		database: database,
		client:   client,
		gateway:  gateway,
		queue:    taskQueue,
		engine:   engine,
		schema:   loadResearchSchema(),
	}, nil
}

// loadResearchSchema reads the research result schema. Missing schema just
// disables validation; the worker logs and carries on.
func loadResearchSchema() string {
	path := schemas.ResolveSchemaPath("schemas/research_result.schema.json")
	if path == "" {
		log.Println("[startup] research schema not found, skipping result validation")
		return ""
	}
	content, err := os.ReadFile(path)
	if err != nil {
		log.Printf("[startup] failed to read research schema: %v", err)
		return ""
	}
	return string(content)
}

func (rt *runtime) close() {
	if rt.queue != nil {
		if err := rt.queue.Close(); err != nil {
			log.Printf("[shutdown] queue close: %v", err)
		}
	}
	if rt.client != nil {
		if err := rt.client.Close(); err != nil {
			log.Printf("[shutdown] AI client close: %v", err)
		}
	}
	rt.database.Close()
}
