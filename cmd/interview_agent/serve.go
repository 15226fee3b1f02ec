package main

import (
	"context"
	"fmt"
	"log"

	"github.com/spf13/cobra"

	"github.com/calebtran/interview-agent/internal/config"
	"github.com/calebtran/interview-agent/internal/queue"
	"github.com/calebtran/interview-agent/internal/research"
	"github.com/calebtran/interview-agent/internal/server"
)

var servePort string

var serveCmd = &cobra.Command{
	Use:   "serve",
	Short: "Start the REST API server",
	Long:  `Start the HTTP server exposing session, step, context, and research endpoints. Without REDIS_URL an embedded worker drains research tasks in-process.`,
	RunE:  runServe,
}

func init() {
	serveCmd.Flags().StringVar(&servePort, "port", "", "Port to listen on (overrides PORT)")
	rootCmd.AddCommand(serveCmd)
}

func runServe(cmd *cobra.Command, _ []string) error {
	ctx := cmd.Context()

	rt, err := buildRuntime(ctx)
	if err != nil {
		return err
	}

	jwtConfig, err := config.NewJWTConfig()
	if err != nil {
		rt.close()
		return fmt.Errorf("failed to create JWT config: %w", err)
	}
	passwordConfig, err := config.NewPasswordConfig()
	if err != nil {
		rt.close()
		return fmt.Errorf("failed to create password config: %w", err)
	}

	jwtService := server.NewJWTService(jwtConfig)
	authHandler := server.NewAuthHandler(rt.database, passwordConfig, jwtService)

	// Without Redis the research worker runs inside the server process.
	workerCtx, stopWorker := context.WithCancel(context.Background())
	if rt.cfg.RedisURL == "" {
		runner := research.NewRunner(rt.database, rt.client, rt.schema)
		worker := queue.NewWorker(rt.queue, runner.Handle, rt.cfg.WorkerConcurrency)
		go func() {
			if err := worker.Run(workerCtx); err != nil {
				log.Printf("[worker] stopped: %v", err)
			}
		}()
	}

	port := rt.cfg.Port
	if servePort != "" {
		port = servePort
	}

	srv := server.New(port, rt.database, rt.engine, authHandler, jwtService, func() {
		stopWorker()
		rt.close()
	})
	return srv.Start()
}
