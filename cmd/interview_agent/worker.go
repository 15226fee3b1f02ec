package main

import (
	"context"
	"fmt"
	"log"
	"os"
	"os/signal"
	"syscall"

	"github.com/spf13/cobra"

	"github.com/calebtran/interview-agent/internal/queue"
	"github.com/calebtran/interview-agent/internal/research"
)

var workerCmd = &cobra.Command{
	Use:   "worker",
	Short: "Start a background research worker",
	Long:  `Start a worker that drains research tasks from Redis. Requires REDIS_URL; the API server and workers share the same queue.`,
	RunE:  runWorker,
}

func init() {
	rootCmd.AddCommand(workerCmd)
}

func runWorker(cmd *cobra.Command, _ []string) error {
	rt, err := buildRuntime(cmd.Context())
	if err != nil {
		return err
	}
	defer rt.close()

	if rt.cfg.RedisURL == "" {
		return fmt.Errorf("REDIS_URL is required for a standalone worker")
	}

	ctx, cancel := context.WithCancel(context.Background())
	stop := make(chan os.Signal, 1)
	signal.Notify(stop, os.Interrupt, syscall.SIGTERM)
	go func() {
		<-stop
		log.Println("Shutting down worker...")
		cancel()
	}()

	runner := research.NewRunner(rt.database, rt.client, rt.schema)
	worker := queue.NewWorker(rt.queue, runner.Handle, rt.cfg.WorkerConcurrency)

	log.Printf("Worker starting with concurrency %d", rt.cfg.WorkerConcurrency)
	return worker.Run(ctx)
}
