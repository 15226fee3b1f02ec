// Package main provides the entry point for the interview agent: the REST
// API server and the background research worker.
package main

import (
	"fmt"
	"os"

	"github.com/joho/godotenv"
	"github.com/spf13/cobra"
)

var rootCmd = &cobra.Command{
	Use:   "interview_agent",
	Short: "AI-driven interview session orchestrator",
	Long:  "Interview Agent runs simulated, time-budgeted job interviews with AI interviewers, per-stage evaluation, and background company research.",
}

func main() {
	// Load .env file if it exists
	_ = godotenv.Load()

	if err := rootCmd.Execute(); err != nil {
		fmt.Fprintf(os.Stderr, "Error: %v\n", err)
		os.Exit(1)
	}
}
