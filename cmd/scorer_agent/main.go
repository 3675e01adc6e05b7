// Package main provides the entry point for the transcript scorer CLI and
// HTTP API server.
package main

import (
	"fmt"
	"os"

	"github.com/joho/godotenv"
	"github.com/spf13/cobra"
)

var rootCmd = &cobra.Command{
	Use:   "scorer_agent",
	Short: "Transcript scoring pipeline",
	Long:  "Transcript scorer evaluates spoken-word transcripts against a rubric: deterministic linguistic metrics plus rubric-guided scoring via a generative text service.",
}

func main() {
	// Load .env file if it exists
	_ = godotenv.Load()

	if err := rootCmd.Execute(); err != nil {
		fmt.Fprintf(os.Stderr, "Error: %v\n", err)
		os.Exit(1)
	}
}
