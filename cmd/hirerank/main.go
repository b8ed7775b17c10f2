// Package main provides the entry point for the HireRank fit scoring service.
package main

import (
	"fmt"
	"os"

	"github.com/joho/godotenv"
	"github.com/spf13/cobra"
)

var rootCmd = &cobra.Command{
	Use:   "hirerank",
	Short: "HireRank fit scoring engine",
	Long:  "HireRank ranks a candidate resume against a job, producing a 0-100 fit score with a skill breakdown and rationale, via CLI or REST API.",
}

func main() {
	// Load .env file if it exists
	_ = godotenv.Load()

	if err := rootCmd.Execute(); err != nil {
		fmt.Fprintf(os.Stderr, "Error: %v\n", err)
		os.Exit(1)
	}
}
