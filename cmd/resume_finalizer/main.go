// Package main provides the entry point for the Resume Finalizer server.
package main

import (
	"fmt"
	"os"

	"github.com/joho/godotenv"
	"github.com/spf13/cobra"
)

var rootCmd = &cobra.Command{
	Use:   "resume_finalizer",
	Short: "Resume Finalizer API server",
	Long:  "Resume Finalizer merges an original and an AI-enhanced resume into a user-curated final document and exports it to PDF and DOCX.",
}

func main() {
	// Load .env file if it exists
	_ = godotenv.Load()

	if err := rootCmd.Execute(); err != nil {
		fmt.Fprintf(os.Stderr, "Error: %v\n", err)
		os.Exit(1)
	}
}
