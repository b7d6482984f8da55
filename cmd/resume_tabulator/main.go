// Package main provides the entry point for the resume tabulator CLI.
package main

import (
	"fmt"
	"os"

	"github.com/joho/godotenv"
	"github.com/spf13/cobra"
)

var rootCmd = &cobra.Command{
	Use:   "resume_tabulator",
	Short: "Resume Tabulator",
	Long: `Resume Tabulator sends a directory of resumes to a resume parsing service and flattens
each parse result into one row of a fixed-schema CSV table (contact details, three degrees,
four most recent jobs and yes/no skill flags).`,
	SilenceUsage: true,
}

func main() {
	// Load .env file if it exists
	_ = godotenv.Load()

	if err := rootCmd.Execute(); err != nil {
		fmt.Fprintf(os.Stderr, "Error: %v\n", err)
		os.Exit(1)
	}
}
