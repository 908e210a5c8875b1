package main

import (
	"fmt"
	"os"

	"github.com/spf13/cobra"
)

var (
	// Version is the application version (set during build).
	Version = "dev"

	// Commit is the git commit hash (set during build).
	Commit = "unknown"
)

var configFile string

var rootCmd = &cobra.Command{
	Use:   "auto-collection-gen",
	Short: "Generate importable API test collections from an OpenAPI spec",
	Long: `auto-collection-gen discovers HTTP endpoints from an OpenAPI document,
asks an LLM provider to draft a test case per endpoint and assembles the
results into an importable Postman-style collection.`,
}

func init() {
	rootCmd.PersistentFlags().StringVarP(&configFile, "config", "c", "", "config file path")
}

func main() {
	if err := rootCmd.Execute(); err != nil {
		fmt.Fprintf(os.Stderr, "Error: %v\n", err)
		os.Exit(1)
	}
}
