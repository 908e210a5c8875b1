package main

import (
	"encoding/json"
	"fmt"
	"os"

	"auto-collection-gen/internal/config"
	"auto-collection-gen/internal/logger"
	"auto-collection-gen/internal/pipeline"
	"auto-collection-gen/internal/provider"
	"auto-collection-gen/internal/reporter"
	"auto-collection-gen/internal/spec"
	"auto-collection-gen/internal/types"

	"github.com/spf13/cobra"
)

var generateCmd = &cobra.Command{
	Use:   "generate",
	Short: "Generate the collection once and stream progress to stdout",
	RunE:  runGenerate,
}

func init() {
	rootCmd.AddCommand(generateCmd)
}

func runGenerate(cmd *cobra.Command, args []string) error {
	ctx := cmd.Context()

	cfg, err := config.LoadConfig(configFile)
	if err != nil {
		return fmt.Errorf("failed to load config: %w", err)
	}

	log := logger.NewLogrusLogger(cfg.Log.Level)

	llmCfg, err := config.LoadLLMConfig(cfg.LLM.ConfigPath)
	if err != nil {
		return fmt.Errorf("failed to load LLM config: %w", err)
	}

	client, err := provider.NewClient(llmCfg, log)
	if err != nil {
		return fmt.Errorf("failed to create LLM client: %w", err)
	}

	loader := spec.NewLoader(cfg.Spec.Source, log)
	doc, err := loader.Load(ctx)
	if err != nil {
		return fmt.Errorf("failed to load spec: %w", err)
	}

	endpoints, err := spec.Enumerate(doc)
	if err != nil {
		return err
	}
	fmt.Fprintf(os.Stderr, "Found %d endpoints\n", len(endpoints))

	enc := json.NewEncoder(os.Stdout)
	emit := func(ev types.ProgressEvent) error {
		return enc.Encode(ev)
	}

	writer := reporter.NewWriter(cfg.Output.Dir)
	runner := pipeline.NewRunner(client, writer, log)
	return runner.Run(ctx, endpoints, emit)
}
