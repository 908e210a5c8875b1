package main

import (
	"context"
	"fmt"
	"net/http"
	"os"
	"os/signal"
	"syscall"
	"time"

	"auto-collection-gen/internal/config"
	"auto-collection-gen/internal/logger"
	"auto-collection-gen/internal/provider"
	"auto-collection-gen/internal/reporter"
	"auto-collection-gen/internal/server"
	"auto-collection-gen/internal/spec"

	"github.com/spf13/cobra"
)

var serveCmd = &cobra.Command{
	Use:   "serve",
	Short: "Start the HTTP server",
	RunE:  runServer,
}

func init() {
	rootCmd.AddCommand(serveCmd)
}

func runServer(cmd *cobra.Command, args []string) error {
	ctx := context.Background()

	cfg, err := config.LoadConfig(configFile)
	if err != nil {
		return fmt.Errorf("failed to load config: %w", err)
	}

	log := logger.NewLogrusLogger(cfg.Log.Level)
	log.Info(ctx, "starting server", map[string]interface{}{
		"version": Version,
		"commit":  Commit,
	})

	llmCfg, err := config.LoadLLMConfig(cfg.LLM.ConfigPath)
	if err != nil {
		return fmt.Errorf("failed to load LLM config: %w", err)
	}

	client, err := provider.NewClient(llmCfg, log)
	if err != nil {
		return fmt.Errorf("failed to create LLM client: %w", err)
	}
	log.Info(ctx, "LLM client initialized", map[string]interface{}{
		"provider": client.Name(),
		"model":    llmCfg.Model,
	})

	loader := spec.NewLoader(cfg.Spec.Source, log)
	writer := reporter.NewWriter(cfg.Output.Dir)
	srv := server.New(loader, client, writer, log)

	addr := fmt.Sprintf("%s:%d", cfg.Server.Host, cfg.Server.Port)
	httpServer := &http.Server{
		Addr:         addr,
		Handler:      srv.Handler(),
		ReadTimeout:  time.Duration(cfg.Server.ReadTimeout) * time.Second,
		WriteTimeout: time.Duration(cfg.Server.WriteTimeout) * time.Second,
	}

	go func() {
		log.Info(ctx, "server listening", map[string]interface{}{
			"address": addr,
		})
		if err := httpServer.ListenAndServe(); err != nil && err != http.ErrServerClosed {
			log.Error(ctx, "server error", map[string]interface{}{
				"error": err.Error(),
			})
		}
	}()

	quit := make(chan os.Signal, 1)
	signal.Notify(quit, syscall.SIGINT, syscall.SIGTERM)
	<-quit

	log.Info(ctx, "shutting down server", nil)
	shutdownCtx, cancel := context.WithTimeout(ctx, 10*time.Second)
	defer cancel()
	if err := httpServer.Shutdown(shutdownCtx); err != nil {
		return fmt.Errorf("failed to shut down server: %w", err)
	}

	log.Info(ctx, "server stopped", nil)
	return nil
}
