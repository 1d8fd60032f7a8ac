package main

import (
	"fmt"

	"github.com/spf13/cobra"

	"github.com/jonathan/equity-insight/internal/config"
	"github.com/jonathan/equity-insight/internal/research"
	"github.com/jonathan/equity-insight/internal/server"
)

var servePort int

var serveCmd = &cobra.Command{
	Use:   "serve",
	Short: "Start the REST API server",
	Long:  `Start an HTTP server that exposes POST /api/reports for generating company reports.`,
	RunE:  runServe,
}

func init() {
	serveCmd.Flags().IntVar(&servePort, "port", 0, "Port to listen on (default $PORT or 8080)")
	rootCmd.AddCommand(serveCmd)
}

func runServe(cmd *cobra.Command, _ []string) error {
	logger := newLogger()
	cfg := config.Load()
	if servePort > 0 {
		cfg.Port = servePort
	}

	svc, err := research.New(cmd.Context(), cfg.APIKey, cfg.LLMConfig(), logger)
	if err != nil {
		return fmt.Errorf("failed to create research service: %w", err)
	}

	srv, err := server.New(server.Config{
		Port:    cfg.Port,
		Fetcher: svc,
		Logger:  logger,
	})
	if err != nil {
		return fmt.Errorf("failed to create server: %w", err)
	}

	return srv.Start()
}
