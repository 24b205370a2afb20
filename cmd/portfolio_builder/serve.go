package main

import (
	"context"
	"fmt"

	"github.com/spf13/cobra"

	"github.com/jonathan/portfolio-builder/internal/server"
)

var (
	servePort int
)

var serveCmd = &cobra.Command{
	Use:   "serve",
	Short: "Start the editor session server",
	Long:  `Start an HTTP server that hosts editing sessions: prefill, live edits, preview, save, publish and export.`,
	RunE:  runServe,
}

func init() {
	serveCmd.Flags().IntVar(&servePort, "port", 0, "Port to listen on (default from PORT or 8080)")
	rootCmd.AddCommand(serveCmd)
}

func runServe(_ *cobra.Command, _ []string) error {
	cfg, err := loadConfig()
	if err != nil {
		return err
	}
	if servePort != 0 {
		cfg.Port = servePort
	}
	logger, err := newLogger(cfg)
	if err != nil {
		return err
	}
	defer func() { _ = logger.Sync() }()

	be, err := openBackend(context.Background(), cfg, logger)
	if err != nil {
		return err
	}
	defer be.close()

	srv, err := server.New(server.Config{
		Port:          cfg.Port,
		Portfolios:    be.portfolios,
		Templates:     be.templates,
		Drafts:        be.drafts,
		PublicBaseURL: cfg.PublicBaseURL,
		Title:         cfg.Title,
		Logger:        logger,
	})
	if err != nil {
		return fmt.Errorf("failed to create server: %w", err)
	}

	return srv.Start()
}
