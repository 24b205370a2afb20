package main

import (
	"fmt"
	"os"
	"time"

	"github.com/spf13/cobra"

	"github.com/jonathan/portfolio-builder/internal/export"
	"github.com/jonathan/portfolio-builder/internal/snapshot"
)

var (
	snapshotFlags   documentFlags
	snapshotOutput  string
	snapshotWidth   int
	snapshotHeight  int
	snapshotTimeout time.Duration
)

var snapshotCmd = &cobra.Command{
	Use:   "snapshot",
	Short: "Capture a PNG preview of a rendered template",
	Long:  "Renders a portfolio record (the built-in sample by default) and screenshots it in headless Chrome, e.g. to produce template gallery previews.",
	RunE:  runSnapshot,
}

func init() {
	addDocumentFlags(snapshotCmd, &snapshotFlags)
	snapshotCmd.Flags().StringVarP(&snapshotOutput, "out", "o", "", "Path to output PNG (default <template>.png)")
	snapshotCmd.Flags().IntVar(&snapshotWidth, "width", snapshot.DefaultWidth, "Viewport width in pixels")
	snapshotCmd.Flags().IntVar(&snapshotHeight, "height", snapshot.DefaultHeight, "Viewport height in pixels")
	snapshotCmd.Flags().DurationVar(&snapshotTimeout, "timeout", snapshot.DefaultTimeout, "Browser time limit")
	rootCmd.AddCommand(snapshotCmd)
}

func runSnapshot(cmd *cobra.Command, _ []string) error {
	cfg, err := loadConfig()
	if err != nil {
		return err
	}
	logger, err := newLogger(cfg)
	if err != nil {
		return err
	}
	defer func() { _ = logger.Sync() }()

	if snapshotFlags.template == "" {
		snapshotFlags.template = cfg.Template
	}
	opts, err := snapshotFlags.options(commandContext(cmd), cmd.InOrStdin())
	if err != nil {
		return err
	}
	html, err := export.Document(opts)
	if err != nil {
		return err
	}

	png, err := snapshot.Capture(commandContext(cmd), html, snapshot.Options{
		Width:   snapshotWidth,
		Height:  snapshotHeight,
		Timeout: snapshotTimeout,
		Logger:  logger,
	})
	if err != nil {
		return err
	}

	out := snapshotOutput
	if out == "" {
		out = opts.TemplateKey + ".png"
	}
	if err := os.WriteFile(out, png, 0o644); err != nil {
		return fmt.Errorf("failed to write %s: %w", out, err)
	}
	fmt.Fprintln(cmd.OutOrStdout(), out)
	return nil
}
