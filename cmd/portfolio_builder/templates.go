package main

import (
	"github.com/spf13/cobra"

	"github.com/jonathan/portfolio-builder/internal/catalog"
	"github.com/jonathan/portfolio-builder/internal/observability"
	"github.com/jonathan/portfolio-builder/internal/services"
)

var templatesCmd = &cobra.Command{
	Use:   "templates",
	Short: "List the available templates",
	Long:  "Lists templates from the configured backend, falling back to the built-in catalog when no backend is configured.",
	RunE:  runTemplates,
}

func init() {
	rootCmd.AddCommand(templatesCmd)
}

func runTemplates(cmd *cobra.Command, _ []string) error {
	ctx := commandContext(cmd)
	cfg, err := loadConfig()
	if err != nil {
		return err
	}

	var templates services.TemplateService = catalog.Builtin()
	if cfg.RequireBackend() == nil {
		logger, err := newLogger(cfg)
		if err != nil {
			return err
		}
		defer func() { _ = logger.Sync() }()
		be, err := openBackend(ctx, cfg, logger)
		if err != nil {
			return err
		}
		defer be.close()
		templates = be.templates
	}

	list, err := templates.ListTemplates(ctx)
	if err != nil {
		return err
	}
	observability.NewPrinter(cmd.OutOrStdout()).PrintTemplates(list)
	return nil
}
