package main

import (
	"fmt"
	"os"
	"path/filepath"

	"github.com/spf13/cobra"

	"github.com/jonathan/portfolio-builder/internal/export"
)

var exportFlags documentFlags
var exportDir string

var exportCmd = &cobra.Command{
	Use:   "export",
	Short: "Export a portfolio record as a static site archive",
	Long:  "Renders a portfolio record and packages it as a zip holding a single index.html, named after the title and template.",
	RunE:  runExport,
}

func init() {
	addDocumentFlags(exportCmd, &exportFlags)
	exportCmd.Flags().StringVarP(&exportDir, "dir", "d", ".", "Directory to write the archive to")
	rootCmd.AddCommand(exportCmd)
}

func runExport(cmd *cobra.Command, _ []string) error {
	cfg, err := loadConfig()
	if err != nil {
		return err
	}
	if exportFlags.template == "" {
		exportFlags.template = cfg.Template
	}
	if exportFlags.title == "" {
		exportFlags.title = cfg.Title
	}

	opts, err := exportFlags.options(commandContext(cmd), cmd.InOrStdin())
	if err != nil {
		return err
	}
	archive, err := export.Build(opts)
	if err != nil {
		return err
	}

	path := filepath.Join(exportDir, archive.Filename)
	if err := os.WriteFile(path, archive.Data, 0o644); err != nil {
		return fmt.Errorf("failed to write %s: %w", path, err)
	}
	fmt.Fprintln(cmd.OutOrStdout(), path)

	if printer := verbosePrinter(cfg); printer != nil {
		if manifest, err := export.Inspect(archive.Data); err == nil {
			printer.PrintManifest(manifest)
		}
	}
	return nil
}
