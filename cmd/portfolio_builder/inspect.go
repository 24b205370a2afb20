package main

import (
	"fmt"
	"os"

	"github.com/spf13/cobra"

	"github.com/jonathan/portfolio-builder/internal/export"
	"github.com/jonathan/portfolio-builder/internal/observability"
)

var inspectCmd = &cobra.Command{
	Use:   "inspect <archive.zip>",
	Short: "Summarize an exported archive",
	Long:  "Lists the files of an export archive and the title, theme and sections of its index.html.",
	Args:  cobra.ExactArgs(1),
	RunE:  runInspect,
}

func init() {
	rootCmd.AddCommand(inspectCmd)
}

func runInspect(cmd *cobra.Command, args []string) error {
	data, err := os.ReadFile(args[0])
	if err != nil {
		return fmt.Errorf("failed to read archive: %w", err)
	}
	manifest, err := export.Inspect(data)
	if err != nil {
		return err
	}
	observability.NewPrinter(cmd.OutOrStdout()).PrintManifest(manifest)
	return nil
}
