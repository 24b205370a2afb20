package main

import (
	"fmt"
	"io"
	"os"

	"github.com/spf13/cobra"

	"github.com/jonathan/portfolio-builder/internal/export"
)

var renderFlags documentFlags
var renderOutput string

var renderCmd = &cobra.Command{
	Use:   "render",
	Short: "Render a portfolio record as a standalone HTML page",
	Long:  "Maps a raw portfolio record into template data and renders it with the chosen template, theme defaults and overrides.",
	RunE:  runRender,
}

func init() {
	addDocumentFlags(renderCmd, &renderFlags)
	renderCmd.Flags().StringVarP(&renderOutput, "out", "o", "", "Path to output HTML file (default stdout)")
	rootCmd.AddCommand(renderCmd)
}

// addDocumentFlags registers the record, template, title and theme flags
func addDocumentFlags(cmd *cobra.Command, f *documentFlags) {
	cmd.Flags().StringVarP(&f.record, "record", "r", "", `Path to portfolio record JSON, "-" for stdin (default built-in sample)`)
	cmd.Flags().StringVarP(&f.template, "template", "t", "", "Template key (default classic)")
	cmd.Flags().StringVar(&f.title, "title", "", "Page title (default \""+export.DefaultTitle+"\")")
	cmd.Flags().StringToStringVar(&f.theme, "theme", nil, "Theme overrides, e.g. --theme --accent=#ff0000")
}

func runRender(cmd *cobra.Command, _ []string) error {
	cfg, err := loadConfig()
	if err != nil {
		return err
	}
	if renderFlags.template == "" {
		renderFlags.template = cfg.Template
	}

	opts, err := renderFlags.options(commandContext(cmd), cmd.InOrStdin())
	if err != nil {
		return err
	}
	if printer := verbosePrinter(cfg); printer != nil {
		printer.PrintTemplateData(opts.Data)
	}

	html, err := export.Document(opts)
	if err != nil {
		return err
	}

	if renderOutput == "" {
		_, err = io.WriteString(cmd.OutOrStdout(), html)
		return err
	}
	if err := os.WriteFile(renderOutput, []byte(html), 0o644); err != nil {
		return fmt.Errorf("failed to write %s: %w", renderOutput, err)
	}
	fmt.Fprintf(cmd.ErrOrStderr(), "Wrote %s\n", renderOutput)
	return nil
}
