package main

import (
	"context"
	"fmt"

	"github.com/spf13/cobra"
	"go.uber.org/zap"

	"github.com/jonathan/portfolio-builder/internal/editor"
	"github.com/jonathan/portfolio-builder/internal/observability"
	"github.com/jonathan/portfolio-builder/internal/parsing"
	"github.com/jonathan/portfolio-builder/internal/services"
)

// persistFlags are shared by save and publish
type persistFlags struct {
	documentFlags
	draftID  string
	resumeID string
}

var (
	saveFlags    persistFlags
	publishFlags persistFlags
)

var saveCmd = &cobra.Command{
	Use:   "save",
	Short: "Save the portfolio as a draft",
	Long:  "Prefills a draft from the backend portfolio (or --record), applies the title and theme flags and saves it. Without --id a new draft is created.",
	RunE: func(cmd *cobra.Command, _ []string) error {
		return runPersist(cmd, &saveFlags, false)
	},
}

var publishCmd = &cobra.Command{
	Use:   "publish",
	Short: "Save and publish the portfolio",
	Long:  "Saves the draft like the save command, publishes it and prints its public URL.",
	RunE: func(cmd *cobra.Command, _ []string) error {
		return runPersist(cmd, &publishFlags, true)
	},
}

func init() {
	for _, entry := range []struct {
		cmd   *cobra.Command
		flags *persistFlags
	}{{saveCmd, &saveFlags}, {publishCmd, &publishFlags}} {
		cmd, f := entry.cmd, entry.flags
		cmd.Flags().StringVarP(&f.record, "record", "r", "", `Portfolio record JSON to use instead of the backend portfolio, "-" for stdin`)
		cmd.Flags().StringVarP(&f.template, "template", "t", "", "Template key (default from config)")
		cmd.Flags().StringVar(&f.title, "title", "", "Draft title")
		cmd.Flags().StringToStringVar(&f.theme, "theme", nil, "Theme overrides, e.g. --theme --accent=#ff0000")
		cmd.Flags().StringVar(&f.draftID, "id", "", "Existing draft id to update")
		cmd.Flags().StringVar(&f.resumeID, "resume-id", "", "Resume the portfolio was built from")
		rootCmd.AddCommand(cmd)
	}
}

// staticPortfolio serves a record read from a file
type staticPortfolio struct {
	record parsing.Value
}

func (s staticPortfolio) GetPortfolio(context.Context) (parsing.Value, error) {
	return s.record, nil
}

func runPersist(cmd *cobra.Command, f *persistFlags, publish bool) error {
	ctx := commandContext(cmd)
	cfg, err := loadConfig()
	if err != nil {
		return err
	}
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

	var portfolios services.PortfolioService = be.portfolios
	if f.record != "" {
		record, err := readRecord(f.record, cmd.InOrStdin())
		if err != nil {
			return err
		}
		portfolios = staticPortfolio{record: record}
	}

	template := f.template
	if template == "" {
		template = cfg.Template
	}
	title := f.title
	if title == "" {
		title = cfg.Title
	}
	ctrl := editor.New(editor.NavigationContext{
		TemplateKey: template,
		DraftID:     f.draftID,
		ResumeID:    f.resumeID,
	}, editor.Options{
		Portfolios:    portfolios,
		Templates:     be.templates,
		Drafts:        be.drafts,
		Notifier:      editor.NewLogNotifier(logger),
		Logger:        logger,
		PublicBaseURL: cfg.PublicBaseURL,
		Title:         title,
	})

	if err := ctrl.Load(ctx); err != nil {
		return err
	}
	if len(f.theme) > 0 {
		if err := ctrl.Apply(editor.Edit{Theme: f.theme}); err != nil {
			return err
		}
	}
	if printer := verbosePrinter(cfg); printer != nil {
		data := ctrl.Data()
		printer.PrintTemplateData(&data)
	}

	out := cmd.OutOrStdout()
	if !publish {
		draft, err := ctrl.Save(ctx)
		if err != nil {
			return err
		}
		logger.Info("draft saved", zap.String("draft_id", draft.ID), zap.String("location", ctrl.Location()))
		fmt.Fprintln(out, draft.ID)
		return nil
	}

	url, err := ctrl.Publish(ctx)
	if err != nil {
		return err
	}
	observability.NewPrinter(out).PrintPublished(ctrl.Navigation().DraftID, url)
	return nil
}
