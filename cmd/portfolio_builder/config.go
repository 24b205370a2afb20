package main

import (
	"context"
	"fmt"
	"os"

	"github.com/google/uuid"
	"github.com/spf13/cobra"
	"go.uber.org/zap"

	"github.com/jonathan/portfolio-builder/internal/apiclient"
	"github.com/jonathan/portfolio-builder/internal/catalog"
	"github.com/jonathan/portfolio-builder/internal/config"
	"github.com/jonathan/portfolio-builder/internal/db"
	"github.com/jonathan/portfolio-builder/internal/observability"
	"github.com/jonathan/portfolio-builder/internal/services"
)

// loadConfig merges the environment over the optional config file, then applies
// the global flags.
func loadConfig() (*config.Config, error) {
	env, err := config.FromEnv()
	if err != nil {
		return nil, err
	}

	var file config.Config
	if configPath != "" {
		loaded, err := config.LoadConfig(configPath)
		if err != nil {
			return nil, err
		}
		file = *loaded
	}

	cfg := env.MergeWithDefaults(file)
	if logLevel != "" {
		cfg.LogLevel = logLevel
	}
	cfg.Verbose = cfg.Verbose || file.Verbose || verbose

	if err := cfg.Validate(); err != nil {
		return nil, err
	}
	return &cfg, nil
}

func newLogger(cfg *config.Config) (*zap.Logger, error) {
	logger, err := observability.NewLoggerWithLevel(cfg.LogLevel)
	if err != nil {
		return nil, fmt.Errorf("failed to create logger: %w", err)
	}
	return logger, nil
}

func verbosePrinter(cfg *config.Config) *observability.Printer {
	if !cfg.Verbose {
		return nil
	}
	return observability.NewPrinter(os.Stderr)
}

// backend bundles the collaborator services of the configured backend
type backend struct {
	portfolios services.PortfolioService
	templates  services.TemplateService
	drafts     services.DraftService
	close      func()
}

// openBackend connects to the portfolio API or to PostgreSQL. Templates missing
// from the API are served from the built-in catalog.
func openBackend(ctx context.Context, cfg *config.Config, logger *zap.Logger) (*backend, error) {
	if err := cfg.RequireBackend(); err != nil {
		return nil, err
	}

	switch cfg.Backend {
	case config.BackendPostgres:
		userID, err := uuid.Parse(cfg.UserID)
		if err != nil {
			return nil, fmt.Errorf("invalid user_id: %w", err)
		}
		database, err := db.Connect(ctx, cfg.DatabaseURL)
		if err != nil {
			return nil, fmt.Errorf("failed to connect to database: %w", err)
		}
		if err := database.EnsureSchema(ctx); err != nil {
			database.Close()
			return nil, err
		}
		logger.Info("using postgres backend", zap.String("user_id", userID.String()))
		store := database.ForUser(userID)
		return &backend{
			portfolios: store,
			templates:  catalog.Builtin(),
			drafts:     store,
			close:      database.Close,
		}, nil

	default:
		client, err := apiclient.New(cfg.APIBaseURL, apiclient.Options{Token: cfg.APIToken})
		if err != nil {
			return nil, err
		}
		logger.Info("using api backend", zap.String("api_base_url", cfg.APIBaseURL))
		return &backend{
			portfolios: client,
			templates:  catalog.Builtin().Fallback(client),
			drafts:     client,
			close:      func() {},
		}, nil
	}
}

// commandContext returns the command's context, or Background when run outside Execute
func commandContext(cmd *cobra.Command) context.Context {
	if ctx := cmd.Context(); ctx != nil {
		return ctx
	}
	return context.Background()
}
