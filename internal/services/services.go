// Package services defines the collaborator contracts the editor depends on.
package services

import (
	"context"

	"github.com/jonathan/portfolio-builder/internal/parsing"
	"github.com/jonathan/portfolio-builder/internal/types"
)

// PortfolioService fetches the current user's raw portfolio record.
// A *NotFoundError means the user has no portfolio yet.
type PortfolioService interface {
	GetPortfolio(ctx context.Context) (parsing.Value, error)
}

// TemplateService resolves template presentation defaults
type TemplateService interface {
	GetTemplate(ctx context.Context, key string) (*types.TemplateDefinition, error)
	ListTemplates(ctx context.Context) ([]types.TemplateDefinition, error)
}

// DraftService persists and publishes drafts
type DraftService interface {
	CreateDraft(ctx context.Context, payload *types.DraftPayload) (*types.Draft, error)
	UpdateDraft(ctx context.Context, id string, payload *types.DraftPayload) (*types.Draft, error)
	PublishDraft(ctx context.Context, id string) (*types.PublishResult, error)
}
