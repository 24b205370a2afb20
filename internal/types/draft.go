//nolint:revive // types is a standard Go package name pattern
package types

import (
	"time"

	"github.com/go-playground/validator/v10"
)

// DraftStatus is the publication state of a draft
type DraftStatus string

const (
	DraftStatusDraft     DraftStatus = "draft"
	DraftStatusPublished DraftStatus = "published"
)

// DraftPayload is the body sent when creating or updating a draft
type DraftPayload struct {
	Title          string       `json:"title" validate:"required,max=200"`
	TemplateKey    string       `json:"template_key" validate:"required,max=64,alphanum"`
	Data           TemplateData `json:"data"`
	ThemeOverrides Theme        `json:"theme_overrides" validate:"dive,keys,startswith=--,endkeys,max=200"`
}

// Validate validates the DraftPayload using the validator.
func (p *DraftPayload) Validate() error {
	validate := validator.New()
	return validate.Struct(p)
}

// Draft is a persisted, mutable snapshot of a portfolio
type Draft struct {
	ID             string       `json:"id"`
	Title          string       `json:"title"`
	TemplateKey    string       `json:"template_key"`
	Data           TemplateData `json:"data"`
	ThemeOverrides Theme        `json:"theme_overrides"`
	Status         DraftStatus  `json:"status,omitempty"`
	Slug           string       `json:"slug,omitempty"`
	CreatedAt      time.Time    `json:"created_at,omitzero"`
	UpdatedAt      time.Time    `json:"updated_at,omitzero"`
}

// PublishResult is returned by a publish call
type PublishResult struct {
	ID   string `json:"id"`
	Slug string `json:"slug,omitempty"`
}

// PublicPath returns the public path for a published draft, preferring the slug
func (r *PublishResult) PublicPath() string {
	if r.Slug != "" {
		return "/p/" + r.Slug
	}
	return "/p/" + r.ID
}
