package db

import (
	"context"
	"encoding/json"
	"errors"
	"fmt"
	"strings"

	"github.com/google/uuid"
	"github.com/jackc/pgx/v5"
	"github.com/oklog/ulid/v2"

	"github.com/jonathan/portfolio-builder/internal/export"
	"github.com/jonathan/portfolio-builder/internal/services"
	"github.com/jonathan/portfolio-builder/internal/types"
)

var _ services.DraftService = (*Store)(nil)

const draftColumns = `id, title, template_key, data, theme_overrides, status, COALESCE(slug, ''), created_at, updated_at`

// CreateDraft inserts a new draft owned by the store's user
func (s *Store) CreateDraft(ctx context.Context, payload *types.DraftPayload) (*types.Draft, error) {
	data, theme, err := encodePayload(payload)
	if err != nil {
		return nil, err
	}

	row := s.db.pool.QueryRow(ctx,
		`INSERT INTO drafts (user_id, title, template_key, data, theme_overrides)
		 VALUES ($1, $2, $3, $4, $5)
		 RETURNING `+draftColumns,
		s.userID, payload.Title, payload.TemplateKey, data, theme,
	)
	draft, err := scanDraft(row)
	if err != nil {
		return nil, fmt.Errorf("failed to create draft: %w", err)
	}
	return draft, nil
}

// UpdateDraft replaces the content of an existing draft
func (s *Store) UpdateDraft(ctx context.Context, id string, payload *types.DraftPayload) (*types.Draft, error) {
	draftID, err := uuid.Parse(id)
	if err != nil {
		return nil, &services.NotFoundError{Resource: "draft", ID: id}
	}
	data, theme, err := encodePayload(payload)
	if err != nil {
		return nil, err
	}

	row := s.db.pool.QueryRow(ctx,
		`UPDATE drafts
		 SET title = $3, template_key = $4, data = $5, theme_overrides = $6, updated_at = NOW()
		 WHERE id = $1 AND user_id = $2
		 RETURNING `+draftColumns,
		draftID, s.userID, payload.Title, payload.TemplateKey, data, theme,
	)
	draft, err := scanDraft(row)
	if err != nil {
		if errors.Is(err, pgx.ErrNoRows) {
			return nil, &services.NotFoundError{Resource: "draft", ID: id}
		}
		return nil, fmt.Errorf("failed to update draft %s: %w", id, err)
	}
	return draft, nil
}

// GetDraft retrieves a draft by id
func (s *Store) GetDraft(ctx context.Context, id string) (*types.Draft, error) {
	draftID, err := uuid.Parse(id)
	if err != nil {
		return nil, &services.NotFoundError{Resource: "draft", ID: id}
	}

	row := s.db.pool.QueryRow(ctx,
		`SELECT `+draftColumns+` FROM drafts WHERE id = $1 AND user_id = $2`,
		draftID, s.userID,
	)
	draft, err := scanDraft(row)
	if err != nil {
		if errors.Is(err, pgx.ErrNoRows) {
			return nil, &services.NotFoundError{Resource: "draft", ID: id}
		}
		return nil, fmt.Errorf("failed to get draft %s: %w", id, err)
	}
	return draft, nil
}

// PublishDraft marks a draft published. The slug is assigned on first publish and
// kept on later ones so public links stay stable.
func (s *Store) PublishDraft(ctx context.Context, id string) (*types.PublishResult, error) {
	draft, err := s.GetDraft(ctx, id)
	if err != nil {
		return nil, err
	}

	slug := draft.Slug
	if slug == "" {
		slug = NewSlug(draft.Title)
	}

	var result types.PublishResult
	err = s.db.pool.QueryRow(ctx,
		`UPDATE drafts
		 SET status = $3, slug = COALESCE(slug, $4), published_at = NOW(), updated_at = NOW()
		 WHERE id = $1 AND user_id = $2
		 RETURNING id::text, slug`,
		draft.ID, s.userID, string(types.DraftStatusPublished), slug,
	).Scan(&result.ID, &result.Slug)
	if err != nil {
		return nil, fmt.Errorf("failed to publish draft %s: %w", id, err)
	}
	return &result, nil
}

// NewSlug builds a public slug from the slugified title and a ULID suffix
func NewSlug(title string) string {
	return export.SlugifyFilename(title) + "-" + strings.ToLower(ulid.Make().String())
}

func encodePayload(payload *types.DraftPayload) ([]byte, []byte, error) {
	if payload == nil {
		return nil, nil, fmt.Errorf("draft payload is nil")
	}
	if err := payload.Validate(); err != nil {
		return nil, nil, fmt.Errorf("invalid draft payload: %w", err)
	}
	data, err := json.Marshal(payload.Data)
	if err != nil {
		return nil, nil, fmt.Errorf("failed to marshal draft data: %w", err)
	}
	theme := payload.ThemeOverrides
	if theme == nil {
		theme = types.Theme{}
	}
	themeJSON, err := json.Marshal(theme)
	if err != nil {
		return nil, nil, fmt.Errorf("failed to marshal theme overrides: %w", err)
	}
	return data, themeJSON, nil
}

func scanDraft(row pgx.Row) (*types.Draft, error) {
	var (
		draft     types.Draft
		id        uuid.UUID
		data      []byte
		themeJSON []byte
		status    string
	)
	if err := row.Scan(&id, &draft.Title, &draft.TemplateKey, &data, &themeJSON, &status,
		&draft.Slug, &draft.CreatedAt, &draft.UpdatedAt); err != nil {
		return nil, err
	}
	draft.ID = id.String()
	draft.Status = types.DraftStatus(status)
	if err := json.Unmarshal(data, &draft.Data); err != nil {
		return nil, fmt.Errorf("failed to unmarshal draft data: %w", err)
	}
	if err := json.Unmarshal(themeJSON, &draft.ThemeOverrides); err != nil {
		return nil, fmt.Errorf("failed to unmarshal theme overrides: %w", err)
	}
	return &draft, nil
}
