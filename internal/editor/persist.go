package editor

import (
	"context"
	"fmt"
	"maps"

	"go.uber.org/zap"

	"github.com/jonathan/portfolio-builder/internal/schemas"
	"github.com/jonathan/portfolio-builder/internal/types"
)

const (
	opSave    = "save"
	opPublish = "publish"
)

// Save persists the session as a Draft: created when no draft id is bound, updated
// otherwise. The first successful create binds the id to the session location.
func (c *Controller) Save(ctx context.Context) (*types.Draft, error) {
	payload, id, err := c.beginPersist(opSave)
	if err != nil {
		c.notifyFailure(ctx, opSave, MessageSaveFailed, err)
		return nil, err
	}

	draft, err := c.persistDraft(ctx, id, payload)
	c.endPersist(draft)
	if err != nil {
		c.notifyFailure(ctx, opSave, MessageSaveFailed, err)
		return nil, err
	}

	c.notifier.Notify(ctx, Notification{Op: opSave, OK: true, Message: MessageSaved})
	return draft, nil
}

// Publish ensures a Draft exists under the same create-once rule as Save, publishes it
// and returns the public URL built from the returned slug, or the id when no slug is set.
func (c *Controller) Publish(ctx context.Context) (string, error) {
	payload, id, err := c.beginPersist(opPublish)
	if err != nil {
		c.notifyFailure(ctx, opPublish, MessagePublishFailed, err)
		return "", err
	}

	draft, err := c.persistDraft(ctx, id, payload)
	if err != nil {
		c.endPersist(nil)
		c.notifyFailure(ctx, opPublish, MessagePublishFailed, err)
		return "", err
	}
	// bind before publishing so a failed publish still leaves a single draft
	c.endPersistKeepPhase(draft)

	result, err := c.drafts.PublishDraft(ctx, draft.ID)
	if err != nil {
		err = fmt.Errorf("failed to publish draft %s: %w", draft.ID, err)
		c.endPersist(nil)
		c.notifyFailure(ctx, opPublish, MessagePublishFailed, err)
		return "", err
	}
	if result.ID == "" {
		result.ID = draft.ID
	}

	publicURL := c.publicBaseURL + result.PublicPath()
	c.mu.Lock()
	c.publicURL = publicURL
	c.mu.Unlock()
	c.endPersist(nil)

	c.logger.Info("draft published", zap.String("draft_id", result.ID), zap.String("url", publicURL))
	c.notifier.Notify(ctx, Notification{Op: opPublish, OK: true, Message: MessagePublished, URL: publicURL})
	return publicURL, nil
}

// PublicURL returns the URL of the last successful publish
func (c *Controller) PublicURL() string {
	c.mu.Lock()
	defer c.mu.Unlock()
	return c.publicURL
}

// beginPersist enters the Persisting phase and captures the payload and bound draft id
func (c *Controller) beginPersist(op string) (*types.DraftPayload, string, error) {
	c.mu.Lock()
	defer c.mu.Unlock()

	if c.phase == PhasePersisting {
		return nil, "", &StateError{Op: op, Phase: c.phase, Cause: ErrBusy}
	}
	if c.template == nil {
		return nil, "", &StateError{Op: op, Phase: c.phase, Cause: ErrTemplateNotLoaded}
	}
	if c.drafts == nil {
		return nil, "", fmt.Errorf("no draft service configured")
	}

	payload := &types.DraftPayload{
		Title:          c.title,
		TemplateKey:    c.nav.TemplateKey,
		Data:           c.data,
		ThemeOverrides: maps.Clone(c.overrides),
	}
	if err := payload.Validate(); err != nil {
		return nil, "", fmt.Errorf("invalid draft: %w", err)
	}
	if err := schemas.ValidateTemplateData(&payload.Data); err != nil {
		return nil, "", fmt.Errorf("invalid template data: %w", err)
	}

	c.phase = PhasePersisting
	return payload, c.nav.DraftID, nil
}

func (c *Controller) persistDraft(ctx context.Context, id string, payload *types.DraftPayload) (*types.Draft, error) {
	if id == "" {
		draft, err := c.drafts.CreateDraft(ctx, payload)
		if err != nil {
			return nil, fmt.Errorf("failed to create draft: %w", err)
		}
		if draft.ID == "" {
			return nil, fmt.Errorf("failed to create draft: response carried no id")
		}
		c.logger.Info("draft created", zap.String("draft_id", draft.ID))
		return draft, nil
	}

	draft, err := c.drafts.UpdateDraft(ctx, id, payload)
	if err != nil {
		return nil, fmt.Errorf("failed to update draft %s: %w", id, err)
	}
	if draft.ID == "" {
		draft.ID = id
	}
	return draft, nil
}

// endPersist binds a newly created draft id and returns to Editing
func (c *Controller) endPersist(draft *types.Draft) {
	c.mu.Lock()
	defer c.mu.Unlock()
	c.bindLocked(draft)
	c.phase = PhaseEditing
}

func (c *Controller) endPersistKeepPhase(draft *types.Draft) {
	c.mu.Lock()
	defer c.mu.Unlock()
	c.bindLocked(draft)
}

func (c *Controller) bindLocked(draft *types.Draft) {
	if draft != nil && c.nav.DraftID == "" {
		c.nav.DraftID = draft.ID
	}
}

func (c *Controller) notifyFailure(ctx context.Context, op, message string, err error) {
	c.notifier.Notify(ctx, Notification{Op: op, Message: message, Err: err})
}
