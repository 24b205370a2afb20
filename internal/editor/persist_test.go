package editor

import (
	"context"
	"errors"
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func loadedHarness(t *testing.T, nav NavigationContext) *harness {
	t.Helper()
	h := newHarness(t, nav, portfolioJSON(samplePortfolio))
	require.NoError(t, h.ctrl.Load(context.Background()))
	return h
}

func TestSave_CreatesOnceThenUpdates(t *testing.T) {
	h := loadedHarness(t, NavigationContext{TemplateKey: "classic", ResumeID: "r1"})
	ctx := context.Background()

	draft, err := h.ctrl.Save(ctx)
	require.NoError(t, err)
	assert.Equal(t, "draft-1", draft.ID)
	assert.Equal(t, "/editor?template=classic&id=draft-1&resumeId=r1", h.ctrl.Location())
	assert.Equal(t, PhaseEditing, h.ctrl.Phase())

	_, err = h.ctrl.Save(ctx)
	require.NoError(t, err)

	created, updated, _ := h.drafts.counts()
	assert.Equal(t, 1, created)
	assert.Equal(t, 1, updated)
	assert.Equal(t, []string{"draft-1"}, h.drafts.updated)

	payload := h.drafts.created[0]
	assert.Equal(t, "My Portfolio", payload.Title)
	assert.Equal(t, "classic", payload.TemplateKey)
	assert.Equal(t, "Ada Lovelace", payload.Data.About.Name)

	notes := h.notifier.all()
	require.Len(t, notes, 2)
	for _, n := range notes {
		assert.True(t, n.OK)
		assert.Equal(t, MessageSaved, n.Message)
	}
}

func TestSave_ExistingDraftUpdates(t *testing.T) {
	h := loadedHarness(t, NavigationContext{DraftID: "existing"})

	_, err := h.ctrl.Save(context.Background())
	require.NoError(t, err)

	created, updated, _ := h.drafts.counts()
	assert.Equal(t, 0, created)
	assert.Equal(t, 1, updated)
	assert.Equal(t, "existing", h.ctrl.Navigation().DraftID)
}

func TestSave_RefusedWhileInFlight(t *testing.T) {
	h := loadedHarness(t, NavigationContext{})
	h.drafts.entered = make(chan struct{})
	h.drafts.release = make(chan struct{})

	done := make(chan error, 1)
	go func() {
		_, err := h.ctrl.Save(context.Background())
		done <- err
	}()
	<-h.drafts.entered

	assert.Equal(t, PhasePersisting, h.ctrl.Phase())
	_, err := h.ctrl.Save(context.Background())
	assert.ErrorIs(t, err, ErrBusy)
	var stateErr *StateError
	require.ErrorAs(t, err, &stateErr)
	assert.Equal(t, PhasePersisting, stateErr.Phase)

	_, err = h.ctrl.Publish(context.Background())
	assert.ErrorIs(t, err, ErrBusy)

	close(h.drafts.release)
	select {
	case err := <-done:
		require.NoError(t, err)
	case <-time.After(5 * time.Second):
		t.Fatal("save did not complete")
	}

	created, _, published := h.drafts.counts()
	assert.Equal(t, 1, created)
	assert.Equal(t, 0, published)
	assert.Equal(t, PhaseEditing, h.ctrl.Phase())
}

func TestSave_FailureNotifiesAndKeepsState(t *testing.T) {
	h := loadedHarness(t, NavigationContext{})
	h.drafts.createErr = errors.New("connection refused")

	_, err := h.ctrl.Save(context.Background())
	require.Error(t, err)
	assert.Contains(t, err.Error(), "connection refused")
	assert.Empty(t, h.ctrl.Navigation().DraftID)
	assert.Equal(t, PhaseEditing, h.ctrl.Phase())
	assert.Equal(t, "Ada Lovelace", h.ctrl.Data().About.Name)

	notes := h.notifier.all()
	require.Len(t, notes, 1)
	assert.False(t, notes[0].OK)
	assert.Equal(t, MessageSaveFailed, notes[0].Message)
}

func TestSave_InvalidPayload(t *testing.T) {
	h := loadedHarness(t, NavigationContext{})
	empty := ""
	require.NoError(t, h.ctrl.Apply(Edit{Title: &empty}))

	_, err := h.ctrl.Save(context.Background())
	require.Error(t, err)
	assert.Contains(t, err.Error(), "invalid draft")

	created, _, _ := h.drafts.counts()
	assert.Equal(t, 0, created)
	assert.Equal(t, PhaseEditing, h.ctrl.Phase())
}

func TestPublish(t *testing.T) {
	tests := []struct {
		name     string
		slug     string
		expected string
	}{
		{"slug wins", "ada-lovelace", "https://example.com/p/ada-lovelace"},
		{"falls back to id", "", "https://example.com/p/draft-1"},
	}
	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			h := loadedHarness(t, NavigationContext{})
			h.drafts.slug = tt.slug

			url, err := h.ctrl.Publish(context.Background())
			require.NoError(t, err)
			assert.Equal(t, tt.expected, url)
			assert.Equal(t, tt.expected, h.ctrl.PublicURL())
			assert.Equal(t, tt.expected, h.ctrl.Snapshot().PublicURL)
			assert.Equal(t, "draft-1", h.ctrl.Navigation().DraftID)

			notes := h.notifier.all()
			require.Len(t, notes, 1)
			assert.Equal(t, MessagePublished, notes[0].Message)
			assert.Equal(t, tt.expected, notes[0].URL)
		})
	}
}

func TestPublish_AfterSaveUpdatesSameDraft(t *testing.T) {
	h := loadedHarness(t, NavigationContext{})
	ctx := context.Background()

	_, err := h.ctrl.Save(ctx)
	require.NoError(t, err)
	_, err = h.ctrl.Publish(ctx)
	require.NoError(t, err)

	created, updated, published := h.drafts.counts()
	assert.Equal(t, 1, created)
	assert.Equal(t, 1, updated)
	assert.Equal(t, 1, published)
	assert.Equal(t, []string{"draft-1"}, h.drafts.published)
}

func TestPublish_FailureKeepsBoundDraft(t *testing.T) {
	h := loadedHarness(t, NavigationContext{})
	h.drafts.publishErr = errors.New("slug taken")
	ctx := context.Background()

	_, err := h.ctrl.Publish(ctx)
	require.Error(t, err)
	assert.Equal(t, "draft-1", h.ctrl.Navigation().DraftID)
	assert.Equal(t, PhaseEditing, h.ctrl.Phase())
	assert.Empty(t, h.ctrl.PublicURL())

	h.drafts.publishErr = nil
	_, err = h.ctrl.Publish(ctx)
	require.NoError(t, err)

	created, updated, published := h.drafts.counts()
	assert.Equal(t, 1, created, "retry must not create a second draft")
	assert.Equal(t, 1, updated)
	assert.Equal(t, 1, published)

	notes := h.notifier.all()
	require.Len(t, notes, 2)
	assert.Equal(t, MessagePublishFailed, notes[0].Message)
	assert.Equal(t, MessagePublished, notes[1].Message)
}
