package server

import (
	"context"
	"fmt"
	"sync"

	"github.com/jonathan/portfolio-builder/internal/parsing"
	"github.com/jonathan/portfolio-builder/internal/services"
	"github.com/jonathan/portfolio-builder/internal/types"
)

const samplePortfolio = `{
	"profile": {"full_name": "Ada Lovelace", "headline": "Analyst"},
	"skills": ["Go", "SQL"]
}`

type stubPortfolios struct {
	doc string
	err error
}

func (s *stubPortfolios) GetPortfolio(context.Context) (parsing.Value, error) {
	if s.err != nil {
		return parsing.Value{}, s.err
	}
	return parsing.Parse([]byte(s.doc))
}

type memoryDrafts struct {
	mu        sync.Mutex
	drafts    map[string]*types.Draft
	published []string
	nextID    int
	err       error
}

func newMemoryDrafts() *memoryDrafts {
	return &memoryDrafts{drafts: make(map[string]*types.Draft)}
}

func (m *memoryDrafts) CreateDraft(_ context.Context, payload *types.DraftPayload) (*types.Draft, error) {
	m.mu.Lock()
	defer m.mu.Unlock()
	if m.err != nil {
		return nil, m.err
	}
	m.nextID++
	draft := &types.Draft{
		ID:             fmt.Sprintf("draft-%d", m.nextID),
		Title:          payload.Title,
		TemplateKey:    payload.TemplateKey,
		Data:           payload.Data,
		ThemeOverrides: payload.ThemeOverrides,
		Status:         types.DraftStatusDraft,
	}
	m.drafts[draft.ID] = draft
	return draft, nil
}

func (m *memoryDrafts) UpdateDraft(_ context.Context, id string, payload *types.DraftPayload) (*types.Draft, error) {
	m.mu.Lock()
	defer m.mu.Unlock()
	if m.err != nil {
		return nil, m.err
	}
	draft, ok := m.drafts[id]
	if !ok {
		return nil, &services.NotFoundError{Resource: "draft", ID: id}
	}
	draft.Title = payload.Title
	draft.Data = payload.Data
	draft.ThemeOverrides = payload.ThemeOverrides
	return draft, nil
}

func (m *memoryDrafts) PublishDraft(_ context.Context, id string) (*types.PublishResult, error) {
	m.mu.Lock()
	defer m.mu.Unlock()
	if m.err != nil {
		return nil, m.err
	}
	draft, ok := m.drafts[id]
	if !ok {
		return nil, &services.NotFoundError{Resource: "draft", ID: id}
	}
	draft.Status = types.DraftStatusPublished
	draft.Slug = "ada"
	m.published = append(m.published, id)
	return &types.PublishResult{ID: id, Slug: draft.Slug}, nil
}

func (m *memoryDrafts) count() int {
	m.mu.Lock()
	defer m.mu.Unlock()
	return len(m.drafts)
}
