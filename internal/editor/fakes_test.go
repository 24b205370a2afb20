package editor

import (
	"context"
	"sync"

	"github.com/jonathan/portfolio-builder/internal/parsing"
	"github.com/jonathan/portfolio-builder/internal/services"
	"github.com/jonathan/portfolio-builder/internal/types"
)

type fakePortfolios struct {
	mu    sync.Mutex
	calls int
	fetch func(call int) (parsing.Value, error)
}

func (f *fakePortfolios) GetPortfolio(context.Context) (parsing.Value, error) {
	f.mu.Lock()
	f.calls++
	call := f.calls
	f.mu.Unlock()
	return f.fetch(call)
}

func portfolioJSON(doc string) *fakePortfolios {
	return &fakePortfolios{fetch: func(int) (parsing.Value, error) {
		return parsing.Parse([]byte(doc))
	}}
}

type fakeTemplates struct {
	defs map[string]types.TemplateDefinition
	err  error
}

func (f *fakeTemplates) GetTemplate(_ context.Context, key string) (*types.TemplateDefinition, error) {
	if f.err != nil {
		return nil, f.err
	}
	def, ok := f.defs[key]
	if !ok {
		return nil, &services.NotFoundError{Resource: "template", ID: key}
	}
	return &def, nil
}

func (f *fakeTemplates) ListTemplates(context.Context) ([]types.TemplateDefinition, error) {
	list := make([]types.TemplateDefinition, 0, len(f.defs))
	for _, def := range f.defs {
		list = append(list, def)
	}
	return list, nil
}

func defaultTemplates() *fakeTemplates {
	return &fakeTemplates{defs: map[string]types.TemplateDefinition{
		"classic": {Key: "classic", Name: "Classic", DefaultTheme: types.Theme{"--accent": "#6366f1", "--text": "#111"}},
		"modern":  {Key: "modern", Name: "Modern", DefaultTheme: types.Theme{"--accent": "#0ea5e9"}},
	}}
}

type fakeDrafts struct {
	mu        sync.Mutex
	created   []*types.DraftPayload
	updated   []string
	published []string

	slug       string
	createErr  error
	publishErr error
	// entered and release let a test hold CreateDraft in flight
	entered chan struct{}
	release chan struct{}
}

func (f *fakeDrafts) CreateDraft(_ context.Context, payload *types.DraftPayload) (*types.Draft, error) {
	if f.entered != nil {
		f.entered <- struct{}{}
		<-f.release
	}
	f.mu.Lock()
	defer f.mu.Unlock()
	if f.createErr != nil {
		return nil, f.createErr
	}
	f.created = append(f.created, payload)
	return &types.Draft{ID: "draft-1", Title: payload.Title, TemplateKey: payload.TemplateKey}, nil
}

func (f *fakeDrafts) UpdateDraft(_ context.Context, id string, payload *types.DraftPayload) (*types.Draft, error) {
	f.mu.Lock()
	defer f.mu.Unlock()
	f.updated = append(f.updated, id)
	return &types.Draft{ID: id, Title: payload.Title}, nil
}

func (f *fakeDrafts) PublishDraft(_ context.Context, id string) (*types.PublishResult, error) {
	f.mu.Lock()
	defer f.mu.Unlock()
	if f.publishErr != nil {
		return nil, f.publishErr
	}
	f.published = append(f.published, id)
	return &types.PublishResult{ID: id, Slug: f.slug}, nil
}

func (f *fakeDrafts) counts() (created, updated, published int) {
	f.mu.Lock()
	defer f.mu.Unlock()
	return len(f.created), len(f.updated), len(f.published)
}

type recordingNotifier struct {
	mu    sync.Mutex
	items []Notification
}

func (r *recordingNotifier) Notify(_ context.Context, n Notification) {
	r.mu.Lock()
	defer r.mu.Unlock()
	r.items = append(r.items, n)
}

func (r *recordingNotifier) all() []Notification {
	r.mu.Lock()
	defer r.mu.Unlock()
	return append([]Notification(nil), r.items...)
}
