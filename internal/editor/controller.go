// Package editor orchestrates the load, edit and persist lifecycle of one editing session.
package editor

import (
	"context"
	"fmt"
	"maps"
	"strings"
	"sync"

	"go.uber.org/zap"
	"golang.org/x/sync/errgroup"

	"github.com/jonathan/portfolio-builder/internal/export"
	"github.com/jonathan/portfolio-builder/internal/portfolio"
	"github.com/jonathan/portfolio-builder/internal/services"
	"github.com/jonathan/portfolio-builder/internal/types"
)

// Phase is the lifecycle state of a controller
type Phase int

const (
	PhaseLoading Phase = iota
	PhaseEditing
	PhasePersisting
)

func (p Phase) String() string {
	switch p {
	case PhaseLoading:
		return "loading"
	case PhaseEditing:
		return "editing"
	case PhasePersisting:
		return "persisting"
	default:
		return fmt.Sprintf("phase(%d)", int(p))
	}
}

// MarshalText encodes the phase name
func (p Phase) MarshalText() ([]byte, error) {
	return []byte(p.String()), nil
}

// UnmarshalText decodes a phase name
func (p *Phase) UnmarshalText(text []byte) error {
	for _, candidate := range []Phase{PhaseLoading, PhaseEditing, PhasePersisting} {
		if candidate.String() == string(text) {
			*p = candidate
			return nil
		}
	}
	return fmt.Errorf("unknown phase %q", text)
}

// Options wires a controller to its collaborators
type Options struct {
	Portfolios services.PortfolioService
	Templates  services.TemplateService
	Drafts     services.DraftService
	Notifier   Notifier
	Logger     *zap.Logger
	// PublicBaseURL prefixes published paths, e.g. https://example.com
	PublicBaseURL string
	// Title is the initial draft title; export.DefaultTitle when empty
	Title string
}

// Controller owns the in-memory draft state for one editing session.
// It is safe for concurrent use; Template Data is only mutated under its lock.
type Controller struct {
	portfolios    services.PortfolioService
	templates     services.TemplateService
	drafts        services.DraftService
	notifier      Notifier
	logger        *zap.Logger
	publicBaseURL string

	mu        sync.Mutex
	nav       NavigationContext
	phase     Phase
	template  *types.TemplateDefinition
	title     string
	data      types.TemplateData
	overrides types.Theme
	publicURL string
	// edited is set once an edit changes the document, even when it clears a field
	edited bool
	// prefillToken increases with each prefill request; only the latest may apply
	prefillToken uint64
}

// New creates a controller in the Loading phase
func New(nav NavigationContext, opts Options) *Controller {
	logger := opts.Logger
	if logger == nil {
		logger = zap.NewNop()
	}
	notifier := opts.Notifier
	if notifier == nil {
		notifier = NewLogNotifier(logger)
	}
	title := opts.Title
	if title == "" {
		title = export.DefaultTitle
	}
	nav = nav.withDefaults()
	return &Controller{
		portfolios:    opts.Portfolios,
		templates:     opts.Templates,
		drafts:        opts.Drafts,
		notifier:      notifier,
		logger:        logger.With(zap.String("template", nav.TemplateKey)),
		publicBaseURL: strings.TrimRight(opts.PublicBaseURL, "/"),
		nav:           nav,
		phase:         PhaseLoading,
		title:         title,
		overrides:     types.Theme{},
	}
}

// Load resolves the template definition and the portfolio prefill concurrently,
// then enters the Editing phase. Prefill failures are logged and never returned;
// a template failure is returned because persisting requires the definition.
func (c *Controller) Load(ctx context.Context) error {
	var g errgroup.Group
	g.Go(func() error {
		_, err := c.LoadTemplate(ctx)
		return err
	})
	g.Go(func() error {
		if _, err := c.LoadPrefill(ctx); err != nil {
			c.logger.Warn("failed to prefill from portfolio", zap.Error(err))
		}
		return nil
	})
	err := g.Wait()

	c.mu.Lock()
	if c.phase == PhaseLoading {
		c.phase = PhaseEditing
	}
	c.mu.Unlock()

	if err != nil {
		c.logger.Error("failed to load template", zap.Error(err))
	}
	return err
}

// LoadTemplate fetches the template definition named by the navigation context
func (c *Controller) LoadTemplate(ctx context.Context) (*types.TemplateDefinition, error) {
	c.mu.Lock()
	key := c.nav.TemplateKey
	c.mu.Unlock()

	if c.templates == nil {
		return nil, fmt.Errorf("no template service configured")
	}
	tpl, err := c.templates.GetTemplate(ctx, key)
	if err != nil {
		return nil, fmt.Errorf("failed to load template %q: %w", key, err)
	}

	c.mu.Lock()
	c.template = tpl
	c.mu.Unlock()
	return tpl, nil
}

// LoadPrefill fetches the portfolio and seeds Template Data under the first-load-wins
// policy. It reports whether the prefill was applied. A missing portfolio is not an
// error. A response superseded by a later LoadPrefill call is discarded.
func (c *Controller) LoadPrefill(ctx context.Context) (bool, error) {
	if c.portfolios == nil {
		return false, nil
	}

	c.mu.Lock()
	c.prefillToken++
	token := c.prefillToken
	c.mu.Unlock()

	record, err := c.portfolios.GetPortfolio(ctx)
	if err != nil {
		if services.IsNotFound(err) {
			return false, nil
		}
		return false, err
	}
	if !record.Exists() || record.IsNull() {
		return false, nil
	}
	mapped := portfolio.MapToTemplateData(record)

	c.mu.Lock()
	defer c.mu.Unlock()
	if token != c.prefillToken {
		c.logger.Debug("discarding stale portfolio prefill", zap.Uint64("token", token))
		return false, nil
	}
	if c.edited {
		return false, nil
	}
	applied := c.data.IsEmpty()
	c.data = portfolio.MergePrefill(c.data, mapped)
	return applied, nil
}

// Phase returns the current lifecycle phase
func (c *Controller) Phase() Phase {
	c.mu.Lock()
	defer c.mu.Unlock()
	return c.phase
}

// Navigation returns the current navigation context, including any bound draft id
func (c *Controller) Navigation() NavigationContext {
	c.mu.Lock()
	defer c.mu.Unlock()
	return c.nav
}

// Location returns the addressable location of this session
func (c *Controller) Location() string {
	return c.Navigation().Location()
}

// Data returns the current Template Data
func (c *Controller) Data() types.TemplateData {
	c.mu.Lock()
	defer c.mu.Unlock()
	return c.data
}

// ResolvedTheme layers the theme overrides over the template's default theme
func (c *Controller) ResolvedTheme() types.Theme {
	c.mu.Lock()
	defer c.mu.Unlock()
	return c.resolvedThemeLocked()
}

func (c *Controller) resolvedThemeLocked() types.Theme {
	var base types.Theme
	if c.template != nil {
		base = c.template.DefaultTheme
	}
	return base.Merge(c.overrides)
}

// State is a point-in-time copy of a session
type State struct {
	Location       string             `json:"location"`
	Navigation     NavigationContext  `json:"navigation"`
	Phase          Phase              `json:"phase"`
	TemplateName   string             `json:"template_name,omitempty"`
	Title          string             `json:"title"`
	Data           types.TemplateData `json:"data"`
	ThemeOverrides types.Theme        `json:"theme_overrides"`
	ResolvedTheme  types.Theme        `json:"resolved_theme"`
	PublicURL      string             `json:"public_url,omitempty"`
}

// Snapshot returns a copy of the session state
func (c *Controller) Snapshot() State {
	c.mu.Lock()
	defer c.mu.Unlock()

	state := State{
		Location:       c.nav.Location(),
		Navigation:     c.nav,
		Phase:          c.phase,
		Title:          c.title,
		Data:           c.data,
		ThemeOverrides: maps.Clone(c.overrides),
		ResolvedTheme:  c.resolvedThemeLocked(),
		PublicURL:      c.publicURL,
	}
	if c.template != nil {
		state.TemplateName = c.template.Name
	}
	return state
}

func (c *Controller) exportOptions() export.Options {
	c.mu.Lock()
	defer c.mu.Unlock()
	data := c.data
	return export.Options{
		TemplateKey: c.nav.TemplateKey,
		Data:        &data,
		Theme:       c.resolvedThemeLocked(),
		Title:       c.title,
	}
}

// Document renders the current state as a complete static HTML page
func (c *Controller) Document() (string, error) {
	return export.Document(c.exportOptions())
}

// Export packages the current state as a static site archive
func (c *Controller) Export() (*export.Archive, error) {
	return export.Build(c.exportOptions())
}
