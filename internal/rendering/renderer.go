package rendering

import (
	"bytes"
	"embed"
	"fmt"
	"html/template"
	"io"
	"sort"
	"sync"

	"github.com/jonathan/portfolio-builder/internal/types"
)

// Template keys
const (
	KeyClassic = "classic"
	KeyModern  = "modern"
)

//go:embed templates/*.tmpl styles/*.css
var assets embed.FS

// Renderer turns template data and a theme into a static page body.
// Implementations must not fail for any well-formed template data.
type Renderer interface {
	Key() string
	Name() string
	Stylesheet() string
	Render(w io.Writer, data *types.TemplateData, theme types.Theme) error
}

// htmlRenderer executes one embedded page template against the shared view
type htmlRenderer struct {
	key        string
	name       string
	profile    profile
	tmpl       *template.Template
	stylesheet string
}

func newHTMLRenderer(key, name string, p profile) (*htmlRenderer, error) {
	file := "templates/" + key + ".html.tmpl"
	tmpl, err := template.New(key+".html.tmpl").ParseFS(assets, file)
	if err != nil {
		return nil, &TemplateError{
			Message: fmt.Sprintf("failed to parse %s", file),
			Cause:   err,
		}
	}

	css, err := assets.ReadFile("styles/" + key + ".css")
	if err != nil {
		return nil, &TemplateError{
			Message: fmt.Sprintf("failed to read stylesheet for %s", key),
			Cause:   err,
		}
	}

	return &htmlRenderer{key: key, name: name, profile: p, tmpl: tmpl, stylesheet: string(css)}, nil
}

func (r *htmlRenderer) Key() string        { return r.key }
func (r *htmlRenderer) Name() string       { return r.name }
func (r *htmlRenderer) Stylesheet() string { return r.stylesheet }

// Render writes the page body markup. Output is buffered so a failed execution writes nothing.
func (r *htmlRenderer) Render(w io.Writer, data *types.TemplateData, theme types.Theme) error {
	var buf bytes.Buffer
	if err := r.tmpl.Execute(&buf, newView(data, theme, r.profile)); err != nil {
		return &TemplateError{
			Message: fmt.Sprintf("failed to execute %s template", r.key),
			Cause:   err,
		}
	}
	if _, err := buf.WriteTo(w); err != nil {
		return &RenderError{
			Message: "failed to write rendered page",
			Cause:   err,
		}
	}
	return nil
}

// RenderString renders a page body into a string
func RenderString(r Renderer, data *types.TemplateData, theme types.Theme) (string, error) {
	var buf bytes.Buffer
	if err := r.Render(&buf, data, theme); err != nil {
		return "", err
	}
	return buf.String(), nil
}

// Registry stores renderers by template key
type Registry struct {
	mu        sync.RWMutex
	renderers map[string]Renderer
	fallback  string
}

// NewRegistry creates an empty registry that falls back to the given key on lookup misses
func NewRegistry(fallback string) *Registry {
	return &Registry{
		renderers: make(map[string]Renderer),
		fallback:  fallback,
	}
}

// Register adds a renderer by its Key(). Duplicate keys return an error.
func (r *Registry) Register(renderer Renderer) error {
	if renderer == nil {
		return &RenderError{Message: "renderer is required"}
	}
	key := renderer.Key()
	if key == "" {
		return &RenderError{Message: "renderer key is required"}
	}

	r.mu.Lock()
	defer r.mu.Unlock()

	if _, exists := r.renderers[key]; exists {
		return &RenderError{Message: fmt.Sprintf("renderer %q already registered", key)}
	}
	r.renderers[key] = renderer
	return nil
}

// MustRegister panics on registration failure. Useful for init-time wiring.
func (r *Registry) MustRegister(renderer Renderer) {
	if err := r.Register(renderer); err != nil {
		panic(err)
	}
}

// Get retrieves a renderer by key without falling back
func (r *Registry) Get(key string) (Renderer, bool) {
	r.mu.RLock()
	defer r.mu.RUnlock()

	renderer, ok := r.renderers[key]
	return renderer, ok
}

// Lookup retrieves a renderer by key, falling back to the registry default for unknown keys
func (r *Registry) Lookup(key string) Renderer {
	if renderer, ok := r.Get(key); ok {
		return renderer
	}
	renderer, _ := r.Get(r.fallback)
	return renderer
}

// Keys returns the sorted registered keys
func (r *Registry) Keys() []string {
	r.mu.RLock()
	defer r.mu.RUnlock()

	keys := make([]string, 0, len(r.renderers))
	for key := range r.renderers {
		keys = append(keys, key)
	}
	sort.Strings(keys)
	return keys
}

var (
	defaultOnce     sync.Once
	defaultRegistry *Registry
)

// Default returns the registry holding the built-in Classic and Modern renderers
func Default() *Registry {
	defaultOnce.Do(func() {
		reg := NewRegistry(KeyClassic)
		reg.MustRegister(mustRenderer(NewClassic()))
		reg.MustRegister(mustRenderer(NewModern()))
		defaultRegistry = reg
	})
	return defaultRegistry
}

// Lookup resolves a built-in renderer; unknown keys render with Classic
func Lookup(key string) Renderer {
	return Default().Lookup(key)
}

func mustRenderer(r Renderer, err error) Renderer {
	if err != nil {
		panic(err)
	}
	return r
}
