// Package catalog serves the built-in template definitions without a backing API.
package catalog

import (
	"context"
	_ "embed"
	"fmt"

	"gopkg.in/yaml.v3"

	"github.com/jonathan/portfolio-builder/internal/services"
	"github.com/jonathan/portfolio-builder/internal/types"
)

//go:embed templates.yaml
var builtinYAML []byte

// Catalog is an in-memory TemplateService
type Catalog struct {
	order []string
	byKey map[string]types.TemplateDefinition
}

var _ services.TemplateService = (*Catalog)(nil)

// Load parses a YAML list of template definitions. Keys must be unique and non-empty.
func Load(data []byte) (*Catalog, error) {
	var defs []types.TemplateDefinition
	if err := yaml.Unmarshal(data, &defs); err != nil {
		return nil, fmt.Errorf("failed to parse template catalog: %w", err)
	}

	c := &Catalog{byKey: make(map[string]types.TemplateDefinition, len(defs))}
	for i, def := range defs {
		if def.Key == "" {
			return nil, fmt.Errorf("template catalog entry %d has no key", i)
		}
		if _, dup := c.byKey[def.Key]; dup {
			return nil, fmt.Errorf("duplicate template key %q", def.Key)
		}
		if def.Name == "" {
			def.Name = def.Key
		}
		c.order = append(c.order, def.Key)
		c.byKey[def.Key] = def
	}
	return c, nil
}

// Builtin returns the catalog embedded in the binary
func Builtin() *Catalog {
	c, err := Load(builtinYAML)
	if err != nil {
		panic(err)
	}
	return c
}

// GetTemplate returns a copy of the definition for key
func (c *Catalog) GetTemplate(_ context.Context, key string) (*types.TemplateDefinition, error) {
	def, ok := c.byKey[key]
	if !ok {
		return nil, &services.NotFoundError{Resource: "template", ID: key}
	}
	def.DefaultTheme = types.Theme{}.Merge(def.DefaultTheme)
	return &def, nil
}

// ListTemplates returns every definition in catalog order
func (c *Catalog) ListTemplates(ctx context.Context) ([]types.TemplateDefinition, error) {
	list := make([]types.TemplateDefinition, 0, len(c.order))
	for _, key := range c.order {
		def, err := c.GetTemplate(ctx, key)
		if err != nil {
			return nil, err
		}
		list = append(list, *def)
	}
	return list, nil
}

// Keys returns the template keys in catalog order
func (c *Catalog) Keys() []string {
	return append([]string(nil), c.order...)
}

// Fallback serves templates from primary, answering from c when primary
// reports a template as missing.
func (c *Catalog) Fallback(primary services.TemplateService) services.TemplateService {
	return &fallback{primary: primary, catalog: c}
}

type fallback struct {
	primary services.TemplateService
	catalog *Catalog
}

func (f *fallback) GetTemplate(ctx context.Context, key string) (*types.TemplateDefinition, error) {
	def, err := f.primary.GetTemplate(ctx, key)
	if services.IsNotFound(err) {
		return f.catalog.GetTemplate(ctx, key)
	}
	return def, err
}

// ListTemplates returns the primary list followed by catalog entries whose keys it lacks
func (f *fallback) ListTemplates(ctx context.Context) ([]types.TemplateDefinition, error) {
	list, err := f.primary.ListTemplates(ctx)
	if err != nil {
		return nil, err
	}
	seen := make(map[string]bool, len(list))
	for _, def := range list {
		seen[def.Key] = true
	}
	for _, key := range f.catalog.order {
		if seen[key] {
			continue
		}
		def, err := f.catalog.GetTemplate(ctx, key)
		if err != nil {
			return nil, err
		}
		list = append(list, *def)
	}
	return list, nil
}
