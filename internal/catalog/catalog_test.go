package catalog

import (
	"context"
	"errors"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/jonathan/portfolio-builder/internal/rendering"
	"github.com/jonathan/portfolio-builder/internal/services"
	"github.com/jonathan/portfolio-builder/internal/types"
)

func TestBuiltin(t *testing.T) {
	c := Builtin()
	assert.Equal(t, []string{"classic", "modern"}, c.Keys())

	for _, key := range c.Keys() {
		_, ok := rendering.Default().Get(key)
		assert.True(t, ok, "no renderer registered for %q", key)
	}

	tpl, err := c.GetTemplate(context.Background(), "modern")
	require.NoError(t, err)
	assert.Equal(t, "Modern", tpl.Name)
	assert.Equal(t, "#0ea5e9", tpl.DefaultTheme.Accent())
}

func TestGetTemplate_NotFound(t *testing.T) {
	_, err := Builtin().GetTemplate(context.Background(), "retro")
	require.Error(t, err)
	assert.True(t, services.IsNotFound(err))
}

func TestGetTemplate_ReturnsCopy(t *testing.T) {
	c := Builtin()
	tpl, err := c.GetTemplate(context.Background(), "classic")
	require.NoError(t, err)
	tpl.DefaultTheme["--accent"] = "red"

	again, err := c.GetTemplate(context.Background(), "classic")
	require.NoError(t, err)
	assert.Equal(t, "#6366f1", again.DefaultTheme.Accent())
}

func TestLoad(t *testing.T) {
	tests := []struct {
		name    string
		yaml    string
		wantErr string
	}{
		{name: "valid", yaml: "- key: a\n- key: b\n  name: B\n"},
		{name: "missing key", yaml: "- name: A\n", wantErr: "has no key"},
		{name: "duplicate", yaml: "- key: a\n- key: a\n", wantErr: "duplicate"},
		{name: "malformed", yaml: "key: [", wantErr: "failed to parse"},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			c, err := Load([]byte(tt.yaml))
			if tt.wantErr != "" {
				require.Error(t, err)
				assert.Contains(t, err.Error(), tt.wantErr)
				return
			}
			require.NoError(t, err)
			list, err := c.ListTemplates(context.Background())
			require.NoError(t, err)
			require.Len(t, list, 2)
			assert.Equal(t, "a", list[0].Name, "name defaults to key")
			assert.Equal(t, "B", list[1].Name)
		})
	}
}

type remoteTemplates struct {
	defs []types.TemplateDefinition
	err  error
}

func (r *remoteTemplates) GetTemplate(_ context.Context, key string) (*types.TemplateDefinition, error) {
	if r.err != nil {
		return nil, r.err
	}
	for _, def := range r.defs {
		if def.Key == key {
			return &def, nil
		}
	}
	return nil, &services.NotFoundError{Resource: "template", ID: key}
}

func (r *remoteTemplates) ListTemplates(context.Context) ([]types.TemplateDefinition, error) {
	return r.defs, r.err
}

func TestFallback(t *testing.T) {
	ctx := context.Background()
	remote := &remoteTemplates{defs: []types.TemplateDefinition{
		{Key: "classic", Name: "Classic (hosted)"},
		{Key: "retro", Name: "Retro"},
	}}
	templates := Builtin().Fallback(remote)

	tpl, err := templates.GetTemplate(ctx, "classic")
	require.NoError(t, err)
	assert.Equal(t, "Classic (hosted)", tpl.Name)

	tpl, err = templates.GetTemplate(ctx, "modern")
	require.NoError(t, err)
	assert.Equal(t, "Modern", tpl.Name, "missing remotely, served from the catalog")

	_, err = templates.GetTemplate(ctx, "brutalist")
	assert.True(t, services.IsNotFound(err))

	list, err := templates.ListTemplates(ctx)
	require.NoError(t, err)
	var keys []string
	for _, def := range list {
		keys = append(keys, def.Key)
	}
	assert.Equal(t, []string{"classic", "retro", "modern"}, keys)
}

func TestFallback_UpstreamFailureIsReturned(t *testing.T) {
	boom := errors.New("connection refused")
	templates := Builtin().Fallback(&remoteTemplates{err: boom})

	_, err := templates.GetTemplate(context.Background(), "classic")
	assert.ErrorIs(t, err, boom)

	_, err = templates.ListTemplates(context.Background())
	assert.ErrorIs(t, err, boom)
}
