package main

import (
	"context"
	_ "embed"
	"fmt"
	"io"
	"os"

	"github.com/jonathan/portfolio-builder/internal/catalog"
	"github.com/jonathan/portfolio-builder/internal/export"
	"github.com/jonathan/portfolio-builder/internal/parsing"
	"github.com/jonathan/portfolio-builder/internal/portfolio"
	"github.com/jonathan/portfolio-builder/internal/rendering"
	"github.com/jonathan/portfolio-builder/internal/schemas"
	"github.com/jonathan/portfolio-builder/internal/types"
)

// samplePortfolio is rendered when no record is given
//
//go:embed sample_portfolio.json
var samplePortfolio []byte

// readRecord reads a raw portfolio record from path, "-" for stdin, or the
// embedded sample when path is empty.
func readRecord(path string, stdin io.Reader) (parsing.Value, error) {
	var data []byte
	var err error
	switch path {
	case "":
		data = samplePortfolio
	case "-":
		data, err = io.ReadAll(stdin)
	default:
		data, err = os.ReadFile(path)
	}
	if err != nil {
		return parsing.Value{}, fmt.Errorf("failed to read portfolio record: %w", err)
	}
	record, err := parsing.Parse(data)
	if err != nil {
		return parsing.Value{}, fmt.Errorf("failed to parse portfolio record: %w", err)
	}
	return record, nil
}

// documentFlags are shared by the commands that render a record offline
type documentFlags struct {
	record   string
	template string
	title    string
	theme    map[string]string
}

// options maps the record and resolves the theme from the built-in catalog
func (f *documentFlags) options(ctx context.Context, stdin io.Reader) (export.Options, error) {
	key := f.template
	if key == "" {
		key = rendering.KeyClassic
	}
	if _, ok := rendering.Default().Get(key); !ok {
		return export.Options{}, fmt.Errorf("unknown template %q (available: %v)", key, rendering.Default().Keys())
	}

	record, err := readRecord(f.record, stdin)
	if err != nil {
		return export.Options{}, err
	}
	data := portfolio.MapToTemplateData(record)
	if err := schemas.ValidateTemplateData(&data); err != nil {
		return export.Options{}, err
	}

	theme := types.Theme{}
	if tpl, err := catalog.Builtin().GetTemplate(ctx, key); err == nil {
		theme = tpl.DefaultTheme
	}
	for name, value := range f.theme {
		if !rendering.IsCustomPropertyName(name) || !rendering.IsSafeCSSValue(value) {
			return export.Options{}, fmt.Errorf("invalid theme override %s=%s", name, value)
		}
	}

	return export.Options{
		TemplateKey: key,
		Data:        &data,
		Theme:       theme.Merge(f.theme),
		Title:       f.title,
	}, nil
}
