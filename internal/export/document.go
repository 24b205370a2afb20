package export

import (
	"fmt"
	"sort"
	"strings"

	"github.com/jonathan/portfolio-builder/internal/rendering"
	"github.com/jonathan/portfolio-builder/internal/types"
)

// DefaultTitle is used when a document is exported without a title
const DefaultTitle = "My Portfolio"

// Options selects what to export
type Options struct {
	TemplateKey string
	Data        *types.TemplateData
	Theme       types.Theme
	Title       string
}

// ThemeCSS renders theme entries as a :root rule block, keys sorted.
// An empty theme yields "". Entries that are not custom properties or carry
// unsafe values are skipped.
func ThemeCSS(theme types.Theme) string {
	if len(theme) == 0 {
		return ""
	}

	keys := make([]string, 0, len(theme))
	for k := range theme {
		keys = append(keys, k)
	}
	sort.Strings(keys)

	var decls strings.Builder
	for _, k := range keys {
		v := strings.TrimSpace(theme[k])
		if !rendering.IsCustomPropertyName(k) || !rendering.IsSafeCSSValue(v) {
			continue
		}
		decls.WriteString(k)
		decls.WriteString(":")
		decls.WriteString(v)
		decls.WriteString(";")
	}
	if decls.Len() == 0 {
		return ""
	}
	return "\n:root{" + decls.String() + "}\n"
}

// Document renders a complete standalone HTML page for the options
func Document(opts Options) (string, error) {
	renderer := rendering.Lookup(opts.TemplateKey)
	if renderer == nil {
		return "", &ExportError{Message: fmt.Sprintf("no renderer for template %q", opts.TemplateKey)}
	}

	body, err := rendering.RenderString(renderer, opts.Data, opts.Theme)
	if err != nil {
		return "", &ExportError{Message: "failed to render page", Cause: err}
	}

	title := opts.Title
	if title == "" {
		title = DefaultTitle
	}

	var doc strings.Builder
	doc.WriteString("<!DOCTYPE html>\n")
	doc.WriteString("<html lang=\"en\">\n")
	doc.WriteString("<head>\n")
	doc.WriteString("  <meta charset=\"UTF-8\" />\n")
	doc.WriteString("  <meta name=\"viewport\" content=\"width=device-width, initial-scale=1.0\" />\n")
	doc.WriteString("  <title>" + rendering.EscapeHTML(title) + "</title>\n")
	doc.WriteString("  <style>\n")
	doc.WriteString(renderer.Stylesheet())
	doc.WriteString("\n")
	doc.WriteString(ThemeCSS(opts.Theme))
	doc.WriteString("  </style>\n")
	doc.WriteString("</head>\n")
	doc.WriteString("<body>\n")
	doc.WriteString(staticMarkup(body))
	doc.WriteString("\n</body>\n")
	doc.WriteString("</html>")
	return doc.String(), nil
}
