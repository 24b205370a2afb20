package export

import (
	"archive/zip"
	"bytes"
	"io"
	"regexp"
	"strings"

	"github.com/PuerkitoBio/goquery"

	"github.com/jonathan/portfolio-builder/internal/types"
)

// Manifest describes the contents of an export archive
type Manifest struct {
	Files []string
	Title string
	Theme types.Theme
	// Sections lists the ids of the top-level page sections in order
	Sections []string
}

var rootRule = regexp.MustCompile(`(?m)^:root\{([^}]*)\}$`)

// Inspect reads an export archive and reports its title, theme overrides and sections
func Inspect(data []byte) (*Manifest, error) {
	zr, err := zip.NewReader(bytes.NewReader(data), int64(len(data)))
	if err != nil {
		return nil, &ExportError{Message: "not a zip archive", Cause: err}
	}

	manifest := &Manifest{Theme: types.Theme{}}
	var index *zip.File
	for _, f := range zr.File {
		manifest.Files = append(manifest.Files, f.Name)
		if f.Name == IndexFile {
			index = f
		}
	}
	if index == nil {
		return nil, &ExportError{Message: "archive has no index.html"}
	}

	rc, err := index.Open()
	if err != nil {
		return nil, &ExportError{Message: "failed to open index.html", Cause: err}
	}
	defer func() { _ = rc.Close() }()

	html, err := io.ReadAll(rc)
	if err != nil {
		return nil, &ExportError{Message: "failed to read index.html", Cause: err}
	}

	doc, err := goquery.NewDocumentFromReader(bytes.NewReader(html))
	if err != nil {
		return nil, &ExportError{Message: "failed to parse index.html", Cause: err}
	}

	manifest.Title = doc.Find("head title").Text()
	manifest.Theme = ParseThemeCSS(doc.Find("head style").Text())
	doc.Find("body section[id]").Each(func(_ int, s *goquery.Selection) {
		if id, ok := s.Attr("id"); ok {
			manifest.Sections = append(manifest.Sections, id)
		}
	})
	return manifest, nil
}

// ParseThemeCSS recovers theme entries from the last :root override block in css
func ParseThemeCSS(css string) types.Theme {
	theme := types.Theme{}
	matches := rootRule.FindAllStringSubmatch(css, -1)
	if len(matches) == 0 {
		return theme
	}
	for _, decl := range strings.Split(matches[len(matches)-1][1], ";") {
		k, v, ok := strings.Cut(decl, ":")
		if !ok {
			continue
		}
		theme[strings.TrimSpace(k)] = strings.TrimSpace(v)
	}
	return theme
}
