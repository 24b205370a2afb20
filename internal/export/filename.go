package export

import (
	"regexp"
	"strings"
)

const fallbackSlug = "portfolio"

var nonAlphanumericRun = regexp.MustCompile(`[^a-z0-9]+`)

// SlugifyFilename lowercases title, collapses every run of non-alphanumeric characters
// to one hyphen and trims hyphens from both ends. An empty result becomes "portfolio".
func SlugifyFilename(title string) string {
	slug := nonAlphanumericRun.ReplaceAllString(strings.ToLower(title), "-")
	slug = strings.Trim(slug, "-")
	if slug == "" {
		return fallbackSlug
	}
	return slug
}

// Filename returns the archive name for a title and template key
func Filename(title, templateKey string) string {
	return SlugifyFilename(title) + "-" + templateKey + ".zip"
}
