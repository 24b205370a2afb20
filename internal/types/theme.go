//nolint:revive // types is a standard Go package name pattern
package types

// AccentKey is the CSS custom property carrying the accent color
const AccentKey = "--accent"

// DefaultAccent is used when neither template nor overrides set an accent
const DefaultAccent = "#6366f1"

// Theme maps CSS custom-property names to values
type Theme map[string]string

// Merge layers overrides on top of t. Neither input is modified.
func (t Theme) Merge(overrides Theme) Theme {
	merged := make(Theme, len(t)+len(overrides))
	for k, v := range t {
		merged[k] = v
	}
	for k, v := range overrides {
		merged[k] = v
	}
	return merged
}

// Accent returns the accent color, falling back to DefaultAccent
func (t Theme) Accent() string {
	if accent := t[AccentKey]; accent != "" {
		return accent
	}
	return DefaultAccent
}
