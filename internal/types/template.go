//nolint:revive // types is a standard Go package name pattern
package types

// TemplateDefinition is a named presentation definition backed by one renderer
type TemplateDefinition struct {
	Key          string `json:"key" yaml:"key"`
	Name         string `json:"name" yaml:"name"`
	Description  string `json:"description" yaml:"description"`
	PreviewImage string `json:"preview_image,omitempty" yaml:"preview_image"`
	DefaultTheme Theme  `json:"default_theme" yaml:"default_theme"`
}
