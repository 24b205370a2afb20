//nolint:revive // types is a standard Go package name pattern
package types

import (
	"testing"

	"github.com/stretchr/testify/assert"
)

func TestTheme_Merge(t *testing.T) {
	base := Theme{AccentKey: "#111111", "--bg": "#ffffff"}
	overrides := Theme{AccentKey: "#ff0000"}

	merged := base.Merge(overrides)

	assert.Equal(t, Theme{AccentKey: "#ff0000", "--bg": "#ffffff"}, merged)
	assert.Equal(t, "#111111", base[AccentKey], "base must not be modified")

	var empty Theme
	assert.Equal(t, Theme{AccentKey: "#ff0000"}, empty.Merge(overrides))
	assert.NotNil(t, empty.Merge(nil))
}

func TestTheme_Accent(t *testing.T) {
	assert.Equal(t, DefaultAccent, Theme{}.Accent())
	assert.Equal(t, DefaultAccent, Theme(nil).Accent())
	assert.Equal(t, "#0ea5e9", Theme{AccentKey: "#0ea5e9"}.Accent())
}
