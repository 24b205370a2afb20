package portfolio

import "github.com/jonathan/portfolio-builder/internal/types"

// MergePrefill applies the first-load-wins policy: a prefill only seeds a document
// that has no populated top-level key, so local edits are never clobbered.
func MergePrefill(current, incoming types.TemplateData) types.TemplateData {
	if !current.IsEmpty() {
		return current
	}
	return incoming
}
