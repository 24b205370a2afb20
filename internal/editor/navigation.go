package editor

import (
	"net/url"

	"github.com/jonathan/portfolio-builder/internal/rendering"
)

// NavigationContext carries what the hosting shell resolved from the editor address
type NavigationContext struct {
	TemplateKey string `json:"template"`
	DraftID     string `json:"id,omitempty"`
	ResumeID    string `json:"resumeId,omitempty"`
}

// withDefaults fills an empty template key with the classic template
func (n NavigationContext) withDefaults() NavigationContext {
	if n.TemplateKey == "" {
		n.TemplateKey = rendering.KeyClassic
	}
	return n
}

// Location renders the editor address for this context
func (n NavigationContext) Location() string {
	return "/editor?template=" + url.QueryEscape(n.TemplateKey) +
		"&id=" + url.QueryEscape(n.DraftID) +
		"&resumeId=" + url.QueryEscape(n.ResumeID)
}

// ParseLocation reads a NavigationContext from an editor address or query string
func ParseLocation(location string) (NavigationContext, error) {
	u, err := url.Parse(location)
	if err != nil {
		return NavigationContext{}, err
	}
	q := u.Query()
	return NavigationContext{
		TemplateKey: q.Get("template"),
		DraftID:     q.Get("id"),
		ResumeID:    q.Get("resumeId"),
	}.withDefaults(), nil
}
