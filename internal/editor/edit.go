package editor

import (
	"maps"
	"strings"

	"github.com/jonathan/portfolio-builder/internal/rendering"
	"github.com/jonathan/portfolio-builder/internal/types"
)

// Edit is a sparse set of user changes. Nil fields are left untouched.
type Edit struct {
	Title *string    `json:"title,omitempty"`
	About *AboutEdit `json:"about,omitempty"`
	// Skills is a comma-separated list
	Skills *string `json:"skills,omitempty"`
	// Sections maps a section key to its editor text. List sections take one item per line.
	Sections map[string]string `json:"sections,omitempty"`
	Headings map[string]string `json:"headings,omitempty"`
	// Theme maps custom-property names to values; an empty value removes the override
	Theme map[string]string `json:"theme,omitempty"`
}

// AboutEdit changes the identity block
type AboutEdit struct {
	Name     *string `json:"name,omitempty"`
	Headline *string `json:"headline,omitempty"`
	Summary  *string `json:"summary,omitempty"`
}

var headingKeys = map[string]bool{
	types.HeadingAbout:                 true,
	types.HeadingWhatIWorkOn:           true,
	types.HeadingEngineeringPhilosophy: true,
	types.HeadingHowIWork:              true,
	types.HeadingProjects:              true,
	types.HeadingExperience:            true,
	types.HeadingTechStack:             true,
	types.HeadingEducation:             true,
	types.HeadingCertifications:        true,
	types.HeadingPublications:          true,
	types.HeadingAwards:                true,
	types.HeadingHobbies:               true,
	types.HeadingContact:               true,
	types.HeadingThanks:                true,
}

// Apply merges an edit into the session. The whole edit is rejected when any
// section, heading or theme key is unknown.
func (c *Controller) Apply(e Edit) error {
	if err := e.validate(); err != nil {
		return err
	}

	c.mu.Lock()
	defer c.mu.Unlock()

	if e.Title != nil {
		c.title = *e.Title
	}
	data := c.data
	if e.About != nil {
		if e.About.Name != nil {
			data.About.Name = *e.About.Name
		}
		if e.About.Headline != nil {
			data.About.Headline = *e.About.Headline
		}
		if e.About.Summary != nil {
			data.About.Summary = *e.About.Summary
		}
	}
	if e.Skills != nil {
		data.Skills = types.Skills{Items: SplitSkills(*e.Skills)}
	}
	for key, text := range e.Sections {
		setSection(&data.Sections, key, text)
	}
	if len(e.Headings) > 0 {
		headings := maps.Clone(data.Headings)
		if headings == nil {
			headings = make(map[string]string, len(e.Headings))
		}
		for key, label := range e.Headings {
			headings[key] = label
		}
		data.Headings = headings
	}
	c.data = data
	if e.touchesDocument() {
		c.edited = true
	}

	if len(e.Theme) > 0 {
		overrides := maps.Clone(c.overrides)
		for key, value := range e.Theme {
			if value = strings.TrimSpace(value); value == "" {
				delete(overrides, key)
				continue
			}
			overrides[key] = value
		}
		c.overrides = overrides
	}
	return nil
}

// touchesDocument reports whether the edit writes to the Template Data.
// Title and theme live outside the document.
func (e Edit) touchesDocument() bool {
	return (e.About != nil && (e.About.Name != nil || e.About.Headline != nil || e.About.Summary != nil)) ||
		e.Skills != nil || len(e.Sections) > 0 || len(e.Headings) > 0
}

func (e Edit) validate() error {
	for key := range e.Sections {
		if _, _, ok := sectionField(&types.Sections{}, key); !ok {
			return &EditError{Field: "sections." + key, Message: "unknown section"}
		}
	}
	for key := range e.Headings {
		if !headingKeys[key] {
			return &EditError{Field: "headings." + key, Message: "unknown heading"}
		}
	}
	for key, value := range e.Theme {
		if !rendering.IsCustomPropertyName(key) {
			return &EditError{Field: "theme." + key, Message: "not a CSS custom property"}
		}
		if value = strings.TrimSpace(value); value != "" && !rendering.IsSafeCSSValue(value) {
			return &EditError{Field: "theme." + key, Message: "unsafe value"}
		}
	}
	return nil
}

// SplitSkills parses a comma-separated skills field, dropping blank items
func SplitSkills(text string) []string {
	return splitTrimmed(text, ",")
}

// SplitLines parses a one-item-per-line field, dropping blank lines
func SplitLines(text string) []string {
	return splitTrimmed(strings.ReplaceAll(text, "\r\n", "\n"), "\n")
}

func splitTrimmed(text, sep string) []string {
	items := []string{}
	for _, item := range strings.Split(text, sep) {
		if item = strings.TrimSpace(item); item != "" {
			items = append(items, item)
		}
	}
	return items
}

// sectionField returns the text or list field for key
func sectionField(s *types.Sections, key string) (*string, *[]string, bool) {
	switch key {
	case types.SectionOverview:
		return &s.Overview, nil, true
	case types.SectionExperienceIntro:
		return &s.ExperienceIntro, nil, true
	case types.SectionFooterSubheading:
		return &s.FooterSubheading, nil, true
	case types.SectionWhatIWorkOn:
		return nil, &s.WhatIWorkOn, true
	case types.SectionEngineeringPhilosophy:
		return nil, &s.EngineeringPhilosophy, true
	case types.SectionHowIWorkSteps:
		return nil, &s.HowIWorkSteps, true
	case types.SectionEducationOverride:
		return nil, &s.EducationOverride, true
	case types.SectionCertificationsOverride:
		return nil, &s.CertificationsOverride, true
	case types.SectionPublicationsOverride:
		return nil, &s.PublicationsOverride, true
	case types.SectionAwardsOverride:
		return nil, &s.AwardsOverride, true
	case types.SectionHobbiesOverride:
		return nil, &s.HobbiesOverride, true
	}
	return nil, nil, false
}

func setSection(s *types.Sections, key, text string) {
	str, list, ok := sectionField(s, key)
	switch {
	case !ok:
	case str != nil:
		*str = text
	default:
		*list = SplitLines(text)
	}
}

// SectionText returns a section's editor text, list sections joined one item per line
func SectionText(s types.Sections, key string) string {
	str, list, ok := sectionField(&s, key)
	switch {
	case !ok:
		return ""
	case str != nil:
		return *str
	default:
		return strings.Join(*list, "\n")
	}
}
