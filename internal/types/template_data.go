// Package types provides type definitions for structured data used throughout the portfolio-builder system.
//
//nolint:revive // types is a standard Go package name pattern
package types

import "encoding/json"

// TemplateData is the canonical, renderer-facing portfolio document
type TemplateData struct {
	About          About             `json:"about"`
	Experience     []ExperienceEntry `json:"experience"`
	Projects       []ProjectEntry    `json:"projects"`
	Skills         Skills            `json:"skills"`
	Education      []any             `json:"education"`
	Certifications []any             `json:"certifications"`
	Publications   []any             `json:"publications"`
	Awards         []any             `json:"awards"`
	Hobbies        []any             `json:"hobbies"`
	Contact        map[string]any    `json:"contact"`
	Sections       Sections          `json:"sections"`
	Headings       map[string]string `json:"headings"`
}

// About holds the identity block shown in hero and contact areas
type About struct {
	Name     string `json:"name"`
	Headline string `json:"headline"`
	Summary  string `json:"summary"`
	Links    Links  `json:"links"`
	Location string `json:"location"`
	Website  string `json:"website"`
	Email    string `json:"email"`
}

// Links holds profile links
type Links struct {
	GitHub   string `json:"github"`
	LinkedIn string `json:"linkedin"`
}

// ExperienceEntry is one normalized role
type ExperienceEntry struct {
	Role        string `json:"role"`
	Company     string `json:"company"`
	Location    string `json:"location"`
	Start       string `json:"start"`
	End         string `json:"end"`
	Years       string `json:"years"`
	Description string `json:"description"`
}

// ProjectEntry is one normalized project; Tech is a comma-joined list
type ProjectEntry struct {
	Name        string `json:"name"`
	Description string `json:"description"`
	Tech        string `json:"tech"`
	Link        string `json:"link"`
}

// Skills holds skill labels in source order
type Skills struct {
	Items []string `json:"items"`
}

// Sections holds the editable narrative blocks. HowIWorkSteps entries are "Title|Body" pairs.
type Sections struct {
	Overview               string   `json:"overview,omitempty"`
	WhatIWorkOn            []string `json:"whatIWorkOn,omitempty"`
	EngineeringPhilosophy  []string `json:"engineeringPhilosophy,omitempty"`
	HowIWorkSteps          []string `json:"howIWorkSteps,omitempty"`
	ExperienceIntro        string   `json:"experienceIntro,omitempty"`
	FooterSubheading       string   `json:"footerSubheading,omitempty"`
	EducationOverride      []string `json:"educationOverride,omitempty"`
	CertificationsOverride []string `json:"certificationsOverride,omitempty"`
	PublicationsOverride   []string `json:"publicationsOverride,omitempty"`
	AwardsOverride         []string `json:"awardsOverride,omitempty"`
	HobbiesOverride        []string `json:"hobbiesOverride,omitempty"`
}

// Section keys as they appear in the sections document
const (
	SectionOverview               = "overview"
	SectionWhatIWorkOn            = "whatIWorkOn"
	SectionEngineeringPhilosophy  = "engineeringPhilosophy"
	SectionHowIWorkSteps          = "howIWorkSteps"
	SectionExperienceIntro        = "experienceIntro"
	SectionFooterSubheading       = "footerSubheading"
	SectionEducationOverride      = "educationOverride"
	SectionCertificationsOverride = "certificationsOverride"
	SectionPublicationsOverride   = "publicationsOverride"
	SectionAwardsOverride         = "awardsOverride"
	SectionHobbiesOverride        = "hobbiesOverride"
)

// Heading keys accepted by the headings map
const (
	HeadingAbout                 = "about"
	HeadingWhatIWorkOn           = "whatIWorkOn"
	HeadingEngineeringPhilosophy = "engineeringPhilosophy"
	HeadingHowIWork              = "howIWork"
	HeadingProjects              = "projects"
	HeadingExperience            = "experience"
	HeadingTechStack             = "techStack"
	HeadingEducation             = "education"
	HeadingCertifications        = "certifications"
	HeadingPublications          = "publications"
	HeadingAwards                = "awards"
	HeadingHobbies               = "hobbies"
	HeadingContact               = "contact"
	HeadingThanks                = "thanks"
)

// IsZero reports whether no section has been set
func (s Sections) IsZero() bool {
	return s.Overview == "" && s.ExperienceIntro == "" && s.FooterSubheading == "" &&
		s.WhatIWorkOn == nil && s.EngineeringPhilosophy == nil && s.HowIWorkSteps == nil &&
		s.EducationOverride == nil && s.CertificationsOverride == nil &&
		s.PublicationsOverride == nil && s.AwardsOverride == nil && s.HobbiesOverride == nil
}

// IsEmpty reports whether no top-level key of the document is populated.
// A nil slice or map counts as absent; an empty but non-nil one counts as present.
func (d TemplateData) IsEmpty() bool {
	return d.About == (About{}) &&
		d.Experience == nil && d.Projects == nil && d.Skills.Items == nil &&
		d.Education == nil && d.Certifications == nil && d.Publications == nil &&
		d.Awards == nil && d.Hobbies == nil && d.Contact == nil &&
		d.Sections.IsZero() && d.Headings == nil
}

// Heading returns the override label for key, or fallback when none is set
func (d *TemplateData) Heading(key, fallback string) string {
	if d != nil {
		if label := d.Headings[key]; label != "" {
			return label
		}
	}
	return fallback
}

type templateDataJSON TemplateData

// MarshalJSON encodes an empty document as {} and a populated one with every key present
func (d TemplateData) MarshalJSON() ([]byte, error) {
	if d.IsEmpty() {
		return []byte("{}"), nil
	}
	return json.Marshal(templateDataJSON(d))
}
