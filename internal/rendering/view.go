package rendering

import (
	"fmt"
	"html/template"
	"time"

	"github.com/jonathan/portfolio-builder/internal/parsing"
	"github.com/jonathan/portfolio-builder/internal/portfolio"
	"github.com/jonathan/portfolio-builder/internal/types"
)

// DefaultName is shown when neither a name nor a role resolves
const DefaultName = "Your Name"

// Empty-state placeholders
const (
	EmptyProjects       = "No projects added yet."
	EmptyExperience     = "No experience added yet."
	EmptySkills         = "No skills added yet."
	EmptyEducation      = "No education added yet."
	EmptyCertifications = "No certifications added yet."
	EmptyPublications   = "No publications added yet."
	EmptyAwards         = "No accomplishments or awards added yet."
	EmptyHobbies        = "No hobbies or interests added yet."
)

const defaultProjectName = "Project"

// Pair layouts for two related sections
const (
	LayoutTwoColumn = "two-col"
	LayoutFull      = "full"
)

// now is replaced in tests
var now = time.Now

// profile carries the per-renderer defaults applied on top of template data
type profile struct {
	role     string
	intro    string
	headings map[string]string
	// contactEmail prefers contact.email over about.email
	contactEmail bool
}

type view struct {
	Name     string
	Role     string
	Intro    string
	Accent   template.CSS
	About    types.About
	Email    string
	Phone    string
	Overview string

	WhatIWorkOn           []string
	EngineeringPhilosophy []string
	Steps                 []portfolio.Step
	ExperienceIntro       string
	FooterSubheading      string

	H map[string]string

	Projects   []projectView
	Experience []experienceView
	Skills     []string
	TopSkills  []string
	Stats      stats
	Glance     []string

	Education      card
	Certifications card
	Publications   card
	Awards         card
	Hobbies        card

	EducationPair   pair
	PublicationPair pair

	Year int
}

type projectView struct {
	Name        string
	Tech        string
	Description string
	Link        string
}

type experienceView struct {
	Role        string
	Years       string
	Description string
	// Meta joins company, location and years; Sub joins company and location
	Meta string
	Sub  string
}

type stats struct {
	Projects   int
	Skills     int
	Experience int
	Education  int
}

// card is one list section. Lines come from the editor overrides and take
// precedence over Entries resolved from the structured source array.
type card struct {
	ID      string
	Heading string
	Lines   []string
	Entries []portfolio.Entry
	Chips   []string
	Empty   string
	has     bool
}

// Has reports whether the section has content of either kind
func (c card) Has() bool {
	return c.has
}

type pair struct {
	ID     string
	Layout string
	Cards  []card
}

func newView(data *types.TemplateData, theme types.Theme, p profile) *view {
	if data == nil {
		data = &types.TemplateData{}
	}
	about := data.About
	sections := data.Sections

	role := about.Headline
	name := about.Name
	if name == "" {
		name = role
	}
	if name == "" {
		name = DefaultName
	}
	if role == "" {
		role = p.role
	}

	v := &view{
		Name:     name,
		Role:     role,
		Intro:    orDefault(about.Summary, p.intro),
		Accent:   accentCSS(theme),
		About:    about,
		Email:    about.Email,
		Phone:    parsing.CleanStr(data.Contact["phone"]),
		Overview: orDefault(sections.Overview, portfolio.DefaultOverview),

		WhatIWorkOn:           orDefaultList(sections.WhatIWorkOn, portfolio.DefaultWhatIWorkOn()),
		EngineeringPhilosophy: orDefaultList(sections.EngineeringPhilosophy, portfolio.DefaultEngineeringPhilosophy()),
		Steps:                 portfolio.DecodeSteps(orDefaultList(sections.HowIWorkSteps, portfolio.DefaultHowIWorkSteps())),
		ExperienceIntro:       orDefault(sections.ExperienceIntro, portfolio.DefaultExperienceIntro),
		FooterSubheading:      orDefault(sections.FooterSubheading, portfolio.DefaultFooterSubheading),

		H:      make(map[string]string, len(p.headings)),
		Skills: nonEmpty(data.Skills.Items),
		Year:   now().Year(),
	}

	if p.contactEmail {
		if email := parsing.CleanStr(data.Contact["email"]); email != "" {
			v.Email = email
		}
	}

	for key, label := range p.headings {
		v.H[key] = data.Heading(key, label)
	}

	for _, proj := range data.Projects {
		v.Projects = append(v.Projects, projectView{
			Name:        orDefault(proj.Name, defaultProjectName),
			Tech:        proj.Tech,
			Description: proj.Description,
			Link:        proj.Link,
		})
	}

	for _, e := range data.Experience {
		v.Experience = append(v.Experience, experienceView{
			Role:        orDefault(e.Role, portfolio.DefaultRole),
			Years:       e.Years,
			Description: e.Description,
			Meta:        joinNonEmpty(" · ", e.Company, e.Location, e.Years),
			Sub:         joinNonEmpty(" · ", e.Company, e.Location),
		})
	}

	if len(v.Skills) > 5 {
		v.TopSkills = v.Skills[:5]
	} else {
		v.TopSkills = v.Skills
	}

	v.Stats = stats{
		Projects:   len(data.Projects),
		Skills:     len(v.Skills),
		Experience: len(data.Experience),
		Education:  len(data.Education),
	}
	v.Glance = glanceChips(v.Stats)

	v.Education = newCard("education", v.H[types.HeadingEducation], EmptyEducation,
		sections.EducationOverride, data.Education, portfolio.EducationEntry)
	v.Certifications = newCard("certifications", v.H[types.HeadingCertifications], EmptyCertifications,
		sections.CertificationsOverride, data.Certifications, portfolio.CertificationEntry)
	v.Publications = newCard("publications", v.H[types.HeadingPublications], EmptyPublications,
		sections.PublicationsOverride, data.Publications, portfolio.PublicationEntry)
	v.Awards = newCard("awards", v.H[types.HeadingAwards], EmptyAwards,
		sections.AwardsOverride, data.Awards, portfolio.AwardEntry)
	v.Hobbies = newChipCard("hobbies", v.H[types.HeadingHobbies], EmptyHobbies,
		sections.HobbiesOverride, data.Hobbies, portfolio.HobbyLabel)

	v.EducationPair = pairUp("education", v.Education, v.Certifications)
	v.PublicationPair = pairUp("publications", v.Publications, v.Awards)

	return v
}

func newCard(id, heading, empty string, override []string, raw []any, resolve func(parsing.Value) portfolio.Entry) card {
	c := card{ID: id, Heading: heading, Empty: empty, Lines: nonEmpty(override)}
	items := parsing.SafeArray(raw)
	c.has = len(c.Lines) > 0 || len(items) > 0
	if len(c.Lines) > 0 {
		return c
	}
	for _, item := range items {
		if entry := resolve(parsing.ValueOf(item)); !entry.IsZero() {
			c.Entries = append(c.Entries, entry)
		}
	}
	return c
}

func newChipCard(id, heading, empty string, override []string, raw []any, label func(parsing.Value) string) card {
	c := card{ID: id, Heading: heading, Empty: empty, Lines: nonEmpty(override)}
	items := parsing.SafeArray(raw)
	c.has = len(c.Lines) > 0 || len(items) > 0
	if len(c.Lines) > 0 {
		return c
	}
	for _, item := range items {
		if s := label(parsing.ValueOf(item)); s != "" {
			c.Chips = append(c.Chips, s)
		}
	}
	return c
}

// pairUp places two sections side by side only when both have content.
// A single non-empty section takes a full-width slot; an empty pair is omitted.
func pairUp(id string, first, second card) pair {
	switch {
	case first.Has() && second.Has():
		return pair{ID: id, Layout: LayoutTwoColumn, Cards: []card{first, second}}
	case first.Has():
		return pair{ID: id, Layout: LayoutFull, Cards: []card{first}}
	case second.Has():
		return pair{ID: id, Layout: LayoutFull, Cards: []card{second}}
	default:
		return pair{ID: id}
	}
}

func glanceChips(s stats) []string {
	var chips []string
	if s.Projects > 0 {
		chips = append(chips, plural(s.Projects, "project"))
	}
	if s.Experience > 0 {
		chips = append(chips, plural(s.Experience, "role"))
	}
	if s.Skills > 0 {
		chips = append(chips, plural(s.Skills, "skill"))
	}
	return chips
}

func plural(n int, noun string) string {
	if n == 1 {
		return fmt.Sprintf("%d %s", n, noun)
	}
	return fmt.Sprintf("%d %ss", n, noun)
}

func accentCSS(theme types.Theme) template.CSS {
	accent := theme.Accent()
	if !IsSafeCSSValue(accent) {
		accent = types.DefaultAccent
	}
	// #nosec G203 -- value is restricted to IsSafeCSSValue
	return template.CSS(accent)
}

func orDefault(s, fallback string) string {
	if s == "" {
		return fallback
	}
	return s
}

func orDefaultList(list, fallback []string) []string {
	if len(list) == 0 {
		return fallback
	}
	return list
}

func nonEmpty(list []string) []string {
	out := make([]string, 0, len(list))
	for _, s := range list {
		if s != "" {
			out = append(out, s)
		}
	}
	return out
}

func joinNonEmpty(sep string, parts ...string) string {
	out := ""
	for _, p := range parts {
		if p == "" {
			continue
		}
		if out != "" {
			out += sep
		}
		out += p
	}
	return out
}
