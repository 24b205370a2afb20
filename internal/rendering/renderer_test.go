package rendering

import (
	"bytes"
	"errors"
	"strings"
	"testing"
	"time"

	"github.com/PuerkitoBio/goquery"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/jonathan/portfolio-builder/internal/portfolio"
	"github.com/jonathan/portfolio-builder/internal/types"
)

func renderDoc(t *testing.T, key string, data *types.TemplateData, theme types.Theme) *goquery.Document {
	t.Helper()
	html, err := RenderString(Lookup(key), data, theme)
	require.NoError(t, err)
	doc, err := goquery.NewDocumentFromReader(strings.NewReader(html))
	require.NoError(t, err)
	return doc
}

func texts(sel *goquery.Selection) []string {
	var out []string
	sel.Each(func(_ int, s *goquery.Selection) {
		out = append(out, strings.TrimSpace(s.Text()))
	})
	return out
}

func TestClassic_EmptyDocument(t *testing.T) {
	doc := renderDoc(t, KeyClassic, &types.TemplateData{}, nil)

	assert.Equal(t, "Hey, I'm Your Name.", strings.TrimSpace(doc.Find(".ad-hero-title").Text()))
	assert.Equal(t, "Software Engineer", doc.Find(".ad-hero-subtitle").Text())
	assert.Contains(t, doc.Find(".ad-hero-body").Text(), "I build reliable, user-focused software products")
	assert.Equal(t, portfolio.DefaultOverview, doc.Find(".ad-hero-card-text").Text())

	empties := texts(doc.Find(".ad-empty"))
	assert.Contains(t, empties, EmptyProjects)
	assert.Contains(t, empties, EmptyExperience)
	assert.Contains(t, empties, EmptySkills)
	assert.Contains(t, empties, EmptyHobbies)

	assert.Equal(t, 0, doc.Find("section#education").Length(), "empty education pair is omitted")
	assert.Equal(t, 0, doc.Find("section#publications").Length(), "empty publications pair is omitted")
	assert.Equal(t, 0, doc.Find(".ad-chip-row").Length())
	assert.Equal(t, 0, doc.Find(".ad-glance-chip").Length())
	assert.Equal(t, []string{"0", "0", "0", "0"}, texts(doc.Find(".ad-stat-number")))
}

func TestClassic_NilDocument(t *testing.T) {
	html, err := RenderString(Lookup(KeyClassic), nil, nil)
	require.NoError(t, err)
	assert.Contains(t, html, DefaultName)
}

func TestClassic_DefaultNarrative(t *testing.T) {
	doc := renderDoc(t, KeyClassic, &types.TemplateData{}, nil)

	steps := doc.Find(".ad-steps li")
	require.Equal(t, 3, steps.Length())
	assert.Equal(t, "Discover & Design", steps.First().Find(".ad-step-title").Text())
	assert.Contains(t, steps.First().Find(".ad-step-body").Text(), "Clarify the problem")

	lists := doc.Find(".ad-list")
	require.Equal(t, 2, lists.Length())
	assert.Equal(t, portfolio.DefaultWhatIWorkOn(), texts(lists.Eq(0).Find("li")))
	assert.Equal(t, portfolio.DefaultEngineeringPhilosophy(), texts(lists.Eq(1).Find("li")))

	assert.Equal(t, portfolio.DefaultFooterSubheading, doc.Find(".ad-contact-body").Text())
	assert.Equal(t, portfolio.DefaultExperienceIntro, doc.Find("#experience .ad-section-subtitle").First().Text())
}

func TestClassic_ConditionalPairing(t *testing.T) {
	t.Run("education only takes a full-width card", func(t *testing.T) {
		data := &types.TemplateData{Education: []any{map[string]any{"degree": "BSc", "school": "MIT"}}}
		doc := renderDoc(t, KeyClassic, data, nil)

		section := doc.Find("section#education")
		require.Equal(t, 1, section.Length())
		assert.True(t, section.HasClass("ad-full-card"))
		assert.False(t, section.HasClass("ad-two-col"))
		assert.Equal(t, 1, section.Find(".ad-card").Length())
		assert.Equal(t, "Education", section.Find(".ad-section-title").Text())
		assert.Equal(t, "BSc", section.Find(".ad-bold-line").Text())
		assert.Equal(t, 0, doc.Find("#certifications-card").Length())
	})

	t.Run("certifications override only", func(t *testing.T) {
		data := &types.TemplateData{Sections: types.Sections{CertificationsOverride: []string{"CKA — CNCF"}}}
		doc := renderDoc(t, KeyClassic, data, nil)

		section := doc.Find("section#education")
		assert.True(t, section.HasClass("ad-full-card"))
		assert.Equal(t, "Certifications", section.Find(".ad-section-title").Text())
		assert.Equal(t, []string{"CKA — CNCF"}, texts(section.Find("li")))
	})

	t.Run("both sides render two columns", func(t *testing.T) {
		data := &types.TemplateData{
			Publications: []any{map[string]any{"title": "Paper", "venue": "SOSP", "year": 2019}},
			Awards:       []any{map[string]any{"name": "Hackathon", "category": "1st"}},
		}
		doc := renderDoc(t, KeyClassic, data, nil)

		section := doc.Find("section#publications")
		assert.True(t, section.HasClass("ad-two-col"))
		assert.Equal(t, 2, section.Find(".ad-card").Length())
		assert.Equal(t, []string{"Publications & Patents", "Accomplishments & Awards"}, texts(section.Find(".ad-section-title")))
		assert.Equal(t, "Hackathon · 1st", section.Find("#awards-card .ad-bold-line").Text())
		assert.Equal(t, "2019", section.Find("#publications-card .ad-muted-line").Text())
	})

	t.Run("entries that resolve nothing show the placeholder", func(t *testing.T) {
		data := &types.TemplateData{Awards: []any{"not an object"}}
		doc := renderDoc(t, KeyClassic, data, nil)

		section := doc.Find("section#publications")
		assert.True(t, section.HasClass("ad-full-card"))
		assert.Equal(t, EmptyAwards, strings.TrimSpace(section.Find(".ad-empty").Text()))
	})
}

func TestClassic_OverridesTakePrecedence(t *testing.T) {
	data := &types.TemplateData{
		Education: []any{map[string]any{"degree": "Structured"}},
		Hobbies:   []any{"Chess"},
		Sections: types.Sections{
			EducationOverride: []string{"Edited line"},
		},
	}
	doc := renderDoc(t, KeyClassic, data, nil)

	assert.Equal(t, []string{"Edited line"}, texts(doc.Find("#education-card li")))
	assert.Equal(t, []string{"Chess"}, texts(doc.Find("#hobbies .ad-chip-outline")))
}

func TestClassic_PopulatedDocument(t *testing.T) {
	data := portfolio.MapJSON([]byte(`{
		"profile": {"name":"Ada","headline":"Engine Whisperer","email":"ada@example.com","linkedin":"in/ada","github":"https://github.com/ada","location":"London"},
		"projects": [{"name":"Engine","technologies":["Go"],"link":"https://example.com"},{"title":"Notes"}],
		"experience": [{"role":"Analyst","company":"Babbage","start":"1842","end":"1843"}],
		"skills": ["Go","SQL","Math","Poetry","Chess","Looms"],
		"contact": {"phone":"555-0100"}
	}`))
	data.Headings = map[string]string{types.HeadingProjects: "Selected Work"}

	doc := renderDoc(t, KeyClassic, &data, types.Theme{types.AccentKey: "#ff0000"})

	assert.Equal(t, "Ada", doc.Find(".ad-nav-brand").Text())
	assert.Equal(t, "Engine Whisperer", doc.Find(".ad-hero-subtitle").Text())
	assert.Equal(t, 5, doc.Find(".ad-chip-row .ad-chip").Length(), "top five skills")
	assert.Equal(t, []string{"2 projects", "1 role", "6 skills"}, texts(doc.Find(".ad-glance-chip")))
	assert.Equal(t, "Selected Work", doc.Find("#projects .ad-case-title").Text())
	assert.Equal(t, []string{"Engine", "Notes"}, texts(doc.Find(".ad-case-card-title")))
	assert.Equal(t, "Babbage · 1842 - 1843", doc.Find("#experience .ad-muted-line").Text())
	assert.Equal(t, []string{"ada@example.com", "Phone · 555-0100", "LinkedIn · in/ada"}, texts(doc.Find(".ad-contact-line")))
	assert.Equal(t, "📍 London", doc.Find(".ad-pill.muted").Text())

	style, _ := doc.Find(".ad-page").Attr("style")
	assert.Contains(t, style, "#ff0000")
}

func TestClassic_UnsafeValues(t *testing.T) {
	data := &types.TemplateData{
		About:    types.About{Name: "<script>alert(1)</script>"},
		Projects: []types.ProjectEntry{{Name: "X", Link: "javascript:alert(1)"}},
	}
	html, err := RenderString(Lookup(KeyClassic), data, types.Theme{types.AccentKey: "red;}body{display:none"})
	require.NoError(t, err)

	assert.NotContains(t, html, "<script>")
	assert.NotContains(t, html, "javascript:")
	assert.NotContains(t, html, "display:none")
	assert.Contains(t, html, types.DefaultAccent)
}

func TestClassic_FooterYear(t *testing.T) {
	restore := now
	now = func() time.Time { return time.Date(2031, 1, 2, 0, 0, 0, 0, time.UTC) }
	defer func() { now = restore }()

	doc := renderDoc(t, KeyClassic, &types.TemplateData{}, nil)
	assert.Equal(t, "© 2031", doc.Find(".ad-footer-right").Text())
}

func TestModern_EmptyDocument(t *testing.T) {
	doc := renderDoc(t, KeyModern, &types.TemplateData{}, nil)

	assert.Equal(t, DefaultName, doc.Find(".mod-logo").Text())
	assert.Equal(t, "Product / Software Engineer", doc.Find(".mod-tagline").Text())
	assert.Contains(t, doc.Find(".mod-hero-body").Text(), "thoughtful digital experiences")

	empties := texts(doc.Find(".mod-empty"))
	assert.Equal(t, []string{EmptyProjects, EmptyExperience, EmptyEducation, EmptySkills, EmptyHobbies}, empties)

	assert.Equal(t, "Skills", doc.Find("#skills h2").Text())
	assert.Equal(t, "Contact", doc.Find("#contact h2").Text())
	assert.Equal(t, 0, doc.Find(".mod-contact-line").Length())
}

func TestModern_PopulatedDocument(t *testing.T) {
	data := &types.TemplateData{
		About: types.About{Headline: "Designer", Email: "about@example.com"},
		Experience: []types.ExperienceEntry{
			{Role: "Lead", Company: "Acme", Location: "Remote", Years: "2020 - Present", Description: "Led things"},
		},
		Education: []any{map[string]any{"degree": "BA", "field": "Art", "school": "RISD", "years": "2010"}},
		Contact:   map[string]any{"email": "contact@example.com"},
		Headings:  map[string]string{types.HeadingTechStack: "Toolbox"},
	}
	doc := renderDoc(t, KeyModern, data, nil)

	assert.Equal(t, "Designer", doc.Find(".mod-logo").Text(), "role stands in for a missing name")
	assert.Equal(t, "Lead", doc.Find(".mod-timeline-title").Text())
	assert.Equal(t, "2020 - Present", doc.Find(".mod-timeline-years").Text())
	assert.Equal(t, "Acme · Remote", doc.Find(".mod-timeline-sub").Text())
	assert.Equal(t, "BA · Art", doc.Find("#education .mod-bold-line").Text())
	assert.Equal(t, []string{"RISD", "2010"}, texts(doc.Find("#education .mod-muted-line")))
	assert.Equal(t, "Toolbox", doc.Find("#skills h2").Text())
	assert.Equal(t, "contact@example.com", doc.Find(".mod-contact-line").First().Text())
}

func TestModern_EducationOverride(t *testing.T) {
	data := &types.TemplateData{
		Education: []any{map[string]any{"degree": "Structured"}},
		Sections:  types.Sections{EducationOverride: []string{"Line one", "", "Line two"}},
	}
	doc := renderDoc(t, KeyModern, data, nil)
	assert.Equal(t, []string{"Line one", "Line two"}, texts(doc.Find("#education .mod-bold-line")))
}

func TestRenderers_ShareNameResolution(t *testing.T) {
	data := &types.TemplateData{About: types.About{Name: "Grace"}}
	classic := renderDoc(t, KeyClassic, data, nil)
	modern := renderDoc(t, KeyModern, data, nil)
	assert.Equal(t, classic.Find(".ad-nav-brand").Text(), modern.Find(".mod-logo").Text())
}

func TestRegistry(t *testing.T) {
	t.Run("unknown key falls back to classic", func(t *testing.T) {
		assert.Equal(t, KeyClassic, Lookup("does-not-exist").Key())
		assert.Equal(t, KeyModern, Lookup(KeyModern).Key())
	})

	t.Run("keys are sorted", func(t *testing.T) {
		assert.Equal(t, []string{KeyClassic, KeyModern}, Default().Keys())
	})

	t.Run("duplicate registration fails", func(t *testing.T) {
		reg := NewRegistry(KeyClassic)
		classic, err := NewClassic()
		require.NoError(t, err)
		require.NoError(t, reg.Register(classic))

		err = reg.Register(classic)
		require.Error(t, err)
		var renderErr *RenderError
		assert.True(t, errors.As(err, &renderErr))
	})

	t.Run("nil renderer rejected", func(t *testing.T) {
		assert.Error(t, NewRegistry(KeyClassic).Register(nil))
	})

	t.Run("empty registry lookup returns nil", func(t *testing.T) {
		assert.Nil(t, NewRegistry(KeyClassic).Lookup("modern"))
	})
}

func TestRenderer_Stylesheets(t *testing.T) {
	assert.Contains(t, Lookup(KeyClassic).Stylesheet(), ".ad-page")
	assert.Contains(t, Lookup(KeyModern).Stylesheet(), ".mod-page")
	assert.Equal(t, "Classic", Lookup(KeyClassic).Name())
}

type failingWriter struct{}

func (failingWriter) Write([]byte) (int, error) { return 0, errors.New("disk full") }

func TestRenderer_WriteFailure(t *testing.T) {
	err := Lookup(KeyModern).Render(failingWriter{}, &types.TemplateData{}, nil)
	require.Error(t, err)
	var renderErr *RenderError
	require.ErrorAs(t, err, &renderErr)
	assert.Contains(t, err.Error(), "disk full")

	var buf bytes.Buffer
	require.NoError(t, Lookup(KeyModern).Render(&buf, &types.TemplateData{}, nil))
	assert.NotZero(t, buf.Len())
}
