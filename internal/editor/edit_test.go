package editor

import (
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/jonathan/portfolio-builder/internal/types"
)

func ptr(s string) *string { return &s }

func TestApply(t *testing.T) {
	h := newHarness(t, NavigationContext{}, nil)

	err := h.ctrl.Apply(Edit{
		Title:  ptr("Ada's Work"),
		About:  &AboutEdit{Name: ptr("Ada"), Headline: ptr("Analyst")},
		Skills: ptr(" Go, ,SQL ,  "),
		Sections: map[string]string{
			types.SectionOverview:          "  Hello  ",
			types.SectionWhatIWorkOn:       "APIs\n\n  Tooling \r\n",
			types.SectionHowIWorkSteps:     "Plan|Think first\nShip",
			types.SectionEducationOverride: "",
		},
		Headings: map[string]string{types.HeadingContact: "Say hi"},
	})
	require.NoError(t, err)

	state := h.ctrl.Snapshot()
	assert.Equal(t, "Ada's Work", state.Title)
	assert.Equal(t, types.About{Name: "Ada", Headline: "Analyst"}, state.Data.About)
	assert.Equal(t, []string{"Go", "SQL"}, state.Data.Skills.Items)
	assert.Equal(t, "  Hello  ", state.Data.Sections.Overview, "free text is kept verbatim")
	assert.Equal(t, []string{"APIs", "Tooling"}, state.Data.Sections.WhatIWorkOn)
	assert.Equal(t, []string{"Plan|Think first", "Ship"}, state.Data.Sections.HowIWorkSteps)
	assert.Empty(t, state.Data.Sections.EducationOverride)
	assert.Equal(t, "Say hi", state.Data.Heading(types.HeadingContact, "Contact Information"))

	require.NoError(t, h.ctrl.Apply(Edit{About: &AboutEdit{Summary: ptr("Bio")}}))
	about := h.ctrl.Data().About
	assert.Equal(t, "Ada", about.Name, "untouched fields survive")
	assert.Equal(t, "Bio", about.Summary)
}

func TestApply_RejectsUnknownKeys(t *testing.T) {
	tests := []struct {
		name  string
		edit  Edit
		field string
	}{
		{"section", Edit{Sections: map[string]string{"intro": "x"}}, "sections.intro"},
		{"heading", Edit{Headings: map[string]string{"footer": "x"}}, "headings.footer"},
		{"theme key", Edit{Theme: map[string]string{"color": "red"}}, "theme.color"},
		{"theme value", Edit{Theme: map[string]string{"--accent": "red;}body{x:y"}}, "theme.--accent"},
	}
	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			h := newHarness(t, NavigationContext{}, nil)
			tt.edit.Title = ptr("changed")

			err := h.ctrl.Apply(tt.edit)
			var editErr *EditError
			require.ErrorAs(t, err, &editErr)
			assert.Equal(t, tt.field, editErr.Field)
			assert.Equal(t, "My Portfolio", h.ctrl.Snapshot().Title, "rejected edits change nothing")
		})
	}
}

func TestSectionText(t *testing.T) {
	s := types.Sections{Overview: "Hi", WhatIWorkOn: []string{"a", "b"}}
	assert.Equal(t, "Hi", SectionText(s, types.SectionOverview))
	assert.Equal(t, "a\nb", SectionText(s, types.SectionWhatIWorkOn))
	assert.Equal(t, "", SectionText(s, "nope"))
}

func TestSplitSkills(t *testing.T) {
	assert.Equal(t, []string{}, SplitSkills(""))
	assert.Equal(t, []string{"React", "TCP/IP"}, SplitSkills("React,  TCP/IP,"))
}
