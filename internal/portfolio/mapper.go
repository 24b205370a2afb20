// Package portfolio maps loosely-typed portfolio records into the canonical template document.
package portfolio

import (
	"strings"

	"github.com/jonathan/portfolio-builder/internal/parsing"
	"github.com/jonathan/portfolio-builder/internal/types"
)

// DefaultRole is used for an experience entry that names no role
const DefaultRole = "Role"

const presentLabel = "Present"

// Alias chains, highest priority first
var (
	profileKeys        = []string{"profile", "overview"}
	experienceKeys     = []string{"experiences", "experience_entries", "experience", "work_experience"}
	projectKeys        = []string{"projects", "project_items", "project_entries"}
	skillKeys          = []string{"skills", "skill_items", "skill_entries"}
	educationKeys      = []string{"education", "education_entries", "schools"}
	certificationKeys  = []string{"certifications", "certificate_entries"}
	publicationKeys    = []string{"publications_and_patents", "publications", "publication_entries"}
	awardKeys          = []string{"accomplishments_awards", "awards", "award_entries"}
	hobbyKeys          = []string{"hobbies_and_interests", "hobbies", "hobby_entries"}
	contactKeys        = []string{"contacts", "contact"}
	overviewSourceKeys = []string{"portfolio_overview", "summary", "bio", "about"}
)

// MapJSON parses a raw record and maps it. Invalid JSON maps to the empty document.
func MapJSON(data []byte) types.TemplateData {
	record, err := parsing.Parse(data)
	if err != nil {
		return types.TemplateData{}
	}
	return MapToTemplateData(record)
}

// MapToTemplateData builds a complete template document from a raw portfolio record.
// A missing or falsy record yields the empty document; any other input is mapped
// without failing, degrading every field to "", an empty list, or a default.
func MapToTemplateData(record parsing.Value) types.TemplateData {
	if !record.Truthy() {
		return types.TemplateData{}
	}

	profile := record.Object(profileKeys...)
	if !profile.Exists() {
		profile = record
	}

	education := record.List(educationKeys...)
	certifications := record.List(certificationKeys...)
	publications := record.List(publicationKeys...)
	awards := record.List(awardKeys...)
	hobbies := record.List(hobbyKeys...)

	contact := record.Object(contactKeys...).Map()
	if contact == nil {
		contact = map[string]any{}
	}

	overview := profile.Str(overviewSourceKeys...)
	if overview == "" {
		overview = DefaultOverview
	}

	return types.TemplateData{
		About:          mapAbout(profile),
		Experience:     mapExperience(record.List(experienceKeys...)),
		Projects:       mapProjects(record.List(projectKeys...)),
		Skills:         types.Skills{Items: Lines(record.List(skillKeys...), SkillLabel)},
		Education:      decodeAll(education),
		Certifications: decodeAll(certifications),
		Publications:   decodeAll(publications),
		Awards:         decodeAll(awards),
		Hobbies:        decodeAll(hobbies),
		Contact:        contact,
		Sections: types.Sections{
			Overview:               overview,
			WhatIWorkOn:            DefaultWhatIWorkOn(),
			EngineeringPhilosophy:  DefaultEngineeringPhilosophy(),
			HowIWorkSteps:          DefaultHowIWorkSteps(),
			ExperienceIntro:        DefaultExperienceIntro,
			FooterSubheading:       DefaultFooterSubheading,
			EducationOverride:      Lines(education, entryLine(EducationEntry)),
			CertificationsOverride: Lines(certifications, entryLine(CertificationEntry)),
			PublicationsOverride:   Lines(publications, entryLine(PublicationEntry)),
			AwardsOverride:         Lines(awards, entryLine(AwardEntry)),
			HobbiesOverride:        Lines(hobbies, HobbyLabel),
		},
		Headings: map[string]string{},
	}
}

func mapAbout(profile parsing.Value) types.About {
	return types.About{
		Name:     resolveName(profile),
		Headline: profile.Str("headline", "title", "tagline"),
		Summary:  profile.Str("summary", "bio", "about"),
		Links: types.Links{
			GitHub:   profile.Str("github_url", "github"),
			LinkedIn: profile.Str("linkedin_url", "linkedin"),
		},
		Location: profile.Str("location", "city", "country"),
		Website:  profile.Str("website", "portfolio_url"),
		Email:    profile.Str("email", "contact_email"),
	}
}

func resolveName(profile parsing.Value) string {
	if name := profile.Str("full_name", "name"); name != "" {
		return name
	}
	return joinNonEmpty(" ", profile.Str("first_name"), profile.Str("last_name"))
}

func mapExperience(items []parsing.Value) []types.ExperienceEntry {
	out := make([]types.ExperienceEntry, 0, len(items))
	for _, job := range items {
		role := job.Str("role", "title", "position", "job_title")
		if role == "" {
			role = DefaultRole
		}

		start := job.Str("start_date", "start", "from", "start_year")
		end := job.Str("end_date", "end", "to", "end_year")
		if end == "" && job.Get("is_current").Truthy() {
			end = presentLabel
		}

		years := job.Str("years", "dates", "date_range", "date")
		if years == "" {
			years = joinNonEmpty(rangeSeparator, start, end)
		}

		out = append(out, types.ExperienceEntry{
			Role:        role,
			Company:     job.Str("company", "company_name", "org", "organization"),
			Location:    job.Str("location", "city"),
			Start:       start,
			End:         end,
			Years:       years,
			Description: job.Str("description", "summary", "details"),
		})
	}
	return out
}

func mapProjects(items []parsing.Value) []types.ProjectEntry {
	out := make([]types.ProjectEntry, 0, len(items))
	for _, proj := range items {
		tech := strings.Join(Lines(proj.List("technologies", "tech"), parsing.CleanStrValue), ", ")
		if tech == "" {
			tech = proj.Str("tech_stack", "stack", "tech")
		}

		out = append(out, types.ProjectEntry{
			Name:        proj.Str("name", "title"),
			Description: proj.Str("description", "summary"),
			Tech:        tech,
			Link:        proj.Str("link", "github_url", "repo_url", "demo_url", "url"),
		})
	}
	return out
}

func entryLine(resolve func(parsing.Value) Entry) func(parsing.Value) string {
	return func(v parsing.Value) string {
		return resolve(v).Line()
	}
}

func decodeAll(items []parsing.Value) []any {
	out := make([]any, len(items))
	for i, item := range items {
		out[i] = item.Interface()
	}
	return out
}
