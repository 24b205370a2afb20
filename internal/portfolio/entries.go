package portfolio

import (
	"strings"

	"github.com/jonathan/portfolio-builder/internal/parsing"
)

// Separators used by the flattened one-line representations
const (
	HeadSeparator  = " · "
	PartSeparator  = " — "
	rangeSeparator = " - "
)

// Entry is a display-ready view of one education, certification, publication or award item
type Entry struct {
	Title    string
	Subtitle string
	Meta     string
}

// Line flattens the entry to one editable line, omitting empty parts
func (e Entry) Line() string {
	return joinNonEmpty(PartSeparator, e.Title, e.Subtitle, e.Meta)
}

// IsZero reports whether the entry resolved nothing
func (e Entry) IsZero() bool {
	return e.Title == "" && e.Subtitle == "" && e.Meta == ""
}

// EducationEntry resolves degree and field, school, and years
func EducationEntry(v parsing.Value) Entry {
	degree := v.Str("degree", "title")
	field := v.Str("field", "field_of_study", "major")
	years := v.Str("years", "dates", "date")
	if years == "" {
		years = joinNonEmpty(rangeSeparator, v.Str("start_year", "start"), v.Str("end_year", "end"))
	}
	return Entry{
		Title:    joinNonEmpty(HeadSeparator, degree, field),
		Subtitle: v.Str("school", "school_name", "institution", "organization"),
		Meta:     years,
	}
}

// CertificationEntry resolves name, issuer and date
func CertificationEntry(v parsing.Value) Entry {
	return Entry{
		Title:    v.Str("name", "title"),
		Subtitle: v.Str("issuer", "organization", "company", "issuing_organization"),
		Meta:     v.Str("date", "year", "issue_date", "issued_at"),
	}
}

// PublicationEntry resolves title, venue and year
func PublicationEntry(v parsing.Value) Entry {
	return Entry{
		Title:    v.Str("title", "name"),
		Subtitle: v.Str("venue", "journal", "conference", "publisher", "publication"),
		Meta:     v.Str("year", "date"),
	}
}

// AwardEntry resolves title and category, organization and date
func AwardEntry(v parsing.Value) Entry {
	return Entry{
		Title:    joinNonEmpty(HeadSeparator, v.Str("title", "name"), v.Str("category", "type", "label", "tag")),
		Subtitle: v.Str("org", "organization", "company", "issuer"),
		Meta:     v.Str("date", "year"),
	}
}

// Label resolves a string item, or the name of an object item.
// Skills and hobbies share this shape; any other item yields "".
func Label(v parsing.Value, keys ...string) string {
	switch {
	case v.IsObject():
		return v.Str(keys...)
	case v.IsString():
		return parsing.CleanStr(v)
	}
	return ""
}

// HobbyLabel resolves a hobby item
func HobbyLabel(v parsing.Value) string {
	return Label(v, "name", "title", "label")
}

// SkillLabel resolves a skill item
func SkillLabel(v parsing.Value) string {
	return Label(v, "name", "label", "skill", "title")
}

// Lines maps each item through line and drops empty results
func Lines(items []parsing.Value, line func(parsing.Value) string) []string {
	out := make([]string, 0, len(items))
	for _, item := range items {
		if s := line(item); s != "" {
			out = append(out, s)
		}
	}
	return out
}

func joinNonEmpty(sep string, parts ...string) string {
	kept := make([]string, 0, len(parts))
	for _, p := range parts {
		if p != "" {
			kept = append(kept, p)
		}
	}
	return strings.Join(kept, sep)
}
