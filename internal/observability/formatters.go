// Package observability provides structured logging and formatted output for verbose CLI mode.
package observability

import (
	"fmt"
	"io"
	"sort"
	"strings"

	"github.com/jonathan/portfolio-builder/internal/export"
	"github.com/jonathan/portfolio-builder/internal/types"
)

const (
	// boxWidth is the default width for formatted output boxes
	boxWidth = 60
	// maxItemsToShow is the default number of items to display in lists
	maxItemsToShow = 5
)

// Printer handles formatted output for verbose mode
type Printer struct {
	out io.Writer
}

// NewPrinter creates a new Printer that writes to the given writer
func NewPrinter(out io.Writer) *Printer {
	return &Printer{out: out}
}

// printBox prints a formatted box with a title and content
//
//nolint:errcheck // writing to stdout; errors are not recoverable
func (p *Printer) printBox(title string, content string) {
	border := strings.Repeat("─", boxWidth-2)
	fmt.Fprintf(p.out, "┌%s┐\n", border)
	fmt.Fprintf(p.out, "│ %-*s │\n", boxWidth-4, title)
	fmt.Fprintf(p.out, "├%s┤\n", border)

	lines := strings.Split(content, "\n")
	for _, line := range lines {
		// Truncate long lines
		if len(line) > boxWidth-4 {
			line = line[:boxWidth-7] + "..."
		}
		fmt.Fprintf(p.out, "│ %-*s │\n", boxWidth-4, line)
	}

	fmt.Fprintf(p.out, "└%s┘\n", border)
}

// PrintTemplateData outputs a human-readable summary of a mapped portfolio.
func (p *Printer) PrintTemplateData(data *types.TemplateData) {
	if data == nil || data.IsEmpty() {
		p.printBox("TEMPLATE DATA", "(empty)")
		return
	}

	var sb strings.Builder
	sb.WriteString(fmt.Sprintf("Name:      %s\n", data.About.Name))
	if data.About.Headline != "" {
		sb.WriteString(fmt.Sprintf("Headline:  %s\n", data.About.Headline))
	}
	sb.WriteString("\n")

	counts := []struct {
		label string
		n     int
	}{
		{"Experience", len(data.Experience)},
		{"Projects", len(data.Projects)},
		{"Skills", len(data.Skills.Items)},
		{"Education", len(data.Education)},
		{"Certifications", len(data.Certifications)},
		{"Publications", len(data.Publications)},
		{"Awards", len(data.Awards)},
		{"Hobbies", len(data.Hobbies)},
	}
	for _, c := range counts {
		sb.WriteString(fmt.Sprintf("%-15s %d\n", c.label+":", c.n))
	}

	if len(data.Experience) > 0 {
		sb.WriteString("\nExperience:\n")
		count := min(len(data.Experience), maxItemsToShow)
		for i := 0; i < count; i++ {
			exp := data.Experience[i]
			sb.WriteString(fmt.Sprintf("  • %s", exp.Role))
			if exp.Company != "" {
				sb.WriteString(fmt.Sprintf(" @ %s", exp.Company))
			}
			if exp.Years != "" {
				sb.WriteString(fmt.Sprintf(" (%s)", exp.Years))
			}
			sb.WriteString("\n")
		}
		if len(data.Experience) > maxItemsToShow {
			sb.WriteString(fmt.Sprintf("  ... and %d more\n", len(data.Experience)-maxItemsToShow))
		}
	}

	p.printBox("TEMPLATE DATA", strings.TrimSuffix(sb.String(), "\n"))
}

// PrintManifest outputs the contents of an export archive.
func (p *Printer) PrintManifest(m *export.Manifest) {
	if m == nil {
		return
	}

	var sb strings.Builder
	sb.WriteString(fmt.Sprintf("Title:     %s\n", m.Title))
	sb.WriteString(fmt.Sprintf("Files:     %s\n", strings.Join(m.Files, ", ")))
	if len(m.Sections) > 0 {
		sb.WriteString(fmt.Sprintf("Sections:  %s\n", strings.Join(m.Sections, ", ")))
	}
	sb.WriteString(formatTheme(m.Theme))

	p.printBox("EXPORT ARCHIVE", strings.TrimSuffix(sb.String(), "\n"))
}

// PrintTemplates outputs the template gallery.
func (p *Printer) PrintTemplates(list []types.TemplateDefinition) {
	if len(list) == 0 {
		p.printBox("TEMPLATES", "(none)")
		return
	}

	var sb strings.Builder
	for i, tpl := range list {
		sb.WriteString(fmt.Sprintf("%s  (%s)\n", tpl.Name, tpl.Key))
		if tpl.Description != "" {
			sb.WriteString(fmt.Sprintf("  %s\n", tpl.Description))
		}
		sb.WriteString(fmt.Sprintf("  Accent: %s\n", tpl.DefaultTheme.Accent()))
		if i < len(list)-1 {
			sb.WriteString("\n")
		}
	}

	p.printBox("TEMPLATES", strings.TrimSuffix(sb.String(), "\n"))
}

// PrintPublished outputs the outcome of a publish.
func (p *Printer) PrintPublished(draftID, url string) {
	var sb strings.Builder
	sb.WriteString(fmt.Sprintf("Draft:  %s\n", draftID))
	sb.WriteString(fmt.Sprintf("URL:    %s", url))
	p.printBox("PUBLISHED", sb.String())
}

func formatTheme(theme types.Theme) string {
	if len(theme) == 0 {
		return "Theme:     (defaults)\n"
	}
	keys := make([]string, 0, len(theme))
	for k := range theme {
		keys = append(keys, k)
	}
	sort.Strings(keys)

	var sb strings.Builder
	sb.WriteString("Theme:\n")
	for _, k := range keys {
		sb.WriteString(fmt.Sprintf("  %s: %s\n", k, theme[k]))
	}
	return sb.String()
}
