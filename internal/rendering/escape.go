package rendering

import (
	"regexp"
	"strings"
)

// EscapeHTML escapes text for use in HTML outside of templates
// Special characters: & < > " '
func EscapeHTML(text string) string {
	if text == "" {
		return ""
	}

	var result strings.Builder
	result.Grow(len(text) + len(text)/4)

	for _, r := range text {
		switch r {
		case '&':
			result.WriteString("&amp;")
		case '<':
			result.WriteString("&lt;")
		case '>':
			result.WriteString("&gt;")
		case '"':
			result.WriteString("&quot;")
		case '\'':
			result.WriteString("&#039;")
		default:
			result.WriteRune(r)
		}
	}

	return result.String()
}

var (
	customPropertyPattern = regexp.MustCompile(`^--[a-zA-Z0-9_-]+$`)
	cssValuePattern       = regexp.MustCompile(`^[a-zA-Z0-9#%.,()\s/'"-]+$`)
)

// IsCustomPropertyName reports whether name is a CSS custom property such as --accent
func IsCustomPropertyName(name string) bool {
	return customPropertyPattern.MatchString(name)
}

// IsSafeCSSValue reports whether value can be emitted inside a declaration
// without closing the rule or loading external resources. Quoted strings such
// as font family names are allowed when every quote is closed.
func IsSafeCSSValue(value string) bool {
	if strings.TrimSpace(value) == "" || !cssValuePattern.MatchString(value) || !quotesBalanced(value) {
		return false
	}
	lower := strings.ToLower(value)
	return !strings.Contains(lower, "url(") && !strings.Contains(lower, "expression(")
}

func quotesBalanced(value string) bool {
	var open rune
	for _, r := range value {
		switch {
		case open == 0 && (r == '\'' || r == '"'):
			open = r
		case r == open:
			open = 0
		}
	}
	return open == 0
}
