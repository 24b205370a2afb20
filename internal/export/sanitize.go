package export

import (
	"sync"

	"github.com/microcosm-cc/bluemonday"
)

var (
	markupPolicyOnce sync.Once
	markupPolicy     *bluemonday.Policy
)

// staticMarkup strips everything interactive from rendered markup: scripts, event
// handlers, inline styles and form controls. Layout elements keep class and id.
func staticMarkup(html string) string {
	return markupSanitizer().Sanitize(html)
}

func markupSanitizer() *bluemonday.Policy {
	markupPolicyOnce.Do(func() {
		policy := bluemonday.StrictPolicy()
		policy.AllowElements(
			"div", "section", "header", "footer", "nav", "aside", "main", "article",
			"h1", "h2", "h3", "p", "span", "ul", "ol", "li", "a",
		)
		policy.AllowNoAttrs().OnElements("main", "article", "a")
		policy.AllowAttrs("class", "id").Globally()
		policy.AllowAttrs("data-layout").OnElements("section")
		policy.AllowAttrs("href").OnElements("a")
		policy.AllowAttrs("rel").Matching(bluemonday.SpaceSeparatedTokens).OnElements("a")
		policy.AllowAttrs("target").Matching(bluemonday.Paragraph).OnElements("a")
		policy.AllowRelativeURLs(true)
		policy.AllowURLSchemes("http", "https", "mailto")

		markupPolicy = policy
	})
	return markupPolicy
}
