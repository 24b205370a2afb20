package portfolio

// Narrative text used whenever a profile carries no matching field
const (
	DefaultOverview = "I enjoy taking ideas from rough sketch to production-ready systems: understanding requirements, designing clean APIs, and delivering maintainable code."

	DefaultExperienceIntro = "Teams I've worked with and problems I've helped solve."

	DefaultFooterSubheading = "I’m always happy to chat about roles, internships, or interesting problems to solve."
)

// DefaultWhatIWorkOn returns the default "What I Work On" lines
func DefaultWhatIWorkOn() []string {
	return []string{
		"Building backend services, REST/GraphQL APIs, and data-heavy pipelines.",
		"Designing front-end experiences with modern frameworks and clean UI patterns.",
		"Working with cloud infrastructure (AWS/GCP), containers, and CI/CD.",
	}
}

// DefaultEngineeringPhilosophy returns the default "Engineering Philosophy" lines
func DefaultEngineeringPhilosophy() []string {
	return []string{
		"Ship small, testable changes and iterate quickly.",
		"Favor readability and clear ownership over clever one-liners.",
		"Use metrics, logs, and user feedback to guide improvements.",
	}
}

// DefaultHowIWorkSteps returns the default encoded "How I Work" steps
func DefaultHowIWorkSteps() []string {
	return []string{
		"Discover & Design|Clarify the problem, edge cases, and constraints. Propose a simple architecture and data model.",
		"Build & Review|Implement in small pieces, write tests, and collaborate through code reviews.",
		"Deploy & Learn|Monitor in production, gather metrics, and iterate on performance and UX.",
	}
}
