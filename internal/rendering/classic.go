package rendering

import "github.com/jonathan/portfolio-builder/internal/types"

var classicProfile = profile{
	role:  "Software Engineer",
	intro: "I build reliable, user-focused software products, from backend APIs and cloud infrastructure to polished front-end experiences.",
	headings: map[string]string{
		types.HeadingWhatIWorkOn:           "What I Work On",
		types.HeadingEngineeringPhilosophy: "Engineering Philosophy",
		types.HeadingHowIWork:              "How I Work",
		types.HeadingProjects:              "Projects",
		types.HeadingExperience:            "Experience",
		types.HeadingTechStack:             "Tech Stack & Tools",
		types.HeadingEducation:             "Education",
		types.HeadingCertifications:        "Certifications",
		types.HeadingPublications:          "Publications & Patents",
		types.HeadingAwards:                "Accomplishments & Awards",
		types.HeadingHobbies:               "Hobbies & Interests",
		types.HeadingContact:               "Contact Information",
		types.HeadingThanks:                "Thanks for Visiting",
	},
}

// NewClassic creates the single-column website layout with paired credential sections
func NewClassic() (Renderer, error) {
	return newHTMLRenderer(KeyClassic, "Classic", classicProfile)
}
