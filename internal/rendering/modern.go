package rendering

import "github.com/jonathan/portfolio-builder/internal/types"

var modernProfile = profile{
	role:  "Product / Software Engineer",
	intro: "I design and build thoughtful digital experiences across web, cloud, and product surfaces.",
	headings: map[string]string{
		types.HeadingAbout:      "About",
		types.HeadingProjects:   "Projects",
		types.HeadingExperience: "Experience",
		types.HeadingEducation:  "Education",
		types.HeadingTechStack:  "Skills",
		types.HeadingHobbies:    "Hobbies & Interests",
		types.HeadingContact:    "Contact",
	},
	contactEmail: true,
}

// NewModern creates the sidebar layout
func NewModern() (Renderer, error) {
	return newHTMLRenderer(KeyModern, "Modern", modernProfile)
}
