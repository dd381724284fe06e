// Package portfolio holds the non-GitHub logic of the portfolio page: the project gallery and the contact form.
package portfolio

// FilterAll selects every project.
const FilterAll = "all"

// Project is one entry of the project gallery. Category is matched by Filter.
type Project struct {
	ID          int      `json:"id"`
	Title       string   `json:"title"`
	Description string   `json:"description"`
	Image       string   `json:"image"`
	Tech        []string `json:"tech"`
	LiveURL     string   `json:"live_url"`
	CodeURL     string   `json:"code_url"`
	Category    string   `json:"category"`
}

// DefaultProjects returns the gallery shown when no other project source is configured.
func DefaultProjects() []Project {
	return []Project{
		{
			ID:          3,
			Title:       "Portfolio Website",
			Description: "A responsive portfolio website built with modern web technologies.",
			Image:       "images/p-porto.png",
			Tech:        []string{"HTML", "CSS", "JavaScript"},
			LiveURL:     "#hero",
			CodeURL:     "#",
			Category:    "web",
		},
	}
}

// Filter returns the projects of the given category, in their original order.
// An empty category or FilterAll returns every project.
func Filter(projects []Project, category string) []Project {
	if category == "" || category == FilterAll {
		return projects
	}
	filtered := make([]Project, 0, len(projects))
	for _, p := range projects {
		if p.Category == category {
			filtered = append(filtered, p)
		}
	}
	return filtered
}

// Find returns the project with the given id, for the detail view.
func Find(projects []Project, id int) (Project, bool) {
	for _, p := range projects {
		if p.ID == id {
			return p, true
		}
	}
	return Project{}, false
}
