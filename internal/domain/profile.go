// Package domain contains the view-models the GitHub panel is built from.
package domain

const (
	// PageSize is the maximum number of repositories shown on the panel.
	PageSize = 6

	DefaultBio         = "No bio available"
	DefaultDescription = "No description available"
)

// ProfileView holds the display-ready attributes of a GitHub account.
type ProfileView struct {
	Login          string `json:"login"`
	DisplayName    string `json:"display_name"`
	Bio            string `json:"bio"`
	AvatarURL      string `json:"avatar_url"`
	ProfileURL     string `json:"profile_url"`
	RepoCount      int    `json:"repo_count"`
	FollowerCount  int    `json:"follower_count"`
	FollowingCount int    `json:"following_count"`
}

// NewProfileView applies the display fallbacks: the name falls back to the login, the bio to DefaultBio.
func NewProfileView(login, name, bio, avatarURL, profileURL string, repos, followers, following int) ProfileView {
	displayName := name
	if displayName == "" {
		displayName = login
	}
	if bio == "" {
		bio = DefaultBio
	}
	return ProfileView{
		Login:          login,
		DisplayName:    displayName,
		Bio:            bio,
		AvatarURL:      avatarURL,
		ProfileURL:     profileURL,
		RepoCount:      repos,
		FollowerCount:  followers,
		FollowingCount: following,
	}
}

// RepositoryView is one repository card.
// An empty Language means GitHub did not detect one.
type RepositoryView struct {
	Name        string `json:"name"`
	URL         string `json:"url"`
	Description string `json:"description"`
	Language    string `json:"language,omitempty"`
	StarCount   int    `json:"star_count"`
	ForkCount   int    `json:"fork_count"`
}

// NewRepositoryView substitutes DefaultDescription for an empty description.
func NewRepositoryView(name, url, description, language string, stars, forks int) RepositoryView {
	if description == "" {
		description = DefaultDescription
	}
	return RepositoryView{
		Name:        name,
		URL:         url,
		Description: description,
		Language:    language,
		StarCount:   stars,
		ForkCount:   forks,
	}
}

// HasLanguage reports whether a language tag should be shown for the repository.
func (r RepositoryView) HasLanguage() bool {
	return r.Language != ""
}

// RepositorySet is the result of one repository load: the cards in API order and the star aggregate
// computed over exactly those cards.
type RepositorySet struct {
	Repositories []RepositoryView `json:"repositories"`
	TotalStars   int              `json:"total_stars"`
	Summary      StarSummary      `json:"summary"`
}

// NewRepositorySet truncates repos to PageSize and computes the aggregates over what remains.
func NewRepositorySet(repos []RepositoryView) RepositorySet {
	if len(repos) > PageSize {
		repos = repos[:PageSize]
	}
	if repos == nil {
		repos = []RepositoryView{}
	}
	return RepositorySet{
		Repositories: repos,
		TotalStars:   SumStars(repos),
		Summary:      SummarizeStars(repos),
	}
}

// SumStars returns the total star count of repos.
func SumStars(repos []RepositoryView) int {
	total := 0
	for _, r := range repos {
		total += r.StarCount
	}
	return total
}
