// Package render projects panel view-models onto an output surface and serializes that surface.
// It performs no I/O against GitHub and holds no business rules beyond presentation.
package render

import (
	"fmt"

	"github.com/naka-gawa/github-panel/internal/domain"
	"github.com/naka-gawa/github-panel/internal/format"
)

const fallbackMessage = "Unable to load GitHub data. Please check your internet connection or try again later."

// Avatar is the profile image and its alternative text.
type Avatar struct {
	Src string `json:"src"`
	Alt string `json:"alt"`
}

// Counters are the four figures at the top of the panel, already formatted.
type Counters struct {
	Repos     string `json:"repos"`
	Followers string `json:"followers"`
	Following string `json:"following"`
	Stars     string `json:"stars"`
}

// Card is one rendered repository.
type Card struct {
	Name          string `json:"name"`
	URL           string `json:"url"`
	Description   string `json:"description"`
	Language      string `json:"language,omitempty"`
	LanguageColor string `json:"language_color,omitempty"`
	Stars         string `json:"stars"`
	Forks         string `json:"forks"`
}

// HasLanguage reports whether the card carries a language tag.
func (c Card) HasLanguage() bool {
	return c.Language != ""
}

// Fallback replaces the whole panel when a load cycle fails.
type Fallback struct {
	Message    string `json:"message"`
	ProfileURL string `json:"profile_url"`
}

// Panel is the output surface of the GitHub section. The zero value is an empty panel.
type Panel struct {
	Name       string              `json:"name,omitempty"`
	Bio        string              `json:"bio,omitempty"`
	Avatar     Avatar              `json:"avatar"`
	ProfileURL string              `json:"profile_url,omitempty"`
	Counters   Counters            `json:"counters"`
	Cards      []Card              `json:"cards"`
	Summary    *domain.StarSummary `json:"summary,omitempty"`
	Fallback   *Fallback           `json:"fallback,omitempty"`
}

// Present reports whether p is a real panel. A nil *Panel is a page without a panel container.
func (p *Panel) Present() bool {
	return p != nil
}

// RenderProfile writes the profile fields and the three profile counters.
func (p *Panel) RenderProfile(profile domain.ProfileView) {
	p.Fallback = nil
	p.Name = profile.DisplayName
	p.Bio = profile.Bio
	p.Avatar = Avatar{
		Src: profile.AvatarURL,
		Alt: fmt.Sprintf("%s's avatar", profile.DisplayName),
	}
	p.ProfileURL = profile.ProfileURL
	p.Counters.Repos = format.Grouped(profile.RepoCount)
	p.Counters.Followers = format.Grouped(profile.FollowerCount)
	p.Counters.Following = format.Grouped(profile.FollowingCount)
}

// RenderRepositories replaces every card and writes the aggregate star counter.
func (p *Panel) RenderRepositories(set domain.RepositorySet) {
	p.Fallback = nil
	cards := make([]Card, 0, len(set.Repositories))
	for _, repo := range set.Repositories {
		card := Card{
			Name:        repo.Name,
			URL:         repo.URL,
			Description: repo.Description,
			Stars:       format.Compact(repo.StarCount),
			Forks:       format.Compact(repo.ForkCount),
		}
		if repo.HasLanguage() {
			card.Language = repo.Language
			card.LanguageColor = format.LanguageColor(repo.Language)
		}
		cards = append(cards, card)
	}
	p.Cards = cards
	p.Counters.Stars = format.Grouped(set.TotalStars)
	summary := set.Summary
	p.Summary = &summary
}

// RenderError discards all panel content and installs the fallback block linking to profileURL.
func (p *Panel) RenderError(profileURL string) {
	*p = Panel{
		Cards: []Card{},
		Fallback: &Fallback{
			Message:    fallbackMessage,
			ProfileURL: profileURL,
		},
	}
}

// Failed reports whether the panel currently shows the fallback block.
func (p *Panel) Failed() bool {
	return p.Fallback != nil
}
