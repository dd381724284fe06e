package render

import (
	"fmt"
	"io"
	"strings"

	"github.com/charmbracelet/lipgloss"
	"github.com/fatih/color"
)

var (
	headingStyle = color.New(color.Bold)
	errorStyle   = color.New(color.FgRed, color.Bold)
	dimStyle     = color.New(color.Faint)
	cardStyle    = lipgloss.NewStyle().Border(lipgloss.RoundedBorder()).Padding(0, 1)
)

// WriteText writes the panel for a terminal.
func WriteText(w io.Writer, p *Panel) error {
	var b strings.Builder

	if p.Fallback != nil {
		b.WriteString(errorStyle.Sprint(p.Fallback.Message) + "\n")
		fmt.Fprintf(&b, "You can view my GitHub profile directly: %s\n", p.Fallback.ProfileURL)
		_, err := io.WriteString(w, b.String())
		return err
	}

	b.WriteString(headingStyle.Sprint(p.Name) + "\n")
	b.WriteString(p.Bio + "\n")
	b.WriteString(dimStyle.Sprint(p.ProfileURL) + "\n\n")
	fmt.Fprintf(&b, "Repositories %s   Followers %s   Following %s   Stars %s\n",
		p.Counters.Repos, p.Counters.Followers, p.Counters.Following, p.Counters.Stars)

	for _, card := range p.Cards {
		b.WriteString(cardStyle.Render(cardBody(card)) + "\n")
	}
	_, err := io.WriteString(w, b.String())
	return err
}

func cardBody(c Card) string {
	var b strings.Builder
	b.WriteString(headingStyle.Sprint(c.Name) + "  " + dimStyle.Sprint(c.URL) + "\n")
	b.WriteString(c.Description + "\n")
	if c.HasLanguage() {
		swatch := lipgloss.NewStyle().Foreground(lipgloss.Color(c.LanguageColor)).Render("●")
		b.WriteString(swatch + " " + c.Language + "  ")
	}
	fmt.Fprintf(&b, "★ %s  ⑂ %s", c.Stars, c.Forks)
	return b.String()
}
