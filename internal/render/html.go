package render

import (
	"bytes"
	"fmt"
	"html/template"
	"io"
)

var panelTemplate = template.Must(template.New("github-panel").Parse(`<div class="github-content">
{{- if .Fallback }}
  <div class="error-message">
    <p>{{ .Fallback.Message }}</p>
    <p>You can view my GitHub profile directly: <a href="{{ .Fallback.ProfileURL }}" target="_blank">{{ .Fallback.ProfileURL }}</a></p>
  </div>
{{- else }}
  <div class="github-profile">
    <img id="github-avatar" src="{{ .Avatar.Src }}" alt="{{ .Avatar.Alt }}">
    <h3 id="github-name">{{ .Name }}</h3>
    <p id="github-bio">{{ .Bio }}</p>
    <a id="github-link" href="{{ .ProfileURL }}" target="_blank" rel="noopener">View profile</a>
  </div>
  <div class="github-stats">
    <span id="repos-count">{{ .Counters.Repos }}</span>
    <span id="followers-count">{{ .Counters.Followers }}</span>
    <span id="following-count">{{ .Counters.Following }}</span>
    <span id="stars-count">{{ .Counters.Stars }}</span>
  </div>
  <div id="repos-list">
  {{- range .Cards }}
    <div class="repo-card">
      <h4><a href="{{ .URL }}" target="_blank" rel="noopener">{{ .Name }}</a></h4>
      <p>{{ .Description }}</p>
      <div class="repo-stats">
      {{- if .HasLanguage }}
        <span class="repo-language"><span class="language-color" style="background-color: {{ .LanguageColor }}"></span>{{ .Language }}</span>
      {{- end }}
        <span class="repo-stars">{{ .Stars }}</span>
        <span class="repo-forks">{{ .Forks }}</span>
      </div>
    </div>
  {{- end }}
  </div>
{{- end }}
</div>
`))

// WriteHTML writes the panel as an HTML fragment.
func WriteHTML(w io.Writer, p *Panel) error {
	if err := panelTemplate.Execute(w, p); err != nil {
		return fmt.Errorf("failed to render panel HTML: %w", err)
	}
	return nil
}

// HTML returns the panel fragment for embedding in a page template.
func HTML(p *Panel) (template.HTML, error) {
	var buf bytes.Buffer
	if err := WriteHTML(&buf, p); err != nil {
		return "", err
	}
	return template.HTML(buf.String()), nil
}
