// Package server serves the portfolio page and its JSON endpoints.
// Every page load runs its own GitHub panel load cycle.
package server

import (
	"errors"
	"html/template"
	"net/http"
	"strconv"
	"time"

	"github.com/gin-gonic/gin"
	"github.com/sirupsen/logrus"

	"github.com/naka-gawa/github-panel/internal/gateway"
	"github.com/naka-gawa/github-panel/internal/portfolio"
	"github.com/naka-gawa/github-panel/internal/render"
	"github.com/naka-gawa/github-panel/internal/usecase"
)

const (
	contactThanks = "Thank you for your message! I'll get back to you soon."
	pageName      = "page"
)

var pageTemplate = template.Must(template.New(pageName).Parse(`<!DOCTYPE html>
<html lang="en">
<head><meta charset="utf-8"><title>{{ .Title }}</title></head>
<body>
<section id="projects">
  <div class="projects-grid">
  {{- range .Projects }}
    <div class="project-card" data-category="{{ .Category }}" tabindex="0" role="button" aria-label="View details for {{ .Title }}">
      <img src="{{ .Image }}" alt="{{ .Title }}" class="project-image" loading="lazy">
      <div class="project-info">
        <h3 class="project-title">{{ .Title }}</h3>
        <p class="project-description">{{ .Description }}</p>
        <div class="project-tech">{{ range .Tech }}<span class="tech-tag">{{ . }}</span>{{ end }}</div>
      </div>
    </div>
  {{- end }}
  </div>
</section>
<section id="github">
{{ .Panel }}
</section>
</body>
</html>
`))

type pageData struct {
	Title    string
	Projects []portfolio.Project
	Panel    template.HTML
}

// Server holds the dependencies shared by all requests.
type Server struct {
	fetcher   gateway.Fetcher
	panelOpts usecase.PanelOptions
	projects  []portfolio.Project
	verifier  portfolio.Verifier
	logger    logrus.FieldLogger
}

// New creates a Server. Panel controllers are built per request from fetcher and panelOpts.
func New(fetcher gateway.Fetcher, panelOpts usecase.PanelOptions, projects []portfolio.Project, verifier portfolio.Verifier, logger logrus.FieldLogger) *Server {
	return &Server{
		fetcher:   fetcher,
		panelOpts: panelOpts,
		projects:  projects,
		verifier:  verifier,
		logger:    logger,
	}
}

// Router builds the gin engine with every route registered.
func (s *Server) Router() *gin.Engine {
	router := gin.New()
	router.Use(gin.Recovery(), s.requestLogger())
	router.SetHTMLTemplate(pageTemplate)

	router.GET("/", s.index)
	router.GET("/healthz", func(c *gin.Context) {
		c.JSON(http.StatusOK, gin.H{"status": "ok"})
	})

	api := router.Group("/api")
	{
		api.GET("/panel", s.panel)
		api.GET("/projects", s.listProjects)
		api.GET("/projects/:id", s.getProject)
		api.POST("/contact", s.contact)
	}
	return router
}

// loadPanel runs one load cycle. A failed cycle still yields a renderable panel holding the fallback block.
func (s *Server) loadPanel(c *gin.Context) (*render.Panel, usecase.State) {
	controller := usecase.NewPanelController(s.fetcher, s.logger, s.panelOpts)
	panel := &render.Panel{}
	// Mount already logged the failure and rendered the fallback block into panel.
	_ = controller.Mount(c.Request.Context(), panel)
	return panel, controller.State()
}

func (s *Server) index(c *gin.Context) {
	panel, _ := s.loadPanel(c)

	fragment, err := render.HTML(panel)
	if err != nil {
		s.logger.WithError(err).Error("Failed to render panel")
		c.String(http.StatusInternalServerError, "internal error")
		return
	}

	c.HTML(http.StatusOK, pageName, pageData{
		Title:    "Portfolio",
		Projects: portfolio.Filter(s.projects, c.DefaultQuery("filter", portfolio.FilterAll)),
		Panel:    fragment,
	})
}

func (s *Server) panel(c *gin.Context) {
	panel, state := s.loadPanel(c)
	c.JSON(http.StatusOK, gin.H{
		"state": state.String(),
		"panel": panel,
	})
}

func (s *Server) listProjects(c *gin.Context) {
	c.JSON(http.StatusOK, portfolio.Filter(s.projects, c.DefaultQuery("filter", portfolio.FilterAll)))
}

func (s *Server) getProject(c *gin.Context) {
	id, err := strconv.Atoi(c.Param("id"))
	if err != nil {
		c.JSON(http.StatusBadRequest, gin.H{"error": "project id must be an integer"})
		return
	}
	project, ok := portfolio.Find(s.projects, id)
	if !ok {
		c.JSON(http.StatusNotFound, gin.H{"error": "project not found"})
		return
	}
	c.JSON(http.StatusOK, project)
}

func (s *Server) contact(c *gin.Context) {
	var form portfolio.ContactForm
	if err := c.ShouldBind(&form); err != nil {
		c.JSON(http.StatusBadRequest, gin.H{"error": "malformed contact form"})
		return
	}

	err := portfolio.Validate(c.Request.Context(), form, s.verifier)
	switch {
	case err == nil:
		c.JSON(http.StatusOK, gin.H{"message": contactThanks})
	case errors.Is(err, portfolio.ErrCaptchaUnsolved),
		errors.Is(err, portfolio.ErrMissingFields),
		errors.Is(err, portfolio.ErrInvalidEmail):
		c.JSON(http.StatusBadRequest, gin.H{"error": err.Error()})
	default:
		s.logger.WithError(err).Error("Captcha verification failed")
		c.JSON(http.StatusBadGateway, gin.H{"error": "verification unavailable, try again later"})
	}
}

func (s *Server) requestLogger() gin.HandlerFunc {
	return func(c *gin.Context) {
		start := time.Now()
		c.Next()
		s.logger.WithFields(logrus.Fields{
			"method":   c.Request.Method,
			"path":     c.Request.URL.Path,
			"status":   c.Writer.Status(),
			"duration": time.Since(start).String(),
		}).Info("request")
	}
}
