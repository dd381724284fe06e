package server

import (
	"context"
	"encoding/json"
	"net/http"
	"net/http/httptest"
	"net/url"
	"strings"
	"sync/atomic"
	"testing"

	"github.com/gin-gonic/gin"
	"github.com/sirupsen/logrus/hooks/test"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/naka-gawa/github-panel/internal/domain"
	"github.com/naka-gawa/github-panel/internal/gateway"
	"github.com/naka-gawa/github-panel/internal/portfolio"
	"github.com/naka-gawa/github-panel/internal/usecase"
)

// fakeFetcher serves canned panel data and counts profile requests.
type fakeFetcher struct {
	profileErr    error
	profileCalls  atomic.Int32
	repoCallCount atomic.Int32
}

func (f *fakeFetcher) FetchProfile(ctx context.Context, account string) (*domain.ProfileView, error) {
	f.profileCalls.Add(1)
	if f.profileErr != nil {
		return nil, f.profileErr
	}
	p := domain.NewProfileView(account, "The Octocat", "", "https://avatars/1", "https://github.com/"+account, 8, 1200, 9)
	return &p, nil
}

func (f *fakeFetcher) FetchRepositories(ctx context.Context, account string) (*domain.RepositorySet, error) {
	f.repoCallCount.Add(1)
	set := domain.NewRepositorySet([]domain.RepositoryView{
		domain.NewRepositoryView("newest", "https://github.com/octocat/newest", "", "Go", 3, 1),
		domain.NewRepositoryView("oldest", "https://github.com/octocat/oldest", "tool", "", 12, 0),
	})
	return &set, nil
}

func setupRouter(t *testing.T, fetcher gateway.Fetcher) *gin.Engine {
	t.Helper()
	gin.SetMode(gin.TestMode)
	logger, _ := test.NewNullLogger()
	projects := []portfolio.Project{
		{ID: 1, Title: "Shop", Category: "web"},
		{ID: 2, Title: "Tracker", Category: "mobile"},
	}
	s := New(fetcher, usecase.PanelOptions{
		Account:     "octocat",
		FallbackURL: "https://github.com/octocat",
	}, projects, portfolio.TokenPresenceVerifier{}, logger)
	return s.Router()
}

func TestServer_Index(t *testing.T) {
	fetcher := &fakeFetcher{}
	router := setupRouter(t, fetcher)

	for i := 0; i < 2; i++ {
		w := httptest.NewRecorder()
		req, _ := http.NewRequest(http.MethodGet, "/", nil)
		router.ServeHTTP(w, req)

		require.Equal(t, http.StatusOK, w.Code)
		assert.Equal(t, "text/html; charset=utf-8", w.Header().Get("Content-Type"))
		body := w.Body.String()
		assert.True(t, strings.HasPrefix(body, "<!DOCTYPE html>"))
		assert.Contains(t, body, "The Octocat")
		assert.Equal(t, 2, strings.Count(body, `class="repo-card"`))
		assert.Equal(t, 2, strings.Count(body, `class="project-card"`))
		assert.Contains(t, body, `<span id="stars-count">15</span>`)
	}

	// one load cycle per page load
	assert.Equal(t, int32(2), fetcher.profileCalls.Load())
}

func TestServer_Index_Filter(t *testing.T) {
	router := setupRouter(t, &fakeFetcher{})

	w := httptest.NewRecorder()
	req, _ := http.NewRequest(http.MethodGet, "/?filter=mobile", nil)
	router.ServeHTTP(w, req)

	require.Equal(t, http.StatusOK, w.Code)
	assert.Equal(t, 1, strings.Count(w.Body.String(), `class="project-card"`))
	assert.Contains(t, w.Body.String(), "Tracker")
}

func TestServer_Index_PanelFailure(t *testing.T) {
	fetcher := &fakeFetcher{profileErr: &gateway.FetchError{Op: "fetch profile", Reason: gateway.ReasonStatus, StatusCode: http.StatusForbidden}}
	router := setupRouter(t, fetcher)

	w := httptest.NewRecorder()
	req, _ := http.NewRequest(http.MethodGet, "/", nil)
	router.ServeHTTP(w, req)

	// the rest of the page is still served
	require.Equal(t, http.StatusOK, w.Code)
	body := w.Body.String()
	assert.Contains(t, body, `class="error-message"`)
	assert.Contains(t, body, `href="https://github.com/octocat"`)
	assert.Contains(t, body, `class="project-card"`)
	assert.NotContains(t, body, "repo-card")
	assert.Equal(t, int32(0), fetcher.repoCallCount.Load())
}

func TestServer_PanelJSON(t *testing.T) {
	router := setupRouter(t, &fakeFetcher{})

	w := httptest.NewRecorder()
	req, _ := http.NewRequest(http.MethodGet, "/api/panel", nil)
	router.ServeHTTP(w, req)

	require.Equal(t, http.StatusOK, w.Code)
	var resp struct {
		State string `json:"state"`
		Panel struct {
			Name     string `json:"name"`
			Counters struct {
				Followers string `json:"followers"`
				Stars     string `json:"stars"`
			} `json:"counters"`
			Cards []struct {
				Name string `json:"name"`
			} `json:"cards"`
		} `json:"panel"`
	}
	require.NoError(t, json.Unmarshal(w.Body.Bytes(), &resp))
	assert.Equal(t, "loaded", resp.State)
	assert.Equal(t, "The Octocat", resp.Panel.Name)
	assert.Equal(t, "1,200", resp.Panel.Counters.Followers)
	assert.Equal(t, "15", resp.Panel.Counters.Stars)
	require.Len(t, resp.Panel.Cards, 2)
	assert.Equal(t, "newest", resp.Panel.Cards[0].Name)
}

func TestServer_Projects(t *testing.T) {
	router := setupRouter(t, &fakeFetcher{})

	testCases := []struct {
		name         string
		path         string
		expectedCode int
		expectedBody string
	}{
		{name: "all projects", path: "/api/projects", expectedCode: http.StatusOK, expectedBody: `"Tracker"`},
		{name: "filtered", path: "/api/projects?filter=web", expectedCode: http.StatusOK, expectedBody: `"Shop"`},
		{name: "detail", path: "/api/projects/2", expectedCode: http.StatusOK, expectedBody: `"title":"Tracker"`},
		{name: "unknown project", path: "/api/projects/9", expectedCode: http.StatusNotFound, expectedBody: "project not found"},
		{name: "bad id", path: "/api/projects/abc", expectedCode: http.StatusBadRequest, expectedBody: "integer"},
	}
	for _, tc := range testCases {
		t.Run(tc.name, func(t *testing.T) {
			w := httptest.NewRecorder()
			req, _ := http.NewRequest(http.MethodGet, tc.path, nil)
			router.ServeHTTP(w, req)

			assert.Equal(t, tc.expectedCode, w.Code)
			assert.Contains(t, w.Body.String(), tc.expectedBody)
		})
	}

	w := httptest.NewRecorder()
	req, _ := http.NewRequest(http.MethodGet, "/api/projects?filter=web", nil)
	router.ServeHTTP(w, req)
	assert.NotContains(t, w.Body.String(), "Tracker")
}

func TestServer_Contact(t *testing.T) {
	router := setupRouter(t, &fakeFetcher{})

	testCases := []struct {
		name         string
		form         url.Values
		expectedCode int
		expectedBody string
	}{
		{
			name: "valid submission",
			form: url.Values{
				"name": {"Ada"}, "email": {"ada@example.com"}, "message": {"Hi"}, "g-recaptcha-response": {"token"},
			},
			expectedCode: http.StatusOK,
			expectedBody: "Thank you",
		},
		{
			name:         "captcha not solved",
			form:         url.Values{"name": {"Ada"}, "email": {"ada@example.com"}, "message": {"Hi"}},
			expectedCode: http.StatusBadRequest,
			expectedBody: "reCAPTCHA",
		},
		{
			name: "invalid email",
			form: url.Values{
				"name": {"Ada"}, "email": {"ada"}, "message": {"Hi"}, "g-recaptcha-response": {"token"},
			},
			expectedCode: http.StatusBadRequest,
			expectedBody: "valid email",
		},
	}
	for _, tc := range testCases {
		t.Run(tc.name, func(t *testing.T) {
			w := httptest.NewRecorder()
			req, _ := http.NewRequest(http.MethodPost, "/api/contact", strings.NewReader(tc.form.Encode()))
			req.Header.Set("Content-Type", "application/x-www-form-urlencoded")
			router.ServeHTTP(w, req)

			assert.Equal(t, tc.expectedCode, w.Code)
			assert.Contains(t, w.Body.String(), tc.expectedBody)
		})
	}
}

func TestServer_Healthz(t *testing.T) {
	router := setupRouter(t, &fakeFetcher{})

	w := httptest.NewRecorder()
	req, _ := http.NewRequest(http.MethodGet, "/healthz", nil)
	router.ServeHTTP(w, req)

	assert.Equal(t, http.StatusOK, w.Code)
	assert.JSONEq(t, `{"status":"ok"}`, w.Body.String())
}
