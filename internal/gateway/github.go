// Package gateway provides a gateway to the GitHub REST API,
// mapping profile and repository responses into panel view-models.
package gateway

import (
	"context"
	"errors"
	"fmt"
	"net/http"
	"net/url"
	"strings"
	"time"

	"github.com/gofri/go-github-ratelimit/github_ratelimit"
	"github.com/google/go-github/v62/github"
	"github.com/sirupsen/logrus"
	"golang.org/x/oauth2"

	"github.com/naka-gawa/github-panel/internal/domain"
)

const (
	opFetchProfile      = "fetch profile"
	opFetchRepositories = "fetch repositories"
)

// Fetcher defines the behavior of a gateway for fetching panel data from GitHub.
type Fetcher interface {
	FetchProfile(ctx context.Context, account string) (*domain.ProfileView, error)
	FetchRepositories(ctx context.Context, account string) (*domain.RepositorySet, error)
}

// Options configures the HTTP stack behind a GitHubGateway.
type Options struct {
	// Token is optional. Requests are anonymous when it is empty.
	Token string
	// BaseURL overrides https://api.github.com/, e.g. for GitHub Enterprise.
	BaseURL string
	// MaxRateLimitWait caps a single sleep on a secondary rate limit.
	// A longer wait is not attempted and the rejection surfaces as a FetchError.
	MaxRateLimitWait time.Duration
}

// GitHubGateway is the concrete implementation of the Fetcher interface.
type GitHubGateway struct {
	restClient *github.Client
	logger     logrus.FieldLogger
}

// NewGitHubGateway is a constructor that creates a new instance of GitHubGateway.
func NewGitHubGateway(opts Options, logger logrus.FieldLogger) (*GitHubGateway, error) {
	rateLimitWaiter, err := github_ratelimit.NewRateLimitWaiter(nil, github_ratelimit.WithSingleSleepLimit(opts.MaxRateLimitWait, nil))
	if err != nil {
		return nil, fmt.Errorf("failed to create rate limit waiter: %w", err)
	}

	var transport http.RoundTripper = rateLimitWaiter
	if opts.Token != "" {
		transport = &oauth2.Transport{
			Base:   rateLimitWaiter,
			Source: oauth2.StaticTokenSource(&oauth2.Token{AccessToken: opts.Token}),
		}
	}

	restClient := github.NewClient(&http.Client{Transport: transport})
	if opts.BaseURL != "" {
		baseURL, err := url.Parse(strings.TrimSuffix(opts.BaseURL, "/") + "/")
		if err != nil {
			return nil, fmt.Errorf("invalid GitHub API base URL %q: %w", opts.BaseURL, err)
		}
		restClient.BaseURL = baseURL
	}

	return &GitHubGateway{
		restClient: restClient,
		logger:     logger,
	}, nil
}

// FetchProfile issues GET /users/{account} and maps the response into a ProfileView.
func (g *GitHubGateway) FetchProfile(ctx context.Context, account string) (*domain.ProfileView, error) {
	g.logger.WithField("account", account).Debug("[1/2] Fetching profile...")

	user, resp, err := g.restClient.Users.Get(ctx, account)
	if err != nil {
		return nil, classify(opFetchProfile, account, resp, err)
	}

	counters := []struct {
		field string
		value *int
	}{
		{"public_repos", user.PublicRepos},
		{"followers", user.Followers},
		{"following", user.Following},
	}
	for _, c := range counters {
		if c.value == nil || *c.value < 0 {
			return nil, &FetchError{
				Op:         opFetchProfile,
				Account:    account,
				Reason:     ReasonInvalid,
				StatusCode: resp.StatusCode,
				Err:        fmt.Errorf("%s must be a non-negative integer", c.field),
			}
		}
	}

	profile := domain.NewProfileView(
		user.GetLogin(),
		user.GetName(),
		user.GetBio(),
		user.GetAvatarURL(),
		user.GetHTMLURL(),
		*user.PublicRepos, *user.Followers, *user.Following,
	)
	if profile.DisplayName == "" {
		return nil, &FetchError{
			Op:         opFetchProfile,
			Account:    account,
			Reason:     ReasonInvalid,
			StatusCode: resp.StatusCode,
			Err:        errors.New("response carries neither name nor login"),
		}
	}

	g.logger.WithField("account", account).Debug("Completed fetching profile.")
	return &profile, nil
}

// FetchRepositories issues GET /users/{account}/repos?sort=updated&per_page=6.
// The API's recency order is kept as-is.
func (g *GitHubGateway) FetchRepositories(ctx context.Context, account string) (*domain.RepositorySet, error) {
	g.logger.WithField("account", account).Debug("[2/2] Fetching repositories...")

	opts := &github.RepositoryListByUserOptions{
		Sort:        "updated",
		ListOptions: github.ListOptions{PerPage: domain.PageSize},
	}
	repos, resp, err := g.restClient.Repositories.ListByUser(ctx, account, opts)
	if err != nil {
		return nil, classify(opFetchRepositories, account, resp, err)
	}

	views := make([]domain.RepositoryView, 0, len(repos))
	for _, repo := range repos {
		views = append(views, domain.NewRepositoryView(
			repo.GetName(),
			repo.GetHTMLURL(),
			repo.GetDescription(),
			repo.GetLanguage(),
			repo.GetStargazersCount(),
			repo.GetForksCount(),
		))
	}
	set := domain.NewRepositorySet(views)

	g.logger.WithFields(logrus.Fields{
		"account":      account,
		"repositories": len(set.Repositories),
		"total_stars":  set.TotalStars,
	}).Debug("Completed fetching repositories.")
	return &set, nil
}
