// Package usecase contains the business logic of the application.
package usecase

import (
	"context"
	"errors"
	"sync"
	"time"

	"github.com/google/uuid"
	"github.com/sirupsen/logrus"
	"golang.org/x/sync/errgroup"

	"github.com/naka-gawa/github-panel/internal/domain"
	"github.com/naka-gawa/github-panel/internal/gateway"
)

// State is the lifecycle position of a PanelController.
type State int

const (
	StateIdle State = iota
	StateLoading
	StateLoaded
	StateFailed
)

func (s State) String() string {
	switch s {
	case StateIdle:
		return "idle"
	case StateLoading:
		return "loading"
	case StateLoaded:
		return "loaded"
	case StateFailed:
		return "failed"
	default:
		return "unknown"
	}
}

// ErrAlreadyMounted is returned when Mount is called on a controller that already ran its load cycle.
var ErrAlreadyMounted = errors.New("panel load cycle already started")

// Renderer is the output surface a load cycle writes into.
// Present reports whether the surface exists; a typed nil pointer must answer false.
type Renderer interface {
	Present() bool
	RenderProfile(profile domain.ProfileView)
	RenderRepositories(set domain.RepositorySet)
	RenderError(profileURL string)
}

// PanelOptions tunes a PanelController.
type PanelOptions struct {
	// Account is the GitHub login to load.
	Account string
	// FallbackURL is linked from the error block when the cycle fails.
	FallbackURL string
	// Concurrent fetches profile and repositories in parallel instead of one after the other.
	Concurrent bool
	// Timeout bounds the whole cycle. Zero means no bound beyond the caller's context.
	Timeout time.Duration
}

// PanelController runs the single load cycle of a GitHub panel:
// Idle -> Loading -> Loaded or Failed.
type PanelController struct {
	fetcher gateway.Fetcher
	logger  logrus.FieldLogger
	opts    PanelOptions

	mu    sync.Mutex
	state State
}

// NewPanelController creates a new PanelController instance in the Idle state.
func NewPanelController(fetcher gateway.Fetcher, logger logrus.FieldLogger, opts PanelOptions) *PanelController {
	return &PanelController{
		fetcher: fetcher,
		logger:  logger,
		opts:    opts,
	}
}

// State returns the current lifecycle state.
func (c *PanelController) State() State {
	c.mu.Lock()
	defer c.mu.Unlock()
	return c.state
}

// Mount starts the load cycle and renders its outcome into r.
// A nil r, or one whose Present reports false, means the page has no panel container:
// nothing is fetched and the controller stays Idle.
// On failure the fallback block is rendered and the FetchError is returned.
func (c *PanelController) Mount(ctx context.Context, r Renderer) error {
	if r == nil || !r.Present() {
		c.logger.Debug("Usecase: no panel container present, skipping load cycle.")
		return nil
	}

	c.mu.Lock()
	if c.state != StateIdle {
		c.mu.Unlock()
		return ErrAlreadyMounted
	}
	c.state = StateLoading
	c.mu.Unlock()

	log := c.logger.WithFields(logrus.Fields{
		"account":  c.opts.Account,
		"cycle_id": uuid.NewString(),
	})
	log.Debug("Usecase: Starting panel load cycle...")

	if c.opts.Timeout > 0 {
		var cancel context.CancelFunc
		ctx, cancel = context.WithTimeout(ctx, c.opts.Timeout)
		defer cancel()
	}

	load := c.loadSequential
	if c.opts.Concurrent {
		load = c.loadConcurrent
	}
	profile, set, err := load(ctx)
	if err != nil {
		log.WithError(err).
			WithField("reason", gateway.ReasonOf(err)).
			Error("Error loading GitHub data")
		r.RenderError(c.opts.FallbackURL)
		c.setState(StateFailed)
		return err
	}

	r.RenderProfile(*profile)
	r.RenderRepositories(*set)
	c.setState(StateLoaded)

	log.WithFields(logrus.Fields{
		"repositories": len(set.Repositories),
		"total_stars":  set.TotalStars,
	}).Debug("Usecase: Panel load cycle complete.")
	return nil
}

// loadSequential fetches the profile first; the repository request is only issued once it succeeded.
func (c *PanelController) loadSequential(ctx context.Context) (*domain.ProfileView, *domain.RepositorySet, error) {
	profile, err := c.fetcher.FetchProfile(ctx, c.opts.Account)
	if err != nil {
		return nil, nil, err
	}
	set, err := c.fetcher.FetchRepositories(ctx, c.opts.Account)
	if err != nil {
		return nil, nil, err
	}
	return profile, set, nil
}

// loadConcurrent fetches both resources at once. The first failure cancels the other request.
func (c *PanelController) loadConcurrent(ctx context.Context) (*domain.ProfileView, *domain.RepositorySet, error) {
	var (
		profile *domain.ProfileView
		set     *domain.RepositorySet
	)
	eg, egCtx := errgroup.WithContext(ctx)

	eg.Go(func() error {
		var err error
		profile, err = c.fetcher.FetchProfile(egCtx, c.opts.Account)
		return err
	})

	eg.Go(func() error {
		var err error
		set, err = c.fetcher.FetchRepositories(egCtx, c.opts.Account)
		return err
	})

	if err := eg.Wait(); err != nil {
		return nil, nil, err
	}
	return profile, set, nil
}

func (c *PanelController) setState(s State) {
	c.mu.Lock()
	defer c.mu.Unlock()
	c.state = s
}
