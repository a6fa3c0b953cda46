package feed

import (
	"context"
	"fmt"
	"sync"
	"sync/atomic"
	"time"

	"github.com/dmitrijs2005/trainingportal/internal/client/models"
	"github.com/dmitrijs2005/trainingportal/internal/logging"
)

// DefaultInterval is the refetch period used when none is configured.
const DefaultInterval = 2 * time.Second

// Source provides the raw lists. services.CatalogService satisfies it.
type Source interface {
	ListVideos(ctx context.Context, q models.VideoQuery) ([]models.Video, error)
	ListCategories(ctx context.Context) ([]models.Category, error)
}

// IdentitySource reports who is looking. nil means anonymous.
type IdentitySource interface {
	Identity() *models.Identity
}

type Controller struct {
	source   Source
	session  IdentitySource
	interval time.Duration
	logger   logging.Logger

	seq atomic.Uint64

	mu      sync.Mutex
	filter  Filter
	applied uint64
	view    View
	subs    map[chan View]struct{}
}

func NewController(source Source, session IdentitySource, interval time.Duration, logger logging.Logger) *Controller {
	if interval <= 0 {
		interval = DefaultInterval
	}
	return &Controller{
		source:   source,
		session:  session,
		interval: interval,
		logger:   logger.With("component", "feed"),
		subs:     make(map[chan View]struct{}),
	}
}

// Run performs a pass immediately and then once per interval until ctx is
// done.
func (c *Controller) Run(ctx context.Context) {
	c.Refresh(ctx)

	ticker := time.NewTicker(c.interval)
	defer ticker.Stop()

	for {
		select {
		case <-ticker.C:
			c.Refresh(ctx)
		case <-ctx.Done():
			return
		}
	}
}

// SetFilter stores f and runs a pass with it.
func (c *Controller) SetFilter(ctx context.Context, f Filter) bool {
	c.mu.Lock()
	c.filter = f
	c.mu.Unlock()

	return c.Refresh(ctx)
}

func (c *Controller) Filter() Filter {
	c.mu.Lock()
	defer c.mu.Unlock()
	return c.filter
}

// Refresh runs one fetch-and-filter pass. It reports whether the result was
// applied; false means a newer pass got there first.
func (c *Controller) Refresh(ctx context.Context) bool {
	seq := c.seq.Add(1)
	filter := c.Filter()

	view, err := c.fetch(ctx, filter)
	if err != nil {
		if ctx.Err() != nil {
			return false
		}
		c.logger.Warn(ctx, "feed refresh failed", "seq", seq, "error", err)
		view = View{Err: err}
	}
	view.Seq = seq

	return c.apply(view)
}

func (c *Controller) fetch(ctx context.Context, f Filter) (View, error) {
	videos, err := c.source.ListVideos(ctx, models.VideoQuery{})
	if err != nil {
		return View{}, fmt.Errorf("fetch videos: %w", err)
	}
	categories, err := c.source.ListCategories(ctx)
	if err != nil {
		return View{}, fmt.Errorf("fetch categories: %w", err)
	}

	// Identity is read after the fetch so a login or logout that happened
	// while the request was in flight is honoured.
	return Apply(c.session.Identity(), videos, categories, f), nil
}

func (c *Controller) apply(view View) bool {
	c.mu.Lock()
	defer c.mu.Unlock()

	if view.Seq <= c.applied {
		c.logger.Debug(context.Background(), "stale feed result dropped", "seq", view.Seq, "applied", c.applied)
		return false
	}
	c.applied = view.Seq
	c.view = view

	for ch := range c.subs {
		publish(ch, view)
	}
	return true
}

// publish hands view to ch, replacing an unread older view.
func publish(ch chan View, view View) {
	select {
	case ch <- view:
		return
	default:
	}
	select {
	case <-ch:
	default:
	}
	select {
	case ch <- view:
	default:
	}
}

// View returns the last applied view.
func (c *Controller) View() View {
	c.mu.Lock()
	defer c.mu.Unlock()
	return c.view
}

// Subscribe returns a channel that receives every applied view. Slow readers
// only see the latest one. Call the returned func to unsubscribe.
func (c *Controller) Subscribe() (<-chan View, func()) {
	ch := make(chan View, 1)

	c.mu.Lock()
	c.subs[ch] = struct{}{}
	c.mu.Unlock()

	var once sync.Once
	return ch, func() {
		once.Do(func() {
			c.mu.Lock()
			delete(c.subs, ch)
			c.mu.Unlock()
		})
	}
}
