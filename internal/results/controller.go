package results

import (
	"context"
	"errors"
	"fmt"
	"strconv"
	"sync"

	"github.com/jimezsa/adscli/internal/adsapi"
	"github.com/jimezsa/adscli/internal/models"
	"github.com/rs/zerolog"
	"golang.org/x/sync/singleflight"
)

const (
	MessageNoAds        = "SORRY!! It seems your search phrase has no Ads in the ad library."
	MessageFetchFailed  = "Error fetching ads. Please try again later."
	MessageBadFormat    = "Unexpected response format from the server."
	MessageMissingQuery = "Search parameters are missing. Redirecting to search page..."
)

var (
	ErrMissingQuery = errors.New("search parameters are missing")
	// ErrStale is returned for a fetch whose query was replaced while it
	// was in flight. Its result is neither cached nor displayed.
	ErrStale = errors.New("query changed while fetching")
)

// Fetcher retrieves one page of ads. *adsapi.Client implements it.
type Fetcher interface {
	FetchPage(ctx context.Context, q models.Query, page int) (models.Page, error)
}

type cacheKey struct {
	query string
	page  int
}

func (k cacheKey) String() string {
	return k.query + "\x00" + strconv.Itoa(k.page)
}

// Controller owns the page cache and the current position for one search
// session. Pages are cached per (query, page) and dropped when a new query
// starts.
type Controller struct {
	fetcher Fetcher
	logger  zerolog.Logger
	flights singleflight.Group

	mu         sync.Mutex
	cache      map[cacheKey]models.Page
	started    bool
	query      models.Query
	generation uint64
	view       View
}

func NewController(fetcher Fetcher, logger zerolog.Logger) *Controller {
	return &Controller{
		fetcher: fetcher,
		logger:  logger,
		cache:   map[cacheKey]models.Page{},
	}
}

// Start begins a new query at page 1 and forgets every cached page.
func (c *Controller) Start(q models.Query) error {
	c.mu.Lock()
	defer c.mu.Unlock()

	c.generation++
	c.cache = map[cacheKey]models.Page{}
	if !q.Valid() {
		c.started = false
		c.query = models.Query{}
		c.view = View{Status: StatusError, Message: MessageMissingQuery, Err: ErrMissingQuery}
		return ErrMissingQuery
	}

	c.started = true
	c.query = q
	c.view = View{Query: q, Page: 1, Status: StatusIdle}
	c.logger.Debug().Str("phrase", q.Phrase).Str("country", q.Country).Msg("search started")
	return nil
}

// EnsurePage returns the page from cache or fetches it. Concurrent callers
// for the same page share one request. Failures leave the cache untouched.
func (c *Controller) EnsurePage(ctx context.Context, q models.Query, page int) (models.Page, error) {
	if !q.Valid() {
		return models.Page{}, ErrMissingQuery
	}
	if page < 1 {
		return models.Page{}, fmt.Errorf("page number must be >= 1, got %d", page)
	}

	key := cacheKey{query: q.Key(), page: page}

	c.mu.Lock()
	if cached, ok := c.cache[key]; ok {
		c.mu.Unlock()
		c.logger.Debug().Int("page", page).Msg("serving page from cache")
		return cached, nil
	}
	if c.isStaleLocked(q, c.generation) {
		c.mu.Unlock()
		return models.Page{}, ErrStale
	}
	generation := c.generation
	c.mu.Unlock()

	// Each caller waits on its own ctx below; the shared fetch ignores them.
	fetchCtx := context.WithoutCancel(ctx)
	ch := c.flights.DoChan(key.String(), func() (any, error) {
		result, err := c.fetcher.FetchPage(fetchCtx, q, page)
		if err != nil {
			return models.Page{}, err
		}

		c.mu.Lock()
		defer c.mu.Unlock()
		if c.isStaleLocked(q, generation) {
			c.logger.Debug().Int("page", page).Msg("discarding stale page")
			return models.Page{}, ErrStale
		}
		c.cache[key] = result
		return result, nil
	})

	select {
	case <-ctx.Done():
		return models.Page{}, ctx.Err()
	case res := <-ch:
		if res.Err != nil {
			return models.Page{}, res.Err
		}
		return res.Val.(models.Page), nil
	}
}

func (c *Controller) isStaleLocked(q models.Query, generation uint64) bool {
	if generation != c.generation {
		return true
	}
	return c.started && c.query.Key() != q.Key()
}

// Load makes the current page available in the view, fetching it when it
// is not cached. The returned view is the state after the attempt.
func (c *Controller) Load(ctx context.Context) (View, error) {
	c.mu.Lock()
	if !c.started {
		c.view = View{Status: StatusError, Message: MessageMissingQuery, Err: ErrMissingQuery}
		view := c.view
		c.mu.Unlock()
		return view, ErrMissingQuery
	}
	q := c.query
	page := c.view.Page
	generation := c.generation
	if cached, ok := c.cache[cacheKey{query: q.Key(), page: page}]; ok {
		c.applyLocked(cached, nil)
		view := c.view
		c.mu.Unlock()
		return view, nil
	}
	c.view.Loading = true
	c.view.Status = StatusLoading
	c.view.Message = ""
	c.view.Err = nil
	c.mu.Unlock()

	result, err := c.EnsurePage(ctx, q, page)

	c.mu.Lock()
	defer c.mu.Unlock()
	if generation != c.generation || c.view.Page != page {
		return c.view, ErrStale
	}
	c.applyLocked(result, err)
	return c.view, err
}

func (c *Controller) applyLocked(page models.Page, err error) {
	c.view.Loading = false
	c.view.Err = err

	switch {
	case err == nil:
		c.view.Ads = page.Ads
		c.view.HasMore = page.HasMore
		if page.Empty() {
			c.view.Status = StatusEmpty
			c.view.Message = MessageNoAds
		} else {
			c.view.Status = StatusReady
			c.view.Message = ""
		}
	case errors.Is(err, adsapi.ErrFormat):
		c.view.Ads = nil
		c.view.HasMore = false
		c.view.Status = StatusError
		c.view.Message = MessageBadFormat
	default:
		c.view.Ads = nil
		c.view.HasMore = false
		c.view.Status = StatusError
		c.view.Message = MessageFetchFailed
	}
}

// Next moves to the following page when the current one reported more
// results. It reports whether the position changed.
func (c *Controller) Next() bool {
	c.mu.Lock()
	defer c.mu.Unlock()
	if !c.view.CanNext() {
		return false
	}
	c.moveLocked(c.view.Page + 1)
	return true
}

// Previous moves back one page. It is a no-op on page 1.
func (c *Controller) Previous() bool {
	c.mu.Lock()
	defer c.mu.Unlock()
	if !c.view.CanPrevious() {
		return false
	}
	c.moveLocked(c.view.Page - 1)
	return true
}

func (c *Controller) moveLocked(page int) {
	c.view = View{Query: c.query, Page: page, Status: StatusIdle}
}

// View returns a snapshot of what should be displayed.
func (c *Controller) View() View {
	c.mu.Lock()
	defer c.mu.Unlock()
	return c.view
}

// CachedPages returns how many pages are cached for the active query.
func (c *Controller) CachedPages() int {
	c.mu.Lock()
	defer c.mu.Unlock()
	return len(c.cache)
}
