// Package geocache caches geometry descriptor text per pattern id, with at
// most one retrieval in flight for any id.
package geocache

import (
	"context"
	"fmt"
	"sync"
	"time"

	"github.com/sirupsen/logrus"
	"golang.org/x/sync/errgroup"

	"github.com/ziadkadry99/tilepat/internal/source"
)

// State is the lifecycle stage of one cache entry.
type State int

const (
	StateEmpty State = iota
	StatePending
	StateResolved
)

func (s State) String() string {
	switch s {
	case StatePending:
		return "pending"
	case StateResolved:
		return "resolved"
	default:
		return "empty"
	}
}

// Options configures a Cache.
type Options struct {
	// FetchTimeout bounds each retrieval. Zero means no limit.
	FetchTimeout time.Duration
	Logger       *logrus.Logger
}

// Stats are cumulative cache counters.
type Stats struct {
	Fetches  int64 `json:"fetches"`
	Hits     int64 `json:"hits"`
	Joins    int64 `json:"joins"`
	Failures int64 `json:"failures"`
	Resolved int   `json:"resolved"`
	Pending  int   `json:"pending"`
}

// inflight is the shared handle of a pending retrieval. text and err are
// written once, before done is closed.
type inflight struct {
	done    chan struct{}
	text    string
	err     error
	waiters int
}

// Cache maps pattern ids to descriptor text fetched lazily from a Source.
// Resolved entries are kept for the lifetime of the Cache; a failed
// retrieval leaves the entry empty so a later Get retries.
type Cache struct {
	src     source.Source
	timeout time.Duration
	log     *logrus.Logger

	mu       sync.Mutex
	resolved map[string]string
	pending  map[string]*inflight
	stats    Stats
}

// New creates an empty cache over src.
func New(src source.Source, opts Options) *Cache {
	logger := opts.Logger
	if logger == nil {
		logger = logrus.StandardLogger()
	}
	return &Cache{
		src:      src,
		timeout:  opts.FetchTimeout,
		log:      logger,
		resolved: make(map[string]string),
		pending:  make(map[string]*inflight),
	}
}

// Get returns the descriptor text for id. Concurrent callers for the same id
// share a single retrieval and observe the same outcome. Source errors are
// returned unchanged. Canceling ctx stops this caller waiting; the retrieval
// itself runs to completion.
func (c *Cache) Get(ctx context.Context, id string) (string, error) {
	c.mu.Lock()
	if text, ok := c.resolved[id]; ok {
		c.stats.Hits++
		c.mu.Unlock()
		return text, nil
	}
	call, ok := c.pending[id]
	if ok {
		c.stats.Joins++
	} else {
		call = &inflight{done: make(chan struct{})}
		c.pending[id] = call
		c.stats.Fetches++
		go c.fetch(id, call)
	}
	call.waiters++
	c.mu.Unlock()

	select {
	case <-call.done:
		return call.text, call.err
	case <-ctx.Done():
		return "", ctx.Err()
	}
}

func (c *Cache) fetch(id string, call *inflight) {
	ctx := context.Background()
	if c.timeout > 0 {
		var cancel context.CancelFunc
		ctx, cancel = context.WithTimeout(ctx, c.timeout)
		defer cancel()
	}

	start := time.Now()
	text, err := c.src.Fetch(ctx, id)

	c.mu.Lock()
	delete(c.pending, id)
	if err == nil {
		c.resolved[id] = text
	} else {
		c.stats.Failures++
	}
	call.text, call.err = text, err
	waiters := call.waiters
	c.mu.Unlock()
	close(call.done)

	entry := c.log.WithFields(logrus.Fields{
		"id":       id,
		"waiters":  waiters,
		"duration": time.Since(start),
	})
	if err != nil {
		entry.WithError(err).Warn("geometry fetch failed")
		return
	}
	entry.Debug("geometry fetched")
}

// State reports the current state of id's entry.
func (c *Cache) State(id string) State {
	c.mu.Lock()
	defer c.mu.Unlock()
	if _, ok := c.resolved[id]; ok {
		return StateResolved
	}
	if _, ok := c.pending[id]; ok {
		return StatePending
	}
	return StateEmpty
}

// Waiters returns how many callers have joined id's pending retrieval, or 0
// when none is in flight.
func (c *Cache) Waiters(id string) int {
	c.mu.Lock()
	defer c.mu.Unlock()
	if call, ok := c.pending[id]; ok {
		return call.waiters
	}
	return 0
}

// Stats returns a snapshot of the cache counters.
func (c *Cache) Stats() Stats {
	c.mu.Lock()
	defer c.mu.Unlock()
	s := c.stats
	s.Resolved = len(c.resolved)
	s.Pending = len(c.pending)
	return s
}

// Warm fetches every id, at most limit at a time, and returns the first
// failure. A limit below 1 means no limit.
func (c *Cache) Warm(ctx context.Context, ids []string, limit int) error {
	g, gctx := errgroup.WithContext(ctx)
	if limit > 0 {
		g.SetLimit(limit)
	}
	for _, id := range ids {
		g.Go(func() error {
			if _, err := c.Get(gctx, id); err != nil {
				return fmt.Errorf("warming %s: %w", id, err)
			}
			return nil
		})
	}
	return g.Wait()
}
