package tile

import (
	"fmt"
	"log/slog"
	"sync"
	"sync/atomic"
)

// Loader returns the raw bytes of tile file id.
type Loader func(id int) ([]byte, error)

// Cache holds parsed frame sets keyed by tile id.
//
// Entries are inserted once and never replaced; the first completed load for
// an id wins. Concurrent loads of an id that is not yet cached are not
// coordinated: each caller parses independently and the losers' results are
// discarded. A Cache is constructed once per loaded map and cleared on
// reload.
type Cache struct {
	load    Loader
	entries sync.Map // int -> *FrameSet
	loads   atomic.Int64
	logger  *slog.Logger
}

// CacheOption configures a Cache.
type CacheOption func(*Cache)

// WithCacheLogger sets the logger for cache diagnostics.
// If not set, logging is disabled.
func WithCacheLogger(logger *slog.Logger) CacheOption {
	return func(c *Cache) {
		c.logger = logger
	}
}

// NewCache creates a Cache that fills misses through load.
func NewCache(load Loader, opts ...CacheOption) *Cache {
	c := &Cache{load: load}
	for _, opt := range opts {
		opt(c)
	}
	return c
}

// log returns the logger, falling back to a discard logger if nil.
func (c *Cache) log() *slog.Logger {
	if c.logger == nil {
		return slog.New(slog.DiscardHandler)
	}
	return c.logger
}

// Get returns the frame set for id, loading and parsing it on a miss.
// Failed loads are not cached.
func (c *Cache) Get(id int) (*FrameSet, error) {
	if v, ok := c.entries.Load(id); ok {
		return v.(*FrameSet), nil //nolint:forcetypeassert // only *FrameSet is stored
	}

	c.loads.Add(1)
	data, err := c.load(id)
	if err != nil {
		return nil, fmt.Errorf("load tile %d: %w", id, err)
	}
	fs, err := Parse(data)
	if err != nil {
		return nil, fmt.Errorf("parse tile %d: %w", id, err)
	}

	actual, loaded := c.entries.LoadOrStore(id, fs)
	if loaded {
		c.log().Debug("tile cache race lost", "tile", id)
	} else {
		c.log().Debug("tile cached", "tile", id, "frames", fs.Len())
	}
	return actual.(*FrameSet), nil //nolint:forcetypeassert // only *FrameSet is stored
}

// Frame returns frame index of tile id.
func (c *Cache) Frame(id, index int) ([]byte, error) {
	fs, err := c.Get(id)
	if err != nil {
		return nil, err
	}
	f, ok := fs.Frame(index)
	if !ok {
		return nil, fmt.Errorf("%w: tile %d has %d frames, want frame %d", ErrMalformedTile, id, fs.Len(), index)
	}
	return f, nil
}

// Len returns the number of cached tiles.
func (c *Cache) Len() int {
	n := 0
	c.entries.Range(func(_, _ any) bool {
		n++
		return true
	})
	return n
}

// Loads returns how many loads the cache has issued, including losers of races.
func (c *Cache) Loads() int64 {
	return c.loads.Load()
}

// Clear drops every cached frame set.
func (c *Cache) Clear() {
	c.entries.Clear()
}
