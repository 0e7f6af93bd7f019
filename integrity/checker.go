package integrity

import (
	"context"
	"fmt"
	"log/slog"
	"runtime"
	"slices"
	"strconv"
	"sync"

	"golang.org/x/sync/errgroup"
	"golang.org/x/sync/singleflight"
)

// Loader returns the raw bytes of tile file id.
type Loader func(id int) ([]byte, error)

// Checker checks tiles fetched through a Loader.
//
// Results are memoized per id for the lifetime of the Checker, and
// concurrent checks of the same id share one load.
type Checker struct {
	load    Loader
	workers int // 0 = auto, <0 = serial, >0 = fixed count
	logger  *slog.Logger

	group singleflight.Group
	mu    sync.RWMutex
	memo  map[int]Report
}

// Option configures a Checker.
type Option func(*Checker)

// WithWorkers sets the number of tiles checked in parallel by CheckAll.
// 0 uses GOMAXPROCS; a negative value checks serially.
func WithWorkers(n int) Option {
	return func(c *Checker) {
		c.workers = n
	}
}

// WithLogger sets the logger for check diagnostics.
// If not set, logging is disabled.
func WithLogger(logger *slog.Logger) Option {
	return func(c *Checker) {
		c.logger = logger
	}
}

// NewChecker creates a Checker that loads tiles with load.
func NewChecker(load Loader, opts ...Option) *Checker {
	c := &Checker{
		load: load,
		memo: make(map[int]Report),
	}
	for _, opt := range opts {
		opt(c)
	}
	return c
}

// log returns the logger, falling back to a discard logger if nil.
func (c *Checker) log() *slog.Logger {
	if c.logger == nil {
		return slog.New(slog.DiscardHandler)
	}
	return c.logger
}

// CheckID loads and checks tile id. A tile that cannot be loaded yields an
// invalid report whose cause describes the load failure.
func (c *Checker) CheckID(id int) Report {
	c.mu.RLock()
	r, ok := c.memo[id]
	c.mu.RUnlock()
	if ok {
		return r
	}

	v, _, _ := c.group.Do(strconv.Itoa(id), func() (any, error) {
		c.mu.RLock()
		r, ok := c.memo[id]
		c.mu.RUnlock()
		if ok {
			return r, nil
		}

		r = c.check(id)
		c.mu.Lock()
		c.memo[id] = r
		c.mu.Unlock()
		return r, nil
	})
	return v.(Report) //nolint:forcetypeassert // only Report is returned
}

func (c *Checker) check(id int) Report {
	data, err := c.load(id)
	if err != nil {
		c.log().Error("tile load failed", "tile", id, "error", err)
		return Report{TileID: id, CorruptedFrom: -1, Cause: fmt.Sprintf("load failed: %v", err)}
	}
	if len(data) == 0 {
		return Report{TileID: id, CorruptedFrom: -1, Cause: "tile data unavailable"}
	}
	r := Check(id, data)
	if !r.Valid {
		c.log().Warn("tile corrupt", "tile", id, "cause", r.Cause, "digest", r.Digest)
	} else {
		c.log().Debug("tile ok", "tile", id, "frames", r.FrameCount)
	}
	return r
}

// CheckAll checks ids in parallel and returns the invalid reports sorted by
// tile id. Ids less than or equal to zero are skipped and duplicates are
// checked once. It stops early only when ctx is canceled.
func (c *Checker) CheckAll(ctx context.Context, ids []int) ([]Report, error) {
	unique := make([]int, 0, len(ids))
	seen := make(map[int]bool, len(ids))
	for _, id := range ids {
		if id <= 0 || seen[id] {
			continue
		}
		seen[id] = true
		unique = append(unique, id)
	}

	reports := make([]Report, len(unique))
	g, ctx := errgroup.WithContext(ctx)
	g.SetLimit(c.workerCount(len(unique)))
	for i, id := range unique {
		g.Go(func() error {
			if err := ctx.Err(); err != nil {
				return err
			}
			reports[i] = c.CheckID(id)
			return nil
		})
	}
	if err := g.Wait(); err != nil {
		return nil, fmt.Errorf("check tiles: %w", err)
	}

	var bad []Report
	for _, r := range reports {
		if !r.Valid {
			bad = append(bad, r)
		}
	}
	slices.SortFunc(bad, func(a, b Report) int { return a.TileID - b.TileID })
	c.log().Info("tile sweep complete", "checked", len(unique), "corrupt", len(bad))
	return bad, nil
}

// workerCount determines the number of tiles checked at once.
func (c *Checker) workerCount(n int) int {
	if c.workers < 0 {
		return 1
	}
	workers := c.workers
	if workers == 0 {
		workers = runtime.GOMAXPROCS(0)
	}
	return max(1, min(workers, n))
}
