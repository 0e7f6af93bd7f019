package render

import (
	"log/slog"

	"github.com/meigma/pak/tile"
)

// Option configures a Compositor.
type Option func(*Compositor)

// WithLayers selects the layers drawn by RenderBlock and RenderBlocks.
// The default draws all layers.
func WithLayers(layers Layer) Option {
	return func(c *Compositor) {
		c.layers = layers
	}
}

// WithWorkers sets the number of blocks rendered in parallel.
// 0 uses GOMAXPROCS; a negative value renders serially.
func WithWorkers(n int) Option {
	return func(c *Compositor) {
		c.workers = n
	}
}

// WithLogger sets the logger for render diagnostics.
// If not set, logging is disabled.
func WithLogger(logger *slog.Logger) Option {
	return func(c *Compositor) {
		c.logger = logger
	}
}

// WithColorCache sets the representative color cache used by MiniMap.
// The default builds one over the compositor's tile cache.
func WithColorCache(colors *tile.ColorCache) Option {
	return func(c *Compositor) {
		if colors != nil {
			c.colors = colors
		}
	}
}
