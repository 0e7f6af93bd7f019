package render

import (
	"cmp"
	"context"
	"fmt"
	"log/slog"
	"runtime"
	"slices"
	"sync"

	"golang.org/x/sync/errgroup"

	"github.com/meigma/pak/tile"
)

// Compositor draws blocks from a shared tile cache.
//
// A Compositor is safe for concurrent use. Each render call writes into its
// own raster; the tile, color and block caches are insert-once.
type Compositor struct {
	tiles   *tile.Cache
	colors  *tile.ColorCache
	layers  Layer
	workers int // 0 = auto, <0 = serial, >0 = fixed count
	logger  *slog.Logger

	blocks sync.Map // string -> *tile.Raster
}

// New creates a Compositor that reads frames from tiles.
func New(tiles *tile.Cache, opts ...Option) *Compositor {
	c := &Compositor{
		tiles:  tiles,
		layers: AllLayers,
	}
	for _, opt := range opts {
		opt(c)
	}
	if c.colors == nil {
		c.colors = tile.NewColorCache(tiles)
	}
	return c
}

// log returns the logger, falling back to a discard logger if nil.
func (c *Compositor) log() *slog.Logger {
	if c.logger == nil {
		return slog.New(slog.DiscardHandler)
	}
	return c.logger
}

// RenderBlock draws b into a new block raster: the floor row by row, then
// decorations in order, then objects by ascending layer. Tiles that fail to
// load or decode are logged and skipped.
func (c *Compositor) RenderBlock(b *Block) *tile.Raster {
	dst := NewBlockRaster()
	c.renderInto(dst, b, c.layers)
	return dst
}

func (c *Compositor) renderInto(dst *tile.Raster, b *Block, layers Layer) {
	if b == nil {
		return
	}
	if layers.Has(LayerFloor) {
		for gy := range FloorRows {
			for gx := range FloorCols {
				cell := b.Floor[gy][gx]
				if cell.Empty() {
					continue
				}
				c.draw(dst, b.Key, cell.TileID, cell.Index, gx, gy)
			}
		}
	}
	if layers.Has(LayerDecorations) {
		for _, it := range b.Decorations {
			if it.TileID <= 0 {
				continue
			}
			c.draw(dst, b.Key, it.TileID, it.Index, it.X, it.Y)
		}
	}
	if layers.Has(LayerObjects) {
		for _, o := range sortedObjects(b.Objects) {
			if o.TileID <= 0 {
				continue
			}
			c.draw(dst, b.Key, o.TileID, o.Index, o.X, o.Y)
		}
	}
}

// sortedObjects returns objects stably ordered by layer.
func sortedObjects(objs []Object) []Object {
	sorted := slices.Clone(objs)
	slices.SortStableFunc(sorted, func(a, b Object) int {
		return cmp.Compare(a.Layer, b.Layer)
	})
	return sorted
}

// draw blits frame index of tile id at grid cell (gx, gy).
func (c *Compositor) draw(dst *tile.Raster, block string, id, index, gx, gy int) {
	frame, err := c.tiles.Frame(id, index)
	if err != nil {
		c.log().Warn("skipping tile", "block", block, "tile", id, "frame", index, "error", err)
		return
	}
	x, y := Project(gx, gy)
	if _, err := tile.Blit(frame, dst, x, y); err != nil {
		c.log().Warn("tile frame truncated", "block", block, "tile", id, "frame", index, "error", err)
	}
}

// RenderBlocks renders blocks in parallel and returns their rasters in input
// order. Rasters of keyed blocks are cached and returned shared on later
// calls. It stops early only when ctx is canceled.
func (c *Compositor) RenderBlocks(ctx context.Context, blocks []*Block) ([]*tile.Raster, error) {
	out := make([]*tile.Raster, len(blocks))

	g, ctx := errgroup.WithContext(ctx)
	g.SetLimit(c.workerCount(len(blocks)))
	for i, b := range blocks {
		g.Go(func() error {
			if err := ctx.Err(); err != nil {
				return err
			}
			out[i] = c.cachedBlock(b)
			return nil
		})
	}
	if err := g.Wait(); err != nil {
		return nil, fmt.Errorf("render blocks: %w", err)
	}
	return out, nil
}

// cachedBlock returns the cached raster for b or renders and caches it. A nil
// block renders blank.
func (c *Compositor) cachedBlock(b *Block) *tile.Raster {
	if b == nil || b.Key == "" {
		return c.RenderBlock(b)
	}
	if v, ok := c.blocks.Load(b.Key); ok {
		c.log().Debug("block cache hit", "block", b.Key)
		return v.(*tile.Raster) //nolint:forcetypeassert // only *tile.Raster is stored
	}
	r := c.RenderBlock(b)
	actual, _ := c.blocks.LoadOrStore(b.Key, r)
	c.log().Debug("block rendered", "block", b.Key)
	return actual.(*tile.Raster) //nolint:forcetypeassert // only *tile.Raster is stored
}

// RenderSampled draws a low-detail version of b: the floor cell at every
// step-th row and column fills its step x step neighbourhood, and only objects
// on a step-aligned grid position are drawn. Decorations are skipped. Keyed
// results are cached per step.
func (c *Compositor) RenderSampled(b *Block, step int) *tile.Raster {
	if step <= 1 || b == nil {
		return c.cachedBlock(b)
	}
	key := ""
	if b.Key != "" {
		key = fmt.Sprintf("%s#s%d", b.Key, step)
		if v, ok := c.blocks.Load(key); ok {
			return v.(*tile.Raster) //nolint:forcetypeassert // only *tile.Raster is stored
		}
	}

	dst := NewBlockRaster()
	if c.layers.Has(LayerFloor) {
		for sy := 0; sy < FloorRows; sy += step {
			for sx := 0; sx < FloorCols; sx += step {
				cell := b.Floor[sy][sx]
				if cell.Empty() {
					continue
				}
				for gy := sy; gy < min(sy+step, FloorRows); gy++ {
					for gx := sx; gx < min(sx+step, FloorCols); gx++ {
						c.draw(dst, b.Key, cell.TileID, cell.Index, gx, gy)
					}
				}
			}
		}
	}
	if c.layers.Has(LayerObjects) {
		for _, o := range sortedObjects(b.Objects) {
			if o.TileID <= 0 || o.X%step != 0 || o.Y%step != 0 {
				continue
			}
			c.draw(dst, b.Key, o.TileID, o.Index, o.X, o.Y)
		}
	}

	if key == "" {
		return dst
	}
	actual, _ := c.blocks.LoadOrStore(key, dst)
	return actual.(*tile.Raster) //nolint:forcetypeassert // only *tile.Raster is stored
}

// CachedBlocks returns the number of cached block rasters.
func (c *Compositor) CachedBlocks() int {
	n := 0
	c.blocks.Range(func(_, _ any) bool {
		n++
		return true
	})
	return n
}

// ClearCache drops cached block rasters, frame sets and colors.
// Call it when the map is reloaded.
func (c *Compositor) ClearCache() {
	c.blocks.Clear()
	c.colors.Clear()
	c.tiles.Clear()
}

// workerCount determines the number of blocks rendered at once.
func (c *Compositor) workerCount(n int) int {
	if c.workers < 0 {
		return 1
	}
	workers := c.workers
	if workers == 0 {
		workers = runtime.GOMAXPROCS(0)
	}
	return max(1, min(workers, n))
}
