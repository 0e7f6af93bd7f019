package render

import (
	"cmp"
	"context"
	"fmt"
	"image"
	"image/color"
	"slices"

	"golang.org/x/image/draw"
	"golang.org/x/sync/errgroup"

	"github.com/meigma/pak/tile"
)

// FullDetailLimit is the largest block count MiniMap renders at full detail
// before scaling. Larger maps are averaged from representative colors.
const FullDetailLimit = 10

// Placement positions a block within the map, in block-raster pixels.
type Placement struct {
	Block *Block
	X, Y  int
}

// MiniMap renders placed blocks into a thumbnail whose longer side is at most
// target pixels. The background is black and zero pixels are transparent.
func (c *Compositor) MiniMap(ctx context.Context, placed []Placement, target int) (*image.RGBA, error) {
	if target <= 0 {
		return nil, fmt.Errorf("mini map: invalid target size %d", target)
	}
	mapW, mapH := 0, 0
	for _, p := range placed {
		mapW = max(mapW, p.X+BlockWidth)
		mapH = max(mapH, p.Y+BlockHeight)
	}
	if mapW <= 0 || mapH <= 0 {
		return image.NewRGBA(image.Rect(0, 0, 0, 0)), nil
	}

	scale := min(float64(target)/float64(mapW), float64(target)/float64(mapH))
	dst := image.NewRGBA(image.Rect(0, 0, int(float64(mapW)*scale), int(float64(mapH)*scale)))
	draw.Draw(dst, dst.Bounds(), image.NewUniform(color.Black), image.Point{}, draw.Src)

	var err error
	if len(placed) > FullDetailLimit {
		err = c.miniMapAveraged(ctx, dst, placed, scale)
	} else {
		err = c.miniMapScaled(ctx, dst, placed, scale)
	}
	if err != nil {
		return nil, err
	}
	return dst, nil
}

// miniMapScaled renders every block (floor and objects) and scales it down.
func (c *Compositor) miniMapScaled(ctx context.Context, dst *image.RGBA, placed []Placement, scale float64) error {
	blocks := make([]*Block, len(placed))
	for i, p := range placed {
		blocks[i] = p.Block
	}
	rasters, err := c.RenderBlocks(ctx, blocks)
	if err != nil {
		return fmt.Errorf("mini map: %w", err)
	}

	order := make([]int, len(placed))
	for i := range order {
		order[i] = i
	}
	slices.SortStableFunc(order, func(a, b int) int {
		return cmp.Or(cmp.Compare(placed[a].Y, placed[b].Y), cmp.Compare(placed[a].X, placed[b].X))
	})

	for _, i := range order {
		p := placed[i]
		x0, y0 := int(float64(p.X)*scale), int(float64(p.Y)*scale)
		rect := image.Rect(x0, y0, x0+int(BlockWidth*scale), y0+int(BlockHeight*scale))
		src := colorKeyed{rasters[i]}
		draw.NearestNeighbor.Scale(dst, rect, src, src.Bounds(), draw.Over, nil)
	}
	c.log().Debug("mini map rendered", "blocks", len(placed), "mode", "scaled")
	return nil
}

type miniPixel struct {
	x, y int
	c    uint16
}

// miniMapAveraged computes each thumbnail pixel as the mean representative
// color of the floor cells it covers.
func (c *Compositor) miniMapAveraged(ctx context.Context, dst *image.RGBA, placed []Placement, scale float64) error {
	results := make([][]miniPixel, len(placed))
	bounds := dst.Bounds()

	g, ctx := errgroup.WithContext(ctx)
	g.SetLimit(c.workerCount(len(placed)))
	for i, p := range placed {
		g.Go(func() error {
			if err := ctx.Err(); err != nil {
				return err
			}
			results[i] = c.averageBlock(p, scale, bounds)
			return nil
		})
	}
	if err := g.Wait(); err != nil {
		return fmt.Errorf("mini map: %w", err)
	}

	for _, px := range slices.Concat(results...) {
		dst.Set(px.x, px.y, tile.RGB555(px.c))
	}
	c.log().Debug("mini map rendered", "blocks", len(placed), "mode", "averaged")
	return nil
}

func (c *Compositor) averageBlock(p Placement, scale float64, bounds image.Rectangle) []miniPixel {
	if p.Block == nil {
		return nil
	}
	destX, destY := int(float64(p.X)*scale), int(float64(p.Y)*scale)
	destW := max(1, int(BlockWidth*scale))
	destH := max(1, int(BlockHeight*scale))
	cellsX := float64(FloorCols) / float64(destW)
	cellsY := float64(FloorRows) / float64(destH)

	var out []miniPixel
	for dy := range destH {
		my := destY + dy
		if my < bounds.Min.Y || my >= bounds.Max.Y {
			continue
		}
		y0, y1 := cellSpan(dy, cellsY, FloorRows)
		for dx := range destW {
			mx := destX + dx
			if mx < bounds.Min.X || mx >= bounds.Max.X {
				continue
			}
			x0, x1 := cellSpan(dx, cellsX, FloorCols)
			if avg, ok := c.averageCells(p.Block, x0, x1, y0, y1); ok {
				out = append(out, miniPixel{x: mx, y: my, c: avg})
			}
		}
	}
	return out
}

// cellSpan returns the half-open cell range covered by thumbnail pixel d.
// At least one cell is always covered.
func cellSpan(d int, cellsPerPixel float64, limit int) (int, int) {
	start := int(float64(d) * cellsPerPixel)
	end := int(float64(d+1) * cellsPerPixel)
	if end <= start {
		end = start + 1
	}
	return start, min(end, limit)
}

// averageCells averages the non-zero representative colors of the floor
// cells in [x0,x1) x [y0,y1) per RGB555 channel.
func (c *Compositor) averageCells(b *Block, x0, x1, y0, y1 int) (uint16, bool) {
	var r, g, bl, n int
	for cy := y0; cy < y1; cy++ {
		for cx := x0; cx < x1; cx++ {
			cell := b.Floor[cy][cx]
			if cell.Empty() {
				continue
			}
			col := c.colors.Color(cell.TileID, cell.Index)
			if col == 0 {
				continue
			}
			r += int(col>>10) & 0x1f
			g += int(col>>5) & 0x1f
			bl += int(col) & 0x1f
			n++
		}
	}
	if n == 0 {
		return 0, false
	}
	return uint16((r/n)<<10 | (g/n)<<5 | bl/n), true //nolint:gosec // channels are 5 bits
}

// colorKeyed presents a raster with zero pixels transparent.
type colorKeyed struct {
	*tile.Raster
}

func (k colorKeyed) ColorModel() color.Model {
	return color.RGBA64Model
}

func (k colorKeyed) At(x, y int) color.Color {
	c := k.Pixel(x, y)
	if c == 0 {
		return color.Transparent
	}
	return tile.RGB555(c)
}
