package render

import (
	"context"
	"errors"
	"testing"

	"github.com/google/go-cmp/cmp"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/meigma/pak/internal/testutil"
	"github.com/meigma/pak/tile"
)

const (
	red   uint16 = 0x7C00
	green uint16 = 0x03E0
	blue  uint16 = 0x001F
)

func solid(c uint16) func(x, y int) uint16 {
	return func(int, int) uint16 { return c }
}

// dot is a one-pixel opaque frame at its origin.
func dot(c uint16) []byte {
	return testutil.RunFrame(2, 0, 0, 1, [][]testutil.Segment{{{Colors: []uint16{c}}}})
}

// testTiles serves:
//
//	1: diamond frames (red, blue)
//	2: dot frames (green, blue, red)
func testTiles() *tile.Cache {
	files := map[int][]byte{
		1: testutil.BuildTil([][]byte{
			testutil.DiamondFrame(1, solid(red)),
			testutil.DiamondFrame(1, solid(blue)),
		}),
		2: testutil.BuildTil([][]byte{dot(green), dot(blue), dot(red)}),
	}
	return tile.NewCache(func(id int) ([]byte, error) {
		data, ok := files[id]
		if !ok {
			return nil, errors.New("no such tile")
		}
		return data, nil
	})
}

func TestProject(t *testing.T) {
	t.Parallel()

	tests := []struct {
		gx, gy int
		x, y   int
	}{
		{0, 0, 0, 756},
		{1, 0, 24, 756},
		{2, 0, 24, 744},
		{0, 1, 24, 768},
		{127, 63, 3048, 756},
		{126, 0, 1512, 0},
	}
	for _, tt := range tests {
		x, y := Project(tt.gx, tt.gy)
		assert.Equal(t, tt.x, x, "x of (%d,%d)", tt.gx, tt.gy)
		assert.Equal(t, tt.y, y, "y of (%d,%d)", tt.gx, tt.gy)
	}
}

func TestNewBlockRaster(t *testing.T) {
	t.Parallel()

	r := NewBlockRaster()
	assert.Equal(t, 3072, r.Width)
	assert.Equal(t, 1536, r.Height)
	assert.Zero(t, r.Count())
}

func TestRenderBlock_Floor(t *testing.T) {
	t.Parallel()

	c := New(testTiles())
	var b Block
	b.Floor[0][0] = Cell{TileID: 1}

	r := c.RenderBlock(&b)
	assert.Equal(t, tile.DiamondPixels, r.Count())
	assert.Equal(t, red, r.Pixel(0, 756))
	assert.Equal(t, red, r.Pixel(23, 767))
}

func TestRenderBlock_LayerOrder(t *testing.T) {
	t.Parallel()

	c := New(testTiles())
	var b Block
	b.Floor[0][0] = Cell{TileID: 1}
	b.Decorations = []Item{{X: 0, Y: 0, TileID: 2, Index: 0}}
	b.Objects = []Object{
		{X: 1, Y: 0, TileID: 2, Index: 2, Layer: 2},
		{X: 1, Y: 0, TileID: 2, Index: 1, Layer: 1},
	}

	r := c.RenderBlock(&b)
	// Decoration drawn over the floor.
	assert.Equal(t, green, r.Pixel(0, 756))
	// Higher layer drawn last even though listed first.
	assert.Equal(t, red, r.Pixel(24, 756))
	// Input order is untouched.
	assert.Equal(t, 2, b.Objects[0].Layer)
}

func TestRenderBlock_WithLayers(t *testing.T) {
	t.Parallel()

	c := New(testTiles(), WithLayers(LayerObjects))
	var b Block
	b.Floor[0][0] = Cell{TileID: 1}
	b.Objects = []Object{{X: 1, Y: 0, TileID: 2, Index: 0}}

	r := c.RenderBlock(&b)
	assert.Equal(t, 1, r.Count())
	assert.Equal(t, green, r.Pixel(24, 756))
}

func TestRenderBlock_SkipsBadTiles(t *testing.T) {
	t.Parallel()

	c := New(testTiles())
	var b Block
	b.Floor[0][0] = Cell{TileID: 99}
	b.Floor[0][1] = Cell{TileID: 1, Index: 7}
	b.Floor[0][2] = Cell{TileID: 1, Index: 1}

	r := c.RenderBlock(&b)
	assert.Equal(t, tile.DiamondPixels, r.Count())
	x, y := Project(2, 0)
	assert.Equal(t, blue, r.Pixel(x, y))
}

func TestRenderBlocks(t *testing.T) {
	t.Parallel()

	c := New(testTiles(), WithWorkers(4))
	blocks := make([]*Block, 6)
	for i := range blocks {
		blocks[i] = &Block{}
		blocks[i].Floor[0][i] = Cell{TileID: 1}
	}
	blocks[0].Key = "a"
	blocks[1].Key = "b"

	out, err := c.RenderBlocks(context.Background(), blocks)
	require.NoError(t, err)
	require.Len(t, out, len(blocks))
	for i, r := range out {
		x, y := Project(i, 0)
		assert.Equal(t, red, r.Pixel(x, y), "block %d", i)
		assert.True(t, cmp.Equal(c.RenderBlock(blocks[i]).Pix, r.Pix), "block %d differs from serial render", i)
	}
	assert.Equal(t, 2, c.CachedBlocks())

	again, err := c.RenderBlocks(context.Background(), blocks)
	require.NoError(t, err)
	assert.Same(t, out[0], again[0])
	assert.Same(t, out[1], again[1])
	assert.NotSame(t, out[2], again[2])

	c.ClearCache()
	assert.Zero(t, c.CachedBlocks())
}

func TestRenderBlocks_Serial(t *testing.T) {
	t.Parallel()

	c := New(testTiles(), WithWorkers(-1))
	out, err := c.RenderBlocks(context.Background(), []*Block{{}, {}})
	require.NoError(t, err)
	assert.Len(t, out, 2)
}

func TestRenderBlocks_Canceled(t *testing.T) {
	t.Parallel()

	ctx, cancel := context.WithCancel(context.Background())
	cancel()

	c := New(testTiles())
	_, err := c.RenderBlocks(ctx, []*Block{{}, {}})
	require.ErrorIs(t, err, context.Canceled)
}

func TestRenderSampled(t *testing.T) {
	t.Parallel()

	c := New(testTiles())
	sampled := &Block{Key: "s"}
	sampled.Floor[0][0] = Cell{TileID: 1}
	sampled.Floor[0][1] = Cell{TileID: 1, Index: 1} // not on the sample grid
	sampled.Objects = []Object{
		{X: 3, Y: 1, TileID: 2, Index: 1},
		{X: 4, Y: 2, TileID: 2, Index: 1},
	}

	var want Block
	for gy := range 2 {
		for gx := range 2 {
			want.Floor[gy][gx] = Cell{TileID: 1}
		}
	}
	want.Objects = []Object{{X: 4, Y: 2, TileID: 2, Index: 1}}

	got := c.RenderSampled(sampled, 2)
	expected := c.RenderBlock(&want)
	assert.True(t, cmp.Equal(expected.Pix, got.Pix), "sampled render differs from equivalent full render")

	assert.Same(t, got, c.RenderSampled(sampled, 2))
	assert.Equal(t, 1, c.CachedBlocks())
}

func TestRenderBlock_SkipsEmptyObjects(t *testing.T) {
	t.Parallel()

	tiles := testTiles()
	c := New(tiles)
	b := &Block{Objects: []Object{{X: 1, Y: 1, TileID: 0}, {X: 2, Y: 2, TileID: -1}}}

	assert.Zero(t, c.RenderBlock(b).Count())
	assert.Zero(t, c.RenderSampled(b, 2).Count())
	assert.Zero(t, tiles.Loads())
}

func TestRenderBlocks_NilBlock(t *testing.T) {
	t.Parallel()

	c := New(testTiles())
	keyed := &Block{Key: "k"}
	keyed.Floor[0][0] = Cell{TileID: 1}

	var out []*tile.Raster
	require.NotPanics(t, func() {
		var err error
		out, err = c.RenderBlocks(context.Background(), []*Block{nil, keyed})
		require.NoError(t, err)
	})
	require.Len(t, out, 2)
	require.NotNil(t, out[0])
	assert.Zero(t, out[0].Count())
	assert.Equal(t, tile.DiamondPixels, out[1].Count())
	assert.Equal(t, 1, c.CachedBlocks())

	assert.Zero(t, c.RenderBlock(nil).Count())
	assert.Zero(t, c.RenderSampled(nil, 4).Count())
}
