package render

import "github.com/meigma/pak/tile"

// Block geometry.
const (
	// FloorRows is the number of floor rows (grid y) in a block.
	FloorRows = 64
	// FloorCols is the number of floor columns (grid x) in a block.
	FloorCols = 128

	BlockWidth  = 64 * 24 * 2
	BlockHeight = 64 * 12 * 2
)

// Project returns the block-raster pixel position of grid cell (gx, gy).
func Project(gx, gy int) (x, y int) {
	baseX := -24 * (gx / 2)
	baseY := 63*12 - 12*(gx/2)
	return baseX + gx*24 + gy*24, baseY + gy*12
}

// NewBlockRaster returns a zeroed block-sized raster.
func NewBlockRaster() *tile.Raster {
	return tile.NewRaster(BlockWidth, BlockHeight)
}

// Cell is one floor cell. A TileID of zero or less is empty.
type Cell struct {
	TileID int
	Index  int
}

// Empty reports whether the cell draws nothing.
func (c Cell) Empty() bool {
	return c.TileID <= 0
}

// Item is a decoration placed at grid position (X, Y).
type Item struct {
	X, Y   int
	TileID int
	Index  int
}

// Object is a placed object. Objects are drawn in ascending Layer order;
// objects on the same layer keep their order. A TileID of 0 or less draws
// nothing.
type Object struct {
	X, Y   int
	TileID int
	Index  int
	Layer  int
}

// Block is one map block.
type Block struct {
	// Key identifies the block for raster caching. Blocks without a key are
	// never cached.
	Key string

	// Floor is indexed [gy][gx].
	Floor       [FloorRows][FloorCols]Cell
	Decorations []Item
	Objects     []Object
}

// Layer selects which block layers are drawn.
type Layer uint8

const (
	LayerFloor Layer = 1 << iota
	LayerDecorations
	LayerObjects

	AllLayers = LayerFloor | LayerDecorations | LayerObjects
)

// Has reports whether l includes every layer in other.
func (l Layer) Has(other Layer) bool {
	return l&other == other
}
