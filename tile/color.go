package tile

import "sync"

// representativeRow is the widest diamond row.
const representativeRow = 11

// RepresentativeColor returns one color standing in for the whole frame, used
// for mini-map sampling: the middle pixel of the widest diamond row, or the
// first decoded pixel of a run-length frame. It returns 0 for frames it
// cannot decode or that have no pixels.
func RepresentativeColor(frame []byte) uint16 {
	if len(frame) == 0 {
		return 0
	}
	if FamilyOf(frame[0]) == FamilyDiamond {
		pos := 1
		for y := range representativeRow {
			pos += 2 * DiamondRunLength(y)
		}
		mid := pos + 2*(DiamondRunLength(representativeRow)/2)
		if mid+2 > len(frame) {
			return 0
		}
		return uint16(frame[mid]) | uint16(frame[mid+1])<<8
	}

	var color uint16
	found := false
	_, _ = walk(frame, func(r Run) { //nolint:errcheck // partial frames still yield a color
		if !found {
			color = r.Color(0)
			found = true
		}
	})
	return color
}

type colorKey struct {
	tile  int
	frame int
}

// ColorCache memoizes representative colors per (tile, frame).
// Entries are insert-if-absent. A frame that cannot be loaded yields 0 and is
// retried on the next call.
type ColorCache struct {
	frames *Cache
	colors sync.Map // colorKey -> uint16
}

// NewColorCache creates a ColorCache over a frame cache.
func NewColorCache(frames *Cache) *ColorCache {
	return &ColorCache{frames: frames}
}

// Color returns the representative color of frame index of tile id.
func (c *ColorCache) Color(id, index int) uint16 {
	key := colorKey{tile: id, frame: index}
	if v, ok := c.colors.Load(key); ok {
		return v.(uint16) //nolint:forcetypeassert // only uint16 is stored
	}
	f, err := c.frames.Frame(id, index)
	if err != nil {
		return 0
	}
	actual, _ := c.colors.LoadOrStore(key, RepresentativeColor(f))
	return actual.(uint16) //nolint:forcetypeassert // only uint16 is stored
}

// Clear drops every cached color.
func (c *ColorCache) Clear() {
	c.colors.Clear()
}
