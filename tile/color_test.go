package tile

import (
	"errors"
	"sync/atomic"
	"testing"

	"github.com/stretchr/testify/assert"

	"github.com/meigma/pak/internal/testutil"
)

func TestRepresentativeColor(t *testing.T) {
	t.Parallel()

	coords := func(x, y int) uint16 { return uint16(y<<8 | x) } //nolint:gosec // small coordinates

	// Middle pixel of the widest row.
	assert.Equal(t, uint16(0x0B0C), RepresentativeColor(testutil.DiamondFrame(1, coords)))
	assert.Equal(t, uint16(0x0B0C), RepresentativeColor(testutil.DiamondFrame(0, coords)))

	// First decoded pixel.
	assert.Equal(t, uint16(1), RepresentativeColor(sampleRunFrame(2)))
	assert.Equal(t, uint16(1), RepresentativeColor(sampleRunFrame(34)))

	assert.Zero(t, RepresentativeColor(nil))
	assert.Zero(t, RepresentativeColor([]byte{2, 0, 0, 0, 0}))
	assert.Zero(t, RepresentativeColor(testutil.DiamondFrame(1, coords)[:200]))
}

func TestColorCache(t *testing.T) {
	t.Parallel()

	var fail atomic.Bool
	fail.Store(true)
	var loads atomic.Int32
	frames := NewCache(func(int) ([]byte, error) {
		loads.Add(1)
		if fail.Load() {
			return nil, errors.New("transient")
		}
		return testutil.BuildTil([][]byte{sampleRunFrame(2)}), nil
	})
	colors := NewColorCache(frames)

	assert.Zero(t, colors.Color(5, 0))

	fail.Store(false)
	assert.Equal(t, uint16(1), colors.Color(5, 0))
	assert.Equal(t, uint16(1), colors.Color(5, 0))
	assert.Equal(t, int32(2), loads.Load())

	assert.Zero(t, colors.Color(5, 1))

	colors.Clear()
	assert.Equal(t, uint16(1), colors.Color(5, 0))
}
