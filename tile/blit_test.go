package tile

import (
	"image/color"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/meigma/pak/internal/testutil"
)

func TestBlend(t *testing.T) {
	t.Parallel()

	tests := []struct {
		existing, incoming, want uint16
	}{
		{0x0000, 0x7C00, 0x83FF},
		{0x7C00, 0x7C00, 0xFFFF},
		{0xFFFF, 0x0000, 0xFFFE},
		{0x1234, 0xFFFF, 0x1234},
		{0x0000, 0x0000, 0xFFFF},
	}
	for _, tt := range tests {
		assert.Equal(t, tt.want, Blend(tt.existing, tt.incoming), "Blend(%#04x, %#04x)", tt.existing, tt.incoming)
	}
}

func TestBlit_DiamondFootprint(t *testing.T) {
	t.Parallel()

	dst := NewRaster(48, 48)
	n, err := Blit(testutil.DiamondFrame(1, solid(0x1F)), dst, 0, 0)
	require.NoError(t, err)
	assert.Equal(t, DiamondPixels, n)
	assert.Equal(t, DiamondPixels, dst.Count())

	// Row 11 is the widest row; row 23 is empty.
	assert.Equal(t, uint16(0x1F), dst.Pixel(23, 11))
	assert.Zero(t, dst.Pixel(0, 23))
}

func TestBlit_Opaque(t *testing.T) {
	t.Parallel()

	dst := NewRaster(16, 16)
	for i := range dst.Pix {
		dst.Pix[i] = 9
	}
	n, err := Blit(sampleRunFrame(2), dst, 2, 1)
	require.NoError(t, err)
	assert.Equal(t, 4, n)
	assert.Equal(t, uint16(1), dst.Pixel(7, 5))
	assert.Equal(t, uint16(2), dst.Pixel(8, 5))
	assert.Equal(t, uint16(3), dst.Pixel(5, 6))
	assert.Equal(t, uint16(5), dst.Pixel(7, 6))
	assert.Equal(t, uint16(9), dst.Pixel(6, 6))
}

func TestBlit_Blended(t *testing.T) {
	t.Parallel()

	frame := testutil.RunFrame(34, 0, 0, 2, [][]testutil.Segment{
		{{Colors: []uint16{0x7C00, 0x0000}}},
	})
	dst := NewRaster(2, 1)
	dst.Pix[0] = 0x7C00
	dst.Pix[1] = 0xFFFF

	n, err := Blit(frame, dst, 0, 0)
	require.NoError(t, err)
	assert.Equal(t, 2, n)
	assert.Equal(t, []uint16{0xFFFF, 0xFFFE}, dst.Pix)
}

func TestBlit_Clipped(t *testing.T) {
	t.Parallel()

	dst := NewRaster(48, 48)
	n, err := Blit(testutil.DiamondFrame(0, solid(1)), dst, -100, -100)
	require.NoError(t, err)
	assert.Zero(t, n)
	assert.Zero(t, dst.Count())

	// Partially clipped: only the bottom-right quadrant of the origin lands.
	n, err = Blit(testutil.DiamondFrame(1, solid(1)), dst, 40, 40)
	require.NoError(t, err)
	assert.Positive(t, n)
	assert.Less(t, n, DiamondPixels)
	assert.Equal(t, n, dst.Count())
}

func TestBlit_Malformed(t *testing.T) {
	t.Parallel()

	run := sampleRunFrame(2)
	dst := NewRaster(16, 16)
	n, err := Blit(run[:len(run)-1], dst, 0, 0)
	require.ErrorIs(t, err, ErrMalformedTile)
	// Row 0 and the first segment of row 1 were decoded before the fault.
	assert.Equal(t, 3, n)

	_, err = Blit(nil, dst, 0, 0)
	require.ErrorIs(t, err, ErrMalformedTile)
}

func TestRaster_Image(t *testing.T) {
	t.Parallel()

	r := NewRaster(2, 1)
	r.SetPixel(0, 0, 0x7C00)
	r.SetPixel(1, 0, 0x001F)

	red, _, _, a := r.At(0, 0).RGBA()
	assert.Equal(t, uint32(0xffff), red)
	assert.Equal(t, uint32(0xffff), a)
	_, _, blue, _ := r.At(1, 0).RGBA()
	assert.Equal(t, uint32(0xffff), blue)

	assert.Equal(t, RGB555(0x7C00), RGB555Model.Convert(color.RGBA{R: 0xff, A: 0xff}))
	assert.False(t, r.SetPixel(2, 0, 1))
	assert.Zero(t, r.Pixel(-1, 0))

	c := r.Clone()
	c.Pix[0] = 0
	assert.Equal(t, uint16(0x7C00), r.Pix[0])
}
