package tile

import (
	"image"
	"image/color"
)

// Raster is a row-major buffer of RGB555 pixels.
//
// A Raster is owned by one writer at a time. Every write is bounds-checked;
// out-of-range writes are dropped.
type Raster struct {
	Width  int
	Height int
	Pix    []uint16
}

// NewRaster returns a zeroed raster of the given size.
func NewRaster(width, height int) *Raster {
	if width < 0 {
		width = 0
	}
	if height < 0 {
		height = 0
	}
	return &Raster{Width: width, Height: height, Pix: make([]uint16, width*height)}
}

// In reports whether (x, y) lies inside the raster.
func (r *Raster) In(x, y int) bool {
	return x >= 0 && x < r.Width && y >= 0 && y < r.Height
}

// Pixel returns the color at (x, y), or 0 outside the raster.
func (r *Raster) Pixel(x, y int) uint16 {
	if !r.In(x, y) {
		return 0
	}
	return r.Pix[y*r.Width+x]
}

// SetPixel writes c at (x, y) and reports whether the pixel was inside.
func (r *Raster) SetPixel(x, y int, c uint16) bool {
	if !r.In(x, y) {
		return false
	}
	r.Pix[y*r.Width+x] = c
	return true
}

// BlendPixel combines c with the pixel at (x, y) using Blend.
func (r *Raster) BlendPixel(x, y int, c uint16) bool {
	if !r.In(x, y) {
		return false
	}
	i := y*r.Width + x
	r.Pix[i] = Blend(r.Pix[i], c)
	return true
}

// Clone returns a deep copy of r.
func (r *Raster) Clone() *Raster {
	out := &Raster{Width: r.Width, Height: r.Height, Pix: make([]uint16, len(r.Pix))}
	copy(out.Pix, r.Pix)
	return out
}

// Count returns the number of non-zero pixels.
func (r *Raster) Count() int {
	n := 0
	for _, c := range r.Pix {
		if c != 0 {
			n++
		}
	}
	return n
}

// Interface compliance.
var _ image.Image = (*Raster)(nil)

// ColorModel implements image.Image.
func (r *Raster) ColorModel() color.Model {
	return RGB555Model
}

// Bounds implements image.Image.
func (r *Raster) Bounds() image.Rectangle {
	return image.Rect(0, 0, r.Width, r.Height)
}

// At implements image.Image.
func (r *Raster) At(x, y int) color.Color {
	return RGB555(r.Pixel(x, y))
}

// RGB555 is a 15-bit color: 5 bits each of red, green, blue, top bit unused.
type RGB555 uint16

// RGBA implements color.Color. Pixels are fully opaque.
func (c RGB555) RGBA() (r, g, b, a uint32) {
	r = expand5(uint32(c>>10) & 0x1f)
	g = expand5(uint32(c>>5) & 0x1f)
	b = expand5(uint32(c) & 0x1f)
	return r, g, b, 0xffff
}

func expand5(v uint32) uint32 {
	v = v<<3 | v>>2
	return v<<8 | v
}

// RGB555Model converts colors to RGB555.
var RGB555Model = color.ModelFunc(func(c color.Color) color.Color {
	if c, ok := c.(RGB555); ok {
		return c
	}
	r, g, b, _ := c.RGBA()
	return RGB555((r>>11)<<10 | (g>>11)<<5 | b>>11)
})
