package tile

// Blend combines an incoming color with the existing destination color using
// the one's-complement additive rule of shadow and overlay tiles.
func Blend(existing, incoming uint16) uint16 {
	return existing + 0xFFFF - incoming
}

// Blit decodes frame and writes it into dst with its top-left corner at
// (x, y). Diamond and opaque frames overwrite the destination; blended frames
// combine with it via Blend. Pixels outside dst are dropped.
//
// Blit returns the number of pixels written. On a malformed frame, runs
// decoded before the fault have already been written.
func Blit(frame []byte, dst *Raster, x, y int) (int, error) {
	if len(frame) == 0 {
		_, err := ReadHeader(frame)
		return 0, err
	}
	blend := FamilyOf(frame[0]) == FamilyBlended
	written := 0
	_, err := walk(frame, func(r Run) {
		py := y + r.Y
		if py < 0 || py >= dst.Height {
			return
		}
		for i := range r.Len() {
			px := x + r.X + i
			if blend {
				if dst.BlendPixel(px, py, r.Color(i)) {
					written++
				}
			} else if dst.SetPixel(px, py, r.Color(i)) {
				written++
			}
		}
	})
	return written, err
}
