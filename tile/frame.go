package tile

// PixelFrame is a frame decoded into its own raster.
// Mask marks the pixels the frame covers, including covered zero colors.
type PixelFrame struct {
	Header Header
	Family Family
	*Raster
	Mask []bool
}

// Covered reports whether the frame covers (x, y).
func (f *PixelFrame) Covered(x, y int) bool {
	return f.In(x, y) && f.Mask[y*f.Width+x]
}

// Coverage returns the number of covered pixels.
func (f *PixelFrame) Coverage() int {
	n := 0
	for _, m := range f.Mask {
		if m {
			n++
		}
	}
	return n
}

// DecodeFrame decodes frame into a raster just large enough for its pixels.
// Blended frames are decoded against a zero background, so each pixel holds
// its raw incoming color rather than a blended value.
func DecodeFrame(frame []byte) (*PixelFrame, error) {
	runs, h, err := Runs(frame)
	if err != nil {
		return nil, err
	}

	w, ht := 0, 0
	if FamilyOf(h.Type) == FamilyDiamond {
		w, ht = DiamondWidth, DiamondRows
	}
	for _, r := range runs {
		w = max(w, r.X+r.Len())
		ht = max(ht, r.Y+1)
	}

	f := &PixelFrame{
		Header: h,
		Family: FamilyOf(h.Type),
		Raster: NewRaster(w, ht),
		Mask:   make([]bool, w*ht),
	}
	for _, r := range runs {
		for i := range r.Len() {
			idx := r.Y*w + r.X + i
			f.Pix[idx] = r.Color(i)
			f.Mask[idx] = true
		}
	}
	return f, nil
}
