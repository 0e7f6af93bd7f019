package tile

import (
	"encoding/binary"
	"fmt"
)

// Run is a horizontal run of decoded pixels in frame-local coordinates.
// Colors aliases the frame and holds two little-endian bytes per pixel.
type Run struct {
	X, Y   int
	Colors []byte
}

// Len returns the number of pixels in the run.
func (r Run) Len() int {
	return len(r.Colors) / 2
}

// Color returns pixel i of the run.
func (r Run) Color(i int) uint16 {
	return binary.LittleEndian.Uint16(r.Colors[2*i:])
}

// walk decodes frame and calls emit for every run. A run is emitted only
// once all of its bytes are known to lie inside the frame. emit may be nil.
func walk(frame []byte, emit func(Run)) (Header, error) {
	h, err := ReadHeader(frame)
	if err != nil {
		return Header{}, err
	}
	if FamilyOf(h.Type) == FamilyDiamond {
		return h, walkDiamond(frame, h.Type, emit)
	}
	return h, walkRuns(frame, h, emit)
}

func walkDiamond(frame []byte, typ byte, emit func(Run)) error {
	pos := 1
	left := leftAligned(typ)
	for y := range DiamondRows {
		n := DiamondRunLength(y)
		end := pos + 2*n
		if end > len(frame) {
			return fmt.Errorf("%w: diamond frame type %d: row %d ends at byte %d of %d",
				ErrMalformedTile, typ, y, end, len(frame))
		}
		x := 0
		if !left {
			x = DiamondWidth - n
		}
		if emit != nil && n > 0 {
			emit(Run{X: x, Y: y, Colors: frame[pos:end]})
		}
		pos = end
	}
	return nil
}

func walkRuns(frame []byte, h Header, emit func(Run)) error {
	pos := headerLen
	for ty := range int(h.Height) {
		if pos >= len(frame) {
			return fmt.Errorf("%w: frame type %d: row %d has no segment count", ErrMalformedTile, h.Type, ty)
		}
		segments := int(frame[pos])
		pos++

		x := int(h.XOffset)
		y := int(h.YOffset) + ty
		for s := range segments {
			if pos+2 > len(frame) {
				return fmt.Errorf("%w: frame type %d: row %d segment %d header past end of frame",
					ErrMalformedTile, h.Type, ty, s)
			}
			x += int(frame[pos]) / 2
			n := int(frame[pos+1])
			pos += 2

			end := pos + 2*n
			if end > len(frame) {
				return fmt.Errorf("%w: frame type %d: row %d segment %d ends at byte %d of %d",
					ErrMalformedTile, h.Type, ty, s, end, len(frame))
			}
			if emit != nil && n > 0 {
				emit(Run{X: x, Y: y, Colors: frame[pos:end]})
			}
			x += n
			pos = end
		}
	}
	return nil
}

// Validate decodes frame without writing pixels and reports structural errors.
func Validate(frame []byte) error {
	_, err := walk(frame, nil)
	return err
}

// Runs returns the decoded runs of frame in stream order.
func Runs(frame []byte) ([]Run, Header, error) {
	var runs []Run
	h, err := walk(frame, func(r Run) { runs = append(runs, r) })
	if err != nil {
		return nil, Header{}, err
	}
	return runs, h, nil
}
