package tile

import "fmt"

// Family is the layout family selected by a frame's type byte.
type Family uint8

const (
	// FamilyDiamond frames are fixed 24-row isometric half diamonds.
	FamilyDiamond Family = iota
	// FamilyBlended frames are run-length rows blended into the destination.
	FamilyBlended
	// FamilyOpaque frames are run-length rows that overwrite the destination.
	FamilyOpaque
)

func (f Family) String() string {
	switch f {
	case FamilyDiamond:
		return "diamond"
	case FamilyBlended:
		return "blended"
	case FamilyOpaque:
		return "opaque"
	default:
		return "unknown"
	}
}

// FamilyOf returns the family for a frame type byte.
func FamilyOf(typ byte) Family {
	switch typ {
	case 0, 1, 8, 9, 16, 17:
		return FamilyDiamond
	case 34, 35:
		return FamilyBlended
	default:
		return FamilyOpaque
	}
}

// leftAligned reports whether a diamond type starts its rows at x=0.
func leftAligned(typ byte) bool {
	return typ == 1 || typ == 9 || typ == 17
}

// Diamond geometry.
const (
	DiamondRows  = 24
	DiamondWidth = 24
	// DiamondPixels is the pixel count of a full diamond frame.
	DiamondPixels = 288
)

// DiamondRunLength returns the number of pixels in diamond row y.
func DiamondRunLength(y int) int {
	if y <= 11 {
		return (y + 1) * 2
	}
	return (23 - y) * 2
}

// Header is the sub-header of a run-length frame.
type Header struct {
	Type    byte
	XOffset uint8
	YOffset uint8
	Width   uint8
	Height  uint8
}

// headerLen is the type byte plus the four sub-header bytes.
const headerLen = 5

// ReadHeader returns the type and, for run-length families, the sub-header
// of a frame. Diamond frames have a zero sub-header.
func ReadHeader(frame []byte) (Header, error) {
	if len(frame) == 0 {
		return Header{}, fmt.Errorf("%w: empty frame", ErrMalformedTile)
	}
	h := Header{Type: frame[0]}
	if FamilyOf(h.Type) == FamilyDiamond {
		return h, nil
	}
	if len(frame) < headerLen {
		return Header{}, fmt.Errorf("%w: frame type %d: %d bytes is too short for a header", ErrMalformedTile, h.Type, len(frame))
	}
	h.XOffset, h.YOffset, h.Width, h.Height = frame[1], frame[2], frame[3], frame[4]
	return h, nil
}
