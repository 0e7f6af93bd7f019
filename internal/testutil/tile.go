package testutil

import "encoding/binary"

// DiamondRows is the row count of a diamond-raw frame.
const DiamondRows = 24

// DiamondRunLength returns the pixel count of diamond row y.
func DiamondRunLength(y int) int {
	if y <= 11 {
		return (y + 1) * 2
	}
	return (23 - y) * 2
}

// DiamondFrame builds a diamond-raw frame of the given type byte. color
// supplies each pixel from its frame-local coordinates.
func DiamondFrame(typ byte, color func(x, y int) uint16) []byte {
	right := typ == 0 || typ == 8 || typ == 16
	out := []byte{typ}
	for y := range DiamondRows {
		n := DiamondRunLength(y)
		x := 0
		if right {
			x = 24 - n
		}
		for i := range n {
			out = binary.LittleEndian.AppendUint16(out, color(x+i, y))
		}
	}
	return out
}

// Segment is one run of colors within a run-length frame row.
type Segment struct {
	// Skip is the raw skip byte; the decoder advances x by Skip/2.
	Skip   byte
	Colors []uint16
}

// RunFrame builds a run-length frame (opaque or blended, depending on typ).
// The height is len(rows).
func RunFrame(typ, xOff, yOff, width byte, rows [][]Segment) []byte {
	out := []byte{typ, xOff, yOff, width, byte(len(rows))}
	for _, row := range rows {
		out = append(out, byte(len(row)))
		for _, seg := range row {
			out = append(out, seg.Skip, byte(len(seg.Colors)))
			for _, c := range seg.Colors {
				out = binary.LittleEndian.AppendUint16(out, c)
			}
		}
	}
	return out
}

// SizedFrame returns a structurally valid opaque run frame of exactly n bytes
// (5 <= n <= 260) made of empty rows.
func SizedFrame(n int) []byte {
	out := []byte{2, 0, 0, 0, byte(n - 5)}
	for range n - 5 {
		out = append(out, 0)
	}
	return out
}

// BuildTil assembles a tile file from frames.
func BuildTil(frames [][]byte) []byte {
	offsets := make([]int32, len(frames))
	var data []byte
	for i, f := range frames {
		offsets[i] = int32(len(data)) //nolint:gosec // fixtures are small
		data = append(data, f...)
	}
	return TilWithOffsets(offsets, data)
}

// TilWithOffsets assembles a tile file with an explicit offset table.
func TilWithOffsets(offsets []int32, data []byte) []byte {
	out := binary.LittleEndian.AppendUint32(nil, uint32(len(offsets))) //nolint:gosec // fixtures are small
	for _, off := range offsets {
		out = binary.LittleEndian.AppendUint32(out, uint32(off)) //nolint:gosec // negative offsets are test input
	}
	return append(out, data...)
}

// OffsetsFromDeltas returns offsets starting at 0 that advance by deltas.
func OffsetsFromDeltas(deltas []int32) []int32 {
	offsets := make([]int32, 0, len(deltas)+1)
	var off int32
	offsets = append(offsets, off)
	for _, d := range deltas {
		off += d
		offsets = append(offsets, off)
	}
	return offsets
}
