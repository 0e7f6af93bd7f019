package tile

import (
	"encoding/binary"
	"fmt"
	"iter"
)

// MaxFrames is the largest frame count a tile file may declare.
const MaxFrames = 65536

// FrameSet holds the frames of one tile file.
// A FrameSet is immutable and safe to share between goroutines.
type FrameSet struct {
	frames [][]byte
}

// Parse splits a tile file into frames. Frames alias data, which must not be
// modified afterwards.
func Parse(data []byte) (*FrameSet, error) {
	if len(data) < 4 {
		return nil, fmt.Errorf("%w: %d bytes is too short for a frame count", ErrMalformedTile, len(data))
	}
	count := int(int32(binary.LittleEndian.Uint32(data))) //nolint:gosec // sign is checked below
	if count <= 0 || count > MaxFrames {
		return nil, fmt.Errorf("%w: invalid frame count %d", ErrMalformedTile, count)
	}
	header := 4 + 4*count
	if header > len(data) {
		return nil, fmt.Errorf("%w: offset table for %d frames exceeds %d bytes", ErrMalformedTile, count, len(data))
	}

	body := data[header:]
	frames := make([][]byte, count)
	prev := 0
	for i := range count {
		start := int(int32(binary.LittleEndian.Uint32(data[4+4*i:]))) //nolint:gosec // sign is checked below
		if start < prev || start > len(body) {
			return nil, fmt.Errorf("%w: frame %d offset %d out of range", ErrMalformedTile, i, start)
		}
		end := len(body)
		if i+1 < count {
			end = int(int32(binary.LittleEndian.Uint32(data[4+4*(i+1):]))) //nolint:gosec // sign is checked below
			if end < start || end > len(body) {
				return nil, fmt.Errorf("%w: frame %d ends at %d, outside %d data bytes", ErrMalformedTile, i, end, len(body))
			}
		}
		frames[i] = body[start:end:end]
		prev = start
	}
	return &FrameSet{frames: frames}, nil
}

// Len returns the number of frames.
func (fs *FrameSet) Len() int {
	return len(fs.frames)
}

// Frame returns frame i. The returned slice must not be modified.
func (fs *FrameSet) Frame(i int) ([]byte, bool) {
	if i < 0 || i >= len(fs.frames) {
		return nil, false
	}
	return fs.frames[i], true
}

// Frames returns an iterator over frame indices and frames.
func (fs *FrameSet) Frames() iter.Seq2[int, []byte] {
	return func(yield func(int, []byte) bool) {
		for i, f := range fs.frames {
			if !yield(i, f) {
				return
			}
		}
	}
}
