package integrity

import (
	"encoding/binary"
	"fmt"

	"github.com/opencontainers/go-digest"

	"github.com/meigma/pak/tile"
)

// Heuristic thresholds.
const (
	// SuspectThreshold is the suspect frame count at which a tile is invalid.
	SuspectThreshold = 5
	// RunThreshold is the frame length above which a following one-byte
	// frame marks where corruption starts.
	RunThreshold = 10
)

// Report is the result of checking one tile file.
type Report struct {
	TileID     int
	Valid      bool
	FrameCount int
	Size       int
	// CorruptedFrom is the first frame believed corrupt, or -1.
	CorruptedFrom int
	// Suspect lists suspect frame indices in ascending order. A frame
	// flagged by two heuristics appears twice.
	Suspect []int
	Cause   string
	// Digest identifies the checked bytes so reports for the same content
	// found in different packages can be merged.
	Digest digest.Digest
}

// Err returns nil for a valid report and an error wrapping ErrCorruptAsset
// otherwise.
func (r Report) Err() error {
	if r.Valid {
		return nil
	}
	return fmt.Errorf("%w: tile %d: %s", ErrCorruptAsset, r.TileID, r.Cause)
}

func invalid(r Report, format string, args ...any) Report {
	r.Valid = false
	r.Cause = fmt.Sprintf(format, args...)
	return r
}

// Check validates tile file data for tileID.
func Check(tileID int, data []byte) Report {
	r := Report{TileID: tileID, CorruptedFrom: -1, Size: len(data)}
	if len(data) > 0 {
		r.Digest = digest.FromBytes(data)
	}
	if len(data) < 4 {
		return invalid(r, "data empty or too short")
	}

	count := int(int32(binary.LittleEndian.Uint32(data))) //nolint:gosec // sign is checked below
	r.FrameCount = count
	if count <= 0 || count > tile.MaxFrames {
		return invalid(r, "invalid frame count %d", count)
	}
	header := 4 + 4*count
	if header > len(data) {
		return invalid(r, "file too small for the offset table of %d frames", count)
	}

	offsets := make([]int, count)
	for i := range offsets {
		offsets[i] = int(int32(binary.LittleEndian.Uint32(data[4+4*i:]))) //nolint:gosec // negative offsets are reported as suspect
	}

	r.Suspect, r.CorruptedFrom = suspects(offsets, len(data)-header)
	if len(r.Suspect) >= SuspectThreshold {
		return invalid(r, "offset table anomaly: %d frames may be corrupt starting at frame %d",
			len(r.Suspect), r.CorruptedFrom)
	}
	r.Valid = true

	broken, checked, err := scan(data)
	if err != nil {
		return invalid(r, "%v", err)
	}
	if broken > 0 {
		return invalid(r, "%d/%d frames have truncated scan data", broken, checked)
	}
	return r
}

// suspects applies the offset-table heuristics. A frame that starts one byte
// after its predecessor is suspect, and the first such frame following a
// predecessor longer than RunThreshold marks where corruption starts. An
// offset at or past the end of the frame data makes its frame suspect too.
// A frame caught by both rules is listed twice and counts twice toward
// SuspectThreshold.
func suspects(offsets []int, body int) ([]int, int) {
	from := -1
	prevValid := -1
	var out []int

	for i := 1; i < len(offsets); i++ {
		switch delta := offsets[i] - offsets[i-1]; {
		case delta == 1:
			if prevValid > RunThreshold && from == -1 {
				from = i
			}
			out = append(out, i)
		case delta > 1:
			prevValid = delta
		}

		if offsets[i] >= body {
			if from == -1 {
				from = i
			}
			out = append(out, i)
		}
	}
	return out, from
}

// scan parses the tile and structurally decodes every frame longer than one
// byte. One-byte frames are placeholders and are not decoded. It returns the
// number of frames that failed and the number examined.
func scan(data []byte) (broken, checked int, err error) {
	fs, err := tile.Parse(data)
	if err != nil {
		return 0, 0, fmt.Errorf("frame table unusable: %w", err)
	}
	for _, f := range fs.Frames() {
		if len(f) <= 1 {
			continue
		}
		checked++
		if tile.Validate(f) != nil {
			broken++
		}
	}
	return broken, checked, nil
}
