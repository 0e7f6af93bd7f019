package pak

import "github.com/meigma/pak/internal/paktype"

// Sentinel errors re-exported from internal/paktype.
var (
	// ErrNotFound is returned when the index has no record for a logical name.
	ErrNotFound = paktype.ErrNotFound

	// ErrTruncated is returned when an entry is shorter than its record declares,
	// either on disk or after decompression.
	ErrTruncated = paktype.ErrTruncated

	// ErrDecompression is returned when a compressed stream is corrupt or its
	// compression kind is unknown.
	ErrDecompression = paktype.ErrDecompression

	// ErrNativeDecoderUnavailable is reported by the compression registry when a
	// kind has no decoder. Extract consumes it and returns a degraded payload.
	ErrNativeDecoderUnavailable = paktype.ErrNativeDecoderUnavailable

	// ErrMalformedTile is returned when tile data is inconsistent with its length.
	ErrMalformedTile = paktype.ErrMalformedTile

	// ErrCorruptAsset is returned for assets the integrity validator rejects.
	ErrCorruptAsset = paktype.ErrCorruptAsset

	// ErrSizeOverflow is returned when offsets or sizes exceed supported limits.
	ErrSizeOverflow = paktype.ErrSizeOverflow
)
