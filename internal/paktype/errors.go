package paktype

import "errors"

// Sentinel errors for package and tile operations.
var (
	// ErrNotFound is returned when the index has no record for a logical name.
	ErrNotFound = errors.New("pak: not found")

	// ErrTruncated is returned when a payload is shorter than its record declares.
	ErrTruncated = errors.New("pak: truncated payload")

	// ErrDecompression is returned when a compressed stream is corrupt.
	ErrDecompression = errors.New("pak: decompression failed")

	// ErrNativeDecoderUnavailable is returned when no decoder is registered
	// for a compression kind.
	ErrNativeDecoderUnavailable = errors.New("pak: decoder unavailable")

	// ErrMalformedTile is returned when a tile offset table or frame stream
	// is inconsistent with its buffer length.
	ErrMalformedTile = errors.New("pak: malformed tile")

	// ErrCorruptAsset is returned for tiles the integrity validator rejects.
	ErrCorruptAsset = errors.New("pak: corrupt asset")

	// ErrSizeOverflow is returned when offsets or sizes exceed supported limits.
	ErrSizeOverflow = errors.New("pak: size overflow")
)
