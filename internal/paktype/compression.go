// Package paktype defines shared types used across the pak packages and their
// internal packages. This avoids circular imports between pak and internal/compress.
package paktype

// Compression identifies the compression applied to a package entry.
type Compression uint8

const (
	CompressionNone Compression = iota
	CompressionZlib
	CompressionBrotli
)

func (c Compression) String() string {
	switch c {
	case CompressionNone:
		return "none"
	case CompressionZlib:
		return "zlib"
	case CompressionBrotli:
		return "brotli"
	default:
		return "unknown"
	}
}

// ParseCompression returns the kind named by s, as printed by String.
func ParseCompression(s string) (Compression, bool) {
	for _, c := range []Compression{CompressionNone, CompressionZlib, CompressionBrotli} {
		if c.String() == s {
			return c, true
		}
	}
	return 0, false
}
