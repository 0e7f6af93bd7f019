package compress

import (
	"bytes"
	"fmt"

	"github.com/meigma/pak/internal/paktype"
)

// Compress encodes data with the given kind. Package files are never written
// by this module; encoding exists for tools and round-trip tests.
func Compress(kind Kind, data []byte) ([]byte, error) {
	var buf bytes.Buffer
	var err error
	switch kind {
	case paktype.CompressionNone:
		return bytes.Clone(data), nil
	case paktype.CompressionZlib:
		err = compressZlib(&buf, data)
	case paktype.CompressionBrotli:
		err = compressBrotli(&buf, data)
	default:
		return nil, fmt.Errorf("compress: unsupported kind %d", kind)
	}
	if err != nil {
		return nil, fmt.Errorf("compress %s: %w", kind, err)
	}
	return buf.Bytes(), nil
}
