package paktype

import (
	"testing"

	"github.com/stretchr/testify/assert"
)

func TestCompression_String(t *testing.T) {
	t.Parallel()

	assert.Equal(t, "none", CompressionNone.String())
	assert.Equal(t, "zlib", CompressionZlib.String())
	assert.Equal(t, "brotli", CompressionBrotli.String())
	assert.Equal(t, "unknown", Compression(9).String())
}

func TestParseCompression(t *testing.T) {
	t.Parallel()

	for _, c := range []Compression{CompressionNone, CompressionZlib, CompressionBrotli} {
		got, ok := ParseCompression(c.String())
		assert.True(t, ok)
		assert.Equal(t, c, got)
	}
	_, ok := ParseCompression("zstd")
	assert.False(t, ok)
}
