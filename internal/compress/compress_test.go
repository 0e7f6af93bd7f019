package compress

import (
	"bytes"
	"sync"
	"testing"

	"github.com/google/go-cmp/cmp"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/meigma/pak/internal/paktype"
)

func TestRoundTrip(t *testing.T) {
	t.Parallel()

	dataCases := []struct {
		name string
		data []byte
	}{
		{"Repeat", bytes.Repeat([]byte{42}, 100500)},
		{"Text", []byte("<?xml version=\"1.0\"?><map id=\"4\"/>")},
		{"Empty", []byte{}},
	}
	kinds := []Kind{paktype.CompressionZlib, paktype.CompressionBrotli}

	reg := NewRegistry()
	for _, dc := range dataCases {
		for _, kind := range kinds {
			t.Run(dc.name+kind.String(), func(t *testing.T) {
				t.Parallel()
				compressed, err := Compress(kind, dc.data)
				require.NoError(t, err)

				got, err := reg.Decompress(kind, compressed, len(dc.data))
				require.NoError(t, err)
				if !cmp.Equal(dc.data, got) {
					t.Errorf("Decompress(Compress(input)) != input")
				}
			})
		}
	}
}

func TestDecompressSizeMismatch(t *testing.T) {
	t.Parallel()

	reg := NewRegistry()
	data := bytes.Repeat([]byte("abc"), 100)
	for _, kind := range []Kind{paktype.CompressionZlib, paktype.CompressionBrotli} {
		compressed, err := Compress(kind, data)
		require.NoError(t, err)

		_, err = reg.Decompress(kind, compressed, len(data)+10)
		require.ErrorIs(t, err, ErrTruncated, kind.String())

		_, err = reg.Decompress(kind, compressed, len(data)-10)
		require.ErrorIs(t, err, ErrTruncated, kind.String())
	}
}

func TestDecompressCorrupt(t *testing.T) {
	t.Parallel()

	reg := NewRegistry()
	_, err := reg.Decompress(paktype.CompressionZlib, []byte{0xde, 0xad, 0xbe, 0xef}, 16)
	require.ErrorIs(t, err, ErrDecompression)
}

func TestDecompressNone(t *testing.T) {
	t.Parallel()

	reg := NewRegistry()
	got, err := reg.Decompress(paktype.CompressionNone, []byte("abc"), 3)
	require.NoError(t, err)
	assert.Equal(t, []byte("abc"), got)

	_, err = reg.Decompress(paktype.CompressionNone, []byte("abc"), 4)
	require.ErrorIs(t, err, ErrTruncated)
}

func TestRegistryWithout(t *testing.T) {
	t.Parallel()

	reg := NewRegistry()
	degraded := reg.Without(paktype.CompressionZlib)

	assert.True(t, reg.Has(paktype.CompressionZlib))
	assert.False(t, degraded.Has(paktype.CompressionZlib))
	assert.True(t, degraded.Has(paktype.CompressionBrotli))

	_, err := degraded.Decompress(paktype.CompressionZlib, []byte{1, 2, 3}, 3)
	require.ErrorIs(t, err, ErrNativeDecoderUnavailable)
}

func TestDecompressUnknownKind(t *testing.T) {
	t.Parallel()

	_, err := NewRegistry().Decompress(paktype.Compression(3), []byte{1, 2, 3}, 3)
	require.ErrorIs(t, err, ErrDecompression)
	assert.NotErrorIs(t, err, ErrNativeDecoderUnavailable)
	assert.ErrorContains(t, err, "unknown compression kind 3")
}

func TestPooledDecodersConcurrent(t *testing.T) {
	t.Parallel()

	reg := NewRegistry()
	data := bytes.Repeat([]byte("tile"), 4096)
	zc, err := Compress(paktype.CompressionZlib, data)
	require.NoError(t, err)
	bc, err := Compress(paktype.CompressionBrotli, data)
	require.NoError(t, err)

	var wg sync.WaitGroup
	errs := make(chan error, 32)
	for i := range 32 {
		wg.Add(1)
		go func() {
			defer wg.Done()
			kind, src := paktype.CompressionZlib, zc
			if i%2 == 1 {
				kind, src = paktype.CompressionBrotli, bc
			}
			got, err := reg.Decompress(kind, src, len(data))
			if err == nil && !bytes.Equal(got, data) {
				err = assert.AnError
			}
			errs <- err
		}()
	}
	wg.Wait()
	close(errs)
	for err := range errs {
		require.NoError(t, err)
	}
}
