package pak

import (
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestMapIndex(t *testing.T) {
	t.Parallel()

	idx := NewMapIndex()
	idx.Add("Tile", Record{Name: "4.til", Offset: 12})
	idx.Add("Text", Record{Name: "Zone3-C.xml", Offset: 40})

	rec, ok := idx.Lookup("Tile", "4.TIL")
	require.True(t, ok)
	assert.Equal(t, uint64(12), rec.Offset)

	rec, ok = idx.Lookup("Text", "zone3-c.xml")
	require.True(t, ok)
	assert.Equal(t, uint64(40), rec.Offset)

	_, ok = idx.Lookup("Text", "4.til")
	assert.False(t, ok)
	assert.Equal(t, 2, idx.Len())
}

func TestRecordSizes(t *testing.T) {
	t.Parallel()

	stored := Record{Size: 10}
	assert.False(t, stored.Compressed())
	assert.Equal(t, uint64(10), stored.DiskSize())

	packed := Record{Size: 10, CompressedSize: 6, Compression: CompressionZlib}
	assert.True(t, packed.Compressed())
	assert.Equal(t, uint64(6), packed.DiskSize())

	// A compressed size without a kind is read but not decompressed.
	odd := Record{Size: 10, CompressedSize: 6}
	assert.False(t, odd.Compressed())
	assert.Equal(t, uint64(6), odd.DiskSize())
}
