package pak

import (
	"testing"

	"github.com/stretchr/testify/assert"

	"github.com/meigma/pak/internal/testutil"
)

func TestTextHeaderLen(t *testing.T) {
	t.Parallel()

	tests := []struct {
		name string
		want int
	}{
		{"skin.spz", 5},
		{"SKIN.SPZ", 5},
		{"zone3-c.xml", 4},
		{"Zone.XML", 4},
		{"items.json", 4},
		{"layout.ui", 4},
		{"layout.UI", 0},
		{"4.til", 0},
		{"xml", 0},
	}
	for _, tt := range tests {
		assert.Equal(t, tt.want, textHeaderLen(tt.name), tt.name)
	}
}

func TestDecodeText(t *testing.T) {
	t.Parallel()

	plain := []byte("<?xml version=\"1.0\"?><root/>")
	enc := testutil.EncodeText(plain, 4)
	assert.Equal(t, byte('X'), enc[0])
	assert.Equal(t, plain, decodeText(enc, 4))

	// Only a leading 'X' is rewritten.
	other := testutil.EncodeText([]byte("SPZ0 body bytes here"), 5)
	assert.Equal(t, []byte("SPZ0 body bytes here"), decodeText(other, 5))

	// Too short for a header.
	assert.Equal(t, []byte("Xa"), decodeText([]byte("Xa"), 4))
}
