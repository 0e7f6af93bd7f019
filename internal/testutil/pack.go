package testutil

import (
	"github.com/meigma/pak/internal/compress"
	"github.com/meigma/pak/internal/crypt"
	"github.com/meigma/pak/internal/paktype"
)

// PackEntry describes one entry to place in a test package file.
type PackEntry struct {
	Plain       []byte
	Compression paktype.Compression
	Encrypted   bool
}

// PackedEntry reports where an entry landed in the package.
type PackedEntry struct {
	Offset         uint64
	Size           uint64
	CompressedSize uint64
}

// BuildPack concatenates encoded entries into a package body.
// Entries are compressed first, then encrypted with cipher A, matching the
// order the extractor reverses.
func BuildPack(entries []PackEntry) ([]byte, []PackedEntry, error) {
	var data []byte
	placed := make([]PackedEntry, 0, len(entries))
	for _, e := range entries {
		body := append([]byte(nil), e.Plain...)
		var csize uint64
		if e.Compression != paktype.CompressionNone {
			c, err := compress.Compress(e.Compression, body)
			if err != nil {
				return nil, nil, err
			}
			body = c
			csize = uint64(len(c))
		}
		if e.Encrypted {
			crypt.EncryptA(body)
		}
		placed = append(placed, PackedEntry{
			Offset:         uint64(len(data)),
			Size:           uint64(len(e.Plain)),
			CompressedSize: csize,
		})
		data = append(data, body...)
	}
	return data, placed, nil
}

// EncodeText obfuscates a markup payload the way the client stores it.
func EncodeText(plain []byte, headerLen int) []byte {
	if len(plain) < headerLen {
		return plain
	}
	out := append([]byte(nil), plain[:headerLen]...)
	if out[0] == '<' {
		out[0] = 'X'
	}
	return append(out, crypt.EncryptB(plain[headerLen:])...)
}
