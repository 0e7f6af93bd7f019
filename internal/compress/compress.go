// Package compress dispatches package entry decompression by compression kind.
//
// Decoders stream into a buffer pre-sized from the index record. A registry
// that lacks a decoder for a kind reports ErrNativeDecoderUnavailable so the
// caller can decide how to degrade.
package compress

import (
	"bytes"
	"errors"
	"fmt"
	"io"

	"github.com/meigma/pak/internal/paktype"
)

// Kind is an alias for paktype.Compression.
type Kind = paktype.Compression

// Re-export sentinel errors for callers that only import this package.
var (
	ErrDecompression            = paktype.ErrDecompression
	ErrTruncated                = paktype.ErrTruncated
	ErrNativeDecoderUnavailable = paktype.ErrNativeDecoderUnavailable
)

// Decoder decompresses a complete stream.
type Decoder interface {
	// NewReader returns a reader over the decompressed form of r and a
	// release function the caller must invoke when done.
	NewReader(r io.Reader) (io.Reader, func(), error)
}

// Registry maps compression kinds to decoders.
// A Registry is immutable after construction and safe for concurrent use.
type Registry struct {
	decoders map[Kind]Decoder
}

// NewRegistry returns a registry with the zlib and Brotli decoders installed.
func NewRegistry() *Registry {
	return &Registry{
		decoders: map[Kind]Decoder{
			paktype.CompressionZlib:   newZlibPool(),
			paktype.CompressionBrotli: newBrotliPool(),
		},
	}
}

// With returns a copy of r using dec for kind.
func (r *Registry) With(kind Kind, dec Decoder) *Registry {
	out := r.clone()
	out.decoders[kind] = dec
	return out
}

// Without returns a copy of r with no decoder for kind.
func (r *Registry) Without(kind Kind) *Registry {
	out := r.clone()
	delete(out.decoders, kind)
	return out
}

// Has reports whether a decoder is registered for kind.
func (r *Registry) Has(kind Kind) bool {
	_, ok := r.decoders[kind]
	return ok
}

func (r *Registry) clone() *Registry {
	out := &Registry{decoders: make(map[Kind]Decoder, len(r.decoders))}
	for k, v := range r.decoders {
		out.decoders[k] = v
	}
	return out
}

// Decompress decodes src into a new buffer of exactly size bytes.
//
// A stream that yields fewer or more than size bytes returns ErrTruncated.
// A corrupt stream or an unknown kind returns ErrDecompression. A known kind
// with no registered decoder returns ErrNativeDecoderUnavailable.
func (r *Registry) Decompress(kind Kind, src []byte, size int) ([]byte, error) {
	if kind == paktype.CompressionNone {
		if len(src) != size {
			return nil, fmt.Errorf("%w: have %d bytes, want %d", ErrTruncated, len(src), size)
		}
		return src, nil
	}

	dec, ok := r.decoders[kind]
	switch {
	case ok:
	case kind == paktype.CompressionZlib || kind == paktype.CompressionBrotli:
		return nil, fmt.Errorf("%w: %s", ErrNativeDecoderUnavailable, kind)
	default:
		return nil, fmt.Errorf("%w: unknown compression kind %d", ErrDecompression, kind)
	}

	rd, release, err := dec.NewReader(bytes.NewReader(src))
	if err != nil {
		return nil, fmt.Errorf("%w: %s: %v", ErrDecompression, kind, err)
	}
	defer release()

	dst := make([]byte, size)
	n, err := io.ReadFull(rd, dst)
	switch {
	case errors.Is(err, io.ErrUnexpectedEOF) || errors.Is(err, io.EOF):
		return nil, fmt.Errorf("%w: %s: decoded %d bytes, want %d", ErrTruncated, kind, n, size)
	case err != nil:
		return nil, fmt.Errorf("%w: %s: %v", ErrDecompression, kind, err)
	}

	var extra [1]byte
	m, err := rd.Read(extra[:])
	if m > 0 {
		return nil, fmt.Errorf("%w: %s: stream longer than %d bytes", ErrTruncated, kind, size)
	}
	if err != nil && !errors.Is(err, io.EOF) {
		return nil, fmt.Errorf("%w: %s: %v", ErrDecompression, kind, err)
	}
	return dst, nil
}
