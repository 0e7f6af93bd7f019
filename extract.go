package pak

import (
	"errors"
	"fmt"
	"io"
	"log/slog"
	"sync"

	"github.com/meigma/pak/internal/compress"
	"github.com/meigma/pak/internal/crypt"
	"github.com/meigma/pak/internal/sizing"
)

// DefaultMaxFileSize is the default maximum entry size (256MB).
const DefaultMaxFileSize = 256 << 20

// TileCategory is the index category holding tile files.
const TileCategory = "Tile"

// Extractor reads entries out of package files.
//
// An Extractor is safe for concurrent use. Package files are opened on first
// use and shared until Close.
type Extractor struct {
	index       Index
	opener      SourceOpener
	registry    *compress.Registry
	maxFileSize uint64
	logger      *slog.Logger

	mu      sync.Mutex
	sources map[string]ByteSource
}

// log returns the logger, falling back to a discard logger if nil.
func (e *Extractor) log() *slog.Logger {
	if e.logger == nil {
		return slog.New(slog.DiscardHandler)
	}
	return e.logger
}

// New creates an Extractor.
func New(opts ...Option) *Extractor {
	e := &Extractor{
		opener:      openFileSource,
		registry:    compress.NewRegistry(),
		maxFileSize: DefaultMaxFileSize,
		sources:     make(map[string]ByteSource),
	}
	for _, opt := range opts {
		opt(e)
	}
	return e
}

// Close closes every package file the Extractor opened.
func (e *Extractor) Close() error {
	e.mu.Lock()
	defer e.mu.Unlock()
	var errs []error
	for path, src := range e.sources {
		if c, ok := src.(io.Closer); ok {
			if err := c.Close(); err != nil {
				errs = append(errs, fmt.Errorf("close %s: %w", path, err))
			}
		}
		delete(e.sources, path)
	}
	return errors.Join(errs...)
}

// Unpack resolves name in category through the index and extracts it.
// It returns ErrNotFound when the index has no such record.
func (e *Extractor) Unpack(category, name string) (Payload, error) {
	if e.index == nil {
		return Payload{}, fmt.Errorf("%w: %s/%s: no index", ErrNotFound, category, name)
	}
	rec, ok := e.index.Lookup(category, name)
	if !ok {
		return Payload{}, fmt.Errorf("%w: %s/%s", ErrNotFound, category, name)
	}
	return e.Extract(rec)
}

// LoadTile returns the plaintext of tile file "<id>.til".
// A degraded payload is returned as-is; tile parsing rejects it.
func (e *Extractor) LoadTile(id int) ([]byte, error) {
	p, err := e.Unpack(TileCategory, fmt.Sprintf("%d.til", id))
	if err != nil {
		return nil, err
	}
	return p.Data, nil
}

// Extract reads, decrypts, and decompresses the entry described by rec.
//
// Markup payloads (.spz, .xml, .json, .ui) additionally have their header
// restored and body decrypted with cipher B.
func (e *Extractor) Extract(rec Record) (Payload, error) {
	if err := e.validate(rec); err != nil {
		return Payload{}, fmt.Errorf("extract %s: %w", rec.Name, err)
	}
	src, err := e.source(rec.Path)
	if err != nil {
		return Payload{}, fmt.Errorf("extract %s: %w", rec.Name, err)
	}
	data, err := readEntry(src, rec)
	if err != nil {
		return Payload{}, fmt.Errorf("extract %s: %w", rec.Name, err)
	}

	if rec.Encrypted {
		crypt.DecryptA(data)
	}

	if rec.Compressed() {
		size, err := sizing.ToInt(rec.Size, ErrSizeOverflow)
		if err != nil {
			return Payload{}, fmt.Errorf("extract %s: %w", rec.Name, err)
		}
		out, err := e.registry.Decompress(rec.Compression, data, size)
		switch {
		case errors.Is(err, ErrNativeDecoderUnavailable):
			e.log().Warn("decoder unavailable, returning zero-filled payload",
				"name", rec.Name, "compression", rec.Compression.String(), "size", size)
			return Payload{Data: make([]byte, size), Degraded: true}, nil
		case err != nil:
			return Payload{}, fmt.Errorf("extract %s: %w", rec.Name, err)
		}
		data = out
	}

	if n := textHeaderLen(rec.Name); n > 0 {
		data = decodeText(data, n)
	}
	return Payload{Data: data}, nil
}

func (e *Extractor) validate(rec Record) error {
	if e.maxFileSize > 0 && (rec.Size > e.maxFileSize || rec.CompressedSize > e.maxFileSize) {
		return ErrSizeOverflow
	}
	return nil
}

// source returns the shared ByteSource for path, opening it on first use.
func (e *Extractor) source(path string) (ByteSource, error) {
	e.mu.Lock()
	defer e.mu.Unlock()
	if src, ok := e.sources[path]; ok {
		return src, nil
	}
	src, err := e.opener(path)
	if err != nil {
		return nil, err
	}
	e.sources[path] = src
	e.log().Debug("opened package", "path", path, "size", src.Size())
	return src, nil
}

// readEntry reads exactly rec.DiskSize() bytes at rec.Offset.
func readEntry(src ByteSource, rec Record) ([]byte, error) {
	n := rec.DiskSize()
	if !sizing.Within(rec.Offset, n, src.Size()) {
		return nil, fmt.Errorf("%w: range %d+%d past end of %s", ErrTruncated, rec.Offset, n, src.SourceID())
	}
	off, err := sizing.ToInt64(rec.Offset, ErrSizeOverflow)
	if err != nil {
		return nil, err
	}
	length, err := sizing.ToInt(n, ErrSizeOverflow)
	if err != nil {
		return nil, err
	}

	buf := make([]byte, length)
	if _, err := io.ReadFull(io.NewSectionReader(src, off, int64(length)), buf); err != nil {
		if errors.Is(err, io.EOF) || errors.Is(err, io.ErrUnexpectedEOF) {
			return nil, fmt.Errorf("%w: %v", ErrTruncated, err)
		}
		return nil, fmt.Errorf("read entry: %w", err)
	}
	return buf, nil
}
