package compress

import (
	"io"
	"sync"

	"github.com/klauspost/compress/zlib"
)

type zlibReader interface {
	io.ReadCloser
	zlib.Resetter
}

// zlibPool manages reusable zlib readers to reduce allocation overhead.
type zlibPool struct {
	pool sync.Pool
}

func newZlibPool() *zlibPool {
	return &zlibPool{}
}

// NewReader returns a zlib reader over r.
// The caller must call the returned release function when done.
func (p *zlibPool) NewReader(r io.Reader) (io.Reader, func(), error) {
	if zr, ok := p.pool.Get().(zlibReader); ok {
		if err := zr.Reset(r, nil); err != nil {
			// A bad header leaves the reader reusable.
			p.pool.Put(zr)
			return nil, nil, err
		}
		return zr, p.release(zr), nil
	}

	rc, err := zlib.NewReader(r)
	if err != nil {
		return nil, nil, err
	}
	zr, ok := rc.(zlibReader)
	if !ok {
		return rc, func() { _ = rc.Close() }, nil
	}
	return zr, p.release(zr), nil
}

func (p *zlibPool) release(zr zlibReader) func() {
	return func() {
		_ = zr.Close() //nolint:errcheck // Close only reports prior read errors
		p.pool.Put(zr)
	}
}

func compressZlib(w io.Writer, data []byte) error {
	zw, err := zlib.NewWriterLevel(w, zlib.BestCompression)
	if err != nil {
		return err
	}
	if _, err := zw.Write(data); err != nil {
		return err
	}
	return zw.Close()
}
