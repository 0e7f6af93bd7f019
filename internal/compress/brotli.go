package compress

import (
	"io"
	"sync"

	"github.com/andybalholm/brotli"
)

// brotliPool manages reusable Brotli readers.
type brotliPool struct {
	pool sync.Pool
}

func newBrotliPool() *brotliPool {
	return &brotliPool{}
}

// NewReader returns a Brotli reader over r.
// The caller must call the returned release function when done.
func (p *brotliPool) NewReader(r io.Reader) (io.Reader, func(), error) {
	br, ok := p.pool.Get().(*brotli.Reader)
	if !ok {
		br = brotli.NewReader(r)
	} else if err := br.Reset(r); err != nil {
		br = brotli.NewReader(r)
	}
	return br, func() {
		_ = br.Reset(nil) //nolint:errcheck // clearing state before pool return
		p.pool.Put(br)
	}, nil
}

func compressBrotli(w io.Writer, data []byte) error {
	bw := brotli.NewWriterLevel(w, brotli.BestCompression)
	if _, err := bw.Write(data); err != nil {
		return err
	}
	return bw.Close()
}
