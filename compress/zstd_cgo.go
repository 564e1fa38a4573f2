//go:build cgo

package compress

import (
	"io"

	"github.com/valyala/gozstd"
)

func (ZstdCodec) NewReader(r io.Reader) (io.ReadCloser, error) {
	zr := gozstd.NewReader(r)

	return nopReadCloser{Reader: zr, release: zr.Release}, nil
}

func (ZstdCodec) NewWriter(w io.Writer) (io.WriteCloser, error) {
	return &zstdWriter{zw: gozstd.NewWriter(w)}, nil
}

// zstdWriter releases the underlying writer's native resources on Close.
type zstdWriter struct {
	zw *gozstd.Writer
}

func (w *zstdWriter) Write(p []byte) (int, error) {
	return w.zw.Write(p)
}

func (w *zstdWriter) Close() error {
	err := w.zw.Close()
	w.zw.Release()

	return err
}
