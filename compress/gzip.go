package compress

import (
	"io"

	"github.com/klauspost/compress/gzip"
)

// GzipCodec streams gzip frames.
type GzipCodec struct{}

var _ Codec = GzipCodec{}

func (GzipCodec) NewReader(r io.Reader) (io.ReadCloser, error) {
	return gzip.NewReader(r)
}

func (GzipCodec) NewWriter(w io.Writer) (io.WriteCloser, error) {
	return gzip.NewWriter(w), nil
}
