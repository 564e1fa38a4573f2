package compress

import (
	"io"

	"github.com/klauspost/compress/s2"
)

// S2Codec streams S2 frames.
type S2Codec struct{}

var _ Codec = S2Codec{}

func (S2Codec) NewReader(r io.Reader) (io.ReadCloser, error) {
	return nopReadCloser{Reader: s2.NewReader(r)}, nil
}

func (S2Codec) NewWriter(w io.Writer) (io.WriteCloser, error) {
	return s2.NewWriter(w), nil
}
