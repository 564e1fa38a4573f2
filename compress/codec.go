// Package compress provides transparent stream compression for PLY files.
//
// Large LiDAR-derived point clouds compress well, so the reader and writer
// accept paths with a compression suffix appended to the .ply extension:
//
//	model.ply       raw
//	model.ply.gz    gzip
//	model.ply.zst   Zstandard
//	model.ply.lz4   LZ4 frame
//	model.ply.s2    S2
//
// The codec wraps the underlying file stream; the PLY codec above it is
// unaware of the compression.
package compress

import (
	"io"
	"path/filepath"
)

// Codec wraps a raw file stream in a compression transport.
type Codec interface {
	// NewReader returns a decompressing reader over r. Closing it releases
	// codec resources but does not close r.
	NewReader(r io.Reader) (io.ReadCloser, error)

	// NewWriter returns a compressing writer over w. Closing it flushes the
	// final frame but does not close w.
	NewWriter(w io.Writer) (io.WriteCloser, error)
}

// ForPath returns the codec implied by the path's extension, or nil when the
// path names an uncompressed file.
func ForPath(path string) Codec {
	switch filepath.Ext(path) {
	case ".gz":
		return GzipCodec{}
	case ".zst":
		return ZstdCodec{}
	case ".lz4":
		return LZ4Codec{}
	case ".s2":
		return S2Codec{}
	default:
		return nil
	}
}

// nopReadCloser adapts a compression reader without a Close method,
// optionally invoking a release hook.
type nopReadCloser struct {
	io.Reader
	release func()
}

func (c nopReadCloser) Close() error {
	if c.release != nil {
		c.release()
	}

	return nil
}
