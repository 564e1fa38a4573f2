package compress

import (
	"bytes"
	"io"
	"testing"

	"github.com/stretchr/testify/require"
)

func TestForPath(t *testing.T) {
	tests := []struct {
		path string
		want Codec
	}{
		{path: "model.ply", want: nil},
		{path: "model.ply.gz", want: GzipCodec{}},
		{path: "model.ply.zst", want: ZstdCodec{}},
		{path: "model.ply.lz4", want: LZ4Codec{}},
		{path: "model.ply.s2", want: S2Codec{}},
		{path: "grid.asc", want: nil},
	}

	for _, tt := range tests {
		t.Run(tt.path, func(t *testing.T) {
			require.Equal(t, tt.want, ForPath(tt.path))
		})
	}
}

func TestCodecRoundTrip(t *testing.T) {
	payload := bytes.Repeat([]byte("ply payload row 1.5 2.5 3.5\n"), 512)

	codecs := map[string]Codec{
		"gzip": GzipCodec{},
		"zstd": ZstdCodec{},
		"lz4":  LZ4Codec{},
		"s2":   S2Codec{},
	}

	for name, codec := range codecs {
		t.Run(name, func(t *testing.T) {
			var compressed bytes.Buffer

			w, err := codec.NewWriter(&compressed)
			require.NoError(t, err)
			_, err = w.Write(payload)
			require.NoError(t, err)
			require.NoError(t, w.Close())

			require.Less(t, compressed.Len(), len(payload))

			r, err := codec.NewReader(bytes.NewReader(compressed.Bytes()))
			require.NoError(t, err)
			got, err := io.ReadAll(r)
			require.NoError(t, err)
			require.NoError(t, r.Close())

			require.Equal(t, payload, got)
		})
	}
}
