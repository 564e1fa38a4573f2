package heightfield

import (
	"os"
	"path/filepath"
	"testing"

	"github.com/stretchr/testify/require"

	"github.com/cartolab/plymesh/errs"
)

const sampleGrid = `ncols 3
nrows 3
xllcorner 0
yllcorner 0
cellsize 1
NODATA_value -9999
0 1 0
1 -9999 1
0 1 0
`

func writeTempFile(t *testing.T, name, content string) string {
	t.Helper()

	path := filepath.Join(t.TempDir(), name)
	require.NoError(t, os.WriteFile(path, []byte(content), 0o644))

	return path
}

func TestReadGrid(t *testing.T) {
	g, err := ReadGrid(writeTempFile(t, "grid.asc", sampleGrid))
	require.NoError(t, err)

	require.Equal(t, 3, g.Cols())
	require.Equal(t, 3, g.Rows())
	require.Equal(t, 0.0, g.XLLCorner())
	require.Equal(t, 0.0, g.YLLCorner())
	require.Equal(t, 1.0, g.CellSize())
	require.Equal(t, -9999.0, g.NoDataValue())

	// Row 0 is the southern edge: the file's last row.
	v, err := g.Value(1, 0)
	require.NoError(t, err)
	require.Equal(t, float32(1), v)

	// The centre holds the NODATA sentinel.
	v, err = g.Value(1, 1)
	require.NoError(t, err)
	require.Equal(t, float32(-9999), v)
}

func TestReadGridRowReversal(t *testing.T) {
	content := `ncols 2
nrows 2
xllcorner 0
yllcorner 0
cellsize 1
NODATA_value -9999
10 11
20 21
`
	g, err := ReadGrid(writeTempFile(t, "grid.asc", content))
	require.NoError(t, err)

	// The file's first row (10 11) is the northern edge, i.e. row 1.
	north, err := g.Value(0, 1)
	require.NoError(t, err)
	require.Equal(t, float32(10), north)
	south, err := g.Value(0, 0)
	require.NoError(t, err)
	require.Equal(t, float32(20), south)
}

func TestReadGridHeaderOrderUnconstrained(t *testing.T) {
	content := `cellsize 2
NODATA_value -1
nrows 1
ncols 2
yllcorner 5
xllcorner 4
7 8
`
	g, err := ReadGrid(writeTempFile(t, "grid.asc", content))
	require.NoError(t, err)
	require.Equal(t, 2, g.Cols())
	require.Equal(t, 2.0, g.CellSize())
	require.Equal(t, 4.0, g.XLLCorner())
}

func TestReadGridErrors(t *testing.T) {
	tests := []struct {
		name    string
		content string
	}{
		{
			name: "duplicate key",
			content: `ncols 2
ncols 2
nrows 1
xllcorner 0
yllcorner 0
cellsize 1
7 8
`,
		},
		{
			name: "unknown key",
			content: `ncols 2
nrows 1
xllcorner 0
yllcorner 0
cellsize 1
resolution 5
7 8
`,
		},
		{
			name: "too few values",
			content: `ncols 3
nrows 3
xllcorner 0
yllcorner 0
cellsize 1
NODATA_value -9999
1 2 3 4
`,
		},
		{
			name: "bad value",
			content: `ncols 1
nrows 1
xllcorner 0
yllcorner 0
cellsize 1
NODATA_value -9999
rock
`,
		},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			_, err := ReadGrid(writeTempFile(t, "grid.asc", tt.content))
			require.ErrorIs(t, err, errs.ErrParse)
		})
	}
}

func TestGridValueRange(t *testing.T) {
	g, err := ReadGrid(writeTempFile(t, "grid.asc", sampleGrid))
	require.NoError(t, err)

	_, err = g.Value(3, 0)
	require.ErrorIs(t, err, errs.ErrGridIndexOutOfRange)
	require.ErrorIs(t, g.SetValue(0, -1, 5), errs.ErrGridIndexOutOfRange)

	require.NoError(t, g.SetValue(0, 0, 42))
	v, err := g.Value(0, 0)
	require.NoError(t, err)
	require.Equal(t, float32(42), v)
}

func TestGridHeaderText(t *testing.T) {
	g, err := ReadGrid(writeTempFile(t, "grid.asc", sampleGrid))
	require.NoError(t, err)

	want := "ncols 3\nnrows 3\nxllcorner 0\nyllcorner 0\ncellsize 1\nNODATA_value -9999\n"
	require.Equal(t, want, g.HeaderText())
}
