package plymesh

import (
	"fmt"
	"os"
	"path/filepath"
	"testing"

	"github.com/stretchr/testify/require"

	"github.com/cartolab/plymesh/format"
	"github.com/cartolab/plymesh/heightfield"
	"github.com/cartolab/plymesh/mesh"
)

const gridWithHole = `ncols 3
nrows 3
xllcorner 0
yllcorner 0
cellsize 1
NODATA_value -9999
0 1 0
1 -9999 1
0 1 0
`

func writeTemp(t *testing.T, name, content string) string {
	t.Helper()

	path := filepath.Join(t.TempDir(), name)
	require.NoError(t, os.WriteFile(path, []byte(content), 0o644))

	return path
}

func TestTerrainModelShape(t *testing.T) {
	m, err := NewTerrainModel()
	require.NoError(t, err)

	idx, err := m.AddVertex(1, 2, 3, heightfield.RGB{R: 10, G: 20, B: 30})
	require.NoError(t, err)
	require.Equal(t, 0, idx)
	require.Equal(t, 1, m.VertexCount())

	v, err := m.VertexElement()
	require.NoError(t, err)
	red, err := v.Get(0, "red")
	require.NoError(t, err)
	require.Equal(t, "10", red)
	nx, err := v.Get(0, "nx")
	require.NoError(t, err)
	require.Equal(t, "0", nx)

	require.NoError(t, m.AddFace([]int{0, 0, 0}))
	require.Equal(t, 1, m.FaceCount())
}

func TestConvertGridPoints(t *testing.T) {
	gridPath := writeTemp(t, "tile.asc", gridWithHole)
	outPath := filepath.Join(t.TempDir(), "tile.ply")

	require.NoError(t, ConvertGrid(gridPath, "", outPath, GridOptions{}))

	m, err := Load(outPath)
	require.NoError(t, err)
	require.Equal(t, format.BinaryLittleEndian, m.Format())
	require.Equal(t, 8, m.VertexCount())
	require.Zero(t, m.FaceCount())

	// Without an overlay every vertex is grey.
	v, err := m.VertexElement()
	require.NoError(t, err)
	for row := 0; row < m.VertexCount(); row++ {
		for _, name := range []string{"red", "green", "blue"} {
			c, err := v.Get(row, name)
			require.NoError(t, err)
			require.Equal(t, "128", c)
		}
	}
}

func TestConvertGridMesh(t *testing.T) {
	gridPath := writeTemp(t, "tile.asc", gridWithHole)
	outPath := filepath.Join(t.TempDir(), "tile.ply")

	require.NoError(t, ConvertGrid(gridPath, "", outPath, GridOptions{Mesh: true}))

	m, err := Load(outPath)
	require.NoError(t, err)
	require.Equal(t, 8, m.VertexCount())
	// The NODATA centre sits in all four 2x2 blocks; only the two blocks
	// whose diagonal avoids it keep a triangle.
	require.Equal(t, 2, m.FaceCount())
}

func TestConvertGridOffsetsAndFormat(t *testing.T) {
	content := `ncols 2
nrows 2
xllcorner 0
yllcorner 0
cellsize 1
NODATA_value -9999
1 1
1 1
`
	gridPath := writeTemp(t, "tile.asc", content)
	outPath := filepath.Join(t.TempDir(), "tile.ply")

	opts := GridOptions{XOffset: 10, YOffset: 20, ZOffset: 5, Format: format.ASCII}
	require.NoError(t, ConvertGrid(gridPath, "", outPath, opts))

	m, err := Load(outPath)
	require.NoError(t, err)
	require.Equal(t, format.ASCII, m.Format())

	box, err := m.BoundingBox()
	require.NoError(t, err)
	require.Equal(t, 10.0, box.MinX)
	require.Equal(t, 11.0, box.MaxX)
	require.Equal(t, 20.0, box.MinY)
	require.Equal(t, 21.0, box.MaxY)
	require.Equal(t, 6.0, box.MinZ)
}

func TestConvertGridWithOverlay(t *testing.T) {
	content := `ncols 2
nrows 2
xllcorner 0
yllcorner 0
cellsize 1
NODATA_value -9999
1 1
1 1
`
	overlay := `# ImageMagick pixel enumeration: 2,2,255,srgb
0,0: (255,0,0)  #FF0000  srgb(255,0,0)
1,0: (0,255,0)  #00FF00  srgb(0,255,0)
0,1: (0,0,255)  #0000FF  srgb(0,0,255)
1,1: (10,20,30)  #0A141E  srgb(10,20,30)
`
	gridPath := writeTemp(t, "tile.asc", content)
	imagePath := writeTemp(t, "tile.txt", overlay)
	outPath := filepath.Join(t.TempDir(), "tile.ply")

	require.NoError(t, ConvertGrid(gridPath, imagePath, outPath, GridOptions{}))

	m, err := Load(outPath)
	require.NoError(t, err)
	v, err := m.VertexElement()
	require.NoError(t, err)

	// Vertex 0 is the south-west cell, coloured by the image's bottom row.
	blue, err := v.Get(0, "blue")
	require.NoError(t, err)
	require.Equal(t, "255", blue)
}

// Two abutting tiles align to a shared frame: the mosaic spans x in [0,3]
// with no gap or overlap.
func TestConvertListMosaic(t *testing.T) {
	dir := t.TempDir()

	tile := `ncols 2
nrows 2
xllcorner %d
yllcorner 0
cellsize 1
NODATA_value -9999
1 1
1 1
`
	pathA := filepath.Join(dir, "a.asc")
	require.NoError(t, os.WriteFile(pathA, []byte(fmt.Sprintf(tile, 0)), 0o644))
	pathB := filepath.Join(dir, "b.asc")
	require.NoError(t, os.WriteFile(pathB, []byte(fmt.Sprintf(tile, 2)), 0o644))

	listPath := filepath.Join(dir, "tiles.txt")
	require.NoError(t, os.WriteFile(listPath, []byte(pathA+"\n"+pathB+"\n"), 0o644))

	outPath := filepath.Join(dir, "mosaic.ply")
	require.NoError(t, ConvertList(listPath, outPath, GridOptions{}))

	m, err := Load(outPath)
	require.NoError(t, err)
	require.Equal(t, 8, m.VertexCount())

	box, err := m.BoundingBox()
	require.NoError(t, err)
	require.Equal(t, 0.0, box.MinX)
	require.Equal(t, 3.0, box.MaxX)
	require.Equal(t, 0.0, box.MinY)
	require.Equal(t, 1.0, box.MaxY)

	// Tiles abut: columns 0..3 each appear exactly twice.
	seen := make(map[float64]int)
	for row := 0; row < m.VertexCount(); row++ {
		c, err := m.VertexCoords(row)
		require.NoError(t, err)
		seen[c.X]++
	}
	require.Equal(t, map[float64]int{0: 2, 1: 2, 2: 2, 3: 2}, seen)
}

func TestConvertListEmpty(t *testing.T) {
	listPath := writeTemp(t, "tiles.txt", "# no tiles\n")
	require.Error(t, ConvertList(listPath, filepath.Join(t.TempDir(), "out.ply"), GridOptions{}))
}

// Converting a gridded mesh and fan-filling its holes closes the surface
// boundary that the NODATA centre opened.
func TestConvertThenFillHoles(t *testing.T) {
	gridPath := writeTemp(t, "tile.asc", gridWithHole)
	outPath := filepath.Join(t.TempDir(), "tile.ply")

	require.NoError(t, ConvertGrid(gridPath, "", outPath, GridOptions{Mesh: true}))

	m, err := Load(outPath)
	require.NoError(t, err)

	holes, err := mesh.Holes(m)
	require.NoError(t, err)
	require.NotEmpty(t, holes)

	for _, hole := range holes {
		require.NoError(t, mesh.FillFan(m, hole))
	}

	holes, err = mesh.Holes(m)
	require.NoError(t, err)
	require.Empty(t, holes)
}

func TestSaveLoadDigest(t *testing.T) {
	gridPath := writeTemp(t, "tile.asc", gridWithHole)
	dir := t.TempDir()
	first := filepath.Join(dir, "a.ply")
	second := filepath.Join(dir, "b.ply")

	require.NoError(t, ConvertGrid(gridPath, "", first, GridOptions{}))

	m, err := Load(first)
	require.NoError(t, err)
	require.NoError(t, Save(second, m))

	d1, err := FileDigest(first)
	require.NoError(t, err)
	d2, err := FileDigest(second)
	require.NoError(t, err)
	require.Equal(t, d1, d2)
}
