// Package plymesh reads, edits, and writes PLY polygon files, converts ESRI
// ASCII-grid LiDAR rasters into PLY point clouds and meshes, and closes
// boundary holes on triangle meshes.
//
// The package is a thin facade over the subpackages:
//
//   - ply: the document model, header parser, and payload reader/writer
//   - element: schema-driven element stores (fixed and list flavors)
//   - scalar: the typed scalar codec behind every payload encoding
//   - heightfield: ESRI grid and overlay readers plus the vertex importer
//   - mesh: boundary-loop discovery and hole filling
//
// # Reading and writing
//
//	m, err := plymesh.Load("scan.ply")
//	if err != nil {
//	    return err
//	}
//	m.SetFormat(format.BinaryLittleEndian)
//	err = plymesh.Save("scan-le.ply", m)
//
// Paths ending in .gz, .zst, .lz4, or .s2 are compressed transparently.
//
// # Converting LiDAR grids
//
//	err := plymesh.ConvertGrid("tile.asc", "tile.png", "tile.ply",
//	    plymesh.GridOptions{Mesh: true})
//
// Multi-tile mosaics go through ConvertList, which aligns every tile to the
// common lower-left corner of the set.
package plymesh

import (
	"fmt"
	"os"

	"github.com/cartolab/plymesh/element"
	"github.com/cartolab/plymesh/errs"
	"github.com/cartolab/plymesh/format"
	"github.com/cartolab/plymesh/heightfield"
	"github.com/cartolab/plymesh/internal/hash"
	"github.com/cartolab/plymesh/ply"
	"github.com/cartolab/plymesh/scalar"
)

// Load reads a PLY file into a model.
func Load(path string) (*ply.Model, error) {
	return ply.ReadFile(path)
}

// Save writes a model to a PLY file in the model's current format.
func Save(path string, m *ply.Model) error {
	return ply.WriteFile(path, m)
}

// FileDigest returns the xxHash64 of a file's raw contents.
func FileDigest(path string) (uint64, error) {
	f, err := os.Open(path)
	if err != nil {
		return 0, fmt.Errorf("open %s: %w", path, err)
	}
	defer f.Close()

	return hash.SumReader(f)
}

// TerrainModel is a PLY model pre-shaped for LiDAR conversion output: a
// vertex element with float coordinates, uchar colours, and float normals,
// and a face element of int lists.
type TerrainModel struct {
	*ply.Model
}

// NewTerrainModel creates an empty terrain model.
func NewTerrainModel() (*TerrainModel, error) {
	m := ply.NewModel()

	v := element.NewFixed(ply.VertexElementName)
	for _, p := range []element.Property{
		{Name: "x", Type: format.Float},
		{Name: "y", Type: format.Float},
		{Name: "z", Type: format.Float},
		{Name: "red", Type: format.UChar},
		{Name: "green", Type: format.UChar},
		{Name: "blue", Type: format.UChar},
		{Name: "nx", Type: format.Float},
		{Name: "ny", Type: format.Float},
		{Name: "nz", Type: format.Float},
	} {
		if err := v.AddProperty(p.Name, p.Type); err != nil {
			return nil, err
		}
	}
	if err := m.AddElement(v); err != nil {
		return nil, err
	}

	f := element.NewList(ply.FaceElementName)
	if err := f.SetSchema(format.Int, "vertex_index", format.Int); err != nil {
		return nil, err
	}
	if err := m.AddElement(f); err != nil {
		return nil, err
	}

	return &TerrainModel{Model: m}, nil
}

// AddVertex appends a coloured vertex with zero normals and returns its
// index. It satisfies the height-field importer's sink interface.
func (t *TerrainModel) AddVertex(x, y, z float64, c heightfield.RGB) (int, error) {
	v, err := t.VertexElement()
	if err != nil {
		return 0, err
	}

	return v.AppendRow([]scalar.Word{
		scalar.FromFloat32(float32(x)),
		scalar.FromFloat32(float32(y)),
		scalar.FromFloat32(float32(z)),
		scalar.FromUint(uint64(c.R), format.UChar),
		scalar.FromUint(uint64(c.G), format.UChar),
		scalar.FromUint(uint64(c.B), format.UChar),
		scalar.FromFloat32(0),
		scalar.FromFloat32(0),
		scalar.FromFloat32(0),
	})
}

var _ heightfield.VertexSink = (*TerrainModel)(nil)

// GridOptions configures grid-to-PLY conversion.
type GridOptions struct {
	// XOffset, YOffset, and ZOffset shift every emitted vertex. In list
	// mode the x and y offsets come from tile alignment instead.
	XOffset float64
	YOffset float64
	ZOffset float64

	// Mesh emits up to two triangles per 2x2 cell block, each only when its
	// three corners hold data.
	Mesh bool

	// Format selects the output payload format; the zero value means
	// binary_little_endian, the conversion default.
	Format format.Format
}

func (o GridOptions) outputFormat() format.Format {
	if o.Format == 0 {
		return format.BinaryLittleEndian
	}

	return o.Format
}

func (o GridOptions) importerOptions(overlay *heightfield.Overlay, xOff, yOff float64) []heightfield.Option {
	opts := []heightfield.Option{heightfield.WithOffsets(xOff, yOff, o.ZOffset)}
	if o.Mesh {
		opts = append(opts, heightfield.WithMesh())
	}
	if overlay != nil {
		opts = append(opts, heightfield.WithOverlay(overlay))
	}

	return opts
}

// ConvertGrid converts a single grid, optionally colorized by an overlay
// image (empty imagePath means the grey default), and writes the model to
// outPath.
func ConvertGrid(gridPath, imagePath, outPath string, opts GridOptions) error {
	g, err := heightfield.ReadGrid(gridPath)
	if err != nil {
		return err
	}

	var overlay *heightfield.Overlay
	if imagePath != "" {
		overlay, err = heightfield.ReadOverlay(imagePath)
		if err != nil {
			return err
		}
	}

	model, err := NewTerrainModel()
	if err != nil {
		return err
	}
	if err := model.SetFormat(opts.outputFormat()); err != nil {
		return err
	}

	imp := heightfield.NewImporter(opts.importerOptions(overlay, opts.XOffset, opts.YOffset)...)
	if _, err := imp.Import(model, g); err != nil {
		return err
	}

	return Save(outPath, model.Model)
}

// ConvertList converts every tile named by a list file into one model. A
// first pass finds the minimum lower-left corner across the tiles; the
// second pass shifts each tile by its corner's distance from that minimum so
// the tiles abut in a common frame. The options' x and y offsets are ignored
// in this mode.
func ConvertList(listPath, outPath string, opts GridOptions) error {
	entries, err := heightfield.ReadListFile(listPath)
	if err != nil {
		return err
	}
	if len(entries) == 0 {
		return fmt.Errorf("%w: list file %s names no tiles", errs.ErrParse, listPath)
	}

	grids := make([]*heightfield.Grid, len(entries))
	xllMin := 0.0
	yllMin := 0.0
	for i, entry := range entries {
		g, err := heightfield.ReadGrid(entry.LidarPath)
		if err != nil {
			return err
		}
		grids[i] = g
		if i == 0 || g.XLLCorner() < xllMin {
			xllMin = g.XLLCorner()
		}
		if i == 0 || g.YLLCorner() < yllMin {
			yllMin = g.YLLCorner()
		}
	}

	model, err := NewTerrainModel()
	if err != nil {
		return err
	}
	if err := model.SetFormat(opts.outputFormat()); err != nil {
		return err
	}

	for i, entry := range entries {
		var overlay *heightfield.Overlay
		if entry.HasImage() {
			overlay, err = heightfield.ReadOverlay(entry.ImagePath)
			if err != nil {
				return err
			}
		}

		g := grids[i]
		imp := heightfield.NewImporter(opts.importerOptions(overlay,
			g.XLLCorner()-xllMin, g.YLLCorner()-yllMin)...)
		if _, err := imp.Import(model, g); err != nil {
			return err
		}
	}

	return Save(outPath, model.Model)
}
