package heightfield

// VertexSink receives the vertices and faces an import emits. The root
// package's terrain model satisfies it.
type VertexSink interface {
	// AddVertex appends a coloured vertex and returns its index.
	AddVertex(x, y, z float64, c RGB) (int, error)

	// AddFace appends a face row of vertex indices.
	AddFace(indices []int) error
}

// skipped marks grid cells that produced no vertex.
const skipped = -1

// Importer converts one grid into vertices and, optionally, a triangle mesh.
type Importer struct {
	xOffset float64
	yOffset float64
	zOffset float64
	mesh    bool
	overlay *Overlay
}

// Option configures an Importer.
type Option func(*Importer)

// WithOffsets shifts every emitted vertex by the given world offsets.
// The z offset is added to the cell value; x and y offsets are added after
// the cell size scaling.
func WithOffsets(x, y, z float64) Option {
	return func(imp *Importer) {
		imp.xOffset = x
		imp.yOffset = y
		imp.zOffset = z
	}
}

// WithMesh makes the importer emit up to two triangles per 2x2 cell block,
// each only when its three corners hold data.
func WithMesh() Option {
	return func(imp *Importer) {
		imp.mesh = true
	}
}

// WithOverlay colours each vertex from the co-registered raster instead of
// the grey default. The overlay must match the grid's dimensions.
func WithOverlay(o *Overlay) Option {
	return func(imp *Importer) {
		imp.overlay = o
	}
}

// NewImporter creates an importer with the given options.
func NewImporter(opts ...Option) *Importer {
	imp := &Importer{}
	for _, opt := range opts {
		opt(imp)
	}

	return imp
}

// Import emits one vertex per data cell at
//
//	(col*cellsize + xOffset, row*cellsize + yOffset, zOffset + value)
//
// skipping cells holding the grid's NODATA value, and returns the index grid
// mapping each cell to its vertex id (or the skipped sentinel).
//
// With mesh output enabled, each 2x2 cell block yields the triangles
// (NE, SE, NW) and (SE, SW, NW), each only when its own three corners exist.
func (imp *Importer) Import(sink VertexSink, g *Grid) ([][]int, error) {
	ids := make([][]int, g.Rows())
	for i := range ids {
		ids[i] = make([]int, g.Cols())
	}

	noData := g.NoDataValue()
	cellSize := g.CellSize()

	for row := 0; row < g.Rows(); row++ {
		for col := 0; col < g.Cols(); col++ {
			v, err := g.Value(col, row)
			if err != nil {
				return nil, err
			}
			if float64(v) == noData {
				ids[row][col] = skipped
				continue
			}

			colour := GreyRGB
			if imp.overlay != nil {
				colour, err = imp.overlay.Pixel(col, row)
				if err != nil {
					return nil, err
				}
			}

			id, err := sink.AddVertex(
				float64(col)*cellSize+imp.xOffset,
				float64(row)*cellSize+imp.yOffset,
				imp.zOffset+float64(v),
				colour,
			)
			if err != nil {
				return nil, err
			}
			ids[row][col] = id
		}
	}

	if imp.mesh {
		if err := emitMesh(sink, ids); err != nil {
			return nil, err
		}
	}

	return ids, nil
}

// emitMesh walks every 2x2 block of the index grid. With a the NW, b the NE,
// c the SW, and d the SE corner, it emits (b, d, a) and (d, c, a), each only
// when all three of its corners exist.
func emitMesh(sink VertexSink, ids [][]int) error {
	for row := 0; row < len(ids)-1; row++ {
		for col := 0; col < len(ids[row])-1; col++ {
			a := ids[row+1][col]
			b := ids[row+1][col+1]
			c := ids[row][col]
			d := ids[row][col+1]

			if a != skipped && d != skipped && b != skipped {
				if err := sink.AddFace([]int{b, d, a}); err != nil {
					return err
				}
			}
			if a != skipped && c != skipped && d != skipped {
				if err := sink.AddFace([]int{d, c, a}); err != nil {
					return err
				}
			}
		}
	}

	return nil
}
