// Package heightfield converts ESRI ASCII-grid LiDAR rasters, optionally
// colorized by a co-registered overlay image, into PLY vertex batches and
// triangle meshes.
package heightfield

import (
	"bufio"
	"fmt"
	"os"
	"strconv"
	"strings"

	"github.com/cartolab/plymesh/errs"
	"github.com/cartolab/plymesh/internal/strutil"
)

// Grid is an in-memory ESRI ASCII grid. Rows are stored south to north:
// row 0 is the southern edge, so increasing row index means increasing y,
// matching PLY conventions. The file stores rows north to south; the reader
// reverses them.
type Grid struct {
	cols     int
	rows     int
	xll      float64
	yll      float64
	cellSize float64
	noData   float64
	values   [][]float32
}

func (g *Grid) Cols() int { return g.cols }

func (g *Grid) Rows() int { return g.rows }

// XLLCorner returns the x coordinate of the grid's lower-left corner.
func (g *Grid) XLLCorner() float64 { return g.xll }

// YLLCorner returns the y coordinate of the grid's lower-left corner.
func (g *Grid) YLLCorner() float64 { return g.yll }

// CellSize returns the raster resolution in world units.
func (g *Grid) CellSize() float64 { return g.cellSize }

// NoDataValue returns the sentinel marking absent cells.
func (g *Grid) NoDataValue() float64 { return g.noData }

// Value returns the height at (col, row), row 0 being the southern edge.
func (g *Grid) Value(col, row int) (float32, error) {
	if col < 0 || col >= g.cols || row < 0 || row >= g.rows {
		return 0, fmt.Errorf("%w: (%d,%d) in %dx%d grid", errs.ErrGridIndexOutOfRange, col, row, g.cols, g.rows)
	}

	return g.values[row][col], nil
}

// SetValue overwrites the height at (col, row).
func (g *Grid) SetValue(col, row int, v float32) error {
	if col < 0 || col >= g.cols || row < 0 || row >= g.rows {
		return fmt.Errorf("%w: (%d,%d) in %dx%d grid", errs.ErrGridIndexOutOfRange, col, row, g.cols, g.rows)
	}
	g.values[row][col] = v

	return nil
}

// HeaderText renders the grid metadata in the input file's key-value form.
func (g *Grid) HeaderText() string {
	var sb strings.Builder
	fmt.Fprintf(&sb, "ncols %d\n", g.cols)
	fmt.Fprintf(&sb, "nrows %d\n", g.rows)
	fmt.Fprintf(&sb, "xllcorner %s\n", strconv.FormatFloat(g.xll, 'f', -1, 64))
	fmt.Fprintf(&sb, "yllcorner %s\n", strconv.FormatFloat(g.yll, 'f', -1, 64))
	fmt.Fprintf(&sb, "cellsize %s\n", strconv.FormatFloat(g.cellSize, 'f', -1, 64))
	fmt.Fprintf(&sb, "NODATA_value %s\n", strconv.FormatFloat(g.noData, 'f', -1, 64))

	return sb.String()
}

// gridHeaderKeys are the six required header keys. Each must appear exactly
// once in the first six lines; order is unconstrained.
var gridHeaderKeys = []string{"ncols", "nrows", "xllcorner", "yllcorner", "cellsize", "NODATA_value"}

// ReadGrid reads an ESRI ASCII grid from a file.
func ReadGrid(path string) (*Grid, error) {
	f, err := os.Open(path)
	if err != nil {
		return nil, fmt.Errorf("open %s: %w", path, err)
	}
	defer f.Close()

	g, err := readGrid(bufio.NewReader(f))
	if err != nil {
		return nil, fmt.Errorf("read %s: %w", path, err)
	}

	return g, nil
}

func readGrid(br *bufio.Reader) (*Grid, error) {
	seen := make(map[string]float64, len(gridHeaderKeys))
	for i := 0; i < len(gridHeaderKeys); i++ {
		line, err := br.ReadString('\n')
		if err != nil && line == "" {
			return nil, fmt.Errorf("%w: truncated header", errs.ErrParse)
		}
		tokens := strutil.Fields(line)
		if len(tokens) != 2 {
			return nil, fmt.Errorf("%w: bad header line %q", errs.ErrParse, strings.TrimSpace(line))
		}
		key := tokens[0]
		if !validGridKey(key) {
			return nil, fmt.Errorf("%w: unknown header key %q", errs.ErrParse, key)
		}
		if _, dup := seen[key]; dup {
			return nil, fmt.Errorf("%w: duplicate header key %q", errs.ErrParse, key)
		}
		value, err := strconv.ParseFloat(tokens[1], 64)
		if err != nil {
			return nil, fmt.Errorf("%w: header value %q for %s", errs.ErrParse, tokens[1], key)
		}
		seen[key] = value
	}

	g := &Grid{
		cols:     int(seen["ncols"]),
		rows:     int(seen["nrows"]),
		xll:      seen["xllcorner"],
		yll:      seen["yllcorner"],
		cellSize: seen["cellsize"],
		noData:   seen["NODATA_value"],
	}
	if g.cols <= 0 || g.rows <= 0 {
		return nil, fmt.Errorf("%w: grid dimensions %dx%d", errs.ErrParse, g.cols, g.rows)
	}

	g.values = make([][]float32, g.rows)
	for i := range g.values {
		g.values[i] = make([]float32, g.cols)
	}

	// The file runs north to south; fill rows top-down so row 0 ends up at
	// the southern edge.
	sc := bufio.NewScanner(br)
	sc.Split(bufio.ScanWords)
	for row := g.rows - 1; row >= 0; row-- {
		for col := 0; col < g.cols; col++ {
			if !sc.Scan() {
				if err := sc.Err(); err != nil {
					return nil, err
				}
				return nil, fmt.Errorf("%w: grid data ends after %d values, want %d",
					errs.ErrParse, (g.rows-1-row)*g.cols+col, g.rows*g.cols)
			}
			v, err := strconv.ParseFloat(sc.Text(), 32)
			if err != nil {
				return nil, fmt.Errorf("%w: grid value %q", errs.ErrParse, sc.Text())
			}
			g.values[row][col] = float32(v)
		}
	}

	return g, nil
}

func validGridKey(key string) bool {
	for _, k := range gridHeaderKeys {
		if k == key {
			return true
		}
	}

	return false
}
