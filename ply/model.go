// Package ply implements the PLY document model and its reader and writer.
//
// A Model owns an ordered list of elements; element order determines header
// and payload order on write, and a freshly read model preserves the input
// file's element order exactly. The model exposes the geometry editing
// surface (vertex colour and position edits, face appends, scaling, bounding
// box) on top of the schema-agnostic element stores.
package ply

import (
	"errors"
	"fmt"
	"strconv"
	"strings"

	"github.com/cartolab/plymesh/element"
	"github.com/cartolab/plymesh/errs"
	"github.com/cartolab/plymesh/format"
)

// VertexElementName and FaceElementName are the conventional element names
// the geometry operations resolve.
const (
	VertexElementName = "vertex"
	FaceElementName   = "face"
)

// Coordinates is one vertex position in double precision.
type Coordinates struct {
	X, Y, Z float64
}

// BoundingBox is the axis-aligned extent of the model's vertices.
type BoundingBox struct {
	MinX, MaxX float64
	MinY, MaxY float64
	MinZ, MaxZ float64
}

// Model is an in-memory PLY document.
type Model struct {
	format    format.Format
	version   string
	comments  []string
	elements  []element.Element
	vertexIdx int
	faceIdx   int
}

// NewModel creates an empty ASCII model with version "1.0".
func NewModel() *Model {
	return &Model{
		format:    format.ASCII,
		version:   "1.0",
		vertexIdx: -1,
		faceIdx:   -1,
	}
}

// Format returns the current payload format.
func (m *Model) Format() format.Format {
	return m.format
}

// SetFormat sets the payload format used by the next write.
func (m *Model) SetFormat(f format.Format) error {
	switch f {
	case format.ASCII, format.BinaryBigEndian, format.BinaryLittleEndian:
		m.format = f
		return nil
	default:
		return fmt.Errorf("%w: %d", errs.ErrInvalidFormat, f)
	}
}

// Version returns the PLY version string, nominally "1.0".
func (m *Model) Version() string {
	return m.version
}

// Comments returns the model's comment lines in order.
func (m *Model) Comments() []string {
	return m.comments
}

// AddComment appends one comment line.
func (m *Model) AddComment(text string) {
	m.comments = append(m.comments, text)
}

// Elements returns the model's elements in order.
func (m *Model) Elements() []element.Element {
	return m.elements
}

// AddElement appends an element. Element names are unique within a model.
func (m *Model) AddElement(el element.Element) error {
	for _, existing := range m.elements {
		if existing.Name() == el.Name() {
			return fmt.Errorf("%w: %q", errs.ErrDuplicateElement, el.Name())
		}
	}

	m.elements = append(m.elements, el)
	switch el.Name() {
	case VertexElementName:
		m.vertexIdx = len(m.elements) - 1
	case FaceElementName:
		m.faceIdx = len(m.elements) - 1
	}

	return nil
}

// ElementByName returns the named element.
func (m *Model) ElementByName(name string) (element.Element, bool) {
	for _, el := range m.elements {
		if el.Name() == name {
			return el, true
		}
	}

	return nil, false
}

// VertexElement resolves the "vertex" element as a fixed element.
func (m *Model) VertexElement() (*element.Fixed, error) {
	if m.vertexIdx >= 0 && m.vertexIdx < len(m.elements) {
		if v, ok := m.elements[m.vertexIdx].(*element.Fixed); ok {
			return v, nil
		}
	}

	el, ok := m.ElementByName(VertexElementName)
	if !ok {
		return nil, errs.ErrNoVertexElement
	}
	v, ok := el.(*element.Fixed)
	if !ok {
		return nil, fmt.Errorf("%w: element %q is not a fixed element", errs.ErrNoVertexElement, VertexElementName)
	}

	return v, nil
}

// FaceElement resolves the "face" element as a list element.
func (m *Model) FaceElement() (*element.List, error) {
	if m.faceIdx >= 0 && m.faceIdx < len(m.elements) {
		if f, ok := m.elements[m.faceIdx].(*element.List); ok {
			return f, nil
		}
	}

	el, ok := m.ElementByName(FaceElementName)
	if !ok {
		return nil, errs.ErrNoFaceElement
	}
	f, ok := el.(*element.List)
	if !ok {
		return nil, fmt.Errorf("%w: element %q is not a list element", errs.ErrNoFaceElement, FaceElementName)
	}

	return f, nil
}

// VertexCount returns the number of vertices, zero when the model has no
// vertex element.
func (m *Model) VertexCount() int {
	v, err := m.VertexElement()
	if err != nil {
		return 0
	}

	return v.RowCount()
}

// FaceCount returns the number of faces, zero when the model has no face
// element.
func (m *Model) FaceCount() int {
	f, err := m.FaceElement()
	if err != nil {
		return 0
	}

	return f.RowCount()
}

// Scale multiplies every vertex's x, y, and z by the given factors in double
// precision.
func (m *Model) Scale(sx, sy, sz float64) error {
	v, err := m.VertexElement()
	if err != nil {
		return err
	}

	factors := [3]float64{sx, sy, sz}
	for row := 0; row < v.RowCount(); row++ {
		for axis, name := range coordNames {
			text, err := v.Get(row, name)
			if err != nil {
				return err
			}
			value, err := strconv.ParseFloat(text, 64)
			if err != nil {
				return fmt.Errorf("%w: %q as %s", errs.ErrParse, text, name)
			}
			if err := v.Set(row, name, formatCoord(value*factors[axis])); err != nil {
				return err
			}
		}
	}

	return nil
}

var coordNames = [3]string{"x", "y", "z"}

var colorNames = [3]string{"red", "green", "blue"}

func formatCoord(v float64) string {
	return strconv.FormatFloat(v, 'f', -1, 64)
}

// SetAllVertexColors sets every vertex to the given colour. Colour properties
// that are missing from the vertex element are added as uchar columns first
// (zero-filled on existing rows), so the operation succeeds on colourless
// models.
func (m *Model) SetAllVertexColors(red, green, blue uint8) error {
	v, err := m.VertexElement()
	if err != nil {
		return err
	}

	// Probe each colour property; absence is the signal to add it.
	for _, name := range colorNames {
		if _, err := v.PropertyIndex(name); err != nil {
			if !errors.Is(err, errs.ErrUnknownProperty) {
				return err
			}
			if err := v.AddProperty(name, format.UChar); err != nil {
				return err
			}
		}
	}

	values := [3]uint8{red, green, blue}
	for row := 0; row < v.RowCount(); row++ {
		for i, name := range colorNames {
			if err := v.Set(row, name, strconv.Itoa(int(values[i]))); err != nil {
				return err
			}
		}
	}

	return nil
}

// SetVertexColor sets one vertex's colour. Unlike SetAllVertexColors it fails
// when the colour properties are absent.
func (m *Model) SetVertexColor(index int, red, green, blue uint8) error {
	v, err := m.VertexElement()
	if err != nil {
		return err
	}

	values := [3]uint8{red, green, blue}
	for i, name := range colorNames {
		if err := v.Set(index, name, strconv.Itoa(int(values[i]))); err != nil {
			return err
		}
	}

	return nil
}

// DuplicateVertex appends a copy of vertex index and returns the new index.
func (m *Model) DuplicateVertex(index int) (int, error) {
	v, err := m.VertexElement()
	if err != nil {
		return 0, err
	}

	return v.DuplicateRow(index)
}

// SetVertexPosition overwrites one vertex's x, y, and z.
func (m *Model) SetVertexPosition(index int, x, y, z float64) error {
	v, err := m.VertexElement()
	if err != nil {
		return err
	}

	values := [3]float64{x, y, z}
	for i, name := range coordNames {
		if err := v.Set(index, name, formatCoord(values[i])); err != nil {
			return err
		}
	}

	return nil
}

// AddFace appends a face row from vertex indices. The indices are not
// validated against the vertex count; an out-of-range index produces an
// invalid mesh, not an error.
func (m *Model) AddFace(indices []int) error {
	f, err := m.FaceElement()
	if err != nil {
		return err
	}

	texts := make([]string, len(indices))
	for i, idx := range indices {
		texts[i] = strconv.Itoa(idx)
	}
	_, err = f.AppendRow(texts)

	return err
}

// FaceRow returns the vertex indices of one face as decimal tokens.
func (m *Model) FaceRow(index int) ([]string, error) {
	f, err := m.FaceElement()
	if err != nil {
		return nil, err
	}

	return f.Row(index)
}

// FaceIndices returns the vertex indices of one face as ints.
func (m *Model) FaceIndices(index int) ([]int, error) {
	texts, err := m.FaceRow(index)
	if err != nil {
		return nil, err
	}

	indices := make([]int, len(texts))
	for i, text := range texts {
		v, err := strconv.Atoi(text)
		if err != nil {
			return nil, fmt.Errorf("%w: face index %q", errs.ErrParse, text)
		}
		indices[i] = v
	}

	return indices, nil
}

// VertexCoords returns the x, y, z of one vertex in double precision.
func (m *Model) VertexCoords(index int) (Coordinates, error) {
	v, err := m.VertexElement()
	if err != nil {
		return Coordinates{}, err
	}

	var c Coordinates
	targets := [3]*float64{&c.X, &c.Y, &c.Z}
	for i, name := range coordNames {
		text, err := v.Get(index, name)
		if err != nil {
			return Coordinates{}, err
		}
		value, err := strconv.ParseFloat(text, 64)
		if err != nil {
			return Coordinates{}, fmt.Errorf("%w: %q as %s", errs.ErrParse, text, name)
		}
		*targets[i] = value
	}

	return c, nil
}

// BoundingBox computes the min and max of x, y, and z across all vertices.
func (m *Model) BoundingBox() (BoundingBox, error) {
	v, err := m.VertexElement()
	if err != nil {
		return BoundingBox{}, err
	}

	var box BoundingBox
	for row := 0; row < v.RowCount(); row++ {
		c, err := m.VertexCoords(row)
		if err != nil {
			return BoundingBox{}, err
		}
		if row == 0 {
			box = BoundingBox{MinX: c.X, MaxX: c.X, MinY: c.Y, MaxY: c.Y, MinZ: c.Z, MaxZ: c.Z}
			continue
		}
		box.MinX = min(box.MinX, c.X)
		box.MaxX = max(box.MaxX, c.X)
		box.MinY = min(box.MinY, c.Y)
		box.MaxY = max(box.MaxY, c.Y)
		box.MinZ = min(box.MinZ, c.Z)
		box.MaxZ = max(box.MaxZ, c.Z)
	}

	return box, nil
}

// HeaderText renders the header exactly as the writer would emit it.
func (m *Model) HeaderText() string {
	var sb strings.Builder
	sb.WriteString("ply\n")
	fmt.Fprintf(&sb, "format %s %s\n", m.format, m.version)
	for _, c := range m.comments {
		fmt.Fprintf(&sb, "comment %s\n", c)
	}
	for _, el := range m.elements {
		if el.RowCount() == 0 {
			continue
		}
		sb.WriteString(el.HeaderText())
	}
	sb.WriteString("end_header\n")

	return sb.String()
}
