// Package errs defines the sentinel errors shared across the plymesh packages.
//
// Callers discriminate error kinds with errors.Is; most call sites wrap these
// sentinels with fmt.Errorf("%w: ...") to attach context such as the offending
// property name, row index, or file path.
package errs

import "errors"

// PLY format and header errors.
var (
	// ErrInvalidFormat indicates a format name outside
	// {ascii, binary_big_endian, binary_little_endian}.
	ErrInvalidFormat = errors.New("invalid PLY format")

	// ErrMalformedHeader indicates a header line that deviates from the
	// PLY header grammar.
	ErrMalformedHeader = errors.New("malformed PLY header")

	// ErrUnknownType indicates a scalar type name outside the PLY type set.
	ErrUnknownType = errors.New("unknown scalar type")

	// ErrPropertyBeforeElement indicates a property line that precedes any
	// element line in the header.
	ErrPropertyBeforeElement = errors.New("property declared before element")
)

// Element store errors.
var (
	// ErrUnknownProperty indicates a lookup by name on an element that has
	// no such property.
	ErrUnknownProperty = errors.New("unknown property")

	// ErrDuplicateProperty indicates adding a property whose name already
	// exists on the element.
	ErrDuplicateProperty = errors.New("duplicate property")

	// ErrDuplicateElement indicates adding an element whose name already
	// exists in the model.
	ErrDuplicateElement = errors.New("duplicate element")

	// ErrArityMismatch indicates a row whose width does not match the
	// element's property count.
	ErrArityMismatch = errors.New("row arity mismatch")

	// ErrRowIndexOutOfRange indicates a row index beyond the element's rows.
	ErrRowIndexOutOfRange = errors.New("row index out of range")

	// ErrSchemaAlreadySet indicates a second schema assignment on a list
	// element.
	ErrSchemaAlreadySet = errors.New("list schema already set")

	// ErrNoSchema indicates an operation on a list element before its
	// schema was set.
	ErrNoSchema = errors.New("list schema not set")
)

// Scalar codec errors.
var (
	// ErrValueOutOfRange indicates an integer ASCII token that exceeds the
	// declared type's unsigned range.
	ErrValueOutOfRange = errors.New("value out of range")

	// ErrParse indicates a token that could not be parsed under its
	// declared type.
	ErrParse = errors.New("parse error")
)

// Raster and overlay errors.
var (
	// ErrPixelOutOfRange indicates a pixel coordinate outside the overlay.
	ErrPixelOutOfRange = errors.New("pixel out of range")

	// ErrGridIndexOutOfRange indicates a cell coordinate outside the grid.
	ErrGridIndexOutOfRange = errors.New("grid index out of range")
)

// Mesh topology errors.
var (
	// ErrNonManifoldBoundary indicates a boundary vertex incident to an
	// unexpected number of odd-parity edges; the hole walk cannot close.
	ErrNonManifoldBoundary = errors.New("non-manifold boundary")

	// ErrVertexIndexTooLarge indicates a vertex index that does not fit the
	// 32-bit edge-map key.
	ErrVertexIndexTooLarge = errors.New("vertex index exceeds 32 bits")
)

// Model navigation errors.
var (
	// ErrNoVertexElement indicates a model without a "vertex" element.
	ErrNoVertexElement = errors.New("model has no vertex element")

	// ErrNoFaceElement indicates a model without a "face" element.
	ErrNoFaceElement = errors.New("model has no face element")
)
