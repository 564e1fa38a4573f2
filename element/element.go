// Package element implements the in-memory stores for PLY elements.
//
// An element is a named table: either a fixed element, whose rows all share
// an ordered list of scalar properties, or a list element, whose rows are
// variable-length sequences under a single list property. Rows hold scalar
// words (see the scalar package); the schema gives the words their meaning.
// Row order is insertion order and survives write/read.
package element

import (
	"bufio"

	"github.com/cartolab/plymesh/format"
)

// Element is the common surface of the two element flavors.
//
// DeclaredCount is the row count parsed from the header's element line; it
// only governs how many rows ReadRows consumes. After construction the
// authoritative row count is RowCount.
type Element interface {
	// Name returns the element name, e.g. "vertex" or "face".
	Name() string

	// SetDeclaredCount records the header-declared row count for reading.
	SetDeclaredCount(n int)

	// DeclaredCount returns the header-declared row count.
	DeclaredCount() int

	// RowCount returns the number of rows actually stored.
	RowCount() int

	// HeaderText renders the element's header block, one line per
	// declaration, each terminated by \n.
	HeaderText() string

	// ReadRows consumes DeclaredCount rows from the payload stream.
	ReadRows(r *bufio.Reader, f format.Format) error

	// WriteRows emits every stored row to the payload stream.
	WriteRows(w *bufio.Writer, f format.Format) error
}
