package element

import (
	"bufio"
	"fmt"
	"io"
	"strings"

	"github.com/cartolab/plymesh/endian"
	"github.com/cartolab/plymesh/errs"
	"github.com/cartolab/plymesh/format"
	"github.com/cartolab/plymesh/internal/pool"
	"github.com/cartolab/plymesh/internal/strutil"
	"github.com/cartolab/plymesh/scalar"
)

// Property is one named, typed column of a fixed element.
type Property struct {
	Name string
	Type format.ScalarType
}

// Fixed stores an element whose rows all share the same ordered property
// list, e.g. "element vertex 316" with "property float x" lines.
//
// Invariant: every row's length equals the property count.
type Fixed struct {
	name     string
	declared int
	props    []Property
	rows     [][]scalar.Word
}

var _ Element = (*Fixed)(nil)

// NewFixed creates an empty fixed element with the given name.
func NewFixed(name string) *Fixed {
	return &Fixed{name: name}
}

func (e *Fixed) Name() string { return e.name }

func (e *Fixed) SetDeclaredCount(n int) { e.declared = n }

func (e *Fixed) DeclaredCount() int { return e.declared }

func (e *Fixed) RowCount() int { return len(e.rows) }

// Properties returns the element's schema in declaration order.
func (e *Fixed) Properties() []Property {
	return e.props
}

// PropertyIndex returns the column index of the named property.
func (e *Fixed) PropertyIndex(name string) (int, error) {
	for i, p := range e.props {
		if p.Name == name {
			return i, nil
		}
	}

	return 0, fmt.Errorf("%w: %q on element %q", errs.ErrUnknownProperty, name, e.name)
}

// AddProperty appends a property to the schema. Rows that already exist are
// extended with a zero scalar of the new type so the schema invariant holds.
func (e *Fixed) AddProperty(name string, t format.ScalarType) error {
	for _, p := range e.props {
		if p.Name == name {
			return fmt.Errorf("%w: %q on element %q", errs.ErrDuplicateProperty, name, e.name)
		}
	}

	e.props = append(e.props, Property{Name: name, Type: t})
	for i := range e.rows {
		e.rows[i] = append(e.rows[i], 0)
	}

	return nil
}

// Get returns the scalar at (row, property) as its decimal token.
func (e *Fixed) Get(row int, name string) (string, error) {
	if row < 0 || row >= len(e.rows) {
		return "", fmt.Errorf("%w: row %d of %d on element %q", errs.ErrRowIndexOutOfRange, row, len(e.rows), e.name)
	}

	col, err := e.PropertyIndex(name)
	if err != nil {
		return "", err
	}

	return scalar.FormatText(e.rows[row][col], e.props[col].Type), nil
}

// Set parses a decimal token under the property's type and stores it at
// (row, property).
func (e *Fixed) Set(row int, name, text string) error {
	if row < 0 || row >= len(e.rows) {
		return fmt.Errorf("%w: row %d of %d on element %q", errs.ErrRowIndexOutOfRange, row, len(e.rows), e.name)
	}

	col, err := e.PropertyIndex(name)
	if err != nil {
		return err
	}

	w, err := scalar.ParseText(text, e.props[col].Type)
	if err != nil {
		return err
	}
	e.rows[row][col] = w

	return nil
}

// AppendRow appends a row of pre-packed words. The row width must equal the
// property count; the words are not type-checked.
func (e *Fixed) AppendRow(words []scalar.Word) (int, error) {
	if len(words) != len(e.props) {
		return 0, fmt.Errorf("%w: %d values for %d properties on element %q",
			errs.ErrArityMismatch, len(words), len(e.props), e.name)
	}

	row := make([]scalar.Word, len(words))
	copy(row, words)
	e.rows = append(e.rows, row)

	return len(e.rows) - 1, nil
}

// DuplicateRow appends a verbatim copy of an existing row and returns the new
// row's index.
func (e *Fixed) DuplicateRow(row int) (int, error) {
	if row < 0 || row >= len(e.rows) {
		return 0, fmt.Errorf("%w: row %d of %d on element %q", errs.ErrRowIndexOutOfRange, row, len(e.rows), e.name)
	}

	dup := make([]scalar.Word, len(e.rows[row]))
	copy(dup, e.rows[row])
	e.rows = append(e.rows, dup)

	return len(e.rows) - 1, nil
}

// HeaderText renders the element line followed by one property line per
// column.
func (e *Fixed) HeaderText() string {
	var sb strings.Builder
	fmt.Fprintf(&sb, "element %s %d\n", e.name, len(e.rows))
	for _, p := range e.props {
		fmt.Fprintf(&sb, "property %s %s\n", p.Type, p.Name)
	}

	return sb.String()
}

// rowSize returns the binary width of one row in bytes.
func (e *Fixed) rowSize() int {
	size := 0
	for _, p := range e.props {
		size += p.Type.Size()
	}

	return size
}

// ReadRows consumes DeclaredCount rows from the payload stream in the given
// format.
func (e *Fixed) ReadRows(r *bufio.Reader, f format.Format) error {
	if f == format.ASCII {
		return e.readASCII(r)
	}

	return e.readBinary(r, endian.ForFormat(f))
}

func (e *Fixed) readASCII(r *bufio.Reader) error {
	for i := 0; i < e.declared; i++ {
		line, err := readPayloadLine(r)
		if err != nil {
			return fmt.Errorf("element %q row %d: %w", e.name, i, err)
		}

		tokens := strutil.Fields(line)
		if len(tokens) != len(e.props) {
			return fmt.Errorf("%w: %d tokens for %d properties on element %q row %d",
				errs.ErrArityMismatch, len(tokens), len(e.props), e.name, i)
		}

		row := make([]scalar.Word, len(tokens))
		for col, token := range tokens {
			w, err := scalar.ParseText(token, e.props[col].Type)
			if err != nil {
				return fmt.Errorf("element %q row %d: %w", e.name, i, err)
			}
			row[col] = w
		}
		e.rows = append(e.rows, row)
	}

	return nil
}

func (e *Fixed) readBinary(r *bufio.Reader, engine endian.EndianEngine) error {
	size := e.rowSize()
	buf, release := pool.GetRowBuffer(size)
	defer release()
	scratch := buf[:size]

	for i := 0; i < e.declared; i++ {
		if _, err := io.ReadFull(r, scratch); err != nil {
			return fmt.Errorf("element %q row %d: %w", e.name, i, err)
		}

		row := make([]scalar.Word, len(e.props))
		offset := 0
		for col, p := range e.props {
			w, err := scalar.FromBytes(scratch[offset:], p.Type, engine)
			if err != nil {
				return fmt.Errorf("element %q row %d: %w", e.name, i, err)
			}
			row[col] = w
			offset += p.Type.Size()
		}
		e.rows = append(e.rows, row)
	}

	return nil
}

// WriteRows emits every stored row in the given format.
func (e *Fixed) WriteRows(w *bufio.Writer, f format.Format) error {
	if f == format.ASCII {
		return e.writeASCII(w)
	}

	return e.writeBinary(w, endian.ForFormat(f))
}

func (e *Fixed) writeASCII(w *bufio.Writer) error {
	for _, row := range e.rows {
		for col, word := range row {
			if col > 0 {
				if err := w.WriteByte(' '); err != nil {
					return err
				}
			}
			if _, err := w.WriteString(scalar.FormatText(word, e.props[col].Type)); err != nil {
				return err
			}
		}
		if err := w.WriteByte('\n'); err != nil {
			return err
		}
	}

	return nil
}

func (e *Fixed) writeBinary(w *bufio.Writer, engine endian.EndianEngine) error {
	buf, release := pool.GetRowBuffer(e.rowSize())
	defer release()

	for _, row := range e.rows {
		buf = buf[:0]
		for col, word := range row {
			buf = scalar.AppendBytes(buf, word, e.props[col].Type, engine)
		}
		if _, err := w.Write(buf); err != nil {
			return err
		}
	}

	return nil
}

// readPayloadLine reads one payload line, tolerating a missing final newline
// at end of file.
func readPayloadLine(r *bufio.Reader) (string, error) {
	line, err := r.ReadString('\n')
	if err == io.EOF && line != "" {
		return line, nil
	}
	if err != nil {
		return "", err
	}

	return line, nil
}
