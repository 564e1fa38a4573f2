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

// List stores an element with a single variable-length list property, e.g.
// "element face 599" with "property list uchar int vertex_index". Each row is
// its own sequence of scalars of the member type; the on-wire length is
// encoded as a scalar of the length type.
type List struct {
	name       string
	declared   int
	lengthType format.ScalarType
	memberType format.ScalarType
	propName   string
	schemaSet  bool
	rows       [][]scalar.Word
}

var _ Element = (*List)(nil)

// NewList creates an empty list element with the given name.
func NewList(name string) *List {
	return &List{name: name}
}

func (e *List) Name() string { return e.name }

func (e *List) SetDeclaredCount(n int) { e.declared = n }

func (e *List) DeclaredCount() int { return e.declared }

func (e *List) RowCount() int { return len(e.rows) }

// SetSchema sets the list property. It must be called once, before any row is
// appended.
func (e *List) SetSchema(lengthType format.ScalarType, name string, memberType format.ScalarType) error {
	if e.schemaSet {
		return fmt.Errorf("%w: element %q", errs.ErrSchemaAlreadySet, e.name)
	}

	e.lengthType = lengthType
	e.propName = name
	e.memberType = memberType
	e.schemaSet = true

	return nil
}

// Schema returns the length type, property name, and member type.
func (e *List) Schema() (format.ScalarType, string, format.ScalarType) {
	return e.lengthType, e.propName, e.memberType
}

// Row returns one row's members as decimal tokens.
func (e *List) Row(row int) ([]string, error) {
	if row < 0 || row >= len(e.rows) {
		return nil, fmt.Errorf("%w: row %d of %d on element %q", errs.ErrRowIndexOutOfRange, row, len(e.rows), e.name)
	}

	out := make([]string, len(e.rows[row]))
	for i, w := range e.rows[row] {
		out[i] = scalar.FormatText(w, e.memberType)
	}

	return out, nil
}

// AppendRow parses each token under the member type and appends the row,
// returning its index.
func (e *List) AppendRow(texts []string) (int, error) {
	if !e.schemaSet {
		return 0, fmt.Errorf("%w: element %q", errs.ErrNoSchema, e.name)
	}

	row := make([]scalar.Word, len(texts))
	for i, text := range texts {
		w, err := scalar.ParseText(text, e.memberType)
		if err != nil {
			return 0, err
		}
		row[i] = w
	}
	e.rows = append(e.rows, row)

	return len(e.rows) - 1, nil
}

// HeaderText renders the element line and its single list property line.
func (e *List) HeaderText() string {
	var sb strings.Builder
	fmt.Fprintf(&sb, "element %s %d\n", e.name, len(e.rows))
	fmt.Fprintf(&sb, "property list %s %s %s\n", e.lengthType, e.memberType, e.propName)

	return sb.String()
}

// ReadRows consumes DeclaredCount rows from the payload stream in the given
// format.
func (e *List) ReadRows(r *bufio.Reader, f format.Format) error {
	if f == format.ASCII {
		return e.readASCII(r)
	}

	return e.readBinary(r, endian.ForFormat(f))
}

func (e *List) readASCII(r *bufio.Reader) error {
	for i := 0; i < e.declared; i++ {
		line, err := readPayloadLine(r)
		if err != nil {
			return fmt.Errorf("element %q row %d: %w", e.name, i, err)
		}

		tokens := strutil.Fields(line)
		if len(tokens) == 0 {
			return fmt.Errorf("%w: empty row %d on element %q", errs.ErrArityMismatch, i, e.name)
		}

		lengthWord, err := scalar.ParseText(tokens[0], e.lengthType)
		if err != nil {
			return fmt.Errorf("element %q row %d: %w", e.name, i, err)
		}
		length := int(lengthWord.Uint(e.lengthType))
		if length != len(tokens)-1 {
			return fmt.Errorf("%w: declared %d members, found %d on element %q row %d",
				errs.ErrArityMismatch, length, len(tokens)-1, e.name, i)
		}

		row := make([]scalar.Word, length)
		for j, token := range tokens[1:] {
			w, err := scalar.ParseText(token, e.memberType)
			if err != nil {
				return fmt.Errorf("element %q row %d: %w", e.name, i, err)
			}
			row[j] = w
		}
		e.rows = append(e.rows, row)
	}

	return nil
}

func (e *List) readBinary(r *bufio.Reader, engine endian.EndianEngine) error {
	lengthSize := e.lengthType.Size()
	memberSize := e.memberType.Size()

	buf, release := pool.GetRowBuffer(lengthSize + 8*memberSize)
	defer release()

	for i := 0; i < e.declared; i++ {
		scratch := buf[:lengthSize]
		if _, err := io.ReadFull(r, scratch); err != nil {
			return fmt.Errorf("element %q row %d: %w", e.name, i, err)
		}
		lengthWord, err := scalar.FromBytes(scratch, e.lengthType, engine)
		if err != nil {
			return fmt.Errorf("element %q row %d: %w", e.name, i, err)
		}
		length := int(lengthWord.Uint(e.lengthType))

		if cap(buf) < length*memberSize {
			buf = make([]byte, 0, length*memberSize)
		}
		scratch = buf[:length*memberSize]
		if _, err := io.ReadFull(r, scratch); err != nil {
			return fmt.Errorf("element %q row %d: %w", e.name, i, err)
		}

		row := make([]scalar.Word, length)
		for j := 0; j < length; j++ {
			w, err := scalar.FromBytes(scratch[j*memberSize:], e.memberType, engine)
			if err != nil {
				return fmt.Errorf("element %q row %d: %w", e.name, i, err)
			}
			row[j] = w
		}
		e.rows = append(e.rows, row)
	}

	return nil
}

// WriteRows emits every stored row in the given format. The length scalar is
// derived from the row's actual member count.
func (e *List) WriteRows(w *bufio.Writer, f format.Format) error {
	if f == format.ASCII {
		return e.writeASCII(w)
	}

	return e.writeBinary(w, endian.ForFormat(f))
}

func (e *List) writeASCII(w *bufio.Writer) error {
	for _, row := range e.rows {
		length := scalar.FromUint(uint64(len(row)), e.lengthType)
		if _, err := w.WriteString(scalar.FormatText(length, e.lengthType)); err != nil {
			return err
		}
		for _, word := range row {
			if err := w.WriteByte(' '); err != nil {
				return err
			}
			if _, err := w.WriteString(scalar.FormatText(word, e.memberType)); err != nil {
				return err
			}
		}
		if err := w.WriteByte('\n'); err != nil {
			return err
		}
	}

	return nil
}

func (e *List) writeBinary(w *bufio.Writer, engine endian.EndianEngine) error {
	buf, release := pool.GetRowBuffer(e.lengthType.Size() + 8*e.memberType.Size())
	defer release()

	for _, row := range e.rows {
		buf = buf[:0]
		buf = scalar.AppendBytes(buf, scalar.FromUint(uint64(len(row)), e.lengthType), e.lengthType, engine)
		for _, word := range row {
			buf = scalar.AppendBytes(buf, word, e.memberType, engine)
		}
		if _, err := w.Write(buf); err != nil {
			return err
		}
	}

	return nil
}
