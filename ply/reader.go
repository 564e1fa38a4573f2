package ply

import (
	"bufio"
	"fmt"
	"io"
	"os"
	"strconv"
	"strings"

	"github.com/cartolab/plymesh/compress"
	"github.com/cartolab/plymesh/element"
	"github.com/cartolab/plymesh/errs"
	"github.com/cartolab/plymesh/format"
	"github.com/cartolab/plymesh/internal/strutil"
)

// ReadFile reads a PLY file into a fresh model. Compressed files are
// recognised by extension (see the compress package). The file is opened in
// binary mode for the duration of this call only.
//
// On error the returned model is nil; a read aborts on the first failure and
// partial state is discarded.
func ReadFile(path string) (*Model, error) {
	f, err := os.Open(path)
	if err != nil {
		return nil, fmt.Errorf("open %s: %w", path, err)
	}
	defer f.Close()

	var stream io.Reader = f
	if codec := compress.ForPath(path); codec != nil {
		rc, err := codec.NewReader(f)
		if err != nil {
			return nil, fmt.Errorf("open %s: %w", path, err)
		}
		defer rc.Close()
		stream = rc
	}

	m, err := Read(stream)
	if err != nil {
		return nil, fmt.Errorf("read %s: %w", path, err)
	}

	return m, nil
}

// Read parses a complete PLY document, header and payload, from r.
func Read(r io.Reader) (*Model, error) {
	br := bufio.NewReader(r)

	m, err := readHeader(br)
	if err != nil {
		return nil, err
	}

	// Payload rows follow immediately after end_header, element by element
	// in header order.
	for _, el := range m.Elements() {
		if err := el.ReadRows(br, m.Format()); err != nil {
			return nil, err
		}
	}

	return m, nil
}

// readHeader runs the line-oriented header grammar. Header lines are
// \n-delimited in every encoding; a stray \r is stripped by the tokenizer.
func readHeader(br *bufio.Reader) (*Model, error) {
	line, err := headerLine(br)
	if err != nil {
		return nil, err
	}
	if line != "ply" {
		return nil, fmt.Errorf("%w: first line is %q, want \"ply\"", errs.ErrMalformedHeader, line)
	}

	line, err = headerLine(br)
	if err != nil {
		return nil, err
	}
	tokens := strutil.Fields(line)
	if len(tokens) != 3 || tokens[0] != "format" {
		return nil, fmt.Errorf("%w: bad format line %q", errs.ErrMalformedHeader, line)
	}
	f, err := format.ParseFormat(tokens[1])
	if err != nil {
		return nil, err
	}

	m := NewModel()
	if err := m.SetFormat(f); err != nil {
		return nil, err
	}
	m.version = tokens[2]

	// Element lines open a block whose flavor is unknown until the first
	// property line: a scalar property makes it a fixed element, a list
	// property makes it a list element.
	var pendingName string
	var pendingCount int
	pending := false
	var current element.Element

	for {
		line, err := headerLine(br)
		if err != nil {
			return nil, err
		}
		tokens := strutil.Fields(line)
		if len(tokens) == 0 {
			return nil, fmt.Errorf("%w: blank header line", errs.ErrMalformedHeader)
		}

		switch tokens[0] {
		case "comment":
			m.AddComment(commentText(line))

		case "element":
			if pending {
				return nil, fmt.Errorf("%w: element %q has no properties", errs.ErrMalformedHeader, pendingName)
			}
			if len(tokens) != 3 {
				return nil, fmt.Errorf("%w: bad element line %q", errs.ErrMalformedHeader, line)
			}
			count, err := strconv.Atoi(tokens[2])
			if err != nil || count < 0 {
				return nil, fmt.Errorf("%w: bad element count %q", errs.ErrMalformedHeader, tokens[2])
			}
			pendingName = tokens[1]
			pendingCount = count
			pending = true
			current = nil

		case "property":
			if !pending && current == nil {
				return nil, fmt.Errorf("%w: %q", errs.ErrPropertyBeforeElement, line)
			}
			el, err := applyProperty(m, tokens, line, &pending, pendingName, pendingCount, current)
			if err != nil {
				return nil, err
			}
			current = el

		case "end_header":
			if pending {
				return nil, fmt.Errorf("%w: element %q has no properties", errs.ErrMalformedHeader, pendingName)
			}
			return m, nil

		default:
			return nil, fmt.Errorf("%w: unexpected line %q", errs.ErrMalformedHeader, line)
		}
	}
}

// applyProperty classifies and records one property line. When a block is
// pending, the line's shape decides the element flavor and creates it.
func applyProperty(m *Model, tokens []string, line string, pending *bool,
	pendingName string, pendingCount int, current element.Element,
) (element.Element, error) {
	isList := len(tokens) >= 2 && tokens[1] == "list"

	if *pending {
		*pending = false
		if isList {
			if len(tokens) != 5 {
				return nil, fmt.Errorf("%w: bad list property line %q", errs.ErrMalformedHeader, line)
			}
			lengthType, err := format.ParseScalarType(tokens[2])
			if err != nil {
				return nil, err
			}
			memberType, err := format.ParseScalarType(tokens[3])
			if err != nil {
				return nil, err
			}
			el := element.NewList(pendingName)
			el.SetDeclaredCount(pendingCount)
			if err := el.SetSchema(lengthType, tokens[4], memberType); err != nil {
				return nil, err
			}
			if err := m.AddElement(el); err != nil {
				return nil, err
			}
			return el, nil
		}

		if len(tokens) != 3 {
			return nil, fmt.Errorf("%w: bad property line %q", errs.ErrMalformedHeader, line)
		}
		t, err := format.ParseScalarType(tokens[1])
		if err != nil {
			return nil, err
		}
		el := element.NewFixed(pendingName)
		el.SetDeclaredCount(pendingCount)
		if err := el.AddProperty(tokens[2], t); err != nil {
			return nil, err
		}
		if err := m.AddElement(el); err != nil {
			return nil, err
		}
		return el, nil
	}

	fixed, ok := current.(*element.Fixed)
	if !ok {
		// A list element carries exactly one property.
		return nil, fmt.Errorf("%w: extra property %q on list element", errs.ErrMalformedHeader, line)
	}
	if isList || len(tokens) != 3 {
		return nil, fmt.Errorf("%w: bad property line %q", errs.ErrMalformedHeader, line)
	}
	t, err := format.ParseScalarType(tokens[1])
	if err != nil {
		return nil, err
	}
	if err := fixed.AddProperty(tokens[2], t); err != nil {
		return nil, err
	}

	return fixed, nil
}

// headerLine reads one \n-terminated header line with the terminator and any
// stray \r removed.
func headerLine(br *bufio.Reader) (string, error) {
	line, err := br.ReadString('\n')
	if err != nil {
		if err == io.EOF {
			return "", fmt.Errorf("%w: unexpected end of header", errs.ErrMalformedHeader)
		}
		return "", err
	}

	line = strings.TrimSuffix(line, "\n")
	line = strings.TrimSuffix(line, "\r")

	return line, nil
}

// commentText strips the "comment" keyword and one separator from a header
// line, preserving the remainder verbatim.
func commentText(line string) string {
	rest := strings.TrimPrefix(line, "comment")
	rest = strings.TrimPrefix(rest, " ")

	return rest
}
