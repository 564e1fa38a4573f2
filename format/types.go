// Package format defines the PLY payload formats and scalar types shared by
// the codec, the element stores, and the reader/writer.
package format

import (
	"fmt"

	"github.com/cartolab/plymesh/errs"
)

// Format identifies one of the three PLY payload encodings.
type Format uint8

const (
	// ASCII is the textual payload encoding, one row per line.
	ASCII Format = iota + 1
	// BinaryBigEndian is the raw binary payload with big-endian scalars.
	BinaryBigEndian
	// BinaryLittleEndian is the raw binary payload with little-endian scalars.
	BinaryLittleEndian
)

// String returns the format name as it appears on the header's format line.
func (f Format) String() string {
	switch f {
	case ASCII:
		return "ascii"
	case BinaryBigEndian:
		return "binary_big_endian"
	case BinaryLittleEndian:
		return "binary_little_endian"
	default:
		return "unknown"
	}
}

// IsBinary reports whether f is one of the two binary encodings.
func (f Format) IsBinary() bool {
	return f == BinaryBigEndian || f == BinaryLittleEndian
}

// ParseFormat maps a header format name to its Format value.
func ParseFormat(name string) (Format, error) {
	switch name {
	case "ascii":
		return ASCII, nil
	case "binary_big_endian":
		return BinaryBigEndian, nil
	case "binary_little_endian":
		return BinaryLittleEndian, nil
	default:
		return 0, fmt.Errorf("%w: %q", errs.ErrInvalidFormat, name)
	}
}

// ScalarType identifies one of the eight PLY scalar types.
type ScalarType uint8

const (
	Char ScalarType = iota + 1
	UChar
	Short
	UShort
	Int
	UInt
	Float
	Double
)

// Size returns the on-wire size of the type in bytes.
func (t ScalarType) Size() int {
	switch t {
	case Char, UChar:
		return 1
	case Short, UShort:
		return 2
	case Int, UInt, Float:
		return 4
	case Double:
		return 8
	default:
		return 0
	}
}

// String returns the type name as it appears on a header property line.
func (t ScalarType) String() string {
	switch t {
	case Char:
		return "char"
	case UChar:
		return "uchar"
	case Short:
		return "short"
	case UShort:
		return "ushort"
	case Int:
		return "int"
	case UInt:
		return "uint"
	case Float:
		return "float"
	case Double:
		return "double"
	default:
		return "unknown"
	}
}

// IsFloat reports whether t is one of the two floating-point types.
func (t ScalarType) IsFloat() bool {
	return t == Float || t == Double
}

// ParseScalarType maps a header type name to its ScalarType value.
func ParseScalarType(name string) (ScalarType, error) {
	switch name {
	case "char":
		return Char, nil
	case "uchar":
		return UChar, nil
	case "short":
		return Short, nil
	case "ushort":
		return UShort, nil
	case "int":
		return Int, nil
	case "uint":
		return UInt, nil
	case "float":
		return Float, nil
	case "double":
		return Double, nil
	default:
		return 0, fmt.Errorf("%w: %q", errs.ErrUnknownType, name)
	}
}
