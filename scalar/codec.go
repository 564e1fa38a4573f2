// Package scalar implements the PLY scalar codec.
//
// Every scalar is carried in memory as a 64-bit word. Integer values occupy
// their natural low-order bits. Float and double values occupy the low 4 or 8
// bytes of the word as the IEEE-754 bit pattern, laid out as on a
// little-endian host, regardless of the byte order of the stream the value
// came from. A word is only meaningful when paired with its declared type, so
// every pack and unpack operation takes the type tag.
package scalar

import (
	"errors"
	"fmt"
	"math"
	"strconv"
	"strings"

	"github.com/cartolab/plymesh/endian"
	"github.com/cartolab/plymesh/errs"
	"github.com/cartolab/plymesh/format"
)

// Word is the fixed-width carrier for one scalar value.
type Word uint64

func mask(t format.ScalarType) uint64 {
	switch t.Size() {
	case 1:
		return 0xFF
	case 2:
		return 0xFFFF
	case 4:
		return 0xFFFFFFFF
	default:
		return ^uint64(0)
	}
}

// ParseText parses one decimal token under the declared type.
//
// Integer tokens must fit the type's unsigned range. A negative token is
// accepted as its bit pattern within the type's width, with no sign extension
// into the word. Float and double tokens are parsed at the type's own
// precision and stored as their IEEE-754 bit pattern.
func ParseText(text string, t format.ScalarType) (Word, error) {
	switch t {
	case format.Float:
		f, err := strconv.ParseFloat(text, 32)
		if err != nil {
			return 0, fmt.Errorf("%w: %q as float", errs.ErrParse, text)
		}

		return Word(math.Float32bits(float32(f))), nil

	case format.Double:
		f, err := strconv.ParseFloat(text, 64)
		if err != nil {
			return 0, fmt.Errorf("%w: %q as double", errs.ErrParse, text)
		}

		return Word(math.Float64bits(f)), nil

	case format.Char, format.UChar, format.Short, format.UShort, format.Int, format.UInt:
		bits := t.Size() * 8
		u, err := strconv.ParseUint(text, 10, bits)
		if err == nil {
			return Word(u), nil
		}

		if strings.HasPrefix(text, "-") {
			i, err2 := strconv.ParseInt(text, 10, bits)
			if err2 == nil {
				return Word(uint64(i) & mask(t)), nil
			}
			err = err2
		}

		var numErr *strconv.NumError
		if errors.As(err, &numErr) && numErr.Err == strconv.ErrRange {
			return 0, fmt.Errorf("%w: %q does not fit %s", errs.ErrValueOutOfRange, text, t)
		}

		return 0, fmt.Errorf("%w: %q as %s", errs.ErrParse, text, t)

	default:
		return 0, fmt.Errorf("%w: %d", errs.ErrUnknownType, t)
	}
}

// FormatText renders a word as its decimal token.
//
// Integers print in base 10 from the type's low-order bits. Floats print as
// the shortest decimal that parses back to the identical bit pattern, then
// pass through the trailing-zero trim so no token ever ends in a redundant
// zero or a dangling radix point.
func FormatText(w Word, t format.ScalarType) string {
	switch t {
	case format.Float:
		return trimZeros(strconv.FormatFloat(float64(math.Float32frombits(uint32(w))), 'f', -1, 32))
	case format.Double:
		return trimZeros(strconv.FormatFloat(math.Float64frombits(uint64(w)), 'f', -1, 64))
	default:
		return strconv.FormatUint(uint64(w)&mask(t), 10)
	}
}

// trimZeros removes trailing zeros after a radix point, keeping one zero when
// the trim would otherwise leave the token ending in the point itself.
func trimZeros(s string) string {
	if !strings.Contains(s, ".") {
		return s
	}

	s = strings.TrimRight(s, "0")
	if strings.HasSuffix(s, ".") {
		s += "0"
	}

	return s
}

// FromBytes assembles a word from the type's on-wire bytes in the given byte
// order. Each byte widens explicitly through the engine's unsigned
// accumulator; no sign extension can occur.
func FromBytes(b []byte, t format.ScalarType, engine endian.EndianEngine) (Word, error) {
	if len(b) < t.Size() {
		return 0, fmt.Errorf("%w: need %d bytes for %s, have %d", errs.ErrParse, t.Size(), t, len(b))
	}

	switch t.Size() {
	case 1:
		return Word(b[0]), nil
	case 2:
		return Word(engine.Uint16(b)), nil
	case 4:
		return Word(engine.Uint32(b)), nil
	case 8:
		return Word(engine.Uint64(b)), nil
	default:
		return 0, fmt.Errorf("%w: %d", errs.ErrUnknownType, t)
	}
}

// AppendBytes appends the type's on-wire bytes for a word in the given byte
// order and returns the extended slice.
func AppendBytes(dst []byte, w Word, t format.ScalarType, engine endian.EndianEngine) []byte {
	switch t.Size() {
	case 1:
		return append(dst, byte(w))
	case 2:
		return engine.AppendUint16(dst, uint16(w))
	case 4:
		return engine.AppendUint32(dst, uint32(w))
	default:
		return engine.AppendUint64(dst, uint64(w))
	}
}

// FromFloat32 packs a float32 value.
func FromFloat32(f float32) Word {
	return Word(math.Float32bits(f))
}

// FromFloat64 packs a float64 value.
func FromFloat64(f float64) Word {
	return Word(math.Float64bits(f))
}

// FromUint packs an unsigned integer value, masked to the type's width.
func FromUint(v uint64, t format.ScalarType) Word {
	return Word(v & mask(t))
}

// Float32Value unpacks the low 32 bits as a float32.
func (w Word) Float32Value() float32 {
	return math.Float32frombits(uint32(w))
}

// Float64Value unpacks the word as a float64.
func (w Word) Float64Value() float64 {
	return math.Float64frombits(uint64(w))
}

// Uint returns the word's integer value under the given type's width.
func (w Word) Uint(t format.ScalarType) uint64 {
	return uint64(w) & mask(t)
}
