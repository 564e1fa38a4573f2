package scalar

import (
	"math"
	"testing"

	"github.com/stretchr/testify/require"

	"github.com/cartolab/plymesh/endian"
	"github.com/cartolab/plymesh/errs"
	"github.com/cartolab/plymesh/format"
)

func TestParseTextIntegers(t *testing.T) {
	tests := []struct {
		name    string
		text    string
		typ     format.ScalarType
		want    Word
		wantErr error
	}{
		{name: "uchar max", text: "255", typ: format.UChar, want: 255},
		{name: "uchar overflow", text: "256", typ: format.UChar, wantErr: errs.ErrValueOutOfRange},
		{name: "char negative bit pattern", text: "-1", typ: format.Char, want: 0xFF},
		{name: "ushort max", text: "65535", typ: format.UShort, want: 0xFFFF},
		{name: "ushort overflow", text: "65536", typ: format.UShort, wantErr: errs.ErrValueOutOfRange},
		{name: "short negative", text: "-2", typ: format.Short, want: 0xFFFE},
		{name: "uint max", text: "4294967295", typ: format.UInt, want: 0xFFFFFFFF},
		{name: "uint overflow", text: "4294967296", typ: format.UInt, wantErr: errs.ErrValueOutOfRange},
		{name: "int negative", text: "-1", typ: format.Int, want: 0xFFFFFFFF},
		{name: "garbage", text: "12abc", typ: format.Int, wantErr: errs.ErrParse},
		{name: "empty", text: "", typ: format.UChar, wantErr: errs.ErrParse},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			got, err := ParseText(tt.text, tt.typ)
			if tt.wantErr != nil {
				require.ErrorIs(t, err, tt.wantErr)
				return
			}
			require.NoError(t, err)
			require.Equal(t, tt.want, got)
		})
	}
}

func TestParseTextFloats(t *testing.T) {
	w, err := ParseText("1.5", format.Float)
	require.NoError(t, err)
	require.Equal(t, Word(math.Float32bits(1.5)), w)
	// High 32 bits of the word stay clear for a float.
	require.Zero(t, uint64(w)>>32)

	w, err = ParseText("-2.25", format.Double)
	require.NoError(t, err)
	require.Equal(t, Word(math.Float64bits(-2.25)), w)

	_, err = ParseText("not-a-number", format.Float)
	require.ErrorIs(t, err, errs.ErrParse)
}

func TestFormatText(t *testing.T) {
	tests := []struct {
		name string
		word Word
		typ  format.ScalarType
		want string
	}{
		{name: "uchar", word: 200, typ: format.UChar, want: "200"},
		{name: "char bit pattern prints unsigned", word: 0xFF, typ: format.Char, want: "255"},
		{name: "int", word: 123456, typ: format.Int, want: "123456"},
		{name: "float whole", word: FromFloat32(1.0), typ: format.Float, want: "1"},
		{name: "float fraction", word: FromFloat32(1.5), typ: format.Float, want: "1.5"},
		{name: "float tenth", word: FromFloat32(0.1), typ: format.Float, want: "0.1"},
		{name: "double fraction", word: FromFloat64(-2.25), typ: format.Double, want: "-2.25"},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			require.Equal(t, tt.want, FormatText(tt.word, tt.typ))
		})
	}
}

func TestTrimZeros(t *testing.T) {
	require.Equal(t, "1.5", trimZeros("1.500"))
	require.Equal(t, "1.0", trimZeros("1.000"))
	require.Equal(t, "42", trimZeros("42"))
	require.Equal(t, "0.125", trimZeros("0.125000"))
}

// Pack/unpack identity per scalar: text round trip preserves the word
// bit-exactly for every type.
func TestTextRoundTrip(t *testing.T) {
	cases := []struct {
		typ  format.ScalarType
		text string
	}{
		{format.Char, "127"},
		{format.UChar, "255"},
		{format.Short, "32767"},
		{format.UShort, "65535"},
		{format.Int, "2147483647"},
		{format.UInt, "4294967295"},
		{format.Float, "3.25"},
		{format.Float, "-0.5"},
		{format.Double, "123456.78125"},
	}

	for _, c := range cases {
		w, err := ParseText(c.text, c.typ)
		require.NoError(t, err)
		w2, err := ParseText(FormatText(w, c.typ), c.typ)
		require.NoError(t, err)
		require.Equal(t, w, w2, "round trip for %s %q", c.typ, c.text)
	}
}

func TestBinaryRoundTrip(t *testing.T) {
	engines := []endian.EndianEngine{endian.GetLittleEndianEngine(), endian.GetBigEndianEngine()}
	types := []format.ScalarType{
		format.Char, format.UChar, format.Short, format.UShort,
		format.Int, format.UInt, format.Float, format.Double,
	}
	words := map[format.ScalarType]Word{
		format.Char:   0x7F,
		format.UChar:  0xFE,
		format.Short:  0x1234,
		format.UShort: 0xFEDC,
		format.Int:    0x12345678,
		format.UInt:   0xFEDCBA98,
		format.Float:  FromFloat32(-12.375),
		format.Double: FromFloat64(98765.4321),
	}

	for _, engine := range engines {
		for _, typ := range types {
			w := words[typ]
			buf := AppendBytes(nil, w, typ, engine)
			require.Len(t, buf, typ.Size())

			got, err := FromBytes(buf, typ, engine)
			require.NoError(t, err)
			require.Equal(t, w, got, "type %s engine %v", typ, engine)
		}
	}
}

// The in-memory word is endian-neutral: packing the same word with the two
// engines produces reversed byte sequences for multi-byte types.
func TestBinaryEndianSymmetry(t *testing.T) {
	w := FromFloat32(float32(1234.5))
	big := AppendBytes(nil, w, format.Float, endian.GetBigEndianEngine())
	little := AppendBytes(nil, w, format.Float, endian.GetLittleEndianEngine())
	require.Equal(t, []byte{big[3], big[2], big[1], big[0]}, little)
}

func TestFromBytesShortBuffer(t *testing.T) {
	_, err := FromBytes([]byte{1, 2}, format.Int, endian.GetLittleEndianEngine())
	require.ErrorIs(t, err, errs.ErrParse)
}
