package endian

import (
	"encoding/binary"
	"testing"
	"unsafe"

	"github.com/stretchr/testify/require"

	"github.com/cartolab/plymesh/format"
)

func TestForFormat(t *testing.T) {
	require.Equal(t, binary.BigEndian, ForFormat(format.BinaryBigEndian))
	require.Equal(t, binary.LittleEndian, ForFormat(format.BinaryLittleEndian))
	require.Equal(t, binary.LittleEndian, ForFormat(format.ASCII))
}

func TestEngineRoundTrip(t *testing.T) {
	engines := []EndianEngine{GetLittleEndianEngine(), GetBigEndianEngine()}
	for _, engine := range engines {
		buf := engine.AppendUint32(nil, 0x90AB12CD)
		require.Len(t, buf, 4)
		require.Equal(t, uint32(0x90AB12CD), engine.Uint32(buf))

		buf = engine.AppendUint64(nil, 0x0102030405060708)
		require.Len(t, buf, 8)
		require.Equal(t, uint64(0x0102030405060708), engine.Uint64(buf))
	}
}

func TestByteLayout(t *testing.T) {
	big := GetBigEndianEngine().AppendUint32(nil, 0x90AB12CD)
	require.Equal(t, []byte{0x90, 0xAB, 0x12, 0xCD}, big)

	little := GetLittleEndianEngine().AppendUint32(nil, 0x90AB12CD)
	require.Equal(t, []byte{0xCD, 0x12, 0xAB, 0x90}, little)
}

func TestCheckEndianness(t *testing.T) {
	result := CheckEndianness()

	var probe uint16 = 0x0102
	bytes := (*[2]byte)(unsafe.Pointer(&probe))

	switch bytes[0] {
	case 0x01:
		require.Equal(t, binary.BigEndian, result)
	case 0x02:
		require.Equal(t, binary.LittleEndian, result)
	default:
		t.Fatalf("unexpected probe byte: %v", bytes[0])
	}

	require.Equal(t, result == binary.LittleEndian, IsNativeLittleEndian())
}
