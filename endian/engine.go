// Package endian provides byte order utilities for the binary PLY payload
// codec.
//
// It combines Go's binary.ByteOrder and binary.AppendByteOrder interfaces into
// a single EndianEngine interface so that the scalar codec can both read and
// append multi-byte values through one value, and maps a PLY format to the
// engine that decodes its payload.
//
// All returned engines are immutable and safe for concurrent use.
package endian

import (
	"encoding/binary"
	"unsafe"

	"github.com/cartolab/plymesh/format"
)

// EndianEngine combines ByteOrder and AppendByteOrder from encoding/binary
// into a single interface for convenient byte order operations.
//
// binary.LittleEndian and binary.BigEndian both satisfy it.
type EndianEngine interface {
	binary.ByteOrder
	binary.AppendByteOrder
}

// GetLittleEndianEngine returns the little-endian engine.
func GetLittleEndianEngine() EndianEngine {
	return binary.LittleEndian
}

// GetBigEndianEngine returns the big-endian engine.
func GetBigEndianEngine() EndianEngine {
	return binary.BigEndian
}

// ForFormat returns the engine that decodes the given binary PLY format.
// The ASCII format has no byte order; it maps to little-endian, matching the
// in-memory word layout.
func ForFormat(f format.Format) EndianEngine {
	if f == format.BinaryBigEndian {
		return binary.BigEndian
	}

	return binary.LittleEndian
}

// CheckEndianness uses a fixed integer value to determine the host's byte order.
func CheckEndianness() binary.ByteOrder {
	// 0x0100 is 256. A little-endian host stores the LSB (0x00) first,
	// a big-endian host the MSB (0x01).
	var i uint16 = 0x0100

	b := (*[2]byte)(unsafe.Pointer(&i))
	if b[0] == 0x01 {
		return binary.BigEndian
	}

	return binary.LittleEndian
}

// IsNativeLittleEndian reports whether the host is little-endian.
func IsNativeLittleEndian() bool {
	return CheckEndianness() == binary.LittleEndian
}
