package wire

import (
	"encoding/binary"
	"math"
)

// decodeFixed32 reads a little-endian 32-bit word at buf[pos:pos+4].
func decodeFixed32(buf []byte, pos int) (uint32, error) {
	if pos+4 > len(buf) {
		return 0, newDecodeError(ErrEndOfBuffer, len(buf))
	}
	return binary.LittleEndian.Uint32(buf[pos : pos+4]), nil
}

// decodeFixed64 reads a little-endian 64-bit word at buf[pos:pos+8].
func decodeFixed64(buf []byte, pos int) (uint64, error) {
	if pos+8 > len(buf) {
		return 0, newDecodeError(ErrEndOfBuffer, len(buf))
	}
	return binary.LittleEndian.Uint64(buf[pos : pos+8]), nil
}

// appendFixed32 appends v to buf as a little-endian 32-bit word.
func appendFixed32(buf []byte, v uint32) []byte {
	var tmp [4]byte
	binary.LittleEndian.PutUint32(tmp[:], v)
	return append(buf, tmp[:]...)
}

// appendFixed64 appends v to buf as a little-endian 64-bit word.
func appendFixed64(buf []byte, v uint64) []byte {
	var tmp [8]byte
	binary.LittleEndian.PutUint64(tmp[:], v)
	return append(buf, tmp[:]...)
}

func float32ToBits(f float32) uint32 { return math.Float32bits(f) }
func bitsToFloat32(b uint32) float32 { return math.Float32frombits(b) }
func float64ToBits(f float64) uint64 { return math.Float64bits(f) }
func bitsToFloat64(b uint64) float64 { return math.Float64frombits(b) }
