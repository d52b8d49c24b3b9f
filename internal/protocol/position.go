package protocol

import (
	"fmt"

	"github.com/dantte-lp/choadra/internal/choadraerr"
)

const (
	positionXBits = 26
	positionZBits = 26
	positionYBits = 12

	positionXMin, positionXMax = -33554432, 33554431
	positionZMin, positionZMax = -33554432, 33554431
	positionYMin, positionYMax = -2048, 2047
)

// OutOfRangeError reports a Position coordinate outside its packed
// bit-width range.
type OutOfRangeError struct {
	Axis string
}

func (e *OutOfRangeError) Error() string {
	return fmt.Sprintf("position axis %s out of range", e.Axis)
}

// Position is a bit-packed world coordinate: x and z each fit 26 signed
// bits, y fits 12 signed bits, packed into one 64-bit big-endian word.
type Position struct {
	X, Y, Z int32
}

// NewPosition validates x, y, z against the packed field widths before
// constructing a Position.
func NewPosition(x, y, z int32) (Position, error) {
	if x < positionXMin || x > positionXMax {
		return Position{}, choadraerr.NewEncode("position", &OutOfRangeError{Axis: "x"})
	}

	if z < positionZMin || z > positionZMax {
		return Position{}, choadraerr.NewEncode("position", &OutOfRangeError{Axis: "z"})
	}

	if y < positionYMin || y > positionYMax {
		return Position{}, choadraerr.NewEncode("position", &OutOfRangeError{Axis: "y"})
	}

	return Position{X: x, Y: y, Z: z}, nil
}

// Encode packs p into the wire's 64-bit representation.
func (p Position) Encode() uint64 {
	return (uint64(uint32(p.X)&0x3FFFFFF) << 38) |
		(uint64(uint32(p.Z)&0x3FFFFFF) << 12) |
		uint64(uint32(p.Y)&0xFFF)
}

// DecodePosition unpacks a 64-bit wire value into a Position, sign
// extending each field from its packed bit width. Every uint64 value
// decodes to some Position; there is no invalid encoding.
func DecodePosition(w uint64) Position {
	x := signExtend(int64(w>>38), positionXBits)
	z := signExtend(int64((w>>12)&0x3FFFFFF), positionZBits)
	y := signExtend(int64(w&0xFFF), positionYBits)

	return Position{X: int32(x), Y: int32(y), Z: int32(z)}
}

// signExtend treats the low `bits` bits of v as a two's-complement
// value of that width and sign extends it to a full int64.
func signExtend(v int64, bits uint) int64 {
	shift := 64 - bits
	return (v << shift) >> shift
}

// ReadPosition reads the 64-bit wire form and unpacks it.
func (r *Reader) ReadPosition() (Position, error) {
	w, err := r.ReadUint64()
	if err != nil {
		return Position{}, err
	}

	return DecodePosition(w), nil
}

// WritePosition packs p and writes its 64-bit wire form.
func (w *Writer) WritePosition(p Position) error {
	return w.WriteUint64(p.Encode())
}
