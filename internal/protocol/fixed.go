package protocol

import "math"

// Fixed32 is a signed 32-bit fixed-point value; the number of
// fractional bits is a parameter of each use site rather than part of
// the type, since the wire carries only the raw int32.
type Fixed32 int32

// Float64 interprets the fixed-point value with fracBits fractional
// bits as a float64.
func (f Fixed32) Float64(fracBits uint) float64 {
	return float64(f) / float64(int64(1)<<fracBits)
}

// NewFixed32 rounds v to the nearest Fixed32 with fracBits fractional
// bits.
func NewFixed32(v float64, fracBits uint) Fixed32 {
	return Fixed32(int32(math.Round(v * float64(int64(1)<<fracBits))))
}

// ReadFixed32 reads the raw int32 wire form.
func (r *Reader) ReadFixed32() (Fixed32, error) {
	v, err := r.ReadInt32()
	return Fixed32(v), err
}

// WriteFixed32 writes the raw int32 wire form.
func (w *Writer) WriteFixed32(f Fixed32) error {
	return w.WriteInt32(int32(f))
}
