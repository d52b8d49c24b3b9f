// Package protocol implements the primitive codec layer of the session
// protocol: fixed-width integers and floats, VarInt/VarLong, modified
// UTF-8 strings, bit-packed positions, angles, UUIDs, fixed-point
// values, NBT, entity metadata, particles and item slots. Every type
// exposes a decode operation taking a Reader and an encode operation
// taking a Writer; both report typed errors from
// github.com/dantte-lp/choadra/internal/choadraerr on malformed or
// oversized input.
package protocol

import (
	"encoding/binary"
	"io"
	"math"

	"github.com/dantte-lp/choadra/internal/choadraerr"
)

// Reader decodes primitive values from a byte stream. It holds no
// buffering of its own; wrap a *bufio.Reader around the socket before
// constructing one if short reads would otherwise be costly.
type Reader struct {
	r io.Reader
}

// NewReader wraps r for primitive decoding.
func NewReader(r io.Reader) *Reader {
	return &Reader{r: r}
}

// Read implements io.Reader by delegating to the underlying stream,
// so a Reader can itself be handed to helpers that expect io.Reader
// (for example the VarInt functions used outside of method context).
func (r *Reader) Read(p []byte) (int, error) {
	return r.r.Read(p)
}

func (r *Reader) readFull(n int) ([]byte, error) {
	buf := make([]byte, n)
	if _, err := io.ReadFull(r.r, buf); err != nil {
		return nil, choadraerr.NewIo("read primitive", err)
	}

	return buf, nil
}

// ReadBool reads a single boolean byte (0 or 1).
func (r *Reader) ReadBool() (bool, error) {
	b, err := r.readFull(1)
	if err != nil {
		return false, err
	}

	return b[0] != 0, nil
}

// ReadByte reads one raw byte, satisfying io.ByteReader.
func (r *Reader) ReadByte() (byte, error) {
	b, err := r.readFull(1)
	if err != nil {
		return 0, err
	}

	return b[0], nil
}

// ReadInt8 reads one signed byte.
func (r *Reader) ReadInt8() (int8, error) {
	b, err := r.ReadByte()
	return int8(b), err
}

// ReadUint16 reads a big-endian unsigned 16-bit integer.
func (r *Reader) ReadUint16() (uint16, error) {
	b, err := r.readFull(2)
	if err != nil {
		return 0, err
	}

	return binary.BigEndian.Uint16(b), nil
}

// ReadInt16 reads a big-endian signed 16-bit integer.
func (r *Reader) ReadInt16() (int16, error) {
	v, err := r.ReadUint16()
	return int16(v), err
}

// ReadUint32 reads a big-endian unsigned 32-bit integer.
func (r *Reader) ReadUint32() (uint32, error) {
	b, err := r.readFull(4)
	if err != nil {
		return 0, err
	}

	return binary.BigEndian.Uint32(b), nil
}

// ReadInt32 reads a big-endian signed 32-bit integer.
func (r *Reader) ReadInt32() (int32, error) {
	v, err := r.ReadUint32()
	return int32(v), err
}

// ReadUint64 reads a big-endian unsigned 64-bit integer.
func (r *Reader) ReadUint64() (uint64, error) {
	b, err := r.readFull(8)
	if err != nil {
		return 0, err
	}

	return binary.BigEndian.Uint64(b), nil
}

// ReadInt64 reads a big-endian signed 64-bit integer.
func (r *Reader) ReadInt64() (int64, error) {
	v, err := r.ReadUint64()
	return int64(v), err
}

// ReadFloat32 reads a big-endian IEEE-754 32-bit float.
func (r *Reader) ReadFloat32() (float32, error) {
	v, err := r.ReadUint32()
	return math.Float32frombits(v), err
}

// ReadFloat64 reads a big-endian IEEE-754 64-bit float.
func (r *Reader) ReadFloat64() (float64, error) {
	v, err := r.ReadUint64()
	return math.Float64frombits(v), err
}

// ReadVarInt reads a VarInt from r.
func (r *Reader) ReadVarInt() (int32, error) {
	return ReadVarInt(r.r)
}

// ReadVarLong reads a VarLong from r.
func (r *Reader) ReadVarLong() (int64, error) {
	return ReadVarLong(r.r)
}

// ReadRaw reads exactly n raw bytes.
func (r *Reader) ReadRaw(n int) ([]byte, error) {
	return r.readFull(n)
}

// Writer encodes primitive values to a byte stream.
type Writer struct {
	w io.Writer
}

// NewWriter wraps w for primitive encoding.
func NewWriter(w io.Writer) *Writer {
	return &Writer{w: w}
}

// Write implements io.Writer by delegating to the underlying stream.
func (w *Writer) Write(p []byte) (int, error) {
	return w.w.Write(p)
}

func (w *Writer) writeFull(b []byte) error {
	if _, err := w.w.Write(b); err != nil {
		return choadraerr.NewIo("write primitive", err)
	}

	return nil
}

// WriteBool writes a single boolean byte.
func (w *Writer) WriteBool(v bool) error {
	if v {
		return w.writeFull([]byte{1})
	}

	return w.writeFull([]byte{0})
}

// WriteByte writes one raw byte, satisfying io.ByteWriter.
func (w *Writer) WriteByte(b byte) error {
	return w.writeFull([]byte{b})
}

// WriteInt8 writes one signed byte.
func (w *Writer) WriteInt8(v int8) error {
	return w.WriteByte(byte(v))
}

// WriteUint16 writes a big-endian unsigned 16-bit integer.
func (w *Writer) WriteUint16(v uint16) error {
	var b [2]byte
	binary.BigEndian.PutUint16(b[:], v)

	return w.writeFull(b[:])
}

// WriteInt16 writes a big-endian signed 16-bit integer.
func (w *Writer) WriteInt16(v int16) error {
	return w.WriteUint16(uint16(v))
}

// WriteUint32 writes a big-endian unsigned 32-bit integer.
func (w *Writer) WriteUint32(v uint32) error {
	var b [4]byte
	binary.BigEndian.PutUint32(b[:], v)

	return w.writeFull(b[:])
}

// WriteInt32 writes a big-endian signed 32-bit integer.
func (w *Writer) WriteInt32(v int32) error {
	return w.WriteUint32(uint32(v))
}

// WriteUint64 writes a big-endian unsigned 64-bit integer.
func (w *Writer) WriteUint64(v uint64) error {
	var b [8]byte
	binary.BigEndian.PutUint64(b[:], v)

	return w.writeFull(b[:])
}

// WriteInt64 writes a big-endian signed 64-bit integer.
func (w *Writer) WriteInt64(v int64) error {
	return w.WriteUint64(uint64(v))
}

// WriteFloat32 writes a big-endian IEEE-754 32-bit float.
func (w *Writer) WriteFloat32(v float32) error {
	return w.WriteUint32(math.Float32bits(v))
}

// WriteFloat64 writes a big-endian IEEE-754 64-bit float.
func (w *Writer) WriteFloat64(v float64) error {
	return w.WriteUint64(math.Float64bits(v))
}

// WriteVarInt writes v as a VarInt to w.
func (w *Writer) WriteVarInt(v int32) error {
	return WriteVarInt(w.w, v)
}

// WriteVarLong writes v as a VarLong to w.
func (w *Writer) WriteVarLong(v int64) error {
	return WriteVarLong(w.w, v)
}

// WriteRaw writes b unmodified.
func (w *Writer) WriteRaw(b []byte) error {
	return w.writeFull(b)
}
