package protocol

import (
	"errors"
	"fmt"
	"io"

	"github.com/dantte-lp/choadra/internal/choadraerr"
)

// TagType is one of the 13 NBT type codes.
type TagType byte

// NBT type codes.
const (
	TypeEnd       TagType = 0
	TypeByte      TagType = 1
	TypeShort     TagType = 2
	TypeInt       TagType = 3
	TypeLong      TagType = 4
	TypeFloat     TagType = 5
	TypeDouble    TagType = 6
	TypeByteArray TagType = 7
	TypeString    TagType = 8
	TypeList      TagType = 9
	TypeCompound  TagType = 10
	TypeIntArray  TagType = 11
	TypeLongArray TagType = 12
)

func (t TagType) String() string {
	switch t {
	case TypeEnd:
		return "End"
	case TypeByte:
		return "Byte"
	case TypeShort:
		return "Short"
	case TypeInt:
		return "Int"
	case TypeLong:
		return "Long"
	case TypeFloat:
		return "Float"
	case TypeDouble:
		return "Double"
	case TypeByteArray:
		return "ByteArray"
	case TypeString:
		return "String"
	case TypeList:
		return "List"
	case TypeCompound:
		return "Compound"
	case TypeIntArray:
		return "IntArray"
	case TypeLongArray:
		return "LongArray"
	default:
		return fmt.Sprintf("TagType(%d)", byte(t))
	}
}

// Tag is any NBT value. The concrete type identifies the NBT kind; see
// the Type*Tag declarations below.
type Tag interface {
	Type() TagType
}

// EndTag is the sentinel terminating a Compound or an empty typeless List.
type EndTag struct{}

// Type implements Tag.
func (EndTag) Type() TagType { return TypeEnd }

// ByteTag is a signed 8-bit NBT value.
type ByteTag int8

// Type implements Tag.
func (ByteTag) Type() TagType { return TypeByte }

// ShortTag is a signed 16-bit NBT value.
type ShortTag int16

// Type implements Tag.
func (ShortTag) Type() TagType { return TypeShort }

// IntTag is a signed 32-bit NBT value.
type IntTag int32

// Type implements Tag.
func (IntTag) Type() TagType { return TypeInt }

// LongTag is a signed 64-bit NBT value.
type LongTag int64

// Type implements Tag.
func (LongTag) Type() TagType { return TypeLong }

// FloatTag is a 32-bit NBT value.
type FloatTag float32

// Type implements Tag.
func (FloatTag) Type() TagType { return TypeFloat }

// DoubleTag is a 64-bit NBT value.
type DoubleTag float64

// Type implements Tag.
func (DoubleTag) Type() TagType { return TypeDouble }

// ByteArrayTag is a length-prefixed array of signed bytes.
type ByteArrayTag []int8

// Type implements Tag.
func (ByteArrayTag) Type() TagType { return TypeByteArray }

// StringTag is a 16-bit-length-prefixed modified-UTF-8 string, distinct
// from the protocol's own VarInt-length-prefixed String.
type StringTag string

// Type implements Tag.
func (StringTag) Type() TagType { return TypeString }

// ListTag is a homogeneous sequence of untagged values of ElemType.
type ListTag struct {
	ElemType TagType
	Elems    []Tag
}

// Type implements Tag.
func (ListTag) Type() TagType { return TypeList }

// CompoundTag is a set of named tagged entries, terminated on the wire
// by an End tag.
type CompoundTag map[string]Tag

// Type implements Tag.
func (CompoundTag) Type() TagType { return TypeCompound }

// IntArrayTag is a length-prefixed array of signed 32-bit ints.
type IntArrayTag []int32

// Type implements Tag.
func (IntArrayTag) Type() TagType { return TypeIntArray }

// LongArrayTag is a length-prefixed array of signed 64-bit ints.
type LongArrayTag []int64

// Type implements Tag.
func (LongArrayTag) Type() TagType { return TypeLongArray }

// DecodeRoot reads one top-level named NBT entry of kind Compound. If
// the stream is empty, the result is an empty CompoundTag rather than
// an error.
func DecodeRoot(r *Reader) (string, Tag, error) {
	name, tag, end, err := decodeNamedEntry(r)
	if err != nil {
		if errors.Is(err, io.EOF) {
			return "", CompoundTag{}, nil
		}

		return "", nil, err
	}

	if end {
		return "", CompoundTag{}, nil
	}

	return name, tag, nil
}

// EncodeRoot writes name and tag as a single top-level named entry.
func EncodeRoot(w *Writer, name string, tag Tag) error {
	if err := w.WriteByte(byte(tag.Type())); err != nil {
		return err
	}

	if err := writeNbtName(w, name); err != nil {
		return err
	}

	return encodeTagValue(w, tag)
}

// decodeNamedEntry reads one (type, name, value) triple, or reports end
// when the type code is End.
func decodeNamedEntry(r *Reader) (name string, tag Tag, end bool, err error) {
	tyByte, err := r.ReadByte()
	if err != nil {
		return "", nil, false, err
	}

	ty := TagType(tyByte)
	if ty == TypeEnd {
		return "", nil, true, nil
	}

	name, err = readNbtName(r)
	if err != nil {
		return "", nil, false, err
	}

	tag, err = decodeTagValue(r, ty)
	if err != nil {
		return "", nil, false, err
	}

	return name, tag, false, nil
}

func readNbtName(r *Reader) (string, error) {
	n, err := r.ReadUint16()
	if err != nil {
		return "", err
	}

	raw, err := r.readFull(int(n))
	if err != nil {
		return "", err
	}

	return DecodeModifiedUTF8(raw)
}

func writeNbtName(w *Writer, name string) error {
	raw := EncodeModifiedUTF8(name)
	if len(raw) > 0xFFFF {
		return choadraerr.NewEncode("nbt name", fmt.Errorf("length %d exceeds uint16", len(raw)))
	}

	if err := w.WriteUint16(uint16(len(raw))); err != nil {
		return err
	}

	return w.WriteRaw(raw)
}

// decodeTagValue reads the value payload for a tag already known to be
// of kind ty, recursing through List and Compound.
func decodeTagValue(r *Reader, ty TagType) (Tag, error) {
	switch ty {
	case TypeEnd:
		return EndTag{}, nil
	case TypeByte:
		v, err := r.ReadInt8()
		return ByteTag(v), err
	case TypeShort:
		v, err := r.ReadInt16()
		return ShortTag(v), err
	case TypeInt:
		v, err := r.ReadInt32()
		return IntTag(v), err
	case TypeLong:
		v, err := r.ReadInt64()
		return LongTag(v), err
	case TypeFloat:
		v, err := r.ReadFloat32()
		return FloatTag(v), err
	case TypeDouble:
		v, err := r.ReadFloat64()
		return DoubleTag(v), err
	case TypeByteArray:
		n, err := r.ReadInt32()
		if err != nil {
			return nil, err
		}

		if n < 0 {
			return nil, choadraerr.NewDecode("nbt byte array", fmt.Errorf("negative length %d", n))
		}

		arr := make([]int8, n)

		for i := range arr {
			b, err := r.ReadInt8()
			if err != nil {
				return nil, err
			}

			arr[i] = b
		}

		return ByteArrayTag(arr), nil
	case TypeString:
		s, err := readNbtName(r)
		return StringTag(s), err
	case TypeList:
		elemTypeByte, err := r.ReadByte()
		if err != nil {
			return nil, err
		}

		elemType := TagType(elemTypeByte)

		n, err := r.ReadInt32()
		if err != nil {
			return nil, err
		}

		if elemType == TypeEnd && n > 0 {
			return nil, choadraerr.NewDecode("nbt list",
				fmt.Errorf("typeless list with positive length %d", n))
		}

		elems := make([]Tag, 0)
		for i := int32(0); i < n; i++ {
			v, err := decodeTagValue(r, elemType)
			if err != nil {
				return nil, err
			}

			elems = append(elems, v)
		}

		return ListTag{ElemType: elemType, Elems: elems}, nil
	case TypeCompound:
		m := CompoundTag{}

		for {
			name, val, end, err := decodeNamedEntry(r)
			if err != nil {
				return nil, err
			}

			if end {
				break
			}

			m[name] = val
		}

		return m, nil
	case TypeIntArray:
		n, err := r.ReadInt32()
		if err != nil {
			return nil, err
		}

		if n < 0 {
			return nil, choadraerr.NewDecode("nbt int array", fmt.Errorf("negative length %d", n))
		}

		arr := make([]int32, n)

		for i := range arr {
			v, err := r.ReadInt32()
			if err != nil {
				return nil, err
			}

			arr[i] = v
		}

		return IntArrayTag(arr), nil
	case TypeLongArray:
		n, err := r.ReadInt32()
		if err != nil {
			return nil, err
		}

		if n < 0 {
			return nil, choadraerr.NewDecode("nbt long array", fmt.Errorf("negative length %d", n))
		}

		arr := make([]int64, n)

		for i := range arr {
			v, err := r.ReadInt64()
			if err != nil {
				return nil, err
			}

			arr[i] = v
		}

		return LongArrayTag(arr), nil
	default:
		return nil, choadraerr.NewDecode("nbt", fmt.Errorf("unknown tag type %d", byte(ty)))
	}
}

// encodeTagValue writes the value payload of tag, with no leading type
// code (the caller writes that as part of the enclosing name/list/root).
func encodeTagValue(w *Writer, tag Tag) error {
	switch t := tag.(type) {
	case EndTag:
		return nil
	case ByteTag:
		return w.WriteInt8(int8(t))
	case ShortTag:
		return w.WriteInt16(int16(t))
	case IntTag:
		return w.WriteInt32(int32(t))
	case LongTag:
		return w.WriteInt64(int64(t))
	case FloatTag:
		return w.WriteFloat32(float32(t))
	case DoubleTag:
		return w.WriteFloat64(float64(t))
	case ByteArrayTag:
		if err := w.WriteInt32(int32(len(t))); err != nil {
			return err
		}

		for _, b := range t {
			if err := w.WriteInt8(b); err != nil {
				return err
			}
		}

		return nil
	case StringTag:
		return writeNbtName(w, string(t))
	case ListTag:
		if err := w.WriteByte(byte(t.ElemType)); err != nil {
			return err
		}

		if err := w.WriteInt32(int32(len(t.Elems))); err != nil {
			return err
		}

		for _, e := range t.Elems {
			if err := encodeTagValue(w, e); err != nil {
				return err
			}
		}

		return nil
	case CompoundTag:
		for name, val := range t {
			if err := w.WriteByte(byte(val.Type())); err != nil {
				return err
			}

			if err := writeNbtName(w, name); err != nil {
				return err
			}

			if err := encodeTagValue(w, val); err != nil {
				return err
			}
		}

		return w.WriteByte(byte(TypeEnd))
	case IntArrayTag:
		if err := w.WriteInt32(int32(len(t))); err != nil {
			return err
		}

		for _, v := range t {
			if err := w.WriteInt32(v); err != nil {
				return err
			}
		}

		return nil
	case LongArrayTag:
		if err := w.WriteInt32(int32(len(t))); err != nil {
			return err
		}

		for _, v := range t {
			if err := w.WriteInt64(v); err != nil {
				return err
			}
		}

		return nil
	default:
		return choadraerr.NewEncode("nbt", fmt.Errorf("unknown tag type %T", tag))
	}
}
