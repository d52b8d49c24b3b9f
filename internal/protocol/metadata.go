package protocol

import (
	"fmt"

	"github.com/dantte-lp/choadra/internal/choadraerr"
)

func choadraDecodeUnknownMetaKind(kind int32) error {
	return choadraerr.NewDecode("entity metadata", fmt.Errorf("unknown kind %d", kind))
}

func choadraEncodeUnknownMetaKind(kind int32) error {
	return choadraerr.NewEncode("entity metadata", fmt.Errorf("unknown kind %d", kind))
}

// Direction is a single-byte facing enum used by entity metadata and
// several block-interaction packets.
type Direction uint8

// Direction values.
const (
	DirectionDown Direction = iota
	DirectionUp
	DirectionNorth
	DirectionSouth
	DirectionWest
	DirectionEast
)

func (d Direction) String() string {
	switch d {
	case DirectionDown:
		return "Down"
	case DirectionUp:
		return "Up"
	case DirectionNorth:
		return "North"
	case DirectionSouth:
		return "South"
	case DirectionWest:
		return "West"
	case DirectionEast:
		return "East"
	default:
		return fmt.Sprintf("Direction(%d)", uint8(d))
	}
}

// Pose is a single-byte entity pose enum.
type Pose uint8

// Pose values.
const (
	PoseStanding Pose = iota
	PoseFallFlying
	PoseSleeping
	PoseSwimming
	PoseSpinAttack
	PoseSneaking
	PoseDying
)

func (p Pose) String() string {
	switch p {
	case PoseStanding:
		return "Standing"
	case PoseFallFlying:
		return "FallFlying"
	case PoseSleeping:
		return "Sleeping"
	case PoseSwimming:
		return "Swimming"
	case PoseSpinAttack:
		return "SpinAttack"
	case PoseSneaking:
		return "Sneaking"
	case PoseDying:
		return "Dying"
	default:
		return fmt.Sprintf("Pose(%d)", uint8(p))
	}
}

// Entity metadata value kinds (the VarInt read after each index byte).
const (
	MetaKindByte          int32 = 0
	MetaKindVarInt        int32 = 1
	MetaKindFloat         int32 = 2
	MetaKindString        int32 = 3
	MetaKindChat          int32 = 4
	MetaKindOptChat       int32 = 5
	MetaKindSlot          int32 = 6
	MetaKindBool          int32 = 7
	MetaKindRotation      int32 = 8
	MetaKindPosition      int32 = 9
	MetaKindOptPosition   int32 = 10
	MetaKindDirection     int32 = 11
	MetaKindOptUUID       int32 = 12
	MetaKindBlockID       int32 = 13
	MetaKindNBT           int32 = 14
	MetaKindParticle      int32 = 15
	MetaKindVillagerData  int32 = 16
	MetaKindOptVarInt     int32 = 17
	MetaKindPose          int32 = 18
)

// Rotation is the three-float payload of MetaKindRotation.
type Rotation struct {
	X, Y, Z float32
}

// VillagerData is the three-VarInt payload of MetaKindVillagerData.
type VillagerData struct {
	Type, Profession, Level int32
}

// OptVarInt is the payload of MetaKindOptVarInt: on the wire, Value+1
// is written, with 0 meaning Present == false.
type OptVarInt struct {
	Present bool
	Value   int32
}

// OptString is the payload of MetaKindOptChat: a presence-bool
// followed by a Chat string when present.
type OptString struct {
	Present bool
	Value   string
}

// OptPosition is the payload of MetaKindOptPosition.
type OptPosition struct {
	Present bool
	Value   Position
}

// OptUUID is the payload of MetaKindOptUUID.
type OptUUID struct {
	Present bool
	Value   UUID
}

// MetadataValue is the decoded payload of one MetadataEntry. Its
// concrete Go type is determined by the entry's Kind; callers type-switch
// or type-assert to the type matching Kind.
type MetadataValue any

// MetadataEntry is one (index, kind, value) triple from an entity
// metadata stream.
type MetadataEntry struct {
	Index uint8
	Kind  int32
	Value MetadataValue
}

// metadataEnd is the sentinel index terminating the entry sequence.
const metadataEnd = 0xFF

// ReadMetadata reads entries until the 0xFF sentinel index.
func (r *Reader) ReadMetadata() ([]MetadataEntry, error) {
	var entries []MetadataEntry

	for {
		index, err := r.ReadByte()
		if err != nil {
			return nil, err
		}

		if index == metadataEnd {
			return entries, nil
		}

		kind, err := r.ReadVarInt()
		if err != nil {
			return nil, err
		}

		value, err := r.readMetadataValue(kind)
		if err != nil {
			return nil, err
		}

		entries = append(entries, MetadataEntry{Index: index, Kind: kind, Value: value})
	}
}

// WriteMetadata writes entries followed by the 0xFF sentinel index.
func (w *Writer) WriteMetadata(entries []MetadataEntry) error {
	for _, e := range entries {
		if err := w.WriteByte(e.Index); err != nil {
			return err
		}

		if err := w.WriteVarInt(e.Kind); err != nil {
			return err
		}

		if err := w.writeMetadataValue(e.Kind, e.Value); err != nil {
			return err
		}
	}

	return w.WriteByte(metadataEnd)
}

func (r *Reader) readMetadataValue(kind int32) (MetadataValue, error) {
	switch kind {
	case MetaKindByte:
		return r.ReadInt8()
	case MetaKindVarInt:
		return r.ReadVarInt()
	case MetaKindFloat:
		return r.ReadFloat32()
	case MetaKindString:
		return r.ReadString(DefaultStringLimit)
	case MetaKindChat:
		return r.ReadChat()
	case MetaKindOptChat:
		present, err := r.ReadBool()
		if err != nil || !present {
			return OptString{}, err
		}

		s, err := r.ReadChat()
		return OptString{Present: true, Value: s}, err
	case MetaKindSlot:
		return r.ReadSlot()
	case MetaKindBool:
		return r.ReadBool()
	case MetaKindRotation:
		var rot Rotation

		var err error
		if rot.X, err = r.ReadFloat32(); err != nil {
			return nil, err
		}

		if rot.Y, err = r.ReadFloat32(); err != nil {
			return nil, err
		}

		rot.Z, err = r.ReadFloat32()

		return rot, err
	case MetaKindPosition:
		return r.ReadPosition()
	case MetaKindOptPosition:
		present, err := r.ReadBool()
		if err != nil || !present {
			return OptPosition{}, err
		}

		pos, err := r.ReadPosition()
		return OptPosition{Present: true, Value: pos}, err
	case MetaKindDirection:
		b, err := r.ReadByte()
		return Direction(b), err
	case MetaKindOptUUID:
		present, err := r.ReadBool()
		if err != nil || !present {
			return OptUUID{}, err
		}

		u, err := r.ReadUUID()
		return OptUUID{Present: true, Value: u}, err
	case MetaKindBlockID:
		return r.ReadVarInt()
	case MetaKindNBT:
		return r.readOptionalNBT()
	case MetaKindParticle:
		return r.ReadParticle()
	case MetaKindVillagerData:
		var vd VillagerData

		var err error
		if vd.Type, err = r.ReadVarInt(); err != nil {
			return nil, err
		}

		if vd.Profession, err = r.ReadVarInt(); err != nil {
			return nil, err
		}

		vd.Level, err = r.ReadVarInt()

		return vd, err
	case MetaKindOptVarInt:
		raw, err := r.ReadVarInt()
		if err != nil {
			return nil, err
		}

		if raw == 0 {
			return OptVarInt{Present: false}, nil
		}

		return OptVarInt{Present: true, Value: raw - 1}, nil
	case MetaKindPose:
		b, err := r.ReadByte()
		return Pose(b), err
	default:
		return nil, choadraDecodeUnknownMetaKind(kind)
	}
}

func (w *Writer) writeMetadataValue(kind int32, value MetadataValue) error {
	switch kind {
	case MetaKindByte:
		return w.WriteInt8(value.(int8))
	case MetaKindVarInt, MetaKindBlockID:
		return w.WriteVarInt(value.(int32))
	case MetaKindFloat:
		return w.WriteFloat32(value.(float32))
	case MetaKindString:
		return w.WriteString(value.(string), DefaultStringLimit)
	case MetaKindChat:
		return w.WriteChat(value.(string))
	case MetaKindOptChat:
		os := value.(OptString)
		if !os.Present {
			return w.WriteBool(false)
		}

		if err := w.WriteBool(true); err != nil {
			return err
		}

		return w.WriteChat(os.Value)
	case MetaKindSlot:
		return w.WriteSlot(value.(Slot))
	case MetaKindBool:
		return w.WriteBool(value.(bool))
	case MetaKindRotation:
		rot := value.(Rotation)

		if err := w.WriteFloat32(rot.X); err != nil {
			return err
		}

		if err := w.WriteFloat32(rot.Y); err != nil {
			return err
		}

		return w.WriteFloat32(rot.Z)
	case MetaKindPosition:
		return w.WritePosition(value.(Position))
	case MetaKindOptPosition:
		op := value.(OptPosition)
		if !op.Present {
			return w.WriteBool(false)
		}

		if err := w.WriteBool(true); err != nil {
			return err
		}

		return w.WritePosition(op.Value)
	case MetaKindDirection:
		return w.WriteByte(byte(value.(Direction)))
	case MetaKindOptUUID:
		ou := value.(OptUUID)
		if !ou.Present {
			return w.WriteBool(false)
		}

		if err := w.WriteBool(true); err != nil {
			return err
		}

		return w.WriteUUID(ou.Value)
	case MetaKindNBT:
		tag, _ := value.(Tag)
		return w.writeOptionalNBT(tag)
	case MetaKindParticle:
		return w.WriteParticle(value.(Particle))
	case MetaKindVillagerData:
		vd := value.(VillagerData)

		if err := w.WriteVarInt(vd.Type); err != nil {
			return err
		}

		if err := w.WriteVarInt(vd.Profession); err != nil {
			return err
		}

		return w.WriteVarInt(vd.Level)
	case MetaKindOptVarInt:
		ov := value.(OptVarInt)
		if !ov.Present {
			return w.WriteVarInt(0)
		}

		return w.WriteVarInt(ov.Value + 1)
	case MetaKindPose:
		return w.WriteByte(byte(value.(Pose)))
	default:
		return choadraEncodeUnknownMetaKind(kind)
	}
}
