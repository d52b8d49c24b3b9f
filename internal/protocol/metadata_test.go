package protocol_test

import (
	"bytes"
	"testing"

	"github.com/dantte-lp/choadra/internal/protocol"
)

func TestMetadataRoundTrip(t *testing.T) {
	entries := []protocol.MetadataEntry{
		{Index: 0, Kind: protocol.MetaKindByte, Value: int8(5)},
		{Index: 1, Kind: protocol.MetaKindVarInt, Value: int32(12345)},
		{Index: 2, Kind: protocol.MetaKindFloat, Value: float32(1.5)},
		{Index: 3, Kind: protocol.MetaKindString, Value: "name"},
		{Index: 4, Kind: protocol.MetaKindBool, Value: true},
		{Index: 5, Kind: protocol.MetaKindDirection, Value: protocol.DirectionNorth},
		{Index: 6, Kind: protocol.MetaKindPose, Value: protocol.PoseSneaking},
		{Index: 7, Kind: protocol.MetaKindOptVarInt, Value: protocol.OptVarInt{Present: true, Value: 9}},
		{Index: 8, Kind: protocol.MetaKindOptVarInt, Value: protocol.OptVarInt{Present: false}},
		{Index: 9, Kind: protocol.MetaKindOptChat, Value: protocol.OptString{Present: false}},
		{Index: 10, Kind: protocol.MetaKindRotation, Value: protocol.Rotation{X: 1, Y: 2, Z: 3}},
		{Index: 11, Kind: protocol.MetaKindVillagerData, Value: protocol.VillagerData{Type: 1, Profession: 2, Level: 3}},
		{
			Index: 12,
			Kind:  protocol.MetaKindOptPosition,
			Value: protocol.OptPosition{Present: true, Value: protocol.Position{X: 1, Y: 2, Z: 3}},
		},
		{
			Index: 13,
			Kind:  protocol.MetaKindOptUUID,
			Value: protocol.OptUUID{Present: true, Value: protocol.UUID{1, 2, 3}},
		},
	}

	var buf bytes.Buffer
	w := protocol.NewWriter(&buf)

	if err := w.WriteMetadata(entries); err != nil {
		t.Fatalf("WriteMetadata: %v", err)
	}

	got, err := protocol.NewReader(&buf).ReadMetadata()
	if err != nil {
		t.Fatalf("ReadMetadata: %v", err)
	}

	if len(got) != len(entries) {
		t.Fatalf("got %d entries, want %d", len(got), len(entries))
	}

	for i, e := range entries {
		if got[i].Index != e.Index || got[i].Kind != e.Kind {
			t.Fatalf("entry %d = %+v, want %+v", i, got[i], e)
		}
	}
}

func TestMetadataDirectionAndPoseAreSingleBytes(t *testing.T) {
	entries := []protocol.MetadataEntry{
		{Index: 0, Kind: protocol.MetaKindDirection, Value: protocol.DirectionEast},
		{Index: 1, Kind: protocol.MetaKindPose, Value: protocol.PoseSneaking},
	}

	var buf bytes.Buffer
	w := protocol.NewWriter(&buf)

	if err := w.WriteMetadata(entries); err != nil {
		t.Fatalf("WriteMetadata: %v", err)
	}

	raw := buf.Bytes()

	// Per entry: index byte, kind VarInt byte, one raw value byte; then
	// the 0xFF sentinel.
	if len(raw) != 7 {
		t.Fatalf("encoded to %d bytes, want 7 (direction and pose are raw bytes, not VarInts)", len(raw))
	}

	if raw[2] != byte(protocol.DirectionEast) {
		t.Fatalf("direction byte = %d, want %d", raw[2], protocol.DirectionEast)
	}

	if raw[5] != byte(protocol.PoseSneaking) {
		t.Fatalf("pose byte = %d, want %d", raw[5], protocol.PoseSneaking)
	}
}

func TestMetadataEmptyEntriesIsJustSentinel(t *testing.T) {
	var buf bytes.Buffer
	w := protocol.NewWriter(&buf)

	if err := w.WriteMetadata(nil); err != nil {
		t.Fatalf("WriteMetadata: %v", err)
	}

	if !bytes.Equal(buf.Bytes(), []byte{0xFF}) {
		t.Fatalf("got % x, want FF", buf.Bytes())
	}
}
