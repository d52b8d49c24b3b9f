package packet

import "github.com/dantte-lp/choadra/internal/protocol"

// chatLimit is the wire string length cap for a chat message.
const chatLimit = 256

// Unknown is the Play-phase catch-all: any clientbound packet id this
// catalog has no variant for decodes into Unknown rather than failing,
// since new server content routinely adds ids a client library has not
// caught up with yet. Every other phase treats an unregistered id as
// fatal, since the login and status handshakes are small, closed sets.
type Unknown struct {
	ID   int32
	Data []byte
}

func (u Unknown) PacketID() int32 { return u.ID }

func (u Unknown) Encode(w *protocol.Writer) error {
	return w.WriteRaw(u.Data)
}

// ChatMessage is the serverbound chat packet: plain text typed by the
// player.
type ChatMessage struct {
	Message string
}

func (ChatMessage) PacketID() int32 { return 0x03 }

func (p ChatMessage) Encode(w *protocol.Writer) error {
	return w.WriteString(p.Message, chatLimit)
}

func decodeServerboundChatMessage(r *bodyReader) (Packet, error) {
	message, err := r.ReadString(chatLimit)
	if err != nil {
		return nil, err
	}

	return &ChatMessage{Message: message}, nil
}

// ClientStatusAction is the action a ClientStatus packet requests.
type ClientStatusAction int32

// ClientStatusAction values.
const (
	ClientStatusRespawn        ClientStatusAction = 0
	ClientStatusRequestStats   ClientStatusAction = 1
)

// ClientStatus tells the server the client wants to respawn or is
// requesting its statistics.
type ClientStatus struct {
	Action ClientStatusAction
}

func (ClientStatus) PacketID() int32 { return 0x04 }

func (p ClientStatus) Encode(w *protocol.Writer) error {
	return w.WriteVarInt(int32(p.Action))
}

func decodeClientStatus(r *bodyReader) (Packet, error) {
	action, err := r.ReadVarInt()
	if err != nil {
		return nil, err
	}

	return &ClientStatus{Action: ClientStatusAction(action)}, nil
}

// DiggingStatus is the stage of a dig action a PlayerDigging packet
// reports.
type DiggingStatus int32

// DiggingStatus values.
const (
	DiggingStarted          DiggingStatus = 0
	DiggingCancelled        DiggingStatus = 1
	DiggingFinished         DiggingStatus = 2
	DiggingDropItemStack    DiggingStatus = 3
	DiggingDropItem         DiggingStatus = 4
	DiggingShootArrowOrFish DiggingStatus = 5
	DiggingSwapItem         DiggingStatus = 6
)

// PlayerDigging reports a block-breaking action at Location, against
// the named block Face.
type PlayerDigging struct {
	Status   DiggingStatus
	Location protocol.Position
	Face     int8
}

func (PlayerDigging) PacketID() int32 { return 0x1B }

func (p PlayerDigging) Encode(w *protocol.Writer) error {
	if err := w.WriteVarInt(int32(p.Status)); err != nil {
		return err
	}

	if err := w.WritePosition(p.Location); err != nil {
		return err
	}

	return w.WriteInt8(p.Face)
}

func decodePlayerDigging(r *bodyReader) (Packet, error) {
	status, err := r.ReadVarInt()
	if err != nil {
		return nil, err
	}

	location, err := r.ReadPosition()
	if err != nil {
		return nil, err
	}

	face, err := r.ReadInt8()
	if err != nil {
		return nil, err
	}

	return &PlayerDigging{Status: DiggingStatus(status), Location: location, Face: face}, nil
}

// KeepAlive carries an opaque id a peer must echo back within the
// session's keepalive timeout, in either direction.
type KeepAlive struct {
	ID int64
}

func (KeepAlive) PacketID() int32 { return 0x10 }

func (p KeepAlive) Encode(w *protocol.Writer) error {
	return w.WriteInt64(p.ID)
}

func decodeServerboundKeepAlive(r *bodyReader) (Packet, error) {
	id, err := r.ReadInt64()
	if err != nil {
		return nil, err
	}

	return &KeepAlive{ID: id}, nil
}

// ClientboundKeepAlive is the server-originated half of the keepalive
// exchange; distinguished from KeepAlive only by its packet id and
// direction, since both directions share the same body shape.
type ClientboundKeepAlive struct {
	ID int64
}

func (ClientboundKeepAlive) PacketID() int32 { return 0x1F }

func (p ClientboundKeepAlive) Encode(w *protocol.Writer) error {
	return w.WriteInt64(p.ID)
}

func decodeClientboundKeepAlive(r *bodyReader) (Packet, error) {
	id, err := r.ReadInt64()
	if err != nil {
		return nil, err
	}

	return &ClientboundKeepAlive{ID: id}, nil
}

// SpawnEntity announces a newly visible entity and its initial pose
// and velocity.
type SpawnEntity struct {
	EntityID   int32
	ObjectUUID protocol.UUID
	Type       int32
	X, Y, Z    float64
	Pitch, Yaw protocol.Angle
	Data       int32
	VelocityX  int16
	VelocityY  int16
	VelocityZ  int16
}

func (SpawnEntity) PacketID() int32 { return 0x00 }

func (p SpawnEntity) Encode(w *protocol.Writer) error {
	if err := w.WriteVarInt(p.EntityID); err != nil {
		return err
	}

	if err := w.WriteUUID(p.ObjectUUID); err != nil {
		return err
	}

	if err := w.WriteVarInt(p.Type); err != nil {
		return err
	}

	if err := w.WriteFloat64(p.X); err != nil {
		return err
	}

	if err := w.WriteFloat64(p.Y); err != nil {
		return err
	}

	if err := w.WriteFloat64(p.Z); err != nil {
		return err
	}

	if err := w.WriteAngle(p.Pitch); err != nil {
		return err
	}

	if err := w.WriteAngle(p.Yaw); err != nil {
		return err
	}

	if err := w.WriteVarInt(p.Data); err != nil {
		return err
	}

	if err := w.WriteInt16(p.VelocityX); err != nil {
		return err
	}

	if err := w.WriteInt16(p.VelocityY); err != nil {
		return err
	}

	return w.WriteInt16(p.VelocityZ)
}

func decodeSpawnEntity(r *bodyReader) (Packet, error) {
	entityID, err := r.ReadVarInt()
	if err != nil {
		return nil, err
	}

	objectUUID, err := r.ReadUUID()
	if err != nil {
		return nil, err
	}

	entityType, err := r.ReadVarInt()
	if err != nil {
		return nil, err
	}

	x, err := r.ReadFloat64()
	if err != nil {
		return nil, err
	}

	y, err := r.ReadFloat64()
	if err != nil {
		return nil, err
	}

	z, err := r.ReadFloat64()
	if err != nil {
		return nil, err
	}

	pitch, err := r.ReadAngle()
	if err != nil {
		return nil, err
	}

	yaw, err := r.ReadAngle()
	if err != nil {
		return nil, err
	}

	data, err := r.ReadVarInt()
	if err != nil {
		return nil, err
	}

	vx, err := r.ReadInt16()
	if err != nil {
		return nil, err
	}

	vy, err := r.ReadInt16()
	if err != nil {
		return nil, err
	}

	vz, err := r.ReadInt16()
	if err != nil {
		return nil, err
	}

	return &SpawnEntity{
		EntityID:   entityID,
		ObjectUUID: objectUUID,
		Type:       entityType,
		X:          x,
		Y:          y,
		Z:          z,
		Pitch:      pitch,
		Yaw:        yaw,
		Data:       data,
		VelocityX:  vx,
		VelocityY:  vy,
		VelocityZ:  vz,
	}, nil
}

// ClientboundChatMessage delivers a chat or system message, tagged
// with where it should be rendered and who sent it.
type ClientboundChatMessage struct {
	JSONData string
	Position int8
	Sender   protocol.UUID
}

func (ClientboundChatMessage) PacketID() int32 { return 0x0E }

func (p ClientboundChatMessage) Encode(w *protocol.Writer) error {
	if err := w.WriteChat(p.JSONData); err != nil {
		return err
	}

	if err := w.WriteInt8(p.Position); err != nil {
		return err
	}

	return w.WriteUUID(p.Sender)
}

func decodeClientboundChatMessage(r *bodyReader) (Packet, error) {
	jsonData, err := r.ReadChat()
	if err != nil {
		return nil, err
	}

	position, err := r.ReadInt8()
	if err != nil {
		return nil, err
	}

	sender, err := r.ReadUUID()
	if err != nil {
		return nil, err
	}

	return &ClientboundChatMessage{JSONData: jsonData, Position: position, Sender: sender}, nil
}

// PlayDisconnect ends the Play phase with a human-readable reason.
type PlayDisconnect struct {
	Reason string
}

func (PlayDisconnect) PacketID() int32 { return 0x19 }

func (p PlayDisconnect) Encode(w *protocol.Writer) error {
	return w.WriteChat(p.Reason)
}

func decodePlayDisconnect(r *bodyReader) (Packet, error) {
	reason, err := r.ReadChat()
	if err != nil {
		return nil, err
	}

	return &PlayDisconnect{Reason: reason}, nil
}

func init() {
	register(PhasePlay, Serverbound, 0x03, decodeServerboundChatMessage)
	register(PhasePlay, Serverbound, 0x04, decodeClientStatus)
	register(PhasePlay, Serverbound, 0x10, decodeServerboundKeepAlive)
	register(PhasePlay, Serverbound, 0x1B, decodePlayerDigging)

	register(PhasePlay, Clientbound, 0x00, decodeSpawnEntity)
	register(PhasePlay, Clientbound, 0x0E, decodeClientboundChatMessage)
	register(PhasePlay, Clientbound, 0x19, decodePlayDisconnect)
	register(PhasePlay, Clientbound, 0x1F, decodeClientboundKeepAlive)
}
