package packet

import "github.com/dantte-lp/choadra/internal/protocol"

// usernameLimit is the wire string length cap for a player's username.
const usernameLimit = 16

// LoginStart begins the login phase by naming the player.
type LoginStart struct {
	Username string
}

func (LoginStart) PacketID() int32 { return 0x00 }

func (p LoginStart) Encode(w *protocol.Writer) error {
	return w.WriteString(p.Username, usernameLimit)
}

func decodeLoginStart(r *bodyReader) (Packet, error) {
	username, err := r.ReadString(usernameLimit)
	if err != nil {
		return nil, err
	}

	return &LoginStart{Username: username}, nil
}

// EncryptionResponse answers an EncryptionRequest with the shared
// secret and verify token, both encrypted under the server's public
// key.
type EncryptionResponse struct {
	SharedSecret []byte
	VerifyToken  []byte
}

func (EncryptionResponse) PacketID() int32 { return 0x01 }

func (p EncryptionResponse) Encode(w *protocol.Writer) error {
	if err := writeByteArray(w, p.SharedSecret); err != nil {
		return err
	}

	return writeByteArray(w, p.VerifyToken)
}

func decodeEncryptionResponse(r *bodyReader) (Packet, error) {
	secret, err := readByteArray(r.Reader)
	if err != nil {
		return nil, err
	}

	token, err := readByteArray(r.Reader)
	if err != nil {
		return nil, err
	}

	return &EncryptionResponse{SharedSecret: secret, VerifyToken: token}, nil
}

// LoginPluginResponse answers a server's LoginPluginRequest. Data is
// only meaningful when Successful is true; an unsuccessful response
// carries no payload.
type LoginPluginResponse struct {
	MessageID  int32
	Successful bool
	Data       []byte
}

func (LoginPluginResponse) PacketID() int32 { return 0x02 }

func (p LoginPluginResponse) Encode(w *protocol.Writer) error {
	if err := w.WriteVarInt(p.MessageID); err != nil {
		return err
	}

	if err := w.WriteBool(p.Successful); err != nil {
		return err
	}

	if p.Successful {
		return w.WriteRaw(p.Data)
	}

	return nil
}

func decodeLoginPluginResponse(r *bodyReader) (Packet, error) {
	messageID, err := r.ReadVarInt()
	if err != nil {
		return nil, err
	}

	successful, err := r.ReadBool()
	if err != nil {
		return nil, err
	}

	resp := &LoginPluginResponse{MessageID: messageID, Successful: successful}
	if !successful {
		return resp, nil
	}

	data, err := r.ReadRest()
	if err != nil {
		return nil, err
	}

	resp.Data = data

	return resp, nil
}

// Disconnect terminates the login phase with a human-readable chat
// reason.
type Disconnect struct {
	Reason string
}

func (Disconnect) PacketID() int32 { return 0x00 }

func (p Disconnect) Encode(w *protocol.Writer) error {
	return w.WriteChat(p.Reason)
}

func decodeLoginDisconnect(r *bodyReader) (Packet, error) {
	reason, err := r.ReadChat()
	if err != nil {
		return nil, err
	}

	return &Disconnect{Reason: reason}, nil
}

// EncryptionRequest asks the client to generate and encrypt a shared
// secret under the supplied public key.
type EncryptionRequest struct {
	ServerID    string
	PublicKey   []byte
	VerifyToken []byte
}

func (EncryptionRequest) PacketID() int32 { return 0x01 }

func (p EncryptionRequest) Encode(w *protocol.Writer) error {
	if err := w.WriteString(p.ServerID, 20); err != nil {
		return err
	}

	if err := writeByteArray(w, p.PublicKey); err != nil {
		return err
	}

	return writeByteArray(w, p.VerifyToken)
}

func decodeEncryptionRequest(r *bodyReader) (Packet, error) {
	serverID, err := r.ReadString(20)
	if err != nil {
		return nil, err
	}

	publicKey, err := readByteArray(r.Reader)
	if err != nil {
		return nil, err
	}

	verifyToken, err := readByteArray(r.Reader)
	if err != nil {
		return nil, err
	}

	return &EncryptionRequest{ServerID: serverID, PublicKey: publicKey, VerifyToken: verifyToken}, nil
}

// LoginSuccess completes the login phase, handing the client its
// assigned identity.
type LoginSuccess struct {
	UUID     protocol.UUID
	Username string
}

func (LoginSuccess) PacketID() int32 { return 0x02 }

func (p LoginSuccess) Encode(w *protocol.Writer) error {
	if err := w.WriteUUID(p.UUID); err != nil {
		return err
	}

	return w.WriteString(p.Username, usernameLimit)
}

func decodeLoginSuccess(r *bodyReader) (Packet, error) {
	uuid, err := r.ReadUUID()
	if err != nil {
		return nil, err
	}

	username, err := r.ReadString(usernameLimit)
	if err != nil {
		return nil, err
	}

	return &LoginSuccess{UUID: uuid, Username: username}, nil
}

// SetCompression switches the frame transport's compression
// threshold. A threshold at or below zero disables compression
// entirely, reverting the wire format to the uncompressed frame.
type SetCompression struct {
	Threshold int32
}

func (SetCompression) PacketID() int32 { return 0x03 }

func (p SetCompression) Encode(w *protocol.Writer) error {
	return w.WriteVarInt(p.Threshold)
}

func decodeSetCompression(r *bodyReader) (Packet, error) {
	threshold, err := r.ReadVarInt()
	if err != nil {
		return nil, err
	}

	return &SetCompression{Threshold: threshold}, nil
}

// LoginPluginRequest lets a server ask the client to handle a
// modded/plugin-specific login exchange before LoginSuccess.
type LoginPluginRequest struct {
	MessageID int32
	Channel   protocol.Identifier
	Data      []byte
}

func (LoginPluginRequest) PacketID() int32 { return 0x04 }

func (p LoginPluginRequest) Encode(w *protocol.Writer) error {
	if err := w.WriteVarInt(p.MessageID); err != nil {
		return err
	}

	if err := w.WriteIdentifier(p.Channel); err != nil {
		return err
	}

	return w.WriteRaw(p.Data)
}

func decodeLoginPluginRequest(r *bodyReader) (Packet, error) {
	messageID, err := r.ReadVarInt()
	if err != nil {
		return nil, err
	}

	channel, err := r.ReadIdentifier()
	if err != nil {
		return nil, err
	}

	data, err := r.ReadRest()
	if err != nil {
		return nil, err
	}

	return &LoginPluginRequest{MessageID: messageID, Channel: channel, Data: data}, nil
}

func init() {
	register(PhaseLogin, Serverbound, 0x00, decodeLoginStart)
	register(PhaseLogin, Serverbound, 0x01, decodeEncryptionResponse)
	register(PhaseLogin, Serverbound, 0x02, decodeLoginPluginResponse)

	register(PhaseLogin, Clientbound, 0x00, decodeLoginDisconnect)
	register(PhaseLogin, Clientbound, 0x01, decodeEncryptionRequest)
	register(PhaseLogin, Clientbound, 0x02, decodeLoginSuccess)
	register(PhaseLogin, Clientbound, 0x03, decodeSetCompression)
	register(PhaseLogin, Clientbound, 0x04, decodeLoginPluginRequest)
}
