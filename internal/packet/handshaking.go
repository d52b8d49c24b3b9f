package packet

import "github.com/dantte-lp/choadra/internal/protocol"

// NextState is the value a Handshake carries to select Status or Login
// as the following phase.
type NextState int32

// NextState values.
const (
	NextStateStatus NextState = 1
	NextStateLogin  NextState = 2
)

// Handshake is the sole Handshaking-phase packet. It always precedes
// either a Status or a Login phase and is never answered directly.
type Handshake struct {
	ProtocolVersion int32
	ServerAddress   string
	ServerPort      uint16
	NextState       NextState
}

func (Handshake) PacketID() int32 { return 0x00 }

func (h Handshake) Encode(w *protocol.Writer) error {
	if err := w.WriteVarInt(h.ProtocolVersion); err != nil {
		return err
	}

	if err := w.WriteString(h.ServerAddress, 255); err != nil {
		return err
	}

	if err := w.WriteUint16(h.ServerPort); err != nil {
		return err
	}

	return w.WriteVarInt(int32(h.NextState))
}

func decodeHandshake(r *bodyReader) (Packet, error) {
	protocolVersion, err := r.ReadVarInt()
	if err != nil {
		return nil, err
	}

	address, err := r.ReadString(255)
	if err != nil {
		return nil, err
	}

	port, err := r.ReadUint16()
	if err != nil {
		return nil, err
	}

	next, err := r.ReadVarInt()
	if err != nil {
		return nil, err
	}

	return &Handshake{
		ProtocolVersion: protocolVersion,
		ServerAddress:   address,
		ServerPort:      port,
		NextState:       NextState(next),
	}, nil
}

func init() {
	register(PhaseHandshaking, Serverbound, 0x00, decodeHandshake)
}
