// Package session implements the phase-typed state machine (L4) atop
// the frame transport (L2) and packet catalog (L3): a connection is
// represented by a distinct Go type per phase (HandshakeSession,
// StatusSession, LoginSession, PlaySession), and moving between phases
// consumes one handle and returns the next. A method that would be
// illegal in a given phase simply does not exist on that phase's type,
// so the compiler rejects phase-illegal call sequences instead of a
// runtime phase check.
package session

import (
	"context"

	"github.com/dantte-lp/choadra/internal/choadraerr"
	"github.com/dantte-lp/choadra/internal/packet"
	"github.com/dantte-lp/choadra/internal/transport"
)

// ProtocolVersion is the protocol version number this client presents
// in its Handshake packet.
const ProtocolVersion int32 = 754

// Credentials is the (access-token, profile) pair a Login needs to
// traverse an encryption-request flow. Its absence when the server
// demands encryption is a fatal InvalidState error.
type Credentials struct {
	AccessToken       string
	SelectedProfileID string
}

// JoinSessionFunc notifies the session-join HTTP collaborator that a
// client is about to authenticate to a server. The session core calls
// this during login; it takes the function as a value rather than
// importing an HTTP client itself, keeping internal/session free of
// any transport-layer dependency beyond the socket it already wraps.
type JoinSessionFunc func(ctx context.Context, accessToken, selectedProfileID, serverIDHash string) error

// sendPacket encodes p through the packet catalog and writes it as one
// frame.
func sendPacket(conn *transport.Conn, p packet.Packet) error {
	body, err := packet.Encode(p)
	if err != nil {
		return err
	}

	return conn.WriteFrame(body)
}

// receivePacket reads one frame and decodes it against phase/dir.
func receivePacket(conn *transport.Conn, phase packet.Phase, dir packet.Direction) (packet.Packet, error) {
	body, err := conn.ReadFrame()
	if err != nil {
		return nil, err
	}

	return packet.Decode(phase, dir, body)
}

// unexpectedPacket builds the ServerError surfaced when a reply is not
// one of the kinds a given operation accepts.
func unexpectedPacket(context string, got packet.Packet) error {
	return choadraerr.NewServer(context + ": unexpected reply " + packetTypeName(got))
}

func packetTypeName(p packet.Packet) string {
	switch p.(type) {
	case *packet.Response:
		return "Response"
	case *packet.Pong:
		return "Pong"
	case *packet.Disconnect:
		return "Disconnect"
	case *packet.EncryptionRequest:
		return "EncryptionRequest"
	case *packet.LoginSuccess:
		return "LoginSuccess"
	case *packet.SetCompression:
		return "SetCompression"
	case *packet.LoginPluginRequest:
		return "LoginPluginRequest"
	default:
		return "packet"
	}
}
