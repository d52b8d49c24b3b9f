package session

import (
	"io"

	"github.com/dantte-lp/choadra/internal/packet"
	"github.com/dantte-lp/choadra/internal/transport"
)

// HandshakeSession is the entry point of every connection: freshly
// opened, no compression, no encryption, phase Handshaking.
type HandshakeSession struct {
	conn *transport.Conn

	protocolVersion int32
	loginObserver   LoginObserver
}

// NewHandshakeSession wraps an already-connected socket (or any
// io.ReadWriteCloser) with protocol framing, in the Handshaking phase.
// Without options, it advertises ProtocolVersion and wires no metrics
// observer.
func NewHandshakeSession(rw io.ReadWriteCloser, opts ...Option) *HandshakeSession {
	cfg := handshakeConfig{protocolVersion: ProtocolVersion}
	for _, opt := range opts {
		opt(&cfg)
	}

	conn := transport.NewConn(rw)
	if cfg.frameObserver != nil {
		conn.SetObserver(cfg.frameObserver)
	}

	return &HandshakeSession{conn: conn, protocolVersion: cfg.protocolVersion, loginObserver: cfg.loginObserver}
}

// Close closes the underlying connection.
func (h *HandshakeSession) Close() error {
	return h.conn.Close()
}

// RequestStatus sends the Handshake packet with next_state=Status and
// returns the handle for the Status phase.
func (h *HandshakeSession) RequestStatus(serverAddress string, serverPort uint16) (*StatusSession, error) {
	hs := packet.Handshake{
		ProtocolVersion: h.protocolVersion,
		ServerAddress:   serverAddress,
		ServerPort:      serverPort,
		NextState:       packet.NextStateStatus,
	}

	if err := sendPacket(h.conn, hs); err != nil {
		return nil, err
	}

	return &StatusSession{conn: h.conn}, nil
}

// RequestLogin sends the Handshake packet with next_state=Login and
// returns the handle for the Login phase.
func (h *HandshakeSession) RequestLogin(serverAddress string, serverPort uint16) (*LoginSession, error) {
	hs := packet.Handshake{
		ProtocolVersion: h.protocolVersion,
		ServerAddress:   serverAddress,
		ServerPort:      serverPort,
		NextState:       packet.NextStateLogin,
	}

	if err := sendPacket(h.conn, hs); err != nil {
		return nil, err
	}

	return &LoginSession{conn: h.conn, observer: h.loginObserver}, nil
}
