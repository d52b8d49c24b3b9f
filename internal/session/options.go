package session

import "github.com/dantte-lp/choadra/internal/transport"

// Option configures a HandshakeSession at construction, mirroring the
// functional-options pattern internal/netio uses for Dial.
type Option func(*handshakeConfig)

type handshakeConfig struct {
	protocolVersion int32
	frameObserver   transport.FrameObserver
	loginObserver   LoginObserver
}

// WithProtocolVersion overrides the protocol version number advertised
// in the Handshake packet sent by RequestStatus and RequestLogin.
// Without this option, ProtocolVersion is used.
func WithProtocolVersion(v int32) Option {
	return func(c *handshakeConfig) { c.protocolVersion = v }
}

// WithFrameObserver wires a frame-level metrics observer into the
// connection's transport, active for every phase handle the resulting
// HandshakeSession produces.
func WithFrameObserver(o transport.FrameObserver) Option {
	return func(c *handshakeConfig) { c.frameObserver = o }
}

// WithLoginObserver wires a login-duration metrics observer, forwarded
// to the LoginSession returned by RequestLogin.
func WithLoginObserver(o LoginObserver) Option {
	return func(c *handshakeConfig) { c.loginObserver = o }
}
