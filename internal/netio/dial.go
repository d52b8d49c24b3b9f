package netio

import (
	"context"
	"fmt"
	"net"
	"time"
)

// DialOption configures optional Dial parameters.
type DialOption func(*dialConfig)

type dialConfig struct {
	timeout     time.Duration
	noDelay     bool
	rcvTimeout  time.Duration
	setSockOpts bool
}

// WithTimeout bounds how long Dial waits for the TCP handshake to
// complete.
func WithTimeout(d time.Duration) DialOption {
	return func(c *dialConfig) {
		c.timeout = d
	}
}

// WithNoDelay disables Nagle's algorithm (TCP_NODELAY) on the dialed
// socket. Packet framing already batches a whole frame into one Write,
// so Nagle buys nothing but added latency on small packets like
// KeepAlive.
func WithNoDelay() DialOption {
	return func(c *dialConfig) {
		c.noDelay = true
		c.setSockOpts = true
	}
}

// WithReceiveTimeout sets SO_RCVTIMEO on the dialed socket (Linux
// only). Go's runtime reads net.Conn sockets in non-blocking mode, so
// this option does not bound how long a Read on the returned net.Conn
// (and hence a ReadFrame) blocks.
func WithReceiveTimeout(d time.Duration) DialOption {
	return func(c *dialConfig) {
		c.rcvTimeout = d
		c.setSockOpts = true
	}
}

// Dial opens a TCP connection to addr (host:port), applying any
// DialOptions. The returned net.Conn is the raw socket a
// session.HandshakeSession wraps; Dial performs no protocol handshake
// of its own.
func Dial(ctx context.Context, addr string, opts ...DialOption) (net.Conn, error) {
	cfg := &dialConfig{}
	for _, opt := range opts {
		opt(cfg)
	}

	dialer := &net.Dialer{Timeout: cfg.timeout}
	if cfg.setSockOpts {
		dialer.Control = controlFunc(cfg)
	}

	conn, err := dialer.DialContext(ctx, "tcp", addr)
	if err != nil {
		return nil, fmt.Errorf("dial %s: %w", addr, err)
	}

	return conn, nil
}
