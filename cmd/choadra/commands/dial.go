package commands

import (
	"context"
	"fmt"
	"net"
	"strconv"
	"time"

	"github.com/dantte-lp/choadra/internal/metrics"
	"github.com/dantte-lp/choadra/internal/netio"
	"github.com/dantte-lp/choadra/internal/session"
)

// dialTimeout bounds how long a command waits for the TCP handshake.
const dialTimeout = 10 * time.Second

// handshake dials cfg.Client.ServerAddr and returns the Handshaking
// phase handle plus the parsed (host, port) pair every RequestStatus /
// RequestLogin call needs. collector may be nil, in which case the
// resulting session chain records no metrics; callers that already
// have a running collector (the shell and login commands) pass it so
// frame and login-duration telemetry is wired from the very first
// packet instead of only once the Play phase starts.
func handshake(ctx context.Context, collector *metrics.Collector) (*session.HandshakeSession, string, uint16, error) {
	host, port, err := splitHostPort(cfg.Client.ServerAddr)
	if err != nil {
		return nil, "", 0, err
	}

	conn, err := netio.Dial(ctx, cfg.Client.ServerAddr,
		netio.WithTimeout(dialTimeout),
		netio.WithNoDelay(),
	)
	if err != nil {
		return nil, "", 0, fmt.Errorf("connect to %s: %w", cfg.Client.ServerAddr, err)
	}

	protocolVersion := cfg.Client.ProtocolVersion
	if protocolVersion == 0 {
		protocolVersion = session.ProtocolVersion
	}

	opts := []session.Option{session.WithProtocolVersion(protocolVersion)}
	if collector != nil {
		opts = append(opts, session.WithFrameObserver(collector), session.WithLoginObserver(collector))
	}

	return session.NewHandshakeSession(conn, opts...), host, port, nil
}

// splitHostPort parses addr as host:port, defaulting to port 25565
// when no port is given.
func splitHostPort(addr string) (string, uint16, error) {
	host, portStr, err := net.SplitHostPort(addr)
	if err != nil {
		return addr, 25565, nil
	}

	port, err := strconv.ParseUint(portStr, 10, 16)
	if err != nil {
		return "", 0, fmt.Errorf("parse port in %q: %w", addr, err)
	}

	return host, uint16(port), nil
}
