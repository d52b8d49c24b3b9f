package session

import (
	"crypto/rand"
	"encoding/binary"
	"time"

	"github.com/dantte-lp/choadra/internal/choadraerr"
	"github.com/dantte-lp/choadra/internal/packet"
	"github.com/dantte-lp/choadra/internal/transport"
)

// StatusSession is a connection that has requested the Status phase:
// it may ask for the server's status document and measure round-trip
// latency, but can never transition onward (the server closes the
// connection or the caller does).
type StatusSession struct {
	conn *transport.Conn
}

// Close closes the underlying connection.
func (s *StatusSession) Close() error {
	return s.conn.Close()
}

// Status writes a Request and returns the server's decoded status
// document. A reply of any other kind is a ServerError.
func (s *StatusSession) Status() (packet.StatusResponse, error) {
	if err := sendPacket(s.conn, packet.Request{}); err != nil {
		return packet.StatusResponse{}, err
	}

	reply, err := receivePacket(s.conn, packet.PhaseStatus, packet.Clientbound)
	if err != nil {
		return packet.StatusResponse{}, err
	}

	resp, ok := reply.(*packet.Response)
	if !ok {
		return packet.StatusResponse{}, unexpectedPacket("status", reply)
	}

	return resp.Status, nil
}

// Ping sends a random nonce and measures the round-trip time until the
// server's Pong echoes it back. A mismatched nonce or a reply of any
// other kind is a ServerError.
func (s *StatusSession) Ping() (time.Duration, error) {
	var nonceBuf [8]byte
	if _, err := rand.Read(nonceBuf[:]); err != nil {
		return 0, choadraerr.NewIo("generate ping nonce", err)
	}

	nonce := int64(binary.BigEndian.Uint64(nonceBuf[:]))

	sent := time.Now()
	if err := sendPacket(s.conn, packet.Ping{Payload: nonce}); err != nil {
		return 0, err
	}

	reply, err := receivePacket(s.conn, packet.PhaseStatus, packet.Clientbound)
	if err != nil {
		return 0, err
	}

	elapsed := time.Since(sent)

	pong, ok := reply.(*packet.Pong)
	if !ok {
		return 0, unexpectedPacket("ping", reply)
	}

	if pong.Payload != nonce {
		return 0, choadraerr.NewServer("ping: pong nonce does not match sent nonce")
	}

	return elapsed, nil
}
