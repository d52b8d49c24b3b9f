package session

import (
	"sync"

	"github.com/dantte-lp/choadra/internal/packet"
	"github.com/dantte-lp/choadra/internal/protocol"
	"github.com/dantte-lp/choadra/internal/transport"
)

// PlaySession is a connection that has completed login. It holds a
// FIFO queue of inbound Play packets: SendPlayPacket needs a
// confirmation that the server has actually reached its own Play
// phase before it is safe to write, and that confirmation is the
// first inbound packet read for that purpose, which must not be lost.
//
// ReadPlayPacket and SendPlayPacket are safe for concurrent use: mu
// serializes the queue/reallyPlaying bookkeeping, the underlying
// receivePacket call and the frame write, so two goroutines (a
// background read loop and a caller sending chat or digging) can
// never issue overlapping reads or writes against the same frame
// stream.
type PlaySession struct {
	conn *transport.Conn

	mu sync.Mutex

	uuid     protocol.UUID
	username string

	reallyPlaying bool
	queue         []packet.Packet
}

// UUID returns the player uuid the server assigned during login.
func (p *PlaySession) UUID() protocol.UUID { return p.uuid }

// Username returns the username confirmed during login.
func (p *PlaySession) Username() string { return p.username }

// Close closes the underlying connection.
func (p *PlaySession) Close() error {
	return p.conn.Close()
}

// ReadPlayPacket returns the next inbound Play packet: a previously
// queued one if SendPlayPacket had to read ahead, otherwise the next
// one off the wire. KeepAlive is not echoed automatically; the caller
// is responsible for replying with the same id.
func (p *PlaySession) ReadPlayPacket() (packet.Packet, error) {
	p.mu.Lock()
	defer p.mu.Unlock()

	if len(p.queue) > 0 {
		next := p.queue[0]
		p.queue = p.queue[1:]

		return next, nil
	}

	next, err := receivePacket(p.conn, packet.PhasePlay, packet.Clientbound)
	if err != nil {
		return nil, err
	}

	p.reallyPlaying = true

	return next, nil
}

// SendPlayPacket writes p to the server. Before the first write, this
// drains one inbound packet as a barrier proving the server has
// itself reached Play, and queues it so ReadPlayPacket still returns
// it in order.
func (p *PlaySession) SendPlayPacket(pkt packet.Packet) error {
	p.mu.Lock()
	defer p.mu.Unlock()

	if !p.reallyPlaying {
		first, err := receivePacket(p.conn, packet.PhasePlay, packet.Clientbound)
		if err != nil {
			return err
		}

		p.queue = append(p.queue, first)
		p.reallyPlaying = true
	}

	return sendPacket(p.conn, pkt)
}
