package session

import (
	"net"
	"testing"

	"github.com/dantte-lp/choadra/internal/packet"
	"github.com/dantte-lp/choadra/internal/transport"
)

func newTestPlaySession(conn net.Conn) *PlaySession {
	return &PlaySession{conn: transport.NewConn(conn)}
}

// TestSendPlayPacketDrainsBarrierBeforeFirstSend verifies the
// synchronization-barrier rule: before really_playing is true, the
// first SendPlayPacket call must read one inbound packet first and
// queue it for ReadPlayPacket rather than discarding it.
func TestSendPlayPacketDrainsBarrierBeforeFirstSend(t *testing.T) {
	clientConn, serverConn := net.Pipe()

	serverDone := make(chan error, 1)
	go func() {
		sc := transport.NewConn(serverConn)
		defer sc.Close()

		// The barrier packet the client must read before it is
		// allowed to send anything.
		if err := sendPacket(sc, packet.ClientboundKeepAlive{ID: 1}); err != nil {
			serverDone <- err
			return
		}

		got, err := receivePacket(sc, packet.PhasePlay, packet.Serverbound)
		if err != nil {
			serverDone <- err
			return
		}

		if _, ok := got.(*packet.ChatMessage); !ok {
			serverDone <- errUnexpected("chat message")
			return
		}

		serverDone <- nil
	}()

	play := newTestPlaySession(clientConn)

	if err := play.SendPlayPacket(&packet.ChatMessage{Message: "hello"}); err != nil {
		t.Fatalf("SendPlayPacket: %v", err)
	}

	if !play.reallyPlaying {
		t.Fatal("reallyPlaying should be true after the barrier read")
	}

	if len(play.queue) != 1 {
		t.Fatalf("queue length = %d, want 1", len(play.queue))
	}

	queued, err := play.ReadPlayPacket()
	if err != nil {
		t.Fatalf("ReadPlayPacket: %v", err)
	}

	if _, ok := queued.(*packet.ClientboundKeepAlive); !ok {
		t.Fatalf("got %#v, want *ClientboundKeepAlive drained from the queue", queued)
	}

	play.Close()

	if err := <-serverDone; err != nil {
		t.Fatalf("fake server: %v", err)
	}
}

// TestReadPlayPacketSetsReallyPlaying verifies that a plain read (no
// prior send) also satisfies the barrier for subsequent sends.
func TestReadPlayPacketSetsReallyPlaying(t *testing.T) {
	clientConn, serverConn := net.Pipe()

	go func() {
		sc := transport.NewConn(serverConn)
		defer sc.Close()

		sendPacket(sc, packet.ClientboundKeepAlive{ID: 7})
		receivePacket(sc, packet.PhasePlay, packet.Serverbound)
	}()

	play := newTestPlaySession(clientConn)

	first, err := play.ReadPlayPacket()
	if err != nil {
		t.Fatalf("ReadPlayPacket: %v", err)
	}

	if _, ok := first.(*packet.ClientboundKeepAlive); !ok {
		t.Fatalf("got %#v, want *ClientboundKeepAlive", first)
	}

	if !play.reallyPlaying {
		t.Fatal("reallyPlaying should be true after a direct read")
	}

	if err := play.SendPlayPacket(&packet.KeepAlive{ID: 7}); err != nil {
		t.Fatalf("SendPlayPacket: %v", err)
	}

	play.Close()
}
