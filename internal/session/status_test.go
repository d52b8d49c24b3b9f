package session

import (
	"net"
	"testing"

	"github.com/dantte-lp/choadra/internal/packet"
	"github.com/dantte-lp/choadra/internal/transport"
)

// TestStatusPingScenario reproduces scenario S3: handshake into
// Status, a status document round trip, then a ping whose nonce must
// echo back and whose measured duration must be positive.
func TestStatusPingScenario(t *testing.T) {
	clientConn, serverConn := net.Pipe()

	serverErr := make(chan error, 1)
	go func() {
		serverErr <- runFakeStatusServer(serverConn)
	}()

	client := NewHandshakeSession(clientConn)

	statusSession, err := client.RequestStatus("play.example.com", 25565)
	if err != nil {
		t.Fatalf("RequestStatus: %v", err)
	}

	status, err := statusSession.Status()
	if err != nil {
		t.Fatalf("Status: %v", err)
	}

	if status.Version.Name != "1.16.5" {
		t.Fatalf("version name = %q, want 1.16.5", status.Version.Name)
	}

	elapsed, err := statusSession.Ping()
	if err != nil {
		t.Fatalf("Ping: %v", err)
	}

	if elapsed <= 0 {
		t.Fatalf("elapsed = %v, want > 0", elapsed)
	}

	statusSession.Close()

	if err := <-serverErr; err != nil {
		t.Fatalf("fake server: %v", err)
	}
}

// runFakeStatusServer plays the server side of scenario S3 against
// conn, the other end of a net.Pipe.
func runFakeStatusServer(conn net.Conn) error {
	sc := transport.NewConn(conn)
	defer sc.Close()

	hs, err := receivePacket(sc, packet.PhaseHandshaking, packet.Serverbound)
	if err != nil {
		return err
	}

	if _, ok := hs.(*packet.Handshake); !ok {
		return errUnexpected("handshake")
	}

	if _, err := receivePacket(sc, packet.PhaseStatus, packet.Serverbound); err != nil {
		return err
	}

	resp := packet.Response{Status: packet.StatusResponse{
		Version:     packet.StatusVersion{Name: "1.16.5", Protocol: ProtocolVersion},
		Players:     packet.StatusPlayers{Max: 20, Online: 0},
		Description: packet.StatusDescription{Text: "fake server"},
	}}

	if err := sendPacket(sc, resp); err != nil {
		return err
	}

	ping, err := receivePacket(sc, packet.PhaseStatus, packet.Serverbound)
	if err != nil {
		return err
	}

	p, ok := ping.(*packet.Ping)
	if !ok {
		return errUnexpected("ping")
	}

	return sendPacket(sc, packet.Pong{Payload: p.Payload})
}

type unexpectedPacketErr string

func (e unexpectedPacketErr) Error() string { return "unexpected packet: " + string(e) }

func errUnexpected(what string) error { return unexpectedPacketErr(what) }
