// Package packet implements the tagged-union packet catalog (L3): one
// Go type per direction-and-phase-specific variant, each knowing its
// own stable numeric id and how to read/write its body atop the
// internal/protocol primitive codecs. Dispatch on receive is a lookup
// in a map keyed by (phase, direction, id) — the idiomatic Go
// replacement for a declarative binary-schema macro.
package packet

import (
	"bytes"
	"fmt"
	"io"

	"github.com/dantte-lp/choadra/internal/choadraerr"
	"github.com/dantte-lp/choadra/internal/protocol"
)

// Phase is one of the four protocol phases a session passes through.
type Phase int

// Phase values.
const (
	PhaseHandshaking Phase = iota
	PhaseStatus
	PhaseLogin
	PhasePlay
)

func (p Phase) String() string {
	switch p {
	case PhaseHandshaking:
		return "Handshaking"
	case PhaseStatus:
		return "Status"
	case PhaseLogin:
		return "Login"
	case PhasePlay:
		return "Play"
	default:
		return fmt.Sprintf("Phase(%d)", int(p))
	}
}

// Direction is which side originates a packet.
type Direction int

// Direction values.
const (
	Serverbound Direction = iota
	Clientbound
)

func (d Direction) String() string {
	if d == Serverbound {
		return "Serverbound"
	}

	return "Clientbound"
}

// Packet is satisfied by every concrete packet variant.
type Packet interface {
	// PacketID returns the variant's stable numeric id within its
	// (phase, direction).
	PacketID() int32

	// Encode writes the packet body (not the id) to w.
	Encode(w *protocol.Writer) error
}

// catalogKey identifies one dispatch table entry.
type catalogKey struct {
	phase Phase
	dir   Direction
	id    int32
}

// bodyReader is the *protocol.Reader handed to a decodeFunc, extended
// with the ability to drain whatever bytes remain in the packet body.
// A handful of variants (plugin messaging, the Play-phase catch-all)
// carry a trailing blob whose length is "rest of the packet" rather
// than a prefixed count.
type bodyReader struct {
	*protocol.Reader
	remaining *bytes.Reader
}

// ReadRest consumes and returns every byte not yet read from the
// packet body.
func (b *bodyReader) ReadRest() ([]byte, error) {
	rest := make([]byte, b.remaining.Len())
	if _, err := io.ReadFull(b.remaining, rest); err != nil {
		return nil, choadraerr.NewIo("read packet tail", err)
	}

	return rest, nil
}

// decodeFunc reads one packet body (the id has already been consumed)
// and returns the typed variant.
type decodeFunc func(r *bodyReader) (Packet, error)

// dispatch is populated by each phase file's init function.
var dispatch = map[catalogKey]decodeFunc{}

// register adds one catalog entry. Called only from init functions in
// this package; a duplicate key is a programming error.
func register(phase Phase, dir Direction, id int32, fn decodeFunc) {
	key := catalogKey{phase: phase, dir: dir, id: id}
	if _, exists := dispatch[key]; exists {
		panic(fmt.Sprintf("packet: duplicate registration for %v/%v/0x%02x", phase, dir, id))
	}

	dispatch[key] = fn
}

// Encode writes p's VarInt id followed by its body, producing the
// "inner payload" that the frame transport (L2) consumes.
func Encode(p Packet) ([]byte, error) {
	var buf bytes.Buffer
	w := protocol.NewWriter(&buf)

	if err := w.WriteVarInt(p.PacketID()); err != nil {
		return nil, err
	}

	if err := p.Encode(w); err != nil {
		return nil, err
	}

	return buf.Bytes(), nil
}

// Decode reads a VarInt packet id from body and dispatches on (phase,
// dir, id). A clientbound id with no registered decoder in the Play
// phase becomes an Unknown variant rather than an error; any other
// (phase, direction) treats an unregistered id as a fatal decode failure.
func Decode(phase Phase, dir Direction, body []byte) (Packet, error) {
	br := bytes.NewReader(body)
	r := &bodyReader{Reader: protocol.NewReader(br), remaining: br}

	id, err := r.ReadVarInt()
	if err != nil {
		return nil, err
	}

	fn, ok := dispatch[catalogKey{phase: phase, dir: dir, id: id}]
	if !ok {
		if phase == PhasePlay && dir == Clientbound {
			rest, err := r.ReadRest()
			if err != nil {
				return nil, err
			}

			return &Unknown{ID: id, Data: rest}, nil
		}

		return nil, choadraerr.NewDecode("packet catalog",
			fmt.Errorf("unregistered id 0x%02x for %v/%v", id, phase, dir))
	}

	return fn(r)
}

// readByteArray reads a VarInt length followed by that many raw bytes,
// the wire form used for the Encryption Request/Response byte blobs.
func readByteArray(r *protocol.Reader) ([]byte, error) {
	n, err := r.ReadVarInt()
	if err != nil {
		return nil, err
	}

	if n < 0 {
		return nil, choadraerr.NewDecode("byte array", fmt.Errorf("negative length %d", n))
	}

	return r.ReadRaw(int(n))
}

// writeByteArray writes a VarInt length followed by b.
func writeByteArray(w *protocol.Writer, b []byte) error {
	if err := w.WriteVarInt(int32(len(b))); err != nil {
		return err
	}

	return w.WriteRaw(b)
}
