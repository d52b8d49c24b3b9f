package packet

import (
	"encoding/json"

	"github.com/dantte-lp/choadra/internal/choadraerr"
	"github.com/dantte-lp/choadra/internal/protocol"
)

// statusStringLimit is the wire string length cap for the Status
// Response's JSON blob.
const statusStringLimit = 32767

// StatusVersion is the "version" object of a status Response.
type StatusVersion struct {
	Name     string `json:"name"`
	Protocol int32  `json:"protocol"`
}

// StatusPlayerSample is one entry of the "players.sample" array.
type StatusPlayerSample struct {
	Name string `json:"name"`
	ID   string `json:"id"`
}

// StatusPlayers is the "players" object of a status Response.
type StatusPlayers struct {
	Max    int32                `json:"max"`
	Online int32                `json:"online"`
	Sample []StatusPlayerSample `json:"sample,omitempty"`
}

// StatusDescription is the "description" object of a status Response.
type StatusDescription struct {
	Text string `json:"text"`
}

// StatusResponse is the decoded form of a Response's JSON body.
type StatusResponse struct {
	Version     StatusVersion     `json:"version"`
	Players     StatusPlayers     `json:"players"`
	Description StatusDescription `json:"description"`
	Favicon     string            `json:"favicon,omitempty"`
}

// Request is the serverbound, empty-bodied request for a status
// Response.
type Request struct{}

func (Request) PacketID() int32                    { return 0x00 }
func (Request) Encode(w *protocol.Writer) error     { return nil }
func decodeRequest(r *bodyReader) (Packet, error) { return &Request{}, nil }

// Ping carries an arbitrary payload a server must echo back in a Pong.
type Ping struct {
	Payload int64
}

func (Ping) PacketID() int32 { return 0x01 }

func (p Ping) Encode(w *protocol.Writer) error {
	return w.WriteInt64(p.Payload)
}

func decodePing(r *bodyReader) (Packet, error) {
	payload, err := r.ReadInt64()
	if err != nil {
		return nil, err
	}

	return &Ping{Payload: payload}, nil
}

// Response carries the server's status document as a JSON string.
type Response struct {
	Status StatusResponse
}

func (Response) PacketID() int32 { return 0x00 }

func (p Response) Encode(w *protocol.Writer) error {
	body, err := json.Marshal(p.Status)
	if err != nil {
		return choadraerr.NewEncode("status response json", err)
	}

	return w.WriteString(string(body), statusStringLimit)
}

func decodeResponse(r *bodyReader) (Packet, error) {
	raw, err := r.ReadString(statusStringLimit)
	if err != nil {
		return nil, err
	}

	var status StatusResponse
	if err := json.Unmarshal([]byte(raw), &status); err != nil {
		return nil, choadraerr.NewDecode("status response json", err)
	}

	return &Response{Status: status}, nil
}

// Pong echoes a Ping's payload back to the caller.
type Pong struct {
	Payload int64
}

func (Pong) PacketID() int32 { return 0x01 }

func (p Pong) Encode(w *protocol.Writer) error {
	return w.WriteInt64(p.Payload)
}

func decodePong(r *bodyReader) (Packet, error) {
	payload, err := r.ReadInt64()
	if err != nil {
		return nil, err
	}

	return &Pong{Payload: payload}, nil
}

func init() {
	register(PhaseStatus, Serverbound, 0x00, decodeRequest)
	register(PhaseStatus, Serverbound, 0x01, decodePing)
	register(PhaseStatus, Clientbound, 0x00, decodeResponse)
	register(PhaseStatus, Clientbound, 0x01, decodePong)
}
