package protocol

import (
	"fmt"

	"github.com/dantte-lp/choadra/internal/choadraerr"
)

// DefaultStringLimit is the default maximum encoded byte length for a
// protocol String value.
const DefaultStringLimit = 32767

// DefaultChatLimit is the default maximum encoded byte length for a
// protocol Chat value.
const DefaultChatLimit = 262144

// ReadString reads a VarInt-length-prefixed modified-UTF-8 string,
// rejecting input whose encoded byte count exceeds limit.
func (r *Reader) ReadString(limit int) (string, error) {
	n, err := r.ReadVarInt()
	if err != nil {
		return "", err
	}

	if n < 0 || int(n) > limit {
		return "", choadraerr.NewDecode("string",
			fmt.Errorf("encoded length %d exceeds limit %d", n, limit))
	}

	raw, err := r.readFull(int(n))
	if err != nil {
		return "", err
	}

	return DecodeModifiedUTF8(raw)
}

// ReadChat reads a String with the Chat default byte limit.
func (r *Reader) ReadChat() (string, error) {
	return r.ReadString(DefaultChatLimit)
}

// WriteString encodes s as modified UTF-8 and writes a VarInt length
// prefix, rejecting an encoded byte count beyond limit.
func (w *Writer) WriteString(s string, limit int) error {
	raw := EncodeModifiedUTF8(s)
	if len(raw) > limit {
		return choadraerr.NewEncode("string",
			fmt.Errorf("encoded length %d exceeds limit %d", len(raw), limit))
	}

	if err := w.WriteVarInt(int32(len(raw))); err != nil {
		return err
	}

	return w.WriteRaw(raw)
}

// WriteChat writes s as a String with the Chat default byte limit.
func (w *Writer) WriteChat(s string) error {
	return w.WriteString(s, DefaultChatLimit)
}
