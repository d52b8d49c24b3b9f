// Package transport implements the frame layer of the session protocol:
// a bidirectional byte stream wrapped with an optional zlib compression
// threshold and an optional AES-128/CFB8 encryption overlay. It exposes
// "send one framed packet" and "receive one framed packet" in terms of
// an opaque inner payload, knowing nothing about packet ids or bodies.
package transport

import (
	"bufio"
	"bytes"
	"compress/zlib"
	"crypto/aes"
	"fmt"
	"io"

	"github.com/dantte-lp/choadra/internal/choadraerr"
	"github.com/dantte-lp/choadra/internal/protocol"
)

// CompressionDisabled is the threshold value meaning "no compression":
// frames carry a single VarInt length prefix and a raw payload.
const CompressionDisabled = -1

// FrameObserver receives frame-level telemetry from a Conn. A nil
// observer (the default, unless SetObserver is called) is a no-op.
// metrics.Collector satisfies this interface without any change to its
// own definition, which is what lets this package stay free of any
// dependency on a specific metrics backend.
type FrameObserver interface {
	IncFramesSent()
	IncFramesReceived()
	ObserveCompressionRatio(compressedLen, uncompressedLen int)
}

// Conn wraps a raw connection with the framing, compression and
// encryption rules of the session protocol. Reader and writer halves
// are independent so concurrent reads and writes never contend on
// shared mutable state, other than the compression threshold (set only
// during the single-threaded login handshake, per the model this
// package implements).
type Conn struct {
	raw io.ReadWriteCloser

	in  io.Reader
	out io.Writer

	compressionThreshold int

	cipherEngaged bool

	observer FrameObserver
}

// NewConn wraps rw with protocol framing. Compression starts disabled
// and no cipher is engaged, matching a freshly opened connection.
func NewConn(rw io.ReadWriteCloser) *Conn {
	return &Conn{
		raw:                  rw,
		in:                   bufio.NewReader(rw),
		out:                  rw,
		compressionThreshold: CompressionDisabled,
	}
}

// Close closes the underlying connection.
func (c *Conn) Close() error {
	return c.raw.Close()
}

// SetCompressionThreshold updates the frame format used by both
// ReadFrame and WriteFrame. A threshold of zero or less disables
// compression (frames revert to the uncompressed wire format); a
// positive threshold switches to the compressed format, compressing
// only payloads at or above the threshold.
func (c *Conn) SetCompressionThreshold(threshold int32) {
	if threshold <= 0 {
		c.compressionThreshold = CompressionDisabled
		return
	}

	c.compressionThreshold = int(threshold)
}

// CompressionThreshold reports the active threshold, or
// CompressionDisabled.
func (c *Conn) CompressionThreshold() int {
	return c.compressionThreshold
}

// SetObserver wires o to receive frame-sent/frame-received/compression
// telemetry from ReadFrame and WriteFrame. Passing nil disables
// telemetry.
func (c *Conn) SetObserver(o FrameObserver) {
	c.observer = o
}

// EngageEncryption keys an AES-128/CFB8 cipher from secret (used as
// both key and IV, per the protocol) and wraps the reader and writer
// halves in independent cipher instances. It is a fatal protocol error
// to call this twice on the same connection.
func (c *Conn) EngageEncryption(secret []byte) error {
	if c.cipherEngaged {
		return choadraerr.NewInvalidState("encryption already engaged")
	}

	block, err := aes.NewCipher(secret)
	if err != nil {
		return choadraerr.NewRsa("aes key setup", err)
	}

	decryptStream := newCFB8(block, secret, false)
	encryptStream := newCFB8(block, secret, true)

	c.in = &cipherReader{s: decryptStream, r: c.in}
	c.out = &cipherWriter{s: encryptStream, w: c.out}
	c.cipherEngaged = true

	return nil
}

// cipherReader and cipherWriter apply a cipher.Stream to every byte
// crossing the connection, including the frame length prefix — the
// encryption overlay is uniform over the whole stream, not just packet
// bodies. These are a thin hand-rolled analogue of the stdlib's
// cipher.StreamReader/StreamWriter, kept local so XORKeyStream can
// operate on the exact buffer a read or write call provides.
type cipherReader struct {
	s interkeyStreamer
	r io.Reader
}

type cipherWriter struct {
	s interkeyStreamer
	w io.Writer
}

type interkeyStreamer interface {
	XORKeyStream(dst, src []byte)
}

func (c *cipherReader) Read(p []byte) (int, error) {
	n, err := c.r.Read(p)
	if n > 0 {
		c.s.XORKeyStream(p[:n], p[:n])
	}

	return n, err
}

func (c *cipherWriter) Write(p []byte) (int, error) {
	enc := make([]byte, len(p))
	c.s.XORKeyStream(enc, p)

	return c.w.Write(enc)
}

// countingReader counts bytes read through it, used to learn how many
// bytes a VarInt read consumed without adding that bookkeeping to the
// protocol package itself.
type countingReader struct {
	r io.Reader
	n int
}

func (c *countingReader) Read(p []byte) (int, error) {
	n, err := c.r.Read(p)
	c.n += n

	return n, err
}

// ReadFrame reads one frame and returns its inner payload, reversing
// whatever compression and encryption are currently active.
func (c *Conn) ReadFrame() ([]byte, error) {
	packetLength, err := protocol.ReadVarInt(c.in)
	if err != nil {
		return nil, err
	}

	if c.compressionThreshold == CompressionDisabled {
		buf := make([]byte, packetLength)
		if _, err := io.ReadFull(c.in, buf); err != nil {
			return nil, choadraerr.NewIo("read frame payload", err)
		}

		if c.observer != nil {
			c.observer.IncFramesReceived()
		}

		return buf, nil
	}

	cr := &countingReader{r: c.in}

	dataLength, err := protocol.ReadVarInt(cr)
	if err != nil {
		return nil, err
	}

	remaining := int(packetLength) - cr.n
	if remaining < 0 {
		return nil, choadraerr.NewDecode("frame",
			fmt.Errorf("packet length %d shorter than data-length varint", packetLength))
	}

	raw := make([]byte, remaining)
	if _, err := io.ReadFull(c.in, raw); err != nil {
		return nil, choadraerr.NewIo("read frame body", err)
	}

	if dataLength == 0 {
		if c.observer != nil {
			c.observer.IncFramesReceived()
		}

		return raw, nil
	}

	if int(dataLength) < c.compressionThreshold {
		return nil, choadraerr.NewServer(fmt.Sprintf(
			"compression threshold not met: data length %d below threshold %d",
			dataLength, c.compressionThreshold))
	}

	zr, err := zlib.NewReader(bytes.NewReader(raw))
	if err != nil {
		return nil, choadraerr.NewDecode("frame inflate", err)
	}
	defer zr.Close()

	payload := make([]byte, dataLength)
	if _, err := io.ReadFull(zr, payload); err != nil {
		return nil, choadraerr.NewDecode("frame inflate", err)
	}

	if c.observer != nil {
		c.observer.IncFramesReceived()
	}

	return payload, nil
}

// WriteFrame writes payload as one frame, applying compression and
// encryption currently active. The whole frame is handed to the
// underlying writer in a single Write call, so frames from a
// single-threaded caller never interleave on the wire.
func (c *Conn) WriteFrame(payload []byte) error {
	var frame bytes.Buffer

	if c.compressionThreshold == CompressionDisabled {
		if err := protocol.WriteVarInt(&frame, int32(len(payload))); err != nil {
			return err
		}

		frame.Write(payload)
	} else {
		var dataLength int32
		var dataBytes []byte

		if len(payload) >= c.compressionThreshold {
			var deflated bytes.Buffer

			zw := zlib.NewWriter(&deflated)
			if _, err := zw.Write(payload); err != nil {
				return choadraerr.NewEncode("frame deflate", err)
			}

			if err := zw.Close(); err != nil {
				return choadraerr.NewEncode("frame deflate", err)
			}

			dataLength = int32(len(payload))
			dataBytes = deflated.Bytes()

			if c.observer != nil {
				c.observer.ObserveCompressionRatio(len(dataBytes), len(payload))
			}
		} else {
			dataLength = 0
			dataBytes = payload
		}

		packetLength := protocol.VarIntSize(dataLength) + len(dataBytes)

		if err := protocol.WriteVarInt(&frame, int32(packetLength)); err != nil {
			return err
		}

		if err := protocol.WriteVarInt(&frame, dataLength); err != nil {
			return err
		}

		frame.Write(dataBytes)
	}

	if _, err := c.out.Write(frame.Bytes()); err != nil {
		return choadraerr.NewIo("write frame", err)
	}

	if c.observer != nil {
		c.observer.IncFramesSent()
	}

	return nil
}
