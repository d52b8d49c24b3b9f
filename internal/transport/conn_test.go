package transport

import (
	"bytes"
	"compress/zlib"
	"testing"

	"github.com/dantte-lp/choadra/internal/protocol"
)

// loopback is a bytes.Buffer adapted to io.ReadWriteCloser, used so a
// Conn's single writes-then-reads sequence in tests can share one
// underlying byte stream.
type loopback struct {
	bytes.Buffer
}

func (l *loopback) Close() error { return nil }

func TestConnUncompressedFrameRoundTrip(t *testing.T) {
	c := NewConn(&loopback{})

	payload := []byte{0x00, 0x01, 0x02, 0x03, 0xFF}
	if err := c.WriteFrame(payload); err != nil {
		t.Fatalf("WriteFrame: %v", err)
	}

	got, err := c.ReadFrame()
	if err != nil {
		t.Fatalf("ReadFrame: %v", err)
	}

	if !bytes.Equal(got, payload) {
		t.Fatalf("got % x, want % x", got, payload)
	}
}

func TestConnCompressedFrameBelowThreshold(t *testing.T) {
	c := NewConn(&loopback{})
	c.SetCompressionThreshold(256)

	payload := []byte("short payload")
	if err := c.WriteFrame(payload); err != nil {
		t.Fatalf("WriteFrame: %v", err)
	}

	got, err := c.ReadFrame()
	if err != nil {
		t.Fatalf("ReadFrame: %v", err)
	}

	if !bytes.Equal(got, payload) {
		t.Fatalf("got % x, want % x", got, payload)
	}
}

func TestConnCompressedFrameAboveThreshold(t *testing.T) {
	c := NewConn(&loopback{})
	c.SetCompressionThreshold(16)

	payload := bytes.Repeat([]byte("abcdefgh"), 64)
	if err := c.WriteFrame(payload); err != nil {
		t.Fatalf("WriteFrame: %v", err)
	}

	got, err := c.ReadFrame()
	if err != nil {
		t.Fatalf("ReadFrame: %v", err)
	}

	if !bytes.Equal(got, payload) {
		t.Fatalf("round trip mismatch, got %d bytes, want %d", len(got), len(payload))
	}
}

func TestConnEncryptedFrameRoundTrip(t *testing.T) {
	c := NewConn(&loopback{})

	secret := bytes.Repeat([]byte{0x42}, 16)
	if err := c.EngageEncryption(secret); err != nil {
		t.Fatalf("EngageEncryption: %v", err)
	}

	payload := []byte("this traverses the cipher overlay")
	if err := c.WriteFrame(payload); err != nil {
		t.Fatalf("WriteFrame: %v", err)
	}

	got, err := c.ReadFrame()
	if err != nil {
		t.Fatalf("ReadFrame: %v", err)
	}

	if !bytes.Equal(got, payload) {
		t.Fatalf("got % x, want % x", got, payload)
	}
}

func TestConnEncryptedCompressedFrameRoundTrip(t *testing.T) {
	c := NewConn(&loopback{})
	c.SetCompressionThreshold(8)

	secret := bytes.Repeat([]byte{0x07}, 16)
	if err := c.EngageEncryption(secret); err != nil {
		t.Fatalf("EngageEncryption: %v", err)
	}

	payload := bytes.Repeat([]byte("payload-under-both-layers"), 20)
	if err := c.WriteFrame(payload); err != nil {
		t.Fatalf("WriteFrame: %v", err)
	}

	got, err := c.ReadFrame()
	if err != nil {
		t.Fatalf("ReadFrame: %v", err)
	}

	if !bytes.Equal(got, payload) {
		t.Fatalf("round trip mismatch")
	}
}

func TestConnDoubleEncryptionFails(t *testing.T) {
	c := NewConn(&loopback{})

	secret := bytes.Repeat([]byte{0x01}, 16)
	if err := c.EngageEncryption(secret); err != nil {
		t.Fatalf("first EngageEncryption: %v", err)
	}

	if err := c.EngageEncryption(secret); err == nil {
		t.Fatal("expected error on second EngageEncryption")
	}
}

func TestConnCompressionThresholdNotMet(t *testing.T) {
	c := NewConn(&loopback{})
	c.SetCompressionThreshold(256)

	// Hand-craft a compressed frame whose data length is nonzero but
	// below the active threshold, which a conforming peer must reject.
	var deflated bytes.Buffer
	zw := zlib.NewWriter(&deflated)
	zw.Write([]byte("x"))
	zw.Close()

	dataLength := int32(10) // nonzero, below threshold 256
	packetLength := protocol.VarIntSize(dataLength) + deflated.Len()

	lb := &loopback{}
	w := protocol.NewWriter(lb)
	if err := w.WriteVarInt(int32(packetLength)); err != nil {
		t.Fatalf("WriteVarInt: %v", err)
	}
	if err := w.WriteVarInt(dataLength); err != nil {
		t.Fatalf("WriteVarInt: %v", err)
	}
	if err := w.WriteRaw(deflated.Bytes()); err != nil {
		t.Fatalf("WriteRaw: %v", err)
	}

	rc := NewConn(lb)
	rc.SetCompressionThreshold(256)

	if _, err := rc.ReadFrame(); err == nil {
		t.Fatal("expected CompressionThresholdNotMet error")
	}
}

func TestConnSetCompressionThresholdDisablesOnNonPositive(t *testing.T) {
	c := NewConn(&loopback{})
	c.SetCompressionThreshold(100)

	if c.CompressionThreshold() != 100 {
		t.Fatalf("threshold = %d, want 100", c.CompressionThreshold())
	}

	c.SetCompressionThreshold(0)

	if c.CompressionThreshold() != CompressionDisabled {
		t.Fatalf("threshold = %d, want disabled", c.CompressionThreshold())
	}
}
