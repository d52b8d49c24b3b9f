package protocol_test

import (
	"bytes"
	"testing"

	"github.com/dantte-lp/choadra/internal/protocol"
)

func TestUUIDString(t *testing.T) {
	u := protocol.UUID{
		0x01, 0x23, 0x45, 0x67,
		0x89, 0xab,
		0xcd, 0xef,
		0x01, 0x23,
		0x45, 0x67, 0x89, 0xab, 0xcd, 0xef,
	}

	want := "01234567-89ab-cdef-0123-456789abcdef"
	if got := u.String(); got != want {
		t.Fatalf("String() = %q, want %q", got, want)
	}
}

func TestUUIDReadWriteRoundTrip(t *testing.T) {
	u := protocol.UUID{0xde, 0xad, 0xbe, 0xef, 1, 2, 3, 4, 5, 6, 7, 8, 9, 10, 11, 12}

	var buf bytes.Buffer
	w := protocol.NewWriter(&buf)

	if err := w.WriteUUID(u); err != nil {
		t.Fatalf("WriteUUID: %v", err)
	}

	got, err := protocol.NewReader(&buf).ReadUUID()
	if err != nil {
		t.Fatalf("ReadUUID: %v", err)
	}

	if got != u {
		t.Fatalf("round trip = %v, want %v", got, u)
	}
}
