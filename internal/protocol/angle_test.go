package protocol_test

import (
	"bytes"
	"math"
	"testing"

	"github.com/dantte-lp/choadra/internal/protocol"
)

func TestAngleTurns(t *testing.T) {
	cases := []struct {
		a    protocol.Angle
		want float64
	}{
		{0, 0},
		{64, 0.25},
		{128, 0.5},
		{192, 0.75},
	}

	for _, tc := range cases {
		if got := tc.a.Turns(); got != tc.want {
			t.Fatalf("Angle(%d).Turns() = %v, want %v", tc.a, got, tc.want)
		}
	}
}

func TestAngleFromTurns(t *testing.T) {
	cases := []struct {
		turns float64
		want  protocol.Angle
	}{
		{0, 0},
		{0.25, 64},
		{0.5, 128},
		{1.0, 0},
		{-0.25, 192},
	}

	for _, tc := range cases {
		if got := protocol.AngleFromTurns(tc.turns); got != tc.want {
			t.Fatalf("AngleFromTurns(%v) = %d, want %d", tc.turns, got, tc.want)
		}
	}
}

func TestAngleReadWriteRoundTrip(t *testing.T) {
	for v := 0; v < 256; v++ {
		a := protocol.Angle(v)

		var buf bytes.Buffer
		w := protocol.NewWriter(&buf)

		if err := w.WriteAngle(a); err != nil {
			t.Fatalf("WriteAngle: %v", err)
		}

		got, err := protocol.NewReader(&buf).ReadAngle()
		if err != nil {
			t.Fatalf("ReadAngle: %v", err)
		}

		if got != a {
			t.Fatalf("round trip %d -> %d", a, got)
		}
	}
}

func TestAngleRoundTripViaTurns(t *testing.T) {
	a := protocol.Angle(100)
	if got := protocol.AngleFromTurns(a.Turns()); math.Abs(float64(got)-float64(a)) > 1 {
		t.Fatalf("round trip via turns = %d, want close to %d", got, a)
	}
}
