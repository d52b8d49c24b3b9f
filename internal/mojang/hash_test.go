package mojang

import (
	"crypto/sha1" //nolint:gosec // test vectors are defined over SHA-1 digests
	"testing"
)

func TestMojangHexVectors(t *testing.T) {
	cases := []struct {
		input string
		want  string
	}{
		{"Notch", "4ed1f46bbe04bc756bcb17c0c7ce3e4632f06a48"},
		{"jeb_", "-7c9d5b0044c130109a5d7b5fb5c317c02b4e28c1"},
		{"simon", "88e16a1019277b15d58faf0541e11910eb756f6"},
	}

	for _, tc := range cases {
		t.Run(tc.input, func(t *testing.T) {
			sum := sha1.Sum([]byte(tc.input)) //nolint:gosec // matches mojangHex's input shape
			got := mojangHex(sum[:])

			if got != tc.want {
				t.Fatalf("mojangHex(sha1(%q)) = %q, want %q", tc.input, got, tc.want)
			}
		})
	}
}

func TestServerIDHashComposesAllThreeInputs(t *testing.T) {
	// Changing any one of the three inputs must change the hash; this
	// guards against accidentally hashing only a subset of them.
	base := ServerIDHash("", []byte{0x01, 0x02}, []byte{0x03, 0x04})

	withServerID := ServerIDHash("server", []byte{0x01, 0x02}, []byte{0x03, 0x04})
	withSecret := ServerIDHash("", []byte{0xFF}, []byte{0x03, 0x04})
	withKey := ServerIDHash("", []byte{0x01, 0x02}, []byte{0xFF})

	if base == withServerID || base == withSecret || base == withKey {
		t.Fatal("ServerIDHash did not vary with one of its three inputs")
	}
}
