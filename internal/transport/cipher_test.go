package transport

import (
	"bytes"
	"crypto/aes"
	"testing"
)

func TestCFB8EncryptDecryptRoundTrip(t *testing.T) {
	key := bytes.Repeat([]byte{0x2b}, 16)

	block, err := aes.NewCipher(key)
	if err != nil {
		t.Fatalf("aes.NewCipher: %v", err)
	}

	plaintext := []byte("the quick brown fox jumps over the lazy dog, twice for good measure")

	enc := newCFB8(block, key, true)
	ciphertext := make([]byte, len(plaintext))
	enc.XORKeyStream(ciphertext, plaintext)

	if bytes.Equal(ciphertext, plaintext) {
		t.Fatal("ciphertext equals plaintext")
	}

	dec := newCFB8(block, key, false)
	recovered := make([]byte, len(ciphertext))
	dec.XORKeyStream(recovered, ciphertext)

	if !bytes.Equal(recovered, plaintext) {
		t.Fatalf("recovered = %q, want %q", recovered, plaintext)
	}
}

func TestCFB8ByteAtATime(t *testing.T) {
	key := bytes.Repeat([]byte{0x11}, 16)

	block, err := aes.NewCipher(key)
	if err != nil {
		t.Fatalf("aes.NewCipher: %v", err)
	}

	plaintext := []byte("stream cipher byte granularity")

	encWhole, err := aes.NewCipher(key)
	if err != nil {
		t.Fatalf("aes.NewCipher: %v", err)
	}

	oneShot := newCFB8(encWhole, key, true)
	wantCiphertext := make([]byte, len(plaintext))
	oneShot.XORKeyStream(wantCiphertext, plaintext)

	perByte := newCFB8(block, key, true)
	gotCiphertext := make([]byte, len(plaintext))

	for i, b := range plaintext {
		perByte.XORKeyStream(gotCiphertext[i:i+1], []byte{b})
	}

	if !bytes.Equal(gotCiphertext, wantCiphertext) {
		t.Fatalf("per-byte XORKeyStream diverged from one-shot: got % x, want % x",
			gotCiphertext, wantCiphertext)
	}
}
