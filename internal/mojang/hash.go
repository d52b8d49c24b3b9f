// Package mojang implements the four HTTP collaborator shapes the
// session login flow consumes: authenticate, refresh, validate and
// join_session. It also carries the server-id hash these collaborators
// and the login handshake share ("Mojang hex": a SHA-1 digest read as
// a signed two's-complement big integer and printed in base 16).
package mojang

import (
	"crypto/sha1" //nolint:gosec // Mojang's join-session hash is defined in terms of SHA-1.
	"math/big"
)

// ServerIDHash computes the join-session hash: SHA-1 over
// serverID||sharedSecret||publicKey, interpreted as a signed
// two's-complement big integer and rendered in lowercase hex with no
// leading zeros and a leading "-" when negative.
func ServerIDHash(serverID string, sharedSecret, publicKey []byte) string {
	h := sha1.New() //nolint:gosec // see package doc comment
	h.Write([]byte(serverID))
	h.Write(sharedSecret)
	h.Write(publicKey)

	return mojangHex(h.Sum(nil))
}

// mojangHex renders digest (big-endian bytes of a SHA-1 sum) the way
// Mojang's session servers expect: as a Java BigInteger constructed
// from the two's-complement byte representation, then printed in
// base 16. big.Int has no native two's-complement import, so a
// negative digest (top bit of the first byte set) is recovered by
// negating the magnitude of the one's-complement of every byte plus
// one, mirroring the identity used by Minecraft's own reference
// client.
func mojangHex(digest []byte) string {
	negative := digest[0]&0x80 != 0

	if !negative {
		return new(big.Int).SetBytes(digest).Text(16)
	}

	flipped := make([]byte, len(digest))
	for i, b := range digest {
		flipped[i] = ^b
	}

	magnitude := new(big.Int).SetBytes(flipped)
	magnitude.Add(magnitude, big.NewInt(1))

	return "-" + magnitude.Text(16)
}
