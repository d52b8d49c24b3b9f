package transport

import "crypto/cipher"

// cfb8 implements AES-128/CFB8: cipher feedback mode with an 8-bit shift
// register, encrypting or decrypting one byte per AES block invocation.
// The standard library's crypto/cipher only exposes CFB with a
// full-block (128-bit) segment size, so the register and shift are
// hand-rolled here; the algorithm follows the original's cfb8 crate (a
// thin wrapper over the same AES primitive this package already uses).
//
// The read half and write half of a connection each hold their own
// cfb8 instance, keyed identically (same key, same initial IV) but
// advancing independently, matching the protocol's requirement that
// encryption and decryption never share mutable cipher state.
type cfb8 struct {
	block   cipher.Block
	reg     []byte
	scratch []byte
	encrypt bool
}

// newCFB8 constructs a cfb8 stream. iv must be block.BlockSize() bytes;
// the caller does not need to retain it, newCFB8 copies it into the
// stream's shift register.
func newCFB8(block cipher.Block, iv []byte, encrypt bool) cipher.Stream {
	reg := make([]byte, len(iv))
	copy(reg, iv)

	return &cfb8{
		block:   block,
		reg:     reg,
		scratch: make([]byte, block.BlockSize()),
		encrypt: encrypt,
	}
}

// XORKeyStream implements cipher.Stream. dst and src may overlap
// exactly, matching the stdlib Stream contract.
func (c *cfb8) XORKeyStream(dst, src []byte) {
	for i, in := range src {
		c.block.Encrypt(c.scratch, c.reg)

		out := in ^ c.scratch[0]

		var feedback byte
		if c.encrypt {
			feedback = out
		} else {
			feedback = in
		}

		copy(c.reg, c.reg[1:])
		c.reg[len(c.reg)-1] = feedback

		dst[i] = out
	}
}
