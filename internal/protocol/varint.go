package protocol

import (
	"errors"
	"fmt"
	"io"
	"math/bits"

	"github.com/dantte-lp/choadra/internal/choadraerr"
)

// continuationBit marks that another group of 7 data bits follows.
const continuationBit = 0x80

// errVarIntTooLong is the sentinel cause wrapped into a choadraerr.DecodeError
// when a variable-width integer carries more informative bits than its
// native width allows.
var errVarIntTooLong = errors.New("variable integer too long")

// ReadVarInt reads a VarInt: 7-bit groups, low-order first, continuation
// bit set on every byte but the last. Fails if the cumulative informative
// bit count exceeds 32.
func ReadVarInt(r io.Reader) (int32, error) {
	v, err := readVarX(r, 32)
	if err != nil {
		return 0, err
	}

	return int32(v), nil
}

// ReadVarLong is ReadVarInt generalized to the 64-bit width.
func ReadVarLong(r io.Reader) (int64, error) {
	v, err := readVarX(r, 64)
	if err != nil {
		return 0, err
	}

	return int64(v), nil
}

// readVarX implements the shared VarInt/VarLong decode loop. It tracks the
// number of informative bits read so far the same way the reference
// decoder does: a continuation byte always contributes 7 bits, a final
// byte contributes only as many bits as are needed to represent its
// nonzero high bit (8 minus the byte's leading zero count).
func readVarX(r io.Reader, width uint) (uint64, error) {
	var (
		numRead uint
		result  uint64
		buf     [1]byte
	)

	for {
		if _, err := io.ReadFull(r, buf[:]); err != nil {
			return 0, choadraerr.NewIo("read varint byte", err)
		}

		value := uint64(buf[0] &^ continuationBit)
		result |= value << numRead

		more := buf[0]&continuationBit != 0
		if more {
			numRead += 7
		} else {
			numRead += 8 - uint(bits.LeadingZeros8(uint8(value)))
		}

		if numRead > width {
			return 0, choadraerr.NewDecode("varint",
				fmt.Errorf("%w: read %d bits, max %d", errVarIntTooLong, numRead, width))
		}

		if !more {
			return result, nil
		}
	}
}

// WriteVarInt writes v as a VarInt.
func WriteVarInt(w io.Writer, v int32) error {
	return writeVarX(w, uint64(uint32(v)))
}

// WriteVarLong writes v as a VarLong.
func WriteVarLong(w io.Writer, v int64) error {
	return writeVarX(w, uint64(v))
}

func writeVarX(w io.Writer, u uint64) error {
	var buf [1]byte

	for {
		buf[0] = byte(u & 0x7F)
		u >>= 7

		if u != 0 {
			buf[0] |= continuationBit
		}

		if _, err := w.Write(buf[:]); err != nil {
			return choadraerr.NewIo("write varint byte", err)
		}

		if u == 0 {
			return nil
		}
	}
}

// VarIntSize returns the encoded byte length of v without writing it.
func VarIntSize(v int32) int {
	return varXSize(uint64(uint32(v)))
}

// VarLongSize returns the encoded byte length of v without writing it.
func VarLongSize(v int64) int {
	return varXSize(uint64(v))
}

func varXSize(u uint64) int {
	n := 0

	for {
		n++

		u >>= 7
		if u == 0 {
			return n
		}
	}
}
