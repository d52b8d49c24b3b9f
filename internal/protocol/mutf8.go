package protocol

import (
	"errors"
	"strings"
	"unicode/utf16"

	"github.com/dantte-lp/choadra/internal/choadraerr"
)

// errUnpairedSurrogate is the cause wrapped when a decoded UTF-16 unit
// stream contains a surrogate half with no matching partner.
var errUnpairedSurrogate = errors.New("unpaired utf-16 surrogate")

// errInvalidMutf8Byte is the cause wrapped when a leading byte carries
// a bit pattern modified UTF-8 never produces.
var errInvalidMutf8Byte = errors.New("invalid modified utf-8 byte")

// EncodeModifiedUTF8 renders s (ordinary UTF-8 internally, as all Go
// strings are) in the modified UTF-8 form used by Java's DataOutput:
// standard 1/2/3-byte UTF-8 groups, except the NUL code unit becomes the
// overlong two-byte sequence C0 80 and code points above U+FFFF are
// represented as a UTF-16 surrogate pair, each half encoded as its own
// 3-byte group.
func EncodeModifiedUTF8(s string) []byte {
	units := utf16.Encode([]rune(s))
	buf := make([]byte, 0, len(units)*3)

	for _, c := range units {
		switch {
		case c >= 0x0001 && c <= 0x007F:
			buf = append(buf, byte(c))
		case c == 0x0000 || (c >= 0x0080 && c <= 0x07FF):
			buf = append(buf, byte(0xC0|(0x1F&(c>>6))), byte(0x80|(0x3F&c)))
		default:
			buf = append(buf,
				byte(0xE0|(0x0F&(c>>12))),
				byte(0x80|(0x3F&(c>>6))),
				byte(0x80|(0x3F&c)),
			)
		}
	}

	return buf
}

// DecodeModifiedUTF8 parses b as modified UTF-8, rejecting malformed
// continuation bytes and unpaired UTF-16 surrogates.
func DecodeModifiedUTF8(b []byte) (string, error) {
	units := make([]uint16, 0, len(b))
	i := 0

	for i < len(b) {
		b0 := b[i]
		i++

		switch {
		case b0&0x80 == 0x00:
			units = append(units, uint16(b0))
		case b0&0xE0 == 0xC0:
			if i >= len(b) {
				return "", choadraerr.NewDecode("modified utf-8", errors.New("truncated 2-byte sequence"))
			}

			b1 := b[i]
			i++

			if b1&0xC0 != 0x80 {
				return "", choadraerr.NewDecode("modified utf-8",
					errors.New("invalid continuation byte in 2-byte sequence"))
			}

			units = append(units, (uint16(b0&0x1F)<<6)|uint16(b1&0x3F))
		case b0&0xF0 == 0xE0:
			if i+1 >= len(b) {
				return "", choadraerr.NewDecode("modified utf-8", errors.New("truncated 3-byte sequence"))
			}

			b1, b2 := b[i], b[i+1]
			i += 2

			if b1&0xC0 != 0x80 || b2&0xC0 != 0x80 {
				return "", choadraerr.NewDecode("modified utf-8",
					errors.New("invalid continuation byte in 3-byte sequence"))
			}

			units = append(units, (uint16(b0&0x0F)<<12)|(uint16(b1&0x3F)<<6)|uint16(b2&0x3F))
		default:
			return "", choadraerr.NewDecode("modified utf-8", errInvalidMutf8Byte)
		}
	}

	s, err := unitsToString(units)
	if err != nil {
		return "", choadraerr.NewDecode("modified utf-8", err)
	}

	return s, nil
}

// unitsToString assembles a sequence of UTF-16 code units into a Go
// string, rejecting any surrogate half without its partner.
func unitsToString(units []uint16) (string, error) {
	var sb strings.Builder

	for i := 0; i < len(units); i++ {
		u := units[i]

		switch {
		case u >= 0xD800 && u <= 0xDBFF:
			if i+1 >= len(units) {
				return "", errUnpairedSurrogate
			}

			lo := units[i+1]
			if lo < 0xDC00 || lo > 0xDFFF {
				return "", errUnpairedSurrogate
			}

			sb.WriteRune(utf16.DecodeRune(rune(u), rune(lo)))
			i++
		case u >= 0xDC00 && u <= 0xDFFF:
			return "", errUnpairedSurrogate
		default:
			sb.WriteRune(rune(u))
		}
	}

	return sb.String(), nil
}
