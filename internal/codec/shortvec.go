package codec

import (
	"github.com/web3-fighter/sol-rpc-gateway/internal/rpcerr"
)

// EncodeShortVecLen encodes n as Solana's "short vec" base-128 varint length
// prefix: 7 value bits per byte, continuation bit 0x80 set on every
// non-terminal byte, at most 3 bytes. n must fit in a u16 for the encoding
// to round-trip through DecodeShortVecLen; callers that might see larger
// values should check before calling.
func EncodeShortVecLen(n uint16) []byte {
	var out []byte
	v := n
	for {
		b := byte(v & 0x7f)
		v >>= 7
		if v != 0 {
			out = append(out, b|0x80)
			continue
		}
		out = append(out, b)
		return out
	}
}

// DecodeShortVecLen reads a short-vec length prefix from buf, returning the
// decoded value and the number of bytes consumed. It rejects encodings whose
// terminal byte still has the continuation bit set (truncated input), whose
// unused high bits are non-zero (the third byte carries only 2 meaningful
// bits for a u16 value), and encodings longer than 3 bytes.
func DecodeShortVecLen(buf []byte) (uint16, int, error) {
	var result uint32
	for i := 0; i < 3; i++ {
		if i >= len(buf) {
			return 0, 0, rpcerr.Parse("short-vec: truncated length prefix")
		}
		b := buf[i]
		result |= uint32(b&0x7f) << (7 * uint(i))
		if b&0x80 == 0 {
			if i == 2 && b > 0x03 {
				// third byte carries only 2 meaningful bits for a u16 value
				// (14 bits already consumed by the first two bytes).
				return 0, 0, rpcerr.Parse("short-vec: terminal byte has non-zero unused high bits")
			}
			if result > 0xffff {
				return 0, 0, rpcerr.Parse("short-vec: value overflows u16")
			}
			return uint16(result), i + 1, nil
		}
	}
	return 0, 0, rpcerr.Parse("short-vec: terminal byte has continuation bit set")
}

// ShortVecLen returns the number of bytes EncodeShortVecLen(n) produces,
// i.e. 1 + (n >= 128) + (n >= 16384).
func ShortVecLen(n uint16) int {
	switch {
	case n >= 16384:
		return 3
	case n >= 128:
		return 2
	default:
		return 1
	}
}
