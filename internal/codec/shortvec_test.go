package codec

import (
	"testing"

	"github.com/stretchr/testify/require"
)

func TestShortVecRoundTrip(t *testing.T) {
	cases := []uint16{0, 1, 2, 127, 128, 129, 16383, 16384, 16385, 0xffff}
	for _, n := range cases {
		enc := EncodeShortVecLen(n)
		require.Len(t, enc, ShortVecLen(n), "n=%d", n)

		got, consumed, err := DecodeShortVecLen(enc)
		require.NoError(t, err)
		require.Equal(t, n, got)
		require.Equal(t, len(enc), consumed)
	}
}

func TestShortVecFixedWidths(t *testing.T) {
	require.Equal(t, []byte{0x00}, EncodeShortVecLen(0))
	require.Equal(t, []byte{0x7f}, EncodeShortVecLen(127))
	require.Equal(t, []byte{0x80, 0x01}, EncodeShortVecLen(128))
	require.Equal(t, []byte{0xff, 0x7f}, EncodeShortVecLen(16383))
	require.Equal(t, []byte{0x80, 0x80, 0x01}, EncodeShortVecLen(16384))
}

func TestDecodeShortVecLenTruncated(t *testing.T) {
	_, _, err := DecodeShortVecLen([]byte{0x80})
	require.Error(t, err)
}

func TestDecodeShortVecLenEmpty(t *testing.T) {
	_, _, err := DecodeShortVecLen(nil)
	require.Error(t, err)
}

func TestDecodeShortVecLenTrailingGarbageIgnored(t *testing.T) {
	// DecodeShortVecLen only reports bytes consumed; callers decide what to
	// do with the rest of the buffer.
	got, consumed, err := DecodeShortVecLen([]byte{0x01, 0xaa, 0xbb})
	require.NoError(t, err)
	require.Equal(t, uint16(1), got)
	require.Equal(t, 1, consumed)
}
